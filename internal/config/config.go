// Package config provides YAML-based game configuration loading
// for the falling-block game.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Queue   QueueConfig   `yaml:"queue"`
	Gravity GravityConfig `yaml:"gravity"`
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// QueueConfig defines the next-piece look-ahead.
type QueueConfig struct {
	Lookahead int `yaml:"lookahead"`
}

// GravityConfig defines how often the engine ticks.
// Rates are engine ticks per second; the platform converts them
// to simulation ticks using the runtime tick rate.
type GravityConfig struct {
	NormalRate        int `yaml:"normal_rate"`
	SoftDropBonus     int `yaml:"soft_drop_bonus"`
	SoftDropHoldTicks int `yaml:"soft_drop_hold_ticks"`
}

// Minimum playfield edge; smaller boards cannot fit a 5x5 spawn frame sensibly.
const minBoardSize = 4

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < minBoardSize:
		return fmt.Errorf("%w: board.width must be at least %d, got %d", ErrInvalidConfig, minBoardSize, c.Board.Width)
	case c.Board.Height < minBoardSize:
		return fmt.Errorf("%w: board.height must be at least %d, got %d", ErrInvalidConfig, minBoardSize, c.Board.Height)
	case c.Queue.Lookahead < 0:
		return fmt.Errorf("%w: queue.lookahead must not be negative, got %d", ErrInvalidConfig, c.Queue.Lookahead)
	case c.Gravity.NormalRate <= 0:
		return fmt.Errorf("%w: gravity.normal_rate must be positive, got %d", ErrInvalidConfig, c.Gravity.NormalRate)
	case c.Gravity.SoftDropBonus < 0:
		return fmt.Errorf("%w: gravity.soft_drop_bonus must not be negative, got %d", ErrInvalidConfig, c.Gravity.SoftDropBonus)
	case c.Gravity.SoftDropHoldTicks < 0:
		return fmt.Errorf("%w: gravity.soft_drop_hold_ticks must not be negative, got %d", ErrInvalidConfig, c.Gravity.SoftDropHoldTicks)
	}
	return nil
}

// SoftDropRate returns the engine tick rate while soft drop is held.
func (c TetrisConfig) SoftDropRate() int {
	return c.Gravity.NormalRate + c.Gravity.SoftDropBonus
}
