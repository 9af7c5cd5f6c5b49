package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default game configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Queue: QueueConfig{
			Lookahead: 3,
		},
		Gravity: GravityConfig{
			NormalRate:        2,
			SoftDropBonus:     8,
			SoftDropHoldTicks: 12, // ~200ms at 60fps, longer than key auto-repeat delay
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
