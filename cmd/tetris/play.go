package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant. Without a variant, a menu lets you
pick one and returns to it after each game.

Controls:
  Left/h/a    - Move left
  Right/l/d   - Move right
  Up/k/w      - Rotate
  Down/j/s    - Soft drop
  Space       - Hard drop
  P           - Pause
  R           - Restart (after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Examples:
  tetris play
  tetris play tetris
  tetris play tetris_classic --seed 42
  tetris play tetris --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	if err := play(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(args []string) error {
	if _, err := config.LoadTetris(flagConfig); err != nil {
		return err
	}
	tetris.SetConfigPath(flagConfig)

	logger, closeLog := openPlayLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		logger.Warn("could not open history database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	opts := []tui.GameOption{
		tui.WithStore(store),
		tui.WithLogger(logger),
		tui.WithPlayer(playerName()),
	}

	if len(args) == 1 {
		return playVariant(args[0], cfg, opts)
	}
	return runMenuLoop(store, cfg, opts)
}

// runMenuLoop alternates between the menu, the history browser and games
// until the user quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig, opts []tui.GameOption) error {
	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsHistory:
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				return histErr
			}
			if !goBack {
				return nil
			}

		default:
			// A zero seed gives every game from the menu a fresh one.
			if err := playVariant(result.GameID, cfg, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

func playVariant(id string, cfg core.RuntimeConfig, opts []tui.GameOption) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	if err := tui.Run(game, cfg, opts...); err != nil {
		return fmt.Errorf("running %s: %w", id, err)
	}
	return nil
}

// openPlayLogger writes session logs to ~/.tetris/tetris.log, since the
// terminal belongs to Bubble Tea while playing.
func openPlayLogger() (*log.Logger, func()) {
	discard := func() (*log.Logger, func()) {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return discard()
	}
	dir := filepath.Join(home, ".tetris")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard()
	}
	f, err := os.OpenFile(filepath.Join(dir, "tetris.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard()
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "tetris",
	})
	return logger, func() { f.Close() }
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
