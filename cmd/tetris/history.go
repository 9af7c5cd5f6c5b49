package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recorded sessions",
	Long: `Display the most recent sessions, newest first, followed by per-variant totals.
Without a variant, sessions of every variant are listed.

Examples:
  tetris history
  tetris history tetris_classic
  tetris history --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
}

func runHistory(_ *cobra.Command, args []string) {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions, err := store.RecentSessions(variant, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetris play' and finish a game to record one.")
		return
	}

	fmt.Println("Recent sessions")
	fmt.Println()
	fmt.Printf("  %-16s  %-14s  %-10s  %6s  %5s  %8s  %s\n",
		"Date", "Variant", "Player", "Pieces", "Rows", "Time", "Seed")
	fmt.Printf("  %-16s  %-14s  %-10s  %6s  %5s  %8s  %s\n",
		"----", "-------", "------", "------", "----", "----", "----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-14s  %-10s  %6d  %5d  %8s  %d\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Variant,
			s.Player,
			s.PiecesLocked,
			s.RowsCleared,
			tui.FormatDuration(s.Duration),
			s.Seed,
		)
	}

	stats, err := store.VariantStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Totals")
	fmt.Println()
	ids := make([]string, 0, len(stats))
	for id := range stats {
		if variant == "" || id == variant {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		vs := stats[id]
		fmt.Printf("  %-14s  %d sessions, %d pieces, %d rows, %s played\n",
			id, vs.Sessions, vs.TotalPieces, vs.TotalRows, tui.FormatDuration(vs.TotalDuration))
	}
}
