package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/okhotin/piblocks/internal/platform/tui"
	"github.com/okhotin/piblocks/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryTop    bool
	flagHistoryBrowse bool
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously recorded runs",
	Long: `Display runs recorded by 'piblocks run' and 'piblocks play'.

By default the most recent runs are listed; --top orders them by event
count instead. --browse opens an interactive table.

Examples:
  piblocks history
  piblocks history --top --limit 5
  piblocks history --browse
  piblocks history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryTop, "top", false, "Order by event count instead of date")
	historyCmd.Flags().BoolVar(&flagHistoryBrowse, "browse", false, "Open the interactive history browser")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagHistoryBrowse {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.RunEntry
	if flagHistoryTop {
		runs, err = store.TopRuns(flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'piblocks run' to record the first one!")
		return
	}

	if flagHistoryTop {
		fmt.Println("Runs with the most collisions:")
	} else {
		fmt.Println("Recent runs:")
	}
	fmt.Println()

	// Print header
	fmt.Printf("  %-5s  %-10s  %-10s  %-8s  %-8s  %-8s  %-12s  %s\n",
		"ID", "Scenario", "M/m", "Events", "Bounces", "Impacts", "Min dt (s)", "Date")
	fmt.Printf("  %-5s  %-10s  %-10s  %-8s  %-8s  %-8s  %-12s  %s\n",
		"--", "--------", "---", "------", "-------", "-------", "----------", "----")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-10s  %-10g  %-8d  %-8d  %-8d  %-12.4g  %s\n",
			r.ID, r.Label, r.RightMass/r.LeftMass,
			r.Collisions, r.WallBounces, r.Impacts,
			r.SmallestInterval, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Aggregate footer
	stats, err := store.GetStats()
	if err == nil && stats.RunCount > 0 {
		fmt.Println()
		fmt.Printf("Total: %d runs, best %d collisions\n", stats.RunCount, stats.MaxCollisions)
	}
}
