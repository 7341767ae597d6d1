package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okhotin/piblocks/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in scenarios",
	Long:  `Shows all named scenario presets and the event counts they produce.`,
	Run:   runPresets,
}

func runPresets(cmd *cobra.Command, args []string) {
	presets := config.ListPresets()

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
		if len(p.Title) > maxTitleLen {
			maxTitleLen = len(p.Title)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, p := range presets {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'piblocks play --preset <id>' to watch one.")
}
