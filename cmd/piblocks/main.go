// piblocks is a terminal simulator of the colliding-blocks experiment:
// two frictionless boxes and a wall, where the number of elastic
// collisions spells out the digits of pi.
//
// Usage:
//
//	piblocks run                 - Run a simulation and print the report
//	piblocks play                - Run and watch the playback in the terminal
//	piblocks presets             - List the built-in scenarios
//	piblocks history             - Show previously recorded runs
//	piblocks export              - Export a run's trajectory data
//	piblocks serve               - Start SSH server for remote sessions
//
// Global flags:
//
//	--fps <rate>    - Override playback frame rate (0 = from scenario)
//	--db <path>     - Set database path (default: ~/.piblocks/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "piblocks",
	Short: "Count digits of pi with colliding blocks in your terminal",
	Long: `piblocks simulates two boxes sliding on a frictionless floor towards a
wall and counts their perfectly elastic collisions. With a mass ratio of
100^n the count spells out the first n+1 digits of pi.

Available commands:
  run      - Run a simulation headless and print the report
  play     - Watch the animated playback in the terminal
  presets  - List the built-in scenarios
  history  - Browse previously recorded runs
  export   - Export trajectory data as CSV, JSON, or YAML
  serve    - Start SSH server for remote sessions

Examples:
  piblocks run
  piblocks run --preset heavy
  piblocks play --preset equal
  piblocks play --interactive
  piblocks history --top
  piblocks export --preset classic --format json
  piblocks serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Playback frame rate (0 = from scenario config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.piblocks/runs.db", "Path to run history database")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}
