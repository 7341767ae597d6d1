package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/okhotin/piblocks/internal/core"
	"github.com/okhotin/piblocks/internal/physics"
	"github.com/okhotin/piblocks/internal/platform/tui"
	"github.com/okhotin/piblocks/internal/storage"
)

var (
	flagPlayConfig      string
	flagPlayPreset      string
	flagPlayInteractive bool
	flagPlayNoSave      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run a simulation and watch the playback",
	Long: `Run the collision simulation and replay it as an animation.

Controls:
  Space/P    - Pause
  R          - Restart playback
  +/-        - Speed up / slow down
  B/Esc      - Back (leave playback)
  Q/Ctrl+C   - Quit

With --interactive a form opens first where every scenario parameter can
be edited before the run starts.

Examples:
  piblocks play
  piblocks play --preset equal
  piblocks play --interactive
  piblocks play --config ./my-scenario.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayConfig, "config", "", "Path to custom scenario YAML")
	playCmd.Flags().StringVar(&flagPlayPreset, "preset", "", "Built-in scenario preset (see 'piblocks presets')")
	playCmd.Flags().BoolVar(&flagPlayInteractive, "interactive", false, "Edit scenario parameters in a form first")
	playCmd.Flags().BoolVar(&flagPlayNoSave, "no-save", false, "Do not record the run in the history database")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, label, err := loadScenario(flagPlayConfig, flagPlayPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Animation.FPS = flagFPS
	}

	if flagPlayInteractive {
		edited, formErr := tui.RunForm(cfg)
		if formErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", formErr)
			os.Exit(1)
		}
		// User backed out of the form
		if edited == nil {
			return
		}
		cfg = *edited
		label = "custom"
	}

	left, right, res, err := simulate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	traj, err := physics.SampleTail(left, right, cfg.Animation.FPS, cfg.Animation.TailSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size for the playback screen
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rtCfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		FPS:     cfg.Animation.FPS,
	}

	// Record the run before playback so a quit mid-animation loses nothing
	if !flagPlayNoSave {
		if store, storeErr := storage.Open(flagDBPath); storeErr == nil {
			//nolint:errcheck // Best-effort save
			store.SaveRun(storage.NewRunEntry(label, cfg, res))
			store.Close()
		}
	}

	if err := tui.RunPlayer(traj, res, cfg.Wall, label, rtCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running playback: %v\n", err)
		os.Exit(1)
	}

	printReport(label, cfg, res)
}
