package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okhotin/piblocks/internal/config"
	"github.com/okhotin/piblocks/internal/physics"
	"github.com/okhotin/piblocks/internal/storage"
)

var (
	flagRunConfig    string
	flagRunPreset    string
	flagRunMaxEvents int
	flagRunNoSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation and print the report",
	Long: `Run the collision simulation headless and print the event counts.

The scenario comes from --config, --preset, or the default classic setup
(1 kg vs 100 kg, which produces 31 collisions). The run is recorded in
the history database unless --no-save is given.

Examples:
  piblocks run
  piblocks run --preset colossal
  piblocks run --config ./my-scenario.yaml
  piblocks run --preset heavy --no-save`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunConfig, "config", "", "Path to custom scenario YAML")
	runCmd.Flags().StringVar(&flagRunPreset, "preset", "", "Built-in scenario preset (see 'piblocks presets')")
	runCmd.Flags().IntVar(&flagRunMaxEvents, "max-events", 0, "Override event cap (0 = from scenario)")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not record the run in the history database")
}

// loadScenario resolves the scenario from flags: an explicit config file,
// a named preset applied on top of the loaded config, or the defaults.
// Returns the scenario and a label for reports and history entries.
func loadScenario(configPath, preset string) (config.ScenarioConfig, string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, "", err
	}

	label := "classic"
	if configPath != "" {
		label = "custom"
	}
	if preset != "" {
		if !config.PresetExists(preset) {
			return cfg, "", fmt.Errorf("unknown preset %q, run 'piblocks presets' to see available ones", preset)
		}
		if err := config.ApplyPreset(&cfg, preset); err != nil {
			return cfg, "", err
		}
		label = preset
	}

	return cfg, label, nil
}

// simulate runs the engine for the scenario and returns the bodies with
// their full histories alongside the result.
func simulate(cfg config.ScenarioConfig) (left, right *physics.Body, res *physics.Result, err error) {
	left, right, err = cfg.Bodies()
	if err != nil {
		return nil, nil, nil, err
	}
	res, err = physics.Run(left, right, cfg.Wall, cfg.Options())
	if err != nil {
		return nil, nil, nil, err
	}
	return left, right, res, nil
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, label, err := loadScenario(flagRunConfig, flagRunPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagRunMaxEvents > 0 {
		cfg.Limits.MaxEvents = flagRunMaxEvents
	}

	_, _, res, err := simulate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printReport(label, cfg, res)

	if flagRunNoSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.NewRunEntry(label, cfg, res))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Printf("Recorded as run #%d\n", id)
}
