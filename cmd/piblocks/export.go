package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okhotin/piblocks/internal/config"
	"github.com/okhotin/piblocks/internal/physics"
)

var (
	flagExportConfig  string
	flagExportPreset  string
	flagExportFormat  string
	flagExportOut     string
	flagExportSampled bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a run's trajectory data",
	Long: `Run the simulation and export its trajectory data.

Formats:
  csv   - One row per event: time, position, velocity, momentum of each box
  json  - Scenario, result summary, and the full event history
  yaml  - Scenario and result summary (no event history)

With --sampled the CSV holds interpolated per-frame positions instead of
events, ready for plotting.

Examples:
  piblocks export
  piblocks export --preset heavy --format json --out heavy.json
  piblocks export --sampled --out frames.csv`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportConfig, "config", "", "Path to custom scenario YAML")
	exportCmd.Flags().StringVar(&flagExportPreset, "preset", "", "Built-in scenario preset (see 'piblocks presets')")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "csv", "Output format: csv, json, yaml")
	exportCmd.Flags().StringVar(&flagExportOut, "out", "-", "Output file (- = stdout)")
	exportCmd.Flags().BoolVar(&flagExportSampled, "sampled", false, "Export interpolated per-frame positions (CSV only)")
}

// exportEvent is one history entry in the JSON export.
type exportEvent struct {
	Time          float64 `json:"time"`
	LeftPosition  float64 `json:"left_position"`
	LeftVelocity  float64 `json:"left_velocity"`
	LeftMomentum  float64 `json:"left_momentum"`
	RightPosition float64 `json:"right_position"`
	RightVelocity float64 `json:"right_velocity"`
	RightMomentum float64 `json:"right_momentum"`
}

// exportSummary is the result section of the JSON and YAML exports.
type exportSummary struct {
	Collisions       int     `json:"collisions" yaml:"collisions"`
	WallBounces      int     `json:"wall_bounces" yaml:"wall_bounces"`
	Impacts          int     `json:"impacts" yaml:"impacts"`
	SmallestInterval float64 `json:"smallest_interval" yaml:"smallest_interval"`
}

func runExport(cmd *cobra.Command, args []string) {
	cfg, label, err := loadScenario(flagExportConfig, flagExportPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	left, right, res, err := simulate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if flagExportOut != "-" && flagExportOut != "" {
		f, createErr := os.Create(flagExportOut)
		if createErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", flagExportOut, createErr)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch flagExportFormat {
	case "csv":
		if flagExportSampled {
			err = exportSampledCSV(out, cfg, left, right)
		} else {
			err = exportEventsCSV(out, left, right)
		}
	case "json":
		err = exportJSON(out, label, cfg, left, right, res)
	case "yaml":
		err = exportYAML(out, label, cfg, res)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want csv, json, or yaml)\n", flagExportFormat)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		os.Exit(1)
	}
}

// exportEventsCSV writes one row per recorded event.
func exportEventsCSV(out io.Writer, left, right *physics.Body) error {
	w := csv.NewWriter(out)

	header := []string{
		"time",
		"left_position", "left_velocity", "left_momentum",
		"right_position", "right_velocity", "right_momentum",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	times := left.Times()
	for i := range times {
		row := []string{
			formatFloat(times[i]),
			formatFloat(left.Positions()[i]), formatFloat(left.Velocities()[i]), formatFloat(left.Momenta()[i]),
			formatFloat(right.Positions()[i]), formatFloat(right.Velocities()[i]), formatFloat(right.Momenta()[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// exportSampledCSV writes one row per interpolated playback frame.
func exportSampledCSV(out io.Writer, cfg config.ScenarioConfig, left, right *physics.Body) error {
	traj, err := physics.SampleTail(left, right, cfg.Animation.FPS, cfg.Animation.TailSeconds)
	if err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"frame", "seconds", "left_position", "right_position"}); err != nil {
		return err
	}

	for frame := 0; frame < traj.Frames(); frame++ {
		l, r := traj.At(frame)
		row := []string{
			strconv.Itoa(frame),
			formatFloat(float64(frame) / float64(traj.FPS)),
			formatFloat(l),
			formatFloat(r),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// exportJSON writes the scenario, the summary, and the full event history.
func exportJSON(out io.Writer, label string, cfg config.ScenarioConfig, left, right *physics.Body, res *physics.Result) error {
	times := left.Times()
	events := make([]exportEvent, len(times))
	for i := range times {
		events[i] = exportEvent{
			Time:          times[i],
			LeftPosition:  left.Positions()[i],
			LeftVelocity:  left.Velocities()[i],
			LeftMomentum:  left.Momenta()[i],
			RightPosition: right.Positions()[i],
			RightVelocity: right.Velocities()[i],
			RightMomentum: right.Momenta()[i],
		}
	}

	doc := struct {
		Label    string                `json:"label"`
		Scenario config.ScenarioConfig `json:"scenario"`
		Result   exportSummary         `json:"result"`
		Events   []exportEvent         `json:"events"`
	}{
		Label:    label,
		Scenario: cfg,
		Result: exportSummary{
			Collisions:       res.Collisions,
			WallBounces:      res.WallBounces,
			Impacts:          res.Impacts,
			SmallestInterval: res.SmallestInterval,
		},
		Events: events,
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// exportYAML writes a scenario snapshot with the result summary, suitable
// as a starting point for a custom --config file.
func exportYAML(out io.Writer, label string, cfg config.ScenarioConfig, res *physics.Result) error {
	doc := struct {
		Label    string                `yaml:"label"`
		Scenario config.ScenarioConfig `yaml:"scenario"`
		Result   exportSummary         `yaml:"result"`
	}{
		Label:    label,
		Scenario: cfg,
		Result: exportSummary{
			Collisions:       res.Collisions,
			WallBounces:      res.WallBounces,
			Impacts:          res.Impacts,
			SmallestInterval: res.SmallestInterval,
		},
	}

	enc := yaml.NewEncoder(out)
	defer enc.Close()
	return enc.Encode(doc)
}

// formatFloat renders a float compactly for CSV cells.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
