package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okhotin/piblocks/internal/config"
	"github.com/okhotin/piblocks/internal/physics"
)

// superscripts maps exponent characters to their superscript forms for
// scientific notation output.
var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻',
}

// formatScientific renders a value in human-friendly notation: plain
// digits for moderate magnitudes, mantissa·10ⁿ otherwise.
func formatScientific(v float64) string {
	if v == 0 {
		return "0"
	}
	if av := math.Abs(v); av >= 0.001 && av < 10000 {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}

	s := strconv.FormatFloat(v, 'e', 3, 64)
	mantissa, exponent, _ := strings.Cut(s, "e")
	mantissa = strings.TrimRight(mantissa, "0")
	mantissa = strings.TrimRight(mantissa, ".")

	var sup strings.Builder
	leading := true
	for _, r := range exponent {
		if r == '+' {
			continue
		}
		if r == '0' && leading {
			continue
		}
		if r != '-' {
			leading = false
		}
		sup.WriteRune(superscripts[r])
	}

	return mantissa + "·10" + sup.String()
}

// printReport writes the run summary to stdout.
func printReport(label string, cfg config.ScenarioConfig, res *physics.Result) {
	fmt.Printf("Collision report — %s\n", label)
	fmt.Println()
	fmt.Printf("  Wall:       x = %s m\n", formatScientific(cfg.Wall))
	fmt.Printf("  Left box:   m = %s kg, x0 = %s m, v0 = %s m/s, l = %s m\n",
		formatScientific(cfg.Left.Mass), formatScientific(cfg.Left.Position),
		formatScientific(cfg.Left.Velocity), formatScientific(cfg.Left.Length))
	fmt.Printf("  Right box:  m = %s kg, x0 = %s m, v0 = %s m/s, l = %s m\n",
		formatScientific(cfg.Right.Mass), formatScientific(cfg.Right.Position),
		formatScientific(cfg.Right.Velocity), formatScientific(cfg.Right.Length))
	fmt.Println()
	fmt.Printf("  Collisions:         %d (%d wall bounces, %d impacts)\n",
		res.Collisions, res.WallBounces, res.Impacts)
	fmt.Printf("  Smallest interval:  %s s\n", formatScientific(res.SmallestInterval))
	fmt.Printf("  Compute time:       %s\n", res.Elapsed)
	fmt.Println()
	fmt.Printf("  Final left:   %s\n", res.Left)
	fmt.Printf("  Final right:  %s\n", res.Right)
}
