package termui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Ramp samples the gradient at width evenly spaced points and returns one
// hex color per cell. stops must be sorted by position. Points before the
// first or after the last stop take that stop's color.
func Ramp(stops []Swatch, width int) []string {
	if width <= 0 || len(stops) == 0 {
		return nil
	}
	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s.Hex)
		if err != nil {
			c = colorful.Color{}
		}
		colors[i] = c
	}

	cells := make([]string, width)
	for x := range cells {
		t := 50.0
		if width > 1 {
			t = float64(x) / float64(width-1) * 100
		}
		cells[x] = sample(stops, colors, t).Hex()
	}
	return cells
}

func sample(stops []Swatch, colors []colorful.Color, t float64) colorful.Color {
	if t <= float64(stops[0].Position) {
		return colors[0]
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := float64(stops[i-1].Position), float64(stops[i].Position)
		if t > hi {
			continue
		}
		if hi == lo {
			return colors[i]
		}
		return colors[i-1].BlendRgb(colors[i], (t-lo)/(hi-lo))
	}
	return colors[len(colors)-1]
}

// RenderRamp draws the gradient as a row of colored cells. Without colors
// it falls back to listing the stops.
func RenderRamp(stops []Swatch, width int, useColors bool) string {
	if !useColors {
		parts := make([]string, len(stops))
		for i, s := range stops {
			parts[i] = fmt.Sprintf("%s %d%%", s.Hex, s.Position)
		}
		return "[" + strings.Join(parts, " → ") + "]"
	}
	var sb strings.Builder
	for _, hex := range Ramp(stops, width) {
		sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(" "))
	}
	return sb.String()
}

// Chip renders a small color sample for one stop.
func Chip(hex string, useColors bool) string {
	if !useColors {
		return hex
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + hex
}
