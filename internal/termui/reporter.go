package termui

import (
	"fmt"
	"io"
)

// DefaultRampWidth is the preview width in terminal cells.
const DefaultRampWidth = 48

// Reporter prints gradients and build results to a terminal.
type Reporter struct {
	w         io.Writer
	useColors bool
	rampWidth int
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: useColors,
		rampWidth: DefaultRampWidth,
	}
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintSummary outputs one gradient: preview ramp, settings, stops and CSS.
func (r *Reporter) PrintSummary(s Summary) {
	if s.Name != "" {
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, s.Name, r.useColors))
	}
	fmt.Fprintln(r.w, RenderRamp(s.Stops, r.rampWidth, r.useColors))
	fmt.Fprintln(r.w, "")

	fmt.Fprintf(r.w, "%s %s\n", r.label("Type:   "), s.Kind)
	if s.AngleApplicable {
		fmt.Fprintf(r.w, "%s %d°\n", r.label("Angle:  "), s.Angle)
	} else {
		fmt.Fprintf(r.w, "%s %s\n", r.label("Angle:  "), RenderStyle(StyleGray, "n/a", r.useColors))
	}
	fmt.Fprintf(r.w, "%s %d%%\n", r.label("Opacity:"), s.Opacity)
	fmt.Fprintf(r.w, "%s\n", r.label(pluralizeCount(len(s.Stops), "stop:", "stops:")))
	for _, stop := range s.Stops {
		fmt.Fprintf(r.w, "  %s %3d%%\n", Chip(stop.Hex, r.useColors), stop.Position)
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, s.Declaration)
	if s.ShareURL != "" {
		fmt.Fprintln(r.w, "")
		fmt.Fprintf(r.w, "%s %s\n", r.label("Share:"), s.ShareURL)
	}
}

// PrintWarnings outputs warnings collected while building.
func (r *Reporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, pluralizeCount(len(warnings), "warning:", "warnings:"), r.useColors))
	for _, w := range warnings {
		fmt.Fprintf(r.w, "  - %s\n", w)
	}
}

// PrintSuccess outputs a one-line success message.
func (r *Reporter) PrintSuccess(msg string) {
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, msg, r.useColors))
}

// PrintError outputs a one-line error message.
func (r *Reporter) PrintError(msg string) {
	fmt.Fprintln(r.w, RenderStyle(StyleRed, msg, r.useColors))
}

func (r *Reporter) label(text string) string {
	return RenderStyle(StyleCyan, text, r.useColors)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
