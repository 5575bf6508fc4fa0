package gradgen

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Rendered is the CSS derived from a State.
type Rendered struct {
	Function    string // linear-gradient(90deg, rgba(...) 0%, ...)
	Declaration string // background-image: <Function>;
}

// Render derives CSS text from s. It does not modify s and returns the
// same output for the same state.
func Render(s *State) Rendered {
	alpha := fmt.Sprintf("%.2f", float64(s.opacity)/100)

	stops := s.SortedStops()
	parts := make([]string, len(stops))
	for i, stop := range stops {
		r, g, b := hexToRGB(stop.Color)
		parts[i] = fmt.Sprintf("rgba(%d, %d, %d, %s) %d%%", r, g, b, alpha, stop.Position)
	}
	joined := strings.Join(parts, ", ")

	var function string
	switch s.kind {
	case Radial:
		function = fmt.Sprintf("%s(circle, %s)", s.kind.Token(), joined)
	case Conic:
		function = fmt.Sprintf("%s(from %ddeg, %s)", s.kind.Token(), s.angle, joined)
	default:
		function = fmt.Sprintf("%s(%ddeg, %s)", Linear.Token(), s.angle, joined)
	}

	return Rendered{
		Function:    function,
		Declaration: "background-image: " + function + ";",
	}
}

// Rule wraps the declaration in a CSS rule for selector.
func (r Rendered) Rule(selector string) string {
	return fmt.Sprintf("%s {\n  %s\n}\n", selector, r.Declaration)
}

// hexToRGB splits a validated hex color into 0-255 channels. Stops in a
// State are always valid; anything else renders as black.
func hexToRGB(hex string) (uint8, uint8, uint8) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0
	}
	return c.RGB255()
}
