package gradgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/yacobolo/gradgen/internal/cssparse"
)

// ErrUnparseableCSS wraps every ParseCSS failure.
var ErrUnparseableCSS = errors.New("cannot parse gradient css")

// ParseCSS reads a gradient back from CSS text: a bare gradient function,
// a background-image declaration or a rule containing one. It accepts the
// output of Render as well as hand-written CSS using hex or rgb() colors,
// "to <side>" directions and omitted stop positions.
//
// Opacity is taken from the first stop's alpha. Angles outside [0,360] are
// wrapped onto the circle.
func ParseCSS(text string, opts ...Option) (*State, error) {
	parsed, err := cssparse.ParseGradient(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableCSS, err)
	}

	s := NewState(opts...)
	kind, _ := ParseKind(parsed.Function)
	s.SetKind(kind)

	specs := make([]StopSpec, len(parsed.Stops))
	for i, stop := range parsed.Stops {
		specs[i] = StopSpec{Color: stop.Hex, Position: int(math.Round(stop.Position))}
	}
	if err := s.ReplaceStops(specs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparseableCSS, err)
	}

	switch {
	case parsed.HasAngle:
		s.SetAngle(wrapAngle(parsed.Angle))
	case kind == Linear:
		// linear-gradient without a direction points "to bottom".
		s.SetAngle(180)
	case kind == Conic:
		s.SetAngle(0)
	}
	if len(parsed.Stops) > 0 {
		s.SetOpacity(int(math.Round(parsed.Stops[0].Alpha * 100)))
	}
	return s, nil
}

func wrapAngle(deg float64) int {
	a := int(math.Round(deg))
	if a >= 0 && a <= MaxAngle {
		return a
	}
	return ((a % 360) + 360) % 360
}
