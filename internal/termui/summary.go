package termui

import "github.com/yacobolo/gradgen"

// Swatches converts a state's stops, sorted by position.
func Swatches(s *gradgen.State) []Swatch {
	stops := s.SortedStops()
	swatches := make([]Swatch, len(stops))
	for i, stop := range stops {
		swatches[i] = Swatch{Hex: stop.Color, Position: stop.Position}
	}
	return swatches
}

// Summarize builds the reporter view of a state.
func Summarize(s *gradgen.State) Summary {
	rendered := gradgen.Render(s)
	return Summary{
		Kind:            s.Kind().String(),
		Angle:           s.Angle(),
		AngleApplicable: s.AngleApplicable(),
		Opacity:         s.Opacity(),
		Stops:           Swatches(s),
		Function:        rendered.Function,
		Declaration:     rendered.Declaration,
	}
}
