// Package termui renders gradients for terminals: lipgloss styles, the
// color ramp preview and the CLI reporter.
package termui

// Swatch is a stop as the terminal preview needs it.
type Swatch struct {
	Hex      string
	Position int
}

// Summary is everything the reporter prints for one gradient.
type Summary struct {
	Name            string // optional, e.g. preset name
	Kind            string // "linear"
	Angle           int
	AngleApplicable bool
	Opacity         int
	Stops           []Swatch // sorted by position
	Function        string
	Declaration     string
	ShareURL        string // optional
}
