// Package cssparse reads CSS gradient functions back into plain values.
package cssparse

// ParsedGradient is a gradient function read back from CSS text.
type ParsedGradient struct {
	Function string // "linear-gradient", "radial-gradient", "conic-gradient"
	Angle    float64
	HasAngle bool // false when the prelude names no direction
	Stops    []ParsedStop
}

// ParsedStop is one color stop of a ParsedGradient.
type ParsedStop struct {
	Hex         string  // "#4f46e5"
	Alpha       float64 // 0..1, 1 when the color has no alpha
	Position    float64 // percent, filled in when HasPosition is false
	HasPosition bool
}
