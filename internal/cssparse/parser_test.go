package cssparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGradient(t *testing.T) {
	g, err := ParseGradient("background-image: conic-gradient(from 45deg, rgba(79, 70, 229, 0.40) 0%, #ec4899 100%);")
	require.NoError(t, err)

	assert.Equal(t, "conic-gradient", g.Function)
	assert.True(t, g.HasAngle)
	assert.InDelta(t, 45, g.Angle, 1e-9)
	require.Len(t, g.Stops, 2)
	assert.Equal(t, ParsedStop{Hex: "#4f46e5", Alpha: 0.4, Position: 0, HasPosition: true}, g.Stops[0])
	assert.Equal(t, ParsedStop{Hex: "#ec4899", Alpha: 1, Position: 100, HasPosition: true}, g.Stops[1])
}

func TestParseGradient_FirstFunctionWins(t *testing.T) {
	g, err := ParseGradient("background: url(a.png), radial-gradient(circle, #000, #fff), linear-gradient(#fff, #000);")
	require.NoError(t, err)
	assert.Equal(t, "radial-gradient", g.Function)
	assert.False(t, g.HasAngle)
}

func TestParsePrelude(t *testing.T) {
	tests := []struct {
		prelude string
		angle   float64
		has     bool
	}{
		{"90deg", 90, true},
		{"100grad", 90, true},
		{"0.5turn", 180, true},
		{"to top", 0, true},
		{"to right", 90, true},
		{"to bottom", 180, true},
		{"to left", 270, true},
		{"to top right", 45, true},
		{"to right top", 45, true},
		{"to bottom right", 135, true},
		{"to left bottom", 225, true},
		{"to top left", 315, true},
		{"circle", 0, false},
		{"ellipse at center", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.prelude, func(t *testing.T) {
			g, err := ParseGradient("linear-gradient(" + tt.prelude + ", #000, #fff)")
			require.NoError(t, err)
			assert.Equal(t, tt.has, g.HasAngle)
			assert.InDelta(t, tt.angle, g.Angle, 1e-9)
		})
	}
}

func TestParseAngle_Radians(t *testing.T) {
	v, err := parseAngle("3.14159265358979rad")
	require.NoError(t, err)
	assert.InDelta(t, 180, v, 1e-6)

	_, err = parseAngle("10px")
	assert.Error(t, err)
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		css   string
		hex   string
		alpha float64
	}{
		{"rgb(255, 0, 0)", "#ff0000", 1},
		{"rgba(0, 0, 255, 0.25)", "#0000ff", 0.25},
		{"rgb(0 128 0 / 50%)", "#008000", 0.5},
		{"rgb(100% 0% 0%)", "#ff0000", 1},
		{"rgba(300, -4, 0, 7)", "#ff0000", 1},
	}

	for _, tt := range tests {
		t.Run(tt.css, func(t *testing.T) {
			g, err := ParseGradient("linear-gradient(" + tt.css + ", #fff)")
			require.NoError(t, err)
			assert.Equal(t, tt.hex, g.Stops[0].Hex)
			assert.InDelta(t, tt.alpha, g.Stops[0].Alpha, 1e-9)
		})
	}
}

func TestFillPositions(t *testing.T) {
	g, err := ParseGradient("linear-gradient(#000, #111, #222 40%, #333, #444, #555)")
	require.NoError(t, err)

	var got []float64
	for _, s := range g.Stops {
		assert.True(t, s.HasPosition)
		got = append(got, s.Position)
	}
	assert.InDeltaSlice(t, []float64{0, 20, 40, 60, 80, 100}, got, 1e-9)
}

func TestParseGradient_DoublePosition(t *testing.T) {
	g, err := ParseGradient("linear-gradient(#000 10% 20%, #fff)")
	require.NoError(t, err)
	assert.InDelta(t, 10, g.Stops[0].Position, 1e-9)
}

func TestParseGradient_Errors(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want string
	}{
		{"no gradient", "color: #fff", "no gradient function"},
		{"unterminated", "linear-gradient(#000, #fff", "unterminated function"},
		{"empty argument", "linear-gradient(#000,, #fff)", "empty argument"},
		{"named color", "linear-gradient(#000, white)", "unsupported color"},
		{"bad direction", "linear-gradient(to middle, #000, #fff)", "unknown direction"},
		{"bad hex", "linear-gradient(#00, #fff)", "bad hex color"},
		{"short rgb", "linear-gradient(rgb(1, 2), #fff)", "needs 3 or 4 values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGradient(tt.css)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
