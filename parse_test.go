package gradgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSSRoundTrip(t *testing.T) {
	s := NewState(seeded())
	for range 25 {
		s.Randomize()
		s.SetAngle(s.rng.IntN(MaxAngle + 1))
		s.SetOpacity(s.rng.IntN(MaxOpacity + 1))
		if s.Kind() == Radial {
			// The angle is not part of radial output.
			s.SetAngle(DefaultAngle)
		}

		got, err := ParseCSS(Render(s).Declaration)
		require.NoError(t, err, Render(s).Declaration)
		assert.True(t, s.Equal(got), "%s", Render(s).Function)
	}
}

func TestParseCSS(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		kind    Kind
		angle   int
		opacity int
		stops   []StopSpec
	}{
		{
			name:    "direction keyword",
			css:     "linear-gradient(to right, #f00, #00f)",
			kind:    Linear,
			angle:   90,
			opacity: 100,
			stops:   []StopSpec{{"#ff0000", 0}, {"#0000ff", 100}},
		},
		{
			name:    "no direction points down",
			css:     "linear-gradient(#000 10%, #fff)",
			kind:    Linear,
			angle:   180,
			opacity: 100,
			stops:   []StopSpec{{"#000000", 10}, {"#ffffff", 100}},
		},
		{
			name:    "missing middle positions",
			css:     "background: linear-gradient(45deg, #111111 0%, #222222, #333333, #444444 90%);",
			kind:    Linear,
			angle:   45,
			opacity: 100,
			stops:   []StopSpec{{"#111111", 0}, {"#222222", 30}, {"#333333", 60}, {"#444444", 90}},
		},
		{
			name:    "rgb space syntax with alpha",
			css:     "linear-gradient(0.25turn, rgb(255 0 0 / 50%) 0%, rgb(0 0 255 / 50%) 100%)",
			kind:    Linear,
			angle:   90,
			opacity: 50,
			stops:   []StopSpec{{"#ff0000", 0}, {"#0000ff", 100}},
		},
		{
			name:    "ellipse radial",
			css:     ".hero { background-image: radial-gradient(ellipse at center, #fff 0%, #000 100%); }",
			kind:    Radial,
			angle:   DefaultAngle,
			opacity: 100,
			stops:   []StopSpec{{"#ffffff", 0}, {"#000000", 100}},
		},
		{
			name:    "conic without angle",
			css:     "conic-gradient(#f00, #0f0, #00f)",
			kind:    Conic,
			angle:   0,
			opacity: 100,
			stops:   []StopSpec{{"#ff0000", 0}, {"#00ff00", 50}, {"#0000ff", 100}},
		},
		{
			name:    "negative angle wraps",
			css:     "linear-gradient(-90deg, #000 0%, #fff 100%)",
			kind:    Linear,
			angle:   270,
			opacity: 100,
			stops:   []StopSpec{{"#000000", 0}, {"#ffffff", 100}},
		},
		{
			name:    "vendor prefix",
			css:     "-webkit-linear-gradient(to top, #000 0%, #fff 100%)",
			kind:    Linear,
			angle:   0,
			opacity: 100,
			stops:   []StopSpec{{"#000000", 0}, {"#ffffff", 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseCSS(tt.css)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind())
			assert.Equal(t, tt.angle, s.Angle())
			assert.Equal(t, tt.opacity, s.Opacity())
			assert.Equal(t, tt.stops, s.Specs())
		})
	}
}

func TestParseCSSErrors(t *testing.T) {
	for _, css := range []string{
		"color: red;",
		"linear-gradient(90deg, #fff 0%)",
		"linear-gradient(90deg, red 0%, blue 100%)",
		"linear-gradient(90deg, #fff 0%, #000 100%",
		"linear-gradient(to nowhere, #fff, #000)",
	} {
		_, err := ParseCSS(css)
		assert.ErrorIs(t, err, ErrUnparseableCSS, css)
	}
}
