package gradgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"
)

// Errors reported by State mutators.
var (
	// ErrMinimumStops signals that a removal was refused because the
	// gradient is already at its two-stop floor. It is a user-facing
	// condition, not a failure.
	ErrMinimumStops = errors.New("must have at least two color stops")
	// ErrInsufficientStops is returned when a replacement stop list has
	// fewer than two entries.
	ErrInsufficientStops = errors.New("gradient needs at least two color stops")
	// ErrInvalidColor is returned for colors that are not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("invalid hex color")
	// ErrUnknownKind is returned by ParseKind callers that require a match.
	ErrUnknownKind = errors.New("unknown gradient type")
)

// Value ranges enforced on every write.
const (
	MinStops    = 2
	MaxPosition = 100
	MaxAngle    = 360
	MaxOpacity  = 100

	// FallbackColor replaces colors that fail validation on load.
	FallbackColor = "#000000"

	// randomizeMaxStops bounds Randomize to 2..5 stops.
	randomizeMaxStops = 5
	// addStopMidpointLimit: AddStop places new stops at 50 while fewer
	// than this many stops exist.
	addStopMidpointLimit = 5
)

// Default gradient used at startup and as the decode fallback.
const (
	DefaultAngle   = 90
	DefaultOpacity = 100
)

// DefaultStops are the two stops of the startup gradient.
var DefaultStops = []StopSpec{
	{Color: "#4f46e5", Position: 0},
	{Color: "#ec4899", Position: 100},
}

var hexColorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}){1,2}$`)

// Kind is the shape of the color transition.
type Kind int

const (
	// Linear is a directional gradient along Angle.
	Linear Kind = iota
	// Radial is a circular gradient from the center; Angle is ignored.
	Radial
	// Conic rotates around the center starting at Angle.
	Conic
)

// Kinds lists every gradient kind in display order.
var Kinds = []Kind{Linear, Radial, Conic}

// String returns the short name: "linear", "radial" or "conic".
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Radial:
		return "radial"
	case Conic:
		return "conic"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token returns the CSS function name used in share tokens, e.g.
// "linear-gradient".
func (k Kind) Token() string {
	return k.String() + "-gradient"
}

// AngleApplicable reports whether the angle control affects this kind.
func (k Kind) AngleApplicable() bool {
	return k != Radial
}

// ParseKind accepts either the CSS function name ("conic-gradient") or the
// short name ("conic"), case-insensitively.
func ParseKind(s string) (Kind, bool) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-gradient")
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}
	return Linear, false
}

// ColorStop is one anchor of the gradient ramp.
type ColorStop struct {
	ID       int    `json:"id"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

// StopSpec is a stop without identity, as carried by tokens and presets.
type StopSpec struct {
	Color    string `json:"color"`
	Position int    `json:"position"`
}

// Rand is the source of randomness for AddStop and Randomize.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configures a State.
type Option func(*State)

// WithRand sets the random source. Tests pass a seeded source.
func WithRand(r Rand) Option {
	return func(s *State) {
		if r != nil {
			s.rng = r
		}
	}
}

// State is the canonical gradient model. The zero value is not usable;
// construct with NewState.
//
// A State always holds at least two stops, stop ids are unique, and every
// numeric field is within its legal range.
type State struct {
	kind    Kind
	stops   []ColorStop
	angle   int
	opacity int
	nextID  int
	rng     Rand
}

// NewState returns the default two-stop linear gradient.
func NewState(opts ...Option) *State {
	s := &State{
		kind:    Linear,
		angle:   DefaultAngle,
		opacity: DefaultOpacity,
		rng:     globalRand{},
	}
	for _, opt := range opts {
		opt(s)
	}
	// DefaultStops is valid, ReplaceStops cannot fail here.
	_ = s.ReplaceStops(DefaultStops)
	return s
}

// Kind returns the gradient kind.
func (s *State) Kind() Kind { return s.kind }

// Angle returns the angle in degrees.
func (s *State) Angle() int { return s.angle }

// Opacity returns the opacity percentage applied to every stop.
func (s *State) Opacity() int { return s.opacity }

// AngleApplicable reports whether the angle affects the current kind.
func (s *State) AngleApplicable() bool { return s.kind.AngleApplicable() }

// Len returns the number of stops.
func (s *State) Len() int { return len(s.stops) }

// Stops returns a copy of the stops in insertion order.
func (s *State) Stops() []ColorStop {
	return slices.Clone(s.stops)
}

// SortedStops returns a copy of the stops ordered by position. Stops
// sharing a position keep their insertion order.
func (s *State) SortedStops() []ColorStop {
	sorted := slices.Clone(s.stops)
	slices.SortStableFunc(sorted, func(a, b ColorStop) int {
		return a.Position - b.Position
	})
	return sorted
}

// Stop looks up a stop by id.
func (s *State) Stop(id int) (ColorStop, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return ColorStop{}, false
	}
	return s.stops[i], true
}

// Specs returns the stops in render order without ids.
func (s *State) Specs() []StopSpec {
	sorted := s.SortedStops()
	specs := make([]StopSpec, len(sorted))
	for i, stop := range sorted {
		specs[i] = StopSpec{Color: stop.Color, Position: stop.Position}
	}
	return specs
}

// AddStop appends a stop with a random color. While fewer than five stops
// exist it is placed at 50, otherwise at a random position.
func (s *State) AddStop() ColorStop {
	position := 50
	if len(s.stops) >= addStopMidpointLimit {
		position = s.rng.IntN(MaxPosition + 1)
	}
	stop := ColorStop{
		ID:       s.nextID,
		Color:    s.randomColor(),
		Position: position,
	}
	s.nextID++
	s.stops = append(s.stops, stop)
	return stop
}

// RemoveStop deletes the stop with the given id. It returns
// ErrMinimumStops, leaving the state untouched, when only two stops remain.
// An unknown id is a no-op.
func (s *State) RemoveStop(id int) error {
	if len(s.stops) <= MinStops {
		return ErrMinimumStops
	}
	if i := s.indexOf(id); i >= 0 {
		s.stops = slices.Delete(s.stops, i, i+1)
	}
	return nil
}

// UpdateStopColor replaces a stop's color. Unknown ids are ignored.
func (s *State) UpdateStopColor(id int, color string) error {
	canonical, ok := NormalizeHex(color)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	if i := s.indexOf(id); i >= 0 {
		s.stops[i].Color = canonical
	}
	return nil
}

// UpdateStopPosition moves a stop, clamping into [0,100]. Unknown ids are
// ignored.
func (s *State) UpdateStopPosition(id, position int) {
	if i := s.indexOf(id); i >= 0 {
		s.stops[i].Position = clamp(position, 0, MaxPosition)
	}
}

// SetKind replaces the gradient kind.
func (s *State) SetKind(kind Kind) {
	if kind < Linear || kind > Conic {
		return
	}
	s.kind = kind
}

// SetAngle stores the angle clamped to [0,360].
func (s *State) SetAngle(angle int) {
	s.angle = clamp(angle, 0, MaxAngle)
}

// SetOpacity stores the opacity clamped to [0,100].
func (s *State) SetOpacity(opacity int) {
	s.opacity = clamp(opacity, 0, MaxOpacity)
}

// Randomize replaces the stops with an evenly spaced ramp of 2 to 5 random
// colors and picks a random kind. Repeating the previous kind is allowed.
func (s *State) Randomize() {
	n := s.rng.IntN(randomizeMaxStops-MinStops+1) + MinStops
	specs := make([]StopSpec, n)
	for i := range specs {
		position := 50
		if n > 1 {
			position = int(math.Round(float64(i) / float64(n-1) * 100))
		}
		specs[i] = StopSpec{Color: s.randomColor(), Position: position}
	}
	_ = s.ReplaceStops(specs)
	s.kind = Kinds[s.rng.IntN(len(Kinds))]
}

// ReplaceStops swaps in a whole new stop list and restarts ids at 1.
// Invalid colors become FallbackColor and positions are clamped.
func (s *State) ReplaceStops(specs []StopSpec) error {
	if len(specs) < MinStops {
		return fmt.Errorf("%w: got %d", ErrInsufficientStops, len(specs))
	}
	stops := make([]ColorStop, len(specs))
	for i, spec := range specs {
		color, ok := NormalizeHex(spec.Color)
		if !ok {
			color = FallbackColor
		}
		stops[i] = ColorStop{
			ID:       i + 1,
			Color:    color,
			Position: clamp(spec.Position, 0, MaxPosition),
		}
	}
	s.stops = stops
	s.nextID = len(stops) + 1
	return nil
}

// Clone returns an independent copy sharing the random source.
func (s *State) Clone() *State {
	c := *s
	c.stops = slices.Clone(s.stops)
	return &c
}

// Equal reports whether two states describe the same gradient: same kind,
// angle, opacity and the same stops in render order. Ids are ignored.
func (s *State) Equal(o *State) bool {
	if s.kind != o.kind || s.angle != o.angle || s.opacity != o.opacity {
		return false
	}
	return slices.Equal(s.Specs(), o.Specs())
}

func (s *State) indexOf(id int) int {
	return slices.IndexFunc(s.stops, func(c ColorStop) bool { return c.ID == id })
}

func (s *State) randomColor() string {
	return fmt.Sprintf("#%06x", s.rng.IntN(0xFFFFFF))
}

// NormalizeHex validates a #rgb or #rrggbb color and returns it lower-cased
// with shorthand expanded to six digits.
func NormalizeHex(color string) (string, bool) {
	if !hexColorPattern.MatchString(color) {
		return "", false
	}
	color = strings.ToLower(color)
	if len(color) == 4 {
		color = string([]byte{'#', color[1], color[1], color[2], color[2], color[3], color[3]})
	}
	return color, true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
