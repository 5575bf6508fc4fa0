package cssparse

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// token is a lexer token with whitespace and comments already dropped.
type token struct {
	tt   css.TokenType
	text string
}

// sideAngles maps "to <side>" keywords, sorted, to their angle.
var sideAngles = map[string]float64{
	"top":          0,
	"right top":    45,
	"right":        90,
	"bottom right": 135,
	"bottom":       180,
	"bottom left":  225,
	"left":         270,
	"left top":     315,
}

// ParseGradient reads the first linear, radial or conic gradient function
// in text. text may be the bare function, a background-image declaration,
// or a whole rule.
func ParseGradient(text string) (*ParsedGradient, error) {
	tokens := tokenize(text)

	start := slices.IndexFunc(tokens, func(t token) bool {
		return t.tt == css.FunctionToken && gradientFunction(t.text) != ""
	})
	if start < 0 {
		return nil, errors.New("no gradient function found")
	}

	g := &ParsedGradient{Function: gradientFunction(tokens[start].text)}

	args, err := splitArgs(tokens[start+1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.Function, err)
	}

	for i, arg := range args {
		if len(arg) == 0 {
			return nil, fmt.Errorf("%s: empty argument %d", g.Function, i+1)
		}
		if i == 0 && !isColorStart(arg[0]) {
			if err := g.parsePrelude(arg); err != nil {
				return nil, fmt.Errorf("%s: %w", g.Function, err)
			}
			continue
		}
		stop, err := parseStop(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: stop %d: %w", g.Function, len(g.Stops)+1, err)
		}
		g.Stops = append(g.Stops, stop)
	}

	fillPositions(g.Stops)
	return g, nil
}

func tokenize(text string) []token {
	lexer := css.NewLexer(parse.NewInputString(text))
	var tokens []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, token{tt: tt, text: string(data)})
	}
	return tokens
}

// gradientFunction returns the canonical function name for a FunctionToken
// such as "-webkit-linear-gradient(", or "" for other functions.
func gradientFunction(text string) string {
	name := strings.TrimSuffix(strings.ToLower(text), "(")
	name = strings.TrimPrefix(name, "-webkit-")
	switch name {
	case "linear-gradient", "radial-gradient", "conic-gradient":
		return name
	}
	return ""
}

// splitArgs splits tokens following a function token into comma separated
// arguments, stopping at the function's closing parenthesis.
func splitArgs(tokens []token) ([][]token, error) {
	var args [][]token
	var current []token
	depth := 0
	for _, t := range tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth == 0 {
				return append(args, current), nil
			}
			depth--
		case css.CommaToken:
			if depth == 0 {
				args = append(args, current)
				current = nil
				continue
			}
		}
		current = append(current, t)
	}
	return nil, errors.New("unterminated function")
}

func isColorStart(t token) bool {
	if t.tt == css.HashToken {
		return true
	}
	if t.tt == css.FunctionToken {
		name := strings.ToLower(t.text)
		return name == "rgb(" || name == "rgba("
	}
	return false
}

// parsePrelude reads the direction argument: "90deg", "to right",
// "from 45deg", "circle" or "ellipse at center".
func (g *ParsedGradient) parsePrelude(arg []token) error {
	for i := 0; i < len(arg); i++ {
		t := arg[i]
		switch {
		case t.tt == css.DimensionToken:
			angle, err := parseAngle(t.text)
			if err != nil {
				return err
			}
			g.Angle, g.HasAngle = angle, true
		case t.tt == css.IdentToken && strings.EqualFold(t.text, "to"):
			var sides []string
			for i+1 < len(arg) && arg[i+1].tt == css.IdentToken {
				i++
				sides = append(sides, strings.ToLower(arg[i].text))
			}
			slices.Sort(sides)
			angle, ok := sideAngles[strings.Join(sides, " ")]
			if !ok {
				return fmt.Errorf("unknown direction %q", "to "+strings.Join(sides, " "))
			}
			g.Angle, g.HasAngle = angle, true
		}
	}
	return nil
}

func parseAngle(text string) (float64, error) {
	lower := strings.ToLower(text)
	for _, unit := range []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 360.0 / 400},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	} {
		if num, ok := strings.CutSuffix(lower, unit.suffix); ok {
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("bad angle %q", text)
			}
			return v * unit.scale, nil
		}
	}
	return 0, fmt.Errorf("unsupported angle unit in %q", text)
}

func parseStop(arg []token) (ParsedStop, error) {
	stop := ParsedStop{Alpha: 1}
	rest := arg[1:]

	switch first := arg[0]; {
	case first.tt == css.HashToken:
		c, err := colorful.Hex(strings.ToLower(first.text))
		if err != nil {
			return stop, fmt.Errorf("bad hex color %q", first.text)
		}
		stop.Hex = c.Hex()
	case isColorStart(first):
		end := slices.IndexFunc(rest, func(t token) bool { return t.tt == css.RightParenthesisToken })
		if end < 0 {
			return stop, errors.New("unterminated rgb()")
		}
		hex, alpha, err := parseRGB(rest[:end])
		if err != nil {
			return stop, err
		}
		stop.Hex, stop.Alpha = hex, alpha
		rest = rest[end+1:]
	default:
		return stop, fmt.Errorf("unsupported color %q", first.text)
	}

	for _, t := range rest {
		if t.tt == css.PercentageToken {
			v, err := strconv.ParseFloat(strings.TrimSuffix(t.text, "%"), 64)
			if err != nil {
				return stop, fmt.Errorf("bad position %q", t.text)
			}
			stop.Position, stop.HasPosition = v, true
			// A second position (double-position stop) is ignored.
			break
		}
	}
	return stop, nil
}

// parseRGB reads the channel list of rgb()/rgba() in either the comma or
// the space and slash syntax.
func parseRGB(args []token) (string, float64, error) {
	var values []float64
	var percent []bool
	for _, t := range args {
		switch t.tt {
		case css.NumberToken:
			v, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return "", 0, fmt.Errorf("bad channel %q", t.text)
			}
			values = append(values, v)
			percent = append(percent, false)
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(t.text, "%"), 64)
			if err != nil {
				return "", 0, fmt.Errorf("bad channel %q", t.text)
			}
			values = append(values, v)
			percent = append(percent, true)
		case css.CommaToken, css.DelimToken:
		default:
			return "", 0, fmt.Errorf("unexpected %q in rgb()", t.text)
		}
	}
	if len(values) != 3 && len(values) != 4 {
		return "", 0, fmt.Errorf("rgb() needs 3 or 4 values, got %d", len(values))
	}

	var channels [3]float64
	for i := range channels {
		v := values[i]
		if percent[i] {
			v = v * 255 / 100
		}
		channels[i] = math.Max(0, math.Min(255, v)) / 255
	}
	alpha := 1.0
	if len(values) == 4 {
		alpha = values[3]
		if percent[3] {
			alpha /= 100
		}
		alpha = math.Max(0, math.Min(1, alpha))
	}
	return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}.Hex(), alpha, nil
}

// fillPositions assigns positions to stops that omit them: the first
// defaults to 0, the last to 100, and runs in between are spread evenly
// between their neighbors.
func fillPositions(stops []ParsedStop) {
	if len(stops) == 0 {
		return
	}
	if !stops[0].HasPosition {
		stops[0].Position, stops[0].HasPosition = 0, true
	}
	last := len(stops) - 1
	if !stops[last].HasPosition {
		stops[last].Position, stops[last].HasPosition = 100, true
	}
	prev := 0
	for i := 1; i <= last; i++ {
		if !stops[i].HasPosition {
			continue
		}
		if gap := i - prev; gap > 1 {
			from, to := stops[prev].Position, stops[i].Position
			for j := prev + 1; j < i; j++ {
				stops[j].Position = from + (to-from)*float64(j-prev)/float64(gap)
				stops[j].HasPosition = true
			}
		}
		prev = i
	}
}
