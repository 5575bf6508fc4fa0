package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/gradgen"
)

// addGradientFlags registers the flags that adjust the input gradient.
func addGradientFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("type", "", "Gradient type: linear|radial|conic")
	f.Int("angle", gradgen.DefaultAngle, "Angle in degrees (linear and conic)")
	f.Int("opacity", gradgen.DefaultOpacity, "Opacity percent applied to every stop")
	f.StringArray("stop", nil, `Color stop as "#hex@position", repeatable; replaces all stops`)
}

// addFormatFlags registers the output selection flags.
func addFormatFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("format", "", "Output format: css|function|rule|token|url|json")
	f.String("selector", ".gradient", "Selector for --format rule")
}

// readInput returns the positional argument, reading it from stdin when it
// is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	if args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// readToken resolves the argument to a share token. Page URLs and bare
// query strings give up their gradient parameter.
func readToken(cmd *cobra.Command, args []string) (string, error) {
	arg, err := readInput(cmd, args)
	if err != nil || arg == "" {
		return "", err
	}
	if strings.Contains(arg, "://") || strings.HasPrefix(arg, "?") {
		token, ok := gradgen.TokenFromURL(arg)
		if !ok {
			return "", fmt.Errorf("no %s parameter in %s", gradgen.QueryParam, arg)
		}
		return token, nil
	}
	return arg, nil
}

// readGradient decodes the optional token argument (the default gradient
// when absent) and applies the gradient flags on top.
func readGradient(cmd *cobra.Command, args []string, opts ...gradgen.Option) (*gradgen.State, error) {
	token, err := readToken(cmd, args)
	if err != nil {
		return nil, err
	}

	state := gradgen.NewState(opts...)
	if token != "" {
		if state, err = gradgen.Decode(token, opts...); err != nil {
			return nil, fmt.Errorf("decode gradient: %w", err)
		}
	}

	if err := applyGradientFlags(cmd, state); err != nil {
		return nil, err
	}
	return state, nil
}

// applyGradientFlags applies only the gradient flags the user set.
func applyGradientFlags(cmd *cobra.Command, state *gradgen.State) error {
	f := cmd.Flags()
	if f.Lookup("type") == nil {
		return nil
	}

	if f.Changed("type") {
		v, _ := f.GetString("type")
		kind, ok := gradgen.ParseKind(v)
		if !ok {
			return fmt.Errorf("%w: %q", gradgen.ErrUnknownKind, v)
		}
		state.SetKind(kind)
	}
	if f.Changed("angle") {
		v, _ := f.GetInt("angle")
		state.SetAngle(v)
	}
	if f.Changed("opacity") {
		v, _ := f.GetInt("opacity")
		state.SetOpacity(v)
	}
	if f.Changed("stop") {
		raw, _ := f.GetStringArray("stop")
		specs, err := parseStopFlags(raw)
		if err != nil {
			return err
		}
		if err := state.ReplaceStops(specs); err != nil {
			return err
		}
	}
	return nil
}

// parseStopFlags parses "#hex@position" values. Stops without a position
// are spread evenly by their index.
func parseStopFlags(raw []string) ([]gradgen.StopSpec, error) {
	specs := make([]gradgen.StopSpec, len(raw))
	for i, r := range raw {
		color, pos, hasPos := strings.Cut(strings.TrimSpace(r), "@")
		canonical, ok := gradgen.NormalizeHex(color)
		if !ok {
			return nil, fmt.Errorf("stop %q: %w", r, gradgen.ErrInvalidColor)
		}
		specs[i].Color = canonical

		switch {
		case hasPos:
			n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(pos), "%"))
			if err != nil {
				return nil, fmt.Errorf("stop %q: position must be an integer", r)
			}
			specs[i].Position = n
		case len(raw) > 1:
			specs[i].Position = int(math.Round(float64(i) / float64(len(raw)-1) * 100))
		}
	}
	return specs, nil
}

// writeGradient prints state in the --format selected, or defaultFormat.
func writeGradient(cmd *cobra.Command, state *gradgen.State, defaultFormat gradgen.OutputFormat) error {
	if quiet() {
		return nil
	}
	format := gradgen.DetermineOutputFormat(getStringWithFallback("format", "format", string(defaultFormat)))
	return gradgen.WriteOutput(cmd.OutOrStdout(), state, format, buildOutputConfig())
}

// decodeHint explains a decode failure in user terms.
func decodeHint(err error) string {
	switch {
	case errors.Is(err, gradgen.ErrMalformedEncoding):
		return "the token is not valid base64; check that the link was copied completely"
	case errors.Is(err, gradgen.ErrMalformedPayload):
		return "the token does not contain a gradient record"
	case errors.Is(err, gradgen.ErrInsufficientStops):
		return "a gradient needs at least two color stops"
	}
	return ""
}
