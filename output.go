package gradgen

import (
	"fmt"
	"io"
)

// OutputFormat selects what WriteOutput prints for a gradient.
type OutputFormat string

const (
	// OutputCSS prints the background-image declaration (default).
	OutputCSS OutputFormat = "css"
	// OutputFunction prints the bare gradient function.
	OutputFunction OutputFormat = "function"
	// OutputRule prints a full CSS rule for OutputConfig.Selector.
	OutputRule OutputFormat = "rule"
	// OutputToken prints the share token.
	OutputToken OutputFormat = "token"
	// OutputURL prints the share URL on OutputConfig.BaseURL.
	OutputURL OutputFormat = "url"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// OutputConfig carries the settings some formats need.
type OutputConfig struct {
	BaseURL  string // for OutputURL
	Selector string // for OutputRule, default ".gradient"
}

// DetermineOutputFormat maps a flag value to a format. Unknown or empty
// values fall back to OutputCSS.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "function", "fn":
		return OutputFunction
	case "rule":
		return OutputRule
	case "token":
		return OutputToken
	case "url", "share":
		return OutputURL
	case "json":
		return OutputJSON
	default:
		return OutputCSS
	}
}

// WriteOutput writes s in the requested format followed by a newline.
func WriteOutput(w io.Writer, s *State, format OutputFormat, config OutputConfig) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, s, config)

	case OutputToken:
		token, err := Encode(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, token)
		return err

	case OutputURL:
		link, err := ShareURL(config.BaseURL, s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, link)
		return err

	case OutputFunction:
		_, err := fmt.Fprintln(w, Render(s).Function)
		return err

	case OutputRule:
		selector := config.Selector
		if selector == "" {
			selector = ".gradient"
		}
		_, err := io.WriteString(w, Render(s).Rule(selector))
		return err

	default:
		_, err := fmt.Fprintln(w, Render(s).Declaration)
		return err
	}
}
