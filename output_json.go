package gradgen

import (
	"encoding/json"
	"io"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version         string      `json:"version"`
	Type            string      `json:"type"`
	Angle           int         `json:"angle"`
	AngleApplicable bool        `json:"angle_applicable"`
	Opacity         int         `json:"opacity"`
	Stops           []ColorStop `json:"stops"`
	Function        string      `json:"function"`
	Declaration     string      `json:"declaration"`
	Token           string      `json:"token"`
	ShareURL        string      `json:"share_url,omitempty"`
}

// WriteJSON writes s as indented JSON
func WriteJSON(w io.Writer, s *State, config OutputConfig) error {
	output, err := BuildJSONOutput(s, config)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// BuildJSONOutput converts a State to JSONOutput. The share URL is only
// filled in when config.BaseURL is set.
func BuildJSONOutput(s *State, config OutputConfig) (JSONOutput, error) {
	token, err := Encode(s)
	if err != nil {
		return JSONOutput{}, err
	}

	var shareURL string
	if config.BaseURL != "" {
		if shareURL, err = ShareURL(config.BaseURL, s); err != nil {
			return JSONOutput{}, err
		}
	}

	rendered := Render(s)
	return JSONOutput{
		Version:         "1.0",
		Type:            s.Kind().Token(),
		Angle:           s.Angle(),
		AngleApplicable: s.AngleApplicable(),
		Opacity:         s.Opacity(),
		Stops:           s.SortedStops(),
		Function:        rendered.Function,
		Declaration:     rendered.Declaration,
		Token:           token,
		ShareURL:        shareURL,
	}, nil
}
