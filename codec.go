package gradgen

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is the URL query parameter carrying the share token.
const QueryParam = "gradient"

// Decode failures. Every error returned by Decode wraps exactly one of
// these, plus ErrInsufficientStops.
var (
	// ErrMalformedEncoding means the token is not valid base64.
	ErrMalformedEncoding = errors.New("malformed gradient token encoding")
	// ErrMalformedPayload means the decoded text is not a usable record.
	ErrMalformedPayload = errors.New("malformed gradient token payload")
)

// shareRecord is the wire shape of a token. Field order is the JSON key
// order: type, colors, angle, opacity.
type shareRecord struct {
	Type    string     `json:"type"`
	Colors  []StopSpec `json:"colors"`
	Angle   int        `json:"angle"`
	Opacity int        `json:"opacity"`
}

// looseRecord accepts anything a token might carry so each field can be
// validated on its own.
type looseRecord struct {
	Type    json.RawMessage `json:"type"`
	Colors  json.RawMessage `json:"colors"`
	Angle   json.RawMessage `json:"angle"`
	Opacity json.RawMessage `json:"opacity"`
}

type looseStop struct {
	Color    json.RawMessage `json:"color"`
	Position json.RawMessage `json:"position"`
}

// Encode serializes s into a share token: the JSON record in standard
// base64. Stop ids are not part of the token.
func Encode(s *State) (string, error) {
	data, err := MarshalRecord(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// MarshalRecord returns the JSON record Encode wraps in base64.
func MarshalRecord(s *State) ([]byte, error) {
	rec := shareRecord{
		Type:    s.kind.Token(),
		Colors:  s.Specs(),
		Angle:   s.angle,
		Opacity: s.opacity,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal gradient record: %w", err)
	}
	return data, nil
}

// Decode rebuilds a State from a share token. Fields missing from the
// token keep their defaults, out-of-range numbers are clamped and invalid
// colors become FallbackColor. Fewer than two stops is an error wrapping
// ErrInsufficientStops.
func Decode(token string, opts ...Option) (*State, error) {
	data, err := decodeBase64(token)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(data, opts...)
}

// DecodeRecord validates a JSON record (the payload of a token) into a
// State. Preset files are loaded through the same path.
//
// Numbers may also arrive as numeric strings ("90"). A colors entry that
// is not an object becomes a FallbackColor stop at 0. Non-numeric values
// for angle, opacity or position, and null entries, are ErrMalformedPayload.
func DecodeRecord(data []byte, opts ...Option) (*State, error) {
	var rec looseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	s := NewState(opts...)

	// An unrecognized type leaves the default kind in place.
	var typ string
	if json.Unmarshal(rec.Type, &typ) == nil {
		if kind, ok := ParseKind(typ); ok {
			s.kind = kind
		}
	}

	var rawStops []json.RawMessage
	if isNull(rec.Colors) || json.Unmarshal(rec.Colors, &rawStops) != nil || len(rawStops) < MinStops {
		return nil, fmt.Errorf("%w: colors must be a list of at least %d entries", ErrInsufficientStops, MinStops)
	}

	specs := make([]StopSpec, len(rawStops))
	for i, raw := range rawStops {
		spec, err := decodeStop(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: colors[%d]: %v", ErrMalformedPayload, i, err)
		}
		specs[i] = spec
	}
	if err := s.ReplaceStops(specs); err != nil {
		return nil, err
	}

	if angle, ok, err := decodeNumber(rec.Angle); err != nil {
		return nil, fmt.Errorf("%w: angle: %v", ErrMalformedPayload, err)
	} else if ok {
		s.SetAngle(angle)
	}

	if opacity, ok, err := decodeNumber(rec.Opacity); err != nil {
		return nil, fmt.Errorf("%w: opacity: %v", ErrMalformedPayload, err)
	} else if ok {
		s.SetOpacity(opacity)
	}

	return s, nil
}

// ShouldClearToken reports whether a decode failure means the token must
// be dropped from the visible URL so a reload does not fail again.
func ShouldClearToken(err error) bool {
	return errors.Is(err, ErrMalformedEncoding) || errors.Is(err, ErrMalformedPayload)
}

// ShareURL returns base (scheme, host and path only) with the token for s
// in the gradient query parameter.
func ShareURL(base string, s *State) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	token, err := Encode(s)
	if err != nil {
		return "", err
	}
	share := url.URL{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     u.Path,
		RawQuery: url.Values{QueryParam: {token}}.Encode(),
	}
	return share.String(), nil
}

// TokenFromURL extracts the gradient parameter from a page URL.
func TokenFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	token := u.Query().Get(QueryParam)
	return token, token != ""
}

// decodeBase64 reverses Encode. It also accepts tokens whose '+' became a
// space in an unescaped query string, the URL-safe alphabet and missing
// padding.
func decodeBase64(token string) ([]byte, error) {
	// Spaces are mangled '+' characters, so only line breaks and tabs
	// count as surrounding whitespace.
	normalized := strings.NewReplacer(" ", "+", "-", "+", "_", "/").Replace(strings.Trim(token, "\r\n\t"))
	normalized = strings.TrimRight(normalized, "=")
	data, err := base64.RawStdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return data, nil
}

// decodeStop reads one colors entry. A null entry is malformed; any other
// non-object carries neither color nor position and becomes a FallbackColor
// stop at 0.
func decodeStop(raw json.RawMessage) (StopSpec, error) {
	spec := StopSpec{Color: FallbackColor}
	if isNull(raw) {
		return StopSpec{}, errors.New("stop is null")
	}
	if bytes.TrimSpace(raw)[0] != '{' {
		return spec, nil
	}

	var ls looseStop
	if err := json.Unmarshal(raw, &ls); err != nil {
		return StopSpec{}, err
	}

	var color string
	if json.Unmarshal(ls.Color, &color) == nil {
		if canonical, ok := NormalizeHex(color); ok {
			spec.Color = canonical
		}
	}

	position, ok, err := decodeNumber(ls.Position)
	if err != nil {
		return StopSpec{}, fmt.Errorf("position: %w", err)
	}
	if ok {
		spec.Position = clamp(position, 0, MaxPosition)
	}
	return spec, nil
}

// decodeNumber reads an optional JSON number, or a string holding one,
// rounding to the nearest integer. ok is false when the field is absent or
// null.
func decodeNumber(raw json.RawMessage) (int, bool, error) {
	if isNull(raw) {
		return 0, false, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var str string
		if json.Unmarshal(raw, &str) != nil {
			return 0, false, fmt.Errorf("not a number: %s", raw)
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(str), 64); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, fmt.Errorf("not a number: %s", raw)
		}
	}
	// Clamp before converting so huge values cannot overflow int.
	f = math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Round(f)))
	return int(f), true, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
