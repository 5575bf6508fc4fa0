package gradgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile holds gitignore-style patterns, relative to the preset
// directory, for preset files the builder must skip.
const IgnoreFile = ".gradgenignore"

// DefaultIncludes are the preset glob patterns used when none are given.
var DefaultIncludes = []string{"**/*.yaml", "**/*.yml", "**/*.toml", "**/*.json"}

// Preset is a named gradient loaded from a preset file.
type Preset struct {
	Name   string // CSS-safe name, from the file's name key or its base name
	Source string // file path
	State  *State
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped by the ignore file
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// discoverPresets expands includes under sourceDir, drops directories,
// duplicates and ignored paths, and returns the files sorted.
func discoverPresets(sourceDir string, includes []string) ([]string, ScanStats, error) {
	var stats ScanStats
	if len(includes) == 0 {
		includes = DefaultIncludes
	}

	gi := loadIgnoreFile(sourceDir)

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range includes {
		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(filepath.Join(sourceDir, pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if gi != nil {
				if rel, err := filepath.Rel(sourceDir, match); err == nil && gi.MatchesPath(filepath.ToSlash(rel)) {
					stats.FilesSkipped++
					continue
				}
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// loadIgnoreFile compiles sourceDir/.gradgenignore. A missing file is fine.
func loadIgnoreFile(sourceDir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(sourceDir, IgnoreFile))
	if err != nil {
		return nil
	}
	return gi
}

// LoadPreset reads one preset file. YAML, TOML and JSON files share the
// share-token record shape (type, colors, angle, opacity) plus an optional
// name, and are validated exactly like a decoded token.
func LoadPreset(path string, opts ...Option) (*Preset, error) {
	raw, err := readPresetFile(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if n, ok := raw["name"].(string); ok && n != "" {
		name = n
	}
	delete(raw, "name")

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode %s: %w", path, err)
	}
	state, err := DecodeRecord(data, opts...)
	if err != nil {
		return nil, err
	}

	return &Preset{Name: sanitizeName(name), Source: path, State: state}, nil
}

func readPresetFile(path string) (map[string]any, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return k.Raw(), nil

	case ".toml", ".json":
		// #nosec G304 - path comes from the configured preset directory
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		raw := make(map[string]any)
		if ext == ".toml" {
			err = toml.Unmarshal(data, &raw)
		} else {
			err = json.Unmarshal(data, &raw)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, path, err)
		}
		return raw, nil

	default:
		return nil, fmt.Errorf("unsupported preset format %q", ext)
	}
}

// sanitizeName turns a preset name into a CSS class fragment.
func sanitizeName(name string) string {
	name = unsafeNameChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(name, "-")
}
