package gradgen

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

// BuildConfig holds preset stylesheet builder configuration
type BuildConfig struct {
	SourceDir   string   // "styles/gradients"
	Includes    []string // ["**/*.yaml"], DefaultIncludes when empty
	OutputFile  string   // "web/gradients.css", "-" for Stdout
	ClassPrefix string   // "gradient-"
	Header      bool     // emit a generated-file comment
	Verbose     bool     // Enable debug logging
	Stdout      io.Writer
	// Logger receives progress at debug level. Defaults to stderr, with
	// debug enabled when Verbose is set.
	Logger *log.Logger
}

// BuildResult contains build stats
type BuildResult struct {
	FilesScanned       int
	FilesSkipped       int
	GradientsGenerated int
	BytesWritten       int
	Presets            []*Preset
	Warnings           []string
}

// Build is the main entry point of the preset builder: it renders every
// preset under SourceDir into one stylesheet.
func Build(config BuildConfig) (*BuildResult, error) {
	result := &BuildResult{}
	logger := config.logger()

	// 1. Discover preset files
	files, stats, err := discoverPresets(config.SourceDir, config.Includes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped

	logger.Debug("found preset files", "files", stats.FilesScanned, "ignored", stats.FilesSkipped)

	// 2. Load presets; bad files become warnings
	presets, warnings := loadPresets(files, logger)
	result.Warnings = warnings
	result.Presets = presets
	result.GradientsGenerated = len(presets)

	logger.Debug("loaded gradients", "count", len(presets))

	// 3. Render and write the stylesheet
	css := RenderStylesheet(presets, config)
	n, err := writeStylesheet(css, config)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	result.BytesWritten = n

	return result, nil
}

// loadPresets parses every file, skipping failures and duplicate names.
func loadPresets(files []string, logger *log.Logger) ([]*Preset, []string) {
	var presets []*Preset
	var warnings []string
	byName := make(map[string]string)

	for _, path := range files {
		logger.Debug("loading preset", "path", path)

		preset, err := LoadPreset(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to load %s: %v", path, err))
			continue
		}
		if preset.Name == "" {
			warnings = append(warnings, fmt.Sprintf("Skipping %s: empty name", path))
			continue
		}
		if prev, dup := byName[preset.Name]; dup {
			warnings = append(warnings, fmt.Sprintf("Skipping %s: name %q already defined in %s", path, preset.Name, prev))
			continue
		}
		byName[preset.Name] = path
		presets = append(presets, preset)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, warnings
}

func (c BuildConfig) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	logger := log.New(os.Stderr)
	if c.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// RenderStylesheet renders one rule per preset, in the order given.
func RenderStylesheet(presets []*Preset, config BuildConfig) string {
	var buf bytes.Buffer
	if config.Header {
		fmt.Fprintf(&buf, "/* Code generated by gradgen from %s. DO NOT EDIT. */\n\n", filepath.ToSlash(config.SourceDir))
	}
	for i, p := range presets {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(Render(p.State).Rule("." + config.ClassPrefix + p.Name))
	}
	return buf.String()
}

func writeStylesheet(css string, config BuildConfig) (int, error) {
	if config.OutputFile == "" || config.OutputFile == "-" {
		w := config.Stdout
		if w == nil {
			w = os.Stdout
		}
		return io.WriteString(w, css)
	}

	if dir := filepath.Dir(config.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(config.OutputFile, []byte(css), 0644); err != nil {
		return 0, err
	}
	return len(css), nil
}
