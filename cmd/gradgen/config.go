package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/gradgen"
	"github.com/yacobolo/gradgen/internal/server"
	"github.com/yacobolo/gradgen/internal/termui"
)

// Defaults shared by flags, config and init.
const (
	defaultConfigFile = ".gradgen.yaml"
	defaultBaseURL    = "http://localhost:8080/"
	defaultAddr       = "127.0.0.1:8080"
	defaultSource     = "gradients"
	defaultPrefix     = "gradient-"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Without a koanf instance the
	// provider skips flags the user did not set, so flag defaults never
	// shadow file or env values.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (GRADGEN_* prefix)
	if err := k.Load(env.Provider("GRADGEN_", ".", func(s string) string {
		// GRADGEN_SERVE_ADDR -> serve.addr
		// GRADGEN_BUILD_SOURCE -> build.source
		// GRADGEN_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GRADGEN_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildBuildConfig constructs the library's BuildConfig struct from koanf state.
func buildBuildConfig() gradgen.BuildConfig {
	config := gradgen.BuildConfig{
		SourceDir:   getStringWithFallback("source", "build.source", defaultSource),
		OutputFile:  getStringWithFallback("output", "build.output", "-"),
		ClassPrefix: getStringWithFallback("prefix", "build.prefix", defaultPrefix),
		Header:      getBoolWithFallback("header", "build.header", true),
		Verbose:     getBoolWithFallback("verbose", "verbose", false),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("build.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = gradgen.DefaultIncludes
	}

	return config
}

// buildServerConfig constructs the HTTP host config from koanf state.
func buildServerConfig() server.Config {
	return server.Config{
		Addr:            getStringWithFallback("addr", "serve.addr", defaultAddr),
		BaseURL:         getStringWithFallback("base-url", "serve.base-url", ""),
		ShutdownTimeout: getDurationWithFallback("shutdown-timeout", "serve.shutdown-timeout", 5*time.Second),
	}
}

// buildOutputConfig constructs the output settings shared by the
// single-gradient commands.
func buildOutputConfig() gradgen.OutputConfig {
	return gradgen.OutputConfig{
		BaseURL:  baseURL(),
		Selector: getStringWithFallback("selector", "selector", ".gradient"),
	}
}

// baseURL is the page share links point at.
func baseURL() string {
	return getStringWithFallback("base-url", "base-url", defaultBaseURL)
}

func useColors() bool {
	return termui.ShouldUseColors(getBoolWithFallback("color", "color", false))
}

func quiet() bool {
	return getBoolWithFallback("quiet", "quiet", false)
}

// newLogger returns the stderr logger used by long-running commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	switch {
	case getBoolWithFallback("verbose", "verbose", false):
		logger.SetLevel(log.DebugLevel)
	case quiet():
		logger.SetLevel(log.ErrorLevel)
	}
	return logger
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
