package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/yacobolo/gradgen"
	"github.com/yacobolo/gradgen/internal/termui"
	"github.com/yacobolo/gradgen/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a stylesheet from gradient preset files",
	Long: `Render every preset file (YAML, TOML or JSON) under the source
directory into one stylesheet with a .<prefix><name> rule per gradient.
Paths listed in the source directory's .gradgenignore are skipped.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("source", defaultSource, "Preset directory")
	f.StringP("output", "o", "-", `Output stylesheet ("-" for stdout)`)
	f.StringSlice("include", nil, "Glob patterns for preset files to include")
	f.String("prefix", defaultPrefix, "Class name prefix")
	f.Bool("header", true, "Emit a generated-file comment")
	f.BoolP("watch", "w", false, "Rebuild when preset files change")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config := buildBuildConfig()
	config.Stdout = cmd.OutOrStdout()
	config.Logger = newLogger("build")

	if err := buildOnce(config, cmd.ErrOrStderr()); err != nil {
		return err
	}

	if watchFlag, _ := cmd.Flags().GetBool("watch"); !watchFlag {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndBuild(ctx, config)
}

// buildOnce runs one build and reports it on w. Stylesheets written to
// stdout keep the report and progress logging off stdout.
func buildOnce(config gradgen.BuildConfig, w io.Writer) error {
	result, err := gradgen.Build(config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if quiet() {
		return nil
	}

	reporter := termui.NewReporter(w, useColors())
	target := config.OutputFile
	if target == "" || target == "-" {
		target = "stdout"
	}
	reporter.PrintSuccess(fmt.Sprintf("Built %s", target))
	fmt.Fprintf(w, "  Files scanned: %d\n", result.FilesScanned)
	if result.FilesSkipped > 0 {
		fmt.Fprintf(w, "  Files ignored: %d\n", result.FilesSkipped)
	}
	fmt.Fprintf(w, "  Gradients generated: %d\n", result.GradientsGenerated)
	fmt.Fprintf(w, "  Size: %s\n", humanize.Bytes(uint64(result.BytesWritten)))
	reporter.PrintWarnings(result.Warnings)
	return nil
}

// watchAndBuild rebuilds on preset changes until ctx is cancelled.
func watchAndBuild(ctx context.Context, config gradgen.BuildConfig) error {
	logger := config.Logger

	output, _ := filepath.Abs(config.OutputFile)
	w, err := watch.New(watch.Config{
		Dir: config.SourceDir,
		Match: func(path string) bool {
			// Writing the stylesheet inside the source tree must not
			// trigger another build.
			if abs, err := filepath.Abs(path); err == nil && abs == output {
				return false
			}
			if filepath.Base(path) == gradgen.IgnoreFile {
				return true
			}
			return matchesAny(config.SourceDir, config.Includes, path)
		},
		OnChange: func() error {
			logger.Info("rebuilding", "source", config.SourceDir)
			result, err := gradgen.Build(config)
			if err != nil {
				return err
			}
			for _, warning := range result.Warnings {
				logger.Warn(warning)
			}
			logger.Info("built",
				"gradients", result.GradientsGenerated,
				"size", humanize.Bytes(uint64(result.BytesWritten)))
			return nil
		},
		OnError: func(err error) {
			logger.Error("watch", "err", err)
		},
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", config.SourceDir, err)
	}

	logger.Info("watching for changes", "dir", config.SourceDir)
	return w.Run(ctx)
}

// matchesAny reports whether path, relative to dir, matches one of the
// include patterns.
func matchesAny(dir string, patterns []string, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if len(patterns) == 0 {
		patterns = gradgen.DefaultIncludes
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
