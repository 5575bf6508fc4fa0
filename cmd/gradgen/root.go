package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gradgen",
	Short: "CSS gradient editor, renderer and share-link codec",
	Long: `Compose linear, radial and conic CSS gradients, render them to CSS
and pass them around as shareable links.
Every gradient round-trips through its ?gradient= token.`,
	// Default behavior: render when no subcommand is given.
	// We must call loadConfig here because PreRunE of renderCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runRender(cmd, args)
	},
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Config file path")
	rootCmd.PersistentFlags().String("base-url", defaultBaseURL, "Page URL share links point at")

	addGradientFlags(rootCmd)
	addFormatFlags(rootCmd)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
