package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/yacobolo/gradgen"
	"github.com/yacobolo/gradgen/internal/termui"
)

var renderCmd = &cobra.Command{
	Use:   "render [token|url|-]",
	Short: "Render a gradient as CSS",
	Long: `Render a gradient given as a share token or page URL ("-" reads stdin).
Without an argument the default gradient is used. Gradient flags are
applied on top of the input.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRender,
}

var shareCmd = &cobra.Command{
	Use:   "share [token|url|-]",
	Short: "Print the share link for a gradient",
	Long: `Print the page URL that reproduces a gradient. Combine with the
gradient flags to build a link from scratch:

  gradgen share --type conic --stop "#f00@0" --stop "#00f@100"`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runShare,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <token|url|->",
	Short: "Decode and inspect a share token",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runDecode,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate a random gradient",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRandom,
}

var parseCmd = &cobra.Command{
	Use:   "parse <css|->",
	Short: "Import a gradient from CSS",
	Long: `Read a gradient function or background-image declaration and print
it in the selected format (default: token).`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runParse,
}

var previewCmd = &cobra.Command{
	Use:   "preview [token|url|-]",
	Short: "Show a gradient in the terminal",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPreview,
}

func init() {
	for _, cmd := range []*cobra.Command{renderCmd, shareCmd, previewCmd} {
		addGradientFlags(cmd)
	}
	for _, cmd := range []*cobra.Command{renderCmd, decodeCmd, randomCmd, parseCmd} {
		addFormatFlags(cmd)
	}
	shareCmd.Flags().Bool("copy", false, "Also copy the link to the clipboard")
	randomCmd.Flags().Int("seed", 0, "Seed for reproducible output (0 = random)")
}

func runRender(cmd *cobra.Command, args []string) error {
	state, err := readGradient(cmd, args)
	if err != nil {
		return err
	}
	return writeGradient(cmd, state, gradgen.OutputCSS)
}

func runShare(cmd *cobra.Command, args []string) error {
	state, err := readGradient(cmd, args)
	if err != nil {
		return err
	}
	link, err := gradgen.ShareURL(baseURL(), state)
	if err != nil {
		return err
	}

	if copyLink, _ := cmd.Flags().GetBool("copy"); copyLink {
		if err := clipboard.WriteAll(link); err != nil {
			return fmt.Errorf("copy share link: %w", err)
		}
	}

	if !quiet() {
		fmt.Fprintln(cmd.OutOrStdout(), link)
	}
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	token, err := readToken(cmd, args)
	if err != nil {
		return err
	}
	state, err := gradgen.Decode(token)
	if err != nil {
		if hint := decodeHint(err); hint != "" {
			return fmt.Errorf("%w (%s)", err, hint)
		}
		return err
	}

	// Structured formats go through the shared writer.
	if k.String("format") != "" {
		return writeGradient(cmd, state, gradgen.OutputCSS)
	}
	if quiet() {
		return nil
	}
	return printSummary(cmd, state, "")
}

func runRandom(cmd *cobra.Command, _ []string) error {
	var opts []gradgen.Option
	if seed := getIntWithFallback("seed", "random.seed", 0); seed != 0 {
		opts = append(opts, gradgen.WithRand(rand.New(rand.NewPCG(uint64(seed), uint64(seed)))))
	}

	state := gradgen.NewState(opts...)
	state.Randomize()
	return writeGradient(cmd, state, gradgen.OutputCSS)
}

func runParse(cmd *cobra.Command, args []string) error {
	css, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	state, err := gradgen.ParseCSS(css)
	if err != nil {
		return err
	}
	return writeGradient(cmd, state, gradgen.OutputToken)
}

func runPreview(cmd *cobra.Command, args []string) error {
	state, err := readGradient(cmd, args)
	if err != nil {
		return err
	}
	if quiet() {
		return nil
	}
	return printSummary(cmd, state, "")
}

// printSummary prints the terminal view of a gradient with its share link.
func printSummary(cmd *cobra.Command, state *gradgen.State, name string) error {
	summary := termui.Summarize(state)
	summary.Name = name

	link, err := gradgen.ShareURL(baseURL(), state)
	if err != nil {
		return err
	}
	summary.ShareURL = link

	termui.NewReporter(cmd.OutOrStdout(), useColors()).PrintSummary(summary)
	return nil
}
