package main

import (
	"github.com/spf13/cobra"
	"github.com/yacobolo/gradgen"
	"github.com/yacobolo/gradgen/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit [token|url]",
	Short: "Edit a gradient in the terminal",
	Long: `Open the terminal editor, starting from a share token or page URL
when one is given. The final CSS is printed on exit.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := readToken(cmd, args)
		if err != nil {
			return err
		}

		state, err := tui.Run(tui.Config{
			Token:     token,
			BaseURL:   baseURL(),
			UseColors: useColors(),
		})
		if err != nil {
			return err
		}
		return writeGradient(cmd, state, gradgen.OutputCSS)
	},
}

func init() {
	addFormatFlags(editCmd)
}
