package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .gradgen.yaml config file",
	Long:  `Create a .gradgen.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# gradgen configuration
# Docs: https://github.com/yacobolo/gradgen

# Shared settings
verbose: false
color: false
base-url: http://localhost:8080/   # page share links point at
format: css                        # css | function | rule | token | url | json
selector: .gradient                # used by --format rule

# Preset stylesheet builder
build:
  source: gradients
  output: "-"                      # "-" writes to stdout
  include:
    - "**/*.yaml"
    - "**/*.yml"
    - "**/*.toml"
    - "**/*.json"
  prefix: gradient-
  header: true

# Browser editor
serve:
  addr: 127.0.0.1:8080
  base-url: ""                     # empty: derived from the request
  shutdown-timeout: 5s

# Random gradients
random:
  seed: 0                          # 0 = different every run
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
