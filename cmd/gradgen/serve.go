package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/gradgen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gradient editor in the browser",
	Long: `Start the browser editor. The page keeps no server-side state: every
change produces a new ?gradient= link, so any page can be bookmarked or
shared as is.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger("serve")
		srv, err := server.New(buildServerConfig(), logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "Listen address")
}
