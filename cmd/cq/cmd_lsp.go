package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/qasmtools/cq/config"
	"github.com/qasmtools/cq/langserver"
)

func newLSPCmd() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: "Start an LSP server on stdin/stdout. Editors connect to it to get\n" +
			"parse diagnostics as they type.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}

			verbosity := cfg.Server.Verbosity
			if verbose > 0 {
				verbosity = verbose
			}
			var logFile *string
			if cfg.Server.LogFile != "" {
				logFile = &cfg.Server.LogFile
			}
			commonlog.Configure(verbosity, logFile)

			server := langserver.NewServer(version)
			return server.RunStdio()
		},
	}

	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (overrides config)")

	return cmd
}
