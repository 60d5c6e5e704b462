package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/qasmtools/cq/checker"
	"github.com/qasmtools/cq/config"
	"github.com/qasmtools/cq/format"
)

func newCheckCmd() *cobra.Command {
	var jobs int
	var maxErrors int
	var colorMode string
	var showSource bool

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse cQASM files and report their diagnostics",
		Long: "Parse the given files and directories and report every diagnostic.\n" +
			"Directories are walked for matching files. With no arguments the\n" +
			"current directory is checked. Settings come from .cq.yaml when present.",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyColorMode(colorMode)

			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if jobs > 0 {
				cfg.Check.Jobs = jobs
			}
			if maxErrors != 0 {
				cfg.Parser.MaxErrors = maxErrors
			}

			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			results, err := checker.Run(cmd.Context(), paths, checker.Options{
				Jobs:       cfg.Check.Jobs,
				Extensions: cfg.Check.Extensions,
				MaxErrors:  cfg.Parser.MaxErrors,
			})
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if !r.Failed() {
					continue
				}
				w := format.NewDiagnosticWriter(out, !color.NoColor)
				if showSource {
					if data, err := os.ReadFile(r.Path); err == nil {
						w.WithSource(data)
					}
				}
				w.PrintAll(r.Parse.Errors)
			}

			sum := checker.Summarize(results)
			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", sum.Failed, sum.Files)
			}
			fmt.Fprintf(out, "checked %d files\n", sum.Files)
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel parses (0 = config or CPU count)")
	cmd.Flags().IntVar(&maxErrors, "max-errors", 0, "cap diagnostics per file (0 = config, negative = no cap)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "color output: auto, always, never")
	cmd.Flags().BoolVar(&showSource, "source", true, "show source excerpts under diagnostics")

	return cmd
}
