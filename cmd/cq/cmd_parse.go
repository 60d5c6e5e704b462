package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qasmtools/cq/format"
	"github.com/qasmtools/cq/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var maxErrors int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a cQASM file and dump the tree",
		Long:  "Parse a cQASM file and dump the resulting tree. Pass - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			var opts []parser.Option
			if maxErrors != 0 {
				opts = append(opts, parser.WithMaxErrors(maxErrors))
			}

			var res parser.ParseResult
			if filename == "-" {
				res = parser.ParseReader(cmd.InOrStdin(), "<stdin>", opts...)
			} else {
				res = parser.ParseFile(filename, opts...)
			}

			for _, msg := range res.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}

			if res.Root != nil {
				var enc format.Encoder
				switch outputFormat {
				case "json":
					enc = format.NewASTJSONEncoder(cmd.OutOrStdout())
				case "tree":
					enc = format.NewTreeEncoder(cmd.OutOrStdout())
				default:
					return fmt.Errorf("unknown format: %s (expected json or tree)", outputFormat)
				}
				if err := enc.Encode(res.Root); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				if outputFormat == "json" {
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}

			if n := len(res.Errors); n == 1 {
				return fmt.Errorf("1 parse error")
			} else if n > 1 {
				return fmt.Errorf("%d parse errors", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, tree)")
	cmd.Flags().IntVar(&maxErrors, "max-errors", 0, "cap diagnostics (0 = default, negative = no cap)")

	return cmd
}
