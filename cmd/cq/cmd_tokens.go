package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/qasmtools/cq/parser"
)

func newTokensCmd() *cobra.Command {
	var includeTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream from a cQASM file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			var data []byte
			var err error
			if filename == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
				filename = "<stdin>"
			} else {
				data, err = os.ReadFile(filename)
			}
			if err != nil {
				return fmt.Errorf("read: %w", err)
			}

			lx := parser.NewLexer(data, filename)
			w := cmd.OutOrStdout()
			for {
				tok := lx.NextToken()
				if tok.Kind == parser.TokenEOF {
					break
				}
				if !includeTrivia && (tok.Kind == parser.TokenWhitespace || tok.Kind == parser.TokenComment) {
					continue
				}
				fmt.Fprintf(w, "%d:%d..%d:%d\t%s\t%q\n",
					tok.Span.Start.Line, tok.Span.Start.Column,
					tok.Span.End.Line, tok.Span.End.Column,
					tok.Kind, tok.Literal)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comment tokens")

	return cmd
}
