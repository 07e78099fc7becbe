package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/format"
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/project"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a Parseltongue source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, src, err := readSource(args[0])
			if err != nil {
				return err
			}
			proj, err := project.Load()
			if err != nil {
				return err
			}

			tokens, err := lexer.Tokenize(src, lexer.WithFile(filename), lexer.WithTabSize(proj.Config.TabSize))
			if err != nil {
				return err
			}

			var enc format.TokenEncoder
			switch outputFormat {
			case "line":
				enc = format.NewLineEncoder(cmd.OutOrStdout())
			case "json":
				enc = format.NewJSONEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return enc.Encode(tokens)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")

	return cmd
}
