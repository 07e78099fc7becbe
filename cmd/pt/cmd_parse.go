package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/format"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/project"
	"github.com/dhamidi/parseltongue/python/ast"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var indent string
	var mode string

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a Parseltongue source and print its syntax tree",
		Long: `Parse a file, or standard input when the argument is -, and print the
tree in one of these formats:

  dump    like Python's ast.dump
  json    a JSON object per node, tagged with "_type"
  python  the Python rendering`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, src, err := readSource(args[0])
			if err != nil {
				return err
			}

			opts, err := parserOptions(filename)
			if err != nil {
				return err
			}
			tree, err := parser.Parse(src, parser.Mode(mode), opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "dump":
				fmt.Fprintln(out, ast.DumpWith(tree, ast.DumpOptions{
					IncludeAttributes: includePositions,
					Indent:            indent,
				}))
			case "json":
				enc := format.NewASTJSONEncoder(out)
				enc.IncludePositions = includePositions
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "python":
				text, err := format.Python(tree)
				if err != nil {
					return fmt.Errorf("render python: %w", err)
				}
				fmt.Fprint(out, text)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dump", "output format (dump, json, python)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include node positions")
	cmd.Flags().StringVar(&indent, "indent", "", "indent nested nodes in dump output")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(parser.ModeExec), "entry rule (exec, eval, single, func_type)")

	return cmd
}

// readSource reads a file, or standard input for "-".
func readSource(arg string) (filename, src string, err error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	return arg, string(data), nil
}

// parserOptions returns the project's parser options for filename.
func parserOptions(filename string) ([]parser.Option, error) {
	proj, err := project.Load()
	if err != nil {
		return nil, err
	}
	return append(proj.Config.ParserOptions(), parser.WithFile(filename)), nil
}
