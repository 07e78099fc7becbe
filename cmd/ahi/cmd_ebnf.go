package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/dhamidi/parseltongue/grammar"
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfMatchCmd())
	cmd.AddCommand(newEbnfProductionsCmd())

	return cmd
}

// loadGrammar reads the grammar file, or the embedded grammar when
// filename is empty.
func loadGrammar(filename string) (ebnf.Grammar, error) {
	if filename == "" {
		return grammar.Load()
	}
	return grammar.LoadFile(filename)
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar file (default: the built-in grammar)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			}

			g, err := loadGrammar(filename)
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfMatchCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "match <production> <file|->",
		Short: "Match a production against a file",
		Long: `Match a production against a file.

Lexical (lowercase) productions are matched against the raw text. Other
productions are matched against the token stream of the file.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			production, filename := args[0], args[1]

			g, err := loadGrammar(grammarFile)
			if err != nil {
				printErrors(err)
				return err
			}
			content, err := readInput(cmd.InOrStdin(), filename)
			if err != nil {
				return err
			}
			m := grammar.NewMatcher(g)
			out := cmd.OutOrStdout()

			if grammar.IsLexical(production) {
				text := strings.TrimRight(string(content), "\r\n")
				n, err := m.Match(production, text)
				if err != nil {
					return err
				}
				if n != len(text) {
					return fmt.Errorf("%s matches %d of %d bytes", production, max(n, 0), len(text))
				}
				fmt.Fprintf(out, "%s: ok\n", production)
				return nil
			}

			tokens, err := lexer.Tokenize(string(content), lexer.WithFile(filename))
			if err != nil {
				return err
			}
			ok, err := m.AcceptsTokens(production, tokens)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: no match, stopped near %s", production, describeToken(tokens, m.Furthest()))
			}
			fmt.Fprintf(out, "%s: ok (%d tokens)\n", production, len(tokens))
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "grammar file to use instead of the built-in grammar")

	return cmd
}

func newEbnfProductionsCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:           "productions",
		Short:         "List the productions of a grammar",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(grammarFile)
			if err != nil {
				printErrors(err)
				return err
			}
			for _, name := range grammar.Productions(g) {
				kind := "syntax"
				if grammar.IsLexical(name) {
					kind = "lexical"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", kind, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "grammar file to use instead of the built-in grammar")

	return cmd
}

func readInput(stdin io.Reader, filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(stdin)
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return content, nil
}

func describeToken(tokens []lexer.Token, i int) string {
	if i >= len(tokens) {
		return "end of input"
	}
	return fmt.Sprintf("%s %s", tokens[i].Start, tokens[i])
}

func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Println(v.Index(i).Interface())
		}
	} else {
		fmt.Println(err)
	}
}
