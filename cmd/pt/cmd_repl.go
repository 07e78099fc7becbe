package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/format"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/python/ast"
)

const (
	historyFile    = ".parseltongue_history"
	prompt         = ">>> "
	continuePrompt = "... "
)

func newReplCmd() *cobra.Command {
	var showDump bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read Parseltongue statements and print their Python rendering",
		Long: `Start an interactive prompt. Each complete statement is parsed and
printed as Python, followed by its syntax tree. Compound statements end
with an empty line. Ctrl-D exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parserOptions("<stdin>")
			if err != nil {
				return err
			}
			return runRepl(cmd.OutOrStdout(), opts, showDump)
		},
	}

	cmd.Flags().BoolVar(&showDump, "dump", true, "print the syntax tree after the Python rendering")

	return cmd
}

func runRepl(out io.Writer, opts []parser.Option, showDump bool) error {
	config := &readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
	if home, err := os.UserHomeDir(); err == nil {
		config.HistoryFile = filepath.Join(home, historyFile)
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	var buf strings.Builder
	for {
		if buf.Len() > 0 {
			rl.SetPrompt(continuePrompt)
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if buf.Len() == 0 && line == "" {
				return nil
			}
			buf.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		src := buf.String()
		if strings.TrimSpace(src) == "" {
			buf.Reset()
			continue
		}
		if !parser.IsComplete(src, opts...) {
			continue
		}
		buf.Reset()
		evalStatement(out, src, opts, showDump)
	}
}

// evalStatement prints the Python rendering of one interactive statement,
// or the error that stops it from parsing.
func evalStatement(out io.Writer, src string, opts []parser.Option, showDump bool) {
	tree, err := parser.Interactive(src, opts...)
	if err != nil {
		renderError(out, err)
		return
	}
	text, err := format.Python(tree)
	if err != nil {
		renderError(out, err)
		return
	}
	fmt.Fprint(out, text)
	if showDump {
		fmt.Fprintln(out, sourceStyle.Render(ast.Dump(tree)))
	}
}
