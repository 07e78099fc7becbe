package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#94A3B8")

	locationStyle = lipgloss.NewStyle().Bold(true)
	messageStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	sourceStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	caretStyle    = lipgloss.NewStyle().Foreground(colorError)
)

// renderError prints err to w. Syntax errors get their source line and a
// caret; joined errors are printed one by one.
func renderError(w io.Writer, err error) {
	for _, e := range leafErrors(err) {
		fmt.Fprintln(w, formatError(e))
	}
}

// leafErrors flattens joined errors. A wrapper around a join contributes
// its own message as a final summary line.
func leafErrors(err error) []error {
	if positioned(err) {
		return []error{err}
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var leaves []error
		for _, e := range joined.Unwrap() {
			leaves = append(leaves, leafErrors(e)...)
		}
		return leaves
	}
	if inner := errors.Unwrap(err); inner != nil {
		if _, ok := inner.(interface{ Unwrap() []error }); ok {
			summary := strings.TrimSuffix(strings.TrimSuffix(err.Error(), inner.Error()), ": ")
			return append(leafErrors(inner), errors.New(summary))
		}
	}
	return []error{err}
}

func positioned(err error) bool {
	switch err.(type) {
	case *lexer.Error, *parser.SyntaxError, *parser.ParseError:
		return true
	}
	return false
}

func formatError(err error) string {
	switch e := err.(type) {
	case *parser.SyntaxError:
		return formatDiagnostic(e.File, e.Line, e.Column, e.Kind+": "+e.Msg, e.Source)
	case *parser.ParseError:
		return formatDiagnostic(e.File, e.Token.Start.Line, e.Token.Start.Column+1, e.Msg(), e.Token.Line)
	case *lexer.Error:
		return formatDiagnostic(e.File, e.Line, e.Column, e.Msg, e.Source)
	}
	return messageStyle.Render("error:") + " " + err.Error()
}

func formatDiagnostic(file string, line, column int, msg, source string) string {
	if file == "" {
		file = "<input>"
	}
	source = strings.TrimRight(source, "\r\n")
	location := fmt.Sprintf("%s:%d:%d:", displayPath(file), line, column)
	return fmt.Sprintf("%s %s\n%s\n%s",
		locationStyle.Render(location),
		messageStyle.Render(msg),
		sourceStyle.Render(source),
		caretStyle.Render(lexer.Caret(source, column)))
}

// displayPath shortens path relative to the working directory when it lies
// below it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
