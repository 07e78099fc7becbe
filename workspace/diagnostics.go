package workspace

import (
	"errors"
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
)

const diagnosticSource = "parseltongue"

// Diagnose parses text and returns its problems. A source that parses
// cleanly has an empty, non-nil slice so that publishing it clears stale
// diagnostics.
func Diagnose(path, text string, opts ...parser.Option) []protocol.Diagnostic {
	opts = append(opts[:len(opts):len(opts)], parser.WithFile(path))
	_, err := parser.File(text, opts...)
	if err == nil {
		return []protocol.Diagnostic{}
	}
	if d, ok := ToDiagnostic(text, err); ok {
		return []protocol.Diagnostic{d}
	}
	log.Warningf("%s: no diagnostic for %s", path, err)
	return []protocol.Diagnostic{}
}

// ToDiagnostic converts a tokenizer or parser error into a diagnostic for
// text. Positions become 0-based lines and UTF-16 columns.
func ToDiagnostic(text string, err error) (protocol.Diagnostic, bool) {
	lines := strings.Split(text, "\n")
	var (
		lexErr    *lexer.Error
		syntaxErr *parser.SyntaxError
		parseErr  *parser.ParseError
	)
	switch {
	case errors.As(err, &syntaxErr):
		start := position(lines, syntaxErr.Line, syntaxErr.Column-1)
		end := start
		if syntaxErr.EndLine > 0 {
			end = position(lines, syntaxErr.EndLine, syntaxErr.EndColumn-1)
		}
		return diagnostic(start, widen(lines, start, end), syntaxErr.Kind, syntaxErr.Msg), true
	case errors.As(err, &parseErr):
		tok := parseErr.Token
		start := position(lines, tok.Start.Line, tok.Start.Column)
		end := position(lines, tok.End.Line, tok.End.Column)
		return diagnostic(start, widen(lines, start, end), parser.KindSyntaxError, parseErr.Msg()), true
	case errors.As(err, &lexErr):
		start := position(lines, lexErr.Line, lexErr.Column-1)
		return diagnostic(start, widen(lines, start, start), parser.KindSyntaxError, lexErr.Msg), true
	}
	return protocol.Diagnostic{}, false
}

func diagnostic(start, end protocol.Position, kind, msg string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: kind},
		Source:   &source,
		Message:  msg,
	}
}

// position converts a 1-based line and a 0-based byte column.
func position(lines []string, line, column int) protocol.Position {
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		return protocol.Position{Line: protocol.UInteger(len(lines) - 1)}
	}
	text := strings.TrimSuffix(lines[line-1], "\r")
	return protocol.Position{
		Line:      protocol.UInteger(line - 1),
		Character: protocol.UInteger(utf16Column(text, column)),
	}
}

// widen makes an empty range cover one character so editors can show it.
func widen(lines []string, start, end protocol.Position) protocol.Position {
	if end.Line > start.Line || end.Character > start.Character {
		return end
	}
	end = start
	if int(start.Line) < len(lines) {
		width := utf16Column(lines[start.Line], len(lines[start.Line]))
		if int(start.Character) < width {
			end.Character++
		}
	}
	return end
}

func utf16Column(line string, column int) int {
	if column > len(line) {
		column = len(line)
	}
	if column < 0 {
		column = 0
	}
	n := 0
	for _, r := range line[:column] {
		n += utf16.RuneLen(r)
	}
	return n
}
