package lexer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is matched by every lexer and parser error through errors.Is.
var ErrSyntax = errors.New("syntax error")

// Error is a tokenizing failure: inconsistent indentation, mismatched
// brackets, or text that no token pattern matches.
type Error struct {
	File string
	// Line and Column are 1-based.
	Line   int
	Column int
	Msg    string
	// Source is the offending line without its terminator.
	Source string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d.%d - %s\n%s\n%s", e.File, e.Line, e.Column, e.Msg, e.Source, Caret(e.Source, e.Column))
}

func (e *Error) Is(target error) bool {
	return target == ErrSyntax
}

// Caret returns a line with '^' under the 1-based byte column of source.
// Tabs are kept so the caret lines up in a terminal.
func Caret(source string, column int) string {
	n := column - 1
	if n < 0 {
		n = 0
	}
	if n > len(source) {
		n = len(source)
	}
	var sb strings.Builder
	for _, r := range source[:n] {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	if extra := column - 1 - n; extra > 0 {
		sb.WriteString(strings.Repeat(" ", extra))
	}
	sb.WriteByte('^')
	return sb.String()
}
