package parser

import (
	"fmt"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/literal"
)

// ErrSyntax matches every error produced while tokenizing or parsing.
var ErrSyntax = lexer.ErrSyntax

// Error kinds reported in SyntaxError.Kind.
const (
	KindSyntaxError      = "SyntaxError"
	KindIndentationError = "IndentationError"
)

// SyntaxError is a diagnostic raised by a forced expectation, an invalid
// rule or a version gate.
type SyntaxError struct {
	Kind string
	Msg  string
	File string
	// Line and Column are 1-based. EndLine and EndColumn point just past
	// the offending text.
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Source    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d.%d - %s\n%s\n%s", e.File, e.Line, e.Column, e.Msg, e.Source, e.Caret())
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Caret returns a line pointing at Column of Source.
func (e *SyntaxError) Caret() string {
	return lexer.Caret(e.Source, e.Column)
}

// ParseError is returned when no alternative of the entry rule matched and
// no specific diagnostic applies. Token is the furthest token the parser
// examined.
type ParseError struct {
	File  string
	Token lexer.Token
}

func (e *ParseError) Msg() string {
	return fmt.Sprintf("Parseltongue parse error at %s token %s", e.Token.Kind, literal.Quote(e.Token.Text))
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d.%d - %s\n%s\n%s", e.File, e.Token.Start.Line, e.Token.Start.Column+1, e.Msg(),
		e.Token.Line, lexer.Caret(e.Token.Line, e.Token.Start.Column+1))
}

func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}
