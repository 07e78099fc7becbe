package lexer

import (
	"fmt"
	"io"
	"strings"
)

// Stream is a random-access cursor over a token slice. Reading past the
// end yields ENDMARKER forever.
type Stream struct {
	tokens []Token
	pos    int
	// furthest is the highest index handed out by Peek or Next.
	furthest int
	end      Token
}

func NewStream(tokens []Token) *Stream {
	s := &Stream{tokens: tokens}
	line := 1
	if n := len(tokens); n > 0 {
		line = tokens[n-1].End.Line + 1
	}
	pos := Position{Line: line, Column: 0}
	s.end = Token{Kind: EndMarker, Start: pos, End: pos}
	return s
}

func (s *Stream) at(i int) Token {
	if i > s.furthest {
		s.furthest = i
	}
	if i < len(s.tokens) {
		return s.tokens[i]
	}
	return s.end
}

func (s *Stream) Peek() Token {
	return s.at(s.pos)
}

func (s *Stream) Next() Token {
	tok := s.at(s.pos)
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok
}

func (s *Stream) Mark() int {
	return s.pos
}

func (s *Stream) Reset(mark int) {
	s.pos = mark
}

// AdvanceIf consumes the next token when pred accepts it.
func (s *Stream) AdvanceIf(pred func(Token) bool) (Token, bool) {
	tok := s.Peek()
	if !pred(tok) {
		return Token{}, false
	}
	return s.Next(), true
}

// LastNonWhitespace returns the last consumed token that is not NEWLINE,
// INDENT, DEDENT or ENDMARKER. With nothing consumed it returns the first
// token.
func (s *Stream) LastNonWhitespace() Token {
	for i := s.pos - 1; i >= 0; i-- {
		if !s.tokens[i].Kind.IsWhitespace() {
			return s.tokens[i]
		}
	}
	return s.at(0)
}

// Diagnose returns the furthest token the parser has looked at, which is
// where a failed parse is reported.
func (s *Stream) Diagnose() Token {
	if s.furthest < len(s.tokens) {
		return s.tokens[s.furthest]
	}
	return s.end
}

// Dump writes tokens one source line per output line, each line prefixed
// with its number.
func Dump(w io.Writer, tokens []Token) error {
	line := 0
	var parts []string
	flush := func() error {
		if len(parts) == 0 {
			return nil
		}
		_, err := fmt.Fprintf(w, "%4d: %s\n", line, strings.Join(parts, " "))
		parts = parts[:0]
		return err
	}
	for _, tok := range tokens {
		if tok.Start.Line != line {
			if err := flush(); err != nil {
				return err
			}
			line = tok.Start.Line
		}
		parts = append(parts, tok.String())
	}
	return flush()
}
