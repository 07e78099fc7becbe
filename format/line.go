package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/literal"
)

// TokenEncoder writes a token stream to an underlying writer.
type TokenEncoder interface {
	Encode(tokens []lexer.Token) error
}

// LineEncoder lists tokens grouped by source line. Each output line starts
// with the line number, right-aligned, followed by KIND'text' for every
// token starting on it.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tokens []lexer.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(tokens []lexer.Token) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	var sb strings.Builder
	width := len(strconv.Itoa(tokens[len(tokens)-1].Start.Line))
	line := -1
	for _, tok := range tokens {
		if tok.Start.Line != line {
			if line >= 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%*d", width, tok.Start.Line)
			line = tok.End.Line
		}
		fmt.Fprintf(&sb, " %s%s", tok.Kind, literal.Quote(tok.Text))
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}
