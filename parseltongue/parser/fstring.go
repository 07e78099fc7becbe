package parser

import (
	"errors"
	"strings"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
	"github.com/dhamidi/parseltongue/python/literal"
)

// concatenateStrings joins adjacent STRING tokens into one Constant, or a
// JoinedStr when any of them is an f-string.
func (p *Parser) concatenateStrings(toks []*lexer.Token) ast.Expr {
	first, last := toks[0], toks[len(toks)-1]
	pos := ast.Pos{
		Lineno:       first.Start.Line,
		ColOffset:    first.Start.Column,
		EndLineno:    last.End.Line,
		EndColOffset: last.End.Column,
	}

	decoded := make([]*literal.String, len(toks))
	bytesSeen, textSeen, formatSeen := false, false, false
	for i, tok := range toks {
		s, err := literal.ParseString(tok.Text)
		if err != nil {
			p.raiseAt(*tok, "%s", err)
		}
		decoded[i] = s
		bytesSeen = bytesSeen || s.IsBytes
		textSeen = textSeen || !s.IsBytes
		formatSeen = formatSeen || s.IsFormat
	}
	if bytesSeen && textSeen {
		p.raiseRange(KindSyntaxError, first.Start, last.End, "cannot mix bytes and nonbytes literals")
	}

	kind := decoded[0].Kind
	if bytesSeen {
		value := []byte{}
		for _, s := range decoded {
			value = append(value, s.Bytes...)
		}
		return &ast.Constant{Pos: pos, Value: value}
	}
	if !formatSeen {
		var b strings.Builder
		for _, s := range decoded {
			b.WriteString(s.Value)
		}
		return &ast.Constant{Pos: pos, Value: b.String(), Kind: kind}
	}

	joined := &fstringBuilder{p: p, pos: pos, kind: kind}
	for i, s := range decoded {
		if !s.IsFormat {
			joined.text.WriteString(s.Value)
			continue
		}
		parts, err := literal.SplitFString(s.Body, s.IsRaw)
		if err != nil {
			p.raiseAt(*toks[i], "%s", err)
		}
		joined.add(toks[i], s, parts)
	}
	return joined.build()
}

// fstringBuilder accumulates the values of a JoinedStr. Adjacent literal
// text is merged into a single Constant.
type fstringBuilder struct {
	p      *Parser
	pos    ast.Pos
	kind   string
	values []ast.Expr
	text   strings.Builder
}

func (b *fstringBuilder) flush() {
	if b.text.Len() == 0 {
		return
	}
	b.values = append(b.values, &ast.Constant{Pos: b.pos, Value: b.text.String(), Kind: b.kind})
	b.text.Reset()
}

func (b *fstringBuilder) add(tok *lexer.Token, s *literal.String, parts []literal.Part) {
	for _, part := range parts {
		if !part.IsField() {
			b.text.WriteString(part.Literal)
			continue
		}
		b.text.WriteString(part.Debug)
		b.flush()
		value := &ast.FormattedValue{
			Pos:        b.pos,
			Value:      b.p.fstringExpr(tok, s, part),
			Conversion: part.Conversion,
		}
		if part.HasSpec {
			spec := &fstringBuilder{p: b.p, pos: b.pos, kind: b.kind}
			spec.add(tok, s, part.Spec)
			value.FormatSpec = spec.build()
		}
		b.values = append(b.values, value)
	}
}

func (b *fstringBuilder) build() *ast.JoinedStr {
	b.flush()
	values := b.values
	if values == nil {
		values = []ast.Expr{}
	}
	return &ast.JoinedStr{Pos: b.pos, Values: values}
}

// fstringExpr parses the source of one replacement field. The field is
// parsed in parentheses, as CPython does, and the resulting positions are
// moved to where the field sits inside the string token.
func (p *Parser) fstringExpr(tok *lexer.Token, s *literal.String, part literal.Part) ast.Expr {
	sub, err := New("("+part.Expr+")",
		WithFile(p.file),
		WithTabSize(p.tabSize),
		WithTargetVersion(p.targetVersion),
		WithLogger(p.log))
	if err != nil {
		p.raiseFstring(*tok, err)
	}
	expr, err := sub.ParseFstring()
	if err != nil {
		p.raiseFstring(*tok, err)
	}

	base := fieldStart(*tok, s.BodyOffset+part.Offset)
	seen := map[*ast.Pos]bool{}
	ast.Walk(expr, func(n ast.Located) {
		if pos := n.Location(); !seen[pos] {
			seen[pos] = true
			shiftPos(pos, base)
		}
	})
	return expr
}

// fieldStart is the source position of the byte at offset in tok's text.
func fieldStart(tok lexer.Token, offset int) lexer.Position {
	prefix := tok.Text[:offset]
	nl := strings.LastIndexByte(prefix, '\n')
	if nl < 0 {
		return lexer.Position{Line: tok.Start.Line, Column: tok.Start.Column + offset}
	}
	return lexer.Position{Line: tok.Start.Line + strings.Count(prefix, "\n"), Column: offset - nl - 1}
}

// shiftPos moves a span parsed from "(" + expr + ")" to base, the position
// of expr in the file. Columns only move on the first line.
func shiftPos(pos *ast.Pos, base lexer.Position) {
	if pos.Lineno == 1 {
		pos.ColOffset += base.Column - 1
	}
	if pos.EndLineno == 1 {
		pos.EndColOffset += base.Column - 1
	}
	pos.Lineno += base.Line - 1
	pos.EndLineno += base.Line - 1
}

func (p *Parser) raiseFstring(tok lexer.Token, err error) {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		p.raiseAt(tok, "f-string: %s", serr.Msg)
	}
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		p.raiseAt(tok, "f-string: %s", lerr.Msg)
	}
	p.raiseAt(tok, "f-string: invalid syntax")
}
