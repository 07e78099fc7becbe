package parser

import (
	"fmt"
	"reflect"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

type memoKey struct {
	rule string
	pos  int
}

type memoEntry struct {
	value any
	end   int
}

// present reports whether a rule result is a match. Rules signal no match
// with a nil pointer, interface or slice.
func present(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return !rv.IsNil()
	}
	return true
}

func (p *Parser) mark() int {
	return p.stream.Mark()
}

func (p *Parser) resetTo(mark int) {
	p.stream.Reset(mark)
}

// memo caches the result of fn together with the position it stopped at,
// keyed by rule name and start position. A miss restores the start
// position.
func memo[T any](p *Parser, rule string, fn func() T) T {
	mark := p.mark()
	key := memoKey{rule, mark}
	if e, ok := p.memo[key]; ok {
		p.resetTo(e.end)
		v, _ := e.value.(T)
		return v
	}
	v := fn()
	if !present(v) {
		p.resetTo(mark)
	}
	p.memo[key] = memoEntry{value: v, end: p.mark()}
	return v
}

// memoLeftRec evaluates a left-recursive rule by growing a seed: the
// recursive call first sees a failure, then each iteration sees the
// previous, longer result, until an iteration no longer gets further.
func memoLeftRec[T any](p *Parser, rule string, fn func() T) T {
	mark := p.mark()
	key := memoKey{rule, mark}
	if e, ok := p.memo[key]; ok {
		p.resetTo(e.end)
		v, _ := e.value.(T)
		return v
	}

	p.memo[key] = memoEntry{value: nil, end: mark}
	var last T
	lastMark := mark
	// An accepted iteration ends strictly further along, so growth takes
	// at most one step per remaining token.
	limit := seedLimit(len(p.tokens), mark)
	for i := 0; ; i++ {
		if i > limit {
			panic(fmt.Sprintf("parser: left recursion in %s did not converge at token %d", rule, mark))
		}
		p.resetTo(mark)
		p.inRawRule++
		result := fn()
		p.inRawRule--
		end := p.mark()
		if !present(result) || end <= lastMark {
			break
		}
		p.memo[key] = memoEntry{value: result, end: end}
		last, lastMark = result, end
	}
	p.resetTo(lastMark)
	if !present(last) {
		p.memo[key] = memoEntry{value: nil, end: mark}
	}
	return last
}

// seedLimit bounds the growth steps of a seed planted at mark.
func seedLimit(tokens, mark int) int {
	return tokens - mark + 1
}

// choice tries each alternative in order from the same position and
// returns the first match. An alternative that fails after setting p.cut
// ends the choice.
func choice[T any](p *Parser, alts ...func() T) T {
	var zero T
	mark := p.mark()
	outer := p.cut
	defer func() { p.cut = outer }()
	for _, alt := range alts {
		p.cut = false
		if v := alt(); present(v) {
			return v
		}
		p.resetTo(mark)
		if p.cut {
			break
		}
	}
	return zero
}

// zeroOrMore collects matches of fn until it fails. The result is never
// nil.
func zeroOrMore[T any](p *Parser, fn func() T) []T {
	items := []T{}
	for {
		mark := p.mark()
		v := fn()
		if !present(v) {
			p.resetTo(mark)
			return items
		}
		items = append(items, v)
	}
}

func oneOrMore[T any](p *Parser, fn func() T) []T {
	items := zeroOrMore(p, fn)
	if len(items) == 0 {
		return nil
	}
	return items
}

// gather matches sep.fn+ : one or more fn separated by sep. A trailing
// separator is left unconsumed.
func gather[T any](p *Parser, sep string, fn func() T) []T {
	mark := p.mark()
	first := fn()
	if !present(first) {
		p.resetTo(mark)
		return nil
	}
	items := []T{first}
	for {
		mark := p.mark()
		if p.expect(sep) == nil {
			return items
		}
		v := fn()
		if !present(v) {
			p.resetTo(mark)
			return items
		}
		items = append(items, v)
	}
}

// lookahead runs fn and restores the position. It reports whether the
// outcome matched positive.
func lookahead[T any](p *Parser, positive bool, fn func() T) bool {
	mark := p.mark()
	ok := present(fn())
	p.resetTo(mark)
	return ok == positive
}

// attempt runs fn and restores the position if it does not match.
func attempt[T any](p *Parser, fn func() T) T {
	mark := p.mark()
	v := fn()
	if !present(v) {
		p.resetTo(mark)
	}
	return v
}

// invalid runs an invalid_* rule on the second pass. Such rules panic with
// a SyntaxError when they match; otherwise the position is restored.
func (p *Parser) invalid(fn func()) {
	if !p.callInvalidRules {
		return
	}
	mark := p.mark()
	fn()
	p.resetTo(mark)
}

// Tokens

func (p *Parser) peek() lexer.Token {
	return p.stream.Peek()
}

func (p *Parser) expect(text string) *lexer.Token {
	if tok, ok := p.stream.AdvanceIf(func(t lexer.Token) bool { return t.Is(text) }); ok {
		return &tok
	}
	return nil
}

func (p *Parser) expectKind(kind lexer.TokenKind) *lexer.Token {
	if tok, ok := p.stream.AdvanceIf(func(t lexer.Token) bool { return t.Kind == kind }); ok {
		return &tok
	}
	return nil
}

// expectForced consumes text or raises "expected <desc>".
func (p *Parser) expectForced(text, desc string) *lexer.Token {
	if tok := p.expect(text); tok != nil {
		return tok
	}
	p.raiseAt(p.peek(), "expected %s", desc)
	return nil
}

func (p *Parser) softKeyword(text string) *lexer.Token {
	if tok, ok := p.stream.AdvanceIf(func(t lexer.Token) bool { return t.Kind == lexer.Name && t.Text == text }); ok {
		return &tok
	}
	return nil
}

func isNameToken(t lexer.Token) bool {
	return t.Kind == lexer.Name && !lexer.Keywords[t.Text]
}

func (p *Parser) nameToken() *lexer.Token {
	if tok, ok := p.stream.AdvanceIf(isNameToken); ok {
		return &tok
	}
	return nil
}

// name consumes an identifier that is not a reserved word.
func (p *Parser) name() *ast.Name {
	tok := p.nameToken()
	if tok == nil {
		return nil
	}
	return &ast.Name{Pos: tokenPos(*tok), Id: tok.Text, Ctx: ast.Load}
}

func (p *Parser) numberToken() *lexer.Token {
	return p.expectKind(lexer.Number)
}

func (p *Parser) stringToken() *lexer.Token {
	return p.expectKind(lexer.String)
}

// nextIs reports whether the next token is one of texts.
func (p *Parser) nextIs(texts ...string) bool {
	tok := p.peek()
	for _, text := range texts {
		if tok.Is(text) {
			return true
		}
	}
	return false
}

func (p *Parser) nextKind(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

// lastLevel is the bracket depth after the last consumed token.
func (p *Parser) lastLevel() int {
	if i := p.mark() - 1; i >= 0 && i < len(p.levels) {
		return p.levels[i]
	}
	return 0
}

// Positions

func (p *Parser) start() lexer.Position {
	return p.peek().Start
}

// span covers from start to the end of the last consumed token.
func (p *Parser) span(start lexer.Position) ast.Pos {
	end := p.stream.LastNonWhitespace().End
	return ast.Pos{Lineno: start.Line, ColOffset: start.Column, EndLineno: end.Line, EndColOffset: end.Column}
}

func tokenPos(tok lexer.Token) ast.Pos {
	return ast.Pos{Lineno: tok.Start.Line, ColOffset: tok.Start.Column, EndLineno: tok.End.Line, EndColOffset: tok.End.Column}
}

func spanNodes(a, b ast.Located) ast.Pos {
	s, e := a.Location(), b.Location()
	return ast.Pos{Lineno: s.Lineno, ColOffset: s.ColOffset, EndLineno: e.EndLineno, EndColOffset: e.EndColOffset}
}

// Errors

func (p *Parser) sourceLine(line int) string {
	if line >= 1 && line <= len(p.lines) {
		return p.lines[line-1]
	}
	return ""
}

func (p *Parser) raiseRange(kind string, start, end lexer.Position, format string, args ...any) {
	panic(&SyntaxError{
		Kind:      kind,
		Msg:       fmt.Sprintf(format, args...),
		File:      p.file,
		Line:      start.Line,
		Column:    start.Column + 1,
		EndLine:   end.Line,
		EndColumn: end.Column + 1,
		Source:    p.sourceLine(start.Line),
	})
}

// raise reports at the furthest token reached.
func (p *Parser) raise(format string, args ...any) {
	tok := p.stream.Diagnose()
	p.raiseRange(KindSyntaxError, tok.Start, tok.End, format, args...)
}

func (p *Parser) raiseIndentation(format string, args ...any) {
	tok := p.stream.Diagnose()
	p.raiseRange(KindIndentationError, tok.Start, tok.End, format, args...)
}

func (p *Parser) raiseAt(tok lexer.Token, format string, args ...any) {
	p.raiseRange(KindSyntaxError, tok.Start, tok.End, format, args...)
}

func (p *Parser) raiseNode(n ast.Located, format string, args ...any) {
	p.raiseNodes(n, n, format, args...)
}

func (p *Parser) raiseNodes(a, b ast.Located, format string, args ...any) {
	s, e := a.Location(), b.Location()
	p.raiseRange(KindSyntaxError,
		lexer.Position{Line: s.Lineno, Column: s.ColOffset},
		lexer.Position{Line: e.EndLineno, Column: e.EndColOffset},
		format, args...)
}

// checkVersion rejects a feature the target version does not have.
func (p *Parser) checkVersion(minor int, feature string) {
	if p.targetVersion < minor {
		p.raise("%s only supported in Python 3.%d and greater", feature, minor)
	}
}
