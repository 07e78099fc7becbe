package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultTabSize = 8

type Option func(*Lexer)

// WithFile sets the label used in error messages.
func WithFile(path string) Option {
	return func(l *Lexer) {
		l.file = path
	}
}

func WithTabSize(n int) Option {
	return func(l *Lexer) {
		if n > 0 {
			l.tabSize = n
		}
	}
}

// nest is an open bracket or indentation level waiting to be closed.
type nest struct {
	tok    Token
	closes func(Token) bool
}

// Lexer turns Parseltongue source into tokens. Indentation is resolved to
// INDENT and DEDENT tokens, and line breaks after an operator that expects
// more input, or inside brackets, are dropped.
type Lexer struct {
	src       string
	file      string
	tabSize   int
	pos       int
	lineNum   int
	lineStart int
	line      string
	indents   []int
	nests     []nest
	brackets  int
	tokens    []Token
}

func NewLexer(src string, opts ...Option) *Lexer {
	l := &Lexer{
		src:     strings.TrimPrefix(src, "\ufeff"),
		tabSize: DefaultTabSize,
		lineNum: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize is a shorthand for NewLexer(src, opts...).Tokenize().
func Tokenize(src string, opts ...Option) ([]Token, error) {
	return NewLexer(src, opts...).Tokenize()
}

// Tokenize consumes the whole input. It may be called once.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.setLine()
	l.skipBlankLines()
	base, _ := l.measureIndent()
	l.indents = []int{base}
	if err := l.startLine(); err != nil {
		return nil, err
	}
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	if err := l.finish(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) setLine() {
	end := strings.IndexByte(l.src[l.lineStart:], '\n')
	if end < 0 {
		l.line = l.src[l.lineStart:]
	} else {
		l.line = l.src[l.lineStart : l.lineStart+end]
	}
	l.line = strings.TrimSuffix(l.line, "\r")
}

func (l *Lexer) column() int {
	return l.pos - l.lineStart
}

func (l *Lexer) errorAt(line, col int, source, format string, args ...any) error {
	return &Error{
		File:   l.file,
		Line:   line,
		Column: col + 1,
		Msg:    fmt.Sprintf(format, args...),
		Source: source,
	}
}

func (l *Lexer) errorf(format string, args ...any) error {
	return l.errorAt(l.lineNum, l.column(), l.line, format, args...)
}

func (l *Lexer) errorAtToken(tok Token, format string, args ...any) error {
	return l.errorAt(tok.Start.Line, tok.Start.Column, tok.Line, format, args...)
}

// measureIndent returns the indentation width at l.pos and the offset of
// the first non-blank character.
func (l *Lexer) measureIndent() (int, int) {
	width := 0
	pos := l.pos
	for ; pos < len(l.src); pos++ {
		switch l.src[pos] {
		case ' ':
			width++
		case '\t':
			width = (width/l.tabSize + 1) * l.tabSize
		case '\f':
			width = 0
		default:
			return width, pos
		}
	}
	return width, pos
}

func (l *Lexer) startLine() error {
	width, pos := l.measureIndent()
	l.pos = pos
	if l.pos == len(l.src) {
		return nil
	}
	top := l.indents[len(l.indents)-1]
	if width > top {
		l.indents = append(l.indents, width)
		tok := l.indentToken(Indent, nil)
		l.nests = append(l.nests, nest{tok: tok, closes: func(t Token) bool { return t.Kind == Dedent }})
	}
	for width < top {
		if err := l.dedent(nil); err != nil {
			return err
		}
		top = l.indents[len(l.indents)-1]
		if width > top {
			return l.errorf("dedent to %d but expected %d", width, top)
		}
	}
	return nil
}

// indentToken appends an INDENT or DEDENT. A DEDENT forced by a closing
// bracket borrows that bracket's text and span.
func (l *Lexer) indentToken(kind TokenKind, like *Token) Token {
	var tok Token
	if like == nil {
		tok = Token{
			Kind:  kind,
			Text:  l.src[l.lineStart:l.pos],
			Start: Position{Line: l.lineNum, Column: 0},
			End:   Position{Line: l.lineNum, Column: l.column()},
			Line:  l.line,
		}
	} else {
		tok = *like
		tok.Kind = kind
	}
	l.tokens = append(l.tokens, tok)
	return tok
}

func (l *Lexer) dedent(like *Token) error {
	if len(l.indents) == 1 {
		return l.errorf("dedent beyond global indent")
	}
	l.indents = l.indents[:len(l.indents)-1]
	tok := l.indentToken(Dedent, like)
	return l.unnest(tok)
}

// unnest closes the innermost nest with tok. Indentation levels still open
// inside a closing bracket are dedented first.
func (l *Lexer) unnest(tok Token) error {
	for {
		if len(l.nests) == 0 {
			return l.errorAtToken(tok, "Extra closing %s", describe(tok))
		}
		top := l.nests[len(l.nests)-1]
		if top.closes(tok) {
			l.nests = l.nests[:len(l.nests)-1]
			if top.tok.Kind == Op {
				l.brackets--
			}
			return nil
		}
		if top.tok.Kind != Indent {
			return l.errorAtToken(tok, "%s closed by %s", describe(top.tok), describe(tok))
		}
		if err := l.dedent(&tok); err != nil {
			return err
		}
	}
}

func describe(tok Token) string {
	switch tok.Kind {
	case Indent, Dedent:
		return tok.Kind.String()
	}
	return "'" + tok.Text + "'"
}

// skipBlankLines consumes whitespace-only and comment-only lines so they
// never take part in indentation.
func (l *Lexer) skipBlankLines() {
	for {
		i := l.pos
		for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t' || l.src[i] == '\f') {
			i++
		}
		if end := l.matchNewline(i); end > 0 {
			l.consume(Newline, end, false)
			continue
		}
		if i < len(l.src) && l.src[i] == '#' {
			l.consume(Newline, l.matchComment(i), false)
			continue
		}
		return
	}
}

func (l *Lexer) next() error {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\f') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return nil
	}

	if l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		end, err := l.scanNumber(l.pos)
		if err != nil {
			return err
		}
		_, err = l.consume(Number, end, true)
		return err
	}
	if end := l.scanOperator(l.pos); end > 0 {
		_, err := l.consume(Op, end, true)
		return err
	}
	if isDigit(l.src[l.pos]) {
		end, err := l.scanNumber(l.pos)
		if err != nil {
			return err
		}
		_, err = l.consume(Number, end, true)
		return err
	}
	end, err := l.scanString(l.pos)
	if err != nil {
		return err
	}
	if end > 0 {
		_, err := l.consume(String, end, true)
		return err
	}
	if end := l.scanName(l.pos); end > 0 {
		_, err := l.consume(Name, end, true)
		return err
	}

	if end := l.matchNewline(l.pos); end > 0 {
		prev, ok := l.prev()
		emit := l.brackets == 0 && ok && prev.Kind != Newline && !ContinuesLine(prev)
		if _, err := l.consume(Newline, end, emit); err != nil {
			return err
		}
		l.skipBlankLines()
		if emit {
			return l.startLine()
		}
		return nil
	}
	if l.src[l.pos] == '#' {
		_, err := l.consume(Newline, l.matchComment(l.pos), false)
		return err
	}
	if end := l.matchContinuation(l.pos); end > 0 {
		_, err := l.consume(Newline, end, false)
		return err
	}
	return l.errorf("failed to parse token")
}

// consume advances over src[l.pos:end], keeping line bookkeeping current.
// The token is recorded only when emit is set.
func (l *Lexer) consume(kind TokenKind, end int, emit bool) (Token, error) {
	start := l.pos
	text := l.src[start:end]
	tok := Token{
		Kind:  kind,
		Text:  text,
		Start: Position{Line: l.lineNum, Column: start - l.lineStart},
		Line:  l.line,
	}

	if nl := strings.LastIndexByte(text, '\n'); nl >= 0 {
		l.lineNum += strings.Count(text, "\n")
		l.lineStart = start + nl + 1
		l.setLine()
	}
	l.pos = end
	tok.End = Position{Line: l.lineNum, Column: end - l.lineStart}
	if kind == Newline {
		tok.End = Position{Line: tok.Start.Line, Column: tok.Start.Column + len(text)}
	}

	if kind == Op {
		if closing, ok := closingBrackets[text]; ok {
			l.nests = append(l.nests, nest{tok: tok, closes: func(t Token) bool {
				return t.Kind == Op && t.Text == closing
			}})
			l.brackets++
		} else if isClosingBracket(text) {
			if err := l.unnest(tok); err != nil {
				return tok, err
			}
		}
	}
	if emit {
		l.tokens = append(l.tokens, tok)
	}
	return tok, nil
}

func (l *Lexer) prev() (Token, bool) {
	if len(l.tokens) == 0 {
		return Token{}, false
	}
	return l.tokens[len(l.tokens)-1], true
}

func (l *Lexer) finish() error {
	for i := len(l.nests) - 1; i >= 0; i-- {
		if n := l.nests[i]; n.tok.Kind == Op {
			return l.errorAtToken(n.tok, "unclosed %s", describe(n.tok))
		}
	}
	if prev, ok := l.prev(); ok && prev.Kind != Newline {
		pos := Position{Line: l.lineNum, Column: l.column()}
		l.tokens = append(l.tokens, Token{Kind: Newline, Start: pos, End: pos, Line: l.line})
	}
	for len(l.indents) > 1 {
		if err := l.dedent(nil); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lexer) matchNewline(i int) int {
	if i < len(l.src) && l.src[i] == '\n' {
		return i + 1
	}
	if i+1 < len(l.src) && l.src[i] == '\r' && l.src[i+1] == '\n' {
		return i + 2
	}
	return 0
}

func (l *Lexer) matchComment(i int) int {
	for i < len(l.src) && l.src[i] != '\n' && l.src[i] != '\r' {
		i++
	}
	return i
}

// matchContinuation matches a backslash, optional whitespace and comment,
// and the line break.
func (l *Lexer) matchContinuation(i int) int {
	if i >= len(l.src) || l.src[i] != '\\' {
		return 0
	}
	i++
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t' || l.src[i] == '\f') {
		i++
	}
	if i < len(l.src) && l.src[i] == '#' {
		i = l.matchComment(i)
	}
	return l.matchNewline(i)
}

func (l *Lexer) scanOperator(i int) int {
	rest := l.src[i:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return i + len(op)
		}
	}
	return 0
}

func (l *Lexer) scanName(i int) int {
	j := i
	for j < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[j:])
		if !isWordRune(r) {
			break
		}
		j += size
	}
	if j == i {
		return 0
	}
	return j
}

// digitPart scans [0-9](_?[0-9])* from i and returns its end, or -1 when
// there is no leading digit. A trailing underscore is not consumed.
func (l *Lexer) digitPart(i int, valid func(byte) bool) int {
	if i >= len(l.src) || !valid(l.src[i]) {
		return -1
	}
	i++
	for i < len(l.src) {
		if valid(l.src[i]) {
			i++
		} else if l.src[i] == '_' && i+1 < len(l.src) && valid(l.src[i+1]) {
			i += 2
		} else {
			break
		}
	}
	return i
}

func (l *Lexer) scanNumber(i int) (int, error) {
	s := l.src
	if s[i] == '0' && i+1 < len(s) {
		var valid func(byte) bool
		switch s[i+1] {
		case 'x', 'X':
			valid = isHexDigit
		case 'o', 'O':
			valid = isOctDigit
		case 'b', 'B':
			valid = isBinDigit
		}
		if valid != nil {
			start := i + 2
			if start < len(s) && s[start] == '_' {
				start++
			}
			if end := l.digitPart(start, valid); end > 0 {
				return end, nil
			}
		}
	}

	isFloat := false
	end := l.digitPart(i, isDigit)
	if end < 0 {
		// ".5"
		end = l.digitPart(i+1, isDigit)
		isFloat = true
	} else if end < len(s) && s[end] == '.' {
		isFloat = true
		if frac := l.digitPart(end+1, isDigit); frac > 0 {
			end = frac
		} else {
			end++
		}
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if exp := l.digitPart(j, isDigit); exp > 0 {
			end = exp
			isFloat = true
		}
	}
	if end < len(s) && (s[end] == 'j' || s[end] == 'J') {
		return end + 1, nil
	}
	if !isFloat && s[i] == '0' {
		for k := i; k < end; k++ {
			if s[k] != '0' && s[k] != '_' {
				return 0, l.errorf("leading zeros in decimal integer literals are not permitted")
			}
		}
	}
	return end, nil
}

// scanString matches an optionally prefixed string literal at i. It
// returns 0 when the text at i does not start a string.
func (l *Lexer) scanString(i int) (int, error) {
	s := l.src
	j := i
	for j < len(s) && j-i < 2 && strings.IndexByte("rRbBuUfF", s[j]) >= 0 {
		j++
	}
	if j >= len(s) || (s[j] != '\'' && s[j] != '"') {
		return 0, nil
	}
	if !validPrefix(strings.ToLower(s[i:j])) {
		return 0, nil
	}

	q := s[j]
	if strings.HasPrefix(s[j:], string([]byte{q, q, q})) {
		triple := string([]byte{q, q, q})
		for k := j + 3; k < len(s); {
			switch {
			case s[k] == '\\':
				k += 2
			case strings.HasPrefix(s[k:], triple):
				return k + 3, nil
			default:
				k++
			}
		}
		return 0, l.errorf("unterminated triple-quoted string literal")
	}

	for k := j + 1; k < len(s); {
		switch s[k] {
		case '\\':
			if end := l.matchNewline(k + 1); end > 0 {
				k = end
			} else {
				k += 2
			}
		case q:
			return k + 1, nil
		case '\n', '\r':
			return 0, l.errorf("unterminated string literal")
		default:
			k++
		}
	}
	return 0, l.errorf("unterminated string literal")
}

func validPrefix(p string) bool {
	switch p {
	case "", "r", "u", "f", "b", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isBinDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

func isWordRune(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '_' || isDigit(byte(r)) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}
