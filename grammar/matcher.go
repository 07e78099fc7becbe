package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"golang.org/x/exp/ebnf"
)

const noMatch = -1

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// input is what a Matcher walks over. Offsets are bytes for text and
// token indices for token streams.
type input interface {
	token(lit string, offset int) int
	rng(lo, hi rune, offset int) int
	// reference matches a production without expanding it. ok is false
	// when the production has to be expanded by the matcher.
	reference(name string, offset int) (n int, ok bool)
}

// Matcher matches grammar productions. Alternatives take the longest
// match, repetitions are greedy and nothing is retried once matched, so
// the grammar has to be written for that discipline.
//
// A Matcher is not safe for concurrent use.
type Matcher struct {
	grammar  ebnf.Grammar
	in       input
	memo     map[memoKey]int  // memoization cache: key -> match length (-1 = no match)
	visiting map[memoKey]bool // cycle detection
	furthest int
}

// NewMatcher creates a matcher for the given grammar.
func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{grammar: g}
}

func (m *Matcher) reset(in input) {
	m.in = in
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
}

func (m *Matcher) lookup(production string) error {
	if _, ok := m.grammar[production]; !ok {
		return fmt.Errorf("grammar: no production %q", production)
	}
	return nil
}

// Match returns the length of the longest prefix of text that the lexical
// production matches, or -1.
func (m *Matcher) Match(production, text string) (int, error) {
	if !IsLexical(production) {
		return noMatch, fmt.Errorf("grammar: %s is not a lexical production", production)
	}
	if err := m.lookup(production); err != nil {
		return noMatch, err
	}
	m.reset(textInput(text))
	return m.matchName(production, 0), nil
}

// MatchString reports whether the lexical production matches all of text.
func (m *Matcher) MatchString(production, text string) (bool, error) {
	n, err := m.Match(production, text)
	return err == nil && n == len(text), err
}

// MatchTokens returns how many tokens the production matches from the
// start of tokens, or -1. A lexical production matches exactly one token.
// An ENDMARKER is assumed after the last token and counts towards the
// result when the production consumes it.
func (m *Matcher) MatchTokens(production string, tokens []lexer.Token) (int, error) {
	if err := m.lookup(production); err != nil {
		return noMatch, err
	}
	in := &tokenInput{tokens: withEndMarker(tokens), text: NewMatcher(m.grammar)}
	m.reset(in)
	n := m.matchName(production, 0)
	m.furthest = in.furthest
	return n, nil
}

// AcceptsTokens reports whether the production matches the whole token
// stream including its end marker.
func (m *Matcher) AcceptsTokens(production string, tokens []lexer.Token) (bool, error) {
	n, err := m.MatchTokens(production, tokens)
	if err != nil {
		return false, err
	}
	return n == len(withEndMarker(tokens)), nil
}

// Furthest is the index of the furthest token the last MatchTokens call
// looked at. On a failed match it points at or near the offending token.
func (m *Matcher) Furthest() int {
	return m.furthest
}

func withEndMarker(tokens []lexer.Token) []lexer.Token {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == lexer.EndMarker {
		return tokens
	}
	line := 1
	if n := len(tokens); n > 0 {
		line = tokens[n-1].End.Line + 1
	}
	end := lexer.Position{Line: line}
	return append(tokens[:len(tokens):len(tokens)], lexer.Token{Kind: lexer.EndMarker, Start: end, End: end})
}

// match attempts to match an expression at the given offset.
// Returns the length of the match, or -1 if no match.
func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return m.in.token(e.String, offset)

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		return m.in.rng(lo, hi, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			best = max(best, m.match(alt, offset))
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		return max(m.match(e.Body, offset), 0)

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return noMatch
}

// matchName matches a named production with memoization and cycle detection.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if result, ok := m.memo[key]; ok {
		return result
	}
	if result, ok := m.in.reference(name, offset); ok {
		m.memo[key] = result
		return result
	}

	// Left recursion at the same offset cannot make progress.
	if m.visiting[key] {
		return noMatch
	}
	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = noMatch
		return noMatch
	}

	m.visiting[key] = true
	result := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = result
	return result
}

type textInput string

func (s textInput) token(lit string, offset int) int {
	if strings.HasPrefix(string(s[offset:]), lit) {
		return len(lit)
	}
	return noMatch
}

func (s textInput) rng(lo, hi rune, offset int) int {
	if offset >= len(s) {
		return noMatch
	}
	r, size := utf8.DecodeRuneInString(string(s[offset:]))
	if r == utf8.RuneError && size <= 1 {
		return noMatch
	}
	if r >= lo && r <= hi {
		return size
	}
	return noMatch
}

func (textInput) reference(string, int) (int, bool) {
	return 0, false
}

// tokenKinds are the lexical productions that stand for a whole token
// kind. Other lexical productions match a token by its text.
var tokenKinds = map[string]lexer.TokenKind{
	"name":      lexer.Name,
	"number":    lexer.Number,
	"string":    lexer.String,
	"newline":   lexer.Newline,
	"indent":    lexer.Indent,
	"dedent":    lexer.Dedent,
	"endmarker": lexer.EndMarker,
}

type tokenInput struct {
	tokens   []lexer.Token
	text     *Matcher
	furthest int
}

func (in *tokenInput) at(offset int) (lexer.Token, bool) {
	if offset >= len(in.tokens) {
		return lexer.Token{}, false
	}
	in.furthest = max(in.furthest, offset)
	return in.tokens[offset], true
}

func (in *tokenInput) token(lit string, offset int) int {
	if tok, ok := in.at(offset); ok && tok.Is(lit) {
		return 1
	}
	return noMatch
}

func (in *tokenInput) rng(rune, rune, int) int {
	return noMatch
}

func (in *tokenInput) reference(name string, offset int) (int, bool) {
	if !IsLexical(name) {
		return 0, false
	}
	tok, ok := in.at(offset)
	if !ok {
		return noMatch, true
	}
	if kind, ok := tokenKinds[name]; ok {
		// Reserved words are spelled out by the rules that use them.
		if tok.Kind != kind || (kind == lexer.Name && lexer.Keywords[tok.Text]) {
			return noMatch, true
		}
		return 1, true
	}
	if tok.Kind.IsWhitespace() {
		return noMatch, true
	}
	if full, err := in.text.MatchString(name, tok.Text); err == nil && full {
		return 1, true
	}
	return noMatch, true
}
