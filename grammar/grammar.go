// Package grammar ships an EBNF description of Parseltongue and matches
// its productions against source text and token streams.
//
// The description is documentation that can be checked: Verify proves it
// is closed and reachable from Start, and the matcher lets tests hold the
// tokenizer and parser to it.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Filename is the name the embedded grammar is reported under.
const Filename = "parseltongue.ebnf"

// Start is the production every other production is reachable from.
const Start = "Input"

//go:embed parseltongue.ebnf
var source []byte

// Source returns the text of the embedded grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return ebnf.Parse(Filename, bytes.NewReader(source))
}

// LoadFile parses a grammar from disk.
func LoadFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f)
}

// Parse reads a grammar. Errors are returned unwrapped so callers can
// range over the individual problems ebnf reports.
func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	return ebnf.Parse(filename, r)
}

// Verify checks that every production referenced is defined, that every
// production is reachable from start and that lexical productions only
// refer to lexical productions.
func Verify(g ebnf.Grammar, start string) error {
	return ebnf.Verify(g, start)
}

// IsLexical reports whether the production name describes the text of a
// single token rather than a token sequence.
func IsLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

// Productions returns the production names of g in sorted order.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
