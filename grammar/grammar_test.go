package grammar

import (
	"testing"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"golang.org/x/exp/ebnf"
)

func mustLoad(t *testing.T) ebnf.Grammar {
	t.Helper()
	g, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return g
}

func TestEmbeddedGrammarVerifies(t *testing.T) {
	g := mustLoad(t)
	if err := Verify(g, Start); err != nil {
		t.Fatalf("Verify(%q): %v", Start, err)
	}
	for _, name := range []string{"File", "Statement", "Expression", "Pattern", "name", "number", "string", "operator"} {
		if _, ok := g[name]; !ok {
			t.Errorf("grammar lacks production %s", name)
		}
	}
}

func TestIsLexical(t *testing.T) {
	if !IsLexical("number") || IsLexical("Number") {
		t.Error("capitalized names are syntactic, lowercase names lexical")
	}
}

func TestLexicalProductions(t *testing.T) {
	tests := []struct {
		production string
		input      string
		expected   int
	}{
		{"number", "0x_ff", 5},
		{"number", "1_000", 5},
		{"number", "1_", 1},
		{"number", "10.", 3},
		{"number", ".5", 2},
		{"number", "1e5", 3},
		{"number", "1.5e-3j", 7},
		{"number", "0b101", 5},
		{"number", "0o17", 4},
		{"number", "00", 2},
		{"number", "x", -1},
		{"name", "_x1", 3},
		{"name", "1x", -1},
		{"name", "if", 2},
		{"keyword", "lambda", 6},
		{"string", `rb'a\'b'`, 8},
		{"string", `'''a''b'''`, 10},
		{"string", `"it's"`, 6},
		{"string", `f"{x!r}"`, 8},
		{"string", `'abc`, -1},
		{"string", "'a\nb'", -1},
		{"operator", "**=", 3},
		{"operator", "->x", 2},
		{"operator", "$", -1},
	}

	m := NewMatcher(mustLoad(t))
	for _, test := range tests {
		t.Run(test.production+"/"+test.input, func(t *testing.T) {
			got, err := m.Match(test.production, test.input)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if got != test.expected {
				t.Errorf("Match(%q, %q) = %d, want %d", test.production, test.input, got, test.expected)
			}
		})
	}
}

func TestMatchRejectsSyntacticProductions(t *testing.T) {
	m := NewMatcher(mustLoad(t))
	if _, err := m.Match("File", "x"); err == nil {
		t.Error("expected an error matching text against File")
	}
	if _, err := m.Match("nosuch", "x"); err == nil {
		t.Error("expected an error for an unknown production")
	}
}

// The tokenizer and the lexical productions agree on every token text.
func TestTokenizerAgreesWithGrammar(t *testing.T) {
	src := "def f(a, *args, b=0x_1f, **kw) -> int:\n" +
		"    s = rb'\\x00' + b\"q\"\n" +
		"    t = f'{a!r:>{w}}' 'x' \"\"\"doc \"quoted\" \"\"\"\n" +
		"    return a ** 2 // 3 @ m if not b else [1_000.5e-3j, .5, 7.]\n"
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	m := NewMatcher(mustLoad(t))
	for _, tok := range tokens {
		var production string
		switch tok.Kind {
		case lexer.Name:
			production = "name"
			if lexer.Keywords[tok.Text] {
				production = "keyword"
			}
		case lexer.Number:
			production = "number"
		case lexer.String:
			production = "string"
		case lexer.Op:
			production = "operator"
		default:
			continue
		}
		ok, err := m.MatchString(production, tok.Text)
		if err != nil {
			t.Fatalf("MatchString: %v", err)
		}
		if !ok {
			t.Errorf("%s token %q at %s does not match production %s", tok.Kind, tok.Text, tok.Start, production)
		}
	}
}

func TestKeywordsAgree(t *testing.T) {
	m := NewMatcher(mustLoad(t))
	for kw := range lexer.Keywords {
		if ok, _ := m.MatchString("keyword", kw); !ok {
			t.Errorf("keyword production lacks %q", kw)
		}
	}
	for _, soft := range []string{"match", "case", "_", "print"} {
		if ok, _ := m.MatchString("keyword", soft); ok {
			t.Errorf("keyword production includes %q", soft)
		}
	}
}

func TestFileAcceptsTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"assignment", "x = 1\n", true},
		{"chained assignment", "a = b = c\n", true},
		{"function", "def f(a, b=1):\n  return a + b\n", true},
		{"if else", "if x:\n  pass\nelse:\n  y = [i for i in z]\n", true},
		{"match", "match p:\n  case [1, *_]:\n    pass\n", true},
		{"import", "from . import (a, b as c)\n", true},
		{"continuation", "x = a +\n  b\n", true},
		{"double equals", "x = = 1\n", false},
		{"missing operand", "x = (1 +)\n", false},
	}

	m := NewMatcher(mustLoad(t))
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := lexer.Tokenize(test.input)
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			got, err := m.AcceptsTokens("File", tokens)
			if err != nil {
				t.Fatalf("AcceptsTokens: %v", err)
			}
			if got != test.expected {
				t.Errorf("AcceptsTokens(File, %q) = %v, want %v", test.input, got, test.expected)
			}
		})
	}
}

func TestMatchTokensLexicalProduction(t *testing.T) {
	tokens, err := lexer.Tokenize("** x\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	m := NewMatcher(mustLoad(t))
	n, err := m.MatchTokens("operator", tokens)
	if err != nil {
		t.Fatalf("MatchTokens: %v", err)
	}
	if n != 1 {
		t.Errorf("MatchTokens(operator) = %d, want 1", n)
	}
}
