package lexer

import (
	"errors"
	"strings"
	"testing"
)

func summarize(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

func mustTokenize(t *testing.T, src string, opts ...Option) []Token {
	t.Helper()
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	return tokens
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "block",
			input:    "if x:\n    pass\n",
			expected: `NAME"if" NAME"x" OP":" NEWLINE"\n" INDENT"    " NAME"pass" NEWLINE"\n" DEDENT""`,
		},
		{
			name:     "nested blocks",
			input:    "def f():\n  if x:\n      y\n  z\n",
			expected: `NAME"def" NAME"f" OP"(" OP")" OP":" NEWLINE"\n" INDENT"  " NAME"if" NAME"x" OP":" NEWLINE"\n" INDENT"      " NAME"y" NEWLINE"\n" DEDENT"  " NAME"z" NEWLINE"\n" DEDENT""`,
		},
		{
			name:     "operator continuation",
			input:    "x = a +\n    b\n",
			expected: `NAME"x" OP"=" NAME"a" OP"+" NAME"b" NEWLINE"\n"`,
		},
		{
			name:     "keyword continuation",
			input:    "x = a and\nb\n",
			expected: `NAME"x" OP"=" NAME"a" NAME"and" NAME"b" NEWLINE"\n"`,
		},
		{
			name:     "comma ends the line",
			input:    "a,\nb\n",
			expected: `NAME"a" OP"," NEWLINE"\n" NAME"b" NEWLINE"\n"`,
		},
		{
			name:     "star import joins the next line",
			input:    "from m import *\nx = 1\n",
			expected: `NAME"from" NAME"m" NAME"import" OP"*" NAME"x" OP"=" NUMBER"1" NEWLINE"\n"`,
		},
		{
			name:     "brackets",
			input:    "f(a,\n  b,\n)\n",
			expected: `NAME"f" OP"(" NAME"a" OP"," NAME"b" OP"," OP")" NEWLINE"\n"`,
		},
		{
			name:     "backslash continuation",
			input:    "x = 1 \\  # note\n  + 2\n",
			expected: `NAME"x" OP"=" NUMBER"1" OP"+" NUMBER"2" NEWLINE"\n"`,
		},
		{
			name:     "no trailing newline",
			input:    "x",
			expected: `NAME"x" NEWLINE""`,
		},
		{
			name:     "empty",
			input:    "",
			expected: ``,
		},
		{
			name:     "only comments",
			input:    "# a\n\n   # b\n",
			expected: ``,
		},
		{
			name:     "crlf",
			input:    "x\r\ny\r\n",
			expected: `NAME"x" NEWLINE"\r\n" NAME"y" NEWLINE"\r\n"`,
		},
		{
			name:     "byte order mark",
			input:    "\ufeffx\n",
			expected: `NAME"x" NEWLINE"\n"`,
		},
		{
			name:     "longest operator",
			input:    "a **= b // c ... -> d\n",
			expected: `NAME"a" OP"**=" NAME"b" OP"//" NAME"c" OP"..." OP"->" NAME"d" NEWLINE"\n"`,
		},
		{
			name:     "leading dot number",
			input:    "x = .5\n",
			expected: `NAME"x" OP"=" NUMBER".5" NEWLINE"\n"`,
		},
		{
			name:     "numbers",
			input:    "0x_ff 0o17 0b1_0 1_000.5e-3 10j 1. 00\n",
			expected: `NUMBER"0x_ff" NUMBER"0o17" NUMBER"0b1_0" NUMBER"1_000.5e-3" NUMBER"10j" NUMBER"1." NUMBER"00" NEWLINE"\n"`,
		},
		{
			name:     "string prefixes",
			input:    `b'x' Rb"y" f'{a}' u'z' rb` + "\n",
			expected: `STRING"b'x'" STRING"Rb\"y\"" STRING"f'{a}'" STRING"u'z'" NAME"rb" NEWLINE"\n"`,
		},
		{
			name:     "escaped quote",
			input:    `'a\'b'` + "\n",
			expected: `STRING"'a\\'b'" NEWLINE"\n"`,
		},
		{
			name:     "unicode name",
			input:    "größe = 1\n",
			expected: `NAME"größe" OP"=" NUMBER"1" NEWLINE"\n"`,
		},
		{
			name:     "tab indentation",
			input:    "if x:\n\tpass\n",
			expected: `NAME"if" NAME"x" OP":" NEWLINE"\n" INDENT"\t" NAME"pass" NEWLINE"\n" DEDENT""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(mustTokenize(t, tt.input))
			if got != tt.expected {
				t.Errorf("Tokenize(%q) =\n%s\nwant\n%s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestContinuationOperators(t *testing.T) {
	for op := range continuationOps {
		t.Run(op, func(t *testing.T) {
			tokens := mustTokenize(t, "a "+op+"\nb\n")
			want := `NAME"a" OP"` + op + `" NAME"b" NEWLINE"\n"`
			if got := summarize(tokens); got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
	for word := range continuationNames {
		t.Run(word, func(t *testing.T) {
			tokens := mustTokenize(t, "a "+word+"\nb\n")
			want := `NAME"a" NAME"` + word + `" NAME"b" NEWLINE"\n"`
			if got := summarize(tokens); got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestIndentBalance(t *testing.T) {
	inputs := []string{
		"if a:\n  if b:\n    if c:\n      d\n",
		"if a:\n    b\nc\n",
		"class A:\n    def f(self):\n        return 1\n    def g(self):\n        pass\n\nx = 1\n",
		"x = [\n    1,\n        2,\n  3]\n",
		"   a\n   if b:\n\n       c\n",
		"if a:\n    b\n# trailing comment\n",
	}
	for _, input := range inputs {
		tokens := mustTokenize(t, input)
		depth := 0
		for _, tok := range tokens {
			switch tok.Kind {
			case Indent:
				depth++
			case Dedent:
				depth--
			}
			if depth < 0 {
				t.Fatalf("Tokenize(%q): DEDENT without INDENT", input)
			}
		}
		if depth != 0 {
			t.Errorf("Tokenize(%q): %d unbalanced INDENT tokens", input, depth)
		}
	}
}

func TestNoIndentInsideBrackets(t *testing.T) {
	tokens := mustTokenize(t, "x = {\n        'a': 1,\n  'b': (\n      2),\n}\n")
	depth := 0
	for _, tok := range tokens {
		switch {
		case tok.Kind == Op && (tok.Text == "(" || tok.Text == "[" || tok.Text == "{"):
			depth++
		case tok.Kind == Op && isClosingBracket(tok.Text):
			depth--
		case depth > 0 && tok.Kind.IsWhitespace():
			t.Errorf("%s inside brackets at %s", tok.Kind, tok.Start)
		}
	}
}

func TestCommentsAreInvisible(t *testing.T) {
	plain := summarize(mustTokenize(t, "x = 1\ny = 2\n"))
	commented := summarize(mustTokenize(t, "x = 1  # one\n\n   \n# only a comment\ny = 2\n"))
	if plain != commented {
		t.Errorf("comments changed the stream:\n%s\n%s", plain, commented)
	}
}

func TestBaseIndentation(t *testing.T) {
	got := summarize(mustTokenize(t, "\n    x = 1\n    y = 2\n"))
	want := `NAME"x" OP"=" NUMBER"1" NEWLINE"\n" NAME"y" OP"=" NUMBER"2" NEWLINE"\n"`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestTabSize(t *testing.T) {
	src := "if x:\n        a\n\tb\n"
	got := summarize(mustTokenize(t, src))
	want := `NAME"if" NAME"x" OP":" NEWLINE"\n" INDENT"        " NAME"a" NEWLINE"\n" NAME"b" NEWLINE"\n" DEDENT""`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	_, err := Tokenize(src, WithTabSize(4))
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *Error with tab size 4, got %v", err)
	}
	if lexErr.Msg != "dedent to 4 but expected 0" {
		t.Errorf("Msg = %q", lexErr.Msg)
	}
}

func TestPositions(t *testing.T) {
	tokens := mustTokenize(t, "s = '''a\nb'''\nt\n")
	str := tokens[2]
	if str.Kind != String {
		t.Fatalf("tokens[2] = %s, want STRING", str)
	}
	if str.Start != (Position{1, 4}) || str.End != (Position{2, 4}) {
		t.Errorf("STRING span = %s-%s, want 1:4-2:4", str.Start, str.End)
	}
	if str.Line != "s = '''a" {
		t.Errorf("Line = %q", str.Line)
	}
	nl := tokens[3]
	if nl.Kind != Newline || nl.Start != (Position{2, 4}) || nl.End != (Position{2, 5}) {
		t.Errorf("NEWLINE = %s at %s-%s, want 2:4-2:5", nl, nl.Start, nl.End)
	}
	if name := tokens[4]; name.Start != (Position{3, 0}) || name.Line != "t" {
		t.Errorf("NAME = %s at %s (%q)", name, name.Start, name.Line)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		msg    string
		line   int
		column int
	}{
		{"dedent mismatch", "if x:\n    a\n  b\n", "dedent to 2 but expected 0", 3, 3},
		{"dedent below base", "  a\nb\n", "dedent beyond global indent", 2, 1},
		{"mismatched bracket", "(a]\n", "'(' closed by ']'", 1, 3},
		{"extra closing", "a)\n", "Extra closing ')'", 1, 2},
		{"unclosed", "x = f(a,\n  b\n", "unclosed '('", 1, 6},
		{"unknown character", "a ? b\n", "failed to parse token", 1, 3},
		{"leading zeros", "x = 0123\n", "leading zeros in decimal integer literals are not permitted", 1, 5},
		{"unterminated string", "x = 'abc\n", "unterminated string literal", 1, 5},
		{"unterminated triple", "x = \"\"\"abc\n\n", "unterminated triple-quoted string literal", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input, WithFile("test.pt"))
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("Tokenize(%q) error = %v, want *Error", tt.input, err)
			}
			if lexErr.Msg != tt.msg {
				t.Errorf("Msg = %q, want %q", lexErr.Msg, tt.msg)
			}
			if lexErr.Line != tt.line || lexErr.Column != tt.column {
				t.Errorf("position = %d.%d, want %d.%d", lexErr.Line, lexErr.Column, tt.line, tt.column)
			}
			if lexErr.File != "test.pt" {
				t.Errorf("File = %q", lexErr.File)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Error("errors.Is(err, ErrSyntax) = false")
			}
		})
	}
}

func TestErrorFormat(t *testing.T) {
	_, err := Tokenize("if x:\n    a\n  b\n", WithFile("demo.pt"))
	if err == nil {
		t.Fatal("expected error")
	}
	want := "demo.pt:3.3 - dedent to 2 but expected 0\n  b\n  ^"
	if err.Error() != want {
		t.Errorf("Error() =\n%s\nwant\n%s", err.Error(), want)
	}
}

func TestCaret(t *testing.T) {
	tests := []struct {
		source   string
		column   int
		expected string
	}{
		{"abc", 1, "^"},
		{"abc", 3, "  ^"},
		{"\tx = 1", 2, "\t^"},
		{"ab", 4, "   ^"},
	}
	for _, tt := range tests {
		if got := Caret(tt.source, tt.column); got != tt.expected {
			t.Errorf("Caret(%q, %d) = %q, want %q", tt.source, tt.column, got, tt.expected)
		}
	}
}
