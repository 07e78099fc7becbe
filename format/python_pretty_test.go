package format

import (
	"strings"
	"testing"

	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/python/ast"
)

// Helper function to parse an expression and render it
func formatExpr(t *testing.T, input string) string {
	t.Helper()
	expr, err := parser.Eval(input)
	if err != nil {
		t.Fatalf("parse error for input %q: %v", input, err)
	}
	out, err := Python(expr)
	if err != nil {
		t.Fatalf("format error for input %q: %v", input, err)
	}
	return out
}

func formatFile(t *testing.T, input string) string {
	t.Helper()
	mod, err := parser.File(input)
	if err != nil {
		t.Fatalf("parse error for input %q: %v", input, err)
	}
	out, err := Python(mod)
	if err != nil {
		t.Fatalf("format error for input %q: %v", input, err)
	}
	return out
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple addition", "a+b", "a + b"},
		{"left associative", "a - b - c", "a - b - c"},
		{"right operand grouping", "a - (b - c)", "a - (b - c)"},
		{"redundant parentheses", "(a * b) + c", "a * b + c"},
		{"needed parentheses", "(a + b) * c", "(a + b) * c"},
		{"power", "a ** b ** c", "a ** b ** c"},
		{"power left grouping", "(a ** b) ** c", "(a ** b) ** c"},
		{"negated power", "-x ** 2", "-x ** 2"},
		{"power of negation", "(-x) ** 2", "(-x) ** 2"},
		{"not", "not (a and b)", "not (a and b)"},
		{"boolean nesting", "a or (b or c)", "a or (b or c)"},
		{"and inside or", "a and b or c", "a and b or c"},
		{"comparison", "a<b<=c", "a < b <= c"},
		{"comparison operand", "(a < b) < c", "(a < b) < c"},
		{"is not", "a is not b", "a is not b"},
		{"not in", "a not in b", "a not in b"},
		{"conditional", "a if b else c", "a if b else c"},
		{"nested conditional in test", "a if (b if c else d) else e", "a if (b if c else d) else e"},
		{"lambda", "lambda: 0", "lambda: 0"},
		{"lambda parameters", "lambda x, y=1, *a, k, **kw: x", "lambda x, y=1, *a, k, **kw: x"},
		{"lambda in call", "f(lambda x: x)", "f(lambda x: x)"},
		{"lambda as operand", "(lambda: 1) + 2", "(lambda: 1) + 2"},
		{"call", "f(a, *b, c=1, **d)", "f(a, *b, c=1, **d)"},
		{"generator argument", "f(x for x in y)", "f(x for x in y)"},
		{"attribute of int", "1 .real", "1 .real"},
		{"attribute of call", "f().x", "f().x"},
		{"subscript", "x[1]", "x[1]"},
		{"tuple subscript", "x[1, 2]", "x[1, 2]"},
		{"slice", "x[a:b:c]", "x[a:b:c]"},
		{"empty slice", "x[:]", "x[:]"},
		{"extended slice", "x[::2, 1:]", "x[::2, 1:]"},
		{"one element tuple", "(1,)", "(1,)"},
		{"tuple", "1, 2", "(1, 2)"},
		{"empty tuple", "()", "()"},
		{"list", "[1, 2]", "[1, 2]"},
		{"set", "{1, 2}", "{1, 2}"},
		{"dict", "{'a': 1, **b}", "{'a': 1, **b}"},
		{"list comprehension", "[x for x in y if x if z]", "[x for x in y if x if z]"},
		{"dict comprehension", "{k: v for k, v in items}", "{k: v for k, v in items}"},
		{"nested comprehension", "[(x, y) for x in a for y in b]", "[(x, y) for x in a for y in b]"},
		{"starred", "[*a, *b]", "[*a, *b]"},
		{"walrus", "(x := 1)", "(x := 1)"},
		{"await", "await f()", "await f()"},
		{"await power", "(await x) ** 2", "await x ** 2"},
		{"yield", "(yield x)", "(yield x)"},
		{"string", `"it's"`, `"it's"`},
		{"unicode string", "u'x'", "u'x'"},
		{"escapes", `'a\tb\n'`, `'a\tb\n'`},
		{"bytes", "b'\\x00a'", "b'\\x00a'"},
		{"implicit concatenation", "'a' 'b'", "'ab'"},
		{"integer", "0x10", "16"},
		{"underscores", "1_000", "1000"},
		{"float", "1.5e3", "1500.0"},
		{"imaginary", "2j", "2j"},
		{"overflow", "1e400", "1e309"},
		{"singletons", "[None, True, False, ...]", "[None, True, False, ...]"},
		{"f-string", "f'a{b}c'", "f'a{b}c'"},
		{"f-string conversion", "f'{x!r:>10}'", "f'{x!r:>10}'"},
		{"f-string nested spec", "f'{x:{w}.{p}}'", "f'{x:{w}.{p}}'"},
		{"f-string braces", "f'{{{x}}}'", "f'{{{x}}}'"},
		{"f-string quote choice", `f"{d['k']}"`, `f"{d['k']}"`},
		{"f-string dict field", "f'{ {1: 2}[1] }'", "f'{ {1: 2}[1]}'"},
		{"f-string debug", "f'{x=}'", "f'x={x!r}'"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := formatExpr(t, test.input)
			if got != test.expected {
				t.Errorf("Python(%q) = %q, want %q", test.input, got, test.expected)
			}
		})
	}
}

func TestPrintStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "assignment",
			input:    "a = b = 1, 2\n",
			expected: "a = b = 1, 2\n",
		},
		{
			name:     "unpacking",
			input:    "(a, *b) = c\n",
			expected: "a, *b = c\n",
		},
		{
			name:     "augmented",
			input:    "x   //=   2\n",
			expected: "x //= 2\n",
		},
		{
			name:     "annotation",
			input:    "x: int = 1\n(y): str\n",
			expected: "x: int = 1\n(y): str\n",
		},
		{
			name:     "imports",
			input:    "import a.b as c, d\nfrom ..e import (f, g as h)\nfrom . import i\n",
			expected: "import a.b as c, d\nfrom ..e import f, g as h\nfrom . import i\n",
		},
		{
			name:     "if elif else",
			input:    "if a:\n  x\nelif b:\n  y\nelse:\n  z\n",
			expected: "if a:\n    x\nelif b:\n    y\nelse:\n    z\n",
		},
		{
			name:     "nested if in else stays nested",
			input:    "if a:\n  x\nelse:\n  if b:\n    y\n  z\n",
			expected: "if a:\n    x\nelse:\n    if b:\n        y\n    z\n",
		},
		{
			name:     "function",
			input:    "@dec\ndef f(a, b: int = 1, /, *, c) -> None:\n  return\n",
			expected: "@dec\ndef f(a, b: int = 1, /, *, c) -> None:\n    return\n",
		},
		{
			name:     "async function",
			input:    "async def f():\n  async with a as b, c:\n    async for x in y:\n      await x\n",
			expected: "async def f():\n    async with a as b, c:\n        async for x in y:\n            await x\n",
		},
		{
			name:     "class with blank lines",
			input:    "x = 1\nclass A(B, metaclass=M):\n  def f(self): pass\n  def g(self): pass\ny = 2\n",
			expected: "x = 1\n\nclass A(B, metaclass=M):\n    def f(self):\n        pass\n\n    def g(self):\n        pass\n\ny = 2\n",
		},
		{
			name:     "try",
			input:    "try:\n  a\nexcept (E, F) as e:\n  b\nexcept:\n  c\nelse:\n  d\nfinally:\n  e\n",
			expected: "try:\n    a\nexcept (E, F) as e:\n    b\nexcept:\n    c\nelse:\n    d\nfinally:\n    e\n",
		},
		{
			name:     "loops",
			input:    "for i, x in enumerate(y):\n  continue\nelse:\n  pass\nwhile True:\n  break\n",
			expected: "for i, x in enumerate(y):\n    continue\nelse:\n    pass\nwhile True:\n    break\n",
		},
		{
			name:     "simple statements",
			input:    "global a, b\ndel x[0], y\nassert x, 'msg'\nraise E from e\n",
			expected: "global a, b\ndel x[0], y\nassert x, 'msg'\nraise E from e\n",
		},
		{
			name:     "yield statement",
			input:    "def g():\n  yield\n  yield from x\n  y = yield 1\n",
			expected: "def g():\n    yield\n    yield from x\n    y = yield 1\n",
		},
		{
			name:     "expression statements",
			input:    "(x := 1)\n1, 2\n",
			expected: "(x := 1)\n(1, 2)\n",
		},
		{
			name:     "match",
			input:    "match p:\n  case [1, *_]: pass\n  case {'k': v, **r}: pass\n  case P(1, y=2) | None: pass\n  case (a | b) as c if c: pass\n  case _: pass\n",
			expected: "match p:\n    case [1, *_]:\n        pass\n    case {'k': v, **r}:\n        pass\n    case P(1, y=2) | None:\n        pass\n    case a | b as c if c:\n        pass\n    case _:\n        pass\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := formatFile(t, test.input)
			if got != test.expected {
				t.Errorf("Python(%q)\n got: %q\nwant: %q", test.input, got, test.expected)
			}
		})
	}
}

func TestPrintParseltongueSyntax(t *testing.T) {
	src := strings.Join([]string{
		"def f(a,",
		"      b):",
		"  return a +",
		"    b",
		"",
	}, "\n")
	want := "def f(a, b):\n    return a + b\n"
	if got := formatFile(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintUnsupportedNode(t *testing.T) {
	if _, err := Python(&ast.Module{Body: []ast.Stmt{nil}}); err == nil {
		t.Error("expected an error for a nil statement")
	}
}
