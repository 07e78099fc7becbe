package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

func mustEval(t *testing.T, src string, opts ...Option) ast.Expr {
	t.Helper()
	expr, err := Eval(src, opts...)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return expr.Body
}

func mustFile(t *testing.T, src string, opts ...Option) *ast.Module {
	t.Helper()
	mod, err := File(src, opts...)
	if err != nil {
		t.Fatalf("File(%q): %v", src, err)
	}
	return mod
}

func syntaxError(t *testing.T, err error) *SyntaxError {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	return serr
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "addition is left associative",
			input:    "a + b + c",
			expected: "BinOp(left=BinOp(left=Name(id='a', ctx=Load()), op=Add(), right=Name(id='b', ctx=Load())), op=Add(), right=Name(id='c', ctx=Load()))",
		},
		{
			name:     "product binds tighter than sum",
			input:    "a + b * c",
			expected: "BinOp(left=Name(id='a', ctx=Load()), op=Add(), right=BinOp(left=Name(id='b', ctx=Load()), op=Mult(), right=Name(id='c', ctx=Load())))",
		},
		{
			name:     "power binds tighter than unary minus",
			input:    "-x ** 2",
			expected: "UnaryOp(op=USub(), operand=BinOp(left=Name(id='x', ctx=Load()), op=Pow(), right=Constant(value=2)))",
		},
		{
			name:     "power is right associative",
			input:    "a ** b ** c",
			expected: "BinOp(left=Name(id='a', ctx=Load()), op=Pow(), right=BinOp(left=Name(id='b', ctx=Load()), op=Pow(), right=Name(id='c', ctx=Load())))",
		},
		{
			name:     "chained comparison",
			input:    "a < b not in c",
			expected: "Compare(left=Name(id='a', ctx=Load()), ops=[Lt(), NotIn()], comparators=[Name(id='b', ctx=Load()), Name(id='c', ctx=Load())])",
		},
		{
			name:     "is not",
			input:    "a is not None",
			expected: "Compare(left=Name(id='a', ctx=Load()), ops=[IsNot()], comparators=[Constant(value=None)])",
		},
		{
			name:     "boolean operators",
			input:    "a or b and not c",
			expected: "BoolOp(op=Or(), values=[Name(id='a', ctx=Load()), BoolOp(op=And(), values=[Name(id='b', ctx=Load()), UnaryOp(op=Not(), operand=Name(id='c', ctx=Load()))])])",
		},
		{
			name:     "flattened and",
			input:    "a and b and c",
			expected: "BoolOp(op=And(), values=[Name(id='a', ctx=Load()), Name(id='b', ctx=Load()), Name(id='c', ctx=Load())])",
		},
		{
			name:     "conditional expression",
			input:    "a if b else c",
			expected: "IfExp(test=Name(id='b', ctx=Load()), body=Name(id='a', ctx=Load()), orelse=Name(id='c', ctx=Load()))",
		},
		{
			name:     "attribute chain",
			input:    "a.b.c",
			expected: "Attribute(value=Attribute(value=Name(id='a', ctx=Load()), attr='b', ctx=Load()), attr='c', ctx=Load())",
		},
		{
			name:     "call with keyword and unpacking",
			input:    "f(x, *y, k=1, **z)",
			expected: "Call(func=Name(id='f', ctx=Load()), args=[Name(id='x', ctx=Load()), Starred(value=Name(id='y', ctx=Load()), ctx=Load())], keywords=[keyword(arg='k', value=Constant(value=1)), keyword(value=Name(id='z', ctx=Load()))])",
		},
		{
			name:     "generator argument",
			input:    "f(x for x in y)",
			expected: "Call(func=Name(id='f', ctx=Load()), args=[GeneratorExp(elt=Name(id='x', ctx=Load()), generators=[comprehension(target=Name(id='x', ctx=Store()), iter=Name(id='y', ctx=Load()), ifs=[], is_async=0)])], keywords=[])",
		},
		{
			name:     "slice",
			input:    "x[1:2]",
			expected: "Subscript(value=Name(id='x', ctx=Load()), slice=Slice(lower=Constant(value=1), upper=Constant(value=2)), ctx=Load())",
		},
		{
			name:     "tuple subscript",
			input:    "x[a, ::2]",
			expected: "Subscript(value=Name(id='x', ctx=Load()), slice=Tuple(elts=[Name(id='a', ctx=Load()), Slice(step=Constant(value=2))], ctx=Load()), ctx=Load())",
		},
		{
			name:     "bare tuple",
			input:    "1, 2",
			expected: "Tuple(elts=[Constant(value=1), Constant(value=2)], ctx=Load())",
		},
		{
			name:     "empty tuple",
			input:    "()",
			expected: "Tuple(elts=[], ctx=Load())",
		},
		{
			name:     "parenthesized expression is not a tuple",
			input:    "(a)",
			expected: "Name(id='a', ctx=Load())",
		},
		{
			name:     "list comprehension",
			input:    "[x for x in y if x]",
			expected: "ListComp(elt=Name(id='x', ctx=Load()), generators=[comprehension(target=Name(id='x', ctx=Store()), iter=Name(id='y', ctx=Load()), ifs=[Name(id='x', ctx=Load())], is_async=0)])",
		},
		{
			name:     "dict display with unpacking",
			input:    "{**a, 'b': 1}",
			expected: "Dict(keys=[None, Constant(value='b')], values=[Name(id='a', ctx=Load()), Constant(value=1)])",
		},
		{
			name:     "set display",
			input:    "{1, 2}",
			expected: "Set(elts=[Constant(value=1), Constant(value=2)])",
		},
		{
			name:     "walrus",
			input:    "(y := f(x))",
			expected: "NamedExpr(target=Name(id='y', ctx=Store()), value=Call(func=Name(id='f', ctx=Load()), args=[Name(id='x', ctx=Load())], keywords=[]))",
		},
		{
			name:     "lambda",
			input:    "lambda x, *, y=1: x",
			expected: "Lambda(args=arguments(posonlyargs=[], args=[arg(arg='x')], kwonlyargs=[arg(arg='y')], kw_defaults=[Constant(value=1)], defaults=[]), body=Name(id='x', ctx=Load()))",
		},
		{
			name:     "string concatenation",
			input:    "'a' 'b'",
			expected: "Constant(value='ab')",
		},
		{
			name:     "unicode kind comes from the first string",
			input:    "u'a' 'b'",
			expected: "Constant(value='ab', kind='u')",
		},
		{
			name:     "bytes",
			input:    "b'a' b'b'",
			expected: "Constant(value=b'ab')",
		},
		{
			name:     "singletons",
			input:    "[True, False, None, ...]",
			expected: "List(elts=[Constant(value=True), Constant(value=False), Constant(value=None), Constant(value=Ellipsis)], ctx=Load())",
		},
		{
			name:     "soft keywords are names",
			input:    "match(case, _)",
			expected: "Call(func=Name(id='match', ctx=Load()), args=[Name(id='case', ctx=Load()), Name(id='_', ctx=Load())], keywords=[])",
		},
		{
			name:     "await",
			input:    "await x",
			expected: "Await(value=Name(id='x', ctx=Load()))",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ast.Dump(mustEval(t, test.input))
			if got != test.expected {
				t.Errorf("Eval(%q)\n got: %s\nwant: %s", test.input, got, test.expected)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "assignment chain",
			input:    "a = b = 1\n",
			expected: "Module(body=[Assign(targets=[Name(id='a', ctx=Store()), Name(id='b', ctx=Store())], value=Constant(value=1))], type_ignores=[])",
		},
		{
			name:     "tuple unpacking with star",
			input:    "a, *b = c\n",
			expected: "Module(body=[Assign(targets=[Tuple(elts=[Name(id='a', ctx=Store()), Starred(value=Name(id='b', ctx=Store()), ctx=Store())], ctx=Store())], value=Name(id='c', ctx=Load()))], type_ignores=[])",
		},
		{
			name:     "augmented assignment",
			input:    "x.y += 1\n",
			expected: "Module(body=[AugAssign(target=Attribute(value=Name(id='x', ctx=Load()), attr='y', ctx=Store()), op=Add(), value=Constant(value=1))], type_ignores=[])",
		},
		{
			name:     "annotated assignment",
			input:    "x: int = 1\n",
			expected: "Module(body=[AnnAssign(target=Name(id='x', ctx=Store()), annotation=Name(id='int', ctx=Load()), value=Constant(value=1), simple=1)], type_ignores=[])",
		},
		{
			name:     "parenthesized annotation target is not simple",
			input:    "(x): int\n",
			expected: "Module(body=[AnnAssign(target=Name(id='x', ctx=Store()), annotation=Name(id='int', ctx=Load()), simple=0)], type_ignores=[])",
		},
		{
			name:     "del",
			input:    "del a, b[0]\n",
			expected: "Module(body=[Delete(targets=[Name(id='a', ctx=Del()), Subscript(value=Name(id='b', ctx=Load()), slice=Constant(value=0), ctx=Del())])], type_ignores=[])",
		},
		{
			name:     "relative import",
			input:    "from ..a import b as c\n",
			expected: "Module(body=[ImportFrom(module='a', names=[alias(name='b', asname='c')], level=2)], type_ignores=[])",
		},
		{
			name:     "dotted import",
			input:    "import a.b\n",
			expected: "Module(body=[Import(names=[alias(name='a.b')])], type_ignores=[])",
		},
		{
			name:     "if without else",
			input:    "if x:\n    pass\n",
			expected: "Module(body=[If(test=Name(id='x', ctx=Load()), body=[Pass()], orelse=[])], type_ignores=[])",
		},
		{
			name:     "elif nests in orelse",
			input:    "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n",
			expected: "Module(body=[If(test=Name(id='a', ctx=Load()), body=[Pass()], orelse=[If(test=Name(id='b', ctx=Load()), body=[Pass()], orelse=[Pass()])])], type_ignores=[])",
		},
		{
			name:     "while else",
			input:    "while x: break\nelse: continue\n",
			expected: "Module(body=[While(test=Name(id='x', ctx=Load()), body=[Break()], orelse=[Continue()])], type_ignores=[])",
		},
		{
			name:     "global",
			input:    "global a, b\n",
			expected: "Module(body=[Global(names=['a', 'b'])], type_ignores=[])",
		},
		{
			name:     "empty file",
			input:    "",
			expected: "Module(body=[], type_ignores=[])",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ast.Dump(mustFile(t, test.input))
			if got != test.expected {
				t.Errorf("File(%q)\n got: %s\nwant: %s", test.input, got, test.expected)
			}
		})
	}
}

func TestFunctionParameters(t *testing.T) {
	mod := mustFile(t, "def f(a, b=1, /, c=2, *args, d, e=3, **kw) -> int:\n    return a\n")
	def, ok := mod.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected FunctionDef, got %T", mod.Body[0])
	}
	args := def.Args

	names := func(list []*ast.Arg) []string {
		var out []string
		for _, a := range list {
			out = append(out, a.Arg)
		}
		return out
	}
	check := func(what string, got, want []string) {
		t.Helper()
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("%s = %v, want %v", what, got, want)
		}
	}
	check("posonlyargs", names(args.PosOnlyArgs), []string{"a", "b"})
	check("args", names(args.Args), []string{"c"})
	check("kwonlyargs", names(args.KwOnlyArgs), []string{"d", "e"})
	if args.VarArg == nil || args.VarArg.Arg != "args" {
		t.Errorf("vararg = %v, want args", args.VarArg)
	}
	if args.KwArg == nil || args.KwArg.Arg != "kw" {
		t.Errorf("kwarg = %v, want kw", args.KwArg)
	}
	if len(args.Defaults) != 2 {
		t.Errorf("defaults = %d, want 2", len(args.Defaults))
	}
	if len(args.KwDefaults) != 2 || args.KwDefaults[0] != nil || args.KwDefaults[1] == nil {
		t.Errorf("kw_defaults = %v, want [None, 3]", args.KwDefaults)
	}
	if got := ast.Dump(def.Returns); got != "Name(id='int', ctx=Load())" {
		t.Errorf("returns = %s", got)
	}
}

func TestPositions(t *testing.T) {
	mod := mustFile(t, "x = 1\nif y:\n    z = foo(a,\n            b)\n")
	assign := mod.Body[1].(*ast.If).Body[0].(*ast.Assign)
	call := assign.Value.(*ast.Call)
	want := ast.Pos{Lineno: 3, ColOffset: 8, EndLineno: 4, EndColOffset: 14}
	if *call.Location() != want {
		t.Errorf("call position = %+v, want %+v", *call.Location(), want)
	}
	if got := *assign.Location(); got.Lineno != 3 || got.ColOffset != 4 {
		t.Errorf("assign position = %+v", got)
	}
}

func TestFstrings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "field between text",
			input:    "f'a{b}c'",
			expected: "JoinedStr(values=[Constant(value='a'), FormattedValue(value=Name(id='b', ctx=Load()), conversion=-1), Constant(value='c')])",
		},
		{
			name:     "conversion and spec",
			input:    "f'{x!r:>{w}}'",
			expected: "JoinedStr(values=[FormattedValue(value=Name(id='x', ctx=Load()), conversion=114, format_spec=JoinedStr(values=[Constant(value='>'), FormattedValue(value=Name(id='w', ctx=Load()), conversion=-1)]))])",
		},
		{
			name:     "debug text merges with the preceding literal",
			input:    "f'v {x=}'",
			expected: "JoinedStr(values=[Constant(value='v x='), FormattedValue(value=Name(id='x', ctx=Load()), conversion=114)])",
		},
		{
			name:     "plain strings join the f-string",
			input:    "'a' f'{b}' 'c'",
			expected: "JoinedStr(values=[Constant(value='a'), FormattedValue(value=Name(id='b', ctx=Load()), conversion=-1), Constant(value='c')])",
		},
		{
			name:     "empty",
			input:    "f''",
			expected: "JoinedStr(values=[])",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ast.Dump(mustEval(t, test.input))
			if got != test.expected {
				t.Errorf("Eval(%q)\n got: %s\nwant: %s", test.input, got, test.expected)
			}
		})
	}
}

func TestFstringFieldPositions(t *testing.T) {
	joined := mustEval(t, "x + f'ab{cd}'").(*ast.BinOp).Right.(*ast.JoinedStr)
	name := joined.Values[1].(*ast.FormattedValue).Value.(*ast.Name)
	want := ast.Pos{Lineno: 1, ColOffset: 9, EndLineno: 1, EndColOffset: 11}
	if *name.Location() != want {
		t.Errorf("field position = %+v, want %+v", *name.Location(), want)
	}
}

func TestPatterns(t *testing.T) {
	src := "match p:\n" +
		"    case [1, *rest]:\n" +
		"        pass\n" +
		"    case Point(x=0) | None:\n" +
		"        pass\n" +
		"    case {'k': v, **kw} if v:\n" +
		"        pass\n" +
		"    case -1 + 2j as c:\n" +
		"        pass\n" +
		"    case _:\n" +
		"        pass\n"
	mod := mustFile(t, src)
	m, ok := mod.Body[0].(*ast.Match)
	if !ok {
		t.Fatalf("expected Match, got %T", mod.Body[0])
	}
	expected := []string{
		"MatchSequence(patterns=[MatchValue(value=Constant(value=1)), MatchStar(name='rest')])",
		"MatchOr(patterns=[MatchClass(cls=Name(id='Point', ctx=Load()), patterns=[], kwd_attrs=['x'], kwd_patterns=[MatchValue(value=Constant(value=0))]), MatchSingleton(value=None)])",
		"MatchMapping(keys=[Constant(value='k')], patterns=[MatchAs(name='v')], rest='kw')",
		"MatchAs(pattern=MatchValue(value=BinOp(left=UnaryOp(op=USub(), operand=Constant(value=1)), op=Add(), right=Constant(value=2j))), name='c')",
		"MatchAs()",
	}
	if len(m.Cases) != len(expected) {
		t.Fatalf("got %d cases, want %d", len(m.Cases), len(expected))
	}
	for i, c := range m.Cases {
		if got := ast.Dump(c.Pattern); got != expected[i] {
			t.Errorf("case %d\n got: %s\nwant: %s", i, got, expected[i])
		}
	}
	if m.Cases[2].Guard == nil {
		t.Error("case 2 lost its guard")
	}
}

func TestSoftKeywordsAsNames(t *testing.T) {
	src := "match = 1\ncase = match\n_ = case\nprint(match, case)\n"
	mod := mustFile(t, src)
	if len(mod.Body) != 4 {
		t.Fatalf("got %d statements, want 4", len(mod.Body))
	}
	for _, stmt := range mod.Body[:3] {
		if _, ok := stmt.(*ast.Assign); !ok {
			t.Errorf("expected Assign, got %T", stmt)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  string
		msg   string
		line  int
	}{
		{"missing colon after if", "if x\n    pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after while", "while x\n    pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after for", "for x in y\n    pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after def", "def f()\n    pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after class", "class C\n    pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after try", "try\n    pass\nfinally:\n    pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after except", "try:\n    pass\nexcept E\n    pass\n", KindSyntaxError, "expected ':'", 3},
		{"missing colon after with", "with a\n    pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after match", "match x\n    case 1:\n        pass\n", KindSyntaxError, "expected ':'", 1},
		{"missing colon after case", "match x:\n    case 1\n        pass\n", KindSyntaxError, "expected ':'", 2},
		{"annotated list target", "[a, b]: int\n", KindSyntaxError, "only single target (not list) can be annotated", 1},
		{"annotated tuple target", "a, b: int\n", KindSyntaxError, "only single target (not tuple) can be annotated", 1},
		{"missing block after if", "if x:\npass\n", KindIndentationError, "expected an indented block after 'if' statement on line 1", 2},
		{"missing block after def", "def f():\nreturn\n", KindIndentationError, "expected an indented block after function definition on line 1", 2},
		{"forgotten comma", "[a b]\n", KindSyntaxError, "invalid syntax. Perhaps you forgot a comma?", 1},
		{"print statement", "print 'hi'\n", KindSyntaxError, "Missing parentheses in call to 'print'. Did you mean print(...)?", 1},
		{"assign to call", "f() = 1\n", KindSyntaxError, "cannot assign to function call here. Maybe you meant '==' instead of '='?", 1},
		{"assign to literal", "1 = x\n", KindSyntaxError, "cannot assign to literal here. Maybe you meant '==' instead of '='?", 1},
		{"delete call", "del f()\n", KindSyntaxError, "cannot delete function call", 1},
		{"non-default after default", "def f(a=1, b):\n    pass\n", KindSyntaxError, "non-default argument follows default argument", 1},
		{"positional after keyword", "f(a=1, b)\n", KindSyntaxError, "positional argument follows keyword argument", 1},
		{"bare star", "def f(*):\n    pass\n", KindSyntaxError, "named arguments must follow bare *", 1},
		{"mixed bytes", "x = b'a' 'b'\n", KindSyntaxError, "cannot mix bytes and nonbytes literals", 1},
		{"unparenthesized except tuple", "try:\n    pass\nexcept A, B:\n    pass\n", KindSyntaxError, "multiple exception types must be parenthesized", 3},
		{"try without handler", "try:\n    pass\nx = 1\n", KindSyntaxError, "expected 'except' or 'finally' block", 3},
		{"walrus on attribute", "(a.b := 1)\n", KindSyntaxError, "cannot use assignment expressions with attribute", 1},
		{"complex literal pattern", "match x:\n    case 1 + 2:\n        pass\n", KindSyntaxError, "imaginary number required in complex literal", 2},
		{"f-string field", "f'{a b}'\n", KindSyntaxError, "f-string: invalid syntax. Perhaps you forgot a comma?", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := File(test.input, WithFile("test.pt"))
			serr := syntaxError(t, err)
			if serr.Kind != test.kind {
				t.Errorf("kind = %s, want %s", serr.Kind, test.kind)
			}
			if serr.Msg != test.msg {
				t.Errorf("msg = %q, want %q", serr.Msg, test.msg)
			}
			if serr.Line != test.line {
				t.Errorf("line = %d, want %d", serr.Line, test.line)
			}
			if serr.File != "test.pt" {
				t.Errorf("file = %q", serr.File)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Error("error does not match ErrSyntax")
			}
		})
	}
}

func TestVersionGates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		version int
		msg     string
	}{
		{"walrus", "(x := 1)\n", 7, "Assignment expressions are only supported in Python 3.8 and greater"},
		{"matrix multiplication", "a @ b\n", 4, "The '@' operator is only supported in Python 3.5 and greater"},
		{"pattern matching", "match x:\n    case 1:\n        pass\n", 9, "Pattern matching is only supported in Python 3.10 and greater"},
		{"async comprehension", "async def f():\n    [x async for x in y]\n", 5, "Async comprehensions are only supported in Python 3.6 and greater"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := File(test.input, WithTargetVersion(test.version))
			serr := syntaxError(t, err)
			if serr.Msg != test.msg {
				t.Errorf("msg = %q, want %q", serr.Msg, test.msg)
			}
			if _, err := File(test.input); err != nil {
				t.Errorf("default target rejected %q: %v", test.input, err)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := File("x = )\n", WithFile("bad.pt"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("error does not match ErrSyntax: %v", err)
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		if perr.Token.Text != ")" {
			t.Errorf("token = %q, want ')'", perr.Token.Text)
		}
		if !strings.HasPrefix(err.Error(), "bad.pt:1.5 - Parseltongue parse error at") {
			t.Errorf("unexpected message %q", err.Error())
		}
		return
	}
	serr := syntaxError(t, err)
	if serr.Line != 1 {
		t.Errorf("line = %d, want 1", serr.Line)
	}
}

func TestLexerErrorsPassThrough(t *testing.T) {
	_, err := File("x = 'abc\n")
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *lexer.Error, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Error("lexer error does not match ErrSyntax")
	}
}

func TestRelaxedColons(t *testing.T) {
	src := "if x\n    a = 1\nelif y\n    a = 2\nelse\n    a = 3\n"
	mod := mustFile(t, src, WithRelaxedColons())
	stmt, ok := mod.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", mod.Body[0])
	}
	if len(stmt.Body) != 1 {
		t.Errorf("if body has %d statements, want 1", len(stmt.Body))
	}
	elif, ok := stmt.OrElse[0].(*ast.If)
	if !ok {
		t.Fatalf("expected elif, got %T", stmt.OrElse[0])
	}
	if len(elif.OrElse) != 1 {
		t.Errorf("else has %d statements, want 1", len(elif.OrElse))
	}

	if _, err := File(src); err == nil {
		t.Error("strict parser accepted an if without a colon")
	}
	mustFile(t, "if x:\n    pass\n", WithRelaxedColons())
}

func TestLongLeftRecursiveChains(t *testing.T) {
	const n = 10002
	tests := []struct {
		name  string
		input string
	}{
		{"sum", "x = " + strings.Repeat("a + ", n) + "a\n"},
		{"attribute chain", "x = a" + strings.Repeat(".b", n) + "\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mod := mustFile(t, test.input)
			if len(mod.Body) != 1 {
				t.Fatalf("got %d statements, want 1", len(mod.Body))
			}
			if _, ok := mod.Body[0].(*ast.Assign); !ok {
				t.Errorf("expected Assign, got %T", mod.Body[0])
			}
		})
	}
}

func TestBacktrackingLeavesNoTrace(t *testing.T) {
	// The first alternatives of assignment consume a target before
	// failing; the statement must still parse as a plain expression.
	mod := mustFile(t, "a.b[c](d)\n")
	expr, ok := mod.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected Expr, got %T", mod.Body[0])
	}
	want := "Call(func=Subscript(value=Attribute(value=Name(id='a', ctx=Load()), attr='b', ctx=Load()), slice=Name(id='c', ctx=Load()), ctx=Load()), args=[Name(id='d', ctx=Load())], keywords=[])"
	if got := ast.Dump(expr.Value); got != want {
		t.Errorf("got:  %s\nwant: %s", got, want)
	}
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		mode     Mode
		input    string
		expected string
	}{
		{ModeExec, "pass\n", "Module(body=[Pass()], type_ignores=[])"},
		{ModeEval, "1\n", "Expression(body=Constant(value=1))"},
		{ModeSingle, "x\n", "Interactive(body=[Expr(value=Name(id='x', ctx=Load()))])"},
		{ModeFuncType, "(int, str) -> bool", "FunctionType(argtypes=[Name(id='int', ctx=Load()), Name(id='str', ctx=Load())], returns=Name(id='bool', ctx=Load()))"},
	}

	for _, test := range tests {
		t.Run(string(test.mode), func(t *testing.T) {
			mod, err := Parse(test.input, test.mode)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := ast.Dump(mod); got != test.expected {
				t.Errorf("got:  %s\nwant: %s", got, test.expected)
			}
		})
	}

	if _, err := Parse("x", Mode("bogus")); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"x = 1\n", true},
		{"f(1,\n", false},
		{"if x:\n", false},
		{"if x:\n    pass\n", false},
		{"if x:\n    pass\n\n", true},
		{"'''abc\n", false},
		{"x = )\n", true},
		{"", false},
	}

	for _, test := range tests {
		if got := IsComplete(test.input); got != test.expected {
			t.Errorf("IsComplete(%q) = %v, want %v", test.input, got, test.expected)
		}
	}
}
