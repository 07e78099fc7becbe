package parser

import (
	"github.com/dhamidi/parseltongue/python/ast"
)

// Intermediate results that never reach the tree.

type nameDefault struct {
	arg   *ast.Arg
	value ast.Expr
}

type slashWithDefault struct {
	plain       []*ast.Arg
	withDefault []*nameDefault
}

type starEtc struct {
	vararg *ast.Arg
	kwonly []*nameDefault
	kwarg  *ast.Arg
}

// keyValue is a dict display entry; key is nil for `**mapping`.
type keyValue struct {
	key   ast.Expr
	value ast.Expr
}

type keyPattern struct {
	key     ast.Expr
	pattern ast.Pattern
}

type cmpPair struct {
	op   ast.CmpOp
	expr ast.Expr
}

// keywordOrStarred is one keyword-section call argument: `name=value`,
// `**mapping`, or a `*iterable` that follows a keyword.
type keywordOrStarred struct {
	keyword *ast.Keyword
	starred ast.Expr
}

type keywordPattern struct {
	name    string
	pattern ast.Pattern
}

// setContext returns a copy of e with its context, and that of any nested
// tuple, list or starred elements, set to ctx. Memoized subtrees are shared
// between alternatives, so e itself is left untouched.
func setContext(e ast.Expr, ctx ast.ExprContext) ast.Expr {
	switch n := e.(type) {
	case *ast.Name:
		c := *n
		c.Ctx = ctx
		return &c
	case *ast.Attribute:
		c := *n
		c.Ctx = ctx
		return &c
	case *ast.Subscript:
		c := *n
		c.Ctx = ctx
		return &c
	case *ast.Starred:
		c := *n
		c.Ctx = ctx
		c.Value = setContext(n.Value, ctx)
		return &c
	case *ast.Tuple:
		c := *n
		c.Ctx = ctx
		c.Elts = setContextAll(n.Elts, ctx)
		return &c
	case *ast.List:
		c := *n
		c.Ctx = ctx
		c.Elts = setContextAll(n.Elts, ctx)
		return &c
	}
	return e
}

func setContextAll(elts []ast.Expr, ctx ast.ExprContext) []ast.Expr {
	out := make([]ast.Expr, len(elts))
	for i, e := range elts {
		out[i] = setContext(e, ctx)
	}
	return out
}

func argNames(pairs []*nameDefault) []*ast.Arg {
	args := make([]*ast.Arg, len(pairs))
	for i, pair := range pairs {
		args[i] = pair.arg
	}
	return args
}

func argDefaults(pairs []*nameDefault) []ast.Expr {
	values := make([]ast.Expr, len(pairs))
	for i, pair := range pairs {
		values[i] = pair.value
	}
	return values
}

// makeArguments assembles a parameter list from the pieces the parameter
// rules recognise. Any piece may be absent.
func makeArguments(slashNoDefault []*ast.Arg, slashDefault *slashWithDefault, plain []*ast.Arg, withDefault []*nameDefault, star *starEtc) *ast.Arguments {
	args := &ast.Arguments{
		PosOnlyArgs: []*ast.Arg{},
		Args:        []*ast.Arg{},
		KwOnlyArgs:  []*ast.Arg{},
		KwDefaults:  []ast.Expr{},
		Defaults:    []ast.Expr{},
	}
	switch {
	case slashNoDefault != nil:
		args.PosOnlyArgs = append(args.PosOnlyArgs, slashNoDefault...)
	case slashDefault != nil:
		args.PosOnlyArgs = append(args.PosOnlyArgs, slashDefault.plain...)
		args.PosOnlyArgs = append(args.PosOnlyArgs, argNames(slashDefault.withDefault)...)
	}
	args.Args = append(args.Args, plain...)
	args.Args = append(args.Args, argNames(withDefault)...)
	if slashDefault != nil {
		args.Defaults = append(args.Defaults, argDefaults(slashDefault.withDefault)...)
	}
	args.Defaults = append(args.Defaults, argDefaults(withDefault)...)
	if star != nil {
		args.VarArg = star.vararg
		args.KwOnlyArgs = append(args.KwOnlyArgs, argNames(star.kwonly)...)
		args.KwDefaults = append(args.KwDefaults, argDefaults(star.kwonly)...)
		args.KwArg = star.kwarg
	}
	return args
}

func emptyArguments() *ast.Arguments {
	return makeArguments(nil, nil, nil, nil, nil)
}

// collectCallArgs splits the keyword section of a call into starred
// positional arguments and keywords.
func collectCallArgs(positional []ast.Expr, kws []*keywordOrStarred) ([]ast.Expr, []*ast.Keyword) {
	args := append([]ast.Expr{}, positional...)
	keywords := []*ast.Keyword{}
	for _, kw := range kws {
		if kw.starred != nil {
			args = append(args, kw.starred)
		} else {
			keywords = append(keywords, kw.keyword)
		}
	}
	return args, keywords
}

// decorate attaches decorators to a function or class definition. The
// definition keeps its own span.
func decorate(decorators []ast.Expr, def ast.Stmt) ast.Stmt {
	if decorators == nil {
		return def
	}
	switch d := def.(type) {
	case *ast.FunctionDef:
		c := *d
		c.DecoratorList = decorators
		return &c
	case *ast.AsyncFunctionDef:
		c := *d
		c.DecoratorList = decorators
		return &c
	case *ast.ClassDef:
		c := *d
		c.DecoratorList = decorators
		return &c
	}
	return def
}

// exprName describes an expression the way CPython's error messages do.
func exprName(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Attribute:
		return "attribute"
	case *ast.Subscript:
		return "subscript"
	case *ast.Starred:
		return "starred"
	case *ast.Name:
		return "name"
	case *ast.List:
		return "list"
	case *ast.Tuple:
		return "tuple"
	case *ast.Lambda:
		return "lambda"
	case *ast.Call:
		return "function call"
	case *ast.BoolOp, *ast.BinOp, *ast.UnaryOp:
		return "expression"
	case *ast.GeneratorExp:
		return "generator expression"
	case *ast.Yield, *ast.YieldFrom:
		return "yield expression"
	case *ast.Await:
		return "await expression"
	case *ast.ListComp:
		return "list comprehension"
	case *ast.SetComp:
		return "set comprehension"
	case *ast.DictComp:
		return "dict comprehension"
	case *ast.Dict:
		return "dict literal"
	case *ast.Set:
		return "set display"
	case *ast.JoinedStr, *ast.FormattedValue:
		return "f-string expression"
	case *ast.Constant:
		switch v := n.Value.(type) {
		case nil:
			return "None"
		case bool:
			if v {
				return "True"
			}
			return "False"
		case ast.Ellipsis:
			return "Ellipsis"
		}
		return "literal"
	case *ast.Compare:
		return "comparison"
	case *ast.IfExp:
		return "conditional expression"
	case *ast.NamedExpr:
		return "named expression"
	}
	return "expression"
}

type targetsType int

const (
	starTargets targetsType = iota
	delTargets
	forTargets
)

// invalidTarget finds the part of e that cannot be assigned to (or
// deleted), or nil if every part is a valid target.
func invalidTarget(e ast.Expr, kind targetsType) ast.Expr {
	switch n := e.(type) {
	case *ast.List:
		return firstInvalidTarget(n.Elts, kind)
	case *ast.Tuple:
		return firstInvalidTarget(n.Elts, kind)
	case *ast.Starred:
		if kind == delTargets {
			return e
		}
		return invalidTarget(n.Value, kind)
	case *ast.Compare:
		if kind == forTargets {
			if n.Ops[0] == ast.In {
				return invalidTarget(n.Left, kind)
			}
			return nil
		}
		return e
	case *ast.Name, *ast.Subscript, *ast.Attribute:
		return nil
	}
	return e
}

func firstInvalidTarget(elts []ast.Expr, kind targetsType) ast.Expr {
	for _, elt := range elts {
		if bad := invalidTarget(elt, kind); bad != nil {
			return bad
		}
	}
	return nil
}

// raiseInvalidTarget reports the offending part of a target list.
func (p *Parser) raiseInvalidTarget(kind targetsType, e ast.Expr) {
	bad := invalidTarget(e, kind)
	if bad == nil {
		p.raise("invalid syntax")
		return
	}
	msg := "cannot assign to %s"
	if kind == delTargets {
		msg = "cannot delete %s"
	}
	p.raiseNode(bad, msg, exprName(bad))
}

// isLegacyStatement matches the Python 2 statements people still type.
func isLegacyStatement(e ast.Expr) bool {
	n, ok := e.(*ast.Name)
	return ok && (n.Id == "print" || n.Id == "exec")
}
