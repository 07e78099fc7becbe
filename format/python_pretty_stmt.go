package format

import (
	"strings"

	"github.com/dhamidi/parseltongue/python/ast"
)

func (p *PythonPrinter) printBody(stmts []ast.Stmt) {
	for i, s := range stmts {
		if i > 0 && (isDefinition(s) || isDefinition(stmts[i-1])) {
			p.newline()
		}
		p.printStmt(s)
	}
}

func isDefinition(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.FunctionDef, *ast.AsyncFunctionDef, *ast.ClassDef:
		return true
	}
	return false
}

// printBlock writes the colon ending a header and the indented suite.
func (p *PythonPrinter) printBlock(body []ast.Stmt) {
	p.write(":")
	p.newline()
	p.indent++
	p.printBody(body)
	p.indent--
}

func (p *PythonPrinter) printStmt(s ast.Stmt) {
	p.writeIndent()
	switch n := s.(type) {
	case *ast.FunctionDef:
		p.printFunctionDef("def", n.Name, n.Args, n.Body, n.DecoratorList, n.Returns)
		return
	case *ast.AsyncFunctionDef:
		p.printFunctionDef("async def", n.Name, n.Args, n.Body, n.DecoratorList, n.Returns)
		return
	case *ast.ClassDef:
		p.printClassDef(n)
		return
	case *ast.For:
		p.printFor("for", n.Target, n.Iter, n.Body, n.OrElse)
		return
	case *ast.AsyncFor:
		p.printFor("async for", n.Target, n.Iter, n.Body, n.OrElse)
		return
	case *ast.While:
		p.write("while ")
		p.printExpr(n.Test, precTest)
		p.printBlock(n.Body)
		p.printElse(n.OrElse)
		return
	case *ast.If:
		p.printIf(n)
		return
	case *ast.With:
		p.printWith("with", n.Items, n.Body)
		return
	case *ast.AsyncWith:
		p.printWith("async with", n.Items, n.Body)
		return
	case *ast.Match:
		p.printMatch(n)
		return
	case *ast.Try:
		p.printTry(n)
		return
	case *ast.Return:
		p.write("return")
		if n.Value != nil {
			p.write(" ")
			p.printExpr(n.Value, precTuple)
		}
	case *ast.Delete:
		p.write("del ")
		p.printExprs(n.Targets, precTest)
	case *ast.Assign:
		for _, target := range n.Targets {
			p.printExpr(target, precTuple)
			p.write(" = ")
		}
		p.printExpr(n.Value, precTuple)
	case *ast.AugAssign:
		p.printExpr(n.Target, precTuple)
		p.write(" " + n.Op.Symbol() + "= ")
		p.printExpr(n.Value, precTuple)
	case *ast.AnnAssign:
		_, isName := n.Target.(*ast.Name)
		p.delimit(n.Simple == 0 && isName, func() {
			p.printExpr(n.Target, precTest)
		})
		p.write(": ")
		p.printExpr(n.Annotation, precTest)
		if n.Value != nil {
			p.write(" = ")
			p.printExpr(n.Value, precTest)
		}
	case *ast.Raise:
		p.write("raise")
		if n.Exc != nil {
			p.write(" ")
			p.printExpr(n.Exc, precTest)
		}
		if n.Cause != nil {
			p.write(" from ")
			p.printExpr(n.Cause, precTest)
		}
	case *ast.Assert:
		p.write("assert ")
		p.printExpr(n.Test, precTest)
		if n.Msg != nil {
			p.write(", ")
			p.printExpr(n.Msg, precTest)
		}
	case *ast.Import:
		p.write("import ")
		p.printAliases(n.Names)
	case *ast.ImportFrom:
		p.write("from " + strings.Repeat(".", n.Level) + n.Module + " import ")
		p.printAliases(n.Names)
	case *ast.Global:
		p.write("global " + strings.Join(n.Names, ", "))
	case *ast.Nonlocal:
		p.write("nonlocal " + strings.Join(n.Names, ", "))
	case *ast.ExprStmt:
		p.printExpr(n.Value, precYield)
	case *ast.Pass:
		p.write("pass")
	case *ast.Break:
		p.write("break")
	case *ast.Continue:
		p.write("continue")
	default:
		p.fail(s)
	}
	p.newline()
}

func (p *PythonPrinter) printDecorators(decorators []ast.Expr) {
	for _, d := range decorators {
		p.writeIndent()
		p.write("@")
		p.printExpr(d, precTest)
		p.newline()
	}
	p.writeIndent()
}

func (p *PythonPrinter) printFunctionDef(keyword, name string, args *ast.Arguments, body []ast.Stmt, decorators []ast.Expr, returns ast.Expr) {
	p.printDecorators(decorators)
	p.write(keyword + " " + name + "(")
	p.printArguments(args, true)
	p.write(")")
	if returns != nil {
		p.write(" -> ")
		p.printExpr(returns, precTest)
	}
	p.printBlock(body)
}

func (p *PythonPrinter) printClassDef(n *ast.ClassDef) {
	p.printDecorators(n.DecoratorList)
	p.write("class " + n.Name)
	if len(n.Bases) > 0 || len(n.Keywords) > 0 {
		p.write("(")
		p.printExprs(n.Bases, precTest)
		for i, kw := range n.Keywords {
			if i > 0 || len(n.Bases) > 0 {
				p.write(", ")
			}
			p.printKeyword(kw)
		}
		p.write(")")
	}
	p.printBlock(n.Body)
}

func (p *PythonPrinter) printFor(keyword string, target, iter ast.Expr, body, orelse []ast.Stmt) {
	p.write(keyword + " ")
	p.printExpr(target, precTuple)
	p.write(" in ")
	p.printExpr(iter, precTest)
	p.printBlock(body)
	p.printElse(orelse)
}

func (p *PythonPrinter) printElse(orelse []ast.Stmt) {
	if len(orelse) == 0 {
		return
	}
	p.writeIndent()
	p.write("else")
	p.printBlock(orelse)
}

// printIf folds an else branch holding a single if statement into elif.
func (p *PythonPrinter) printIf(n *ast.If) {
	p.write("if ")
	p.printExpr(n.Test, precTest)
	p.printBlock(n.Body)
	for len(n.OrElse) == 1 {
		elif, ok := n.OrElse[0].(*ast.If)
		if !ok {
			break
		}
		n = elif
		p.writeIndent()
		p.write("elif ")
		p.printExpr(n.Test, precTest)
		p.printBlock(n.Body)
	}
	p.printElse(n.OrElse)
}

func (p *PythonPrinter) printWith(keyword string, items []*ast.WithItem, body []ast.Stmt) {
	p.write(keyword + " ")
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		p.printWithItem(item)
	}
	p.printBlock(body)
}

func (p *PythonPrinter) printWithItem(item *ast.WithItem) {
	p.printExpr(item.ContextExpr, precTest)
	if item.OptionalVars != nil {
		p.write(" as ")
		p.printExpr(item.OptionalVars, precTest)
	}
}

func (p *PythonPrinter) printTry(n *ast.Try) {
	p.write("try")
	p.printBlock(n.Body)
	for _, h := range n.Handlers {
		p.writeIndent()
		p.write("except")
		if h.Type != nil {
			p.write(" ")
			p.printExpr(h.Type, precTest)
		}
		if h.Name != "" {
			p.write(" as " + h.Name)
		}
		p.printBlock(h.Body)
	}
	p.printElse(n.OrElse)
	if len(n.FinalBody) > 0 {
		p.writeIndent()
		p.write("finally")
		p.printBlock(n.FinalBody)
	}
}

func (p *PythonPrinter) printMatch(n *ast.Match) {
	p.write("match ")
	p.printExpr(n.Subject, precTuple)
	p.write(":")
	p.newline()
	p.indent++
	for _, c := range n.Cases {
		p.writeIndent()
		p.write("case ")
		p.printPattern(c.Pattern, precTest)
		if c.Guard != nil {
			p.write(" if ")
			p.printExpr(c.Guard, precTest)
		}
		p.printBlock(c.Body)
	}
	p.indent--
}

func (p *PythonPrinter) printAliases(names []*ast.Alias) {
	for i, a := range names {
		if i > 0 {
			p.write(", ")
		}
		p.printAlias(a)
	}
}

func (p *PythonPrinter) printAlias(a *ast.Alias) {
	p.write(a.Name)
	if a.Asname != "" {
		p.write(" as " + a.Asname)
	}
}

// printArguments writes a parameter list. Annotations are written only
// when annotated is set.
func (p *PythonPrinter) printArguments(a *ast.Arguments, annotated bool) {
	if a == nil {
		return
	}
	first := true
	sep := func() {
		if !first {
			p.write(", ")
		}
		first = false
	}
	positional := append(append([]*ast.Arg{}, a.PosOnlyArgs...), a.Args...)
	firstDefault := len(positional) - len(a.Defaults)
	for i, arg := range positional {
		sep()
		p.printArg(arg, annotated)
		if i >= firstDefault {
			p.printDefault(arg, a.Defaults[i-firstDefault])
		}
		if i == len(a.PosOnlyArgs)-1 {
			p.write(", /")
		}
	}
	if a.VarArg != nil || len(a.KwOnlyArgs) > 0 {
		sep()
		p.write("*")
		if a.VarArg != nil {
			p.printArg(a.VarArg, annotated)
		}
	}
	for i, arg := range a.KwOnlyArgs {
		sep()
		p.printArg(arg, annotated)
		if i < len(a.KwDefaults) && a.KwDefaults[i] != nil {
			p.printDefault(arg, a.KwDefaults[i])
		}
	}
	if a.KwArg != nil {
		sep()
		p.write("**")
		p.printArg(a.KwArg, annotated)
	}
}

func (p *PythonPrinter) printArg(arg *ast.Arg, annotated bool) {
	p.write(arg.Arg)
	if annotated && arg.Annotation != nil {
		p.write(": ")
		p.printExpr(arg.Annotation, precTest)
	}
}

func (p *PythonPrinter) printDefault(arg *ast.Arg, value ast.Expr) {
	if arg.Annotation != nil {
		p.write(" = ")
	} else {
		p.write("=")
	}
	p.printExpr(value, precTest)
}
