package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dhamidi/parseltongue/python/ast"
)

// PythonPrinter renders a syntax tree as Python 3 source. Parentheses are
// only written where operator precedence requires them, so re-parsing the
// output gives back an equal tree.
type PythonPrinter struct {
	w           io.Writer
	indent      int
	indentStr   string
	atLineStart bool
	err         error
}

func NewPythonPrinter(w io.Writer) *PythonPrinter {
	return &PythonPrinter{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
}

// Print writes node. Modules and statements end with a newline;
// expressions and patterns do not.
func (p *PythonPrinter) Print(node ast.Node) error {
	p.err = nil
	p.printNode(node)
	return p.err
}

func (p *PythonPrinter) printNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Module:
		p.printBody(n.Body)
	case *ast.Interactive:
		p.printBody(n.Body)
	case *ast.Expression:
		p.printExpr(n.Body, precTest)
	case *ast.FunctionType:
		p.write("(")
		p.printExprs(n.ArgTypes, precTest)
		p.write(") -> ")
		p.printExpr(n.Returns, precTest)
	case ast.Stmt:
		p.printStmt(n)
	case ast.Expr:
		p.printExpr(n, precTest)
	case ast.Pattern:
		p.printPattern(n, precTest)
	case *ast.Arguments:
		p.printArguments(n, true)
	case *ast.Keyword:
		p.printKeyword(n)
	case *ast.Alias:
		p.printAlias(n)
	case *ast.Comprehension:
		p.printComprehension(n)
	case *ast.WithItem:
		p.printWithItem(n)
	default:
		p.fail(node)
	}
}

func (p *PythonPrinter) fail(node ast.Node) {
	if p.err == nil {
		p.err = fmt.Errorf("format: cannot render %T", node)
	}
}

func (p *PythonPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *PythonPrinter) write(s string) {
	if _, err := io.WriteString(p.w, s); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *PythonPrinter) newline() {
	p.write("\n")
	p.atLineStart = true
}

// delimit wraps the output of fn in parentheses when cond holds.
func (p *PythonPrinter) delimit(cond bool, fn func()) {
	if cond {
		p.write("(")
	}
	fn()
	if cond {
		p.write(")")
	}
}

// render prints an expression into a string with a fresh printer, for
// contexts such as f-string fields where the text must be inspected.
func (p *PythonPrinter) render(e ast.Expr, prec precedence) string {
	var buf bytes.Buffer
	sub := &PythonPrinter{w: &buf, indentStr: p.indentStr}
	sub.printExpr(e, prec)
	if sub.err != nil && p.err == nil {
		p.err = sub.err
	}
	return buf.String()
}
