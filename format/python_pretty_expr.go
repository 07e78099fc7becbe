package format

import (
	"math/big"
	"strings"

	"github.com/dhamidi/parseltongue/python/ast"
	"github.com/dhamidi/parseltongue/python/literal"
)

// precedence orders expression contexts from loosest to tightest binding,
// following CPython's ast.unparse. An expression is parenthesized when it
// binds more loosely than its context requires.
type precedence int

const (
	precNamedExpr precedence = iota + 1
	precTuple
	precYield
	precTest
	precOr
	precAnd
	precNot
	precCmp
	precExpr
	precBXor
	precBAnd
	precShift
	precArith
	precTerm
	precFactor
	precPower
	precAwait
	precAtom
)

const precBOr = precExpr

var binOpPrecedence = map[ast.Operator]precedence{
	ast.Add:      precArith,
	ast.Sub:      precArith,
	ast.Mult:     precTerm,
	ast.MatMult:  precTerm,
	ast.Div:      precTerm,
	ast.Modulo:   precTerm,
	ast.FloorDiv: precTerm,
	ast.LShift:   precShift,
	ast.RShift:   precShift,
	ast.BitOr:    precBOr,
	ast.BitXor:   precBXor,
	ast.BitAnd:   precBAnd,
	ast.Pow:      precPower,
}

// infinity is written for float overflow; it parses back to inf.
const infinity = "1e309"

func (p *PythonPrinter) printExprs(exprs []ast.Expr, prec precedence) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e, prec)
	}
}

func (p *PythonPrinter) printExpr(e ast.Expr, prec precedence) {
	switch n := e.(type) {
	case *ast.BoolOp:
		op := precAnd
		if n.Op == ast.Or {
			op = precOr
		}
		p.delimit(prec > op, func() {
			for i, v := range n.Values {
				if i > 0 {
					p.write(" " + n.Op.Symbol() + " ")
				}
				p.printExpr(v, op+1)
			}
		})
	case *ast.NamedExpr:
		p.delimit(prec > precNamedExpr, func() {
			p.printExpr(n.Target, precAtom)
			p.write(" := ")
			p.printExpr(n.Value, precTest)
		})
	case *ast.BinOp:
		op := binOpPrecedence[n.Op]
		left, right := op, op+1
		if n.Op == ast.Pow {
			left, right = op+1, op
		}
		p.delimit(prec > op, func() {
			p.printExpr(n.Left, left)
			p.write(" " + n.Op.Symbol() + " ")
			p.printExpr(n.Right, right)
		})
	case *ast.UnaryOp:
		op := precFactor
		if n.Op == ast.Not {
			op = precNot
		}
		p.delimit(prec > op, func() {
			p.write(n.Op.Symbol())
			p.printExpr(n.Operand, op)
		})
	case *ast.Lambda:
		p.delimit(prec > precTest, func() {
			p.write("lambda")
			var buf strings.Builder
			sub := &PythonPrinter{w: &buf, indentStr: p.indentStr}
			sub.printArguments(n.Args, false)
			if buf.Len() > 0 {
				p.write(" " + buf.String())
			}
			p.write(": ")
			p.printExpr(n.Body, precTest)
		})
	case *ast.IfExp:
		p.delimit(prec > precTest, func() {
			p.printExpr(n.Body, precTest+1)
			p.write(" if ")
			p.printExpr(n.Test, precTest+1)
			p.write(" else ")
			p.printExpr(n.OrElse, precTest)
		})
	case *ast.Dict:
		p.write("{")
		for i := range n.Keys {
			if i > 0 {
				p.write(", ")
			}
			if n.Keys[i] == nil {
				p.write("**")
				p.printExpr(n.Values[i], precExpr)
				continue
			}
			p.printExpr(n.Keys[i], precTest)
			p.write(": ")
			p.printExpr(n.Values[i], precTest)
		}
		p.write("}")
	case *ast.Set:
		if len(n.Elts) == 0 {
			p.write("{*()}")
			return
		}
		p.write("{")
		p.printExprs(n.Elts, precTest)
		p.write("}")
	case *ast.ListComp:
		p.printComprehensions("[", "]", n.Generators, func() { p.printExpr(n.Elt, precTest) })
	case *ast.SetComp:
		p.printComprehensions("{", "}", n.Generators, func() { p.printExpr(n.Elt, precTest) })
	case *ast.GeneratorExp:
		p.printComprehensions("(", ")", n.Generators, func() { p.printExpr(n.Elt, precTest) })
	case *ast.DictComp:
		p.printComprehensions("{", "}", n.Generators, func() {
			p.printExpr(n.Key, precTest)
			p.write(": ")
			p.printExpr(n.Value, precTest)
		})
	case *ast.Await:
		p.delimit(prec > precAwait, func() {
			p.write("await ")
			p.printExpr(n.Value, precAtom)
		})
	case *ast.Yield:
		p.delimit(prec > precYield, func() {
			p.write("yield")
			if n.Value != nil {
				p.write(" ")
				p.printExpr(n.Value, precTuple)
			}
		})
	case *ast.YieldFrom:
		p.delimit(prec > precYield, func() {
			p.write("yield from ")
			p.printExpr(n.Value, precTest)
		})
	case *ast.Compare:
		p.delimit(prec > precCmp, func() {
			p.printExpr(n.Left, precCmp+1)
			for i, op := range n.Ops {
				p.write(" " + op.Symbol() + " ")
				p.printExpr(n.Comparators[i], precCmp+1)
			}
		})
	case *ast.Call:
		p.printExpr(n.Func, precAtom)
		if len(n.Args) == 1 && len(n.Keywords) == 0 {
			if gen, ok := n.Args[0].(*ast.GeneratorExp); ok {
				p.printExpr(gen, precAtom)
				return
			}
		}
		p.write("(")
		p.printExprs(n.Args, precTest)
		for i, kw := range n.Keywords {
			if i > 0 || len(n.Args) > 0 {
				p.write(", ")
			}
			p.printKeyword(kw)
		}
		p.write(")")
	case *ast.FormattedValue:
		p.printFstring([]ast.Expr{n})
	case *ast.JoinedStr:
		p.printFstring(n.Values)
	case *ast.Constant:
		p.printConstant(n)
	case *ast.Attribute:
		p.printExpr(n.Value, precAtom)
		if c, ok := n.Value.(*ast.Constant); ok {
			if _, isInt := c.Value.(*big.Int); isInt {
				p.write(" ")
			}
		}
		p.write("." + n.Attr)
	case *ast.Subscript:
		p.printExpr(n.Value, precAtom)
		p.write("[")
		if t, ok := n.Slice.(*ast.Tuple); ok && len(t.Elts) > 0 {
			p.printExprs(t.Elts, precTest)
			if len(t.Elts) == 1 {
				p.write(",")
			}
		} else {
			p.printExpr(n.Slice, precTuple)
		}
		p.write("]")
	case *ast.Starred:
		p.write("*")
		p.printExpr(n.Value, precExpr)
	case *ast.Name:
		p.write(n.Id)
	case *ast.List:
		p.write("[")
		p.printExprs(n.Elts, precTest)
		p.write("]")
	case *ast.Tuple:
		p.delimit(len(n.Elts) == 0 || prec > precTuple, func() {
			p.printExprs(n.Elts, precTest)
			if len(n.Elts) == 1 {
				p.write(",")
			}
		})
	case *ast.Slice:
		if n.Lower != nil {
			p.printExpr(n.Lower, precTest)
		}
		p.write(":")
		if n.Upper != nil {
			p.printExpr(n.Upper, precTest)
		}
		if n.Step != nil {
			p.write(":")
			p.printExpr(n.Step, precTest)
		}
	default:
		p.fail(e)
	}
}

func (p *PythonPrinter) printKeyword(kw *ast.Keyword) {
	if kw.Arg == "" {
		p.write("**")
		p.printExpr(kw.Value, precExpr)
		return
	}
	p.write(kw.Arg + "=")
	p.printExpr(kw.Value, precTest)
}

func (p *PythonPrinter) printComprehensions(open, close string, generators []*ast.Comprehension, elt func()) {
	p.write(open)
	elt()
	for _, gen := range generators {
		p.printComprehension(gen)
	}
	p.write(close)
}

func (p *PythonPrinter) printComprehension(gen *ast.Comprehension) {
	if gen.IsAsync != 0 {
		p.write(" async for ")
	} else {
		p.write(" for ")
	}
	p.printExpr(gen.Target, precTuple)
	p.write(" in ")
	p.printExpr(gen.Iter, precTest+1)
	for _, cond := range gen.Ifs {
		p.write(" if ")
		p.printExpr(cond, precTest+1)
	}
}

func (p *PythonPrinter) printConstant(c *ast.Constant) {
	switch v := c.Value.(type) {
	case ast.Ellipsis:
		p.write("...")
	case string:
		p.write(c.Kind + literal.Quote(v))
	case float64:
		p.write(strings.ReplaceAll(literal.FormatFloat(v), "inf", infinity))
	case complex128:
		p.write(strings.ReplaceAll(literal.FormatComplex(v), "inf", infinity))
	default:
		p.write(literal.Repr(v))
	}
}

// fstringPiece is either literal text, still to be escaped, or code that
// is copied into the f-string verbatim.
type fstringPiece struct {
	text string
	code bool
}

// printFstring writes a JoinedStr. The quote character is chosen so that
// it does not occur inside any replacement field.
func (p *PythonPrinter) printFstring(values []ast.Expr) {
	pieces := p.fstringPieces(values, nil)
	quote := chooseQuote(pieces)
	p.write("f" + quote)
	for _, piece := range pieces {
		if piece.code {
			p.write(piece.text)
			continue
		}
		p.write(literal.EscapeString(piece.text, quote[0]))
	}
	p.write(quote)
}

func (p *PythonPrinter) fstringPieces(values []ast.Expr, pieces []fstringPiece) []fstringPiece {
	for _, v := range values {
		switch n := v.(type) {
		case *ast.Constant:
			s, _ := n.Value.(string)
			s = strings.ReplaceAll(s, "{", "{{")
			s = strings.ReplaceAll(s, "}", "}}")
			pieces = append(pieces, fstringPiece{text: s})
		case *ast.FormattedValue:
			code := p.render(n.Value, precTest+1)
			if strings.HasPrefix(code, "{") {
				code = " " + code
			}
			code = "{" + code
			if n.Conversion >= 0 {
				code += "!" + string(rune(n.Conversion))
			}
			if spec, ok := n.FormatSpec.(*ast.JoinedStr); ok {
				pieces = append(pieces, fstringPiece{text: code + ":", code: true})
				pieces = p.fstringPieces(spec.Values, pieces)
				code = ""
			}
			pieces = append(pieces, fstringPiece{text: code + "}", code: true})
		default:
			p.fail(v)
		}
	}
	return pieces
}

var fstringQuotes = []string{"'", `"`, "'''", `"""`}

func chooseQuote(pieces []fstringPiece) string {
	usable := func(q string) bool {
		for _, piece := range pieces {
			if piece.code && strings.Contains(piece.text, q) {
				return false
			}
		}
		return true
	}
	var fallback string
	for _, q := range fstringQuotes {
		if !usable(q) {
			continue
		}
		if fallback == "" {
			fallback = q
		}
		clean := true
		for _, piece := range pieces {
			if !piece.code && strings.Contains(piece.text, q) {
				clean = false
				break
			}
		}
		if clean {
			return q
		}
	}
	if fallback == "" {
		return fstringQuotes[len(fstringQuotes)-1]
	}
	return fallback
}
