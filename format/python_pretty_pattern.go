package format

import (
	"github.com/dhamidi/parseltongue/python/ast"
	"github.com/dhamidi/parseltongue/python/literal"
)

func (p *PythonPrinter) printPatterns(patterns []ast.Pattern) {
	for i, pat := range patterns {
		if i > 0 {
			p.write(", ")
		}
		p.printPattern(pat, precTest)
	}
}

func (p *PythonPrinter) printPattern(pat ast.Pattern, prec precedence) {
	switch n := pat.(type) {
	case *ast.MatchValue:
		p.printExpr(n.Value, precTest)
	case *ast.MatchSingleton:
		p.write(literal.Repr(n.Value))
	case *ast.MatchSequence:
		p.write("[")
		p.printPatterns(n.Patterns)
		p.write("]")
	case *ast.MatchStar:
		name := n.Name
		if name == "" {
			name = "_"
		}
		p.write("*" + name)
	case *ast.MatchMapping:
		p.write("{")
		for i, key := range n.Keys {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(key, precTest)
			p.write(": ")
			p.printPattern(n.Patterns[i], precTest)
		}
		if n.Rest != "" {
			if len(n.Keys) > 0 {
				p.write(", ")
			}
			p.write("**" + n.Rest)
		}
		p.write("}")
	case *ast.MatchClass:
		p.printExpr(n.Cls, precAtom)
		p.write("(")
		p.printPatterns(n.Patterns)
		for i, attr := range n.KwdAttrs {
			if i > 0 || len(n.Patterns) > 0 {
				p.write(", ")
			}
			p.write(attr + "=")
			p.printPattern(n.KwdPatterns[i], precTest)
		}
		p.write(")")
	case *ast.MatchAs:
		switch {
		case n.Pattern == nil && n.Name == "":
			p.write("_")
		case n.Pattern == nil:
			p.write(n.Name)
		default:
			p.delimit(prec > precTest, func() {
				p.printPattern(n.Pattern, precBOr)
				p.write(" as " + n.Name)
			})
		}
	case *ast.MatchOr:
		p.delimit(prec > precBOr, func() {
			for i, alt := range n.Patterns {
				if i > 0 {
					p.write(" | ")
				}
				p.printPattern(alt, precBOr+1)
			}
		})
	default:
		p.fail(pat)
	}
}
