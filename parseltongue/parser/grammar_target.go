package parser

import (
	"github.com/dhamidi/parseltongue/python/ast"
)

// star_targets:
//
//	| star_target !','
//	| star_target (',' star_target)* [',']
func (p *Parser) starTargets() ast.Expr {
	start := p.start()
	first := p.starTarget()
	if first == nil {
		return nil
	}
	if !p.nextIs(",") {
		return first
	}
	elts := append([]ast.Expr{first}, zeroOrMore(p, p.commaStarTarget)...)
	p.expect(",")
	return &ast.Tuple{Pos: p.span(start), Elts: elts, Ctx: ast.Store}
}

func (p *Parser) commaStarTarget() ast.Expr {
	if p.expect(",") == nil {
		return nil
	}
	return p.starTarget()
}

// star_targets_list_seq: ','.star_target+ [',']
func (p *Parser) starTargetsListSeq() []ast.Expr {
	elts := gather(p, ",", p.starTarget)
	if elts == nil {
		return nil
	}
	p.expect(",")
	return elts
}

// star_targets_tuple_seq:
//
//	| star_target (',' star_target)+ [',']
//	| star_target ','
func (p *Parser) starTargetsTupleSeq() []ast.Expr {
	return attempt(p, func() []ast.Expr {
		first := p.starTarget()
		if first == nil {
			return nil
		}
		rest := zeroOrMore(p, p.commaStarTarget)
		if p.expect(",") == nil && len(rest) == 0 {
			return nil
		}
		return append([]ast.Expr{first}, rest...)
	})
}

// star_target: '*' (!'*' star_target) | target_with_star_atom
func (p *Parser) starTarget() ast.Expr {
	return memo(p, "star_target", func() ast.Expr {
		start := p.start()
		if p.expect("*") != nil {
			if p.nextIs("*") {
				return nil
			}
			value := p.starTarget()
			if value == nil {
				return nil
			}
			return &ast.Starred{Pos: p.span(start), Value: setContext(value, ast.Store), Ctx: ast.Store}
		}
		return p.targetWithStarAtom()
	})
}

// target_with_star_atom:
//
//	| t_primary '.' NAME !t_lookahead
//	| t_primary '[' slices ']' !t_lookahead
//	| star_atom
func (p *Parser) targetWithStarAtom() ast.Expr {
	return memo(p, "target_with_star_atom", func() ast.Expr {
		if e := p.attributeTarget(ast.Store); e != nil {
			return e
		}
		return p.starAtom()
	})
}

// attributeTarget matches an attribute or subscript of a t_primary that
// is not itself followed by a trailer.
func (p *Parser) attributeTarget(ctx ast.ExprContext) ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			value := p.tPrimary()
			if value == nil || p.expect(".") == nil {
				return nil
			}
			attr := p.nameToken()
			if attr == nil || p.tLookahead() {
				return nil
			}
			return &ast.Attribute{Pos: p.span(start), Value: value, Attr: attr.Text, Ctx: ctx}
		},
		func() ast.Expr {
			start := p.start()
			value := p.tPrimary()
			if value == nil {
				return nil
			}
			e := p.subscriptSuffix(start, value, ctx)
			if e == nil || p.tLookahead() {
				return nil
			}
			return e
		},
	)
}

// star_atom:
//
//	| NAME
//	| '(' target_with_star_atom ')'
//	| '(' [star_targets_tuple_seq] ')'
//	| '[' [star_targets_list_seq] ']'
func (p *Parser) starAtom() ast.Expr {
	return choice(p,
		func() ast.Expr {
			if n := p.name(); n != nil {
				return setContext(n, ast.Store)
			}
			return nil
		},
		func() ast.Expr {
			if p.expect("(") == nil {
				return nil
			}
			e := p.targetWithStarAtom()
			if e == nil || p.expect(")") == nil {
				return nil
			}
			return setContext(e, ast.Store)
		},
		func() ast.Expr {
			return p.targetSequence("(", ")", p.starTargetsTupleSeq, ast.Store)
		},
		func() ast.Expr {
			return p.targetSequence("[", "]", p.starTargetsListSeq, ast.Store)
		},
	)
}

// targetSequence matches open [elts] close as a tuple or list target.
func (p *Parser) targetSequence(open, close string, elts func() []ast.Expr, ctx ast.ExprContext) ast.Expr {
	start := p.start()
	if p.expect(open) == nil {
		return nil
	}
	items := elts()
	if p.expect(close) == nil {
		return nil
	}
	if items == nil {
		items = []ast.Expr{}
	}
	if open == "[" {
		return &ast.List{Pos: p.span(start), Elts: items, Ctx: ctx}
	}
	return &ast.Tuple{Pos: p.span(start), Elts: items, Ctx: ctx}
}

// single_target: single_subscript_attribute_target | NAME | '(' single_target ')'
func (p *Parser) singleTarget() ast.Expr {
	return choice(p,
		p.singleSubscriptAttributeTarget,
		func() ast.Expr {
			if n := p.name(); n != nil {
				return setContext(n, ast.Store)
			}
			return nil
		},
		func() ast.Expr {
			if p.expect("(") == nil {
				return nil
			}
			e := p.singleTarget()
			if e == nil || p.expect(")") == nil {
				return nil
			}
			return e
		},
	)
}

// single_subscript_attribute_target:
//
//	| t_primary '.' NAME !t_lookahead
//	| t_primary '[' slices ']' !t_lookahead
func (p *Parser) singleSubscriptAttributeTarget() ast.Expr {
	return p.attributeTarget(ast.Store)
}

// del_targets: ','.del_target+ [',']
func (p *Parser) delTargets() []ast.Expr {
	elts := gather(p, ",", p.delTarget)
	if elts == nil {
		return nil
	}
	p.expect(",")
	return elts
}

// del_target:
//
//	| t_primary '.' NAME !t_lookahead
//	| t_primary '[' slices ']' !t_lookahead
//	| del_t_atom
func (p *Parser) delTarget() ast.Expr {
	return memo(p, "del_target", func() ast.Expr {
		if e := p.attributeTarget(ast.Del); e != nil {
			return e
		}
		return p.delTAtom()
	})
}

// del_t_atom:
//
//	| NAME
//	| '(' del_target ')'
//	| '(' [del_targets] ')'
//	| '[' [del_targets] ']'
func (p *Parser) delTAtom() ast.Expr {
	return choice(p,
		func() ast.Expr {
			if n := p.name(); n != nil {
				return setContext(n, ast.Del)
			}
			return nil
		},
		func() ast.Expr {
			if p.expect("(") == nil {
				return nil
			}
			e := p.delTarget()
			if e == nil || p.expect(")") == nil {
				return nil
			}
			return setContext(e, ast.Del)
		},
		func() ast.Expr {
			return p.targetSequence("(", ")", p.delTargets, ast.Del)
		},
		func() ast.Expr {
			return p.targetSequence("[", "]", p.delTargets, ast.Del)
		},
	)
}

// t_primary:
//
//	| t_primary '.' NAME &t_lookahead
//	| t_primary '[' slices ']' &t_lookahead
//	| t_primary genexp &t_lookahead
//	| t_primary '(' [arguments] ')' &t_lookahead
//	| atom &t_lookahead
func (p *Parser) tPrimary() ast.Expr {
	return memoLeftRec(p, "t_primary", func() ast.Expr {
		start := p.start()
		trailer := func(fn func(value ast.Expr) ast.Expr) func() ast.Expr {
			return func() ast.Expr {
				value := p.tPrimary()
				if value == nil {
					return nil
				}
				e := fn(value)
				if e == nil || !p.tLookahead() {
					return nil
				}
				return e
			}
		}
		return choice(p,
			trailer(func(value ast.Expr) ast.Expr {
				if p.expect(".") == nil {
					return nil
				}
				attr := p.nameToken()
				if attr == nil {
					return nil
				}
				return &ast.Attribute{Pos: p.span(start), Value: value, Attr: attr.Text, Ctx: ast.Load}
			}),
			trailer(func(value ast.Expr) ast.Expr {
				return p.subscriptSuffix(start, value, ast.Load)
			}),
			trailer(func(value ast.Expr) ast.Expr {
				gen := p.genexp()
				if gen == nil {
					return nil
				}
				return &ast.Call{Pos: p.span(start), Func: value, Args: []ast.Expr{gen}, Keywords: []*ast.Keyword{}}
			}),
			trailer(func(value ast.Expr) ast.Expr {
				return p.callSuffix(start, value)
			}),
			func() ast.Expr {
				a := p.atom()
				if a == nil || !p.tLookahead() {
					return nil
				}
				return a
			},
		)
	})
}

// t_lookahead: '(' | '[' | '.'
func (p *Parser) tLookahead() bool {
	return p.nextIs("(", "[", ".")
}
