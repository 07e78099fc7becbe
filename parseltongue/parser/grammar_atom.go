package parser

import (
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
	"github.com/dhamidi/parseltongue/python/literal"
)

// atom:
//
//	| NAME
//	| 'True' | 'False' | 'None'
//	| &STRING strings
//	| NUMBER
//	| &'(' (tuple | group | genexp)
//	| &'[' (list | listcomp)
//	| &'{' (dict | set | dictcomp | setcomp)
//	| '...'
func (p *Parser) atom() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Name:
		switch tok.Text {
		case "True", "False", "None":
			p.stream.Next()
			return &ast.Constant{Pos: tokenPos(tok), Value: singletonValue(tok.Text)}
		}
		if n := p.name(); n != nil {
			return n
		}
		return nil
	case lexer.String:
		return p.strings()
	case lexer.Number:
		return p.number()
	}
	switch {
	case tok.Is("("):
		return choice(p, p.tuple, p.group, p.genexp)
	case tok.Is("["):
		return choice(p, p.list, p.listcomp)
	case tok.Is("{"):
		return choice(p, p.dict, p.set, p.dictcomp, p.setcomp)
	case tok.Is("..."):
		p.stream.Next()
		return &ast.Constant{Pos: tokenPos(tok), Value: ast.Ellipsis{}}
	}
	return nil
}

func singletonValue(text string) any {
	switch text {
	case "True":
		return true
	case "False":
		return false
	}
	return nil
}

func (p *Parser) number() ast.Expr {
	tok := p.numberToken()
	if tok == nil {
		return nil
	}
	value, err := literal.ParseNumber(tok.Text)
	if err != nil {
		p.raiseAt(*tok, "%s", err)
	}
	return &ast.Constant{Pos: tokenPos(*tok), Value: value}
}

// strings: STRING+
func (p *Parser) strings() ast.Expr {
	return memo(p, "strings", func() ast.Expr {
		toks := oneOrMore(p, p.stringToken)
		if toks == nil {
			return nil
		}
		return p.concatenateStrings(toks)
	})
}

// list: '[' [star_named_expressions] ']'
func (p *Parser) list() ast.Expr {
	start := p.start()
	if p.expect("[") == nil {
		return nil
	}
	elts := p.starNamedExpressions()
	if p.expect("]") == nil {
		return nil
	}
	if elts == nil {
		elts = []ast.Expr{}
	}
	return &ast.List{Pos: p.span(start), Elts: elts, Ctx: ast.Load}
}

// tuple: '(' [star_named_expression ',' [star_named_expressions]] ')'
func (p *Parser) tuple() ast.Expr {
	start := p.start()
	if p.expect("(") == nil {
		return nil
	}
	elts := attempt(p, func() []ast.Expr {
		first := p.starNamedExpression()
		if first == nil || p.expect(",") == nil {
			return nil
		}
		return append([]ast.Expr{first}, p.starNamedExpressions()...)
	})
	if p.expect(")") == nil {
		return nil
	}
	if elts == nil {
		elts = []ast.Expr{}
	}
	return &ast.Tuple{Pos: p.span(start), Elts: elts, Ctx: ast.Load}
}

// group: '(' (yield_expr | named_expression) ')' | invalid_group
func (p *Parser) group() ast.Expr {
	return choice(p,
		func() ast.Expr {
			if p.expect("(") == nil {
				return nil
			}
			e := p.yieldExpr()
			if e == nil {
				e = p.namedExpression()
			}
			if e == nil || p.expect(")") == nil {
				return nil
			}
			return e
		},
		func() ast.Expr {
			p.invalid(p.invalidGroup)
			return nil
		},
	)
}

// set: '{' star_named_expressions '}'
func (p *Parser) set() ast.Expr {
	start := p.start()
	if p.expect("{") == nil {
		return nil
	}
	elts := p.starNamedExpressions()
	if elts == nil || p.expect("}") == nil {
		return nil
	}
	return &ast.Set{Pos: p.span(start), Elts: elts}
}

// dict: '{' [double_starred_kvpairs] '}' | '{' invalid_double_starred_kvpairs '}'
func (p *Parser) dict() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			if p.expect("{") == nil {
				return nil
			}
			pairs := p.doubleStarredKvpairs()
			if p.expect("}") == nil {
				return nil
			}
			d := &ast.Dict{Keys: []ast.Expr{}, Values: []ast.Expr{}}
			for _, kv := range pairs {
				d.Keys = append(d.Keys, kv.key)
				d.Values = append(d.Values, kv.value)
			}
			d.Pos = p.span(start)
			return d
		},
		func() ast.Expr {
			if p.expect("{") == nil {
				return nil
			}
			p.invalid(p.invalidDoubleStarredKvpairs)
			return nil
		},
	)
}

// double_starred_kvpairs: ','.double_starred_kvpair+ [',']
func (p *Parser) doubleStarredKvpairs() []*keyValue {
	pairs := gather(p, ",", p.doubleStarredKvpair)
	if pairs == nil {
		return nil
	}
	p.expect(",")
	return pairs
}

// double_starred_kvpair: '**' bitwise_or | kvpair
func (p *Parser) doubleStarredKvpair() *keyValue {
	return choice(p,
		func() *keyValue {
			if p.expect("**") == nil {
				return nil
			}
			value := p.bitwiseOr()
			if value == nil {
				return nil
			}
			return &keyValue{value: value}
		},
		p.kvpair,
	)
}

// kvpair: expression ':' expression
func (p *Parser) kvpair() *keyValue {
	return attempt(p, func() *keyValue {
		key := p.expression()
		if key == nil || p.expect(":") == nil {
			return nil
		}
		value := p.expression()
		if value == nil {
			return nil
		}
		return &keyValue{key: key, value: value}
	})
}

// for_if_clauses: for_if_clause+
func (p *Parser) forIfClauses() []*ast.Comprehension {
	return oneOrMore(p, p.forIfClause)
}

// for_if_clause:
//
//	| ASYNC? 'for' star_targets 'in' ~ disjunction ('if' disjunction)*
//	| invalid_for_target
func (p *Parser) forIfClause() *ast.Comprehension {
	return choice(p,
		func() *ast.Comprehension {
			async := p.expect("async") != nil
			if p.expect("for") == nil {
				return nil
			}
			target := p.starTargets()
			if target == nil || p.expect("in") == nil {
				return nil
			}
			p.cut = true
			iter := p.disjunction()
			if iter == nil {
				return nil
			}
			ifs := zeroOrMore(p, func() ast.Expr {
				if p.expect("if") == nil {
					return nil
				}
				return p.disjunction()
			})
			c := &ast.Comprehension{Target: target, Iter: iter, Ifs: ifs}
			if async {
				p.checkVersion(6, "Async comprehensions are")
				c.IsAsync = 1
			}
			return c
		},
		func() *ast.Comprehension {
			p.invalid(p.invalidForTarget)
			return nil
		},
	)
}

// comprehension matches open elt for_if_clauses close.
func (p *Parser) comprehension(open, close string, elt func() ast.Expr) (ast.Expr, []*ast.Comprehension) {
	if p.expect(open) == nil {
		return nil, nil
	}
	e := elt()
	if e == nil {
		return nil, nil
	}
	gens := p.forIfClauses()
	if gens == nil || p.expect(close) == nil {
		return nil, nil
	}
	return e, gens
}

// listcomp: '[' named_expression for_if_clauses ']' | invalid_comprehension
func (p *Parser) listcomp() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			elt, gens := p.comprehension("[", "]", p.namedExpression)
			if elt == nil {
				return nil
			}
			return &ast.ListComp{Pos: p.span(start), Elt: elt, Generators: gens}
		},
		func() ast.Expr {
			p.invalid(p.invalidComprehension)
			return nil
		},
	)
}

// setcomp: '{' named_expression for_if_clauses '}' | invalid_comprehension
func (p *Parser) setcomp() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			elt, gens := p.comprehension("{", "}", p.namedExpression)
			if elt == nil {
				return nil
			}
			return &ast.SetComp{Pos: p.span(start), Elt: elt, Generators: gens}
		},
		func() ast.Expr {
			p.invalid(p.invalidComprehension)
			return nil
		},
	)
}

// genexp: '(' (assignment_expression | expression !':=') for_if_clauses ')' | invalid_comprehension
func (p *Parser) genexp() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			elt, gens := p.comprehension("(", ")", p.genexpElement)
			if elt == nil {
				return nil
			}
			return &ast.GeneratorExp{Pos: p.span(start), Elt: elt, Generators: gens}
		},
		func() ast.Expr {
			p.invalid(p.invalidComprehension)
			return nil
		},
	)
}

// assignment_expression | expression !':='
func (p *Parser) genexpElement() ast.Expr {
	if e := p.assignmentExpression(); e != nil {
		return e
	}
	return attempt(p, func() ast.Expr {
		e := p.expression()
		if e == nil || p.nextIs(":=") {
			return nil
		}
		return e
	})
}

// dictcomp: '{' kvpair for_if_clauses '}' | invalid_dict_comprehension
func (p *Parser) dictcomp() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			if p.expect("{") == nil {
				return nil
			}
			kv := p.kvpair()
			if kv == nil {
				return nil
			}
			gens := p.forIfClauses()
			if gens == nil || p.expect("}") == nil {
				return nil
			}
			return &ast.DictComp{Pos: p.span(start), Key: kv.key, Value: kv.value, Generators: gens}
		},
		func() ast.Expr {
			p.invalid(p.invalidDictComprehension)
			return nil
		},
	)
}

// arguments: args [','] &')' | invalid_arguments
//
// The result carries the positional and keyword arguments of a call; its
// Func is unset.
func (p *Parser) arguments() *ast.Call {
	return memo(p, "arguments", func() *ast.Call {
		return choice(p,
			func() *ast.Call {
				call := p.args()
				if call == nil {
					return nil
				}
				p.expect(",")
				if !p.nextIs(")") {
					return nil
				}
				return call
			},
			func() *ast.Call {
				p.invalid(p.invalidArguments)
				return nil
			},
		)
	})
}

// args:
//
//	| ','.(starred_expression | (assignment_expression | expression !':=') !'=')+ [',' kwargs]
//	| kwargs
func (p *Parser) args() *ast.Call {
	return choice(p,
		func() *ast.Call {
			start := p.start()
			positional := gather(p, ",", p.positionalArg)
			if positional == nil {
				return nil
			}
			kws := attempt(p, func() []*keywordOrStarred {
				if p.expect(",") == nil {
					return nil
				}
				return p.kwargs()
			})
			args, keywords := collectCallArgs(positional, kws)
			return &ast.Call{Pos: p.span(start), Args: args, Keywords: keywords}
		},
		func() *ast.Call {
			start := p.start()
			kws := p.kwargs()
			if kws == nil {
				return nil
			}
			args, keywords := collectCallArgs(nil, kws)
			return &ast.Call{Pos: p.span(start), Args: args, Keywords: keywords}
		},
	)
}

// starred_expression | (assignment_expression | expression !':=') !'='
func (p *Parser) positionalArg() ast.Expr {
	if e := p.starredExpression(); e != nil {
		return e
	}
	return attempt(p, func() ast.Expr {
		e := p.genexpElement()
		if e == nil || p.nextIs("=") {
			return nil
		}
		return e
	})
}

// kwargs:
//
//	| ','.kwarg_or_starred+ ',' ','.kwarg_or_double_starred+
//	| ','.kwarg_or_starred+
//	| ','.kwarg_or_double_starred+
func (p *Parser) kwargs() []*keywordOrStarred {
	return choice(p,
		func() []*keywordOrStarred {
			first := gather(p, ",", p.kwargOrStarred)
			if first == nil || p.expect(",") == nil {
				return nil
			}
			rest := gather(p, ",", p.kwargOrDoubleStarred)
			if rest == nil {
				return nil
			}
			return append(first, rest...)
		},
		func() []*keywordOrStarred {
			return gather(p, ",", p.kwargOrStarred)
		},
		func() []*keywordOrStarred {
			return gather(p, ",", p.kwargOrDoubleStarred)
		},
	)
}

// starred_expression: '*' expression
func (p *Parser) starredExpression() ast.Expr {
	return p.starred(p.expression)
}

// kwarg_or_starred: invalid_kwarg | NAME '=' expression | starred_expression
func (p *Parser) kwargOrStarred() *keywordOrStarred {
	p.invalid(p.invalidKwarg)
	if kw := p.namedKeyword(); kw != nil {
		return &keywordOrStarred{keyword: kw}
	}
	if e := p.starredExpression(); e != nil {
		return &keywordOrStarred{starred: e}
	}
	return nil
}

// kwarg_or_double_starred: invalid_kwarg | NAME '=' expression | '**' expression
func (p *Parser) kwargOrDoubleStarred() *keywordOrStarred {
	p.invalid(p.invalidKwarg)
	if kw := p.namedKeyword(); kw != nil {
		return &keywordOrStarred{keyword: kw}
	}
	kw := attempt(p, func() *ast.Keyword {
		start := p.start()
		if p.expect("**") == nil {
			return nil
		}
		value := p.expression()
		if value == nil {
			return nil
		}
		return &ast.Keyword{Pos: p.span(start), Value: value}
	})
	if kw == nil {
		return nil
	}
	return &keywordOrStarred{keyword: kw}
}

// NAME '=' expression
func (p *Parser) namedKeyword() *ast.Keyword {
	return attempt(p, func() *ast.Keyword {
		start := p.start()
		name := p.nameToken()
		if name == nil || p.expect("=") == nil {
			return nil
		}
		value := p.expression()
		if value == nil {
			return nil
		}
		return &ast.Keyword{Pos: p.span(start), Arg: name.Text, Value: value}
	})
}

// type_expressions:
//
//	| ','.expression+ ',' '*' expression ',' '**' expression
//	| ','.expression+ ',' '*' expression
//	| ','.expression+ ',' '**' expression
//	| '*' expression ',' '**' expression
//	| '*' expression
//	| '**' expression
//	| ','.expression+
func (p *Parser) typeExpressions() []ast.Expr {
	return attempt(p, func() []ast.Expr {
		out := append([]ast.Expr{}, gather(p, ",", p.expression)...)
		prefixed := func(star string) ast.Expr {
			return attempt(p, func() ast.Expr {
				if len(out) > 0 && p.expect(",") == nil {
					return nil
				}
				if p.expect(star) == nil {
					return nil
				}
				return p.expression()
			})
		}
		if e := prefixed("*"); e != nil {
			out = append(out, e)
		}
		if e := prefixed("**"); e != nil {
			out = append(out, e)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	})
}
