package parser

import (
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

// expressions: expression (',' expression)+ [','] | expression ',' | expression
func (p *Parser) expressions() ast.Expr {
	return p.tupleOf(p.expression)
}

// tupleOf matches one or more items separated by commas. A single item
// without a trailing comma is returned as is; anything else becomes a
// tuple.
func (p *Parser) tupleOf(item func() ast.Expr) ast.Expr {
	start := p.start()
	first := item()
	if first == nil {
		return nil
	}
	elts := []ast.Expr{first}
	for {
		next := attempt(p, func() ast.Expr {
			if p.expect(",") == nil {
				return nil
			}
			return item()
		})
		if next == nil {
			break
		}
		elts = append(elts, next)
	}
	if p.expect(",") == nil && len(elts) == 1 {
		return first
	}
	return &ast.Tuple{Pos: p.span(start), Elts: elts, Ctx: ast.Load}
}

// expression:
//
//	| invalid_expression
//	| invalid_legacy_expression
//	| disjunction 'if' disjunction 'else' expression
//	| disjunction
//	| lambdef
func (p *Parser) expression() ast.Expr {
	return memo(p, "expression", func() ast.Expr {
		p.invalid(p.invalidExpression)
		p.invalid(p.invalidLegacyExpression)
		return p.expressionBody()
	})
}

func (p *Parser) expressionBody() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			body := p.disjunction()
			if body == nil || p.expect("if") == nil {
				return nil
			}
			test := p.disjunction()
			if test == nil || p.expect("else") == nil {
				return nil
			}
			orelse := p.expression()
			if orelse == nil {
				return nil
			}
			return &ast.IfExp{Pos: p.span(start), Test: test, Body: body, OrElse: orelse}
		},
		p.disjunction,
		p.lambdef,
	)
}

// expressionWithoutInvalid is expression with the invalid_* rules
// switched off.
func (p *Parser) expressionWithoutInvalid() ast.Expr {
	saved := p.callInvalidRules
	p.callInvalidRules = false
	defer func() { p.callInvalidRules = saved }()
	return p.expressionBody()
}

// yield_expr: 'yield' 'from' expression | 'yield' [star_expressions]
func (p *Parser) yieldExpr() ast.Expr {
	return attempt(p, func() ast.Expr {
		start := p.start()
		if p.expect("yield") == nil {
			return nil
		}
		if p.expect("from") != nil {
			value := p.expression()
			if value == nil {
				return nil
			}
			return &ast.YieldFrom{Pos: p.span(start), Value: value}
		}
		value := p.starExpressions()
		return &ast.Yield{Pos: p.span(start), Value: value}
	})
}

// star_expressions:
//
//	| star_expression (',' star_expression)+ [',']
//	| star_expression ','
//	| star_expression
func (p *Parser) starExpressions() ast.Expr {
	return p.tupleOf(p.starExpression)
}

// star_expression: '*' bitwise_or | expression
func (p *Parser) starExpression() ast.Expr {
	return memo(p, "star_expression", func() ast.Expr {
		if e := p.starred(p.bitwiseOr); e != nil {
			return e
		}
		return p.expression()
	})
}

// starred matches '*' followed by operand.
func (p *Parser) starred(operand func() ast.Expr) ast.Expr {
	return attempt(p, func() ast.Expr {
		start := p.start()
		if p.expect("*") == nil {
			return nil
		}
		value := operand()
		if value == nil {
			return nil
		}
		return &ast.Starred{Pos: p.span(start), Value: value, Ctx: ast.Load}
	})
}

// star_named_expressions: ','.star_named_expression+ [',']
func (p *Parser) starNamedExpressions() []ast.Expr {
	elts := gather(p, ",", p.starNamedExpression)
	if elts == nil {
		return nil
	}
	p.expect(",")
	return elts
}

// star_named_expression: '*' bitwise_or | named_expression
func (p *Parser) starNamedExpression() ast.Expr {
	if e := p.starred(p.bitwiseOr); e != nil {
		return e
	}
	return p.namedExpression()
}

// assignment_expression: NAME ':=' ~ expression
func (p *Parser) assignmentExpression() ast.Expr {
	return attempt(p, func() ast.Expr {
		start := p.start()
		target := p.name()
		if target == nil || p.expect(":=") == nil {
			return nil
		}
		value := p.expression()
		if value == nil {
			return nil
		}
		p.checkVersion(8, "Assignment expressions are")
		return &ast.NamedExpr{Pos: p.span(start), Target: setContext(target, ast.Store), Value: value}
	})
}

// named_expression: assignment_expression | invalid_named_expression | expression !':='
//
// Not memoized: whether invalid_named_expression may raise depends on the
// left-recursive rules active at the time of the call.
func (p *Parser) namedExpression() ast.Expr {
	if e := p.assignmentExpression(); e != nil {
		return e
	}
	p.invalid(p.invalidNamedExpression)
	return attempt(p, func() ast.Expr {
		e := p.expression()
		if e == nil || p.nextIs(":=") {
			return nil
		}
		return e
	})
}

// disjunction: conjunction ('or' conjunction)+ | conjunction
func (p *Parser) disjunction() ast.Expr {
	return memo(p, "disjunction", func() ast.Expr {
		return p.boolOp("or", ast.Or, p.conjunction)
	})
}

// conjunction: inversion ('and' inversion)+ | inversion
func (p *Parser) conjunction() ast.Expr {
	return memo(p, "conjunction", func() ast.Expr {
		return p.boolOp("and", ast.And, p.inversion)
	})
}

func (p *Parser) boolOp(keyword string, op ast.BoolOperator, operand func() ast.Expr) ast.Expr {
	start := p.start()
	first := operand()
	if first == nil {
		return nil
	}
	rest := zeroOrMore(p, func() ast.Expr {
		if p.expect(keyword) == nil {
			return nil
		}
		return operand()
	})
	if len(rest) == 0 {
		return first
	}
	return &ast.BoolOp{Pos: p.span(start), Op: op, Values: append([]ast.Expr{first}, rest...)}
}

// inversion: 'not' inversion | comparison
func (p *Parser) inversion() ast.Expr {
	return memo(p, "inversion", func() ast.Expr {
		start := p.start()
		if p.expect("not") != nil {
			operand := p.inversion()
			if operand == nil {
				return nil
			}
			return &ast.UnaryOp{Pos: p.span(start), Op: ast.Not, Operand: operand}
		}
		return p.comparison()
	})
}

// comparison: bitwise_or compare_op_bitwise_or_pair+ | bitwise_or
func (p *Parser) comparison() ast.Expr {
	return memo(p, "comparison", func() ast.Expr {
		start := p.start()
		left := p.bitwiseOr()
		if left == nil {
			return nil
		}
		pairs := zeroOrMore(p, p.compareOpPair)
		if len(pairs) == 0 {
			return left
		}
		cmp := &ast.Compare{Left: left}
		for _, pair := range pairs {
			cmp.Ops = append(cmp.Ops, pair.op)
			cmp.Comparators = append(cmp.Comparators, pair.expr)
		}
		cmp.Pos = p.span(start)
		return cmp
	})
}

var comparisonOperators = map[string]ast.CmpOp{
	"==": ast.Eq,
	"!=": ast.NotEq,
	"<":  ast.Lt,
	"<=": ast.LtE,
	">":  ast.Gt,
	">=": ast.GtE,
	"in": ast.In,
}

// compare_op_bitwise_or_pair: ('==' | '!=' | '<=' | '<' | '>=' | '>' | 'not' 'in' | 'in' | 'is' 'not' | 'is') bitwise_or
func (p *Parser) compareOpPair() *cmpPair {
	tok := p.peek()
	var op ast.CmpOp
	switch {
	case tok.Is("not"):
		p.stream.Next()
		if p.expect("in") == nil {
			return nil
		}
		op = ast.NotIn
	case tok.Is("is"):
		p.stream.Next()
		op = ast.Is
		if p.expect("not") != nil {
			op = ast.IsNot
		}
	default:
		known, ok := comparisonOperators[tok.Text]
		if !ok || !(tok.Kind == lexer.Op || tok.Is("in")) {
			return nil
		}
		p.stream.Next()
		op = known
	}
	right := p.bitwiseOr()
	if right == nil {
		return nil
	}
	return &cmpPair{op: op, expr: right}
}

// binaryOps maps operator spellings to the operators of one precedence
// level.
type binaryOps map[string]ast.Operator

var (
	bitwiseOrOps  = binaryOps{"|": ast.BitOr}
	bitwiseXorOps = binaryOps{"^": ast.BitXor}
	bitwiseAndOps = binaryOps{"&": ast.BitAnd}
	shiftOps      = binaryOps{"<<": ast.LShift, ">>": ast.RShift}
	sumOps        = binaryOps{"+": ast.Add, "-": ast.Sub}
	termOps       = binaryOps{"*": ast.Mult, "/": ast.Div, "//": ast.FloorDiv, "%": ast.Modulo, "@": ast.MatMult}
)

// leftAssoc matches the left-recursive rule
//
//	rule: rule op operand | operand
//
// for each op in ops.
func (p *Parser) leftAssoc(rule string, self, operand func() ast.Expr, ops binaryOps) ast.Expr {
	return memoLeftRec(p, rule, func() ast.Expr {
		return choice(p,
			func() ast.Expr {
				start := p.start()
				left := self()
				if left == nil {
					return nil
				}
				tok := p.peek()
				op, ok := ops[tok.Text]
				if !ok || tok.Kind != lexer.Op {
					return nil
				}
				p.stream.Next()
				right := operand()
				if right == nil {
					return nil
				}
				if op == ast.MatMult {
					p.checkVersion(5, "The '@' operator is")
				}
				return &ast.BinOp{Pos: p.span(start), Left: left, Op: op, Right: right}
			},
			operand,
		)
	})
}

// bitwise_or: bitwise_or '|' bitwise_xor | bitwise_xor
func (p *Parser) bitwiseOr() ast.Expr {
	return p.leftAssoc("bitwise_or", p.bitwiseOr, p.bitwiseXor, bitwiseOrOps)
}

// bitwise_xor: bitwise_xor '^' bitwise_and | bitwise_and
func (p *Parser) bitwiseXor() ast.Expr {
	return p.leftAssoc("bitwise_xor", p.bitwiseXor, p.bitwiseAnd, bitwiseXorOps)
}

// bitwise_and: bitwise_and '&' shift_expr | shift_expr
func (p *Parser) bitwiseAnd() ast.Expr {
	return p.leftAssoc("bitwise_and", p.bitwiseAnd, p.shiftExpr, bitwiseAndOps)
}

// shift_expr: shift_expr ('<<' | '>>') sum | sum
func (p *Parser) shiftExpr() ast.Expr {
	return p.leftAssoc("shift_expr", p.shiftExpr, p.sum, shiftOps)
}

// sum: sum ('+' | '-') term | term
func (p *Parser) sum() ast.Expr {
	return p.leftAssoc("sum", p.sum, p.term, sumOps)
}

// term: term ('*' | '/' | '//' | '%' | '@') factor | factor
func (p *Parser) term() ast.Expr {
	return p.leftAssoc("term", p.term, p.factor, termOps)
}

var unaryOperators = map[string]ast.UnaryOperator{
	"+": ast.UAdd,
	"-": ast.USub,
	"~": ast.Invert,
}

// factor: '+' factor | '-' factor | '~' factor | power
func (p *Parser) factor() ast.Expr {
	return memo(p, "factor", func() ast.Expr {
		start := p.start()
		tok := p.peek()
		if op, ok := unaryOperators[tok.Text]; ok && tok.Kind == lexer.Op {
			p.stream.Next()
			operand := p.factor()
			if operand == nil {
				return nil
			}
			return &ast.UnaryOp{Pos: p.span(start), Op: op, Operand: operand}
		}
		return p.power()
	})
}

// power: await_primary '**' factor | await_primary
func (p *Parser) power() ast.Expr {
	start := p.start()
	base := p.awaitPrimary()
	if base == nil {
		return nil
	}
	exp := attempt(p, func() ast.Expr {
		if p.expect("**") == nil {
			return nil
		}
		return p.factor()
	})
	if exp == nil {
		return base
	}
	return &ast.BinOp{Pos: p.span(start), Left: base, Op: ast.Pow, Right: exp}
}

// await_primary: AWAIT primary | primary
func (p *Parser) awaitPrimary() ast.Expr {
	return memo(p, "await_primary", func() ast.Expr {
		start := p.start()
		if p.expect("await") != nil {
			value := p.primary()
			if value == nil {
				return nil
			}
			p.checkVersion(5, "Await expressions are")
			return &ast.Await{Pos: p.span(start), Value: value}
		}
		return p.primary()
	})
}

// primary:
//
//	| primary '.' NAME
//	| primary genexp
//	| primary '(' [arguments] ')'
//	| primary '[' slices ']'
//	| atom
func (p *Parser) primary() ast.Expr {
	return memoLeftRec(p, "primary", func() ast.Expr {
		start := p.start()
		return choice(p,
			func() ast.Expr {
				value := p.primary()
				if value == nil || p.expect(".") == nil {
					return nil
				}
				attr := p.nameToken()
				if attr == nil {
					return nil
				}
				return &ast.Attribute{Pos: p.span(start), Value: value, Attr: attr.Text, Ctx: ast.Load}
			},
			func() ast.Expr {
				fn := p.primary()
				if fn == nil {
					return nil
				}
				gen := p.genexp()
				if gen == nil {
					return nil
				}
				return &ast.Call{Pos: p.span(start), Func: fn, Args: []ast.Expr{gen}, Keywords: []*ast.Keyword{}}
			},
			func() ast.Expr {
				fn := p.primary()
				if fn == nil {
					return nil
				}
				return p.callSuffix(start, fn)
			},
			func() ast.Expr {
				value := p.primary()
				if value == nil {
					return nil
				}
				return p.subscriptSuffix(start, value, ast.Load)
			},
			p.atom,
		)
	})
}

// callSuffix matches '(' [arguments] ')' after fn.
func (p *Parser) callSuffix(start lexer.Position, fn ast.Expr) ast.Expr {
	if p.expect("(") == nil {
		return nil
	}
	args := p.arguments()
	if p.expect(")") == nil {
		return nil
	}
	call := &ast.Call{Func: fn, Args: []ast.Expr{}, Keywords: []*ast.Keyword{}}
	if args != nil {
		call.Args, call.Keywords = args.Args, args.Keywords
	}
	call.Pos = p.span(start)
	return call
}

// subscriptSuffix matches '[' slices ']' after value.
func (p *Parser) subscriptSuffix(start lexer.Position, value ast.Expr, ctx ast.ExprContext) ast.Expr {
	if p.expect("[") == nil {
		return nil
	}
	slice := p.slices()
	if slice == nil || p.expect("]") == nil {
		return nil
	}
	return &ast.Subscript{Pos: p.span(start), Value: value, Slice: slice, Ctx: ctx}
}

// slices: slice !',' | ','.slice+ [',']
func (p *Parser) slices() ast.Expr {
	return choice(p,
		func() ast.Expr {
			s := p.slice()
			if s == nil || p.nextIs(",") {
				return nil
			}
			return s
		},
		func() ast.Expr {
			start := p.start()
			elts := gather(p, ",", p.slice)
			if elts == nil {
				return nil
			}
			p.expect(",")
			return &ast.Tuple{Pos: p.span(start), Elts: elts, Ctx: ast.Load}
		},
	)
}

// slice: [expression] ':' [expression] [':' [expression]] | named_expression
func (p *Parser) slice() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			lower := p.expression()
			if p.expect(":") == nil {
				return nil
			}
			upper := p.expression()
			var step ast.Expr
			if p.expect(":") != nil {
				step = p.expression()
			}
			return &ast.Slice{Pos: p.span(start), Lower: lower, Upper: upper, Step: step}
		},
		p.namedExpression,
	)
}

// lambdef: 'lambda' [lambda_params] ':' expression
func (p *Parser) lambdef() ast.Expr {
	return attempt(p, func() ast.Expr {
		start := p.start()
		if p.expect("lambda") == nil {
			return nil
		}
		params := p.lambdaParams()
		if p.expect(":") == nil {
			return nil
		}
		body := p.expression()
		if body == nil {
			return nil
		}
		if params == nil {
			params = emptyArguments()
		}
		return &ast.Lambda{Pos: p.span(start), Args: params, Body: body}
	})
}
