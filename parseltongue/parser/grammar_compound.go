package parser

import (
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

// function_def: decorators function_def_raw | function_def_raw
func (p *Parser) functionDef() ast.Stmt {
	return memo(p, "function_def", func() ast.Stmt {
		decorators := p.decorators()
		def := p.functionDefRaw()
		if def == nil {
			return nil
		}
		return decorate(decorators, def)
	})
}

// decorators: ('@' named_expression NEWLINE)+
func (p *Parser) decorators() []ast.Expr {
	return memo(p, "decorators", func() []ast.Expr {
		return oneOrMore(p, func() ast.Expr {
			if p.expect("@") == nil {
				return nil
			}
			e := p.namedExpression()
			if e == nil || p.newline() == nil {
				return nil
			}
			return e
		})
	})
}

// function_def_raw:
//
//	| invalid_def_raw
//	| ASYNC? 'def' NAME '(' params? ')' ['->' expression] &&':' block
func (p *Parser) functionDefRaw() ast.Stmt {
	return choice(p,
		func() ast.Stmt {
			p.invalid(p.invalidDefRaw)
			return nil
		},
		func() ast.Stmt {
			start := p.start()
			async := p.expect("async") != nil
			if p.expect("def") == nil {
				return nil
			}
			name := p.nameToken()
			if name == nil || p.expect("(") == nil {
				return nil
			}
			params := p.params()
			if p.expect(")") == nil {
				return nil
			}
			returns := attempt(p, func() ast.Expr {
				if p.expect("->") == nil {
					return nil
				}
				return p.expression()
			})
			p.expectForced(":", "':'")
			body := p.block()
			if body == nil {
				return nil
			}
			if params == nil {
				params = emptyArguments()
			}
			if async {
				p.checkVersion(5, "Async functions are")
				return &ast.AsyncFunctionDef{
					Pos:           p.span(start),
					Name:          name.Text,
					Args:          params,
					Body:          body,
					DecoratorList: []ast.Expr{},
					Returns:       returns,
				}
			}
			return &ast.FunctionDef{
				Pos:           p.span(start),
				Name:          name.Text,
				Args:          params,
				Body:          body,
				DecoratorList: []ast.Expr{},
				Returns:       returns,
			}
		},
	)
}

// class_def: decorators class_def_raw | class_def_raw
func (p *Parser) classDef() ast.Stmt {
	return memo(p, "class_def", func() ast.Stmt {
		decorators := p.decorators()
		def := p.classDefRaw()
		if def == nil {
			return nil
		}
		return decorate(decorators, def)
	})
}

// class_def_raw:
//
//	| invalid_class_def_raw
//	| 'class' NAME ['(' arguments? ')'] &&':' block
func (p *Parser) classDefRaw() ast.Stmt {
	return choice(p,
		func() ast.Stmt {
			p.invalid(p.invalidClassDefRaw)
			return nil
		},
		func() ast.Stmt {
			start := p.start()
			if p.expect("class") == nil {
				return nil
			}
			name := p.nameToken()
			if name == nil {
				return nil
			}
			bases, keywords := []ast.Expr{}, []*ast.Keyword{}
			call := attempt(p, func() *ast.Call {
				if p.expect("(") == nil {
					return nil
				}
				call := p.arguments()
				if p.expect(")") == nil {
					return nil
				}
				if call == nil {
					call = &ast.Call{}
				}
				return call
			})
			if call != nil {
				if call.Args != nil {
					bases = call.Args
				}
				if call.Keywords != nil {
					keywords = call.Keywords
				}
			}
			p.expectForced(":", "':'")
			body := p.block()
			if body == nil {
				return nil
			}
			return &ast.ClassDef{
				Pos:           p.span(start),
				Name:          name.Text,
				Bases:         bases,
				Keywords:      keywords,
				Body:          body,
				DecoratorList: []ast.Expr{},
			}
		},
	)
}

// if_stmt:
//
//	| invalid_if_stmt
//	| 'if' named_expression colon_block elif_stmt
//	| 'if' named_expression colon_block else_block?
func (p *Parser) ifStmt() ast.Stmt {
	return memo(p, "if_stmt", func() ast.Stmt {
		return p.conditional("if")
	})
}

// elif_stmt:
//
//	| invalid_elif_stmt
//	| 'elif' named_expression colon_block elif_stmt
//	| 'elif' named_expression colon_block else_block?
func (p *Parser) elifStmt() ast.Stmt {
	return memo(p, "elif_stmt", func() ast.Stmt {
		return p.conditional("elif")
	})
}

// conditional parses an if or elif statement; the two differ only in the
// leading keyword.
func (p *Parser) conditional(keyword string) ast.Stmt {
	p.invalid(func() { p.invalidConditional(keyword) })
	start := p.start()
	if p.expect(keyword) == nil {
		return nil
	}
	test := p.namedExpression()
	if test == nil {
		return nil
	}
	body := p.colonBlock()
	if body == nil {
		return nil
	}
	orelse := []ast.Stmt{}
	if elif := p.elifStmt(); elif != nil {
		orelse = []ast.Stmt{elif}
	} else if block := p.elseBlock(); block != nil {
		orelse = block
	}
	return &ast.If{Pos: p.span(start), Test: test, Body: body, OrElse: orelse}
}

// else_block: invalid_else_stmt | 'else' &&':' block
//
// The relaxed dialect accepts 'else' ':'? block.
func (p *Parser) elseBlock() []ast.Stmt {
	return memo(p, "else_block", func() []ast.Stmt {
		p.invalid(p.invalidElseStmt)
		if p.expect("else") == nil {
			return nil
		}
		if p.relaxedColons {
			p.expect(":")
		} else {
			p.expectForced(":", "':'")
		}
		return p.block()
	})
}

// while_stmt: invalid_while_stmt | 'while' named_expression ':' block else_block?
func (p *Parser) whileStmt() ast.Stmt {
	return memo(p, "while_stmt", func() ast.Stmt {
		p.invalid(p.invalidWhileStmt)
		start := p.start()
		if p.expect("while") == nil {
			return nil
		}
		test := p.namedExpression()
		if test == nil || p.expect(":") == nil {
			return nil
		}
		body := p.block()
		if body == nil {
			return nil
		}
		orelse := p.elseBlock()
		if orelse == nil {
			orelse = []ast.Stmt{}
		}
		return &ast.While{Pos: p.span(start), Test: test, Body: body, OrElse: orelse}
	})
}

// for_stmt:
//
//	| invalid_for_stmt
//	| ASYNC? 'for' star_targets 'in' ~ star_expressions &&':' block else_block?
//	| invalid_for_target
func (p *Parser) forStmt() ast.Stmt {
	return memo(p, "for_stmt", func() ast.Stmt {
		return choice(p,
			func() ast.Stmt {
				p.invalid(p.invalidForStmt)
				return nil
			},
			func() ast.Stmt {
				start := p.start()
				async := p.expect("async") != nil
				if p.expect("for") == nil {
					return nil
				}
				target := p.starTargets()
				if target == nil || p.expect("in") == nil {
					return nil
				}
				p.cut = true
				iter := p.starExpressions()
				if iter == nil {
					return nil
				}
				p.expectForced(":", "':'")
				body := p.block()
				if body == nil {
					return nil
				}
				orelse := p.elseBlock()
				if orelse == nil {
					orelse = []ast.Stmt{}
				}
				if async {
					p.checkVersion(5, "Async for loops are")
					return &ast.AsyncFor{Pos: p.span(start), Target: target, Iter: iter, Body: body, OrElse: orelse}
				}
				return &ast.For{Pos: p.span(start), Target: target, Iter: iter, Body: body, OrElse: orelse}
			},
			func() ast.Stmt {
				p.invalid(p.invalidForTarget)
				return nil
			},
		)
	})
}

// with_stmt:
//
//	| invalid_with_stmt_indent
//	| ASYNC? 'with' '(' ','.with_item+ ','? ')' ':' block
//	| ASYNC? 'with' ','.with_item+ ':' block
//	| invalid_with_stmt
func (p *Parser) withStmt() ast.Stmt {
	return memo(p, "with_stmt", func() ast.Stmt {
		start := p.start()
		build := func(async bool, items []*ast.WithItem, body []ast.Stmt) ast.Stmt {
			if async {
				p.checkVersion(5, "Async with statements are")
				return &ast.AsyncWith{Pos: p.span(start), Items: items, Body: body}
			}
			return &ast.With{Pos: p.span(start), Items: items, Body: body}
		}
		return choice(p,
			func() ast.Stmt {
				p.invalid(p.invalidWithStmtIndent)
				return nil
			},
			func() ast.Stmt {
				async := p.expect("async") != nil
				if p.expect("with") == nil || p.expect("(") == nil {
					return nil
				}
				items := gather(p, ",", p.withItem)
				if items == nil {
					return nil
				}
				p.expect(",")
				if p.expect(")") == nil || p.expect(":") == nil {
					return nil
				}
				body := p.block()
				if body == nil {
					return nil
				}
				return build(async, items, body)
			},
			func() ast.Stmt {
				async := p.expect("async") != nil
				if p.expect("with") == nil {
					return nil
				}
				items := gather(p, ",", p.withItem)
				if items == nil || p.expect(":") == nil {
					return nil
				}
				body := p.block()
				if body == nil {
					return nil
				}
				return build(async, items, body)
			},
			func() ast.Stmt {
				p.invalid(p.invalidWithStmt)
				return nil
			},
		)
	})
}

// with_item:
//
//	| expression 'as' star_target &(',' | ')' | ':')
//	| invalid_with_item
//	| expression
func (p *Parser) withItem() *ast.WithItem {
	return choice(p,
		func() *ast.WithItem {
			e := p.expression()
			if e == nil || p.expect("as") == nil {
				return nil
			}
			target := p.starTarget()
			if target == nil || !p.nextIs(",", ")", ":") {
				return nil
			}
			return &ast.WithItem{ContextExpr: e, OptionalVars: target}
		},
		func() *ast.WithItem {
			p.invalid(p.invalidWithItem)
			return nil
		},
		func() *ast.WithItem {
			e := p.expression()
			if e == nil {
				return nil
			}
			return &ast.WithItem{ContextExpr: e}
		},
	)
}

// try_stmt:
//
//	| invalid_try_stmt
//	| 'try' &&':' block finally_block
//	| 'try' &&':' block except_block+ else_block? finally_block?
func (p *Parser) tryStmt() ast.Stmt {
	return memo(p, "try_stmt", func() ast.Stmt {
		p.invalid(p.invalidTryStmt)
		start := p.start()
		if p.expect("try") == nil {
			return nil
		}
		p.expectForced(":", "':'")
		body := p.block()
		if body == nil {
			return nil
		}
		if final := p.finallyBlock(); final != nil {
			return &ast.Try{
				Pos:       p.span(start),
				Body:      body,
				Handlers:  []*ast.ExceptHandler{},
				OrElse:    []ast.Stmt{},
				FinalBody: final,
			}
		}
		handlers := oneOrMore(p, p.exceptBlock)
		if handlers == nil {
			return nil
		}
		orelse := p.elseBlock()
		if orelse == nil {
			orelse = []ast.Stmt{}
		}
		final := p.finallyBlock()
		if final == nil {
			final = []ast.Stmt{}
		}
		return &ast.Try{Pos: p.span(start), Body: body, Handlers: handlers, OrElse: orelse, FinalBody: final}
	})
}

// except_block:
//
//	| invalid_except_stmt_indent
//	| 'except' expression ['as' NAME] ':' block
//	| 'except' ':' block
//	| invalid_except_stmt
func (p *Parser) exceptBlock() *ast.ExceptHandler {
	return memo(p, "except_block", func() *ast.ExceptHandler {
		start := p.start()
		return choice(p,
			func() *ast.ExceptHandler {
				p.invalid(p.invalidExceptStmtIndent)
				return nil
			},
			func() *ast.ExceptHandler {
				if p.expect("except") == nil {
					return nil
				}
				typ := p.expression()
				if typ == nil {
					return nil
				}
				name := p.asName()
				if p.expect(":") == nil {
					return nil
				}
				body := p.block()
				if body == nil {
					return nil
				}
				return &ast.ExceptHandler{Pos: p.span(start), Type: typ, Name: name, Body: body}
			},
			func() *ast.ExceptHandler {
				if p.expect("except") == nil || p.expect(":") == nil {
					return nil
				}
				body := p.block()
				if body == nil {
					return nil
				}
				return &ast.ExceptHandler{Pos: p.span(start), Body: body}
			},
			func() *ast.ExceptHandler {
				p.invalid(p.invalidExceptStmt)
				return nil
			},
		)
	})
}

// finally_block: invalid_finally_stmt | 'finally' &&':' block
func (p *Parser) finallyBlock() []ast.Stmt {
	return memo(p, "finally_block", func() []ast.Stmt {
		p.invalid(p.invalidFinallyStmt)
		if p.expect("finally") == nil {
			return nil
		}
		p.expectForced(":", "':'")
		return p.block()
	})
}

// match_stmt:
//
//	| "match" subject_expr ':' NEWLINE INDENT case_block+ DEDENT
//	| invalid_match_stmt
func (p *Parser) matchStmt() ast.Stmt {
	return memo(p, "match_stmt", func() ast.Stmt {
		return choice(p,
			func() ast.Stmt {
				start := p.start()
				if p.softKeyword("match") == nil {
					return nil
				}
				subject := p.subjectExpr()
				if subject == nil || p.expect(":") == nil || p.newline() == nil || p.expectKind(lexer.Indent) == nil {
					return nil
				}
				cases := oneOrMore(p, p.caseBlock)
				if cases == nil || p.expectKind(lexer.Dedent) == nil {
					return nil
				}
				p.checkVersion(10, "Pattern matching is")
				return &ast.Match{Pos: p.span(start), Subject: subject, Cases: cases}
			},
			func() ast.Stmt {
				p.invalid(p.invalidMatchStmt)
				return nil
			},
		)
	})
}

// subject_expr: star_named_expression ',' star_named_expressions? | named_expression
func (p *Parser) subjectExpr() ast.Expr {
	return choice(p,
		func() ast.Expr {
			start := p.start()
			first := p.starNamedExpression()
			if first == nil || p.expect(",") == nil {
				return nil
			}
			elts := append([]ast.Expr{first}, p.starNamedExpressions()...)
			return &ast.Tuple{Pos: p.span(start), Elts: elts, Ctx: ast.Load}
		},
		p.namedExpression,
	)
}

// case_block: invalid_case_block | "case" patterns guard? ':' block
func (p *Parser) caseBlock() *ast.MatchCase {
	return memo(p, "case_block", func() *ast.MatchCase {
		p.invalid(p.invalidCaseBlock)
		if p.softKeyword("case") == nil {
			return nil
		}
		pattern := p.patterns()
		if pattern == nil {
			return nil
		}
		guard := p.guard()
		if p.expect(":") == nil {
			return nil
		}
		body := p.block()
		if body == nil {
			return nil
		}
		return &ast.MatchCase{Pattern: pattern, Guard: guard, Body: body}
	})
}

// guard: 'if' named_expression
func (p *Parser) guard() ast.Expr {
	return attempt(p, func() ast.Expr {
		if p.expect("if") == nil {
			return nil
		}
		return p.namedExpression()
	})
}
