package parser

import (
	"strings"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

// assignment:
//
//	| NAME ':' expression ['=' annotated_rhs]
//	| ('(' single_target ')' | single_subscript_attribute_target) ':' expression ['=' annotated_rhs]
//	| (star_targets '=')+ (yield_expr | star_expressions) !'='
//	| single_target augassign ~ (yield_expr | star_expressions)
//	| invalid_assignment
func (p *Parser) assignment() ast.Stmt {
	return memo(p, "assignment", func() ast.Stmt {
		start := p.start()
		return choice(p,
			func() ast.Stmt {
				target := p.name()
				if target == nil || p.expect(":") == nil {
					return nil
				}
				annotation := p.expression()
				if annotation == nil {
					return nil
				}
				value := p.optionalAnnotatedRHS()
				return &ast.AnnAssign{
					Pos:        p.span(start),
					Target:     setContext(target, ast.Store),
					Annotation: annotation,
					Value:      value,
					Simple:     1,
				}
			},
			func() ast.Stmt {
				target := choice(p,
					func() ast.Expr {
						if p.expect("(") == nil {
							return nil
						}
						t := p.singleTarget()
						if t == nil || p.expect(")") == nil {
							return nil
						}
						return t
					},
					p.singleSubscriptAttributeTarget,
				)
				if target == nil || p.expect(":") == nil {
					return nil
				}
				annotation := p.expression()
				if annotation == nil {
					return nil
				}
				value := p.optionalAnnotatedRHS()
				return &ast.AnnAssign{
					Pos:        p.span(start),
					Target:     target,
					Annotation: annotation,
					Value:      value,
					Simple:     0,
				}
			},
			func() ast.Stmt {
				targets := oneOrMore(p, func() ast.Expr {
					t := p.starTargets()
					if t == nil || p.expect("=") == nil {
						return nil
					}
					return t
				})
				if targets == nil {
					return nil
				}
				value := p.annotatedRHS()
				if value == nil || p.nextIs("=") {
					return nil
				}
				return &ast.Assign{Pos: p.span(start), Targets: targets, Value: value}
			},
			func() ast.Stmt {
				target := p.singleTarget()
				if target == nil {
					return nil
				}
				op, ok := p.augassign()
				if !ok {
					return nil
				}
				p.cut = true
				value := p.annotatedRHS()
				if value == nil {
					return nil
				}
				return &ast.AugAssign{Pos: p.span(start), Target: target, Op: op, Value: value}
			},
			func() ast.Stmt {
				p.invalid(p.invalidAssignment)
				return nil
			},
		)
	})
}

// annotated_rhs: yield_expr | star_expressions
func (p *Parser) annotatedRHS() ast.Expr {
	if e := p.yieldExpr(); e != nil {
		return e
	}
	return p.starExpressions()
}

// ['=' annotated_rhs]
func (p *Parser) optionalAnnotatedRHS() ast.Expr {
	return attempt(p, func() ast.Expr {
		if p.expect("=") == nil {
			return nil
		}
		return p.annotatedRHS()
	})
}

// augassign: '+=' | '-=' | '*=' | '@=' | '/=' | '%=' | '&=' | '|=' | '^=' | '<<=' | '>>=' | '**=' | '//='
func (p *Parser) augassign() (ast.Operator, bool) {
	tok := p.peek()
	if tok.Kind != lexer.Op {
		return 0, false
	}
	op, ok := ast.AugmentedOperator(tok.Text)
	if !ok {
		return 0, false
	}
	p.stream.Next()
	if op == ast.MatMult {
		p.checkVersion(5, "The '@' operator is")
	}
	return op, true
}

// return_stmt: 'return' star_expressions?
func (p *Parser) returnStmt() ast.Stmt {
	start := p.start()
	if p.expect("return") == nil {
		return nil
	}
	value := p.starExpressions()
	return &ast.Return{Pos: p.span(start), Value: value}
}

// raise_stmt: 'raise' expression ['from' expression] | 'raise'
func (p *Parser) raiseStmt() ast.Stmt {
	start := p.start()
	if p.expect("raise") == nil {
		return nil
	}
	exc := p.expression()
	if exc == nil {
		return &ast.Raise{Pos: p.span(start)}
	}
	cause := attempt(p, func() ast.Expr {
		if p.expect("from") == nil {
			return nil
		}
		return p.expression()
	})
	return &ast.Raise{Pos: p.span(start), Exc: exc, Cause: cause}
}

// global_stmt: 'global' ','.NAME+
func (p *Parser) globalStmt() ast.Stmt {
	start := p.start()
	if p.expect("global") == nil {
		return nil
	}
	names := p.nameList()
	if names == nil {
		return nil
	}
	return &ast.Global{Pos: p.span(start), Names: names}
}

// nonlocal_stmt: 'nonlocal' ','.NAME+
func (p *Parser) nonlocalStmt() ast.Stmt {
	start := p.start()
	if p.expect("nonlocal") == nil {
		return nil
	}
	names := p.nameList()
	if names == nil {
		return nil
	}
	return &ast.Nonlocal{Pos: p.span(start), Names: names}
}

func (p *Parser) nameList() []string {
	toks := gather(p, ",", p.nameToken)
	if toks == nil {
		return nil
	}
	names := make([]string, len(toks))
	for i, tok := range toks {
		names[i] = tok.Text
	}
	return names
}

// del_stmt: 'del' del_targets &(';' | NEWLINE) | invalid_del_stmt
func (p *Parser) delStmt() ast.Stmt {
	return choice(p,
		func() ast.Stmt {
			start := p.start()
			if p.expect("del") == nil {
				return nil
			}
			targets := p.delTargets()
			if targets == nil || !(p.nextIs(";") || p.nextKind(lexer.Newline)) {
				return nil
			}
			return &ast.Delete{Pos: p.span(start), Targets: targets}
		},
		func() ast.Stmt {
			p.invalid(p.invalidDelStmt)
			return nil
		},
	)
}

// yield_stmt: yield_expr
func (p *Parser) yieldStmt() ast.Stmt {
	start := p.start()
	e := p.yieldExpr()
	if e == nil {
		return nil
	}
	return &ast.ExprStmt{Pos: p.span(start), Value: e}
}

// assert_stmt: 'assert' expression [',' expression]
func (p *Parser) assertStmt() ast.Stmt {
	start := p.start()
	if p.expect("assert") == nil {
		return nil
	}
	test := p.expression()
	if test == nil {
		return nil
	}
	msg := attempt(p, func() ast.Expr {
		if p.expect(",") == nil {
			return nil
		}
		return p.expression()
	})
	return &ast.Assert{Pos: p.span(start), Test: test, Msg: msg}
}

// import_stmt: import_name | import_from
func (p *Parser) importStmt() ast.Stmt {
	if s := p.importName(); s != nil {
		return s
	}
	return p.importFrom()
}

// import_name: 'import' dotted_as_names
func (p *Parser) importName() ast.Stmt {
	return attempt(p, func() ast.Stmt {
		start := p.start()
		if p.expect("import") == nil {
			return nil
		}
		names := gather(p, ",", p.dottedAsName)
		if names == nil {
			return nil
		}
		return &ast.Import{Pos: p.span(start), Names: names}
	})
}

// import_from:
//
//	| 'from' ('.' | '...')* dotted_name 'import' import_from_targets
//	| 'from' ('.' | '...')+ 'import' import_from_targets
func (p *Parser) importFrom() ast.Stmt {
	return attempt(p, func() ast.Stmt {
		start := p.start()
		if p.expect("from") == nil {
			return nil
		}
		level := 0
		for {
			if p.expect(".") != nil {
				level++
			} else if p.expect("...") != nil {
				level += 3
			} else {
				break
			}
		}
		module := p.dottedName()
		if module == "" && level == 0 {
			return nil
		}
		if p.expect("import") == nil {
			return nil
		}
		names := p.importFromTargets()
		if names == nil {
			return nil
		}
		return &ast.ImportFrom{Pos: p.span(start), Module: module, Names: names, Level: level}
	})
}

// import_from_targets:
//
//	| '(' import_from_as_names [','] ')'
//	| import_from_as_names !','
//	| '*'
//	| invalid_import_from_targets
func (p *Parser) importFromTargets() []*ast.Alias {
	return choice(p,
		func() []*ast.Alias {
			if p.expect("(") == nil {
				return nil
			}
			names := gather(p, ",", p.importFromAsName)
			if names == nil {
				return nil
			}
			p.expect(",")
			if p.expect(")") == nil {
				return nil
			}
			return names
		},
		func() []*ast.Alias {
			names := gather(p, ",", p.importFromAsName)
			if names == nil || p.nextIs(",") {
				return nil
			}
			return names
		},
		func() []*ast.Alias {
			tok := p.expect("*")
			if tok == nil {
				return nil
			}
			return []*ast.Alias{{Pos: tokenPos(*tok), Name: "*"}}
		},
		func() []*ast.Alias {
			p.invalid(p.invalidImportFromTargets)
			return nil
		},
	)
}

// import_from_as_name: NAME ['as' NAME]
func (p *Parser) importFromAsName() *ast.Alias {
	start := p.start()
	name := p.nameToken()
	if name == nil {
		return nil
	}
	alias := &ast.Alias{Name: name.Text, Asname: p.asName()}
	alias.Pos = p.span(start)
	return alias
}

// dotted_as_name: dotted_name ['as' NAME]
func (p *Parser) dottedAsName() *ast.Alias {
	start := p.start()
	name := p.dottedName()
	if name == "" {
		return nil
	}
	alias := &ast.Alias{Name: name, Asname: p.asName()}
	alias.Pos = p.span(start)
	return alias
}

// ['as' NAME]
func (p *Parser) asName() string {
	tok := attempt(p, func() *lexer.Token {
		if p.expect("as") == nil {
			return nil
		}
		return p.nameToken()
	})
	if tok == nil {
		return ""
	}
	return tok.Text
}

// dotted_name: dotted_name '.' NAME | NAME
//
// The left recursion only builds a path, so it is matched as a loop.
func (p *Parser) dottedName() string {
	first := p.nameToken()
	if first == nil {
		return ""
	}
	parts := []string{first.Text}
	for {
		tok := attempt(p, func() *lexer.Token {
			if p.expect(".") == nil {
				return nil
			}
			return p.nameToken()
		})
		if tok == nil {
			return strings.Join(parts, ".")
		}
		parts = append(parts, tok.Text)
	}
}
