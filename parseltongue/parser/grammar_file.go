package parser

import (
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

// file: statements? $
func (p *Parser) fileRule() *ast.Module {
	return memo(p, "file", func() *ast.Module {
		body := p.statements()
		if p.expectKind(lexer.EndMarker) == nil {
			return nil
		}
		if body == nil {
			body = []ast.Stmt{}
		}
		return &ast.Module{Body: body, TypeIgnores: []*ast.TypeIgnore{}}
	})
}

// interactive: statement_newline
func (p *Parser) interactiveRule() *ast.Interactive {
	return memo(p, "interactive", func() *ast.Interactive {
		body := p.statementNewline()
		if body == nil {
			return nil
		}
		return &ast.Interactive{Body: body}
	})
}

// eval: expressions NEWLINE* $
func (p *Parser) evalRule() *ast.Expression {
	return memo(p, "eval", func() *ast.Expression {
		body := p.expressions()
		if body == nil {
			return nil
		}
		zeroOrMore(p, p.newline)
		if p.expectKind(lexer.EndMarker) == nil {
			return nil
		}
		return &ast.Expression{Body: body}
	})
}

// func_type: '(' type_expressions? ')' '->' expression NEWLINE* $
func (p *Parser) funcTypeRule() *ast.FunctionType {
	return memo(p, "func_type", func() *ast.FunctionType {
		if p.expect("(") == nil {
			return nil
		}
		argTypes := p.typeExpressions()
		if p.expect(")") == nil || p.expect("->") == nil {
			return nil
		}
		returns := p.expression()
		if returns == nil {
			return nil
		}
		zeroOrMore(p, p.newline)
		if p.expectKind(lexer.EndMarker) == nil {
			return nil
		}
		if argTypes == nil {
			argTypes = []ast.Expr{}
		}
		return &ast.FunctionType{ArgTypes: argTypes, Returns: returns}
	})
}

// fstring: star_expressions NEWLINE* $
func (p *Parser) fstringRule() ast.Expr {
	return memo(p, "fstring", func() ast.Expr {
		e := p.starExpressions()
		if e == nil {
			return nil
		}
		zeroOrMore(p, p.newline)
		if p.expectKind(lexer.EndMarker) == nil {
			return nil
		}
		return e
	})
}

func (p *Parser) newline() *lexer.Token {
	return p.expectKind(lexer.Newline)
}

// statements: statement+
func (p *Parser) statements() []ast.Stmt {
	return memo(p, "statements", func() []ast.Stmt {
		groups := oneOrMore(p, p.statement)
		if groups == nil {
			return nil
		}
		var body []ast.Stmt
		for _, g := range groups {
			body = append(body, g...)
		}
		return body
	})
}

// statement: compound_stmt | simple_stmts
func (p *Parser) statement() []ast.Stmt {
	return memo(p, "statement", func() []ast.Stmt {
		if s := p.compoundStmt(); s != nil {
			return []ast.Stmt{s}
		}
		return p.simpleStmts()
	})
}

// statement_newline: compound_stmt NEWLINE? | simple_stmts | NEWLINE | $
//
// The lexer emits no NEWLINE after the DEDENT closing a block, so the
// NEWLINE after a compound statement is optional.
func (p *Parser) statementNewline() []ast.Stmt {
	return memo(p, "statement_newline", func() []ast.Stmt {
		if s := p.compoundStmt(); s != nil {
			p.newline()
			return []ast.Stmt{s}
		}
		if body := p.simpleStmts(); body != nil {
			return body
		}
		if tok := p.newline(); tok != nil {
			return []ast.Stmt{&ast.Pass{Pos: tokenPos(*tok)}}
		}
		if p.nextKind(lexer.EndMarker) {
			return []ast.Stmt{}
		}
		return nil
	})
}

// simple_stmts:
//
//	| simple_stmt !';' NEWLINE
//	| ';'.simple_stmt+ [';'] NEWLINE
func (p *Parser) simpleStmts() []ast.Stmt {
	return memo(p, "simple_stmts", func() []ast.Stmt {
		return choice(p,
			func() []ast.Stmt {
				s := p.simpleStmt()
				if s == nil || p.nextIs(";") || p.newline() == nil {
					return nil
				}
				return []ast.Stmt{s}
			},
			func() []ast.Stmt {
				body := gather(p, ";", p.simpleStmt)
				if body == nil {
					return nil
				}
				p.expect(";")
				if p.newline() == nil {
					return nil
				}
				return body
			},
		)
	})
}

// simple_stmt:
//
//	| assignment
//	| star_expressions
//	| &'return' return_stmt
//	| &('import' | 'from') import_stmt
//	| &'raise' raise_stmt
//	| 'pass'
//	| &'del' del_stmt
//	| &'yield' yield_stmt
//	| &'assert' assert_stmt
//	| 'break'
//	| 'continue'
//	| &'global' global_stmt
//	| &'nonlocal' nonlocal_stmt
func (p *Parser) simpleStmt() ast.Stmt {
	return memo(p, "simple_stmt", func() ast.Stmt {
		if s := p.assignment(); s != nil {
			return s
		}
		start := p.start()
		if e := p.starExpressions(); e != nil {
			return &ast.ExprStmt{Pos: p.span(start), Value: e}
		}
		tok := p.peek()
		switch {
		case tok.Is("return"):
			return p.returnStmt()
		case tok.Is("import"), tok.Is("from"):
			return p.importStmt()
		case tok.Is("raise"):
			return p.raiseStmt()
		case tok.Is("pass"):
			p.stream.Next()
			return &ast.Pass{Pos: tokenPos(tok)}
		case tok.Is("del"):
			return p.delStmt()
		case tok.Is("yield"):
			return p.yieldStmt()
		case tok.Is("assert"):
			return p.assertStmt()
		case tok.Is("break"):
			p.stream.Next()
			return &ast.Break{Pos: tokenPos(tok)}
		case tok.Is("continue"):
			p.stream.Next()
			return &ast.Continue{Pos: tokenPos(tok)}
		case tok.Is("global"):
			return p.globalStmt()
		case tok.Is("nonlocal"):
			return p.nonlocalStmt()
		}
		return nil
	})
}

// compound_stmt:
//
//	| &('def' | '@' | ASYNC) function_def
//	| &'if' if_stmt
//	| &('class' | '@') class_def
//	| &('with' | ASYNC) with_stmt
//	| &('for' | ASYNC) for_stmt
//	| &'try' try_stmt
//	| &'while' while_stmt
//	| match_stmt
func (p *Parser) compoundStmt() ast.Stmt {
	return memo(p, "compound_stmt", func() ast.Stmt {
		if p.nextIs("def", "@", "async") {
			if s := p.functionDef(); s != nil {
				return s
			}
		}
		if p.nextIs("if") {
			if s := p.ifStmt(); s != nil {
				return s
			}
		}
		if p.nextIs("class", "@") {
			if s := p.classDef(); s != nil {
				return s
			}
		}
		if p.nextIs("with", "async") {
			if s := p.withStmt(); s != nil {
				return s
			}
		}
		if p.nextIs("for", "async") {
			if s := p.forStmt(); s != nil {
				return s
			}
		}
		if p.nextIs("try") {
			if s := p.tryStmt(); s != nil {
				return s
			}
		}
		if p.nextIs("while") {
			if s := p.whileStmt(); s != nil {
				return s
			}
		}
		if s := p.matchStmt(); s != nil {
			return s
		}
		return nil
	})
}

// block: NEWLINE INDENT statements DEDENT | simple_stmts | invalid_block
func (p *Parser) block() []ast.Stmt {
	return memo(p, "block", func() []ast.Stmt {
		return choice(p,
			p.indentedStatements,
			p.simpleStmts,
			func() []ast.Stmt {
				p.invalid(p.invalidBlock)
				return nil
			},
		)
	})
}

// NEWLINE INDENT statements DEDENT
func (p *Parser) indentedStatements() []ast.Stmt {
	if p.newline() == nil || p.expectKind(lexer.Indent) == nil {
		return nil
	}
	body := p.statements()
	if body == nil || p.expectKind(lexer.Dedent) == nil {
		return nil
	}
	return body
}

// colonBlock parses the colon and block of an if or elif header. In the
// relaxed dialect this is
//
//	colon_block: ':' block | NEWLINE INDENT statements DEDENT
//
// otherwise the colon is forced.
func (p *Parser) colonBlock() []ast.Stmt {
	if !p.relaxedColons {
		p.expectForced(":", "':'")
		return p.block()
	}
	return choice(p,
		func() []ast.Stmt {
			if p.expect(":") == nil {
				return nil
			}
			return p.block()
		},
		p.indentedStatements,
	)
}
