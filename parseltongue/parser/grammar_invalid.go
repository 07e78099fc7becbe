package parser

import (
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

// The invalid_* rules run only on the second pass. Each one matches a
// common mistake and panics with a SyntaxError describing it; a rule that
// does not match returns and leaves the position to its caller.

// each runs every alternative from the same position.
func (p *Parser) each(alts ...func()) {
	mark := p.mark()
	for _, alt := range alts {
		p.resetTo(mark)
		alt()
	}
	p.resetTo(mark)
}

func nodeStart(n ast.Located) lexer.Position {
	pos := n.Location()
	return lexer.Position{Line: pos.Lineno, Column: pos.ColOffset}
}

func nodeEnd(n ast.Located) lexer.Position {
	pos := n.Location()
	return lexer.Position{Line: pos.EndLineno, Column: pos.EndColOffset}
}

// raiseFrom reports from the start of n to the last consumed token.
func (p *Parser) raiseFrom(start lexer.Position, format string, args ...any) {
	p.raiseRange(KindSyntaxError, start, p.stream.LastNonWhitespace().End, format, args...)
}

// missingIndent matches NEWLINE !INDENT.
func (p *Parser) missingIndent() bool {
	return p.newline() != nil && !p.nextKind(lexer.Indent)
}

func (p *Parser) raiseMissingBlock(what string, line int) {
	p.raiseIndentation("expected an indented block after %s on line %d", what, line)
}

// invalid_block: NEWLINE !INDENT
func (p *Parser) invalidBlock() {
	if p.missingIndent() {
		p.raiseIndentation("expected an indented block")
	}
}

// invalid_legacy_expression: NAME star_expressions
func (p *Parser) invalidLegacyExpression() {
	name := p.name()
	if name == nil || !isLegacyStatement(name) {
		return
	}
	rest := p.starExpressions()
	if rest == nil {
		return
	}
	p.raiseNodes(name, rest, "Missing parentheses in call to '%s'. Did you mean %s(...)?", name.Id, name.Id)
}

// invalid_expression:
//
//	| !(NAME STRING | SOFT_KEYWORD) disjunction expression_without_invalid
//	| disjunction 'if' disjunction !('else' | ':')
func (p *Parser) invalidExpression() {
	p.each(
		func() {
			if p.startsWithPrefixOrSoftKeyword() {
				return
			}
			a := p.disjunction()
			if a == nil {
				return
			}
			b := p.expressionWithoutInvalid()
			if b == nil || isLegacyStatement(a) || p.lastLevel() == 0 {
				return
			}
			p.raiseNodes(a, b, "invalid syntax. Perhaps you forgot a comma?")
		},
		func() {
			a := p.disjunction()
			if a == nil || p.expect("if") == nil {
				return
			}
			b := p.disjunction()
			if b == nil || p.nextIs("else", ":") {
				return
			}
			p.raiseNodes(a, b, "expected 'else' after 'if' expression")
		},
	)
}

// NAME STRING | SOFT_KEYWORD
func (p *Parser) startsWithPrefixOrSoftKeyword() bool {
	tok := p.peek()
	if tok.Kind == lexer.Name && lexer.SoftKeywords[tok.Text] {
		return true
	}
	return lookahead(p, true, func() *lexer.Token {
		if p.nameToken() == nil {
			return nil
		}
		return p.stringToken()
	})
}

// invalid_named_expression:
//
//	| expression ':=' expression
//	| NAME '=' bitwise_or !('=' | ':=')
//	| !(list | tuple | genexp | 'True' | 'None' | 'False') bitwise_or '=' bitwise_or !('=' | ':=')
func (p *Parser) invalidNamedExpression() {
	p.each(
		func() {
			a := p.expression()
			if a == nil || p.expect(":=") == nil || p.expression() == nil {
				return
			}
			p.raiseNode(a, "cannot use assignment expressions with %s", exprName(a))
		},
		func() {
			a := p.name()
			if a == nil || p.expect("=") == nil {
				return
			}
			b := p.bitwiseOr()
			if b == nil || p.nextIs("=", ":=") || p.inRawRule > 0 {
				return
			}
			p.raiseNodes(a, b, "invalid syntax. Maybe you meant '==' or ':=' instead of '='?")
		},
		func() {
			if p.nextIs("True", "None", "False") ||
				lookahead(p, true, p.list) ||
				lookahead(p, true, p.tuple) ||
				lookahead(p, true, p.genexp) {
				return
			}
			a := p.bitwiseOr()
			if a == nil || p.expect("=") == nil || p.bitwiseOr() == nil {
				return
			}
			if p.nextIs("=", ":=") || p.inRawRule > 0 {
				return
			}
			p.raiseNode(a, "cannot assign to %s here. Maybe you meant '==' instead of '='?", exprName(a))
		},
	)
}

// invalid_assignment:
//
//	| invalid_ann_assign_target ':' expression
//	| star_named_expression ',' star_named_expressions* ':' expression
//	| expression ':' expression
//	| (star_targets '=')* star_expressions '='
//	| (star_targets '=')* yield_expr '='
//	| star_expressions augassign (yield_expr | star_expressions)
func (p *Parser) invalidAssignment() {
	p.each(
		func() {
			a := p.invalidAnnAssignTarget()
			if a == nil || p.expect(":") == nil || p.expression() == nil {
				return
			}
			p.raiseNode(a, "only single target (not %s) can be annotated", exprName(a))
		},
		func() {
			a := p.starNamedExpression()
			if a == nil || p.expect(",") == nil {
				return
			}
			p.starNamedExpressions()
			if p.expect(":") == nil || p.expression() == nil {
				return
			}
			p.raiseNode(a, "only single target (not tuple) can be annotated")
		},
		func() {
			a := p.expression()
			if a == nil || p.expect(":") == nil || p.expression() == nil {
				return
			}
			p.raiseNode(a, "illegal target for annotation")
		},
		func() {
			p.skipAssignmentTargets()
			a := p.starExpressions()
			if a == nil || p.expect("=") == nil {
				return
			}
			p.raiseInvalidTarget(starTargets, a)
		},
		func() {
			p.skipAssignmentTargets()
			a := p.yieldExpr()
			if a == nil || p.expect("=") == nil {
				return
			}
			p.raiseNode(a, "assignment to yield expression not possible")
		},
		func() {
			a := p.starExpressions()
			if a == nil {
				return
			}
			if _, ok := p.augassign(); !ok {
				return
			}
			if p.annotatedRHS() == nil {
				return
			}
			p.raiseNode(a, "'%s' is an illegal expression for augmented assignment", exprName(a))
		},
	)
}

// (star_targets '=')*
func (p *Parser) skipAssignmentTargets() {
	zeroOrMore(p, func() ast.Expr {
		t := p.starTargets()
		if t == nil || p.expect("=") == nil {
			return nil
		}
		return t
	})
}

// invalid_ann_assign_target: list | tuple | '(' invalid_ann_assign_target ')'
func (p *Parser) invalidAnnAssignTarget() ast.Expr {
	return choice(p,
		p.list,
		p.tuple,
		func() ast.Expr {
			if p.expect("(") == nil {
				return nil
			}
			a := p.invalidAnnAssignTarget()
			if a == nil || p.expect(")") == nil {
				return nil
			}
			return a
		},
	)
}

// invalid_del_stmt: 'del' star_expressions
func (p *Parser) invalidDelStmt() {
	if p.expect("del") == nil {
		return
	}
	if a := p.starExpressions(); a != nil {
		p.raiseInvalidTarget(delTargets, a)
	}
}

// invalid_import_from_targets: import_from_as_names ',' NEWLINE
func (p *Parser) invalidImportFromTargets() {
	if gather(p, ",", p.importFromAsName) == nil || p.expect(",") == nil || p.newline() == nil {
		return
	}
	p.raise("trailing comma not allowed without surrounding parentheses")
}

// invalid_group:
//
//	| '(' starred_expression ')'
//	| '(' '**' expression ')'
func (p *Parser) invalidGroup() {
	p.each(
		func() {
			if p.expect("(") == nil {
				return
			}
			a := p.starredExpression()
			if a == nil || p.expect(")") == nil {
				return
			}
			p.raiseNode(a, "cannot use starred expression here")
		},
		func() {
			if p.expect("(") == nil {
				return
			}
			a := p.expect("**")
			if a == nil || p.expression() == nil || p.expect(")") == nil {
				return
			}
			p.raiseAt(*a, "cannot use double starred expression here")
		},
	)
}

// invalid_double_starred_kvpairs:
//
//	| ','.double_starred_kvpair+ ',' invalid_kvpair
//	| expression ':' '*' bitwise_or
//	| expression ':' &('}' | ',')
func (p *Parser) invalidDoubleStarredKvpairs() {
	p.each(
		func() {
			if gather(p, ",", p.doubleStarredKvpair) == nil || p.expect(",") == nil {
				return
			}
			p.invalidKvpair()
		},
		p.invalidKvpairValue,
	)
}

// invalid_kvpair:
//
//	| expression !(':')
//	| expression ':' '*' bitwise_or
//	| expression ':' &('}' | ',')
func (p *Parser) invalidKvpair() {
	p.each(
		func() {
			a := p.expression()
			if a == nil || p.nextIs(":") {
				return
			}
			end := nodeEnd(a)
			p.raiseRange(KindSyntaxError, lexer.Position{Line: end.Line, Column: end.Column - 1}, end,
				"':' expected after dictionary key")
		},
		p.invalidKvpairValue,
	)
}

// expression ':' '*' bitwise_or | expression ':' &('}' | ',')
func (p *Parser) invalidKvpairValue() {
	p.each(
		func() {
			if p.expression() == nil || p.expect(":") == nil {
				return
			}
			a := p.expect("*")
			if a == nil || p.bitwiseOr() == nil {
				return
			}
			p.raiseFrom(a.Start, "cannot use a starred expression in a dictionary value")
		},
		func() {
			if p.expression() == nil {
				return
			}
			colon := p.expect(":")
			if colon == nil || !p.nextIs("}", ",") {
				return
			}
			p.raiseAt(*colon, "expression expected after dictionary key and ':'")
		},
	)
}

// lastComprehensionItem is the last condition of the last clause, or its
// iterable when it has none.
func lastComprehensionItem(gens []*ast.Comprehension) ast.Expr {
	last := gens[len(gens)-1]
	if len(last.Ifs) == 0 {
		return last.Iter
	}
	return last.Ifs[len(last.Ifs)-1]
}

// invalid_comprehension:
//
//	| ('[' | '(' | '{') starred_expression for_if_clauses
//	| ('[' | '{') star_named_expression ',' star_named_expressions for_if_clauses
//	| ('[' | '{') star_named_expression ',' for_if_clauses
func (p *Parser) invalidComprehension() {
	p.each(
		func() {
			if p.expect("[") == nil && p.expect("(") == nil && p.expect("{") == nil {
				return
			}
			a := p.starredExpression()
			if a == nil || p.forIfClauses() == nil {
				return
			}
			p.raiseNode(a, "iterable unpacking cannot be used in comprehension")
		},
		func() {
			if p.expect("[") == nil && p.expect("{") == nil {
				return
			}
			a := p.starNamedExpression()
			if a == nil || p.expect(",") == nil {
				return
			}
			b := p.starNamedExpressions()
			if b == nil || p.forIfClauses() == nil {
				return
			}
			p.raiseNodes(a, b[len(b)-1], "did you forget parentheses around the comprehension target?")
		},
		func() {
			if p.expect("[") == nil && p.expect("{") == nil {
				return
			}
			a := p.starNamedExpression()
			if a == nil {
				return
			}
			comma := p.expect(",")
			if comma == nil || p.forIfClauses() == nil {
				return
			}
			p.raiseRange(KindSyntaxError, nodeStart(a), comma.End, "did you forget parentheses around the comprehension target?")
		},
	)
}

// invalid_dict_comprehension: '{' '**' bitwise_or for_if_clauses '}'
func (p *Parser) invalidDictComprehension() {
	if p.expect("{") == nil {
		return
	}
	a := p.expect("**")
	if a == nil || p.bitwiseOr() == nil || p.forIfClauses() == nil || p.expect("}") == nil {
		return
	}
	p.raiseAt(*a, "dict unpacking cannot be used in dict comprehension")
}

// invalid_arguments:
//
//	| args ',' '*'
//	| expression for_if_clauses ',' [args | expression for_if_clauses]
//	| NAME '=' expression for_if_clauses
//	| args for_if_clauses
//	| args ',' expression for_if_clauses
//	| args ',' args
func (p *Parser) invalidArguments() {
	p.each(
		func() {
			a := p.args()
			if a == nil || p.expect(",") == nil || p.expect("*") == nil {
				return
			}
			p.raiseNode(a, "iterable argument unpacking follows keyword argument unpacking")
		},
		func() {
			a := p.expression()
			if a == nil {
				return
			}
			b := p.forIfClauses()
			if b == nil || p.expect(",") == nil {
				return
			}
			p.raiseNodes(a, lastComprehensionItem(b), "Generator expression must be parenthesized")
		},
		func() {
			a := p.nameToken()
			if a == nil {
				return
			}
			eq := p.expect("=")
			if eq == nil || p.expression() == nil || p.forIfClauses() == nil {
				return
			}
			p.raiseRange(KindSyntaxError, a.Start, eq.End, "invalid syntax. Maybe you meant '==' or ':=' instead of '='?")
		},
		func() {
			a := p.args()
			if a == nil {
				return
			}
			b := p.forIfClauses()
			if b == nil || len(a.Args) <= 1 {
				return
			}
			p.raiseNodes(a.Args[len(a.Args)-1], lastComprehensionItem(b), "Generator expression must be parenthesized")
		},
		func() {
			if p.args() == nil || p.expect(",") == nil {
				return
			}
			a := p.expression()
			if a == nil {
				return
			}
			b := p.forIfClauses()
			if b == nil {
				return
			}
			p.raiseNodes(a, lastComprehensionItem(b), "Generator expression must be parenthesized")
		},
		func() {
			a := p.args()
			if a == nil || p.expect(",") == nil || p.args() == nil {
				return
			}
			for _, kw := range a.Keywords {
				if kw.Arg == "" {
					p.raise("positional argument follows keyword argument unpacking")
				}
			}
			p.raise("positional argument follows keyword argument")
		},
	)
}

// invalid_kwarg:
//
//	| NAME '=' expression for_if_clauses
//	| !(NAME '=') expression '='
func (p *Parser) invalidKwarg() {
	p.each(
		func() {
			a := p.nameToken()
			if a == nil {
				return
			}
			eq := p.expect("=")
			if eq == nil || p.expression() == nil || p.forIfClauses() == nil {
				return
			}
			p.raiseRange(KindSyntaxError, a.Start, eq.End, "invalid syntax. Maybe you meant '==' or ':=' instead of '='?")
		},
		func() {
			if lookahead(p, true, func() *lexer.Token {
				if p.nameToken() == nil {
					return nil
				}
				return p.expect("=")
			}) {
				return
			}
			a := p.expression()
			if a == nil {
				return
			}
			eq := p.expect("=")
			if eq == nil {
				return
			}
			p.raiseRange(KindSyntaxError, nodeStart(a), eq.End, "expression cannot contain assignment, perhaps you meant \"==\"?")
		},
	)
}

// invalid_parameters:
//
//	param_no_default* (slash_with_default | param_with_default+) param_no_default
func (p *Parser) invalidParameters(s paramStyle) {
	zeroOrMore(p, func() *ast.Arg { return p.paramNoDefault(s) })
	if p.slashWithDefault(s) == nil && oneOrMore(p, func() *nameDefault { return p.paramWithDefault(s) }) == nil {
		return
	}
	if a := p.paramNoDefault(s); a != nil {
		p.raiseNode(a, "non-default argument follows default argument")
	}
}

// invalid_star_etc: '*' (')' | ',' (')' | '**'))
// invalid_lambda_star_etc: '*' (':' | ',' (':' | '**'))
func (p *Parser) invalidStarEtc(s paramStyle) {
	star := p.expect("*")
	if star == nil {
		return
	}
	bare := p.expect(s.closer) != nil ||
		(p.expect(",") != nil && (p.expect(s.closer) != nil || p.expect("**") != nil))
	if !bare {
		return
	}
	if s.annotated {
		p.raiseAt(*star, "named arguments must follow bare *")
	}
	p.raise("named arguments must follow bare *")
}

// invalid_def_raw:
//
//	ASYNC? 'def' NAME '(' [params] ')' ['->' expression] ':' NEWLINE !INDENT
func (p *Parser) invalidDefRaw() {
	p.expect("async")
	def := p.expect("def")
	if def == nil || p.nameToken() == nil || p.expect("(") == nil {
		return
	}
	p.params()
	if p.expect(")") == nil {
		return
	}
	attempt(p, func() ast.Expr {
		if p.expect("->") == nil {
			return nil
		}
		return p.expression()
	})
	if p.expect(":") == nil || !p.missingIndent() {
		return
	}
	p.raiseMissingBlock("function definition", def.Start.Line)
}

// invalid_class_def_raw: 'class' NAME ['(' [arguments] ')'] ':' NEWLINE !INDENT
func (p *Parser) invalidClassDefRaw() {
	class := p.expect("class")
	if class == nil || p.nameToken() == nil {
		return
	}
	attempt(p, func() *lexer.Token {
		if p.expect("(") == nil {
			return nil
		}
		p.arguments()
		return p.expect(")")
	})
	if p.expect(":") == nil || !p.missingIndent() {
		return
	}
	p.raiseMissingBlock("class definition", class.Start.Line)
}

// invalid_if_stmt and invalid_elif_stmt:
//
//	| keyword named_expression NEWLINE
//	| keyword named_expression ':' NEWLINE !INDENT
//
// With relaxed colons a header without a colon is legal, so only the
// missing block is reported.
func (p *Parser) invalidConditional(keyword string) {
	p.each(
		func() {
			if p.relaxedColons || p.expect(keyword) == nil || p.namedExpression() == nil || p.newline() == nil {
				return
			}
			p.raise("expected ':'")
		},
		func() {
			tok := p.expect(keyword)
			if tok == nil || p.namedExpression() == nil {
				return
			}
			if p.expect(":") == nil && !p.relaxedColons {
				return
			}
			if p.missingIndent() {
				p.raiseMissingBlock("'"+keyword+"' statement", tok.Start.Line)
			}
		},
	)
}

// invalid_else_stmt: 'else' ':' NEWLINE !INDENT
func (p *Parser) invalidElseStmt() {
	tok := p.expect("else")
	if tok == nil {
		return
	}
	if p.expect(":") == nil && !p.relaxedColons {
		return
	}
	if p.missingIndent() {
		p.raiseMissingBlock("'else' statement", tok.Start.Line)
	}
}

// invalid_while_stmt:
//
//	| 'while' named_expression NEWLINE
//	| 'while' named_expression ':' NEWLINE !INDENT
func (p *Parser) invalidWhileStmt() {
	p.each(
		func() {
			if p.expect("while") == nil || p.namedExpression() == nil || p.newline() == nil {
				return
			}
			p.raise("expected ':'")
		},
		func() {
			tok := p.expect("while")
			if tok == nil || p.namedExpression() == nil || p.expect(":") == nil || !p.missingIndent() {
				return
			}
			p.raiseMissingBlock("'while' statement", tok.Start.Line)
		},
	)
}

// invalid_for_stmt: ASYNC? 'for' star_targets 'in' star_expressions ':' NEWLINE !INDENT
func (p *Parser) invalidForStmt() {
	p.expect("async")
	tok := p.expect("for")
	if tok == nil || p.starTargets() == nil || p.expect("in") == nil || p.starExpressions() == nil {
		return
	}
	if p.expect(":") == nil || !p.missingIndent() {
		return
	}
	p.raiseMissingBlock("'for' statement", tok.Start.Line)
}

// invalid_for_target: ASYNC? 'for' star_expressions
func (p *Parser) invalidForTarget() {
	p.expect("async")
	if p.expect("for") == nil {
		return
	}
	if a := p.starExpressions(); a != nil {
		p.raiseInvalidTarget(forTargets, a)
	}
}

// withItems matches the items of a with statement header for the
// invalid rules: either ','.(expression ['as' star_target])+ or the
// parenthesized form.
func (p *Parser) withItems(parenthesized bool) bool {
	item := func(e func() ast.Expr) func() ast.Expr {
		return func() ast.Expr {
			x := e()
			if x == nil {
				return nil
			}
			attempt(p, func() ast.Expr {
				if p.expect("as") == nil {
					return nil
				}
				return p.starTarget()
			})
			return x
		}
	}
	if !parenthesized {
		return gather(p, ",", item(p.expression)) != nil
	}
	if p.expect("(") == nil || gather(p, ",", item(p.expressions)) == nil {
		return false
	}
	p.expect(",")
	return p.expect(")") != nil
}

// invalid_with_stmt:
//
//	| ASYNC? 'with' ','.(expression ['as' star_target])+ &&':'
//	| ASYNC? 'with' '(' ','.(expressions ['as' star_target])+ ','? ')' &&':'
func (p *Parser) invalidWithStmt() {
	for _, parenthesized := range []bool{false, true} {
		p.each(func() {
			p.expect("async")
			if p.expect("with") == nil || !p.withItems(parenthesized) {
				return
			}
			p.expectForced(":", "':'")
		})
	}
}

// invalid_with_stmt_indent:
//
//	| ASYNC? 'with' ','.(expression ['as' star_target])+ ':' NEWLINE !INDENT
//	| ASYNC? 'with' '(' ','.(expressions ['as' star_target])+ ','? ')' ':' NEWLINE !INDENT
func (p *Parser) invalidWithStmtIndent() {
	for _, parenthesized := range []bool{false, true} {
		p.each(func() {
			p.expect("async")
			tok := p.expect("with")
			if tok == nil || !p.withItems(parenthesized) || p.expect(":") == nil || !p.missingIndent() {
				return
			}
			p.raiseMissingBlock("'with' statement", tok.Start.Line)
		})
	}
}

// invalid_with_item: expression 'as' expression &(',' | ')' | ':')
func (p *Parser) invalidWithItem() {
	if p.expression() == nil || p.expect("as") == nil {
		return
	}
	a := p.expression()
	if a == nil || !p.nextIs(",", ")", ":") {
		return
	}
	p.raiseInvalidTarget(starTargets, a)
}

// invalid_try_stmt:
//
//	| 'try' ':' NEWLINE !INDENT
//	| 'try' ':' block !('except' | 'finally')
func (p *Parser) invalidTryStmt() {
	p.each(
		func() {
			tok := p.expect("try")
			if tok == nil || p.expect(":") == nil || !p.missingIndent() {
				return
			}
			p.raiseMissingBlock("'try' statement", tok.Start.Line)
		},
		func() {
			if p.expect("try") == nil || p.expect(":") == nil || p.block() == nil {
				return
			}
			if !p.nextIs("except", "finally") {
				p.raise("expected 'except' or 'finally' block")
			}
		},
	)
}

// invalid_except_stmt:
//
//	| 'except' expression ',' expressions ['as' NAME] ':'
//	| 'except' expression ['as' NAME] NEWLINE
//	| 'except' NEWLINE
func (p *Parser) invalidExceptStmt() {
	p.each(
		func() {
			if p.expect("except") == nil {
				return
			}
			a := p.expression()
			if a == nil || p.expect(",") == nil || p.expressions() == nil {
				return
			}
			p.asName()
			if p.expect(":") == nil {
				return
			}
			p.raiseFrom(nodeStart(a), "multiple exception types must be parenthesized")
		},
		func() {
			if p.expect("except") == nil || p.expression() == nil {
				return
			}
			p.asName()
			if p.newline() != nil {
				p.raise("expected ':'")
			}
		},
		func() {
			if p.expect("except") == nil || p.newline() == nil {
				return
			}
			p.raise("expected ':'")
		},
	)
}

// invalid_finally_stmt: 'finally' ':' NEWLINE !INDENT
func (p *Parser) invalidFinallyStmt() {
	tok := p.expect("finally")
	if tok == nil || p.expect(":") == nil || !p.missingIndent() {
		return
	}
	p.raiseMissingBlock("'finally' statement", tok.Start.Line)
}

// invalid_except_stmt_indent:
//
//	| 'except' expression ['as' NAME] ':' NEWLINE !INDENT
//	| 'except' ':' NEWLINE !INDENT
//
// The bare form is a SyntaxError, not an IndentationError.
func (p *Parser) invalidExceptStmtIndent() {
	p.each(
		func() {
			tok := p.expect("except")
			if tok == nil || p.expression() == nil {
				return
			}
			p.asName()
			if p.expect(":") == nil || !p.missingIndent() {
				return
			}
			p.raiseMissingBlock("'except' statement", tok.Start.Line)
		},
		func() {
			tok := p.expect("except")
			if tok == nil || p.expect(":") == nil || !p.missingIndent() {
				return
			}
			p.raise("expected an indented block after except statement on line %d", tok.Start.Line)
		},
	)
}

// invalid_match_stmt:
//
//	| "match" subject_expr !':'
//	| "match" subject_expr ':' NEWLINE !INDENT
//
// A line that parses as a simple statement, such as a call to a function
// named match, is not a malformed match statement.
func (p *Parser) invalidMatchStmt() {
	if lookahead(p, true, p.simpleStmts) {
		return
	}
	p.each(
		func() {
			if p.softKeyword("match") == nil || p.subjectExpr() == nil || p.nextIs(":") {
				return
			}
			p.checkVersion(10, "Pattern matching is")
			p.raise("expected ':'")
		},
		func() {
			tok := p.softKeyword("match")
			if tok == nil || p.subjectExpr() == nil || p.expect(":") == nil || !p.missingIndent() {
				return
			}
			p.raiseMissingBlock("'match' statement", tok.Start.Line)
		},
	)
}

// invalid_case_block:
//
//	| "case" patterns guard? !':'
//	| "case" patterns guard? ':' NEWLINE !INDENT
func (p *Parser) invalidCaseBlock() {
	p.each(
		func() {
			if p.softKeyword("case") == nil || p.patterns() == nil {
				return
			}
			p.guard()
			if !p.nextIs(":") {
				p.raise("expected ':'")
			}
		},
		func() {
			tok := p.softKeyword("case")
			if tok == nil || p.patterns() == nil {
				return
			}
			p.guard()
			if p.expect(":") == nil || !p.missingIndent() {
				return
			}
			p.raiseMissingBlock("'case' statement", tok.Start.Line)
		},
	)
}

// invalid_as_pattern:
//
//	| or_pattern 'as' "_"
//	| or_pattern 'as' !NAME expression
func (p *Parser) invalidAsPattern() {
	if p.orPattern() == nil || p.expect("as") == nil {
		return
	}
	if tok := p.softKeyword("_"); tok != nil {
		p.raiseAt(*tok, "cannot use '_' as a target")
	}
	if isNameToken(p.peek()) {
		return
	}
	if a := p.expression(); a != nil {
		p.raiseNode(a, "invalid pattern target")
	}
}

// invalid_class_pattern:
//
//	name_or_attr '(' [positional_patterns ','] keyword_patterns ',' positional_patterns
func (p *Parser) invalidClassPattern() {
	if p.nameOrAttr() == nil || p.expect("(") == nil {
		return
	}
	attempt(p, func() []ast.Pattern {
		pats := p.positionalPatterns()
		if pats == nil || p.expect(",") == nil {
			return nil
		}
		return pats
	})
	if gather(p, ",", p.keywordPattern) == nil || p.expect(",") == nil {
		return
	}
	a := p.positionalPatterns()
	if a == nil {
		return
	}
	p.raiseNodes(a[0], a[len(a)-1], "positional patterns follow keyword patterns")
}
