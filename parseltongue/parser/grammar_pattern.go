package parser

import (
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

// patterns: open_sequence_pattern | pattern
func (p *Parser) patterns() ast.Pattern {
	return memo(p, "patterns", func() ast.Pattern {
		start := p.start()
		if seq := p.openSequencePattern(); seq != nil {
			return &ast.MatchSequence{Pos: p.span(start), Patterns: seq}
		}
		return p.pattern()
	})
}

// pattern: as_pattern | or_pattern
func (p *Parser) pattern() ast.Pattern {
	return memo(p, "pattern", func() ast.Pattern {
		if pat := p.asPattern(); pat != nil {
			return pat
		}
		return p.orPattern()
	})
}

// as_pattern: or_pattern 'as' pattern_capture_target | invalid_as_pattern
func (p *Parser) asPattern() ast.Pattern {
	return memo(p, "as_pattern", func() ast.Pattern {
		return choice(p,
			func() ast.Pattern {
				start := p.start()
				pat := p.orPattern()
				if pat == nil || p.expect("as") == nil {
					return nil
				}
				target := p.patternCaptureTarget()
				if target == nil {
					return nil
				}
				return &ast.MatchAs{Pos: p.span(start), Pattern: pat, Name: target.Text}
			},
			func() ast.Pattern {
				p.invalid(p.invalidAsPattern)
				return nil
			},
		)
	})
}

// or_pattern: '|'.closed_pattern+
func (p *Parser) orPattern() ast.Pattern {
	return memo(p, "or_pattern", func() ast.Pattern {
		start := p.start()
		alts := gather(p, "|", p.closedPattern)
		switch len(alts) {
		case 0:
			return nil
		case 1:
			return alts[0]
		}
		return &ast.MatchOr{Pos: p.span(start), Patterns: alts}
	})
}

// closed_pattern:
//
//	| literal_pattern
//	| capture_pattern
//	| wildcard_pattern
//	| value_pattern
//	| group_pattern
//	| sequence_pattern
//	| mapping_pattern
//	| class_pattern
func (p *Parser) closedPattern() ast.Pattern {
	return memo(p, "closed_pattern", func() ast.Pattern {
		return choice(p,
			p.literalPattern,
			p.capturePattern,
			p.wildcardPattern,
			p.valuePattern,
			p.groupPattern,
			p.sequencePattern,
			p.mappingPattern,
			p.classPattern,
		)
	})
}

// literal_pattern:
//
//	| signed_number !('+' | '-')
//	| complex_number
//	| strings
//	| 'None' | 'True' | 'False'
func (p *Parser) literalPattern() ast.Pattern {
	tok := p.peek()
	if tok.Is("None") || tok.Is("True") || tok.Is("False") {
		p.stream.Next()
		return &ast.MatchSingleton{Pos: tokenPos(tok), Value: singletonValue(tok.Text)}
	}
	start := p.start()
	value := p.literalValue()
	if value == nil {
		return nil
	}
	return &ast.MatchValue{Pos: p.span(start), Value: value}
}

// literal_expr: the expression form of literal_pattern, used for mapping
// keys.
func (p *Parser) literalExpr() ast.Expr {
	tok := p.peek()
	if tok.Is("None") || tok.Is("True") || tok.Is("False") {
		p.stream.Next()
		return &ast.Constant{Pos: tokenPos(tok), Value: singletonValue(tok.Text)}
	}
	return p.literalValue()
}

// signed_number !('+' | '-') | complex_number | strings
func (p *Parser) literalValue() ast.Expr {
	return choice(p,
		func() ast.Expr {
			n := p.signedNumber()
			if n == nil || p.nextIs("+", "-") {
				return nil
			}
			return n
		},
		p.complexNumber,
		func() ast.Expr {
			if !p.nextKind(lexer.String) {
				return nil
			}
			return p.strings()
		},
	)
}

// complex_number: signed_real_number ('+' | '-') imaginary_number
func (p *Parser) complexNumber() ast.Expr {
	start := p.start()
	re := p.signedRealNumber()
	if re == nil {
		return nil
	}
	op := ast.Add
	switch {
	case p.expect("+") != nil:
	case p.expect("-") != nil:
		op = ast.Sub
	default:
		return nil
	}
	im := p.imaginaryNumber()
	if im == nil {
		return nil
	}
	return &ast.BinOp{Pos: p.span(start), Left: re, Op: op, Right: im}
}

// signed_number: NUMBER | '-' NUMBER
func (p *Parser) signedNumber() ast.Expr {
	return p.negated(p.number)
}

// signed_real_number: real_number | '-' real_number
func (p *Parser) signedRealNumber() ast.Expr {
	return p.negated(p.realNumber)
}

func (p *Parser) negated(operand func() ast.Expr) ast.Expr {
	return attempt(p, func() ast.Expr {
		start := p.start()
		if p.expect("-") == nil {
			return operand()
		}
		value := operand()
		if value == nil {
			return nil
		}
		return &ast.UnaryOp{Pos: p.span(start), Op: ast.USub, Operand: value}
	})
}

// real_number: NUMBER
func (p *Parser) realNumber() ast.Expr {
	n := p.number()
	if n == nil {
		return nil
	}
	if _, ok := n.(*ast.Constant).Value.(complex128); ok {
		p.raiseNode(n, "real number required in complex literal")
	}
	return n
}

// imaginary_number: NUMBER
func (p *Parser) imaginaryNumber() ast.Expr {
	n := p.number()
	if n == nil {
		return nil
	}
	if _, ok := n.(*ast.Constant).Value.(complex128); !ok {
		p.raiseNode(n, "imaginary number required in complex literal")
	}
	return n
}

// capture_pattern: pattern_capture_target
func (p *Parser) capturePattern() ast.Pattern {
	target := p.patternCaptureTarget()
	if target == nil {
		return nil
	}
	return &ast.MatchAs{Pos: tokenPos(*target), Name: target.Text}
}

// pattern_capture_target: !"_" NAME !('.' | '(' | '=')
func (p *Parser) patternCaptureTarget() *lexer.Token {
	return attempt(p, func() *lexer.Token {
		if p.peek().Is("_") {
			return nil
		}
		name := p.nameToken()
		if name == nil || p.nextIs(".", "(", "=") {
			return nil
		}
		return name
	})
}

// wildcard_pattern: "_"
func (p *Parser) wildcardPattern() ast.Pattern {
	tok := p.softKeyword("_")
	if tok == nil {
		return nil
	}
	return &ast.MatchAs{Pos: tokenPos(*tok)}
}

// value_pattern: attr !('.' | '(' | '=')
func (p *Parser) valuePattern() ast.Pattern {
	start := p.start()
	attr := p.attr()
	if attr == nil || p.nextIs(".", "(", "=") {
		return nil
	}
	return &ast.MatchValue{Pos: p.span(start), Value: attr}
}

// attr: name_or_attr '.' NAME
//
// The left recursion only builds a dotted path, so it is matched as a
// loop.
func (p *Parser) attr() ast.Expr {
	return attempt(p, func() ast.Expr {
		e := p.nameOrAttr()
		if _, ok := e.(*ast.Attribute); !ok {
			return nil
		}
		return e
	})
}

// name_or_attr: attr | NAME
func (p *Parser) nameOrAttr() ast.Expr {
	return memo(p, "name_or_attr", func() ast.Expr {
		start := p.start()
		first := p.name()
		if first == nil {
			return nil
		}
		var e ast.Expr = first
		for {
			attr := attempt(p, func() *lexer.Token {
				if p.expect(".") == nil {
					return nil
				}
				return p.nameToken()
			})
			if attr == nil {
				return e
			}
			e = &ast.Attribute{Pos: p.span(start), Value: e, Attr: attr.Text, Ctx: ast.Load}
		}
	})
}

// group_pattern: '(' pattern ')'
func (p *Parser) groupPattern() ast.Pattern {
	if p.expect("(") == nil {
		return nil
	}
	pat := p.pattern()
	if pat == nil || p.expect(")") == nil {
		return nil
	}
	return pat
}

// sequence_pattern:
//
//	| '[' maybe_sequence_pattern? ']'
//	| '(' open_sequence_pattern? ')'
func (p *Parser) sequencePattern() ast.Pattern {
	start := p.start()
	var items []ast.Pattern
	switch {
	case p.expect("[") != nil:
		items = p.maybeSequencePattern()
		if p.expect("]") == nil {
			return nil
		}
	case p.expect("(") != nil:
		items = p.openSequencePattern()
		if p.expect(")") == nil {
			return nil
		}
	default:
		return nil
	}
	if items == nil {
		items = []ast.Pattern{}
	}
	return &ast.MatchSequence{Pos: p.span(start), Patterns: items}
}

// open_sequence_pattern: maybe_star_pattern ',' maybe_sequence_pattern?
func (p *Parser) openSequencePattern() []ast.Pattern {
	return attempt(p, func() []ast.Pattern {
		head := p.maybeStarPattern()
		if head == nil || p.expect(",") == nil {
			return nil
		}
		return append([]ast.Pattern{head}, p.maybeSequencePattern()...)
	})
}

// maybe_sequence_pattern: ','.maybe_star_pattern+ ','?
func (p *Parser) maybeSequencePattern() []ast.Pattern {
	items := gather(p, ",", p.maybeStarPattern)
	if items == nil {
		return nil
	}
	p.expect(",")
	return items
}

// maybe_star_pattern: star_pattern | pattern
func (p *Parser) maybeStarPattern() ast.Pattern {
	if pat := p.starPattern(); pat != nil {
		return pat
	}
	return p.pattern()
}

// star_pattern: '*' pattern_capture_target | '*' wildcard_pattern
func (p *Parser) starPattern() ast.Pattern {
	return memo(p, "star_pattern", func() ast.Pattern {
		start := p.start()
		if p.expect("*") == nil {
			return nil
		}
		if target := p.patternCaptureTarget(); target != nil {
			return &ast.MatchStar{Pos: p.span(start), Name: target.Text}
		}
		if p.wildcardPattern() != nil {
			return &ast.MatchStar{Pos: p.span(start)}
		}
		return nil
	})
}

// mapping_pattern:
//
//	| '{' '}'
//	| '{' double_star_pattern ','? '}'
//	| '{' items_pattern ',' double_star_pattern ','? '}'
//	| '{' items_pattern ','? '}'
func (p *Parser) mappingPattern() ast.Pattern {
	start := p.start()
	if p.expect("{") == nil {
		return nil
	}
	m := &ast.MatchMapping{Keys: []ast.Expr{}, Patterns: []ast.Pattern{}}
	items := gather(p, ",", p.keyValuePattern)
	for _, kv := range items {
		m.Keys = append(m.Keys, kv.key)
		m.Patterns = append(m.Patterns, kv.pattern)
	}
	rest := attempt(p, func() *lexer.Token {
		if items != nil && p.expect(",") == nil {
			return nil
		}
		return p.doubleStarPattern()
	})
	if rest != nil {
		m.Rest = rest.Text
	}
	if items != nil || rest != nil {
		p.expect(",")
	}
	if p.expect("}") == nil {
		return nil
	}
	m.Pos = p.span(start)
	return m
}

// key_value_pattern: (literal_expr | attr) ':' pattern
func (p *Parser) keyValuePattern() *keyPattern {
	return attempt(p, func() *keyPattern {
		key := p.literalExpr()
		if key == nil {
			key = p.attr()
		}
		if key == nil || p.expect(":") == nil {
			return nil
		}
		pat := p.pattern()
		if pat == nil {
			return nil
		}
		return &keyPattern{key: key, pattern: pat}
	})
}

// double_star_pattern: '**' pattern_capture_target
func (p *Parser) doubleStarPattern() *lexer.Token {
	return attempt(p, func() *lexer.Token {
		if p.expect("**") == nil {
			return nil
		}
		return p.patternCaptureTarget()
	})
}

// class_pattern:
//
//	| name_or_attr '(' ')'
//	| name_or_attr '(' positional_patterns ','? ')'
//	| name_or_attr '(' keyword_patterns ','? ')'
//	| name_or_attr '(' positional_patterns ',' keyword_patterns ','? ')'
//	| invalid_class_pattern
func (p *Parser) classPattern() ast.Pattern {
	return choice(p,
		func() ast.Pattern {
			start := p.start()
			cls := p.nameOrAttr()
			if cls == nil || p.expect("(") == nil {
				return nil
			}
			m := &ast.MatchClass{Cls: cls, Patterns: []ast.Pattern{}, KwdAttrs: []string{}, KwdPatterns: []ast.Pattern{}}
			positional := p.positionalPatterns()
			m.Patterns = append(m.Patterns, positional...)
			keywords := attempt(p, func() []*keywordPattern {
				if positional != nil && p.expect(",") == nil {
					return nil
				}
				return gather(p, ",", p.keywordPattern)
			})
			for _, kw := range keywords {
				m.KwdAttrs = append(m.KwdAttrs, kw.name)
				m.KwdPatterns = append(m.KwdPatterns, kw.pattern)
			}
			if positional != nil || keywords != nil {
				p.expect(",")
			}
			if p.expect(")") == nil {
				return nil
			}
			m.Pos = p.span(start)
			return m
		},
		func() ast.Pattern {
			p.invalid(p.invalidClassPattern)
			return nil
		},
	)
}

// positional_patterns: ','.pattern+
func (p *Parser) positionalPatterns() []ast.Pattern {
	return gather(p, ",", p.pattern)
}

// keyword_pattern: NAME '=' pattern
func (p *Parser) keywordPattern() *keywordPattern {
	return attempt(p, func() *keywordPattern {
		name := p.nameToken()
		if name == nil || p.expect("=") == nil {
			return nil
		}
		pat := p.pattern()
		if pat == nil {
			return nil
		}
		return &keywordPattern{name: name.Text, pattern: pat}
	})
}
