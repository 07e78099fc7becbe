package parser

import (
	"github.com/dhamidi/parseltongue/python/ast"
)

// paramStyle distinguishes def parameters from lambda parameters. Lambda
// parameters carry no annotations and end at ':' instead of ')'.
type paramStyle struct {
	prefix    string
	closer    string
	annotated bool
}

var (
	defParams    = paramStyle{prefix: "", closer: ")", annotated: true}
	lambdaParams = paramStyle{prefix: "lambda_", closer: ":", annotated: false}
)

// params: invalid_parameters | parameters
func (p *Parser) params() *ast.Arguments {
	return memo(p, "params", func() *ast.Arguments {
		p.invalid(func() { p.invalidParameters(defParams) })
		return p.parameters(defParams)
	})
}

// lambda_params: invalid_lambda_parameters | lambda_parameters
func (p *Parser) lambdaParams() *ast.Arguments {
	return memo(p, "lambda_params", func() *ast.Arguments {
		p.invalid(func() { p.invalidParameters(lambdaParams) })
		return p.parameters(lambdaParams)
	})
}

// parameters:
//
//	| slash_no_default param_no_default* param_with_default* star_etc?
//	| slash_with_default param_with_default* star_etc?
//	| param_no_default+ param_with_default* star_etc?
//	| param_with_default+ star_etc?
//	| star_etc
func (p *Parser) parameters(s paramStyle) *ast.Arguments {
	return memo(p, s.prefix+"parameters", func() *ast.Arguments {
		noDefault := func() *ast.Arg { return p.paramNoDefault(s) }
		withDefault := func() *nameDefault { return p.paramWithDefault(s) }
		return choice(p,
			func() *ast.Arguments {
				slash := p.slashNoDefault(s)
				if slash == nil {
					return nil
				}
				plain := zeroOrMore(p, noDefault)
				defaults := zeroOrMore(p, withDefault)
				return makeArguments(slash, nil, plain, defaults, p.starEtc(s))
			},
			func() *ast.Arguments {
				slash := p.slashWithDefault(s)
				if slash == nil {
					return nil
				}
				defaults := zeroOrMore(p, withDefault)
				return makeArguments(nil, slash, nil, defaults, p.starEtc(s))
			},
			func() *ast.Arguments {
				plain := oneOrMore(p, noDefault)
				if plain == nil {
					return nil
				}
				defaults := zeroOrMore(p, withDefault)
				return makeArguments(nil, nil, plain, defaults, p.starEtc(s))
			},
			func() *ast.Arguments {
				defaults := oneOrMore(p, withDefault)
				if defaults == nil {
					return nil
				}
				return makeArguments(nil, nil, nil, defaults, p.starEtc(s))
			},
			func() *ast.Arguments {
				star := p.starEtc(s)
				if star == nil {
					return nil
				}
				return makeArguments(nil, nil, nil, nil, star)
			},
		)
	})
}

// slash_no_default: param_no_default+ '/' ',' | param_no_default+ '/' &')'
func (p *Parser) slashNoDefault(s paramStyle) []*ast.Arg {
	return memo(p, s.prefix+"slash_no_default", func() []*ast.Arg {
		args := oneOrMore(p, func() *ast.Arg { return p.paramNoDefault(s) })
		if args == nil || p.expect("/") == nil || !p.paramEnd(s) {
			return nil
		}
		return args
	})
}

// slash_with_default:
//
//	| param_no_default* param_with_default+ '/' ','
//	| param_no_default* param_with_default+ '/' &')'
func (p *Parser) slashWithDefault(s paramStyle) *slashWithDefault {
	return memo(p, s.prefix+"slash_with_default", func() *slashWithDefault {
		plain := zeroOrMore(p, func() *ast.Arg { return p.paramNoDefault(s) })
		defaults := oneOrMore(p, func() *nameDefault { return p.paramWithDefault(s) })
		if defaults == nil || p.expect("/") == nil || !p.paramEnd(s) {
			return nil
		}
		return &slashWithDefault{plain: plain, withDefault: defaults}
	})
}

// paramEnd matches ',' or looks ahead at the closing token.
func (p *Parser) paramEnd(s paramStyle) bool {
	return p.expect(",") != nil || p.nextIs(s.closer)
}

// star_etc:
//
//	| '*' param_no_default param_maybe_default* kwds?
//	| '*' ',' param_maybe_default+ kwds?
//	| kwds
//	| invalid_star_etc
func (p *Parser) starEtc(s paramStyle) *starEtc {
	return memo(p, s.prefix+"star_etc", func() *starEtc {
		maybeDefault := func() *nameDefault { return p.paramMaybeDefault(s) }
		return choice(p,
			func() *starEtc {
				if p.expect("*") == nil {
					return nil
				}
				vararg := p.paramNoDefault(s)
				if vararg == nil {
					return nil
				}
				kwonly := zeroOrMore(p, maybeDefault)
				return &starEtc{vararg: vararg, kwonly: kwonly, kwarg: p.kwds(s)}
			},
			func() *starEtc {
				if p.expect("*") == nil || p.expect(",") == nil {
					return nil
				}
				kwonly := oneOrMore(p, maybeDefault)
				if kwonly == nil {
					return nil
				}
				return &starEtc{kwonly: kwonly, kwarg: p.kwds(s)}
			},
			func() *starEtc {
				kwarg := p.kwds(s)
				if kwarg == nil {
					return nil
				}
				return &starEtc{kwarg: kwarg}
			},
			func() *starEtc {
				p.invalid(func() { p.invalidStarEtc(s) })
				return nil
			},
		)
	})
}

// kwds: '**' param_no_default
func (p *Parser) kwds(s paramStyle) *ast.Arg {
	return attempt(p, func() *ast.Arg {
		if p.expect("**") == nil {
			return nil
		}
		return p.paramNoDefault(s)
	})
}

// param_no_default: param ',' | param &')'
func (p *Parser) paramNoDefault(s paramStyle) *ast.Arg {
	return memo(p, s.prefix+"param_no_default", func() *ast.Arg {
		arg := p.param(s)
		if arg == nil || !p.paramEnd(s) {
			return nil
		}
		return arg
	})
}

// param_with_default: param default ',' | param default &')'
func (p *Parser) paramWithDefault(s paramStyle) *nameDefault {
	return memo(p, s.prefix+"param_with_default", func() *nameDefault {
		arg := p.param(s)
		if arg == nil {
			return nil
		}
		value := p.defaultValue()
		if value == nil || !p.paramEnd(s) {
			return nil
		}
		return &nameDefault{arg: arg, value: value}
	})
}

// param_maybe_default: param default? ',' | param default? &')'
func (p *Parser) paramMaybeDefault(s paramStyle) *nameDefault {
	return memo(p, s.prefix+"param_maybe_default", func() *nameDefault {
		arg := p.param(s)
		if arg == nil {
			return nil
		}
		value := p.defaultValue()
		if !p.paramEnd(s) {
			return nil
		}
		return &nameDefault{arg: arg, value: value}
	})
}

// param: NAME annotation?
// lambda_param: NAME
func (p *Parser) param(s paramStyle) *ast.Arg {
	start := p.start()
	name := p.nameToken()
	if name == nil {
		return nil
	}
	var annotation ast.Expr
	if s.annotated {
		annotation = attempt(p, func() ast.Expr {
			if p.expect(":") == nil {
				return nil
			}
			return p.expression()
		})
	}
	return &ast.Arg{Pos: p.span(start), Arg: name.Text, Annotation: annotation}
}

// default: '=' expression
func (p *Parser) defaultValue() ast.Expr {
	return attempt(p, func() ast.Expr {
		if p.expect("=") == nil {
			return nil
		}
		return p.expression()
	})
}
