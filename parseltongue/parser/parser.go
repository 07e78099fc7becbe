package parser

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/python/ast"
)

// DefaultTargetVersion is the Python 3 minor version whose syntax is
// accepted when no target is configured.
const DefaultTargetVersion = 10

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithTabSize(n int) Option {
	return func(p *Parser) {
		p.tabSize = n
	}
}

// WithTargetVersion rejects syntax newer than Python 3.minor.
func WithTargetVersion(minor int) Option {
	return func(p *Parser) {
		p.targetVersion = minor
	}
}

// WithRelaxedColons lets an if or elif header omit its colon when the block
// starts on the next line, and makes the colon after else optional.
func WithRelaxedColons() Option {
	return func(p *Parser) {
		p.relaxedColons = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser holds the state of one parse. It is not safe for concurrent use.
type Parser struct {
	file          string
	tabSize       int
	targetVersion int
	relaxedColons bool
	log           commonlog.Logger

	src    string
	lines  []string
	tokens []lexer.Token
	stream *lexer.Stream

	// levels holds the bracket depth after each token.
	levels []int

	memo             map[memoKey]memoEntry
	callInvalidRules bool
	cut              bool
	// inRawRule counts the left-recursive rules being grown.
	inRawRule int
}

// New tokenizes src. The returned parser can run any one entry rule.
func New(src string, opts ...Option) (*Parser, error) {
	p := &Parser{
		tabSize:       lexer.DefaultTabSize,
		targetVersion: DefaultTargetVersion,
		src:           src,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = commonlog.GetLogger("parseltongue.parser")
	}
	tokens, err := lexer.Tokenize(src, lexer.WithFile(p.file), lexer.WithTabSize(p.tabSize))
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	p.levels = bracketLevels(tokens)
	p.lines = strings.Split(strings.TrimPrefix(src, "\ufeff"), "\n")
	for i, line := range p.lines {
		p.lines[i] = strings.TrimSuffix(line, "\r")
	}
	return p, nil
}

func bracketLevels(tokens []lexer.Token) []int {
	levels := make([]int, len(tokens))
	level := 0
	for i, tok := range tokens {
		if tok.Kind == lexer.Op {
			switch tok.Text {
			case "(", "[", "{":
				level++
			case ")", "]", "}":
				level--
			}
		}
		levels[i] = level
	}
	return levels
}

// Tokens returns the token slice the parser runs on.
func (p *Parser) Tokens() []lexer.Token {
	return p.tokens
}

func (p *Parser) ParseFile() (*ast.Module, error) {
	return run(p, "file", p.fileRule)
}

func (p *Parser) ParseInteractive() (*ast.Interactive, error) {
	return run(p, "interactive", p.interactiveRule)
}

func (p *Parser) ParseEval() (*ast.Expression, error) {
	return run(p, "eval", p.evalRule)
}

func (p *Parser) ParseFuncType() (*ast.FunctionType, error) {
	return run(p, "func_type", p.funcTypeRule)
}

// ParseFstring parses the text of one f-string replacement field.
func (p *Parser) ParseFstring() (ast.Expr, error) {
	return run(p, "fstring", p.fstringRule)
}

// run applies an entry rule in up to two passes. The second pass enables
// the invalid_* rules so that a failing input gets a specific message.
func run[T any](p *Parser, entry string, rule func() T) (result T, err error) {
	var zero T
	defer func() {
		if r := recover(); r != nil {
			serr, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			result, err = zero, serr
		}
	}()

	p.reset()
	if v := rule(); present(v) {
		return v, nil
	}
	p.log.Debugf("%s: %s failed at %s, retrying with invalid rules", p.file, entry, p.stream.Diagnose())

	p.reset()
	p.callInvalidRules = true
	rule()
	return zero, &ParseError{File: p.file, Token: p.stream.Diagnose()}
}

func (p *Parser) reset() {
	if p.stream == nil {
		p.stream = lexer.NewStream(p.tokens)
	}
	p.stream.Reset(0)
	p.memo = make(map[memoKey]memoEntry)
	p.cut = false
	p.inRawRule = 0
}

// Mode selects the entry rule used by Parse.
type Mode string

const (
	ModeExec     Mode = "exec"
	ModeEval     Mode = "eval"
	ModeSingle   Mode = "single"
	ModeFuncType Mode = "func_type"
)

// Parse parses src with the entry rule for mode, like Python's compile().
func Parse(src string, mode Mode, opts ...Option) (ast.Mod, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeExec, "":
		return nonNil(p.ParseFile())
	case ModeEval:
		return nonNil(p.ParseEval())
	case ModeSingle:
		return nonNil(p.ParseInteractive())
	case ModeFuncType:
		return nonNil(p.ParseFuncType())
	}
	return nil, fmt.Errorf("unknown parse mode %q", mode)
}

func nonNil[T ast.Mod](m T, err error) (ast.Mod, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

func File(src string, opts ...Option) (*ast.Module, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseFile()
}

func Interactive(src string, opts ...Option) (*ast.Interactive, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseInteractive()
}

func Eval(src string, opts ...Option) (*ast.Expression, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseEval()
}

func FuncType(src string, opts ...Option) (*ast.FunctionType, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseFuncType()
}

// IsComplete reports whether src is a finished interactive statement.
// Input that fails only because it ends too early, such as an open
// bracket or a compound statement header, is incomplete.
func IsComplete(src string, opts ...Option) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := Interactive(src, opts...)
	if err == nil {
		first, _, _ := strings.Cut(src, "\n")
		if strings.HasSuffix(strings.TrimRight(first, " \t\r"), ":") {
			return strings.HasSuffix(src, "\n\n")
		}
		return true
	}
	switch e := err.(type) {
	case *lexer.Error:
		return !strings.HasPrefix(e.Msg, "unclosed") && !strings.HasPrefix(e.Msg, "unterminated triple")
	case *ParseError:
		return e.Token.Kind != lexer.EndMarker && e.Token.Kind != lexer.Dedent
	case *SyntaxError:
		return !strings.HasPrefix(e.Msg, "expected an indented block")
	}
	return true
}
