package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
)

type node struct {
	text string
}

func newTestParser(t *testing.T, src string) *Parser {
	t.Helper()
	p, err := New(src)
	if err != nil {
		t.Fatalf("New(%q): %v", src, err)
	}
	p.reset()
	return p
}

// testSum is sum: sum '+' NAME | NAME, built on the engine alone.
func testSum(p *Parser) *node {
	return memoLeftRec(p, "test_sum", func() *node {
		return choice(p,
			func() *node {
				left := testSum(p)
				if left == nil || p.expect("+") == nil {
					return nil
				}
				right := p.nameToken()
				if right == nil {
					return nil
				}
				return &node{"(" + left.text + "+" + right.Text + ")"}
			},
			func() *node {
				if tok := p.nameToken(); tok != nil {
					return &node{tok.Text}
				}
				return nil
			},
		)
	})
}

func TestMemoLeftRecGrowsSeed(t *testing.T) {
	p := newTestParser(t, "a + b + c\n")
	got := testSum(p)
	if got == nil {
		t.Fatal("no match")
	}
	if got.text != "((a+b)+c)" {
		t.Errorf("got %s, want ((a+b)+c)", got.text)
	}
	if p.mark() != 5 {
		t.Errorf("mark = %d, want 5", p.mark())
	}

	// The grown result is memoized at its start position.
	p.resetTo(0)
	if again := testSum(p); again != got {
		t.Error("second call did not return the memoized result")
	}
	if p.mark() != 5 {
		t.Errorf("mark after memo hit = %d, want 5", p.mark())
	}
}

func TestMemoLeftRecFailureRestoresPosition(t *testing.T) {
	p := newTestParser(t, "+ a\n")
	if got := testSum(p); got != nil {
		t.Fatalf("got %v, want no match", got)
	}
	if p.mark() != 0 {
		t.Errorf("mark = %d, want 0", p.mark())
	}
}

func TestSeedGrowthStopsAtEndOfInput(t *testing.T) {
	p := newTestParser(t, strings.Repeat("a ", 50)+"\n")
	calls := 0
	var greedy func() *node
	greedy = func() *node {
		return memoLeftRec(p, "greedy", func() *node {
			calls++
			greedy()
			p.stream.Next()
			return &node{}
		})
	}

	if greedy() == nil {
		t.Fatal("no match")
	}
	if p.mark() != len(p.tokens) {
		t.Errorf("mark = %d, want %d", p.mark(), len(p.tokens))
	}
	if limit := seedLimit(len(p.tokens), 0); calls > limit+1 {
		t.Errorf("%d iterations, limit is %d", calls, limit)
	}
}

func TestMemo(t *testing.T) {
	p := newTestParser(t, "a b\n")
	calls := 0
	name := func() *lexer.Token {
		return memo(p, "test_name", func() *lexer.Token {
			calls++
			return p.nameToken()
		})
	}

	first := name()
	if first == nil || first.Text != "a" {
		t.Fatalf("got %v, want a", first)
	}
	p.resetTo(0)
	if second := name(); second != first {
		t.Error("memo hit returned a different token")
	}
	if calls != 1 {
		t.Errorf("rule body ran %d times, want 1", calls)
	}
	if p.mark() != 1 {
		t.Errorf("mark after hit = %d, want 1", p.mark())
	}

	// A miss is cached too and leaves the position alone.
	p.resetTo(2)
	for i := 0; i < 2; i++ {
		if got := name(); got != nil {
			t.Fatalf("got %v at NEWLINE", got)
		}
		if p.mark() != 2 {
			t.Errorf("mark after miss = %d, want 2", p.mark())
		}
	}
	if calls != 2 {
		t.Errorf("rule body ran %d times, want 2", calls)
	}
}

func TestChoiceCut(t *testing.T) {
	alternatives := func(p *Parser, cut bool) []func() *node {
		return []func() *node{
			func() *node {
				if p.nameToken() == nil {
					return nil
				}
				p.cut = cut
				if p.expect("+") == nil {
					return nil
				}
				return &node{"sum"}
			},
			func() *node {
				if tok := p.nameToken(); tok != nil {
					return &node{tok.Text}
				}
				return nil
			},
		}
	}

	p := newTestParser(t, "a\n")
	got := choice(p, alternatives(p, false)...)
	if got == nil || got.text != "a" {
		t.Fatalf("without cut got %v, want a", got)
	}
	if p.mark() != 1 {
		t.Errorf("mark = %d, want 1", p.mark())
	}

	p = newTestParser(t, "a\n")
	p.cut = true
	if got := choice(p, alternatives(p, true)...); got != nil {
		t.Fatalf("with cut got %v, want no match", got)
	}
	if p.mark() != 0 {
		t.Errorf("mark after cut = %d, want 0", p.mark())
	}
	if !p.cut {
		t.Error("choice did not restore the enclosing cut flag")
	}
}

func TestLookahead(t *testing.T) {
	p := newTestParser(t, "a + b\n")
	plus := func() *lexer.Token { return p.expect("+") }

	if !lookahead(p, true, p.nameToken) {
		t.Error("positive lookahead for NAME failed")
	}
	if lookahead(p, false, p.nameToken) {
		t.Error("negative lookahead for NAME succeeded")
	}
	if !lookahead(p, false, plus) {
		t.Error("negative lookahead for '+' failed")
	}
	if p.mark() != 0 {
		t.Errorf("mark = %d, want 0", p.mark())
	}

	p.stream.Next()
	if !lookahead(p, true, plus) {
		t.Error("positive lookahead for '+' failed")
	}
	if p.mark() != 1 {
		t.Errorf("mark = %d, want 1", p.mark())
	}
}

// tryRule runs fn and reports whether it raised a SyntaxError.
func tryRule(p *Parser, fn func(*Parser) bool) (matched, raised bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*SyntaxError); !ok {
				panic(r)
			}
			raised = true
		}
	}()
	return fn(p), false
}

func TestFailedRulesLeavePositionUnchanged(t *testing.T) {
	rules := []struct {
		name string
		fn   func(p *Parser) bool
	}{
		{"expression", func(p *Parser) bool { return present(p.expression()) }},
		{"star_expression", func(p *Parser) bool { return present(p.starExpression()) }},
		{"disjunction", func(p *Parser) bool { return present(p.disjunction()) }},
		{"sum", func(p *Parser) bool { return present(p.sum()) }},
		{"primary", func(p *Parser) bool { return present(p.primary()) }},
		{"lambdef", func(p *Parser) bool { return present(p.lambdef()) }},
		{"simple_stmt", func(p *Parser) bool { return present(p.simpleStmt()) }},
		{"compound_stmt", func(p *Parser) bool { return present(p.compoundStmt()) }},
	}
	inputs := []string{
		"a.b[c](d)\n",
		"x: int = 1\n",
		"a if b else\n",
		"lambda x: x +\n1\n",
		"def f(a, b=1): pass\n",
		"class C(B): pass\n",
		"[x for x in y if]\n",
		"{**a, b: c}\n",
		"f(*a, **b)\n",
		"1 + * 2\n",
		"pass\n",
		"yield\n",
		"+ a\n",
	}

	for _, rule := range rules {
		for _, input := range inputs {
			p := newTestParser(t, input)
			matched, raised := tryRule(p, rule.fn)
			if matched || raised {
				continue
			}
			if p.mark() != 0 {
				t.Errorf("%s on %q failed at mark %d, want 0", rule.name, input, p.mark())
			}
		}
	}
}
