package lexer

import "fmt"

// Position is a point in the source. Line is 1-based, Column is a 0-based
// byte offset into the line.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

type TokenKind int

const (
	EndMarker TokenKind = iota
	Name
	Number
	String
	Op
	Newline
	Indent
	Dedent
)

var tokenKindNames = map[TokenKind]string{
	EndMarker: "ENDMARKER",
	Name:      "NAME",
	Number:    "NUMBER",
	String:    "STRING",
	Op:        "OP",
	Newline:   "NEWLINE",
	Indent:    "INDENT",
	Dedent:    "DEDENT",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsWhitespace reports whether tokens of this kind carry layout only.
func (k TokenKind) IsWhitespace() bool {
	return k == Newline || k == Indent || k == Dedent || k == EndMarker
}

type Token struct {
	Kind  TokenKind
	Text  string
	Start Position
	End   Position
	// Line is the source line the token starts on.
	Line string
}

func (t Token) String() string {
	return fmt.Sprintf("%s%q", t.Kind, t.Text)
}

// Is reports whether t is the operator or keyword spelled text.
func (t Token) Is(text string) bool {
	return (t.Kind == Op || t.Kind == Name) && t.Text == text
}

// operators is the exact operator set of Python 3.10, longest spellings
// first so that a prefix scan finds the longest match.
var operators = []string{
	"**=", "...", "//=", "<<=", ">>=",
	"!=", "%=", "&=", "**", "*=", "+=", "-=", "->", "//", "/=", ":=",
	"<<", "<=", "==", ">=", ">>", "@=", "^=", "|=",
	"%", "&", "(", ")", "*", "+", ",", "-", ".", "/", ":", ";",
	"<", "=", ">", "@", "[", "]", "^", "{", "|", "}", "~",
}

// continuationOps are operators after which a line break does not end the
// logical line.
var continuationOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "|": true, "&": true,
	"<": true, ">": true, ".": true, "%": true, "==": true, "!=": true,
	"<=": true, ">=": true, "~": true, "^": true, "<<": true, ">>": true,
	"**": true, "//": true, "@": true, "=": true, "+=": true, "-=": true,
	"/=": true, "%=": true, "&=": true, "|=": true, "^=": true, "<<=": true,
	">>=": true, "**=": true, "//=": true, "@=": true, ":=": true,
}

// continuationNames are word operators with the same effect.
var continuationNames = map[string]bool{
	"and": true, "or": true, "not": true, "is": true, "in": true,
}

// ContinuesLine reports whether a newline following t is absorbed into the
// current logical line.
func ContinuesLine(t Token) bool {
	switch t.Kind {
	case Op:
		return continuationOps[t.Text]
	case Name:
		return continuationNames[t.Text]
	}
	return false
}

var closingBrackets = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

func isClosingBracket(text string) bool {
	return text == ")" || text == "]" || text == "}"
}

// Keywords are the reserved words of the grammar. async and await are
// reserved words here, not separate token kinds.
var Keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

// SoftKeywords are identifiers that act as keywords only in specific
// grammar positions.
var SoftKeywords = map[string]bool{
	"_":     true,
	"case":  true,
	"match": true,
}
