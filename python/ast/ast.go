// Package ast declares the Python syntax tree produced by the Parseltongue
// parser.
//
// The node set mirrors Python's own ast module (3.10) so that a tree can be
// rendered back to Python source without translation. Each syntactic
// category is a closed interface:
//
//	Mod      Module | Interactive | Expression | FunctionType
//	Stmt     FunctionDef | ClassDef | Assign | If | For | ... | Pass
//	Expr     BoolOp | BinOp | Call | Name | Constant | ... | Slice
//	Pattern  MatchValue | MatchSequence | MatchClass | ... | MatchOr
//
// Located nodes embed Pos. Lines are 1-based and columns are 0-based byte
// offsets, matching CPython's lineno/col_offset conventions.
package ast

// Node is implemented by every tree type, including the helper records
// (Arguments, Comprehension, ...) that carry no category.
type Node interface {
	astNode()
}

// Located is a node with a source span.
type Located interface {
	Node
	Location() *Pos
}

type Mod interface {
	Node
	modNode()
}

type Stmt interface {
	Located
	stmtNode()
}

type Expr interface {
	Located
	exprNode()
}

type Pattern interface {
	Located
	patternNode()
}

// Pos is the source span of a located node.
type Pos struct {
	Lineno       int `py:"lineno"`
	ColOffset    int `py:"col_offset"`
	EndLineno    int `py:"end_lineno"`
	EndColOffset int `py:"end_col_offset"`
}

func (p *Pos) Location() *Pos { return p }

// Contains reports whether the 1-based line and 0-based column fall inside
// the span.
func (p *Pos) Contains(line, col int) bool {
	if line < p.Lineno || line > p.EndLineno {
		return false
	}
	if line == p.Lineno && col < p.ColOffset {
		return false
	}
	if line == p.EndLineno && col > p.EndColOffset {
		return false
	}
	return true
}

// CopyLocation copies the span of src onto dst.
func CopyLocation(dst, src Located) {
	*dst.Location() = *src.Location()
}

type ExprContext int

const (
	Load ExprContext = iota
	Store
	Del
)

var exprContextNames = [...]string{"Load", "Store", "Del"}

func (c ExprContext) String() string { return exprContextNames[c] }

type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

func (o BoolOperator) String() string {
	if o == And {
		return "And"
	}
	return "Or"
}

func (o BoolOperator) Symbol() string {
	if o == And {
		return "and"
	}
	return "or"
}

type Operator int

const (
	Add Operator = iota
	Sub
	Mult
	MatMult
	Div
	Modulo
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

var operatorNames = [...]string{
	Add:      "Add",
	Sub:      "Sub",
	Mult:     "Mult",
	MatMult:  "MatMult",
	Div:      "Div",
	Modulo:   "Mod",
	Pow:      "Pow",
	LShift:   "LShift",
	RShift:   "RShift",
	BitOr:    "BitOr",
	BitXor:   "BitXor",
	BitAnd:   "BitAnd",
	FloorDiv: "FloorDiv",
}

var operatorSymbols = [...]string{
	Add:      "+",
	Sub:      "-",
	Mult:     "*",
	MatMult:  "@",
	Div:      "/",
	Modulo:   "%",
	Pow:      "**",
	LShift:   "<<",
	RShift:   ">>",
	BitOr:    "|",
	BitXor:   "^",
	BitAnd:   "&",
	FloorDiv: "//",
}

func (o Operator) String() string { return operatorNames[o] }

// Symbol returns the operator's source spelling.
func (o Operator) Symbol() string { return operatorSymbols[o] }

// AugmentedOperator maps an augmented assignment spelling such as "+=" to
// its operator.
func AugmentedOperator(text string) (Operator, bool) {
	if len(text) < 2 || text[len(text)-1] != '=' {
		return 0, false
	}
	sym := text[:len(text)-1]
	for op, s := range operatorSymbols {
		if s == sym {
			return Operator(op), true
		}
	}
	return 0, false
}

type UnaryOperator int

const (
	Invert UnaryOperator = iota
	Not
	UAdd
	USub
)

var unaryNames = [...]string{"Invert", "Not", "UAdd", "USub"}
var unarySymbols = [...]string{"~", "not ", "+", "-"}

func (o UnaryOperator) String() string { return unaryNames[o] }
func (o UnaryOperator) Symbol() string { return unarySymbols[o] }

type CmpOp int

const (
	Eq CmpOp = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpNames = [...]string{"Eq", "NotEq", "Lt", "LtE", "Gt", "GtE", "Is", "IsNot", "In", "NotIn"}
var cmpSymbols = [...]string{"==", "!=", "<", "<=", ">", ">=", "is", "is not", "in", "not in"}

func (o CmpOp) String() string { return cmpNames[o] }
func (o CmpOp) Symbol() string { return cmpSymbols[o] }

// Ellipsis is the value of the `...` constant.
type Ellipsis struct{}

func (Ellipsis) String() string { return "Ellipsis" }
