package ast

// Modules

type Module struct {
	Body        []Stmt
	TypeIgnores []*TypeIgnore
}

type Interactive struct {
	Body []Stmt
}

type Expression struct {
	Body Expr
}

type FunctionType struct {
	ArgTypes []Expr `py:"argtypes"`
	Returns  Expr
}

type TypeIgnore struct {
	Lineno int
	Tag    string
}

// Statements

type FunctionDef struct {
	Pos
	Name          string
	Args          *Arguments
	Body          []Stmt
	DecoratorList []Expr
	Returns       Expr   `py:",optional"`
	TypeComment   string `py:",optional"`
}

type AsyncFunctionDef struct {
	Pos
	Name          string
	Args          *Arguments
	Body          []Stmt
	DecoratorList []Expr
	Returns       Expr   `py:",optional"`
	TypeComment   string `py:",optional"`
}

type ClassDef struct {
	Pos
	Name          string
	Bases         []Expr
	Keywords      []*Keyword
	Body          []Stmt
	DecoratorList []Expr
}

type Return struct {
	Pos
	Value Expr `py:",optional"`
}

type Delete struct {
	Pos
	Targets []Expr
}

type Assign struct {
	Pos
	Targets     []Expr
	Value       Expr
	TypeComment string `py:",optional"`
}

type AugAssign struct {
	Pos
	Target Expr
	Op     Operator
	Value  Expr
}

type AnnAssign struct {
	Pos
	Target     Expr
	Annotation Expr
	Value      Expr `py:",optional"`
	Simple     int
}

type For struct {
	Pos
	Target      Expr
	Iter        Expr
	Body        []Stmt
	OrElse      []Stmt `py:"orelse"`
	TypeComment string `py:",optional"`
}

type AsyncFor struct {
	Pos
	Target      Expr
	Iter        Expr
	Body        []Stmt
	OrElse      []Stmt `py:"orelse"`
	TypeComment string `py:",optional"`
}

type While struct {
	Pos
	Test   Expr
	Body   []Stmt
	OrElse []Stmt `py:"orelse"`
}

type If struct {
	Pos
	Test   Expr
	Body   []Stmt
	OrElse []Stmt `py:"orelse"`
}

type With struct {
	Pos
	Items       []*WithItem
	Body        []Stmt
	TypeComment string `py:",optional"`
}

type AsyncWith struct {
	Pos
	Items       []*WithItem
	Body        []Stmt
	TypeComment string `py:",optional"`
}

type Match struct {
	Pos
	Subject Expr
	Cases   []*MatchCase
}

type Raise struct {
	Pos
	Exc   Expr `py:",optional"`
	Cause Expr `py:",optional"`
}

type Try struct {
	Pos
	Body      []Stmt
	Handlers  []*ExceptHandler
	OrElse    []Stmt `py:"orelse"`
	FinalBody []Stmt `py:"finalbody"`
}

type Assert struct {
	Pos
	Test Expr
	Msg  Expr `py:",optional"`
}

type Import struct {
	Pos
	Names []*Alias
}

type ImportFrom struct {
	Pos
	Module string `py:",optional"`
	Names  []*Alias
	Level  int
}

type Global struct {
	Pos
	Names []string
}

type Nonlocal struct {
	Pos
	Names []string
}

// ExprStmt is Python's Expr statement: an expression evaluated for its
// side effects.
type ExprStmt struct {
	Pos
	Value Expr
}

type Pass struct{ Pos }

type Break struct{ Pos }

type Continue struct{ Pos }

// Expressions

type BoolOp struct {
	Pos
	Op     BoolOperator
	Values []Expr
}

type NamedExpr struct {
	Pos
	Target Expr
	Value  Expr
}

type BinOp struct {
	Pos
	Left  Expr
	Op    Operator
	Right Expr
}

type UnaryOp struct {
	Pos
	Op      UnaryOperator
	Operand Expr
}

type Lambda struct {
	Pos
	Args *Arguments
	Body Expr
}

type IfExp struct {
	Pos
	Test   Expr
	Body   Expr
	OrElse Expr `py:"orelse"`
}

// Dict keys hold nil for `**mapping` entries.
type Dict struct {
	Pos
	Keys   []Expr
	Values []Expr
}

type Set struct {
	Pos
	Elts []Expr
}

type ListComp struct {
	Pos
	Elt        Expr
	Generators []*Comprehension
}

type SetComp struct {
	Pos
	Elt        Expr
	Generators []*Comprehension
}

type DictComp struct {
	Pos
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

type GeneratorExp struct {
	Pos
	Elt        Expr
	Generators []*Comprehension
}

type Await struct {
	Pos
	Value Expr
}

type Yield struct {
	Pos
	Value Expr `py:",optional"`
}

type YieldFrom struct {
	Pos
	Value Expr
}

type Compare struct {
	Pos
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
}

type Call struct {
	Pos
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

// Conversion is -1 when absent, otherwise one of 's', 'r', 'a'.
type FormattedValue struct {
	Pos
	Value      Expr
	Conversion int
	FormatSpec Expr `py:",optional"`
}

type JoinedStr struct {
	Pos
	Values []Expr
}

type Constant struct {
	Pos
	Value any
	Kind  string `py:",optional"`
}

type Attribute struct {
	Pos
	Value Expr
	Attr  string
	Ctx   ExprContext
}

type Subscript struct {
	Pos
	Value Expr
	Slice Expr
	Ctx   ExprContext
}

type Starred struct {
	Pos
	Value Expr
	Ctx   ExprContext
}

type Name struct {
	Pos
	Id  string
	Ctx ExprContext
}

type List struct {
	Pos
	Elts []Expr
	Ctx  ExprContext
}

type Tuple struct {
	Pos
	Elts []Expr
	Ctx  ExprContext
}

type Slice struct {
	Pos
	Lower Expr `py:",optional"`
	Upper Expr `py:",optional"`
	Step  Expr `py:",optional"`
}

// Patterns

type MatchValue struct {
	Pos
	Value Expr
}

// MatchSingleton.Value is nil, true or false.
type MatchSingleton struct {
	Pos
	Value any
}

type MatchSequence struct {
	Pos
	Patterns []Pattern
}

type MatchMapping struct {
	Pos
	Keys     []Expr
	Patterns []Pattern
	Rest     string `py:",optional"`
}

type MatchClass struct {
	Pos
	Cls         Expr
	Patterns    []Pattern
	KwdAttrs    []string
	KwdPatterns []Pattern
}

type MatchStar struct {
	Pos
	Name string `py:",optional"`
}

type MatchAs struct {
	Pos
	Pattern Pattern `py:",optional"`
	Name    string  `py:",optional"`
}

type MatchOr struct {
	Pos
	Patterns []Pattern
}

// Helper records

type Comprehension struct {
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync int
}

type ExceptHandler struct {
	Pos
	Type Expr   `py:",optional"`
	Name string `py:",optional"`
	Body []Stmt
}

// Arguments lists parameters by kind. KwDefaults is parallel to KwOnlyArgs
// and holds nil where a keyword-only parameter has no default; Defaults
// applies to the tail of PosOnlyArgs+Args.
type Arguments struct {
	PosOnlyArgs []*Arg `py:"posonlyargs"`
	Args        []*Arg
	VarArg      *Arg   `py:"vararg,optional"`
	KwOnlyArgs  []*Arg `py:"kwonlyargs"`
	KwDefaults  []Expr `py:"kw_defaults"`
	KwArg       *Arg   `py:"kwarg,optional"`
	Defaults    []Expr
}

type Arg struct {
	Pos
	Arg         string
	Annotation  Expr   `py:",optional"`
	TypeComment string `py:",optional"`
}

// Keyword.Arg is empty for `**mapping` arguments.
type Keyword struct {
	Pos
	Arg   string `py:",optional"`
	Value Expr
}

type Alias struct {
	Pos
	Name   string
	Asname string `py:",optional"`
}

type WithItem struct {
	ContextExpr  Expr
	OptionalVars Expr `py:",optional"`
}

type MatchCase struct {
	Pattern Pattern
	Guard   Expr `py:",optional"`
	Body    []Stmt
}

func (*Module) astNode()       {}
func (*Interactive) astNode()  {}
func (*Expression) astNode()   {}
func (*FunctionType) astNode() {}
func (*TypeIgnore) astNode()   {}

func (*Module) modNode()       {}
func (*Interactive) modNode()  {}
func (*Expression) modNode()   {}
func (*FunctionType) modNode() {}

func (*FunctionDef) astNode()      {}
func (*AsyncFunctionDef) astNode() {}
func (*ClassDef) astNode()         {}
func (*Return) astNode()           {}
func (*Delete) astNode()           {}
func (*Assign) astNode()           {}
func (*AugAssign) astNode()        {}
func (*AnnAssign) astNode()        {}
func (*For) astNode()              {}
func (*AsyncFor) astNode()         {}
func (*While) astNode()            {}
func (*If) astNode()               {}
func (*With) astNode()             {}
func (*AsyncWith) astNode()        {}
func (*Match) astNode()            {}
func (*Raise) astNode()            {}
func (*Try) astNode()              {}
func (*Assert) astNode()           {}
func (*Import) astNode()           {}
func (*ImportFrom) astNode()       {}
func (*Global) astNode()           {}
func (*Nonlocal) astNode()         {}
func (*ExprStmt) astNode()         {}
func (*Pass) astNode()             {}
func (*Break) astNode()            {}
func (*Continue) astNode()         {}

func (*FunctionDef) stmtNode()      {}
func (*AsyncFunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()         {}
func (*Return) stmtNode()           {}
func (*Delete) stmtNode()           {}
func (*Assign) stmtNode()           {}
func (*AugAssign) stmtNode()        {}
func (*AnnAssign) stmtNode()        {}
func (*For) stmtNode()              {}
func (*AsyncFor) stmtNode()         {}
func (*While) stmtNode()            {}
func (*If) stmtNode()               {}
func (*With) stmtNode()             {}
func (*AsyncWith) stmtNode()        {}
func (*Match) stmtNode()            {}
func (*Raise) stmtNode()            {}
func (*Try) stmtNode()              {}
func (*Assert) stmtNode()           {}
func (*Import) stmtNode()           {}
func (*ImportFrom) stmtNode()       {}
func (*Global) stmtNode()           {}
func (*Nonlocal) stmtNode()         {}
func (*ExprStmt) stmtNode()         {}
func (*Pass) stmtNode()             {}
func (*Break) stmtNode()            {}
func (*Continue) stmtNode()         {}

func (*BoolOp) astNode()         {}
func (*NamedExpr) astNode()      {}
func (*BinOp) astNode()          {}
func (*UnaryOp) astNode()        {}
func (*Lambda) astNode()         {}
func (*IfExp) astNode()          {}
func (*Dict) astNode()           {}
func (*Set) astNode()            {}
func (*ListComp) astNode()       {}
func (*SetComp) astNode()        {}
func (*DictComp) astNode()       {}
func (*GeneratorExp) astNode()   {}
func (*Await) astNode()          {}
func (*Yield) astNode()          {}
func (*YieldFrom) astNode()      {}
func (*Compare) astNode()        {}
func (*Call) astNode()           {}
func (*FormattedValue) astNode() {}
func (*JoinedStr) astNode()      {}
func (*Constant) astNode()       {}
func (*Attribute) astNode()      {}
func (*Subscript) astNode()      {}
func (*Starred) astNode()        {}
func (*Name) astNode()           {}
func (*List) astNode()           {}
func (*Tuple) astNode()          {}
func (*Slice) astNode()          {}

func (*BoolOp) exprNode()         {}
func (*NamedExpr) exprNode()      {}
func (*BinOp) exprNode()          {}
func (*UnaryOp) exprNode()        {}
func (*Lambda) exprNode()         {}
func (*IfExp) exprNode()          {}
func (*Dict) exprNode()           {}
func (*Set) exprNode()            {}
func (*ListComp) exprNode()       {}
func (*SetComp) exprNode()        {}
func (*DictComp) exprNode()       {}
func (*GeneratorExp) exprNode()   {}
func (*Await) exprNode()          {}
func (*Yield) exprNode()          {}
func (*YieldFrom) exprNode()      {}
func (*Compare) exprNode()        {}
func (*Call) exprNode()           {}
func (*FormattedValue) exprNode() {}
func (*JoinedStr) exprNode()      {}
func (*Constant) exprNode()       {}
func (*Attribute) exprNode()      {}
func (*Subscript) exprNode()      {}
func (*Starred) exprNode()        {}
func (*Name) exprNode()           {}
func (*List) exprNode()           {}
func (*Tuple) exprNode()          {}
func (*Slice) exprNode()          {}

func (*MatchValue) astNode()     {}
func (*MatchSingleton) astNode() {}
func (*MatchSequence) astNode()  {}
func (*MatchMapping) astNode()   {}
func (*MatchClass) astNode()     {}
func (*MatchStar) astNode()      {}
func (*MatchAs) astNode()        {}
func (*MatchOr) astNode()        {}

func (*MatchValue) patternNode()     {}
func (*MatchSingleton) patternNode() {}
func (*MatchSequence) patternNode()  {}
func (*MatchMapping) patternNode()   {}
func (*MatchClass) patternNode()     {}
func (*MatchStar) patternNode()      {}
func (*MatchAs) patternNode()        {}
func (*MatchOr) patternNode()        {}

func (*Comprehension) astNode() {}
func (*ExceptHandler) astNode() {}
func (*Arguments) astNode()     {}
func (*Arg) astNode()           {}
func (*Keyword) astNode()       {}
func (*Alias) astNode()         {}
func (*WithItem) astNode()      {}
func (*MatchCase) astNode()     {}

// Arg, Keyword, Alias and ExceptHandler are located through the embedded
// Pos.
var (
	_ Located = (*Arg)(nil)
	_ Located = (*Keyword)(nil)
	_ Located = (*Alias)(nil)
	_ Located = (*ExceptHandler)(nil)
)
