package internal

// In this file, we defined all ast of jack programming languages according to jack programming language grammar.
// According to the grammar, each jack file xxx.jack holds exactly one class definition, there is no package
// declaration and dependency declaration.

type ClassAst struct {
	Name           string
	ClassVarDecs   []*ClassVarDecAst
	SubroutineDecs []*SubroutineDecAst
	Line           int
}

type ClassVarKind int

const (
	StaticClassVar ClassVarKind = iota
	FieldClassVar
)

// static int a, b;
type ClassVarDecAst struct {
	Kind  ClassVarKind
	Type  TypeAst
	Names []string
	Line  int
}

// var int a, b;
type VarDecAst struct {
	Type  TypeAst
	Names []string
	Line  int
}

// TypeAst is int, char, boolean, void (only for subroutine return) or a class name.
type TypeAst struct {
	Name string
}

func (t TypeAst) IsPrimitive() bool {
	switch t.Name {
	case "int", "char", "boolean", "void":
		return true
	}
	return false
}

type ParameterAst struct {
	Type TypeAst
	Name string
}

type SubroutineKind int

const (
	ConstructorKind SubroutineKind = iota
	FunctionKind
	MethodKind
)

func (kind SubroutineKind) String() string {
	switch kind {
	case ConstructorKind:
		return "constructor"
	case FunctionKind:
		return "function"
	case MethodKind:
		return "method"
	}
	return ""
}

type SubroutineDecAst struct {
	Kind       SubroutineKind
	ReturnType TypeAst
	Name       string
	Parameters []*ParameterAst
	Body       *SubroutineBodyAst
	Line       int
}

type SubroutineBodyAst struct {
	VarDecs    []*VarDecAst
	Statements []StatementAst
}

// StatementAst is one of *LetStatementAst, *IfStatementAst, *WhileStatementAst,
// *DoStatementAst and *ReturnStatementAst.
type StatementAst interface {
	statementNode()
	Line() int
}

type LetStatementAst struct {
	// Target is *VarNameTerm or *ArrayAccessTerm.
	Target TermAst
	Value  *ExpressionAst
	line   int
}

type IfStatementAst struct {
	Condition        *ExpressionAst
	IfTrueStatements []StatementAst
	// nil when there is no else branch.
	ElseStatements []StatementAst
	line           int
}

type WhileStatementAst struct {
	Condition  *ExpressionAst
	Statements []StatementAst
	line       int
}

type DoStatementAst struct {
	Call *SubroutineCallTerm
	line int
}

type ReturnStatementAst struct {
	// nil for `return;`
	Value *ExpressionAst
	line  int
}

func (*LetStatementAst) statementNode()    {}
func (*IfStatementAst) statementNode()     {}
func (*WhileStatementAst) statementNode()  {}
func (*DoStatementAst) statementNode()     {}
func (*ReturnStatementAst) statementNode() {}

func (s *LetStatementAst) Line() int    { return s.line }
func (s *IfStatementAst) Line() int     { return s.line }
func (s *WhileStatementAst) Line() int  { return s.line }
func (s *DoStatementAst) Line() int     { return s.line }
func (s *ReturnStatementAst) Line() int { return s.line }

// ExpressionAst is not a tree. Jack has no operator priority, so an expression is kept
// as the flat list term (op term)* and evaluated from left to right.
type ExpressionAst struct {
	Head TermAst
	Tail []OpTerm
}

type OpTerm struct {
	Op   OpAst
	Term TermAst
}

// Len is the length of the flat term, op, term, ... sequence.
func (expr *ExpressionAst) Len() int {
	return 1 + 2*len(expr.Tail)
}

type OpAst struct {
	Symbol string
	Line   int
}

// TermAst is one of the term nodes below.
type TermAst interface {
	termNode()
	Line() int
}

type IntegerConstantTerm struct {
	Value int
	line  int
}

type StringConstantTerm struct {
	Value string
	line  int
}

// KeywordConstantTerm is true, false, null or this.
type KeywordConstantTerm struct {
	Keyword string
	line    int
}

type VarNameTerm struct {
	Name string
	line int
}

type ArrayAccessTerm struct {
	Name  string
	Index *ExpressionAst
	line  int
}

// SubroutineCallTerm is name(args) or qualifier.name(args). The qualifier can be a
// variable or a class name, code generation decides which.
type SubroutineCallTerm struct {
	Qualifier string
	Name      string
	Arguments []*ExpressionAst
	line      int
}

type SubExpressionTerm struct {
	Expr *ExpressionAst
	line int
}

type UnaryOpTerm struct {
	Op   OpAst
	Term TermAst
	line int
}

func (*IntegerConstantTerm) termNode() {}
func (*StringConstantTerm) termNode()  {}
func (*KeywordConstantTerm) termNode() {}
func (*VarNameTerm) termNode()         {}
func (*ArrayAccessTerm) termNode()     {}
func (*SubroutineCallTerm) termNode()  {}
func (*SubExpressionTerm) termNode()   {}
func (*UnaryOpTerm) termNode()         {}

func (t *IntegerConstantTerm) Line() int { return t.line }
func (t *StringConstantTerm) Line() int  { return t.line }
func (t *KeywordConstantTerm) Line() int { return t.line }
func (t *VarNameTerm) Line() int         { return t.line }
func (t *ArrayAccessTerm) Line() int     { return t.line }
func (t *SubroutineCallTerm) Line() int  { return t.line }
func (t *SubExpressionTerm) Line() int   { return t.line }
func (t *UnaryOpTerm) Line() int         { return t.line }
