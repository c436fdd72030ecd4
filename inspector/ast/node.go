package ast

// Kind identifies a syntax form, using ESTree type names
type Kind string

const (
	KindProgram           Kind = "Program"
	KindIdentifier        Kind = "Identifier"
	KindThisExpression    Kind = "ThisExpression"
	KindMemberExpression  Kind = "MemberExpression"
	KindCallExpression    Kind = "CallExpression"
	KindLogicalExpression Kind = "LogicalExpression"
	KindUnaryExpression   Kind = "UnaryExpression"
	KindIfStatement       Kind = "IfStatement"
	KindBlockStatement    Kind = "BlockStatement"
	KindFunction          Kind = "Function"
	KindLiteral           Kind = "Literal"
)

// Position represents a location in source; Line and Column are 1-based
type Position struct {
	Offset int `yaml:"offset" json:"offset"`
	Line   int `yaml:"line" json:"line"`
	Column int `yaml:"column" json:"column"`
}

// Span represents the source range of a node
type Span struct {
	Start Position `yaml:"start" json:"start"`
	End   Position `yaml:"end" json:"end"`
}

// Node is a syntax tree node. The set of implementations is closed to this package.
type Node interface {
	Kind() Kind
	// Parent returns the enclosing node, nil for the root
	Parent() Node
	Span() Span
	base() *nodeBase
}

type nodeBase struct {
	parent Node
	span   Span
}

func (b *nodeBase) Parent() Node    { return b.parent }
func (b *nodeBase) Span() Span      { return b.span }
func (b *nodeBase) base() *nodeBase { return b }

// Program is the tree root
type Program struct {
	nodeBase
	Body []Node
}

// Identifier is a plain name, including property names of member accesses
type Identifier struct {
	nodeBase
	Name string
}

// ThisExpression is the `this` keyword
type ThisExpression struct {
	nodeBase
}

// MemberExpression is `object.property` or, when Computed, `object[property]`
type MemberExpression struct {
	nodeBase
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

// CallExpression is `callee(arguments...)`
type CallExpression struct {
	nodeBase
	Callee    Node
	Arguments []Node
	Optional  bool
}

// LogicalExpression is `left && right`, `left || right` or `left ?? right`
type LogicalExpression struct {
	nodeBase
	Operator string
	Left     Node
	Right    Node
}

// UnaryExpression is a prefix operator applied to Argument
type UnaryExpression struct {
	nodeBase
	Operator string
	Argument Node
}

// IfStatement is `if (Test) Consequent else Alternate`; Alternate may be nil
type IfStatement struct {
	nodeBase
	Test       Node
	Consequent Node
	Alternate  Node
}

// BlockStatement is a braced statement list
type BlockStatement struct {
	nodeBase
	Body []Node
}

// FunctionForm distinguishes the syntactic forms introducing a function
type FunctionForm string

const (
	FunctionDeclaration FunctionForm = "FunctionDeclaration"
	FunctionExpression  FunctionForm = "FunctionExpression"
	ArrowFunction       FunctionForm = "ArrowFunctionExpression"
	MethodFunction      FunctionForm = "MethodDefinition"
)

// Function is any function-introducing form; Body is a BlockStatement or, for
// concise arrow functions, an expression
type Function struct {
	nodeBase
	Form      FunctionForm
	Name      *Identifier
	Params    []Node
	Body      Node
	Async     bool
	Generator bool
}

// Literal is a string, number, boolean, null, regex or template literal
type Literal struct {
	nodeBase
	Raw string
}

// Other holds any syntax form the detector does not inspect structurally
type Other struct {
	nodeBase
	Type     string
	Children []Node
}

func (*Program) Kind() Kind           { return KindProgram }
func (*Identifier) Kind() Kind        { return KindIdentifier }
func (*ThisExpression) Kind() Kind    { return KindThisExpression }
func (*MemberExpression) Kind() Kind  { return KindMemberExpression }
func (*CallExpression) Kind() Kind    { return KindCallExpression }
func (*LogicalExpression) Kind() Kind { return KindLogicalExpression }
func (*UnaryExpression) Kind() Kind   { return KindUnaryExpression }
func (*IfStatement) Kind() Kind       { return KindIfStatement }
func (*BlockStatement) Kind() Kind    { return KindBlockStatement }
func (*Function) Kind() Kind          { return KindFunction }
func (*Literal) Kind() Kind           { return KindLiteral }
func (o *Other) Kind() Kind           { return Kind(o.Type) }

// Attach sets parent and span of n; it is meant for tree builders
func Attach(n Node, parent Node, span Span) {
	b := n.base()
	b.parent = parent
	b.span = span
}

// SetParent rewires the parent of n
func SetParent(n Node, parent Node) {
	if n == nil {
		return
	}
	n.base().parent = parent
}
