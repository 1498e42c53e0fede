package ast

import "github.com/mu-lang/mu/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Bare expressions are valid
// statements, so every Expr is also a Stmt.
type Expr interface {
	Stmt
	exprNode()
}

// Value represents an operand: identifiers, literals and references.
type Value interface {
	Expr
	valueNode()
}

// Iterable represents any bracketed or string value that can be looped over.
type Iterable interface {
	Value
	iterableNode()
}

// Program represents a parsed source file.
type Program struct {
	Statements []Stmt
	span       lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node.
func NewProgram(stmts []Stmt, span lexer.Span) *Program {
	return &Program{Statements: stmts, span: span}
}

// StatementBlock is an ordered, indented sequence of statements.
type StatementBlock struct {
	Statements []Stmt
	span       lexer.Span
}

// Span returns the block span.
func (b *StatementBlock) Span() lexer.Span { return b.span }

// NewStatementBlock constructs a statement block.
func NewStatementBlock(stmts []Stmt, span lexer.Span) *StatementBlock {
	return &StatementBlock{Statements: stmts, span: span}
}

func (*StatementBlock) stmtNode() {}

// Parameter is a function parameter with its textual type annotation.
type Parameter struct {
	Name string
	Type string
	span lexer.Span
}

// Span returns the parameter span.
func (p *Parameter) Span() lexer.Span { return p.span }

// NewParameter constructs a parameter node.
func NewParameter(name, typ string, span lexer.Span) *Parameter {
	return &Parameter{Name: name, Type: typ, span: span}
}

// FunctionPrototype is a function signature. ReturnType is empty when the
// signature carries no annotation.
type FunctionPrototype struct {
	Name       string
	Params     []*Parameter
	ReturnType string
	span       lexer.Span
}

// Span returns the prototype span.
func (p *FunctionPrototype) Span() lexer.Span { return p.span }

// NewFunctionPrototype constructs a function prototype.
func NewFunctionPrototype(name string, params []*Parameter, returnType string, span lexer.Span) *FunctionPrototype {
	return &FunctionPrototype{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		span:       span,
	}
}

func (*FunctionPrototype) stmtNode() {}

// FunctionDefinition pairs a prototype with its body. Body is either an
// Expr (inline form) or a *StatementBlock.
type FunctionDefinition struct {
	Prototype *FunctionPrototype
	Body      Stmt
	span      lexer.Span
}

// Span returns the definition span.
func (d *FunctionDefinition) Span() lexer.Span { return d.span }

// NewFunctionDefinition constructs a function definition.
func NewFunctionDefinition(proto *FunctionPrototype, body Stmt, span lexer.Span) *FunctionDefinition {
	return &FunctionDefinition{Prototype: proto, Body: body, span: span}
}

// InlineBody returns the body expression for the `= expr` form.
func (d *FunctionDefinition) InlineBody() (Expr, bool) {
	e, ok := d.Body.(Expr)
	return e, ok
}

// BlockBody returns the body block for the indented form.
func (d *FunctionDefinition) BlockBody() (*StatementBlock, bool) {
	b, ok := d.Body.(*StatementBlock)
	return b, ok
}

func (*FunctionDefinition) stmtNode() {}

// ReturnStatement returns a single expression.
type ReturnStatement struct {
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStatement) Span() lexer.Span { return s.span }

// NewReturnStatement constructs a return statement.
func NewReturnStatement(value Expr, span lexer.Span) *ReturnStatement {
	return &ReturnStatement{Value: value, span: span}
}

func (*ReturnStatement) stmtNode() {}

// ForLoop binds IDs to each element of Iterable.
type ForLoop struct {
	IDs      []*Identifier
	Iterable Value
	Body     *StatementBlock
	span     lexer.Span
}

// Span returns the loop span.
func (l *ForLoop) Span() lexer.Span { return l.span }

// NewForLoop constructs a for loop.
func NewForLoop(ids []*Identifier, iterable Value, body *StatementBlock, span lexer.Span) *ForLoop {
	return &ForLoop{IDs: ids, Iterable: iterable, Body: body, span: span}
}

func (*ForLoop) stmtNode() {}

// WhileLoop repeats Body while Condition holds.
type WhileLoop struct {
	Condition Expr
	Body      *StatementBlock
	span      lexer.Span
}

// Span returns the loop span.
func (l *WhileLoop) Span() lexer.Span { return l.span }

// NewWhileLoop constructs a while loop.
func NewWhileLoop(cond Expr, body *StatementBlock, span lexer.Span) *WhileLoop {
	return &WhileLoop{Condition: cond, Body: body, span: span}
}

func (*WhileLoop) stmtNode() {}

// Assignment binds Value to Target. Type is the optional annotation text.
type Assignment struct {
	Target string
	Type   string
	Value  Expr
	span   lexer.Span
}

// Span returns the assignment span.
func (a *Assignment) Span() lexer.Span { return a.span }

// NewAssignment constructs an assignment.
func NewAssignment(target, typ string, value Expr, span lexer.Span) *Assignment {
	return &Assignment{Target: target, Type: typ, Value: value, span: span}
}

func (*Assignment) stmtNode() {}

// IfStatement always has both blocks. An absent else arm is an empty block;
// `else if` is a block holding a single nested IfStatement.
type IfStatement struct {
	Condition Expr
	Then      *StatementBlock
	Else      *StatementBlock
	span      lexer.Span
}

// Span returns the statement span.
func (s *IfStatement) Span() lexer.Span { return s.span }

// NewIfStatement constructs an if statement.
func NewIfStatement(cond Expr, then, els *StatementBlock, span lexer.Span) *IfStatement {
	return &IfStatement{Condition: cond, Then: then, Else: els, span: span}
}

// ElseIf returns the nested IfStatement of an `else if` arm.
func (s *IfStatement) ElseIf() (*IfStatement, bool) {
	if s.Else == nil || len(s.Else.Statements) != 1 {
		return nil, false
	}
	nested, ok := s.Else.Statements[0].(*IfStatement)
	return nested, ok
}

func (*IfStatement) stmtNode() {}
