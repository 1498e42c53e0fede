package ast

import "github.com/mu-lang/mu/internal/lexer"

// BinaryExpression applies Operator to LHS and RHS.
type BinaryExpression struct {
	LHS      Expr
	RHS      Expr
	Operator string
	span     lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpression) Span() lexer.Span { return e.span }

// NewBinaryExpression constructs a binary expression.
func NewBinaryExpression(op string, lhs, rhs Expr, span lexer.Span) *BinaryExpression {
	return &BinaryExpression{LHS: lhs, RHS: rhs, Operator: op, span: span}
}

func (*BinaryExpression) stmtNode() {}
func (*BinaryExpression) exprNode() {}

// FunctionCall calls Name with positional arguments.
type FunctionCall struct {
	Name string
	Args []Expr
	span lexer.Span
}

// Span returns the call span.
func (c *FunctionCall) Span() lexer.Span { return c.span }

// NewFunctionCall constructs a function call.
func NewFunctionCall(name string, args []Expr, span lexer.Span) *FunctionCall {
	return &FunctionCall{Name: name, Args: args, span: span}
}

func (*FunctionCall) stmtNode() {}
func (*FunctionCall) exprNode() {}

// Identifier references a name.
type Identifier struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Identifier) Span() lexer.Span { return i.span }

// NewIdentifier constructs an identifier.
func NewIdentifier(name string, span lexer.Span) *Identifier {
	return &Identifier{Name: name, span: span}
}

func (*Identifier) stmtNode()  {}
func (*Identifier) exprNode()  {}
func (*Identifier) valueNode() {}

// NumericLiteral holds every number as a float64.
type NumericLiteral struct {
	Value float64
	span  lexer.Span
}

// Span returns the literal span.
func (n *NumericLiteral) Span() lexer.Span { return n.span }

// NewNumericLiteral constructs a numeric literal.
func NewNumericLiteral(value float64, span lexer.Span) *NumericLiteral {
	return &NumericLiteral{Value: value, span: span}
}

func (*NumericLiteral) stmtNode()  {}
func (*NumericLiteral) exprNode()  {}
func (*NumericLiteral) valueNode() {}

type BooleanLiteral struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (b *BooleanLiteral) Span() lexer.Span { return b.span }

// NewBooleanLiteral constructs a boolean literal.
func NewBooleanLiteral(value bool, span lexer.Span) *BooleanLiteral {
	return &BooleanLiteral{Value: value, span: span}
}

func (*BooleanLiteral) stmtNode()  {}
func (*BooleanLiteral) exprNode()  {}
func (*BooleanLiteral) valueNode() {}

// NullLiteral is the `null` keyword.
type NullLiteral struct {
	span lexer.Span
}

// Span returns the literal span.
func (n *NullLiteral) Span() lexer.Span { return n.span }

// NewNullLiteral constructs a null literal.
func NewNullLiteral(span lexer.Span) *NullLiteral {
	return &NullLiteral{span: span}
}

func (*NullLiteral) stmtNode()  {}
func (*NullLiteral) exprNode()  {}
func (*NullLiteral) valueNode() {}

// Subscription indexes Base: `base[index]`.
type Subscription struct {
	Base  *Identifier
	Index Expr
	span  lexer.Span
}

// Span returns the subscription span.
func (s *Subscription) Span() lexer.Span { return s.span }

// NewSubscription constructs a subscription.
func NewSubscription(base *Identifier, index Expr, span lexer.Span) *Subscription {
	return &Subscription{Base: base, Index: index, span: span}
}

func (*Subscription) stmtNode()  {}
func (*Subscription) exprNode()  {}
func (*Subscription) valueNode() {}

// AttributeReference is right-recursive: a.b.c is
// AttributeReference(a, AttributeReference(b, c)).
type AttributeReference struct {
	Object    *Identifier
	Attribute Value
	span      lexer.Span
}

// Span returns the reference span.
func (r *AttributeReference) Span() lexer.Span { return r.span }

// NewAttributeReference constructs an attribute reference.
func NewAttributeReference(object *Identifier, attr Value, span lexer.Span) *AttributeReference {
	return &AttributeReference{Object: object, Attribute: attr, span: span}
}

// Path flattens the chain into its names.
func (r *AttributeReference) Path() []string {
	path := []string{r.Object.Name}
	switch attr := r.Attribute.(type) {
	case *AttributeReference:
		path = append(path, attr.Path()...)
	case *Identifier:
		path = append(path, attr.Name)
	}
	return path
}

func (*AttributeReference) stmtNode()  {}
func (*AttributeReference) exprNode()  {}
func (*AttributeReference) valueNode() {}
