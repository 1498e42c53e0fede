package ast

import "github.com/mu-lang/mu/internal/lexer"

// TypeDef is the element type of a Set.
type TypeDef int

const (
	TypeFloat64 TypeDef = iota
	TypeInt64
	TypeString
	TypeBoolean
	TypeVoid
	TypeUser
)

func (t TypeDef) String() string {
	switch t {
	case TypeFloat64:
		return "float64"
	case TypeInt64:
		return "int64"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeVoid:
		return "void"
	default:
		return "user"
	}
}

type StringLiteral struct {
	Value string
	span  lexer.Span
}

// Span returns the literal span.
func (s *StringLiteral) Span() lexer.Span { return s.span }

// NewStringLiteral constructs a string literal.
func NewStringLiteral(value string, span lexer.Span) *StringLiteral {
	return &StringLiteral{Value: value, span: span}
}

func (*StringLiteral) stmtNode()     {}
func (*StringLiteral) exprNode()     {}
func (*StringLiteral) valueNode()    {}
func (*StringLiteral) iterableNode() {}

// IterableLiteral is a bracketed list of expressions: `[a, b, c]`.
type IterableLiteral struct {
	Elements []Expr
	span     lexer.Span
}

// Span returns the literal span.
func (l *IterableLiteral) Span() lexer.Span { return l.span }

// NewIterableLiteral constructs an iterable literal.
func NewIterableLiteral(elems []Expr, span lexer.Span) *IterableLiteral {
	return &IterableLiteral{Elements: elems, span: span}
}

func (*IterableLiteral) stmtNode()     {}
func (*IterableLiteral) exprNode()     {}
func (*IterableLiteral) valueNode()    {}
func (*IterableLiteral) iterableNode() {}

// Slice is `base[start:stop]`. Either bound may be nil.
type Slice struct {
	Base  *Identifier
	Start Expr
	Stop  Expr
	span  lexer.Span
}

// Span returns the slice span.
func (s *Slice) Span() lexer.Span { return s.span }

// NewSlice constructs a slice.
func NewSlice(base *Identifier, start, stop Expr, span lexer.Span) *Slice {
	return &Slice{Base: base, Start: start, Stop: stop, span: span}
}

func (*Slice) stmtNode()     {}
func (*Slice) exprNode()     {}
func (*Slice) valueNode()    {}
func (*Slice) iterableNode() {}

// List is a list of names. The grammar never produces one.
type List struct {
	Elements []string
	span     lexer.Span
}

// Span returns the list span.
func (l *List) Span() lexer.Span { return l.span }

// NewList constructs a list.
func NewList(elems []string, span lexer.Span) *List {
	return &List{Elements: elems, span: span}
}

func (*List) stmtNode()     {}
func (*List) exprNode()     {}
func (*List) valueNode()    {}
func (*List) iterableNode() {}

// Set is `{a, b, c}`.
type Set struct {
	Elements []Expr
	ElemType TypeDef
	span     lexer.Span
}

// Span returns the set span.
func (s *Set) Span() lexer.Span { return s.span }

// NewSet constructs a set.
func NewSet(elems []Expr, elemType TypeDef, span lexer.Span) *Set {
	return &Set{Elements: elems, ElemType: elemType, span: span}
}

func (*Set) stmtNode()     {}
func (*Set) exprNode()     {}
func (*Set) valueNode()    {}
func (*Set) iterableNode() {}

// Generator is `[start, step .. stop]`; Step is NumericLiteral(1) when
// omitted.
type Generator struct {
	Start Expr
	Step  Expr
	Stop  Expr
	span  lexer.Span
}

// Span returns the generator span.
func (g *Generator) Span() lexer.Span { return g.span }

// NewGenerator constructs a generator.
func NewGenerator(start, step, stop Expr, span lexer.Span) *Generator {
	return &Generator{Start: start, Step: step, Stop: stop, span: span}
}

func (*Generator) stmtNode()     {}
func (*Generator) exprNode()     {}
func (*Generator) valueNode()    {}
func (*Generator) iterableNode() {}

// ListComprehension is `[body for ids in source if filter]`; Filter is
// BooleanLiteral(true) when omitted.
type ListComprehension struct {
	Body   Expr
	IDs    []*Identifier
	Source Value
	Filter Expr
	span   lexer.Span
}

// Span returns the comprehension span.
func (c *ListComprehension) Span() lexer.Span { return c.span }

// NewListComprehension constructs a list comprehension.
func NewListComprehension(body Expr, ids []*Identifier, source Value, filter Expr, span lexer.Span) *ListComprehension {
	return &ListComprehension{Body: body, IDs: ids, Source: source, Filter: filter, span: span}
}

func (*ListComprehension) stmtNode()     {}
func (*ListComprehension) exprNode()     {}
func (*ListComprehension) valueNode()    {}
func (*ListComprehension) iterableNode() {}
