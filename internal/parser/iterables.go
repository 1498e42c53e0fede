package parser

import (
	"math"

	"github.com/mu-lang/mu/internal/ast"
	"github.com/mu-lang/mu/internal/diag"
	"github.com/mu-lang/mu/internal/lexer"
)

type bracketShape int

const (
	shapeLiteral bracketShape = iota
	shapeComprehension
	shapeGenerator
)

// scanBracket classifies the `[` under the cursor without consuming. Only
// tokens at the outermost depth count, and the scan stops at the matching
// `]` or the end of the line.
func (p *Parser) scanBracket() bracketShape {
	depth := 0
	for i := 0; ; i++ {
		switch p.peek(i).Type {
		case lexer.LSQUARE, lexer.LPAREN, lexer.LCURLY:
			depth++
		case lexer.RSQUARE, lexer.RPAREN, lexer.RCURLY:
			depth--
			if depth == 0 {
				return shapeLiteral
			}
		case lexer.FOR:
			if depth == 1 {
				return shapeComprehension
			}
		case lexer.ELLIPSIS:
			if depth == 1 {
				return shapeGenerator
			}
		case lexer.EOL, lexer.EOF:
			return shapeLiteral
		}
	}
}

func (p *Parser) parseIterable() (ast.Expr, error) {
	switch p.scanBracket() {
	case shapeComprehension:
		return p.parseListComprehension()
	case shapeGenerator:
		return p.parseGenerator()
	default:
		return p.parseIterableLiteral()
	}
}

func (p *Parser) parseIterableLiteral() (ast.Expr, error) {
	start := p.cur().Pos
	p.consume(1)

	elems, err := p.parseExpressionList(lexer.RSQUARE)
	if err != nil {
		return nil, err
	}
	return ast.NewIterableLiteral(elems, p.spanFrom(start)), nil
}

// parseGenerator parses `[start[, step] .. stop]`. The step defaults to 1.
func (p *Parser) parseGenerator() (ast.Expr, error) {
	open := p.cur()
	p.consume(1)

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	step := ast.Expr(ast.NewNumericLiteral(1, lexer.Span{Start: p.lastEnd, End: p.lastEnd}))
	if p.curIs(lexer.COMMA) {
		p.consume(1)
		step, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.checkAndConsume(lexer.ELLIPSIS); err != nil {
		return nil, err
	}
	stop, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.checkAndConsume(lexer.RSQUARE); err != nil {
		return nil, err
	}
	return ast.NewGenerator(first, step, stop, p.spanFrom(open.Pos)), nil
}

// parseListComprehension parses `[expr for ids in source [if filter]]`. The
// filter defaults to true.
func (p *Parser) parseListComprehension() (ast.Expr, error) {
	open := p.cur()
	p.consume(1)

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.checkAndConsume(lexer.FOR); err != nil {
		return nil, err
	}
	ids, err := p.parseBoundIdentifiers()
	if err != nil {
		return nil, err
	}
	if _, err := p.checkAndConsume(lexer.IN); err != nil {
		return nil, err
	}
	source, err := p.parseIterableOrIdentifier()
	if err != nil {
		return nil, err
	}

	filter := ast.Expr(ast.NewBooleanLiteral(true, lexer.Span{Start: p.lastEnd, End: p.lastEnd}))
	if p.curIs(lexer.IF) {
		p.consume(1)
		filter, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.checkAndConsume(lexer.RSQUARE); err != nil {
		return nil, err
	}
	return ast.NewListComprehension(body, ids, source, filter, p.spanFrom(open.Pos)), nil
}

// parseIterableOrIdentifier parses the source of a loop or comprehension.
func (p *Parser) parseIterableOrIdentifier() (ast.Value, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.LSQUARE, lexer.LCURLY, lexer.STRING, lexer.ID:
		expr, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(ast.Value); ok {
			return v, nil
		}
		return nil, p.errorAt(tok, diag.CodeParseUnexpectedToken,
			"expected an iterable or identifier, found a function call", nil)
	default:
		return nil, p.errorAt(tok, diag.CodeParseUnexpectedToken,
			"expected an iterable or identifier, found "+describeToken(tok),
			[]lexer.TokenType{lexer.LSQUARE, lexer.ID})
	}
}

// parseSet parses `{expr, ...}`.
func (p *Parser) parseSet() (ast.Expr, error) {
	start := p.cur().Pos
	p.consume(1)

	elems, err := p.parseExpressionList(lexer.RCURLY)
	if err != nil {
		return nil, err
	}
	return ast.NewSet(elems, elementType(elems), p.spanFrom(start)), nil
}

// elementType derives a set's element type from its literal elements.
// Anything other than uniform literals is a user type.
func elementType(elems []ast.Expr) ast.TypeDef {
	if len(elems) == 0 {
		return ast.TypeVoid
	}

	var kind ast.TypeDef
	for i, elem := range elems {
		var t ast.TypeDef
		switch e := elem.(type) {
		case *ast.NumericLiteral:
			t = ast.TypeInt64
			if e.Value != math.Trunc(e.Value) {
				t = ast.TypeFloat64
			}
		case *ast.StringLiteral:
			t = ast.TypeString
		case *ast.BooleanLiteral:
			t = ast.TypeBoolean
		default:
			return ast.TypeUser
		}

		switch {
		case i == 0:
			kind = t
		case kind == t:
		case isNumeric(kind) && isNumeric(t):
			kind = ast.TypeFloat64
		default:
			return ast.TypeUser
		}
	}
	return kind
}

func isNumeric(t ast.TypeDef) bool {
	return t == ast.TypeInt64 || t == ast.TypeFloat64
}
