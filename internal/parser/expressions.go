package parser

import (
	"fmt"
	"strconv"

	"github.com/mu-lang/mu/internal/ast"
	"github.com/mu-lang/mu/internal/diag"
	"github.com/mu-lang/mu/internal/lexer"
)

func (p *Parser) parseExpression() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryExpression(0, lhs)
}

// parseBinaryExpression implements precedence climbing. Equal precedence
// groups to the left; a tighter operator after the right operand is folded
// into it first.
func (p *Parser) parseBinaryExpression(minPrec int, lhs ast.Expr) (ast.Expr, error) {
	for {
		prec := p.checkPrecedence()
		if prec < minPrec {
			return lhs, nil
		}

		op := p.consume(1)
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		if prec < p.checkPrecedence() {
			rhs, err = p.parseBinaryExpression(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = ast.NewBinaryExpression(op, lhs, rhs, p.spanFrom(lhs.Span().Start))
	}
}

// parseUnary has no prefix operators yet.
func (p *Parser) parseUnary() (ast.Expr, error) {
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()

	switch {
	case p.lookahead(lexer.ID, lexer.LPAREN):
		return p.parseFunctionCall()
	case p.lookahead(lexer.ID, lexer.PERIOD):
		return p.parseAttributeReference()
	case p.lookahead(lexer.ID, lexer.LSQUARE):
		return p.parseSubscription()
	}

	switch tok.Type {
	case lexer.LPAREN:
		p.consume(1)
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.checkAndConsume(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.LSQUARE:
		return p.parseIterable()
	case lexer.LCURLY:
		return p.parseSet()
	case lexer.NUMBER:
		return p.parseNumericLiteral()
	case lexer.STRING:
		p.consume(1)
		return ast.NewStringLiteral(tok.Text, tok.Span()), nil
	case lexer.BOOL:
		p.consume(1)
		return ast.NewBooleanLiteral(tok.Text == "true", tok.Span()), nil
	case lexer.NONE:
		p.consume(1)
		return ast.NewNullLiteral(tok.Span()), nil
	case lexer.ID:
		p.consume(1)
		return ast.NewIdentifier(tok.Text, tok.Span()), nil
	default:
		return nil, p.errorAt(tok, diag.CodeParseExpectedExpression,
			"expected expression, found "+describeToken(tok), nil)
	}
}

func (p *Parser) parseNumericLiteral() (ast.Expr, error) {
	tok := p.cur()
	value, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return nil, p.errorAt(tok, diag.CodeParseInvalidNumber,
			fmt.Sprintf("invalid number literal '%s'", tok.Text), nil)
	}
	p.consume(1)
	return ast.NewNumericLiteral(value, tok.Span()), nil
}

// parseFunctionCall parses `name ( [expr, ...] )`.
func (p *Parser) parseFunctionCall() (ast.Expr, error) {
	name := p.cur()
	p.consume(2)

	args, err := p.parseExpressionList(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionCall(name.Text, args, p.spanFrom(name.Pos)), nil
}

// parseExpressionList parses comma-separated expressions up to and
// including the closing token.
func (p *Parser) parseExpressionList(closing lexer.TokenType) ([]ast.Expr, error) {
	var exprs []ast.Expr
	for !p.curIs(closing) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)

		if !p.curIs(lexer.COMMA) {
			break
		}
		p.consume(1)
	}
	if !p.curIs(closing) {
		return nil, p.unexpected(lexer.COMMA, closing)
	}
	p.consume(1)
	return exprs, nil
}

// parseAttributeReference parses `id.id[.id...]` right-recursively. The last
// link may be a subscription.
func (p *Parser) parseAttributeReference() (ast.Expr, error) {
	obj := p.cur()
	p.consume(2)
	object := ast.NewIdentifier(obj.Text, obj.Span())

	var attr ast.Value
	switch {
	case p.lookahead(lexer.ID, lexer.PERIOD):
		ref, err := p.parseAttributeReference()
		if err != nil {
			return nil, err
		}
		attr = ref.(ast.Value)
	case p.lookahead(lexer.ID, lexer.LSQUARE):
		sub, err := p.parseSubscription()
		if err != nil {
			return nil, err
		}
		attr = sub.(ast.Value)
	default:
		tok, err := p.checkAndConsume(lexer.ID)
		if err != nil {
			return nil, err
		}
		attr = ast.NewIdentifier(tok.Text, tok.Span())
	}

	return ast.NewAttributeReference(object, attr, p.spanFrom(obj.Pos)), nil
}

// parseSubscription parses `id[index]`, or `id[start:stop]` where either
// bound may be omitted.
func (p *Parser) parseSubscription() (ast.Expr, error) {
	tok := p.cur()
	p.consume(2)
	base := ast.NewIdentifier(tok.Text, tok.Span())

	var start ast.Expr
	if !p.curIs(lexer.TYPE_DECL) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		start = expr
	}

	if !p.curIs(lexer.TYPE_DECL) {
		if _, err := p.checkAndConsume(lexer.RSQUARE); err != nil {
			return nil, err
		}
		return ast.NewSubscription(base, start, p.spanFrom(tok.Pos)), nil
	}

	p.consume(1)
	var stop ast.Expr
	if !p.curIs(lexer.RSQUARE) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stop = expr
	}
	if _, err := p.checkAndConsume(lexer.RSQUARE); err != nil {
		return nil, err
	}
	return ast.NewSlice(base, start, stop, p.spanFrom(tok.Pos)), nil
}
