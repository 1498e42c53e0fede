package parser

import (
	"github.com/mu-lang/mu/internal/ast"
	"github.com/mu-lang/mu/internal/diag"
	"github.com/mu-lang/mu/internal/lexer"
)

// parseStatements parses until DEDENT or EOF, leaving that token current.
func (p *Parser) parseStatements() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.curIs(lexer.DEDENT) && !p.curIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.lookahead(lexer.ID, lexer.TYPE_DECL, lexer.ID, lexer.ASSIGN),
		p.lookahead(lexer.ID, lexer.ASSIGN):
		return p.parseAssignment()
	case p.lookahead(lexer.ID, lexer.INCREMENT), p.lookahead(lexer.ID, lexer.DECREMENT):
		return p.parseCompoundAssignment()
	case p.lookahead(lexer.ID, lexer.LPAREN):
		if p.checkIfFuncDef() {
			return p.parseFunctionDefinition()
		}
		return p.parseExpressionStatement()
	case p.curIs(lexer.RETURN):
		return p.parseReturnStatement()
	case p.curIs(lexer.IF):
		return p.parseIfStatement()
	case p.curIs(lexer.FOR):
		return p.parseForLoop()
	case p.curIs(lexer.WHILE):
		return p.parseWhileLoop()
	default:
		return p.parseExpressionStatement()
	}
}

// parseExpressionStatement parses a bare expression, which must end the line.
func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.checkAndConsume(lexer.EOL); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseAssignment parses `name [: type] = expr`.
func (p *Parser) parseAssignment() (ast.Stmt, error) {
	start := p.cur().Pos
	name := p.consume(1)

	typ := ""
	if p.curIs(lexer.TYPE_DECL) {
		p.consume(1)
		tok, err := p.checkAndConsume(lexer.ID)
		if err != nil {
			return nil, err
		}
		typ = tok.Text
	}

	if _, err := p.checkAndConsume(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	span := p.spanFrom(start)

	if _, err := p.checkAndConsume(lexer.EOL); err != nil {
		return nil, err
	}
	return ast.NewAssignment(name, typ, value, span), nil
}

// parseCompoundAssignment desugars `x += e` to `x = x + e`.
func (p *Parser) parseCompoundAssignment() (ast.Stmt, error) {
	target := p.cur()
	p.consume(1)
	op := p.consume(1)

	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	span := p.spanFrom(target.Pos)

	if _, err := p.checkAndConsume(lexer.EOL); err != nil {
		return nil, err
	}

	lhs := ast.NewIdentifier(target.Text, target.Span())
	value := ast.NewBinaryExpression(op[:1], lhs, rhs, span)
	return ast.NewAssignment(target.Text, "", value, span), nil
}

func (p *Parser) parseReturnStatement() (ast.Stmt, error) {
	start := p.cur().Pos
	p.consume(1)

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	span := p.spanFrom(start)

	if _, err := p.checkAndConsume(lexer.EOL); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(value, span), nil
}

// checkIfFuncDef scans from `ID (` to the matching `)` without consuming.
// It is a definition when the closing paren is followed by `=` or `:`, or
// ends the line and an indented block follows. The scan stops at EOL.
func (p *Parser) checkIfFuncDef() bool {
	depth := 0
	for i := 1; ; i++ {
		switch p.peek(i).Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return p.isDefinitionTail(i + 1)
			}
		case lexer.EOL, lexer.EOF:
			return false
		}
	}
}

func (p *Parser) isDefinitionTail(i int) bool {
	switch p.peek(i).Type {
	case lexer.ASSIGN, lexer.TYPE_DECL:
		return true
	case lexer.COLON:
		return p.peek(i+1).Type == lexer.EOL && p.peek(i+2).Type == lexer.INDENT
	case lexer.EOL:
		return p.peek(i+1).Type == lexer.INDENT
	default:
		return false
	}
}

// parseFunctionDefinition parses a prototype followed by `= expr` or an
// indented block.
func (p *Parser) parseFunctionDefinition() (ast.Stmt, error) {
	start := p.cur().Pos
	proto, err := p.parseFunctionPrototype()
	if err != nil {
		return nil, err
	}

	switch {
	case p.curIs(lexer.ASSIGN):
		p.consume(1)
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		span := p.spanFrom(start)
		if _, err := p.checkAndConsume(lexer.EOL); err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(proto, body, span), nil

	case p.curIs(lexer.COLON), p.curIs(lexer.EOL):
		if p.curIs(lexer.COLON) {
			p.consume(1)
		}
		if _, err := p.checkAndConsume(lexer.EOL); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(proto, body, p.spanFrom(start)), nil

	default:
		tok := p.cur()
		return nil, p.errorAt(tok, diag.CodeParseInvalidFunctionBody,
			"function body must be `= expression` or an indented block, found "+describeToken(tok),
			[]lexer.TokenType{lexer.ASSIGN, lexer.EOL})
	}
}

// parseFunctionPrototype parses `name ( [id[: type], ...] ) [: return_type]`.
func (p *Parser) parseFunctionPrototype() (*ast.FunctionPrototype, error) {
	start := p.cur().Pos
	name, err := p.checkAndConsume(lexer.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.checkAndConsume(lexer.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Parameter
	for !p.curIs(lexer.RPAREN) {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if !p.curIs(lexer.COMMA) {
			break
		}
		p.consume(1)
	}
	if _, err := p.checkAndConsume(lexer.RPAREN); err != nil {
		return nil, err
	}

	returnType := ""
	if p.curIs(lexer.TYPE_DECL) {
		p.consume(1)
		tok, err := p.checkAndConsume(lexer.ID)
		if err != nil {
			return nil, err
		}
		returnType = tok.Text
	}

	return ast.NewFunctionPrototype(name.Text, params, returnType, p.spanFrom(start)), nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	name, err := p.checkAndConsume(lexer.ID)
	if err != nil {
		return nil, err
	}

	typ := ""
	if p.curIs(lexer.TYPE_DECL) {
		p.consume(1)
		tok, err := p.checkAndConsume(lexer.ID)
		if err != nil {
			return nil, err
		}
		typ = tok.Text
	}
	return ast.NewParameter(name.Text, typ, p.spanFrom(name.Pos)), nil
}
