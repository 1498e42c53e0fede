package parser

import (
	"github.com/mu-lang/mu/internal/ast"
	"github.com/mu-lang/mu/internal/lexer"
)

// parseBlock parses an indented run of statements. A block closed by end of
// input has no DEDENT to consume.
func (p *Parser) parseBlock() (*ast.StatementBlock, error) {
	indent, err := p.checkAndConsume(lexer.INDENT)
	if err != nil {
		return nil, err
	}

	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if p.curIs(lexer.DEDENT) {
		p.consume(1)
	}
	return ast.NewStatementBlock(stmts, p.spanFrom(indent.Pos)), nil
}

// parseBlockHeaderEnd consumes the `:` EOL that opens a block, then the block.
func (p *Parser) parseBlockHeaderEnd() (*ast.StatementBlock, error) {
	if _, err := p.checkAndConsume(lexer.COLON); err != nil {
		return nil, err
	}
	if _, err := p.checkAndConsume(lexer.EOL); err != nil {
		return nil, err
	}
	return p.parseBlock()
}

// parseIfStatement parses `if cond:` and its else arm. `else if` becomes a
// one-statement else block holding the nested IfStatement; a missing else
// becomes an empty block at the current token.
func (p *Parser) parseIfStatement() (ast.Stmt, error) {
	start := p.cur().Pos
	p.consume(1)

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockHeaderEnd()
	if err != nil {
		return nil, err
	}

	var els *ast.StatementBlock
	switch {
	case p.lookahead(lexer.ELSE, lexer.IF):
		p.consume(1)
		nested, err := p.parseIfStatement()
		if err != nil {
			return nil, err
		}
		els = ast.NewStatementBlock([]ast.Stmt{nested}, nested.Span())

	case p.curIs(lexer.ELSE):
		p.consume(1)
		els, err = p.parseBlockHeaderEnd()
		if err != nil {
			return nil, err
		}

	default:
		at := p.cur().Pos
		els = ast.NewStatementBlock(nil, lexer.Span{Start: at, End: at})
	}

	return ast.NewIfStatement(cond, then, els, p.spanFrom(start)), nil
}

func (p *Parser) parseWhileLoop() (ast.Stmt, error) {
	start := p.cur().Pos
	p.consume(1)

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockHeaderEnd()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(cond, body, p.spanFrom(start)), nil
}

// parseForLoop parses `for id[, id...] in iterable:`.
func (p *Parser) parseForLoop() (ast.Stmt, error) {
	start := p.cur().Pos
	p.consume(1)

	ids, err := p.parseBoundIdentifiers()
	if err != nil {
		return nil, err
	}
	if _, err := p.checkAndConsume(lexer.IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseIterableOrIdentifier()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockHeaderEnd()
	if err != nil {
		return nil, err
	}
	return ast.NewForLoop(ids, iterable, body, p.spanFrom(start)), nil
}

// parseBoundIdentifiers reads at least one identifier, continuing only while
// each is followed by a comma.
func (p *Parser) parseBoundIdentifiers() ([]*ast.Identifier, error) {
	var ids []*ast.Identifier
	for {
		tok, err := p.checkAndConsume(lexer.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, ast.NewIdentifier(tok.Text, tok.Span()))

		if !p.curIs(lexer.COMMA) {
			return ids, nil
		}
		p.consume(1)
	}
}
