package parser

import (
	"github.com/mu-lang/mu/internal/ast"
	"github.com/mu-lang/mu/internal/lexer"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename attributes syntax errors to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// precedences is keyed by operator text. Higher binds tighter.
var precedences = map[string]int{
	"^":   80,
	"*":   40,
	"/":   40,
	"%":   40,
	"+":   20,
	"-":   20,
	"and": 12,
	"or":  12,
	"not": 12,
	"in":  12,
	"==":  10,
	"!=":  10,
	">=":  10,
	"<=":  10,
	">":   10,
	"<":   10,
}

// Parser is a recursive descent parser over a complete token stream.
// Statements are chosen with fixed-width lookahead; expressions use
// precedence climbing. The first syntax error aborts the parse.
type Parser struct {
	tokens []lexer.Token
	pos    int

	// lastEnd is the end of the last non-structural token consumed; node
	// spans end here.
	lastEnd lexer.Position

	filename string
}

// New returns a parser over tokens. Comments are dropped and a missing EOF
// is appended, so the stream always ends in EOF.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	toks := make([]lexer.Token, 0, len(tokens)+1)
	for _, tok := range tokens {
		if tok.Type != lexer.COMMENT {
			toks = append(toks, tok)
		}
	}
	if len(toks) == 0 || toks[len(toks)-1].Type != lexer.EOF {
		end := lexer.Position{Line: 1}
		if len(toks) > 0 {
			end = lexer.Position{Line: toks[len(toks)-1].Pos.Line}
		}
		toks = append(toks, lexer.Token{Type: lexer.EOF, Pos: end, End: end})
	}

	return &Parser{
		tokens:   toks,
		lastEnd:  toks[0].Pos,
		filename: cfg.filename,
	}
}

// Parse tokens into a program.
func Parse(tokens []lexer.Token, opts ...Option) (*ast.Program, error) {
	return New(tokens, opts...).Parse()
}

// ParseString tokenizes src with default lexer settings and parses it.
func ParseString(src string, opts ...Option) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks, opts...)
}

// Parse parses the whole stream. On error no partial program is returned.
func (p *Parser) Parse() (*ast.Program, error) {
	start := p.cur().Pos
	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if !p.curIs(lexer.EOF) {
		return nil, p.unexpected(lexer.EOF)
	}
	return ast.NewProgram(stmts, lexer.Span{Start: start, End: p.lastEnd}), nil
}

// cur returns the token under examination; past the end it is EOF.
func (p *Parser) cur() lexer.Token {
	return p.peek(0)
}

func (p *Parser) peek(n int) lexer.Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) curIs(kind lexer.TokenType) bool {
	return p.cur().Type == kind
}

// lookahead reports whether the next len(kinds) tokens match kinds in order.
func (p *Parser) lookahead(kinds ...lexer.TokenType) bool {
	for i, kind := range kinds {
		if p.peek(i).Type != kind {
			return false
		}
	}
	return true
}

// consume advances past up to n tokens, never past EOF, and returns the
// text of the first one.
func (p *Parser) consume(n int) string {
	text := p.cur().Text
	for i := 0; i < n; i++ {
		tok := p.cur()
		if tok.Type == lexer.EOF {
			break
		}
		if !tok.IsStructural() {
			p.lastEnd = tok.End
		}
		p.pos++
	}
	return text
}

// checkAndConsume fails unless the current token is of kind, then consumes it.
func (p *Parser) checkAndConsume(kind lexer.TokenType) (lexer.Token, error) {
	tok := p.cur()
	if tok.Type != kind {
		return tok, p.unexpected(kind)
	}
	p.consume(1)
	return tok, nil
}

// checkPrecedence returns the binding power of the current token, or -1 if
// it is not a binary operator.
func (p *Parser) checkPrecedence() int {
	tok := p.cur()
	if tok.Type == lexer.STRING || tok.Type == lexer.ID {
		return -1
	}
	if prec, ok := precedences[tok.Text]; ok {
		return prec
	}
	return -1
}

// spanFrom closes a span at the last consumed token.
func (p *Parser) spanFrom(start lexer.Position) lexer.Span {
	return lexer.Span{Start: start, End: p.lastEnd}
}
