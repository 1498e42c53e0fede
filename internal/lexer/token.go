package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType string

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

// String renders the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p sorts strictly before o by (line, column).
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Span is a source range. End is exclusive.
type Span struct {
	Start Position
	End   Position
}

// Valid reports whether Start <= End.
func (s Span) Valid() bool {
	return !s.End.Before(s.Start)
}

// Token represents a lexical token
type Token struct {
	Type TokenType
	Text string   // literal text; string literals exclude their quotes
	Pos  Position // position of the first character
	End  Position // position just past the last character
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}

// IsStructural reports whether the token only carries layout information.
func (t Token) IsStructural() bool {
	switch t.Type {
	case INDENT, DEDENT, EOL, EOF, COMMENT:
		return true
	default:
		return false
	}
}

// Token type constants
const (
	// Structural tokens
	ID      TokenType = "ID"
	COMMENT TokenType = "COMMENT"
	INDENT  TokenType = "INDENT"
	DEDENT  TokenType = "DEDENT"
	EOL     TokenType = "EOL"
	EOF     TokenType = "EOF"

	// Literals
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"
	BOOL   TokenType = "BOOL"
	NONE   TokenType = "NONE"

	// Keywords
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"
	FOR    TokenType = "FOR"
	IN     TokenType = "IN"
	WHILE  TokenType = "WHILE"
	RETURN TokenType = "RETURN"
	CLASS  TokenType = "CLASS"
	STRUCT TokenType = "STRUCT"
	AND    TokenType = "AND"
	OR     TokenType = "OR"
	NOT    TokenType = "NOT"

	// Arithmetic operators
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	MULT      TokenType = "*"
	DIV       TokenType = "/"
	EXPO      TokenType = "^"
	MODULO    TokenType = "%"
	INCREMENT TokenType = "+="
	DECREMENT TokenType = "-="

	// Relational operators
	ASSIGN      TokenType = "="
	EQUIVALENCE TokenType = "=="
	NOT_EQUAL   TokenType = "!="
	LESS_THAN   TokenType = "<"
	MORE_THAN   TokenType = ">"
	LESS_EQUAL  TokenType = "<="
	MORE_EQUAL  TokenType = ">="

	// Punctuation
	COLON     TokenType = ":"         // block opener, last significant character of a line
	TYPE_DECL TokenType = "TYPE_DECL" // any other ':'
	COMMA     TokenType = ","
	PERIOD    TokenType = "."
	ELLIPSIS  TokenType = ".."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LSQUARE   TokenType = "["
	RSQUARE   TokenType = "]"
	LCURLY    TokenType = "{"
	RCURLY    TokenType = "}"
)

var keywords = map[string]TokenType{
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"in":     IN,
	"while":  WHILE,
	"return": RETURN,
	"true":   BOOL,
	"false":  BOOL,
	"null":   NONE,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"class":  CLASS,
	"struct": STRUCT,
}

// doubleOperators is consulted before singleOperators.
var doubleOperators = map[string]TokenType{
	"==": EQUIVALENCE,
	"!=": NOT_EQUAL,
	">=": MORE_EQUAL,
	"<=": LESS_EQUAL,
	"+=": INCREMENT,
	"-=": DECREMENT,
	"..": ELLIPSIS,
}

var singleOperators = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': MULT,
	'/': DIV,
	'^': EXPO,
	'%': MODULO,
	'=': ASSIGN,
	':': TYPE_DECL,
	',': COMMA,
	'.': PERIOD,
	'(': LPAREN,
	')': RPAREN,
	'[': LSQUARE,
	']': RSQUARE,
	'{': LCURLY,
	'}': RCURLY,
	'>': MORE_THAN,
	'<': LESS_THAN,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return ID
}
