package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mu-lang/mu/internal/diag"
	"github.com/mu-lang/mu/internal/lexer"
)

// ErrSyntax is matched by every SyntaxError via errors.Is.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the offending token and what was expected instead.
type SyntaxError struct {
	Code     diag.Code
	Message  string
	Text     string
	Kind     lexer.TokenType
	Pos      lexer.Position
	End      lexer.Position
	Expected []lexer.TokenType
	Filename string
}

func (e *SyntaxError) Error() string {
	loc := e.Pos.String()
	if e.Filename != "" {
		loc = e.Filename + ":" + loc
	}
	return fmt.Sprintf("syntax error at %s: %s", loc, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// AtEOF reports whether the input ended before the construct was complete.
func (e *SyntaxError) AtEOF() bool {
	return e.Kind == lexer.EOF
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *SyntaxError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Code,
		Message:  e.Message,
		Span: diag.Span{
			Filename:  e.Filename,
			Line:      e.Pos.Line,
			Column:    max(e.Pos.Column, 1),
			EndLine:   e.End.Line,
			EndColumn: e.End.Column,
		},
	}

	if len(e.Expected) > 0 {
		d = d.WithLabel("expected " + describeKinds(e.Expected))
	}
	for _, kind := range e.Expected {
		if kind == lexer.COLON {
			d = d.WithHelp("block headers end with ':'")
		}
	}
	return d
}

// unexpected reports the current token when one of expected was required.
func (p *Parser) unexpected(expected ...lexer.TokenType) error {
	tok := p.cur()
	code := diag.CodeParseUnexpectedToken
	msg := fmt.Sprintf("expected %s, found %s", describeKinds(expected), describeToken(tok))
	return p.errorAt(tok, code, msg, expected)
}

// errorAt builds a SyntaxError for tok. Structural tokens have no width, and
// EOF is reported just past the last real token.
func (p *Parser) errorAt(tok lexer.Token, code diag.Code, msg string, expected []lexer.TokenType) error {
	pos, end := tok.Pos, tok.End
	if tok.Type == lexer.EOF {
		pos, end = p.lastEnd, p.lastEnd
	}
	return &SyntaxError{
		Code:     code,
		Message:  msg,
		Text:     tok.Text,
		Kind:     tok.Type,
		Pos:      pos,
		End:      end,
		Expected: expected,
		Filename: p.filename,
	}
}

func describeToken(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOL, lexer.EOF, lexer.INDENT, lexer.DEDENT:
		return describeKind(tok.Type)
	default:
		return fmt.Sprintf("'%s'", tok.Text)
	}
}

func describeKinds(kinds []lexer.TokenType) string {
	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = describeKind(kind)
	}
	return strings.Join(parts, " or ")
}

func describeKind(kind lexer.TokenType) string {
	switch kind {
	case lexer.EOL:
		return "end of line"
	case lexer.EOF:
		return "end of file"
	case lexer.INDENT:
		return "indented block"
	case lexer.DEDENT:
		return "dedent"
	case lexer.ID:
		return "identifier"
	case lexer.NUMBER:
		return "number"
	case lexer.STRING:
		return "string"
	case lexer.BOOL:
		return "boolean"
	case lexer.NONE:
		return "'null'"
	case lexer.COLON:
		return "':' at end of line"
	case lexer.TYPE_DECL:
		return "':'"
	}
	if s := string(kind); strings.ToUpper(s) == s && strings.ToLower(s) != s {
		return fmt.Sprintf("'%s'", strings.ToLower(s))
	}
	return fmt.Sprintf("'%s'", kind)
}
