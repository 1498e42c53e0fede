package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/mu-lang/mu/internal/diag"
)

// ErrLexical is matched by every LexerError via errors.Is.
var ErrLexical = errors.New("lexical error")

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
	ErrUnterminatedString
	ErrInconsistentIndent
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return fmt.Sprintf("lexical error at %s: %s", e.Span.Start, e.Message)
}

func (e LexerError) Unwrap() error {
	return ErrLexical
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrInconsistentIndent:
		return diag.CodeLexerInconsistentIndent
	default:
		return diag.CodeLexerUnknown
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Line:      e.Span.Start.Line,
			Column:    e.Span.Start.Column,
			EndLine:   e.Span.End.Line,
			EndColumn: e.Span.End.Column,
		},
	}
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithStrict turns silently skipped input into errors: unknown characters,
// unterminated strings and indentation that is not a whole number of levels.
func WithStrict(strict bool) Option {
	return func(l *Lexer) { l.strict = strict }
}

// WithSpacesPerIndent sets how many leading spaces make one indentation
// level. Values below 1 are ignored.
func WithSpacesPerIndent(n int) Option {
	return func(l *Lexer) {
		if n > 0 {
			l.spacesPerIndent = n
		}
	}
}

// Lexer represents the lexer state
type Lexer struct {
	lines           []Line
	strict          bool
	spacesPerIndent int

	level  int    // open indentation levels
	lineNo int    // number of the line being scanned
	text   []rune // line being scanned
	cur    int    // index into text

	tokens []Token
	Errors []LexerError
}

// New creates a lexer over src.
func New(src string, opts ...Option) *Lexer {
	l := &Lexer{
		lines:           SplitLines(src),
		spacesPerIndent: 4,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize is a convenience wrapper. The error is the first LexerError,
// which can only occur in strict mode.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	l := New(src, opts...)
	toks := l.Tokenize()
	if len(l.Errors) > 0 {
		return toks, l.Errors[0]
	}
	return toks, nil
}

// Tokenize scans every line and returns the full token stream, always
// terminated by EOF.
func (l *Lexer) Tokenize() []Token {
	l.tokens = nil
	l.Errors = nil
	l.level = 0

	for _, line := range l.lines {
		l.scanLine(line)
	}

	end := Position{Line: 1}
	if n := len(l.tokens); n > 0 {
		end = Position{Line: l.tokens[n-1].Pos.Line}
	}
	for ; l.level > 0; l.level-- {
		l.tokens = append(l.tokens, Token{Type: DEDENT, Pos: end, End: end})
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Pos: end, End: end})

	return l.tokens
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, start, end int) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    Span{Start: l.pos(start), End: l.pos(end)},
	})
}

// pos converts a rune index on the current line to a source position.
func (l *Lexer) pos(i int) Position {
	return Position{Line: l.lineNo, Column: i + 1}
}

func (l *Lexer) emit(kind TokenType, text string, start, end int) {
	l.tokens = append(l.tokens, Token{
		Type: kind,
		Text: text,
		Pos:  l.pos(start),
		End:  l.pos(end),
	})
}

func (l *Lexer) scanLine(line Line) {
	l.lineNo = line.Number
	l.text = []rune(line.Text)

	levels, width, partial := l.measureIndent()
	l.cur = width

	// A full-line comment leaves the indentation level untouched.
	if l.text[l.cur] == '#' {
		l.emit(COMMENT, strings.TrimSpace(string(l.text[l.cur:])), l.cur, len(l.text))
		return
	}

	if partial && l.strict {
		l.addError(ErrInconsistentIndent,
			fmt.Sprintf("indentation is not a multiple of %d spaces", l.spacesPerIndent), 0, width)
	}

	for ; l.level < levels; l.level++ {
		l.emit(INDENT, "", l.cur, l.cur)
	}
	for ; l.level > levels; l.level-- {
		l.emit(DEDENT, "", l.cur, l.cur)
	}

	last := l.scanContent()
	l.emit(EOL, "", last, last)
}

// measureIndent counts indentation levels on the current line. A tab is one
// level, as is every run of spacesPerIndent spaces. partial reports spaces
// that do not fill a level, whether they trail or precede a tab; they are
// dropped.
func (l *Lexer) measureIndent() (levels, width int, partial bool) {
	spaces := 0
	stray := false
	for width < len(l.text) {
		switch l.text[width] {
		case '\t':
			if spaces > 0 {
				stray = true
			}
			levels++
			spaces = 0
		case ' ':
			spaces++
			if spaces == l.spacesPerIndent {
				levels++
				spaces = 0
			}
		default:
			return levels, width, stray || spaces > 0
		}
		width++
	}
	return levels, width, stray || spaces > 0
}

// scanContent emits tokens for the rest of the line and returns the index
// just past the last significant character.
func (l *Lexer) scanContent() int {
	last := l.cur
	for l.cur < len(l.text) {
		ch := l.text[l.cur]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.cur++
			continue
		case ch == '#':
			return last
		case isLetter(ch):
			l.readIdentifier()
		case isDigit(ch):
			l.readNumber()
		case ch == '"' || ch == '\'':
			l.readString(ch)
		default:
			l.readOperator(ch)
		}
		last = l.cur
	}
	return last
}

func (l *Lexer) readIdentifier() {
	start := l.cur
	for l.cur < len(l.text) && isLetter(l.text[l.cur]) {
		l.cur++
	}
	text := string(l.text[start:l.cur])
	l.emit(LookupIdent(text), text, start, l.cur)
}

// readNumber scans digits with at most one decimal point. A '.' followed by
// another '.' belongs to an ellipsis and is left alone; a trailing '.' is
// consumed but not kept in the text.
func (l *Lexer) readNumber() {
	start := l.cur
	seenDot := false
	for l.cur < len(l.text) {
		ch := l.text[l.cur]
		if isDigit(ch) {
			l.cur++
			continue
		}
		if ch != '.' || seenDot || l.peekIs(l.cur+1, '.') {
			break
		}
		seenDot = true
		l.cur++
	}
	text := strings.TrimSuffix(string(l.text[start:l.cur]), ".")
	l.emit(NUMBER, text, start, l.cur)
}

// readString scans to the matching quote. There are no escape sequences.
func (l *Lexer) readString(quote rune) {
	start := l.cur
	l.cur++
	for l.cur < len(l.text) && l.text[l.cur] != quote {
		l.cur++
	}
	text := string(l.text[start+1 : l.cur])
	if l.cur >= len(l.text) {
		if l.strict {
			l.addError(ErrUnterminatedString, "unterminated string literal", start, l.cur)
		}
		l.emit(STRING, text, start, l.cur)
		return
	}
	l.cur++ // closing quote
	l.emit(STRING, text, start, l.cur)
}

func (l *Lexer) readOperator(ch rune) {
	start := l.cur
	if l.cur+1 < len(l.text) {
		pair := string(l.text[l.cur : l.cur+2])
		if kind, ok := doubleOperators[pair]; ok {
			l.cur += 2
			l.emit(kind, pair, start, l.cur)
			return
		}
	}

	kind, ok := singleOperators[ch]
	l.cur++
	if !ok {
		if l.strict {
			l.addError(ErrIllegalRune, fmt.Sprintf("illegal character %q", ch), start, l.cur)
		}
		return
	}
	if ch == ':' && l.restIsBlank() {
		kind = COLON
	}
	l.emit(kind, string(ch), start, l.cur)
}

// restIsBlank reports whether nothing but whitespace or a comment follows
// the cursor.
func (l *Lexer) restIsBlank() bool {
	for _, ch := range l.text[l.cur:] {
		switch ch {
		case ' ', '\t', '\r':
			continue
		case '#':
			return true
		default:
			return false
		}
	}
	return true
}

func (l *Lexer) peekIs(i int, ch rune) bool {
	return i < len(l.text) && l.text[i] == ch
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
