package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
	StageDriver Stage = "driver"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerIllegalRune        Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerInconsistentIndent Code = "LEXER_INCONSISTENT_INDENT"
	CodeLexerUnknown            Code = "LEXER_UNKNOWN_ERROR"

	// Parser errors
	CodeParseUnexpectedToken     Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseExpectedExpression  Code = "PARSE_EXPECTED_EXPRESSION"
	CodeParseInvalidFunctionBody Code = "PARSE_INVALID_FUNCTION_BODY"
	CodeParseInvalidNumber       Code = "PARSE_INVALID_NUMBER"

	// Driver errors
	CodeDriverReadFailed Code = "DRIVER_READ_FAILED"
)

// Span represents a location in source code. Lines and columns are 1-based;
// EndLine/EndColumn are exclusive and may be zero when only a point is known.
type Span struct {
	Filename  string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Width returns the number of columns the span covers on its first line,
// never less than one.
func (s Span) Width() int {
	if s.EndLine != s.Line || s.EndColumn <= s.Column {
		return 1
	}
	return s.EndColumn - s.Column
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Label    string   // Optional label printed next to the underline
	Notes    []string // Additional notes to display
	Help     string   // Help text
}

// Error lets a diagnostic travel through error returns.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// WithFilename returns a copy of the diagnostic attributed to filename.
func (d Diagnostic) WithFilename(name string) Diagnostic {
	if d.Span.Filename == "" {
		d.Span.Filename = name
	}
	return d
}

// WithLabel returns a new diagnostic with the given underline label.
func (d Diagnostic) WithLabel(label string) Diagnostic {
	d.Label = label
	return d
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
