// Package frontend runs the mu pipeline: read, tokenize, parse, and convert
// failures into diagnostics.
package frontend

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/mu-lang/mu/internal/ast"
	"github.com/mu-lang/mu/internal/config"
	"github.com/mu-lang/mu/internal/diag"
	"github.com/mu-lang/mu/internal/lexer"
	"github.com/mu-lang/mu/internal/logging"
	"github.com/mu-lang/mu/internal/parser"
)

// Result is the outcome of one pipeline run. Program is nil unless parsing
// succeeded; Diagnostics holds the failure, if any.
type Result struct {
	RunID       string
	Filename    string
	Source      string
	Tokens      []lexer.Token
	Program     *ast.Program
	Diagnostics []diag.Diagnostic
}

// JSON renders the parsed program at the given indentation level.
func (r *Result) JSON(level int) string {
	if r.Program == nil {
		return ""
	}
	return r.Program.ToJSON(level)
}

// Pipeline carries the settings shared by every run.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a pipeline. A nil cfg uses defaults; a nil logger uses the
// global one.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Logger()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Config returns the pipeline settings.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// ParseFile loads path and parses it.
func (p *Pipeline) ParseFile(path string) (*Result, error) {
	src, res, err := p.readSource(path)
	if err != nil {
		return res, err
	}
	return p.Parse(path, src)
}

// TokenizeFile loads path and runs only the lexer.
func (p *Pipeline) TokenizeFile(path string) (*Result, error) {
	src, res, err := p.readSource(path)
	if err != nil {
		return res, err
	}
	return p.Tokenize(path, src)
}

// readSource returns a failed Result carrying a driver diagnostic when path
// cannot be read.
func (p *Pipeline) readSource(path string) (string, *Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		res := p.newResult(path, "")
		res.Diagnostics = append(res.Diagnostics, diag.Diagnostic{
			Stage:    diag.StageDriver,
			Severity: diag.SeverityError,
			Code:     diag.CodeDriverReadFailed,
			Message:  fmt.Sprintf("cannot read %s: %v", path, err),
		})
		return "", res, fmt.Errorf("read %s: %w", path, err)
	}
	return string(src), nil, nil
}

// Tokenize runs only the lexer.
func (p *Pipeline) Tokenize(name, src string) (*Result, error) {
	res := p.newResult(name, src)
	log := p.logger.With("run", res.RunID)

	if err := p.tokenize(res, log); err != nil {
		return res, err
	}
	return res, nil
}

// Parse tokenizes and parses src. name is used for diagnostics and logs.
func (p *Pipeline) Parse(name, src string) (*Result, error) {
	res := p.newResult(name, src)
	log := p.logger.With("run", res.RunID)

	if err := p.tokenize(res, log); err != nil {
		return res, err
	}

	logging.LogPhase(log, "parse")
	prog, err := parser.Parse(res.Tokens, parser.WithFilename(name))
	if err != nil {
		return res, p.fail(res, log, "parse", err)
	}
	res.Program = prog
	logging.LogParsing(log, name, ast.Count(prog))
	return res, nil
}

func (p *Pipeline) newResult(name, src string) *Result {
	return &Result{
		RunID:    uuid.New().String(),
		Filename: name,
		Source:   src,
	}
}

func (p *Pipeline) tokenize(res *Result, log *slog.Logger) error {
	logging.LogPhase(log, "lex")

	lx := lexer.New(res.Source, p.cfg.LexerOptions()...)
	res.Tokens = lx.Tokenize()
	if len(lx.Errors) > 0 {
		return p.fail(res, log, "lex", lx.Errors[0])
	}
	logging.LogLexing(log, res.Filename, len(res.Tokens))
	return nil
}

func (p *Pipeline) fail(res *Result, log *slog.Logger, phase string, err error) error {
	d, ok := Diagnostic(err)
	if !ok {
		d = diag.Diagnostic{Stage: diag.StageDriver, Severity: diag.SeverityError, Message: err.Error()}
	}
	d = d.WithFilename(res.Filename)
	res.Diagnostics = append(res.Diagnostics, d)

	logging.LogError(log, phase, res.Filename, d.Span.Line, d.Message)
	if res.Filename == "" {
		return err
	}
	return fmt.Errorf("%s: %w", res.Filename, err)
}

// Diagnostic extracts the diagnostic carried by a lexer or parser error.
func Diagnostic(err error) (diag.Diagnostic, bool) {
	var lexErr lexer.LexerError
	if errors.As(err, &lexErr) {
		return lexErr.ToDiagnostic(), true
	}
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.ToDiagnostic(), true
	}
	return diag.Diagnostic{}, false
}

// Incomplete reports whether err means the input stopped mid-construct, so
// more lines could complete it.
func Incomplete(err error) bool {
	var synErr *parser.SyntaxError
	return errors.As(err, &synErr) && synErr.AtEOF()
}
