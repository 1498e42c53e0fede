package frontend_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mu-lang/mu/internal/config"
	"github.com/mu-lang/mu/internal/diag"
	"github.com/mu-lang/mu/internal/frontend"
	"github.com/mu-lang/mu/internal/lexer"
	"github.com/mu-lang/mu/internal/logging"
	"github.com/mu-lang/mu/internal/parser"
)

func newPipeline(t *testing.T, cfg *config.Config) (*frontend.Pipeline, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelDebug, Format: "text", Output: &logs})
	return frontend.New(cfg, logger), &logs
}

func TestParseFileParsesFixture(t *testing.T) {
	p, logs := newPipeline(t, nil)

	res, err := p.ParseFile(filepath.Join("testdata", "sample.mu"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Fatalf("expected uuid run id, got %q", res.RunID)
	}
	if res.Program == nil || len(res.Program.Statements) == 0 {
		t.Fatalf("expected parsed statements")
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics)
	}

	if !json.Valid([]byte(res.JSON(0))) {
		t.Fatalf("expected valid JSON dump")
	}

	out := logs.String()
	for _, want := range []string{"run=" + res.RunID, "Lexing complete", "Parsing complete"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected logs to contain %q, got:\n%s", want, out)
		}
	}
}

func TestParseSyntaxError(t *testing.T) {
	p, _ := newPipeline(t, nil)

	res, err := p.Parse("bad.mu", "x = \n")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "bad.mu: ") {
		t.Fatalf("expected filename prefix, got %q", err.Error())
	}
	if res.Program != nil {
		t.Fatalf("expected no program on failure")
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Span.Filename != "bad.mu" {
		t.Fatalf("expected one diagnostic for bad.mu, got %+v", res.Diagnostics)
	}
	if res.Diagnostics[0].Code != diag.CodeParseExpectedExpression {
		t.Fatalf("unexpected code %s", res.Diagnostics[0].Code)
	}
}

func TestStrictLexing(t *testing.T) {
	cfg := config.Default()
	cfg.Lexer.Strict = true
	p, _ := newPipeline(t, cfg)

	res, err := p.Tokenize("odd.mu", "a @ b\n")
	if !errors.Is(err, lexer.ErrLexical) {
		t.Fatalf("expected lexical error, got %v", err)
	}
	if res.Diagnostics[0].Stage != diag.StageLexer {
		t.Fatalf("expected lexer diagnostic, got %+v", res.Diagnostics[0])
	}

	lenient, _ := newPipeline(t, nil)
	if _, err := lenient.Tokenize("odd.mu", "a @ b\n"); err != nil {
		t.Fatalf("lenient lexing must skip unknown characters: %v", err)
	}
}

func TestParseFileMissing(t *testing.T) {
	p, _ := newPipeline(t, nil)

	res, err := p.ParseFile(filepath.Join(t.TempDir(), "nope.mu"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.CodeDriverReadFailed {
		t.Fatalf("expected read diagnostic, got %+v", res.Diagnostics)
	}
}

func TestTokenizeFile(t *testing.T) {
	p, _ := newPipeline(t, nil)

	res, err := p.TokenizeFile(filepath.Join("testdata", "sample.mu"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Program != nil {
		t.Fatalf("tokenizing must not parse")
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Type != lexer.EOF {
		t.Fatalf("expected EOF last, got %s", last.Type)
	}
}

func TestIncomplete(t *testing.T) {
	p, _ := newPipeline(t, nil)

	_, err := p.Parse("", "if a:\n")
	if !frontend.Incomplete(err) {
		t.Fatalf("expected block header without body to be incomplete: %v", err)
	}

	_, err = p.Parse("", "x = )\n")
	if frontend.Incomplete(err) {
		t.Fatalf("a misplaced token is not incomplete input")
	}
}

func TestRunIDsAreUnique(t *testing.T) {
	p, _ := newPipeline(t, nil)

	a, _ := p.Parse("", "x = 1\n")
	b, _ := p.Parse("", "x = 1\n")
	if a.RunID == b.RunID {
		t.Fatalf("expected distinct run ids")
	}
	if a.JSON(0) != b.JSON(0) {
		t.Fatalf("expected identical dumps for identical input")
	}
}
