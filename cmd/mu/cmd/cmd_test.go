package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mu-lang/mu/internal/config"
	"github.com/mu-lang/mu/internal/frontend"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestTokensCommand(t *testing.T) {
	out, _, err := runCmd(t, "tokens", fixture("ok.mu"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	expected := []string{
		"1:1\tID\t\"x\"",
		"1:3\t=\t\"=\"",
		"1:5\tNUMBER\t\"1\"",
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Fatalf("lines[%d] - expected=%q, got=%q", i, want, lines[i])
		}
	}
	if !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Fatalf("expected EOF last, got %q", lines[len(lines)-1])
	}
}

func TestParseCommand(t *testing.T) {
	out, stderr, err := runCmd(t, "parse", fixture("ok.mu"))
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stderr)
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("expected JSON, got:\n%s", out)
	}
	for _, want := range []string{`"ifblock"`, `"x"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %s, got:\n%s", want, out)
		}
	}
}

func TestParseCommandReportsSyntaxError(t *testing.T) {
	out, stderr, err := runCmd(t, "parse", fixture("bad.mu"))
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output on failure, got %q", out)
	}
	for _, want := range []string{
		"error[PARSE_UNEXPECTED_TOKEN]",
		"expected ':' at end of line",
		fixture("bad.mu") + ":2:",
		"if x > 0",
	} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("expected stderr to contain %q, got:\n%s", want, stderr)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	out, stderr, err := runCmd(t, "check", fixture("ok.mu"), fixture("bad.mu"))
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if want := "ok " + fixture("ok.mu") + " (2 statements)"; !strings.Contains(out, want) {
		t.Fatalf("expected %q in output, got %q", want, out)
	}
	if !strings.Contains(stderr, "1 of 2 files failed") {
		t.Fatalf("expected summary, got:\n%s", stderr)
	}

	if _, _, err := runCmd(t, "check", fixture("ok.mu")); err != nil {
		t.Fatalf("expected clean check, got %v", err)
	}
}

func TestStrictFlag(t *testing.T) {
	if _, _, err := runCmd(t, "tokens", fixture("odd.mu")); err != nil {
		t.Fatalf("lenient lexing must skip unknown characters: %v", err)
	}

	_, stderr, err := runCmd(t, "--strict", "tokens", fixture("odd.mu"))
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if !strings.Contains(stderr, "error[LEXER_ILLEGAL_RUNE]") {
		t.Fatalf("expected lexer diagnostic, got:\n%s", stderr)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()

	strict := filepath.Join(dir, "mu.toml")
	if err := os.WriteFile(strict, []byte("[lexer]\nstrict = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCmd(t, "--config", strict, "tokens", fixture("odd.mu")); !errors.Is(err, errReported) {
		t.Fatalf("expected strict config to reject input, got %v", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("output:\n  color: sometimes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCmd(t, "--config", broken, "parse", fixture("ok.mu"))
	if err == nil || errors.Is(err, errReported) {
		t.Fatalf("expected config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerboseLogs(t *testing.T) {
	_, stderr, err := runCmd(t, "--verbose", "parse", fixture("ok.mu"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr, "Parsing complete") {
		t.Fatalf("expected debug logs, got:\n%s", stderr)
	}

	_, stderr, _ = runCmd(t, "parse", fixture("ok.mu"))
	if stderr != "" {
		t.Fatalf("expected quiet stderr without --verbose, got:\n%s", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "mu "+Version) || !strings.Contains(out, "Go version:") {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}

// fakePrompter replays scripted lines and records prompts and history.
type fakePrompter struct {
	lines   []string
	prompts []string
	history []string
}

func (f *fakePrompter) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakePrompter) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func newTestApp(t *testing.T) (*app, *cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Output.Color = "never"
	a := &app{cfg: cfg, pipeline: frontend.New(cfg, nil)}

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return a, cmd, &stdout, &stderr
}

func TestREPL(t *testing.T) {
	a, cmd, stdout, stderr := newTestApp(t)
	p := &fakePrompter{lines: []string{
		"x = 1",
		"if x:",
		"    y = 2",
		"",
		":help",
		"z = ",
		":quit",
		"never = 1",
	}}

	a.runREPL(cmd, p)

	if len(p.lines) != 1 {
		t.Fatalf("expected :quit to stop reading, %d lines left", len(p.lines))
	}
	expectedPrompts := []string{promptMain, promptMain, promptCont, promptCont, promptMain, promptMain, promptMain}
	for i, want := range expectedPrompts {
		if p.prompts[i] != want {
			t.Fatalf("prompts[%d] - expected=%q, got=%q", i, want, p.prompts[i])
		}
	}

	out := stdout.String()
	for _, want := range []string{`"ifblock"`, `"y"`, ":load <file>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected stdout to contain %q, got:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr.String(), "error[PARSE_EXPECTED_EXPRESSION]") {
		t.Fatalf("expected diagnostic for incomplete assignment, got:\n%s", stderr.String())
	}

	expectedHistory := []string{"x = 1", "if x:     y = 2", ":help", "z = "}
	if len(p.history) != len(expectedHistory) {
		t.Fatalf("history wrong. expected=%q, got=%q", expectedHistory, p.history)
	}
	for i, want := range expectedHistory {
		if p.history[i] != want {
			t.Fatalf("history[%d] - expected=%q, got=%q", i, want, p.history[i])
		}
	}
}

func TestREPLEndsAtEOF(t *testing.T) {
	a, cmd, stdout, _ := newTestApp(t)
	p := &fakePrompter{lines: []string{"if x:", "    y = 2"}}

	a.runREPL(cmd, p)

	if !strings.Contains(stdout.String(), `"ifblock"`) {
		t.Fatalf("expected pending block to be parsed at EOF, got:\n%s", stdout.String())
	}
}

func TestREPLLoad(t *testing.T) {
	a, cmd, stdout, stderr := newTestApp(t)
	p := &fakePrompter{lines: []string{":load " + fixture("ok.mu"), ":load", ":frobnicate"}}

	a.runREPL(cmd, p)

	out := stdout.String()
	for _, want := range []string{`"ifblock"`, "usage: :load <file>", "unknown command :frobnicate"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected stdout to contain %q, got:\n%s", want, out)
		}
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", stderr.String())
	}
}

func TestOpensBlock(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"if x:", true},
		{"while y > 0:   # loop", true},
		{"x: int = 1", false},
		{"s = 'a:'", false},
		{"", false},
	}

	for i, tt := range tests {
		if got := opensBlock(tt.line); got != tt.want {
			t.Fatalf("tests[%d] - opensBlock(%q) expected=%t, got=%t", i, tt.line, tt.want, got)
		}
	}
}
