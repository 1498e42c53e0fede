package lexer

import (
	"errors"
	"testing"

	"github.com/mu-lang/mu/internal/diag"
)

type expectedToken struct {
	expectedType    TokenType
	expectedLiteral string
}

func assertTokens(t *testing.T, input string, tests []expectedToken, opts ...Option) []Token {
	t.Helper()

	toks := New(input, opts...).Tokenize()
	if len(toks) != len(tests) {
		t.Fatalf("token count wrong. expected=%d, got=%d (%v)", len(tests), len(toks), kinds(toks))
	}

	for i, tt := range tests {
		if toks[i].Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, toks[i].Type)
		}
		if toks[i].Text != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, toks[i].Text)
		}
	}
	return toks
}

func kinds(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestTokenize_Assignment(t *testing.T) {
	toks := assertTokens(t, "x = 1\n", []expectedToken{
		{ID, "x"},
		{ASSIGN, "="},
		{NUMBER, "1"},
		{EOL, ""},
		{EOF, ""},
	})

	if got, want := toks[2].Pos, (Position{Line: 1, Column: 5}); got != want {
		t.Fatalf("number position wrong. expected=%v, got=%v", want, got)
	}
	if got, want := toks[4].Pos, (Position{Line: 1, Column: 0}); got != want {
		t.Fatalf("eof position wrong. expected=%v, got=%v", want, got)
	}
}

func TestTokenize_Operators(t *testing.T) {
	assertTokens(t, "a == b != c >= d <= e < f > g += h -= i ^ j % k\n", []expectedToken{
		{ID, "a"}, {EQUIVALENCE, "=="},
		{ID, "b"}, {NOT_EQUAL, "!="},
		{ID, "c"}, {MORE_EQUAL, ">="},
		{ID, "d"}, {LESS_EQUAL, "<="},
		{ID, "e"}, {LESS_THAN, "<"},
		{ID, "f"}, {MORE_THAN, ">"},
		{ID, "g"}, {INCREMENT, "+="},
		{ID, "h"}, {DECREMENT, "-="},
		{ID, "i"}, {EXPO, "^"},
		{ID, "j"}, {MODULO, "%"},
		{ID, "k"},
		{EOL, ""},
		{EOF, ""},
	})
}

func TestTokenize_Keywords(t *testing.T) {
	assertTokens(t, "if else for in while return true false null and or not class struct\n", []expectedToken{
		{IF, "if"}, {ELSE, "else"}, {FOR, "for"}, {IN, "in"},
		{WHILE, "while"}, {RETURN, "return"},
		{BOOL, "true"}, {BOOL, "false"}, {NONE, "null"},
		{AND, "and"}, {OR, "or"}, {NOT, "not"},
		{CLASS, "class"}, {STRUCT, "struct"},
		{EOL, ""},
		{EOF, ""},
	})
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		first string
		next  TokenType
	}{
		{"3.14.5", "3.14", PERIOD},
		{"42", "42", EOL},
		{"7.", "7", EOL},
		{"1..10", "1", ELLIPSIS},
	}

	for i, tt := range tests {
		toks := New(tt.input).Tokenize()
		if toks[0].Type != NUMBER || toks[0].Text != tt.first {
			t.Fatalf("tests[%d] - first token wrong. expected=NUMBER(%q), got=%s(%q)",
				i, tt.first, toks[0].Type, toks[0].Text)
		}
		if toks[1].Type != tt.next {
			t.Fatalf("tests[%d] - second token wrong. expected=%q, got=%q", i, tt.next, toks[1].Type)
		}
	}
}

func TestTokenize_Generator(t *testing.T) {
	assertTokens(t, "[1, 2 .. 10]", []expectedToken{
		{LSQUARE, "["},
		{NUMBER, "1"},
		{COMMA, ","},
		{NUMBER, "2"},
		{ELLIPSIS, ".."},
		{NUMBER, "10"},
		{RSQUARE, "]"},
		{EOL, ""},
		{EOF, ""},
	})
}

func TestTokenize_Strings(t *testing.T) {
	toks := assertTokens(t, `s = "a b" + 'c\n'`, []expectedToken{
		{ID, "s"},
		{ASSIGN, "="},
		{STRING, "a b"},
		{PLUS, "+"},
		{STRING, `c\n`},
		{EOL, ""},
		{EOF, ""},
	})

	if got, want := toks[2].Span(), (Span{Start: Position{1, 5}, End: Position{1, 10}}); got != want {
		t.Fatalf("string span wrong. expected=%v, got=%v", want, got)
	}
}

func TestTokenize_ColonKinds(t *testing.T) {
	assertTokens(t, "f(a: int): int = a\nif a:  # open\n    b = 1\n", []expectedToken{
		{ID, "f"},
		{LPAREN, "("},
		{ID, "a"},
		{TYPE_DECL, ":"},
		{ID, "int"},
		{RPAREN, ")"},
		{TYPE_DECL, ":"},
		{ID, "int"},
		{ASSIGN, "="},
		{ID, "a"},
		{EOL, ""},
		{IF, "if"},
		{ID, "a"},
		{COLON, ":"},
		{EOL, ""},
		{INDENT, ""},
		{ID, "b"},
		{ASSIGN, "="},
		{NUMBER, "1"},
		{EOL, ""},
		{DEDENT, ""},
		{EOF, ""},
	})
}

func TestTokenize_IndentDedent(t *testing.T) {
	input := "a:\n    b:\n        c\n    d\ne\n"
	assertTokens(t, input, []expectedToken{
		{ID, "a"}, {COLON, ":"}, {EOL, ""},
		{INDENT, ""}, {ID, "b"}, {COLON, ":"}, {EOL, ""},
		{INDENT, ""}, {ID, "c"}, {EOL, ""},
		{DEDENT, ""}, {ID, "d"}, {EOL, ""},
		{DEDENT, ""}, {ID, "e"}, {EOL, ""},
		{EOF, ""},
	})
}

func TestTokenize_MultiLevelDedent(t *testing.T) {
	input := "a\n\tb\n\t\tc\nd\n"
	assertTokens(t, input, []expectedToken{
		{ID, "a"}, {EOL, ""},
		{INDENT, ""}, {ID, "b"}, {EOL, ""},
		{INDENT, ""}, {ID, "c"}, {EOL, ""},
		{DEDENT, ""}, {DEDENT, ""}, {ID, "d"}, {EOL, ""},
		{EOF, ""},
	})
}

func TestTokenize_IndentBalance(t *testing.T) {
	inputs := []string{
		"a\n    b\n        c\n",
		"a\n\t\t\tb\n\tc\n",
		"x:\n  y\n",
		"if a:\n    if b:\n        c = 1\n    else:\n        c = 2\n",
	}

	for i, input := range inputs {
		depth := 0
		for _, tok := range New(input).Tokenize() {
			switch tok.Type {
			case INDENT:
				depth++
			case DEDENT:
				depth--
			}
			if depth < 0 {
				t.Fatalf("inputs[%d] - indentation level went negative", i)
			}
		}
		if depth != 0 {
			t.Fatalf("inputs[%d] - unbalanced indentation. expected=0, got=%d", i, depth)
		}
	}
}

func TestTokenize_Comments(t *testing.T) {
	input := "a:\n    # inside\n    b # trailing\n# top\nc\n"
	assertTokens(t, input, []expectedToken{
		{ID, "a"}, {COLON, ":"}, {EOL, ""},
		{COMMENT, "# inside"},
		{INDENT, ""}, {ID, "b"}, {EOL, ""},
		{COMMENT, "# top"},
		{DEDENT, ""}, {ID, "c"}, {EOL, ""},
		{EOF, ""},
	})
}

func TestTokenize_LineNumbersSurviveBlankLines(t *testing.T) {
	toks := New("a\n\n   \nb\r\n").Tokenize()
	if toks[2].Text != "b" || toks[2].Pos.Line != 4 {
		t.Fatalf("expected b on line 4, got %q at %v", toks[2].Text, toks[2].Pos)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	toks := New("").Tokenize()
	if len(toks) != 1 || toks[0].Type != EOF || toks[0].Pos.Line != 1 {
		t.Fatalf("expected lone EOF on line 1, got %v", toks)
	}
}

func TestTokenize_LenientSkipsUnknown(t *testing.T) {
	toks, err := Tokenize("a @ b & \"open\n   c\n")
	if err != nil {
		t.Fatalf("unexpected error in lenient mode: %v", err)
	}
	assertKinds(t, toks, ID, ID, STRING, EOL, ID, EOL, EOF)
}

func TestTokenize_SpacesPerIndent(t *testing.T) {
	toks := New("a\n  b\n", WithSpacesPerIndent(2)).Tokenize()
	assertKinds(t, toks, ID, EOL, INDENT, ID, EOL, DEDENT, EOF)
}

func TestTokenize_SpacesBeforeTabLenient(t *testing.T) {
	toks, err := Tokenize("if a:\n  \tx = 1\n")
	if err != nil {
		t.Fatalf("lenient lexing must not fail: %v", err)
	}
	assertKinds(t, toks, IF, ID, COLON, EOL, INDENT, ID, ASSIGN, NUMBER, EOL, DEDENT, EOF)
}

func TestTokenize_StrictErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  LexerErrorKind
		code  diag.Code
		pos   Position
	}{
		{"a @ b\n", ErrIllegalRune, diag.CodeLexerIllegalRune, Position{1, 3}},
		{"s = 'open\n", ErrUnterminatedString, diag.CodeLexerUnterminatedString, Position{1, 5}},
		{"a\n   b\n", ErrInconsistentIndent, diag.CodeLexerInconsistentIndent, Position{2, 1}},
		{"a\n\t  b\n", ErrInconsistentIndent, diag.CodeLexerInconsistentIndent, Position{2, 1}},
		{"if a:\n  \tx = 1\n", ErrInconsistentIndent, diag.CodeLexerInconsistentIndent, Position{2, 1}},
	}

	for i, tt := range tests {
		_, err := Tokenize(tt.input, WithStrict(true))
		if err == nil {
			t.Fatalf("tests[%d] - expected error", i)
		}
		if !errors.Is(err, ErrLexical) {
			t.Fatalf("tests[%d] - expected ErrLexical, got %v", i, err)
		}

		var lexErr LexerError
		if !errors.As(err, &lexErr) {
			t.Fatalf("tests[%d] - expected LexerError, got %T", i, err)
		}
		if lexErr.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%d, got=%d", i, tt.kind, lexErr.Kind)
		}
		if lexErr.Span.Start != tt.pos {
			t.Fatalf("tests[%d] - position wrong. expected=%v, got=%v", i, tt.pos, lexErr.Span.Start)
		}

		d := lexErr.ToDiagnostic()
		if d.Code != tt.code || d.Stage != diag.StageLexer || d.Span.Line != tt.pos.Line {
			t.Fatalf("tests[%d] - diagnostic wrong: %+v", i, d)
		}
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("one\n\n\t\ntwo\r\nthree")
	want := []Line{{1, "one"}, {4, "two"}, {5, "three"}}
	if len(lines) != len(want) {
		t.Fatalf("line count wrong. expected=%d, got=%d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("lines[%d] wrong. expected=%+v, got=%+v", i, want[i], lines[i])
		}
	}
}

func assertKinds(t *testing.T, toks []Token, want ...TokenType) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("token count wrong. expected=%v, got=%v", want, kinds(toks))
	}
	for i := range want {
		if toks[i].Type != want[i] {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, want[i], toks[i].Type)
		}
	}
}
