package lexer

import "strings"

// Line is one logical source line. Number is the 1-based line number in the
// source text, so skipped blank lines still count.
type Line struct {
	Number int
	Text   string
}

// SplitLines breaks src on '\n' and drops lines that are blank after
// trimming. A trailing '\r' is stripped so CRLF input behaves like LF.
func SplitLines(src string) []Line {
	raw := strings.Split(src, "\n")
	lines := make([]Line, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: text})
	}
	return lines
}
