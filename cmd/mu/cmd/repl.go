package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/mu-lang/mu/internal/frontend"
)

const (
	historyFile = ".mu_history"
	promptMain  = "mu> "
	promptCont  = "... "
	replName    = "<repl>"
)

const replHelp = `Enter mu statements; the syntax tree is printed as JSON.
A line ending in ':' opens a block; finish it with an empty line.

Commands:
  :help         show this help
  :load <file>  parse a file and print its tree
  :quit         leave the REPL
`

// prompter is the part of *liner.State the read loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCmd(a *app) *cobra.Command {
	var history string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if history == "" {
				if home, err := os.UserHomeDir(); err == nil {
					history = filepath.Join(home, historyFile)
				}
			}

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			if f, err := os.Open(history); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}

			fmt.Fprintln(cmd.OutOrStdout(), "mu repl. Type :help for help.")
			a.runREPL(cmd, ln)

			if history != "" {
				if f, err := os.Create(history); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&history, "history", "", "history file (default ~/"+historyFile+")")
	return cmd
}

// runREPL reads chunks until EOF or :quit and prints each chunk's tree or
// diagnostics.
func (a *app) runREPL(cmd *cobra.Command, p prompter) {
	out := cmd.OutOrStdout()

	for {
		code, ok := a.readChunk(p)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			if done := a.handleCommand(cmd, code); done {
				return
			}
			p.AppendHistory(strings.TrimSpace(code))
			continue
		}

		res, err := a.pipeline.Parse(replName, code)
		if err != nil {
			a.report(cmd, res)
		} else {
			fmt.Fprintln(out, res.JSON(a.cfg.Output.Indent))
		}
		p.AppendHistory(strings.ReplaceAll(strings.TrimRight(code, "\n"), "\n", " "))
	}
}

// readChunk reads lines until they form a complete chunk. Once a line opens
// a block, reading continues until an empty line. Otherwise reading continues
// while the parser reports that input stopped mid-construct.
func (a *app) readChunk(p prompter) (string, bool) {
	var b strings.Builder
	inBlock := false

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if strings.TrimSpace(line) == "" {
			if b.Len() == 0 {
				return "", true
			}
			return b.String(), true
		}

		b.WriteString(line)
		b.WriteByte('\n')

		if opensBlock(line) {
			inBlock = true
		}
		if inBlock {
			continue
		}

		src := b.String()
		if _, err := a.pipeline.Parse(replName, src); frontend.Incomplete(err) {
			continue
		}
		return src, true
	}
}

// opensBlock reports whether line ends in a block header colon, ignoring a
// trailing comment.
func opensBlock(line string) bool {
	if i := strings.IndexByte(line, '#'); i >= 0 && !strings.ContainsAny(line[:i], `"'`) {
		line = line[:i]
	}
	return strings.HasSuffix(strings.TrimSpace(line), ":")
}

func (a *app) handleCommand(cmd *cobra.Command, line string) (exit bool) {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit":
		return true

	case ":help":
		fmt.Fprint(out, replHelp)

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: :load <file>")
			return false
		}
		res, err := a.pipeline.ParseFile(fields[1])
		if err != nil {
			a.report(cmd, res)
			return false
		}
		fmt.Fprintln(out, res.JSON(a.cfg.Output.Indent))

	default:
		fmt.Fprintf(out, "unknown command %s. Type :help for help.\n", fields[0])
	}
	return false
}
