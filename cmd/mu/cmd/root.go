package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mu-lang/mu/internal/config"
	"github.com/mu-lang/mu/internal/diag"
	"github.com/mu-lang/mu/internal/frontend"
	"github.com/mu-lang/mu/internal/logging"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("failed")

// app holds state shared by all subcommands for one invocation.
type app struct {
	cfgFile string
	verbose bool
	strict  bool

	cfg      *config.Config
	pipeline *frontend.Pipeline
}

// NewRootCmd builds the mu command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mu",
		Short: "mu language front end",
		Long: `mu tokenizes and parses mu source files.

Commands:
  tokens   - dump the token stream of a file
  parse    - print the syntax tree of a file as JSON
  check    - report syntax errors in one or more files
  repl     - parse input interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $MU_CONFIG, ./mu.toml or ./mu.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "report unknown characters, unterminated strings and partial indentation")

	root.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// setup loads configuration, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, path, err := config.LoadDiscovered(a.cfgFile, ".")
	if err != nil {
		return err
	}
	if a.strict {
		cfg.Lexer.Strict = true
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	logger := logging.Init(logging.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: a.logOutput(cmd),
	})
	if path != "" {
		logger.Debug("Loaded config", "path", path)
	}

	a.cfg = cfg
	a.pipeline = frontend.New(cfg, logger)
	return nil
}

// logOutput sends logs to stderr only with --verbose; diagnostics are the
// normal error channel.
func (a *app) logOutput(cmd *cobra.Command) io.Writer {
	if a.verbose {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}

// report prints the diagnostics of a failed run and returns errReported.
func (a *app) report(cmd *cobra.Command, res *frontend.Result) error {
	f := diag.NewFormatter(cmd.ErrOrStderr(), a.cfg.NoColor())
	if res.Filename != "" && res.Source != "" {
		f.AddSource(res.Filename, res.Source)
	}
	f.FormatAll(res.Diagnostics)
	return errReported
}
