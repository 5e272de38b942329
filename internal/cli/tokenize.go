package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/synlex/internal/logging"
	"github.com/yaklabco/synlex/pkg/config"
	"github.com/yaklabco/synlex/pkg/reporter"
	"github.com/yaklabco/synlex/pkg/runner"
)

// stdinArg is the path argument that selects standard input.
const stdinArg = "-"

type tokenizeFlags struct {
	grammar        string
	format         string
	jobs           int
	exclude        []string
	extensions     []string
	markdown       bool
	followSymlinks bool
	whitespace     bool
	strict         bool
	noContext      bool
	compact        bool
	quiet          bool
	stdinName      string
}

func newTokenizeCommand() *cobra.Command {
	flags := &tokenizeFlags{}

	cmd := &cobra.Command{
		Use:     "tokenize [paths...]",
		Aliases: []string{"tok"},
		Short:   "Tokenize source files",
		Long:    tokenizeLongDescription,
		Args:    usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, flags)
		},
	}

	addTokenizeFlags(cmd, flags)

	return cmd
}

const tokenizeLongDescription = `Tokenize source files and report tokens and lexical errors.

By default, tokenizes every file under the current directory whose extension
belongs to a registered grammar. With "-" as the only path, or with no paths
while standard input is a pipe or file, the input is read from stdin.

Examples:
  synlex tokenize                         # Tokenize current directory
  synlex tokenize src/                    # Tokenize a directory
  synlex tokenize -g rust main.txt        # Force the Rust grammar
  cat lib.rs | synlex tokenize -          # Read standard input
  synlex tokenize --markdown docs/        # Tokenize Markdown code fences
  synlex tokenize --format json           # Output as JSON
  synlex tokenize --strict                # Fail on lexical errors`

func addTokenizeFlags(cmd *cobra.Command, flags *tokenizeFlags) {
	cmd.Flags().StringVarP(&flags.grammar, "grammar", "g", "", "force a grammar for every input")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, table, json, summary")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "extra file extensions to pick up")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "tokenize fenced code blocks in Markdown files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVar(&flags.whitespace, "whitespace", false, "include whitespace tokens in the output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when tokens carry errors")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress the summary")
	cmd.Flags().StringVar(&flags.stdinName, "stdin-name", "<stdin>",
		"display name for standard input; its extension selects the grammar")
}

// cliConfig builds a config holding only the flags that were set, so
// unset flags do not mask config files or the environment.
func (f *tokenizeFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("grammar") {
		cfg.Grammar = f.grammar
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if changed("ext") {
		cfg.Extensions = f.extensions
	}
	cfg.Markdown = f.markdown
	cfg.FollowSymlinks = f.followSymlinks
	cfg.IncludeWhitespace = f.whitespace
	cfg.Strict = f.strict
	cfg.Compact = f.compact
	cfg.Quiet = f.quiet

	return cfg
}

func runTokenize(cmd *cobra.Command, args []string, flags *tokenizeFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	loadResult, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.Options{
		Paths:             args,
		WorkingDir:        workDir,
		Grammar:           cfg.Grammar,
		Extensions:        cfg.Extensions,
		ExcludeGlobs:      cfg.Exclude,
		Markdown:          cfg.Markdown,
		FollowSymlinks:    cfg.FollowSymlinks,
		IncludeWhitespace: cfg.IncludeWhitespace,
		MaxFileSize:       cfg.MaxFileSize,
		Jobs:              cfg.Jobs,
	}

	logger.Debug("configuration loaded",
		logging.FieldGrammar, cfg.Grammar,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	tokenizer := runner.New(loadResult.Registry)

	var result *runner.Result
	if stdin, ok := stdinInput(cmd, args); ok {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return &ExitError{Code: ExitIOError, Err: fmt.Errorf("read standard input: %w", err)}
		}
		result = runner.NewResult()
		result.Stats.FilesDiscovered = 1
		result.Add(tokenizer.Process(ctx, flags.stdinName, content, runOpts))
	} else {
		logger.Debug("starting run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
		)
		result, err = tokenizer.Run(ctx, runOpts)
		if err != nil {
			return errors.Join(errors.New("tokenize run failed"), err)
		}
	}

	for _, file := range result.Files {
		if file.Err != nil {
			logger.Error("tokenize failed", logging.FieldPath, file.Path, logging.FieldError, file.Err)
		}
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(fmt.Errorf("invalid format: %w", err))
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowContext: !flags.noContext,
		ShowSummary: !cfg.Quiet,
		Compact:     cfg.Compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, cfg.Strict) != ExitSuccess {
		return ErrLexErrorsFound
	}

	return nil
}

// stdinInput returns the reader to tokenize when the run reads standard
// input: either "-" is the only path, or no paths were given and the input
// is a pipe, a regular file, or a reader installed with SetIn.
func stdinInput(cmd *cobra.Command, args []string) (io.Reader, bool) {
	in := cmd.InOrStdin()

	if len(args) == 1 && args[0] == stdinArg {
		return in, true
	}
	if len(args) > 0 {
		return nil, false
	}

	file, ok := in.(*os.File)
	if !ok {
		return in, in != nil
	}
	if term.IsTerminal(int(file.Fd())) {
		return nil, false
	}
	info, err := file.Stat()
	if err != nil {
		return nil, false
	}
	mode := info.Mode()
	if mode&os.ModeNamedPipe != 0 || mode.IsRegular() {
		return file, true
	}
	return nil, false
}
