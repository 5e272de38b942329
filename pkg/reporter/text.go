package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/synlex/internal/ui/pretty"
	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/runner"
)

// TextReporter lists every token, one per line, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to tokenize."))
		}
		return 0, nil
	}

	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report: %w", err)
		}

		path := r.opts.displayPath(file.Path)

		if file.Err != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Err)),
			)
			continue
		}

		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Grammar, len(file.Errors)+len(file.Unclosed)))

		idx := lexer.NewLineIndex(file.Source)
		for _, tok := range file.Tokens {
			fmt.Fprintln(r.bw, r.styles.FormatToken(tok, idx))
		}

		writeProblems(r.bw, r.styles, path, &file, idx, r.opts.ShowContext)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return CountProblems(result), nil
}

// writeProblems prints the lexical errors and unclosed constructs of one file.
func writeProblems(bw *bufio.Writer, styles *pretty.Styles, path string, file *runner.Outcome, idx *lexer.LineIndex, showContext bool) {
	for _, lexErr := range file.Errors {
		fmt.Fprint(bw, styles.FormatLexError(path, lexErr, idx, showContext))
	}
	for _, frame := range file.Unclosed {
		fmt.Fprint(bw, styles.FormatUnclosed(path, frame, idx))
	}
}
