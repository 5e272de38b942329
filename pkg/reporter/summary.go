package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/synlex/internal/ui/pretty"
	"github.com/yaklabco/synlex/pkg/analysis"
	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/runner"
)

// SummaryReporter prints category counts, a per-grammar breakdown and the
// lexical problems without the tokens themselves. Problem files are listed
// worst first.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to tokenize."))
		return 0, nil
	}

	report := analysis.Analyze(result, analysis.Options{
		ProblemsOnly: true,
		SortBy:       analysis.SortByCount,
		SortDesc:     true,
		WorkingDir:   r.opts.WorkingDir,
	})

	byPath := make(map[string]*runner.Outcome, len(result.Files))
	for i := range result.Files {
		byPath[r.opts.displayPath(result.Files[i].Path)] = &result.Files[i]
	}

	for _, entry := range report.ByFile {
		file, ok := byPath[entry.Path]
		if !ok {
			continue
		}

		if file.Err != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(entry.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Err)),
			)
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(entry.Path, file.Grammar, entry.Problems()))
		writeProblems(r.bw, r.styles, entry.Path, file, lexer.NewLineIndex(file.Source), r.opts.ShowContext)
	}

	fmt.Fprint(r.bw, r.styles.FormatGrammarBreakdown(report.ByGrammar))
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return CountProblems(result), nil
}
