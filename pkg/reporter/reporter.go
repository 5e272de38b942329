// Package reporter writes tokenization results in the supported output
// formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/synlex/pkg/runner"
)

// Reporter formats and writes tokenization results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of problems reported (lexical errors, unclosed
	// constructs and failed files) and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// CountProblems returns the number of problems in a result.
func CountProblems(result *runner.Result) int {
	if result == nil {
		return 0
	}
	total := 0
	for _, file := range result.Files {
		if file.Err != nil {
			total++
			continue
		}
		total += len(file.Errors) + len(file.Unclosed)
	}
	return total
}
