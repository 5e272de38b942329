// Package analysis aggregates tokenize results into per-file and
// per-grammar views for reporting.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// Paths outside workDir are kept as they are.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" || !filepath.IsAbs(absPath) {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion}

	if result == nil {
		return report
	}

	grammars := make(map[string]*GrammarAnalysis)

	for i := range result.Files {
		file := &result.Files[i]
		report.Totals.Files++

		fa := FileAnalysis{
			Path:    makeRelativePath(file.Path, opts.WorkingDir),
			Grammar: file.Grammar,
		}

		if file.Err != nil {
			fa.Failed = true
			report.Totals.FilesFailed++
			report.ByFile = append(report.ByFile, fa)
			continue
		}

		for _, n := range file.Counts {
			fa.Tokens += n
		}
		fa.Errors = len(file.Errors)
		fa.Unclosed = len(file.Unclosed)
		fa.Kinds = errorKinds(file.Errors)

		report.Totals.Tokens += fa.Tokens
		report.Totals.Errors += fa.Errors
		report.Totals.Unclosed += fa.Unclosed
		if fa.Problems() > 0 {
			report.Totals.FilesWithProblems++
		}

		ga, ok := grammars[file.Grammar]
		if !ok {
			ga = &GrammarAnalysis{Grammar: file.Grammar}
			grammars[file.Grammar] = ga
		}
		ga.Files++
		ga.Tokens += fa.Tokens
		ga.Errors += fa.Errors
		ga.Unclosed += fa.Unclosed

		if !opts.ProblemsOnly || fa.Problems() > 0 {
			report.ByFile = append(report.ByFile, fa)
		}
	}

	for _, ga := range grammars {
		report.ByGrammar = append(report.ByGrammar, *ga)
	}

	sortFileAnalysis(report.ByFile, opts.SortBy, opts.SortDesc)
	sortGrammarAnalysis(report.ByGrammar, opts.SortBy, opts.SortDesc)

	return report
}

// errorKinds lists the distinct error kinds in errs, sorted.
func errorKinds(errs []*lexer.Error) []string {
	var kinds []string
	for _, err := range errs {
		name := err.Kind.String()
		if !slices.Contains(kinds, name) {
			kinds = append(kinds, name)
		}
	}
	slices.Sort(kinds)
	return kinds
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Path, right.Path)
		case SortByTokens:
			return directed(cmp.Compare(left.Tokens, right.Tokens), desc)
		default: // SortByCount
			// Failed files rank above any problem count.
			result := cmp.Compare(boolRank(left.Failed), boolRank(right.Failed))
			if result == 0 {
				result = cmp.Compare(left.Problems(), right.Problems())
			}
			return directed(result, desc)
		}
	})
}

func sortGrammarAnalysis(grammars []GrammarAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(grammars, func(left, right GrammarAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Grammar, right.Grammar)
		case SortByTokens:
			result = directed(cmp.Compare(left.Tokens, right.Tokens), desc)
		default: // SortByCount
			result = directed(cmp.Compare(left.Problems(), right.Problems()), desc)
		}
		if result == 0 {
			result = cmp.Compare(left.Grammar, right.Grammar)
		}
		return result
	})
}

func directed(result int, desc bool) int {
	if desc {
		return -result
	}
	return result
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
