package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/runner"
)

func lexErr(kind lexer.ErrorKind) *lexer.Error {
	return &lexer.Error{Kind: kind}
}

func sampleResult() *runner.Result {
	result := runner.NewResult()
	result.Add(runner.Outcome{
		Path:    "/work/a.rs",
		Grammar: "rust",
		Counts:  map[lexer.Category]int{lexer.Keyword: 2, lexer.Identifier: 3},
	})
	result.Add(runner.Outcome{
		Path:    "/work/b.rs",
		Grammar: "rust",
		Counts:  map[lexer.Category]int{lexer.StringLiteral: 1},
		Errors: []*lexer.Error{
			lexErr(lexer.ErrKindUnterminated),
			lexErr(lexer.ErrKindUnknownLexeme),
			lexErr(lexer.ErrKindUnknownLexeme),
		},
	})
	result.Add(runner.Outcome{
		Path:     "/work/c.go",
		Grammar:  "go",
		Counts:   map[lexer.Category]int{lexer.Keyword: 10},
		Unclosed: []lexer.Frame{{Kind: lexer.FrameBlockComment}},
	})
	result.Add(runner.Outcome{Path: "/work/d.txt", Err: errors.New("no grammar")})
	return result
}

func TestAnalyze_NilResult(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Empty(t, report.ByFile)
	assert.False(t, report.Totals.HasProblems())
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:             4,
		FilesFailed:       1,
		FilesWithProblems: 2,
		Tokens:            16,
		Errors:            3,
		Unclosed:          1,
	}, report.Totals)
	assert.Equal(t, 4, report.Totals.Problems())
	assert.True(t, report.Totals.HasProblems())
}

func TestAnalyze_ByFileSortedByCount(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	paths := make([]string, 0, len(report.ByFile))
	for _, f := range report.ByFile {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"d.txt", "b.rs", "c.go", "a.rs"}, paths)

	assert.True(t, report.ByFile[0].Failed)
	assert.Equal(t, []string{"unknown-lexeme", "unterminated-construct"}, report.ByFile[1].Kinds)
}

func TestAnalyze_ProblemsOnly(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.ProblemsOnly = true
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByFile, 3)
	for _, f := range report.ByFile {
		assert.NotEqual(t, "/work/a.rs", f.Path)
	}
}

func TestAnalyze_ByGrammar(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{SortBy: SortByAlpha})

	require.Len(t, report.ByGrammar, 2)
	assert.Equal(t, GrammarAnalysis{Grammar: "go", Files: 1, Tokens: 10, Unclosed: 1}, report.ByGrammar[0])
	assert.Equal(t, GrammarAnalysis{Grammar: "rust", Files: 2, Tokens: 6, Errors: 3}, report.ByGrammar[1])
}

func TestAnalyze_SortByTokens(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{SortBy: SortByTokens, SortDesc: true})

	require.Len(t, report.ByGrammar, 2)
	assert.Equal(t, "go", report.ByGrammar[0].Grammar)
	assert.Equal(t, "/work/c.go", report.ByFile[0].Path)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	for _, field := range []SortField{SortByCount, SortByAlpha, SortByTokens} {
		assert.True(t, field.IsValid(), field)
	}
	assert.False(t, SortField("severity").IsValid())
}

func TestMakeRelativePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/a.rs", makeRelativePath("/work/src/a.rs", "/work"))
	assert.Equal(t, "/other/a.rs", makeRelativePath("/other/a.rs", "/work"))
	assert.Equal(t, "/work/a.rs", makeRelativePath("/work/a.rs", ""))
	assert.Equal(t, "<stdin>", makeRelativePath("<stdin>", "/work"))
}
