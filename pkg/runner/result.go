package runner

import (
	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/markdown"
)

// GrammarMarkdown is the Outcome.Grammar of a Markdown document whose code
// fences were tokenized individually.
const GrammarMarkdown = "markdown"

// Outcome is the tokenization of one document.
type Outcome struct {
	// Path is the file path, or the display name for standard input.
	Path string

	// Source is the document text. Token spans index into it.
	Source string

	// Grammar is the grammar used, or GrammarMarkdown.
	Grammar string

	// Tokens are in document order. For Markdown they cover only the code
	// fences.
	Tokens []lexer.Token

	// Errors are the recovered lexical problems.
	Errors []*lexer.Error

	// Unclosed are constructs still open at end of input.
	Unclosed []lexer.Frame

	// Counts tallies tokens per category, whitespace included even when
	// Tokens omits it.
	Counts map[lexer.Category]int

	// Blocks lists the tokenized fences of a Markdown document.
	Blocks []Block

	// Err is set when the document could not be tokenized at all.
	Err error
}

// Block is one tokenized Markdown code fence.
type Block struct {
	markdown.Block

	// Grammar is the grammar the fence was tokenized with.
	Grammar string

	// Tokens is the number of tokens the fence produced.
	Tokens int
}

// HasLexErrors reports whether any token carried an error or a construct
// was left open.
func (o *Outcome) HasLexErrors() bool {
	return len(o.Errors) > 0 || len(o.Unclosed) > 0
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesWithLexErrors counts documents with at least one lexical error.
	FilesWithLexErrors int

	// Tokens counts every token, whitespace included.
	Tokens int

	ByCategory map[lexer.Category]int
	ByError    map[lexer.ErrorKind]int
}

// Result is the outcome of a run in deterministic (sorted path) order.
type Result struct {
	Files []Outcome
	Stats Stats
}

// HasLexErrors reports whether any document had lexical errors.
func (r *Result) HasLexErrors() bool {
	return r != nil && r.Stats.FilesWithLexErrors > 0
}

// HasFailures reports whether any document could not be processed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		ByCategory: make(map[lexer.Category]int),
		ByError:    make(map[lexer.ErrorKind]int),
	}
}

// Add appends an outcome and folds it into the statistics.
func (r *Result) Add(outcome Outcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Err != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++

	for category, n := range outcome.Counts {
		r.Stats.ByCategory[category] += n
		r.Stats.Tokens += n
	}
	for _, err := range outcome.Errors {
		r.Stats.ByError[err.Kind]++
	}
	if outcome.HasLexErrors() {
		r.Stats.FilesWithLexErrors++
	}
}

// NewResult creates an empty result ready for Add.
func NewResult() *Result {
	return &Result{Stats: newStats()}
}
