package analysis

// Report contains pre-computed views of a tokenize run.
// Computed once by Analyze, used by the renderers.
type Report struct {
	// ByFile holds one entry per document.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByGrammar groups documents by the grammar that tokenized them.
	ByGrammar []GrammarAnalysis `json:"byGrammar,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"totals"`

	// Version is the report format version.
	Version string `json:"version"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files             int `json:"files"`
	FilesFailed       int `json:"filesFailed"`
	FilesWithProblems int `json:"filesWithProblems"`
	Tokens            int `json:"tokens"`
	Errors            int `json:"errors"`
	Unclosed          int `json:"unclosed"`
}

// Problems returns the number of lexical errors plus unclosed constructs.
func (t Totals) Problems() int {
	return t.Errors + t.Unclosed
}

// HasProblems returns true if any document failed or had lexical problems.
func (t Totals) HasProblems() bool {
	return t.FilesFailed > 0 || t.Problems() > 0
}

// FileAnalysis contains aggregated data for a single document.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Grammar  string   `json:"grammar,omitempty"`
	Tokens   int      `json:"tokens"`
	Errors   int      `json:"errors"`
	Unclosed int      `json:"unclosed"`
	Failed   bool     `json:"failed,omitempty"`
	Kinds    []string `json:"kinds,omitempty"`
}

// Problems returns the file's lexical errors plus unclosed constructs.
func (f FileAnalysis) Problems() int {
	return f.Errors + f.Unclosed
}

// GrammarAnalysis contains aggregated data for one grammar.
type GrammarAnalysis struct {
	Grammar  string `json:"grammar"`
	Files    int    `json:"files"`
	Tokens   int    `json:"tokens"`
	Errors   int    `json:"errors"`
	Unclosed int    `json:"unclosed"`
}

// Problems returns the grammar's lexical errors plus unclosed constructs.
func (g GrammarAnalysis) Problems() int {
	return g.Errors + g.Unclosed
}
