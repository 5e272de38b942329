package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/synlex/pkg/grammar"
	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/runner"
)

// jsonSchemaVersion versions the JSON output layout.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string         `json:"path"`
	Grammar  string         `json:"grammar,omitempty"`
	Tokens   []JSONToken    `json:"tokens"`
	Errors   []JSONLexError `json:"errors"`
	Unclosed []JSONFrame    `json:"unclosed,omitempty"`
	Blocks   []JSONBlock    `json:"blocks,omitempty"`
	Counts   map[string]int `json:"counts,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// JSONToken represents a single token. Start and End are byte offsets.
type JSONToken struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Operator string `json:"operator,omitempty"`
	Error    string `json:"error,omitempty"`
}

// JSONLexError represents a recovered lexical error.
type JSONLexError struct {
	Kind    string `json:"kind"`
	Frame   string `json:"frame,omitempty"`
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// JSONFrame represents a construct left open at end of input, with the
// state of its frame: hash count of a raw string, comment or attribute
// bracket depth, the open brackets of a macro token tree.
type JSONFrame struct {
	Kind      string        `json:"kind"`
	Start     int           `json:"start"`
	Line      int           `json:"line"`
	Column    int           `json:"column"`
	Hashes    int           `json:"hashes,omitempty"`
	Depth     int           `json:"depth,omitempty"`
	Brackets  *JSONBrackets `json:"brackets,omitempty"`
	Multiline bool          `json:"multiline,omitempty"`
}

// JSONBrackets counts the open brackets of each kind in a macro token tree.
type JSONBrackets struct {
	Paren  int `json:"paren"`
	Square int `json:"square"`
	Curly  int `json:"curly"`
}

// JSONBlock represents a tokenized Markdown code fence.
type JSONBlock struct {
	Language string `json:"language,omitempty"`
	Grammar  string `json:"grammar"`
	Line     int    `json:"line"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Tokens   int    `json:"tokens"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered    int            `json:"filesDiscovered"`
	FilesProcessed     int            `json:"filesProcessed"`
	FilesErrored       int            `json:"filesErrored"`
	FilesWithLexErrors int            `json:"filesWithLexErrors"`
	Tokens             int            `json:"tokens"`
	ByCategory         map[string]int `json:"byCategory"`
	ByError            map[string]int `json:"byError"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return CountProblems(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByCategory: make(map[string]int),
			ByError:    make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	for i := range result.Files {
		output.Files = append(output.Files, r.buildFile(&result.Files[i]))
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesProcessed = stats.FilesProcessed
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.FilesWithLexErrors = stats.FilesWithLexErrors
	output.Summary.Tokens = stats.Tokens
	for category, n := range stats.ByCategory {
		output.Summary.ByCategory[category.String()] = n
	}
	for kind, n := range stats.ByError {
		output.Summary.ByError[kind.String()] = n
	}

	return output
}

func (r *JSONReporter) buildFile(file *runner.Outcome) JSONFileResult {
	out := JSONFileResult{
		Path:    r.opts.displayPath(file.Path),
		Grammar: file.Grammar,
		Tokens:  make([]JSONToken, 0, len(file.Tokens)),
		Errors:  make([]JSONLexError, 0, len(file.Errors)),
	}

	if file.Err != nil {
		out.Error = file.Err.Error()
		return out
	}

	idx := lexer.NewLineIndex(file.Source)

	for _, tok := range file.Tokens {
		line, col := idx.Position(tok.Span.Start)
		jsonTok := JSONToken{
			Category: tok.Category.String(),
			Text:     tok.Text,
			Start:    tok.Span.Start,
			End:      tok.Span.End,
			Line:     line,
			Column:   col,
		}
		if tok.Op != grammar.OpNone {
			jsonTok.Operator = tok.Op.String()
		}
		if tok.HasError() {
			jsonTok.Error = tok.Err.String()
		}
		out.Tokens = append(out.Tokens, jsonTok)
	}

	for _, lexErr := range file.Errors {
		line, col := idx.Position(lexErr.Span.Start)
		jsonErr := JSONLexError{
			Kind:    lexErr.Kind.String(),
			Message: lexErr.Error(),
			Start:   lexErr.Span.Start,
			End:     lexErr.Span.End,
			Line:    line,
			Column:  col,
		}
		if lexErr.Frame != lexer.FrameNone {
			jsonErr.Frame = lexErr.Frame.String()
		}
		out.Errors = append(out.Errors, jsonErr)
	}

	for _, frame := range file.Unclosed {
		line, col := idx.Position(frame.Start)
		jsonFrame := JSONFrame{
			Kind:      frame.Kind.String(),
			Start:     frame.Start,
			Line:      line,
			Column:    col,
			Hashes:    frame.Hashes,
			Depth:     frame.Depth,
			Multiline: frame.Multiline,
		}
		if frame.Kind == lexer.FrameMacroTree {
			jsonFrame.Brackets = &JSONBrackets{
				Paren:  frame.Brackets[lexer.BracketParen],
				Square: frame.Brackets[lexer.BracketSquare],
				Curly:  frame.Brackets[lexer.BracketCurly],
			}
		}
		out.Unclosed = append(out.Unclosed, jsonFrame)
	}

	for _, block := range file.Blocks {
		out.Blocks = append(out.Blocks, JSONBlock{
			Language: block.Language,
			Grammar:  block.Grammar,
			Line:     block.Line,
			Start:    block.Span.Start,
			End:      block.Span.End,
			Tokens:   block.Tokens,
		})
	}

	if len(file.Counts) > 0 {
		out.Counts = make(map[string]int, len(file.Counts))
		for category, n := range file.Counts {
			out.Counts[category.String()] = n
		}
	}

	return out
}
