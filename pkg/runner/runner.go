package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/synlex/internal/logging"
	"github.com/yaklabco/synlex/pkg/fsutil"
	"github.com/yaklabco/synlex/pkg/grammar"
	"github.com/yaklabco/synlex/pkg/langdetect"
	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/markdown"
)

// Sentinel errors for documents that cannot be tokenized.
var (
	ErrNoGrammar      = errors.New("no grammar matches document")
	ErrUnknownGrammar = errors.New("unknown grammar")
)

// Runner tokenizes documents with grammars from a registry. A Runner is
// safe for concurrent use once built.
type Runner struct {
	Registry  *grammar.Registry
	Detector  *langdetect.Detector
	Extractor *markdown.Extractor
}

// New creates a runner over reg. Content detection is limited to the
// grammars reg holds at this point.
func New(reg *grammar.Registry) *Runner {
	return &Runner{
		Registry:  reg,
		Detector:  langdetect.New(reg.Names()...),
		Extractor: markdown.New(markdown.FlavorGFM),
	}
}

// Run discovers files under opts.Paths and tokenizes them in a bounded
// worker pool. Outcomes come back in sorted path order regardless of
// completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	if opts.Grammar != "" {
		if _, ok := r.Registry.Lookup(opts.Grammar); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, opts.Grammar)
		}
	}

	files, err := Discover(ctx, opts, r.extensions(opts))
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan Outcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]Outcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.Add(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldTokens, result.Stats.Tokens,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- Outcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		var outcome Outcome
		content, err := fsutil.ReadSource(ctx, path, opts.MaxFileSize)
		if err != nil {
			outcome = Outcome{Path: path, Err: err}
		} else {
			outcome = r.Process(ctx, path, content, opts)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// Process tokenizes one document. path selects the grammar by extension
// and may be a display name such as "<stdin>".
func (r *Runner) Process(ctx context.Context, path string, content []byte, opts Options) Outcome {
	logger := logging.FromContext(ctx)

	if opts.Markdown && opts.Grammar == "" && isMarkdown(path) {
		outcome := r.processMarkdown(path, content, opts)
		logger.Debug("tokenized markdown",
			logging.FieldPath, path,
			logging.FieldBlocks, len(outcome.Blocks),
			logging.FieldTokens, len(outcome.Tokens),
		)
		return outcome
	}

	outcome := Outcome{Path: path, Source: string(content)}

	g, err := r.selectGrammar(path, content, opts.Grammar)
	if err != nil {
		outcome.Err = err
		logger.Debug("skipped document", logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}
	outcome.Grammar = g.Name

	stream := lexer.New(outcome.Source, g)
	outcome.Counts = make(map[lexer.Category]int)
	for tok := range stream.All() {
		outcome.Counts[tok.Category]++
		if tok.Category == lexer.Whitespace && !opts.IncludeWhitespace {
			continue
		}
		outcome.Tokens = append(outcome.Tokens, tok)
	}
	outcome.Errors = stream.Errors()
	outcome.Unclosed = stream.Unclosed()

	logger.Debug("tokenized",
		logging.FieldPath, path,
		logging.FieldGrammar, g.Name,
		logging.FieldTokens, len(outcome.Tokens),
		logging.FieldLexErrors, len(outcome.Errors),
	)
	return outcome
}

func (r *Runner) processMarkdown(path string, content []byte, opts Options) Outcome {
	outcome := Outcome{
		Path:    path,
		Source:  string(content),
		Grammar: GrammarMarkdown,
		Counts:  make(map[lexer.Category]int),
	}

	for _, block := range r.Extractor.ExtractBlocks(content) {
		body := block.Code(content)

		g, ok := r.Registry.Lookup(block.Language)
		if !ok {
			if g, ok = r.Registry.Lookup(r.Detector.Detect("", body)); !ok {
				continue
			}
		}

		tokens, errs := markdown.Tokenize(content, block, g)
		for _, tok := range tokens {
			outcome.Counts[tok.Category]++
			if tok.Category == lexer.Whitespace && !opts.IncludeWhitespace {
				continue
			}
			outcome.Tokens = append(outcome.Tokens, tok)
		}
		outcome.Errors = append(outcome.Errors, errs...)
		if len(tokens) > 0 {
			outcome.Unclosed = append(outcome.Unclosed, tokens[len(tokens)-1].Unclosed...)
		}
		outcome.Blocks = append(outcome.Blocks, Block{Block: block, Grammar: g.Name, Tokens: len(tokens)})
	}

	return outcome
}

// selectGrammar picks a grammar: the forced name, then the file extension,
// then content detection.
func (r *Runner) selectGrammar(path string, content []byte, forced string) (*grammar.Grammar, error) {
	if forced != "" {
		g, ok := r.Registry.Lookup(forced)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, forced)
		}
		return g, nil
	}

	if g, ok := r.Registry.ForFile(path); ok {
		return g, nil
	}

	if name := r.Detector.Detect(path, content); name != "" {
		if g, ok := r.Registry.Lookup(name); ok {
			return g, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", path, ErrNoGrammar)
}

func (r *Runner) extensions(opts Options) []string {
	exts := slices.Clone(r.Registry.Extensions())
	exts = append(exts, opts.Extensions...)
	if opts.Markdown {
		exts = append(exts, MarkdownExtensions()...)
	}
	return exts
}

func isMarkdown(path string) bool {
	return slices.Contains(MarkdownExtensions(), strings.ToLower(filepath.Ext(path)))
}
