// Package markdown finds fenced code blocks in Markdown documents so their
// contents can be tokenized in place.
package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/synlex/pkg/grammar"
	"github.com/yaklabco/synlex/pkg/lexer"
)

// Flavor identifies the Markdown dialect used to find fences.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Block is one fenced code block.
type Block struct {
	// Info is the whole info string after the opening fence.
	Info string

	// Language is the first word of Info, lowercased. Empty when the fence
	// carries no info string.
	Language string

	// Span is the byte range of the block's content within the document.
	Span lexer.Span

	// Segments are the content lines within the document. Inside block
	// quotes and lists they exclude the container prefixes, so they may
	// leave gaps within Span.
	Segments []lexer.Span

	// Line is the 1-based line of the first content line.
	Line int
}

// Extractor parses Markdown with goldmark and collects code fences.
type Extractor struct {
	md goldmark.Markdown
}

// New creates an extractor for the given flavor. Unknown flavors fall back
// to CommonMark.
func New(flavor string) *Extractor {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return &Extractor{md: goldmark.New(opts...)}
}

var defaultExtractor = New(FlavorGFM)

// ExtractBlocks returns the fenced code blocks of content in document order
// using the GFM flavor.
func ExtractBlocks(content []byte) []Block {
	return defaultExtractor.ExtractBlocks(content)
}

// ExtractBlocks returns the fenced code blocks of content in document order.
// Fences with no content lines are skipped.
func (e *Extractor) ExtractBlocks(content []byte) []Block {
	reader := text.NewReader(content)
	doc := e.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lines := fence.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		block := Block{
			Span: lexer.Span{
				Start: lines.At(0).Start,
				End:   lines.At(lines.Len() - 1).Stop,
			},
			Segments: make([]lexer.Span, 0, lines.Len()),
		}
		for i := range lines.Len() {
			seg := lines.At(i)
			block.Segments = append(block.Segments, lexer.Span{Start: seg.Start, End: seg.Stop})
		}
		if fence.Info != nil {
			block.Info = strings.TrimSpace(string(fence.Info.Segment.Value(content)))
			block.Language = strings.ToLower(string(fence.Language(content)))
		}
		block.Line = bytes.Count(content[:block.Span.Start], []byte("\n")) + 1

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// Code returns the block's code text: its segments joined, without any
// container prefixes.
func (b Block) Code(content []byte) []byte {
	if len(b.Segments) == 0 {
		return content[b.Span.Start:b.Span.End]
	}
	var buf bytes.Buffer
	for _, seg := range b.Segments {
		buf.Write(content[seg.Start:seg.End])
	}
	return buf.Bytes()
}

// Tokenize tokenizes one block's code with g. Token spans are relative to
// the whole document, so they index content directly. A token that crosses
// a line of a quoted or indented fence spans the prefix between its lines;
// its Text is the code text only.
func Tokenize(content []byte, block Block, g *grammar.Grammar) ([]lexer.Token, []*lexer.Error) {
	stream := lexer.New(string(block.Code(content)), g)
	tokens := stream.Collect()
	toDoc := newOffsetMap(block)

	for i := range tokens {
		tokens[i].Span = toDoc.span(tokens[i].Span)
		for j := range tokens[i].Unclosed {
			tokens[i].Unclosed[j].Start = toDoc.start(tokens[i].Unclosed[j].Start)
		}
	}

	errs := stream.Errors()
	for _, err := range errs {
		err.Span = toDoc.span(err.Span)
	}

	return tokens, errs
}

// offsetMap translates offsets in a block's code text to document offsets.
type offsetMap struct {
	segments []lexer.Span
	bases    []int // code offset at which each segment begins
	fallback int
}

func newOffsetMap(block Block) offsetMap {
	segments := block.Segments
	if len(segments) == 0 {
		segments = []lexer.Span{block.Span}
	}
	bases := make([]int, len(segments))
	base := 0
	for i, seg := range segments {
		bases[i] = base
		base += seg.Len()
	}
	return offsetMap{segments: segments, bases: bases, fallback: block.Span.End}
}

// start maps an offset that begins a range: on a segment boundary it
// belongs to the following segment.
func (m offsetMap) start(off int) int {
	i := sort.Search(len(m.segments), func(i int) bool {
		return m.bases[i]+m.segments[i].Len() > off
	})
	return m.at(i, off)
}

// end maps an offset that ends a range: on a segment boundary it belongs to
// the preceding segment.
func (m offsetMap) end(off int) int {
	i := sort.Search(len(m.segments), func(i int) bool {
		return m.bases[i]+m.segments[i].Len() >= off
	})
	return m.at(i, off)
}

func (m offsetMap) at(i, off int) int {
	if i >= len(m.segments) {
		return m.fallback
	}
	return m.segments[i].Start + off - m.bases[i]
}

func (m offsetMap) span(s lexer.Span) lexer.Span {
	if s.IsEmpty() {
		start := m.start(s.Start)
		return lexer.Span{Start: start, End: start}
	}
	return lexer.Span{Start: m.start(s.Start), End: m.end(s.End)}
}
