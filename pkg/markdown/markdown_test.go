package markdown_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/synlex/pkg/grammar"
	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/markdown"
)

const doc = "# Title\n" +
	"\n" +
	"```rust title=\"x\"\n" +
	"let s = r#\"a\"#;\n" +
	"```\n" +
	"\n" +
	"text\n" +
	"\n" +
	"~~~Go\n" +
	"x := 1\n" +
	"~~~\n" +
	"\n" +
	"```\n" +
	"plain\n" +
	"```\n" +
	"\n" +
	"```rust\n" +
	"```\n"

func TestExtractBlocks(t *testing.T) {
	t.Parallel()

	content := []byte(doc)
	blocks := markdown.ExtractBlocks(content)
	require.Len(t, blocks, 3, "the empty fence is skipped")

	tests := []struct {
		info     string
		language string
		body     string
		line     int
	}{
		{`rust title="x"`, "rust", "let s = r#\"a\"#;\n", 4},
		{"Go", "go", "x := 1\n", 10},
		{"", "", "plain\n", 14},
	}

	for i, want := range tests {
		got := blocks[i]
		assert.Equal(t, want.info, got.Info)
		assert.Equal(t, want.language, got.Language)
		assert.Equal(t, want.body, string(content[got.Span.Start:got.Span.End]))
		assert.Equal(t, want.line, got.Line)
	}
}

func TestExtractBlocks_NoFences(t *testing.T) {
	t.Parallel()

	assert.Empty(t, markdown.ExtractBlocks([]byte("just a paragraph\n\n    indented code\n")))
	assert.Empty(t, markdown.ExtractBlocks(nil))
}

func TestExtractor_CommonMarkFallback(t *testing.T) {
	t.Parallel()

	blocks := markdown.New("unknown-flavor").ExtractBlocks([]byte("```go\nfunc f() {}\n```\n"))
	require.Len(t, blocks, 1)
	assert.Equal(t, "go", blocks[0].Language)
}

func TestTokenize_DocumentRelativeSpans(t *testing.T) {
	t.Parallel()

	content := []byte(doc)
	blocks := markdown.ExtractBlocks(content)
	require.NotEmpty(t, blocks)

	block := blocks[0]
	tokens, errs := markdown.Tokenize(content, block, grammar.Rust())
	assert.Empty(t, errs)
	require.NotEmpty(t, tokens)

	assert.Equal(t, block.Span.Start, tokens[0].Span.Start)
	assert.Equal(t, block.Span.End, tokens[len(tokens)-1].Span.End)

	for _, tok := range tokens {
		assert.Equal(t, tok.Text, string(content[tok.Span.Start:tok.Span.End]))
	}

	var raw bool
	for _, tok := range tokens {
		if tok.Category == lexer.RawStringLiteral {
			raw = true
			assert.Equal(t, `r#"a"#`, tok.Text)
		}
	}
	assert.True(t, raw)
}

func TestTokenize_ErrorsAreShifted(t *testing.T) {
	t.Parallel()

	content := []byte("intro\n\n```rust\nlet s = r#\"open\n```\n")
	blocks := markdown.ExtractBlocks(content)
	require.Len(t, blocks, 1)

	tokens, errs := markdown.Tokenize(content, blocks[0], grammar.Rust())
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], lexer.ErrUnterminated)

	start := blocks[0].Span.Start + len("let s = ")
	assert.Equal(t, start, errs[0].Span.Start)

	last := tokens[len(tokens)-1]
	require.Len(t, last.Unclosed, 1)
	assert.Equal(t, start, last.Unclosed[0].Start)
}

func TestTokenize_QuotedFenceSkipsPrefixes(t *testing.T) {
	t.Parallel()

	content := []byte("> ```rust\n> let x = 1;\n> let y = 2;\n> ```\n")
	blocks := markdown.ExtractBlocks(content)
	require.Len(t, blocks, 1)

	block := blocks[0]
	require.Len(t, block.Segments, 2)
	assert.Equal(t, "let x = 1;\nlet y = 2;\n", string(block.Code(content)))

	tokens, errs := markdown.Tokenize(content, block, grammar.Rust())
	assert.Empty(t, errs)
	require.NotEmpty(t, tokens)

	for _, tok := range tokens {
		assert.NotContains(t, tok.Text, ">")
		if tok.Category != lexer.Whitespace {
			assert.Equal(t, tok.Text, string(content[tok.Span.Start:tok.Span.End]))
		}
	}

	var y lexer.Token
	for _, tok := range tokens {
		if tok.Text == "y" {
			y = tok
		}
	}
	require.Equal(t, lexer.Identifier, y.Category)
	assert.Equal(t, bytes.Index(content, []byte("y =")), y.Span.Start)
}
