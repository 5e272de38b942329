package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/synlex/pkg/grammar"
	"github.com/yaklabco/synlex/pkg/lexer"
)

func TestClassifier_ContextualKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		word string
		want lexer.Category
	}{
		{"union item", "union U { a: u32 }", "union", lexer.Keyword},
		{"union field access", "x.union", "union", lexer.Identifier},
		{"union path segment", "core::union", "union", lexer.Identifier},
		{"default impl", "default fn f() {}", "default", lexer.Keyword},
		{"default method", "T::default()", "default", lexer.Identifier},
		{"comment between is ignored", "x. /* c */ union", "union", lexer.Identifier},
		{"strict keyword after dot", "x.await", "await", lexer.Keyword},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var found bool
			for _, tok := range lexer.Tokenize(testCase.src, grammar.Rust()) {
				if tok.Text == testCase.word {
					found = true
					assert.Equal(t, testCase.want, tok.Category)
				}
			}
			assert.True(t, found, "word %q not tokenized", testCase.word)
		})
	}
}

func TestClassifier_Symbols(t *testing.T) {
	t.Parallel()

	c := lexer.NewClassifier(grammar.Rust())

	tests := []struct {
		text string
		want lexer.Category
	}{
		{"::", lexer.Operator},
		{"+", lexer.Operator},
		{";", lexer.Punctuation},
		{"#", lexer.Punctuation},
		{"$", lexer.Punctuation},
		{"`", lexer.Unknown},
	}

	for _, testCase := range tests {
		t.Run(testCase.text, func(t *testing.T) {
			t.Parallel()

			lx := lexer.Lexeme{Text: testCase.text, Shape: lexer.ShapeSymbol}
			assert.Equal(t, testCase.want, c.Classify(lx, lexer.Lookback{}))
		})
	}
}

func TestClassifier_EveryShapeHasACategory(t *testing.T) {
	t.Parallel()

	c := lexer.NewClassifier(grammar.Rust())

	tests := []struct {
		shape lexer.Shape
		text  string
		want  lexer.Category
	}{
		{lexer.ShapeWhitespace, " ", lexer.Whitespace},
		{lexer.ShapeWord, "fn", lexer.Keyword},
		{lexer.ShapeWord, "main", lexer.Identifier},
		{lexer.ShapeRawWord, "r#fn", lexer.Identifier},
		{lexer.ShapeNumber, "1", lexer.NumericLiteral},
		{lexer.ShapeString, `""`, lexer.StringLiteral},
		{lexer.ShapeRawString, `r""`, lexer.RawStringLiteral},
		{lexer.ShapeByteString, `b""`, lexer.ByteStringLiteral},
		{lexer.ShapeChar, "'a'", lexer.CharLiteral},
		{lexer.ShapeLineComment, "//", lexer.LineComment},
		{lexer.ShapeBlockComment, "/**/", lexer.BlockComment},
		{lexer.ShapeAttribute, "#[a]", lexer.Attribute},
		{lexer.ShapeLifetime, "'a", lexer.Lifetime},
		{lexer.ShapeMacroName, "m!", lexer.MacroInvocation},
		{lexer.ShapeStrayClose, "*/", lexer.Unknown},
		{lexer.ShapeUnknown, "\\", lexer.Unknown},
	}

	for _, testCase := range tests {
		lx := lexer.Lexeme{Text: testCase.text, Shape: testCase.shape}
		assert.Equal(t, testCase.want, c.Classify(lx, lexer.Lookback{}), "shape of %q", testCase.text)
	}
}

func TestCategory_Names(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, c := range lexer.Categories() {
		name := c.String()
		assert.NotEqual(t, "invalid", name)
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		parsed, ok := lexer.ParseCategory(name)
		assert.True(t, ok)
		assert.Equal(t, c, parsed)
	}

	_, ok := lexer.ParseCategory("nope")
	assert.False(t, ok)
	assert.Equal(t, "invalid", lexer.Category(250).String())
}

func TestCategory_Predicates(t *testing.T) {
	t.Parallel()

	assert.True(t, lexer.LineComment.IsComment())
	assert.True(t, lexer.BlockComment.IsTrivia())
	assert.True(t, lexer.Whitespace.IsTrivia())
	assert.False(t, lexer.Keyword.IsTrivia())
	assert.True(t, lexer.RawStringLiteral.IsLiteral())
	assert.True(t, lexer.CharLiteral.IsLiteral())
	assert.False(t, lexer.Lifetime.IsLiteral())
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := &lexer.Error{Kind: lexer.ErrKindUnterminated, Span: lexer.Span{Start: 3, End: 9}, Frame: lexer.FrameRawString}
	assert.Equal(t, "unterminated construct: raw-string at [3, 9)", err.Error())

	err = &lexer.Error{Kind: lexer.ErrKindUnknownLexeme, Span: lexer.Span{Start: 1, End: 2}}
	assert.Equal(t, "unknown lexeme at [1, 2)", err.Error())
	assert.ErrorIs(t, err, lexer.ErrUnknownLexeme)
}
