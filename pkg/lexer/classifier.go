package lexer

import (
	"slices"

	"github.com/yaklabco/synlex/pkg/grammar"
)

// Lookback is the context a Classifier may consult: the previous token
// that was not whitespace or a comment.
type Lookback struct {
	Prev    Token
	HasPrev bool
}

// Classifier maps raw lexemes to categories. Classification is lexical only:
// it never resolves scopes, so a strict keyword spelling is always a Keyword.
type Classifier struct {
	g *grammar.Grammar
}

// NewClassifier creates a classifier for the given grammar.
func NewClassifier(g *grammar.Grammar) Classifier {
	return Classifier{g: g}
}

// Classify returns exactly one category for lx.
func (c Classifier) Classify(lx Lexeme, lb Lookback) Category {
	switch lx.Shape {
	case ShapeWhitespace:
		return Whitespace
	case ShapeWord:
		return c.classifyWord(lx.Text, lb)
	case ShapeRawWord:
		return Identifier
	case ShapeNumber:
		return NumericLiteral
	case ShapeString:
		return StringLiteral
	case ShapeRawString:
		return RawStringLiteral
	case ShapeByteString:
		return ByteStringLiteral
	case ShapeChar:
		return CharLiteral
	case ShapeLineComment:
		return LineComment
	case ShapeBlockComment:
		return BlockComment
	case ShapeAttribute:
		return Attribute
	case ShapeLifetime:
		return Lifetime
	case ShapeMacroName:
		return MacroInvocation
	case ShapeSymbol:
		return c.classifySymbol(lx.Text)
	case ShapeStrayClose, ShapeUnknown:
		return Unknown
	default:
		return Unknown
	}
}

func (c Classifier) classifyWord(word string, lb Lookback) Category {
	if c.g.IsKeyword(word) {
		return Keyword
	}

	ck, ok := c.g.Contextual(word)
	if !ok {
		return Identifier
	}
	if lb.HasPrev && slices.Contains(ck.NotAfter, lb.Prev.Text) {
		return Identifier
	}
	return Keyword
}

func (c Classifier) classifySymbol(text string) Category {
	if op, ok := c.g.MatchOperator(text); ok && len(op.Text) == len(text) {
		return Operator
	}
	if len(text) == 1 && c.g.IsPunctuation(text[0]) {
		return Punctuation
	}
	return Unknown
}
