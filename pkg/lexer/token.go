package lexer

import (
	"strings"

	"github.com/yaklabco/synlex/pkg/grammar"
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Shape is the scanner's raw judgement of a lexeme before classification.
type Shape uint8

const (
	ShapeUnknown Shape = iota
	ShapeWhitespace
	ShapeWord
	ShapeRawWord // r#ident
	ShapeNumber
	ShapeString
	ShapeRawString
	ShapeByteString
	ShapeChar
	ShapeLineComment
	ShapeBlockComment
	ShapeAttribute
	ShapeLifetime
	ShapeMacroName
	ShapeSymbol
	ShapeStrayClose // closing delimiter with no matching open frame
)

// Lexeme is one raw unit produced by the scanner.
type Lexeme struct {
	Span  Span
	Text  string
	Shape Shape

	// Op is set when Shape is ShapeSymbol and the text is in the operator table.
	Op grammar.OperatorKind

	// Err is set when the scanner recovered from malformed input.
	Err ErrorKind
}

// Token is a classified lexeme.
type Token struct {
	Category Category
	Span     Span
	Text     string

	// Op is the operator kind for Operator tokens, OpNone otherwise.
	Op grammar.OperatorKind

	// Err tags tokens recovered from malformed input.
	Err ErrorKind

	// Unclosed lists constructs still open at end of input. Only the final
	// token of a document carries it.
	Unclosed []Frame
}

// HasError reports whether the token was recovered from malformed input.
func (t Token) HasError() bool {
	return t.Err != ErrNone
}

// ValidateTokens checks that tokens are contiguous, non-overlapping and
// cover [0, contentLen) exactly.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	if tokens[0].Span.Start != 0 {
		return false
	}

	if tokens[len(tokens)-1].Span.End != contentLen {
		return false
	}

	for i, tok := range tokens {
		if tok.Span.End <= tok.Span.Start {
			return false
		}
		if i > 0 && tok.Span.Start != tokens[i-1].Span.End {
			return false
		}
	}

	return true
}

// Reconstruct concatenates token texts back into source text.
func Reconstruct(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}
