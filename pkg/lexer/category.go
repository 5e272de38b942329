package lexer

// Category classifies what a token represents.
type Category uint8

// Categories are a closed set; every byte of the input lands in exactly one.
const (
	Unknown Category = iota
	Whitespace
	Keyword
	Identifier
	StringLiteral
	RawStringLiteral
	ByteStringLiteral
	NumericLiteral
	CharLiteral
	LineComment
	BlockComment
	Attribute
	Lifetime
	MacroInvocation
	Operator
	Punctuation

	numCategories
)

var categoryNames = [numCategories]string{
	Unknown:           "unknown",
	Whitespace:        "whitespace",
	Keyword:           "keyword",
	Identifier:        "identifier",
	StringLiteral:     "string",
	RawStringLiteral:  "raw-string",
	ByteStringLiteral: "byte-string",
	NumericLiteral:    "number",
	CharLiteral:       "char",
	LineComment:       "line-comment",
	BlockComment:      "block-comment",
	Attribute:         "attribute",
	Lifetime:          "lifetime",
	MacroInvocation:   "macro",
	Operator:          "operator",
	Punctuation:       "punctuation",
}

// String returns the stable kebab-case name of the category.
func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return "invalid"
}

// ParseCategory is the inverse of String.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return Unknown, false
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// IsComment reports whether c is a line or block comment.
func (c Category) IsComment() bool {
	return c == LineComment || c == BlockComment
}

// IsLiteral reports whether c is any string, char or numeric literal.
func (c Category) IsLiteral() bool {
	switch c {
	case StringLiteral, RawStringLiteral, ByteStringLiteral, NumericLiteral, CharLiteral:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether c carries no syntax (whitespace and comments).
func (c Category) IsTrivia() bool {
	return c == Whitespace || c.IsComment()
}
