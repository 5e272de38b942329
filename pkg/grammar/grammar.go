// Package grammar defines the lexical tables a tokenizer consumes: keyword
// sets, operator tables and comment/string delimiter rules.
// Grammars are read-only once built and may be shared across goroutines.
package grammar

import (
	"cmp"
	"slices"
	"strings"
)

// OperatorKind groups operators by what they do.
type OperatorKind uint8

const (
	OpNone OperatorKind = iota
	OpArithmetic
	OpComparison
	OpLogical
	OpBitwise
	OpAssignment
	OpPath  // '::', '.'
	OpArrow // '->', '=>'
	OpRange // '..', '..='
	OpOther
)

var operatorKindNames = map[OperatorKind]string{
	OpNone:       "none",
	OpArithmetic: "arithmetic",
	OpComparison: "comparison",
	OpLogical:    "logical",
	OpBitwise:    "bitwise",
	OpAssignment: "assignment",
	OpPath:       "path",
	OpArrow:      "arrow",
	OpRange:      "range",
	OpOther:      "other",
}

// String returns the lowercase name of the kind.
func (k OperatorKind) String() string {
	if name, ok := operatorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseOperatorKind maps a name produced by String back to its kind.
func ParseOperatorKind(name string) (OperatorKind, bool) {
	for kind, kindName := range operatorKindNames {
		if kindName == strings.ToLower(name) {
			return kind, true
		}
	}
	return OpNone, false
}

// Operator is one entry of an operator table.
type Operator struct {
	Text string
	Kind OperatorKind
}

// ContextualKeyword is a word that is a keyword unless the previous
// significant token is one of NotAfter (e.g. a field access after '.').
type ContextualKeyword struct {
	Word     string
	NotAfter []string
}

// Rules switches the context-sensitive lexeme forms on or off.
type Rules struct {
	// LineComments are prefixes that start a comment running to end of line.
	LineComments []string

	// BlockOpen and BlockClose delimit block comments. Empty disables them.
	BlockOpen  string
	BlockClose string

	// NestedBlockComments makes each BlockOpen inside a comment increase depth.
	NestedBlockComments bool

	// RawStrings enables r"..." and r#"..."# forms.
	RawStrings bool

	// ByteStrings enables b"...", br"..." and b'x'.
	ByteStrings bool

	// CStrings enables c"..." and cr"...".
	CStrings bool

	// BacktickRawStrings treats `...` as a raw string without escapes.
	BacktickRawStrings bool

	// Lifetimes enables 'name lifetimes and labels.
	Lifetimes bool

	// Attributes enables #[...] and #![...].
	Attributes bool

	// Macros enables name!(...) invocations with token-tree tracking.
	Macros bool

	// RawIdentifiers enables r#name identifiers.
	RawIdentifiers bool

	// Shebang treats a leading "#!" line that is not an attribute as a comment.
	Shebang bool
}

// Grammar is a complete lexical table for one language.
type Grammar struct {
	Name       string
	Aliases    []string
	Extensions []string

	keywords    map[string]struct{}
	contextual  map[string]ContextualKeyword
	operators   []Operator
	punctuation map[byte]struct{}

	Rules Rules
}

// Spec is the mutable description a Grammar is built from.
type Spec struct {
	Name        string
	Aliases     []string
	Extensions  []string
	Keywords    []string
	Contextual  []ContextualKeyword
	Operators   []Operator
	Punctuation string
	Rules       Rules
}

// New builds a Grammar from a Spec. Operators are ordered longest first so
// a linear scan finds the longest prefix.
func New(spec Spec) *Grammar {
	g := &Grammar{
		Name:        strings.ToLower(spec.Name),
		Aliases:     slices.Clone(spec.Aliases),
		Extensions:  normalizeExtensions(spec.Extensions),
		keywords:    make(map[string]struct{}, len(spec.Keywords)),
		contextual:  make(map[string]ContextualKeyword, len(spec.Contextual)),
		operators:   slices.Clone(spec.Operators),
		punctuation: make(map[byte]struct{}, len(spec.Punctuation)),
		Rules:       spec.Rules,
	}

	for _, kw := range spec.Keywords {
		g.keywords[kw] = struct{}{}
	}
	for _, ck := range spec.Contextual {
		if _, strict := g.keywords[ck.Word]; strict {
			continue
		}
		g.contextual[ck.Word] = ck
	}
	for i := range len(spec.Punctuation) {
		g.punctuation[spec.Punctuation[i]] = struct{}{}
	}

	slices.SortStableFunc(g.operators, func(a, b Operator) int {
		return cmp.Compare(len(b.Text), len(a.Text))
	})

	return g
}

// IsKeyword reports whether word is a strict keyword.
func (g *Grammar) IsKeyword(word string) bool {
	_, ok := g.keywords[word]
	return ok
}

// Contextual returns the contextual keyword rule for word, if any.
func (g *Grammar) Contextual(word string) (ContextualKeyword, bool) {
	ck, ok := g.contextual[word]
	return ck, ok
}

// MatchOperator returns the longest operator that prefixes src.
func (g *Grammar) MatchOperator(src string) (Operator, bool) {
	for _, op := range g.operators {
		if strings.HasPrefix(src, op.Text) {
			return op, true
		}
	}
	return Operator{}, false
}

// Operators returns a copy of the operator table, longest first.
func (g *Grammar) Operators() []Operator {
	return slices.Clone(g.operators)
}

// IsPunctuation reports whether b is a single-byte structural symbol.
func (g *Grammar) IsPunctuation(b byte) bool {
	_, ok := g.punctuation[b]
	return ok
}

// Keywords returns the strict keyword set, sorted.
func (g *Grammar) Keywords() []string {
	words := make([]string, 0, len(g.keywords))
	for kw := range g.keywords {
		words = append(words, kw)
	}
	slices.Sort(words)
	return words
}

// HasExtension reports whether the grammar claims the given file extension.
func (g *Grammar) HasExtension(ext string) bool {
	return slices.Contains(g.Extensions, strings.ToLower(ext))
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
