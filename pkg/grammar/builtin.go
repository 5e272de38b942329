package grammar

// Built-in grammar names.
const (
	NameRust = "rust"
	NameGo   = "go"
)

// Rust returns the built-in Rust grammar.
func Rust() *Grammar {
	return New(Spec{
		Name:       NameRust,
		Aliases:    []string{"rs"},
		Extensions: []string{".rs"},
		Keywords: []string{
			"as", "async", "await", "break", "const", "continue", "crate", "dyn",
			"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
			"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
			"self", "Self", "static", "struct", "super", "trait", "true", "type",
			"unsafe", "use", "where", "while",
			// Reserved for future use.
			"abstract", "become", "box", "do", "final", "gen", "macro", "override",
			"priv", "try", "typeof", "unsized", "virtual", "yield",
		},
		Contextual: []ContextualKeyword{
			{Word: "union", NotAfter: []string{".", "::"}},
			{Word: "auto", NotAfter: []string{".", "::"}},
			{Word: "default", NotAfter: []string{".", "::"}},
			{Word: "safe", NotAfter: []string{".", "::"}},
			{Word: "raw", NotAfter: []string{".", "::"}},
			{Word: "macro_rules", NotAfter: []string{".", "::"}},
		},
		Operators:   rustOperators(),
		Punctuation: "{}()[],;:#$",
		Rules: Rules{
			LineComments:        []string{"//"},
			BlockOpen:           "/*",
			BlockClose:          "*/",
			NestedBlockComments: true,
			RawStrings:          true,
			ByteStrings:         true,
			CStrings:            true,
			Lifetimes:           true,
			Attributes:          true,
			Macros:              true,
			RawIdentifiers:      true,
			Shebang:             true,
		},
	})
}

func rustOperators() []Operator {
	return []Operator{
		{"<<=", OpAssignment}, {">>=", OpAssignment},
		{"...", OpRange}, {"..=", OpRange}, {"..", OpRange},
		{"::", OpPath}, {".", OpPath},
		{"->", OpArrow}, {"=>", OpArrow},
		{"==", OpComparison}, {"!=", OpComparison}, {"<=", OpComparison},
		{">=", OpComparison}, {"<", OpComparison}, {">", OpComparison},
		{"&&", OpLogical}, {"||", OpLogical}, {"!", OpLogical},
		{"+=", OpAssignment}, {"-=", OpAssignment}, {"*=", OpAssignment},
		{"/=", OpAssignment}, {"%=", OpAssignment}, {"^=", OpAssignment},
		{"&=", OpAssignment}, {"|=", OpAssignment}, {"=", OpAssignment},
		{"<<", OpBitwise}, {">>", OpBitwise}, {"&", OpBitwise}, {"|", OpBitwise},
		{"^", OpBitwise},
		{"+", OpArithmetic}, {"-", OpArithmetic}, {"*", OpArithmetic},
		{"/", OpArithmetic}, {"%", OpArithmetic},
		{"?", OpOther}, {"@", OpOther}, {"~", OpOther},
	}
}

// Go returns the built-in Go grammar.
func Go() *Grammar {
	return New(Spec{
		Name:       NameGo,
		Aliases:    []string{"golang"},
		Extensions: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select", "struct",
			"switch", "type", "var",
			"true", "false", "nil", "iota",
		},
		Operators: []Operator{
			{"<<=", OpAssignment}, {">>=", OpAssignment}, {"&^=", OpAssignment},
			{"...", OpOther},
			{"&&", OpLogical}, {"||", OpLogical}, {"!", OpLogical},
			{"<-", OpArrow},
			{"==", OpComparison}, {"!=", OpComparison}, {"<=", OpComparison},
			{">=", OpComparison}, {"<", OpComparison}, {">", OpComparison},
			{":=", OpAssignment}, {"+=", OpAssignment}, {"-=", OpAssignment},
			{"*=", OpAssignment}, {"/=", OpAssignment}, {"%=", OpAssignment},
			{"^=", OpAssignment}, {"&=", OpAssignment}, {"|=", OpAssignment},
			{"=", OpAssignment},
			{"++", OpArithmetic}, {"--", OpArithmetic},
			{"&^", OpBitwise}, {"<<", OpBitwise}, {">>", OpBitwise},
			{"&", OpBitwise}, {"|", OpBitwise}, {"^", OpBitwise},
			{"+", OpArithmetic}, {"-", OpArithmetic}, {"*", OpArithmetic},
			{"/", OpArithmetic}, {"%", OpArithmetic},
			{".", OpPath}, {"~", OpOther},
		},
		Punctuation: "{}()[],;:",
		Rules: Rules{
			LineComments:       []string{"//"},
			BlockOpen:          "/*",
			BlockClose:         "*/",
			BacktickRawStrings: true,
		},
	})
}

// Builtins returns fresh copies of every built-in grammar.
func Builtins() []*Grammar {
	return []*Grammar{Rust(), Go()}
}
