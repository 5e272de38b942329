package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by problem count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByTokens sorts by token count (descending by default).
	SortByTokens SortField = "tokens"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByTokens:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// ProblemsOnly limits ByFile to files that failed or have lexical
	// problems.
	ProblemsOnly bool

	// SortBy specifies how to sort ByFile and ByGrammar.
	SortBy SortField

	// SortDesc sorts counts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		SortBy:   SortByCount,
		SortDesc: true,
	}
}
