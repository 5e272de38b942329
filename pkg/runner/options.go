// Package runner tokenizes many files concurrently and aggregates the results.
package runner

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and exclude globs. Empty means the
	// process working directory.
	WorkingDir string

	// Grammar forces one grammar for every file. Empty selects per file.
	Grammar string

	// Extensions are additional file extensions to pick up during directory
	// walks, on top of those claimed by registered grammars. Files found
	// this way get a grammar from content detection.
	Extensions []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// Markdown enables tokenizing the fenced code blocks of Markdown files.
	Markdown bool

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// IncludeWhitespace keeps whitespace tokens in outcomes.
	IncludeWhitespace bool

	// MaxFileSize skips files larger than this many bytes. Zero or negative
	// means fsutil.DefaultMaxFileSize.
	MaxFileSize int64

	// Jobs bounds the worker pool. Zero or negative means runtime.NumCPU().
	Jobs int
}

// MarkdownExtensions returns the file extensions treated as Markdown.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
