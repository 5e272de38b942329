// Package config defines the configuration types for synlex.
// These types are plain data with no dependency on how they are loaded.
package config

// OutputFormat specifies how results are written.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the root configuration structure.
type Config struct {
	// Grammar forces one grammar for every input. Empty selects per file.
	Grammar string `yaml:"grammar,omitempty"`

	// GrammarFiles are YAML grammar packs registered on top of the builtins.
	// Relative paths resolve against the directory of the config file that
	// names them.
	GrammarFiles []string `yaml:"grammar_files,omitempty"`

	// Extensions are extra file extensions picked up during directory walks.
	Extensions []string `yaml:"extensions,omitempty"`

	// Exclude contains glob patterns for files and directories to skip.
	Exclude []string `yaml:"exclude,omitempty"`

	// Markdown tokenizes the fenced code blocks of Markdown files.
	Markdown bool `yaml:"markdown,omitempty"`

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool `yaml:"follow_symlinks,omitempty"`

	// IncludeWhitespace keeps whitespace tokens in the output.
	IncludeWhitespace bool `yaml:"include_whitespace,omitempty"`

	// Jobs is the number of parallel workers. Zero means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	// MaxFileSize skips files larger than this many bytes. Zero means 32 MiB.
	MaxFileSize int64 `yaml:"max_file_size,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Color controls colorized output.
	Color ColorMode `yaml:"color,omitempty"`

	// CLI-level options (not persisted to config files).

	// Strict makes lexical errors fail the run.
	Strict bool `yaml:"-"`

	// Compact minifies JSON output.
	Compact bool `yaml:"-"`

	// Quiet suppresses the summary line.
	Quiet bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format: FormatText,
		Color:  ColorAuto,
		Jobs:   0, // 0 means use runtime.NumCPU
	}
}
