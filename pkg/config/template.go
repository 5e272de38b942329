package config

import (
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Grammars lists the grammar names to mention in the template.
	Grammars []string

	// Full writes every option, commented out, with its default.
	Full bool
}

// GenerateTemplate creates a commented .synlex.yml template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var b strings.Builder

	b.WriteString("# synlex configuration\n")
	b.WriteString("# Settings here are overridden by SYNLEX_* environment variables and flags.\n\n")

	b.WriteString("# Force one grammar for every file. Leave unset to select by extension\n")
	b.WriteString("# and content.\n")
	if len(opts.Grammars) > 0 {
		fmt.Fprintf(&b, "# Available: %s\n", strings.Join(opts.Grammars, ", "))
	}
	b.WriteString("# grammar: rust\n\n")

	b.WriteString("# Additional grammar packs (YAML), relative to this file.\n")
	b.WriteString("# grammar_files:\n#   - grammars/toy.yml\n\n")

	b.WriteString("# Glob patterns to skip.\n")
	b.WriteString("exclude:\n  - \"target/**\"\n  - \"vendor/**\"\n")

	if !opts.Full {
		return []byte(b.String())
	}

	b.WriteString("\n# Extra file extensions to pick up; their grammar is detected from content.\n")
	b.WriteString("# extensions:\n#   - .rlib\n\n")
	b.WriteString("# Tokenize fenced code blocks in Markdown files.\n")
	b.WriteString("# markdown: false\n\n")
	b.WriteString("# Walk into symlinked directories.\n")
	b.WriteString("# follow_symlinks: false\n\n")
	b.WriteString("# Keep whitespace tokens in the output.\n")
	b.WriteString("# include_whitespace: false\n\n")
	b.WriteString("# Parallel workers; 0 means one per CPU.\n")
	b.WriteString("# jobs: 0\n\n")
	b.WriteString("# Skip files larger than this many bytes; 0 means 32 MiB.\n")
	b.WriteString("# max_file_size: 0\n\n")
	fmt.Fprintf(&b, "# Output format: %s, %s, %s or %s.\n", FormatText, FormatTable, FormatJSON, FormatSummary)
	fmt.Fprintf(&b, "# format: %s\n\n", FormatText)
	fmt.Fprintf(&b, "# Color: %s, %s or %s.\n", ColorAuto, ColorAlways, ColorNever)
	fmt.Fprintf(&b, "# color: %s\n", ColorAuto)

	return []byte(b.String())
}
