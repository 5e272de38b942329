package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/synlex/pkg/analysis"
	"github.com/yaklabco/synlex/pkg/lexer"
	"github.com/yaklabco/synlex/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// errorKinds lists the reportable error kinds in display order.
var errorKinds = []lexer.ErrorKind{
	lexer.ErrKindUnterminated,
	lexer.ErrKindUnbalancedPop,
	lexer.ErrKindUnknownLexeme,
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "1520 tokens in 3 files, 2 lexical errors (1 unterminated-construct, 1 unknown-lexeme) in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d %s in %d %s",
		stats.Tokens, plural(stats.Tokens, "token", "tokens"),
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles),
	)}

	total := 0
	var kindParts []string
	for _, kind := range errorKinds {
		if n := stats.ByError[kind]; n > 0 {
			total += n
			kindParts = append(kindParts, fmt.Sprintf("%d %s", n, kind))
		}
	}

	if total > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d lexical %s", total, plural(total, "error", "errors")))+
			" ("+strings.Join(kindParts, ", ")+")"+
			fmt.Sprintf(" in %d %s", stats.FilesWithLexErrors, plural(stats.FilesWithLexErrors, wordFile, wordFiles)))
	} else if stats.FilesWithLexErrors > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("unclosed constructs in %d %s",
			stats.FilesWithLexErrors, plural(stats.FilesWithLexErrors, wordFile, wordFiles))))
	} else {
		parts = append(parts, s.Success.Render("no lexical errors"))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block with a per-category
// breakdown.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files tokenized:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesWithLexErrors > 0 {
		builder.WriteString("  Files with errors: " +
			s.Error.Render(strconv.Itoa(stats.FilesWithLexErrors)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Tokens:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.Tokens)) + "\n")

	for _, category := range lexer.Categories() {
		n := stats.ByCategory[category]
		if n == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("    %-16s %s\n",
			s.Category.Render(category.String()+":"),
			s.SummaryValue.Render(strconv.Itoa(n)),
		))
	}

	var anyErrors bool
	for _, kind := range errorKinds {
		n := stats.ByError[kind]
		if n == 0 {
			continue
		}
		if !anyErrors {
			builder.WriteString("\n  Lexical errors:\n")
			anyErrors = true
		}
		builder.WriteString(fmt.Sprintf("    %-24s %s\n",
			kind.String()+":",
			s.Error.Render(strconv.Itoa(n)),
		))
	}

	builder.WriteString("\n")
	if stats.FilesWithLexErrors == 0 && stats.FilesErrored == 0 {
		builder.WriteString(s.Success.Render("Input tokenized cleanly"))
	} else {
		builder.WriteString(s.Failure.Render("Input has lexical problems"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatGrammarBreakdown formats per-grammar file and token counts. It
// returns an empty string when fewer than two grammars were used.
func (s *Styles) FormatGrammarBreakdown(grammars []analysis.GrammarAnalysis) string {
	if len(grammars) < 2 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Grammars"))
	builder.WriteString("\n")

	for _, g := range grammars {
		line := fmt.Sprintf("  %-12s %d %s, %d %s",
			g.Grammar,
			g.Files, plural(g.Files, wordFile, wordFiles),
			g.Tokens, plural(g.Tokens, "token", "tokens"),
		)
		if g.Problems() > 0 {
			line += ", " + s.Error.Render(fmt.Sprintf("%d %s", g.Problems(), plural(g.Problems(), "problem", "problems")))
		}
		builder.WriteString(line + "\n")
	}

	return builder.String()
}
