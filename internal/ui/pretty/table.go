package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/synlex/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, GRAMMAR, TOKENS, ERRORS, UNCLOSED
	minFileWidth     = 20
	minGrammarWidth  = 8
	numberWidth      = 8
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow is one file in the overview table.
type TableRow struct {
	File     string
	Grammar  string
	Tokens   int
	Errors   int
	Unclosed int
	Failed   bool
}

// TableFormatter formats a run as a per-file overview table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Rows builds table rows from a result. display maps an outcome path to the
// path shown in the FILE column.
func Rows(result *runner.Result, display func(string) string) []TableRow {
	if result == nil {
		return nil
	}
	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		row := TableRow{File: display(file.Path), Grammar: file.Grammar}
		if file.Err != nil {
			row.Failed = true
			row.Grammar = "-"
		}
		for _, n := range file.Counts {
			row.Tokens += n
		}
		row.Errors = len(file.Errors)
		row.Unclosed = len(file.Unclosed)
		rows = append(rows, row)
	}
	return rows
}

// FormatTable renders rows with a header and separators.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	fileWidth, grammarWidth := t.columnWidths(rows)

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s",
		fileWidth, "FILE",
		grammarWidth, "GRAMMAR",
		numberWidth, "TOKENS",
		numberWidth, "ERRORS",
		numberWidth, "UNCLOSED",
	)
	separator := t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, len(header)))

	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(separator + "\n")

	for _, row := range rows {
		line := fmt.Sprintf(" %-*s  %-*s  %*s  %*d  %*d",
			fileWidth, truncate(row.File, fileWidth),
			grammarWidth, row.Grammar,
			numberWidth, tokenCell(row),
			numberWidth, row.Errors,
			numberWidth, row.Unclosed,
		)
		if row.Failed || row.Errors > 0 || row.Unclosed > 0 {
			line = t.styles.TableErrorRow.Render(line)
		}
		builder.WriteString(line + "\n")
	}

	builder.WriteString(separator + "\n")

	return builder.String()
}

func tokenCell(row TableRow) string {
	if row.Failed {
		return "failed"
	}
	return strconv.Itoa(row.Tokens)
}

func (t *TableFormatter) columnWidths(rows []TableRow) (fileWidth, grammarWidth int) {
	fileWidth, grammarWidth = minFileWidth, minGrammarWidth
	for _, row := range rows {
		fileWidth = max(fileWidth, len(row.File))
		grammarWidth = max(grammarWidth, len(row.Grammar))
	}

	// Constrain to terminal width by shrinking the file column.
	total := fileWidth + grammarWidth + 3*numberWidth + tablePadding*tableColumnCount
	if total > t.termWidth {
		fileWidth = max(minFileWidth, fileWidth-(total-t.termWidth))
	}
	return fileWidth, grammarWidth
}

// truncate shortens s to width, keeping the tail of long paths.
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[len(s)-width:]
	}
	return "..." + s[len(s)-(width-3):]
}
