package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/synlex/pkg/lexer"
)

// Messages for each error kind.
var kindMessages = map[lexer.ErrorKind]string{
	lexer.ErrKindUnterminated:  "unterminated construct",
	lexer.ErrKindUnbalancedPop: "closing delimiter without an open construct",
	lexer.ErrKindUnknownLexeme: "unrecognized input",
}

// FormatLexError formats one recovered lexical error for terminal output.
// idx resolves the error's byte offset to a line and column.
func (s *Styles) FormatLexError(path string, lexErr *lexer.Error, idx *lexer.LineIndex, showContext bool) string {
	var builder strings.Builder

	line, col := idx.Position(lexErr.Span.Start)
	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), line, col)

	message := kindMessages[lexErr.Kind]
	if lexErr.Frame != lexer.FrameNone {
		message += " (" + lexErr.Frame.String() + ")"
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(message),
		s.Kind.Render("("+lexErr.Kind.String()+")"),
	))

	if showContext {
		builder.WriteString(s.FormatSourceContext(idx.Line(line), col))
	}

	return builder.String()
}

// FormatUnclosed formats a construct still open at end of input.
func (s *Styles) FormatUnclosed(path string, frame lexer.Frame, idx *lexer.LineIndex) string {
	line, col := idx.Position(frame.Start)
	return fmt.Sprintf("  %s:%d:%d  %s  %s\n",
		s.FilePath.Render(path), line, col,
		s.Warning.Render("warning"),
		s.Message.Render(frame.Kind.String()+" opened here is never closed"),
	)
}

// FormatSourceContext formats the source line with a caret under the 1-based
// byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		prefix := line[:min(column-1, len(line))]
		padding := indent + strings.Repeat(" ", utf8.RuneCountInString(prefix))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, grammarName string, problems int) string {
	header := s.FilePath.Render(path)
	if grammarName != "" {
		header += s.Dim.Render(" [" + grammarName + "]")
	}
	if problems > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", problems, plural(problems, "problem", "problems")))
	}
	return header
}

// FormatToken formats one token as `line:col category "text"`.
func (s *Styles) FormatToken(tok lexer.Token, idx *lexer.LineIndex) string {
	line, col := idx.Position(tok.Span.Start)
	out := fmt.Sprintf("%s %s %s",
		s.Location.Render(fmt.Sprintf("%d:%d", line, col)),
		s.Category.Render(tok.Category.String()),
		s.Text.Render(fmt.Sprintf("%q", tok.Text)),
	)
	if tok.HasError() {
		out += " " + s.Error.Render(tok.Err.String())
	}
	return out
}
