package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/synlex/pkg/grammar"
)

// Scanner is a cursor over source text that produces raw lexemes by maximal
// munch. Context-sensitive lexemes (block comments, raw strings, attributes)
// push a frame while they are being scanned; a macro invocation leaves a
// token-tree frame open until its brackets balance.
//
// A Scanner is not safe for concurrent use.
type Scanner struct {
	src   string
	pos   int
	g     *grammar.Grammar
	stack ContextStack

	// prev is the last lexeme that was not whitespace or a comment.
	prev    Lexeme
	hasPrev bool

	// pendingMacro is set between a macro name and its opening bracket.
	pendingMacro bool
}

// NewScanner creates a scanner positioned at the start of src.
func NewScanner(src string, g *grammar.Grammar) *Scanner {
	return &Scanner{src: src, g: g}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int {
	return s.pos
}

// Stack returns the scanner's context stack. Callers must treat it as read-only.
func (s *Scanner) Stack() *ContextStack {
	return &s.stack
}

// Reset rewinds the scanner onto a new document with an empty stack.
func (s *Scanner) Reset(src string) {
	s.src = src
	s.pos = 0
	s.stack.Reset()
	s.prev = Lexeme{}
	s.hasPrev = false
	s.pendingMacro = false
}

// Next returns the next lexeme, or false at end of input. Every call that
// returns true advances by at least one byte.
func (s *Scanner) Next() (Lexeme, bool) {
	if s.pos >= len(s.src) {
		return Lexeme{}, false
	}

	start := s.pos
	lx := s.scan()

	if s.pos <= start {
		// No rule consumed anything; take one rune so the pass always ends.
		_, size := utf8.DecodeRuneInString(s.src[start:])
		s.pos = start + size
		lx = Lexeme{Shape: ShapeUnknown, Err: ErrKindUnknownLexeme}
	}

	lx.Span = Span{Start: start, End: s.pos}
	lx.Text = s.src[start:s.pos]

	switch lx.Shape {
	case ShapeWhitespace:
	case ShapeMacroName:
		s.prev, s.hasPrev = lx, true
	case ShapeLineComment, ShapeBlockComment:
		s.pendingMacro = false
	default:
		s.pendingMacro = false
		s.prev, s.hasPrev = lx, true
	}

	return lx, true
}

func (s *Scanner) scan() Lexeme {
	c := s.src[s.pos]
	rules := s.g.Rules

	if s.pos == 0 && rules.Shebang && strings.HasPrefix(s.src, "#!") && !strings.HasPrefix(s.src, "#![") {
		s.skipLine()
		return Lexeme{Shape: ShapeLineComment}
	}

	if r, _ := utf8.DecodeRuneInString(s.src[s.pos:]); unicode.IsSpace(r) {
		s.skipWhitespace()
		return Lexeme{Shape: ShapeWhitespace}
	}

	if rules.BlockOpen != "" && s.hasPrefix(rules.BlockOpen) {
		return s.scanBlockComment()
	}
	for _, prefix := range rules.LineComments {
		if s.hasPrefix(prefix) {
			s.skipLine()
			return Lexeme{Shape: ShapeLineComment}
		}
	}
	if rules.BlockClose != "" && s.hasPrefix(rules.BlockClose) {
		// In "a */* c */" the close shares its tail with a comment opening:
		// the head is an operator and the comment follows.
		if rules.BlockOpen != "" && strings.HasPrefix(s.src[s.pos+1:], rules.BlockOpen) {
			if op, ok := s.g.MatchOperator(s.src[s.pos : s.pos+1]); ok {
				s.pos += len(op.Text)
				return Lexeme{Shape: ShapeSymbol, Op: op.Kind}
			}
		}
		// A comment close in default mode pops a frame that was never pushed.
		return s.scanStray()
	}

	if rules.Attributes && (s.hasPrefix("#[") || s.hasPrefix("#![")) {
		return s.scanAttribute()
	}

	if lx, ok := s.scanPrefixedLiteral(); ok {
		return lx
	}

	switch {
	case c == '"':
		if !s.scanQuoted('"') {
			return Lexeme{Shape: ShapeString, Err: ErrKindUnterminated}
		}
		return Lexeme{Shape: ShapeString}
	case c == '\'':
		return s.scanQuote()
	case c == '`' && rules.BacktickRawStrings:
		return s.scanBacktick()
	case isDigit(c):
		return s.scanNumber()
	}

	if r, _ := utf8.DecodeRuneInString(s.src[s.pos:]); isIdentStart(r) {
		return s.scanWord()
	}

	if _, open, ok := bracketKind(c); ok && s.g.IsPunctuation(c) {
		if open {
			return s.scanOpenBracket()
		}
		return s.scanCloseBracket()
	}

	if op, ok := s.g.MatchOperator(s.src[s.pos:]); ok {
		s.pos += len(op.Text)
		return Lexeme{Shape: ShapeSymbol, Op: op.Kind}
	}
	if s.g.IsPunctuation(c) {
		s.pos++
		return Lexeme{Shape: ShapeSymbol}
	}

	return s.scanUnknown()
}

// scanPrefixedLiteral handles letter-prefixed literals: r"..", r#".."#,
// b"..", b'x', br"..", c"..", cr"..". It also recognizes r#ident.
func (s *Scanner) scanPrefixedLiteral() (Lexeme, bool) {
	rules := s.g.Rules
	rest := s.src[s.pos:]

	switch {
	case rules.ByteStrings && strings.HasPrefix(rest, "b\""):
		s.pos++
		if !s.scanQuoted('"') {
			return Lexeme{Shape: ShapeByteString, Err: ErrKindUnterminated}, true
		}
		return Lexeme{Shape: ShapeByteString}, true
	case rules.ByteStrings && strings.HasPrefix(rest, "b'"):
		s.pos++
		return s.scanCharBody(), true
	case rules.ByteStrings && strings.HasPrefix(rest, "br") && s.isRawStart(2):
		return s.scanRawString(2, ShapeByteString), true
	case rules.CStrings && strings.HasPrefix(rest, "c\""):
		s.pos++
		if !s.scanQuoted('"') {
			return Lexeme{Shape: ShapeString, Err: ErrKindUnterminated}, true
		}
		return Lexeme{Shape: ShapeString}, true
	case rules.CStrings && strings.HasPrefix(rest, "cr") && s.isRawStart(2):
		return s.scanRawString(2, ShapeRawString), true
	case rules.RawStrings && strings.HasPrefix(rest, "r") && s.isRawStart(1):
		return s.scanRawString(1, ShapeRawString), true
	case rules.RawIdentifiers && strings.HasPrefix(rest, "r#"):
		if r, _ := utf8.DecodeRuneInString(rest[2:]); isIdentStart(r) {
			s.pos += 2
			s.skipIdent()
			return Lexeme{Shape: ShapeRawWord}, true
		}
	}

	return Lexeme{}, false
}

// isRawStart reports whether a run of '#' and then '"' follows the prefix.
func (s *Scanner) isRawStart(prefixLen int) bool {
	i := s.pos + prefixLen
	for i < len(s.src) && s.src[i] == '#' {
		i++
	}
	return i < len(s.src) && s.src[i] == '"'
}

// scanRawString scans a raw string. It closes only on '"' followed by the
// same number of '#' that opened it.
func (s *Scanner) scanRawString(prefixLen int, shape Shape) Lexeme {
	start := s.pos
	s.pos += prefixLen

	hashes := 0
	for s.src[s.pos] == '#' {
		hashes++
		s.pos++
	}
	s.pos++ // opening quote

	s.stack.Push(Frame{Kind: FrameRawString, Start: start, Hashes: hashes})
	closer := strings.Repeat("#", hashes)

	for {
		idx := strings.IndexByte(s.src[s.pos:], '"')
		if idx < 0 {
			s.pos = len(s.src)
			return Lexeme{Shape: shape, Err: ErrKindUnterminated}
		}
		s.pos += idx + 1
		if strings.HasPrefix(s.src[s.pos:], closer) {
			s.pos += hashes
			_, _ = s.stack.Pop()
			return Lexeme{Shape: shape}
		}
	}
}

// scanBlockComment scans a block comment, counting depth when the grammar
// allows nesting. It closes only when depth returns to zero.
func (s *Scanner) scanBlockComment() Lexeme {
	open, closer := s.g.Rules.BlockOpen, s.g.Rules.BlockClose
	nested := s.g.Rules.NestedBlockComments

	s.stack.Push(Frame{Kind: FrameBlockComment, Start: s.pos, Depth: 1})
	s.pos += len(open)

	for s.pos < len(s.src) {
		top := s.stack.Top()
		switch {
		case nested && s.hasPrefix(open):
			top.Depth++
			s.pos += len(open)
		case s.hasPrefix(closer):
			top.Depth--
			s.pos += len(closer)
			if top.Depth == 0 {
				_, _ = s.stack.Pop()
				return Lexeme{Shape: ShapeBlockComment}
			}
		default:
			s.pos++
		}
	}

	return Lexeme{Shape: ShapeBlockComment, Err: ErrKindUnterminated}
}

// scanAttribute scans #[...] or #![...] as one lexeme, respecting nested
// brackets and skipping over string and char literals inside.
func (s *Scanner) scanAttribute() Lexeme {
	start := s.pos
	if s.hasPrefix("#!") {
		s.pos += 3
	} else {
		s.pos += 2
	}

	s.stack.Push(Frame{Kind: FrameAttribute, Start: start, Depth: 1})

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '[':
			s.stack.Top().Depth++
			s.pos++
		case c == ']':
			top := s.stack.Top()
			top.Depth--
			s.pos++
			if top.Depth == 0 {
				_, _ = s.stack.Pop()
				return Lexeme{Shape: ShapeAttribute}
			}
		case c == '"':
			if !s.scanQuoted('"') {
				return Lexeme{Shape: ShapeAttribute, Err: ErrKindUnterminated}
			}
		case c == 'r' && s.g.Rules.RawStrings && s.isRawStart(1) && !s.afterIdentByte():
			if lx := s.scanRawString(1, ShapeRawString); lx.Err != ErrNone {
				return Lexeme{Shape: ShapeAttribute, Err: ErrKindUnterminated}
			}
		case c == '\'':
			// Lifetimes and stray quotes only advance the cursor; an
			// unterminated char stops at its line end.
			_ = s.scanQuote()
		case c == '\n':
			s.stack.Top().Multiline = true
			s.pos++
		default:
			s.pos++
		}
	}

	return Lexeme{Shape: ShapeAttribute, Err: ErrKindUnterminated}
}

// scanQuoted consumes an escape-aware quoted literal starting at the opening
// quote. It reports false when input ends before the closing quote.
func (s *Scanner) scanQuoted(quote byte) bool {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos = min(s.pos+2, len(s.src))
		case quote:
			s.pos++
			return true
		default:
			s.pos++
		}
	}
	return false
}

func (s *Scanner) scanBacktick() Lexeme {
	s.pos++
	idx := strings.IndexByte(s.src[s.pos:], '`')
	if idx < 0 {
		s.pos = len(s.src)
		return Lexeme{Shape: ShapeRawString, Err: ErrKindUnterminated}
	}
	s.pos += idx + 1
	return Lexeme{Shape: ShapeRawString}
}

// scanQuote disambiguates a lifetime ('a, 'static) from a char literal ('a').
// A lifetime is a quote, an identifier, and no closing quote right after a
// single character.
func (s *Scanner) scanQuote() Lexeme {
	rest := s.src[s.pos+1:]
	if rest == "" {
		s.pos++
		return Lexeme{Shape: ShapeUnknown, Err: ErrKindUnknownLexeme}
	}

	r, size := utf8.DecodeRuneInString(rest)
	if r != '\\' && len(rest) > size && rest[size] == '\'' {
		s.pos += 1 + size + 1
		return Lexeme{Shape: ShapeChar}
	}

	if s.g.Rules.Lifetimes {
		if isIdentStart(r) {
			s.pos++
			s.skipIdent()
			return Lexeme{Shape: ShapeLifetime}
		}
		if r != '\\' {
			s.pos++
			return Lexeme{Shape: ShapeUnknown, Err: ErrKindUnknownLexeme}
		}
	}

	return s.scanCharBody()
}

// scanCharBody scans a char literal from its opening quote. An unterminated
// char literal ends at the end of its line rather than the end of input.
func (s *Scanner) scanCharBody() Lexeme {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos = min(s.pos+2, len(s.src))
		case '\'':
			s.pos++
			return Lexeme{Shape: ShapeChar}
		case '\n', '\r':
			return Lexeme{Shape: ShapeChar, Err: ErrKindUnterminated}
		default:
			s.pos++
		}
	}
	return Lexeme{Shape: ShapeChar, Err: ErrKindUnterminated}
}

// scanNumber consumes a numeric literal: radix prefix, digits with '_'
// separators, fraction, exponent and a trailing type suffix, as one lexeme.
// A leading sign is never part of the literal.
func (s *Scanner) scanNumber() Lexeme {
	if s.src[s.pos] == '0' && s.pos+1 < len(s.src) {
		var isDigitOf func(byte) bool
		switch s.src[s.pos+1] {
		case 'x', 'X':
			isDigitOf = isHexDigit
		case 'o', 'O', 'b', 'B':
			isDigitOf = isDigit
		}
		if isDigitOf != nil {
			s.pos += 2
			s.skipDigits(isDigitOf)
			s.skipSuffix()
			return Lexeme{Shape: ShapeNumber}
		}
	}

	s.skipDigits(isDigit)

	// Fraction. After a '.' token this is a tuple index (t.0.1), and '..'
	// is a range operator.
	if s.peek(0) == '.' && !s.afterDot() {
		next := s.peek(1)
		switch {
		case isDigit(next):
			s.pos++
			s.skipDigits(isDigit)
		case next != '.' && !isIdentStartByte(next):
			s.pos++
		}
	}

	// Exponent.
	if e := s.peek(0); e == 'e' || e == 'E' {
		i := 1
		if sign := s.peek(1); sign == '+' || sign == '-' {
			i = 2
		}
		if isDigit(s.peek(i)) || (i == 1 && s.peek(1) == '_') {
			s.pos += i
			s.skipDigits(isDigit)
		}
	}

	s.skipSuffix()
	return Lexeme{Shape: ShapeNumber}
}

// scanWord consumes an identifier or keyword. Followed by '!' (but not
// '!='), it becomes a macro name; a bracket after the '!' arms the
// token-tree frame.
func (s *Scanner) scanWord() Lexeme {
	start := s.pos
	s.skipIdent()

	if !s.g.Rules.Macros || s.peek(0) != '!' || s.peek(1) == '=' {
		return Lexeme{Shape: ShapeWord}
	}
	if s.g.IsKeyword(s.src[start:s.pos]) {
		return Lexeme{Shape: ShapeWord}
	}

	s.pos++ // '!'

	i := s.pos
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i < len(s.src) {
		if _, open, ok := bracketKind(s.src[i]); ok && open {
			s.pendingMacro = true
		}
	}

	return Lexeme{Shape: ShapeMacroName}
}

// scanOpenBracket opens a macro token tree if a macro name is pending, or
// deepens the current one.
func (s *Scanner) scanOpenBracket() Lexeme {
	kind, _, _ := bracketKind(s.src[s.pos])
	s.pos++

	if s.pendingMacro {
		f := Frame{Kind: FrameMacroTree, Start: s.pos - 1, Open: s.src[s.pos-1]}
		f.Brackets[kind] = 1
		s.stack.Push(f)
		return Lexeme{Shape: ShapeSymbol}
	}

	if top := s.stack.Top(); top != nil && top.Kind == FrameMacroTree {
		top.Brackets[kind]++
	}
	return Lexeme{Shape: ShapeSymbol}
}

// scanCloseBracket balances a bracket inside a macro token tree. A close
// with no matching open of its kind is an unbalanced pop.
func (s *Scanner) scanCloseBracket() Lexeme {
	top := s.stack.Top()
	if top == nil || top.Kind != FrameMacroTree {
		s.pos++
		return Lexeme{Shape: ShapeSymbol}
	}

	kind, _, _ := bracketKind(s.src[s.pos])
	if top.Brackets[kind] == 0 {
		return s.scanStray()
	}

	s.pos++
	top.Brackets[kind]--
	if top.Balanced() {
		_, _ = s.stack.Pop()
	}
	return Lexeme{Shape: ShapeSymbol}
}

// scanStray emits an unbalanced close as an Unknown run that resyncs at the
// next whitespace.
func (s *Scanner) scanStray() Lexeme {
	s.skipToWhitespace()
	return Lexeme{Shape: ShapeStrayClose, Err: ErrKindUnbalancedPop}
}

// scanUnknown consumes a run of runes no rule recognizes.
func (s *Scanner) scanUnknown() Lexeme {
	_, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	for s.pos < len(s.src) && !s.startsLexeme() {
		_, size = utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}
	return Lexeme{Shape: ShapeUnknown, Err: ErrKindUnknownLexeme}
}

// startsLexeme reports whether some rule other than the unknown fallback
// matches at the current position.
func (s *Scanner) startsLexeme() bool {
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	if unicode.IsSpace(r) || isIdentStart(r) || unicode.IsDigit(r) {
		return true
	}
	if r >= utf8.RuneSelf {
		return false
	}
	c := byte(r)
	if c == '"' || c == '\'' || (c == '`' && s.g.Rules.BacktickRawStrings) {
		return true
	}
	if s.g.IsPunctuation(c) {
		return true
	}
	_, ok := s.g.MatchOperator(s.src[s.pos:])
	return ok
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

func (s *Scanner) skipToWhitespace() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

func (s *Scanner) skipLine() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
		s.pos++
	}
}

func (s *Scanner) skipIdent() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentContinue(r) {
			return
		}
		s.pos += size
	}
}

func (s *Scanner) skipDigits(isDigitOf func(byte) bool) {
	for s.pos < len(s.src) && (isDigitOf(s.src[s.pos]) || s.src[s.pos] == '_') {
		s.pos++
	}
}

// skipSuffix consumes an identifier-shaped type suffix such as u8 or f64.
func (s *Scanner) skipSuffix() {
	if r, _ := utf8.DecodeRuneInString(s.src[s.pos:]); s.pos < len(s.src) && isIdentStart(r) {
		s.skipIdent()
	}
}

func (s *Scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

func (s *Scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

// afterDot reports whether the previous significant lexeme was a '.' path
// operator, which makes a following number a tuple index.
func (s *Scanner) afterDot() bool {
	return s.hasPrev && s.prev.Shape == ShapeSymbol && s.prev.Text == "."
}

// afterIdentByte reports whether the byte before the cursor continues an
// identifier, so an 'r' there is not a raw-string prefix.
func (s *Scanner) afterIdentByte() bool {
	if s.pos == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s.src[:s.pos])
	return isIdentContinue(r)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= utf8.RuneSelf
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
