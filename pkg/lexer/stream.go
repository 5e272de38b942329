// Package lexer implements a grammar-driven tokenizer that classifies every
// byte of a source document into a highlighting category.
//
// The tokenizer is total: the spans it yields are contiguous, do not
// overlap, and cover the input exactly once, whether or not the input is
// well formed. Malformed input is reported inline on tokens and through
// Stream.Errors; it never stops the pass.
package lexer

import (
	"iter"
	"strings"

	"github.com/yaklabco/synlex/pkg/grammar"
)

// Stream is a lazy, forward-only, non-restartable sequence of tokens over
// one document. Abandoning a Stream part way through is valid.
type Stream struct {
	src        string
	scanner    *Scanner
	classifier Classifier

	prev    Token
	hasPrev bool

	errs []*Error
	done bool
}

// New creates a Stream over src using grammar g.
func New(src string, g *grammar.Grammar) *Stream {
	return &Stream{
		src:        src,
		scanner:    NewScanner(src, g),
		classifier: NewClassifier(g),
	}
}

// Next returns the next token, or false once the input is exhausted.
func (s *Stream) Next() (Token, bool) {
	if s.done {
		return Token{}, false
	}

	lx, ok := s.scanner.Next()
	if !ok {
		s.done = true
		return Token{}, false
	}

	tok := Token{
		Category: s.classifier.Classify(lx, Lookback{Prev: s.prev, HasPrev: s.hasPrev}),
		Span:     lx.Span,
		Text:     lx.Text,
		Err:      lx.Err,
	}
	if tok.Category == Operator {
		tok.Op = lx.Op
	}

	if lx.Err != ErrNone {
		s.errs = append(s.errs, &Error{Kind: lx.Err, Span: lx.Span, Frame: s.frameOf(lx)})
	}

	if lx.Span.End == len(s.src) {
		s.finish(&tok)
	}

	if !tok.Category.IsTrivia() {
		s.prev, s.hasPrev = tok, true
	}

	return tok, true
}

// finish attaches constructs still open at end of input to the final token.
// Frames whose lexeme already reported itself unterminated are not repeated.
func (s *Stream) finish(tok *Token) {
	stack := s.scanner.Stack()
	if stack.Empty() {
		return
	}

	tok.Unclosed = stack.Frames()
	for _, f := range tok.Unclosed {
		if f.Kind != FrameMacroTree {
			continue
		}
		s.errs = append(s.errs, &Error{
			Kind:  ErrKindUnterminated,
			Span:  Span{Start: f.Start, End: len(s.src)},
			Frame: f.Kind,
		})
	}
}

// All returns an iterator over the remaining tokens.
func (s *Stream) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Collect drains the remaining tokens into a slice.
func (s *Stream) Collect() []Token {
	var tokens []Token
	for tok := range s.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Errors returns the problems recovered from so far.
func (s *Stream) Errors() []*Error {
	return s.errs
}

// Unclosed returns the constructs currently open. After the stream is
// drained, a non-empty result means the document was not well formed.
func (s *Stream) Unclosed() []Frame {
	return s.scanner.Stack().Frames()
}

// Tokenize runs a full pass over src and returns every token.
func Tokenize(src string, g *grammar.Grammar) []Token {
	return New(src, g).Collect()
}

// frameOf names the construct behind a recovered lexeme. An unterminated
// lexeme that pushed a frame left it open on the stack.
func (s *Stream) frameOf(lx Lexeme) FrameKind {
	switch lx.Err {
	case ErrKindUnterminated:
		for _, f := range s.scanner.Stack().frames {
			if f.Start == lx.Span.Start {
				return f.Kind
			}
		}
		return FrameNone
	case ErrKindUnbalancedPop:
		if closer := s.scanner.g.Rules.BlockClose; closer != "" && strings.HasPrefix(lx.Text, closer) {
			return FrameBlockComment
		}
		return FrameMacroTree
	default:
		return FrameNone
	}
}
