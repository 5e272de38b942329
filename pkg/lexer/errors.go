package lexer

import (
	"errors"
	"fmt"
)

// ErrorKind tags a token that was recovered from malformed input.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	ErrKindUnterminated
	ErrKindUnbalancedPop
	ErrKindUnknownLexeme
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrKindUnterminated:
		return "unterminated-construct"
	case ErrKindUnbalancedPop:
		return "unbalanced-context-pop"
	case ErrKindUnknownLexeme:
		return "unknown-lexeme"
	default:
		return "invalid"
	}
}

// Sentinels matched by errors.Is against *Error.
var (
	ErrUnterminated  = errors.New("unterminated construct")
	ErrUnbalancedPop = errors.New("unbalanced context pop")
	ErrUnknownLexeme = errors.New("unknown lexeme")
)

// Error describes one recovered problem. None of them stop tokenization.
type Error struct {
	Kind ErrorKind
	Span Span

	// Frame is the construct involved, when there is one.
	Frame FrameKind
}

func (e *Error) Error() string {
	if e.Frame != FrameNone {
		return fmt.Sprintf("%s: %s at [%d, %d)", e.sentinel(), e.Frame, e.Span.Start, e.Span.End)
	}
	return fmt.Sprintf("%s at [%d, %d)", e.sentinel(), e.Span.Start, e.Span.End)
}

// Is matches the package sentinels.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case ErrKindUnterminated:
		return ErrUnterminated
	case ErrKindUnbalancedPop:
		return ErrUnbalancedPop
	case ErrKindUnknownLexeme:
		return ErrUnknownLexeme
	default:
		return nil
	}
}
