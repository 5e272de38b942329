package lexer

// FrameKind tags a ContextFrame.
type FrameKind uint8

const (
	FrameNone FrameKind = iota
	FrameRawString
	FrameBlockComment
	FrameMacroTree
	FrameAttribute
)

// String returns the name of the frame kind.
func (k FrameKind) String() string {
	switch k {
	case FrameNone:
		return "none"
	case FrameRawString:
		return "raw-string"
	case FrameBlockComment:
		return "block-comment"
	case FrameMacroTree:
		return "macro-token-tree"
	case FrameAttribute:
		return "attribute"
	default:
		return "invalid"
	}
}

// Bracket kinds tracked independently inside a macro token tree.
const (
	BracketParen = iota
	BracketSquare
	BracketCurly

	numBracketKinds
)

// bracketKind maps an open or close bracket byte to its kind.
func bracketKind(b byte) (kind int, open bool, ok bool) {
	switch b {
	case '(':
		return BracketParen, true, true
	case ')':
		return BracketParen, false, true
	case '[':
		return BracketSquare, true, true
	case ']':
		return BracketSquare, false, true
	case '{':
		return BracketCurly, true, true
	case '}':
		return BracketCurly, false, true
	default:
		return 0, false, false
	}
}

// Frame describes an open nested construct. Kind selects which payload
// fields are meaningful:
//
//	FrameRawString     Hashes
//	FrameBlockComment  Depth
//	FrameMacroTree     Open, Brackets
//	FrameAttribute     Depth (bracket depth), Multiline
type Frame struct {
	Kind  FrameKind
	Start int

	Hashes    int
	Depth     int
	Open      byte
	Brackets  [numBracketKinds]int
	Multiline bool
}

// Balanced reports whether every bracket kind of a macro tree is back to zero.
func (f *Frame) Balanced() bool {
	for _, depth := range f.Brackets {
		if depth != 0 {
			return false
		}
	}
	return true
}

// ContextStack tracks open constructs as an arena of frames indexed by depth.
// The zero value is an empty stack ready for use.
type ContextStack struct {
	frames []Frame
}

// Push opens a frame.
func (s *ContextStack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop closes the top frame. Popping an empty stack returns ErrUnbalancedPop.
func (s *ContextStack) Pop() (Frame, error) {
	if len(s.frames) == 0 {
		return Frame{}, ErrUnbalancedPop
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, nil
}

// Top returns a pointer to the top frame so callers can update its
// counters in place, or nil when the stack is empty.
func (s *ContextStack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

// Depth returns the number of open frames.
func (s *ContextStack) Depth() int {
	return len(s.frames)
}

// Empty reports whether no construct is open.
func (s *ContextStack) Empty() bool {
	return len(s.frames) == 0
}

// Frames returns a copy of the open frames, bottom first.
func (s *ContextStack) Frames() []Frame {
	if len(s.frames) == 0 {
		return nil
	}
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Reset discards all frames, keeping the arena for reuse.
func (s *ContextStack) Reset() {
	s.frames = s.frames[:0]
}
