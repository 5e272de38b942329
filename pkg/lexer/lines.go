package lexer

import "sort"

// LineIndex maps byte offsets to 1-based line and column numbers.
// Lines end at '\n'; a preceding '\r' belongs to the line it ends.
type LineIndex struct {
	src    string
	starts []int
}

// NewLineIndex indexes src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := range len(src) {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Position returns the 1-based line and byte column of offset. Offsets past
// the end clamp to the end of input.
func (x *LineIndex) Position(offset int) (line, col int) {
	offset = max(0, min(offset, len(x.src)))
	idx := sort.SearchInts(x.starts, offset+1) - 1
	return idx + 1, offset - x.starts[idx] + 1
}

// Line returns the text of 1-based line n without its line ending, or ""
// when n is out of range.
func (x *LineIndex) Line(n int) string {
	if n < 1 || n > len(x.starts) {
		return ""
	}
	start := x.starts[n-1]
	end := len(x.src)
	if n < len(x.starts) {
		end = x.starts[n] - 1
	}
	if end > start && x.src[end-1] == '\r' {
		end--
	}
	return x.src[start:end]
}

// Lines returns the number of lines.
func (x *LineIndex) Lines() int {
	return len(x.starts)
}
