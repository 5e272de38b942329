package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/synlex/pkg/lexer"
)

func TestLineIndex_Position(t *testing.T) {
	t.Parallel()

	idx := lexer.NewLineIndex("ab\r\ncd\n\nef")

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{4, 2, 1},
		{6, 2, 3},
		{7, 3, 1},
		{8, 4, 1},
		{9, 4, 2},
		{10, 4, 3},
		{99, 4, 3},
		{-5, 1, 1},
	}

	for _, testCase := range tests {
		line, col := idx.Position(testCase.offset)
		assert.Equal(t, testCase.line, line, "line of offset %d", testCase.offset)
		assert.Equal(t, testCase.col, col, "column of offset %d", testCase.offset)
	}
}

func TestLineIndex_Line(t *testing.T) {
	t.Parallel()

	idx := lexer.NewLineIndex("ab\r\ncd\n\nef")

	assert.Equal(t, 4, idx.Lines())
	assert.Equal(t, "ab", idx.Line(1))
	assert.Equal(t, "cd", idx.Line(2))
	assert.Empty(t, idx.Line(3))
	assert.Equal(t, "ef", idx.Line(4))
	assert.Empty(t, idx.Line(0))
	assert.Empty(t, idx.Line(5))

	empty := lexer.NewLineIndex("")
	assert.Equal(t, 1, empty.Lines())
	line, col := empty.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}
