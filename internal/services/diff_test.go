package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func changeOps(lines []DiffLine) []DiffLine {
	var out []DiffLine
	for _, l := range lines {
		if l.Op != DiffOpUnchanged {
			out = append(out, l)
		}
	}
	return out
}

func TestDiffIdenticalContent(t *testing.T) {
	lines := DiffLines("a\nb\nc", "a\nb\nc")
	assert.Empty(t, changeOps(lines))
}

func TestDiffAddedLine(t *testing.T) {
	lines := DiffLines("a\nc", "a\nb\nc")
	assert.Equal(t, []DiffLine{{Op: DiffOpAdded, Text: "b"}}, changeOps(lines))
}

func TestDiffRemovedLine(t *testing.T) {
	lines := DiffLines("a\nb\nc", "a\nc")
	assert.Equal(t, []DiffLine{{Op: DiffOpRemoved, Text: "b"}}, changeOps(lines))
}

func TestDiffReplacedLine(t *testing.T) {
	lines := DiffLines("hello", "world")
	assert.Equal(t, []DiffLine{
		{Op: DiffOpRemoved, Text: "hello"},
		{Op: DiffOpAdded, Text: "world"},
	}, changeOps(lines))
}

func TestDiffDocumentOrder(t *testing.T) {
	lines := DiffLines("a\nb", "b\nc")
	assert.Equal(t, []DiffLine{
		{Op: DiffOpRemoved, Text: "a"},
		{Op: DiffOpUnchanged, Text: "b"},
		{Op: DiffOpAdded, Text: "c"},
	}, lines)
}

func TestDiffDeterministic(t *testing.T) {
	left, right := "a\nb\nc\nd", "a\nx\nc"
	first := DiffLines(left, right)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DiffLines(left, right))
	}
}
