package services

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	DiffOpUnchanged = "unchanged"
	DiffOpAdded     = "added"
	DiffOpRemoved   = "removed"
)

type DiffLine struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

// DiffLines produces a two-way line diff between left and right, in document
// order. Replaced regions are emitted as removals followed by additions.
func DiffLines(left, right string) []DiffLine {
	a := difflib.SplitLines(left)
	b := difflib.SplitLines(right)
	matcher := difflib.NewMatcher(a, b)

	var result []DiffLine
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range a[op.I1:op.I2] {
				result = append(result, DiffLine{Op: DiffOpUnchanged, Text: strings.TrimSuffix(line, "\n")})
			}
		case 'd':
			for _, line := range a[op.I1:op.I2] {
				result = append(result, DiffLine{Op: DiffOpRemoved, Text: strings.TrimSuffix(line, "\n")})
			}
		case 'i':
			for _, line := range b[op.J1:op.J2] {
				result = append(result, DiffLine{Op: DiffOpAdded, Text: strings.TrimSuffix(line, "\n")})
			}
		case 'r':
			for _, line := range a[op.I1:op.I2] {
				result = append(result, DiffLine{Op: DiffOpRemoved, Text: strings.TrimSuffix(line, "\n")})
			}
			for _, line := range b[op.J1:op.J2] {
				result = append(result, DiffLine{Op: DiffOpAdded, Text: strings.TrimSuffix(line, "\n")})
			}
		}
	}
	return result
}
