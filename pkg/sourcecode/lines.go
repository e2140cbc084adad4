package sourcecode

import (
	"fmt"
	"sort"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// lineTable holds the start offset and content of every line.
// starts[0] is always 0 and starts is strictly increasing.
type lineTable struct {
	starts []int
	lines  []string
}

// buildLineTable scans text once for CRLF, CR, LF, U+2028 and U+2029.
// The last line covers the remainder of the text and may be empty.
func buildLineTable(text string) lineTable {
	table := lineTable{starts: []int{0}}
	lineStart := 0

	for idx := 0; idx < len(text); {
		breakLen := lineBreakAt(text, idx)
		if breakLen == 0 {
			idx++
			continue
		}
		table.lines = append(table.lines, text[lineStart:idx])
		lineStart = idx + breakLen
		table.starts = append(table.starts, lineStart)
		idx = lineStart
	}
	table.lines = append(table.lines, text[lineStart:])

	return table
}

// lineBreakAt returns the byte length of the line break starting at idx,
// or 0 if there is none.
func lineBreakAt(text string, idx int) int {
	switch text[idx] {
	case '\n':
		return 1
	case '\r':
		if idx+1 < len(text) && text[idx+1] == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		// U+2028 LINE SEPARATOR and U+2029 PARAGRAPH SEPARATOR.
		if idx+2 < len(text) && text[idx+1] == 0x80 && (text[idx+2] == 0xA8 || text[idx+2] == 0xA9) {
			return 3
		}
	}
	return 0
}

// LineCount returns the number of lines in the text. It is at least 1.
func (s *SourceCode) LineCount() int {
	return len(s.lineTable.starts)
}

// OffsetToPosition converts a byte offset into a line/column position.
// An offset equal to the text length maps to the position just past the last
// character. Offsets outside [0, len(text)] yield ErrOutOfRange.
func (s *SourceCode) OffsetToPosition(index int) (ast.Position, error) {
	if index < 0 || index > len(s.text) {
		return ast.Position{}, fmt.Errorf(
			"%w: index %d requested, but source text has length %d",
			ErrOutOfRange, index, len(s.text))
	}

	lines := s.lineTable.lines
	if index == len(s.text) {
		return ast.Position{Line: len(lines), Column: len(lines[len(lines)-1])}, nil
	}

	starts := s.lineTable.starts
	// Number of line starts <= index; that is the 1-based line number.
	line := sort.Search(len(starts), func(i int) bool {
		return starts[i] > index
	})

	return ast.Position{Line: line, Column: index - starts[line-1]}, nil
}

// PositionToOffset converts a line/column position into a byte offset.
// A column equal to the line's length is accepted, as is any column that
// stays within the line including its line break.
func (s *SourceCode) PositionToOffset(pos ast.Position) (int, error) {
	starts := s.lineTable.starts

	if pos.Line <= 0 {
		return 0, fmt.Errorf(
			"%w: line %d requested; line numbers are 1-based",
			ErrOutOfRange, pos.Line)
	}
	if pos.Line > len(starts) {
		return 0, fmt.Errorf(
			"%w: line %d requested, but only %d lines present",
			ErrOutOfRange, pos.Line, len(starts))
	}

	lineStart := starts[pos.Line-1]
	lineEnd := len(s.text)
	if pos.Line < len(starts) {
		lineEnd = starts[pos.Line]
	}

	offset := lineStart + pos.Column
	if pos.Column < 0 || offset > lineEnd {
		return 0, fmt.Errorf(
			"%w: column %d requested, but the length of line %d is %d",
			ErrOutOfRange, pos.Column, pos.Line, len(s.lineTable.lines[pos.Line-1]))
	}

	return offset, nil
}
