package ast

import (
	"errors"
	"fmt"
)

// ErrUTF16Offset is returned for a UTF-16 offset or column that lies past
// the end of its text or line, or inside a surrogate pair.
var ErrUTF16Offset = errors.New("invalid UTF-16 offset")

// UTF16Index maps offsets counted in UTF-16 code units, the unit JavaScript
// parsers report ranges and columns in, to byte offsets into the UTF-8 text.
type UTF16Index struct {
	// byteAt[u] is the byte offset of code unit u, or -1 for the second
	// unit of a surrogate pair. The last entry is the text length.
	byteAt []int

	// lineStarts holds the code unit offset of every line start.
	lineStarts []int

	textLen int
}

// NewUTF16Index scans text once. Line breaks are CRLF, CR, LF, U+2028 and
// U+2029. Each byte of invalid UTF-8 counts as one code unit.
func NewUTF16Index(text string) *UTF16Index {
	index := &UTF16Index{
		byteAt:     make([]int, 0, len(text)+1),
		lineStarts: []int{0},
		textLen:    len(text),
	}

	for offset, r := range text {
		index.byteAt = append(index.byteAt, offset)
		if r > 0xFFFF {
			index.byteAt = append(index.byteAt, -1)
		}

		switch r {
		case '\n', '\u2028', '\u2029':
			index.lineStarts = append(index.lineStarts, len(index.byteAt))
		case '\r':
			if offset+1 == len(text) || text[offset+1] != '\n' {
				index.lineStarts = append(index.lineStarts, len(index.byteAt))
			}
		}
	}
	index.byteAt = append(index.byteAt, len(text))

	return index
}

// Identity reports whether code unit offsets and byte offsets coincide,
// which holds exactly when the text is ASCII.
func (x *UTF16Index) Identity() bool {
	return len(x.byteAt) == x.textLen+1
}

// ByteOffset converts a code unit offset into a byte offset.
func (x *UTF16Index) ByteOffset(unit int) (int, error) {
	if unit < 0 || unit >= len(x.byteAt) {
		return 0, fmt.Errorf("%w: offset %d outside text of %d code units",
			ErrUTF16Offset, unit, len(x.byteAt)-1)
	}
	if x.byteAt[unit] < 0 {
		return 0, fmt.Errorf("%w: offset %d splits a surrogate pair", ErrUTF16Offset, unit)
	}
	return x.byteAt[unit], nil
}

// BytePosition converts a position whose column counts code units into one
// whose column counts bytes.
func (x *UTF16Index) BytePosition(pos Position) (Position, error) {
	if pos.Line < 1 || pos.Line > len(x.lineStarts) || pos.Column < 0 {
		return Position{}, fmt.Errorf("%w: line %d, column %d", ErrUTF16Offset, pos.Line, pos.Column)
	}

	lineStart := x.lineStarts[pos.Line-1]
	offset, err := x.ByteOffset(lineStart + pos.Column)
	if err != nil {
		return Position{}, fmt.Errorf("line %d: %w", pos.Line, err)
	}

	return Position{Line: pos.Line, Column: offset - x.byteAt[lineStart]}, nil
}

// ToByteOffsets rewrites the ranges and location columns of every node,
// token and comment from UTF-16 code units of text to bytes. Unset ranges
// and positions are left alone. On error the tree is partly converted and
// should be discarded.
func (t *Tree) ToByteOffsets(text string) error {
	index := NewUTF16Index(text)
	if index.Identity() {
		return nil
	}

	for _, stream := range [][]*Token{t.Tokens, t.Comments} {
		for _, tok := range stream {
			if err := index.convert(&tok.Range, &tok.Loc); err != nil {
				return fmt.Errorf("%s token %q: %w", tok.Type, tok.Value, err)
			}
		}
	}

	return index.convertNode(t.Root)
}

func (x *UTF16Index) convertNode(n *Node) error {
	if n == nil {
		return nil
	}
	if err := x.convert(&n.Range, &n.Loc); err != nil {
		return fmt.Errorf("%s node: %w", n.Type, err)
	}
	for _, children := range n.Fields {
		for _, child := range children {
			if err := x.convertNode(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x *UTF16Index) convert(r *Range, loc *SourceLocation) error {
	if r.IsValid() {
		start, err := x.ByteOffset(r.Start)
		if err != nil {
			return err
		}
		end, err := x.ByteOffset(r.End)
		if err != nil {
			return err
		}
		*r = Range{Start: start, End: end}
	}

	for _, pos := range []*Position{&loc.Start, &loc.End} {
		if !pos.IsValid() {
			continue
		}
		converted, err := x.BytePosition(*pos)
		if err != nil {
			return err
		}
		*pos = converted
	}

	return nil
}
