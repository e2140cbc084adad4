package ast

// Range is a half-open byte range [Start, End) into the source text.
type Range struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// NoRange marks a node or token whose range was never set.
//
//nolint:gochecknoglobals // Read-only sentinel value.
var NoRange = Range{Start: -1, End: -1}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range has been set and is well-formed.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.End >= r.Start
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Position is a location in the source text.
// Lines are 1-based and columns are 0-based byte counts.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsValid returns true if this position has a line number.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column >= 0
}

// SourceLocation is the line/column extent of a node or token.
type SourceLocation struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsValid returns true if both start and end positions are valid.
func (l SourceLocation) IsValid() bool {
	return l.Start.IsValid() && l.End.IsValid()
}

// IsSingleLine returns true if start and end are on the same line.
func (l SourceLocation) IsSingleLine() bool {
	return l.Start.Line == l.End.Line
}

// Ranged is implemented by anything that occupies a range of the source
// text. Both *Node and *Token satisfy it.
type Ranged interface {
	Span() Range
}

// IsNil reports whether r is nil, including typed nil pointers.
func IsNil(r Ranged) bool {
	switch v := r.(type) {
	case nil:
		return true
	case *Node:
		return v == nil
	case *Token:
		return v == nil
	default:
		return false
	}
}
