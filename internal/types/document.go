package types

// Position is a zero-based line/character location in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions. Start and End on the
// same line with equal characters denotes an empty range.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether the position falls inside the range.
func (r Range) Contains(p Position) bool {
	if p.Line < r.Start.Line || p.Line > r.End.Line {
		return false
	}
	if p.Line == r.Start.Line && p.Character < r.Start.Character {
		return false
	}
	if p.Line == r.End.Line && p.Character >= r.End.Character {
		return false
	}
	return true
}

// DependencyItem is a single declared dependency occurrence in a manifest
// document. It is built once per parse and never mutated; edits to the
// document invalidate all items and require a re-parse.
type DependencyItem struct {
	// Key is the dependency name exactly as written, possibly quoted.
	Key string

	// Value is the declared version constraint, empty when absent. The
	// literal "?" marks an uninitialized constraint to be auto-filled.
	Value string

	// Range spans the replaceable version token, inside any quote
	// delimiters. For requirement strings that carry an operator
	// ("requests>=2.28") it starts after the operator, so overwriting it
	// with a bare version keeps the requirement well formed.
	Range Range

	Line      int
	EndOfLine int

	// DecoRange is the empty range at end of line used for "after"
	// decoration placement.
	DecoRange Range
}
