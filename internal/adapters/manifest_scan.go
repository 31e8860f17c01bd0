package adapters

import (
	"strings"

	"github.com/innocenzi/dependi/internal/types"
)

// quotedToken locates the first single- or double-quoted token in line at
// or after the from column. It returns the inner value and the zero-based
// columns of the inner span (excluding the quote delimiters).
func quotedToken(line string, from int) (value string, start int, end int, ok bool) {
	if from < 0 || from >= len(line) {
		return "", 0, 0, false
	}
	rest := line[from:]
	open := strings.IndexAny(rest, `"'`)
	if open < 0 {
		return "", 0, 0, false
	}
	quote := rest[open]
	close := strings.IndexByte(rest[open+1:], quote)
	if close < 0 {
		return "", 0, 0, false
	}
	start = from + open + 1
	end = start + close
	return line[start:end], start, end, true
}

// newItem builds a DependencyItem for a constraint token spanning
// [start,end) on the given zero-based line.
func newItem(key string, value string, lineIdx int, start int, end int, line string) types.DependencyItem {
	return types.DependencyItem{
		Key:       key,
		Value:     value,
		Line:      lineIdx,
		EndOfLine: len(line),
		Range: types.Range{
			Start: types.Position{Line: lineIdx, Character: start},
			End:   types.Position{Line: lineIdx, Character: end},
		},
		DecoRange: types.Range{
			Start: types.Position{Line: lineIdx, Character: len(line)},
			End:   types.Position{Line: lineIdx, Character: len(line)},
		},
	}
}

// isCommentOrBlank reports whether a manifest line carries no content for
// the given comment marker.
func isCommentOrBlank(line string, marker string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, marker)
}
