package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeContains(t *testing.T) {
	r := Range{
		Start: Position{Line: 2, Character: 5},
		End:   Position{Line: 4, Character: 3},
	}

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{name: "start is inclusive", pos: Position{Line: 2, Character: 5}, want: true},
		{name: "middle line", pos: Position{Line: 3, Character: 0}, want: true},
		{name: "end is exclusive", pos: Position{Line: 4, Character: 3}, want: false},
		{name: "before start on first line", pos: Position{Line: 2, Character: 4}, want: false},
		{name: "line above", pos: Position{Line: 1, Character: 9}, want: false},
		{name: "line below", pos: Position{Line: 5, Character: 0}, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, r.Contains(tt.pos))
		})
	}
}
