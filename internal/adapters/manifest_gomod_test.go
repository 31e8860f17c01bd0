package adapters

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/innocenzi/dependi/internal/types"
)

const goModSample = `module example.com/demo

go 1.22

require github.com/rs/zerolog v1.33.0

require (
	github.com/spf13/cobra v1.8.1
	github.com/stretchr/testify v1.9.0 // indirect
)
`

func TestGoModParse(t *testing.T) {
	items, err := NewGoModAdapter().Parse(goModSample)
	require.NoError(t, err)
	require.Len(t, items, 3)

	byKey := map[string]types.DependencyItem{}
	for _, item := range items {
		byKey[item.Key] = item
	}

	tests := []struct {
		path    string
		version string
		line    int
	}{
		{path: "github.com/rs/zerolog", version: "v1.33.0", line: 4},
		{path: "github.com/spf13/cobra", version: "v1.8.1", line: 7},
		{path: "github.com/stretchr/testify", version: "v1.9.0", line: 8},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			item, ok := byKey[tt.path]
			require.True(t, ok, "missing item %q", tt.path)
			require.Equal(t, tt.version, item.Value)
			require.Equal(t, tt.line, item.Line)
			if diff := cmp.Diff(tokenRange(t, goModSample, tt.line, tt.version), item.Range); diff != "" {
				t.Fatalf("unexpected range (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoModParseInvalid(t *testing.T) {
	_, err := NewGoModAdapter().Parse("module\nrequire (")
	require.Error(t, err)
}
