package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/innocenzi/dependi/internal/types"
)

func TestPrefsFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dependi.yaml")
	content := `decorator:
  position: before
  compatible: "ok ${version}"
ignore:
  - serde
  - anyhow
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	prefs, err := NewPrefsFileAdapter().Load(path)
	require.NoError(t, err)

	want := types.ProjectPrefs{
		Decorator: types.DecoratorPrefs{Position: "before", Compatible: "ok ${version}"},
		Ignore:    []string{"serde", "anyhow"},
	}
	if diff := cmp.Diff(want, prefs); diff != "" {
		t.Fatalf("unexpected prefs (-want +got):\n%s", diff)
	}

	applied := prefs.Apply(types.DefaultPreferences())
	require.Equal(t, types.DecorationPositionBefore, applied.Position)
	require.Equal(t, "ok ${version}", applied.CompatibleText)
	require.Equal(t, "❌ ${version}", applied.IncompatibleText)

	require.True(t, prefs.Ignored("Serde"))
	require.False(t, prefs.Ignored("tokio"))
}

func TestPrefsFileLoadMissing(t *testing.T) {
	prefs, err := NewPrefsFileAdapter().Load(filepath.Join(t.TempDir(), ".dependi.yaml"))
	require.NoError(t, err)
	require.Equal(t, types.ProjectPrefs{}, prefs)
}

func TestPrefsFileLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dependi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignore: {not: [a, list"), 0644))

	_, err := NewPrefsFileAdapter().Load(path)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
