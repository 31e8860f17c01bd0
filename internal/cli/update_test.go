package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innocenzi/dependi/internal/adapters"
	"github.com/innocenzi/dependi/internal/app"
	"github.com/innocenzi/dependi/internal/ports"
	"github.com/innocenzi/dependi/internal/types"
	"github.com/innocenzi/dependi/tests/testutil"
)

type stubRegistry struct {
	versions map[string][]string
}

func (r stubRegistry) Versions(ctx context.Context, name string) ([]string, error) {
	if versions, ok := r.versions[name]; ok {
		return versions, nil
	}
	return nil, errors.New("registry unavailable")
}

func stubService(registry ports.RegistryPort) app.Service {
	return app.Service{
		Manifest: adapters.ManifestForPath,
		Registry: func(eco types.Ecosystem, baseURL string) (ports.RegistryPort, error) {
			return registry, nil
		},
		OpenDocument: func(path string) (ports.DocumentPort, error) {
			return adapters.NewFileDocument(path)
		},
		Advisories: adapters.NewOSVAdvisoryAdapter(""),
		Prefs:      adapters.NewPrefsFileAdapter(),
		Session:    app.NewSession(),
	}
}

func TestRunUpdatePersistsAutoFillAndQueuedUpdates(t *testing.T) {
	path := testutil.WriteManifest(t, "Cargo.toml", "[dependencies]\nserde = \"1.0.0\"\nlibc = \"?\"\n")
	registry := stubRegistry{versions: map[string][]string{
		"serde": {"1.2.0", "1.0.0"},
		"libc":  {"2.0.0"},
	}}

	require.NoError(t, runUpdate(context.Background(), nil, stubService(registry), updateOptions{}, path))

	// Both writers target the same file: the auto-fill save from the
	// annotate pass and the batch-replace save. Neither may clobber the
	// other.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `serde = "1.2.0"`)
	require.Contains(t, string(data), `libc = "2.0.0"`)
}

func TestRunUpdateNoQueuedChanges(t *testing.T) {
	path := testutil.WriteManifest(t, "Cargo.toml", "[dependencies]\nserde = \"1.2.0\"\n")
	registry := stubRegistry{versions: map[string][]string{
		"serde": {"1.2.0", "1.0.0"},
	}}

	require.NoError(t, runUpdate(context.Background(), nil, stubService(registry), updateOptions{}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `serde = "1.2.0"`)
}
