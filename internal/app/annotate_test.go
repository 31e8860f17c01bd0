package app

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/innocenzi/dependi/internal/adapters"
	"github.com/innocenzi/dependi/internal/ports"
	"github.com/innocenzi/dependi/internal/types"
	"github.com/innocenzi/dependi/tests/testutil"
)

const annotateManifest = `[package]
name = "demo"

[dependencies]
serde = "1.0.0"
anyhow = "0.5.0"
local = { path = "../local" }
libc = "?"
brokenpkg = "1.0.0"
`

// stubRegistry serves canned version lists; names without an entry fail
// the lookup.
type stubRegistry struct {
	versions map[string][]string
}

func (r stubRegistry) Versions(ctx context.Context, name string) ([]string, error) {
	if versions, ok := r.versions[name]; ok {
		return versions, nil
	}
	return nil, errors.New("registry unavailable")
}

type stubAdvisories struct {
	byName map[string]types.VulnerabilityMap
}

func (a stubAdvisories) Advisories(ctx context.Context, eco types.Ecosystem, name string, versions []string) (types.VulnerabilityMap, error) {
	return a.byName[name], nil
}

func annotateService(t *testing.T, registry ports.RegistryPort, advisories ports.AdvisoryPort) Service {
	t.Helper()
	return Service{
		Manifest: adapters.ManifestForPath,
		Registry: func(eco types.Ecosystem, baseURL string) (ports.RegistryPort, error) {
			return registry, nil
		},
		OpenDocument: func(path string) (ports.DocumentPort, error) {
			return adapters.NewFileDocument(path)
		},
		Advisories: advisories,
		Prefs:      adapters.NewPrefsFileAdapter(),
		Session:    NewSession(),
	}
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteManifest(t, "Cargo.toml", content)
}

func demoRegistry() stubRegistry {
	return stubRegistry{versions: map[string][]string{
		"serde":  {"1.2.0", "1.0.0", "0.9.0"},
		"anyhow": {"1.0.0"},
		"libc":   {"2.0.0"},
	}}
}

func TestAnnotate(t *testing.T) {
	svc := annotateService(t, demoRegistry(), stubAdvisories{})
	path := writeManifest(t, annotateManifest)

	result, err := svc.Annotate(context.Background(), AnnotateRequest{ManifestPath: path, NoVulns: true})
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Equal(t, types.EcosystemRust, result.Ecosystem)
	require.Len(t, result.Items, 4, "path-only dependency must be skipped")

	wantCounts := map[types.Classification]int{
		types.ClassificationCompatible:   2,
		types.ClassificationIncompatible: 1,
		types.ClassificationError:        1,
	}
	if diff := cmp.Diff(wantCounts, result.Counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}

	byName := map[string]AnnotatedDependency{}
	for _, item := range result.Items {
		byName[item.Item.Key] = item
	}
	require.Equal(t, types.ClassificationCompatible, byName["serde"].Decoration.Classification)
	require.Equal(t, types.ClassificationIncompatible, byName["anyhow"].Decoration.Classification)
	require.Equal(t, types.ClassificationError, byName["brokenpkg"].Decoration.Classification)
	require.Equal(t, "✓ 1.2.0", byName["serde"].Decoration.RenderText)

	// The placeholder was auto-filled and persisted.
	require.True(t, byName["libc"].AutoFilled)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `libc = "2.0.0"`)

	// serde and anyhow are outdated; the auto-filled libc and the failed
	// brokenpkg must not be queued.
	require.Equal(t, 2, svc.Session.Pending())
}

func TestAnnotateIgnoreList(t *testing.T) {
	svc := annotateService(t, demoRegistry(), stubAdvisories{})
	path := writeManifest(t, annotateManifest)
	testutil.WriteSibling(t, path, ".dependi.yaml", "ignore:\n  - anyhow\n  - brokenpkg\n")

	result, err := svc.Annotate(context.Background(), AnnotateRequest{ManifestPath: path, NoVulns: true})
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Len(t, result.Items, 2)
	require.Equal(t, 0, result.Counts[types.ClassificationIncompatible])
	require.Equal(t, 0, result.Counts[types.ClassificationError])
}

func TestAnnotateDecoratorOverrides(t *testing.T) {
	svc := annotateService(t, demoRegistry(), stubAdvisories{})
	path := writeManifest(t, "[dependencies]\nserde = \"1.0.0\"\n")
	testutil.WriteSibling(t, path, ".dependi.yaml", "decorator:\n  compatible: \"ok ${version}\"\n")

	result, err := svc.Annotate(context.Background(), AnnotateRequest{ManifestPath: path, NoVulns: true})
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Len(t, result.Items, 1)
	require.Equal(t, "ok 1.2.0", result.Items[0].Decoration.RenderText)
}

func TestAnnotateVulnerabilities(t *testing.T) {
	advisories := stubAdvisories{byName: map[string]types.VulnerabilityMap{
		"serde": {"1.0.0": {"RUSTSEC-2024-0001"}},
	}}
	svc := annotateService(t, demoRegistry(), advisories)
	path := writeManifest(t, "[dependencies]\nserde = \"1.0.0\"\n")

	result, err := svc.Annotate(context.Background(), AnnotateRequest{ManifestPath: path})
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Len(t, result.Items, 1)
	deco := result.Items[0].Decoration
	require.Equal(t, "✓ 1.2.0\t🚨 1", deco.RenderText)
	require.Contains(t, deco.Hover, "#### Vulnerabilities (Current)")
	require.Contains(t, deco.Hover, "RUSTSEC-2024-0001")
}

func TestAnnotateEmptyVersionList(t *testing.T) {
	registry := stubRegistry{versions: map[string][]string{"serde": {}}}
	svc := annotateService(t, registry, stubAdvisories{})
	path := writeManifest(t, "[dependencies]\nserde = \"1.0.0\"\n")

	result, err := svc.Annotate(context.Background(), AnnotateRequest{ManifestPath: path, NoVulns: true})
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Len(t, result.Items, 1)
	deco := result.Items[0].Decoration
	require.Equal(t, types.ClassificationError, deco.Classification)
	require.Contains(t, deco.Hover, "no published versions found for serde")
}
