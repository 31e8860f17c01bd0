// Package testutil provides shared test helpers used across unit test
// packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteManifest writes a manifest fixture into a fresh temp directory and
// returns its path. The base name controls which parser picks it up.
func WriteManifest(t *testing.T, base string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), base)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteSibling writes a file next to an existing fixture, for prefs files
// that are discovered relative to the manifest.
func WriteSibling(t *testing.T, fixture string, base string, content string) string {
	t.Helper()
	path := filepath.Join(filepath.Dir(fixture), base)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
