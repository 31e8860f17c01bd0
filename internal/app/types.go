package app

import "github.com/innocenzi/dependi/internal/types"

type AnnotateRequest struct {
	ManifestPath string

	// RegistryURL overrides the public registry endpoint when non-empty.
	RegistryURL string

	// PrefsPath points at a .dependi.yaml overrides file; empty means the
	// manifest's directory is probed.
	PrefsPath string

	Preferences types.Preferences
	NoVulns     bool
}

// AnnotatedDependency pairs a parsed dependency occurrence with its
// decoration descriptor.
type AnnotatedDependency struct {
	Item       types.DependencyItem
	Decoration types.Decoration
	AutoFilled bool
}

type AnnotateResult struct {
	Ecosystem types.Ecosystem
	Items     []AnnotatedDependency
	Counts    map[types.Classification]int
}

type ReplaceAllResult struct {
	Applied int
}
