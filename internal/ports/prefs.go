package ports

import "github.com/innocenzi/dependi/internal/types"

// PrefsPort loads per-project preference overrides.
type PrefsPort interface {
	Load(path string) (types.ProjectPrefs, error)
}
