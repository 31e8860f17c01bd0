package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"github.com/innocenzi/dependi/internal/types"
)

// PrefsFileAdapter loads per-project overrides from a .dependi.yaml file.
// A missing file yields zero-value prefs, not an error.
type PrefsFileAdapter struct{}

func NewPrefsFileAdapter() PrefsFileAdapter {
	return PrefsFileAdapter{}
}

func (PrefsFileAdapter) Load(path string) (types.ProjectPrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ProjectPrefs{}, nil
		}
		return types.ProjectPrefs{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read prefs file").
			WithCause(err)
	}
	var prefs types.ProjectPrefs
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return types.ProjectPrefs{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid prefs file").
			WithCause(err)
	}
	return prefs, nil
}
