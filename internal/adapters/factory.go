package adapters

import (
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/innocenzi/dependi/internal/ports"
	"github.com/innocenzi/dependi/internal/types"
)

// ManifestForPath picks the parser for a manifest file by its base name.
func ManifestForPath(path string) (ports.ManifestPort, error) {
	switch filepath.Base(path) {
	case "Cargo.toml":
		return NewCargoManifestAdapter(), nil
	case "package.json":
		return NewPackageJSONAdapter(), nil
	case "pyproject.toml":
		return NewPyProjectAdapter(), nil
	case "go.mod":
		return NewGoModAdapter(), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported manifest: %s", filepath.Base(path)))
	}
}

// RegistryForEcosystem picks the version source for an ecosystem. baseURL
// overrides the public registry endpoint when non-empty.
func RegistryForEcosystem(eco types.Ecosystem, baseURL string) (ports.RegistryPort, error) {
	switch eco {
	case types.EcosystemRust:
		return NewCratesRegistryAdapter(baseURL), nil
	case types.EcosystemJavaScript:
		return NewNpmRegistryAdapter(baseURL), nil
	case types.EcosystemPython:
		return NewPyPIRegistryAdapter(baseURL), nil
	case types.EcosystemGo:
		return NewGoProxyRegistryAdapter(baseURL), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("no registry for ecosystem: %s", eco))
	}
}
