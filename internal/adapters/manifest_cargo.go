package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/innocenzi/dependi/internal/shared"
	"github.com/innocenzi/dependi/internal/types"
)

// CargoManifestAdapter parses Cargo.toml dependency tables. The TOML
// decode establishes which keys are dependencies; a line scan then
// recovers the source range of each declared version token, since the
// decoder does not expose positions.
type CargoManifestAdapter struct{}

func NewCargoManifestAdapter() CargoManifestAdapter {
	return CargoManifestAdapter{}
}

func (CargoManifestAdapter) Ecosystem() types.Ecosystem {
	return types.EcosystemRust
}

type cargoManifest struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
	Workspace         struct {
		Dependencies map[string]any `toml:"dependencies"`
	} `toml:"workspace"`
}

var cargoDependencyTables = map[string]struct{}{
	"dependencies":           {},
	"dev-dependencies":       {},
	"build-dependencies":     {},
	"workspace.dependencies": {},
}

func (a CargoManifestAdapter) Parse(content string) ([]types.DependencyItem, error) {
	var manifest cargoManifest
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid Cargo.toml").
			WithCause(err)
	}
	known := map[string]struct{}{}
	for _, table := range []map[string]any{
		manifest.Dependencies,
		manifest.DevDependencies,
		manifest.BuildDependencies,
		manifest.Workspace.Dependencies,
	} {
		for name := range table {
			known[name] = struct{}{}
		}
	}

	var items []types.DependencyItem
	inTable := false
	tableDep := ""
	for idx, line := range strings.Split(content, "\n") {
		if isCommentOrBlank(line, "#") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inTable, tableDep = cargoSection(trimmed)
			continue
		}
		if !inTable {
			continue
		}
		key, rest, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		name := shared.TrimQuotes(strings.TrimSpace(key))
		displayKey := strings.TrimSpace(key)
		if tableDep != "" {
			// Inside [dependencies.<name>]: only the version key declares
			// a constraint.
			if name != "version" {
				continue
			}
			displayKey = tableDep
		} else if _, ok := known[name]; !ok {
			continue
		}
		if item, ok := cargoVersionItem(displayKey, line, len(key)+1, rest, idx); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// cargoSection classifies a table header. It returns whether the table
// declares dependencies, plus the dependency name for the table-per-entry
// form ([dependencies.serde]).
func cargoSection(header string) (bool, string) {
	name := strings.Trim(header, "[]")
	name = strings.TrimSpace(name)
	if _, ok := cargoDependencyTables[name]; ok {
		return true, ""
	}
	for table := range cargoDependencyTables {
		if strings.HasPrefix(name, table+".") {
			return true, shared.TrimQuotes(strings.TrimPrefix(name, table+"."))
		}
	}
	return false, ""
}

// cargoVersionItem extracts the version token from the value side of a
// dependency line, handling both `serde = "1.0"` and the inline-table form
// `serde = { version = "1.0", features = [...] }`.
func cargoVersionItem(key string, line string, valueFrom int, rest string, lineIdx int) (types.DependencyItem, bool) {
	from := valueFrom
	if strings.Contains(rest, "{") {
		sub := strings.Index(line[valueFrom:], "version")
		if sub < 0 {
			return types.DependencyItem{}, false
		}
		from = valueFrom + sub
	}
	value, start, end, ok := quotedToken(line, from)
	if !ok {
		return types.DependencyItem{}, false
	}
	return newItem(key, value, lineIdx, start, end, line), true
}
