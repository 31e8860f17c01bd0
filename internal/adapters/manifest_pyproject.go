package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/innocenzi/dependi/internal/shared"
	"github.com/innocenzi/dependi/internal/types"
)

// PyProjectAdapter parses pyproject.toml dependencies, covering both the
// PEP 621 [project] dependencies array and poetry-style dependency tables.
// The interpreter requirement ("python") is never annotated.
type PyProjectAdapter struct{}

func NewPyProjectAdapter() PyProjectAdapter {
	return PyProjectAdapter{}
}

func (PyProjectAdapter) Ecosystem() types.Ecosystem {
	return types.EcosystemPython
}

type pyProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

var poetryDependencyTables = map[string]struct{}{
	"tool.poetry.dependencies":     {},
	"tool.poetry.dev-dependencies": {},
}

func (a PyProjectAdapter) Parse(content string) ([]types.DependencyItem, error) {
	var manifest pyProject
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid pyproject.toml").
			WithCause(err)
	}
	known := map[string]struct{}{}
	for _, table := range []map[string]any{
		manifest.Tool.Poetry.Dependencies,
		manifest.Tool.Poetry.DevDependencies,
	} {
		for name := range table {
			known[name] = struct{}{}
		}
	}

	var items []types.DependencyItem
	section := ""
	inArray := false
	for idx, line := range strings.Split(content, "\n") {
		if isCommentOrBlank(line, "#") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && !inArray {
			section = strings.TrimSpace(strings.Trim(trimmed, "[]"))
			continue
		}

		if _, poetry := poetryDependencyTables[section]; poetry {
			if item, ok := a.poetryItem(line, idx, known); ok {
				items = append(items, item)
			}
			continue
		}
		if section != "project" {
			continue
		}
		// PEP 621 dependencies array: one requirement string per bullet.
		if strings.HasPrefix(trimmed, "dependencies") && strings.Contains(trimmed, "[") {
			inArray = !strings.Contains(trimmed, "]")
			continue
		}
		if !inArray {
			continue
		}
		if strings.HasPrefix(trimmed, "]") {
			inArray = false
			continue
		}
		if item, ok := a.pep621Item(line, idx); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// poetryItem handles `requests = "^2.28"` and the inline-table form with a
// version key, mirroring the Cargo scanner.
func (a PyProjectAdapter) poetryItem(line string, lineIdx int, known map[string]struct{}) (types.DependencyItem, bool) {
	key, rest, found := strings.Cut(line, "=")
	if !found {
		return types.DependencyItem{}, false
	}
	name := shared.TrimQuotes(strings.TrimSpace(key))
	if strings.EqualFold(name, "python") {
		return types.DependencyItem{}, false
	}
	if _, ok := known[name]; !ok {
		return types.DependencyItem{}, false
	}
	from := len(key) + 1
	if strings.Contains(rest, "{") {
		sub := strings.Index(line[from:], "version")
		if sub < 0 {
			return types.DependencyItem{}, false
		}
		from += sub
	}
	value, start, end, ok := quotedToken(line, from)
	if !ok {
		return types.DependencyItem{}, false
	}
	return newItem(strings.TrimSpace(key), value, lineIdx, start, end, line), true
}

// pep621Item splits a requirement string like "requests[socks]>=2.28" into
// name and specifier. The item value keeps the full specifier for the
// compatibility check; the item range covers only the version portion
// after the operator, so a replacement pins a new version without
// rewriting the name or dropping the operator.
func (a PyProjectAdapter) pep621Item(line string, lineIdx int) (types.DependencyItem, bool) {
	requirement, start, _, ok := quotedToken(line, 0)
	if !ok {
		return types.DependencyItem{}, false
	}
	split := strings.IndexAny(requirement, "><=!~ ")
	if split < 0 {
		// Bare name, no version specifier to annotate.
		return types.DependencyItem{}, false
	}
	name := strings.TrimSpace(requirement[:split])
	if bracket := strings.Index(name, "["); bracket >= 0 {
		name = name[:bracket]
	}
	spec := strings.TrimSpace(requirement[split:])
	if spec == "" {
		return types.DependencyItem{}, false
	}
	verFrom := split
	for verFrom < len(requirement) && strings.IndexByte("><=!~ ", requirement[verFrom]) >= 0 {
		verFrom++
	}
	if verFrom == len(requirement) {
		return types.DependencyItem{}, false
	}
	return newItem(name, spec, lineIdx, start+verFrom, start+len(requirement), line), true
}
