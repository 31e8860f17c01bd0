package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/mod/modfile"

	"github.com/innocenzi/dependi/internal/types"
)

// GoModAdapter parses go.mod require directives via x/mod, which reports
// the source line of every requirement; the version token's columns are
// recovered from the line text.
type GoModAdapter struct{}

func NewGoModAdapter() GoModAdapter {
	return GoModAdapter{}
}

func (GoModAdapter) Ecosystem() types.Ecosystem {
	return types.EcosystemGo
}

func (a GoModAdapter) Parse(content string) ([]types.DependencyItem, error) {
	file, err := modfile.Parse("go.mod", []byte(content), nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid go.mod").
			WithCause(err)
	}
	lines := strings.Split(content, "\n")

	var items []types.DependencyItem
	for _, req := range file.Require {
		if req.Syntax == nil || req.Syntax.Start.Line < 1 {
			continue
		}
		lineIdx := req.Syntax.Start.Line - 1
		if lineIdx >= len(lines) {
			continue
		}
		line := lines[lineIdx]
		start := versionColumn(line, req.Mod.Path, req.Mod.Version)
		if start < 0 {
			continue
		}
		items = append(items, newItem(req.Mod.Path, req.Mod.Version, lineIdx, start, start+len(req.Mod.Version), line))
	}
	return items, nil
}

// versionColumn locates the version token following the module path. The
// path is matched first so a version string that happens to appear inside
// the path cannot shadow the real token.
func versionColumn(line string, path string, version string) int {
	after := strings.Index(line, path)
	if after < 0 {
		after = 0
	} else {
		after += len(path)
	}
	offset := strings.Index(line[after:], version)
	if offset < 0 {
		return -1
	}
	return after + offset
}
