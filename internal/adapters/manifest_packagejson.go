package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	jsoniter "github.com/json-iterator/go"

	"github.com/innocenzi/dependi/internal/types"
)

// PackageJSONAdapter parses package.json dependency blocks. The JSON
// decode validates the document and names the dependency sets; token
// ranges come from a line scan because the decoder has no position API.
type PackageJSONAdapter struct{}

func NewPackageJSONAdapter() PackageJSONAdapter {
	return PackageJSONAdapter{}
}

func (PackageJSONAdapter) Ecosystem() types.Ecosystem {
	return types.EcosystemJavaScript
}

type packageJSON struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

var packageJSONBlocks = []string{
	`"dependencies"`,
	`"devDependencies"`,
	`"peerDependencies"`,
	`"optionalDependencies"`,
}

func (a PackageJSONAdapter) Parse(content string) ([]types.DependencyItem, error) {
	var manifest packageJSON
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid package.json").
			WithCause(err)
	}
	known := map[string]struct{}{}
	for _, block := range []map[string]string{
		manifest.Dependencies,
		manifest.DevDependencies,
		manifest.PeerDependencies,
		manifest.OptionalDependencies,
	} {
		for name := range block {
			known[name] = struct{}{}
		}
	}

	var items []types.DependencyItem
	depth := 0
	inBlock := false
	for idx, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if openingDependencyBlock(trimmed) {
				inBlock = true
				depth = 1
			}
			continue
		}
		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if depth <= 0 {
			inBlock = false
			continue
		}
		name, nameStart, nameEnd, ok := quotedToken(line, 0)
		if !ok {
			continue
		}
		if _, isDep := known[name]; !isDep {
			continue
		}
		colon := strings.Index(line[nameEnd:], ":")
		if colon < 0 {
			continue
		}
		value, start, end, ok := quotedToken(line, nameEnd+colon)
		if !ok {
			continue
		}
		item := newItem(line[nameStart-1:nameEnd+1], value, idx, start, end, line)
		items = append(items, item)
	}
	return items, nil
}

func openingDependencyBlock(trimmed string) bool {
	if !strings.Contains(trimmed, "{") {
		return false
	}
	for _, block := range packageJSONBlocks {
		if strings.HasPrefix(trimmed, block) {
			return true
		}
	}
	return false
}
