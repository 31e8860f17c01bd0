package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	semver "github.com/Masterminds/semver/v3"
)

const defaultNpmURL = "https://registry.npmjs.org"

// NpmRegistryAdapter fetches published versions from an npm registry. The
// packument lists versions as a map, so they are re-ordered newest first
// by semver; unparsable tags are dropped.
type NpmRegistryAdapter struct {
	baseURL string
	client  httpJSONClient
}

func NewNpmRegistryAdapter(baseURL string) NpmRegistryAdapter {
	if baseURL == "" {
		baseURL = defaultNpmURL
	}
	return NpmRegistryAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPJSONClient(),
	}
}

type npmPackument struct {
	Versions map[string]struct{} `json:"versions"`
}

func (a NpmRegistryAdapter) Versions(ctx context.Context, name string) ([]string, error) {
	url := fmt.Sprintf("%s/%s", a.baseURL, name)
	var resp npmPackument
	if err := a.client.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	type entry struct {
		raw    string
		parsed *semver.Version
	}
	var entries []entry
	for raw := range resp.Versions {
		parsed, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		entries = append(entries, entry{raw: raw, parsed: parsed})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].parsed.GreaterThan(entries[j].parsed)
	})
	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		versions = append(versions, e.raw)
	}
	return versions, nil
}
