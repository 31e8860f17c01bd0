package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"github.com/innocenzi/dependi/internal/shared"
)

const defaultPyPIURL = "https://pypi.org"

// PyPIRegistryAdapter fetches published versions from the PyPI JSON API.
// Releases arrive as a map keyed by version, re-ordered newest first under
// PEP 440 comparison.
type PyPIRegistryAdapter struct {
	baseURL string
	client  httpJSONClient
}

func NewPyPIRegistryAdapter(baseURL string) PyPIRegistryAdapter {
	if baseURL == "" {
		baseURL = defaultPyPIURL
	}
	return PyPIRegistryAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPJSONClient(),
	}
}

type pypiFile struct {
	Yanked bool `json:"yanked"`
}

type pypiProjectResponse struct {
	Releases map[string][]pypiFile `json:"releases"`
}

func (a PyPIRegistryAdapter) Versions(ctx context.Context, name string) ([]string, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", a.baseURL, shared.NormalizePipName(name))
	var resp pypiProjectResponse
	if err := a.client.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	type entry struct {
		raw    string
		parsed pep440.Version
	}
	var entries []entry
	for raw, files := range resp.Releases {
		if allYanked(files) {
			continue
		}
		parsed, err := pep440.Parse(raw)
		if err != nil {
			continue
		}
		entries = append(entries, entry{raw: raw, parsed: parsed})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].parsed.Compare(entries[j].parsed) > 0
	})
	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		versions = append(versions, e.raw)
	}
	return versions, nil
}

func allYanked(files []pypiFile) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !f.Yanked {
			return false
		}
	}
	return true
}
