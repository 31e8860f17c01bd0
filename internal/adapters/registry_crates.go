package adapters

import (
	"context"
	"fmt"
	"strings"
)

const defaultCratesURL = "https://crates.io"

// CratesRegistryAdapter fetches published versions from the crates.io API.
// The API already returns versions newest first; yanked releases are
// dropped.
type CratesRegistryAdapter struct {
	baseURL string
	client  httpJSONClient
}

func NewCratesRegistryAdapter(baseURL string) CratesRegistryAdapter {
	if baseURL == "" {
		baseURL = defaultCratesURL
	}
	return CratesRegistryAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPJSONClient(),
	}
}

type cratesVersionsResponse struct {
	Versions []struct {
		Num    string `json:"num"`
		Yanked bool   `json:"yanked"`
	} `json:"versions"`
}

func (a CratesRegistryAdapter) Versions(ctx context.Context, name string) ([]string, error) {
	url := fmt.Sprintf("%s/api/v1/crates/%s/versions", a.baseURL, name)
	var resp cratesVersionsResponse
	if err := a.client.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	var versions []string
	for _, v := range resp.Versions {
		if v.Yanked {
			continue
		}
		versions = append(versions, v.Num)
	}
	return versions, nil
}
