package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

const defaultGoProxyURL = "https://proxy.golang.org"

// GoProxyRegistryAdapter fetches the version list of a module from a Go
// module proxy (@v/list), ordered newest first.
type GoProxyRegistryAdapter struct {
	baseURL string
	client  httpJSONClient
}

func NewGoProxyRegistryAdapter(baseURL string) GoProxyRegistryAdapter {
	if baseURL == "" {
		baseURL = defaultGoProxyURL
	}
	return GoProxyRegistryAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPJSONClient(),
	}
}

func (a GoProxyRegistryAdapter) Versions(ctx context.Context, name string) ([]string, error) {
	escaped, err := module.EscapePath(name)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid module path: %s", name)).
			WithCause(err)
	}
	url := fmt.Sprintf("%s/%s/@v/list", a.baseURL, escaped)
	var raw []byte
	if err := a.client.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}
	var versions []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !semver.IsValid(line) {
			continue
		}
		versions = append(versions, line)
	}
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare(versions[i], versions[j]) > 0
	})
	return versions, nil
}
