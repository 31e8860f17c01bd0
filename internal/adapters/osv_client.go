package adapters

import (
	"context"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/innocenzi/dependi/internal/types"
)

const defaultOSVURL = "https://api.osv.dev"

// osvEcosystems maps internal ecosystems to OSV database ecosystem names.
var osvEcosystems = map[types.Ecosystem]string{
	types.EcosystemRust:       "crates.io",
	types.EcosystemGo:         "Go",
	types.EcosystemJavaScript: "npm",
	types.EcosystemPython:     "PyPI",
}

// OSVAdvisoryAdapter retrieves known advisories from the OSV querybatch
// API, one query per version. Failures degrade to "no data" (nil map)
// rather than surfacing as errors: vulnerability information is advisory,
// never load-bearing.
type OSVAdvisoryAdapter struct {
	baseURL string
	client  httpJSONClient
}

func NewOSVAdvisoryAdapter(baseURL string) OSVAdvisoryAdapter {
	if baseURL == "" {
		baseURL = defaultOSVURL
	}
	return OSVAdvisoryAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPJSONClient(),
	}
}

type osvQuery struct {
	Version string     `json:"version"`
	Package osvPackage `json:"package"`
}

type osvPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

type osvBatchRequest struct {
	Queries []osvQuery `json:"queries"`
}

type osvBatchResponse struct {
	Results []struct {
		Vulns []struct {
			ID string `json:"id"`
		} `json:"vulns"`
	} `json:"results"`
}

func (a OSVAdvisoryAdapter) Advisories(ctx context.Context, eco types.Ecosystem, name string, versions []string) (types.VulnerabilityMap, error) {
	osvName, ok := osvEcosystems[eco]
	if !ok || len(versions) == 0 {
		return nil, nil
	}
	request := osvBatchRequest{}
	for _, version := range versions {
		request.Queries = append(request.Queries, osvQuery{
			Version: version,
			Package: osvPackage{Name: name, Ecosystem: osvName},
		})
	}
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(request)
	if err != nil {
		return nil, nil
	}
	var resp osvBatchResponse
	if err := a.client.postJSON(ctx, a.baseURL+"/v1/querybatch", body, &resp); err != nil {
		log.Ctx(ctx).Debug().Str("package", name).Err(err).Msg("advisory lookup failed")
		return nil, nil
	}
	if len(resp.Results) != len(versions) {
		return nil, nil
	}
	vulns := types.VulnerabilityMap{}
	for i, result := range resp.Results {
		for _, vuln := range result.Vulns {
			vulns[versions[i]] = append(vulns[versions[i]], vuln.ID)
		}
	}
	return vulns, nil
}
