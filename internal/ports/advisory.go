package ports

import (
	"context"

	"github.com/innocenzi/dependi/internal/types"
)

// AdvisoryPort retrieves known security advisories for a dependency. A nil
// map means no data was available, not that no advisories exist.
type AdvisoryPort interface {
	Advisories(ctx context.Context, eco types.Ecosystem, name string, versions []string) (types.VulnerabilityMap, error)
}
