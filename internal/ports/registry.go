package ports

import "context"

// RegistryPort retrieves the known published versions of a dependency,
// ordered newest first (index 0 is the authoritative latest).
type RegistryPort interface {
	Versions(ctx context.Context, name string) ([]string, error)
}
