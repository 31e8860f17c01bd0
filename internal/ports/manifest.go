package ports

import "github.com/innocenzi/dependi/internal/types"

// ManifestPort parses a manifest document into dependency occurrences with
// accurate source ranges for the declared constraint tokens.
type ManifestPort interface {
	Ecosystem() types.Ecosystem
	Parse(content string) ([]types.DependencyItem, error)
}
