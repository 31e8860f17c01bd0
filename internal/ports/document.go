package ports

import (
	"context"

	"github.com/innocenzi/dependi/internal/types"
)

// DocumentPort abstracts the mutable text buffer holding a manifest. The
// concrete implementation may be an editor buffer or a file on disk.
type DocumentPort interface {
	ReplaceRange(r types.Range, text string) error
	Save(ctx context.Context) error
	Text() string
}
