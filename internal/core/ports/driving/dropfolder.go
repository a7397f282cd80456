package driving

import (
	"context"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// DropFolder turns a watched directory into selection changes.
type DropFolder interface {
	// Watch blocks until ctx is done. Every drop replaces the selection
	// and onSelection receives the resulting status.
	Watch(ctx context.Context, dir string, onSelection func(domain.SelectionStatus)) error
}
