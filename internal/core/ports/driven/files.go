package driven

import (
	"context"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// FileLoader resolves local paths into input files.
// It does not filter by extension; that is the selection's job.
type FileLoader interface {
	Load(paths []string) ([]domain.InputFile, error)
}

// DropHandler receives the full listing of a drop folder after a change.
type DropHandler func(files []domain.InputFile)

// Dropzone watches a folder and reports its contents whenever it changes.
type Dropzone interface {
	// Watch blocks until ctx is cancelled or the watcher fails.
	Watch(ctx context.Context, dir string, onDrop DropHandler) error
}

// URLOpener opens a URL with the system default handler.
type URLOpener interface {
	Open(url string) error
}
