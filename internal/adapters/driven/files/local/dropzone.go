package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

// Ensure Dropzone implements the interface.
var _ driven.Dropzone = (*Dropzone)(nil)

// DefaultSettle is how long the folder must stay quiet before a drop fires.
const DefaultSettle = 300 * time.Millisecond

// Dropzone turns changes in a watched folder into drop events.
// Every drop carries the folder's full listing, so it replaces the selection.
type Dropzone struct {
	settle time.Duration
}

// NewDropzone creates a drop folder watcher. A zero settle uses DefaultSettle.
func NewDropzone(settle time.Duration) *Dropzone {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Dropzone{settle: settle}
}

// Watch blocks until ctx is done, calling onDrop once per burst of changes.
func (d *Dropzone) Watch(ctx context.Context, dir string, onDrop driven.DropHandler) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("watching drop folder %s", dir)

	// settled fires once the folder has been quiet for d.settle; nil when idle.
	var settled <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !handleFsEvent(event) {
				continue
			}
			logger.Debug("drop folder event: %s", event)
			settled = time.After(d.settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("drop folder watcher: %v", err)

		case <-settled:
			settled = nil
			files, err := listDir(dir)
			if err != nil {
				logger.Warn("drop folder listing failed: %v", err)
				continue
			}
			logger.Info("drop folder %s: %d file(s)", dir, len(files))
			onDrop(files)
		}
	}
}

// handleFsEvent reports whether an event changes the drop listing.
// Chmod, hidden files and anything that is not a PDF or ZIP are ignored,
// so an export written into the watched folder does not fire a new drop.
func handleFsEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if isHidden(name) || !domain.IsSupportedFile(name) {
		return false
	}
	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
