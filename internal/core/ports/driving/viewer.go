package driving

import "github.com/custodia-labs/qubrix-cli/internal/core/domain"

// Viewer is the modal page-navigation state machine.
type Viewer interface {
	// Open shows doc at startIndex, clamped to its pages.
	// It returns false and stays closed for a document without pages.
	Open(doc *domain.Document, startIndex int) bool

	// Close discards the current document and page.
	Close()

	// Next moves one page forward; false when already on the last page or closed.
	Next() bool

	// Prev moves one page back; false when already on the first page or closed.
	Prev() bool

	// HandleKey routes a navigation key; false when the key was ignored.
	HandleKey(key domain.ViewerKey) bool

	// View returns the derived read-only view.
	View() domain.ViewerView

	// Subscribe registers fn for viewerStateChanged events.
	Subscribe(fn func(domain.ViewerStateChanged)) (unsubscribe func())
}
