package services

import (
	"sync"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

// Ensure SelectionController implements the interface.
var _ driving.SelectionController = (*SelectionController)(nil)

// SelectionController holds the validated file selection.
type SelectionController struct {
	mu     sync.RWMutex
	batch  domain.SelectionBatch
	status domain.SelectionStatus
	events broadcaster[domain.SelectionChanged]
}

// NewSelectionController creates a controller with nothing selected.
func NewSelectionController() *SelectionController {
	return &SelectionController{
		status: domain.SelectionStatus{Kind: domain.SelectionEmpty},
	}
}

// SetFiles replaces the selection. Calls are not additive.
func (c *SelectionController) SetFiles(raw []domain.InputFile) domain.SelectionStatus {
	batch := domain.NewSelectionBatch(raw)

	var status domain.SelectionStatus
	switch {
	case len(raw) == 0:
		status = domain.SelectionStatus{Kind: domain.SelectionEmpty}
	case batch.IsEmpty():
		status = domain.SelectionStatus{
			Kind:   domain.SelectionRejected,
			Reason: domain.RejectReasonUnsupportedFormat,
		}
	default:
		status = domain.SelectionStatus{
			Kind:  domain.SelectionReady,
			Count: batch.Len(),
			Names: batch.Names(),
		}
	}

	c.mu.Lock()
	c.batch = batch
	c.status = status
	c.mu.Unlock()

	logger.Debug("selection %s: %d offered, %d accepted", status.Kind, len(raw), batch.Len())
	c.events.publish(domain.SelectionChanged{Status: status})
	return status
}

// Batch returns the current selection.
func (c *SelectionController) Batch() domain.SelectionBatch {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.batch
}

// Status returns the status of the last SetFiles call.
func (c *SelectionController) Status() domain.SelectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Subscribe registers fn for selectionChanged events.
func (c *SelectionController) Subscribe(fn func(domain.SelectionChanged)) func() {
	return c.events.subscribe(fn)
}
