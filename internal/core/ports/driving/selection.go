package driving

import "github.com/custodia-labs/qubrix-cli/internal/core/domain"

// SelectionController turns raw file input into a validated batch.
type SelectionController interface {
	// SetFiles replaces the current selection with the supported files of raw.
	SetFiles(raw []domain.InputFile) domain.SelectionStatus

	// Batch returns the current selection.
	Batch() domain.SelectionBatch

	// Status returns the status of the last SetFiles call.
	Status() domain.SelectionStatus

	// Subscribe registers fn for selectionChanged events.
	Subscribe(fn func(domain.SelectionChanged)) (unsubscribe func())
}
