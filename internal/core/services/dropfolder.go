package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ensure DropFolder implements the interface.
var _ driving.DropFolder = (*DropFolder)(nil)

// DropFolder feeds drop events into a selection controller.
type DropFolder struct {
	dropzone  driven.Dropzone
	selection driving.SelectionController
}

// NewDropFolder creates a drop folder service.
func NewDropFolder(dropzone driven.Dropzone, selection driving.SelectionController) *DropFolder {
	return &DropFolder{dropzone: dropzone, selection: selection}
}

// Watch replaces the selection with each drop's listing.
func (d *DropFolder) Watch(ctx context.Context, dir string, onSelection func(domain.SelectionStatus)) error {
	if d.dropzone == nil {
		return errors.New("drop folder not configured")
	}
	if dir == "" {
		return domain.ErrInvalidInput
	}
	return d.dropzone.Watch(ctx, dir, func(files []domain.InputFile) {
		status := d.selection.SetFiles(files)
		if onSelection != nil {
			onSelection(status)
		}
	})
}
