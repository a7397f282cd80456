// Package tui provides an interactive terminal user interface for qubrix.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the selection, the pipeline, the snapshot and the viewer.
	Session driving.Session

	// Files resolves typed paths into input files.
	Files driving.FileService

	// Links resolves and opens page images. Optional.
	Links driving.LinkService

	// Exporter renders the raw JSON view. Optional.
	Exporter driving.Exporter
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(session driving.Session, files driving.FileService) *Ports {
	return &Ports{
		Session: session,
		Files:   files,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Files == nil {
		return ErrMissingFileService
	}
	return nil
}
