package mcp

import (
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session runs analyses and holds the last snapshot.
	Session driving.Session

	// Files resolves tool-supplied paths into input files.
	Files driving.FileService

	// Links resolves relative image references. Optional.
	Links driving.LinkService

	// Exporter renders the raw snapshot resource. Optional.
	Exporter driving.Exporter
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
