// Package mcp provides an MCP (Model Context Protocol) server adapter for qubrix.
// It lets AI assistants submit documents for analysis and read the results.
package mcp

import "errors"

var (
	// ErrMissingSession is returned when the analysis session is not provided.
	ErrMissingSession = errors.New("mcp: session is required")

	// ErrMissingFileService is returned when the file service is not provided.
	ErrMissingFileService = errors.New("mcp: file service is required")

	// ErrNoResults is returned when no analysis has succeeded yet.
	ErrNoResults = errors.New("mcp: no analysis results yet")
)
