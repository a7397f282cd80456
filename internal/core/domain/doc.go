// Package domain defines the core entities of the qubrix client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - InputFile / SelectionBatch: the files chosen for one analysis run
//   - AnalysisResponse: the server's document/page/object snapshot
//   - AggregatedResult: per-document and global statistics
//   - ViewerView: the read-only projection of the page viewer state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
