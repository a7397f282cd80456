package driving

import (
	"context"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// Session owns the last snapshot and the viewer for one interactive run.
type Session interface {
	// Selection returns the file selection controller.
	Selection() SelectionController

	// Pipeline returns the analysis pipeline.
	Pipeline() AnalysisPipeline

	// Viewer returns the page viewer.
	Viewer() Viewer

	// Submit sends the current selection through the pipeline.
	Submit(ctx context.Context) (*domain.AnalysisResponse, error)

	// Snapshot returns the last successful response, nil before the first one.
	Snapshot() *domain.AnalysisResponse

	// Results aggregates the snapshot; false when there is none.
	Results() (domain.AggregatedResult, bool)

	// OpenDocument opens the snapshot document at index in the viewer.
	OpenDocument(index, startPage int) bool

	// ExportLastResult writes the snapshot through the exporter.
	ExportLastResult(ctx context.Context) (domain.ExportOutcome, error)
}

// FileService resolves user-supplied paths into input files.
type FileService interface {
	Load(paths []string) ([]domain.InputFile, error)
}

// LinkService resolves and opens image references from a snapshot.
type LinkService interface {
	// Resolve turns a relative reference into an absolute URL.
	Resolve(ref string) string

	// Open hands the resolved URL to the system browser.
	Open(ref string) error
}
