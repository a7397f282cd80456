package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ensure Session implements the interface.
var _ driving.Session = (*Session)(nil)

// Session owns the last successful snapshot and the viewer selection.
// The snapshot is replaced only when the pipeline reports success.
type Session struct {
	selection  driving.SelectionController
	pipeline   driving.AnalysisPipeline
	aggregator driving.ResultAggregator
	viewer     driving.Viewer
	exporter   driving.Exporter

	mu          sync.RWMutex
	snapshot    *domain.AnalysisResponse
	unsubscribe func()
}

// NewSession wires the controllers together and starts following the pipeline.
func NewSession(
	selection driving.SelectionController,
	pipeline driving.AnalysisPipeline,
	aggregator driving.ResultAggregator,
	viewer driving.Viewer,
	exporter driving.Exporter,
) *Session {
	s := &Session{
		selection:  selection,
		pipeline:   pipeline,
		aggregator: aggregator,
		viewer:     viewer,
		exporter:   exporter,
	}
	s.unsubscribe = pipeline.Subscribe(s.onRequestStateChanged)
	return s
}

// Selection returns the file selection controller.
func (s *Session) Selection() driving.SelectionController {
	return s.selection
}

// Pipeline returns the analysis pipeline.
func (s *Session) Pipeline() driving.AnalysisPipeline {
	return s.pipeline
}

// Viewer returns the page viewer.
func (s *Session) Viewer() driving.Viewer {
	return s.viewer
}

// Submit sends the current selection. The selection is kept on failure.
func (s *Session) Submit(ctx context.Context) (*domain.AnalysisResponse, error) {
	return s.pipeline.Submit(ctx, s.selection.Batch())
}

// Snapshot returns the last successful response.
func (s *Session) Snapshot() *domain.AnalysisResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Results aggregates the current snapshot.
func (s *Session) Results() (domain.AggregatedResult, bool) {
	snap := s.Snapshot()
	if snap == nil {
		return domain.AggregatedResult{}, false
	}
	return s.aggregator.Aggregate(snap), true
}

// OpenDocument opens the snapshot document at index.
func (s *Session) OpenDocument(index, startPage int) bool {
	snap := s.Snapshot()
	if snap == nil || index < 0 || index >= len(snap.Documents) {
		return false
	}
	return s.viewer.Open(&snap.Documents[index], startPage)
}

// ExportLastResult exports the current snapshot, or reports nothing to export.
func (s *Session) ExportLastResult(ctx context.Context) (domain.ExportOutcome, error) {
	return s.exporter.Export(ctx, s.Snapshot())
}

// Close stops following the pipeline.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// onRequestStateChanged publishes a new snapshot. The viewer is closed
// so it never points into a replaced snapshot.
func (s *Session) onRequestStateChanged(ev domain.RequestStateChanged) {
	if ev.Status.State != domain.RequestSucceeded || ev.Status.Response == nil {
		return
	}

	s.mu.Lock()
	s.snapshot = ev.Status.Response
	s.mu.Unlock()

	s.viewer.Close()
}
