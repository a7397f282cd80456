package driving

import (
	"context"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// AnalysisPipeline owns the single outstanding analysis request.
type AnalysisPipeline interface {
	// Submit sends the batch and blocks until the request completes.
	// It returns domain.ErrRequestInFlight or domain.ErrEmptySelection
	// immediately, without a state transition, when it cannot start.
	Submit(ctx context.Context, batch domain.SelectionBatch) (*domain.AnalysisResponse, error)

	// Status returns the current lifecycle status.
	Status() domain.RequestStatus

	// Subscribe registers fn for requestStateChanged events.
	Subscribe(fn func(domain.RequestStateChanged)) (unsubscribe func())
}

// ResultAggregator derives display statistics from a snapshot.
type ResultAggregator interface {
	// Aggregate is deterministic and side-effect free.
	Aggregate(resp *domain.AnalysisResponse) domain.AggregatedResult
}
