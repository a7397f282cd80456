package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.AnalysisPipeline = (*Pipeline)(nil)

// Pipeline owns the lifecycle of the single outstanding analysis request.
//
//	Idle → Submitting → (Succeeded | Failed)
//
// Succeeded and Failed are re-armable: a new Submit may start from either.
// There is no retry and no cancellation.
type Pipeline struct {
	client    driven.AnalysisClient
	requestID func() string

	mu     sync.Mutex
	status domain.RequestStatus
	events broadcaster[domain.RequestStateChanged]
}

// NewPipeline creates an idle pipeline sending requests through client.
func NewPipeline(client driven.AnalysisClient) *Pipeline {
	return &Pipeline{
		client:    client,
		requestID: uuid.NewString,
		status:    domain.RequestStatus{State: domain.RequestIdle},
	}
}

// Submit sends batch as one request and blocks until it completes.
func (p *Pipeline) Submit(ctx context.Context, batch domain.SelectionBatch) (*domain.AnalysisResponse, error) {
	if batch.IsEmpty() {
		return nil, domain.ErrEmptySelection
	}
	if p.client == nil {
		return nil, errors.New("analysis client not configured")
	}

	p.mu.Lock()
	if p.status.State == domain.RequestSubmitting {
		p.mu.Unlock()
		logger.Debug("submit refused: request %s in flight", p.status.RequestID)
		return nil, domain.ErrRequestInFlight
	}
	submitting := domain.RequestStatus{State: domain.RequestSubmitting, RequestID: p.requestID()}
	prev := p.transition(submitting)
	p.mu.Unlock()
	p.events.publish(domain.RequestStateChanged{Previous: prev, Status: submitting})

	done := logger.Timed("analysis request " + submitting.RequestID)
	resp, err := p.client.Process(ctx, submitting.RequestID, batch.Files())
	done()

	if err != nil {
		var analysisErr *domain.AnalysisError
		if !errors.As(err, &analysisErr) {
			analysisErr = domain.NewTransportError(err)
		}
		logger.Warn("analysis request %s failed (%s): %s", submitting.RequestID, analysisErr.Kind, analysisErr.Message)
		p.finish(domain.RequestStatus{
			State:     domain.RequestFailed,
			RequestID: submitting.RequestID,
			Err:       analysisErr,
		})
		return nil, analysisErr
	}

	logger.Info("analysis request %s returned %d document(s)", submitting.RequestID, len(resp.Documents))
	p.finish(domain.RequestStatus{
		State:     domain.RequestSucceeded,
		RequestID: submitting.RequestID,
		Response:  resp,
	})
	return resp, nil
}

// Status returns the current lifecycle status.
func (p *Pipeline) Status() domain.RequestStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Subscribe registers fn for requestStateChanged events.
func (p *Pipeline) Subscribe(fn func(domain.RequestStateChanged)) func() {
	return p.events.subscribe(fn)
}

// transition swaps the status and returns the previous state (caller must hold lock).
func (p *Pipeline) transition(next domain.RequestStatus) domain.RequestState {
	prev := p.status.State
	p.status = next
	return prev
}

func (p *Pipeline) finish(next domain.RequestStatus) {
	p.mu.Lock()
	prev := p.transition(next)
	p.mu.Unlock()
	p.events.publish(domain.RequestStateChanged{Previous: prev, Status: next})
}
