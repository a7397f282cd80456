package driven

import (
	"context"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// AnalysisClient submits a batch to the document-analysis backend.
type AnalysisClient interface {
	// Process uploads the files as one request and returns the parsed snapshot.
	// Failures are returned as *domain.AnalysisError.
	Process(ctx context.Context, requestID string, files []domain.InputFile) (*domain.AnalysisResponse, error)

	// BaseURL returns the endpoint base used to resolve relative image references.
	BaseURL() string
}
