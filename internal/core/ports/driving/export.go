package driving

import (
	"context"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// Exporter serialises a snapshot for download.
type Exporter interface {
	// Export writes resp; a nil resp yields domain.ExportNothing.
	Export(ctx context.Context, resp *domain.AnalysisResponse) (domain.ExportOutcome, error)

	// Render returns the exact bytes Export would write.
	Render(resp *domain.AnalysisResponse) ([]byte, error)
}
