package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

// Ensure ExportController implements the interface.
var _ driving.Exporter = (*ExportController)(nil)

// exportIndent is the indentation of the exported JSON.
const exportIndent = "  "

// ExportController serialises the full snapshot, not the aggregated view,
// so fields the client does not interpret are kept.
type ExportController struct {
	sink     driven.FileSink
	filename string
}

// NewExportController creates an exporter writing to sink.
// An empty filename uses domain.ExportFilename.
func NewExportController(sink driven.FileSink, filename string) *ExportController {
	if filename == "" {
		filename = domain.ExportFilename
	}
	return &ExportController{sink: sink, filename: filename}
}

// Render returns the pretty-printed snapshot. Output is byte-identical
// for an unchanged snapshot.
func (e *ExportController) Render(resp *domain.AnalysisResponse) ([]byte, error) {
	if resp == nil {
		return nil, domain.ErrNothingToExport
	}

	source := bytes.TrimSpace([]byte(resp.Raw))
	if len(source) == 0 {
		var err error
		source, err = json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, source, "", exportIndent); err != nil {
		return nil, fmt.Errorf("indent snapshot: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Export hands the rendered snapshot to the sink. It never mutates resp.
func (e *ExportController) Export(ctx context.Context, resp *domain.AnalysisResponse) (domain.ExportOutcome, error) {
	if resp == nil {
		return domain.ExportOutcome{Kind: domain.ExportNothing}, nil
	}
	if e.sink == nil {
		return domain.ExportOutcome{}, errors.New("export sink not configured")
	}

	data, err := e.Render(resp)
	if err != nil {
		return domain.ExportOutcome{}, err
	}

	path, err := e.sink.Save(ctx, e.filename, domain.ExportMIMEType, data)
	if err != nil {
		return domain.ExportOutcome{}, fmt.Errorf("save export: %w", err)
	}

	logger.Debug("exported %d bytes to %s", len(data), path)
	return domain.ExportOutcome{Kind: domain.ExportWritten, Path: path, Size: len(data)}, nil
}
