package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze tool.
type AnalyzeInput struct {
	Paths []string `json:"paths" jsonschema:"local PDF or ZIP files, or directories containing them"`
}

// ResultsInput is the input schema for the results tool.
type ResultsInput struct{}

// ExportInput is the input schema for the export tool.
type ExportInput struct{}

// ResultsOutput is the aggregated view of the current snapshot.
type ResultsOutput struct {
	Summary   SummaryOutput    `json:"summary"`
	Documents []DocumentOutput `json:"documents"`
}

// SummaryOutput mirrors the summary card.
type SummaryOutput struct {
	TotalDocuments int               `json:"total_documents"`
	TotalPages     int               `json:"total_pages"`
	TotalObjects   int               `json:"total_objects"`
	ByType         []TypeCountOutput `json:"by_type"`
	Breakdown      []ShareOutput     `json:"breakdown,omitempty"`
	StatsImageURL  string            `json:"stats_image_url,omitempty"`
}

// TypeCountOutput is one by_type entry, in server order.
type TypeCountOutput struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ShareOutput is one breakdown entry.
type ShareOutput struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// DocumentOutput mirrors one document card.
type DocumentOutput struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Pages        int    `json:"pages"`
	Signatures   int    `json:"signatures"`
	Stamps       int    `json:"stamps"`
	QRCodes      int    `json:"qrcodes"`
	TotalObjects int    `json:"total_objects"`
	Info         string `json:"info"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Viewable     bool   `json:"viewable"`
}

// ExportOutput is the output schema for the export tool.
type ExportOutput struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze",
		Description: "Upload PDF or ZIP files for signature, stamp and QR code detection",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "results",
		Description: "Statistics of the last successful analysis",
	}, s.handleResults)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export",
		Description: "Write the last analysis response to a JSON file",
	}, s.handleExport)
}

// handleAnalyze replaces the selection with input.Paths and runs the pipeline.
// Calls from concurrent HTTP clients run one at a time, so each caller gets
// the results for its own paths.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	s.analyzeMu.Lock()
	defer s.analyzeMu.Unlock()

	files, err := s.ports.Files.Load(input.Paths)
	if err != nil {
		return nil, ResultsOutput{}, fmt.Errorf("loading files: %w", err)
	}

	status := s.ports.Session.Selection().SetFiles(files)
	if !status.CanSubmit() {
		return nil, ResultsOutput{}, errors.New(status.Message())
	}

	if _, err := s.ports.Session.Submit(ctx); err != nil {
		return nil, ResultsOutput{}, fmt.Errorf("processing documents: %w", err)
	}

	output, err := s.results()
	return nil, output, err
}

// handleResults returns the aggregated view of the current snapshot.
func (s *Server) handleResults(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ResultsInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	output, err := s.results()
	return nil, output, err
}

// handleExport writes the snapshot through the session exporter.
func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	outcome, err := s.ports.Session.ExportLastResult(ctx)
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("exporting results: %w", err)
	}
	if outcome.Kind != domain.ExportWritten {
		return nil, ExportOutput{}, domain.ErrNothingToExport
	}
	return nil, ExportOutput{Path: outcome.Path, Bytes: outcome.Size}, nil
}

func (s *Server) results() (ResultsOutput, error) {
	agg, ok := s.ports.Session.Results()
	if !ok {
		return ResultsOutput{}, ErrNoResults
	}

	g := agg.Global
	output := ResultsOutput{
		Summary: SummaryOutput{
			TotalDocuments: g.TotalDocuments,
			TotalPages:     g.TotalPages,
			TotalObjects:   g.TotalObjects,
			ByType:         make([]TypeCountOutput, len(g.ByType)),
			StatsImageURL:  s.resolve(g.StatsImageURL),
		},
		Documents: make([]DocumentOutput, len(agg.Documents)),
	}
	for i, tc := range g.ByType {
		output.Summary.ByType[i] = TypeCountOutput{Type: tc.Type.String(), Count: tc.Count}
	}
	for _, share := range g.Breakdown {
		output.Summary.Breakdown = append(output.Summary.Breakdown, ShareOutput{
			Type:       share.Type.String(),
			Count:      share.Count,
			Percentage: share.Percentage,
		})
	}
	for i, d := range agg.Documents {
		output.Documents[i] = DocumentOutput{
			Index:        d.Index,
			Name:         d.Name,
			Pages:        d.PageCount,
			Signatures:   d.Signatures,
			Stamps:       d.Stamps,
			QRCodes:      d.QRCodes,
			TotalObjects: d.TotalObjects,
			Info:         d.Info(),
			ThumbnailURL: s.resolve(d.ThumbnailURL),
			Viewable:     d.Viewable(),
		}
	}
	return output, nil
}
