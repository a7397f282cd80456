package mcp

import (
	"context"
	"io"
	"strings"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/services"
)

const sampleBody = `{
  "summary": {
    "total_documents": 2,
    "total_pages": 2,
    "total_objects": 3,
    "by_type": {"signature": 2, "qrcode": 1},
    "stats_image_url": "/stats.png"
  },
  "documents": [
    {
      "original_filename": "contract.pdf",
      "pages": [
        {"page_number": 1, "image_url": "/p1.png", "objects": [{"type": "signature"}, {"type": "qrcode"}]},
        {"page_number": 2, "image_url": "/p2.png", "objects": [{"type": "signature"}]}
      ],
      "extra": "kept"
    },
    {"original_filename": "", "pages": []}
  ]
}`

// mockAnalysisClient is a mock implementation of driven.AnalysisClient.
type mockAnalysisClient struct {
	calls int
	sent  []string
	err   error
}

func (m *mockAnalysisClient) Process(
	_ context.Context,
	_ string,
	files []domain.InputFile,
) (*domain.AnalysisResponse, error) {
	m.calls++
	m.sent = m.sent[:0]
	for _, f := range files {
		m.sent = append(m.sent, f.Name)
	}
	if m.err != nil {
		return nil, m.err
	}
	return domain.ParseAnalysisResponse([]byte(sampleBody))
}

func (m *mockAnalysisClient) BaseURL() string { return "http://analysis.test" }

// mockFileService is a mock implementation of driving.FileService.
type mockFileService struct {
	err error
}

func (m *mockFileService) Load(paths []string) ([]domain.InputFile, error) {
	if m.err != nil {
		return nil, m.err
	}
	files := make([]domain.InputFile, len(paths))
	for i, p := range paths {
		name := p
		files[i] = domain.InputFile{
			Name: name,
			Size: int64(len(name)),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader(name)), nil
			},
		}
	}
	return files, nil
}

// mockFileSink is a mock implementation of driven.FileSink.
type mockFileSink struct {
	data []byte
}

func (m *mockFileSink) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	m.data = data
	return "/exports/" + name, nil
}

// testPorts wires real services around the mocks.
func testPorts(client *mockAnalysisClient) (*Ports, *mockFileSink) {
	sink := &mockFileSink{}
	exporter := services.NewExportController(sink, "")
	session := services.NewSession(
		services.NewSelectionController(),
		services.NewPipeline(client),
		services.NewResultAggregator(),
		services.NewViewerStateMachine(),
		exporter,
	)
	return &Ports{
		Session:  session,
		Files:    &mockFileService{},
		Links:    services.NewLinkService(client.BaseURL(), nil),
		Exporter: exporter,
	}, sink
}
