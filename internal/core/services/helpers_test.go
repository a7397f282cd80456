package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// sampleBody is a response shaped like the analysis backend's.
const sampleBody = `{
  "summary": {
    "job_id": "job-1",
    "total_documents": 2,
    "total_pages": 3,
    "total_objects": 7,
    "by_type": {"signature": 3, "stamp": 1, "qrcode": 3},
    "stats_image_url": "/api/jobs/job-1/stats.png"
  },
  "documents": [
    {
      "id": "d1",
      "original_filename": "contract.pdf",
      "pages": [
        {"page_number": 1, "image_url": "/api/jobs/job-1/d1/p1.png", "objects": [
          {"type": "signature", "bbox": [1, 2, 3, 4], "confidence": 0.9},
          {"type": "qrcode", "bbox": [5, 6, 7, 8], "confidence": 0.8, "value": "https://x.test"}
        ]},
        {"page_number": 2, "image_url": "/api/jobs/job-1/d1/p2.png", "objects": [
          {"type": "signature", "bbox": [1, 2, 3, 4], "confidence": 0.7},
          {"type": "stamp", "bbox": [1, 2, 3, 4], "confidence": 0.6}
        ]},
        {"page_number": 3, "image_url": "/api/jobs/job-1/d1/p3.png", "objects": []}
      ]
    },
    {
      "id": "d2",
      "original_filename": "",
      "pages": []
    }
  ]
}`

func sampleResponse() *domain.AnalysisResponse {
	resp, err := domain.ParseAnalysisResponse([]byte(sampleBody))
	if err != nil {
		panic(err)
	}
	return resp
}

func inputFile(name string) domain.InputFile {
	return domain.InputFile{
		Name: name,
		Size: int64(len(name)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(name)), nil
		},
	}
}

func readyBatch(names ...string) domain.SelectionBatch {
	files := make([]domain.InputFile, len(names))
	for i, n := range names {
		files[i] = inputFile(n)
	}
	return domain.NewSelectionBatch(files)
}

// mockAnalysisClient implements driven.AnalysisClient for testing.
// When release is non-nil, Process blocks until it is closed.
type mockAnalysisClient struct {
	mu       sync.Mutex
	calls    int
	lastID   string
	lastSent []string
	started  chan struct{}
	release  chan struct{}
	resp     *domain.AnalysisResponse
	err      error
}

func (m *mockAnalysisClient) Process(_ context.Context, requestID string, files []domain.InputFile) (*domain.AnalysisResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastID = requestID
	m.lastSent = m.lastSent[:0]
	for _, f := range files {
		m.lastSent = append(m.lastSent, f.Name)
	}
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}
	return m.resp, m.err
}

func (m *mockAnalysisClient) BaseURL() string { return "http://localhost:5000" }

func (m *mockAnalysisClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockFileSink implements driven.FileSink for testing.
type mockFileSink struct {
	saves [][]byte
	names []string
	mimes []string
	err   error
}

func (m *mockFileSink) Save(_ context.Context, name, mimeType string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saves = append(m.saves, append([]byte(nil), data...))
	m.names = append(m.names, name)
	m.mimes = append(m.mimes, mimeType)
	return "/exports/" + name, nil
}

// mockFileLoader implements driven.FileLoader for testing.
type mockFileLoader struct {
	paths []string
	err   error
}

func (m *mockFileLoader) Load(paths []string) ([]domain.InputFile, error) {
	m.paths = paths
	if m.err != nil {
		return nil, m.err
	}
	files := make([]domain.InputFile, len(paths))
	for i, p := range paths {
		files[i] = inputFile(p)
	}
	return files, nil
}

// mockURLOpener implements driven.URLOpener for testing.
type mockURLOpener struct {
	opened []string
	err    error
}

func (m *mockURLOpener) Open(url string) error {
	m.opened = append(m.opened, url)
	return m.err
}
