package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentIndex(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int
		ok       bool
	}{
		{name: "valid index", uri: "qubrix://documents/3", expected: 3, ok: true},
		{name: "zero index", uri: "qubrix://documents/0", expected: 0, ok: true},
		{name: "negative index", uri: "qubrix://documents/-1"},
		{name: "not a number", uri: "qubrix://documents/abc"},
		{name: "invalid prefix", uri: "file://documents/1"},
		{name: "empty URI", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := extractDocumentIndex(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, index)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func analysedServer(t *testing.T) *Server {
	t.Helper()
	ports, _ := testPorts(&mockAnalysisClient{})
	server, err := NewServer(ports)
	require.NoError(t, err)
	_, _, err = server.handleAnalyze(context.Background(), nil, AnalyzeInput{Paths: []string{"a.pdf"}})
	require.NoError(t, err)
	return server
}

func TestServer_handleResultsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("not found before a result", func(t *testing.T) {
		ports, _ := testPorts(&mockAnalysisClient{})
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleResultsResource(ctx, makeReadResourceRequest("qubrix://results"))
		require.Error(t, err)
	})

	t.Run("returns pretty raw JSON", func(t *testing.T) {
		server := analysedServer(t)

		result, err := server.handleResultsResource(ctx, makeReadResourceRequest("qubrix://results"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"extra": "kept"`)
	})

	t.Run("falls back to raw body without exporter", func(t *testing.T) {
		server := analysedServer(t)
		server.ports.Exporter = nil

		result, err := server.handleResultsResource(ctx, makeReadResourceRequest("qubrix://results"))

		require.NoError(t, err)
		assert.JSONEq(t, sampleBody, result.Contents[0].Text)
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()
	server := analysedServer(t)

	t.Run("returns pages with resolved images", func(t *testing.T) {
		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("qubrix://documents/0"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"name": "contract.pdf"`)
		assert.Contains(t, text, "http://analysis.test/p2.png")
		assert.Contains(t, text, `"signature"`)
	})

	t.Run("page-less document uses default name", func(t *testing.T) {
		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("qubrix://documents/1"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"name": "document.pdf"`)
	})

	t.Run("out of range index not found", func(t *testing.T) {
		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("qubrix://documents/2"))
		require.Error(t, err)
	})
}
