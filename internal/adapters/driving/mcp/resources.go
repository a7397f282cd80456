package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for qubrix resources.
	uriScheme = "qubrix://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "results",
		Name:        "results",
		Description: "Raw JSON of the last successful analysis",
		MIMEType:    mimeJSON,
	}, s.handleResultsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{index}",
		Name:        "document",
		Description: "Pages and detected objects of one analysed document",
		MIMEType:    mimeJSON,
	}, s.handleDocumentResource)
}

// handleResultsResource returns the snapshot as pretty-printed JSON.
func (s *Server) handleResultsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap := s.ports.Session.Snapshot()
	if snap == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var data []byte
	if s.ports.Exporter != nil {
		rendered, err := s.ports.Exporter.Render(snap)
		if err != nil {
			return nil, fmt.Errorf("rendering results: %w", err)
		}
		data = rendered
	} else {
		data = snap.Raw
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns one snapshot document.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap := s.ports.Session.Snapshot()
	if snap == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	index, ok := extractDocumentIndex(req.Params.URI)
	if !ok || index >= len(snap.Documents) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc := snap.Documents[index]
	pages := make([]pageInfo, len(doc.Pages))
	for i, p := range doc.Pages {
		pages[i] = pageInfo{
			PageNumber: p.PageNumber,
			ImageURL:   s.resolve(p.ImageURL),
			Objects:    len(p.Objects),
		}
		for _, obj := range p.Objects {
			pages[i].Types = append(pages[i].Types, obj.Type.String())
		}
	}

	data, err := json.MarshalIndent(documentInfo{
		Index:           index,
		Name:            doc.DisplayName(),
		AnnotatedPDFURL: s.resolve(doc.AnnotatedPDFURL),
		Pages:           pages,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

type documentInfo struct {
	Index           int        `json:"index"`
	Name            string     `json:"name"`
	AnnotatedPDFURL string     `json:"annotated_pdf_url,omitempty"`
	Pages           []pageInfo `json:"pages"`
}

type pageInfo struct {
	PageNumber int      `json:"page_number"`
	ImageURL   string   `json:"image_url"`
	Objects    int      `json:"objects"`
	Types      []string `json:"types,omitempty"`
}

// extractDocumentIndex parses the index from a URI like qubrix://documents/{index}.
func extractDocumentIndex(uri string) (int, bool) {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	index, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
