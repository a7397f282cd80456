package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultDocumentName is shown for documents the server returned without a filename.
const DefaultDocumentName = "document.pdf"

// ObjectType identifies the kind of region the analysis backend detected.
type ObjectType string

// Object types broken out by the client. Any other label is carried through as-is.
const (
	ObjectSignature ObjectType = "signature"
	ObjectStamp     ObjectType = "stamp"
	ObjectQRCode    ObjectType = "qrcode"
)

// KnownObjectTypes lists the broken-out types in display order.
var KnownObjectTypes = []ObjectType{ObjectSignature, ObjectStamp, ObjectQRCode}

// IsKnown returns true for signature, stamp and qrcode.
func (t ObjectType) IsKnown() bool {
	switch t {
	case ObjectSignature, ObjectStamp, ObjectQRCode:
		return true
	default:
		return false
	}
}

// String returns the wire label.
func (t ObjectType) String() string {
	return string(t)
}

// AnalysisResponse is the snapshot returned by a successful analysis run.
// It is treated as immutable once published.
type AnalysisResponse struct {
	Summary   Summary    `json:"summary"`
	Documents []Document `json:"documents"`

	// Raw is the exact body received from the server. Export uses it so
	// fields the client does not interpret survive unchanged.
	Raw json.RawMessage `json:"-"`
}

// Summary holds the totals computed by the backend.
type Summary struct {
	JobID          string     `json:"job_id,omitempty"`
	TotalDocuments int        `json:"total_documents"`
	TotalPages     int        `json:"total_pages"`
	TotalObjects   int        `json:"total_objects"`
	ByType         TypeCounts `json:"by_type"`
	StatsImageURL  string     `json:"stats_image_url,omitempty"`
}

// Document is one logical input file (a PDF, or a PDF extracted from a ZIP).
type Document struct {
	ID               string `json:"id,omitempty"`
	OriginalFilename string `json:"original_filename"`
	AnnotatedPDFURL  string `json:"annotated_pdf_url,omitempty"`
	Pages            []Page `json:"pages"`
}

// DisplayName returns the original filename or DefaultDocumentName.
func (d *Document) DisplayName() string {
	if d.OriginalFilename == "" {
		return DefaultDocumentName
	}
	return d.OriginalFilename
}

// HasPages reports whether the document can be shown in the viewer.
func (d *Document) HasPages() bool {
	return len(d.Pages) > 0
}

// Page is one rendered page of a document.
type Page struct {
	// PageNumber is 1-based and follows the source PDF page order.
	PageNumber int              `json:"page_number"`
	ImageURL   string           `json:"image_url"`
	Objects    []DetectedObject `json:"objects"`
}

// DetectedObject is a region of interest found on a page.
// Geometry and metadata are carried for display only.
type DetectedObject struct {
	Type       ObjectType `json:"type"`
	BBox       []float64  `json:"bbox,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
	Color      string     `json:"color,omitempty"`
	URL        string     `json:"url,omitempty"`
	Value      string     `json:"value,omitempty"`
}

// TypeCount is one entry of Summary.ByType.
type TypeCount struct {
	Type  ObjectType
	Count int
}

// TypeCounts is the by_type mapping with the server's key order preserved.
type TypeCounts []TypeCount

// Get returns the count for a type, zero when absent.
func (c TypeCounts) Get(t ObjectType) int {
	for _, tc := range c {
		if tc.Type == t {
			return tc.Count
		}
	}
	return 0
}

// Sum returns the total of all counts.
func (c TypeCounts) Sum() int {
	total := 0
	for _, tc := range c {
		total += tc.Count
	}
	return total
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (c *TypeCounts) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("by_type: expected object, got %v", tok)
	}

	counts := TypeCounts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("by_type: unexpected key %v", keyTok)
		}
		var n *int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("by_type.%s: %w", key, err)
		}
		count := 0
		if n != nil {
			count = *n
		}
		counts = append(counts, TypeCount{Type: ObjectType(key), Count: count})
	}
	*c = counts
	return nil
}

// MarshalJSON encodes the counts as a JSON object in stored order.
func (c TypeCounts) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tc := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(tc.Type))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", tc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseAnalysisResponse decodes a success body into a snapshot.
// The body must be a JSON object with a documents array.
func ParseAnalysisResponse(raw []byte) (*AnalysisResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	docs, ok := fields["documents"]
	if !ok || bytes.Equal(bytes.TrimSpace(docs), []byte("null")) {
		return nil, errors.New("decode analysis response: missing documents")
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	resp.Raw = append(json.RawMessage(nil), raw...)
	return &resp, nil
}
