package domain

import (
	"fmt"
	"strings"
)

// Separator joins the parts of one-line summaries.
const Separator = " • "

// DocumentStats is the compact card data for one document.
type DocumentStats struct {
	// Index is the position of the document in the snapshot.
	Index int

	Name      string
	PageCount int

	Signatures int
	Stamps     int
	QRCodes    int

	// TotalObjects counts every detected object, including unrecognised types.
	// It may exceed Signatures+Stamps+QRCodes.
	TotalObjects int

	// ThumbnailURL is the first page image, empty for page-less documents.
	ThumbnailURL string
}

// Viewable reports whether the document has pages to show.
func (s DocumentStats) Viewable() bool {
	return s.PageCount > 0
}

// Count returns the per-document counter for a known type.
func (s DocumentStats) Count(t ObjectType) int {
	switch t {
	case ObjectSignature:
		return s.Signatures
	case ObjectStamp:
		return s.Stamps
	case ObjectQRCode:
		return s.QRCodes
	default:
		return 0
	}
}

// Info returns the card subtitle, e.g. "3 pages • S: 2 • QR: 1".
func (s DocumentStats) Info() string {
	parts := []string{fmt.Sprintf("%d page%s", s.PageCount, plural(s.PageCount))}
	if s.Signatures > 0 {
		parts = append(parts, fmt.Sprintf("S: %d", s.Signatures))
	}
	if s.Stamps > 0 {
		parts = append(parts, fmt.Sprintf("St: %d", s.Stamps))
	}
	if s.QRCodes > 0 {
		parts = append(parts, fmt.Sprintf("QR: %d", s.QRCodes))
	}
	return strings.Join(parts, Separator)
}

// TypeShare is one entry of the global breakdown.
type TypeShare struct {
	Type       ObjectType
	Count      int
	Percentage int
}

// Label returns the breakdown text, e.g. "3 signatures (43%)".
func (t TypeShare) Label() string {
	return fmt.Sprintf("%d %s (%d%%)", t.Count, typeNoun(t.Type), t.Percentage)
}

// GlobalStats is the summary card data.
type GlobalStats struct {
	TotalDocuments int
	TotalPages     int
	TotalObjects   int
	ByType         TypeCounts

	// Breakdown lists known types with a nonzero count. Percentages use
	// signature+stamp+qrcode as the base, not TotalObjects.
	Breakdown []TypeShare

	StatsImageURL string
}

// ByTypeText renders every by_type entry as "label: count".
func (g GlobalStats) ByTypeText() string {
	parts := make([]string, 0, len(g.ByType))
	for _, tc := range g.ByType {
		parts = append(parts, fmt.Sprintf("%s: %d", tc.Type, tc.Count))
	}
	return strings.Join(parts, Separator)
}

// BreakdownText renders the breakdown entries joined by Separator.
func (g GlobalStats) BreakdownText() string {
	parts := make([]string, 0, len(g.Breakdown))
	for _, share := range g.Breakdown {
		parts = append(parts, share.Label())
	}
	return strings.Join(parts, Separator)
}

// AggregatedResult is the display model derived from a snapshot.
type AggregatedResult struct {
	Documents []DocumentStats
	Global    GlobalStats
}

// Viewable returns the documents that can be opened in the viewer.
func (r AggregatedResult) Viewable() []DocumentStats {
	out := make([]DocumentStats, 0, len(r.Documents))
	for _, d := range r.Documents {
		if d.Viewable() {
			out = append(out, d)
		}
	}
	return out
}

func typeNoun(t ObjectType) string {
	switch t {
	case ObjectSignature:
		return "signatures"
	case ObjectStamp:
		return "stamps"
	case ObjectQRCode:
		return "QR codes"
	default:
		return string(t)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
