package services

import (
	"math"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ensure ResultAggregator implements the interface.
var _ driving.ResultAggregator = (*ResultAggregator)(nil)

// ResultAggregator computes per-document and global statistics.
type ResultAggregator struct{}

// NewResultAggregator creates a new aggregator.
func NewResultAggregator() *ResultAggregator {
	return &ResultAggregator{}
}

// Aggregate derives the display model of resp. A nil resp yields the zero value.
func (a *ResultAggregator) Aggregate(resp *domain.AnalysisResponse) domain.AggregatedResult {
	if resp == nil {
		return domain.AggregatedResult{}
	}

	docs := make([]domain.DocumentStats, len(resp.Documents))
	for i := range resp.Documents {
		docs[i] = documentStats(i, &resp.Documents[i])
	}

	return domain.AggregatedResult{
		Documents: docs,
		Global:    globalStats(&resp.Summary),
	}
}

// documentStats counts objects across all pages of doc.
// Unrecognised types only contribute to TotalObjects.
func documentStats(index int, doc *domain.Document) domain.DocumentStats {
	stats := domain.DocumentStats{
		Index:     index,
		Name:      doc.DisplayName(),
		PageCount: len(doc.Pages),
	}
	if doc.HasPages() {
		stats.ThumbnailURL = doc.Pages[0].ImageURL
	}

	for _, page := range doc.Pages {
		for _, obj := range page.Objects {
			stats.TotalObjects++
			switch obj.Type {
			case domain.ObjectSignature:
				stats.Signatures++
			case domain.ObjectStamp:
				stats.Stamps++
			case domain.ObjectQRCode:
				stats.QRCodes++
			}
		}
	}
	return stats
}

// globalStats builds the summary card. The breakdown base is
// signature+stamp+qrcode from by_type, not total_objects; the two
// differ when other types are present and the mismatch is kept as-is.
func globalStats(summary *domain.Summary) domain.GlobalStats {
	g := domain.GlobalStats{
		TotalDocuments: summary.TotalDocuments,
		TotalPages:     summary.TotalPages,
		TotalObjects:   summary.TotalObjects,
		ByType:         summary.ByType,
		StatsImageURL:  summary.StatsImageURL,
	}

	totalKnown := 0
	for _, t := range domain.KnownObjectTypes {
		if n := summary.ByType.Get(t); n > 0 {
			totalKnown += n
		}
	}
	if totalKnown == 0 {
		return g
	}

	for _, t := range domain.KnownObjectTypes {
		n := summary.ByType.Get(t)
		if n <= 0 {
			continue
		}
		g.Breakdown = append(g.Breakdown, domain.TypeShare{
			Type:       t,
			Count:      n,
			Percentage: roundPercent(n, totalKnown),
		})
	}
	return g
}

// roundPercent rounds half up, matching the browser client's Math.round.
func roundPercent(part, whole int) int {
	return int(math.Floor(float64(part)*100/float64(whole) + 0.5))
}
