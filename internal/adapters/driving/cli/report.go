package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// printReport renders the summary card followed by one card per document.
func printReport(cmd *cobra.Command, links driving.LinkService, result domain.AggregatedResult) {
	g := result.Global

	cmd.Println("Summary")
	cmd.Println("=======")
	cmd.Printf("  Documents: %d\n", g.TotalDocuments)
	cmd.Printf("  Pages:     %d\n", g.TotalPages)
	cmd.Printf("  Objects:   %d\n", g.TotalObjects)
	if len(g.ByType) > 0 {
		cmd.Printf("  By type:   %s\n", g.ByTypeText())
	}
	if len(g.Breakdown) > 0 {
		cmd.Printf("  Breakdown: %s\n", g.BreakdownText())
	}
	if g.StatsImageURL != "" {
		cmd.Printf("  Stats:     %s\n", resolveLink(links, g.StatsImageURL))
	}
	cmd.Println()

	cmd.Println("Documents")
	cmd.Println("=========")
	if len(result.Documents) == 0 {
		cmd.Println("  (none)")
		return
	}
	for _, d := range result.Documents {
		cmd.Printf("  [%d] %s\n", d.Index, d.Name)
		cmd.Printf("      %s\n", d.Info())
		if !d.Viewable() {
			cmd.Println("      (no pages to view)")
			continue
		}
		cmd.Printf("      %s\n", resolveLink(links, d.ThumbnailURL))
	}
}

func resolveLink(links driving.LinkService, ref string) string {
	if links == nil {
		return ref
	}
	return links.Resolve(ref)
}

type yamlReport struct {
	Summary   yamlSummary    `yaml:"summary"`
	Documents []yamlDocument `yaml:"documents"`
}

type yamlSummary struct {
	TotalDocuments int `yaml:"total_documents"`
	TotalPages     int `yaml:"total_pages"`
	TotalObjects   int `yaml:"total_objects"`

	// ByType is a node so the server's key order survives.
	ByType        *yaml.Node  `yaml:"by_type"`
	Breakdown     []yamlShare `yaml:"breakdown,omitempty"`
	StatsImageURL string      `yaml:"stats_image_url,omitempty"`
}

type yamlShare struct {
	Type       string `yaml:"type"`
	Count      int    `yaml:"count"`
	Percentage int    `yaml:"percentage"`
}

type yamlDocument struct {
	Index        int    `yaml:"index"`
	Name         string `yaml:"name"`
	Pages        int    `yaml:"pages"`
	Signatures   int    `yaml:"signatures"`
	Stamps       int    `yaml:"stamps"`
	QRCodes      int    `yaml:"qrcodes"`
	TotalObjects int    `yaml:"total_objects"`
	ThumbnailURL string `yaml:"thumbnail_url,omitempty"`
}

// writeYAMLReport encodes the aggregated statistics as YAML.
func writeYAMLReport(w io.Writer, links driving.LinkService, result domain.AggregatedResult) error {
	g := result.Global
	report := yamlReport{
		Summary: yamlSummary{
			TotalDocuments: g.TotalDocuments,
			TotalPages:     g.TotalPages,
			TotalObjects:   g.TotalObjects,
			ByType:         typeCountsNode(g.ByType),
			StatsImageURL:  resolveLink(links, g.StatsImageURL),
		},
		Documents: make([]yamlDocument, len(result.Documents)),
	}
	for _, share := range g.Breakdown {
		report.Summary.Breakdown = append(report.Summary.Breakdown, yamlShare{
			Type:       share.Type.String(),
			Count:      share.Count,
			Percentage: share.Percentage,
		})
	}
	for i, d := range result.Documents {
		report.Documents[i] = yamlDocument{
			Index:        d.Index,
			Name:         d.Name,
			Pages:        d.PageCount,
			Signatures:   d.Signatures,
			Stamps:       d.Stamps,
			QRCodes:      d.QRCodes,
			TotalObjects: d.TotalObjects,
			ThumbnailURL: resolveLink(links, d.ThumbnailURL),
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

func typeCountsNode(counts domain.TypeCounts) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, tc := range counts {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: tc.Type.String()},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(tc.Count)},
		)
	}
	return node
}
