package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

func resetAnalyzeFlags() {
	analyzeJSON, analyzeYAML, analyzeExport = false, false, false
	for _, name := range []string{"json", "yaml", "export"} {
		analyzeCmd.Flags().Lookup(name).Changed = false
	}
}

func TestAnalyzeCmd_Use(t *testing.T) {
	assert.Equal(t, "analyze FILE...", analyzeCmd.Use)
}

func TestAnalyzeCmd_RequiresFiles(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()

	_, _, err := execute("analyze")
	assert.Error(t, err)
}

func TestAnalyzeCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"json", "yaml", "export"} {
		flag := analyzeCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestAnalyzeCmd_TextReport(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()

	out, errOut, err := execute("analyze", "--server", "http://analysis.test", "a.pdf", "notes.txt", "b.zip")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.zip"}, env.client.sent)

	assert.Contains(t, errOut, "Selected 2 file(s): a.pdf, b.zip")
	assert.Contains(t, errOut, domain.StatusMessageSubmitting)
	assert.Contains(t, errOut, domain.StatusMessageSucceeded)

	assert.Contains(t, out, "Documents: 2")
	assert.Contains(t, out, "Pages:     3")
	assert.Contains(t, out, "Objects:   7")
	assert.Contains(t, out, "By type:   signature: 3 • stamp: 1 • qrcode: 3")
	assert.Contains(t, out, "Breakdown: 3 signatures (43%) • 1 stamps (14%) • 3 QR codes (43%)")
	assert.Contains(t, out, "Stats:     http://analysis.test/stats.png")
	assert.Contains(t, out, "[0] contract.pdf")
	assert.Contains(t, out, "3 pages • S: 2 • St: 1 • QR: 1")
	assert.Contains(t, out, "http://analysis.test/p1.png")
	assert.Contains(t, out, "[1] document.pdf")
	assert.Contains(t, out, "(no pages to view)")
}

func TestAnalyzeCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()

	out, _, err := execute("analyze", "--json", "a.pdf")

	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, `"total_documents": 2`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestAnalyzeCmd_YAMLOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()

	out, _, err := execute("analyze", "--yaml", "--server", "http://analysis.test", "a.pdf")
	require.NoError(t, err)

	var report struct {
		Summary struct {
			TotalObjects int            `yaml:"total_objects"`
			ByType       map[string]int `yaml:"by_type"`
			Breakdown    []struct {
				Type       string `yaml:"type"`
				Percentage int    `yaml:"percentage"`
			} `yaml:"breakdown"`
			StatsImageURL string `yaml:"stats_image_url"`
		} `yaml:"summary"`
		Documents []struct {
			Name  string `yaml:"name"`
			Pages int    `yaml:"pages"`
		} `yaml:"documents"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))

	assert.Equal(t, 7, report.Summary.TotalObjects)
	assert.Equal(t, map[string]int{"signature": 3, "stamp": 1, "qrcode": 3}, report.Summary.ByType)
	require.Len(t, report.Summary.Breakdown, 3)
	assert.Equal(t, 14, report.Summary.Breakdown[1].Percentage)
	assert.Equal(t, "http://analysis.test/stats.png", report.Summary.StatsImageURL)
	require.Len(t, report.Documents, 2)
	assert.Equal(t, "contract.pdf", report.Documents[0].Name)

	// by_type keeps the server's key order
	sig := strings.Index(out, "signature: 3")
	stamp := strings.Index(out, "stamp: 1")
	qr := strings.Index(out, "qrcode: 3")
	assert.True(t, sig < stamp && stamp < qr, out)
}

func TestAnalyzeCmd_JSONAndYAMLExclusive(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()

	_, _, err := execute("analyze", "--json", "--yaml", "a.pdf")

	require.Error(t, err)
	assert.Zero(t, env.client.calls)
}

func TestAnalyzeCmd_RejectedSelection(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()

	_, _, err := execute("analyze", "notes.txt", "photo.png")

	require.Error(t, err)
	assert.Equal(t, "Unsupported format. Please upload PDF or ZIP files.", err.Error())
	assert.Zero(t, env.client.calls)
}

func TestAnalyzeCmd_ServerError(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()
	env.client.err = domain.NewServerError(500, "model not loaded")

	_, errOut, err := execute("analyze", "a.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServer)
	assert.Contains(t, err.Error(), "processing documents: model not loaded")
	assert.Contains(t, errOut, domain.StatusMessageFailed)
}

func TestAnalyzeCmd_Export(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	defer resetAnalyzeFlags()

	_, errOut, err := execute("analyze", "--export", "a.pdf")

	require.NoError(t, err)
	require.NotEmpty(t, env.sink.data)
	assert.JSONEq(t, sampleBody, string(env.sink.data))
	assert.Contains(t, errOut, "Exported")
	assert.Contains(t, errOut, "/exports/"+domain.ExportFilename)
}

func TestAnalyzeCmd_ServicesNotConfigured(t *testing.T) {
	oldSettings, oldFactory := settingsService, servicesFactory
	SetServices(nil, nil)
	defer SetServices(oldSettings, oldFactory)
	defer resetAnalyzeFlags()

	_, _, err := execute("analyze", "a.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis services not configured")
}
