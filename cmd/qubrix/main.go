// Command qubrix uploads PDF and ZIP files to a document-analysis service
// and explores the detected signatures, stamps and QR codes.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driven/analysis/httpapi"
	configfile "github.com/custodia-labs/qubrix-cli/internal/adapters/driven/config/file"
	exportfile "github.com/custodia-labs/qubrix-cli/internal/adapters/driven/export/file"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driven/files/local"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/core/services"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

// version is injected with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServices(services.NewSettingsService(openConfigStore()), newServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// openConfigStore opens ~/.qubrix/config.toml, falling back to an
// in-memory store so the tool still runs with a read-only home.
func openConfigStore() driven.ConfigStore {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Error("opening config: %v (settings will not be saved)", err)
		return memory.NewConfigStore()
	}
	return store
}

// newServices wires the core services to the driven adapters for one run.
func newServices(settings domain.AppSettings) (*cli.Services, error) {
	client, err := httpapi.NewClient(httpapi.Config{
		BaseURL:       settings.Server.BaseURL,
		APIToken:      settings.Server.APIToken,
		Timeout:       settings.Server.Timeout,
		RateLimitKBps: settings.Upload.RateLimitKBps,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis client: %w", err)
	}

	selection := services.NewSelectionController()
	exporter := services.NewExportController(
		exportfile.NewSink(settings.Export.Dir),
		settings.Export.Filename,
	)
	session := services.NewSession(
		selection,
		services.NewPipeline(client),
		services.NewResultAggregator(),
		services.NewViewerStateMachine(),
		exporter,
	)

	return &cli.Services{
		Session:  session,
		Files:    services.NewFileService(local.NewLoader()),
		Links:    services.NewLinkService(client.BaseURL(), nil),
		Drops:    services.NewDropFolder(local.NewDropzone(0), selection),
		Exporter: exporter,
	}, nil
}
