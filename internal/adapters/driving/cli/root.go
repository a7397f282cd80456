// Package cli provides the cobra command tree for qubrix.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	verbose        bool
	serverOverride string
)

// Services holds the driving ports used by one command run.
type Services struct {
	Session  driving.Session
	Files    driving.FileService
	Links    driving.LinkService
	Drops    driving.DropFolder
	Exporter driving.Exporter
}

// ServicesFactory builds the services for the effective settings.
// Commands call it lazily so flags like --server apply.
type ServicesFactory func(settings domain.AppSettings) (*Services, error)

var (
	settingsService driving.SettingsService
	servicesFactory ServicesFactory
)

var rootCmd = &cobra.Command{
	Use:   "qubrix",
	Short: "Detect signatures, stamps and QR codes in PDF documents",
	Long: `qubrix uploads PDF and ZIP files to a document-analysis service and
shows what it found: signatures, stamps and QR codes per page, with
aggregated statistics across all documents.

Run 'qubrix tui' for the interactive interface or 'qubrix analyze' for
one-shot use in scripts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "analysis service base URL (overrides settings)")
}

// SetServices injects the settings service and the factory for run services.
func SetServices(settings driving.SettingsService, factory ServicesFactory) {
	settingsService = settings
	servicesFactory = factory
}

// SetVersion sets the version reported by 'qubrix version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// effectiveSettings loads the stored settings and applies flag overrides.
func effectiveSettings() (domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return domain.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *stored
	}

	if serverOverride != "" {
		base := strings.TrimRight(strings.TrimSpace(serverOverride), "/")
		if err := domain.ValidateBaseURL(base); err != nil {
			return domain.AppSettings{}, fmt.Errorf("--server %q: must be an absolute http(s) URL: %w", serverOverride, err)
		}
		settings.Server.BaseURL = base
	}
	return settings, nil
}

// buildServices creates the run services from the effective settings.
func buildServices() (*Services, error) {
	if servicesFactory == nil {
		return nil, errors.New("analysis services not configured")
	}
	settings, err := effectiveSettings()
	if err != nil {
		return nil, err
	}
	logger.Debug("using analysis service %s", settings.Server.BaseURL)

	svc, err := servicesFactory(settings)
	if err != nil {
		return nil, fmt.Errorf("creating services: %w", err)
	}
	return svc, nil
}
