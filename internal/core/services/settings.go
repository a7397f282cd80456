package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerBaseURL   = "server.base_url"
	keyServerAPIToken  = "server.api_token"
	keyServerTimeout   = "server.timeout"
	keyUploadRateLimit = "upload.rate_limit_kbps"
	keyExportDir       = "export.dir"
	keyExportFilename  = "export.filename"
	keyDropzoneDir     = "dropzone.dir"
)

var settingsKeys = []string{
	keyServerBaseURL,
	keyServerAPIToken,
	keyServerTimeout,
	keyUploadRateLimit,
	keyExportDir,
	keyExportFilename,
	keyDropzoneDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			BaseURL:  s.getString(keyServerBaseURL, defaults.Server.BaseURL),
			APIToken: s.configStore.GetString(keyServerAPIToken),
			Timeout:  s.getDuration(keyServerTimeout, defaults.Server.Timeout),
		},
		Upload: domain.UploadSettings{
			RateLimitKBps: s.configStore.GetInt(keyUploadRateLimit),
		},
		Export: domain.ExportSettings{
			Dir:      s.configStore.GetString(keyExportDir),
			Filename: s.getString(keyExportFilename, defaults.Export.Filename),
		},
		Dropzone: domain.DropzoneSettings{
			Dir: s.configStore.GetString(keyDropzoneDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := domain.ValidateBaseURL(settings.Server.BaseURL); err != nil {
		return fmt.Errorf("invalid server base_url %q: %w", settings.Server.BaseURL, err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyServerBaseURL, settings.Server.BaseURL},
		{keyServerTimeout, settings.Server.Timeout.String()},
		{keyUploadRateLimit, settings.Upload.RateLimitKBps},
		{keyExportDir, settings.Export.Dir},
		{keyExportFilename, settings.Export.Filename},
		{keyDropzoneDir, settings.Dropzone.Dir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Server.APIToken != "" {
		if err := s.configStore.Set(keyServerAPIToken, settings.Server.APIToken); err != nil {
			return fmt.Errorf("save %s: %w", keyServerAPIToken, err)
		}
	}

	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyServerBaseURL:
		if err := domain.ValidateBaseURL(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		return s.configStore.Set(key, strings.TrimRight(value, "/"))
	case keyServerTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid %s %q: %w", key, value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, d.String())
	case keyUploadRateLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s %q: %w", key, value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, n)
	case keyExportFilename:
		if value == "" || strings.ContainsAny(value, `/\`) {
			return fmt.Errorf("invalid %s %q: %w", key, value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, value)
	case keyServerAPIToken, keyExportDir, keyDropzoneDir:
		return s.configStore.Set(key, value)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Keys lists the keys accepted by Set.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsKeys))
	copy(keys, settingsKeys)
	return keys
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := domain.ValidateBaseURL(settings.Server.BaseURL); err != nil {
		return fmt.Errorf("server base_url %q is not an absolute http(s) URL", settings.Server.BaseURL)
	}
	if settings.Upload.RateLimitKBps < 0 {
		return fmt.Errorf("upload rate limit must not be negative")
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetDuration(key)
}
