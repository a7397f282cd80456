package domain

import (
	"net/url"
	"time"
)

// Default settings values.
const (
	DefaultServerURL     = "http://localhost:5000"
	DefaultServerTimeout = 10 * time.Minute
	ProcessPath          = "/api/process"
)

// ServerSettings configures the analysis endpoint.
type ServerSettings struct {
	// BaseURL is the scheme and host of the analysis service.
	BaseURL string

	// APIToken is sent as a bearer token when set.
	APIToken string

	// Timeout bounds one analysis request, zero means no limit.
	Timeout time.Duration
}

// HasToken reports whether requests should be authenticated.
func (s ServerSettings) HasToken() bool {
	return s.APIToken != ""
}

// UploadSettings configures the request body.
type UploadSettings struct {
	// RateLimitKBps caps upload bandwidth in KiB/s, zero means unlimited.
	RateLimitKBps int
}

// ExportSettings configures the download artifact.
type ExportSettings struct {
	// Dir is where artifacts are written, empty means the working directory.
	Dir string

	// Filename is the artifact name.
	Filename string
}

// DropzoneSettings configures the watched drop folder.
type DropzoneSettings struct {
	// Dir is watched for dropped files, empty disables the drop folder.
	Dir string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Server   ServerSettings
	Upload   UploadSettings
	Export   ExportSettings
	Dropzone DropzoneSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			BaseURL: DefaultServerURL,
			Timeout: DefaultServerTimeout,
		},
		Export: ExportSettings{
			Filename: ExportFilename,
		},
	}
}

// ValidateBaseURL checks that a base URL is absolute http(s).
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidInput
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidInput
	}
	return nil
}
