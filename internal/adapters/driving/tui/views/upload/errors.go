package upload

import "errors"

// Error definitions for the upload view.
var (
	// ErrNoFileService indicates that no file service was provided.
	ErrNoFileService = errors.New("file service is required")
)
