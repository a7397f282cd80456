package driven

import "context"

// FileSink writes a download artifact to a user-chosen location.
type FileSink interface {
	// Save stores data under name and returns the final location.
	Save(ctx context.Context, name, mimeType string, data []byte) (string, error)
}
