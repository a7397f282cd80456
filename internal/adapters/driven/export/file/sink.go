package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.FileSink = (*Sink)(nil)

// Sink writes artifacts under a directory, replacing existing files atomically.
type Sink struct {
	dir string
}

// NewSink creates a sink for dir. An empty dir means the working directory.
func NewSink(dir string) *Sink {
	if dir == "" {
		dir = "."
	}
	return &Sink{dir: dir}
}

// Dir returns the target directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Save writes data to dir/name through a temp file and rename, so a reader
// never sees a partial artifact. The mime type is not recorded on disk.
func (s *Sink) Save(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// Removing a renamed temp file fails harmlessly.
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	target := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("rename %s: %w", name, err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return target, nil
	}
	return abs, nil
}
