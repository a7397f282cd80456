package local

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.FileLoader = (*Loader)(nil)

// Loader turns paths into lazily opened input files.
// It does not filter by extension; the selection controller does.
type Loader struct{}

// NewLoader creates a new loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load stats every path. Directories contribute their visible regular
// files, one level deep, sorted by name. A missing path is an error.
func (l *Loader) Load(paths []string) ([]domain.InputFile, error) {
	files := make([]domain.InputFile, 0, len(paths))

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}

		if !info.IsDir() {
			files = append(files, newInputFile(p, info))
			continue
		}

		listed, err := listDir(p)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}

	return files, nil
}

// listDir returns the visible regular files directly under dir, sorted.
func listDir(dir string) ([]domain.InputFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	files := make([]domain.InputFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || isHidden(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, newInputFile(filepath.Join(dir, e.Name()), info))
	}
	return files, nil
}

func newInputFile(path string, info os.FileInfo) domain.InputFile {
	return domain.InputFile{
		Name:     filepath.Base(path),
		MIMEType: detectMIMEType(path),
		Size:     info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// detectMIMEType returns the type for the extension without parameters.
func detectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case domain.ExtPDF:
		return "application/pdf"
	case domain.ExtZIP:
		return "application/zip"
	case "":
		return "application/octet-stream"
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// isHidden reports whether any path element starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
