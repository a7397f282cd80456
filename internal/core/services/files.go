package services

import (
	"errors"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// ErrFileLoaderMissing is returned when no file loader is configured.
var ErrFileLoaderMissing = errors.New("file loader not configured")

// FileService resolves paths through the configured loader.
type FileService struct {
	loader driven.FileLoader
}

// NewFileService creates a new file service.
func NewFileService(loader driven.FileLoader) *FileService {
	return &FileService{loader: loader}
}

// Load resolves paths into input files. No paths yields an empty slice.
func (s *FileService) Load(paths []string) ([]domain.InputFile, error) {
	if len(paths) == 0 {
		return []domain.InputFile{}, nil
	}
	if s.loader == nil {
		return nil, ErrFileLoaderMissing
	}
	return s.loader.Load(paths)
}
