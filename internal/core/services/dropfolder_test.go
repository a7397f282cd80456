package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
)

// mockDropzone implements driven.Dropzone by replaying drops synchronously.
type mockDropzone struct {
	dir   string
	drops [][]domain.InputFile
}

func (m *mockDropzone) Watch(_ context.Context, dir string, onDrop driven.DropHandler) error {
	m.dir = dir
	for _, files := range m.drops {
		onDrop(files)
	}
	return nil
}

func TestDropFolder_Watch(t *testing.T) {
	zone := &mockDropzone{drops: [][]domain.InputFile{
		{inputFile("a.pdf"), inputFile("b.txt")},
		{inputFile("c.txt")},
	}}
	selection := NewSelectionController()
	var statuses []domain.SelectionStatus

	err := NewDropFolder(zone, selection).Watch(context.Background(), "/drop", func(s domain.SelectionStatus) {
		statuses = append(statuses, s)
	})

	require.NoError(t, err)
	assert.Equal(t, "/drop", zone.dir)
	require.Len(t, statuses, 2)
	assert.Equal(t, domain.SelectionReady, statuses[0].Kind)
	assert.Equal(t, domain.SelectionRejected, statuses[1].Kind)
	assert.True(t, selection.Batch().IsEmpty())
}

func TestDropFolder_Watch_Errors(t *testing.T) {
	err := NewDropFolder(nil, NewSelectionController()).Watch(context.Background(), "/drop", nil)
	assert.Error(t, err)

	err = NewDropFolder(&mockDropzone{}, NewSelectionController()).Watch(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
