package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exportfile "github.com/custodia-labs/qubrix-cli/internal/adapters/driven/export/file"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create", "/drop/a.pdf", fsnotify.Create, true},
		{"write", "/drop/a.pdf", fsnotify.Write, true},
		{"remove", "/drop/a.pdf", fsnotify.Remove, true},
		{"rename", "/drop/a.pdf", fsnotify.Rename, true},
		{"chmod", "/drop/a.pdf", fsnotify.Chmod, false},
		{"hidden create", "/drop/.a.pdf.part", fsnotify.Create, false},
		{"zip create", "/drop/B.ZIP", fsnotify.Create, true},
		{"export file create", "/drop/qubrixai_results.json", fsnotify.Create, false},
		{"text write", "/drop/notes.txt", fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestNewDropzone_DefaultSettle(t *testing.T) {
	assert.Equal(t, DefaultSettle, NewDropzone(0).settle)
	assert.Equal(t, time.Second, NewDropzone(time.Second).settle)
}

func TestDropzone_Watch_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	writeFile(t, path, "x")

	err := NewDropzone(0).Watch(context.Background(), path, func([]domain.InputFile) {})
	assert.Error(t, err)

	err = NewDropzone(0).Watch(context.Background(), filepath.Join(path, "missing"), func([]domain.InputFile) {})
	assert.Error(t, err)
}

func TestDropzone_Watch_DeliversListing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "existing.zip"), "PK")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	drops := make(chan []domain.InputFile, 4)
	done := make(chan error, 1)
	go func() {
		done <- NewDropzone(50*time.Millisecond).Watch(ctx, dir, func(files []domain.InputFile) {
			drops <- files
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "new.pdf"), "%PDF")

	select {
	case files := <-drops:
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		assert.Equal(t, []string{"existing.zip", "new.pdf"}, names)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for drop")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestDropzone_Watch_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	drops := make(chan []domain.InputFile, 8)
	go func() {
		_ = NewDropzone(200*time.Millisecond).Watch(ctx, dir, func(files []domain.InputFile) {
			drops <- files
		})
	}()

	time.Sleep(100 * time.Millisecond)
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF"), 0644))
	}

	select {
	case files := <-drops:
		assert.Len(t, files, 3)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for drop")
	}

	select {
	case extra := <-drops:
		t.Fatalf("unexpected second drop with %d file(s)", len(extra))
	case <-time.After(400 * time.Millisecond):
	}
}

func TestDropzone_Watch_IgnoresExportInWatchedDir(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := exportfile.NewSink(dir)
	drops := make(chan []domain.InputFile, 8)
	go func() {
		_ = NewDropzone(50*time.Millisecond).Watch(ctx, dir, func(files []domain.InputFile) {
			// Same as watch --export: every drop writes the results next to the inputs.
			_, err := sink.Save(ctx, domain.ExportFilename, domain.ExportMIMEType, []byte("{}\n"))
			assert.NoError(t, err)
			drops <- files
		})
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "scan.pdf"), "%PDF")

	select {
	case <-drops:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for drop")
	}

	select {
	case extra := <-drops:
		t.Fatalf("export triggered another drop with %d file(s)", len(extra))
	case <-time.After(500 * time.Millisecond):
	}

	_, err := os.Stat(filepath.Join(dir, domain.ExportFilename))
	assert.NoError(t, err)
}
