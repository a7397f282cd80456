package domain

import (
	"io"
	"strconv"
	"strings"
)

// Supported upload extensions, matched case-insensitively.
const (
	ExtPDF = ".pdf"
	ExtZIP = ".zip"
)

// RejectReasonUnsupportedFormat is the SelectionStatus reason for an all-rejected selection.
const RejectReasonUnsupportedFormat = "unsupported-format"

// InputFile is one file offered for analysis.
type InputFile struct {
	// Name is the original file name sent as the multipart filename.
	Name string

	// MIMEType is the detected or declared content type, may be empty.
	MIMEType string

	// Size is the byte length when known, -1 otherwise.
	Size int64

	// Open returns a fresh reader over the file bytes.
	Open func() (io.ReadCloser, error)
}

// IsSupportedFile reports whether a name ends in .pdf or .zip, ignoring case.
func IsSupportedFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ExtPDF) || strings.HasSuffix(lower, ExtZIP)
}

// SelectionBatch is the ordered set of accepted files for one run.
// Every member satisfies IsSupportedFile.
type SelectionBatch struct {
	files []InputFile
}

// NewSelectionBatch keeps the supported files of raw, in order.
func NewSelectionBatch(raw []InputFile) SelectionBatch {
	files := make([]InputFile, 0, len(raw))
	for _, f := range raw {
		if IsSupportedFile(f.Name) {
			files = append(files, f)
		}
	}
	return SelectionBatch{files: files}
}

// Files returns a copy of the batch members.
func (b SelectionBatch) Files() []InputFile {
	out := make([]InputFile, len(b.files))
	copy(out, b.files)
	return out
}

// Len returns the number of files.
func (b SelectionBatch) Len() int {
	return len(b.files)
}

// IsEmpty reports whether nothing is selected.
func (b SelectionBatch) IsEmpty() bool {
	return len(b.files) == 0
}

// Names returns the file names in order.
func (b SelectionBatch) Names() []string {
	names := make([]string, len(b.files))
	for i, f := range b.files {
		names[i] = f.Name
	}
	return names
}

// SelectionKind distinguishes the three selection outcomes.
type SelectionKind int

const (
	// SelectionEmpty means nothing was offered.
	SelectionEmpty SelectionKind = iota
	// SelectionRejected means files were offered but none was supported.
	SelectionRejected
	// SelectionReady means at least one supported file is selected.
	SelectionReady
)

// String returns the string representation of the kind.
func (k SelectionKind) String() string {
	switch k {
	case SelectionEmpty:
		return "empty"
	case SelectionRejected:
		return "rejected"
	case SelectionReady:
		return "ready"
	default:
		return "unknown"
	}
}

// SelectionStatus is the result of replacing the selection.
type SelectionStatus struct {
	Kind   SelectionKind
	Reason string
	Count  int
	Names  []string
}

// CanSubmit reports whether submission should be enabled.
func (s SelectionStatus) CanSubmit() bool {
	return s.Kind == SelectionReady && s.Count > 0
}

// Message returns the status line shown next to the upload control.
func (s SelectionStatus) Message() string {
	switch s.Kind {
	case SelectionRejected:
		return "Unsupported format. Please upload PDF or ZIP files."
	case SelectionReady:
		return "Selected " + strconv.Itoa(s.Count) + " file(s): " + strings.Join(s.Names, ", ")
	default:
		return "No files selected yet."
	}
}
