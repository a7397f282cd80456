package domain

// Download artifact defaults.
const (
	ExportFilename = "qubrixai_results.json"
	ExportMIMEType = "application/json"
)

// ExportKind is the result of an export attempt.
type ExportKind int

const (
	// ExportNothing means no snapshot was available.
	ExportNothing ExportKind = iota
	// ExportWritten means the snapshot was handed to the sink.
	ExportWritten
)

// String returns the string representation of the kind.
func (k ExportKind) String() string {
	if k == ExportWritten {
		return "written"
	}
	return "nothing_to_export"
}

// ExportOutcome describes one export call.
type ExportOutcome struct {
	Kind ExportKind

	// Path is where the sink stored the artifact.
	Path string

	// Size is the number of bytes written.
	Size int
}
