// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
// The page viewer is a modal over these and has no ViewType.
type ViewType int

const (
	// ViewUpload is the file selection and submit view.
	ViewUpload ViewType = iota
	// ViewResults shows the summary card and document cards.
	ViewResults
	// ViewRaw shows the snapshot as pretty JSON.
	ViewRaw
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewUpload:
		return "upload"
	case ViewResults:
		return "results"
	case ViewRaw:
		return "raw"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// SelectionChanged carries the status of a replaced selection.
// It is returned by the upload view and forwarded from selection events,
// which also covers the drop folder watcher.
type SelectionChanged struct {
	Status domain.SelectionStatus
}

// ViewerStateChanged is forwarded from viewer events.
type ViewerStateChanged struct {
	View domain.ViewerView
}

// SubmitRequested asks the app to send the current selection.
type SubmitRequested struct{}

// AnalysisCompleted carries the outcome of a submit.
type AnalysisCompleted struct {
	Response *domain.AnalysisResponse
	Err      error
}

// ExportRequested asks the app to export the current snapshot.
type ExportRequested struct{}

// ExportCompleted carries the outcome of an export.
type ExportCompleted struct {
	Outcome domain.ExportOutcome
	Err     error
}

// LinkOpened signals the system handler was asked to open a URL.
type LinkOpened struct {
	URL string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
