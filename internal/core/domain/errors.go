package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent client-side failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a selection with no PDF or ZIP file left after filtering.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptySelection indicates a submit was attempted with nothing selected.
	ErrEmptySelection = errors.New("no files selected")

	// ErrRequestInFlight indicates an analysis request is already outstanding.
	ErrRequestInFlight = errors.New("analysis request in progress")

	// ErrNothingToExport indicates no successful response has been received yet.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrViewerClosed indicates a navigation call while the viewer is closed.
	ErrViewerClosed = errors.New("viewer closed")

	// Analysis Errors.

	// ErrTransport indicates the analysis endpoint could not be reached.
	ErrTransport = errors.New("transport error")

	// ErrServer indicates the analysis endpoint answered with a non-success status.
	ErrServer = errors.New("server error")

	// ErrMalformedResponse indicates a success status with an unparseable body.
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorKind classifies analysis failures.
type ErrorKind string

// Error kinds surfaced by the analysis pipeline.
const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindTransport  ErrorKind = "transport"
	ErrorKindServer     ErrorKind = "server"
	ErrorKindMalformed  ErrorKind = "malformed-response"
)

// AnalysisError carries a human-readable message for a failed analysis run.
type AnalysisError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status for server errors, zero otherwise.
	StatusCode int

	// Message is the text shown to the user.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// NewServerError builds a server error from a response status and body text.
// An empty body falls back to a generic message including the status code.
func NewServerError(status int, body string) *AnalysisError {
	msg := body
	if msg == "" {
		msg = fmt.Sprintf("Server error (%d)", status)
	}
	return &AnalysisError{Kind: ErrorKindServer, StatusCode: status, Message: msg}
}

// NewTransportError wraps a network failure.
func NewTransportError(err error) *AnalysisError {
	return &AnalysisError{Kind: ErrorKindTransport, Message: err.Error(), Err: err}
}

// NewMalformedError wraps a body decoding failure.
func NewMalformedError(err error) *AnalysisError {
	return &AnalysisError{Kind: ErrorKindMalformed, Message: err.Error(), Err: err}
}

// Error implements error.
func (e *AnalysisError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for the kind and the underlying cause.
func (e *AnalysisError) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Kind {
	case ErrorKindValidation:
		errs = append(errs, ErrUnsupportedFormat)
	case ErrorKindTransport:
		errs = append(errs, ErrTransport)
	case ErrorKindServer:
		errs = append(errs, ErrServer)
	case ErrorKindMalformed:
		errs = append(errs, ErrMalformedResponse)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
