package domain

// RequestState is the lifecycle state of the analysis pipeline.
type RequestState int

const (
	// RequestIdle means no request has been made yet.
	RequestIdle RequestState = iota
	// RequestSubmitting means a request is outstanding.
	RequestSubmitting
	// RequestSucceeded means the last request returned a snapshot.
	RequestSucceeded
	// RequestFailed means the last request failed.
	RequestFailed
)

// String returns the string representation of the state.
func (s RequestState) String() string {
	switch s {
	case RequestIdle:
		return "idle"
	case RequestSubmitting:
		return "submitting"
	case RequestSucceeded:
		return "succeeded"
	case RequestFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Armed reports whether a new submission may start from this state.
// Succeeded and Failed settle back to the idle behaviour.
func (s RequestState) Armed() bool {
	return s != RequestSubmitting
}

// Status messages shown for the pipeline states.
const (
	StatusMessageSubmitting = "Uploading and processing… this may take a bit for many pages."
	StatusMessageSucceeded  = "Processing finished successfully."
	StatusMessageFailed     = "Error. Please try again or check the server logs."
)

// RequestStatus describes the pipeline at one point in time.
type RequestStatus struct {
	State RequestState

	// RequestID correlates logs with the outbound request.
	RequestID string

	// Response is set in RequestSucceeded.
	Response *AnalysisResponse

	// Err is set in RequestFailed.
	Err error
}

// Busy reports whether the trigger should be disabled.
func (s RequestStatus) Busy() bool {
	return s.State == RequestSubmitting
}

// Message returns the persistent status line for the state.
func (s RequestStatus) Message() string {
	switch s.State {
	case RequestSubmitting:
		return StatusMessageSubmitting
	case RequestSucceeded:
		return StatusMessageSucceeded
	case RequestFailed:
		return StatusMessageFailed
	default:
		return ""
	}
}

// Alert returns the blocking notification text for a failure, empty otherwise.
func (s RequestStatus) Alert() string {
	if s.State != RequestFailed || s.Err == nil {
		return ""
	}
	return "Error while processing documents: " + s.Err.Error()
}
