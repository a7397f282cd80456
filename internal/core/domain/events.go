package domain

// SelectionChanged is published when the selection is replaced.
type SelectionChanged struct {
	Status SelectionStatus
}

// RequestStateChanged is published on every pipeline transition.
type RequestStateChanged struct {
	Previous RequestState
	Status   RequestStatus
}

// ViewerStateChanged is published when the viewer opens, closes or changes page.
type ViewerStateChanged struct {
	View ViewerView
}
