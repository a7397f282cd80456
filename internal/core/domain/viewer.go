package domain

import "fmt"

// ViewerState is the modal viewer state.
type ViewerState int

const (
	// ViewerClosed means no document is displayed.
	ViewerClosed ViewerState = iota
	// ViewerOpen means one page of a document is displayed.
	ViewerOpen
)

// String returns the string representation of the state.
func (s ViewerState) String() string {
	if s == ViewerOpen {
		return "open"
	}
	return "closed"
}

// ViewerKey is a navigation key routed to the viewer.
type ViewerKey int

const (
	// KeyUnknown is any key the viewer does not handle.
	KeyUnknown ViewerKey = iota
	// KeyEscape closes the viewer.
	KeyEscape
	// KeyLeft moves to the previous page.
	KeyLeft
	// KeyRight moves to the next page.
	KeyRight
)

// ViewerView is the read-only projection of the viewer state.
type ViewerView struct {
	State ViewerState

	Title      string
	PageIndex  int
	PageNumber int
	PageCount  int
	ImageURL   string
	Objects    []DetectedObject

	CanGoPrev bool
	CanGoNext bool
}

// IsOpen reports whether the viewer shows a page.
func (v ViewerView) IsOpen() bool {
	return v.State == ViewerOpen
}

// Indicator returns the 1-based "Page i of n" line, empty when closed.
func (v ViewerView) Indicator() string {
	if !v.IsOpen() {
		return ""
	}
	n := v.PageNumber
	if n < 1 {
		n = v.PageIndex + 1
	}
	return fmt.Sprintf("Page %d of %d", n, v.PageCount)
}
