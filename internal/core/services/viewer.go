package services

import (
	"sync"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ensure ViewerStateMachine implements the interface.
var _ driving.Viewer = (*ViewerStateMachine)(nil)

// ViewerStateMachine tracks which document and page the modal viewer shows.
// Page moves are clamped to the document, never wrapped.
type ViewerStateMachine struct {
	mu     sync.RWMutex
	doc    *domain.Document
	page   int
	events broadcaster[domain.ViewerStateChanged]
}

// NewViewerStateMachine creates a closed viewer.
func NewViewerStateMachine() *ViewerStateMachine {
	return &ViewerStateMachine{}
}

// Open shows doc at startIndex clamped to [0, pages-1].
// A document without pages leaves the viewer unchanged.
func (v *ViewerStateMachine) Open(doc *domain.Document, startIndex int) bool {
	if doc == nil || !doc.HasPages() {
		return false
	}

	v.mu.Lock()
	v.doc = doc
	v.page = clamp(startIndex, 0, len(doc.Pages)-1)
	view := v.viewLocked()
	v.mu.Unlock()

	v.events.publish(domain.ViewerStateChanged{View: view})
	return true
}

// Close discards the document and page; reopening starts fresh.
func (v *ViewerStateMachine) Close() {
	v.mu.Lock()
	wasOpen := v.doc != nil
	v.doc = nil
	v.page = 0
	view := v.viewLocked()
	v.mu.Unlock()

	if wasOpen {
		v.events.publish(domain.ViewerStateChanged{View: view})
	}
}

// Next moves one page forward.
func (v *ViewerStateMachine) Next() bool {
	return v.move(1)
}

// Prev moves one page back.
func (v *ViewerStateMachine) Prev() bool {
	return v.move(-1)
}

// HandleKey maps Escape, Left and Right while open. Keys are ignored while closed.
func (v *ViewerStateMachine) HandleKey(key domain.ViewerKey) bool {
	v.mu.RLock()
	open := v.doc != nil
	v.mu.RUnlock()
	if !open {
		return false
	}

	switch key {
	case domain.KeyEscape:
		v.Close()
		return true
	case domain.KeyLeft:
		return v.Prev()
	case domain.KeyRight:
		return v.Next()
	default:
		return false
	}
}

// View returns the derived read-only view.
func (v *ViewerStateMachine) View() domain.ViewerView {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.viewLocked()
}

// Subscribe registers fn for viewerStateChanged events.
func (v *ViewerStateMachine) Subscribe(fn func(domain.ViewerStateChanged)) func() {
	return v.events.subscribe(fn)
}

func (v *ViewerStateMachine) move(delta int) bool {
	v.mu.Lock()
	if v.doc == nil {
		v.mu.Unlock()
		return false
	}
	next := v.page + delta
	if next < 0 || next > len(v.doc.Pages)-1 {
		v.mu.Unlock()
		return false
	}
	v.page = next
	view := v.viewLocked()
	v.mu.Unlock()

	v.events.publish(domain.ViewerStateChanged{View: view})
	return true
}

// viewLocked builds the view (caller must hold lock).
func (v *ViewerStateMachine) viewLocked() domain.ViewerView {
	if v.doc == nil {
		return domain.ViewerView{State: domain.ViewerClosed}
	}

	page := v.doc.Pages[v.page]
	count := len(v.doc.Pages)
	return domain.ViewerView{
		State:      domain.ViewerOpen,
		Title:      v.doc.DisplayName(),
		PageIndex:  v.page,
		PageNumber: page.PageNumber,
		PageCount:  count,
		ImageURL:   page.ImageURL,
		Objects:    page.Objects,
		CanGoPrev:  v.page > 0,
		CanGoNext:  v.page < count-1,
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
