// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// DocumentList displays per-document statistics in a navigable list.
type DocumentList struct {
	docs     []domain.DocumentStats
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewDocumentList creates a new document list component.
func NewDocumentList(s *styles.Styles) *DocumentList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocumentList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the document list.
func (d *DocumentList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (d *DocumentList) Update(msg tea.Msg) (*DocumentList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			d.MoveUp()
		case "down", "j":
			d.MoveDown()
		}
	}
	return d, nil
}

// View renders the document list.
func (d *DocumentList) View() string {
	if len(d.docs) == 0 {
		return d.styles.Muted.Render("No documents")
	}

	lines := make([]string, 0, len(d.docs)+2)
	lines = append(lines, d.styles.Subtitle.Render(fmt.Sprintf("Documents (%d)", len(d.docs))), "")

	// Each document takes two lines
	visibleCount := (d.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if d.selected >= visibleCount {
		start = d.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(d.docs) {
		end = len(d.docs)
	}

	for i := start; i < end; i++ {
		lines = append(lines, d.renderDocument(i, &d.docs[i]))
	}

	return strings.Join(lines, "\n")
}

func (d *DocumentList) renderDocument(index int, doc *domain.DocumentStats) string {
	indicator := "  "
	if index == d.selected {
		indicator = "> "
	}

	name := doc.Name
	maxNameLen := d.width - 6
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	var nameLine string
	switch {
	case index == d.selected:
		nameLine = d.styles.Selected.Render(indicator + name)
	case !doc.Viewable():
		nameLine = d.styles.Disabled.Render(indicator + name)
	default:
		nameLine = d.styles.Normal.Render(indicator + name)
	}

	info := doc.Info()
	if !doc.Viewable() {
		info += " • no pages to view"
	}

	return nameLine + "\n" + d.styles.Muted.Render("    "+info)
}

// SetDocuments replaces the listed documents and resets the selection.
func (d *DocumentList) SetDocuments(docs []domain.DocumentStats) {
	d.docs = docs
	d.selected = 0
}

// Documents returns the listed documents.
func (d *DocumentList) Documents() []domain.DocumentStats {
	return d.docs
}

// Selected returns the index of the selected row.
func (d *DocumentList) Selected() int {
	return d.selected
}

// SetSelected sets the selected index.
func (d *DocumentList) SetSelected(index int) {
	if index >= 0 && index < len(d.docs) {
		d.selected = index
	}
}

// SelectedDocument returns the selected document, or nil if none.
func (d *DocumentList) SelectedDocument() *domain.DocumentStats {
	if d.selected < 0 || d.selected >= len(d.docs) {
		return nil
	}
	return &d.docs[d.selected]
}

// MoveUp moves selection up.
func (d *DocumentList) MoveUp() {
	if d.selected > 0 {
		d.selected--
	}
}

// MoveDown moves selection down.
func (d *DocumentList) MoveDown() {
	if d.selected < len(d.docs)-1 {
		d.selected++
	}
}

// SetDimensions sets the component dimensions.
func (d *DocumentList) SetDimensions(width, height int) {
	d.width = width
	d.height = height
}

// Count returns the number of documents.
func (d *DocumentList) Count() int {
	return len(d.docs)
}

// IsEmpty returns whether the list is empty.
func (d *DocumentList) IsEmpty() bool {
	return len(d.docs) == 0
}
