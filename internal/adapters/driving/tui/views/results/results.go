// Package results provides the analysis results view for the TUI.
package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// View shows the summary card and the per-document list of the last snapshot.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	list   *list.DocumentList

	session driving.Session
	links   driving.LinkService

	result    domain.AggregatedResult
	hasResult bool
	notice    string
	width     int
	height    int
	ready     bool
}

// NewView creates a new results view. links may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.Session,
	links driving.LinkService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		list:    list.NewDocumentList(s),
		session: session,
		links:   links,
		width:   80,
		height:  24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Refresh reloads the aggregated statistics from the session snapshot.
func (v *View) Refresh() bool {
	v.notice = ""
	if v.session == nil {
		v.hasResult = false
		return false
	}

	v.result, v.hasResult = v.session.Results()
	v.list.SetDocuments(v.result.Documents)
	return v.hasResult
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
		v.notice = ""
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
		v.notice = ""
	case keymap.Matches(keyStr, v.keymap.Open):
		v.openSelected()
	case keymap.Matches(keyStr, v.keymap.Export):
		return v, func() tea.Msg { return messages.ExportRequested{} }
	case keymap.Matches(keyStr, v.keymap.Raw):
		return v, changeView(messages.ViewRaw)
	case keymap.Matches(keyStr, v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	case keymap.Matches(keyStr, v.keymap.SwitchView), keymap.Matches(keyStr, v.keymap.Back):
		return v, changeView(messages.ViewUpload)
	}

	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// openSelected opens the selected document in the page viewer.
func (v *View) openSelected() {
	doc := v.list.SelectedDocument()
	if doc == nil || v.session == nil {
		return
	}
	if !doc.Viewable() || !v.session.OpenDocument(doc.Index, 0) {
		v.notice = fmt.Sprintf("%s has no pages to view", doc.Name)
		return
	}
	v.notice = ""
}

// View renders the results view.
func (v *View) View() string {
	if !v.hasResult {
		return v.styles.Muted.Render("No results yet. Upload PDF or ZIP files to analyse them.")
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.renderSummary(), "")

	if v.result.Global.TotalDocuments == 0 && len(v.result.Documents) == 0 {
		sections = append(sections, v.styles.Muted.Render("The server returned no documents."))
	} else {
		sections = append(sections, v.list.View())
	}

	if v.notice != "" {
		sections = append(sections, "", v.styles.Warning.Render(v.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSummary renders the global statistics card.
func (v *View) renderSummary() string {
	g := v.result.Global

	lines := []string{
		v.styles.Subtitle.Render("Summary"),
		fmt.Sprintf("Documents: %d   Pages: %d   Objects: %d", g.TotalDocuments, g.TotalPages, g.TotalObjects),
	}
	if text := g.ByTypeText(); text != "" {
		lines = append(lines, "By type:   "+text)
	}
	if text := g.BreakdownText(); text != "" {
		lines = append(lines, "Breakdown: "+text)
	}
	if g.StatsImageURL != "" {
		lines = append(lines, v.styles.Muted.Render("Stats:     "+v.resolve(g.StatsImageURL)))
	}

	cardWidth := v.width - 4
	if cardWidth < 20 {
		cardWidth = 20
	}
	return v.styles.Card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func (v *View) resolve(ref string) string {
	if v.links == nil {
		return ref
	}
	return v.links.Resolve(ref)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	// Leave room for the summary card and header
	listHeight := height - 12
	if listHeight < 4 {
		listHeight = 4
	}
	v.list.SetDimensions(width, listHeight)
}

// HasResult reports whether a snapshot is displayed.
func (v *View) HasResult() bool {
	return v.hasResult
}

// Selected returns the index of the selected document row.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Notice returns the last inline notice.
func (v *View) Notice() string {
	return v.notice
}
