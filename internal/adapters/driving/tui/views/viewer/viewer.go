// Package viewer provides the modal page viewer for the TUI.
package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// View renders the viewer state machine as a modal and routes keys to it.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	viewer driving.Viewer
	links  driving.LinkService

	width  int
	height int
}

// NewView creates a new page viewer view. links may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	viewer driving.Viewer,
	links driving.LinkService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		viewer: viewer,
		links:  links,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// IsOpen reports whether the viewer shows a page.
func (v *View) IsOpen() bool {
	return v.viewer != nil && v.viewer.View().IsOpen()
}

// Update handles messages for the page viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if v.viewer == nil {
		return v, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		//nolint:exhaustive // only wheel events navigate
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.viewer.Prev()
		case tea.MouseButtonWheelDown:
			v.viewer.Next()
		}
	}

	return v, nil
}

// handleKeyMsg maps terminal keys to viewer keys.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		v.viewer.HandleKey(domain.KeyEscape)
	case keymap.Matches(keyStr, v.keymap.Prev):
		v.viewer.HandleKey(domain.KeyLeft)
	case keymap.Matches(keyStr, v.keymap.Next):
		v.viewer.HandleKey(domain.KeyRight)
	case keymap.Matches(keyStr, v.keymap.OpenImage):
		return v, v.openImage()
	}

	return v, nil
}

// openImage opens the current page image in the system browser.
func (v *View) openImage() tea.Cmd {
	ref := v.viewer.View().ImageURL
	if ref == "" || v.links == nil {
		return nil
	}

	links := v.links
	return func() tea.Msg {
		return messages.LinkOpened{URL: links.Resolve(ref), Err: links.Open(ref)}
	}
}

// View renders the modal, or an empty string when the viewer is closed.
func (v *View) View() string {
	if !v.IsOpen() {
		return ""
	}
	state := v.viewer.View()

	lines := []string{
		v.styles.Title.Render(state.Title),
		v.styles.Subtitle.Render(state.Indicator()),
		"",
	}

	if state.ImageURL != "" {
		lines = append(lines, v.styles.Muted.Render("Image: "+v.resolve(state.ImageURL)))
	} else {
		lines = append(lines, v.styles.Muted.Render("Image: (none)"))
	}
	lines = append(lines, "")

	if len(state.Objects) == 0 {
		lines = append(lines, v.styles.Muted.Render("No objects detected on this page."))
	} else {
		lines = append(lines, v.styles.Normal.Render(fmt.Sprintf("Objects (%d)", len(state.Objects))))
		for _, obj := range state.Objects {
			lines = append(lines, v.renderObject(obj))
		}
	}

	lines = append(lines, "", v.renderNav(state))

	dialogWidth := v.width - 8
	if dialogWidth < 30 {
		dialogWidth = 30
	}
	return v.styles.Border.Width(dialogWidth).Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (v *View) renderObject(obj domain.DetectedObject) string {
	line := "  ■ " + string(obj.Type)
	if obj.Confidence > 0 {
		line += fmt.Sprintf(" %.0f%%", obj.Confidence*100)
	}
	if obj.Value != "" {
		line += " " + obj.Value
	}
	return v.styles.ObjectStyle(obj.Type).Render(line)
}

// renderNav renders the prev/next controls, dimming the unavailable ones.
func (v *View) renderNav(state domain.ViewerView) string {
	prev := v.styles.Help.Render("[←] prev")
	if !state.CanGoPrev {
		prev = v.styles.Disabled.Render("[←] prev")
	}
	next := v.styles.Help.Render("[→] next")
	if !state.CanGoNext {
		next = v.styles.Disabled.Render("[→] next")
	}
	rest := v.styles.Help.Render("[o] open image  [esc] close")
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, "  ", next, "  ", rest)
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
}
