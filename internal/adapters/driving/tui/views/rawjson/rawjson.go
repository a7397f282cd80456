// Package rawjson provides a scrollable view of the raw server response.
package rawjson

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/styles"
)

// View is the raw JSON view.
type View struct {
	styles *styles.Styles

	content      string
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new raw JSON view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetContent replaces the displayed text and scrolls to the top.
func (v *View) SetContent(content string) {
	v.content = content
	v.scrollOffset = 0
	v.wrapContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the raw JSON view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		//nolint:exhaustive // only wheel events scroll
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			v.scrollBy(1)
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.scrollBy(-1)
	case "down", "j":
		v.scrollBy(1)
	case "pgup", "ctrl+u":
		v.scrollBy(-v.visibleLines())
	case "pgdown", "ctrl+d":
		v.scrollBy(v.visibleLines())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc", "v":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewResults}
		}
	}

	return v, nil
}

func (v *View) scrollBy(n int) {
	v.scrollOffset += n
	if limit := v.maxScrollOffset(); v.scrollOffset > limit {
		v.scrollOffset = limit
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// wrapContent wraps the content to fit the view width.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(strings.TrimRight(v.content, "\n"), "\n")
	v.lines = make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		for len(line) > contentWidth {
			v.lines = append(v.lines, line[:contentWidth])
			line = line[contentWidth:]
		}
		v.lines = append(v.lines, line)
	}
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for the app header, position line, help, and status bar
	available := v.height - 8
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the raw JSON view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Raw response"))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Content returns the raw text.
func (v *View) Content() string {
	return v.content
}

// ScrollOffset returns the index of the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
