// Package upload provides the file selection view for the TUI.
package upload

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// View lets the user enter paths, shows the selection, and triggers uploads.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.PathInput

	session driving.Session
	files   driving.FileService

	status domain.SelectionStatus
	busy   bool
	err    error
	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.Session,
	files driving.FileService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:  s,
		keymap:  km,
		input:   input.NewPathInput(s),
		session: session,
		files:   files,
		width:   80,
		height:  24,
	}
	if session != nil {
		v.status = session.Selection().Status()
	}
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SelectionChanged:
		v.status = msg.Status
		v.err = nil
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Submit):
		return v, requestSubmit

	case keymap.Matches(keyStr, v.keymap.AddPaths):
		paths := v.input.Paths()
		if len(paths) == 0 {
			return v, requestSubmit
		}
		v.input.Reset()
		return v, v.loadFiles(paths)

	case keymap.Matches(keyStr, v.keymap.SwitchView):
		if v.session != nil && v.session.Snapshot() != nil {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewResults}
			}
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func requestSubmit() tea.Msg {
	return messages.SubmitRequested{}
}

// loadFiles resolves paths and replaces the selection.
func (v *View) loadFiles(paths []string) tea.Cmd {
	return func() tea.Msg {
		if v.files == nil || v.session == nil {
			return messages.ErrorOccurred{Err: ErrNoFileService}
		}

		files, err := v.files.Load(paths)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.SelectionChanged{Status: v.session.Selection().SetFiles(files)}
	}
}

// View renders the upload view.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	sections = append(sections, v.input.View(), "")
	sections = append(sections, v.renderStatus())

	if v.status.Kind == domain.SelectionReady {
		names := make([]string, 0, len(v.status.Names))
		for _, name := range v.status.Names {
			names = append(names, v.styles.Normal.Render("  • "+name))
		}
		sections = append(sections, strings.Join(names, "\n"))
	}

	if v.busy {
		sections = append(sections, "", v.styles.Warning.Render(domain.StatusMessageSubmitting))
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.styles.Help.Render(
		"[enter] add files / upload selection  [ctrl+r] upload  [tab] results"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatus renders the selection message.
func (v *View) renderStatus() string {
	msg := v.status.Message()
	switch v.status.Kind {
	case domain.SelectionRejected:
		return v.styles.Error.Render(msg)
	case domain.SelectionReady:
		return v.styles.Success.Render(msg)
	default:
		return v.styles.Muted.Render(msg)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// SetBusy marks whether a request is in flight.
func (v *View) SetBusy(busy bool) {
	v.busy = busy
}

// Busy reports whether a request is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Status returns the displayed selection status.
func (v *View) Status() domain.SelectionStatus {
	return v.status
}

// Value returns the text currently typed into the path input.
func (v *View) Value() string {
	return v.input.Value()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
