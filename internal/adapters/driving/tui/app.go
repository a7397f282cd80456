package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/views/rawjson"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/views/results"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/views/viewer"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the key bindings shared by all views.
	keymap *keymap.KeyMap

	// uploadView collects files and triggers the upload.
	uploadView *upload.View

	// resultsView shows the summary and the document list.
	resultsView *results.View

	// rawView shows the raw server response.
	rawView *rawjson.View

	// viewerView is the page viewer modal.
	viewerView *viewer.View

	// statusBar shows the last status message.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// alert is a blocking error notification, dismissed by any key.
	alert string

	// submitting is set while an analysis request is in flight.
	submitting bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSession)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		uploadView:  upload.NewView(s, km, ports.Session, ports.Files),
		resultsView: results.NewView(s, km, ports.Session, ports.Links),
		rawView:     rawjson.NewView(s),
		viewerView:  viewer.NewView(s, km, ports.Session.Viewer(), ports.Links),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewUpload,
	}
	if app.resultsView.Refresh() {
		app.statusBar.SetState(status.StateSucceeded)
	}
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("qubrix"),
		a.uploadView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		if a.viewerView.IsOpen() {
			a.viewerView, cmd = a.viewerView.Update(msg)
			a.syncHints()
			return a, cmd
		}
		if a.currentView == messages.ViewRaw {
			a.rawView, cmd = a.rawView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.SelectionChanged:
		a.uploadView, cmd = a.uploadView.Update(msg)
		if !a.submitting {
			a.statusBar.SetState(status.StateReady)
			a.statusBar.SetMessage(msg.Status.Message())
		}
		return a, cmd

	case messages.ViewerStateChanged:
		a.syncHints()
		return a, nil

	case messages.SubmitRequested:
		return a, a.submit()

	case messages.AnalysisCompleted:
		a.handleAnalysisCompleted(msg)
		return a, nil

	case messages.ExportRequested:
		return a, a.export()

	case messages.ExportCompleted:
		a.handleExportCompleted(msg)
		return a, nil

	case messages.LinkOpened:
		if msg.Err != nil {
			a.statusBar.SetMessage("Open image: " + msg.Err.Error())
		} else {
			a.statusBar.SetMessage("Opened " + msg.URL)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.uploadView, cmd = a.uploadView.Update(msg)
		a.statusBar.SetState(status.StateFailed)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the upload view
	if a.currentView == messages.ViewUpload {
		a.uploadView, cmd = a.uploadView.Update(msg)
	}
	return a, cmd
}

// handleKeyMsg routes a key to the alert, the viewer modal or the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit with ctrl+c
	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}

	if a.alert != "" {
		a.alert = ""
		return a, nil
	}

	var cmd tea.Cmd

	if a.viewerView.IsOpen() {
		a.viewerView, cmd = a.viewerView.Update(msg)
		a.syncHints()
		return a, cmd
	}

	switch a.currentView {
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
		a.syncHints()
	case messages.ViewRaw:
		a.rawView, cmd = a.rawView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Help) {
			return a, a.switchView(a.previousView())
		}
	}
	return a, cmd
}

// previousView is where help returns to.
func (a *App) previousView() messages.ViewType {
	if a.ports.Session.Snapshot() != nil {
		return messages.ViewResults
	}
	return messages.ViewUpload
}

// switchView activates view and prepares its content.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	var cmd tea.Cmd

	switch view {
	case messages.ViewUpload:
		cmd = a.uploadView.Init()
	case messages.ViewResults:
		if !a.resultsView.Refresh() {
			view = messages.ViewUpload
		}
	case messages.ViewRaw:
		snap := a.ports.Session.Snapshot()
		if snap == nil {
			return nil
		}
		a.rawView.SetContent(a.renderRaw(snap))
	case messages.ViewHelp:
		// Static content
	}

	a.currentView = view
	a.syncHints()
	return cmd
}

// renderRaw returns the snapshot as it would be exported.
func (a *App) renderRaw(snap *domain.AnalysisResponse) string {
	if a.ports.Exporter != nil {
		if data, err := a.ports.Exporter.Render(snap); err == nil {
			return string(data)
		}
	}
	return string(snap.Raw)
}

// submit starts an analysis request unless one is already running.
func (a *App) submit() tea.Cmd {
	if a.submitting || a.ports.Session.Pipeline().Status().Busy() {
		return nil
	}

	a.submitting = true
	a.uploadView.SetBusy(true)
	a.statusBar.SetState(status.StateSubmitting)
	a.statusBar.SetMessage(domain.StatusMessageSubmitting)

	session := a.ports.Session
	ctx := a.ctx
	return func() tea.Msg {
		resp, err := session.Submit(ctx)
		return messages.AnalysisCompleted{Response: resp, Err: err}
	}
}

// handleAnalysisCompleted applies the outcome of a request.
func (a *App) handleAnalysisCompleted(msg messages.AnalysisCompleted) {
	if errors.Is(msg.Err, domain.ErrRequestInFlight) {
		return
	}

	a.submitting = false
	a.uploadView.SetBusy(false)

	switch {
	case errors.Is(msg.Err, domain.ErrEmptySelection):
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetMessage(domain.SelectionStatus{}.Message())
	case msg.Err != nil:
		a.alert = domain.RequestStatus{State: domain.RequestFailed, Err: msg.Err}.Alert()
		a.statusBar.SetState(status.StateFor(a.ports.Session.Pipeline().Status().State))
		a.statusBar.SetMessage(domain.StatusMessageFailed)
	default:
		a.statusBar.SetState(status.StateFor(a.ports.Session.Pipeline().Status().State))
		a.statusBar.SetMessage(domain.StatusMessageSucceeded)
		a.switchView(messages.ViewResults)
	}
}

// export writes the last snapshot in the background.
func (a *App) export() tea.Cmd {
	session := a.ports.Session
	ctx := a.ctx
	return func() tea.Msg {
		outcome, err := session.ExportLastResult(ctx)
		return messages.ExportCompleted{Outcome: outcome, Err: err}
	}
}

// handleExportCompleted reports the export outcome.
func (a *App) handleExportCompleted(msg messages.ExportCompleted) {
	switch {
	case msg.Err != nil:
		a.alert = "Error while exporting results: " + msg.Err.Error()
	case msg.Outcome.Kind == domain.ExportWritten:
		a.statusBar.SetMessage(fmt.Sprintf("Exported %d bytes to %s", msg.Outcome.Size, msg.Outcome.Path))
	default:
		a.statusBar.SetMessage("Nothing to export yet.")
	}
}

// syncHints shows the key hints of whatever currently has focus.
func (a *App) syncHints() {
	var hints []key.Binding
	switch {
	case a.viewerView.IsOpen():
		hints = a.keymap.ViewerHelp()
	case a.currentView == messages.ViewResults:
		hints = a.keymap.ResultsHelp()
	case a.currentView == messages.ViewRaw, a.currentView == messages.ViewHelp:
		hints = []key.Binding{a.keymap.Back, a.keymap.Quit}
	default:
		hints = a.keymap.UploadHelp()
	}
	a.statusBar.SetHints(hints)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case a.alert != "":
		body = a.viewAlert()
	case a.viewerView.IsOpen():
		body = a.viewerView.View()
	default:
		switch a.currentView {
		case messages.ViewResults:
			body = a.resultsView.View()
		case messages.ViewRaw:
			body = a.rawView.View()
		case messages.ViewHelp:
			body = a.viewHelp()
		default:
			body = a.uploadView.View()
		}
	}

	header := a.styles.Title.Render("QubrixAI") + "  " + a.styles.Muted.Render(a.currentView.String())
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", a.statusBar.View())
}

// viewAlert renders the blocking error dialog.
func (a *App) viewAlert() string {
	width := a.width - 8
	if width < 30 {
		width = 30
	}
	return a.styles.Dialog.Width(width).Render(
		a.alert + "\n\n" + a.styles.Muted.Render("Press any key to continue"),
	)
}

// viewHelp renders the help view from the key bindings.
func (a *App) viewHelp() string {
	titles := []string{"Upload", "Results", "Page viewer", "General"}
	groups := a.keymap.FullHelp()

	var b strings.Builder
	b.WriteString("Help\n")
	for i, group := range groups {
		b.WriteString("\n" + titles[i] + ":\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s  %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n[esc] back")
	return b.String()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Alert returns the pending error notification, empty when none.
func (a *App) Alert() string {
	return a.alert
}

// Submitting reports whether an analysis request is in flight.
func (a *App) Submitting() bool {
	return a.submitting
}

// StatusMessage returns the status bar message.
func (a *App) StatusMessage() string {
	return a.statusBar.Message()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Reserve header and status bar lines
	bodyHeight := height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	a.uploadView.SetDimensions(width, bodyHeight)
	a.resultsView.SetDimensions(width, bodyHeight)
	a.rawView.SetDimensions(width, bodyHeight)
	a.viewerView.SetDimensions(width, bodyHeight)
	a.statusBar.SetWidth(width)
}
