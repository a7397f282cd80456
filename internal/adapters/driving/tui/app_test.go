package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

func newTestApp(t *testing.T, client *mockAnalysisClient) (*App, *Ports, *mockFileSink) {
	t.Helper()

	ports, sink := newTestPorts(client)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app, ports, sink
}

// selectFiles puts files into the selection the way the upload view does.
func selectFiles(t *testing.T, app *App, ports *Ports, names ...string) {
	t.Helper()

	files, err := ports.Files.Load(names)
	require.NoError(t, err)
	app.Update(messages.SelectionChanged{Status: ports.Session.Selection().SetFiles(files)})
}

// runSubmit requests a submit and feeds the result back into the app.
func runSubmit(t *testing.T, app *App) {
	t.Helper()

	_, cmd := app.Update(messages.SubmitRequested{})
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewApp_Success(t *testing.T) {
	ports, _ := newTestPorts(&mockAnalysisClient{})

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Files: &mockFileService{}})

	assert.ErrorIs(t, err, ErrMissingSession)
	assert.Nil(t, app)
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports, _ := newTestPorts(&mockAnalysisClient{})
	app, _ := NewApp(ports)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "QubrixAI")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_SelectionChangedUpdatesStatus(t *testing.T) {
	app, ports, _ := newTestApp(t, &mockAnalysisClient{})

	selectFiles(t, app, ports, "a.pdf", "b.txt")

	assert.Equal(t, "Selected 1 file(s): a.pdf", app.StatusMessage())
	assert.Contains(t, app.View(), "Selected 1 file(s): a.pdf")
}

func TestApp_SubmitSuccess(t *testing.T) {
	client := &mockAnalysisClient{}
	app, ports, _ := newTestApp(t, client)
	selectFiles(t, app, ports, "contract.pdf")

	_, cmd := app.Update(messages.SubmitRequested{})
	require.NotNil(t, cmd)
	assert.True(t, app.Submitting())
	assert.Equal(t, domain.StatusMessageSubmitting, app.StatusMessage())

	app.Update(cmd())

	assert.Equal(t, 1, client.calls)
	assert.False(t, app.Submitting())
	assert.Equal(t, messages.ViewResults, app.CurrentView())
	assert.Equal(t, domain.StatusMessageSucceeded, app.StatusMessage())

	view := app.View()
	assert.Contains(t, view, "contract.pdf")
	assert.Contains(t, view, "signature: 1")
	assert.Contains(t, view, "http://analysis.test/api/jobs/j/stats.png")
}

func TestApp_SubmitIgnoredWhileInFlight(t *testing.T) {
	app, ports, _ := newTestApp(t, &mockAnalysisClient{})
	selectFiles(t, app, ports, "contract.pdf")

	_, first := app.Update(messages.SubmitRequested{})
	_, second := app.Update(messages.SubmitRequested{})

	assert.NotNil(t, first)
	assert.Nil(t, second)
}

func TestApp_SubmitEmptySelection(t *testing.T) {
	client := &mockAnalysisClient{}
	app, _, _ := newTestApp(t, client)

	runSubmit(t, app)

	assert.Equal(t, 0, client.calls)
	assert.Empty(t, app.Alert())
	assert.Equal(t, "No files selected yet.", app.StatusMessage())
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
}

func TestApp_SubmitFailureRaisesAlert(t *testing.T) {
	client := &mockAnalysisClient{err: domain.NewServerError(500, "boom")}
	app, ports, _ := newTestApp(t, client)
	selectFiles(t, app, ports, "contract.pdf")

	runSubmit(t, app)

	assert.Contains(t, app.Alert(), "Error while processing documents: ")
	assert.Contains(t, app.Alert(), "boom")
	assert.Equal(t, domain.StatusMessageFailed, app.StatusMessage())
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
	assert.Contains(t, app.View(), "Press any key to continue")

	// Any key dismisses the alert without reaching the view
	app.Update(keyRune('x'))
	assert.Empty(t, app.Alert())
	assert.Equal(t, "", app.uploadView.Value())
}

func TestApp_InFlightCompletionIgnored(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})
	app.submitting = true

	app.Update(messages.AnalysisCompleted{Err: domain.ErrRequestInFlight})

	assert.True(t, app.Submitting())
	assert.Empty(t, app.Alert())
}

func TestApp_OpenViewerFromResults(t *testing.T) {
	app, ports, _ := newTestApp(t, &mockAnalysisClient{})
	selectFiles(t, app, ports, "contract.pdf")
	runSubmit(t, app)

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	viewer := ports.Session.Viewer()
	require.True(t, viewer.View().IsOpen())
	assert.Contains(t, app.View(), "Page 1 of 2")

	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, viewer.View().PageIndex)

	app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, viewer.View().PageIndex)

	// Escape closes the modal, not the results view
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, viewer.View().IsOpen())
	assert.Equal(t, messages.ViewResults, app.CurrentView())
}

func TestApp_RawView(t *testing.T) {
	app, ports, _ := newTestApp(t, &mockAnalysisClient{})
	selectFiles(t, app, ports, "contract.pdf")
	runSubmit(t, app)

	app.Update(messages.ViewChanged{View: messages.ViewRaw})

	assert.Equal(t, messages.ViewRaw, app.CurrentView())
	assert.Contains(t, app.View(), `"original_filename": "contract.pdf"`)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, messages.ViewResults, app.CurrentView())
}

func TestApp_RawViewWithoutSnapshot(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	app.Update(messages.ViewChanged{View: messages.ViewRaw})

	assert.Equal(t, messages.ViewUpload, app.CurrentView())
}

func TestApp_ResultsWithoutSnapshotFallsBack(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	app.Update(messages.ViewChanged{View: messages.ViewResults})

	assert.Equal(t, messages.ViewUpload, app.CurrentView())
}

func TestApp_Export(t *testing.T) {
	app, ports, sink := newTestApp(t, &mockAnalysisClient{})
	selectFiles(t, app, ports, "contract.pdf")
	runSubmit(t, app)

	_, cmd := app.Update(keyRune('x'))
	require.NotNil(t, cmd)
	exportMsg := cmd()
	require.IsType(t, messages.ExportRequested{}, exportMsg)

	_, cmd = app.Update(exportMsg)
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.NotEmpty(t, sink.data)
	assert.Contains(t, app.StatusMessage(), "Exported")
	assert.Contains(t, app.StatusMessage(), "/exports/"+domain.ExportFilename)
}

func TestApp_ExportNothing(t *testing.T) {
	app, _, sink := newTestApp(t, &mockAnalysisClient{})

	_, cmd := app.Update(messages.ExportRequested{})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Nil(t, sink.data)
	assert.Equal(t, "Nothing to export yet.", app.StatusMessage())
}

func TestApp_ExportError(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	app.Update(messages.ExportCompleted{Err: errors.New("disk full")})

	assert.Contains(t, app.Alert(), "disk full")
}

func TestApp_LinkOpened(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	app.Update(messages.LinkOpened{URL: "http://analysis.test/p1.png"})
	assert.Equal(t, "Opened http://analysis.test/p1.png", app.StatusMessage())

	app.Update(messages.LinkOpened{Err: errors.New("no browser")})
	assert.Equal(t, "Open image: no browser", app.StatusMessage())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	app.Update(messages.ErrorOccurred{Err: errors.New("stat missing.pdf: no such file")})

	assert.Equal(t, "stat missing.pdf: no such file", app.StatusMessage())
	assert.Contains(t, app.View(), "no such file")
}

func TestApp_HelpView(t *testing.T) {
	app, ports, _ := newTestApp(t, &mockAnalysisClient{})
	selectFiles(t, app, ports, "contract.pdf")
	runSubmit(t, app)

	_, cmd := app.Update(keyRune('?'))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "Page viewer:")
	assert.Contains(t, view, "open image")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewResults, app.CurrentView())
}

func TestApp_UploadViewTyping(t *testing.T) {
	app, _, _ := newTestApp(t, &mockAnalysisClient{})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.pdf")})

	assert.Equal(t, "a.pdf", app.uploadView.Value())
}
