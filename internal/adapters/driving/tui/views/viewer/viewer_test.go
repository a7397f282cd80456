package viewer

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/services"
)

type mockURLOpener struct {
	opened []string
	err    error
}

func (m *mockURLOpener) Open(url string) error {
	m.opened = append(m.opened, url)
	return m.err
}

func sampleDocument() *domain.Document {
	return &domain.Document{
		OriginalFilename: "contract.pdf",
		Pages: []domain.Page{
			{
				PageNumber: 1,
				ImageURL:   "/api/jobs/j/p1.png",
				Objects: []domain.DetectedObject{
					{Type: domain.ObjectSignature, Confidence: 0.91},
					{Type: domain.ObjectQRCode, Value: "https://example.com/verify"},
				},
			},
			{PageNumber: 2, ImageURL: "/api/jobs/j/p2.png"},
			{PageNumber: 3},
		},
	}
}

func newTestView(t *testing.T, opener *mockURLOpener) (*View, *services.ViewerStateMachine) {
	t.Helper()

	sm := services.NewViewerStateMachine()
	require.True(t, sm.Open(sampleDocument(), 0))
	v := NewView(nil, nil, sm, services.NewLinkService("http://analysis.test", opener))
	v.SetDimensions(120, 40)
	return v, sm
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestView_ClosedRendersNothing(t *testing.T) {
	v := NewView(nil, nil, services.NewViewerStateMachine(), nil)

	assert.False(t, v.IsOpen())
	assert.Equal(t, "", v.View())
}

func TestView_NilViewer(t *testing.T) {
	v := NewView(nil, nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, v.IsOpen())
}

func TestView_RendersPage(t *testing.T) {
	v, _ := newTestView(t, &mockURLOpener{})

	view := v.View()
	assert.Contains(t, view, "contract.pdf")
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, "http://analysis.test/api/jobs/j/p1.png")
	assert.Contains(t, view, "Objects (2)")
	assert.Contains(t, view, "signature 91%")
	assert.Contains(t, view, "qrcode https://example.com/verify")
}

func TestView_RendersEmptyPage(t *testing.T) {
	v, sm := newTestView(t, &mockURLOpener{})
	sm.Next()
	sm.Next()

	view := v.View()
	assert.Contains(t, view, "Page 3 of 3")
	assert.Contains(t, view, "Image: (none)")
	assert.Contains(t, view, "No objects detected on this page.")
}

func TestView_ArrowNavigation(t *testing.T) {
	v, sm := newTestView(t, &mockURLOpener{})

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, sm.View().PageIndex)

	v.Update(key('l'))
	assert.Equal(t, 2, sm.View().PageIndex)

	// Clamped on the last page
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, sm.View().PageIndex)

	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	v.Update(key('h'))
	assert.Equal(t, 0, sm.View().PageIndex)

	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, sm.View().PageIndex)
}

func TestView_MouseWheel(t *testing.T) {
	v, sm := newTestView(t, &mockURLOpener{})

	v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 1, sm.View().PageIndex)

	v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, sm.View().PageIndex)
}

func TestView_EscapeCloses(t *testing.T) {
	v, sm := newTestView(t, &mockURLOpener{})

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, sm.View().IsOpen())
	assert.False(t, v.IsOpen())
	assert.Equal(t, "", v.View())
}

func TestView_OpenImage(t *testing.T) {
	opener := &mockURLOpener{}
	v, _ := newTestView(t, opener)

	_, cmd := v.Update(key('o'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.LinkOpened)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "http://analysis.test/api/jobs/j/p1.png", msg.URL)
	assert.Equal(t, []string{"http://analysis.test/api/jobs/j/p1.png"}, opener.opened)
}

func TestView_OpenImageError(t *testing.T) {
	v, _ := newTestView(t, &mockURLOpener{err: errors.New("no browser")})

	_, cmd := v.Update(key('o'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.LinkOpened)
	require.True(t, ok)
	assert.EqualError(t, msg.Err, "no browser")
}

func TestView_OpenImageWithoutImage(t *testing.T) {
	v, sm := newTestView(t, &mockURLOpener{})
	sm.Next()
	sm.Next()

	_, cmd := v.Update(key('o'))

	assert.Nil(t, cmd)
}

func TestView_OpenImageWithoutLinks(t *testing.T) {
	sm := services.NewViewerStateMachine()
	sm.Open(sampleDocument(), 0)
	v := NewView(nil, nil, sm, nil)

	_, cmd := v.Update(key('o'))

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "Image: /api/jobs/j/p1.png")
}
