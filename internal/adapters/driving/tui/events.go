package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

// eventQueueSize bounds the events waiting to be handed to the program.
const eventQueueSize = 64

// Subscribe forwards selection and viewer events to send as tea messages.
// Pass (*tea.Program).Send. Events published from inside Update are queued
// and relayed by a separate goroutine, since Send blocks until the program
// loop receives the message. The returned function stops forwarding.
func (a *App) Subscribe(send func(tea.Msg)) (unsubscribe func()) {
	queue := make(chan tea.Msg, eventQueueSize)
	done := make(chan struct{})

	forward := func(msg tea.Msg) {
		select {
		case queue <- msg:
		case <-done:
		}
	}

	go func() {
		for {
			select {
			case msg := <-queue:
				send(msg)
			case <-done:
				return
			}
		}
	}()

	offSelection := a.ports.Session.Selection().Subscribe(func(ev domain.SelectionChanged) {
		forward(messages.SelectionChanged{Status: ev.Status})
	})
	offViewer := a.ports.Session.Viewer().Subscribe(func(ev domain.ViewerStateChanged) {
		forward(messages.ViewerStateChanged{View: ev.View})
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			offSelection()
			offViewer()
			close(done)
		})
	}
}
