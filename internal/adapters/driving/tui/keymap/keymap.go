// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back closes the viewer or returns to the previous view.
	Back key.Binding

	// AddPaths replaces the selection with the typed paths, or submits when empty.
	AddPaths key.Binding

	// Submit uploads the current selection.
	Submit key.Binding

	// SwitchView toggles between upload and results.
	SwitchView key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Open opens the selected document in the viewer.
	Open key.Binding

	// Export writes the snapshot to the export file.
	Export key.Binding

	// Raw toggles the raw JSON view.
	Raw key.Binding

	// Prev shows the previous page.
	Prev key.Binding

	// Next shows the next page.
	Next key.Binding

	// OpenImage opens the current page image with the system handler.
	OpenImage key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		AddPaths: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select / upload"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "upload"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view pages"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		Raw: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "raw json"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
	}
}

// UploadHelp returns keybindings for the upload view.
func (k *KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.AddPaths, k.Submit, k.SwitchView, k.Quit}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Open, k.Export, k.Raw, k.SwitchView}
}

// ViewerHelp returns keybindings for the page viewer.
func (k *KeyMap) ViewerHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.OpenImage, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddPaths, k.Submit, k.SwitchView},
		{k.Up, k.Down, k.Open, k.Export, k.Raw},
		{k.Prev, k.Next, k.OpenImage, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
