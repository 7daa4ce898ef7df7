package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/polygove/internal/input"
	"github.com/vovakirdan/polygove/internal/world"
)

// KeyMap holds the keys the frontend keeps for itself. Every other key is
// forwarded to the world.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Help},
		{
			key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "end scene")),
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "turn")),
			key.NewBinding(key.WithKeys("s", "d"), key.WithHelp("s/d", "log steps/collisions")),
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("arrows", "steer")),
		},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// KeyName translates a Bubble Tea key to the name behaviors match on.
func KeyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyTab:
		return "tab"
	case tea.KeyBackspace:
		return "backspace"
	}
	return msg.String()
}

// MouseEvents translates a Bubble Tea mouse message. A left button release
// is reported as an up followed by a click.
func MouseEvents(msg tea.MouseMsg) []world.Event {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return []world.Event{input.MouseDown(msg.X, msg.Y)}
		}
	case tea.MouseActionRelease:
		return []world.Event{input.MouseUp(msg.X, msg.Y), input.MouseClick(msg.X, msg.Y)}
	case tea.MouseActionMotion:
		return []world.Event{input.MouseMove(msg.X, msg.Y)}
	}
	return nil
}
