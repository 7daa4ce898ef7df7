// Package tui provides the Bubble Tea frontend: it shows the frames the
// terminal backend produces and feeds keyboard and mouse input to the
// engine's input queue.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/polygove/internal/engine"
	"github.com/vovakirdan/polygove/internal/input"
	"github.com/vovakirdan/polygove/internal/render"
)

// hudLines is the number of rows below the viewport.
const hudLines = 2

// FrameMsg carries a finished frame from the loop goroutine.
type FrameMsg struct {
	Screen *render.Screen
}

// DoneMsg reports that the game loop has returned.
type DoneMsg struct {
	Err error
}

// Model is the Bubble Tea model wrapping a running game.
type Model struct {
	game  *engine.Game
	queue *input.Queue
	term  *render.Terminal
	title string

	keys  KeyMap
	help  help.Model
	frame *render.Screen

	width    int
	height   int
	quitting bool
	err      error
}

// NewModel creates a frontend for game. Input goes to queue and resizes go
// to term.
func NewModel(game *engine.Game, queue *input.Queue, term *render.Terminal, title string) Model {
	return Model{
		game:  game,
		queue: queue,
		term:  term,
		title: title,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

// Init implements tea.Model. Frames arrive as messages, so there is no tick.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		for _, ev := range MouseEvents(msg) {
			m.queue.Push(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.term != nil {
			m.term.Resize(msg.Width, max(msg.Height-hudLines, 1))
		}
		return m, nil

	case FrameMsg:
		m.frame = msg.Screen
		return m, nil

	case DoneMsg:
		m.quitting = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// The loop notices on its next tick and answers with DoneMsg.
		m.game.SetGameOver(true)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	m.queue.Push(input.KeyPress(KeyName(msg)))
	return m, nil
}

// Err returns the error the loop ended with.
func (m Model) Err() error { return m.err }

// View renders the latest frame and the status lines.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.frame != nil {
		b.WriteString(RenderScreen(m.frame))
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) statusLine() string {
	s := m.game.Stats()
	left := hudStyle.Render(m.title)
	right := mutedStyle.Render(fmt.Sprintf("tick %s  entities %d  collisions %s  blocked %s",
		humanize.Comma(int64(s.Ticks)), s.Entities,
		humanize.Comma(int64(s.Collisions)), humanize.Comma(int64(s.Rejected))))
	return left + "  " + right
}

// Run drives game on its own goroutine while a Bubble Tea program shows
// its frames. It returns when the game ends or the program exits.
func Run(ctx context.Context, game *engine.Game, queue *input.Queue, term *render.Terminal, title string) error {
	p := tea.NewProgram(
		NewModel(game, queue, term, title),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	term.SetPublisher(func(s *render.Screen) {
		p.Send(FrameMsg{Screen: s})
	})
	defer term.SetPublisher(nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := game.Run(gctx)
		p.Send(DoneMsg{Err: err})
		return err
	})
	g.Go(func() error {
		final, err := p.Run()
		// The program may exit on its own, e.g. when killed.
		game.SetGameOver(true)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if fm, ok := final.(Model); ok {
			return fm.Err()
		}
		return nil
	})
	return g.Wait()
}
