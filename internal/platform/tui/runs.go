package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/polygove/internal/storage"
)

// allScenes is the filter tab showing every run.
const allScenes = "all"

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel browses the run journal, one scene at a time.
type RunsModel struct {
	runs   []storage.RunRecord
	scenes []string
	cursor int
	table  table.Model
	help   help.Model
	keys   RunsKeyMap
	now    func() time.Time
	width  int
	height int
}

// NewRunsModel creates a browser over runs, newest first.
func NewRunsModel(runs []storage.RunRecord, width, height int) RunsModel {
	scenes := []string{allScenes}
	seen := map[string]bool{}
	for _, r := range runs {
		if !seen[r.Scene] {
			seen[r.Scene] = true
			scenes = append(scenes, r.Scene)
		}
	}

	m := RunsModel{
		runs:   runs,
		scenes: scenes,
		help:   help.New(),
		keys:   DefaultRunsKeyMap(),
		now:    time.Now,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Scene", Width: 12},
		{Title: "Ticks", Width: 8},
		{Title: "Hits", Width: 6},
		{Title: "Blocked", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "When", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Scene returns the current filter.
func (m RunsModel) Scene() string { return m.scenes[m.cursor] }

// Rows returns the rows shown for the current filter.
func (m RunsModel) Rows() []table.Row {
	var rows []table.Row
	for _, r := range m.runs {
		if m.Scene() != allScenes && r.Scene != m.Scene() {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Scene,
			humanize.Comma(r.Ticks),
			humanize.Comma(r.Collisions),
			humanize.Comma(r.Rejected),
			r.Duration.Round(100 * time.Millisecond).String(),
			humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now"),
		})
	}
	return rows
}

func (m *RunsModel) updateRows() {
	m.table.SetRows(m.Rows())
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.scenes)
			m.updateRows()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor - 1 + len(m.scenes)) % len(m.scenes)
			m.updateRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m RunsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	b.WriteString(titleStyle.Render("RUNS"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.scenes))
	for i, s := range m.scenes {
		if i == m.cursor {
			tabs[i] = activeTab.Render(s)
		} else {
			tabs[i] = mutedStyle.Render(" " + s + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.table.Rows()) == 0 {
		b.WriteString(box.Render(mutedStyle.Italic(true).Render("No runs recorded yet.")))
	} else {
		b.WriteString(box.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunRuns shows the browser until the user quits.
func RunRuns(runs []storage.RunRecord, width, height int) error {
	_, err := tea.NewProgram(NewRunsModel(runs, width, height), tea.WithAltScreen()).Run()
	return err
}
