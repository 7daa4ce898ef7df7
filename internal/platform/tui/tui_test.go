package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/engine"
	"github.com/vovakirdan/polygove/internal/input"
	"github.com/vovakirdan/polygove/internal/render"
	"github.com/vovakirdan/polygove/internal/storage"
	"github.com/vovakirdan/polygove/internal/world"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected string
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{tea.KeyMsg{Type: tea.KeyLeft}, "left"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, "a"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")}, "+"},
	}

	for _, tt := range tests {
		if got := KeyName(tt.msg); got != tt.expected {
			t.Errorf("KeyName(%v) = %q, expected %q", tt.msg, got, tt.expected)
		}
	}
}

func TestMouseEvents(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.MouseMsg
		expected []world.MouseAction
	}{
		{"left press", tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, []world.MouseAction{world.MouseDown}},
		{"right press", tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, nil},
		{"release", tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionRelease}, []world.MouseAction{world.MouseUp, world.MouseClick}},
		{"motion", tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionMotion}, []world.MouseAction{world.MouseMove}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MouseEvents(tt.msg)
			if len(got) != len(tt.expected) {
				t.Fatalf("MouseEvents() returned %d events, expected %d", len(got), len(tt.expected))
			}
			for i, ev := range got {
				me := ev.(world.MouseEvent)
				if me.Action != tt.expected[i] || me.X != 1 || me.Y != 2 {
					t.Errorf("MouseEvents()[%d] = %+v, expected %v at (1, 2)", i, me, tt.expected[i])
				}
			}
		})
	}
}

func newTestModel(t *testing.T) (Model, *engine.Game, *input.Queue, *render.Terminal) {
	t.Helper()
	queue := input.NewQueue()
	if err := queue.StartUp(); err != nil {
		t.Fatal(err)
	}
	term := render.NewTerminal(20, 6, render.DefaultLens())
	game := engine.New(engine.Options{Input: queue, Renderer: term})
	return NewModel(game, queue, term, "demo"), game, queue, term
}

func TestModelForwardsKeys(t *testing.T) {
	m, game, queue, _ := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion})
	m = next.(Model)

	if queue.Len() != 2 {
		t.Errorf("queue Len() = %d, expected 2", queue.Len())
	}
	if game.GameOver() {
		t.Error("q is a scene key and should not end the run by itself")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = next.(Model)
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
	if queue.Len() != 2 {
		t.Errorf("? was forwarded, queue Len() = %d", queue.Len())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !game.GameOver() {
		t.Error("esc should set game over")
	}
	if cmd != nil {
		t.Error("esc should wait for the loop instead of quitting at once")
	}
}

func TestModelFramesAndDone(t *testing.T) {
	m, _, _, term := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	m = next.(Model)
	term.BeginFrame(world.DefaultCamera())
	term.EndFrame()
	if w, h := term.Frame().Width(), term.Frame().Height(); w != 30 || h != 10-hudLines {
		t.Errorf("frame size = %dx%d, expected 30x%d", w, h, 10-hudLines)
	}

	screen := render.NewScreen(12, 3)
	screen.DrawText(2, 1, "polygove", core.ColorCyan)
	next, _ = m.Update(FrameMsg{Screen: screen})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "polygove") {
		t.Errorf("View() does not contain the frame:\n%s", view)
	}
	if !strings.Contains(view, "tick 0") {
		t.Errorf("View() does not contain the status line:\n%s", view)
	}

	next, cmd := m.Update(DoneMsg{})
	if cmd == nil {
		t.Error("DoneMsg should quit the program")
	}
	if next.(Model).View() != "" {
		t.Error("View() after DoneMsg should be empty")
	}
}

func TestRenderScreen(t *testing.T) {
	s := render.NewScreen(10, 3)
	s.DrawText(0, 0, "red", core.ColorRed)
	s.DrawText(4, 0, "blue", core.ColorBlue)
	s.DrawText(0, 2, "end", core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("RenderScreen() has %d lines, expected 3", len(lines))
	}
	for _, want := range []string{"red", "blue"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line 0 = %q, expected it to contain %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[2], "end") {
		t.Errorf("line 2 = %q, expected it to contain \"end\"", lines[2])
	}
}

func TestRunsModel(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []storage.RunRecord{
		{ID: 3, Scene: "demo", Ticks: 1200, Duration: 40 * time.Second, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, Scene: "orbit", Ticks: 50, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: 1, Scene: "demo", Ticks: 10, CreatedAt: now.Add(-4 * time.Hour)},
	}
	m := NewRunsModel(runs, 100, 30)
	m.now = func() time.Time { return now }

	rows := m.Rows()
	if len(rows) != 3 {
		t.Fatalf("Rows() = %d, expected 3", len(rows))
	}
	if rows[0][2] != "1,200" {
		t.Errorf("ticks column = %q, expected 1,200", rows[0][2])
	}
	if rows[0][6] != "2 hours ago" {
		t.Errorf("when column = %q, expected \"2 hours ago\"", rows[0][6])
	}

	tests := []struct {
		msg   tea.KeyMsg
		scene string
		rows  int
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, "demo", 2},
		{tea.KeyMsg{Type: tea.KeyTab}, "orbit", 1},
		{tea.KeyMsg{Type: tea.KeyTab}, allScenes, 3},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "orbit", 1},
	}
	for _, tt := range tests {
		next, _ := m.Update(tt.msg)
		m = next.(RunsModel)
		if m.Scene() != tt.scene || len(m.Rows()) != tt.rows {
			t.Errorf("after %v: scene %q with %d rows, expected %q with %d",
				tt.msg, m.Scene(), len(m.Rows()), tt.scene, tt.rows)
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit the browser")
	}
}

func TestMenuModel(t *testing.T) {
	m := NewMenuModel(80, 24)
	if len(m.items) == 0 {
		t.Fatal("menu has no scenes")
	}

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}

	press(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at the top, expected 0", m.cursor)
	}
	press(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down, expected 1", m.cursor)
	}
	if res := m.Result(); !res.Quit {
		t.Errorf("Result() before a choice = %+v, expected Quit", res)
	}

	press(tea.KeyMsg{Type: tea.KeyEnter})
	if res := m.Result(); res.SceneID != m.items[1].ID {
		t.Errorf("Result().SceneID = %q, expected %q", res.SceneID, m.items[1].ID)
	}

	m = NewMenuModel(80, 24)
	press(tea.KeyMsg{Type: tea.KeyTab})
	if res := m.Result(); !res.ShowRuns {
		t.Errorf("Result() after tab = %+v, expected ShowRuns", res)
	}
}
