package repl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/log"
)

func testModel(t *testing.T) model {
	t.Helper()

	s := NewSession(eval.KindStrict, log.Logger{})

	return newModel(context.Background(), s, NewHistory(""), log.Logger{})
}

// submit types line into m and presses Enter.
func submit(m model, line string) model {
	m.input.SetValue(line)
	m.input.SetCursor(len(line))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	return next.(model)
}

func TestModel_EvalInput(t *testing.T) {
	m := testModel(t)

	m = submit(m, "def inc(n) = n + 1")
	m = submit(m, "let one = inc(0)")

	if got, want := m.session.Names(), []string{"inc", "one"}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("session names = %v, want %v", got, want)
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if m.history.Len() != 2 {
		t.Errorf("history length = %d, want 2", m.history.Len())
	}

	m = submit(m, "let bad = missing")

	if m.session.Len() != 2 {
		t.Errorf("failed input changed the session: %q", m.session.Source())
	}
}

func TestModel_Commands(t *testing.T) {
	m := testModel(t)

	m = submit(m, "let x = 1")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)

	if m.mode != modeCtrl {
		t.Fatalf("Esc did not enter command mode")
	}

	m = submit(m, "lazy")

	if m.session.Kind() != eval.KindLazy {
		t.Errorf("kind after lazy = %v", m.session.Kind())
	}

	m = submit(m, "strict")

	if m.session.Kind() != eval.KindStrict {
		t.Errorf("kind after strict = %v", m.session.Kind())
	}

	m = submit(m, "reset")

	if m.session.Len() != 0 {
		t.Errorf("session length after reset = %d", m.session.Len())
	}

	m = submit(m, "quit")

	if !m.quitting {
		t.Error("quit did not stop the model")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q", m.View())
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := testModel(t)

	m = submit(m, "let a = 1")
	m = m.switchToMode(modeCtrl)
	m = submit(m, "list")
	m = m.switchToMode(modeEval)
	m = submit(m, "a + 1")

	// Up visits every entry and follows its mode.
	m = m.historyStep(-1, false)
	if m.input.Value() != "a + 1" || m.mode != modeEval {
		t.Fatalf("up 1 = %q (mode %d)", m.input.Value(), m.mode)
	}

	m = m.historyStep(-1, false)
	if m.input.Value() != "list" || m.mode != modeCtrl {
		t.Fatalf("up 2 = %q (mode %d)", m.input.Value(), m.mode)
	}

	// Within ctrl mode there is nothing older.
	m = m.historyStep(-1, true)
	if m.input.Value() != "list" {
		t.Fatalf("shift-up in ctrl mode = %q", m.input.Value())
	}

	m = m.switchToMode(modeEval)
	m = m.historyStep(-1, true)

	if m.input.Value() != "let a = 1" {
		t.Fatalf("shift-up in eval mode = %q", m.input.Value())
	}

	// Stepping past the newest entry clears the input.
	for range 3 {
		m = m.historyStep(+1, false)
	}

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("after down = %q at %d", m.input.Value(), m.historyIdx)
	}
}

func TestModel_TabCycling(t *testing.T) {
	m := testModel(t)

	m = submit(m, "let total = 1")
	m = submit(m, "let tally = 2")

	m.input.SetValue("ta")
	m.input.SetCursor(2)
	refreshMatches(&m, false)

	if len(m.matches) < 2 {
		t.Fatalf("matches = %v, want at least 2", m.matches)
	}

	first := m.cycle(+1)
	if !first.tabActive || first.input.Value() != first.matches[0].Str {
		t.Errorf("first Tab = %q, want %q", first.input.Value(), first.matches[0].Str)
	}

	back := first.cycle(-1)
	if back.input.Value() != back.matches[len(back.matches)-1].Str {
		t.Errorf("Shift-Tab = %q, want last candidate", back.input.Value())
	}

	next, _ := back.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := next.(model).input.Value(); got != "ta" {
		t.Errorf("Esc while cycling = %q, want original text", got)
	}
}
