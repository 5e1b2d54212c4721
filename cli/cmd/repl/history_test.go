package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_AddPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}

	for _, e := range []HistoryEntry{
		{"let x = 1", modeEval},
		{"list", modeCtrl},
		{"x + 1", modeEval},
		// A repeated last entry is dropped.
		{"x + 1", modeEval},
		// An earlier entry moves to the end.
		{"let x = 1", modeEval},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"x + 1", modeEval},
		{"let x = 1", modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "C:list\nE:x + 1\nE:let x = 1\n" {
		t.Errorf("history file = %q", got)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_Entry(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("  ", modeEval); err != nil || h.Len() != 0 {
		t.Fatalf("Add(blank) = %v, Len() = %d", err, h.Len())
	}

	if err := h.Add("help", modeCtrl); err != nil {
		t.Fatal(err)
	}

	e, err := h.Entry(0)
	if err != nil || e != (HistoryEntry{"help", modeCtrl}) {
		t.Errorf("Entry(0) = %v, %v", e, err)
	}

	if _, err := h.Entry(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(1) error = %v, want ErrOutOfBounds", err)
	}
}

func TestParseEntry(t *testing.T) {
	tests := map[string]HistoryEntry{
		"E:x + 1": {"x + 1", modeEval},
		"C:quit":  {"quit", modeCtrl},
		"plain":   {"plain", modeEval},
	}

	for line, want := range tests {
		if got := parseEntry(line); got != want {
			t.Errorf("parseEntry(%q) = %v, want %v", line, got, want)
		}
	}
}
