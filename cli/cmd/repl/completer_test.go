package repl

import (
	"context"
	"slices"
	"testing"

	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/log"
)

func TestWordBounds_Operators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a-fo", 4, "fo", 2, 4},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"after_comparison", "a >= fo", 7, "fo", 5, 7},
		{"after_keyword", "if fo", 5, "fo", 3, 5},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "max_of", 6, "max_of", 0, 6},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates_NamesThenKeywords(t *testing.T) {
	s := NewSession(eval.KindStrict, log.Logger{})

	if _, err := s.Load(context.Background(), "let total = 1\ndef twice(n) = n * 2\n"); err != nil {
		t.Fatal(err)
	}

	got := candidates(s)
	want := []string{"total", "twice", "let", "def", "print", "if", "then", "else"}

	if !slices.Equal(got, want) {
		t.Errorf("candidates() = %v, want %v", got, want)
	}
}

func TestComputeMatches(t *testing.T) {
	s := NewSession(eval.KindStrict, log.Logger{})

	if _, err := s.Load(context.Background(), "let total = 1\ndef twice(n) = n * 2\n"); err != nil {
		t.Fatal(err)
	}

	m := newModel(context.Background(), s, NewHistory(""), log.Logger{})

	m.input.SetValue("1 + tw")
	m.input.SetCursor(6)

	matches, _, start, end := m.computeMatches()
	if start != 4 || end != 6 {
		t.Errorf("word bounds = (%d, %d), want (4, 6)", start, end)
	}

	if len(matches) == 0 || matches[0].Str != "twice" {
		t.Fatalf("best match = %v, want twice", matches)
	}

	m = m.switchToMode(modeCtrl)
	m.input.SetValue("laz")
	m.input.SetCursor(3)

	matches, _, _, _ = m.computeMatches()
	if len(matches) == 0 || matches[0].Str != "lazy" {
		t.Errorf("command match = %v, want lazy", matches)
	}

	m.input.SetValue("")
	m.input.SetCursor(0)

	if matches, _, _, _ = m.computeMatches(); matches != nil {
		t.Errorf("empty word matched %v", matches)
	}
}
