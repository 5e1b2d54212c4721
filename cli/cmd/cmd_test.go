package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/minilang/lang"
	"github.com/ardnew/minilang/lang/eval"
)

// writeSource creates dir/name with the given content and returns its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// testContext returns a context whose settings capture output and read stdin
// from the given text.
func testContext(t *testing.T, stdin string, path ...string) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	ctx := WithSettings(t.Context(), Settings{
		Path:   path,
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	})

	return ctx, &stdout, &stderr
}

func TestLoadSources_StdinDefault(t *testing.T) {
	ctx, _, _ := testContext(t, "print 1")

	src, err := loadSources(ctx, nil)
	if err != nil {
		t.Fatalf("loadSources: %v", err)
	}

	if src != "print 1\n" {
		t.Errorf("src = %q, want %q", src, "print 1\n")
	}
}

func TestLoadSources_Concatenates(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.mini", "let a = 1")
	b := writeSource(t, dir, "b.mini", "print a\n")

	ctx, _, _ := testContext(t, "print 2")

	src, err := loadSources(ctx, []string{"-", a, b, "-"})
	if err != nil {
		t.Fatalf("loadSources: %v", err)
	}

	want := "let a = 1\nprint a\nprint 2\n"
	if src != want {
		t.Errorf("src = %q, want %q", src, want)
	}
}

func TestLoadSources_Dedup(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.mini", "print 1\n")

	link := filepath.Join(dir, "link.mini")
	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	t.Chdir(dir)

	ctx, _, _ := testContext(t, "", dir)

	src, err := loadSources(ctx, []string{a, link, "a.mini", "a"})
	if err != nil {
		t.Fatalf("loadSources: %v", err)
	}

	if src != "print 1\n" {
		t.Errorf("src = %q, want a single copy", src)
	}
}

func TestLoadSources_SearchPath(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lib.mini", "def inc(x) = x + 1\n")

	ctx, _, _ := testContext(t, "", dir)

	src, err := loadSources(ctx, []string{"lib"})
	if err != nil {
		t.Fatalf("loadSources: %v", err)
	}

	if !strings.HasPrefix(src, "def inc") {
		t.Errorf("src = %q, want library source", src)
	}
}

func TestLoadSources_Missing(t *testing.T) {
	ctx, _, _ := testContext(t, "", t.TempDir())

	_, err := loadSources(ctx, []string{"no-such-source"})
	if !errors.Is(err, lang.ErrSourceNotFound) {
		t.Errorf("loadSources error = %v, want %v", err, lang.ErrSourceNotFound)
	}
}

func TestErrorClass(t *testing.T) {
	tests := []struct {
		name string
		kind eval.Kind
		src  string
		want string
	}{
		{"none", eval.KindStrict, "print 1", ""},
		{"division", eval.KindStrict, "print 1 / 0", "division by zero"},
		{"overflow", eval.KindStrict, "print 2147483647 + 1", "integer overflow"},
		{"cycle", eval.KindLazy, "let a = b let b = a print a", "cyclic reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lang.Execute(t.Context(), tt.src, tt.kind, eval.Discard)
			if got := errorClass(err); got != tt.want {
				t.Errorf("errorClass(%v) = %q, want %q", err, got, tt.want)
			}
		})
	}

	if got := errorClass(errors.New("other")); got != "error" {
		t.Errorf("errorClass(other) = %q, want %q", got, "error")
	}
}
