package lang

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestReadSource(t *testing.T) {
	src, err := ReadSource(strings.NewReader(example))
	if err != nil {
		t.Fatal(err)
	}

	if src != example {
		t.Errorf("ReadSource = %q", src)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.mini"))
	if !errors.Is(err, ErrReadSource) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v", err)
	}
}

func TestLookup(t *testing.T) {
	flagDir := t.TempDir()
	envDir := t.TempDir()

	write := func(dir, name string) string {
		t.Helper()

		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("print 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		return p
	}

	both := write(flagDir, "both.mini")
	write(envDir, "both.mini")

	onlyEnv := write(envDir, "env.mini")
	direct := write(t.TempDir(), "direct.txt")

	t.Setenv(PathEnv, envDir)

	tests := []struct {
		name string
		want string
		err  error
	}{
		{name: direct, want: direct},
		{name: "both", want: both},
		{name: "both.mini", want: both},
		{name: "env", want: onlyEnv},
		{name: "absent", err: ErrSourceNotFound},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.name), func(t *testing.T) {
			got, err := Lookup(tt.name, flagDir)

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("error = %v, want %v", err, tt.err)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestSearchPath(t *testing.T) {
	t.Setenv(PathEnv, strings.Join([]string{"/env/a", "/env/b"}, string(os.PathListSeparator)))

	got := SearchPath("/flag")
	if len(got) == 0 || got[0] != "/flag" {
		t.Fatalf("SearchPath = %v, want /flag first", got)
	}

	if !slices.Contains(got, "/env/a") || !slices.Contains(got, "/env/b") {
		t.Errorf("SearchPath = %v, missing $%s entries", got, PathEnv)
	}
}
