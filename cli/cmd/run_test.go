package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/lang/syntax"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.mini", `
def fact(n) = if n <= 1 then 1 else n * fact(n - 1)
let unused = 1 / 0
print fact(5)
print 7 % 3
`)

	tests := []struct {
		name    string
		run     Run
		want    string
		wantErr error
	}{
		{"strict", Run{Evaluator: eval.KindStrict}, "", eval.ErrDivisionByZero},
		{"lazy_flag", Run{Evaluator: eval.KindStrict, Lazy: true}, "120\n1\n", nil},
		{"lazy_kind", Run{Evaluator: eval.KindLazy}, "120\n1\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, _ := testContext(t, "")

			tt.run.Sources = []string{src}

			err := tt.run.Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}

			if got := stdout.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_Stdin(t *testing.T) {
	ctx, stdout, _ := testContext(t, "let x = 20 print x + x + 2")

	if err := (&Run{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := stdout.String(); got != "42\n" {
		t.Errorf("output = %q, want %q", got, "42\n")
	}
}

func TestRun_ParseErrorSnippet(t *testing.T) {
	ctx, stdout, stderr := testContext(t, "let x = 1\nprint x + )\nprint 2\n")

	err := (&Run{}).Run(ctx)
	if !errors.Is(err, syntax.ErrParse) {
		t.Fatalf("Run() error = %v, want %v", err, syntax.ErrParse)
	}

	if stdout.Len() != 0 {
		t.Errorf("output = %q, want none", stdout.String())
	}

	if !strings.Contains(stderr.String(), "print x + )") {
		t.Errorf("stderr = %q, want the failing line", stderr.String())
	}
}
