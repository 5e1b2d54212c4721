package cmd

import (
	"errors"
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		expect  []string
		want    []string
		wantErr error
	}{
		{
			name: "agree",
			src:  "def sq(x) = x * x\nprint sq(7)\nprint 1",
			want: []string{"strict: 49 1", "lazy: 49 1"},
		},
		{
			name: "agree_on_failure",
			src:  "print 1\nprint 1 / 0",
			want: []string{"strict: 1 (division by zero)", "lazy: 1 (division by zero)"},
		},
		{
			name:    "unused_failure",
			src:     "let z = 1 / 0\nprint 1",
			want:    []string{"strict: (division by zero)", "lazy: 1"},
			wantErr: ErrMismatch,
		},
		{
			name:   "expectations",
			src:    "print 7\nprint 1",
			expect: []string{"len(out) == 2 && out[0] == 7", `error == ""`, "lazy[1] == strict[1]"},
			want: []string{
				"strict: 7 1", "lazy: 7 1",
				"ok: len(out) == 2 && out[0] == 7",
				`ok: error == ""`,
				"ok: lazy[1] == strict[1]",
			},
		},
		{
			name:    "expectation_fails",
			src:     "print 2147483647 * 2",
			expect:  []string{`error == "integer overflow"`, "len(out) > 0"},
			want:    []string{"strict: (integer overflow)", "lazy: (integer overflow)", `ok: error == "integer overflow"`},
			wantErr: ErrExpectation,
		},
		{
			name:    "invalid_expression",
			src:     "print 1",
			expect:  []string{"out +"},
			want:    []string{"strict: 1", "lazy: 1"},
			wantErr: ErrExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, _ := testContext(t, tt.src)

			err := (&Check{Expect: tt.expect}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Check.Run() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil && !errors.Is(err, ErrCommand) {
				t.Errorf("error %v is not a command error", err)
			}

			got := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("output:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}
