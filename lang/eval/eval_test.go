package eval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/ardnew/minilang/lang/ir"
	"github.com/ardnew/minilang/lang/scope"
	"github.com/ardnew/minilang/lang/syntax"
)

const taraiSource = `
def tarai(x, y, z) = if x <= y then y else tarai(tarai(x - 1, y, z), tarai(y - 1, z, x), tarai(z - 1, x, y))
`

func compile(tb testing.TB, src string) *ir.Program {
	tb.Helper()

	stmts, err := syntax.Parse(context.Background(), src)
	if err != nil {
		tb.Fatalf("parse: %v", err)
	}

	prog, err := ir.Resolve(context.Background(), stmts)
	if err != nil {
		tb.Fatalf("resolve: %v", err)
	}

	return prog
}

func evaluators(opts ...Option) map[string]Evaluator {
	return map[string]Evaluator{
		"strict": NewStrict(opts...),
		"lazy":   NewLazy(opts...),
	}
}

func run(t *testing.T, ev Evaluator, prog *ir.Program) ([]int32, error) {
	t.Helper()

	var out Collector

	err := ev.Evaluate(t.Context(), prog, &out)

	return out.Values, err
}

func TestEvaluate_Output(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []int32
	}{
		{
			name: "example",
			src: "let x = 3\nlet y = 4\ndef add(a,b) = a + b\n" +
				"print add(x, y)\nprint if x < y then 1 else 0",
			want: []int32{7, 1},
		},
		{
			name: "remainder",
			src:  "print 7 % 2",
			want: []int32{1},
		},
		{
			name: "shadowing",
			src:  "let x = 1\nlet x = x + 10\nprint x",
			want: []int32{11},
		},
		{
			name: "recursion",
			src:  "def fact(n) = if n <= 1 then 1 else n * fact(n - 1)\nprint fact(10)",
			want: []int32{3628800},
		},
		{
			name: "nested_calls_in_args",
			src: "def add(a, b) = a + b\ndef twice(f) = add(f, f)\n" +
				"print add(twice(add(1, 2)), twice(3))",
			want: []int32{12},
		},
		{
			name: "nonzero_is_true",
			src:  "print if -5 then 1 else 2\nprint if 0 then 1 else 2",
			want: []int32{1, 2},
		},
		{
			name: "redefinition",
			src:  "def f() = 1\nlet a = f()\ndef f() = 2\nprint a + f()",
			want: []int32{3},
		},
		{
			name: "tarai",
			src:  taraiSource + "print tarai(8, 4, 0)\nprint tarai(2, 4, 6)\nprint tarai(6, 4, 2)",
			want: []int32{8, 4, 6},
		},
		{
			name: "min_literal",
			src:  "print -2147483648\nprint 0 - 2147483647 - 1",
			want: []int32{-2147483648, -2147483648},
		},
	}

	for _, tt := range tests {
		prog := compile(t, tt.src)

		for kind, ev := range evaluators() {
			t.Run(tt.name+"/"+kind, func(t *testing.T) {
				got, err := run(t, ev, prog)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if !slices.Equal(got, tt.want) {
					t.Errorf("output = %v, want %v", got, tt.want)
				}
			})
		}
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []int32 // printed before the failure
		err  error
	}{
		{"overflow", "print 2147483647 + 1", nil, ErrOverflow},
		{"division_by_zero", "print 5 / 0", nil, ErrDivisionByZero},
		{"remainder_by_zero", "print 1\nprint 5 % (2 - 2)\nprint 3", []int32{1}, ErrDivisionByZero},
		{"min_div_neg_one", "print -2147483648 / -1", nil, ErrOverflow},
		{
			"error_in_function",
			"def inv(n) = 100 / n\nprint inv(4)\nprint inv(0)",
			[]int32{25},
			ErrDivisionByZero,
		},
	}

	for _, tt := range tests {
		prog := compile(t, tt.src)

		for kind, ev := range evaluators() {
			t.Run(tt.name+"/"+kind, func(t *testing.T) {
				got, err := run(t, ev, prog)

				if !errors.Is(err, tt.err) {
					t.Fatalf("error = %v, want %v", err, tt.err)
				}

				if !errors.Is(err, ErrArithmetic) {
					t.Errorf("error %v is not an arithmetic error", err)
				}

				if !slices.Equal(got, tt.want) {
					t.Errorf("output = %v, want %v", got, tt.want)
				}
			})
		}
	}
}

func TestEvaluate_UnusedBinding(t *testing.T) {
	prog := compile(t, "let boom = 1 / 0\nprint 1")

	if _, err := run(t, NewStrict(), prog); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("strict error = %v, want %v", err, ErrDivisionByZero)
	}

	got, err := run(t, NewLazy(), prog)
	if err != nil {
		t.Fatalf("lazy error: %v", err)
	}

	if !slices.Equal(got, []int32{1}) {
		t.Errorf("lazy output = %v", got)
	}
}

func TestEvaluate_SelfReference(t *testing.T) {
	// let x = x; print x, built directly since the resolver rejects it.
	prog := &ir.Program{
		Vars:   []ir.Expr{&ir.Variable{Depth: 0, ID: 0}},
		Names:  []string{"x"},
		Prints: []ir.Expr{&ir.Variable{Depth: 0, ID: 0}},
	}

	_, err := run(t, NewLazy(), prog)
	if !errors.Is(err, ErrCyclicReference) {
		t.Errorf("lazy error = %v, want %v", err, ErrCyclicReference)
	}

	if !errors.Is(err, scope.ErrSlotEmpty) {
		t.Errorf("lazy error = %v, want %v", err, scope.ErrSlotEmpty)
	}

	_, err = run(t, NewStrict(), prog)
	if !errors.Is(err, scope.ErrIllegalID) {
		t.Errorf("strict error = %v, want %v", err, scope.ErrIllegalID)
	}
}

func TestEvaluate_MutualReference(t *testing.T) {
	// let a = b + 1; let b = a * 2; print b
	prog := &ir.Program{
		Vars: []ir.Expr{
			&ir.Operation{
				Op:  syntax.OpAdd,
				LHS: &ir.Variable{Depth: 0, ID: 1},
				RHS: &ir.Value{Value: 1},
			},
			&ir.Operation{
				Op:  syntax.OpMul,
				LHS: &ir.Variable{Depth: 0, ID: 0},
				RHS: &ir.Value{Value: 2},
			},
		},
		Prints: []ir.Expr{&ir.Variable{Depth: 0, ID: 1}},
	}

	if _, err := run(t, NewLazy(), prog); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("error = %v, want %v", err, ErrCyclicReference)
	}
}

func TestLazy_Memoization(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   []int32
		forces int
	}{
		{
			name:   "global_read_many_times",
			src:    "let a = 2 * 3\nlet b = a + a + a\nprint b\nprint b * a",
			want:   []int32{18, 108},
			forces: 2,
		},
		{
			name:   "argument_read_twice",
			src:    "def sq(x) = x * x\nprint sq(1 + 2)",
			want:   []int32{9},
			forces: 1,
		},
		{
			name:   "argument_never_read",
			src:    "def first(a, b) = a\nprint first(1, 1 / 0)",
			want:   []int32{1},
			forces: 1,
		},
		{
			name:   "unused_global",
			src:    "let a = 1\nlet b = 2\nprint b",
			want:   []int32{2},
			forces: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st Stats

			got, err := run(t, NewLazy(WithStats(&st)), compile(t, tt.src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("output = %v, want %v", got, tt.want)
			}

			if st.Forces != tt.forces {
				t.Errorf("Forces = %d, want %d", st.Forces, tt.forces)
			}
		})
	}
}

func TestLazy_RestoreKeepsCause(t *testing.T) {
	cause := errors.New("thunk failed")

	r := &lazyRun{table: scope.New[thunk]()}
	r.table.Register(thunk{value: 1, cached: true})

	// The slot is still full, so putting the thunk back fails too.
	err := r.restore(0, 0, thunk{}, cause)
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want cause %v", err, cause)
	}

	if !errors.Is(err, ErrInvalidProgram) || !errors.Is(err, scope.ErrSlotNotEmpty) {
		t.Errorf("error = %v, want %v from the table", err, scope.ErrSlotNotEmpty)
	}

	if _, err := r.table.Take(0, 0); err != nil {
		t.Fatal(err)
	}

	if err := r.restore(0, 0, thunk{}, cause); err != cause {
		t.Errorf("error = %v, want exactly %v", err, cause)
	}
}

func TestEvaluate_Stats(t *testing.T) {
	prog := compile(t, "def f(n) = if n then f(n - 1) else 0\nprint f(3)")

	for _, kind := range []Kind{KindStrict, KindLazy} {
		t.Run(kind.String(), func(t *testing.T) {
			var st Stats

			ev, err := New(kind, WithStats(&st))
			if err != nil {
				t.Fatal(err)
			}

			if _, err := run(t, ev, prog); err != nil {
				t.Fatal(err)
			}

			if st.Calls != 4 || st.MaxDepth != 4 {
				t.Errorf("Stats = %+v, want 4 calls at depth 4", st)
			}
		})
	}
}

func TestEvaluate_CallDepth(t *testing.T) {
	prog := func(n int) *ir.Program {
		return compile(t, fmt.Sprintf(
			"def f(n) = if n then f(n - 1) else 0\nprint f(%d)", n))
	}

	for kind, ev := range evaluators(WithMaxCallDepth(10)) {
		t.Run(kind, func(t *testing.T) {
			if _, err := run(t, ev, prog(9)); err != nil {
				t.Errorf("10 nested calls: %v", err)
			}

			_, err := run(t, ev, prog(10))
			if !errors.Is(err, ErrCallDepthExceeded) {
				t.Errorf("11 nested calls: error = %v, want %v", err, ErrCallDepthExceeded)
			}

			if !errors.Is(err, ErrEvaluate) {
				t.Errorf("error %v is not an evaluation error", err)
			}
		})
	}
}

func TestWithMaxCallDepth(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero", 0, DefaultMaxCallDepth},
		{"negative", -1, DefaultMaxCallDepth},
		{"small", 10, 10},
		{"at_limit", MaxCallDepthLimit, MaxCallDepthLimit},
		{"above_limit", MaxCallDepthLimit + 1, MaxCallDepthLimit},
		{"max_int", math.MaxInt, MaxCallDepthLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := makeConfig(WithMaxCallDepth(tt.in)).maxDepth; got != tt.want {
				t.Errorf("WithMaxCallDepth(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEvaluate_RunawayRecursion(t *testing.T) {
	if testing.Short() {
		t.Skip("deep recursion")
	}

	prog := compile(t, "def f(n) = f(n + 1)\nprint f(0)")

	for kind, ev := range evaluators(WithMaxCallDepth(math.MaxInt)) {
		t.Run(kind, func(t *testing.T) {
			if _, err := run(t, ev, prog); !errors.Is(err, ErrCallDepthExceeded) {
				t.Errorf("error = %v, want %v", err, ErrCallDepthExceeded)
			}
		})
	}
}

func TestEvaluate_Sink(t *testing.T) {
	errClosed := errors.New("closed")
	prog := compile(t, "print 1\nprint 2\nprint 3")

	for kind, ev := range evaluators() {
		t.Run(kind, func(t *testing.T) {
			var got []int32

			sink := SinkFunc(func(v int32) error {
				if v == 2 {
					return errClosed
				}

				got = append(got, v)

				return nil
			})

			err := ev.Evaluate(t.Context(), prog, sink)
			if !errors.Is(err, ErrSink) || !errors.Is(err, errClosed) {
				t.Errorf("error = %v, want %v wrapping %v", err, ErrSink, errClosed)
			}

			if !slices.Equal(got, []int32{1}) {
				t.Errorf("output = %v, want [1]", got)
			}
		})
	}
}

func TestEvaluate_Canceled(t *testing.T) {
	prog := compile(t, taraiSource+"print tarai(12, 6, 0)")

	for kind, ev := range evaluators() {
		t.Run(kind, func(t *testing.T) {
			ctx, cancel := context.WithCancel(t.Context())
			cancel()

			err := ev.Evaluate(ctx, prog, Discard)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("error = %v, want %v", err, context.Canceled)
			}
		})
	}
}

func TestEvaluate_InvalidProgram(t *testing.T) {
	tests := []struct {
		name string
		prog *ir.Program
	}{
		{
			name: "missing_function",
			prog: &ir.Program{Prints: []ir.Expr{&ir.Call{Func: 3}}},
		},
		{
			name: "wrong_arity",
			prog: &ir.Program{
				Funcs:  []ir.Func{{Name: "f", Params: []string{"a"}, Body: &ir.Value{}}},
				Prints: []ir.Expr{&ir.Call{Func: 0}},
			},
		},
		{
			name: "undefined_depth",
			prog: &ir.Program{Prints: []ir.Expr{&ir.Variable{Depth: 2, ID: 0}}},
		},
		{
			name: "nil_expr",
			prog: &ir.Program{Prints: []ir.Expr{nil}},
		},
	}

	for _, tt := range tests {
		for kind, ev := range evaluators() {
			t.Run(tt.name+"/"+kind, func(t *testing.T) {
				if _, err := run(t, ev, tt.prog); !errors.Is(err, ErrInvalidProgram) {
					t.Errorf("error = %v, want %v", err, ErrInvalidProgram)
				}
			})
		}
	}
}

func TestEvaluate_CirculateAgrees(t *testing.T) {
	prog := compile(t, "def g(a, b) = a * 10 + b\n"+
		"def f(a, b, c) = if a > b then g(c, a) - b else g(b, c)")
	body := prog.Funcs[1].Body

	r := &strictRun{
		ctx:      t.Context(),
		prog:     prog,
		table:    scope.New[int32](),
		maxDepth: DefaultMaxCallDepth,
	}

	r.table.Register(99) // global
	r.table.Open()       // unrelated frame

	frame := r.table.Open()
	for _, v := range []int32{5, 3, 7} {
		r.table.Register(v)
	}

	want, err := r.eval(body, frame)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.eval(ir.Circulate(body, frame), 0)
	if err != nil {
		t.Fatal(err)
	}

	if got != want || want != 72 {
		t.Errorf("circulated = %d, framed = %d, want 72", got, want)
	}
}

func TestEvaluate_TableBalanced(t *testing.T) {
	prog := compile(t, taraiSource+"let n = tarai(6, 3, 0)\nprint n")

	r := &strictRun{
		ctx:      t.Context(),
		prog:     prog,
		table:    scope.New[int32](),
		maxDepth: DefaultMaxCallDepth,
	}

	if _, err := r.eval(prog.Vars[0], 0); err != nil {
		t.Fatal(err)
	}

	if r.table.Depth() != 1 || r.table.Len() != 0 {
		t.Errorf("table depth=%d len=%d after evaluation", r.table.Depth(), r.table.Len())
	}
}

func TestKind(t *testing.T) {
	for _, name := range Kinds() {
		k, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}

		if k.String() != name {
			t.Errorf("ParseKind(%q).String() = %q", name, k.String())
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("LAZY")); err != nil || k != KindLazy {
		t.Errorf("UnmarshalText(LAZY) = %v, %v", k, err)
	}

	if _, err := ParseKind("eager"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(eager) error = %v", err)
	}

	if _, err := New(Kind(7)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(7) error = %v", err)
	}
}
