package eval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/minilang/lang/ir"
)

// lookup returns the function called by e after checking the call against
// its definition.
func lookup(prog *ir.Program, e *ir.Call) (ir.Func, error) {
	if e.Func < 0 || e.Func >= len(prog.Funcs) {
		return ir.Func{}, ErrInvalidProgram.With(slog.Int("func", e.Func))
	}

	fn := prog.Funcs[e.Func]
	if fn.Arity() != len(e.Args) {
		return ir.Func{}, ErrInvalidProgram.With(
			slog.String("name", fn.Name),
			slog.Int("want", fn.Arity()),
			slog.Int("got", len(e.Args)),
		)
	}

	return fn, nil
}

// enter accounts for a new call given the current number of frames, failing
// if ctx is done or the call would exceed limit nested calls.
func enter(ctx context.Context, frames, limit int, st *Stats) error {
	if err := canceled(ctx); err != nil {
		return err
	}

	depth := frames // frames - 1 calls in flight, plus this one
	if depth > limit {
		return ErrCallDepthExceeded.With(slog.Int("limit", limit))
	}

	st.Calls++
	st.MaxDepth = max(st.MaxDepth, depth)

	return nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", v)
}
