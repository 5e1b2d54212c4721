package eval

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/minilang/lang/ir"
	"github.com/ardnew/minilang/lang/scope"
)

// Lazy evaluates bindings and call arguments on first use and caches the
// result.
type Lazy struct {
	config
}

// NewLazy returns a lazy evaluator.
func NewLazy(opts ...Option) *Lazy {
	return &Lazy{config: makeConfig(opts...)}
}

// thunk is the content of a lazy slot: an expression bound to the frame it
// must run in, or the value it produced.
type thunk struct {
	expr   ir.Expr
	frame  int
	value  int32
	cached bool
}

// Evaluate registers each global binding as a thunk, then sends the value of
// each print expression to sink. Bindings that no print needs are never
// computed. It stops at the first error.
func (l *Lazy) Evaluate(
	ctx context.Context,
	prog *ir.Program,
	sink Sink,
) (err error) {
	r := &lazyRun{
		ctx:      ctx,
		prog:     prog,
		table:    scope.New[thunk](),
		maxDepth: l.maxDepth,
	}

	l.logger.TraceContext(ctx, "evaluate start",
		slog.String("evaluator", KindLazy.String()),
		slog.Int("var_count", len(prog.Vars)),
		slog.Int("print_count", len(prog.Prints)))

	defer func() { l.report(ctx, KindLazy, r.stats, err) }()

	for _, e := range prog.Vars {
		r.table.Register(thunk{expr: e, frame: 0})
	}

	for i, e := range prog.Prints {
		if err := canceled(ctx); err != nil {
			return err
		}

		v, err := r.eval(e, 0)
		if err != nil {
			return err
		}

		if err := sink.Print(v); err != nil {
			return ErrSink.Wrap(err).With(slog.Int("print", i))
		}
	}

	return nil
}

type lazyRun struct {
	ctx      context.Context
	prog     *ir.Program
	table    *scope.Table[thunk]
	maxDepth int
	stats    Stats
}

// eval computes e in the given frame.
func (r *lazyRun) eval(e ir.Expr, frame int) (int32, error) {
	switch e := e.(type) {
	case *ir.Value:
		return e.Value, nil

	case *ir.Variable:
		return r.force(frame+e.Depth, e.ID)

	case *ir.Operation:
		lhs, err := r.eval(e.LHS, frame)
		if err != nil {
			return 0, err
		}

		rhs, err := r.eval(e.RHS, frame)
		if err != nil {
			return 0, err
		}

		return Apply(e.Op, lhs, rhs)

	case *ir.Call:
		return r.call(e, frame)

	case *ir.If:
		cond, err := r.eval(e.Cond, frame)
		if err != nil {
			return 0, err
		}

		if cond != 0 {
			return r.eval(e.Then, frame)
		}

		return r.eval(e.Else, frame)

	default:
		return 0, ErrInvalidProgram.With(slog.String("expr", typeName(e)))
	}
}

// force returns the value of the slot at (depth, id), computing and caching
// it first if needed. The slot stays empty while its thunk runs.
func (r *lazyRun) force(depth, id int) (int32, error) {
	t, err := r.table.Take(depth, id)
	if err != nil {
		if errors.Is(err, scope.ErrSlotEmpty) {
			return 0, ErrCyclicReference.Wrap(err).
				With(slog.Int("depth", depth), slog.Int("id", id))
		}

		return 0, ErrInvalidProgram.Wrap(err)
	}

	if !t.cached {
		v, err := r.eval(t.expr, t.frame)
		if err != nil {
			return 0, r.restore(depth, id, t, err)
		}

		r.stats.Forces++
		t = thunk{value: v, cached: true}
	}

	if err := r.table.PutBack(depth, id, t); err != nil {
		return 0, ErrInvalidProgram.Wrap(err)
	}

	return t.value, nil
}

// restore puts t back into the slot at (depth, id) after computing it failed
// with cause.
func (r *lazyRun) restore(depth, id int, t thunk, cause error) error {
	if err := r.table.PutBack(depth, id, t); err != nil {
		return errors.Join(cause, ErrInvalidProgram.Wrap(err))
	}

	return cause
}

func (r *lazyRun) call(e *ir.Call, frame int) (int32, error) {
	fn, err := lookup(r.prog, e)
	if err != nil {
		return 0, err
	}

	if err := enter(r.ctx, r.table.Depth(), r.maxDepth, &r.stats); err != nil {
		return 0, err
	}

	callee := r.table.Open()
	defer r.table.Close()

	// Arguments run in the caller's frame when forced.
	for _, a := range e.Args {
		r.table.Register(thunk{expr: a, frame: frame})
	}

	return r.eval(fn.Body, callee)
}
