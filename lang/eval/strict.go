package eval

import (
	"context"
	"log/slog"

	"github.com/ardnew/minilang/lang/ir"
	"github.com/ardnew/minilang/lang/scope"
)

// Strict evaluates every expression as soon as it is reached.
type Strict struct {
	config
}

// NewStrict returns a strict evaluator.
func NewStrict(opts ...Option) *Strict {
	return &Strict{config: makeConfig(opts...)}
}

// Evaluate computes each global binding in declaration order, then sends the
// value of each print expression to sink. It stops at the first error.
func (s *Strict) Evaluate(
	ctx context.Context,
	prog *ir.Program,
	sink Sink,
) (err error) {
	r := &strictRun{
		ctx:      ctx,
		prog:     prog,
		table:    scope.New[int32](),
		maxDepth: s.maxDepth,
	}

	s.logger.TraceContext(ctx, "evaluate start",
		slog.String("evaluator", KindStrict.String()),
		slog.Int("var_count", len(prog.Vars)),
		slog.Int("print_count", len(prog.Prints)))

	defer func() { s.report(ctx, KindStrict, r.stats, err) }()

	for i, e := range prog.Vars {
		if err := canceled(ctx); err != nil {
			return err
		}

		v, err := r.eval(e, 0)
		if err != nil {
			return err
		}

		if id := r.table.Register(v); id != i {
			return ErrInvalidProgram.With(slog.Int("var", i), slog.Int("id", id))
		}
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

type strictRun struct {
	ctx      context.Context
	prog     *ir.Program
	table    *scope.Table[int32]
	maxDepth int
	stats    Stats
}

// eval computes e in the given frame.
func (r *strictRun) eval(e ir.Expr, frame int) (int32, error) {
	switch e := e.(type) {
	case *ir.Value:
		return e.Value, nil

	case *ir.Variable:
		v, err := r.table.Peek(frame+e.Depth, e.ID)
		if err != nil {
			return 0, ErrInvalidProgram.Wrap(err)
		}

		return v, nil

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

func (r *strictRun) call(e *ir.Call, frame int) (int32, error) {
	fn, err := lookup(r.prog, e)
	if err != nil {
		return 0, err
	}

	if err := enter(r.ctx, r.table.Depth(), r.maxDepth, &r.stats); err != nil {
		return 0, err
	}

	args := make([]int32, len(e.Args))

	for i, a := range e.Args {
		v, err := r.eval(a, frame)
		if err != nil {
			return 0, err
		}

		args[i] = v
	}

	callee := r.table.Open()
	defer r.table.Close()

	for _, v := range args {
		r.table.Register(v)
	}

	return r.eval(fn.Body, callee)
}
