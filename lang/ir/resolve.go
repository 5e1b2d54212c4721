package ir

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ardnew/minilang/lang/syntax"
	"github.com/ardnew/minilang/log"
)

// Option configures [Resolve].
type Option func(*resolver)

// WithLogger sets the logger used for resolver diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(r *resolver) { r.logger = logger }
}

// scope maps a visible variable name to its slot id in the innermost frame.
type scope map[string]int

// funcRef is what the resolver knows about a defined function.
type funcRef struct {
	index int
	arity int
}

type resolver struct {
	funcs  map[string]funcRef
	prog   *Program
	logger log.Logger
}

// Resolve converts parsed statements into a [Program] in a single pass.
//
// A binding is visible to the statements after it, never to its own
// initializer. A function is visible to its own body and to the statements
// after it; its body sees only its parameters. Later bindings and definitions
// shadow earlier ones with the same name.
//
// On failure no partial program is returned.
func Resolve(
	ctx context.Context,
	stmts []syntax.Stmt,
	opts ...Option,
) (*Program, error) {
	r := &resolver{
		funcs: make(map[string]funcRef),
		prog: &Program{
			Funcs:  make([]Func, 0),
			Vars:   make([]Expr, 0),
			Names:  make([]string, 0),
			Prints: make([]Expr, 0),
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	globals := make(scope)

	for _, s := range stmts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := r.stmt(s, globals); err != nil {
			r.logger.TraceContext(ctx, "resolve failed", slog.Any("error", err))

			return nil, err
		}
	}

	r.logger.TraceContext(ctx, "resolve complete",
		slog.Int("func_count", len(r.prog.Funcs)),
		slog.Int("var_count", len(r.prog.Vars)),
		slog.Int("print_count", len(r.prog.Prints)))

	return r.prog, nil
}

// stmt resolves one statement against globals. A binding is added to globals
// after its initializer is resolved, so only later statements see it.
func (r *resolver) stmt(s syntax.Stmt, globals scope) error {
	switch s := s.(type) {
	case *syntax.Binding:
		e, err := r.expr(s.Value, globals)
		if err != nil {
			return err
		}

		id := len(r.prog.Vars)
		r.prog.Vars = append(r.prog.Vars, e)
		r.prog.Names = append(r.prog.Names, s.Name)

		globals[s.Name] = id

		return nil

	case *syntax.Define:
		locals := make(scope, len(s.Params))

		for i, p := range s.Params {
			if _, dup := locals[p]; dup {
				return ErrDuplicateParameter.With(nameAttrs(p, s.At)...).
					With(slog.String("func", s.Name))
			}

			locals[p] = i
		}

		// Register first so the body may call itself.
		r.funcs[s.Name] = funcRef{index: len(r.prog.Funcs), arity: len(s.Params)}

		body, err := r.expr(s.Body, locals)
		if err != nil {
			return err
		}

		r.prog.Funcs = append(r.prog.Funcs, Func{
			Name:   s.Name,
			Params: slices.Clone(s.Params),
			Body:   body,
		})

		return nil

	case *syntax.Print:
		e, err := r.expr(s.Value, globals)
		if err != nil {
			return err
		}

		r.prog.Prints = append(r.prog.Prints, e)

		return nil

	default:
		return ErrCompile.With(slog.String("stmt", typeName(s)))
	}
}

// expr resolves e against the variables in vars.
func (r *resolver) expr(e syntax.Expr, vars scope) (Expr, error) {
	switch e := e.(type) {
	case *syntax.Value:
		return &Value{Value: e.Value}, nil

	case *syntax.Variable:
		id, ok := vars[e.Name]
		if !ok {
			return nil, ErrUndefinedVariable.With(nameAttrs(e.Name, e.At)...)
		}

		return &Variable{Depth: 0, ID: id}, nil

	case *syntax.Operation:
		lhs, err := r.expr(e.LHS, vars)
		if err != nil {
			return nil, err
		}

		rhs, err := r.expr(e.RHS, vars)
		if err != nil {
			return nil, err
		}

		return &Operation{Op: e.Op, LHS: lhs, RHS: rhs}, nil

	case *syntax.Call:
		ref, ok := r.funcs[e.Name]
		if !ok {
			return nil, ErrUndefinedFunction.With(nameAttrs(e.Name, e.At)...)
		}

		if len(e.Args) != ref.arity {
			return nil, ErrArityMismatch.With(nameAttrs(e.Name, e.At)...).With(
				slog.Int("want", ref.arity),
				slog.Int("got", len(e.Args)),
			)
		}

		args := make([]Expr, len(e.Args))

		for i, a := range e.Args {
			arg, err := r.expr(a, vars)
			if err != nil {
				return nil, err
			}

			args[i] = arg
		}

		return &Call{Func: ref.index, Args: args}, nil

	case *syntax.If:
		cond, err := r.expr(e.Cond, vars)
		if err != nil {
			return nil, err
		}

		then, err := r.expr(e.Then, vars)
		if err != nil {
			return nil, err
		}

		els, err := r.expr(e.Else, vars)
		if err != nil {
			return nil, err
		}

		return &If{Cond: cond, Then: then, Else: els}, nil

	default:
		return nil, ErrCompile.With(slog.String("expr", typeName(e)))
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", v)
}
