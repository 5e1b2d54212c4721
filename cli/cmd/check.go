package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/minilang/lang"
	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/log"
)

// Check evaluates a program with both strategies and compares the results.
type Check struct {
	Expect []string `help:"Predicate over out, strict, lazy, and error that must hold (repeatable)." placeholder:"EXPR" short:"x"`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// outcome is the result of one evaluation.
type outcome struct {
	kind eval.Kind
	out  eval.Collector
	err  error
}

func (o *outcome) String() string {
	var sb strings.Builder

	sb.WriteString(o.kind.String() + ":")

	for _, v := range o.out.Values {
		sb.WriteString(" " + strconv.FormatInt(int64(v), 10))
	}

	if o.err != nil {
		sb.WriteString(" (" + errorClass(o.err) + ")")
	}

	return sb.String()
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	src, err := loadSources(ctx, c.Sources)
	if err != nil {
		return err
	}

	prog, err := lang.Compile(ctx, src, s.langOptions()...)
	if err != nil {
		showSnippet(s.Stderr, src, err)

		return err
	}

	strict := &outcome{kind: eval.KindStrict}
	lazy := &outcome{kind: eval.KindLazy}

	// A failure of one strategy is part of its outcome and must not cancel
	// the other, so only construction errors stop the group.
	var eg errgroup.Group

	for _, o := range []*outcome{strict, lazy} {
		eg.Go(func() error {
			ev, err := eval.New(o.kind,
				eval.WithLogger(log.Default()),
				eval.WithMaxCallDepth(s.MaxDepth),
			)
			if err != nil {
				return err
			}

			o.err = ev.Evaluate(ctx, prog, &o.out)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.Stdout, "%s\n%s\n", strict, lazy)
	if err != nil {
		return err
	}

	if !slices.Equal(strict.out.Values, lazy.out.Values) ||
		errorClass(strict.err) != errorClass(lazy.err) {
		return ErrMismatch.With(
			slog.String("strict", strict.String()),
			slog.String("lazy", lazy.String()),
		)
	}

	return c.expect(s.Stdout, map[string]any{
		"out":    strict.out.Ints(),
		"strict": strict.out.Ints(),
		"lazy":   lazy.out.Ints(),
		"error":  errorClass(strict.err),
	})
}

// expect evaluates each predicate of c against env, stopping at the first
// that does not hold.
func (c *Check) expect(w io.Writer, env map[string]any) error {
	for _, e := range c.Expect {
		prog, err := expr.Compile(e, expr.Env(env), expr.AsBool())
		if err != nil {
			return ErrExpression.Wrap(err).With(slog.String("expr", e))
		}

		res, err := expr.Run(prog, env)
		if err != nil {
			return ErrExpression.Wrap(err).With(slog.String("expr", e))
		}

		if ok, _ := res.(bool); !ok {
			return ErrExpectation.With(slog.String("expr", e))
		}

		_, err = fmt.Fprintf(w, "ok: %s\n", e)
		if err != nil {
			return err
		}
	}

	return nil
}
