package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/minilang/lang"
	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/lang/syntax"
	"github.com/ardnew/minilang/log"
)

// Run executes a program, printing each value on its own line.
type Run struct {
	Evaluator eval.Kind `default:"strict" help:"Evaluation strategy (${evaluators})." short:"e"`
	Lazy      bool      `help:"Use the lazy evaluator (same as --evaluator=lazy)."`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// kind returns the evaluation strategy selected by the flags.
func (r *Run) kind() eval.Kind {
	if r.Lazy {
		return eval.KindLazy
	}

	return r.Evaluator
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	src, err := loadSources(ctx, r.Sources)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "run",
		slog.String("evaluator", r.kind().String()),
		slog.Int("sources", len(r.Sources)),
	)

	err = lang.Execute(ctx, src, r.kind(), eval.NewWriterSink(s.Stdout),
		s.langOptions()...)
	if err != nil {
		showSnippet(s.Stderr, src, err)

		return err
	}

	return nil
}

// showSnippet writes the source line a parse error points at, if any.
func showSnippet(w io.Writer, src string, err error) {
	if snip := syntax.Snippet(src, err); snip != "" {
		_, _ = io.WriteString(w, snip)
	}
}
