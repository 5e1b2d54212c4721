package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ardnew/minilang/cli/cmd/repl"
	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/log"
)

// Repl starts an interactive session.
type Repl struct {
	Evaluator eval.Kind `default:"strict" help:"Evaluation strategy (${evaluators})." short:"e"`
	Lazy      bool      `help:"Use the lazy evaluator (same as --evaluator=lazy)."`

	Sources []string `arg:"" help:"Source file(s) loaded into the session before the prompt." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	kind := r.Evaluator
	if r.Lazy {
		kind = eval.KindLazy
	}

	session := repl.NewSession(kind, log.Default(), eval.WithMaxCallDepth(s.MaxDepth))

	if len(r.Sources) > 0 {
		src, err := loadSources(ctx, r.Sources)
		if err != nil {
			return err
		}

		res, err := session.Load(ctx, src)
		if err != nil {
			showSnippet(s.Stderr, src, err)

			return err
		}

		for _, v := range res.Values {
			_, _ = fmt.Fprintln(s.Stdout, strconv.FormatInt(int64(v), 10))
		}
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	log.DebugContext(ctx, "repl",
		slog.String("evaluator", kind.String()),
		slog.Int("stmt_count", session.Len()),
	)

	return repl.Run(ctx, session, cacheDir, log.Default())
}
