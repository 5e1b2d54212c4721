package lang

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/minilang/lang/ir"
	"github.com/ardnew/minilang/lang/syntax"
)

// programCache maps the xxh3 hash of a source text to its *entry.
var programCache sync.Map

// entry holds the outcome of compiling one source text.
type entry struct {
	once   sync.Once
	source string
	prog   *ir.Program
	err    error
}

// Compile parses and resolves source.
//
// Programs are immutable, so the result is cached and shared by every caller
// compiling the same text. Compile errors are cached too; cancellation is
// not.
func Compile(ctx context.Context, source string, opts ...Option) (*ir.Program, error) {
	return compile(ctx, source, makeOptions(opts...))
}

// ClearCache removes all cached programs.
func ClearCache() { programCache.Clear() }

func compile(ctx context.Context, source string, o options) (*ir.Program, error) {
	if o.noCache {
		return buildProgram(ctx, source, o)
	}

	hash := xxh3.HashString(source)

	for {
		e := &entry{source: source}

		v, hit := programCache.LoadOrStore(hash, e)
		if cached, ok := v.(*entry); ok {
			e = cached
		}

		o.logger.TraceContext(ctx, "cache lookup",
			slog.String("source_hash", strconv.FormatUint(hash, 16)),
			slog.Bool("cache_hit", hit))

		if e.source != source {
			o.logger.TraceContext(ctx, "cache bypass",
				slog.String("source_hash", strconv.FormatUint(hash, 16)),
				slog.String("reason", "hash collision"))

			return buildProgram(ctx, source, o)
		}

		e.once.Do(func() { e.prog, e.err = buildProgram(ctx, source, o) })

		if e.err == nil || !isContextErr(e.err) {
			return e.prog, e.err
		}

		programCache.CompareAndDelete(hash, e)

		// The build ran under another caller's context; only give up if ours
		// is done too.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

// buildProgram is the compile step run once per cache entry.
var buildProgram = build

func build(ctx context.Context, source string, o options) (*ir.Program, error) {
	stmts, err := syntax.Parse(ctx, source, syntax.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	return ir.Resolve(ctx, stmts, ir.WithLogger(o.logger))
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
