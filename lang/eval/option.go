package eval

import (
	"context"
	"log/slog"

	"github.com/ardnew/minilang/log"
)

// Limits on nested function calls.
//
// Each call holds a few Go stack frames, and forcing a chain of lazy
// arguments may nest as deep again. MaxCallDepthLimit keeps the worst case
// well below the runtime's fixed stack ceiling, whose overflow cannot be
// recovered.
const (
	DefaultMaxCallDepth = 65536
	MaxCallDepthLimit   = 1 << 18
)

// Option configures an evaluator.
type Option func(config) config

type config struct {
	logger   log.Logger
	maxDepth int
	stats    *Stats
}

func makeConfig(opts ...Option) config {
	cfg := config{maxDepth: DefaultMaxCallDepth}

	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithMaxCallDepth limits the number of nested function calls.
// Values less than 1 select [DefaultMaxCallDepth]; values above
// [MaxCallDepthLimit] are lowered to it.
func WithMaxCallDepth(n int) Option {
	return func(c config) config {
		if n < 1 {
			n = DefaultMaxCallDepth
		}

		c.maxDepth = min(n, MaxCallDepthLimit)

		return c
	}
}

// WithStats makes the evaluator store counters of each run in s.
func WithStats(s *Stats) Option {
	return func(c config) config {
		c.stats = s

		return c
	}
}

// Stats counts the work done by one evaluation.
type Stats struct {
	Forces   int // thunks computed (lazy only)
	Calls    int // function invocations
	MaxDepth int // deepest call nesting reached
}

func (c config) report(ctx context.Context, kind Kind, st Stats, err error) {
	if c.stats != nil {
		*c.stats = st
	}

	attrs := []slog.Attr{
		slog.String("evaluator", kind.String()),
		slog.Int("forces", st.Forces),
		slog.Int("calls", st.Calls),
		slog.Int("max_depth", st.MaxDepth),
	}

	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	c.logger.TraceContext(ctx, "evaluate finish", attrs...)
}

// canceled reports the cause if ctx is done, without blocking.
func canceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	default:
		return nil
	}
}
