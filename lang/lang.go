package lang

import (
	"context"

	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/log"
)

// Option configures [Execute] and [Compile].
type Option func(*options)

type options struct {
	logger   log.Logger
	evalOpts []eval.Option
	noCache  bool
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger passed to every stage.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEvalOptions appends options for the evaluator created by [Execute].
func WithEvalOptions(opts ...eval.Option) Option {
	return func(o *options) { o.evalOpts = append(o.evalOpts, opts...) }
}

// WithoutCache makes [Compile] bypass the program cache.
func WithoutCache() Option {
	return func(o *options) { o.noCache = true }
}

// Execute compiles source and evaluates it with the evaluator of the given
// kind, sending each printed value to sink.
//
// Values printed before a failure have already reached sink when the error
// is returned.
func Execute(
	ctx context.Context,
	source string,
	kind eval.Kind,
	sink eval.Sink,
	opts ...Option,
) error {
	o := makeOptions(opts...)

	prog, err := compile(ctx, source, o)
	if err != nil {
		return err
	}

	ev, err := eval.New(kind, append([]eval.Option{eval.WithLogger(o.logger)}, o.evalOpts...)...)
	if err != nil {
		return err
	}

	return ev.Evaluate(ctx, prog, sink)
}
