package eval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/minilang/lang/ir"
)

// Evaluator runs a resolved program, sending each printed value to a sink.
type Evaluator interface {
	Evaluate(ctx context.Context, prog *ir.Program, sink Sink) error
}

// Kind selects an evaluation strategy.
type Kind int

// Evaluation strategies.
const (
	KindStrict Kind = iota
	KindLazy
)

var kindName = map[Kind]string{
	KindStrict: "strict",
	KindLazy:   "lazy",
}

// String returns the name of k.
func (k Kind) String() string {
	if s, ok := kindName[k]; ok {
		return s
	}

	return "unknown"
}

// Kinds returns the names of all evaluation strategies.
func Kinds() []string { return []string{"strict", "lazy"} }

// ParseKind returns the strategy named s, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return KindStrict, nil
	case "lazy":
		return KindLazy, nil
	default:
		return 0, ErrUnknownKind.With(slog.String("name", s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = v

	return nil
}

// New returns an evaluator of the given kind.
func New(kind Kind, opts ...Option) (Evaluator, error) {
	switch kind {
	case KindStrict:
		return NewStrict(opts...), nil
	case KindLazy:
		return NewLazy(opts...), nil
	default:
		return nil, ErrUnknownKind.With(slog.Int("kind", int(kind)))
	}
}
