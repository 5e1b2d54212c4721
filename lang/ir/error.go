package ir

import (
	"log/slog"

	"github.com/ardnew/minilang/lang/syntax"
	"github.com/ardnew/minilang/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrCompile            = pkg.NewError("compile error")
	ErrUndefinedVariable  = ErrCompile.Sub("undefined variable")
	ErrUndefinedFunction  = ErrCompile.Sub("undefined function")
	ErrArityMismatch      = ErrCompile.Sub("arity mismatch")
	ErrDuplicateParameter = ErrCompile.Sub("duplicate parameter")
)

func nameAttrs(name string, at syntax.Pos) []slog.Attr {
	return []slog.Attr{
		slog.String("name", name),
		slog.Int("line", at.Line),
		slog.Int("col", at.Col),
	}
}
