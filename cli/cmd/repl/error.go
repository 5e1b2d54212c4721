package repl

import "github.com/ardnew/minilang/pkg"

// Predefined errors (sentinel values).
var (
	ErrRepl         = pkg.NewError("repl error")
	ErrOutOfBounds  = ErrRepl.Sub("index out of range")
	ErrEditDeclined = ErrRepl.Sub("decline edit")
)
