package lang

import "github.com/ardnew/minilang/pkg"

// Predefined errors (sentinel values).
var (
	ErrReadSource     = pkg.NewError("failed to read source")
	ErrSourceNotFound = ErrReadSource.Sub("source not found")
)
