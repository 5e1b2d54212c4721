package scope

import "github.com/ardnew/minilang/pkg"

// Predefined errors (sentinel values).
var (
	ErrScope          = pkg.NewError("scope error")
	ErrUndefinedDepth = ErrScope.Sub("undefined depth")
	ErrIllegalID      = ErrScope.Sub("illegal slot id")
	ErrSlotEmpty      = ErrScope.Sub("slot empty")
	ErrSlotNotEmpty   = ErrScope.Sub("slot not empty")
)
