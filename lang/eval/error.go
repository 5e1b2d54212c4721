package eval

import "github.com/ardnew/minilang/pkg"

// Predefined errors (sentinel values).
var (
	ErrArithmetic     = pkg.NewError("arithmetic error")
	ErrOverflow       = ErrArithmetic.Sub("integer overflow")
	ErrDivisionByZero = ErrArithmetic.Sub("division by zero")

	ErrEvaluate          = pkg.NewError("evaluation error")
	ErrCyclicReference   = ErrEvaluate.Sub("cyclic reference")
	ErrCallDepthExceeded = ErrEvaluate.Sub("call depth exceeded")
	ErrInvalidProgram    = ErrEvaluate.Sub("invalid program")
	ErrSink              = ErrEvaluate.Sub("output failed")

	ErrUnknownKind = pkg.NewError("unknown evaluator")
)
