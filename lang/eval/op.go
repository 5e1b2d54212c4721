package eval

import (
	"log/slog"
	"math"

	"github.com/ardnew/minilang/lang/syntax"
)

// Apply computes lhs op rhs.
//
// Arithmetic that does not fit in 32 bits fails with [ErrOverflow], and
// division or remainder by zero fails with [ErrDivisionByZero]. Comparisons
// yield 1 for true and 0 for false.
func Apply(op syntax.Op, lhs, rhs int32) (int32, error) {
	l, r := int64(lhs), int64(rhs)

	switch op {
	case syntax.OpAdd:
		return narrow(op, lhs, rhs, l+r)
	case syntax.OpSub:
		return narrow(op, lhs, rhs, l-r)
	case syntax.OpMul:
		return narrow(op, lhs, rhs, l*r)
	case syntax.OpDiv:
		if rhs == 0 {
			return 0, ErrDivisionByZero.With(opAttrs(op, lhs, rhs)...)
		}

		return narrow(op, lhs, rhs, l/r)
	case syntax.OpRem:
		if rhs == 0 {
			return 0, ErrDivisionByZero.With(opAttrs(op, lhs, rhs)...)
		}

		// MinInt32 % -1 fails like MinInt32 / -1.
		if lhs == math.MinInt32 && rhs == -1 {
			return 0, ErrOverflow.With(opAttrs(op, lhs, rhs)...)
		}

		return lhs % rhs, nil
	case syntax.OpGt:
		return truth(lhs > rhs), nil
	case syntax.OpGe:
		return truth(lhs >= rhs), nil
	case syntax.OpLt:
		return truth(lhs < rhs), nil
	case syntax.OpLe:
		return truth(lhs <= rhs), nil
	case syntax.OpEq:
		return truth(lhs == rhs), nil
	case syntax.OpNeq:
		return truth(lhs != rhs), nil
	default:
		return 0, ErrInvalidProgram.With(slog.String("op", op.String()))
	}
}

func narrow(op syntax.Op, lhs, rhs int32, v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrOverflow.With(opAttrs(op, lhs, rhs)...)
	}

	return int32(v), nil
}

func truth(b bool) int32 {
	if b {
		return 1
	}

	return 0
}

func opAttrs(op syntax.Op, lhs, rhs int32) []slog.Attr {
	return []slog.Attr{
		slog.String("op", op.String()),
		slog.Int64("lhs", int64(lhs)),
		slog.Int64("rhs", int64(rhs)),
	}
}
