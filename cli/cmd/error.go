package cmd

import (
	"errors"

	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrCommand     = pkg.NewError("command failed")
	ErrMarshal     = ErrCommand.Sub("marshal output")
	ErrWriteConfig = ErrCommand.Sub("write configuration file")
	ErrFileExists  = ErrCommand.Sub("file exists (use --force to overwrite)")
	ErrMismatch    = ErrCommand.Sub("evaluators disagree")
	ErrExpectation = ErrCommand.Sub("expectation failed")
	ErrExpression  = ErrCommand.Sub("invalid expectation")
)

// errorClasses lists the evaluation failures told apart by [errorClass],
// most specific first.
var errorClasses = []*pkg.Error{
	eval.ErrOverflow,
	eval.ErrDivisionByZero,
	eval.ErrCyclicReference,
	eval.ErrCallDepthExceeded,
	eval.ErrInvalidProgram,
	eval.ErrSink,
	eval.ErrArithmetic,
	eval.ErrEvaluate,
}

// errorClass names the kind of evaluation failure err represents, or returns
// "" if err is nil.
func errorClass(err error) string {
	if err == nil {
		return ""
	}

	for _, c := range errorClasses {
		if errors.Is(err, c) {
			return c.Message()
		}
	}

	return "error"
}
