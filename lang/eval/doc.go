// Package eval runs resolved programs.
//
// Two evaluators share one addressing scheme over a [scope.Table]. The
// [Strict] evaluator computes every global binding in declaration order and
// passes call arguments by value. The [Lazy] evaluator stores each binding
// and argument as a thunk that is computed on first use and then cached; a
// thunk that needs its own value fails with [ErrCyclicReference].
//
// Both evaluators carry the index of the frame an expression runs in, so a
// variable at (depth, id) reads slot id of frame+depth.
package eval
