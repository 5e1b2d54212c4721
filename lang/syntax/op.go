package syntax

import "strconv"

// Op identifies a binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpGt
	OpGe
	OpLt
	OpLe
	OpEq
	OpNeq
)

var opSymbol = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpRem: "%",
	OpGt:  ">",
	OpGe:  ">=",
	OpLt:  "<",
	OpLe:  "<=",
	OpEq:  "==",
	OpNeq: "!=",
}

// String returns the canonical symbol of op.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opSymbol) {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}

	return opSymbol[op]
}

// MarshalText implements encoding.TextMarshaler.
func (op Op) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// IsComparison reports whether op yields a truth value (1 or 0).
func (op Op) IsComparison() bool { return op >= OpGt }

// precedence returns the binding strength of op; higher binds tighter.
func (op Op) precedence() int {
	switch op {
	case OpEq, OpNeq:
		return 1
	case OpGt, OpGe, OpLt, OpLe:
		return 2
	case OpAdd, OpSub:
		return 3
	default:
		return 4
	}
}
