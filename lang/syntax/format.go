package syntax

import (
	"io"
	"strconv"
	"strings"
)

// Format writes stmts to w as canonical source text, one statement per line.
// Parsing the output yields the same trees up to positions.
func Format(w io.Writer, stmts []Stmt) error {
	var sb strings.Builder

	for _, s := range stmts {
		sb.WriteString(FormatStmt(s))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// FormatStmt returns the canonical source text of a statement.
func FormatStmt(s Stmt) string {
	switch s := s.(type) {
	case *Binding:
		return "let " + s.Name + " = " + FormatExpr(s.Value)
	case *Define:
		return "def " + s.Name + "(" + strings.Join(s.Params, ", ") + ") = " +
			FormatExpr(s.Body)
	case *Print:
		return "print " + FormatExpr(s.Value)
	default:
		return ""
	}
}

// FormatExpr returns the canonical source text of an expression, with only
// the parentheses needed to preserve its structure.
func FormatExpr(e Expr) string {
	var sb strings.Builder

	writeExpr(&sb, e, 0)

	return sb.String()
}

// writeExpr writes e in a context requiring binding strength of at least
// prec. Precedence 0 is a full expression, where if is allowed bare.
func writeExpr(sb *strings.Builder, e Expr, prec int) {
	switch e := e.(type) {
	case *Value:
		sb.WriteString(strconv.FormatInt(int64(e.Value), 10))

	case *Variable:
		sb.WriteString(e.Name)

	case *Call:
		sb.WriteString(e.Name)
		sb.WriteByte('(')

		for i, a := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeExpr(sb, a, 0)
		}

		sb.WriteByte(')')

	case *Operation:
		p := e.Op.precedence()
		paren := p < prec

		if paren {
			sb.WriteByte('(')
		}

		writeExpr(sb, e.LHS, p)
		sb.WriteString(" " + e.Op.String() + " ")
		// Operators are left-associative, so an equal-precedence right
		// operand needs parentheses.
		writeExpr(sb, e.RHS, p+1)

		if paren {
			sb.WriteByte(')')
		}

	case *If:
		paren := prec > 0

		if paren {
			sb.WriteByte('(')
		}

		sb.WriteString("if ")
		writeExpr(sb, e.Cond, 0)
		sb.WriteString(" then ")
		writeExpr(sb, e.Then, 0)
		sb.WriteString(" else ")
		writeExpr(sb, e.Else, 0)

		if paren {
			sb.WriteByte(')')
		}
	}
}
