package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ardnew/minilang/lang/syntax"
)

// Expr is a resolved expression: [Value], [Variable], [Operation], [Call],
// or [If].
type Expr interface {
	fmt.Stringer

	// Circulate returns a copy of the expression with every variable depth
	// increased by d, so that it reads the same slots when evaluated d frames
	// further out.
	Circulate(d int) Expr

	expr()
}

// Value is an integer constant.
type Value struct {
	Value int32
}

// Variable addresses slot ID of the frame Depth levels out from the frame the
// expression is evaluated in.
type Variable struct {
	Depth int
	ID    int
}

// Operation applies a binary operator.
type Operation struct {
	Op  syntax.Op
	LHS Expr
	RHS Expr
}

// Call invokes Program.Funcs[Func] with one argument per parameter.
type Call struct {
	Func int
	Args []Expr
}

// If selects Then when Cond is non-zero and Else otherwise.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*Value) expr()     {}
func (*Variable) expr()  {}
func (*Operation) expr() {}
func (*Call) expr()      {}
func (*If) expr()        {}

func (e *Value) String() string { return strconv.FormatInt(int64(e.Value), 10) }

func (e *Variable) String() string {
	return "$" + strconv.Itoa(e.Depth) + "." + strconv.Itoa(e.ID)
}

func (e *Operation) String() string {
	return "(" + e.LHS.String() + " " + e.Op.String() + " " + e.RHS.String() + ")"
}

func (e *Call) String() string {
	return "#" + strconv.Itoa(e.Func) + "(" + joinExprs(e.Args) + ")"
}

func (e *If) String() string {
	return "if(" + joinExprs([]Expr{e.Cond, e.Then, e.Else}) + ")"
}

func (e *Value) Circulate(int) Expr { return e }

func (e *Variable) Circulate(d int) Expr {
	return &Variable{Depth: e.Depth + d, ID: e.ID}
}

func (e *Operation) Circulate(d int) Expr {
	return &Operation{Op: e.Op, LHS: e.LHS.Circulate(d), RHS: e.RHS.Circulate(d)}
}

func (e *Call) Circulate(d int) Expr {
	args := make([]Expr, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Circulate(d)
	}

	return &Call{Func: e.Func, Args: args}
}

func (e *If) Circulate(d int) Expr {
	return &If{
		Cond: e.Cond.Circulate(d),
		Then: e.Then.Circulate(d),
		Else: e.Else.Circulate(d),
	}
}

// Circulate is a convenience for e.Circulate(d) that also accepts nil.
func Circulate(e Expr, d int) Expr {
	if e == nil || d == 0 {
		return e
	}

	return e.Circulate(d)
}

func joinExprs(es []Expr) string {
	s := make([]string, len(es))
	for i, e := range es {
		s[i] = e.String()
	}

	return strings.Join(s, ", ")
}

// Func is a resolved function definition. Body addresses parameter i as
// Variable{0, i}.
type Func struct {
	Name   string
	Params []string
	Body   Expr
}

// Arity returns the number of parameters.
func (f Func) Arity() int { return len(f.Params) }

// Program is the resolved form of a source unit. It is immutable once
// returned by [Resolve] and may be shared between concurrent evaluations.
type Program struct {
	Funcs  []Func
	Vars   []Expr   // global initializers, in declaration order
	Names  []string // Names[i] is the binding name of Vars[i]
	Prints []Expr
}

// WriteTo writes a line-oriented listing of p. It implements [io.WriterTo].
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	return p.Dump(w, 0)
}

// Dump writes a line-oriented listing of p with every expression circulated
// by frame:
//
//	func #0 max(a, b) = if(($0.0 > $0.1), $0.0, $0.1)
//	var 0 n = 4
//	print 0 = #0($0.0, 2)
func (p *Program) Dump(w io.Writer, frame int) (int64, error) {
	var sb strings.Builder

	for i, f := range p.Funcs {
		fmt.Fprintf(&sb, "func #%d %s(%s) = %s\n",
			i, f.Name, strings.Join(f.Params, ", "), Circulate(f.Body, frame))
	}

	for i, v := range p.Vars {
		name := ""
		if i < len(p.Names) {
			name = p.Names[i]
		}

		fmt.Fprintf(&sb, "var %d %s = %s\n", i, name, Circulate(v, frame))
	}

	for i, e := range p.Prints {
		fmt.Fprintf(&sb, "print %d = %s\n", i, Circulate(e, frame))
	}

	n, err := io.WriteString(w, sb.String())

	return int64(n), err
}
