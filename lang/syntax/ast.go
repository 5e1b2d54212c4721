package syntax

import "strconv"

// Pos is a 1-based source position.
type Pos struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col"  yaml:"col"`
}

// String returns "line:col".
func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Stmt is a top-level statement: [Binding], [Define], or [Print].
type Stmt interface {
	Pos() Pos
	stmt()
}

// Expr is an expression: [Value], [Variable], [Operation], [Call], or [If].
type Expr interface {
	Pos() Pos
	expr()
}

// Binding is "let Name = Value".
type Binding struct {
	Name  string
	Value Expr
	At    Pos
}

// Define is "def Name(Params...) = Body".
type Define struct {
	Name   string
	Params []string
	Body   Expr
	At     Pos
}

// Print is "print Value".
type Print struct {
	Value Expr
	At    Pos
}

// Value is an integer literal.
type Value struct {
	Value int32
	At    Pos
}

// Variable is a reference to a binding or parameter by name.
type Variable struct {
	Name string
	At   Pos
}

// Operation is a binary operation.
type Operation struct {
	Op  Op
	LHS Expr
	RHS Expr
	At  Pos
}

// Call is a function call by name.
type Call struct {
	Name string
	Args []Expr
	At   Pos
}

// If is "if Cond then Then else Else".
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	At   Pos
}

func (s *Binding) Pos() Pos { return s.At }
func (s *Define) Pos() Pos  { return s.At }
func (s *Print) Pos() Pos   { return s.At }

func (*Binding) stmt() {}
func (*Define) stmt()  {}
func (*Print) stmt()   {}

func (e *Value) Pos() Pos     { return e.At }
func (e *Variable) Pos() Pos  { return e.At }
func (e *Operation) Pos() Pos { return e.At }
func (e *Call) Pos() Pos      { return e.At }
func (e *If) Pos() Pos        { return e.At }

func (*Value) expr()     {}
func (*Variable) expr()  {}
func (*Operation) expr() {}
func (*Call) expr()      {}
func (*If) expr()        {}
