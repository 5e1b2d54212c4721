package ir

import "strconv"

// Document is a serializable view of a [Program] for JSON and YAML dumps.
type Document struct {
	Funcs  []FuncNode `json:"funcs"  yaml:"funcs"`
	Vars   []VarNode  `json:"vars"   yaml:"vars"`
	Prints []*Node    `json:"prints" yaml:"prints"`
}

// FuncNode describes one function of a [Document].
type FuncNode struct {
	Name   string   `json:"name"   yaml:"name"`
	Params []string `json:"params" yaml:"params"`
	Body   *Node    `json:"body"   yaml:"body"`
}

// VarNode describes one global binding of a [Document].
type VarNode struct {
	Name  string `json:"name"  yaml:"name"`
	Value *Node  `json:"value" yaml:"value"`
}

// Node is a serializable expression. Operands of operations, conditionals,
// and calls are listed in Args in evaluation order.
type Node struct {
	Kind  string  `json:"kind"            yaml:"kind"`
	Value *int32  `json:"value,omitempty" yaml:"value,omitempty"`
	Depth *int    `json:"depth,omitempty" yaml:"depth,omitempty"`
	ID    *int    `json:"id,omitempty"    yaml:"id,omitempty"`
	Op    string  `json:"op,omitempty"    yaml:"op,omitempty"`
	Func  string  `json:"func,omitempty"  yaml:"func,omitempty"`
	Args  []*Node `json:"args,omitempty"  yaml:"args,omitempty"`
}

// Document returns the serializable view of p with every expression
// circulated by frame.
func (p *Program) Document(frame int) Document {
	doc := Document{
		Funcs:  make([]FuncNode, len(p.Funcs)),
		Vars:   make([]VarNode, len(p.Vars)),
		Prints: make([]*Node, len(p.Prints)),
	}

	for i, f := range p.Funcs {
		doc.Funcs[i] = FuncNode{
			Name:   f.Name,
			Params: f.Params,
			Body:   p.node(Circulate(f.Body, frame)),
		}
	}

	for i, v := range p.Vars {
		var name string
		if i < len(p.Names) {
			name = p.Names[i]
		}

		doc.Vars[i] = VarNode{Name: name, Value: p.node(Circulate(v, frame))}
	}

	for i, e := range p.Prints {
		doc.Prints[i] = p.node(Circulate(e, frame))
	}

	return doc
}

func (p *Program) node(e Expr) *Node {
	switch e := e.(type) {
	case *Value:
		v := e.Value

		return &Node{Kind: "value", Value: &v}

	case *Variable:
		d, id := e.Depth, e.ID

		return &Node{Kind: "variable", Depth: &d, ID: &id}

	case *Operation:
		return &Node{
			Kind: "operation",
			Op:   e.Op.String(),
			Args: []*Node{p.node(e.LHS), p.node(e.RHS)},
		}

	case *Call:
		n := &Node{Kind: "call", Func: "#" + strconv.Itoa(e.Func)}
		if e.Func >= 0 && e.Func < len(p.Funcs) {
			n.Func = p.Funcs[e.Func].Name
		}

		n.Args = make([]*Node, len(e.Args))
		for i, a := range e.Args {
			n.Args[i] = p.node(a)
		}

		return n

	case *If:
		return &Node{
			Kind: "if",
			Args: []*Node{p.node(e.Cond), p.node(e.Then), p.node(e.Else)},
		}

	default:
		return nil
	}
}
