// Package ir defines the resolved form of a program and the resolver that
// produces it from a syntax tree.
//
// Resolution replaces every name with an address. A variable becomes a
// (depth, id) pair, where depth counts frames outward from the frame the
// expression is evaluated in and id is the slot within that frame. A call
// becomes an index into [Program.Funcs]. The resolver always emits depth 0:
// top-level expressions see only the global frame, and a function body sees
// only its own parameters.
package ir
