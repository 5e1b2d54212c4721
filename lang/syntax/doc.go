// Package syntax defines the syntax tree of the language and the parser that
// produces it.
//
// A program is a sequence of newline-terminated statements:
//
//	def add(x, y) = x + y
//	let a = 3
//	print add(a, 4)
//	print a >= 3
//
// Statements are let bindings, function definitions, and prints. The only
// value type is the 32-bit signed integer; comparisons yield 1 or 0 and an if
// expression treats any non-zero condition as true.
//
// A trailing backslash continues a statement on the next line, and newlines
// are insignificant inside parentheses. Comments start with '#' or "//" and
// run to the end of the line.
//
// Every node records the [Pos] where it begins. Names are not resolved here;
// see package ir.
package syntax
