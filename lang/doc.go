// Package lang composes parsing, resolution, and evaluation of minilang
// programs.
//
// A minilang program is a sequence of newline-terminated statements:
//
//	let x = 3
//	let y = 4
//	def add(a, b) = a + b
//	print add(x, y)
//	print if x < y then 1 else 0
//
// [Execute] runs source text with a strict or lazy evaluator. [Compile]
// returns the resolved program, caching it by the hash of the source so
// repeated runs of the same text skip the front end.
package lang
