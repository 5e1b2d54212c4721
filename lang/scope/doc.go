// Package scope implements the slot table shared by the evaluators.
//
// A [Table] is a single stack of slots partitioned into frames. Frame 0 is
// the global frame and always exists; [Table.Open] pushes a new frame for a
// function invocation and [Table.Close] discards it together with its slots.
// Slots are addressed by (frame, id), where id is the position of the slot
// within its frame, so an address stays valid no matter how many frames are
// stacked above it.
//
// A slot may be emptied with [Table.Take] and refilled with [Table.PutBack].
// The lazy evaluator empties a slot while forcing the thunk it holds, so a
// computation that reads its own slot observes [ErrSlotEmpty].
package scope
