package scope

import (
	"log/slog"
)

// Table is a stack of optionally-filled slots partitioned into frames.
// The zero value is not usable; create tables with [New].
//
// A Table is not safe for concurrent use.
type Table[T any] struct {
	slots []slot[T]
	base  []int // base[f] is the index of the first slot of frame f
}

type slot[T any] struct {
	val  T
	full bool
}

// New returns a table holding only the empty global frame.
func New[T any]() *Table[T] {
	return &Table[T]{base: []int{0}}
}

// Open pushes a new empty frame and returns its index.
func (t *Table[T]) Open() int {
	t.base = append(t.base, len(t.slots))

	return len(t.base) - 1
}

// Close pops the newest frame and discards its slots.
// Closing the global frame is a programming error and panics.
func (t *Table[T]) Close() {
	n := len(t.base) - 1
	if n == 0 {
		panic("internal error: close of global frame")
	}

	clear(t.slots[t.base[n]:])
	t.slots = t.slots[:t.base[n]]
	t.base = t.base[:n]
}

// Register appends a filled slot to the newest frame and returns its id.
func (t *Table[T]) Register(v T) int {
	t.slots = append(t.slots, slot[T]{val: v, full: true})

	return len(t.slots) - 1 - t.base[len(t.base)-1]
}

// Depth returns the number of frames, including the global frame.
func (t *Table[T]) Depth() int { return len(t.base) }

// Len returns the number of slots across all frames.
func (t *Table[T]) Len() int { return len(t.slots) }

// Position returns the absolute index of slot id in frame depth.
func (t *Table[T]) Position(depth, id int) (int, error) {
	if depth < 0 || depth >= len(t.base) {
		return 0, ErrUndefinedDepth.With(
			slog.Int("depth", depth),
			slog.Int("frames", len(t.base)),
		)
	}

	end := len(t.slots)
	if depth+1 < len(t.base) {
		end = t.base[depth+1]
	}

	pos := t.base[depth] + id
	if id < 0 || pos >= end {
		return 0, ErrIllegalID.With(
			slog.Int("depth", depth),
			slog.Int("id", id),
			slog.Int("size", end-t.base[depth]),
		)
	}

	return pos, nil
}

// Peek returns the value held by a slot without emptying it.
func (t *Table[T]) Peek(depth, id int) (T, error) {
	var zero T

	pos, err := t.Position(depth, id)
	if err != nil {
		return zero, err
	}

	if !t.slots[pos].full {
		return zero, ErrSlotEmpty.With(slog.Int("depth", depth), slog.Int("id", id))
	}

	return t.slots[pos].val, nil
}

// Take returns the value held by a slot and leaves the slot empty.
func (t *Table[T]) Take(depth, id int) (T, error) {
	var zero T

	pos, err := t.Position(depth, id)
	if err != nil {
		return zero, err
	}

	s := &t.slots[pos]
	if !s.full {
		return zero, ErrSlotEmpty.With(slog.Int("depth", depth), slog.Int("id", id))
	}

	v := s.val
	*s = slot[T]{}

	return v, nil
}

// PutBack fills an empty slot with v.
func (t *Table[T]) PutBack(depth, id int, v T) error {
	pos, err := t.Position(depth, id)
	if err != nil {
		return err
	}

	if t.slots[pos].full {
		return ErrSlotNotEmpty.With(slog.Int("depth", depth), slog.Int("id", id))
	}

	t.slots[pos] = slot[T]{val: v, full: true}

	return nil
}
