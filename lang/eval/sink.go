package eval

import (
	"io"
	"strconv"
)

// Sink receives the value of each print statement in order.
// An error returned by Print stops the evaluation.
type Sink interface {
	Print(v int32) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(v int32) error

// Print calls f(v).
func (f SinkFunc) Print(v int32) error { return f(v) }

// WriterSink writes each value as a decimal line.
type WriterSink struct {
	w   io.Writer
	buf []byte
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Print writes v followed by a newline.
func (s *WriterSink) Print(v int32) error {
	s.buf = strconv.AppendInt(s.buf[:0], int64(v), 10)
	s.buf = append(s.buf, '\n')

	_, err := s.w.Write(s.buf)

	return err
}

// Collector records printed values.
type Collector struct {
	Values []int32
}

// Print appends v to c.Values.
func (c *Collector) Print(v int32) error {
	c.Values = append(c.Values, v)

	return nil
}

// Ints returns the collected values widened to int.
func (c *Collector) Ints() []int {
	out := make([]int, len(c.Values))
	for i, v := range c.Values {
		out[i] = int(v)
	}

	return out
}

// Discard is a [Sink] that drops every value.
var Discard Sink = discard{}

type discard struct{}

func (discard) Print(int32) error { return nil }
