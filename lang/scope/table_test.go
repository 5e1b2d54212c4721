package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_New(t *testing.T) {
	tab := New[int]()

	assert.Equal(t, 1, tab.Depth())
	assert.Equal(t, 0, tab.Len())
	assert.Equal(t, 1, tab.Open(), "first frame above global")
}

func TestTable_RegisterAndPeek(t *testing.T) {
	tab := New[string]()

	require.Equal(t, 0, tab.Register("a"))
	require.Equal(t, 1, tab.Register("b"))

	f := tab.Open()
	require.Equal(t, 0, tab.Register("c"), "ids restart in a new frame")

	tests := []struct {
		name  string
		depth int
		id    int
		want  string
	}{
		{"global_first", 0, 0, "a"},
		{"global_second", 0, 1, "b"},
		{"frame_first", f, 0, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tab.Peek(tt.depth, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_Position_Errors(t *testing.T) {
	tab := New[int]()
	tab.Register(10)
	tab.Register(11)
	tab.Open()
	tab.Register(20)

	tests := []struct {
		name   string
		depth  int
		id     int
		target error
	}{
		{"depth_past_top", 2, 0, ErrUndefinedDepth},
		{"negative_depth", -1, 0, ErrUndefinedDepth},
		{"id_into_next_frame", 0, 2, ErrIllegalID},
		{"id_past_end", 1, 1, ErrIllegalID},
		{"negative_id", 0, -1, ErrIllegalID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tab.Position(tt.depth, tt.id)
			require.ErrorIs(t, err, tt.target)
			require.ErrorIs(t, err, ErrScope)
		})
	}

	pos, err := tab.Position(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
}

func TestTable_TakePutBack(t *testing.T) {
	tab := New[int]()
	id := tab.Register(7)

	v, err := tab.Take(0, id)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = tab.Take(0, id)
	require.ErrorIs(t, err, ErrSlotEmpty, "second take")

	_, err = tab.Peek(0, id)
	require.ErrorIs(t, err, ErrSlotEmpty, "peek of taken slot")

	require.NoError(t, tab.PutBack(0, id, 8))

	err = tab.PutBack(0, id, 9)
	require.ErrorIs(t, err, ErrSlotNotEmpty)

	v, err = tab.Peek(0, id)
	require.NoError(t, err)
	assert.Equal(t, 8, v)
}

func TestTable_Close_RestoresLength(t *testing.T) {
	tab := New[int]()
	tab.Register(1)

	before := tab.Len()

	outer := tab.Open()
	tab.Register(2)
	tab.Register(3)

	inner := tab.Open()
	tab.Register(4)
	assert.Equal(t, outer+1, inner)
	assert.Equal(t, 3, tab.Depth())

	tab.Close()
	assert.Equal(t, before+2, tab.Len())

	tab.Close()
	assert.Equal(t, before, tab.Len())
	assert.Equal(t, 1, tab.Depth())

	_, err := tab.Peek(outer, 0)
	require.ErrorIs(t, err, ErrUndefinedDepth, "closed frame is gone")
}

func TestTable_Close_Global_Panics(t *testing.T) {
	tab := New[int]()

	assert.Panics(t, func() { tab.Close() })
}

func TestTable_OuterFrameReachableFromInner(t *testing.T) {
	tab := New[int]()

	f1 := tab.Open()
	tab.Register(100)

	f2 := tab.Open()
	tab.Register(200)

	// Frame f1 stays addressable while f2 is open.
	v, err := tab.Peek(f1, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	v, err = tab.Peek(f2, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, v)
}
