package sched

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferCapacity(t *testing.T) {
	b := NewBuffer(2)
	assert.Equal(t, 2, b.Cap())
	require.NoError(t, b.Push(Command{Target: 1, Angle: 10, Delay: 100}))
	require.NoError(t, b.Push(EndCommand(200)))
	assert.True(t, b.Full())

	before := b.Commands()
	assert.Equal(t, ErrBufferFull, b.Push(Command{Target: 2}))
	if diff := cmp.Diff(before, b.Commands()); diff != "" {
		t.Errorf("buffer changed on overflow (-want +got):\n%s", diff)
	}

	b.Clear()
	assert.Zero(t, b.Len())
	assert.Equal(t, 2, b.Cap())
}

func TestBufferDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewBuffer(0).Cap())
}

func TestBufferRemoveAt(t *testing.T) {
	b := NewBuffer(4)
	for n := uint8(0); n < 4; n++ {
		require.NoError(t, b.Push(Command{Target: n}))
	}
	assert.Equal(t, Command{Target: 1}, b.RemoveAt(1))
	assert.Equal(t, Command{Target: 3}, b.RemoveAt(2))
	want := []Command{{Target: 0}, {Target: 2}}
	if diff := cmp.Diff(want, b.Commands()); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
	require.NoError(t, b.Push(Command{Target: 9}))
	assert.Equal(t, Command{Target: 9}, b.At(2))
}

func TestCommand(t *testing.T) {
	assert.True(t, EndCommand(5).IsEnd())
	assert.False(t, Command{Target: 254}.IsEnd())
	assert.Equal(t, uint32(1), Command{Delay: 2}.DueAt(0xffffffff))
	assert.True(t, Command{Delay: 2}.Due(1, 0xffffffff))
	assert.False(t, Command{Delay: 2}.Due(0, 0xffffffff))
	assert.False(t, Command{Delay: 2}.Due(0xffffffff, 0xffffffff))
	assert.Equal(t, "PICK T=3 A=90 D=500ms", Command{Target: 3, Angle: 90, Delay: 500}.String())
	assert.Equal(t, "END D=7ms", EndCommand(7).String())
}
