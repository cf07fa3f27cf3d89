package sched

import "errors"

// DefaultCapacity is the default number of commands which can be pending.
//
// The firmware this protocol was designed against only kept a single
// pending command, forcing the host to stream picks one at a time. The
// host streams a rolling window of moves ahead of time, so the buffer is
// sized for that window instead.
const DefaultCapacity = 64

// ErrBufferFull indicates the buffer has no free slot.
var ErrBufferFull = errors.New("command buffer full")

// Buffer is a bounded, ordered list of commands.
type Buffer struct {
	commands []Command
}

// NewBuffer creates a Buffer holding at most capacity commands.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{commands: make([]Command, 0, capacity)}
}

// Len returns the number of buffered commands.
func (b *Buffer) Len() int {
	return len(b.commands)
}

// Cap returns the capacity.
func (b *Buffer) Cap() int {
	return cap(b.commands)
}

// Full indicates no more command can be pushed.
func (b *Buffer) Full() bool {
	return len(b.commands) >= cap(b.commands)
}

// Push appends a command. The buffer is left unchanged when it's full.
func (b *Buffer) Push(cmd Command) error {
	if b.Full() {
		return ErrBufferFull
	}
	b.commands = append(b.commands, cmd)
	return nil
}

// At returns the command at index i.
func (b *Buffer) At(i int) Command {
	return b.commands[i]
}

// RemoveAt removes the command at index i, keeping the order of the rest.
func (b *Buffer) RemoveAt(i int) Command {
	cmd := b.commands[i]
	copy(b.commands[i:], b.commands[i+1:])
	b.commands = b.commands[:len(b.commands)-1]
	return cmd
}

// Clear removes all commands.
func (b *Buffer) Clear() {
	b.commands = b.commands[:0]
}

// Commands returns a copy of buffered commands.
func (b *Buffer) Commands() []Command {
	return append([]Command(nil), b.commands...)
}
