package comm

import "io"

// ByteSource is a stream of received bytes which can be inspected
// before being consumed.
type ByteSource interface {
	// Available returns the number of bytes which can be read without blocking.
	Available() int
	// Peek returns the next byte without consuming it.
	Peek() (byte, error)
	// ReadByte consumes the next byte.
	ReadByte() (byte, error)
}

// Buffer is an in-memory ByteSource. Bytes written to it become available
// for reading.
type Buffer struct {
	data []byte
}

// NewBuffer creates a Buffer with initial content.
func NewBuffer(p ...byte) *Buffer {
	return &Buffer{data: append([]byte(nil), p...)}
}

// Available implements ByteSource.
func (b *Buffer) Available() int {
	return len(b.data)
}

// Peek implements ByteSource.
func (b *Buffer) Peek() (byte, error) {
	if len(b.data) == 0 {
		return 0, io.EOF
	}
	return b.data[0], nil
}

// ReadByte implements ByteSource.
func (b *Buffer) ReadByte() (byte, error) {
	if len(b.data) == 0 {
		return 0, io.EOF
	}
	c := b.data[0]
	b.data = b.data[1:]
	if len(b.data) == 0 {
		b.data = nil
	}
	return c, nil
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// Bytes returns the unread bytes.
func (b *Buffer) Bytes() []byte {
	return b.data
}
