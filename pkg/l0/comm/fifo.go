package comm

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"
)

// FIFO buffers bytes received from a ReadWriter (usually a serial port)
// so they can be framed by a Parser without blocking. Writes go straight
// to the ReadWriter.
type FIFO struct {
	ReadWriter io.ReadWriter
	// OnData is called from the reading goroutine after new bytes arrive.
	OnData func()

	recv      Buffer
	recvLock  sync.Mutex
	writeLock sync.Mutex
}

// NewFIFO creates a FIFO.
func NewFIFO(rw io.ReadWriter) *FIFO {
	return &FIFO{ReadWriter: rw}
}

// Available implements ByteSource.
func (f *FIFO) Available() int {
	f.recvLock.Lock()
	defer f.recvLock.Unlock()
	return f.recv.Available()
}

// Peek implements ByteSource.
func (f *FIFO) Peek() (byte, error) {
	f.recvLock.Lock()
	defer f.recvLock.Unlock()
	return f.recv.Peek()
}

// ReadByte implements ByteSource.
func (f *FIFO) ReadByte() (byte, error) {
	f.recvLock.Lock()
	defer f.recvLock.Unlock()
	return f.recv.ReadByte()
}

// Write implements io.Writer.
func (f *FIFO) Write(p []byte) (int, error) {
	f.writeLock.Lock()
	defer f.writeLock.Unlock()
	return f.ReadWriter.Write(p)
}

// Run receives bytes in the background until ctx is done or reading fails.
func (f *FIFO) Run(ctx context.Context) error {
	chunkCh, errCh := make(chan []byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go f.readLoop(subCtx, chunkCh, errCh)
	for {
		select {
		case chunk := <-chunkCh:
			f.recvLock.Lock()
			f.recv.Write(chunk)
			f.recvLock.Unlock()
			glog.V(5).Infof("RECV % x", chunk)
			if fn := f.OnData; fn != nil {
				fn()
			}
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *FIFO) readLoop(ctx context.Context, chunkCh chan []byte, errCh chan error) {
	buf := make([]byte, 256)
	for {
		n, err := f.ReadWriter.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case chunkCh <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}
