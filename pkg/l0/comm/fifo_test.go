package comm

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeReadWriter struct {
	io.Reader
	written bytes.Buffer
}

func (p *pipeReadWriter) Write(b []byte) (int, error) {
	return p.written.Write(b)
}

func TestFIFO(t *testing.T) {
	r, w := io.Pipe()
	rw := &pipeReadWriter{Reader: r}
	fifo := NewFIFO(rw)
	dataCh := make(chan struct{}, 16)
	fifo.OnData = func() { dataCh <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- fifo.Run(ctx) }()

	var p Parser
	var rec packetRecorder
	raw := (&PickPacket{Target: 2, Angle: 30, Delay: 10}).Bytes()

	_, err := w.Write(raw[:3])
	require.NoError(t, err)
	<-dataCh
	n, err := p.Drain(fifo, &rec)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 3, fifo.Available())

	_, err = w.Write(raw[3:])
	require.NoError(t, err)
	require.Eventually(t, func() bool { return fifo.Available() == len(raw) }, time.Second, time.Millisecond)
	n, err = p.Drain(fifo, &rec)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []Packet{&PickPacket{Target: 2, Angle: 30, Delay: 10}}, rec.packets)

	_, err = fifo.Write([]byte("DONE\n"))
	require.NoError(t, err)
	assert.Equal(t, "DONE\n", rw.written.String())

	w.CloseWithError(io.ErrUnexpectedEOF)
	select {
	case err := <-errCh:
		assert.Equal(t, io.ErrUnexpectedEOF, err)
	case <-time.After(time.Second):
		t.Fatal("FIFO.Run didn't exit")
	}
}

func TestFIFOCancel(t *testing.T) {
	r, _ := io.Pipe()
	fifo := NewFIFO(&pipeReadWriter{Reader: r})
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- fifo.Run(ctx) }()
	cancel()
	select {
	case err := <-errCh:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("FIFO.Run didn't exit")
	}
}
