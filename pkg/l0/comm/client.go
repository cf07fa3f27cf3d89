package comm

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/golang/glog"
)

// EndTarget is the reserved target index marking the end of a sequence.
const EndTarget = 255

// MaxAngle is the largest servo angle in degrees.
const MaxAngle = 180

// TimeResult is the result of a time query.
type TimeResult struct {
	Err  error
	Time uint32
}

// TimeQuery represents a GET_TIME request waiting for the reply.
type TimeQuery struct {
	resultCh chan TimeResult
	next     *TimeQuery
}

// ResultChan returns the chan to retrieve result.
func (q *TimeQuery) ResultChan() <-chan TimeResult {
	return q.resultCh
}

// Client provides L1 side operations over a ReadWriter connected to
// the firmware.
type Client struct {
	ReadWriter io.ReadWriter

	statusCh  chan Status
	head      *TimeQuery
	tail      *TimeQuery
	closed    bool
	lock      sync.Mutex
	writeLock sync.Mutex
}

// StatusBufferSize is the number of status lines buffered for readers
// of StatusChan.
const StatusBufferSize = 256

// NewClient creates client and wraps the ReadWriter.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{
		ReadWriter: rw,
		statusCh:   make(chan Status, StatusBufferSize),
	}
}

// StatusChan retrieves status lines other than time replies.
// It's closed when Run exits.
func (c *Client) StatusChan() <-chan Status {
	return c.statusCh
}

// Send sends a packet.
func (c *Client) Send(pkt Packet) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	_, err := WritePacket(c.ReadWriter, pkt)
	if err == nil {
		glog.V(3).Infof("SEND % x", pkt.Bytes())
	}
	return err
}

// Sync sets the baseline of the firmware and clears pending moves.
func (c *Client) Sync(t uint32) error {
	return c.Send(NewSyncPacket(t))
}

// Pick schedules a servo move at delay milliseconds after the baseline.
func (c *Client) Pick(target, angle int, delay uint32) error {
	if angle < 0 || angle > MaxAngle {
		return ErrAngleRange
	}
	if target < 0 || target >= EndTarget {
		return &TargetError{Target: target}
	}
	return c.Send(&PickPacket{Target: byte(target), Angle: byte(angle), Delay: delay})
}

// End schedules the end of sequence at delay milliseconds after the baseline.
func (c *Client) End(delay uint32) error {
	return c.Send(&EndPacket{Delay: delay})
}

// Stop clears pending moves and deactivates scheduling.
func (c *Client) Stop() error {
	return c.Send(&StopPacket{})
}

// Reset moves all servos to the angles immediately.
func (c *Client) Reset(angles []int16) error {
	return c.Send(&ResetPacket{Angles: angles})
}

// QueryTime sends GET_TIME and returns a TimeQuery for the reply.
func (c *Client) QueryTime() *TimeQuery {
	q := &TimeQuery{resultCh: make(chan TimeResult, 1)}
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		q.resultCh <- TimeResult{Err: ErrClosed}
		return q
	}
	if err := c.Send(&GetTimePacket{}); err != nil {
		q.resultCh <- TimeResult{Err: err}
		return q
	}
	if c.head == nil {
		c.head = q
	} else {
		c.tail.next = q
	}
	c.tail = q
	return q
}

// Time queries the current firmware time.
func (c *Client) Time(ctx context.Context) (uint32, error) {
	q := c.QueryTime()
	select {
	case res := <-q.ResultChan():
		return res.Time, res.Err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// WaitStatus waits until a status of the kind is received. Other status
// lines are skipped, except a fatal error which fails the wait with
// *DeviceError.
func (c *Client) WaitStatus(ctx context.Context, kind StatusKind) (Status, error) {
	for {
		select {
		case st, ok := <-c.statusCh:
			if !ok {
				return Status{}, ErrClosed
			}
			if st.Kind == kind {
				return st, nil
			}
			if st.Kind == StatusFatal {
				return st, &DeviceError{Message: st.Message}
			}
			glog.V(2).Infof("skip status %s: %q", st.Kind, st.Line)
		case <-ctx.Done():
			return Status{}, ctx.Err()
		}
	}
}

// Run reads status lines until ctx is done or reading fails.
func (c *Client) Run(ctx context.Context) error {
	defer c.shutdown()
	scan := bufio.NewScanner(c.ReadWriter)
	lineCh, errCh := make(chan string), make(chan error, 1)
	go func() {
		defer close(lineCh)
		for scan.Scan() {
			select {
			case lineCh <- scan.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			errCh <- err
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case line, ok := <-lineCh:
			if !ok {
				select {
				case err := <-errCh:
					return err
				default:
					return io.EOF
				}
			}
			c.handleLine(line)
		}
	}
}

func (c *Client) handleLine(line string) {
	st := ParseStatus(line)
	glog.V(3).Infof("RECV %s %q", st.Kind, st.Line)
	if st.Kind == StatusTime {
		c.lock.Lock()
		q := c.head
		if q != nil {
			if c.head = q.next; c.head == nil {
				c.tail = nil
			}
			q.next = nil
		}
		c.lock.Unlock()
		if q != nil {
			q.resultCh <- TimeResult{Time: st.Time}
			return
		}
	}
	c.queueStatus(st)
}

// queueStatus never blocks the reader. With the buffer full, debug and
// unknown lines are dropped, other lines replace the oldest one.
func (c *Client) queueStatus(st Status) {
	for {
		select {
		case c.statusCh <- st:
			return
		default:
		}
		if st.Kind == StatusDebug || st.Kind == StatusUnknown {
			glog.V(1).Infof("status dropped: %q", st.Line)
			return
		}
		select {
		case old := <-c.statusCh:
			glog.Warningf("status dropped: %q", old.Line)
		default:
		}
	}
}

func (c *Client) shutdown() {
	c.lock.Lock()
	head := c.head
	c.head, c.tail, c.closed = nil, nil, true
	c.lock.Unlock()
	for ; head != nil; head = head.next {
		head.resultCh <- TimeResult{Err: ErrClosed}
	}
	close(c.statusCh)
}
