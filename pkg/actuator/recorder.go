package actuator

import (
	"sync"

	"github.com/golang/glog"
)

// Move is a servo move made through a Recorder.
type Move struct {
	Index int
	Angle int
	Pulse int
}

// Recorder is a Driver which only records moves. It's used to simulate
// the hardware.
type Recorder struct {
	Boards []uint8

	pulses  PulseRange
	mapping Mapping
	moves   []Move
	lock    sync.Mutex
}

// NewRecorder creates a Recorder.
func NewRecorder() *Recorder {
	r := &Recorder{pulses: DefaultPulseRange()}
	r.mapping.Reset(0)
	return r
}

// Init implements Driver.
func (r *Recorder) Init(addrs []uint8) error {
	if len(addrs) > MaxBoards {
		addrs = addrs[:MaxBoards]
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Boards = append([]uint8(nil), addrs...)
	r.mapping.Reset(len(r.Boards))
	return nil
}

// Map implements Driver.
func (r *Recorder) Map(index, board, channel int) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.mapping.Set(index, board, channel)
}

// MoveTo implements Driver.
func (r *Recorder) MoveTo(index, angle int) error {
	r.lock.Lock()
	if _, _, err := r.mapping.Lookup(index); err != nil {
		r.lock.Unlock()
		return err
	}
	m := Move{Index: index, Angle: angle, Pulse: r.AngleToPulse(angle)}
	r.moves = append(r.moves, m)
	r.lock.Unlock()
	glog.V(2).Infof("servo %d -> %d° (pulse %d)", index, angle, m.Pulse)
	return nil
}

// AngleToPulse implements Driver.
func (r *Recorder) AngleToPulse(angle int) int {
	return r.pulses.AngleToPulse(angle)
}

// Lookup returns the board/channel a servo is mapped to.
func (r *Recorder) Lookup(index int) (board, channel int, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.mapping.Lookup(index)
}

// Moves returns recorded moves.
func (r *Recorder) Moves() []Move {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Move(nil), r.moves...)
}

// Reset forgets recorded moves.
func (r *Recorder) Reset() {
	r.lock.Lock()
	r.moves = nil
	r.lock.Unlock()
}
