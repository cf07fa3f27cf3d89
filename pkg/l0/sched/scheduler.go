package sched

import (
	"errors"
	"strconv"
)

// State is the scheduling state.
type State int

const (
	// StateIdle means no baseline is active and commands are only buffered.
	StateIdle State = iota
	// StateActive means due commands are executed against the baseline.
	StateActive
	// StateHalted is absorbing: nothing is buffered or executed any more.
	StateHalted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateHalted:
		return "halted"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// ErrHalted indicates the scheduler is halted.
var ErrHalted = errors.New("scheduler halted")

// Executor carries out commands when they become due.
type Executor interface {
	// Execute moves a servo.
	Execute(Command)
	// SequenceDone is called when an end-of-sequence command is due.
	SequenceDone()
}

// Scheduler executes buffered commands at baseline + delay.
type Scheduler struct {
	buffer   *Buffer
	baseline uint32
	state    State
}

// New creates a Scheduler with the buffer capacity.
func New(capacity int) *Scheduler {
	return &Scheduler{buffer: NewBuffer(capacity)}
}

// State returns the current state.
func (s *Scheduler) State() State {
	return s.state
}

// Active indicates due commands are being executed.
func (s *Scheduler) Active() bool {
	return s.state == StateActive
}

// Baseline returns the baseline set by the last Sync.
func (s *Scheduler) Baseline() uint32 {
	return s.baseline
}

// Pending returns a copy of buffered commands in buffer order.
func (s *Scheduler) Pending() []Command {
	return s.buffer.Commands()
}

// Capacity returns the buffer capacity.
func (s *Scheduler) Capacity() int {
	return s.buffer.Cap()
}

// Sync establishes a new baseline, discards all buffered commands and
// activates execution.
func (s *Scheduler) Sync(baseline uint32) error {
	if s.state == StateHalted {
		return ErrHalted
	}
	s.buffer.Clear()
	s.baseline, s.state = baseline, StateActive
	return nil
}

// Stop discards all buffered commands and deactivates execution.
func (s *Scheduler) Stop() {
	s.buffer.Clear()
	if s.state != StateHalted {
		s.state = StateIdle
	}
}

// Halt stops everything permanently.
func (s *Scheduler) Halt() {
	s.buffer.Clear()
	s.state = StateHalted
}

// Enqueue buffers a command. It returns ErrBufferFull without changing
// the buffer if there's no free slot.
func (s *Scheduler) Enqueue(cmd Command) error {
	if s.state == StateHalted {
		return ErrHalted
	}
	return s.buffer.Push(cmd)
}

// Update executes every buffered command due at now and returns the
// number of servo moves executed. Commands are scanned in buffer order;
// once an end-of-sequence command is due, execution is deactivated and
// the scan stops, leaving the rest buffered.
func (s *Scheduler) Update(now uint32, ex Executor) (executed int) {
	if s.state != StateActive {
		return
	}
	for i := 0; i < s.buffer.Len(); {
		cmd := s.buffer.At(i)
		if !cmd.Due(now, s.baseline) {
			i++
			continue
		}
		s.buffer.RemoveAt(i)
		if cmd.IsEnd() {
			s.state = StateIdle
			ex.SequenceDone()
			return
		}
		ex.Execute(cmd)
		executed++
	}
	return
}
