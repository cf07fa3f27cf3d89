// Package actuator drives servos attached to PWM boards.
package actuator

import (
	"errors"
	"fmt"
)

// Servo and PWM limits.
const (
	MaxBoards   = 2
	MaxServos   = 18
	MaxChannels = 16
	MaxAngle    = 180

	DefaultFrequency = 60   // Hz
	DefaultMinMicros = 400  // pulse width at 0 degrees
	DefaultMaxMicros = 2600 // pulse width at MaxAngle
)

// Driver moves logical servos.
type Driver interface {
	// Init initializes the boards at the I2C addresses.
	Init(addrs []uint8) error
	// Map assigns a logical servo to a board and channel.
	Map(index, board, channel int) error
	// MoveTo moves a logical servo to an angle in degrees.
	MoveTo(index, angle int) error
	// AngleToPulse converts an angle to the PWM value sent to the board.
	AngleToPulse(angle int) int
}

// ErrNotInitialized indicates Init has not been called.
var ErrNotInitialized = errors.New("driver not initialized")

// ServoError indicates an invalid logical servo index.
type ServoError struct {
	Index int
}

// Error implements error.
func (e *ServoError) Error() string {
	return fmt.Sprintf("invalid servo %d", e.Index)
}

// MappingError indicates an invalid board/channel mapping.
type MappingError struct {
	Index   int
	Board   int
	Channel int
}

// Error implements error.
func (e *MappingError) Error() string {
	return fmt.Sprintf("invalid mapping servo %d -> board %d, channel %d", e.Index, e.Board, e.Channel)
}

// PulseRange converts angles into 12-bit PWM counts.
type PulseRange struct {
	Min int
	Max int
}

// NewPulseRange calculates the counts of the min/max pulse widths at
// the PWM frequency.
func NewPulseRange(freq, minMicros, maxMicros int) PulseRange {
	period := 1000000 / freq
	return PulseRange{
		Min: mapRange(minMicros, 0, period, 0, 4096),
		Max: mapRange(maxMicros, 0, period, 0, 4096),
	}
}

// DefaultPulseRange is the range of the default servo setup.
func DefaultPulseRange() PulseRange {
	return NewPulseRange(DefaultFrequency, DefaultMinMicros, DefaultMaxMicros)
}

// AngleToPulse converts an angle, clamped to 0..MaxAngle, into counts.
func (r PulseRange) AngleToPulse(angle int) int {
	if angle < 0 {
		angle = 0
	}
	if angle > MaxAngle {
		angle = MaxAngle
	}
	return mapRange(angle, 0, MaxAngle, r.Min, r.Max)
}

// mapRange linearly maps x with integer truncation.
func mapRange(x, inMin, inMax, outMin, outMax int) int {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Mapping is the logical servo to board/channel table.
type Mapping struct {
	boards  int
	board   [MaxServos]int
	channel [MaxServos]int
}

// Reset sets the default mapping: servo N on board 0, channel N.
// Servos beyond the channels of one board fall back to channel 0.
func (m *Mapping) Reset(boards int) {
	m.boards = boards
	for s := range m.board {
		m.board[s] = 0
		if s < MaxChannels {
			m.channel[s] = s
		} else {
			m.channel[s] = 0
		}
	}
}

// Set overrides the mapping of one servo. Invalid mappings are rejected
// and leave the table unchanged.
func (m *Mapping) Set(index, board, channel int) error {
	if index < 0 || index >= MaxServos ||
		board < 0 || board >= m.boards ||
		channel < 0 || channel >= MaxChannels {
		return &MappingError{Index: index, Board: board, Channel: channel}
	}
	m.board[index], m.channel[index] = board, channel
	return nil
}

// Lookup finds the board and channel of a servo.
func (m *Mapping) Lookup(index int) (board, channel int, err error) {
	if index < 0 || index >= MaxServos {
		return 0, 0, &ServoError{Index: index}
	}
	return m.board[index], m.channel[index], nil
}
