// Package sched buffers timed servo commands and executes them relative
// to a synchronized baseline.
package sched

import "fmt"

// EndTarget is the sentinel target index of an end-of-sequence command.
const EndTarget uint8 = 255

// Command is a pending servo move.
type Command struct {
	// Target is the logical servo index, or EndTarget.
	Target uint8
	// Angle in degrees, unused by end-of-sequence commands.
	Angle uint8
	// Delay is the offset in milliseconds from the baseline.
	Delay uint32
}

// EndCommand creates an end-of-sequence command.
func EndCommand(delay uint32) Command {
	return Command{Target: EndTarget, Delay: delay}
}

// IsEnd indicates the command marks the end of a sequence.
func (c Command) IsEnd() bool {
	return c.Target == EndTarget
}

// MaxDelay is the largest delay DueAt can compare against a wrapping
// clock, about 24.8 days.
const MaxDelay = 1<<31 - 1

// DueAt calculates the due time against baseline. It wraps with the
// 32-bit clock.
func (c Command) DueAt(baseline uint32) uint32 {
	return baseline + c.Delay
}

// Due indicates the command is due at now. The difference is taken
// modulo 2^32 so the clock wrapping between baseline and now doesn't
// matter, as long as now is within MaxDelay of the due time.
func (c Command) Due(now, baseline uint32) bool {
	return int32(now-c.DueAt(baseline)) >= 0
}

// String implements fmt.Stringer.
func (c Command) String() string {
	if c.IsEnd() {
		return fmt.Sprintf("END D=%dms", c.Delay)
	}
	return fmt.Sprintf("PICK T=%d A=%d D=%dms", c.Target, c.Angle, c.Delay)
}
