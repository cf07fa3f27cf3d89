package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrShortPacket indicates a packet is decoded from insufficient bytes.
	ErrShortPacket = errors.New("short packet")
	// ErrClosed indicates the client has stopped.
	ErrClosed = errors.New("closed")
	// ErrAngleRange indicates an angle outside 0..180 degrees.
	ErrAngleRange = errors.New("angle must be in 0-180 degrees")
)

// SyncTypeError indicates a SYNC packet with an unexpected type byte.
// The byte stream is considered corrupted.
type SyncTypeError struct {
	Type byte
}

// Error implements error.
func (e *SyncTypeError) Error() string {
	return fmt.Sprintf("unexpected sync packet type 0x%02x", e.Type)
}

// MarkerError indicates an unknown packet marker.
type MarkerError struct {
	Marker byte
}

// Error implements error.
func (e *MarkerError) Error() string {
	return fmt.Sprintf("unknown packet marker 0x%02x", e.Marker)
}

// TargetError indicates an invalid servo index.
type TargetError struct {
	Target int
}

// Error implements error.
func (e *TargetError) Error() string {
	return fmt.Sprintf("invalid target %d", e.Target)
}

// DeviceError is the fatal error reported by the firmware. The device
// stops processing packets until it's restarted.
type DeviceError struct {
	Message string
}

// Error implements error.
func (e *DeviceError) Error() string {
	return "device halted: " + e.Message
}
