package comm

import (
	"encoding/binary"
	"io"
)

// Packet markers.
const (
	MarkerSync    byte = 0xAA
	MarkerPick    byte = 0xBB
	MarkerGetTime byte = 0xCC
	MarkerEnd     byte = 0xDD
	MarkerStop    byte = 0xEE
	MarkerReset   byte = 0xEF
)

// SyncType is the only valid type byte of a SYNC packet.
const SyncType byte = 0x01

// Fixed packet sizes, marker included.
const (
	SyncPacketSize    = 6
	PickPacketSize    = 7
	GetTimePacketSize = 1
	EndPacketSize     = 5
	StopPacketSize    = 1
)

// DefaultResetCount is the number of angles carried by a RESET packet.
const DefaultResetCount = 18

// ResetPacketSize calculates the size of a RESET packet carrying count angles.
func ResetPacketSize(count int) int {
	return 1 + 2*count
}

// Packet is a decoded L0 packet.
type Packet interface {
	Marker() byte
	Bytes() []byte
}

// SyncPacket establishes a new time baseline.
type SyncPacket struct {
	Type byte
	Time uint32
}

// NewSyncPacket creates a valid SyncPacket.
func NewSyncPacket(t uint32) *SyncPacket {
	return &SyncPacket{Type: SyncType, Time: t}
}

// Marker implements Packet.
func (p *SyncPacket) Marker() byte { return MarkerSync }

// Bytes implements Packet.
func (p *SyncPacket) Bytes() []byte {
	b := make([]byte, SyncPacketSize)
	b[0], b[1] = MarkerSync, p.Type
	binary.BigEndian.PutUint32(b[2:], p.Time)
	return b
}

// PickPacket schedules a servo move relative to the baseline.
type PickPacket struct {
	Target byte
	Angle  byte
	Delay  uint32
}

// Marker implements Packet.
func (p *PickPacket) Marker() byte { return MarkerPick }

// Bytes implements Packet.
func (p *PickPacket) Bytes() []byte {
	b := make([]byte, PickPacketSize)
	b[0], b[1], b[2] = MarkerPick, p.Target, p.Angle
	binary.LittleEndian.PutUint32(b[3:], p.Delay)
	return b
}

// GetTimePacket queries the current device time.
type GetTimePacket struct{}

// Marker implements Packet.
func (p *GetTimePacket) Marker() byte { return MarkerGetTime }

// Bytes implements Packet.
func (p *GetTimePacket) Bytes() []byte { return []byte{MarkerGetTime} }

// EndPacket marks the end of a sequence relative to the baseline.
type EndPacket struct {
	Delay uint32
}

// Marker implements Packet.
func (p *EndPacket) Marker() byte { return MarkerEnd }

// Bytes implements Packet.
func (p *EndPacket) Bytes() []byte {
	b := make([]byte, EndPacketSize)
	b[0] = MarkerEnd
	binary.LittleEndian.PutUint32(b[1:], p.Delay)
	return b
}

// StopPacket clears pending moves and deactivates scheduling.
type StopPacket struct{}

// Marker implements Packet.
func (p *StopPacket) Marker() byte { return MarkerStop }

// Bytes implements Packet.
func (p *StopPacket) Bytes() []byte { return []byte{MarkerStop} }

// ResetPacket moves every servo immediately, Angles[i] for servo i.
type ResetPacket struct {
	Angles []int16
}

// Marker implements Packet.
func (p *ResetPacket) Marker() byte { return MarkerReset }

// Bytes implements Packet.
func (p *ResetPacket) Bytes() []byte {
	b := make([]byte, ResetPacketSize(len(p.Angles)))
	b[0] = MarkerReset
	for n, angle := range p.Angles {
		binary.BigEndian.PutUint16(b[1+n*2:], uint16(angle))
	}
	return b
}

// WritePacket writes encoded bytes of a packet.
func WritePacket(w io.Writer, pkt Packet) (int, error) {
	return w.Write(pkt.Bytes())
}
