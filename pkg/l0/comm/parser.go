package comm

import (
	"encoding/binary"
)

// PacketHandler is called when a packet is framed.
type PacketHandler interface {
	HandlePacket(Packet)
}

// HandlePacketFunc is func type of PacketHandler.
type HandlePacketFunc func(Packet)

// HandlePacket implements PacketHandler.
func (f HandlePacketFunc) HandlePacket(pkt Packet) {
	f(pkt)
}

// Parser frames packets out of a ByteSource.
//
// A packet is only consumed once all of its bytes are available. An
// incomplete packet or an unknown marker at the front of the stream
// stops the current pass without consuming anything, so the next pass
// resumes at the same byte.
type Parser struct {
	// ResetCount is the number of angles in a RESET packet,
	// DefaultResetCount if zero.
	ResetCount int
}

func (p *Parser) resetCount() int {
	if p.ResetCount > 0 {
		return p.ResetCount
	}
	return DefaultResetCount
}

// PacketSize returns the total size of the packet starting with marker,
// or 0 if the marker is unknown.
func (p *Parser) PacketSize(marker byte) int {
	// checked in processing priority order.
	switch marker {
	case MarkerStop:
		return StopPacketSize
	case MarkerReset:
		return ResetPacketSize(p.resetCount())
	case MarkerPick:
		return PickPacketSize
	case MarkerEnd:
		return EndPacketSize
	case MarkerGetTime:
		return GetTimePacketSize
	case MarkerSync:
		return SyncPacketSize
	}
	return 0
}

// Drain frames and handles all packets currently available in src.
// It returns the number of packets handled. The only error it returns
// apart from source errors is *SyncTypeError, after which the stream
// can no longer be trusted.
func (p *Parser) Drain(src ByteSource, h PacketHandler) (n int, err error) {
	for src.Available() > 0 {
		marker, err := src.Peek()
		if err != nil {
			return n, err
		}
		size := p.PacketSize(marker)
		if size == 0 || src.Available() < size {
			return n, nil
		}
		raw := make([]byte, size)
		for i := range raw {
			if raw[i], err = src.ReadByte(); err != nil {
				return n, err
			}
		}
		pkt, err := p.Decode(raw)
		if err != nil {
			return n, err
		}
		if h != nil {
			h.HandlePacket(pkt)
		}
		n++
	}
	return n, nil
}

// Decode decodes a complete packet.
func (p *Parser) Decode(raw []byte) (Packet, error) {
	if len(raw) == 0 {
		return nil, ErrShortPacket
	}
	size := p.PacketSize(raw[0])
	if size == 0 {
		return nil, &MarkerError{Marker: raw[0]}
	}
	if len(raw) < size {
		return nil, ErrShortPacket
	}
	switch raw[0] {
	case MarkerStop:
		return &StopPacket{}, nil
	case MarkerReset:
		pkt := &ResetPacket{Angles: make([]int16, p.resetCount())}
		for n := range pkt.Angles {
			pkt.Angles[n] = int16(binary.BigEndian.Uint16(raw[1+n*2:]))
		}
		return pkt, nil
	case MarkerPick:
		return &PickPacket{
			Target: raw[1],
			Angle:  raw[2],
			Delay:  binary.LittleEndian.Uint32(raw[3:]),
		}, nil
	case MarkerEnd:
		return &EndPacket{Delay: binary.LittleEndian.Uint32(raw[1:])}, nil
	case MarkerGetTime:
		return &GetTimePacket{}, nil
	default: // MarkerSync
		if raw[1] != SyncType {
			return nil, &SyncTypeError{Type: raw[1]}
		}
		return &SyncPacket{Type: raw[1], Time: binary.BigEndian.Uint32(raw[2:])}, nil
	}
}
