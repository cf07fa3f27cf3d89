package comm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type packetRecorder struct {
	packets []Packet
}

func (r *packetRecorder) HandlePacket(pkt Packet) {
	r.packets = append(r.packets, pkt)
}

func concat(pkts ...Packet) []byte {
	var b []byte
	for _, pkt := range pkts {
		b = append(b, pkt.Bytes()...)
	}
	return b
}

func TestParserDrain(t *testing.T) {
	angles := make([]int16, DefaultResetCount)
	for n := range angles {
		angles[n] = int16(n*10 - 50)
	}
	testCases := []struct {
		name   string
		in     []Packet
		expect []Packet
	}{
		{
			name:   "sync",
			in:     []Packet{NewSyncPacket(1000)},
			expect: []Packet{&SyncPacket{Type: SyncType, Time: 1000}},
		},
		{
			name:   "pick",
			in:     []Packet{&PickPacket{Target: 3, Angle: 90, Delay: 500}},
			expect: []Packet{&PickPacket{Target: 3, Angle: 90, Delay: 500}},
		},
		{
			name:   "reset",
			in:     []Packet{&ResetPacket{Angles: angles}},
			expect: []Packet{&ResetPacket{Angles: angles}},
		},
		{
			name: "mixed",
			in: []Packet{
				&GetTimePacket{},
				NewSyncPacket(0xdeadbeef),
				&PickPacket{Target: 17, Angle: 180, Delay: 0xffffffff},
				&EndPacket{Delay: 2000},
				&StopPacket{},
			},
			expect: []Packet{
				&GetTimePacket{},
				&SyncPacket{Type: SyncType, Time: 0xdeadbeef},
				&PickPacket{Target: 17, Angle: 180, Delay: 0xffffffff},
				&EndPacket{Delay: 2000},
				&StopPacket{},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Parser
			var rec packetRecorder
			src := NewBuffer(concat(tc.in...)...)
			n, err := p.Drain(src, &rec)
			require.NoError(t, err)
			assert.Equal(t, len(tc.expect), n)
			assert.Equal(t, tc.expect, rec.packets)
			assert.Zero(t, src.Available())
		})
	}
}

func TestParserPartialArrival(t *testing.T) {
	var p Parser
	var rec packetRecorder
	raw := concat(&PickPacket{Target: 1, Angle: 45, Delay: 300}, &EndPacket{Delay: 900})
	src := NewBuffer()
	for i, b := range raw {
		src.Write([]byte{b})
		_, err := p.Drain(src, &rec)
		require.NoError(t, err)
		switch {
		case i+1 < PickPacketSize:
			require.Empty(t, rec.packets)
			require.Equal(t, i+1, src.Available(), "incomplete packet must not be consumed")
		case i+1 < len(raw):
			require.Len(t, rec.packets, 1)
		}
	}
	require.Equal(t, []Packet{
		&PickPacket{Target: 1, Angle: 45, Delay: 300},
		&EndPacket{Delay: 900},
	}, rec.packets)
}

func TestParserUnknownMarker(t *testing.T) {
	var p Parser
	var rec packetRecorder
	src := NewBuffer(append([]byte{0xee, 0x42}, (&GetTimePacket{}).Bytes()...)...)
	n, err := p.Drain(src, &rec)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []Packet{&StopPacket{}}, rec.packets)
	assert.Equal(t, []byte{0x42, 0xcc}, src.Bytes(), "unknown marker must stay in the stream")

	// a second pass makes no progress either.
	n, err = p.Drain(src, &rec)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestParserSyncTypeError(t *testing.T) {
	var p Parser
	var rec packetRecorder
	src := NewBuffer(concat(
		&SyncPacket{Type: 0x02, Time: 1000},
		&PickPacket{Target: 1, Angle: 10, Delay: 10},
	)...)
	n, err := p.Drain(src, &rec)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, &SyncTypeError{Type: 0x02}, err)
	assert.Empty(t, rec.packets)
}

func TestParserResetCount(t *testing.T) {
	p := Parser{ResetCount: 2}
	var rec packetRecorder
	src := NewBuffer(0xef, 0x00, 0x5a)
	n, err := p.Drain(src, &rec)
	require.NoError(t, err)
	assert.Zero(t, n)
	src.Write([]byte{0xff, 0x9c})
	n, err = p.Drain(src, &rec)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []Packet{&ResetPacket{Angles: []int16{90, -100}}}, rec.packets)
}

func TestParserDecode(t *testing.T) {
	var p Parser
	_, err := p.Decode(nil)
	assert.Equal(t, ErrShortPacket, err)
	_, err = p.Decode([]byte{0x11})
	assert.Equal(t, &MarkerError{Marker: 0x11}, err)
	_, err = p.Decode([]byte{0xbb, 1, 2})
	assert.Equal(t, ErrShortPacket, err)
}
