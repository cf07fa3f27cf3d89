package remote

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/picker/pkg/actuator"
	"github.com/robotalks/picker/pkg/clock"
	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l0/sched"
)

type remoteTestEnv struct {
	t      *testing.T
	in     *comm.Buffer
	out    bytes.Buffer
	driver *actuator.Recorder
	clock  *clock.Manual
	remote *Remote
}

func newRemoteTestEnv(t *testing.T, conf *Config) *remoteTestEnv {
	e := &remoteTestEnv{
		t:      t,
		in:     comm.NewBuffer(),
		driver: actuator.NewRecorder(),
		clock:  clock.NewManual(0),
	}
	e.remote = New(conf, e.in, &e.out, e.driver, e.clock)
	require.NoError(t, e.remote.Begin([]uint8{0x40, 0x41}))
	return e
}

func (e *remoteTestEnv) send(pkts ...comm.Packet) {
	for _, pkt := range pkts {
		_, err := comm.WritePacket(e.in, pkt)
		require.NoError(e.t, err)
	}
}

func (e *remoteTestEnv) at(now uint32) {
	e.clock.Set(now)
	e.remote.Handle()
}

// lines returns status lines written since last call.
func (e *remoteTestEnv) lines() []string {
	text := strings.TrimRight(e.out.String(), "\r\n")
	e.out.Reset()
	if text == "" {
		return nil
	}
	return strings.Split(text, "\r\n")
}

func move(index, angle int) actuator.Move {
	return actuator.Move{Index: index, Angle: angle, Pulse: actuator.DefaultPulseRange().AngleToPulse(angle)}
}

func TestRemotePickAtDueTime(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	e.send(comm.NewSyncPacket(1000), &comm.PickPacket{Target: 3, Angle: 90, Delay: 500})
	e.at(1000)
	assert.Equal(t, sched.StateActive, e.remote.State())
	assert.Equal(t, uint32(1000), e.remote.Baseline())
	assert.Len(t, e.remote.Pending(), 1)

	e.at(1499)
	assert.Empty(t, e.driver.Moves())
	e.at(1500)
	assert.Equal(t, []actuator.Move{move(3, 90)}, e.driver.Moves())
	assert.Empty(t, e.remote.Pending())
	e.at(1600)
	assert.Len(t, e.driver.Moves(), 1)
	assert.Empty(t, e.lines())
}

func TestRemoteIdleBuffersOnly(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	e.send(&comm.PickPacket{Target: 1, Angle: 10, Delay: 0})
	e.at(5000)
	assert.Empty(t, e.driver.Moves())
	assert.Equal(t, sched.StateIdle, e.remote.State())
	assert.Len(t, e.remote.Pending(), 1)
}

func TestRemoteSyncDiscardsBuffered(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	e.send(&comm.PickPacket{Target: 1, Angle: 10, Delay: 0})
	e.at(10)
	e.send(comm.NewSyncPacket(20))
	e.at(10)
	assert.Empty(t, e.remote.Pending())
	e.at(1000)
	assert.Empty(t, e.driver.Moves())
}

func TestRemoteEnd(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	e.send(
		comm.NewSyncPacket(0),
		&comm.PickPacket{Target: 0, Angle: 30, Delay: 10},
		&comm.EndPacket{Delay: 20},
		&comm.PickPacket{Target: 1, Angle: 60, Delay: 5},
	)
	e.at(0)
	e.at(100)
	// the END is scanned before the later pick and stops execution.
	assert.Equal(t, []actuator.Move{move(0, 30)}, e.driver.Moves())
	assert.Equal(t, []string{comm.StatusLineDone}, e.lines())
	assert.Equal(t, sched.StateIdle, e.remote.State())
	assert.Equal(t, []sched.Command{{Target: 1, Angle: 60, Delay: 5}}, e.remote.Pending())
}

func TestRemoteStop(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	e.send(comm.NewSyncPacket(0), &comm.PickPacket{Target: 0, Angle: 30, Delay: 10})
	e.at(0)
	e.send(&comm.StopPacket{})
	e.at(50)
	assert.Equal(t, []string{comm.StatusLineStopped}, e.lines())
	assert.Empty(t, e.remote.Pending())
	assert.Equal(t, sched.StateIdle, e.remote.State())
	assert.Empty(t, e.driver.Moves())
}

func TestRemoteReset(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	angles := make([]int16, comm.DefaultResetCount)
	for n := range angles {
		angles[n] = int16(n * 10)
	}
	e.send(&comm.ResetPacket{Angles: angles})
	e.at(0)
	moves := e.driver.Moves()
	require.Len(t, moves, comm.DefaultResetCount)
	for n, m := range moves {
		assert.Equal(t, n, m.Index)
		assert.Equal(t, n*10, m.Angle)
	}
	assert.Equal(t, []string{comm.StatusLineResetDone}, e.lines())
	assert.Equal(t, sched.StateIdle, e.remote.State())
}

func TestRemoteGetTime(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	e.send(&comm.GetTimePacket{})
	e.at(4242)
	assert.Equal(t, []string{"TIME:4242"}, e.lines())
}

func TestRemoteBufferFull(t *testing.T) {
	conf := NewConfig()
	conf.Capacity = 2
	e := newRemoteTestEnv(t, conf)
	e.send(
		&comm.PickPacket{Target: 0, Angle: 1, Delay: 1},
		&comm.PickPacket{Target: 1, Angle: 2, Delay: 2},
		&comm.PickPacket{Target: 2, Angle: 3, Delay: 3},
		&comm.EndPacket{Delay: 4},
	)
	e.at(0)
	assert.Equal(t, []string{comm.StatusLineBufferFull, comm.StatusLineBufferFull}, e.lines())
	assert.Equal(t, []sched.Command{
		{Target: 0, Angle: 1, Delay: 1},
		{Target: 1, Angle: 2, Delay: 2},
	}, e.remote.Pending())
}

func TestRemotePartialPacket(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	raw := (&comm.PickPacket{Target: 4, Angle: 45, Delay: 0}).Bytes()
	e.in.Write(comm.NewSyncPacket(0).Bytes())
	e.in.Write(raw[:3])
	e.at(0)
	assert.Empty(t, e.remote.Pending())
	e.in.Write(raw[3:])
	e.at(1)
	assert.Equal(t, []actuator.Move{move(4, 45)}, e.driver.Moves())
}

func TestRemoteFatalSyncType(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	e.in.Write([]byte{comm.MarkerSync, 0x02, 0, 0, 0, 0})
	e.send(comm.NewSyncPacket(0), &comm.PickPacket{Target: 0, Angle: 90, Delay: 0}, &comm.GetTimePacket{})
	e.at(100)
	assert.Equal(t, sched.StateHalted, e.remote.State())
	fatal := comm.StatusPrefixFatal + "Unexpected sync packet type"
	assert.Equal(t, []string{fatal}, e.lines())

	e.at(600)
	assert.Empty(t, e.lines())
	e.at(1100)
	assert.Equal(t, []string{fatal}, e.lines())
	e.at(1500)
	assert.Empty(t, e.lines())
	e.at(2100)
	assert.Equal(t, []string{fatal}, e.lines())

	assert.Empty(t, e.driver.Moves())
	assert.Equal(t, sched.StateHalted, e.remote.State())
	assert.Equal(t, comm.StatusFatal, comm.ParseStatus(fatal).Kind)
}

func TestRemoteDebugLines(t *testing.T) {
	conf := NewConfig()
	conf.Debug = true
	conf.HaltInterval = time.Second
	e := newRemoteTestEnv(t, conf)
	require.NoError(t, e.remote.AddServo(1, 2, 17))
	assert.Equal(t, []string{
		"RemoteControl: Servo drivers initialised.",
		"RemoteControl: Mapped servo 17 → board 1, channel 2",
	}, e.lines())

	e.send(comm.NewSyncPacket(5), &comm.PickPacket{Target: 17, Angle: 90, Delay: 0})
	e.at(5)
	assert.Equal(t, []string{
		"RemoteControl: Sync at 5",
		"RemoteControl: Buffered PICK T=17 A=90 D=0ms",
		"RemoteControl: Executing PICK: index=17 angle=90 pulse=368",
	}, e.lines())
	board, channel, err := e.driver.Lookup(17)
	require.NoError(t, err)
	assert.Equal(t, 1, board)
	assert.Equal(t, 2, channel)
}

func TestRemoteInvalidServoMapping(t *testing.T) {
	e := newRemoteTestEnv(t, nil)
	assert.Error(t, e.remote.AddServo(5, 0, 1))
	assert.Error(t, e.remote.AddServo(0, 0, 18))
}
