package player

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/picker/pkg/l0/comm"
)

type fakeDevice struct {
	times    []uint32
	statuses map[comm.StatusKind]error

	calls []string
	lock  sync.Mutex
}

func (d *fakeDevice) record(format string, args ...interface{}) {
	d.lock.Lock()
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
	d.lock.Unlock()
}

func (d *fakeDevice) Time(ctx context.Context) (uint32, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.times) == 0 {
		return 0, comm.ErrClosed
	}
	t := d.times[0]
	if len(d.times) > 1 {
		d.times = d.times[1:]
	}
	return t, nil
}

func (d *fakeDevice) Sync(t uint32) error {
	d.record("sync %d", t)
	return nil
}

func (d *fakeDevice) Pick(target, angle int, delay uint32) error {
	d.record("pick %d %d %d", target, angle, delay)
	return nil
}

func (d *fakeDevice) End(delay uint32) error {
	d.record("end %d", delay)
	return nil
}

func (d *fakeDevice) Stop() error {
	d.record("stop")
	return nil
}

func (d *fakeDevice) Reset(angles []int16) error {
	d.record("reset %v", angles)
	return nil
}

func (d *fakeDevice) WaitStatus(ctx context.Context, kind comm.StatusKind) (comm.Status, error) {
	d.record("wait %s", kind)
	return comm.Status{Kind: kind}, d.statuses[kind]
}

func newTestPlayer(dev *fakeDevice) *Player {
	p := New(dev)
	p.CheckInterval = time.Millisecond
	return p
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestPlayWithinWindow(t *testing.T) {
	dev := &fakeDevice{times: []uint32{5000}}
	seq := &Sequence{Moves: []Move{{0, 30, 0}, {1, 60, ms(100)}, {2, 90, ms(200)}}}
	require.NoError(t, newTestPlayer(dev).Play(context.Background(), seq))
	assert.Equal(t, []string{
		"sync 6000",
		"pick 0 30 0",
		"pick 1 60 100",
		"pick 2 90 200",
		"end 1700",
		"wait done",
	}, dev.calls)
}

func TestPlayRollingWindow(t *testing.T) {
	dev := &fakeDevice{times: []uint32{0, 10000, 20000}}
	seq := &Sequence{Moves: []Move{{0, 10, 0}, {1, 20, ms(5000)}, {2, 30, ms(15000)}, {3, 40, ms(25000)}}}
	require.NoError(t, newTestPlayer(dev).Play(context.Background(), seq))
	assert.Equal(t, []string{
		"sync 1000",
		"pick 0 10 0",
		"pick 1 20 5000",
		"pick 2 30 15000",
		"pick 3 40 25000",
		"end 26500",
		"wait done",
	}, dev.calls)
}

func TestPlayLimitsOutstandingMoves(t *testing.T) {
	dev := &fakeDevice{times: []uint32{0, 1250}}
	p := newTestPlayer(dev)
	p.Capacity = 3
	seq := &Sequence{Moves: []Move{{0, 1, ms(100)}, {0, 2, ms(200)}, {0, 3, ms(300)}, {0, 4, ms(400)}}}
	require.NoError(t, p.Play(context.Background(), seq))
	assert.Equal(t, []string{
		"sync 1000",
		"pick 0 1 100",
		"pick 0 2 200",
		"pick 0 3 300",
		"pick 0 4 400",
		"end 1900",
		"wait done",
	}, dev.calls)
}

func TestPlayDeviceHalted(t *testing.T) {
	halted := &comm.DeviceError{Message: "Unexpected sync packet type"}
	dev := &fakeDevice{times: []uint32{0}, statuses: map[comm.StatusKind]error{comm.StatusDone: halted}}
	err := newTestPlayer(dev).Play(context.Background(), &Sequence{})
	assert.Equal(t, halted, err)
}

func TestPlayCanceled(t *testing.T) {
	dev := &fakeDevice{times: []uint32{0}}
	p := newTestPlayer(dev)
	p.CheckInterval = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := p.Play(ctx, &Sequence{Moves: []Move{{0, 1, 0}, {0, 2, time.Minute}}})
	assert.Equal(t, context.DeadlineExceeded, err)
	assert.Equal(t, []string{"sync 1000", "pick 0 1 0"}, dev.calls)
}

func TestStop(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPlayer(dev)
	p.Neutral = []int16{90, 45}
	require.NoError(t, p.Stop(context.Background()))
	assert.Equal(t, []string{"stop", "wait stopped", "reset [90 45]", "wait reset-done"}, dev.calls)
}

func TestLoadSequence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/seq.yaml", []byte(`
name: scale
moves:
  - {target: 1, angle: 120, at: 500ms}
  - {target: 0, angle: 60, at: 0s}
  - {target: 2, angle: 90, at: 1.5s}
`), 0644))
	seq, err := LoadSequence(fs, "/seq.yaml")
	require.NoError(t, err)
	assert.Equal(t, "scale", seq.Name)
	assert.Equal(t, []Move{{0, 60, 0}, {1, 120, ms(500)}, {2, 90, ms(1500)}}, seq.Moves)
	assert.Equal(t, ms(1500), seq.Duration())

	for name, content := range map[string]string{
		"target": "moves: [{target: 18, angle: 0, at: 0s}]",
		"angle":  "moves: [{target: 0, angle: 181, at: 0s}]",
		"time":   "moves: [{target: 0, angle: 0, at: -1s}]",
	} {
		require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte(content), 0644))
		_, err = LoadSequence(fs, "/bad.yaml")
		assert.Error(t, err, name)
	}
	_, err = LoadSequence(fs, "/missing.yaml")
	assert.Error(t, err)
}
