// Package player streams timed move sequences to the device.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l0/sched"
)

// Device is the firmware seen from the host. comm.Client implements it.
type Device interface {
	Time(ctx context.Context) (uint32, error)
	Sync(t uint32) error
	Pick(target, angle int, delay uint32) error
	End(delay uint32) error
	Stop() error
	Reset(angles []int16) error
	WaitStatus(ctx context.Context, kind comm.StatusKind) (comm.Status, error)
}

// Player plays sequences on a Device.
type Player struct {
	Device Device
	// SyncDelay is the time between the SYNC packet and the baseline.
	SyncDelay time.Duration
	// EndSlack is added after the last move before the sequence ends.
	EndSlack time.Duration
	// Window is how far ahead of the device time moves are sent.
	Window time.Duration
	// CheckInterval is the interval of refilling the window.
	CheckInterval time.Duration
	// Capacity is the command buffer size of the device. At most
	// Capacity-1 moves are outstanding so END always fits.
	Capacity int
	// Neutral are the angles servos return to on Stop.
	Neutral []int16
}

// New creates a Player with defaults.
func New(dev Device) *Player {
	return &Player{
		Device:        dev,
		SyncDelay:     time.Second,
		EndSlack:      1500 * time.Millisecond,
		Window:        10 * time.Second,
		CheckInterval: time.Second,
		Capacity:      sched.DefaultCapacity,
	}
}

func millis(d time.Duration) uint32 {
	return uint32(d / time.Millisecond)
}

// Play streams the sequence and waits until the device reports it's done.
func (p *Player) Play(ctx context.Context, seq *Sequence) error {
	now, err := p.Device.Time(ctx)
	if err != nil {
		return fmt.Errorf("query time: %w", err)
	}
	baseline := now + millis(p.SyncDelay)
	if err = p.Device.Sync(baseline); err != nil {
		return err
	}
	glog.Infof("play %q: %d moves, sync at %d", seq.Name, len(seq.Moves), baseline)

	for next := 0; ; {
		if next, err = p.fill(seq.Moves, next, now, baseline); err != nil {
			return err
		}
		if next >= len(seq.Moves) {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.CheckInterval):
		}
		if now, err = p.Device.Time(ctx); err != nil {
			return fmt.Errorf("query time: %w", err)
		}
	}

	end := millis(seq.Duration() + p.EndSlack)
	if err = p.Device.End(end); err != nil {
		return err
	}
	glog.V(1).Infof("end at %d", end)
	if _, err = p.Device.WaitStatus(ctx, comm.StatusDone); err != nil {
		return err
	}
	glog.Infof("play %q: done", seq.Name)
	return nil
}

// fill sends moves from next which fall in the window at device time
// now, and returns the index of the first move not sent.
func (p *Player) fill(moves []Move, next int, now, baseline uint32) (int, error) {
	elapsed := time.Duration(int32(now-baseline)) * time.Millisecond
	limit := p.Capacity - 1
	if limit < 1 {
		limit = 1
	}
	outstanding := 0
	for n := 0; n < next; n++ {
		if moves[n].At > elapsed {
			outstanding++
		}
	}
	for ; next < len(moves) && outstanding < limit; next++ {
		m := moves[next]
		if m.At > elapsed+p.Window {
			break
		}
		if err := p.Device.Pick(m.Target, m.Angle, millis(m.At)); err != nil {
			return next, fmt.Errorf("move %d: %w", next, err)
		}
		outstanding++
	}
	glog.V(1).Infof("elapsed %v: sent %d/%d moves", elapsed, next, len(moves))
	return next, nil
}

// Stop aborts playing and moves servos to the neutral angles.
func (p *Player) Stop(ctx context.Context) error {
	if err := p.Device.Stop(); err != nil {
		return err
	}
	if _, err := p.Device.WaitStatus(ctx, comm.StatusStopped); err != nil {
		return err
	}
	if len(p.Neutral) == 0 {
		return nil
	}
	if err := p.Device.Reset(p.Neutral); err != nil {
		return err
	}
	_, err := p.Device.WaitStatus(ctx, comm.StatusResetDone)
	return err
}
