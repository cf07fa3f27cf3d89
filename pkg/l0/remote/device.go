package remote

import (
	"context"
	"io"
	"time"

	"github.com/robotalks/picker/pkg/actuator"
	"github.com/robotalks/picker/pkg/clock"
	"github.com/robotalks/picker/pkg/framework"
	"github.com/robotalks/picker/pkg/l0/comm"
)

// DefaultLoopInterval is the polling period of the device loop.
const DefaultLoopInterval = time.Millisecond

// Device runs a Remote over a byte stream. The Remote is handled in the
// loop every DefaultLoopInterval and whenever bytes arrive.
type Device struct {
	FIFO   *comm.FIFO
	Remote *Remote
	Loop   *framework.Loop
}

// NewDevice creates a Device on rw.
func NewDevice(conf *Config, rw io.ReadWriter, drv actuator.Driver, clk clock.Clock) *Device {
	d := &Device{
		FIFO: comm.NewFIFO(rw),
		Loop: framework.NewLoop(),
	}
	d.Remote = New(conf, d.FIFO, d.FIFO, drv, clk)
	d.Loop.Interval = DefaultLoopInterval
	d.FIFO.OnData = d.Loop.TriggerNext
	d.Loop.Add(d.Remote)
	d.Loop.AddRunnable(framework.NamedRun("fifo", d.FIFO))
	return d
}

// Run implements framework.Runnable.
func (d *Device) Run(ctx context.Context) error {
	return d.Loop.Run(ctx)
}
