// Package remote implements the firmware side of the pick protocol: it
// frames packets from the serial stream, buffers timed commands and
// moves servos when they become due.
package remote

import (
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/picker/pkg/actuator"
	"github.com/robotalks/picker/pkg/clock"
	"github.com/robotalks/picker/pkg/framework"
	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l0/sched"
)

// Remote is the firmware controller. Handle must be called from a
// single goroutine; it never blocks.
type Remote struct {
	Config Config

	src    comm.ByteSource
	out    io.Writer
	driver actuator.Driver
	clock  clock.Clock

	parser    comm.Parser
	scheduler *sched.Scheduler

	fatal      string
	lastReport uint32
}

// New creates a Remote. Status lines are written to out.
func New(conf *Config, src comm.ByteSource, out io.Writer, drv actuator.Driver, clk clock.Clock) *Remote {
	if conf == nil {
		conf = NewConfig()
	}
	r := &Remote{
		Config: *conf,
		src:    src,
		out:    out,
		driver: drv,
		clock:  clk,
	}
	r.parser.ResetCount = r.Config.ResetCount
	r.scheduler = sched.New(r.Config.Capacity)
	return r
}

// Begin initializes the servo boards at addrs.
func (r *Remote) Begin(addrs []uint8) error {
	if err := r.driver.Init(addrs); err != nil {
		return fmt.Errorf("init servo driver: %w", err)
	}
	r.debugf("Servo drivers initialised.")
	return nil
}

// AddServo maps a logical servo to a board and channel.
func (r *Remote) AddServo(board, channel, index int) error {
	if err := r.driver.Map(index, board, channel); err != nil {
		return err
	}
	r.debugf("Mapped servo %d → board %d, channel %d", index, board, channel)
	return nil
}

// State returns the scheduling state.
func (r *Remote) State() sched.State {
	return r.scheduler.State()
}

// Pending returns the buffered commands.
func (r *Remote) Pending() []sched.Command {
	return r.scheduler.Pending()
}

// Baseline returns the current sync baseline.
func (r *Remote) Baseline() uint32 {
	return r.scheduler.Baseline()
}

// Handle processes all framable packets then executes due commands.
// Once halted, it only repeats the fatal error every HaltInterval.
func (r *Remote) Handle() {
	if r.scheduler.State() == sched.StateHalted {
		r.reportFatal()
		return
	}
	if _, err := r.parser.Drain(r.src, r); err != nil {
		r.halt(err)
		return
	}
	// a fatal error may also be raised while handling a packet.
	if r.scheduler.State() == sched.StateHalted {
		return
	}
	r.scheduler.Update(r.clock.Millis(), r)
}

// Control implements framework.Controller.
func (r *Remote) Control(framework.ControlContext) error {
	r.Handle()
	return nil
}

// AddToLoop implements framework.LoopAdder.
func (r *Remote) AddToLoop(l *framework.Loop) {
	l.AddController(r)
}

// HandlePacket implements comm.PacketHandler.
func (r *Remote) HandlePacket(pkt comm.Packet) {
	switch p := pkt.(type) {
	case *comm.StopPacket:
		r.scheduler.Stop()
		r.println(comm.StatusLineStopped)
	case *comm.ResetPacket:
		for index, angle := range p.Angles {
			r.move(index, int(angle))
		}
		r.debugf("Servos RESET to dynamic angles.")
		r.println(comm.StatusLineResetDone)
	case *comm.PickPacket:
		cmd := sched.Command{Target: p.Target, Angle: p.Angle, Delay: p.Delay}
		if r.enqueue(cmd) {
			r.debugf("Buffered PICK T=%d A=%d D=%dms", cmd.Target, cmd.Angle, cmd.Delay)
		}
	case *comm.EndPacket:
		if r.enqueue(sched.EndCommand(p.Delay)) {
			r.debugf("Buffered END D=%dms", p.Delay)
		}
	case *comm.GetTimePacket:
		r.println(comm.TimeLine(r.clock.Millis()))
	case *comm.SyncPacket:
		if err := r.scheduler.Sync(p.Time); err != nil {
			r.halt(err)
			return
		}
		r.debugf("Sync at %d", p.Time)
	}
}

// Execute implements sched.Executor.
func (r *Remote) Execute(cmd sched.Command) {
	r.debugf("Executing PICK: index=%d angle=%d pulse=%d",
		cmd.Target, cmd.Angle, r.driver.AngleToPulse(int(cmd.Angle)))
	r.move(int(cmd.Target), int(cmd.Angle))
}

// SequenceDone implements sched.Executor.
func (r *Remote) SequenceDone() {
	r.println(comm.StatusLineDone)
}

func (r *Remote) enqueue(cmd sched.Command) bool {
	switch err := r.scheduler.Enqueue(cmd); err {
	case nil:
		return true
	case sched.ErrBufferFull:
		glog.Warningf("dropped %s: %v", cmd, err)
		r.println(comm.StatusLineBufferFull)
	default:
		r.halt(err)
	}
	return false
}

func (r *Remote) move(index, angle int) {
	if err := r.driver.MoveTo(index, angle); err != nil {
		glog.Warningf("move servo %d to %d: %v", index, angle, err)
	}
}

func (r *Remote) halt(err error) {
	r.scheduler.Halt()
	r.fatal = fatalMessage(err)
	glog.Errorf("halted: %v", err)
	r.println(comm.StatusPrefixFatal + r.fatal)
	r.lastReport = r.clock.Millis()
}

func (r *Remote) reportFatal() {
	now := r.clock.Millis()
	if int64(now-r.lastReport) < r.Config.HaltInterval.Milliseconds() {
		return
	}
	r.lastReport = now
	r.println(comm.StatusPrefixFatal + r.fatal)
}

func fatalMessage(err error) string {
	if _, ok := err.(*comm.SyncTypeError); ok {
		return "Unexpected sync packet type"
	}
	return err.Error()
}

func (r *Remote) debugf(format string, args ...interface{}) {
	if !r.Config.Debug {
		return
	}
	r.println(comm.StatusPrefixDebug + fmt.Sprintf(format, args...))
}

func (r *Remote) println(line string) {
	glog.V(3).Info(line)
	if _, err := io.WriteString(r.out, line+"\r\n"); err != nil {
		glog.Warningf("write status: %v", err)
	}
}
