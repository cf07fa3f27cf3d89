// Package device provides shell commands operating the connected device.
package device

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/spf13/afero"

	"github.com/robotalks/picker/pkg/cli/sh"
	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l1/player"
)

// Fs is the file system sequences are loaded from.
var Fs = afero.NewOsFs()

// TimeResult is the output of the time command.
type TimeResult struct {
	Time uint32 `json:"time"`
}

// String implements fmt.Stringer.
func (r TimeResult) String() string {
	return strconv.FormatUint(uint64(r.Time), 10)
}

// StatusResult is the output of a status line.
type StatusResult struct {
	Kind string `json:"kind"`
	Line string `json:"line"`
}

// String implements fmt.Stringer.
func (r StatusResult) String() string {
	return r.Line
}

func statusResult(st comm.Status) StatusResult {
	return StatusResult{Kind: st.Kind.String(), Line: st.Line}
}

// ParseUint32 parses a named uint32 argument.
func ParseUint32(name, arg string) (uint32, error) {
	val, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return uint32(val), nil
}

// ParseAngles parses RESET angles, one per neutral angle. Angles not
// given are the neutral angles.
func ParseAngles(args []string, neutral []int16) ([]int16, error) {
	if len(args) > len(neutral) {
		return nil, fmt.Errorf("at most %d angles", len(neutral))
	}
	angles := append([]int16(nil), neutral...)
	for n, arg := range args {
		val, err := strconv.ParseInt(arg, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid angle %d: %v", n, err)
		}
		angles[n] = int16(val)
	}
	return angles, nil
}

func waitStatus(c *ishell.Context, kind comm.StatusKind) {
	ctx, cancel := sh.CommandContext(sh.DefaultTimeout)
	defer cancel()
	st, err := sh.SessionFrom(c).Client.WaitStatus(ctx, kind)
	if err != nil {
		c.Err(err)
		return
	}
	sh.Print(c, statusResult(st))
}

var (
	// TimeCmd queries the device time.
	TimeCmd = ishell.Cmd{
		Name:    "time",
		Aliases: []string{"t"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			ctx, cancel := sh.CommandContext(sh.DefaultTimeout)
			defer cancel()
			t, err := sh.SessionFrom(c).Client.Time(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Print(c, TimeResult{Time: t})
		}),
	}

	// SyncCmd sets the baseline.
	SyncCmd = ishell.Cmd{
		Name:    "sync",
		Aliases: []string{"s"},
		Help:    "[TIME(ms)], default is device time + sync delay",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			session := sh.SessionFrom(c)
			var t uint32
			if len(c.Args) > 0 {
				val, err := ParseUint32("TIME", c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				t = val
			} else {
				ctx, cancel := sh.CommandContext(sh.DefaultTimeout)
				now, err := session.Client.Time(ctx)
				cancel()
				if err != nil {
					c.Err(err)
					return
				}
				t = now + uint32(session.Player.SyncDelay/time.Millisecond)
			}
			if err := session.Client.Sync(t); err != nil {
				c.Err(err)
				return
			}
			sh.Print(c, TimeResult{Time: t})
		}),
	}

	// PickCmd schedules a move.
	PickCmd = ishell.Cmd{
		Name:    "pick",
		Aliases: []string{"p"},
		Help:    "TARGET ANGLE DELAY(ms)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 3 {
				c.Err(fmt.Errorf("TARGET ANGLE DELAY required"))
				return
			}
			target, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid TARGET: %v", err))
				return
			}
			angle, err := strconv.Atoi(c.Args[1])
			if err != nil {
				c.Err(fmt.Errorf("invalid ANGLE: %v", err))
				return
			}
			delay, err := ParseUint32("DELAY", c.Args[2])
			if err != nil {
				c.Err(err)
				return
			}
			if err = sh.SessionFrom(c).Client.Pick(target, angle, delay); err != nil {
				c.Err(err)
			}
		}),
	}

	// EndCmd schedules the end of sequence.
	EndCmd = ishell.Cmd{
		Name:    "end",
		Aliases: []string{"e"},
		Help:    "DELAY(ms) [-w]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("DELAY required"))
				return
			}
			delay, err := ParseUint32("DELAY", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			if err = sh.SessionFrom(c).Client.End(delay); err != nil {
				c.Err(err)
				return
			}
			if len(c.Args) > 1 && c.Args[1] == "-w" {
				ctx, cancel := sh.CommandContext(0)
				defer cancel()
				st, err := sh.SessionFrom(c).Client.WaitStatus(ctx, comm.StatusDone)
				if err != nil {
					c.Err(err)
					return
				}
				sh.Print(c, statusResult(st))
			}
		}),
	}

	// StopCmd stops scheduling.
	StopCmd = ishell.Cmd{
		Name:    "stop",
		Aliases: []string{},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if err := sh.SessionFrom(c).Client.Stop(); err != nil {
				c.Err(err)
				return
			}
			waitStatus(c, comm.StatusStopped)
		}),
	}

	// ResetCmd moves servos immediately.
	ResetCmd = ishell.Cmd{
		Name:    "reset",
		Aliases: []string{"r"},
		Help:    "[ANGLE...], default is the neutral angles",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			session := sh.SessionFrom(c)
			angles, err := ParseAngles(c.Args, session.Player.Neutral)
			if err != nil {
				c.Err(err)
				return
			}
			if err = session.Client.Reset(angles); err != nil {
				c.Err(err)
				return
			}
			waitStatus(c, comm.StatusResetDone)
		}),
	}

	// PlayCmd plays a sequence file.
	PlayCmd = ishell.Cmd{
		Name:    "play",
		Aliases: []string{},
		Help:    "FILE",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("FILE required"))
				return
			}
			seq, err := player.LoadSequence(Fs, c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			session := sh.SessionFrom(c)
			ctx, cancel := sh.CommandContext(0)
			defer cancel()
			if err = session.Player.Play(ctx, seq); err != nil {
				c.Err(err)
				if ctx.Err() != nil {
					stopCtx, stopCancel := sh.CommandContext(sh.DefaultTimeout)
					defer stopCancel()
					if err = session.Player.Stop(stopCtx); err != nil {
						c.Err(err)
					}
				}
				return
			}
			c.Println("DONE")
		}),
	}

	// MonitorCmd prints status lines.
	MonitorCmd = ishell.Cmd{
		Name:    "monitor",
		Aliases: []string{"m"},
		Help:    "[DURATION], Ctrl-C to stop",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			var timeout time.Duration
			if len(c.Args) > 0 {
				d, err := time.ParseDuration(c.Args[0])
				if err != nil {
					c.Err(fmt.Errorf("invalid DURATION: %v", err))
					return
				}
				timeout = d
			}
			ctx, cancel := sh.CommandContext(timeout)
			defer cancel()
			statusCh := sh.SessionFrom(c).Client.StatusChan()
			for {
				select {
				case <-ctx.Done():
					return
				case st, ok := <-statusCh:
					if !ok {
						c.Err(comm.ErrClosed)
						return
					}
					sh.Print(c, statusResult(st))
				}
			}
		}),
	}
)

func init() {
	sh.AddCmds(
		&TimeCmd,
		&SyncCmd,
		&PickCmd,
		&EndCmd,
		&StopCmd,
		&ResetCmd,
		&PlayCmd,
		&MonitorCmd,
	)
}
