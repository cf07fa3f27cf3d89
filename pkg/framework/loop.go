package framework

import (
	"context"
	"log"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the loop interval if not specified.
const DefaultInterval = 100 * time.Millisecond

// Loop invokes controllers periodically on a single goroutine, in the
// order they are registered. Each iteration runs to completion before
// the next one starts.
type Loop struct {
	Interval time.Duration

	controllers []Controller
	runners     []Runnable
	iteration   uint64
	wakeUpCh    chan struct{}
}

type loopIteration struct {
	*Loop
	ctx  context.Context
	time time.Time
	seq  uint64
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers to the loop. Controllers which
// are also Runnable are started with the loop.
func (l *Loop) AddController(ctls ...Controller) *Loop {
	l.controllers = append(l.controllers, ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementions.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	runner := NewRunnerWith(ctx)
	for _, r := range l.runners {
		runner.Go(cancelOnExit(r, cancel))
	}

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			cancel()
			if err := runner.Wait(); err != nil {
				return err
			}
			return ctx.Err()
		case <-ticker.C:
			l.RunIteration(ctx)
		case <-l.wakeUpCh:
			l.RunIteration(ctx)
		}
	}
}

// cancelOnExit stops the whole loop when one of the runnables stops.
func cancelOnExit(r Runnable, cancel context.CancelFunc) Runnable {
	fn := RunFunc(func(ctx context.Context) error {
		defer cancel()
		return r.Run(ctx)
	})
	if named, ok := r.(Named); ok {
		return NamedRun(named.Name(), fn)
	}
	return fn
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail(ctx context.Context) {
	if err := l.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalln(err)
	}
}

// TriggerNext implements LoopControl. It's safe to be called from
// any goroutine.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// RunIteration invokes all controllers once.
func (l *Loop) RunIteration(ctx context.Context) {
	l.iteration++
	iter := &loopIteration{Loop: l, ctx: ctx, time: time.Now(), seq: l.iteration}
	for _, ctl := range l.controllers {
		if err := ctl.Control(iter); err != nil {
			glog.Errorf("controller error: %v", err)
		}
	}
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Time() time.Time {
	return t.time
}

func (t *loopIteration) Iteration() uint64 {
	return t.seq
}
