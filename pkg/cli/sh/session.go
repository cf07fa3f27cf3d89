package sh

import (
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/picker/pkg/config"
	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l1/player"
	"github.com/robotalks/picker/pkg/link"
)

// Session is an open connection to a device.
type Session struct {
	Target string
	Client *comm.Client
	Player *player.Player

	conn   io.Closer
	cancel context.CancelFunc
	doneCh chan struct{}
}

// Open connects the device at target, a serial port or a websocket URL.
func Open(target string, conf *config.Host) (*Session, error) {
	conn, err := link.Open(target, conf.Serial)
	if err != nil {
		return nil, err
	}
	return NewSession(target, conn, conf), nil
}

// NewSession creates a Session on an opened connection.
func NewSession(target string, conn io.ReadWriteCloser, conf *config.Host) *Session {
	s := &Session{
		Target: target,
		Client: comm.NewClient(conn),
		conn:   conn,
		doneCh: make(chan struct{}),
	}
	s.Player = player.New(s.Client)
	s.Player.SyncDelay = conf.SyncDelay
	s.Player.EndSlack = conf.EndSlack
	s.Player.Window = conf.Window
	s.Player.CheckInterval = conf.CheckInterval
	s.Player.Capacity = conf.Capacity
	s.Player.Neutral = conf.Calibration.Neutral

	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	go func() {
		defer close(s.doneCh)
		if err := s.Client.Run(ctx); err != nil && err != context.Canceled {
			glog.Warningf("%s: %v", target, err)
		}
	}()
	return s
}

// Done is closed when the connection stops.
func (s *Session) Done() <-chan struct{} {
	return s.doneCh
}

// Close disconnects the device.
func (s *Session) Close() error {
	s.cancel()
	err := s.conn.Close()
	<-s.doneCh
	return err
}
