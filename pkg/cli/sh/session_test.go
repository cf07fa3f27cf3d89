package sh

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/picker/pkg/actuator"
	"github.com/robotalks/picker/pkg/clock"
	"github.com/robotalks/picker/pkg/config"
	"github.com/robotalks/picker/pkg/l0/remote"
	"github.com/robotalks/picker/pkg/l1/player"
	"github.com/robotalks/picker/pkg/link"
)

func simulatedDevice(t *testing.T) (string, *actuator.Recorder) {
	drv := actuator.NewRecorder()
	srv := httptest.NewServer(link.Handler(func(conn io.ReadWriteCloser) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		remote.NewDevice(nil, conn, drv, clock.NewSystem()).Run(ctx)
	}))
	t.Cleanup(srv.Close)
	return "ws://" + strings.TrimPrefix(srv.URL, "http://") + link.DefaultPath, drv
}

func TestSessionPlay(t *testing.T) {
	target, drv := simulatedDevice(t)
	conf := config.DefaultHost()
	conf.SyncDelay = 50 * time.Millisecond
	conf.EndSlack = 50 * time.Millisecond
	conf.CheckInterval = 10 * time.Millisecond

	session, err := Open(target, conf)
	require.NoError(t, err)
	defer session.Close()
	assert.Equal(t, conf.Capacity, session.Player.Capacity)
	assert.Equal(t, conf.Calibration.Neutral, session.Player.Neutral)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = session.Player.Play(ctx, &player.Sequence{
		Moves: []player.Move{
			{Target: 1, Angle: 30, At: 10 * time.Millisecond},
			{Target: 2, Angle: 60, At: 20 * time.Millisecond},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []actuator.Move{
		{Index: 1, Angle: 30, Pulse: drv.AngleToPulse(30)},
		{Index: 2, Angle: 60, Pulse: drv.AngleToPulse(60)},
	}, drv.Moves())

	require.NoError(t, session.Player.Stop(ctx))
}

func TestSessionClose(t *testing.T) {
	target, _ := simulatedDevice(t)
	session, err := Open(target, config.DefaultHost())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = session.Client.Time(ctx)
	require.NoError(t, err)

	session.Close()
	select {
	case <-session.Done():
	case <-time.After(time.Second):
		t.Fatal("session didn't stop")
	}
	assert.Error(t, session.Client.Stop())
}
