package mqtt

import (
	"context"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l1/msgs"
)

// Device is the firmware the Bridge forwards commands to. comm.Client
// implements it.
type Device interface {
	Time(ctx context.Context) (uint32, error)
	Sync(t uint32) error
	Pick(target, angle int, delay uint32) error
	End(delay uint32) error
	Stop() error
	Reset(angles []int16) error
	StatusChan() <-chan comm.Status
}

// PubSub is the part of Queue used by Bridge.
type PubSub interface {
	Sub(topic string, handler Handler) *Subscription
	PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token
}

// Bridge relays msgs.Command from <device-id>/cmd to the device and
// publishes device status to <device-id>/status.
type Bridge struct {
	PubSub   PubSub
	Device   Device
	DeviceID string
	// ResetCount is the number of angles of a RESET packet, missing
	// angles in a command are taken from Neutral.
	ResetCount int
	Neutral    []int16
}

// NewBridge creates a Bridge.
func NewBridge(ps PubSub, dev Device, deviceID string) *Bridge {
	neutral := make([]int16, comm.DefaultResetCount)
	for n := range neutral {
		neutral[n] = comm.MaxAngle / 2
	}
	return &Bridge{
		PubSub:     ps,
		Device:     dev,
		DeviceID:   deviceID,
		ResetCount: comm.DefaultResetCount,
		Neutral:    neutral,
	}
}

// CommandTopic is where commands are received.
func (b *Bridge) CommandTopic() string {
	return b.DeviceID + "/cmd"
}

// StatusTopic is where status are published.
func (b *Bridge) StatusTopic() string {
	return b.DeviceID + "/status"
}

// OnlineTopic holds the retained presence of the bridge.
func (b *Bridge) OnlineTopic() string {
	return b.DeviceID + "/online"
}

// SetupWill registers the last will clearing the presence.
func (b *Bridge) SetupWill(opts *paho.ClientOptions, topicPrefix string) {
	opts.SetBinaryWill(topicPrefix+b.OnlineTopic(), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("picker:" + b.DeviceID)
	}
}

// Announce publishes the presence, usually from Queue.OnConnect.
func (b *Bridge) Announce() paho.Token {
	return b.PubSub.PubWith(b.OnlineTopic(), []byte("1"), 1, true)
}

// Run relays until ctx is done or the device is closed.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.PubSub.Sub(b.CommandTopic(), func(topic string, payload []byte) {
		if err := b.HandleCommand(ctx, payload); err != nil {
			glog.Warningf("command: %v", err)
		}
	})
	defer sub.Close()
	defer b.PubSub.PubWith(b.OnlineTopic(), nil, 1, true)
	statusCh := b.Device.StatusChan()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st, ok := <-statusCh:
			if !ok {
				return comm.ErrClosed
			}
			b.publish(msgs.NewStatus(st))
		}
	}
}

// HandleCommand decodes and executes a command. Failures are also
// replied as error status.
func (b *Bridge) HandleCommand(ctx context.Context, payload []byte) error {
	cmd, err := msgs.DecodeCommand(payload)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	glog.V(2).Infof("command %s", cmd)
	if cmd.Kind == msgs.CommandTime {
		// the reply arrives asynchronously and the MQTT handler mustn't block.
		go func() {
			t, err := b.Device.Time(ctx)
			if err != nil {
				b.publish(msgs.NewErrorStatus(err, cmd.Sequence))
				return
			}
			b.publish(msgs.NewTimeStatus(t, cmd.Sequence))
		}()
		return nil
	}
	if err = b.execute(cmd); err != nil {
		b.publish(msgs.NewErrorStatus(err, cmd.Sequence))
	}
	return err
}

func (b *Bridge) execute(cmd *msgs.Command) error {
	switch cmd.Kind {
	case msgs.CommandSync:
		return b.Device.Sync(cmd.Time)
	case msgs.CommandPick:
		return b.Device.Pick(int(cmd.Target), int(cmd.Angle), cmd.Delay)
	case msgs.CommandEnd:
		return b.Device.End(cmd.Delay)
	case msgs.CommandStop:
		return b.Device.Stop()
	case msgs.CommandReset:
		return b.Device.Reset(cmd.ResetAngles(b.ResetCount, b.Neutral))
	}
	return fmt.Errorf("unsupported command %s", cmd.Kind)
}

func (b *Bridge) publish(msg *msgs.Status) {
	data, err := msgs.Encode(msg)
	if err != nil {
		glog.Errorf("encode %s: %v", msg, err)
		return
	}
	b.PubSub.PubWith(b.StatusTopic(), data, 0, false)
}
