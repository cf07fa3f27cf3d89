// Package bridge sets up the MQTT bridge of a device.
package bridge

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/robotalks/picker/pkg/framework"
	"github.com/robotalks/picker/pkg/l1/comm/mqtt"
	"github.com/robotalks/picker/pkg/l1/env"
)

// Config provides options to setup the bridge.
type Config struct {
	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix/
	MQTTBrokerURL string
	// DeviceID is the first level of topics.
	DeviceID string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/picker/",
}

func init() {
	if val := os.Getenv("PICKER_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.DeviceID = os.Getenv("PICKER_DEVICE_ID")
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.DeviceID, "id", defaultConfig.DeviceID, "Device ID, machine ID if empty")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is the running bridge.
type Env struct {
	Config *Config
	Queue  *mqtt.Queue
	Bridge *mqtt.Bridge
}

// NewEnv creates the Queue and Bridge for the device.
func (c *Config) NewEnv(dev mqtt.Device) (*Env, error) {
	if c.MQTTBrokerURL == "" {
		return nil, fmt.Errorf("MQTT broker URL must be specified")
	}
	id := c.DeviceID
	if id == "" {
		id = env.DeviceID()
	}
	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(c.MQTTBrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT broker URL: %v", err)
	}
	e := &Env{Config: c}
	e.Bridge = mqtt.NewBridge(nil, dev, id)
	e.Bridge.SetupWill(opts, topicPrefix)
	e.Queue = mqtt.NewQueue(opts, topicPrefix)
	e.Queue.OnConnect = func(*mqtt.Queue) { e.Bridge.Announce() }
	e.Bridge.PubSub = e.Queue
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv(dev mqtt.Device) *Env {
	e, err := c.NewEnv(dev)
	if err != nil {
		log.Fatalln(err)
	}
	return e
}

// AddToLoop implements framework.LoopAdder.
func (e *Env) AddToLoop(loop *framework.Loop) {
	loop.AddRunnable(framework.NamedRun("mqtt", e))
}

// Run connects the broker and relays until ctx is done.
func (e *Env) Run(ctx context.Context) error {
	if token := e.Queue.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect %s: %v", e.Config.MQTTBrokerURL, token.Error())
	}
	defer e.Queue.Close()
	return e.Bridge.Run(ctx)
}
