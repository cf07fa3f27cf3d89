// Package config loads the YAML configuration files of the device and
// the host.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/robotalks/picker/pkg/actuator"
	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l0/sched"
	"github.com/robotalks/picker/pkg/link"
)

// ServoMapping maps a logical servo to a board channel.
type ServoMapping struct {
	Index   int `yaml:"index"`
	Board   int `yaml:"board"`
	Channel int `yaml:"channel"`
}

// Firmware is the configuration of the device.
type Firmware struct {
	// Port is a serial device path.
	Port   string           `yaml:"port"`
	Serial link.PortOptions `yaml:"serial"`
	// Listen is the websocket address when simulating.
	Listen   string         `yaml:"listen"`
	I2CBus   int            `yaml:"i2c_bus"`
	Boards []uint8        `yaml:"boards"`
	Servos []ServoMapping `yaml:"servos"`
	// Capacity and ResetCount override the device defaults when set.
	Capacity   int  `yaml:"capacity"`
	ResetCount int  `yaml:"reset_count"`
	Debug      bool `yaml:"debug"`
	Simulate   bool `yaml:"simulate"`
}

// Calibration holds the servo angles of the instrument.
type Calibration struct {
	// Neutral is the rest angle of each servo, sent in RESET packets.
	Neutral []int16 `yaml:"neutral"`
}

// Host is the configuration of the controlling host.
type Host struct {
	// Port is a serial device path or a websocket URL.
	Port          string           `yaml:"port"`
	Serial        link.PortOptions `yaml:"serial"`
	Calibration   Calibration      `yaml:"calibration"`
	SyncDelay     time.Duration    `yaml:"sync_delay"`
	EndSlack      time.Duration    `yaml:"end_slack"`
	Window        time.Duration    `yaml:"window"`
	CheckInterval time.Duration    `yaml:"check_interval"`
	// Capacity is the command buffer size of the device.
	Capacity int `yaml:"capacity"`
	// ResetCount is the number of angles in a RESET packet, it must
	// match the device.
	ResetCount int `yaml:"reset_count"`
}

// DefaultFirmware returns the device defaults.
func DefaultFirmware() *Firmware {
	return &Firmware{
		Port:     "/dev/ttyAMA0",
		Listen:   ":8080",
		I2CBus:   1,
		Boards: []uint8{0x40, 0x41},
	}
}

// DefaultHost returns the host defaults.
func DefaultHost() *Host {
	conf := newHost()
	conf.fillNeutral()
	return conf
}

func newHost() *Host {
	return &Host{
		Port:          "/dev/ttyACM0",
		SyncDelay:     time.Second,
		EndSlack:      1500 * time.Millisecond,
		Window:        10 * time.Second,
		CheckInterval: time.Second,
		Capacity:      sched.DefaultCapacity,
		ResetCount:    comm.DefaultResetCount,
	}
}

// fillNeutral centers all servos if no neutral angles are configured.
func (c *Host) fillNeutral() {
	if len(c.Calibration.Neutral) > 0 || c.ResetCount <= 0 {
		return
	}
	c.Calibration.Neutral = make([]int16, c.ResetCount)
	for n := range c.Calibration.Neutral {
		c.Calibration.Neutral[n] = actuator.MaxAngle / 2
	}
}

// LoadFirmware reads the device configuration. A missing file gives the
// defaults.
func LoadFirmware(fs afero.Fs, path string) (*Firmware, error) {
	conf := DefaultFirmware()
	if err := load(fs, path, conf); err != nil {
		return nil, err
	}
	return conf, conf.Validate()
}

// LoadHost reads the host configuration. A missing file gives the
// defaults.
func LoadHost(fs afero.Fs, path string) (*Host, error) {
	conf := newHost()
	if err := load(fs, path, conf); err != nil {
		return nil, err
	}
	conf.fillNeutral()
	return conf, conf.Validate()
}

func load(fs afero.Fs, path string, out interface{}) error {
	if path == "" {
		return nil
	}
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Firmware) Validate() error {
	if len(c.Boards) == 0 || len(c.Boards) > actuator.MaxBoards {
		return fmt.Errorf("boards: expect 1 to %d addresses, got %d", actuator.MaxBoards, len(c.Boards))
	}
	for _, m := range c.Servos {
		if m.Index < 0 || m.Index >= actuator.MaxServos ||
			m.Board < 0 || m.Board >= len(c.Boards) ||
			m.Channel < 0 || m.Channel >= actuator.MaxChannels {
			return fmt.Errorf("servos: invalid mapping %+v", m)
		}
	}
	if c.Capacity < 0 {
		return fmt.Errorf("capacity: must not be negative")
	}
	if c.ResetCount < 0 || c.ResetCount > actuator.MaxServos {
		return fmt.Errorf("reset_count: must be 0 to %d", actuator.MaxServos)
	}
	_, err := c.Serial.Normalize()
	return err
}

// Validate checks the configuration.
func (c *Host) Validate() error {
	if c.ResetCount < 1 || c.ResetCount > actuator.MaxServos {
		return fmt.Errorf("reset_count: must be 1 to %d", actuator.MaxServos)
	}
	if len(c.Calibration.Neutral) != c.ResetCount {
		return fmt.Errorf("calibration: expect %d neutral angles, got %d", c.ResetCount, len(c.Calibration.Neutral))
	}
	for n, angle := range c.Calibration.Neutral {
		if angle < 0 || angle > actuator.MaxAngle {
			return fmt.Errorf("calibration: neutral angle %d of servo %d out of range", angle, n)
		}
	}
	if c.Capacity < 2 {
		return fmt.Errorf("capacity: must be at least 2")
	}
	if c.Window <= 0 || c.CheckInterval <= 0 {
		return fmt.Errorf("window and check_interval must be positive")
	}
	_, err := c.Serial.Normalize()
	return err
}
