package actuator

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// OpenBus opens the I2C bus by number, e.g. 1 for /dev/i2c-1.
func OpenBus(bus int) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}
	b, err := i2creg.Open(strconv.Itoa(bus))
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %d: %w", bus, err)
	}
	return b, nil
}

// PCA9685 drives servos on daisy-chained PCA9685 PWM boards.
type PCA9685 struct {
	Bus       i2c.Bus
	Frequency int

	pulses  PulseRange
	boards  []*pca9685.Dev
	mapping Mapping
	lock    sync.Mutex
}

// NewPCA9685 creates the driver on bus with default PWM settings.
func NewPCA9685(bus i2c.Bus) *PCA9685 {
	return &PCA9685{
		Bus:       bus,
		Frequency: DefaultFrequency,
		pulses:    DefaultPulseRange(),
	}
}

// Init implements Driver. At most MaxBoards addresses are used.
func (d *PCA9685) Init(addrs []uint8) error {
	if len(addrs) > MaxBoards {
		addrs = addrs[:MaxBoards]
	}
	boards := make([]*pca9685.Dev, 0, len(addrs))
	for _, addr := range addrs {
		dev, err := pca9685.NewI2C(d.Bus, uint16(addr))
		if err != nil {
			return fmt.Errorf("setup board 0x%02x: %w", addr, err)
		}
		if err = dev.SetPwmFreq(physic.Frequency(d.Frequency) * physic.Hertz); err != nil {
			return fmt.Errorf("set frequency of board 0x%02x: %w", addr, err)
		}
		glog.V(1).Infof("PCA9685 0x%02x ready at %dHz", addr, d.Frequency)
		boards = append(boards, dev)
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.pulses = NewPulseRange(d.Frequency, DefaultMinMicros, DefaultMaxMicros)
	d.boards = boards
	d.mapping.Reset(len(boards))
	return nil
}

// Map implements Driver.
func (d *PCA9685) Map(index, board, channel int) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.mapping.Set(index, board, channel)
}

// MoveTo implements Driver.
func (d *PCA9685) MoveTo(index, angle int) error {
	d.lock.Lock()
	if d.boards == nil {
		d.lock.Unlock()
		return ErrNotInitialized
	}
	board, channel, err := d.mapping.Lookup(index)
	if err == nil && board >= len(d.boards) {
		err = &MappingError{Index: index, Board: board, Channel: channel}
	}
	var dev *pca9685.Dev
	if err == nil {
		dev = d.boards[board]
	}
	pulse := d.pulses.AngleToPulse(angle)
	d.lock.Unlock()
	if err != nil {
		return err
	}
	return dev.SetPwm(channel, 0, gpio.Duty(pulse))
}

// AngleToPulse implements Driver.
func (d *PCA9685) AngleToPulse(angle int) int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.pulses.AngleToPulse(angle)
}
