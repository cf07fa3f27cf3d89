package remote

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l0/sched"
)

// Config defines the configuration of the firmware controller.
type Config struct {
	// Capacity is the maximum number of buffered commands.
	Capacity int
	// ResetCount is the number of servos addressed by a RESET packet.
	ResetCount int
	// Debug enables the diagnostic status lines.
	Debug bool
	// HaltInterval is the period the fatal error is reported at once halted.
	HaltInterval time.Duration
}

var defaultConfig = Config{
	Capacity:     sched.DefaultCapacity,
	ResetCount:   comm.DefaultResetCount,
	HaltInterval: time.Second,
}

func init() {
	if val, err := strconv.Atoi(os.Getenv("PICKER_CAPACITY")); err == nil && val > 0 {
		defaultConfig.Capacity = val
	}
	if val, err := strconv.ParseBool(os.Getenv("PICKER_DEBUG")); err == nil {
		defaultConfig.Debug = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.Capacity, "capacity", defaultConfig.Capacity, "Maximum number of buffered commands.")
	flag.IntVar(&defaultConfig.ResetCount, "reset-count", defaultConfig.ResetCount, "Number of angles in a RESET packet.")
	flag.BoolVar(&defaultConfig.Debug, "debug", defaultConfig.Debug, "Emit diagnostic status lines.")
	flag.DurationVar(&defaultConfig.HaltInterval, "halt-interval", defaultConfig.HaltInterval, "Interval of repeating the fatal error.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
