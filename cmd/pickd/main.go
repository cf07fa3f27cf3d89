package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"io"

	"github.com/golang/glog"
	"github.com/spf13/afero"

	"github.com/robotalks/picker/pkg/actuator"
	"github.com/robotalks/picker/pkg/clock"
	"github.com/robotalks/picker/pkg/config"
	"github.com/robotalks/picker/pkg/framework"
	"github.com/robotalks/picker/pkg/l0/remote"
	"github.com/robotalks/picker/pkg/link"
)

var (
	configFile = "pickd.yaml"
	simulate   bool
)

func init() {
	remote.SetupFlags()
	flag.StringVar(&configFile, "config", configFile, "Firmware configuration file.")
	flag.BoolVar(&simulate, "sim", simulate, "Serve a simulated device over websocket.")
}

func setup(dev *remote.Device, fw *config.Firmware) error {
	if err := dev.Remote.Begin(fw.Boards); err != nil {
		return err
	}
	for _, m := range fw.Servos {
		if err := dev.Remote.AddServo(m.Board, m.Channel, m.Index); err != nil {
			return err
		}
	}
	return nil
}

func runSimulated(ctx context.Context, conf *remote.Config, fw *config.Firmware) error {
	glog.Infof("simulating on %s%s", fw.Listen, link.DefaultPath)
	return link.ServeWebsocket(ctx, fw.Listen, link.DefaultPath, func(conn io.ReadWriteCloser) {
		dev := remote.NewDevice(conf, conn, actuator.NewRecorder(), clock.NewSystem())
		if err := setup(dev, fw); err != nil {
			glog.Errorf("setup: %v", err)
			return
		}
		if err := dev.Run(ctx); err != nil && ctx.Err() == nil {
			glog.Warningf("device stopped: %v", err)
		}
	})
}

func runDevice(ctx context.Context, conf *remote.Config, fw *config.Firmware) error {
	bus, err := actuator.OpenBus(fw.I2CBus)
	if err != nil {
		return err
	}
	defer bus.Close()
	port, err := link.Open(fw.Port, fw.Serial)
	if err != nil {
		return err
	}
	defer port.Close()
	dev := remote.NewDevice(conf, port, actuator.NewPCA9685(bus), clock.NewSystem())
	if err = setup(dev, fw); err != nil {
		return err
	}
	return dev.Run(ctx)
}

// deviceConfig applies the firmware file to base. Flags given on the
// command line win over the file, which wins over the environment and
// the defaults.
func deviceConfig(base *remote.Config, fw *config.Firmware, fs *flag.FlagSet) *remote.Config {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	conf := *base
	if fw.Capacity > 0 && !explicit["capacity"] {
		conf.Capacity = fw.Capacity
	}
	if fw.ResetCount > 0 && !explicit["reset-count"] {
		conf.ResetCount = fw.ResetCount
	}
	if !explicit["debug"] {
		conf.Debug = conf.Debug || fw.Debug
	}
	return &conf
}

func main() {
	flag.Parse()

	fw, err := config.LoadFirmware(afero.NewOsFs(), configFile)
	if err != nil {
		glog.Exit(err)
	}
	conf := deviceConfig(remote.Default(), fw, flag.CommandLine)
	glog.Infof("capacity %d, reset count %d", conf.Capacity, conf.ResetCount)

	run := runDevice
	if simulate || fw.Simulate {
		run = runSimulated
	}
	err = framework.NewRunner().
		HandleSignals().
		Go(framework.NamedRun("pickd", framework.RunFunc(func(ctx context.Context) error {
			return run(ctx, conf, fw)
		}))).
		Wait()
	if err != nil {
		glog.Exit(err)
	}
}
