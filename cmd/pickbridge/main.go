package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"
	"github.com/spf13/afero"

	"github.com/robotalks/picker/pkg/config"
	"github.com/robotalks/picker/pkg/framework"
	"github.com/robotalks/picker/pkg/l0/comm"
	"github.com/robotalks/picker/pkg/l1/env/bridge"
	"github.com/robotalks/picker/pkg/link"
)

var configFile = "picker.yaml"

func init() {
	bridge.SetupFlags()
	flag.StringVar(&configFile, "config", configFile, "Host configuration file.")
}

func main() {
	flag.Parse()

	conf, err := config.LoadHost(afero.NewOsFs(), configFile)
	if err != nil {
		glog.Exit(err)
	}
	if flag.NArg() > 0 {
		conf.Port = flag.Arg(0)
	}
	conn, err := link.Open(conf.Port, conf.Serial)
	if err != nil {
		glog.Exit(err)
	}
	defer conn.Close()

	client := comm.NewClient(conn)
	env := bridge.NewConfig().MustNewEnv(client)
	env.Bridge.ResetCount = conf.ResetCount
	env.Bridge.Neutral = conf.Calibration.Neutral
	loop := framework.NewLoop().Add(env).AddRunnable(framework.NamedRun("client", client))
	err = framework.NewRunner().HandleSignals().Go(framework.NamedRun("bridge", loop)).Wait()
	if err != nil {
		glog.Exit(err)
	}
}
