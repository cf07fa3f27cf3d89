// Package sh provides the interactive shell of the host.
package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/spf13/afero"

	"github.com/robotalks/picker/pkg/config"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell   *ishell.Shell
	Config  *config.Host
	Session *Session
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "

	// DefaultTimeout is the time to wait for replies of the device.
	DefaultTimeout = 3 * time.Second
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	configFile = "picker.yaml"
	port       string

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	if val := os.Getenv("PICKER_PORT"); val != "" {
		port = val
	}
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.StringVar(&configFile, "config", configFile, "Host configuration file.")
	flag.StringVar(&port, "port", port, "Serial port or websocket URL of the device.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *config.Host) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// SessionFrom gets the connected Session from ishell context.
func SessionFrom(c *ishell.Context) *Session {
	return ShellFrom(c).Session
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// CommandContext creates the context for a command waiting for
// replies. Ctrl-C cancels it.
func CommandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// Print prints a result, in JSON if requested.
func Print(c *ishell.Context, v interface{}) {
	if ShellFrom(c).OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	if s, ok := v.(fmt.Stringer); ok {
		c.Println(s.String())
		return
	}
	c.Println(v)
}

// Connect connects the device at target.
func (s *Shell) Connect(target string) error {
	session, err := Open(target, s.Config)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Session = session
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", target))
	return nil
}

// Disconnect disconnects current device.
func (s *Shell) Disconnect() {
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Port != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Port)
		}
		if err := s.Connect(s.Config.Port); err != nil {
			if !s.Interactive {
				log.Fatalf("connect %q failed: %v", s.Config.Port, err)
			}
			s.Shell.Printf("connect %q failed: %v\n", s.Config.Port, err)
		}
		defer s.Disconnect()
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// ConnectCmd connects a device.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[PORT|URL]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			target := s.Config.Port
			if len(c.Args) > 0 {
				target = c.Args[0]
			}
			if err := s.Connect(target); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current device.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// LoadConfig loads the host configuration named by flags.
func LoadConfig(fs afero.Fs) (*config.Host, error) {
	conf, err := config.LoadHost(fs, configFile)
	if err != nil {
		return nil, err
	}
	if port != "" {
		conf.Port = port
	}
	return conf, nil
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf, err := LoadConfig(afero.NewOsFs())
	if err != nil {
		log.Fatalln(err)
	}
	New(conf).WithAutoConnect(true).Run(flag.Args()...)
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}
