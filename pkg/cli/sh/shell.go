// Package sh provides an interactive shell to query fuel sensors.
package sh

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/fuel.go/pkg/comm/mqtt"
	"github.com/robotalks/fuel.go/pkg/env"
	"github.com/robotalks/fuel.go/pkg/render"
	"github.com/robotalks/fuel.go/pkg/session"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoOpen    bool

	Shell      *ishell.Shell
	Config     *env.Config
	Chart      *render.Chart
	Transport  env.Transport
	Controller *session.Controller
	Publisher  *mqtt.Publisher
}

const (
	shellKey       = "$shell"
	closedPrompt   = "[none] > "
	defaultSamples = 60
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
		&QueryCmd,
		&PacketCmd,
		&PortsCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print samples in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		Chart:  render.NewChart(render.DefaultConfig),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command func requires an open transport.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Controller == nil {
			c.Err(fmt.Errorf("not open"))
			return
		}
		fn(c)
	}
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the transport at URL, replacing the current one.
func (s *Shell) Open(url string) error {
	conf := *s.Config
	conf.URL = url
	t, err := conf.Dial()
	if err != nil {
		return err
	}
	s.Close()
	s.Transport, s.Controller = t, session.NewController(t)
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", url))
	return nil
}

// Close closes the current transport.
func (s *Shell) Close() {
	if s.Transport != nil {
		if err := s.Transport.Close(); err != nil {
			glog.Warningf("close: %v", err)
		}
		s.Transport, s.Controller = nil, nil
		s.Shell.SetPrompt(closedPrompt)
	}
}

// ClosePublisher disconnects the sample publisher if any.
func (s *Shell) ClosePublisher() {
	if s.Publisher != nil {
		if err := s.Publisher.Queue.Close(); err != nil {
			glog.Warningf("close publisher: %v", err)
		}
		s.Publisher = nil
	}
}

// Query runs a query and formats the samples for output.
func (s *Shell) Query(nSamples uint16) (string, error) {
	samples, err := s.Controller.Do(nSamples)
	if err != nil {
		return "", err
	}
	if s.Publisher != nil {
		if err := s.Publisher.HandleSamples(samples); err != nil {
			glog.Warningf("publish: %v", err)
		}
	}
	var out strings.Builder
	if s.OutputJSON {
		err = render.JSON(&out, samples)
	} else {
		err = s.Chart.Render(&out, samples)
	}
	return out.String(), err
}

// Run runs the shell and fails on error.
func (s *Shell) Run(args ...string) {
	if err := s.Exec(args...); err != nil {
		log.Fatalln(err)
	}
}

// Exec runs the shell, or processes args as one command when present.
// The transport and publisher are closed on return.
func (s *Shell) Exec(args ...string) error {
	pub, err := s.Config.NewPublisher()
	if err != nil {
		return err
	}
	s.Publisher = pub
	defer s.ClosePublisher()
	if s.AutoOpen {
		if s.Interactive {
			s.Shell.Printf("Opening %s ...\n", s.Config.URL)
		}
		if err := s.Open(s.Config.URL); err != nil {
			return fmt.Errorf("open %q failed: %w", s.Config.URL, err)
		}
	}
	defer s.Close()

	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return errors.New("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoOpen(true).Run(flag.Args()...)
}

