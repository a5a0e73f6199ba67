package sh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/fuel.go/pkg/comm/serial"
	"github.com/robotalks/fuel.go/pkg/protocol"
)

var (
	// OpenCmd opens a transport.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "open [URL], open transport, e.g. loop://, serial:///dev/ttyUSB0",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			url := s.Config.URL
			if len(c.Args) > 0 {
				url = c.Args[0]
			}
			if err := s.Open(url); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes current transport.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "close current transport",
		Func: MustBeOpen(func(c *ishell.Context) {
			ShellFrom(c).Close()
		}),
	}

	// QueryCmd queries samples.
	QueryCmd = ishell.Cmd{
		Name:    "query",
		Aliases: []string{"q"},
		Help:    "query [N], query N samples",
		Func: MustBeOpen(func(c *ishell.Context) {
			n, err := samplesArg(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			out, err := ShellFrom(c).Query(n)
			if err != nil {
				c.Err(err)
				return
			}
			c.Print(out)
		}),
	}

	// PacketCmd prints encoded packets without sending them.
	PacketCmd = ishell.Cmd{
		Name:    "packet",
		Aliases: []string{"hex"},
		Help:    "packet [N], print query packet for N samples",
		Func: func(c *ishell.Context) {
			n, err := samplesArg(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(protocol.Hex(protocol.EncodeQuery(n)))
		},
	}

	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name: "ports",
		Help: "list serial ports",
		Func: func(c *ishell.Context) {
			ports, err := serial.Ports()
			if err != nil {
				c.Err(err)
				return
			}
			if len(ports) == 0 {
				c.Println("No serial ports found")
				return
			}
			c.Println(strings.Join(ports, "\n"))
		},
	}
)

func samplesArg(args []string) (uint16, error) {
	if len(args) == 0 {
		return defaultSamples, nil
	}
	n, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid number of samples %q: %w", args[0], err)
	}
	return uint16(n), nil
}
