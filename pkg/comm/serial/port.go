// Package serial opens physical serial ports as packet transports.
package serial

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"

	"github.com/robotalks/fuel.go/pkg/comm/stream"
)

// Config defines serial port settings.
type Config struct {
	Port        string
	BaudRate    int
	ReadTimeout time.Duration
}

// Defaults
const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = time.Second
)

// Mode returns 8N1 mode with configured baud rate.
func (c *Config) Mode() *serial.Mode {
	baud := c.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Open opens the port and wraps it as a packet stream.
func Open(conf Config) (*stream.ReadWriter, error) {
	port, err := serial.Open(conf.Port, conf.Mode())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Port, err)
	}
	timeout := conf.ReadTimeout
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", conf.Port, err)
	}
	glog.Infof("opened %s at %d baud", conf.Port, conf.Mode().BaudRate)
	return stream.New(port), nil
}

// Ports lists available serial ports.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
