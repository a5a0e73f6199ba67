// Package env sets up transports and publishers from flags and environment.
package env

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/fuel.go/pkg/comm"
	"github.com/robotalks/fuel.go/pkg/comm/mqtt"
	"github.com/robotalks/fuel.go/pkg/comm/serial"
	"github.com/robotalks/fuel.go/pkg/comm/websocket"
	"github.com/robotalks/fuel.go/pkg/session"
)

// Config provides common options to reach a fuel sensor.
type Config struct {
	// URL specifies the transport, e.g.
	// loop://, serial:///dev/ttyUSB0, /dev/ttyUSB0, COM3,
	// ws://host:port/path, mqtt://host:port/topic-prefix/
	URL         string
	BaudRate    int
	ReadTimeout time.Duration

	// DeviceID names the sensor in MQTT topics.
	DeviceID string
	// MQTTURL specifies the broker samples are published to.
	// Publishing is disabled when empty.
	MQTTURL string
}

// LoopURL selects the emulated sensor.
const LoopURL = "loop://"

var defaultConfig = Config{
	URL:         LoopURL,
	BaudRate:    serial.DefaultBaudRate,
	ReadTimeout: serial.DefaultReadTimeout,
}

func init() {
	if val := os.Getenv("FUEL_PORT"); val != "" {
		defaultConfig.URL = val
	}
	if val := os.Getenv("FUEL_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.BaudRate = baud
		}
	}
	if val := os.Getenv("FUEL_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("FUEL_DEVICE_ID"); val != "" {
		defaultConfig.DeviceID = val
	} else {
		defaultConfig.DeviceID = MachineID()
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.URL, "port", defaultConfig.URL, "Sensor transport URL or serial port, loop:// for emulation.")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Serial port baud rate.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Time to wait for a response.")
	flag.StringVar(&defaultConfig.DeviceID, "device-id", defaultConfig.DeviceID, "Device ID used in MQTT topics.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL to publish samples, e.g. mqtt://localhost:1883/fuel/.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Transport is a closable packet transport.
type Transport interface {
	comm.PacketReadWriter
	io.Closer
}

// IsEmulated indicates the config selects the emulated sensor.
func (c *Config) IsEmulated() bool {
	return c.URL == LoopURL
}

// Dial opens the transport selected by URL.
func (c *Config) Dial() (Transport, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid transport URL: %w", err)
	}
	switch u.Scheme {
	case "loop":
		return session.NewTimeSeededEmulator(), nil
	case "", "serial":
		rw, err := serial.Open(serial.Config{
			Port:        serialPort(u),
			BaudRate:    c.BaudRate,
			ReadTimeout: c.ReadTimeout,
		})
		if err != nil {
			return nil, err
		}
		return rw, nil
	case "ws", "wss":
		origin := "http://" + u.Host + "/"
		if u.Scheme == "wss" {
			origin = "https://" + u.Host + "/"
		}
		rw, err := websocket.Dial(c.URL, origin)
		if err != nil {
			return nil, err
		}
		return rw.WithTimeout(c.ReadTimeout), nil
	case "mqtt":
		return c.dialMQTT()
	}
	return nil, fmt.Errorf("unknown transport URL scheme: %q", u.Scheme)
}

// MustDial opens the transport and fails on error.
func (c *Config) MustDial() Transport {
	t, err := c.Dial()
	if err != nil {
		log.Fatalln(err)
	}
	return t
}

// NewPublisher connects to MQTTURL and creates a sample publisher.
// It returns nil without error when MQTTURL is empty.
func (c *Config) NewPublisher() (*mqtt.Publisher, error) {
	if c.MQTTURL == "" {
		return nil, nil
	}
	q, err := mqtt.NewQueueFromURL(c.MQTTURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT URL: %w", err)
	}
	if err = q.Connect(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.MQTTURL, err)
	}
	return mqtt.NewPublisher(q, c.DeviceID), nil
}

type mqttTransport struct {
	*mqtt.ReadWriter
}

func (t *mqttTransport) Close() error {
	err := t.ReadWriter.Close()
	t.Queue.Close()
	return err
}

func (c *Config) dialMQTT() (Transport, error) {
	q, err := mqtt.NewQueueFromURL(c.URL)
	if err != nil {
		return nil, err
	}
	if err = q.Connect(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.URL, err)
	}
	rw := mqtt.NewPacketReadWriter(q).ForHost(c.DeviceID)
	if c.ReadTimeout > 0 {
		rw.Timeout = c.ReadTimeout
	}
	if err = rw.Open(); err != nil {
		q.Close()
		return nil, err
	}
	return &mqttTransport{ReadWriter: rw}, nil
}

func serialPort(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	if u.Scheme == "serial" && u.Host != "" {
		// serial://COM3
		return u.Host + u.Path
	}
	return u.Path
}
