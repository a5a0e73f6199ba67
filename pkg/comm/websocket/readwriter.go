// Package websocket carries one packet per websocket message.
package websocket

import (
	"errors"
	"net"
	"time"

	"golang.org/x/net/websocket"

	"github.com/robotalks/fuel.go/pkg/comm"
)

// ReadWriter implements PacketReadWriter.
type ReadWriter struct {
	Conn *websocket.Conn
	// Timeout bounds ReadPacket, 0 to wait forever.
	Timeout time.Duration
}

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *ReadWriter {
	return &ReadWriter{Conn: conn}
}

// Dial connects to a websocket server, e.g. a fuelbridge.
func Dial(url, origin string) (*ReadWriter, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// WithTimeout sets Timeout.
func (p *ReadWriter) WithTimeout(timeout time.Duration) *ReadWriter {
	p.Timeout = timeout
	return p
}

// ReadPacket implements PacketReader.
// It returns comm.ErrTimeout when no message arrives within Timeout.
func (p *ReadWriter) ReadPacket() (pkt []byte, err error) {
	var deadline time.Time
	if p.Timeout > 0 {
		deadline = time.Now().Add(p.Timeout)
	}
	if err = p.Conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	err = websocket.Message.Receive(p.Conn, &pkt)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return nil, comm.ErrTimeout
	}
	return
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	return websocket.Message.Send(p.Conn, pkt)
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	return p.Conn.Close()
}
