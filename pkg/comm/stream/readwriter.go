// Package stream frames packets over a byte stream such as a serial port.
package stream

import (
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/fuel.go/pkg/comm"
	"github.com/robotalks/fuel.go/pkg/protocol"
)

// ReadWriter implements PacketReadWriter.
// Packets are delimited by the protocol header and length.
type ReadWriter struct {
	io.ReadWriter

	parser protocol.Parser
	frames [][]byte
	buf    []byte
}

// New creates a ReadWriter with io.ReadWriter.
// Reads returning no data (e.g. a serial port read timeout)
// are reported as comm.ErrTimeout.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{ReadWriter: s, buf: make([]byte, 256)}
}

// ReadPacket implements PacketReader.
// On timeout, packets found inside a partially received one are
// returned before reporting comm.ErrTimeout.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	for len(p.frames) == 0 {
		n, err := p.Read(p.buf)
		if n > 0 {
			p.frames = p.parser.ParseBytes(p.buf[:n])
		}
		if len(p.frames) > 0 {
			break
		}
		if err != nil && !os.IsTimeout(err) {
			return nil, err
		}
		if (err != nil || n == 0) && !p.flush() {
			return nil, comm.ErrTimeout
		}
	}
	pkt := p.frames[0]
	p.frames = p.frames[1:]
	return pkt, nil
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	_, err := p.Write(pkt)
	return err
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (p *ReadWriter) flush() bool {
	if !p.parser.Receiving() {
		return false
	}
	p.frames = p.parser.Flush()
	if len(p.frames) == 0 {
		glog.V(2).Info("timeout with partial packet, dropped")
		return false
	}
	glog.V(2).Infof("timeout with partial packet, resynced %d packets", len(p.frames))
	return true
}
