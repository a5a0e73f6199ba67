// Package bridge shares one device transport with remote clients.
package bridge

import (
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/fuel.go/pkg/comm"
	wscomm "github.com/robotalks/fuel.go/pkg/comm/websocket"
	"github.com/robotalks/fuel.go/pkg/protocol"
	"github.com/robotalks/fuel.go/pkg/session"
)

// Bridge forwards queries from clients to the device and
// responses back. Exchanges are serialized on the device.
type Bridge struct {
	Device comm.PacketReadWriter

	lock sync.Mutex
}

// New creates a Bridge.
func New(device comm.PacketReadWriter) *Bridge {
	return &Bridge{Device: device}
}

// Exchange forwards one query and returns the raw device reply.
// Only valid queries are forwarded.
func (b *Bridge) Exchange(pkt []byte) ([]byte, error) {
	msg, err := protocol.Decode(pkt)
	if err != nil {
		return nil, err
	}
	if msg.Command() != protocol.CmdQuery {
		return nil, fmt.Errorf("%w: %s", session.ErrUnexpectedMessage, msg.Command())
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if err := b.Device.WritePacket(pkt); err != nil {
		return nil, err
	}
	return b.Device.ReadPacket()
}

// Serve handles packets from client until it fails to read.
// Failed exchanges are logged and the client gets no reply,
// same as a silent device.
func (b *Bridge) Serve(name string, client comm.PacketReadWriter) error {
	glog.Infof("%s: connected", name)
	for {
		pkt, err := client.ReadPacket()
		if err != nil {
			if err == io.EOF {
				glog.Infof("%s: disconnected", name)
				return nil
			}
			return err
		}
		reply, err := b.Exchange(pkt)
		if err != nil {
			glog.Warningf("%s: %v", name, err)
			continue
		}
		if err = client.WritePacket(reply); err != nil {
			return err
		}
	}
}

// Handler serves websocket clients.
func (b *Bridge) Handler() websocket.Handler {
	return func(conn *websocket.Conn) {
		name := conn.Request().RemoteAddr
		if err := b.Serve(name, wscomm.New(conn)); err != nil {
			glog.Errorf("%s: %v", name, err)
		}
	}
}
