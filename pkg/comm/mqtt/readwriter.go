package mqtt

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/fuel.go/pkg/comm"
)

// ReadWriter implements PacketReadWriter over a pair of topics.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string
	Timeout  time.Duration

	sub      *Subscription
	packetCh chan []byte
}

// DefaultTimeout is the default time to wait for a packet.
const DefaultTimeout = time.Second

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{Queue: q, Timeout: DefaultTimeout, packetCh: make(chan []byte, 16)}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForHost sets topics using the convention for the querying side:
// SubTopic = device/msg
// PubTopic = device/cmd
func (p *ReadWriter) ForHost(device string) *ReadWriter {
	return p.WithTopics(device+"/msg", device+"/cmd")
}

// ForDevice sets topics using the convention for the sensor side:
// SubTopic = device/cmd
// PubTopic = device/msg
func (p *ReadWriter) ForDevice(device string) *ReadWriter {
	return p.WithTopics(device+"/cmd", device+"/msg")
}

// Open subscribes SubTopic.
func (p *ReadWriter) Open() error {
	p.sub = p.Queue.Sub(p.SubTopic, p.handleMsg)
	if token := p.sub.Token; token != nil {
		token.Wait()
		return token.Error()
	}
	return nil
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-time.After(timeout):
		return nil, comm.ErrTimeout
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	if sub := p.sub; sub != nil {
		p.sub = nil
		return sub.Close()
	}
	return nil
}

func (p *ReadWriter) handleMsg(topic string, payload []byte) {
	select {
	case p.packetCh <- payload:
	default:
		glog.Warningf("%s: packet dropped, reader too slow", topic)
	}
}
