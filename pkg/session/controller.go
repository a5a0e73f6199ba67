// Package session drives query/response exchanges over a packet transport.
package session

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/fuel.go/pkg/comm"
	"github.com/robotalks/fuel.go/pkg/protocol"
)

var (
	// ErrNoQuery indicates Receive is called without a pending query.
	ErrNoQuery = errors.New("no query pending")
	// ErrUnexpectedMessage indicates a packet of the wrong kind is received.
	ErrUnexpectedMessage = errors.New("unexpected message")
)

// State is the state of a Controller.
type State int

// States
const (
	StateIdle State = iota
	StateAwaitingResponse
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting-response"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Controller issues queries and receives samples.
// A Controller must not be used from multiple goroutines concurrently.
type Controller struct {
	ReadWriter comm.PacketReadWriter

	state State
}

// NewController creates a Controller over a transport.
func NewController(rw comm.PacketReadWriter) *Controller {
	return &Controller{ReadWriter: rw}
}

// State gets the current state.
func (c *Controller) State() State {
	return c.state
}

// Query sends a query for nSamples samples.
func (c *Controller) Query(nSamples uint16) error {
	pkt := protocol.EncodeQuery(nSamples)
	if glog.V(2) {
		glog.Infof("TX %s", protocol.Hex(pkt))
	}
	if err := c.ReadWriter.WritePacket(pkt); err != nil {
		return err
	}
	c.state = StateAwaitingResponse
	return nil
}

// Receive reads and decodes the response of the pending query.
// The controller returns to idle whatever the outcome.
func (c *Controller) Receive() ([]protocol.Sample, error) {
	if c.state != StateAwaitingResponse {
		return nil, ErrNoQuery
	}
	c.state = StateIdle
	pkt, err := c.ReadWriter.ReadPacket()
	if err != nil {
		return nil, err
	}
	if glog.V(2) {
		glog.Infof("RX %s", protocol.Hex(pkt))
	}
	msg, err := protocol.Decode(pkt)
	if err != nil {
		return nil, err
	}
	resp, ok := msg.(*protocol.Response)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedMessage, msg.Command())
	}
	return resp.Samples, nil
}

// Do queries and receives in one call.
func (c *Controller) Do(nSamples uint16) ([]protocol.Sample, error) {
	if err := c.Query(nSamples); err != nil {
		return nil, err
	}
	return c.Receive()
}
