package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/robotalks/fuel.go/pkg/comm"
	"github.com/robotalks/fuel.go/pkg/protocol"
)

// RandSource provides random numbers for emulation.
// *rand.Rand satisfies it.
type RandSource interface {
	// Intn returns a number in [0, n).
	Intn(n int) int
}

// Emulation parameters.
const (
	// EmulatedTimeSpan bounds the starting timestamp of emulated samples.
	EmulatedTimeSpan = 3600
	// EmulatedLevelRange bounds emulated fuel levels.
	EmulatedLevelRange = 1 << 15
)

// Emulator is a simulated sensor implementing comm.PacketReadWriter.
// Each query written produces one response with random samples.
type Emulator struct {
	Rand RandSource

	pending [][]byte
}

// NewEmulator creates an Emulator using rnd.
func NewEmulator(rnd RandSource) *Emulator {
	return &Emulator{Rand: rnd}
}

// NewTimeSeededEmulator creates an Emulator seeded from current time.
func NewTimeSeededEmulator() *Emulator {
	return NewEmulator(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Samples generates n samples with consecutive timestamps
// from a random start.
func (e *Emulator) Samples(n int) []protocol.Sample {
	var start int
	if n < EmulatedTimeSpan {
		start = e.Rand.Intn(EmulatedTimeSpan - n)
	}
	samples := make([]protocol.Sample, n)
	for i := range samples {
		samples[i].Timestamp = uint16(start + i)
		samples[i].FuelLevel = uint16(e.Rand.Intn(EmulatedLevelRange))
	}
	return samples
}

// WritePacket implements PacketWriter.
func (e *Emulator) WritePacket(pkt []byte) error {
	msg, err := protocol.Decode(pkt)
	if err != nil {
		return err
	}
	q, ok := msg.(*protocol.Query)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnexpectedMessage, msg.Command())
	}
	resp, err := protocol.EncodeResponse(e.Samples(int(q.NSamples)))
	if err != nil {
		return err
	}
	e.pending = append(e.pending, resp)
	return nil
}

// ReadPacket implements PacketReader.
func (e *Emulator) ReadPacket() ([]byte, error) {
	if len(e.pending) == 0 {
		return nil, comm.ErrTimeout
	}
	pkt := e.pending[0]
	e.pending = e.pending[1:]
	return pkt, nil
}

// Close implements io.Closer.
func (e *Emulator) Close() error {
	e.pending = nil
	return nil
}
