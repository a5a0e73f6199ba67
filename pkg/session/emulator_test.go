package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/fuel.go/pkg/comm"
	"github.com/robotalks/fuel.go/pkg/protocol"
)

// fixedRand returns values in sequence, modulo n, and records the bounds.
type fixedRand struct {
	values []int
	bounds []int
}

func (r *fixedRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	v := r.values[0]
	r.values = append(r.values[1:], v)
	return v % n
}

func TestEmulatorSamples(t *testing.T) {
	rnd := &fixedRand{values: []int{500, 16384, 100, 32767}}
	e := NewEmulator(rnd)
	samples := e.Samples(3)
	require.Equal(t, []protocol.Sample{
		{Timestamp: 500, FuelLevel: 16384},
		{Timestamp: 501, FuelLevel: 100},
		{Timestamp: 502, FuelLevel: 32767},
	}, samples)
	require.Equal(t, []int{EmulatedTimeSpan - 3, EmulatedLevelRange, EmulatedLevelRange, EmulatedLevelRange}, rnd.bounds)
}

func TestEmulatorLongSpan(t *testing.T) {
	rnd := &fixedRand{values: []int{7}}
	samples := NewEmulator(rnd).Samples(EmulatedTimeSpan)
	require.Len(t, samples, EmulatedTimeSpan)
	require.Equal(t, uint16(0), samples[0].Timestamp)
	require.Equal(t, uint16(EmulatedTimeSpan-1), samples[EmulatedTimeSpan-1].Timestamp)
}

func TestEmulatorReadWrite(t *testing.T) {
	e := NewEmulator(&fixedRand{values: []int{10, 20}})
	_, err := e.ReadPacket()
	require.Equal(t, comm.ErrTimeout, err)

	require.NoError(t, e.WritePacket(protocol.EncodeQuery(2)))
	pkt, err := e.ReadPacket()
	require.NoError(t, err)
	msg, err := protocol.Decode(pkt)
	require.NoError(t, err)
	require.Equal(t, []protocol.Sample{{Timestamp: 10, FuelLevel: 20}, {Timestamp: 11, FuelLevel: 10}}, msg.(*protocol.Response).Samples)

	_, err = e.ReadPacket()
	require.Equal(t, comm.ErrTimeout, err)
}

func TestEmulatorRejects(t *testing.T) {
	e := NewTimeSeededEmulator()
	resp, err := protocol.EncodeResponse(nil)
	require.NoError(t, err)
	require.True(t, errors.Is(e.WritePacket(resp), ErrUnexpectedMessage))

	bad := protocol.EncodeQuery(1)
	bad[len(bad)-1] ^= 0xff
	require.True(t, errors.Is(e.WritePacket(bad), protocol.ErrCRCMismatch))

	require.True(t, errors.Is(e.WritePacket(protocol.EncodeQuery(protocol.MaxSamples+1)), protocol.ErrTooManySamples))
	require.NoError(t, e.Close())
}
