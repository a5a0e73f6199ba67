package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/fuel.go/pkg/comm"
	"github.com/robotalks/fuel.go/pkg/protocol"
)

type scriptedReadWriter struct {
	written  [][]byte
	replies  [][]byte
	writeErr error
}

func (s *scriptedReadWriter) ReadPacket() ([]byte, error) {
	if len(s.replies) == 0 {
		return nil, comm.ErrTimeout
	}
	pkt := s.replies[0]
	s.replies = s.replies[1:]
	return pkt, nil
}

func (s *scriptedReadWriter) WritePacket(pkt []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.written = append(s.written, pkt)
	return nil
}

func mustEncodeResponse(t *testing.T, samples ...protocol.Sample) []byte {
	b, err := protocol.EncodeResponse(samples)
	require.NoError(t, err)
	return b
}

func TestControllerDo(t *testing.T) {
	samples := []protocol.Sample{{Timestamp: 100, FuelLevel: 16384}, {Timestamp: 101, FuelLevel: 16300}}
	rw := &scriptedReadWriter{replies: [][]byte{mustEncodeResponse(t, samples...)}}
	c := NewController(rw)
	require.Equal(t, StateIdle, c.State())

	require.NoError(t, c.Query(2))
	require.Equal(t, StateAwaitingResponse, c.State())
	require.Equal(t, [][]byte{protocol.EncodeQuery(2)}, rw.written)

	got, err := c.Receive()
	require.NoError(t, err)
	require.Equal(t, samples, got)
	require.Equal(t, StateIdle, c.State())
}

func TestControllerReceiveWithoutQuery(t *testing.T) {
	c := NewController(&scriptedReadWriter{})
	_, err := c.Receive()
	require.Equal(t, ErrNoQuery, err)
}

func TestControllerWriteError(t *testing.T) {
	writeErr := errors.New("port closed")
	c := NewController(&scriptedReadWriter{writeErr: writeErr})
	_, err := c.Do(1)
	require.Equal(t, writeErr, err)
	require.Equal(t, StateIdle, c.State())
}

func TestControllerErrorsPropagate(t *testing.T) {
	corrupted := mustEncodeResponse(t, protocol.Sample{Timestamp: 1, FuelLevel: 2})
	corrupted[7] ^= 0x01

	testCases := []struct {
		name   string
		reply  []byte
		expect error
	}{
		{"timeout", nil, comm.ErrTimeout},
		{"crc", corrupted, protocol.ErrCRCMismatch},
		{"short", []byte{0xaa, 0x55}, protocol.ErrFrameTooShort},
		{"query instead of response", protocol.EncodeQuery(1), ErrUnexpectedMessage},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rw := &scriptedReadWriter{}
			if tc.reply != nil {
				rw.replies = [][]byte{tc.reply}
			}
			c := NewController(rw)
			samples, err := c.Do(1)
			require.Nil(t, samples)
			require.Truef(t, errors.Is(err, tc.expect), "expect %v, got %v", tc.expect, err)
			require.Equal(t, StateIdle, c.State())
		})
	}
}

func TestControllerWithEmulator(t *testing.T) {
	c := NewController(NewTimeSeededEmulator())
	for _, n := range []uint16{0, 1, 20, 60} {
		samples, err := c.Do(n)
		require.NoError(t, err)
		require.Len(t, samples, int(n))
	}
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "awaiting-response", StateAwaitingResponse.String())
	require.Equal(t, "state(7)", State(7).String())
}
