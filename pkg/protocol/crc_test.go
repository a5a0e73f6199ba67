package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	testCases := []struct {
		name   string
		data   []byte
		expect uint16
	}{
		{"check value", []byte("123456789"), 0x29b1},
		{"empty", nil, 0xffff},
		{"query 60", []byte{0xaa, 0x55, 0x11, 0x11, 0x00, 0x02, 0x00, 0x3c}, 0xdd0b},
		{"response 1 sample", []byte{0xaa, 0x55, 0x22, 0x22, 0x00, 0x04, 0x00, 0x64, 0x40, 0x00}, 0xea90},
		{"response empty", []byte{0xaa, 0x55, 0x22, 0x22, 0x00, 0x00}, 0x6ddf},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Checksum(tc.data))
		})
	}
}
