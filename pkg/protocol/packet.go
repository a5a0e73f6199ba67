package protocol

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Header is the magic value starting every packet.
const Header uint16 = 0xAA55

// Command identifies the kind of a packet.
type Command uint16

// Commands
const (
	CmdQuery    Command = 0x1111
	CmdResponse Command = 0x2222
)

// String implements fmt.Stringer.
func (c Command) String() string {
	switch c {
	case CmdQuery:
		return "query"
	case CmdResponse:
		return "response"
	}
	return fmt.Sprintf("cmd(%04x)", uint16(c))
}

// Sizes of packet parts.
const (
	PrefixSize    = 6 // header + command + length
	CRCSize       = 2
	MinPacketSize = PrefixSize + CRCSize
	SampleSize    = 4
	QueryLength   = 2
	// MaxSamples is the most samples a Response can carry
	// with its length in 16 bits.
	MaxSamples = 0xffff / SampleSize
)

var byteOrder = binary.BigEndian

// Sample is a single fuel level reading.
type Sample struct {
	// Timestamp is in seconds.
	Timestamp uint16
	// FuelLevel is the raw reading, 0..32767 nominal.
	FuelLevel uint16
}

// Message is a decoded packet, either *Query or *Response.
type Message interface {
	Command() Command
	Bytes() ([]byte, error)
}

// Query requests NSamples samples.
type Query struct {
	NSamples uint16
}

// Command implements Message.
func (q *Query) Command() Command { return CmdQuery }

// Bytes implements Message.
func (q *Query) Bytes() ([]byte, error) {
	return EncodeQuery(q.NSamples), nil
}

// Response carries samples in temporal order.
type Response struct {
	Samples []Sample
}

// Command implements Message.
func (r *Response) Command() Command { return CmdResponse }

// Bytes implements Message.
func (r *Response) Bytes() ([]byte, error) {
	return EncodeResponse(r.Samples)
}

// EncodeQuery encodes a Query packet.
func EncodeQuery(nSamples uint16) []byte {
	b := make([]byte, PrefixSize+QueryLength, PrefixSize+QueryLength+CRCSize)
	putPrefix(b, CmdQuery, QueryLength)
	byteOrder.PutUint16(b[PrefixSize:], nSamples)
	return appendCRC(b)
}

// EncodeResponse encodes a Response packet. Samples are written in order.
func EncodeResponse(samples []Sample) ([]byte, error) {
	if len(samples) > MaxSamples {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySamples, len(samples), MaxSamples)
	}
	length := len(samples) * SampleSize
	b := make([]byte, PrefixSize+length, PrefixSize+length+CRCSize)
	putPrefix(b, CmdResponse, uint16(length))
	for n, s := range samples {
		off := PrefixSize + n*SampleSize
		byteOrder.PutUint16(b[off:], s.Timestamp)
		byteOrder.PutUint16(b[off+2:], s.FuelLevel)
	}
	return appendCRC(b), nil
}

// Decode verifies and decodes a complete packet.
// The CRC is verified before any field is interpreted.
func Decode(b []byte) (Message, error) {
	if len(b) < MinPacketSize {
		return nil, ErrFrameTooShort
	}
	payload := b[:len(b)-CRCSize]
	received := byteOrder.Uint16(b[len(b)-CRCSize:])
	if computed := Checksum(payload); computed != received {
		return nil, &CRCError{Received: received, Computed: computed}
	}

	if header := byteOrder.Uint16(payload[0:2]); header != Header {
		return nil, &HeaderError{Header: header}
	}
	cmd := Command(byteOrder.Uint16(payload[2:4]))
	length := int(byteOrder.Uint16(payload[4:6]))
	data := payload[PrefixSize:]

	switch cmd {
	case CmdQuery:
		// length is not checked against QueryLength, only the bytes present.
		if len(data) < QueryLength {
			return nil, ErrTruncatedQueryPayload
		}
		return &Query{NSamples: byteOrder.Uint16(data)}, nil
	case CmdResponse:
		if length%SampleSize != 0 {
			return nil, ErrMisalignedLength
		}
		if len(data) < length {
			return nil, ErrTruncatedResponsePayload
		}
		samples := make([]Sample, length/SampleSize)
		for n := range samples {
			off := n * SampleSize
			samples[n].Timestamp = byteOrder.Uint16(data[off:])
			samples[n].FuelLevel = byteOrder.Uint16(data[off+2:])
		}
		return &Response{Samples: samples}, nil
	}
	return nil, &CommandError{Command: cmd}
}

// Hex formats bytes as upper-case hex separated by spaces, e.g. "AA 55 11 11".
func Hex(b []byte) string {
	var sb strings.Builder
	for n, v := range b {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

func putPrefix(b []byte, cmd Command, length uint16) {
	byteOrder.PutUint16(b[0:], Header)
	byteOrder.PutUint16(b[2:], uint16(cmd))
	byteOrder.PutUint16(b[4:], length)
}

func appendCRC(b []byte) []byte {
	var crc [CRCSize]byte
	byteOrder.PutUint16(crc[:], Checksum(b))
	return append(b, crc[:]...)
}
