package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameTooShort indicates fewer bytes than the smallest packet.
	ErrFrameTooShort = errors.New("frame too short")
	// ErrCRCMismatch indicates the packet failed integrity check.
	ErrCRCMismatch = errors.New("crc mismatch")
	// ErrInvalidHeader indicates the packet doesn't start with Header.
	ErrInvalidHeader = errors.New("invalid header")
	// ErrUnknownCommand indicates the command code is not recognized.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMisalignedLength indicates a response length not a multiple of SampleSize.
	ErrMisalignedLength = errors.New("misaligned length")
	// ErrTruncatedQueryPayload indicates the query payload is missing bytes.
	ErrTruncatedQueryPayload = errors.New("truncated query payload")
	// ErrTruncatedResponsePayload indicates the response carries fewer bytes
	// than its declared length.
	ErrTruncatedResponsePayload = errors.New("truncated response payload")
	// ErrTooManySamples indicates the samples don't fit in the 16-bit length field.
	ErrTooManySamples = errors.New("too many samples")
)

// CRCError is returned when the received CRC doesn't match the computed one.
type CRCError struct {
	Received uint16
	Computed uint16
}

// Error implements error.
func (e *CRCError) Error() string {
	return fmt.Sprintf("crc mismatch: got %04x, expected %04x", e.Received, e.Computed)
}

// Unwrap returns ErrCRCMismatch.
func (e *CRCError) Unwrap() error {
	return ErrCRCMismatch
}

// HeaderError wraps the unexpected header value.
type HeaderError struct {
	Header uint16
}

// Error implements error.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid header: %04x", e.Header)
}

// Unwrap returns ErrInvalidHeader.
func (e *HeaderError) Unwrap() error {
	return ErrInvalidHeader
}

// CommandError wraps the unrecognized command code.
type CommandError struct {
	Command Command
}

// Error implements error.
func (e *CommandError) Error() string {
	return fmt.Sprintf("unknown command: %04x", uint16(e.Command))
}

// Unwrap returns ErrUnknownCommand.
func (e *CommandError) Unwrap() error {
	return ErrUnknownCommand
}
