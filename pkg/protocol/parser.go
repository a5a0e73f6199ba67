package protocol

// Parser extracts packets from a byte stream.
// It only frames packets, Decode verifies them.
type Parser struct {
	state parseState
	frame []byte
	size  int
}

type parseState int

const (
	stateHeaderHi parseState = iota // waiting for first header byte
	stateHeaderLo                   // waiting for second header byte
	statePrefix                     // waiting for command and length
	stateBody                       // waiting for payload and crc
)

const (
	headerHi = byte(Header >> 8)
	headerLo = byte(Header & 0xff)
)

// Receiving indicates a packet is partially received.
func (p *Parser) Receiving() bool {
	return p.state != stateHeaderHi
}

// Reset drops any partially received packet.
func (p *Parser) Reset() {
	p.state, p.frame, p.size = stateHeaderHi, nil, 0
}

// Parse consumes one byte and returns the packets it completes.
// A prefix with an unknown command or a length impossible for its
// command, and a complete packet failing CRC check, are rescanned
// from the byte after their header. A packet failing CRC check is
// returned as is only when the rescan finds nothing.
func (p *Parser) Parse(b byte) [][]byte {
	switch p.state {
	case stateHeaderHi:
		if b == headerHi {
			p.state = stateHeaderLo
		}
	case stateHeaderLo:
		switch b {
		case headerLo:
			p.frame = append(make([]byte, 0, MinPacketSize), headerHi, headerLo)
			p.state = statePrefix
		case headerHi:
			// stay, this may be the real header start
		default:
			p.state = stateHeaderHi
		}
	case statePrefix:
		p.frame = append(p.frame, b)
		if len(p.frame) == PrefixSize {
			length := int(byteOrder.Uint16(p.frame[4:]))
			if !validPrefix(Command(byteOrder.Uint16(p.frame[2:])), length) {
				return p.rescan()
			}
			p.size = PrefixSize + length + CRCSize
			p.state = stateBody
		}
	case stateBody:
		p.frame = append(p.frame, b)
		if len(p.frame) >= p.size {
			frame := p.frame
			crcAt := len(frame) - CRCSize
			if Checksum(frame[:crcAt]) == byteOrder.Uint16(frame[crcAt:]) {
				p.Reset()
				return [][]byte{frame}
			}
			if frames := p.rescan(); len(frames) > 0 || p.Receiving() {
				return frames
			}
			return [][]byte{frame}
		}
	}
	return nil
}

// ParseBytes consumes bytes and returns all completed packets.
func (p *Parser) ParseBytes(data []byte) (frames [][]byte) {
	for _, b := range data {
		frames = append(frames, p.Parse(b)...)
	}
	return
}

// Flush gives up the partially received packet and returns the
// packets found in its bytes after the header.
// The parser is waiting for a new header afterwards.
func (p *Parser) Flush() (frames [][]byte) {
	for p.Receiving() {
		frames = append(frames, p.rescan()...)
	}
	return
}

func (p *Parser) rescan() [][]byte {
	if len(p.frame) == 0 {
		p.Reset()
		return nil
	}
	data := p.frame[1:]
	p.Reset()
	return p.ParseBytes(data)
}

func validPrefix(cmd Command, length int) bool {
	switch cmd {
	case CmdQuery:
		return length == QueryLength
	case CmdResponse:
		return length%SampleSize == 0
	}
	return false
}
