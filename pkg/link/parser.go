package link

import (
	"github.com/robotalks/quadlink/pkg/protocol"
)

// Parser reassembles frames from a byte stream.
// It's a pure state machine, fed one byte at a time.
type Parser struct {
	state  parseState
	buf    [protocol.MaxPacketSize]byte
	recv   int
	expect int
}

// Event describes what happened to the stream in one parsing step.
type Event int

const (
	// EventNone means nothing remarkable.
	EventNone Event = iota
	// EventFrame means a complete frame is available.
	EventFrame
	// EventResync means a non-header byte was discarded while scanning.
	EventResync
	// EventOversize means the LENGTH field exceeded MaxPacketDataSize.
	EventOversize
	// EventAbandoned means a frame was dropped by a mid-frame timeout.
	EventAbandoned
	// EventMalformed means a complete frame could not be decoded.
	EventMalformed
)

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e {
	case EventFrame:
		return "frame"
	case EventResync:
		return "resync"
	case EventOversize:
		return "oversize"
	case EventAbandoned:
		return "abandoned"
	case EventMalformed:
		return "malformed"
	}
	return "none"
}

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	Event  Event
	Byte   byte // the offending byte for EventResync and EventOversize
	Packet *protocol.Packet
}

type parseState int

const (
	stateScan        parseState = iota // waiting for HEADER
	stateReadLength                    // waiting for LENGTH
	stateReadPayload                   // waiting for opcode, data and checksum
)

// Scanning indicates the parser is between frames.
func (p *Parser) Scanning() bool {
	return p.state == stateScan
}

// Reset drops any partial frame.
func (p *Parser) Reset() {
	p.state, p.recv, p.expect = stateScan, 0, 0
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateScan:
		if b != protocol.Header {
			pr.Event, pr.Byte = EventResync, b
			return
		}
		p.buf[0], p.recv = b, 1
		p.state = stateReadLength
	case stateReadLength:
		if int(b) > protocol.MaxPacketDataSize {
			p.Reset()
			pr.Event, pr.Byte = EventOversize, b
			return
		}
		p.buf[1], p.recv = b, 2
		// opcode + data (LENGTH bytes) plus the checksum byte
		p.expect = 2 + int(b) + 1
		p.state = stateReadPayload
	case stateReadPayload:
		p.buf[p.recv] = b
		p.recv++
		if p.recv >= p.expect {
			return p.frameReady()
		}
	}
	return
}

// Timeout notifies the parser that a read returned nothing.
// A partial frame is abandoned; the bytes consumed are lost.
func (p *Parser) Timeout() (pr ParseResult) {
	if p.state != stateScan {
		p.Reset()
		pr.Event = EventAbandoned
	}
	return
}

func (p *Parser) frameReady() (pr ParseResult) {
	raw := p.buf[:p.recv]
	p.Reset()
	pkt, err := protocol.Decode(raw)
	if err != nil {
		pr.Event = EventMalformed
		return
	}
	pr.Event, pr.Packet = EventFrame, pkt
	return
}
