package protocol

import (
	"fmt"
	"io"
)

// Framing constants.
const (
	Header            byte = 0x42
	MaxPacketSize          = 64
	MaxPacketDataSize      = MaxPacketSize - 3 // minus header, length and opcode

	// Overhead is the number of frame bytes besides data.
	Overhead = 4
)

// Packet contains the information of an encoded or decoded frame.
type Packet struct {
	Header   byte
	Opcode   Opcode
	Length   byte
	Data     []byte
	Checksum byte
	Raw      []byte
}

// Checksum computes the check byte: the complement of the 8-bit sum.
func Checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return 0xff - sum
}

// Encode builds a frame for uplink.
func Encode(op Opcode, data []byte) ([]byte, error) {
	if len(data)+Overhead > MaxPacketSize {
		return nil, ErrFrameTooLarge
	}
	raw := make([]byte, 0, len(data)+Overhead)
	raw = append(raw, Header, byte(len(data)+1), byte(op))
	raw = append(raw, data...)
	return append(raw, Checksum(raw)), nil
}

// EncodePacket builds a frame and returns it as a Packet.
func EncodePacket(op Opcode, data []byte) (*Packet, error) {
	raw, err := Encode(op, data)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// MustEncode is Encode for frames known to fit, it panics otherwise.
func MustEncode(op Opcode, data ...byte) []byte {
	raw, err := Encode(op, data)
	if err != nil {
		panic(err)
	}
	return raw
}

// Decode decomposes raw frame bytes into a Packet.
// The checksum is not verified, see Packet.Valid.
func Decode(raw []byte) (*Packet, error) {
	if len(raw) < Overhead {
		return nil, ErrShortFrame
	}
	if int(raw[1])+3 != len(raw) {
		return nil, ErrLengthMismatch
	}
	p := &Packet{
		Header:   raw[0],
		Length:   raw[1],
		Opcode:   Opcode(raw[2]),
		Checksum: raw[len(raw)-1],
		Raw:      make([]byte, len(raw)),
	}
	copy(p.Raw, raw)
	p.Data = p.Raw[3 : len(raw)-1 : len(raw)-1]
	return p, nil
}

// ComputedChecksum calculates the checksum over the received bytes.
func (p *Packet) ComputedChecksum() byte {
	return Checksum(p.Raw[:len(p.Raw)-1])
}

// Valid indicates the embedded checksum matches.
func (p *Packet) Valid() bool {
	return p.ComputedChecksum() == p.Checksum
}

// WriteTo writes the raw frame.
func (p *Packet) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Raw)
	return int64(n), err
}

// String implements fmt.Stringer.
func (p *Packet) String() string {
	return fmt.Sprintf("Packet(opcode=0x%02x, num_data=%d, data=%v, checksum=0x%02x)",
		byte(p.Opcode), len(p.Data), p.Data, p.Checksum)
}
