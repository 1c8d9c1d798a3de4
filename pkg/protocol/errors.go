package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameTooLarge indicates the encoded frame would exceed MaxPacketSize.
	ErrFrameTooLarge = errors.New("frame too large")
	// ErrShortFrame indicates the raw bytes can't hold header, length, opcode and checksum.
	ErrShortFrame = errors.New("short frame")
	// ErrLengthMismatch indicates the LENGTH field disagrees with the frame size.
	ErrLengthMismatch = errors.New("length field mismatch")
)

// OpcodeError reports an opcode which is not in the registry.
type OpcodeError struct {
	Opcode Opcode
	Name   string
}

// Error implements error.
func (e *OpcodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown opcode %q", e.Name)
	}
	return fmt.Sprintf("unknown opcode 0x%02x", byte(e.Opcode))
}
