package telemetry

import (
	"errors"
	"fmt"

	"github.com/robotalks/quadlink/pkg/protocol"
)

var (
	// ErrUnknownOpcode indicates the opcode name is not registered.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrUplinkOnly indicates the opcode is never sent by the vehicle.
	ErrUplinkOnly = errors.New("uplink only opcode")
)

// PayloadError reports a payload not matching its opcode's encoding.
type PayloadError struct {
	Opcode protocol.Opcode
	Name   string
	Reason string
}

// Error implements error.
func (e *PayloadError) Error() string {
	return fmt.Sprintf("malformed %s(0x%02x) payload: %s", e.Name, byte(e.Opcode), e.Reason)
}

func payloadErr(pkt *protocol.Packet, name, format string, args ...interface{}) error {
	return &PayloadError{Opcode: pkt.Opcode, Name: name, Reason: fmt.Sprintf(format, args...)}
}
