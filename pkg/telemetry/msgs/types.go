package msgs

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

// Telemetry is a decoded downlink message.
type Telemetry interface {
	proto.Message
	NewTelemetry() Telemetry
}

// ErrUnknownType indicates no message type for an opcode name.
type ErrUnknownType struct {
	Name string
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown telemetry type: %s", e.Name)
}

// MessageTypes maps downlink opcode names to message types.
var MessageTypes = map[string]Telemetry{
	"string":                  (*Text)(nil),
	"twi_msg":                 (*TWIStatus)(nil),
	"register":                (*Register)(nil),
	"unsigned_data":           (*Unsigned)(nil),
	"signed_data":             (*Signed)(nil),
	"quaternion":              (*Quaternion)(nil),
	"yawpitchroll":            (*YawPitchRoll)(nil),
	"byte":                    (*Unsigned)(nil),
	"word":                    (*Unsigned)(nil),
	"size32":                  (*Unsigned)(nil),
	"motor_values":            (*MotorValues)(nil),
	"pid_outputs":             (*PIDOutputs)(nil),
	"user_input":              (*UserInput)(nil),
	"debug":                   (*RemoteLog)(nil),
	"info":                    (*RemoteLog)(nil),
	"warning":                 (*RemoteLog)(nil),
	"error":                   (*RemoteLog)(nil),
	"not_header":              (*ProtocolError)(nil),
	"invalid_packet":          (*ProtocolError)(nil),
	"invalid_checksum":        (*ProtocolError)(nil),
	"downlink_buffer_overrun": (*ProtocolError)(nil),
}

// Encode serializes a message.
func Encode(msg Telemetry) ([]byte, error) {
	return proto.Marshal(msg)
}

// Decode deserializes the message published for an opcode name.
func Decode(name string, data []byte) (Telemetry, error) {
	msgType, ok := MessageTypes[name]
	if !ok {
		return nil, &ErrUnknownType{Name: name}
	}
	msg := msgType.NewTelemetry()
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
