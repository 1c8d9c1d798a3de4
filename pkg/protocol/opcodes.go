package protocol

import (
	"fmt"
	"sort"
)

// Opcode selects the meaning of a packet.
type Opcode byte

// Telemetry opcodes (downlink).
const (
	OpString       Opcode = 0x00
	OpTWIMsg       Opcode = 0x01
	OpRegister     Opcode = 0x02
	OpUnsignedData Opcode = 0x03
	OpSignedData   Opcode = 0x04
	OpQuaternion   Opcode = 0x05
	OpYawPitchRoll Opcode = 0x06
	OpByte         Opcode = 0x07
	OpWord         Opcode = 0x08
	OpSize32       Opcode = 0x09
	OpMotorValues  Opcode = 0x0a
	OpPIDOutputs   Opcode = 0x0b
	OpUserInput    Opcode = 0x0c
)

// Command opcodes (uplink).
const (
	OpControls             Opcode = 0x20
	OpChangePIDGain        Opcode = 0x21
	OpDownlinkYawPitchRoll Opcode = 0x22
	OpFlightMode           Opcode = 0x23
	OpNonFlightMode        Opcode = 0x24
	OpTerminate            Opcode = 0x25
	OpLevelQuad            Opcode = 0x26
	OpRunTest              Opcode = 0x29
	OpDone                 Opcode = 0x30
)

// Remote log forwarding opcodes (downlink).
const (
	OpLogDebug   Opcode = 0x40
	OpLogInfo    Opcode = 0x41
	OpLogWarning Opcode = 0x42
	OpLogError   Opcode = 0x43
)

// Protocol errors reported by the remote (downlink).
const (
	OpNotHeader             Opcode = 0x90
	OpInvalidPacket         Opcode = 0x91
	OpInvalidChecksum       Opcode = 0x92
	OpDownlinkBufferOverrun Opcode = 0x93
)

// Category classifies opcodes by range.
type Category int

// Categories
const (
	CategoryUnknown Category = iota
	CategoryTelemetry
	CategoryCommand
	CategoryLog
	CategoryProtocolError
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryTelemetry:
		return "telemetry"
	case CategoryCommand:
		return "command"
	case CategoryLog:
		return "log"
	case CategoryProtocolError:
		return "protocol-error"
	}
	return "unknown"
}

// CategoryOf classifies an opcode by its numeric range only.
func CategoryOf(op Opcode) Category {
	switch {
	case op <= 0x0f:
		return CategoryTelemetry
	case op >= 0x20 && op <= 0x30:
		return CategoryCommand
	case op >= 0x40 && op <= 0x43:
		return CategoryLog
	case op >= 0x90 && op <= 0x93:
		return CategoryProtocolError
	}
	return CategoryUnknown
}

var defaultOpcodes = map[Opcode]string{
	OpString:       "string",
	OpTWIMsg:       "twi_msg",
	OpRegister:     "register",
	OpUnsignedData: "unsigned_data",
	OpSignedData:   "signed_data",
	OpQuaternion:   "quaternion",
	OpYawPitchRoll: "yawpitchroll",
	OpByte:         "byte",
	OpWord:         "word",
	OpSize32:       "size32",
	OpMotorValues:  "motor_values",
	OpPIDOutputs:   "pid_outputs",
	OpUserInput:    "user_input",

	OpControls:             "controls",
	OpChangePIDGain:        "change_pid_gain",
	OpDownlinkYawPitchRoll: "downlink_yawpitchroll",
	OpFlightMode:           "flight_mode",
	OpNonFlightMode:        "non_flight_mode",
	OpTerminate:            "terminate",
	OpLevelQuad:            "level_quad",
	OpRunTest:              "run_test",
	OpDone:                 "done",

	OpNotHeader:             "not_header",
	OpInvalidPacket:         "invalid_packet",
	OpInvalidChecksum:       "invalid_checksum",
	OpDownlinkBufferOverrun: "downlink_buffer_overrun",

	OpLogDebug:   "debug",
	OpLogInfo:    "info",
	OpLogWarning: "warning",
	OpLogError:   "error",
}

// Registry is a read-only bijective mapping between opcode names and codes.
type Registry struct {
	byCode map[Opcode]string
	byName map[string]Opcode
}

// NewRegistry builds a Registry. It fails if names or codes are duplicated
// or a code falls outside every known category.
func NewRegistry(table map[Opcode]string) (*Registry, error) {
	r := &Registry{
		byCode: make(map[Opcode]string, len(table)),
		byName: make(map[string]Opcode, len(table)),
	}
	for op, name := range table {
		if CategoryOf(op) == CategoryUnknown {
			return nil, fmt.Errorf("opcode 0x%02x (%s) out of range", byte(op), name)
		}
		if prev, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("opcode name %q used by 0x%02x and 0x%02x", name, byte(prev), byte(op))
		}
		r.byCode[op], r.byName[name] = name, op
	}
	return r, nil
}

var defaultRegistry = mustNewRegistry(defaultOpcodes)

func mustNewRegistry(table map[Opcode]string) *Registry {
	r, err := NewRegistry(table)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the process-wide registry of the link protocol.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Lookup finds the opcode by name.
func (r *Registry) Lookup(name string) (Opcode, bool) {
	op, ok := r.byName[name]
	return op, ok
}

// MustLookup finds the opcode by name and panics if it doesn't exist.
func (r *Registry) MustLookup(name string) Opcode {
	op, ok := r.byName[name]
	if !ok {
		panic(&OpcodeError{Name: name})
	}
	return op
}

// Name returns the symbolic name of an opcode.
func (r *Registry) Name(op Opcode) (string, bool) {
	name, ok := r.byCode[op]
	return name, ok
}

// Has indicates the opcode is registered.
func (r *Registry) Has(op Opcode) bool {
	_, ok := r.byCode[op]
	return ok
}

// Category returns the category of a registered opcode.
func (r *Registry) Category(op Opcode) Category {
	if !r.Has(op) {
		return CategoryUnknown
	}
	return CategoryOf(op)
}

// Opcodes lists all registered opcodes in ascending order.
func (r *Registry) Opcodes() []Opcode {
	ops := make([]Opcode, 0, len(r.byCode))
	for op := range r.byCode {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Format renders the opcode as "name(0xNN)" or just the hex code when unknown.
func (r *Registry) Format(op Opcode) string {
	if name, ok := r.byCode[op]; ok {
		return fmt.Sprintf("%s(0x%02x)", name, byte(op))
	}
	return fmt.Sprintf("0x%02x", byte(op))
}

// IsCommand reports opcodes accepted as commands by the remote,
// excluding controls.
func IsCommand(op Opcode) bool {
	return op > OpControls && op <= OpTerminate
}

// IsControls reports the controls opcode.
func IsControls(op Opcode) bool {
	return op == OpControls
}
