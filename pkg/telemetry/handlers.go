package telemetry

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/robotalks/quadlink/pkg/protocol"
	"github.com/robotalks/quadlink/pkg/telemetry/msgs"
)

// Handler decodes the payload of a downlink frame.
type Handler func(pkt *protocol.Packet) (msgs.Telemetry, error)

// DefaultHandlers are the built-in decoders keyed by opcode name.
var DefaultHandlers = map[string]Handler{
	"string":                  handleText("string"),
	"twi_msg":                 handleTWI,
	"register":                handleRegister,
	"unsigned_data":           handleUnsigned("unsigned_data", 1, 2, 4),
	"signed_data":             handleSigned,
	"quaternion":              handleQuaternion,
	"yawpitchroll":            handleYawPitchRoll,
	"byte":                    handleUnsigned("byte", 1),
	"word":                    handleUnsigned("word", 2),
	"size32":                  handleUnsigned("size32", 4),
	"motor_values":            handleMotorValues,
	"pid_outputs":             handlePIDOutputs,
	"user_input":              handleUserInput,
	"debug":                   handleRemoteLog("debug"),
	"info":                    handleRemoteLog("info"),
	"warning":                 handleRemoteLog("warning"),
	"error":                   handleRemoteLog("error"),
	"not_header":              handleProtocolError("not_header"),
	"invalid_packet":          handleProtocolError("invalid_packet"),
	"invalid_checksum":        handleProtocolError("invalid_checksum"),
	"downlink_buffer_overrun": handleProtocolError("downlink_buffer_overrun"),
}

func ascii(pkt *protocol.Packet, name string) (string, error) {
	data := pkt.Data
	// firmware may send C strings
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	for n, b := range data {
		if b > 0x7f {
			return "", payloadErr(pkt, name, "non-ASCII byte 0x%02x at %d", b, n)
		}
	}
	return string(data), nil
}

func expectLen(pkt *protocol.Packet, name string, sizes ...int) error {
	for _, size := range sizes {
		if len(pkt.Data) == size {
			return nil
		}
	}
	return payloadErr(pkt, name, "unexpected size %d, expect %v", len(pkt.Data), sizes)
}

func handleText(name string) Handler {
	return func(pkt *protocol.Packet) (msgs.Telemetry, error) {
		s, err := ascii(pkt, name)
		if err != nil {
			return nil, err
		}
		return &msgs.Text{Text: s}, nil
	}
}

func handleTWI(pkt *protocol.Packet) (msgs.Telemetry, error) {
	if err := expectLen(pkt, "twi_msg", 1); err != nil {
		return nil, err
	}
	status := pkt.Data[0]
	message, ok := TWIMessages[status]
	if !ok {
		message = "Unknown status 0x" + strconv.FormatUint(uint64(status), 16)
	}
	return &msgs.TWIStatus{Status: uint32(status), Message: message}, nil
}

func handleRegister(pkt *protocol.Packet) (msgs.Telemetry, error) {
	if err := expectLen(pkt, "register", 4); err != nil {
		return nil, err
	}
	addr := binary.LittleEndian.Uint16(pkt.Data[0:])
	return &msgs.Register{
		Address: uint32(addr),
		Name:    Registers[addr],
		Value:   uint32(binary.LittleEndian.Uint16(pkt.Data[2:])),
	}, nil
}

func littleEndian(data []byte) (v uint64) {
	for n := len(data) - 1; n >= 0; n-- {
		v = v<<8 | uint64(data[n])
	}
	return
}

func handleUnsigned(name string, sizes ...int) Handler {
	return func(pkt *protocol.Packet) (msgs.Telemetry, error) {
		if err := expectLen(pkt, name, sizes...); err != nil {
			return nil, err
		}
		return &msgs.Unsigned{Value: littleEndian(pkt.Data), Width: uint32(len(pkt.Data))}, nil
	}
}

func handleSigned(pkt *protocol.Packet) (msgs.Telemetry, error) {
	if err := expectLen(pkt, "signed_data", 1, 2, 4); err != nil {
		return nil, err
	}
	bits := uint(len(pkt.Data) * 8)
	v := int64(littleEndian(pkt.Data)<<(64-bits)) >> (64 - bits)
	return &msgs.Signed{Value: v, Width: uint32(len(pkt.Data))}, nil
}

func handleQuaternion(pkt *protocol.Packet) (msgs.Telemetry, error) {
	if err := expectLen(pkt, "quaternion", 16); err != nil {
		return nil, err
	}
	var q [4]float32
	for n := range q {
		q[n] = math.Float32frombits(binary.LittleEndian.Uint32(pkt.Data[n*4:]))
	}
	return &msgs.Quaternion{W: q[0], X: q[1], Y: q[2], Z: q[3]}, nil
}

func handleYawPitchRoll(pkt *protocol.Packet) (msgs.Telemetry, error) {
	s, err := ascii(pkt, "yawpitchroll")
	if err != nil {
		return nil, err
	}
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return nil, payloadErr(pkt, "yawpitchroll", "expect 3 angles, got %q", s)
	}
	var angles [3]float32
	for n, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, payloadErr(pkt, "yawpitchroll", "angle %q is not a number", field)
		}
		angles[n] = float32(v)
	}
	return &msgs.YawPitchRoll{Yaw: angles[0], Pitch: angles[1], Roll: angles[2]}, nil
}

func handleMotorValues(pkt *protocol.Packet) (msgs.Telemetry, error) {
	if err := expectLen(pkt, "motor_values", 4); err != nil {
		return nil, err
	}
	m := &msgs.MotorValues{Values: make([]uint32, len(pkt.Data))}
	for n, b := range pkt.Data {
		m.Values[n] = uint32(b)
	}
	return m, nil
}

func handlePIDOutputs(pkt *protocol.Packet) (msgs.Telemetry, error) {
	if err := expectLen(pkt, "pid_outputs", 6); err != nil {
		return nil, err
	}
	axis := func(n int) int32 {
		return int32(int16(binary.LittleEndian.Uint16(pkt.Data[n*2:])))
	}
	return &msgs.PIDOutputs{Yaw: axis(0), Pitch: axis(1), Roll: axis(2)}, nil
}

func handleUserInput(pkt *protocol.Packet) (msgs.Telemetry, error) {
	if err := expectLen(pkt, "user_input", 4); err != nil {
		return nil, err
	}
	d := pkt.Data
	return &msgs.UserInput{
		Yaw:      uint32(d[0]),
		Pitch:    uint32(d[1]),
		Roll:     uint32(d[2]),
		Throttle: uint32(d[3]),
	}, nil
}

func handleRemoteLog(level string) Handler {
	return func(pkt *protocol.Packet) (msgs.Telemetry, error) {
		s, err := ascii(pkt, level)
		if err != nil {
			return nil, err
		}
		return &msgs.RemoteLog{Level: level, Text: s}, nil
	}
}

func handleProtocolError(kind string) Handler {
	return func(pkt *protocol.Packet) (msgs.Telemetry, error) {
		if err := expectLen(pkt, kind, 0, 1); err != nil {
			return nil, err
		}
		m := &msgs.ProtocolError{Kind: kind}
		if len(pkt.Data) == 1 {
			m.Byte, m.HasByte = uint32(pkt.Data[0]), true
		}
		return m, nil
	}
}
