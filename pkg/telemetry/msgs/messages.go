package msgs

import (
	"github.com/golang/protobuf/proto"
)

// Text is an ASCII string sent by the vehicle.
type Text struct {
	Text string `protobuf:"bytes,1,opt,name=text,proto3" json:"text,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *Text) NewTelemetry() Telemetry { return &Text{} }

// ProtoMessage implements proto.Message.
func (m *Text) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Text) Reset() { *m = Text{} }

// String implements proto.Message.
func (m *Text) String() string { return proto.CompactTextString(m) }

// TWIStatus is a two-wire interface bus status code.
type TWIStatus struct {
	Status  uint32 `protobuf:"varint,1,opt,name=status,proto3" json:"status,omitempty"`
	Message string `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *TWIStatus) NewTelemetry() Telemetry { return &TWIStatus{} }

// ProtoMessage implements proto.Message.
func (m *TWIStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *TWIStatus) Reset() { *m = TWIStatus{} }

// String implements proto.Message.
func (m *TWIStatus) String() string { return proto.CompactTextString(m) }

// Register is a microcontroller register dump.
type Register struct {
	Address uint32 `protobuf:"varint,1,opt,name=address,proto3" json:"address,omitempty"`
	Name    string `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Value   uint32 `protobuf:"varint,3,opt,name=value,proto3" json:"value,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *Register) NewTelemetry() Telemetry { return &Register{} }

// ProtoMessage implements proto.Message.
func (m *Register) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Register) Reset() { *m = Register{} }

// String implements proto.Message.
func (m *Register) String() string { return proto.CompactTextString(m) }

// Unsigned is an unsigned integer of Width bytes.
type Unsigned struct {
	Value uint64 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
	Width uint32 `protobuf:"varint,2,opt,name=width,proto3" json:"width,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *Unsigned) NewTelemetry() Telemetry { return &Unsigned{} }

// ProtoMessage implements proto.Message.
func (m *Unsigned) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Unsigned) Reset() { *m = Unsigned{} }

// String implements proto.Message.
func (m *Unsigned) String() string { return proto.CompactTextString(m) }

// Signed is a signed integer of Width bytes.
type Signed struct {
	Value int64  `protobuf:"zigzag64,1,opt,name=value,proto3" json:"value,omitempty"`
	Width uint32 `protobuf:"varint,2,opt,name=width,proto3" json:"width,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *Signed) NewTelemetry() Telemetry { return &Signed{} }

// ProtoMessage implements proto.Message.
func (m *Signed) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Signed) Reset() { *m = Signed{} }

// String implements proto.Message.
func (m *Signed) String() string { return proto.CompactTextString(m) }

// Quaternion is the attitude estimate.
type Quaternion struct {
	W float32 `protobuf:"fixed32,1,opt,name=w,proto3" json:"w,omitempty"`
	X float32 `protobuf:"fixed32,2,opt,name=x,proto3" json:"x,omitempty"`
	Y float32 `protobuf:"fixed32,3,opt,name=y,proto3" json:"y,omitempty"`
	Z float32 `protobuf:"fixed32,4,opt,name=z,proto3" json:"z,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *Quaternion) NewTelemetry() Telemetry { return &Quaternion{} }

// ProtoMessage implements proto.Message.
func (m *Quaternion) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Quaternion) Reset() { *m = Quaternion{} }

// String implements proto.Message.
func (m *Quaternion) String() string { return proto.CompactTextString(m) }

// YawPitchRoll is the attitude in Euler angles (degrees).
type YawPitchRoll struct {
	Yaw   float32 `protobuf:"fixed32,1,opt,name=yaw,proto3" json:"yaw,omitempty"`
	Pitch float32 `protobuf:"fixed32,2,opt,name=pitch,proto3" json:"pitch,omitempty"`
	Roll  float32 `protobuf:"fixed32,3,opt,name=roll,proto3" json:"roll,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *YawPitchRoll) NewTelemetry() Telemetry { return &YawPitchRoll{} }

// ProtoMessage implements proto.Message.
func (m *YawPitchRoll) ProtoMessage() {}

// Reset implements proto.Message.
func (m *YawPitchRoll) Reset() { *m = YawPitchRoll{} }

// String implements proto.Message.
func (m *YawPitchRoll) String() string { return proto.CompactTextString(m) }

// MotorValues are the four motor outputs.
type MotorValues struct {
	Values []uint32 `protobuf:"varint,1,rep,packed,name=values,proto3" json:"values,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *MotorValues) NewTelemetry() Telemetry { return &MotorValues{} }

// ProtoMessage implements proto.Message.
func (m *MotorValues) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorValues) Reset() { *m = MotorValues{} }

// String implements proto.Message.
func (m *MotorValues) String() string { return proto.CompactTextString(m) }

// PIDOutputs are the controller outputs per axis.
type PIDOutputs struct {
	Yaw   int32 `protobuf:"zigzag32,1,opt,name=yaw,proto3" json:"yaw,omitempty"`
	Pitch int32 `protobuf:"zigzag32,2,opt,name=pitch,proto3" json:"pitch,omitempty"`
	Roll  int32 `protobuf:"zigzag32,3,opt,name=roll,proto3" json:"roll,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *PIDOutputs) NewTelemetry() Telemetry { return &PIDOutputs{} }

// ProtoMessage implements proto.Message.
func (m *PIDOutputs) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PIDOutputs) Reset() { *m = PIDOutputs{} }

// String implements proto.Message.
func (m *PIDOutputs) String() string { return proto.CompactTextString(m) }

// UserInput echoes the controls the vehicle received.
type UserInput struct {
	Yaw      uint32 `protobuf:"varint,1,opt,name=yaw,proto3" json:"yaw,omitempty"`
	Pitch    uint32 `protobuf:"varint,2,opt,name=pitch,proto3" json:"pitch,omitempty"`
	Roll     uint32 `protobuf:"varint,3,opt,name=roll,proto3" json:"roll,omitempty"`
	Throttle uint32 `protobuf:"varint,4,opt,name=throttle,proto3" json:"throttle,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *UserInput) NewTelemetry() Telemetry { return &UserInput{} }

// ProtoMessage implements proto.Message.
func (m *UserInput) ProtoMessage() {}

// Reset implements proto.Message.
func (m *UserInput) Reset() { *m = UserInput{} }

// String implements proto.Message.
func (m *UserInput) String() string { return proto.CompactTextString(m) }

// RemoteLog is a log line forwarded by the vehicle.
type RemoteLog struct {
	Level string `protobuf:"bytes,1,opt,name=level,proto3" json:"level,omitempty"`
	Text  string `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *RemoteLog) NewTelemetry() Telemetry { return &RemoteLog{} }

// ProtoMessage implements proto.Message.
func (m *RemoteLog) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RemoteLog) Reset() { *m = RemoteLog{} }

// String implements proto.Message.
func (m *RemoteLog) String() string { return proto.CompactTextString(m) }

// ProtocolError is a framing error the vehicle detected on the uplink.
type ProtocolError struct {
	Kind    string `protobuf:"bytes,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Byte    uint32 `protobuf:"varint,2,opt,name=byte,proto3" json:"byte,omitempty"`
	HasByte bool   `protobuf:"varint,3,opt,name=has_byte,proto3" json:"has_byte,omitempty"`
}

// NewTelemetry implements Telemetry.
func (m *ProtocolError) NewTelemetry() Telemetry { return &ProtocolError{} }

// ProtoMessage implements proto.Message.
func (m *ProtocolError) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ProtocolError) Reset() { *m = ProtocolError{} }

// String implements proto.Message.
func (m *ProtocolError) String() string { return proto.CompactTextString(m) }
