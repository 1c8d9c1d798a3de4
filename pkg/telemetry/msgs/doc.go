// Package msgs defines decoded downlink telemetry as protobuf messages.
//
// Messages are published per opcode, the opcode name selects the
// message type on the receiving side.
package msgs
