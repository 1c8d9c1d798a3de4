// Package protocol provides the quadcopter link protocol codec.
package protocol

// The link protocol is communicated between the flight controller firmware
// and the ground station over a peer-to-peer serial channel.
//
// Every frame has the layout:
//
//   [HEADER=0x42] [LENGTH] [OPCODE] [DATA ...] [CHECKSUM]
//
// LENGTH counts the opcode and data bytes (1..61). CHECKSUM is the bitwise
// complement of the 8-bit sum of all preceding bytes of the frame. It only
// detects corruption; there is no retransmission and no sequence numbers,
// delivery is best effort.
//
// Uplink: ground station -> vehicle (controls, commands)
// Downlink: vehicle -> ground station (telemetry, remote logs, protocol errors)
