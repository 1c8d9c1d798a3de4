package telemetry

// Registers names the microcontroller registers the vehicle dumps.
var Registers = map[uint16]string{
	0x90:  "TCCR3A",
	0x91:  "TCCR3B",
	0x92:  "TCCR3C",
	0x94:  "TCNT3",
	0x96:  "ICR3",
	0x98:  "OCR3A",
	0x9a:  "OCR3B",
	0x9c:  "OCR3C",
	0xb8:  "TWBR",
	0xb9:  "TWSR",
	0xbc:  "TWCR",
	0x124: "TCNT5",
}

// TWIMessages describes two-wire interface status codes.
var TWIMessages = map[byte]string{
	0x08: "Start sent",
	0x10: "Repeated start sent",
	0x18: "SLA+W transmitted, received ACK",
	0x20: "SLA+W transmitted, received NACK",
	0x28: "Data transmitted, received ACK",
	0x30: "Data transmitted, received NACK",
	0x38: "Arbitration lost in SLA+W or data bytes",
	0x40: "SLA+R transmitted, received ACK",
	0x48: "SLA+R transmitted, received NACK",
	0x50: "Data received, transmitted ACK",
	0x58: "Data received, transmitted NACK",
}
