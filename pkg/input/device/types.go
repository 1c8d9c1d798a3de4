// Package device reads joystick events from the operating system.
package device

import (
	"errors"
	"fmt"
	"io"
)

// ErrNotFound indicates no joystick device is present.
var ErrNotFound = errors.New("no joystick detected")

// Kind is the kind of an input event.
type Kind uint8

// Event kinds.
const (
	KindUnknown Kind = iota
	KindAxis
	KindButton
)

// AxisMax is the magnitude of a fully deflected axis.
const AxisMax = 32767

// Event is one joystick state change.
type Event struct {
	Kind  Kind
	Index int
	// Value is the axis position in -AxisMax..AxisMax,
	// or 1/0 for a pressed/released button.
	Value int
	// Init marks synthetic events reporting the state when opened.
	Init bool
}

// Normalized returns an axis value in -1..1.
func (e Event) Normalized() float64 {
	v := float64(e.Value) / AxisMax
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

// Pressed indicates a button is down.
func (e Event) Pressed() bool {
	return e.Value != 0
}

// String implements fmt.Stringer.
func (e Event) String() string {
	var prefix string
	if e.Init {
		prefix = "[INIT] "
	}
	switch e.Kind {
	case KindAxis:
		return fmt.Sprintf("%sAxis %d: %d", prefix, e.Index, e.Value)
	case KindButton:
		return fmt.Sprintf("%sButton %d: %v", prefix, e.Index, e.Pressed())
	}
	return fmt.Sprintf("%sEvent %d: %d", prefix, e.Index, e.Value)
}

// Device represents an opened joystick.
type Device interface {
	io.Closer
	// Index returns the index of the device on the system.
	Index() int
	// Name returns the name of the device.
	Name() string
	// ReadEvent blocks until the next event.
	ReadEvent() (Event, error)
}

// Opener opens a device by index, a negative index detects the first one.
type Opener func(index int) (Device, error)

// OpenOrDetect is the Opener of the system joystick devices.
func OpenOrDetect(index int) (Device, error) {
	if index >= 0 {
		return Open(index)
	}
	return Detect(0)
}

// decode parses the 8 byte js_event structure.
func decode(buf []byte) Event {
	const (
		evBUTTON uint8 = 0x01
		evAXIS   uint8 = 0x02
		evINIT   uint8 = 0x80
	)
	typ := buf[6]
	ev := Event{
		Value: int(int16(uint16(buf[4]) | uint16(buf[5])<<8)),
		Index: int(buf[7]),
		Init:  typ&evINIT != 0,
	}
	switch typ &^ evINIT {
	case evAXIS:
		ev.Kind = KindAxis
	case evBUTTON:
		ev.Kind = KindButton
	}
	return ev
}
