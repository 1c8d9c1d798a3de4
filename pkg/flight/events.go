package flight

import (
	"fmt"
	"strings"
)

// ControlEvent assigns a value to a control axis.
type ControlEvent struct {
	Axis  Axis
	Value int
}

// CommandKind identifies a command event.
type CommandKind int

// Command kinds.
const (
	EnterFlightMode CommandKind = iota
	ExitFlightMode
	ToggleTelemetry
	LevelQuad
	RunTest
	Done
	Terminate
	ChangePIDGain
	numCommandKinds
)

var commandNames = [numCommandKinds]string{
	"enter_flight_mode",
	"exit_flight_mode",
	"toggle_telemetry",
	"level_quad",
	"run_test",
	"done",
	"terminate",
	"change_pid_gain",
}

// String implements fmt.Stringer.
func (k CommandKind) String() string {
	if k >= 0 && k < numCommandKinds {
		return commandNames[k]
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// ParseCommandKind parses a command name.
func ParseCommandKind(name string) (CommandKind, error) {
	name = strings.ToLower(name)
	for n, s := range commandNames {
		if s == name {
			return CommandKind(n), nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// CommandEvent requests a mode change or a one-shot uplink command.
type CommandEvent struct {
	Kind    CommandKind
	Payload []byte
}

// Command creates a CommandEvent.
func Command(kind CommandKind, payload ...byte) CommandEvent {
	return CommandEvent{Kind: kind, Payload: payload}
}

// String implements fmt.Stringer.
func (e CommandEvent) String() string {
	if len(e.Payload) == 0 {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(% x)", e.Kind, e.Payload)
}

// Mode is the flight state of a session.
type Mode int

// Modes.
const (
	NonFlight Mode = iota
	Flight
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Flight {
		return "FLIGHT"
	}
	return "NON_FLIGHT"
}

// MappingKind selects the input mapping matching a Mode.
type MappingKind int

// Mapping kinds.
const (
	NonFlightMapping MappingKind = iota
	FlightMapping
)

// String implements fmt.Stringer.
func (k MappingKind) String() string {
	if k == FlightMapping {
		return "flight"
	}
	return "non_flight"
}
