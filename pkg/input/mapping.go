// Package input turns human input into flight control and command events.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/quadlink/pkg/flight"
)

// Action is what an input produces: a control assignment or a command.
type Action struct {
	Control *flight.ControlEvent
	Command *flight.CommandEvent
}

// ControlAction assigns value to axis.
func ControlAction(axis flight.Axis, value int) *Action {
	return &Action{Control: &flight.ControlEvent{Axis: axis, Value: value}}
}

// CommandAction submits a command.
func CommandAction(kind flight.CommandKind, payload ...byte) *Action {
	ev := flight.Command(kind, payload...)
	return &Action{Command: &ev}
}

// ParseAction parses "axis=value" or "command [byte...]".
func ParseAction(s string) (*Action, error) {
	s = strings.TrimSpace(s)
	if pos := strings.Index(s, "="); pos >= 0 {
		axis, err := flight.ParseAxis(strings.TrimSpace(s[:pos]))
		if err != nil {
			return nil, err
		}
		val, err := strconv.Atoi(strings.TrimSpace(s[pos+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", s, err)
		}
		return ControlAction(axis, val), nil
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty action")
	}
	kind, err := flight.ParseCommandKind(fields[0])
	if err != nil {
		return nil, err
	}
	payload, err := parseBytes(fields[1:])
	if err != nil {
		return nil, err
	}
	return CommandAction(kind, payload...), nil
}

func parseBytes(args []string) ([]byte, error) {
	var data []byte
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q", arg)
		}
		data = append(data, byte(v))
	}
	return data, nil
}

// String implements fmt.Stringer.
func (a *Action) String() string {
	switch {
	case a == nil:
		return "<none>"
	case a.Control != nil:
		return fmt.Sprintf("%s=%d", a.Control.Axis, a.Control.Value)
	case a.Command != nil:
		return a.Command.String()
	}
	return "<none>"
}

// KeyBinding maps a key to actions on press and release.
type KeyBinding struct {
	Down *Action
	Up   *Action
}

// Mapping binds keyboard keys, joystick axes and buttons.
type Mapping struct {
	Keys    map[string]KeyBinding
	Axes    map[int]flight.Axis
	Buttons map[int]*Action
}

// NewMapping creates an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{
		Keys:    make(map[string]KeyBinding),
		Axes:    make(map[int]flight.Axis),
		Buttons: make(map[int]*Action),
	}
}

// ToFlightUnits converts a normalized input in -1..1 to flight units.
func ToFlightUnits(x float64) int {
	return int(50*x + 50)
}

var (
	fullPositive = ToFlightUnits(1)
	fullNegative = ToFlightUnits(-1)
	level        = ToFlightUnits(0)
)

func hold(axis flight.Axis, value int) KeyBinding {
	return KeyBinding{Down: ControlAction(axis, value), Up: ControlAction(axis, level)}
}

// FlightMapping is the default mapping in flight mode.
func FlightMapping() *Mapping {
	m := NewMapping()
	m.Keys["w"] = hold(flight.Pitch, fullNegative)
	m.Keys["s"] = hold(flight.Pitch, fullPositive)
	m.Keys["a"] = hold(flight.Roll, fullNegative)
	m.Keys["d"] = hold(flight.Roll, fullPositive)
	m.Keys["q"] = hold(flight.Yaw, fullNegative)
	m.Keys["e"] = hold(flight.Yaw, fullPositive)
	for n := 1; n <= 9; n++ {
		m.Keys[strconv.Itoa(n)] = KeyBinding{Down: ControlAction(flight.Throttle, n*10)}
	}
	m.Keys["0"] = KeyBinding{Down: ControlAction(flight.Throttle, 100)}
	m.Keys["`"] = KeyBinding{Down: ControlAction(flight.Throttle, 0)}
	m.Keys["\\"] = KeyBinding{Down: ControlAction(flight.Throttle, 0)}
	m.Keys["f"] = KeyBinding{Down: CommandAction(flight.ExitFlightMode)}
	m.Keys["l"] = KeyBinding{Down: CommandAction(flight.LevelQuad)}
	m.Axes[0] = flight.Roll
	m.Axes[1] = flight.Pitch
	m.Axes[3] = flight.Yaw
	m.Axes[5] = flight.Throttle
	return m
}

// NonFlightMapping is the default mapping on the ground.
func NonFlightMapping() *Mapping {
	m := NewMapping()
	m.Keys["0"] = KeyBinding{Down: ControlAction(flight.Throttle, 100)}
	m.Keys["-"] = KeyBinding{Down: ControlAction(flight.Throttle, 0)}
	m.Keys["d"] = KeyBinding{Down: CommandAction(flight.Done)}
	m.Keys["t"] = KeyBinding{Down: CommandAction(flight.RunTest)}
	m.Keys["f"] = KeyBinding{Down: CommandAction(flight.EnterFlightMode)}
	m.Keys["y"] = KeyBinding{Down: CommandAction(flight.ToggleTelemetry)}
	return m
}

// Mappings holds the mapping for each mode.
type Mappings struct {
	Flight    *Mapping
	NonFlight *Mapping
}

// DefaultMappings returns the built-in mappings.
func DefaultMappings() *Mappings {
	return &Mappings{Flight: FlightMapping(), NonFlight: NonFlightMapping()}
}

// For returns the mapping of a kind.
func (m *Mappings) For(kind flight.MappingKind) *Mapping {
	if kind == flight.FlightMapping {
		return m.Flight
	}
	return m.NonFlight
}
