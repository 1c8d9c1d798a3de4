package flight

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/protocol"
	"github.com/robotalks/quadlink/pkg/service"
)

// Service names and priorities.
const (
	ControlsService  = "Controls"
	CommandsService  = "Commands"
	ControlsPriority = 1
	CommandsPriority = 2

	DefaultUplinkHz = 20
)

var (
	// ErrInvalidForMode indicates a command not valid in the current mode.
	ErrInvalidForMode = errors.New("command not valid in current mode")
	// ErrUnknownCommand indicates an unrecognized command kind.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingPayload indicates a command requires data bytes.
	ErrMissingPayload = errors.New("command requires payload")
)

// Sender transmits encoded frames on the uplink.
type Sender interface {
	Send(ctx context.Context, frame []byte) error
}

// InputLayer is the human input the session drives.
type InputLayer interface {
	SetActiveMapping(MappingKind)
	Stop()
}

// Config configures Commanding.
type Config struct {
	UplinkHz float64
	Registry *protocol.Registry
}

// commandSpec describes how a command kind is handled.
type commandSpec struct {
	opcode  string
	modes   []Mode // valid modes, empty for any
	payload bool
}

var commandSpecs = map[CommandKind]commandSpec{
	EnterFlightMode: {opcode: "flight_mode", modes: []Mode{NonFlight}},
	ExitFlightMode:  {opcode: "non_flight_mode", modes: []Mode{Flight}},
	ToggleTelemetry: {opcode: "downlink_yawpitchroll"},
	LevelQuad:       {opcode: "level_quad", modes: []Mode{Flight}},
	RunTest:         {opcode: "run_test", modes: []Mode{NonFlight}},
	Done:            {opcode: "done", modes: []Mode{NonFlight}},
	Terminate:       {opcode: "terminate"},
	ChangePIDGain:   {opcode: "change_pid_gain", modes: []Mode{NonFlight}, payload: true},
}

func (s commandSpec) validIn(mode Mode) bool {
	if len(s.modes) == 0 {
		return true
	}
	for _, m := range s.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Commanding owns the flight mode and the uplink services.
type Commanding struct {
	tx       Sender
	input    InputLayer
	controls *Controls
	commands *service.Queue
	services *service.Manager
	opcodes  map[CommandKind]protocol.Opcode

	// handling serializes HandleCommand, lock only guards mode
	// so Mode never waits on a transmission.
	handling sync.Mutex
	lock     sync.Mutex
	mode     Mode
}

// New creates Commanding in NON_FLIGHT mode with command intake started.
func New(cfg Config, tx Sender, in InputLayer) (*Commanding, error) {
	reg := cfg.Registry
	if reg == nil {
		reg = protocol.DefaultRegistry()
	}
	hz := cfg.UplinkHz
	if hz <= 0 {
		hz = DefaultUplinkHz
	}
	c := &Commanding{
		tx:       tx,
		input:    in,
		controls: NewControls(),
		commands: service.NewQueue(),
		opcodes:  make(map[CommandKind]protocol.Opcode),
	}
	for kind, spec := range commandSpecs {
		op, ok := reg.Lookup(spec.opcode)
		if !ok {
			return nil, &protocol.OpcodeError{Name: spec.opcode}
		}
		c.opcodes[kind] = op
	}
	if _, ok := reg.Lookup("controls"); !ok {
		return nil, &protocol.OpcodeError{Name: "controls"}
	}
	services, err := service.NewManager(
		service.New(ControlsService, c.sendControls, c.controls, hz, ControlsPriority),
		service.New(CommandsService, c.handleItem, c.commands, hz, CommandsPriority),
	)
	if err != nil {
		return nil, err
	}
	c.services = services
	c.services.Start(CommandsService)
	c.setMapping(NonFlightMapping)
	return c, nil
}

// Name implements framework.Named.
func (c *Commanding) Name() string {
	return "Commanding"
}

// Controls returns the shared controls.
func (c *Commanding) Controls() *Controls {
	return c.controls
}

// Services returns the uplink service manager.
func (c *Commanding) Services() *service.Manager {
	return c.services
}

// Mode returns the current mode.
func (c *Commanding) Mode() Mode {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.mode
}

// Submit queues a command for the Commands service.
func (c *Commanding) Submit(ev CommandEvent) {
	glog.V(2).Infof("[Commanding] queued %s", ev)
	c.commands.Put(ev)
}

// Control applies a control event to the shared controls.
func (c *Commanding) Control(ev ControlEvent) {
	if !c.controls.Set(ev.Axis, ev.Value) {
		glog.Warningf("[Commanding] unknown control %s", ev.Axis)
	}
}

// Run runs the uplink clock until the context is done, then stops
// both services and the input layer.
func (c *Commanding) Run(ctx context.Context) error {
	err := c.services.Run(ctx)
	glog.Info("[Commanding] Shutting down")
	c.services.StopAll()
	if c.input != nil {
		c.input.Stop()
	}
	return err
}

func (c *Commanding) sendControls(ctx context.Context, item interface{}) error {
	frame, ok := item.([]byte)
	if !ok {
		return fmt.Errorf("unexpected controls item %T", item)
	}
	return c.tx.Send(ctx, frame)
}

func (c *Commanding) handleItem(ctx context.Context, item interface{}) error {
	ev, ok := item.(CommandEvent)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownCommand, item)
	}
	return c.HandleCommand(ctx, ev)
}

// HandleCommand applies a command event. Events not valid in the
// current mode are rejected with ErrInvalidForMode and transmit nothing.
func (c *Commanding) HandleCommand(ctx context.Context, ev CommandEvent) error {
	spec, ok := commandSpecs[ev.Kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, ev.Kind)
	}
	if spec.payload && len(ev.Payload) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingPayload, ev.Kind)
	}

	c.handling.Lock()
	defer c.handling.Unlock()
	if mode := c.Mode(); !spec.validIn(mode) {
		return fmt.Errorf("%w: %s in %s", ErrInvalidForMode, ev.Kind, mode)
	}

	switch ev.Kind {
	case EnterFlightMode:
		glog.Info("[Commanding] entering flight mode")
		c.setMapping(FlightMapping)
		c.services.Start(ControlsService)
	case ExitFlightMode:
		glog.Info("[Commanding] exiting flight mode")
		c.services.Stop(ControlsService)
		c.setMapping(NonFlightMapping)
	case Terminate:
		glog.Warning("[Commanding] terminating")
		c.services.Stop(ControlsService)
		c.controls.Set(Throttle, MinValue)
		c.setMapping(NonFlightMapping)
	}

	var payload []byte
	if spec.payload {
		payload = ev.Payload
	}
	err := c.send(ctx, c.opcodes[ev.Kind], payload)

	switch ev.Kind {
	case EnterFlightMode:
		c.setMode(Flight)
	case ExitFlightMode, Terminate:
		c.setMode(NonFlight)
	}
	return err
}

func (c *Commanding) setMode(mode Mode) {
	c.lock.Lock()
	c.mode = mode
	c.lock.Unlock()
}

func (c *Commanding) send(ctx context.Context, op protocol.Opcode, data []byte) error {
	frame, err := protocol.Encode(op, data)
	if err != nil {
		return err
	}
	return c.tx.Send(ctx, frame)
}

func (c *Commanding) setMapping(kind MappingKind) {
	if c.input != nil {
		c.input.SetActiveMapping(kind)
	}
}
