package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/protocol"
	"github.com/robotalks/quadlink/pkg/telemetry/msgs"
)

// Dispatcher routes downlink frames to handlers by opcode.
// It implements link.PacketHandler.
type Dispatcher struct {
	Registry *protocol.Registry
	Sink     Sink

	handlers map[protocol.Opcode]Handler

	decoded atomic.Uint64
	dropped atomic.Uint64
}

// NewDispatcher creates a Dispatcher with no handlers.
func NewDispatcher(reg *protocol.Registry, sink Sink) *Dispatcher {
	if reg == nil {
		reg = protocol.DefaultRegistry()
	}
	return &Dispatcher{
		Registry: reg,
		Sink:     sink,
		handlers: make(map[protocol.Opcode]Handler),
	}
}

// Register installs the handler of an opcode by name.
// Handlers are registered at startup, before frames are dispatched.
func (d *Dispatcher) Register(name string, h Handler) error {
	op, ok := d.Registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOpcode, name)
	}
	if d.Registry.Category(op) == protocol.CategoryCommand {
		return fmt.Errorf("%w: %s", ErrUplinkOnly, name)
	}
	d.handlers[op] = h
	return nil
}

// RegisterDefaults installs DefaultHandlers for registered opcodes.
func (d *Dispatcher) RegisterDefaults() error {
	for _, op := range d.Registry.Opcodes() {
		if d.Registry.Category(op) == protocol.CategoryCommand {
			continue
		}
		name, _ := d.Registry.Name(op)
		if h, ok := DefaultHandlers[name]; ok {
			if err := d.Register(name, h); err != nil {
				return err
			}
		}
	}
	return nil
}

// Counts returns the numbers of decoded and dropped frames.
func (d *Dispatcher) Counts() (decoded, dropped uint64) {
	return d.decoded.Load(), d.dropped.Load()
}

// HandlePacket implements link.PacketHandler. Nothing escapes it:
// unknown opcodes, missing handlers and handler failures are logged.
func (d *Dispatcher) HandlePacket(ctx context.Context, pkt *protocol.Packet) {
	name, ok := d.Registry.Name(pkt.Opcode)
	if !ok {
		d.dropped.Add(1)
		glog.Warningf("[Dispatcher] Invalid op-code 0x%02x", byte(pkt.Opcode))
		return
	}
	h := d.handlers[pkt.Opcode]
	if h == nil {
		d.dropped.Add(1)
		glog.Warningf("[Dispatcher] No handler for %s", d.Registry.Format(pkt.Opcode))
		return
	}
	msg, err := decode(h, pkt)
	if err != nil {
		d.dropped.Add(1)
		glog.Warningf("[Dispatcher] %s: %v", name, err)
		return
	}
	d.decoded.Add(1)
	if d.Sink == nil {
		return
	}
	if err := d.Sink.Emit(ctx, name, msg); err != nil {
		glog.Warningf("[Dispatcher] emit %s: %v", name, err)
	}
}

func decode(h Handler, pkt *protocol.Packet) (msg msgs.Telemetry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(pkt)
}
