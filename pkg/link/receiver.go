package link

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/protocol"
)

// PacketHandler is called when a frame is received.
type PacketHandler interface {
	HandlePacket(context.Context, *protocol.Packet)
}

// HandlePacketFunc is func type of PacketHandler.
type HandlePacketFunc func(context.Context, *protocol.Packet)

// HandlePacket implements PacketHandler.
func (f HandlePacketFunc) HandlePacket(ctx context.Context, pkt *protocol.Packet) {
	f(ctx, pkt)
}

// ChecksumPolicy decides what happens to frames with a bad checksum.
type ChecksumPolicy int

const (
	// DispatchOnMismatch logs the mismatch and still dispatches the frame.
	DispatchOnMismatch ChecksumPolicy = iota
	// DropOnMismatch logs the mismatch and drops the frame.
	DropOnMismatch
)

// String implements flag.Value.
func (p ChecksumPolicy) String() string {
	if p == DropOnMismatch {
		return "drop"
	}
	return "dispatch"
}

// Set implements flag.Value.
func (p *ChecksumPolicy) Set(val string) error {
	switch strings.ToLower(val) {
	case "dispatch":
		*p = DispatchOnMismatch
	case "drop":
		*p = DropOnMismatch
	default:
		return fmt.Errorf("invalid checksum policy %q, expect dispatch or drop", val)
	}
	return nil
}

// Receiver reads frames from a transport and hands them to Handler.
type Receiver struct {
	Reader  io.Reader
	Handler PacketHandler
	Policy  ChecksumPolicy
	Stats   *Stats

	parser    Parser
	discarded int
	firstSkip byte
}

// NewReceiver creates a Receiver.
func NewReceiver(r io.Reader, h PacketHandler) *Receiver {
	return &Receiver{Reader: r, Handler: h, Stats: &Stats{}}
}

// Name implements framework.Named.
func (r *Receiver) Name() string {
	return "Receiver"
}

// Run reads the transport until the context is canceled or the transport fails.
// The transport is expected to return from Read within a short timeout.
func (r *Receiver) Run(ctx context.Context) error {
	if r.Stats == nil {
		r.Stats = &Stats{}
	}
	glog.Info("[Receiver] starting")
	defer glog.Info("[Receiver] stopped")
	r.parser.Reset()
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := r.Reader.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !isTimeout(err) {
				glog.Errorf("CRITICAL: [Receiver] device disconnected, exiting: %v", err)
				return fmt.Errorf("%w: %v", ErrDisconnected, err)
			}
			n = 0
		}
		if n == 0 {
			r.apply(ctx, r.parser.Timeout())
			continue
		}
		r.Stats.BytesIn.Add(1)
		r.apply(ctx, r.parser.Parse(buf[0]))
	}
}

func (r *Receiver) apply(ctx context.Context, pr ParseResult) {
	if pr.Event == EventResync {
		if r.discarded == 0 {
			r.firstSkip = pr.Byte
			r.Stats.Resyncs.Add(1)
		}
		r.discarded++
		r.Stats.Discarded.Add(1)
		return
	}
	r.flushResync()

	switch pr.Event {
	case EventOversize:
		r.Stats.Oversize.Add(1)
		glog.Warningf("[Receiver] packet size field indicates MAX_PACKET_DATA_SIZE exceeded (%d > %d)",
			pr.Byte, protocol.MaxPacketDataSize)
	case EventAbandoned:
		r.Stats.Abandoned.Add(1)
		glog.Warning("[Receiver] timeout in the middle of a frame, frame dropped")
	case EventMalformed:
		r.Stats.Malformed.Add(1)
		glog.Warning("[Receiver] malformed frame dropped")
	case EventFrame:
		r.Stats.FramesIn.Add(1)
		r.dispatch(ctx, pr.Packet)
	}
}

func (r *Receiver) flushResync() {
	if r.discarded == 0 {
		return
	}
	glog.Warningf("[Receiver] resync: discarded %d non-header byte(s) starting with 0x%02x", r.discarded, r.firstSkip)
	r.discarded = 0
}

func (r *Receiver) dispatch(ctx context.Context, pkt *protocol.Packet) {
	if computed := pkt.ComputedChecksum(); computed != pkt.Checksum {
		r.Stats.ChecksumErrors.Add(1)
		glog.Warningf("[Receiver] bad checksum 0x%02x (expected 0x%02x) %s", pkt.Checksum, computed, pkt)
		if r.Policy == DropOnMismatch {
			return
		}
	}
	if glog.V(2) {
		glog.Infof("[Receiver] dispatching %s", pkt)
	}
	if h := r.Handler; h != nil {
		h.HandlePacket(ctx, pkt)
	}
}
