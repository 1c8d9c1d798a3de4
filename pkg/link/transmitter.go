package link

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/protocol"
)

// DefaultInterByteDelay gives the remote microcontroller time to drain
// its receive register between bytes.
const DefaultInterByteDelay = 10 * time.Millisecond

// Transmitter writes frames to a transport one byte at a time.
// Concurrent Sends are serialized so frames never interleave.
type Transmitter struct {
	Writer         io.Writer
	InterByteDelay time.Duration
	Stats          *Stats

	lock   sync.Mutex
	failed error
}

// NewTransmitter creates a Transmitter with the default inter-byte delay.
func NewTransmitter(w io.Writer) *Transmitter {
	return &Transmitter{
		Writer:         w,
		InterByteDelay: DefaultInterByteDelay,
		Stats:          &Stats{},
	}
}

// Send writes an encoded frame.
// Once a write fails, every following Send fails with ErrDisconnected.
func (t *Transmitter) Send(ctx context.Context, frame []byte) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.failed != nil {
		return t.failed
	}
	if glog.V(2) {
		glog.Infof("[Transmitter] sending % x", frame)
	}
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for _, b := range frame {
		if _, err := t.Writer.Write([]byte{b}); err != nil {
			glog.Errorf("CRITICAL: [Transmitter] device disconnected: %v", err)
			t.failed = fmt.Errorf("%w: %v", ErrDisconnected, err)
			return t.failed
		}
		if t.Stats != nil {
			t.Stats.BytesOut.Add(1)
		}
		if t.InterByteDelay <= 0 {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(t.InterByteDelay)
		} else {
			timer.Reset(t.InterByteDelay)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if t.Stats != nil {
		t.Stats.FramesOut.Add(1)
	}
	return nil
}

// SendPacket encodes and sends a frame.
func (t *Transmitter) SendPacket(ctx context.Context, op protocol.Opcode, data ...byte) error {
	frame, err := protocol.Encode(op, data)
	if err != nil {
		return err
	}
	return t.Send(ctx, frame)
}
