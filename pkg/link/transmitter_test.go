package link

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/quadlink/pkg/protocol"
)

type recordWriter struct {
	lock   sync.Mutex
	writes [][]byte
	err    error
}

func (w *recordWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.err != nil {
		return 0, w.err
	}
	w.writes = append(w.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (w *recordWriter) bytes() []byte {
	w.lock.Lock()
	defer w.lock.Unlock()
	return bytes.Join(w.writes, nil)
}

func TestTransmitterBytewise(t *testing.T) {
	w := &recordWriter{}
	tx := NewTransmitter(w)
	tx.InterByteDelay = time.Millisecond
	require.NoError(t, tx.SendPacket(context.Background(), protocol.OpFlightMode))
	require.Len(t, w.writes, 4)
	for _, write := range w.writes {
		require.Len(t, write, 1)
	}
	require.Equal(t, protocol.MustEncode(protocol.OpFlightMode), w.bytes())
	require.Equal(t, uint64(1), tx.Stats.FramesOut.Load())
	require.Equal(t, uint64(4), tx.Stats.BytesOut.Load())
}

func TestTransmitterSerializes(t *testing.T) {
	w := &recordWriter{}
	tx := NewTransmitter(w)
	tx.InterByteDelay = 0
	a := protocol.MustEncode(protocol.OpControls, 1, 2, 3, 4)
	b := protocol.MustEncode(protocol.OpControls, 5, 6, 7, 8)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); tx.Send(context.Background(), a) }()
		go func() { defer wg.Done(); tx.Send(context.Background(), b) }()
	}
	wg.Wait()
	out := w.bytes()
	require.Len(t, out, 40*len(a))
	for off := 0; off < len(out); off += len(a) {
		frame := out[off : off+len(a)]
		require.True(t, bytes.Equal(frame, a) || bytes.Equal(frame, b), "interleaved frame % x", frame)
	}
}

func TestTransmitterFailure(t *testing.T) {
	w := &recordWriter{err: errors.New("unplugged")}
	tx := NewTransmitter(w)
	err := tx.SendPacket(context.Background(), protocol.OpDone)
	require.True(t, errors.Is(err, ErrDisconnected))
	w.err = nil
	err = tx.SendPacket(context.Background(), protocol.OpDone)
	require.True(t, errors.Is(err, ErrDisconnected))
	require.Empty(t, w.writes)
}

func TestTransmitterCanceled(t *testing.T) {
	w := &recordWriter{}
	tx := NewTransmitter(w)
	tx.InterByteDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := tx.SendPacket(ctx, protocol.OpDone)
	require.Equal(t, context.Canceled, err)
	require.Len(t, w.writes, 1)
}

func TestTransmitterTooLarge(t *testing.T) {
	tx := NewTransmitter(&recordWriter{})
	require.Equal(t, protocol.ErrFrameTooLarge, tx.SendPacket(context.Background(), protocol.OpString, make([]byte, 80)...))
}
