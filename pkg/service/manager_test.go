package service

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func always(item interface{}) Source {
	return SourceFunc(func() (interface{}, bool) { return item, true })
}

func nop(context.Context, interface{}) error { return nil }

type recorder struct {
	lock  sync.Mutex
	names []string
}

func (r *recorder) action(name string) Action {
	return func(context.Context, interface{}) error {
		r.lock.Lock()
		r.names = append(r.names, name)
		r.lock.Unlock()
		return nil
	}
}

func (r *recorder) snapshot() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.names...)
}

func runManager(t *testing.T, m *Manager) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			require.Equal(t, context.Canceled, err)
		case <-time.After(time.Second):
			t.Fatal("clock did not stop")
		}
	}
}

func TestRunQueueOrder(t *testing.T) {
	base := time.Unix(1000, 0)
	mk := func(name string, prio, order int, at time.Duration) *entry {
		return &entry{svc: &Service{Name: name, Priority: prio}, order: order, deadline: base.Add(at), index: -1}
	}
	var q runQueue
	for _, e := range []*entry{
		mk("Commands", 2, 1, 0),
		mk("late", 0, 2, 10*time.Millisecond),
		mk("Controls", 1, 0, 0),
		mk("also", 1, 3, 0),
	} {
		heap.Push(&q, e)
	}
	var names []string
	for _, e := range q.popDue(base) {
		names = append(names, e.svc.Name)
	}
	require.Equal(t, []string{"Controls", "also", "Commands"}, names)
	at, ok := q.next()
	require.True(t, ok)
	require.Equal(t, base.Add(10*time.Millisecond), at)
}

func TestGridAfter(t *testing.T) {
	base := time.Unix(1000, 0)
	iv := 50 * time.Millisecond
	testCases := []struct {
		t, expect time.Duration
	}{
		{-time.Second, 0},
		{0, 0},
		{1, iv},
		{iv, iv},
		{iv + 1, 2 * iv},
	}
	for _, tc := range testCases {
		require.Equal(t, base.Add(tc.expect), gridAfter(base, iv, base.Add(tc.t)))
	}
}

func TestRegister(t *testing.T) {
	m, err := NewManager(New("Controls", nop, always(1), 20, 1))
	require.NoError(t, err)
	err = m.Register(New("Controls", nop, always(1), 20, 1))
	require.True(t, errors.Is(err, ErrDuplicateService))
	err = m.Register(New("Broken", nop, nil, 20, 1))
	require.True(t, errors.Is(err, ErrInvalidService))
	err = m.Register(New("Still", nop, always(1), 0, 1))
	require.True(t, errors.Is(err, ErrInvalidService))
	require.Equal(t, []string{"Controls"}, m.Services())
	require.Equal(t, 50*time.Millisecond, New("x", nop, always(1), 20, 1).Interval)
}

func TestStartStopIdempotent(t *testing.T) {
	m, err := NewManager(New("Commands", nop, NewQueue(), 20, 2))
	require.NoError(t, err)
	m.Start("Unknown")
	m.Stop("Unknown")
	require.False(t, m.IsRunning("Unknown"))

	m.Stop("Commands")
	require.False(t, m.IsRunning("Commands"))
	m.Start("Commands")
	m.Start("Commands")
	require.True(t, m.IsRunning("Commands"))

	stop := runManager(t, m)
	defer stop()
	m.Stop("Commands")
	m.Stop("Commands")
	require.Eventually(t, func() bool { return !m.IsRunning("Commands") },
		time.Second, 5*time.Millisecond)
}

func TestPriorityOrdering(t *testing.T) {
	var rec recorder
	m, err := NewManager(
		New("Commands", rec.action("Commands"), always(1), 50, 2),
		New("Controls", rec.action("Controls"), always(1), 50, 1),
	)
	require.NoError(t, err)
	m.Start("Commands")
	m.Start("Controls")
	stop := runManager(t, m)
	require.Eventually(t, func() bool { return len(rec.snapshot()) >= 6 },
		time.Second, 5*time.Millisecond)
	stop()
	names := rec.snapshot()
	for i := 0; i+1 < len(names); i += 2 {
		require.Equal(t, []string{"Controls", "Commands"}, names[i:i+2])
	}
}

func TestStopLatency(t *testing.T) {
	var ticks int32
	svc := New("Controls", func(context.Context, interface{}) error {
		atomic.AddInt32(&ticks, 1)
		return nil
	}, always(1), 50, 1)
	m, err := NewManager(svc)
	require.NoError(t, err)
	m.Start("Controls")
	stop := runManager(t, m)
	defer stop()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&ticks) > 0 },
		time.Second, 5*time.Millisecond)

	m.Stop("Controls")
	time.Sleep(svc.Interval + 30*time.Millisecond)
	require.False(t, m.IsRunning("Controls"))
	count := atomic.LoadInt32(&ticks)
	time.Sleep(3 * svc.Interval)
	require.Equal(t, count, atomic.LoadInt32(&ticks))
}

func TestStopLatencyWithSlowSibling(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	slow := func(ctx context.Context, item interface{}) error {
		time.Sleep(80 * time.Millisecond)
		return nil
	}
	commands := New("Commands", nop, always(1), 20, 2)
	m, err := NewManager(New("Controls", slow, always(1), 20, 1), commands)
	require.NoError(t, err)
	m.Start("Controls")
	m.Start("Commands")
	stop := runManager(t, m)
	defer stop()
	time.Sleep(100 * time.Millisecond)

	var worst time.Duration
	for n := 0; n < 5; n++ {
		start := time.Now()
		m.Stop("Commands")
		for m.IsRunning("Commands") {
			require.Less(t, time.Since(start), time.Second)
			time.Sleep(time.Millisecond)
		}
		if elapsed := time.Since(start); elapsed > worst {
			worst = elapsed
		}
		m.Start("Commands")
		time.Sleep(70 * time.Millisecond)
	}
	require.LessOrEqual(t, worst, commands.Interval+15*time.Millisecond)
	require.True(t, m.IsRunning("Controls"))
}

func TestBusyServiceSkipsTicks(t *testing.T) {
	var running, overlap, calls int32
	m, err := NewManager(New("Controls", func(context.Context, interface{}) error {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.StoreInt32(&overlap, 1)
		}
		atomic.AddInt32(&calls, 1)
		time.Sleep(25 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}, always(1), 100, 1))
	require.NoError(t, err)
	m.Start("Controls")
	stop := runManager(t, m)
	time.Sleep(200 * time.Millisecond)
	stop()
	require.Zero(t, atomic.LoadInt32(&overlap))
	n := atomic.LoadInt32(&calls)
	require.True(t, n >= 3 && n < 15, "fired %d times", n)
}

func TestEmptySourceIsNoop(t *testing.T) {
	var calls int32
	var got atomic.Value
	q := NewQueue()
	m, err := NewManager(New("Commands", func(_ context.Context, item interface{}) error {
		got.Store(item)
		atomic.AddInt32(&calls, 1)
		return nil
	}, q, 100, 2))
	require.NoError(t, err)
	m.Start("Commands")
	stop := runManager(t, m)
	defer stop()
	time.Sleep(50 * time.Millisecond)
	require.Zero(t, atomic.LoadInt32(&calls))
	q.Put("cmd")
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 },
		time.Second, 5*time.Millisecond)
	require.Equal(t, "cmd", got.Load())
	require.True(t, m.IsRunning("Commands"))
}

func TestActionFailuresKeepServiceRunning(t *testing.T) {
	var calls int32
	m, err := NewManager(New("Flaky", func(context.Context, interface{}) error {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			panic("boom")
		case 2:
			return errors.New("failed")
		}
		return nil
	}, always(1), 100, 1))
	require.NoError(t, err)
	m.Start("Flaky")
	stop := runManager(t, m)
	defer stop()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 4 },
		time.Second, 5*time.Millisecond)
	require.True(t, m.IsRunning("Flaky"))
}

func TestTwentyHertz(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	var calls int32
	m, err := NewManager(New("Controls", func(context.Context, interface{}) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}, always([]byte{0x42}), 20, 1))
	require.NoError(t, err)
	m.Start("Controls")
	stop := runManager(t, m)
	time.Sleep(time.Second)
	stop()
	n := atomic.LoadInt32(&calls)
	require.True(t, n >= 18 && n <= 22, "fired %d times", n)
}

func TestClockExitMarksStopped(t *testing.T) {
	m, err := NewManager(New("Controls", nop, always(1), 20, 1))
	require.NoError(t, err)
	m.Start("Controls")
	stop := runManager(t, m)
	stop()
	require.False(t, m.IsRunning("Controls"))
}
