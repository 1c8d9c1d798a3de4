package service

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Manager runs registered services on one logical clock.
// The clock observes stop requests and hands due ticks to one worker
// goroutine per service, so a slow action never delays another
// service's tick or stop. Ticks falling due together start in
// priority order.
type Manager struct {
	epoch time.Time

	lock     sync.RWMutex
	services map[string]*entry
	ordered  []*entry

	queue   runQueue
	wakeCh  chan struct{}
	workers sync.WaitGroup
}

// NewManager creates a Manager with the services registered.
func NewManager(services ...*Service) (*Manager, error) {
	m := &Manager{
		epoch:    time.Now(),
		services: make(map[string]*entry),
		wakeCh:   make(chan struct{}, 1),
	}
	for _, svc := range services {
		if err := m.Register(svc); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Name implements framework.Named.
func (m *Manager) Name() string {
	return "ServiceManager"
}

// Register adds a service, which is initially stopped.
func (m *Manager) Register(svc *Service) error {
	if err := svc.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidService, err)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, exist := m.services[svc.Name]; exist {
		return fmt.Errorf("%w: %s", ErrDuplicateService, svc.Name)
	}
	e := &entry{svc: svc, order: len(m.ordered), index: -1}
	m.services[svc.Name] = e
	m.ordered = append(m.ordered, e)
	return nil
}

// Services returns registered service names in registration order.
func (m *Manager) Services() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	names := make([]string, 0, len(m.ordered))
	for _, e := range m.ordered {
		names = append(names, e.svc.Name)
	}
	return names
}

func (m *Manager) find(name string) *entry {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.services[name]
}

// Start starts a service. Starting a running service only logs,
// an unknown name is a no-op with a warning.
// A stop requested but not yet observed is revoked.
func (m *Manager) Start(name string) {
	e := m.find(name)
	if e == nil {
		glog.Warningf("[ServiceManager] start: unknown service %q", name)
		return
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.running {
		if e.stopReq {
			e.stopReq = false
			glog.Infof("[ServiceManager] Service %s stop revoked", name)
			return
		}
		glog.V(2).Infof("[ServiceManager] Service %s already running", name)
		return
	}
	glog.Infof("[ServiceManager] Starting service %s", name)
	e.running, e.stopReq, e.pending = true, false, true
	m.wake()
}

// Stop requests a service to stop. The request is observed at the
// service's next tick, so IsRunning may report true for up to one
// interval. Stop never blocks on the tick.
func (m *Manager) Stop(name string) {
	e := m.find(name)
	if e == nil {
		glog.Warningf("[ServiceManager] stop: unknown service %q", name)
		return
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	if !e.running || e.stopReq {
		glog.V(2).Infof("[ServiceManager] Service %s not running", name)
		return
	}
	glog.Infof("[ServiceManager] Stopping service %s", name)
	e.stopReq = true
	m.wake()
}

// StopAll requests every running service to stop.
func (m *Manager) StopAll() {
	for _, name := range m.Services() {
		if m.IsRunning(name) {
			m.Stop(name)
		}
	}
}

// IsRunning indicates the service is started and its stop
// has not been observed yet.
func (m *Manager) IsRunning(name string) bool {
	e := m.find(name)
	if e == nil {
		return false
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.running
}

func (m *Manager) wake() {
	select {
	case m.wakeCh <- struct{}{}:
	default:
	}
}

// Run implements framework.Runnable, it is the clock.
// When the context is done, services no longer tick and are marked
// stopped once their workers return.
func (m *Manager) Run(ctx context.Context) error {
	glog.Info("[ServiceManager] clock started")
	defer glog.Info("[ServiceManager] clock stopped")
	defer m.halt()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	for {
		m.schedulePending(ctx, time.Now())
		var timerCh <-chan time.Time
		if at, ok := m.queue.next(); ok {
			timer.Reset(time.Until(at))
			timerCh = timer.C
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.wakeCh:
			if timerCh != nil && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timerCh:
			var prev <-chan struct{}
			for _, e := range m.queue.popDue(time.Now()) {
				prev = m.tick(ctx, e, prev)
			}
		}
	}
}

// schedulePending places newly started services on the grid.
func (m *Manager) schedulePending(ctx context.Context, now time.Time) {
	m.lock.RLock()
	entries := m.ordered
	m.lock.RUnlock()
	for _, e := range entries {
		e.lock.Lock()
		if e.pending {
			e.pending = false
			if e.stopReq {
				e.running, e.stopReq = false, false
				e.lock.Unlock()
				glog.Infof("[ServiceManager] Service %s stopped", e.svc.Name)
				continue
			}
			if e.index < 0 {
				e.deadline = gridAfter(m.epoch, e.svc.Interval, now)
				heap.Push(&m.queue, e)
			}
		}
		e.lock.Unlock()
		if e.index >= 0 && e.jobs == nil {
			e.jobs = make(chan job, 1)
			m.workers.Add(1)
			go m.work(ctx, e)
		}
	}
}

// tick observes the stop flag, hands the tick to the worker unless
// it is still busy, and reschedules. It returns the channel the next
// coinciding tick waits on.
func (m *Manager) tick(ctx context.Context, e *entry, prev <-chan struct{}) <-chan struct{} {
	e.lock.Lock()
	if e.stopReq {
		e.running, e.stopReq = false, false
		e.lock.Unlock()
		glog.Infof("[ServiceManager] Service %s stopped", e.svc.Name)
		return prev
	}
	e.lock.Unlock()

	next := prev
	if e.busy.Load() {
		glog.V(2).Infof("[ServiceManager] Service %s still busy, tick skipped", e.svc.Name)
	} else {
		done := make(chan struct{})
		e.busy.Store(true)
		e.jobs <- job{prev: prev, done: done}
		next = done
	}

	interval := e.svc.Interval
	deadline := e.deadline.Add(interval)
	if late := time.Since(deadline); late >= interval {
		skipped := int64(late / interval)
		deadline = deadline.Add(time.Duration(skipped) * interval)
		glog.V(2).Infof("[ServiceManager] Service %s behind, skipped %d tick(s)", e.svc.Name, skipped)
	}
	e.deadline = deadline
	heap.Push(&m.queue, e)
	return next
}

// work executes the ticks of one service until the context is done.
func (m *Manager) work(ctx context.Context, e *entry) {
	defer m.workers.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-e.jobs:
			m.execute(ctx, e, j)
		}
	}
}

func (m *Manager) execute(ctx context.Context, e *entry, j job) {
	defer func() {
		close(j.done)
		e.busy.Store(false)
	}()
	if j.prev != nil {
		select {
		case <-j.prev:
		case <-ctx.Done():
			return
		}
	}
	if !e.active() {
		return
	}
	if item, ok := e.svc.Source.Poll(); ok {
		if glog.V(4) {
			glog.Infof("[%sService] Emitting event %v", e.svc.Name, item)
		}
		invoke(ctx, e.svc, item)
	}
}

func invoke(ctx context.Context, svc *Service, item interface{}) {
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("[ServiceManager] Service %s action panic: %v", svc.Name, r)
		}
	}()
	if err := svc.Action(ctx, item); err != nil {
		glog.Warningf("[ServiceManager] Service %s action error: %v", svc.Name, err)
	}
}

// halt waits for the workers and marks every service stopped
// once the clock exits.
func (m *Manager) halt() {
	m.workers.Wait()
	for m.queue.Len() > 0 {
		heap.Pop(&m.queue)
	}
	m.lock.RLock()
	entries := m.ordered
	m.lock.RUnlock()
	for _, e := range entries {
		e.lock.Lock()
		e.running, e.stopReq, e.pending = false, false, false
		e.lock.Unlock()
		e.jobs = nil
		e.busy.Store(false)
	}
}
