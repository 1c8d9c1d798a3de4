package service

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"
)

// entry is the scheduling state of a registered service.
// lock guards running, stopReq and pending; deadline, index and jobs
// are owned by the clock goroutine. busy is set by the clock on
// hand-off and cleared by the worker.
type entry struct {
	svc   *Service
	order int

	lock    sync.Mutex
	running bool
	stopReq bool
	pending bool

	deadline time.Time
	index    int

	jobs chan job
	busy atomic.Bool
}

// job is one tick handed to a service worker. The action starts
// after prev closes, keeping coinciding ticks in priority order.
type job struct {
	prev <-chan struct{}
	done chan struct{}
}

// active indicates the service is running without a pending stop.
func (e *entry) active() bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.running && !e.stopReq
}

// runQueue orders scheduled entries by deadline, then priority,
// then registration order.
type runQueue []*entry

func (q runQueue) Len() int { return len(q) }

func (q runQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if !a.deadline.Equal(b.deadline) {
		return a.deadline.Before(b.deadline)
	}
	if a.svc.Priority != b.svc.Priority {
		return a.svc.Priority < b.svc.Priority
	}
	return a.order < b.order
}

func (q runQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}

func (q *runQueue) Push(x interface{}) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *runQueue) Pop() interface{} {
	old := *q
	n := len(old) - 1
	e := old[n]
	old[n], e.index = nil, -1
	*q = old[:n]
	return e
}

// next returns the earliest deadline, false if nothing is scheduled.
func (q runQueue) next() (time.Time, bool) {
	if len(q) == 0 {
		return time.Time{}, false
	}
	return q[0].deadline, true
}

// popDue removes all entries due at now in firing order.
func (q *runQueue) popDue(now time.Time) (due []*entry) {
	for q.Len() > 0 && !(*q)[0].deadline.After(now) {
		due = append(due, heap.Pop(q).(*entry))
	}
	return
}

// gridAfter returns the first point of the grid base + k*interval
// not before t.
func gridAfter(base time.Time, interval time.Duration, t time.Time) time.Time {
	if !t.After(base) {
		return base
	}
	n := t.Sub(base) / interval
	at := base.Add(n * interval)
	if at.Before(t) {
		at = at.Add(interval)
	}
	return at
}
