package service

import "sync"

// Source provides items to a service without blocking.
// An empty source returns false, which is not an error.
type Source interface {
	Poll() (interface{}, bool)
}

// SourceFunc is the func form of Source.
type SourceFunc func() (interface{}, bool)

// Poll implements Source.
func (f SourceFunc) Poll() (interface{}, bool) {
	return f()
}

// Queue is an unbounded FIFO implementing Source.
type Queue struct {
	lock  sync.Mutex
	items []interface{}
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Put appends an item.
func (q *Queue) Put(item interface{}) {
	q.lock.Lock()
	q.items = append(q.items, item)
	q.lock.Unlock()
}

// Poll implements Source.
func (q *Queue) Poll() (item interface{}, ok bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	item, ok = q.items[0], true
	q.items[0] = nil
	if q.items = q.items[1:]; len(q.items) == 0 {
		q.items = nil
	}
	return
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items)
}
