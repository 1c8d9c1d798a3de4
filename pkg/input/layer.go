package input

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/flight"
	"github.com/robotalks/quadlink/pkg/framework"
)

// Submitter receives the events produced by input.
type Submitter interface {
	Submit(flight.CommandEvent)
	Control(flight.ControlEvent)
}

// Layer routes raw input through the active mapping.
// It implements flight.InputLayer.
type Layer struct {
	Mappings *Mappings

	lock      sync.RWMutex
	target    Submitter
	active    flight.MappingKind
	producers []framework.Runnable

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLayer creates a Layer, nil mappings selects DefaultMappings.
func NewLayer(mappings *Mappings) *Layer {
	if mappings == nil {
		mappings = DefaultMappings()
	}
	return &Layer{Mappings: mappings, stopCh: make(chan struct{})}
}

// Name implements framework.Named.
func (l *Layer) Name() string {
	return "Input"
}

// Bind sets the receiver of produced events.
func (l *Layer) Bind(target Submitter) {
	l.lock.Lock()
	l.target = target
	l.lock.Unlock()
}

// Add registers raw event producers run by Run.
func (l *Layer) Add(producers ...framework.Runnable) {
	l.lock.Lock()
	l.producers = append(l.producers, producers...)
	l.lock.Unlock()
}

// SetActiveMapping implements flight.InputLayer.
func (l *Layer) SetActiveMapping(kind flight.MappingKind) {
	l.lock.Lock()
	l.active = kind
	l.lock.Unlock()
	glog.Infof("[Input] active mapping: %s", kind)
}

// Active returns the kind of the active mapping.
func (l *Layer) Active() flight.MappingKind {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.active
}

// Stop implements flight.InputLayer. It's safe to call more than once.
func (l *Layer) Stop() {
	l.stopOnce.Do(func() {
		glog.Info("[Input] stopping")
		close(l.stopCh)
	})
}

// Done is closed when the layer is stopped.
func (l *Layer) Done() <-chan struct{} {
	return l.stopCh
}

func (l *Layer) mapping() (*Mapping, Submitter) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.Mappings.For(l.active), l.target
}

// KeyDown handles a key press, returns false if the key is not mapped.
func (l *Layer) KeyDown(key string) bool {
	m, target := l.mapping()
	binding, ok := m.Keys[key]
	if !ok {
		glog.V(2).Infof("[Input] unmapped key %q", key)
		return false
	}
	l.apply(target, binding.Down)
	return true
}

// KeyUp handles a key release, returns false if the key is not mapped.
func (l *Layer) KeyUp(key string) bool {
	m, target := l.mapping()
	binding, ok := m.Keys[key]
	if !ok {
		return false
	}
	l.apply(target, binding.Up)
	return true
}

// Axis handles a joystick axis at position x in -1..1.
func (l *Layer) Axis(index int, x float64) bool {
	m, target := l.mapping()
	axis, ok := m.Axes[index]
	if !ok {
		return false
	}
	l.apply(target, ControlAction(axis, ToFlightUnits(x)))
	return true
}

// Button handles a joystick button, actions fire on press.
func (l *Layer) Button(index int, pressed bool) bool {
	m, target := l.mapping()
	action, ok := m.Buttons[index]
	if !ok {
		return false
	}
	if pressed {
		l.apply(target, action)
	}
	return true
}

// Do applies an action directly, bypassing the mapping.
func (l *Layer) Do(action *Action) {
	_, target := l.mapping()
	l.apply(target, action)
}

func (l *Layer) apply(target Submitter, action *Action) {
	if action == nil {
		return
	}
	if target == nil {
		glog.Warningf("[Input] not bound, dropped %s", action)
		return
	}
	switch {
	case action.Control != nil:
		target.Control(*action.Control)
	case action.Command != nil:
		target.Submit(*action.Command)
	}
}

// Run runs the producers until the context is done or Stop is called.
func (l *Layer) Run(ctx context.Context) error {
	l.lock.RLock()
	producers := append([]framework.Runnable(nil), l.producers...)
	l.lock.RUnlock()

	runner := framework.NewRunnerWith(ctx)
	go func() {
		select {
		case <-l.stopCh:
			runner.Stop()
		case <-runner.Context.Done():
		}
	}()
	err := runner.Go(producers...).Wait()
	runner.Stop()
	return err
}
