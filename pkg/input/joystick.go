package input

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/flight"
	"github.com/robotalks/quadlink/pkg/input/device"
)

// Joystick feeds joystick events into a Layer.
// The device is reopened when it disappears.
type Joystick struct {
	Layer *Layer
	// DeviceIndex selects the device, -1 for auto detection.
	DeviceIndex   int
	Open          device.Opener
	RetryInterval time.Duration
	Verbose       bool
}

// NewJoystick creates a Joystick with auto detection.
func NewJoystick(layer *Layer, index int) *Joystick {
	return &Joystick{
		Layer:         layer,
		DeviceIndex:   index,
		Open:          device.OpenOrDetect,
		RetryInterval: time.Second,
	}
}

// Name implements framework.Named.
func (j *Joystick) Name() string {
	return "Joystick"
}

// Run implements framework.Runnable.
func (j *Joystick) Run(ctx context.Context) error {
	var dev device.Device
	var eventCh chan device.Event
	defer func() {
		if dev != nil {
			dev.Close()
		}
	}()
	retry := time.NewTimer(0)
	defer retry.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-retry.C:
			js, err := j.Open(j.DeviceIndex)
			if err != nil {
				glog.V(2).Infof("[Joystick] open %d: %v", j.DeviceIndex, err)
				retry.Reset(j.RetryInterval)
				continue
			}
			glog.Infof("[Joystick] %d %q opened", js.Index(), js.Name())
			dev, eventCh = js, make(chan device.Event, 1)
			go j.poll(ctx, dev, eventCh)
		case ev, ok := <-eventCh:
			if ok {
				j.handleEvent(ev)
				continue
			}
			glog.Warningf("[Joystick] %d lost, leveling attitude", dev.Index())
			j.level()
			dev.Close()
			dev, eventCh = nil, nil
			retry.Reset(j.RetryInterval)
		}
	}
}

func (j *Joystick) poll(ctx context.Context, dev device.Device, ch chan<- device.Event) {
	defer close(ch)
	for {
		ev, err := dev.ReadEvent()
		if err != nil {
			glog.V(2).Infof("[Joystick] read error: %v", err)
			return
		}
		if j.Verbose {
			glog.Info(ev)
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (j *Joystick) handleEvent(ev device.Event) {
	switch ev.Kind {
	case device.KindAxis:
		j.Layer.Axis(ev.Index, ev.Normalized())
	case device.KindButton:
		if !ev.Init {
			j.Layer.Button(ev.Index, ev.Pressed())
		}
	}
}

// level centers the mapped attitude axes, throttle is left unchanged.
func (j *Joystick) level() {
	m, _ := j.Layer.mapping()
	for index, axis := range m.Axes {
		if axis != flight.Throttle {
			j.Layer.Axis(index, 0)
		}
	}
}
