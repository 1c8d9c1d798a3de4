package flight

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/robotalks/quadlink/pkg/protocol"
)

// Axis selects one of the four flight controls.
type Axis int

// Control axes, in wire order.
const (
	Yaw Axis = iota
	Pitch
	Roll
	Throttle
	numAxes
)

var axisNames = [numAxes]string{"yaw", "pitch", "roll", "throttle"}

// String implements fmt.Stringer.
func (a Axis) String() string {
	if a >= 0 && a < numAxes {
		return axisNames[a]
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis parses an axis name.
func ParseAxis(name string) (Axis, error) {
	name = strings.ToLower(name)
	for n, s := range axisNames {
		if s == name {
			return Axis(n), nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", name)
}

// Flight unit limits.
const (
	MinValue   = 0
	MaxValue   = 100
	LevelValue = 50
)

// Controls holds the flight controls in flight units (0..100).
// Each field is read and written atomically on its own, a reader
// may observe fields from different updates.
type Controls struct {
	values [numAxes]atomic.Uint32
}

// NewControls creates Controls level with zero throttle.
func NewControls() *Controls {
	c := &Controls{}
	c.Reset()
	return c
}

// Reset restores the level, zero throttle state.
func (c *Controls) Reset() {
	c.Set(Yaw, LevelValue)
	c.Set(Pitch, LevelValue)
	c.Set(Roll, LevelValue)
	c.Set(Throttle, MinValue)
}

// Clamp limits v to flight units.
func Clamp(v int) byte {
	switch {
	case v < MinValue:
		return MinValue
	case v > MaxValue:
		return MaxValue
	}
	return byte(v)
}

// Set assigns an axis, clamped to flight units.
// An unknown axis is ignored and reports false.
func (c *Controls) Set(axis Axis, v int) bool {
	if axis < 0 || axis >= numAxes {
		return false
	}
	c.values[axis].Store(uint32(Clamp(v)))
	return true
}

// Get reads an axis.
func (c *Controls) Get(axis Axis) byte {
	if axis < 0 || axis >= numAxes {
		return 0
	}
	return byte(c.values[axis].Load())
}

// Yaw returns the current yaw value.
func (c *Controls) Yaw() byte { return c.Get(Yaw) }

// Pitch returns the current pitch value.
func (c *Controls) Pitch() byte { return c.Get(Pitch) }

// Roll returns the current roll value.
func (c *Controls) Roll() byte { return c.Get(Roll) }

// Throttle returns the current throttle value.
func (c *Controls) Throttle() byte { return c.Get(Throttle) }

// SetYaw sets yaw, clamped like Set.
func (c *Controls) SetYaw(v int) { c.Set(Yaw, v) }

// SetPitch sets pitch, clamped like Set.
func (c *Controls) SetPitch(v int) { c.Set(Pitch, v) }

// SetRoll sets roll, clamped like Set.
func (c *Controls) SetRoll(v int) { c.Set(Roll, v) }

// SetThrottle sets throttle, clamped like Set.
func (c *Controls) SetThrottle(v int) { c.Set(Throttle, v) }

// Snapshot reads all axes in wire order.
func (c *Controls) Snapshot() (s [4]byte) {
	for n := range s {
		s[n] = c.Get(Axis(n))
	}
	return
}

// Frame encodes the current values as a controls frame.
func (c *Controls) Frame() []byte {
	s := c.Snapshot()
	return protocol.MustEncode(protocol.OpControls, s[:]...)
}

// Poll implements service.Source. It always yields the current
// controls frame so the uplink repeats steady state every tick.
func (c *Controls) Poll() (interface{}, bool) {
	return c.Frame(), true
}

// String implements fmt.Stringer.
func (c *Controls) String() string {
	s := c.Snapshot()
	return fmt.Sprintf("yaw=%d pitch=%d roll=%d throttle=%d", s[Yaw], s[Pitch], s[Roll], s[Throttle])
}
