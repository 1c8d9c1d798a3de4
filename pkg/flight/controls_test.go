package flight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/quadlink/pkg/protocol"
)

func TestControlsInitial(t *testing.T) {
	c := NewControls()
	require.Equal(t, [4]byte{50, 50, 50, 0}, c.Snapshot())
	require.Equal(t, "yaw=50 pitch=50 roll=50 throttle=0", c.String())
}

func TestControlsClamp(t *testing.T) {
	c := NewControls()
	testCases := []struct {
		axis   Axis
		value  int
		expect byte
	}{
		{Yaw, -5, 0},
		{Pitch, 100, 100},
		{Roll, 250, 100},
		{Throttle, 42, 42},
	}
	for _, tc := range testCases {
		require.True(t, c.Set(tc.axis, tc.value))
		require.Equal(t, tc.expect, c.Get(tc.axis), tc.axis.String())
	}
	require.False(t, c.Set(Axis(7), 10))
	c.Reset()
	require.Equal(t, [4]byte{50, 50, 50, 0}, c.Snapshot())
}

func TestControlsFrame(t *testing.T) {
	c := NewControls()
	item, ok := c.Poll()
	require.True(t, ok)
	chk := byte(0xff - (0x42+0x05+0x20+50+50+50+0)%256)
	require.Equal(t, []byte{0x42, 0x05, 0x20, 50, 50, 50, 0, chk}, item)

	pkt, err := protocol.Decode(item.([]byte))
	require.NoError(t, err)
	require.Equal(t, protocol.OpControls, pkt.Opcode)
	require.Equal(t, []byte{50, 50, 50, 0}, pkt.Data)
	require.True(t, pkt.Valid())

	c.SetThrottle(70)
	c.SetYaw(0)
	c.SetRoll(250)
	require.Equal(t, byte(70), c.Throttle())
	require.Equal(t, byte(0), c.Yaw())
	require.Equal(t, byte(100), c.Roll())
	require.Equal(t, byte(50), c.Pitch())
	c.SetRoll(50)
	item, _ = c.Poll()
	require.Equal(t, []byte{0, 50, 50, 70}, item.([]byte)[3:7])
}

func TestParseNames(t *testing.T) {
	axis, err := ParseAxis("Throttle")
	require.NoError(t, err)
	require.Equal(t, Throttle, axis)
	_, err = ParseAxis("rudder")
	require.Error(t, err)

	kind, err := ParseCommandKind("enter_flight_mode")
	require.NoError(t, err)
	require.Equal(t, EnterFlightMode, kind)
	_, err = ParseCommandKind("launch")
	require.Error(t, err)
	require.Equal(t, "change_pid_gain(01 02)", Command(ChangePIDGain, 1, 2).String())
}
