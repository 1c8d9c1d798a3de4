package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/quadlink/pkg/flight"
)

func TestInterpreterCommands(t *testing.T) {
	cases := []struct {
		line    string
		command *flight.CommandEvent
		control *flight.ControlEvent
	}{
		{line: "flight", command: &flight.CommandEvent{Kind: flight.EnterFlightMode}},
		{line: "f", command: &flight.CommandEvent{Kind: flight.EnterFlightMode}},
		{line: "LAND", command: &flight.CommandEvent{Kind: flight.ExitFlightMode}},
		{line: "ypr", command: &flight.CommandEvent{Kind: flight.ToggleTelemetry}},
		{line: "level", command: &flight.CommandEvent{Kind: flight.LevelQuad}},
		{line: "test", command: &flight.CommandEvent{Kind: flight.RunTest}},
		{line: "done", command: &flight.CommandEvent{Kind: flight.Done}},
		{line: "kill", command: &flight.CommandEvent{Kind: flight.Terminate}},
		{line: "pid 2 0x20", command: &flight.CommandEvent{Kind: flight.ChangePIDGain, Payload: []byte{2, 0x20}}},
		{line: "throttle 40", control: &flight.ControlEvent{Axis: flight.Throttle, Value: 40}},
		{line: "  yaw   70 ", control: &flight.ControlEvent{Axis: flight.Yaw, Value: 70}},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			l, rec := newBoundLayer()
			out, err := NewInterpreter(l).Exec(c.line)
			require.NoError(t, err)
			require.Empty(t, out)
			controls, commands := rec.snapshot()
			if c.command != nil {
				require.Equal(t, []flight.CommandEvent{*c.command}, commands)
				require.Empty(t, controls)
			} else {
				require.Equal(t, []flight.ControlEvent{*c.control}, controls)
				require.Empty(t, commands)
			}
		})
	}
}

func TestInterpreterErrors(t *testing.T) {
	l, rec := newBoundLayer()
	in := NewInterpreter(l)
	for _, line := range []string{"pid", "pid 300", "throttle", "throttle max", "key", "key w"} {
		_, err := in.Exec(line)
		require.Error(t, err, line)
	}
	_, err := in.Exec("takeoff")
	require.ErrorIs(t, err, ErrUnknownCommand)
	_, err = in.Exec("pid")
	require.ErrorIs(t, err, ErrUsage)

	out, err := in.Exec("")
	require.NoError(t, err)
	require.Empty(t, out)

	controls, commands := rec.snapshot()
	require.Empty(t, controls)
	require.Empty(t, commands)
}

func TestInterpreterKeys(t *testing.T) {
	l, rec := newBoundLayer()
	l.SetActiveMapping(flight.FlightMapping)
	in := NewInterpreter(l)
	_, err := in.Exec("key d")
	require.NoError(t, err)
	_, err = in.Exec("up d")
	require.NoError(t, err)
	controls, _ := rec.snapshot()
	require.Equal(t, []flight.ControlEvent{
		{Axis: flight.Roll, Value: 100},
		{Axis: flight.Roll, Value: 50},
	}, controls)
}

func TestInterpreterStatusAndQuit(t *testing.T) {
	l, _ := newBoundLayer()
	in := NewInterpreter(l)
	out, err := in.Exec("status")
	require.NoError(t, err)
	require.Equal(t, "mapping: non_flight", out)

	in.Status = func() string { return "mode: FLIGHT" }
	out, err = in.Exec("stats")
	require.NoError(t, err)
	require.Equal(t, "mode: FLIGHT", out)

	var quit bool
	in.Quit = func() { quit = true }
	_, err = in.Exec("quit")
	require.NoError(t, err)
	require.True(t, quit)

	require.Contains(t, in.Help(), "throttle")
	require.Equal(t, "flight", in.Commands()[0].Name)
}
