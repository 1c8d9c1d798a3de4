package station

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/quadlink/pkg/link"
)

func TestConfigDefaults(t *testing.T) {
	conf := NewConfig()
	require.NotSame(t, Default(), conf)
	require.Equal(t, link.DefaultBaudRate, conf.Baud)
	require.Equal(t, float64(20), conf.UplinkHz)
	require.Equal(t, link.DispatchOnMismatch, conf.ChecksumPolicy)
	require.Equal(t, JoystickAuto, conf.Joystick)
	require.NotEmpty(t, conf.StationID)
	require.NoError(t, conf.Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"uplink", func(c *Config) { c.UplinkHz = 0 }},
		{"baud", func(c *Config) { c.Baud = -1 }},
		{"joystick", func(c *Config) { c.Joystick = -3 }},
		{"delay", func(c *Config) { c.ByteDelay = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conf := NewConfig()
			c.modify(conf)
			require.Error(t, conf.Validate())
		})
	}
}
