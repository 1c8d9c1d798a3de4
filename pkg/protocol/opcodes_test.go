package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	for _, op := range reg.Opcodes() {
		name, ok := reg.Name(op)
		require.True(t, ok)
		back, ok := reg.Lookup(name)
		require.True(t, ok)
		require.Equal(t, op, back)
		require.NotEqual(t, CategoryUnknown, reg.Category(op), name)
	}
	require.Equal(t, OpControls, reg.MustLookup("controls"))
	require.Equal(t, OpFlightMode, reg.MustLookup("flight_mode"))
	require.Equal(t, OpString, reg.MustLookup("string"))
	require.Panics(t, func() { reg.MustLookup("unused") })
}

func TestCategories(t *testing.T) {
	reg := DefaultRegistry()
	testCases := []struct {
		op  Opcode
		cat Category
	}{
		{OpString, CategoryTelemetry},
		{OpUserInput, CategoryTelemetry},
		{OpControls, CategoryCommand},
		{OpDone, CategoryCommand},
		{OpLogDebug, CategoryLog},
		{OpLogError, CategoryLog},
		{OpNotHeader, CategoryProtocolError},
		{OpDownlinkBufferOverrun, CategoryProtocolError},
		{Opcode(0x0d), CategoryUnknown},
		{Opcode(0x27), CategoryUnknown},
		{Opcode(0xff), CategoryUnknown},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.cat, reg.Category(tc.op), "opcode %s", reg.Format(tc.op))
	}
}

func TestNewRegistryRejects(t *testing.T) {
	_, err := NewRegistry(map[Opcode]string{0x00: "a", 0x01: "a"})
	require.Error(t, err)
	_, err = NewRegistry(map[Opcode]string{0x50: "x"})
	require.Error(t, err)
}

func TestCommandHelpers(t *testing.T) {
	require.True(t, IsControls(OpControls))
	require.False(t, IsCommand(OpControls))
	require.True(t, IsCommand(OpFlightMode))
	require.True(t, IsCommand(OpTerminate))
	require.False(t, IsCommand(OpLevelQuad))
}

func TestFormat(t *testing.T) {
	reg := DefaultRegistry()
	require.Equal(t, "controls(0x20)", reg.Format(OpControls))
	require.Equal(t, "0x0e", reg.Format(Opcode(0x0e)))
	require.Equal(t, `unknown opcode 0x0e`, (&OpcodeError{Opcode: 0x0e}).Error())
}
