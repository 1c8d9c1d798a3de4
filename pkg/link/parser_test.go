package link

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/quadlink/pkg/protocol"
)

func feed(p *Parser, in ...byte) (results []ParseResult) {
	for _, b := range in {
		if pr := p.Parse(b); pr.Event != EventNone {
			results = append(results, pr)
		}
	}
	return
}

func TestParserFrame(t *testing.T) {
	var p Parser
	raw := protocol.MustEncode(protocol.OpControls, 50, 50, 50, 0)
	results := feed(&p, raw...)
	require.Len(t, results, 1)
	require.Equal(t, EventFrame, results[0].Event)
	require.Equal(t, protocol.OpControls, results[0].Packet.Opcode)
	require.Equal(t, []byte{50, 50, 50, 0}, results[0].Packet.Data)
	require.Equal(t, raw, results[0].Packet.Raw)
	require.True(t, p.Scanning())
}

func TestParserEvents(t *testing.T) {
	good := protocol.MustEncode(protocol.OpWord, 0x34, 0x12)
	testCases := []struct {
		name   string
		in     []byte
		events []Event
	}{
		{"frame", good, []Event{EventFrame}},
		{"resync", append([]byte{0x00, 0x41}, good...), []Event{EventResync, EventResync, EventFrame}},
		{"oversize", append([]byte{protocol.Header, 62}, good...), []Event{EventOversize, EventFrame}},
		{"max length", []byte{protocol.Header, 61}, nil},
		{"zero length", []byte{protocol.Header, 0, 0xbd}, []Event{EventMalformed}},
		{"back to back", append(append([]byte(nil), good...), good...), []Event{EventFrame, EventFrame}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Parser
			var events []Event
			for _, pr := range feed(&p, tc.in...) {
				events = append(events, pr.Event)
			}
			require.Equal(t, tc.events, events)
		})
	}
}

func TestParserMaxFrame(t *testing.T) {
	var p Parser
	data := make([]byte, protocol.MaxPacketDataSize-1)
	raw := protocol.MustEncode(protocol.OpString, data...)
	require.Len(t, raw, protocol.MaxPacketSize)
	results := feed(&p, raw...)
	require.Len(t, results, 1)
	require.Equal(t, EventFrame, results[0].Event)
	require.Len(t, results[0].Packet.Data, len(data))
}

func TestParserTimeout(t *testing.T) {
	var p Parser
	require.Equal(t, EventNone, p.Timeout().Event)
	feed(&p, protocol.Header, 5, byte(protocol.OpControls), 50)
	require.False(t, p.Scanning())
	require.Equal(t, EventAbandoned, p.Timeout().Event)
	require.True(t, p.Scanning())
	// the rest of the abandoned frame is scanned as garbage
	results := feed(&p, 50, 50)
	require.Len(t, results, 2)
	require.Equal(t, EventResync, results[0].Event)
	require.Equal(t, byte(50), results[0].Byte)
}
