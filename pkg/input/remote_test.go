package input

import (
	"testing"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/quadlink/pkg/flight"
)

type replies struct {
	topics   []string
	payloads []string
}

func (r *replies) Pub(topic string, payload []byte) paho.Token {
	r.topics = append(r.topics, topic)
	r.payloads = append(r.payloads, string(payload))
	return &paho.DummyToken{}
}

func TestRemote(t *testing.T) {
	l, rec := newBoundLayer()
	pub := &replies{}
	r := &Remote{Publisher: pub, Station: "gs1", Interpreter: NewInterpreter(l)}
	require.Equal(t, "gs1/cmd", r.CommandTopic())

	r.handle("gs1/cmd", []byte("flight\n"))
	r.handle("gs1/cmd", []byte("warp 9"))

	require.Equal(t, []string{"gs1/cmd/reply", "gs1/cmd/reply"}, pub.topics)
	require.Equal(t, "OK", pub.payloads[0])
	require.Contains(t, pub.payloads[1], "unknown command")
	_, commands := rec.snapshot()
	require.Equal(t, []flight.CommandEvent{flight.Command(flight.EnterFlightMode)}, commands)
}
