package input

import (
	"context"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/mqtt"
)

// Publisher publishes a payload to a topic.
type Publisher interface {
	Pub(topic string, payload []byte) paho.Token
}

// Remote accepts console command lines from MQTT topic <station>/cmd
// and publishes the output to <station>/cmd/reply.
type Remote struct {
	Queue       *mqtt.Queue
	Publisher   Publisher
	Station     string
	Interpreter *Interpreter
}

// NewRemote creates a Remote.
func NewRemote(queue *mqtt.Queue, station string, interp *Interpreter) *Remote {
	return &Remote{Queue: queue, Publisher: queue, Station: station, Interpreter: interp}
}

// Name implements framework.Named.
func (r *Remote) Name() string {
	return "Remote"
}

// CommandTopic is where command lines are received.
func (r *Remote) CommandTopic() string {
	return r.Station + "/cmd"
}

// ReplyTopic is where command output is published.
func (r *Remote) ReplyTopic() string {
	return r.Station + "/cmd/reply"
}

// Run subscribes the command topic until the context is done.
func (r *Remote) Run(ctx context.Context) error {
	sub := r.Queue.Sub(r.CommandTopic(), r.handle)
	defer sub.Close()
	glog.Infof("[Remote] accepting commands on %s", r.CommandTopic())
	<-ctx.Done()
	return ctx.Err()
}

func (r *Remote) handle(topic string, payload []byte) {
	line := strings.TrimSpace(string(payload))
	glog.Infof("[Remote] %s", line)
	out, err := r.Interpreter.Exec(line)
	if err != nil {
		glog.Warningf("[Remote] %q: %v", line, err)
		out = "error: " + err.Error()
	} else if out == "" {
		out = "OK"
	}
	if r.Publisher != nil {
		r.Publisher.Pub(r.ReplyTopic(), []byte(out))
	}
}
