package telemetry

import (
	"context"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/framework"
	"github.com/robotalks/quadlink/pkg/telemetry/msgs"
)

// Sink receives decoded telemetry, name is the opcode name.
type Sink interface {
	Emit(ctx context.Context, name string, msg msgs.Telemetry) error
}

// EmitFunc is the func form of Sink.
type EmitFunc func(ctx context.Context, name string, msg msgs.Telemetry) error

// Emit implements Sink.
func (f EmitFunc) Emit(ctx context.Context, name string, msg msgs.Telemetry) error {
	return f(ctx, name, msg)
}

// Sinks fans out to multiple sinks.
type Sinks []Sink

// Emit implements Sink.
func (s Sinks) Emit(ctx context.Context, name string, msg msgs.Telemetry) error {
	var errs framework.AggregatedError
	for _, sink := range s {
		errs.Add(sink.Emit(ctx, name, msg))
	}
	return errs.Aggregate()
}

// LogSink writes telemetry to glog. Remote logs keep their severity.
type LogSink struct{}

// Emit implements Sink.
func (LogSink) Emit(ctx context.Context, name string, msg msgs.Telemetry) error {
	switch m := msg.(type) {
	case *msgs.RemoteLog:
		switch m.Level {
		case "debug":
			glog.V(1).Infof("[Remote] %s", m.Text)
		case "warning":
			glog.Warningf("[Remote] %s", m.Text)
		case "error":
			glog.Errorf("[Remote] %s", m.Text)
		default:
			glog.Infof("[Remote] %s", m.Text)
		}
	case *msgs.ProtocolError:
		if m.HasByte {
			glog.Warningf("[Remote] uplink %s (0x%02x)", m.Kind, m.Byte)
		} else {
			glog.Warningf("[Remote] uplink %s", m.Kind)
		}
	default:
		glog.Infof("(%16s): %s", name, Describe(msg))
	}
	return nil
}

// Describe renders telemetry for humans.
func Describe(msg msgs.Telemetry) string {
	switch m := msg.(type) {
	case *msgs.Text:
		return m.Text
	case *msgs.Register:
		reg := m.Name
		if reg == "" {
			reg = fmt.Sprintf("0x%x", m.Address)
		}
		return fmt.Sprintf("reg:%s value:%d hex:0x%x", reg, m.Value, m.Value)
	case *msgs.TWIStatus:
		return fmt.Sprintf("0x%02x %s", m.Status, m.Message)
	case *msgs.Unsigned:
		return fmt.Sprintf("%d (0x%x)", m.Value, m.Value)
	case *msgs.Signed:
		return fmt.Sprintf("%d", m.Value)
	case *msgs.YawPitchRoll:
		return fmt.Sprintf("yaw:%.2f pitch:%.2f roll:%.2f", m.Yaw, m.Pitch, m.Roll)
	case *msgs.Quaternion:
		return fmt.Sprintf("w:%.4f x:%.4f y:%.4f z:%.4f", m.W, m.X, m.Y, m.Z)
	}
	return msg.String()
}

// MessagePublisher publishes raw payloads to topics.
type MessagePublisher interface {
	Pub(topic string, payload []byte) paho.Token
}

// Publisher publishes telemetry, protobuf encoded, to
// <station>/telemetry/<opcode name>. Delivery is best effort.
type Publisher struct {
	Queue   MessagePublisher
	Station string
}

// Topic returns the topic a station publishes an opcode's telemetry to.
func Topic(station, name string) string {
	return station + "/telemetry/" + name
}

// Emit implements Sink.
func (p *Publisher) Emit(ctx context.Context, name string, msg msgs.Telemetry) error {
	data, err := msgs.Encode(msg)
	if err != nil {
		return err
	}
	p.Queue.Pub(Topic(p.Station, name), data)
	return nil
}
