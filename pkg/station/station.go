package station

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/flight"
	"github.com/robotalks/quadlink/pkg/framework"
	"github.com/robotalks/quadlink/pkg/input"
	"github.com/robotalks/quadlink/pkg/link"
	"github.com/robotalks/quadlink/pkg/mqtt"
	"github.com/robotalks/quadlink/pkg/protocol"
	"github.com/robotalks/quadlink/pkg/telemetry"
)

const mqttConnectTimeout = 5 * time.Second

// Station is a ground station session over one link.
type Station struct {
	Config      *Config
	Transport   io.ReadWriteCloser
	Stats       *link.Stats
	Receiver    *link.Receiver
	Transmitter *link.Transmitter
	Dispatcher  *telemetry.Dispatcher
	Commanding  *flight.Commanding
	Input       *input.Layer
	Interpreter *input.Interpreter
	Queue       *mqtt.Queue
}

// Open opens the transport and the broker then assembles a Station.
func (c *Config) Open() (*Station, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mappings := input.DefaultMappings()
	if c.Mappings != "" {
		var err error
		if mappings, err = input.LoadMappings(c.Mappings); err != nil {
			return nil, err
		}
	}
	var queue *mqtt.Queue
	if c.MQTTBrokerURL != "" {
		var err error
		if queue, err = mqtt.NewQueueFromURL(c.MQTTBrokerURL); err != nil {
			return nil, err
		}
		if err = queue.Connect(mqttConnectTimeout); err != nil {
			return nil, fmt.Errorf("connect MQTT broker error: %w", err)
		}
	}
	transport, err := c.openTransport()
	if err != nil {
		if queue != nil {
			queue.Close()
		}
		return nil, err
	}
	s, err := New(c, transport, mappings, queue)
	if err != nil {
		transport.Close()
		if queue != nil {
			queue.Close()
		}
		return nil, err
	}
	return s, nil
}

func (c *Config) openTransport() (link.Transport, error) {
	switch {
	case c.Port == "":
		t, _, err := link.OpenSerialAuto(link.DefaultPorts, c.Baud, c.ReadTimeout)
		return t, err
	case strings.Contains(c.Port, "://"):
		return link.Open(c.Port, c.ReadTimeout)
	}
	return link.OpenSerial(c.Port, c.Baud, c.ReadTimeout)
}

// New assembles a Station on an opened transport, queue is optional.
func New(conf *Config, transport io.ReadWriteCloser, mappings *input.Mappings, queue *mqtt.Queue) (*Station, error) {
	s := &Station{
		Config:    conf,
		Transport: transport,
		Stats:     &link.Stats{},
		Queue:     queue,
	}
	reg := protocol.DefaultRegistry()

	sinks := telemetry.Sinks{telemetry.LogSink{}}
	if queue != nil {
		sinks = append(sinks, &telemetry.Publisher{Queue: queue, Station: conf.StationID})
	}
	s.Dispatcher = telemetry.NewDispatcher(reg, sinks)
	if err := s.Dispatcher.RegisterDefaults(); err != nil {
		return nil, err
	}
	s.Receiver = link.NewReceiver(transport, s.Dispatcher)
	s.Receiver.Policy = conf.ChecksumPolicy
	s.Receiver.Stats = s.Stats
	s.Transmitter = link.NewTransmitter(transport)
	s.Transmitter.InterByteDelay = conf.ByteDelay
	s.Transmitter.Stats = s.Stats

	s.Input = input.NewLayer(mappings)
	commanding, err := flight.New(flight.Config{UplinkHz: conf.UplinkHz, Registry: reg}, s.Transmitter, s.Input)
	if err != nil {
		return nil, err
	}
	s.Commanding = commanding
	s.Input.Bind(commanding)
	s.Interpreter = input.NewInterpreter(s.Input)
	s.Interpreter.Status = s.Status

	if conf.Joystick != JoystickDisabled {
		s.Input.Add(input.NewJoystick(s.Input, conf.Joystick))
	}
	if conf.Console {
		s.Input.Add(input.NewConsole(s.Interpreter))
	}
	if queue != nil {
		s.Input.Add(input.NewRemote(queue, conf.StationID, s.Interpreter))
	}
	return s, nil
}

// Status renders the session state.
func (s *Station) Status() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "mode: %s, controls: %s\n", s.Commanding.Mode(), s.Commanding.Controls())
	services := s.Commanding.Services()
	for _, name := range services.Services() {
		state := "stopped"
		if services.IsRunning(name) {
			state = "running"
		}
		fmt.Fprintf(&sb, "service %s: %s\n", name, state)
	}
	decoded, dropped := s.Dispatcher.Counts()
	fmt.Fprintf(&sb, "link: %s\n", s.Stats)
	fmt.Fprintf(&sb, "telemetry: %d decoded, %d dropped", decoded, dropped)
	return sb.String()
}

// Run runs the session until the context is done, a worker fails
// or the operator quits. Workers are given ShutdownTimeout to stop.
func (s *Station) Run(ctx context.Context) error {
	runner := framework.NewRunnerWith(ctx)
	return s.run(runner)
}

// RunWithSignals is Run until SIGINT or SIGTERM.
func (s *Station) RunWithSignals() error {
	return s.run(framework.NewRunner().HandleSignals())
}

func (s *Station) run(runner *framework.Runner) error {
	s.Interpreter.Quit = runner.Stop
	defer func() {
		if s.Queue != nil {
			s.Queue.Close()
		}
	}()
	glog.Infof("[Station] %s started, uplink %vHz", s.Config.StationID, s.Config.UplinkHz)
	runner.Go(
		framework.NamedRun(s.Receiver.Name(), framework.RunFunc(func(ctx context.Context) error {
			return framework.RunWithContextCloser(ctx, s.Transport, func() error {
				return s.Receiver.Run(ctx)
			})
		})),
		s.Commanding,
		s.Input,
	)
	err := runner.WaitTimeout(s.Config.ShutdownTimeout)
	glog.Infof("[Station] stopped, %s", s.Stats)
	return err
}
