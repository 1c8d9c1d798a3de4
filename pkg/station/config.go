// Package station assembles the ground station session.
package station

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/flight"
	"github.com/robotalks/quadlink/pkg/link"
)

// Joystick selection values besides a device index.
const (
	JoystickAuto     = -1
	JoystickDisabled = -2
)

// Config defines the options of a ground station session.
type Config struct {
	// Port is a serial device path or a transport URL,
	// empty to probe link.DefaultPorts.
	Port           string
	Baud           int
	UplinkHz       float64
	ByteDelay      time.Duration
	ReadTimeout    time.Duration
	ChecksumPolicy link.ChecksumPolicy

	// MQTTBrokerURL enables telemetry publishing and remote commands,
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	StationID     string

	Mappings        string
	Joystick        int
	Console         bool
	ShutdownTimeout time.Duration
}

var defaultConfig = Config{
	Baud:            link.DefaultBaudRate,
	UplinkHz:        flight.DefaultUplinkHz,
	ByteDelay:       link.DefaultInterByteDelay,
	ReadTimeout:     link.DefaultReadTimeout,
	Joystick:        JoystickAuto,
	Console:         true,
	ShutdownTimeout: 10 * time.Second,
}

func init() {
	if val := os.Getenv("QUADLINK_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("QUADLINK_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
	if val := os.Getenv("QUADLINK_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("QUADLINK_MAPPINGS"); val != "" {
		defaultConfig.Mappings = val
	}
	if val := os.Getenv("QUADLINK_STATION_ID"); val != "" {
		defaultConfig.StationID = val
	} else {
		defaultConfig.StationID = MachineID()
	}
}

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		glog.V(1).Infof("machine id unavailable: %v", err)
		return "groundstation"
	}
	return id
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device or transport URL (serial://, ws://), empty to auto detect.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.Float64Var(&defaultConfig.UplinkHz, "uplink-hz", defaultConfig.UplinkHz, "Uplink service frequency.")
	flag.DurationVar(&defaultConfig.ByteDelay, "byte-delay", defaultConfig.ByteDelay, "Delay between transmitted bytes.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Transport read timeout.")
	flag.Var(&defaultConfig.ChecksumPolicy, "checksum-policy", "Frames with a bad checksum: dispatch or drop.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable.")
	flag.StringVar(&defaultConfig.StationID, "station-id", defaultConfig.StationID, "Station ID used in MQTT topics.")
	flag.StringVar(&defaultConfig.Mappings, "mappings", defaultConfig.Mappings, "YAML file overriding input mappings.")
	flag.IntVar(&defaultConfig.Joystick, "joystick", defaultConfig.Joystick, "Joystick index, -1 to auto detect, -2 to disable.")
	flag.BoolVar(&defaultConfig.Console, "console", defaultConfig.Console, "Run the interactive console.")
	flag.DurationVar(&defaultConfig.ShutdownTimeout, "shutdown-timeout", defaultConfig.ShutdownTimeout, "Bound on waiting for workers at shutdown.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Validate checks the options.
func (c *Config) Validate() error {
	if c.UplinkHz <= 0 {
		return fmt.Errorf("uplink frequency must be positive: %v", c.UplinkHz)
	}
	if c.Baud <= 0 {
		return fmt.Errorf("invalid baud rate: %d", c.Baud)
	}
	if c.Joystick < JoystickDisabled {
		return fmt.Errorf("invalid joystick index: %d", c.Joystick)
	}
	if c.ByteDelay < 0 || c.ReadTimeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
