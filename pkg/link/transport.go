package link

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
	"golang.org/x/net/websocket"
)

// Transport is a byte stream to the vehicle.
// Read must return (0, nil) or a timeout error when no byte arrives in time.
type Transport interface {
	io.ReadWriteCloser
}

// DefaultBaudRate is the baud rate of the flight controller UART.
const DefaultBaudRate = 38400

// DefaultReadTimeout bounds how long the Receiver blocks on one read.
const DefaultReadTimeout = 100 * time.Millisecond

// DefaultPorts are probed by OpenSerialAuto in order.
var DefaultPorts = []string{"/dev/ttyACM0", "/dev/ttyACM1", "/dev/ttyACM2", "/dev/ttyUSB0"}

// Open opens a transport from a URL:
//
//	serial:///dev/ttyACM0?baud=38400
//	/dev/ttyUSB0                       (plain path, serial)
//	ws://host:port/path                (websocket byte stream, e.g. a serial bridge)
func Open(location string, readTimeout time.Duration) (Transport, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid transport URL %q: %w", location, err)
	}
	switch u.Scheme {
	case "", "serial":
		baud := DefaultBaudRate
		if val := u.Query().Get("baud"); val != "" {
			if baud, err = strconv.Atoi(val); err != nil {
				return nil, fmt.Errorf("invalid baud rate %q: %w", val, err)
			}
		}
		return OpenSerial(u.Path, baud, readTimeout)
	case "ws", "wss":
		return OpenWebsocket(location, readTimeout)
	default:
		return nil, fmt.Errorf("unknown transport scheme: %q", u.Scheme)
	}
}

// OpenSerial opens a serial port 8N1 with the read timeout applied.
func OpenSerial(name string, baud int, readTimeout time.Duration) (Transport, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		var portErr *serial.PortError
		if errors.As(err, &portErr) && portErr.Code() == serial.PermissionDenied {
			return nil, fmt.Errorf("%w: %s", ErrPermission, name)
		}
		return nil, err
	}
	if readTimeout > 0 {
		if err = port.SetReadTimeout(readTimeout); err != nil {
			port.Close()
			return nil, err
		}
	}
	return port, nil
}

// OpenSerialAuto probes ports in order and opens the first available.
// A permission error stops probing immediately.
func OpenSerialAuto(ports []string, baud int, readTimeout time.Duration) (Transport, string, error) {
	glog.Info("Attempting to connect to device")
	for _, name := range ports {
		port, err := OpenSerial(name, baud, readTimeout)
		if err == nil {
			glog.Infof("Connected on %s", name)
			return port, name, nil
		}
		if errors.Is(err, ErrPermission) {
			return nil, name, err
		}
		glog.V(2).Infof("open %s: %v", name, err)
	}
	return nil, "", ErrNoDevice
}

type wsTransport struct {
	conn    *websocket.Conn
	timeout time.Duration
}

// OpenWebsocket dials a websocket carrying the raw byte stream in binary frames.
func OpenWebsocket(location string, readTimeout time.Duration) (Transport, error) {
	conn, err := websocket.Dial(location, "", "http://localhost/")
	if err != nil {
		return nil, err
	}
	conn.PayloadType = websocket.BinaryFrame
	return &wsTransport{conn: conn, timeout: readTimeout}, nil
}

func (t *wsTransport) Read(p []byte) (int, error) {
	if t.timeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
			return 0, err
		}
	}
	return t.conn.Read(p)
}

func (t *wsTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}
