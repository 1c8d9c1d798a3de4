package link

import (
	"errors"
	"os"
)

var (
	// ErrDisconnected indicates the transport failed and the loop using it stopped.
	ErrDisconnected = errors.New("device disconnected")
	// ErrPermission indicates a serial port exists but can't be opened.
	ErrPermission = errors.New("permission denied to open serial port")
	// ErrNoDevice indicates none of the candidate serial ports could be opened.
	ErrNoDevice = errors.New("no serial device found")
)

// isTimeout reports read errors which only mean no data arrived in time.
func isTimeout(err error) bool {
	return os.IsTimeout(err)
}
