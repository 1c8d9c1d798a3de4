//go:build !linux
// +build !linux

package device

import "errors"

var errUnsupported = errors.New("joystick is only supported on linux")

// Open is not supported on this platform.
func Open(index int) (Device, error) {
	return nil, errUnsupported
}

// Detect is not supported on this platform.
func Detect(start int) (Device, error) {
	return nil, errUnsupported
}
