//go:build linux
// +build linux

package device

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"syscall"
	"unsafe"
)

// JSIOCGNAME(255)
const iocGNAME uintptr = 0x80ff6a13

type jsDevice struct {
	file  *os.File
	index int
	name  string
	buf   [8]byte
}

// Open opens /dev/input/js<index>.
func Open(index int) (Device, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/input/js%d", index), os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	d := &jsDevice{file: f, index: index}
	var name [256]byte
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), iocGNAME, uintptr(unsafe.Pointer(&name))); errno != 0 {
		f.Close()
		return nil, errno
	}
	if pos := bytes.IndexByte(name[:], 0); pos >= 0 {
		d.name = string(name[:pos])
	} else {
		d.name = string(name[:])
	}
	return d, nil
}

// Detect opens the first present device starting from index start.
func Detect(start int) (Device, error) {
	for index := start; index < 32; index++ {
		d, err := Open(index)
		if err == nil {
			return d, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (d *jsDevice) Close() error { return d.file.Close() }
func (d *jsDevice) Index() int   { return d.index }
func (d *jsDevice) Name() string { return d.name }

func (d *jsDevice) ReadEvent() (Event, error) {
	if _, err := io.ReadFull(d.file, d.buf[:]); err != nil {
		return Event{}, err
	}
	return decode(d.buf[:]), nil
}
