//go:build linux

package casement

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// Linux joydev event record: 4-byte timestamp, 2-byte value, event type,
// axis/button number.
const (
	jsEventSize   = 8
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80
)

// LinuxJoystick reads one /dev/input/jsN device. The device node is opened
// lazily and reopened after an unplug, so a reader can be installed before
// the joystick is ever plugged in.
type LinuxJoystick struct {
	index int
	fd    int
	state JoystickState
}

// NewLinuxJoystick returns a reader for /dev/input/js<index>.
func NewLinuxJoystick(index int) *LinuxJoystick {
	return &LinuxJoystick{index: index, fd: -1}
}

// Connected reports whether the device node is open, attempting a
// non-blocking open when it is not. Device death is observed on Read; the
// following poll cycle sees Connected() == false.
func (j *LinuxJoystick) Connected() bool {
	if j.fd >= 0 {
		return true
	}
	path := fmt.Sprintf("/dev/input/js%d", j.index)
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return false
	}
	j.fd = fd
	j.state = JoystickState{}
	return true
}

// Read drains all pending joydev events into the tracked state and returns
// it. The synthetic init events the kernel queues on open seed the state
// with the device's actual position. Never blocks.
func (j *LinuxJoystick) Read() JoystickState {
	if j.fd < 0 {
		return j.state
	}
	var buf [jsEventSize]byte
	for {
		n, err := unix.Read(j.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN {
			break
		}
		if err != nil || n < jsEventSize {
			// Device unplugged or otherwise gone.
			unix.Close(j.fd)
			j.fd = -1
			break
		}

		value := int16(binary.NativeEndian.Uint16(buf[4:6]))
		num := int(buf[7])
		switch buf[6] &^ jsEventInit {
		case jsEventAxis:
			if num < JoystickAxisCount {
				j.state.Axes[num] = float32(value) * (100.0 / 32767.0)
			}
		case jsEventButton:
			if num < JoystickButtonCount {
				if value != 0 {
					j.state.Buttons |= 1 << num
				} else {
					j.state.Buttons &^= 1 << num
				}
			}
		}
	}
	return j.state
}

// Close releases the device node, if open.
func (j *LinuxJoystick) Close() error {
	if j.fd < 0 {
		return nil
	}
	err := unix.Close(j.fd)
	j.fd = -1
	return err
}
