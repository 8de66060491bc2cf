//go:build linux

package casement

// newPlatformDriver selects the X11 backend on Linux.
func newPlatformDriver(mode VideoMode, title string, style Style) (Driver, error) {
	return newX11Driver(mode, title, style)
}

// adoptPlatformDriver wraps an existing X11 window.
func adoptPlatformDriver(handle Handle) (Driver, error) {
	return adoptX11Driver(handle)
}

// platformJoysticks backs every slot with the Linux joydev reader. Slots
// whose device node is absent simply report disconnected.
func platformJoysticks() [JoystickCount]JoystickReader {
	var readers [JoystickCount]JoystickReader
	for i := range readers {
		readers[i] = NewLinuxJoystick(i)
	}
	return readers
}
