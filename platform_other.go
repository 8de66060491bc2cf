//go:build !linux

package casement

import "runtime"

// No native driver exists for this GOOS. New and Adopt are a platform
// contract: calling them here is unrecoverable. NewTerminal still works
// everywhere tcell does.

func newPlatformDriver(mode VideoMode, title string, style Style) (Driver, error) {
	panic("casement: no window driver for " + runtime.GOOS)
}

func adoptPlatformDriver(handle Handle) (Driver, error) {
	panic("casement: no window driver for " + runtime.GOOS)
}

func platformJoysticks() [JoystickCount]JoystickReader {
	return [JoystickCount]JoystickReader{}
}
