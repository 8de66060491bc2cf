// Package casement is a platform-neutral window and input event layer.
//
// A [Window] hides the OS window system behind one contract: create it (or
// adopt an existing native window), register listeners, and pump it. Each
// [Window.DoEvents] cycle drains platform events, polls every joystick slot,
// and fans the resulting [Event] stream out to every registered [Listener]
// in registration order.
//
// # Quick start
//
//	win, err := casement.New(casement.VideoMode{Width: 800, Height: 600, BitsPerPixel: 32},
//		"my window", casement.StyleDefault)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer win.Close()
//
//	win.AddListener(casement.ListenerFunc(func(e casement.Event) {
//		if e.Type == casement.EventClosed {
//			// shut down
//		}
//	}))
//
//	for {
//		win.DoEvents(true) // block until at least one OS event
//	}
//
// # Backends
//
// [New] and [Adopt] select the native driver for the running platform at
// build time (X11 on Linux) and panic on a platform with no driver.
// [NewTerminal] opens a window backed by a tcell terminal screen instead,
// which works on any platform and, given a tcell simulation screen, headless.
//
// # Joysticks
//
// A window polls a fixed set of [JoystickCount] joystick slots every
// DoEvents cycle, whether or not it blocked. Axis changes must exceed the
// movement threshold ([Window.SetJoystickThreshold]) strictly before a
// JoystickMoved event is generated, and the comparison baseline advances
// only on accepted changes, so jitter around a resting point never
// accumulates into a phantom move. Plugging and unplugging a device
// generates exactly one connect or disconnect event per transition.
//
// Slots read through the [JoystickReader] contract: the Linux backend
// installs /dev/input/jsN readers, and [EbitenJoystick] adapts Ebitengine's
// gamepad API for programs already inside an ebiten game loop.
//
// # Concurrency
//
// A Window is single-threaded by design: DoEvents runs the whole pump on the
// calling goroutine and nothing happens between pumps. Serialize all access
// to a Window, typically by dedicating a goroutine or the main loop to it.
package casement
