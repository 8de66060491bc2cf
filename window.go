package casement

// Window is an on-screen surface abstracted over the running platform. It
// caches its client size, fans events out to registered listeners, and polls
// joystick slots every pump cycle. A Window is not safe for concurrent use;
// serialize access or dedicate a goroutine to it.
type Window struct {
	driver    Driver
	width     uint
	height    uint
	listeners listenerRegistry
	joysticks joystickPoller
}

// New creates a window for the running platform. It panics if no driver
// exists for this GOOS: an unsupported platform is a build contract
// violation, not a recoverable condition. Runtime failures (for example no
// X display) are returned as errors.
func New(mode VideoMode, title string, style Style) (*Window, error) {
	d, err := newPlatformDriver(mode, title, style)
	if err != nil {
		return nil, err
	}
	return newWindow(d, platformJoysticks()), nil
}

// Adopt wraps an existing native window instead of creating one. The same
// platform-selection rule as New applies. The adopted window is not
// destroyed by Close.
func Adopt(handle Handle) (*Window, error) {
	d, err := adoptPlatformDriver(handle)
	if err != nil {
		return nil, err
	}
	return newWindow(d, platformJoysticks()), nil
}

// newWindow wires a driver and joystick readers into a window. All factories
// funnel through here.
func newWindow(d Driver, readers [JoystickCount]JoystickReader) *Window {
	w := &Window{driver: d}
	w.width, w.height = d.Size()
	w.joysticks.readers = readers
	w.joysticks.threshold = defaultJoystickThreshold
	return w
}

// AddListener registers a listener for this window's events. Adding a
// listener that is already registered is a no-op: each listener receives
// every event exactly once.
func (w *Window) AddListener(l Listener) {
	w.listeners.add(l)
}

// RemoveListener unregisters a listener. Removing one that is not registered
// is a no-op. After removal the listener is never called again, even when
// the removal happens from inside another listener during delivery.
func (w *Window) RemoveListener(l Listener) {
	w.listeners.remove(l)
}

// Width returns the cached client width in pixels. No platform query is
// made; the value changes only when the platform reports a resize.
func (w *Window) Width() uint { return w.width }

// Height returns the cached client height in pixels.
func (w *Window) Height() uint { return w.height }

// SetJoystickThreshold sets the minimum axis movement, in [0, 100], required
// to generate a JoystickMoved event. Out-of-range values are clamped. The
// new threshold applies from the next DoEvents cycle.
func (w *Window) SetJoystickThreshold(threshold float32) {
	w.joysticks.setThreshold(threshold)
}

// SetJoystickReader installs the reader backing a joystick slot, replacing
// the platform default. A nil reader leaves the slot permanently
// disconnected. Out-of-range slots are ignored.
func (w *Window) SetJoystickReader(slot int, r JoystickReader) {
	w.joysticks.setReader(slot, r)
}

// DoEvents runs one pump cycle: drain OS events through the driver, then
// poll every joystick slot. With block true the OS drain waits for at least
// one event before returning; joystick polling happens unconditionally
// either way. All resulting events are delivered to listeners in
// registration order before DoEvents returns.
func (w *Window) DoEvents(block bool) {
	w.driver.ProcessEvents(block, w.sendEvent)
	w.joysticks.poll(w.sendEvent)
}

// sendEvent is the single choke point every event passes through, whatever
// its origin. Resize events update the cached size before fan-out.
func (w *Window) sendEvent(event Event) {
	if event.Type == EventResized {
		w.width = event.Size.Width
		w.height = event.Size.Height
	}
	w.listeners.dispatch(event)
}

// Handle returns the native handle of the underlying window.
func (w *Window) Handle() Handle { return w.driver.Handle() }

// ShowMouseCursor shows or hides the mouse cursor over the window.
func (w *Window) ShowMouseCursor(show bool) { w.driver.ShowMouseCursor(show) }

// SetCursorPosition moves the mouse cursor relative to the window's
// top-left corner.
func (w *Window) SetCursorPosition(x, y uint) { w.driver.SetCursorPosition(x, y) }

// SetPosition moves the window on screen.
func (w *Window) SetPosition(x, y int) { w.driver.SetPosition(x, y) }

// SetSize requests a new client size. The cached Width/Height update when
// the platform confirms the resize through the event pump.
func (w *Window) SetSize(width, height uint) { w.driver.SetSize(width, height) }

// Show maps or hides the window. A hidden window keeps generating events.
func (w *Window) Show(show bool) { w.driver.Show(show) }

// EnableKeyRepeat toggles repeated KeyPressed events while a key is held.
func (w *Window) EnableKeyRepeat(enabled bool) { w.driver.EnableKeyRepeat(enabled) }

// SetIcon sets the window icon from an RGBA pixel buffer; pixels must hold
// exactly width*height*4 bytes.
func (w *Window) SetIcon(width, height uint, pixels []byte) {
	w.driver.SetIcon(width, height, pixels)
}

// Close releases the window. No operation is valid afterwards.
func (w *Window) Close() error { return w.driver.Close() }
