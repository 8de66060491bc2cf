package casement

// Driver is the platform layer behind a Window: one implementation per
// backend (X11, terminal, ...). The window core owns the event pump,
// listener fan-out, and joystick polling; the driver only talks to the
// display system.
//
// Every method must be safe to call at any point between construction and
// Close. The core imposes no ordering or validation beyond that; failures
// inside the display/behavior mutators are the backend's business and are
// not surfaced through the core.
type Driver interface {
	// Handle returns the native handle of the window, or zero if the
	// backend has none.
	Handle() Handle

	// Size returns the current client dimensions. The core reads this once
	// at construction to seed its cached size; afterwards it tracks size
	// exclusively through Resized events.
	Size() (width, height uint)

	// ProcessEvents drains pending OS events, translating each into an
	// Event passed to emit. With block false it must return promptly even
	// when nothing is pending; with block true it waits for at least one OS
	// event (without spinning) before draining the rest.
	ProcessEvents(block bool, emit func(Event))

	// ShowMouseCursor shows or hides the mouse cursor over the window.
	ShowMouseCursor(show bool)

	// SetCursorPosition moves the mouse cursor, relative to the window's
	// top-left corner.
	SetCursorPosition(x, y uint)

	// SetPosition moves the window on screen.
	SetPosition(x, y int)

	// SetSize resizes the client area. The new size reaches the core as a
	// Resized event on a later ProcessEvents, not synchronously.
	SetSize(width, height uint)

	// Show maps or hides the window. Hiding does not stop event generation.
	Show(show bool)

	// EnableKeyRepeat toggles delivery of repeated KeyPressed events while
	// a key is held.
	EnableKeyRepeat(enabled bool)

	// SetIcon sets the window icon from a width×height RGBA buffer
	// (4 bytes per pixel, len(pixels) == width*height*4).
	SetIcon(width, height uint, pixels []byte)

	// Close releases the backend resources. The window must not be used
	// afterwards.
	Close() error
}
