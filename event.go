package casement

// EventType identifies the kind of event carried by an Event.
type EventType uint8

const (
	EventClosed EventType = iota // window close requested
	EventResized
	EventLostFocus
	EventGainedFocus
	EventTextEntered
	EventKeyPressed
	EventKeyReleased
	EventMouseWheelMoved
	EventMouseButtonPressed
	EventMouseButtonReleased
	EventMouseMoved
	EventMouseEntered
	EventMouseLeft
	EventJoystickMoved
	EventJoystickButtonPressed
	EventJoystickButtonReleased
	EventJoystickConnected
	EventJoystickDisconnected
)

// String returns a short human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventClosed:
		return "Closed"
	case EventResized:
		return "Resized"
	case EventLostFocus:
		return "LostFocus"
	case EventGainedFocus:
		return "GainedFocus"
	case EventTextEntered:
		return "TextEntered"
	case EventKeyPressed:
		return "KeyPressed"
	case EventKeyReleased:
		return "KeyReleased"
	case EventMouseWheelMoved:
		return "MouseWheelMoved"
	case EventMouseButtonPressed:
		return "MouseButtonPressed"
	case EventMouseButtonReleased:
		return "MouseButtonReleased"
	case EventMouseMoved:
		return "MouseMoved"
	case EventMouseEntered:
		return "MouseEntered"
	case EventMouseLeft:
		return "MouseLeft"
	case EventJoystickMoved:
		return "JoystickMoved"
	case EventJoystickButtonPressed:
		return "JoystickButtonPressed"
	case EventJoystickButtonReleased:
		return "JoystickButtonReleased"
	case EventJoystickConnected:
		return "JoystickConnected"
	case EventJoystickDisconnected:
		return "JoystickDisconnected"
	default:
		return "Unknown"
	}
}

// Event is a tagged window or input event. Type selects which payload field
// is meaningful; the remaining fields are zero. The core only constructs,
// tags, and forwards events; interpreting the payload is the listener's job.
type Event struct {
	Type EventType

	Size            SizeEvent            // EventResized
	Text            TextEvent            // EventTextEntered
	Key             KeyEvent             // EventKeyPressed, EventKeyReleased
	MouseMove       MouseMoveEvent       // EventMouseMoved
	MouseButton     MouseButtonEvent     // EventMouseButtonPressed, EventMouseButtonReleased
	MouseWheel      MouseWheelEvent      // EventMouseWheelMoved
	JoystickMove    JoystickMoveEvent    // EventJoystickMoved
	JoystickButton  JoystickButtonEvent  // EventJoystickButtonPressed, EventJoystickButtonReleased
	JoystickConnect JoystickConnectEvent // EventJoystickConnected, EventJoystickDisconnected
}

// SizeEvent carries the new client dimensions after a resize.
type SizeEvent struct {
	Width  uint
	Height uint
}

// TextEvent carries a single character of text input.
type TextEvent struct {
	Rune rune
}

// KeyEvent carries a key code plus the modifier state at press/release time.
type KeyEvent struct {
	Code    Key
	Alt     bool
	Control bool
	Shift   bool
}

// MouseMoveEvent carries the cursor position relative to the window's
// top-left corner.
type MouseMoveEvent struct {
	X int
	Y int
}

// MouseButtonEvent carries the button and the cursor position at the time of
// the press or release.
type MouseButtonEvent struct {
	Button MouseButton
	X      int
	Y      int
}

// MouseWheelEvent carries the number of wheel ticks; positive is up/away
// from the user.
type MouseWheelEvent struct {
	Delta int
}

// JoystickMoveEvent carries an accepted axis change for one joystick slot.
// Position is in [-100, 100] (POV axes report an angle mapped to the same
// range by the reader).
type JoystickMoveEvent struct {
	JoystickID int
	Axis       JoystickAxis
	Position   float32
}

// JoystickButtonEvent carries a button press or release for one joystick slot.
type JoystickButtonEvent struct {
	JoystickID int
	Button     int
}

// JoystickConnectEvent carries the slot of a joystick that was plugged in or
// unplugged.
type JoystickConnectEvent struct {
	JoystickID int
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonX1
	MouseButtonX2
)

// Key identifies a keyboard key independently of layout and platform.
type Key int

// KeyUnknown is reported for keys the platform driver cannot translate.
const KeyUnknown Key = -1

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyEscape
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSystem
	KeyRightSystem
	KeyMenu
	KeyPause
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// VideoMode describes the requested client area of a new window.
type VideoMode struct {
	Width        uint
	Height       uint
	BitsPerPixel uint
}

// Style is a bitmask of window decorations and behaviors requested at
// creation time. How faithfully a style is honored is up to the platform
// (and, under X11, the window manager).
type Style uint32

const (
	StyleNone     Style = 0
	StyleTitlebar Style = 1 << (iota - 1)
	StyleResize
	StyleClose
	StyleFullscreen
)

// StyleDefault is a titled, resizable, closable window.
const StyleDefault = StyleTitlebar | StyleResize | StyleClose

// Handle is an opaque native window handle (an X11 window ID on Linux).
// Zero means "no handle".
type Handle uintptr
