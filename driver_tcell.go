package casement

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// NewTerminal opens a window backed by a terminal screen instead of a native
// display. It works on every platform tcell does, and with a
// tcell.SimulationScreen it runs headless, which is how this package tests
// its own pump. The screen is initialized here and finalized by Close.
//
// Pass nil to let NewTerminal allocate the default screen for the
// controlling terminal.
func NewTerminal(screen tcell.Screen) (*Window, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("casement: open terminal screen: %w", err)
		}
		screen = s
	}
	d, err := newTcellDriver(screen)
	if err != nil {
		return nil, err
	}
	return newWindow(d, platformJoysticks()), nil
}

// tcellDriver adapts a tcell.Screen to the Driver contract. Cells stand in
// for pixels: sizes and cursor positions are in character cells.
type tcellDriver struct {
	screen tcell.Screen

	width  uint
	height uint

	// Last observed mouse state, for edge detection. tcell reports absolute
	// button state per mouse event, not transitions.
	lastButtons tcell.ButtonMask
	lastX       int
	lastY       int
}

func newTcellDriver(screen tcell.Screen) (*tcellDriver, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("casement: init terminal screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	w, h := screen.Size()
	return &tcellDriver{
		screen: screen,
		width:  uint(w),
		height: uint(h),
		lastX:  -1,
		lastY:  -1,
	}, nil
}

// Handle returns zero: a terminal screen has no native window handle.
func (d *tcellDriver) Handle() Handle { return 0 }

func (d *tcellDriver) Size() (uint, uint) { return d.width, d.height }

func (d *tcellDriver) ProcessEvents(block bool, emit func(Event)) {
	if block {
		ev := d.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		d.translate(ev, emit)
	}
	for d.screen.HasPendingEvent() {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		d.translate(ev, emit)
	}
}

func (d *tcellDriver) translate(ev tcell.Event, emit func(Event)) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := e.Size()
		if uint(w) != d.width || uint(h) != d.height {
			d.width, d.height = uint(w), uint(h)
			emit(Event{Type: EventResized, Size: SizeEvent{Width: d.width, Height: d.height}})
		}

	case *tcell.EventKey:
		d.translateKey(e, emit)

	case *tcell.EventMouse:
		d.translateMouse(e, emit)

	case *tcell.EventFocus:
		if e.Focused {
			emit(Event{Type: EventGainedFocus})
		} else {
			emit(Event{Type: EventLostFocus})
		}
	}
}

// translateKey emits KeyPressed, plus TextEntered for printable runes.
// Terminals report no key releases, so EventKeyReleased never fires on this
// backend, and Ctrl-C stands in for the close button.
func (d *tcellDriver) translateKey(e *tcell.EventKey, emit func(Event)) {
	if e.Key() == tcell.KeyCtrlC {
		emit(Event{Type: EventClosed})
		return
	}

	key := KeyEvent{
		Code:    tcellKey(e),
		Alt:     e.Modifiers()&tcell.ModAlt != 0,
		Control: e.Modifiers()&tcell.ModCtrl != 0,
		Shift:   e.Modifiers()&tcell.ModShift != 0,
	}
	emit(Event{Type: EventKeyPressed, Key: key})

	if e.Key() == tcell.KeyRune {
		emit(Event{Type: EventTextEntered, Text: TextEvent{Rune: e.Rune()}})
	}
}

func (d *tcellDriver) translateMouse(e *tcell.EventMouse, emit func(Event)) {
	x, y := e.Position()
	buttons := e.Buttons()

	if buttons&tcell.WheelUp != 0 {
		emit(Event{Type: EventMouseWheelMoved, MouseWheel: MouseWheelEvent{Delta: 1}})
	}
	if buttons&tcell.WheelDown != 0 {
		emit(Event{Type: EventMouseWheelMoved, MouseWheel: MouseWheelEvent{Delta: -1}})
	}
	buttons &^= tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

	for _, m := range []struct {
		mask   tcell.ButtonMask
		button MouseButton
	}{
		{tcell.Button1, MouseButtonLeft},
		{tcell.Button2, MouseButtonRight},
		{tcell.Button3, MouseButtonMiddle},
	} {
		was := d.lastButtons&m.mask != 0
		is := buttons&m.mask != 0
		if is == was {
			continue
		}
		typ := EventMouseButtonReleased
		if is {
			typ = EventMouseButtonPressed
		}
		emit(Event{Type: typ, MouseButton: MouseButtonEvent{Button: m.button, X: x, Y: y}})
	}
	d.lastButtons = buttons

	if x != d.lastX || y != d.lastY {
		d.lastX, d.lastY = x, y
		emit(Event{Type: EventMouseMoved, MouseMove: MouseMoveEvent{X: x, Y: y}})
	}
}

// --- Mutator hooks ---

// ShowMouseCursor is a no-op: a terminal has no pointer sprite of its own.
func (d *tcellDriver) ShowMouseCursor(show bool) {}

func (d *tcellDriver) SetCursorPosition(x, y uint) {
	d.screen.ShowCursor(int(x), int(y))
	d.screen.Show()
}

// SetPosition is a no-op: the terminal emulator owns its own placement.
func (d *tcellDriver) SetPosition(x, y int) {}

// SetSize asks the screen to resize. Most terminals ignore the request; the
// cache only moves when the screen reports a new size through the pump.
func (d *tcellDriver) SetSize(width, height uint) {
	d.screen.SetSize(int(width), int(height))
	d.screen.Sync()
}

// Show is a no-op: a terminal screen is visible for as long as it exists.
func (d *tcellDriver) Show(show bool) {}

// EnableKeyRepeat is a no-op: the TTY layer owns autorepeat.
func (d *tcellDriver) EnableKeyRepeat(enabled bool) {}

// SetIcon is a no-op: terminals have no window icon.
func (d *tcellDriver) SetIcon(width, height uint, pixels []byte) {}

func (d *tcellDriver) Close() error {
	d.screen.Fini()
	return nil
}

// tcellKey maps a tcell key event to the platform-neutral Key code.
func tcellKey(e *tcell.EventKey) Key {
	if e.Key() == tcell.KeyRune {
		r := e.Rune()
		switch {
		case r >= 'a' && r <= 'z':
			return KeyA + Key(r-'a')
		case r >= 'A' && r <= 'Z':
			return KeyA + Key(r-'A')
		case r >= '0' && r <= '9':
			return KeyNum0 + Key(r-'0')
		case r == ' ':
			return KeySpace
		}
		return KeyUnknown
	}
	if k := e.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return KeyF1 + Key(k-tcell.KeyF1)
	}
	switch e.Key() {
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyInsert:
		return KeyInsert
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyPause:
		return KeyPause
	}
	return KeyUnknown
}
