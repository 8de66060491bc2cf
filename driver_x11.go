//go:build linux

package casement

import (
	"encoding/binary"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Driver implements Driver on top of a raw X11 connection.
type x11Driver struct {
	conn  *xgb.Conn
	win   xproto.Window
	root  xproto.Window
	owned bool // created by us, destroyed on Close

	width  uint
	height uint

	atoms map[string]xproto.Atom

	// Keyboard mapping, loaded once and refreshed on MappingNotify.
	minKeycode xproto.Keycode
	keysymsPer int
	keysyms    []xproto.Keysym

	keyRepeat bool
	// pendingRelease delays KeyRelease emission one event so X11 autorepeat
	// (a release/press pair sharing keycode and timestamp) can be detected.
	pendingRelease *xproto.KeyReleaseEvent

	blankCursor xproto.Cursor
}

const x11EventMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow |
	xproto.EventMaskFocusChange | xproto.EventMaskExposure

// newX11Driver connects to the X server and creates a mapped window.
func newX11Driver(mode VideoMode, title string, style Style) (*x11Driver, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("casement: connect to X server: %w", err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("casement: allocate window id: %w", err)
	}

	d := &x11Driver{
		conn:      conn,
		win:       win,
		root:      screen.Root,
		owned:     true,
		width:     mode.Width,
		height:    mode.Height,
		atoms:     make(map[string]xproto.Atom),
		keyRepeat: true,
	}

	// Value list order must follow the ascending bit order of the mask.
	mask := uint32(xproto.CwEventMask)
	values := []uint32{x11EventMask}
	if style == StyleNone {
		mask = xproto.CwOverrideRedirect | xproto.CwEventMask
		values = []uint32{1, x11EventMask}
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, win, screen.Root,
		0, 0, uint16(mode.Width), uint16(mode.Height), 0,
		xproto.WindowClassInputOutput, screen.RootVisual, mask, values).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("casement: create window: %w", err)
	}

	d.setTitle(title)
	if atom, err := d.atom("WM_DELETE_WINDOW"); err == nil {
		if proto, err := d.atom("WM_PROTOCOLS"); err == nil {
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], uint32(atom))
			xproto.ChangeProperty(conn, xproto.PropModeReplace, win, proto,
				xproto.AtomAtom, 32, 1, buf[:])
		}
	}

	d.loadKeymap()
	xproto.MapWindow(conn, win)
	if style&StyleFullscreen != 0 {
		d.setFullscreen()
	}
	d.conn.Sync()
	return d, nil
}

// adoptX11Driver wraps a window created by someone else. The window is left
// alone on Close; only the connection is released.
func adoptX11Driver(handle Handle) (*x11Driver, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("casement: connect to X server: %w", err)
	}
	win := xproto.Window(handle)
	geo, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("casement: adopt window %#x: %w", uintptr(handle), err)
	}
	d := &x11Driver{
		conn:      conn,
		win:       win,
		root:      xproto.Setup(conn).DefaultScreen(conn).Root,
		width:     uint(geo.Width),
		height:    uint(geo.Height),
		atoms:     make(map[string]xproto.Atom),
		keyRepeat: true,
	}
	xproto.ChangeWindowAttributes(conn, win, xproto.CwEventMask,
		[]uint32{x11EventMask})
	d.loadKeymap()
	return d, nil
}

func (d *x11Driver) Handle() Handle { return Handle(d.win) }

func (d *x11Driver) Size() (uint, uint) { return d.width, d.height }

func (d *x11Driver) ProcessEvents(block bool, emit func(Event)) {
	if block {
		ev, xerr := d.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return // connection closed
		}
		if ev != nil {
			d.handleEvent(ev, emit)
		}
	}
	for {
		ev, xerr := d.conn.PollForEvent()
		if ev == nil && xerr == nil {
			break
		}
		if ev != nil {
			d.handleEvent(ev, emit)
		}
	}
	d.flushPendingRelease(emit)
}

// handleEvent translates one X event. KeyRelease is held back one event so a
// matching KeyPress (same keycode, same timestamp) can be folded into an
// autorepeat instead of a spurious release/press pair.
func (d *x11Driver) handleEvent(ev xgb.Event, emit func(Event)) {
	if d.pendingRelease != nil {
		rel := *d.pendingRelease
		if press, ok := ev.(xproto.KeyPressEvent); ok &&
			press.Detail == rel.Detail && press.Time == rel.Time {
			d.pendingRelease = nil
			if d.keyRepeat {
				d.emitKey(EventKeyPressed, press.Detail, press.State, emit)
				d.emitText(press.Detail, press.State, emit)
			}
			return
		}
		d.pendingRelease = nil
		d.emitKey(EventKeyReleased, rel.Detail, rel.State, emit)
	}

	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		w, h := uint(e.Width), uint(e.Height)
		if w != d.width || h != d.height {
			d.width, d.height = w, h
			emit(Event{Type: EventResized, Size: SizeEvent{Width: w, Height: h}})
		}

	case xproto.ClientMessageEvent:
		if atom, err := d.atom("WM_DELETE_WINDOW"); err == nil &&
			e.Format == 32 && len(e.Data.Data32) > 0 &&
			xproto.Atom(e.Data.Data32[0]) == atom {
			emit(Event{Type: EventClosed})
		}

	case xproto.KeyPressEvent:
		d.emitKey(EventKeyPressed, e.Detail, e.State, emit)
		d.emitText(e.Detail, e.State, emit)

	case xproto.KeyReleaseEvent:
		d.pendingRelease = &e

	case xproto.ButtonPressEvent:
		switch e.Detail {
		case 4:
			emit(Event{Type: EventMouseWheelMoved, MouseWheel: MouseWheelEvent{Delta: 1}})
		case 5:
			emit(Event{Type: EventMouseWheelMoved, MouseWheel: MouseWheelEvent{Delta: -1}})
		default:
			if b, ok := x11MouseButton(e.Detail); ok {
				emit(Event{Type: EventMouseButtonPressed, MouseButton: MouseButtonEvent{
					Button: b, X: int(e.EventX), Y: int(e.EventY),
				}})
			}
		}

	case xproto.ButtonReleaseEvent:
		// Wheel buttons report on press only.
		if b, ok := x11MouseButton(e.Detail); ok {
			emit(Event{Type: EventMouseButtonReleased, MouseButton: MouseButtonEvent{
				Button: b, X: int(e.EventX), Y: int(e.EventY),
			}})
		}

	case xproto.MotionNotifyEvent:
		emit(Event{Type: EventMouseMoved, MouseMove: MouseMoveEvent{
			X: int(e.EventX), Y: int(e.EventY),
		}})

	case xproto.EnterNotifyEvent:
		emit(Event{Type: EventMouseEntered})

	case xproto.LeaveNotifyEvent:
		emit(Event{Type: EventMouseLeft})

	case xproto.FocusInEvent:
		emit(Event{Type: EventGainedFocus})

	case xproto.FocusOutEvent:
		emit(Event{Type: EventLostFocus})

	case xproto.MappingNotifyEvent:
		d.loadKeymap()
	}
}

func (d *x11Driver) flushPendingRelease(emit func(Event)) {
	if d.pendingRelease == nil {
		return
	}
	rel := *d.pendingRelease
	d.pendingRelease = nil
	d.emitKey(EventKeyReleased, rel.Detail, rel.State, emit)
}

func x11MouseButton(detail xproto.Button) (MouseButton, bool) {
	switch detail {
	case 1:
		return MouseButtonLeft, true
	case 2:
		return MouseButtonMiddle, true
	case 3:
		return MouseButtonRight, true
	case 8:
		return MouseButtonX1, true
	case 9:
		return MouseButtonX2, true
	}
	return 0, false
}

func (d *x11Driver) emitKey(typ EventType, code xproto.Keycode, state uint16, emit func(Event)) {
	emit(Event{Type: typ, Key: KeyEvent{
		Code:    keysymToKey(d.keysym(code, 0)),
		Alt:     state&xproto.ModMask1 != 0,
		Control: state&xproto.ModMaskControl != 0,
		Shift:   state&xproto.ModMaskShift != 0,
	}})
}

// emitText follows a key press with a TextEntered event when the keysym maps
// to a printable Latin-1 character. The shifted column is used when Shift is
// held.
func (d *x11Driver) emitText(code xproto.Keycode, state uint16, emit func(Event)) {
	col := 0
	if state&xproto.ModMaskShift != 0 {
		col = 1
	}
	sym := d.keysym(code, col)
	if sym == 0 && col == 1 {
		sym = d.keysym(code, 0)
	}
	if (sym >= 0x20 && sym <= 0x7e) || (sym >= 0xa0 && sym <= 0xff) {
		emit(Event{Type: EventTextEntered, Text: TextEvent{Rune: rune(sym)}})
	}
}

// --- Mutator hooks ---

func (d *x11Driver) ShowMouseCursor(show bool) {
	cursor := uint32(xproto.CursorNone)
	if !show {
		cursor = uint32(d.hiddenCursor())
	}
	xproto.ChangeWindowAttributes(d.conn, d.win, xproto.CwCursor, []uint32{cursor})
	d.conn.Sync()
}

func (d *x11Driver) SetCursorPosition(x, y uint) {
	xproto.WarpPointer(d.conn, xproto.Window(0), d.win, 0, 0, 0, 0,
		int16(x), int16(y))
	d.conn.Sync()
}

func (d *x11Driver) SetPosition(x, y int) {
	xproto.ConfigureWindow(d.conn, d.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(x), uint32(y)})
	d.conn.Sync()
}

func (d *x11Driver) SetSize(width, height uint) {
	xproto.ConfigureWindow(d.conn, d.win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)})
	d.conn.Sync()
}

func (d *x11Driver) Show(show bool) {
	if show {
		xproto.MapWindow(d.conn, d.win)
	} else {
		xproto.UnmapWindow(d.conn, d.win)
	}
	d.conn.Sync()
}

func (d *x11Driver) EnableKeyRepeat(enabled bool) {
	d.keyRepeat = enabled
}

// SetIcon publishes the icon as a _NET_WM_ICON property: two CARDINALs for
// width and height followed by width*height ARGB pixels.
func (d *x11Driver) SetIcon(width, height uint, pixels []byte) {
	if uint(len(pixels)) != width*height*4 {
		return
	}
	atom, err := d.atom("_NET_WM_ICON")
	if err != nil {
		return
	}
	data := make([]byte, 8+len(pixels))
	binary.LittleEndian.PutUint32(data[0:], uint32(width))
	binary.LittleEndian.PutUint32(data[4:], uint32(height))
	for i := uint(0); i < width*height; i++ {
		r := uint32(pixels[i*4])
		g := uint32(pixels[i*4+1])
		b := uint32(pixels[i*4+2])
		a := uint32(pixels[i*4+3])
		binary.LittleEndian.PutUint32(data[8+i*4:], a<<24|r<<16|g<<8|b)
	}
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.win, atom,
		xproto.AtomCardinal, 32, uint32(2+width*height), data)
	d.conn.Sync()
}

func (d *x11Driver) Close() error {
	if d.owned {
		xproto.DestroyWindow(d.conn, d.win)
	}
	d.conn.Close()
	return nil
}

// --- Helpers ---

func (d *x11Driver) atom(name string) (xproto.Atom, error) {
	if atom, ok := d.atoms[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(d.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	d.atoms[name] = reply.Atom
	return reply.Atom, nil
}

func (d *x11Driver) setTitle(title string) {
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.win,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))
	if name, err := d.atom("_NET_WM_NAME"); err == nil {
		if utf8, err := d.atom("UTF8_STRING"); err == nil {
			xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.win,
				name, utf8, 8, uint32(len(title)), []byte(title))
		}
	}
}

func (d *x11Driver) setFullscreen() {
	state, err := d.atom("_NET_WM_STATE")
	if err != nil {
		return
	}
	fs, err := d.atom("_NET_WM_STATE_FULLSCREEN")
	if err != nil {
		return
	}
	// _NET_WM_STATE_ADD
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: d.win,
		Type:   state,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{1, uint32(fs), 0, 1, 0}),
	}
	xproto.SendEvent(d.conn, false, d.root,
		xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
		string(ev.Bytes()))
}

func (d *x11Driver) loadKeymap() {
	setup := xproto.Setup(d.conn)
	first := setup.MinKeycode
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(d.conn, first, count).Reply()
	if err != nil {
		return
	}
	d.minKeycode = first
	d.keysymsPer = int(reply.KeysymsPerKeycode)
	d.keysyms = reply.Keysyms
}

func (d *x11Driver) keysym(code xproto.Keycode, col int) xproto.Keysym {
	if d.keysymsPer == 0 || col >= d.keysymsPer {
		return 0
	}
	i := (int(code)-int(d.minKeycode))*d.keysymsPer + col
	if i < 0 || i >= len(d.keysyms) {
		return 0
	}
	return d.keysyms[i]
}

// hiddenCursor lazily builds an invisible cursor from a 1x1 empty pixmap.
func (d *x11Driver) hiddenCursor() xproto.Cursor {
	if d.blankCursor != 0 {
		return d.blankCursor
	}
	pix, err := xproto.NewPixmapId(d.conn)
	if err != nil {
		return 0
	}
	cursor, err := xproto.NewCursorId(d.conn)
	if err != nil {
		return 0
	}
	xproto.CreatePixmap(d.conn, 1, pix, xproto.Drawable(d.win), 1, 1)
	xproto.CreateCursor(d.conn, cursor, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0)
	xproto.FreePixmap(d.conn, pix)
	d.blankCursor = cursor
	return cursor
}

// keysymToKey maps an X keysym to the platform-neutral Key code.
func keysymToKey(sym xproto.Keysym) Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return KeyA + Key(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return KeyA + Key(sym-'A')
	case sym >= '0' && sym <= '9':
		return KeyNum0 + Key(sym-'0')
	case sym >= 0xffbe && sym <= 0xffc9: // XK_F1 .. XK_F12
		return KeyF1 + Key(sym-0xffbe)
	}
	switch sym {
	case 0xff1b:
		return KeyEscape
	case 0xff0d, 0xff8d: // Return, KP_Enter
		return KeyEnter
	case 0x20:
		return KeySpace
	case 0xff09:
		return KeyTab
	case 0xff08:
		return KeyBackspace
	case 0xffff:
		return KeyDelete
	case 0xff63:
		return KeyInsert
	case 0xff50:
		return KeyHome
	case 0xff57:
		return KeyEnd
	case 0xff55:
		return KeyPageUp
	case 0xff56:
		return KeyPageDown
	case 0xff51:
		return KeyLeft
	case 0xff52:
		return KeyUp
	case 0xff53:
		return KeyRight
	case 0xff54:
		return KeyDown
	case 0xffe1:
		return KeyLeftShift
	case 0xffe2:
		return KeyRightShift
	case 0xffe3:
		return KeyLeftControl
	case 0xffe4:
		return KeyRightControl
	case 0xffe9:
		return KeyLeftAlt
	case 0xffea:
		return KeyRightAlt
	case 0xffeb:
		return KeyLeftSystem
	case 0xffec:
		return KeyRightSystem
	case 0xff67:
		return KeyMenu
	case 0xff13:
		return KeyPause
	}
	return KeyUnknown
}
