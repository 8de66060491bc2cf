package casement

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

// newSimWindow opens a window over a tcell simulation screen so the whole
// pump runs headless.
func newSimWindow(t *testing.T) (*Window, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	win, err := NewTerminal(screen)
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	t.Cleanup(func() { win.Close() })
	return win, screen
}

func TestTerminalInitialSize(t *testing.T) {
	win, screen := newSimWindow(t)
	// The cache seeds from whatever size the screen comes up at.
	w, h := screen.Size()
	if win.Width() != uint(w) || win.Height() != uint(h) {
		t.Errorf("initial size = %dx%d, want %dx%d (screen size)",
			win.Width(), win.Height(), w, h)
	}
}

func TestTerminalResizeReachesCache(t *testing.T) {
	win, screen := newSimWindow(t)
	var resizes []SizeEvent
	win.AddListener(ListenerFunc(func(e Event) {
		if e.Type == EventResized {
			resizes = append(resizes, e.Size)
		}
	}))

	// Simulation screens resize silently, so report the new size the way a
	// real terminal would: as a resize event through the pump.
	screen.SetSize(100, 30)
	if err := screen.PostEvent(tcell.NewEventResize(100, 30)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	win.DoEvents(false)

	if win.Width() != 100 || win.Height() != 30 {
		t.Errorf("after resize: %dx%d, want 100x30", win.Width(), win.Height())
	}
	if len(resizes) != 1 || resizes[0].Width != 100 || resizes[0].Height != 30 {
		t.Errorf("resize events = %v, want one 100x30", resizes)
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	win, screen := newSimWindow(t)
	var got []Event
	win.AddListener(ListenerFunc(func(e Event) { got = append(got, e) }))

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	win.DoEvents(false)

	want := []struct {
		typ  EventType
		code Key
	}{
		{EventKeyPressed, KeyA},
		{EventTextEntered, KeyUnknown}, // code unused for text
		{EventKeyPressed, KeyEscape},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events (%v), want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i].Type != w.typ {
			t.Errorf("event %d type = %v, want %v", i, got[i].Type, w.typ)
		}
	}
	if got[0].Key.Code != KeyA {
		t.Errorf("key code = %v, want KeyA", got[0].Key.Code)
	}
	if got[1].Text.Rune != 'a' {
		t.Errorf("text rune = %q, want 'a'", got[1].Text.Rune)
	}
	if got[2].Key.Code != KeyEscape {
		t.Errorf("key code = %v, want KeyEscape", got[2].Key.Code)
	}
}

func TestTerminalCtrlCRequestsClose(t *testing.T) {
	win, screen := newSimWindow(t)
	l := &recordingListener{}
	win.AddListener(l)

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	win.DoEvents(false)

	if len(l.got) != 1 || l.got[0] != EventClosed {
		t.Errorf("got %v, want [Closed]", l.got)
	}
}

func TestTerminalMouseEdges(t *testing.T) {
	win, screen := newSimWindow(t)
	var got []Event
	win.AddListener(ListenerFunc(func(e Event) { got = append(got, e) }))

	screen.InjectMouse(3, 4, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(3, 4, tcell.ButtonNone, tcell.ModNone)
	win.DoEvents(false)

	// Press at a new position, then release: press, move, release.
	want := []EventType{EventMouseButtonPressed, EventMouseMoved, EventMouseButtonReleased}
	if len(got) != len(want) {
		t.Fatalf("got %d events (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i].Type, want[i])
		}
	}
	if got[0].MouseButton.Button != MouseButtonLeft ||
		got[0].MouseButton.X != 3 || got[0].MouseButton.Y != 4 {
		t.Errorf("press = %+v, want left button at (3,4)", got[0].MouseButton)
	}
	if got[1].MouseMove.X != 3 || got[1].MouseMove.Y != 4 {
		t.Errorf("move = %+v, want (3,4)", got[1].MouseMove)
	}
}

func TestTerminalWheel(t *testing.T) {
	win, screen := newSimWindow(t)
	var deltas []int
	win.AddListener(ListenerFunc(func(e Event) {
		if e.Type == EventMouseWheelMoved {
			deltas = append(deltas, e.MouseWheel.Delta)
		}
	}))

	screen.InjectMouse(0, 0, tcell.WheelUp, tcell.ModNone)
	screen.InjectMouse(0, 0, tcell.WheelDown, tcell.ModNone)
	win.DoEvents(false)

	if len(deltas) != 2 || deltas[0] != 1 || deltas[1] != -1 {
		t.Errorf("wheel deltas = %v, want [1 -1]", deltas)
	}
}

func TestTerminalHandleIsZero(t *testing.T) {
	win, _ := newSimWindow(t)
	if win.Handle() != 0 {
		t.Errorf("terminal window handle = %#x, want 0", win.Handle())
	}
}

func TestTerminalKeyMapping(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want Key
	}{
		{"letter", tcell.KeyRune, 'z', KeyZ},
		{"upper letter", tcell.KeyRune, 'Q', KeyQ},
		{"digit", tcell.KeyRune, '7', KeyNum7},
		{"space", tcell.KeyRune, ' ', KeySpace},
		{"unknown rune", tcell.KeyRune, '€', KeyUnknown},
		{"enter", tcell.KeyEnter, 0, KeyEnter},
		{"arrow", tcell.KeyLeft, 0, KeyLeft},
		{"function", tcell.KeyF5, 0, KeyF5},
		{"page down", tcell.KeyPgDn, 0, KeyPageDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
			if got := tcellKey(ev); got != tt.want {
				t.Errorf("tcellKey(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
			}
		})
	}
}
