package casement

import (
	"math"
	"testing"
)

// fakeJoystick is a scriptable reader: tests mutate its fields between polls.
type fakeJoystick struct {
	connected bool
	state     JoystickState
}

func (f *fakeJoystick) Connected() bool     { return f.connected }
func (f *fakeJoystick) Read() JoystickState { return f.state }

// collect runs one poll and returns the emitted events.
func collect(p *joystickPoller) []Event {
	var events []Event
	p.poll(func(e Event) { events = append(events, e) })
	return events
}

func TestThresholdClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"in range", 37.5, 37.5},
		{"max", 100, 100},
		{"above max", 250, 100},
		{"nan", float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p joystickPoller
			p.setThreshold(tt.in)
			if p.threshold != tt.want {
				t.Errorf("setThreshold(%v) stored %v, want %v", tt.in, p.threshold, tt.want)
			}
		})
	}
}

func TestNaNThresholdDoesNotSuppressMoves(t *testing.T) {
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setThreshold(float32(math.NaN()))
	p.setReader(0, js)
	collect(&p) // connect edge

	js.state.Axes[AxisX] = 40
	got := collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickMoved {
		t.Fatalf("got %v, want one JoystickMoved", got)
	}
}

func TestSetReaderOutOfRange(t *testing.T) {
	var p joystickPoller
	p.setReader(-1, &fakeJoystick{})
	p.setReader(JoystickCount, &fakeJoystick{})
	for i, r := range p.readers {
		if r != nil {
			t.Errorf("slot %d unexpectedly has a reader", i)
		}
	}
}

func TestConnectDisconnectEdges(t *testing.T) {
	js := &fakeJoystick{}
	var p joystickPoller
	p.setReader(0, js)

	if got := collect(&p); len(got) != 0 {
		t.Fatalf("disconnected slot emitted %d events", len(got))
	}

	js.connected = true
	got := collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickConnected {
		t.Fatalf("connect edge: got %v, want one JoystickConnected", got)
	}
	if got[0].JoystickConnect.JoystickID != 0 {
		t.Errorf("connect event slot = %d, want 0", got[0].JoystickConnect.JoystickID)
	}

	// Steady state: no repeated connectivity events.
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("steady connected state emitted %d events", len(got))
	}

	js.connected = false
	got = collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickDisconnected {
		t.Fatalf("disconnect edge: got %v, want one JoystickDisconnected", got)
	}
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("steady disconnected state emitted %d events", len(got))
	}
}

func TestReconnectSeedsBaseline(t *testing.T) {
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setThreshold(10)
	p.setReader(0, js)
	collect(&p) // connect

	js.state.Axes[AxisX] = 50
	if got := collect(&p); len(got) != 1 || got[0].Type != EventJoystickMoved {
		t.Fatalf("move after connect: got %v", got)
	}

	js.connected = false
	collect(&p) // disconnect

	// Reconnect at a wildly different position: the reading seeds the
	// baseline, no move event fires.
	js.state.Axes[AxisX] = -80
	js.connected = true
	got := collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickConnected {
		t.Fatalf("reconnect: got %v, want only JoystickConnected", got)
	}

	// A small wiggle around the seeded baseline stays silent.
	js.state.Axes[AxisX] = -75
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("sub-threshold move after reconnect emitted %v", got)
	}

	// A real move from the seeded baseline is reported.
	js.state.Axes[AxisX] = -60
	got = collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickMoved {
		t.Fatalf("move after reconnect: got %v", got)
	}
	if pos := got[0].JoystickMove.Position; pos != -60 {
		t.Errorf("move position = %v, want -60", pos)
	}
}

func TestMoveThresholdStrictlyGreater(t *testing.T) {
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setThreshold(10)
	p.setReader(0, js)
	collect(&p) // connect, baseline 0

	// A change of exactly the threshold is not reported.
	js.state.Axes[AxisX] = 10
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("delta == threshold emitted %v", got)
	}

	// One more unit crosses it. Delta is measured from the unmoved
	// baseline, still 0.
	js.state.Axes[AxisX] = 11
	got := collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickMoved {
		t.Fatalf("delta > threshold: got %v", got)
	}
	if got[0].JoystickMove.Position != 11 {
		t.Errorf("position = %v, want 11", got[0].JoystickMove.Position)
	}
}

func TestBaselineAdvancesOnlyOnAcceptedMove(t *testing.T) {
	// Threshold 10, axis X reports 5, 12, 14, 30 across four polls.
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setThreshold(10)
	p.setReader(0, js)
	collect(&p)

	var moves []float32
	step := func(v float32) {
		js.state.Axes[AxisX] = v
		for _, e := range collect(&p) {
			if e.Type == EventJoystickMoved {
				moves = append(moves, e.JoystickMove.Position)
			}
		}
	}
	step(5)
	step(12)
	step(14)
	step(30)

	want := []float32{12, 30}
	if len(moves) != len(want) {
		t.Fatalf("emitted moves %v, want %v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, moves[i], want[i])
		}
	}
}

func TestZeroThresholdReportsEveryChange(t *testing.T) {
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setThreshold(0)
	p.setReader(0, js)
	collect(&p)

	js.state.Axes[AxisY] = 0.5
	got := collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickMoved {
		t.Fatalf("threshold 0: tiny change got %v", got)
	}
	if got[0].JoystickMove.Axis != AxisY {
		t.Errorf("axis = %v, want AxisY", got[0].JoystickMove.Axis)
	}

	// No change at all stays silent even at threshold 0.
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("threshold 0: no change emitted %v", got)
	}
}

func TestDisconnectedSlotSuppressesMotion(t *testing.T) {
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setThreshold(1)
	p.setReader(1, js)
	collect(&p)

	js.connected = false
	collect(&p)

	// Polled data on a disconnected slot must be disregarded entirely.
	js.state.Axes[AxisX] = 99
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("disconnected slot emitted %v", got)
	}
}

func TestButtonEdges(t *testing.T) {
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setReader(0, js)
	collect(&p)

	js.state.Buttons = 1<<3 | 1<<7
	got := collect(&p)
	if len(got) != 2 {
		t.Fatalf("two presses: got %d events", len(got))
	}
	for i, want := range []int{3, 7} {
		if got[i].Type != EventJoystickButtonPressed {
			t.Errorf("event %d type = %v, want JoystickButtonPressed", i, got[i].Type)
		}
		if got[i].JoystickButton.Button != want {
			t.Errorf("event %d button = %d, want %d", i, got[i].JoystickButton.Button, want)
		}
	}

	// Held buttons are silent.
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("held buttons emitted %v", got)
	}

	js.state.Buttons = 1 << 7
	got = collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickButtonReleased ||
		got[0].JoystickButton.Button != 3 {
		t.Fatalf("release of button 3: got %v", got)
	}
}

func TestSlotsPolledInIndexOrder(t *testing.T) {
	a := &fakeJoystick{connected: true}
	b := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setReader(2, b)
	p.setReader(0, a)

	got := collect(&p)
	if len(got) != 2 {
		t.Fatalf("got %d connect events, want 2", len(got))
	}
	if got[0].JoystickConnect.JoystickID != 0 || got[1].JoystickConnect.JoystickID != 2 {
		t.Errorf("connect order = slot %d then %d, want 0 then 2",
			got[0].JoystickConnect.JoystickID, got[1].JoystickConnect.JoystickID)
	}
}

func TestThresholdChangeAppliesNextPoll(t *testing.T) {
	js := &fakeJoystick{connected: true}
	var p joystickPoller
	p.setThreshold(50)
	p.setReader(0, js)
	collect(&p)

	js.state.Axes[AxisX] = 20
	if got := collect(&p); len(got) != 0 {
		t.Fatalf("below old threshold emitted %v", got)
	}

	p.setThreshold(10)
	got := collect(&p)
	if len(got) != 1 || got[0].Type != EventJoystickMoved {
		t.Fatalf("after lowering threshold: got %v", got)
	}
}
