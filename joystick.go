package casement

// Joystick slot and state limits. Slots are a fixed compile-time range; a
// slot with no reader (or a reader whose device is unplugged) is simply
// disconnected, which is a normal state and not an error.
const (
	// JoystickCount is the number of joystick slots a window polls.
	JoystickCount = 4
	// JoystickAxisCount is the number of axes tracked per joystick.
	JoystickAxisCount = 7
	// JoystickButtonCount is the number of buttons tracked per joystick.
	JoystickButtonCount = 32
)

// JoystickAxis identifies one axis of a joystick.
type JoystickAxis uint8

const (
	AxisX JoystickAxis = iota
	AxisY
	AxisZ
	AxisR
	AxisU
	AxisV
	AxisPOV
)

// JoystickState is one complete reading of a joystick: every axis value in
// [-100, 100] plus a button bitset (bit n set means button n is held).
type JoystickState struct {
	Axes    [JoystickAxisCount]float32
	Buttons uint32
}

// JoystickReader is the device query contract a joystick slot polls through.
// Both methods are bounded synchronous reads; neither may block.
//
// Connected reports whether a physical device currently backs the slot.
// Read returns the device's current state and is only called while
// Connected reports true.
type JoystickReader interface {
	Connected() bool
	Read() JoystickState
}

// defaultJoystickThreshold is the minimum axis movement reported when the
// caller never sets one explicitly.
const defaultJoystickThreshold = 0.1

// joystickPoller tracks the last accepted state of every joystick slot and
// turns raw readings into discrete events.
type joystickPoller struct {
	readers   [JoystickCount]JoystickReader
	states    [JoystickCount]JoystickState
	connected [JoystickCount]bool
	threshold float32
}

// setThreshold clamps to [0, 100] and stores. Takes effect on the next poll.
// NaN is stored as zero; a NaN threshold would fail every comparison and
// suppress moves forever.
func (p *joystickPoller) setThreshold(v float32) {
	if !(v >= 0) { // negative or NaN
		v = 0
	} else if v > 100 {
		v = 100
	}
	p.threshold = v
}

// setReader installs (or clears, with nil) the reader backing a slot.
// Out-of-range slots are ignored.
func (p *joystickPoller) setReader(slot int, r JoystickReader) {
	if slot >= 0 && slot < JoystickCount {
		p.readers[slot] = r
	}
}

// poll runs one polling cycle over every slot in index order.
//
// Connectivity transitions are edge-triggered: exactly one connect or
// disconnect event per transition. The first reading after a reconnect seeds
// the baseline without emitting moves. While connected, an axis change is
// reported only when it exceeds the threshold strictly, and the baseline
// advances only on an accepted change so sub-threshold oscillation can never
// drift the comparison point.
func (p *joystickPoller) poll(emit func(Event)) {
	for i := 0; i < JoystickCount; i++ {
		r := p.readers[i]
		now := r != nil && r.Connected()
		if now != p.connected[i] {
			p.connected[i] = now
			if now {
				p.states[i] = r.Read()
				emit(Event{Type: EventJoystickConnected,
					JoystickConnect: JoystickConnectEvent{JoystickID: i}})
			} else {
				emit(Event{Type: EventJoystickDisconnected,
					JoystickConnect: JoystickConnectEvent{JoystickID: i}})
			}
			continue
		}
		if !now {
			continue
		}

		st := r.Read()
		last := &p.states[i]

		for a := 0; a < JoystickAxisCount; a++ {
			delta := st.Axes[a] - last.Axes[a]
			if delta < 0 {
				delta = -delta
			}
			if delta > p.threshold {
				last.Axes[a] = st.Axes[a]
				emit(Event{Type: EventJoystickMoved, JoystickMove: JoystickMoveEvent{
					JoystickID: i,
					Axis:       JoystickAxis(a),
					Position:   st.Axes[a],
				}})
			}
		}

		if changed := st.Buttons ^ last.Buttons; changed != 0 {
			for b := 0; b < JoystickButtonCount; b++ {
				bit := uint32(1) << b
				if changed&bit == 0 {
					continue
				}
				typ := EventJoystickButtonReleased
				if st.Buttons&bit != 0 {
					typ = EventJoystickButtonPressed
				}
				emit(Event{Type: typ, JoystickButton: JoystickButtonEvent{
					JoystickID: i,
					Button:     b,
				}})
			}
			last.Buttons = st.Buttons
		}
	}
}
