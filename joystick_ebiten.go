package casement

import "github.com/hajimehoshi/ebiten/v2"

// EbitenJoystick reads gamepad state through Ebitengine, for programs that
// already run inside an ebiten game loop and want this package's threshold
// and connect/disconnect event handling on top. Install with
// Window.SetJoystickReader and call DoEvents from ebiten's Update.
//
// The ebiten input API only returns fresh data inside a running game loop;
// outside one the reader reports no gamepads.
type EbitenJoystick struct {
	index int
	ids   []ebiten.GamepadID
}

// NewEbitenJoystick returns a reader for the index-th connected gamepad.
func NewEbitenJoystick(index int) *EbitenJoystick {
	return &EbitenJoystick{index: index}
}

// Connected reports whether at least index+1 gamepads are attached.
func (j *EbitenJoystick) Connected() bool {
	j.ids = ebiten.AppendGamepadIDs(j.ids[:0])
	return j.index < len(j.ids)
}

// Read returns the current axis and button state, axes scaled from ebiten's
// [-1, 1] to [-100, 100].
func (j *EbitenJoystick) Read() JoystickState {
	var st JoystickState
	if j.index >= len(j.ids) {
		return st
	}
	id := j.ids[j.index]

	axes := ebiten.GamepadAxisCount(id)
	if axes > JoystickAxisCount {
		axes = JoystickAxisCount
	}
	for a := 0; a < axes; a++ {
		st.Axes[a] = float32(ebiten.GamepadAxisValue(id, ebiten.GamepadAxisType(a)) * 100)
	}

	buttons := ebiten.GamepadButtonCount(id)
	if buttons > JoystickButtonCount {
		buttons = JoystickButtonCount
	}
	for b := 0; b < buttons; b++ {
		if ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton(b)) {
			st.Buttons |= 1 << b
		}
	}
	return st
}
