package canopy

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	mb MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// pollInput reads this tick's mouse, touch, keyboard and gamepad changes
// from Ebitengine and feeds them to the dispatcher. Screen coordinates are
// used as world coordinates.
func (s *Scene) pollInput() {
	d := s.dispatcher
	d.SetModifiers(readModifiers())

	s.pollMouse(d)
	s.pollTouches(d)

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		d.KeyDown(k)
	}
	s.charBuf = ebiten.AppendInputChars(s.charBuf[:0])
	for _, r := range s.charBuf {
		d.Char(r)
	}
	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		d.KeyUp(k)
	}

	s.pollGamepads(d)
}

func (s *Scene) pollMouse(d *Dispatcher) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if mx != s.cursorX || my != s.cursorY {
		s.cursorX, s.cursorY = mx, my
		d.PointerMove(x, y)
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			d.PointerDown(x, y, b.mb)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			d.PointerUp(x, y, b.mb)
		}
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		d.Scroll(x, y, wx, wy)
	}
}

func (s *Scene) pollTouches(d *Dispatcher) {
	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		d.TouchDown(id, float64(tx), float64(ty))
	}

	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		if inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		tx, ty := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if tx != px || ty != py {
			d.TouchMove(id, float64(tx), float64(ty))
		}
	}

	s.touchBuf = inpututil.AppendJustReleasedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		tx, ty := inpututil.TouchPositionInPreviousTick(id)
		d.TouchUp(id, float64(tx), float64(ty))
	}
}

func (s *Scene) pollGamepads(d *Dispatcher) {
	s.gamepadBuf = ebiten.AppendGamepadIDs(s.gamepadBuf[:0])
	for _, id := range s.gamepadBuf {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		s.buttonBuf = inpututil.AppendJustPressedStandardGamepadButtons(id, s.buttonBuf[:0])
		for _, b := range s.buttonBuf {
			d.ButtonDown(id, b)
		}
		s.buttonBuf = inpututil.AppendJustReleasedStandardGamepadButtons(id, s.buttonBuf[:0])
		for _, b := range s.buttonBuf {
			d.ButtonUp(id, b)
		}
	}
}
