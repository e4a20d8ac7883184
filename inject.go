package canopy

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthKey
	synthChar
)

// syntheticEvent is one queued input event. Injected input replaces polled
// input for the frame it is processed in.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button MouseButton
	key    ebiten.Key
	char   rune
	mods   KeyModifiers
}

// InjectPress queues a left-button press at the given coordinates. Events
// are processed one per Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a pointer move. Use this between InjectPress and
// InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a left-button release at the given coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthRelease, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press and release with the given modifiers held.
func (s *Scene) InjectKey(key ebiten.Key, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthKey, key: key, mods: mods})
}

// InjectChar queues one typed character per rune of text.
func (s *Scene) InjectChar(text string) {
	for _, r := range text {
		s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthChar, char: r})
	}
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int { return len(s.injectQueue) }

// processInjectedInput pops one event from the inject queue and feeds it to
// the dispatcher. Returns true if an event was consumed (real input should
// be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	d := s.dispatcher
	switch evt.kind {
	case synthPress:
		d.PointerMove(evt.x, evt.y)
		d.PointerDown(evt.x, evt.y, evt.button)
	case synthMove:
		d.PointerMove(evt.x, evt.y)
	case synthRelease:
		d.PointerMove(evt.x, evt.y)
		d.PointerUp(evt.x, evt.y, evt.button)
	case synthKey:
		prev := d.Modifiers()
		d.SetModifiers(evt.mods)
		d.KeyDown(evt.key)
		d.KeyUp(evt.key)
		d.SetModifiers(prev)
	case synthChar:
		d.Char(evt.char)
	}
	return true
}
