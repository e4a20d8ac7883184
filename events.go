package canopy

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Event contexts ---

// PointerContext carries pointer event data passed to pointer callbacks.
type PointerContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
	// Inside reports whether the point lies inside Node. Broadcast events
	// (move) reach nodes the pointer is not over.
	Inside bool
}

// ScrollContext carries wheel event data.
type ScrollContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	DeltaX    float64
	DeltaY    float64
	Modifiers KeyModifiers
	Inside    bool
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// DragContext carries drag event data.
type DragContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// PinchContext carries pinch gesture data.
type PinchContext struct {
	CenterX, CenterY   float64
	Scale, ScaleDelta  float64
	Rotation, RotDelta float64
}

// KeyContext carries keyboard event data. Focused is true when the event is
// offered to the focused node ahead of the tree walk.
type KeyContext struct {
	Node      *Node
	Key       ebiten.Key
	Modifiers KeyModifiers
	Focused   bool
}

// CharContext carries a typed character.
type CharContext struct {
	Node      *Node
	Char      rune
	Modifiers KeyModifiers
	Focused   bool
}

// ButtonContext carries gamepad button data for standard-layout gamepads.
type ButtonContext struct {
	Node      *Node
	Gamepad   ebiten.GamepadID
	Button    ebiten.StandardGamepadButton
	Modifiers KeyModifiers
	Focused   bool
}

// --- ECS bridge ---

// EntityStore is the interface for optional ECS integration.
// When set on a Dispatcher, interaction events of nodes with a non-zero
// EntityID are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is the flat record of one routed event. It is what
// observers and the EntityStore receive.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
	// Pinch fields (valid for EventPinch)
	Scale      float64
	ScaleDelta float64
	Rotation   float64
	RotDelta   float64
	// Scroll fields (valid for EventScroll)
	ScrollX float64
	ScrollY float64
	// Keyboard and gamepad fields
	Key           ebiten.Key
	Char          rune
	Gamepad       ebiten.GamepadID
	GamepadButton ebiten.StandardGamepadButton
}

// --- Observers ---

type observer struct {
	id uint32
	fn func(*Node, InteractionEvent)
}

type observerRegistry struct {
	byType [numEventTypes][]observer
	nextID uint32
}

// CallbackHandle allows removing a registered observer.
type CallbackHandle struct {
	id    uint32
	reg   *observerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.event) >= numEventTypes {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = observer{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// add registers fn for t. An out-of-range t registers nothing and returns a
// handle whose Remove is a no-op.
func (r *observerRegistry) add(t EventType, fn func(*Node, InteractionEvent)) CallbackHandle {
	if int(t) >= numEventTypes || fn == nil {
		return CallbackHandle{}
	}
	r.nextID++
	r.byType[t] = append(r.byType[t], observer{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: t}
}

// notify calls the observers registered when it starts; observers added or
// removed by a callback take effect from the next event.
func (r *observerRegistry) notify(n *Node, ev InteractionEvent) {
	if int(ev.Type) >= numEventTypes || len(r.byType[ev.Type]) == 0 {
		return
	}
	for _, o := range slices.Clone(r.byType[ev.Type]) {
		o.fn(n, ev)
	}
}
