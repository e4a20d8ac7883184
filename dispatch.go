package canopy

import (
	"cmp"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	consumer *Node // node that consumed the press; offered the release first
	hitNode  *Node // topmost node under the press; target of click and drag
	hover    *Node // last node the pointer was over (for enter/leave)
	dragging bool
	button   MouseButton // button captured at press time
}

type pinchState struct {
	active       bool
	pointer0     int
	pointer1     int
	initialDist  float64
	initialAngle float64
	prevDist     float64
	prevAngle    float64
}

// Dispatcher routes input events through a node tree.
//
// Consumable events (pointer down/up, keys, characters, gamepad buttons) are
// offered depth-first, children from highest z-order to lowest before their
// parent; the first node that reports consumption ends the walk and the
// entry point returns true. Pointer events are only offered to nodes that
// contain the point. Move and scroll events are broadcast to every eligible
// node with PointerContext.Inside / ScrollContext.Inside set accordingly.
//
// On top of routing, the dispatcher tracks hover enter/leave, clicks,
// drags, two-finger pinches, pointer capture and keyboard focus.
type Dispatcher struct {
	root *Node

	pointers     [maxPointers]pointerState
	captured     [maxPointers]*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	pinch        pinchState
	dragDeadZone float64
	modifiers    KeyModifiers

	focus    *Node
	tabFocus bool
	focusBuf []*Node

	observers observerRegistry
	store     EntityStore
}

// NewDispatcher creates a dispatcher routing events through root's tree.
func NewDispatcher(root *Node) *Dispatcher {
	return &Dispatcher{root: root, dragDeadZone: defaultDragDeadZone}
}

// Root returns the node events are routed from.
func (d *Dispatcher) Root() *Node { return d.root }

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (d *Dispatcher) SetDragDeadZone(pixels float64) { d.dragDeadZone = pixels }

// SetTabFocus enables Tab / Shift+Tab focus traversal for key presses that
// no node consumes.
func (d *Dispatcher) SetTabFocus(enabled bool) { d.tabFocus = enabled }

// SetModifiers sets the modifier state reported in subsequent events.
func (d *Dispatcher) SetModifiers(m KeyModifiers) { d.modifiers = m }

// Modifiers returns the current modifier state.
func (d *Dispatcher) Modifiers() KeyModifiers { return d.modifiers }

// SetEntityStore sets the optional ECS bridge.
func (d *Dispatcher) SetEntityStore(store EntityStore) { d.store = store }

// OnEvent registers an observer called for every event of type t after it
// has been routed. n is the node the event ended at, or nil. An unknown t
// registers nothing.
func (d *Dispatcher) OnEvent(t EventType, fn func(n *Node, ev InteractionEvent)) CallbackHandle {
	return d.observers.add(t, fn)
}

// CapturePointer routes all events for pointerID to node until the pointer
// is released or ReleasePointer is called.
func (d *Dispatcher) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		d.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (d *Dispatcher) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		d.captured[pointerID] = nil
	}
}

// Hovered returns the node pointerID is currently over, or nil.
func (d *Dispatcher) Hovered(pointerID int) *Node {
	if pointerID < 0 || pointerID >= maxPointers {
		return nil
	}
	return alive(d.pointers[pointerID].hover)
}

func (d *Dispatcher) capturedNode(pointerID int) *Node {
	c := d.captured[pointerID]
	if c != nil && c.disposed {
		d.captured[pointerID] = nil
		return nil
	}
	return c
}

// alive returns n, or nil when n has been disposed.
func alive(n *Node) *Node {
	if n == nil || n.disposed {
		return nil
	}
	return n
}

// --- Pointer entry points ---

// PointerDown routes a mouse press at the world point (x, y). Returns true
// if a node consumed it.
func (d *Dispatcher) PointerDown(x, y float64, button MouseButton) bool {
	return d.pointerDown(0, x, y, button)
}

// PointerUp routes a mouse release at (x, y).
func (d *Dispatcher) PointerUp(x, y float64, button MouseButton) bool {
	if !d.pointers[0].down {
		d.pointers[0].button = button
	}
	return d.pointerUp(0, x, y)
}

// PointerMove broadcasts a mouse move to (x, y) and updates hover and drag
// state.
func (d *Dispatcher) PointerMove(x, y float64) {
	d.pointerMove(0, x, y)
}

func (d *Dispatcher) pointerCtx(n *Node, pointerID int, wx, wy float64, button MouseButton) PointerContext {
	lx, ly, ok := n.worldToLocal(wx, wy)
	return PointerContext{
		Node: n, EntityID: n.EntityID, UserData: n.UserData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Modifiers: d.modifiers,
		Inside: ok && n.IsPointInside(lx, ly),
	}
}

func deliverPointerDown(n *Node, ctx PointerContext) bool {
	if n.OnPointerDown != nil && n.OnPointerDown(ctx) {
		return true
	}
	return n.pointerBehavior != nil && n.pointerBehavior.HandlePointerDown(n, ctx)
}

func deliverPointerUp(n *Node, ctx PointerContext) bool {
	if n.OnPointerUp != nil && n.OnPointerUp(ctx) {
		return true
	}
	return n.pointerBehavior != nil && n.pointerBehavior.HandlePointerUp(n, ctx)
}

func deliverPointerMove(n *Node, ctx PointerContext) {
	if n.OnPointerMove != nil {
		n.OnPointerMove(ctx)
	}
	if n.pointerBehavior != nil {
		n.pointerBehavior.HandlePointerMove(n, ctx)
	}
}

func (d *Dispatcher) pointerDown(pointerID int, wx, wy float64, button MouseButton) bool {
	ps := &d.pointers[pointerID]
	d.updateHover(pointerID, wx, wy, button)

	ps.down = true
	ps.button = button
	ps.startX, ps.startY = wx, wy
	ps.lastX, ps.lastY = wx, wy
	ps.dragging = false

	var consumer *Node
	if c := d.capturedNode(pointerID); c != nil {
		if deliverPointerDown(c, d.pointerCtx(c, pointerID, wx, wy, button)) {
			consumer = c
		}
	} else {
		consumer = route(d.root, func(n *Node) bool {
			if n.OnPointerDown == nil && n.pointerBehavior == nil {
				return false
			}
			ctx := d.pointerCtx(n, pointerID, wx, wy, button)
			return ctx.Inside && deliverPointerDown(n, ctx)
		})
	}
	ps.consumer = consumer
	ps.hitNode = consumer
	if ps.hitNode == nil {
		ps.hitNode = d.targetAt(pointerID, wx, wy)
	}

	d.emit(d.pointerEvent(EventPointerDown, ps.hitNode, pointerID, wx, wy, button))
	if consumer != nil && consumer.FocusIndex >= 0 {
		d.SetFocus(consumer)
	}
	return consumer != nil
}

func (d *Dispatcher) pointerUp(pointerID int, wx, wy float64) bool {
	ps := &d.pointers[pointerID]
	button := ps.button

	var consumer *Node
	if c := d.capturedNode(pointerID); c != nil {
		if deliverPointerUp(c, d.pointerCtx(c, pointerID, wx, wy, button)) {
			consumer = c
		}
	} else {
		pressed := alive(ps.consumer)
		if pressed != nil && deliverPointerUp(pressed, d.pointerCtx(pressed, pointerID, wx, wy, button)) {
			consumer = pressed
		} else {
			consumer = route(d.root, func(n *Node) bool {
				if n == pressed || (n.OnPointerUp == nil && n.pointerBehavior == nil) {
					return false
				}
				ctx := d.pointerCtx(n, pointerID, wx, wy, button)
				return ctx.Inside && deliverPointerUp(n, ctx)
			})
		}
	}

	target := consumer
	if target == nil {
		target = d.targetAt(pointerID, wx, wy)
	}
	d.emit(d.pointerEvent(EventPointerUp, target, pointerID, wx, wy, button))

	if hit := alive(ps.hitNode); hit != nil && ps.down {
		if ps.dragging {
			d.fireDrag(EventDragEnd, hit, pointerID, wx, wy, wx-ps.lastX, wy-ps.lastY)
		} else if hit.ContainsPoint(wx, wy) {
			d.fireClick(hit, pointerID, wx, wy, button)
		}
	}

	// Auto-release capture.
	d.captured[pointerID] = nil
	ps.down = false
	ps.consumer = nil
	ps.hitNode = nil
	ps.dragging = false
	ps.lastX, ps.lastY = wx, wy
	d.updateHover(pointerID, wx, wy, button)
	return consumer != nil
}

func (d *Dispatcher) pointerMove(pointerID int, wx, wy float64) {
	ps := &d.pointers[pointerID]
	button := ps.button

	if ps.down && (wx != ps.lastX || wy != ps.lastY) && !d.inPinch(pointerID) {
		if hit := alive(ps.hitNode); hit != nil {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > d.dragDeadZone {
					ps.dragging = true
					d.fireDrag(EventDragStart, hit, pointerID, wx, wy, wx-ps.startX, wy-ps.startY)
				}
			}
			if ps.dragging {
				d.fireDrag(EventDrag, hit, pointerID, wx, wy, wx-ps.lastX, wy-ps.lastY)
			}
		}
	}
	ps.lastX, ps.lastY = wx, wy

	if c := d.capturedNode(pointerID); c != nil {
		deliverPointerMove(c, d.pointerCtx(c, pointerID, wx, wy, button))
	} else {
		broadcast(d.root, func(n *Node) {
			if n.OnPointerMove == nil && n.pointerBehavior == nil {
				return
			}
			deliverPointerMove(n, d.pointerCtx(n, pointerID, wx, wy, button))
		})
	}
	hover := d.updateHover(pointerID, wx, wy, button)
	d.emit(d.pointerEvent(EventPointerMove, hover, pointerID, wx, wy, button))
}

// targetAt returns the captured node for pointerID, or the topmost node under
// the point.
func (d *Dispatcher) targetAt(pointerID int, wx, wy float64) *Node {
	if c := d.capturedNode(pointerID); c != nil {
		return c
	}
	return d.root.ChildUnderPoint(wx, wy)
}

// updateHover fires leave/enter when the node under the pointer changes and
// returns the current one.
func (d *Dispatcher) updateHover(pointerID int, wx, wy float64, button MouseButton) *Node {
	ps := &d.pointers[pointerID]
	target := d.targetAt(pointerID, wx, wy)
	prev := ps.hover
	if target == prev {
		return target
	}
	ps.hover = target
	if prev = alive(prev); prev != nil {
		ctx := d.pointerCtx(prev, pointerID, wx, wy, button)
		if prev.OnPointerLeave != nil {
			prev.OnPointerLeave(ctx)
		}
		d.emit(d.pointerEvent(EventPointerLeave, prev, pointerID, wx, wy, button))
	}
	if target != nil {
		ctx := d.pointerCtx(target, pointerID, wx, wy, button)
		if target.OnPointerEnter != nil {
			target.OnPointerEnter(ctx)
		}
		d.emit(d.pointerEvent(EventPointerEnter, target, pointerID, wx, wy, button))
	}
	return target
}

func (d *Dispatcher) fireClick(n *Node, pointerID int, wx, wy float64, button MouseButton) {
	lx, ly := n.WorldToLocal(wx, wy)
	ctx := ClickContext{
		Node: n, EntityID: n.EntityID, UserData: n.UserData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Modifiers: d.modifiers,
	}
	if n.OnClick != nil {
		n.OnClick(ctx)
	}
	d.emit(d.pointerEvent(EventClick, n, pointerID, wx, wy, button))
}

func (d *Dispatcher) fireDrag(t EventType, n *Node, pointerID int, wx, wy, deltaX, deltaY float64) {
	ps := &d.pointers[pointerID]
	lx, ly := n.WorldToLocal(wx, wy)
	ctx := DragContext{
		Node: n, EntityID: n.EntityID, UserData: n.UserData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		StartX: ps.startX, StartY: ps.startY, DeltaX: deltaX, DeltaY: deltaY,
		Button: ps.button, PointerID: pointerID, Modifiers: d.modifiers,
	}
	var fn func(DragContext)
	switch t {
	case EventDragStart:
		fn = n.OnDragStart
	case EventDrag:
		fn = n.OnDrag
	case EventDragEnd:
		fn = n.OnDragEnd
	}
	if fn != nil {
		fn(ctx)
	}
	ev, _ := d.pointerEvent(t, n, pointerID, wx, wy, ps.button)
	ev.StartX, ev.StartY = ps.startX, ps.startY
	ev.DeltaX, ev.DeltaY = deltaX, deltaY
	d.emit(ev, n)
}

// --- Scroll ---

// Scroll broadcasts a wheel event at (x, y) to every eligible node's
// OnScroll, then scrolls the nearest ScrollHost of the node under the point.
// A Disabled scroll host does not move. Returns true if a scroll host moved.
func (d *Dispatcher) Scroll(x, y, dx, dy float64) bool {
	broadcast(d.root, func(n *Node) {
		if n.OnScroll == nil {
			return
		}
		lx, ly, ok := n.worldToLocal(x, y)
		n.OnScroll(ScrollContext{
			Node: n, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
			DeltaX: dx, DeltaY: dy, Modifiers: d.modifiers,
			Inside: ok && n.IsPointInside(lx, ly),
		})
	})
	target := d.root.ChildUnderPoint(x, y)
	moved := false
	if host, h := scrollTarget(target); h != nil && !host.Disabled {
		moved = h.ScrollBy(host, dx, dy)
	}
	ev, _ := d.pointerEvent(EventScroll, target, 0, x, y, MouseButtonLeft)
	ev.ScrollX, ev.ScrollY = dx, dy
	d.emit(ev, target)
	return moved
}

// --- Keyboard, characters and gamepad buttons ---

// routeFocused offers an event to the focused node first, then walks the
// tree skipping it.
func (d *Dispatcher) routeFocused(offer func(n *Node, focused bool) bool) *Node {
	f := d.Focused()
	if f != nil && offer(f, true) {
		return f
	}
	return route(d.root, func(n *Node) bool {
		return n != f && offer(n, false)
	})
}

// KeyDown routes a key press. With tab focus enabled, an unconsumed Tab
// (Shift+Tab) moves focus forward (backward) and counts as consumed.
func (d *Dispatcher) KeyDown(key ebiten.Key) bool {
	consumer := d.routeFocused(func(n *Node, focused bool) bool {
		ctx := KeyContext{Node: n, Key: key, Modifiers: d.modifiers, Focused: focused}
		if n.OnKeyDown != nil && n.OnKeyDown(ctx) {
			return true
		}
		return n.keyBehavior != nil && n.keyBehavior.HandleKeyDown(n, ctx)
	})
	d.emit(d.keyEvent(EventKeyDown, consumer, key))
	if consumer == nil && d.tabFocus && key == ebiten.KeyTab {
		if d.modifiers&ModShift != 0 {
			d.FocusPrev()
		} else {
			d.FocusNext()
		}
		return true
	}
	return consumer != nil
}

// KeyUp routes a key release.
func (d *Dispatcher) KeyUp(key ebiten.Key) bool {
	consumer := d.routeFocused(func(n *Node, focused bool) bool {
		ctx := KeyContext{Node: n, Key: key, Modifiers: d.modifiers, Focused: focused}
		if n.OnKeyUp != nil && n.OnKeyUp(ctx) {
			return true
		}
		return n.keyBehavior != nil && n.keyBehavior.HandleKeyUp(n, ctx)
	})
	d.emit(d.keyEvent(EventKeyUp, consumer, key))
	return consumer != nil
}

// Char routes a typed character.
func (d *Dispatcher) Char(r rune) bool {
	consumer := d.routeFocused(func(n *Node, focused bool) bool {
		ctx := CharContext{Node: n, Char: r, Modifiers: d.modifiers, Focused: focused}
		if n.OnChar != nil && n.OnChar(ctx) {
			return true
		}
		return n.charBehavior != nil && n.charBehavior.HandleChar(n, ctx)
	})
	ev, _ := d.keyEvent(EventChar, consumer, 0)
	ev.Char = r
	d.emit(ev, consumer)
	return consumer != nil
}

// ButtonDown routes a gamepad button press.
func (d *Dispatcher) ButtonDown(id ebiten.GamepadID, button ebiten.StandardGamepadButton) bool {
	consumer := d.routeFocused(func(n *Node, focused bool) bool {
		return n.OnButtonDown != nil && n.OnButtonDown(ButtonContext{
			Node: n, Gamepad: id, Button: button, Modifiers: d.modifiers, Focused: focused,
		})
	})
	d.emit(d.buttonEvent(EventButtonDown, consumer, id, button))
	return consumer != nil
}

// ButtonUp routes a gamepad button release.
func (d *Dispatcher) ButtonUp(id ebiten.GamepadID, button ebiten.StandardGamepadButton) bool {
	consumer := d.routeFocused(func(n *Node, focused bool) bool {
		return n.OnButtonUp != nil && n.OnButtonUp(ButtonContext{
			Node: n, Gamepad: id, Button: button, Modifiers: d.modifiers, Focused: focused,
		})
	})
	d.emit(d.buttonEvent(EventButtonUp, consumer, id, button))
	return consumer != nil
}

// --- Focus ---

// Focused returns the node with keyboard focus, or nil. A focused node that
// was disposed, detached from the tree or made ineligible loses focus.
func (d *Dispatcher) Focused() *Node {
	if d.focus != nil && !d.canFocus(d.focus) {
		d.focus = nil
	}
	return d.focus
}

// canFocus reports whether n is focusable, attached to this tree, enabled
// and not inside an invisible or DisabledRecursive subtree.
func (d *Dispatcher) canFocus(n *Node) bool {
	if n.FocusIndex < 0 || n.disposed || n.Disabled {
		return false
	}
	for p := n; p != nil; p = p.parent {
		if !p.Visible || p.HitTest == HitTestDisabledRecursive {
			return false
		}
		if p == d.root {
			return true
		}
	}
	return false
}

// SetFocus moves keyboard focus to n, firing OnBlur on the previous holder
// and OnFocus on n. Pass nil to clear focus. Returns false if n cannot take
// focus.
func (d *Dispatcher) SetFocus(n *Node) bool {
	if n != nil && !d.canFocus(n) {
		return false
	}
	prev := alive(d.focus)
	if prev == n {
		return true
	}
	d.focus = n
	if prev != nil {
		if prev.OnBlur != nil {
			prev.OnBlur(prev)
		}
		d.emit(InteractionEvent{Type: EventBlur}, prev)
	}
	if n != nil {
		if n.OnFocus != nil {
			n.OnFocus(n)
		}
		d.emit(InteractionEvent{Type: EventFocus}, n)
	}
	return true
}

// FocusNext moves focus to the next focusable node ordered by FocusIndex
// (ties in tree order), wrapping around. Returns the new focus.
func (d *Dispatcher) FocusNext() *Node { return d.stepFocus(1) }

// FocusPrev moves focus to the previous focusable node, wrapping around.
func (d *Dispatcher) FocusPrev() *Node { return d.stepFocus(-1) }

func (d *Dispatcher) stepFocus(dir int) *Node {
	d.focusBuf = d.collectFocusable(d.root, d.focusBuf[:0])
	defer func() { clear(d.focusBuf) }()
	if len(d.focusBuf) == 0 {
		return nil
	}
	slices.SortStableFunc(d.focusBuf, func(a, b *Node) int {
		return cmp.Compare(a.FocusIndex, b.FocusIndex)
	})
	n := len(d.focusBuf)
	i := slices.Index(d.focusBuf, d.Focused())
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = (i + dir + n) % n
	}
	next := d.focusBuf[i]
	d.SetFocus(next)
	return next
}

func (d *Dispatcher) collectFocusable(n *Node, buf []*Node) []*Node {
	if !n.Visible || n.disposed || n.HitTest == HitTestDisabledRecursive {
		return buf
	}
	if n.FocusIndex >= 0 && !n.Disabled {
		buf = append(buf, n)
	}
	for _, c := range n.children {
		buf = d.collectFocusable(c, buf)
	}
	return buf
}

// --- Touch ---

// TouchDown routes the press of a touch point. Touches occupy pointer IDs
// 1-9; a tenth simultaneous touch is ignored.
func (d *Dispatcher) TouchDown(id ebiten.TouchID, x, y float64) bool {
	slot := d.touchSlot(id, true)
	if slot < 0 {
		return false
	}
	consumed := d.pointerDown(slot, x, y, MouseButtonLeft)
	d.detectPinch()
	return consumed
}

// TouchMove routes the movement of an active touch point.
func (d *Dispatcher) TouchMove(id ebiten.TouchID, x, y float64) {
	slot := d.touchSlot(id, false)
	if slot < 0 {
		return
	}
	d.pointerMove(slot, x, y)
	d.detectPinch()
}

// TouchUp routes the release of a touch point and frees its pointer ID.
func (d *Dispatcher) TouchUp(id ebiten.TouchID, x, y float64) bool {
	slot := d.touchSlot(id, false)
	if slot < 0 {
		return false
	}
	consumed := d.pointerUp(slot, x, y)
	d.touchUsed[slot] = false
	d.touchMap[slot] = 0
	d.detectPinch()
	return consumed
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). With alloc set
// a free slot is taken for an unknown ID. Returns -1 if none.
func (d *Dispatcher) touchSlot(id ebiten.TouchID, alloc bool) int {
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && d.touchMap[i] == id {
			return i
		}
	}
	if !alloc {
		return -1
	}
	for i := 1; i < maxPointers; i++ {
		if !d.touchUsed[i] {
			d.touchUsed[i] = true
			d.touchMap[i] = id
			return i
		}
	}
	return -1
}

func (d *Dispatcher) inPinch(pointerID int) bool {
	return d.pinch.active && (pointerID == d.pinch.pointer0 || pointerID == d.pinch.pointer1)
}

// detectPinch starts, updates or ends the pinch gesture when exactly two
// touch pointers are down.
func (d *Dispatcher) detectPinch() {
	p0, p1, count := -1, -1, 0
	for i := 1; i < maxPointers; i++ {
		if !d.pointers[i].down {
			continue
		}
		switch count {
		case 0:
			p0 = i
		case 1:
			p1 = i
		}
		count++
	}
	if count != 2 {
		d.pinch.active = false
		return
	}

	ps0 := &d.pointers[p0]
	ps1 := &d.pointers[p1]
	cx := (ps0.lastX + ps1.lastX) / 2
	cy := (ps0.lastY + ps1.lastY) / 2
	dx := ps1.lastX - ps0.lastX
	dy := ps1.lastY - ps0.lastY
	dist := math.Sqrt(dx*dx + dy*dy)
	angle := math.Atan2(dy, dx)

	// Drag is suppressed for the two pinch pointers.
	ps0.dragging = false
	ps1.dragging = false

	if !d.pinch.active || d.pinch.pointer0 != p0 || d.pinch.pointer1 != p1 {
		d.pinch = pinchState{
			active: true, pointer0: p0, pointer1: p1,
			initialDist: dist, initialAngle: angle,
			prevDist: dist, prevAngle: angle,
		}
		return
	}

	scale := 1.0
	if d.pinch.initialDist > 0 {
		scale = dist / d.pinch.initialDist
	}
	scaleDelta := 0.0
	if d.pinch.prevDist > 0 {
		scaleDelta = dist/d.pinch.prevDist - 1.0
	}
	ctx := PinchContext{
		CenterX: cx, CenterY: cy,
		Scale: scale, ScaleDelta: scaleDelta,
		Rotation: angle - d.pinch.initialAngle,
		RotDelta: angle - d.pinch.prevAngle,
	}
	d.pinch.prevDist = dist
	d.pinch.prevAngle = angle

	// Per-node OnPinch goes to the node under the first pinch pointer.
	node := alive(ps0.hitNode)
	if node != nil && node.OnPinch != nil {
		node.OnPinch(ctx)
	}
	d.emit(InteractionEvent{
		Type: EventPinch, GlobalX: cx, GlobalY: cy,
		Scale: ctx.Scale, ScaleDelta: ctx.ScaleDelta,
		Rotation: ctx.Rotation, RotDelta: ctx.RotDelta,
	}, node)
}

// --- Observers and ECS bridge ---

func (d *Dispatcher) pointerEvent(t EventType, n *Node, pointerID int, wx, wy float64, button MouseButton) (InteractionEvent, *Node) {
	ev := InteractionEvent{
		Type: t, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID,
	}
	if n != nil {
		ev.LocalX, ev.LocalY = n.WorldToLocal(wx, wy)
	}
	return ev, n
}

func (d *Dispatcher) keyEvent(t EventType, n *Node, key ebiten.Key) (InteractionEvent, *Node) {
	return InteractionEvent{Type: t, Key: key}, n
}

func (d *Dispatcher) buttonEvent(t EventType, n *Node, id ebiten.GamepadID, button ebiten.StandardGamepadButton) (InteractionEvent, *Node) {
	return InteractionEvent{Type: t, Gamepad: id, GamepadButton: button}, n
}

// emit notifies observers and forwards the event to the EntityStore. Events
// of nodes without an EntityID are not forwarded, except pinch, which is a
// global gesture.
func (d *Dispatcher) emit(ev InteractionEvent, n *Node) {
	ev.Modifiers = d.modifiers
	if n != nil {
		ev.EntityID = n.EntityID
	}
	d.observers.notify(n, ev)
	if d.store == nil {
		return
	}
	if ev.Type != EventPinch && ev.EntityID == 0 {
		return
	}
	d.store.EmitEvent(ev)
}
