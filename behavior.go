package canopy

import "github.com/hajimehoshi/ebiten/v2"

// A behavior is a capability component attached to a node with SetBehavior.
// The node checks it once for the optional interfaces below and caches the
// result, so widget kinds share behavior without subtyping Node.

// PointerBehavior receives pointer events routed to its node. Down and Up
// report whether the event was consumed.
type PointerBehavior interface {
	HandlePointerDown(n *Node, ctx PointerContext) bool
	HandlePointerUp(n *Node, ctx PointerContext) bool
	HandlePointerMove(n *Node, ctx PointerContext)
}

// KeyBehavior receives keyboard events routed to its node.
type KeyBehavior interface {
	HandleKeyDown(n *Node, ctx KeyContext) bool
	HandleKeyUp(n *Node, ctx KeyContext) bool
}

// CharBehavior receives typed characters routed to its node.
type CharBehavior interface {
	HandleChar(n *Node, ctx CharContext) bool
}

// UpdateBehavior is advanced once per frame before the node's animators.
type UpdateBehavior interface {
	Update(n *Node, dt float64)
}

// ScrollHost is implemented by behaviors that scroll their node's content.
// Descendants find their nearest host through Node.ScrollHost.
type ScrollHost interface {
	// ScrollBy scrolls host's content by (dx, dy) wheel units and reports
	// whether anything moved.
	ScrollBy(host *Node, dx, dy float64) bool
}

// Behavior returns the node's capability component, or nil.
func (n *Node) Behavior() any { return n.behavior }

// SetBehavior attaches a capability component. Pass nil to remove it.
func (n *Node) SetBehavior(b any) {
	n.behavior = b
	n.pointerBehavior, _ = b.(PointerBehavior)
	n.keyBehavior, _ = b.(KeyBehavior)
	n.charBehavior, _ = b.(CharBehavior)
	n.updateBehavior, _ = b.(UpdateBehavior)
	// Descendants may have gained or lost their nearest scroll host.
	for _, c := range n.children {
		refreshScrollHost(c)
	}
}

// ScrollHost returns the nearest ancestor whose behavior implements
// ScrollHost, or nil. The result is resolved when the node is attached and
// kept current as the tree changes.
func (n *Node) ScrollHost() *Node { return n.scrollHost }

// refreshScrollHost recomputes the cached scroll host for n's subtree.
func refreshScrollHost(n *Node) {
	var host *Node
	for p := n.parent; p != nil; p = p.parent {
		if _, ok := p.behavior.(ScrollHost); ok {
			host = p
			break
		}
	}
	setScrollHost(n, host)
}

func setScrollHost(n *Node, host *Node) {
	n.scrollHost = host
	if _, ok := n.behavior.(ScrollHost); ok {
		host = n
	}
	for _, c := range n.children {
		setScrollHost(c, host)
	}
}

// scrollTarget returns the node whose ScrollHost should receive a wheel
// event over n: n itself when it is a host, else its nearest host.
func scrollTarget(n *Node) (*Node, ScrollHost) {
	if n == nil {
		return nil, nil
	}
	if h, ok := n.behavior.(ScrollHost); ok {
		return n, h
	}
	if n.scrollHost != nil {
		h, _ := n.scrollHost.behavior.(ScrollHost)
		return n.scrollHost, h
	}
	return nil, nil
}

// --- ButtonBehavior ---

// ButtonBehavior is the shared press/release/activate logic of button-like
// widgets. It consumes the pointer down that lands on its node and fires
// OnActivate when the matching release happens inside the node. When its
// node has focus, Enter and Space activate it too.
type ButtonBehavior struct {
	OnActivate func(n *Node)

	pressed   bool
	hovered   bool
	pointerID int
}

// Pressed reports whether a pointer is held down on the button.
func (b *ButtonBehavior) Pressed() bool { return b.pressed }

// Hovered reports whether the pointer is over the button.
func (b *ButtonBehavior) Hovered() bool { return b.hovered }

// HandlePointerDown presses the button on a left-button down.
func (b *ButtonBehavior) HandlePointerDown(n *Node, ctx PointerContext) bool {
	if ctx.Button != MouseButtonLeft {
		return false
	}
	b.pressed = true
	b.pointerID = ctx.PointerID
	return true
}

// HandlePointerUp releases a press by the same pointer, activating the
// button if the release is inside it.
func (b *ButtonBehavior) HandlePointerUp(n *Node, ctx PointerContext) bool {
	if !b.pressed || ctx.PointerID != b.pointerID {
		return false
	}
	b.pressed = false
	if ctx.Inside && b.OnActivate != nil {
		b.OnActivate(n)
	}
	return true
}

// HandlePointerMove tracks hover.
func (b *ButtonBehavior) HandlePointerMove(n *Node, ctx PointerContext) {
	b.hovered = ctx.Inside
}

// HandleKeyDown activates the focused button on Enter or Space.
func (b *ButtonBehavior) HandleKeyDown(n *Node, ctx KeyContext) bool {
	if !ctx.Focused {
		return false
	}
	switch ctx.Key {
	case ebiten.KeyEnter, ebiten.KeySpace:
		if b.OnActivate != nil {
			b.OnActivate(n)
		}
		return true
	}
	return false
}

// HandleKeyUp never consumes.
func (b *ButtonBehavior) HandleKeyUp(n *Node, ctx KeyContext) bool {
	return false
}

// --- ScrollArea ---

// ScrollArea is a ScrollHost that pans its node's children. Content is the
// size of the scrollable content; Step converts wheel units to pixels.
type ScrollArea struct {
	Content Vec2
	Step    float64

	offset Vec2
}

// Offset returns the current scroll offset, from (0,0) up to Content minus
// the node size.
func (s *ScrollArea) Offset() Vec2 { return s.offset }

// ScrollBy moves the offset by the wheel delta times Step, clamped to the
// content bounds, and shifts host's children to match. Returns false if
// the offset did not change.
func (s *ScrollArea) ScrollBy(host *Node, dx, dy float64) bool {
	step := s.Step
	if step == 0 {
		step = 1
	}
	maxX := max(s.Content.X-host.rect.Width, 0)
	maxY := max(s.Content.Y-host.rect.Height, 0)
	// A positive wheel delta scrolls towards the start of the content.
	next := Vec2{
		X: min(max(s.offset.X-dx*step, 0), maxX),
		Y: min(max(s.offset.Y-dy*step, 0), maxY),
	}
	mx, my := next.X-s.offset.X, next.Y-s.offset.Y
	if mx == 0 && my == 0 {
		return false
	}
	s.offset = next
	for _, c := range host.children {
		c.SetPosition(c.rect.X-mx, c.rect.Y-my)
	}
	return true
}
