package canopy

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- ID counter ---

// nodeIDCounter is a plain counter; canopy is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node kinds; widget behavior is composed in with SetBehavior instead of
// subtyping.
//
// Geometry is private so that setters can keep cached world transforms and
// anchored children consistent. Flags without side effects are plain fields.
type Node struct {
	// Identity
	ID      uint32
	name    string
	typeTag string

	// Hierarchy
	parent         *Node
	children       []*Node
	sortedChildren []*Node // reused buffer, children in ascending z-order
	childrenSorted bool
	updateBuf      []*Node

	// Geometry (local)
	rect     Rect
	maxSize  Vec2
	pivot    Vec2
	pivotSet bool
	scale    Vec2
	angle    float64 // degrees
	color    Color
	zOrder   int

	// Cached world transform, recomputed lazily.
	worldTransform [6]float64
	transformDirty bool

	// Appearance
	Visible         bool
	InheritAlpha    bool
	Disabled        bool
	DimWhenDisabled bool

	// Layout
	Anchors      Anchor
	retainAspect bool
	anchorAspect float64

	// Interaction
	HitTest    HitTestMode
	HitShape   HitShape
	FocusIndex int // -1 = not focusable

	// Metadata
	UserData any
	EntityID uint32

	// Animation: per property kind, head is the dynamic animator and the rest
	// are queued behind it.
	animators [numPropertyKinds][]*Animator
	animSeq   uint32

	// Capability component and its resolved interfaces.
	behavior        any
	pointerBehavior PointerBehavior
	keyBehavior     KeyBehavior
	charBehavior    CharBehavior
	updateBehavior  UpdateBehavior
	scrollHost      *Node // nearest ancestor whose behavior is a ScrollHost

	// Per-node callbacks (nil by default; zero cost when unused).
	// Handlers returning bool report whether they consumed the event.
	OnPointerDown  func(PointerContext) bool
	OnPointerUp    func(PointerContext) bool
	OnPointerMove  func(PointerContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnScroll       func(ScrollContext)
	OnClick        func(ClickContext)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)
	OnPinch        func(PinchContext)
	OnKeyDown      func(KeyContext) bool
	OnKeyUp        func(KeyContext) bool
	OnChar         func(CharContext) bool
	OnButtonDown   func(ButtonContext) bool
	OnButtonUp     func(ButtonContext) bool
	OnFocus        func(*Node)
	OnBlur         func(*Node)
	OnUpdate       func(dt float64)
	OnDraw         func(dst *ebiten.Image, n *Node)

	// Internal
	registry *Registry
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.scale = Vec2{1, 1}
	n.color = ColorWhite
	n.Visible = true
	n.InheritAlpha = true
	n.FocusIndex = -1
	n.transformDirty = true
	n.childrenSorted = true
}

// NewNode creates a detached node that belongs to no registry. Use
// Registry.NewNode for nodes that need name lookup.
func NewNode(name string) *Node {
	n := &Node{name: name}
	nodeDefaults(n)
	return n
}

// NewNodeWithRect creates a detached node with the given local rectangle.
func NewNodeWithRect(name string, r Rect) *Node {
	n := NewNode(name)
	n.rect = sanitizeRect(r)
	return n
}

// Name returns the node's name. Names are immutable.
func (n *Node) Name() string { return n.name }

// Type returns the type tag the node was created with by a registry factory,
// or "" for plain nodes.
func (n *Node) Type() string { return n.typeTag }

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Registry returns the registry the node is registered in, or nil.
func (n *Node) Registry() *Registry { return n.registry }

// Root walks up the parent chain and returns the topmost ancestor.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%q #%d)", n.name, n.ID)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
//
// Reparenting is strict: if child already belongs to a different parent,
// ErrReparentConflict is returned and nothing changes. Use MoveTo to move a
// node between parents. Adding a node that is already a child of n is a no-op.
func (n *Node) AddChild(child *Node) error {
	return n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index of the insertion-ordered child
// list. Same reparenting and cycle rules as AddChild.
func (n *Node) AddChildAt(child *Node, index int) error {
	if err := n.checkAttach(child); err != nil {
		return err
	}
	if child.parent == n {
		return nil
	}
	if index < 0 || index > len(n.children) {
		return fmt.Errorf("add %q to %q at %d: %w", child.name, n.name, index, ErrIndexOutOfRange)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.childrenSorted = false
	markSubtreeDirty(child)
	refreshScrollHost(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	return nil
}

func (n *Node) checkAttach(child *Node) error {
	if child == nil {
		return fmt.Errorf("add child to %q: %w", n.name, ErrNilNode)
	}
	if n.disposed || child.disposed {
		return fmt.Errorf("add %q to %q: %w", child.name, n.name, ErrDisposed)
	}
	if isAncestor(child, n) {
		return fmt.Errorf("add %q to %q: %w", child.name, n.name, ErrCycle)
	}
	if child.parent != nil && child.parent != n {
		return fmt.Errorf("add %q to %q (current parent %q): %w",
			child.name, n.name, child.parent.name, ErrReparentConflict)
	}
	return nil
}

// MoveTo detaches n from its current parent, if any, and appends it to
// newParent. It is the explicit form of reparenting.
func (n *Node) MoveTo(newParent *Node) error {
	if newParent == nil {
		return fmt.Errorf("move %q: %w", n.name, ErrNilNode)
	}
	if n.parent == newParent {
		return nil
	}
	if isAncestor(n, newParent) {
		return fmt.Errorf("move %q to %q: %w", n.name, newParent.name, ErrCycle)
	}
	if newParent.disposed || n.disposed {
		return fmt.Errorf("move %q to %q: %w", n.name, newParent.name, ErrDisposed)
	}
	n.RemoveFromParent()
	return newParent.AddChild(n)
}

// RemoveChild detaches child from this node. The child is not disposed.
// Returns ErrUnknownChild if child is not a child of n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil {
		return fmt.Errorf("remove child from %q: %w", n.name, ErrNilNode)
	}
	if child.parent != n {
		return fmt.Errorf("remove %q from %q: %w", child.name, n.name, ErrUnknownChild)
	}
	n.removeChildByPtr(child)
	n.detach(child)
	return nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("remove child %d from %q: %w", index, n.name, ErrIndexOutOfRange)
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	n.detach(child)
	return child, nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.removeChildByPtr(n)
	p.detach(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.parent = nil
		markSubtreeDirty(child)
		refreshScrollHost(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenSorted = false
}

func (n *Node) detach(child *Node) {
	child.parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
	refreshScrollHost(child)
}

// Children returns the children in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// SortedChildren returns the children in draw order: ascending z-order, ties
// broken by insertion order. Hit testing walks this slice backwards. The
// returned slice MUST NOT be mutated and is only valid until the next tree
// change.
func (n *Node) SortedChildren() []*Node {
	if !n.childrenSorted {
		n.rebuildSortedChildren()
	}
	return n.sortedChildren
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given insertion index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FindChild returns the direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Find resolves a slash-separated path of child names relative to n,
// e.g. "panel/ok".
func (n *Node) Find(path string) (*Node, error) {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next := cur.FindChild(part)
		if next == nil {
			return nil, fmt.Errorf("find %q under %q: %w", path, n.name, ErrNodeNotFound)
		}
		cur = next
	}
	return cur, nil
}

// --- Z-order ---

// ZOrder returns the node's z-order among its siblings.
func (n *Node) ZOrder() int { return n.zOrder }

// SetZOrder sets the node's z-order and schedules a stable re-sort of the
// parent's children.
func (n *Node) SetZOrder(z int) {
	if n.zOrder == z {
		return
	}
	n.zOrder = z
	if n.parent != nil {
		n.parent.childrenSorted = false
	}
}

// rebuildSortedChildren copies children into sortedChildren and applies a
// stable insertion sort by z-order. Child lists are short and usually almost
// sorted, which is insertion sort's best case.
func (n *Node) rebuildSortedChildren() {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	clear(n.sortedChildren[nc:cap(n.sortedChildren)])
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].zOrder > key.zOrder {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Update ---

// Update advances the node by dt seconds: the OnUpdate hook, the behavior's
// Update, every attached animator, then each child recursively.
func (n *Node) Update(dt float64) {
	if n.disposed {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	if n.updateBehavior != nil {
		n.updateBehavior.Update(n, dt)
	}
	if n.disposed {
		return
	}
	n.updateAnimators(dt)

	if len(n.children) == 0 {
		return
	}
	// Callbacks may add or remove siblings; iterate a snapshot.
	n.updateBuf = append(n.updateBuf[:0], n.children...)
	for _, child := range n.updateBuf {
		if child.parent == n {
			child.Update(dt)
		}
	}
	clear(n.updateBuf)
}

// --- Disposal ---

// Dispose removes this node from its parent, stops its animators, removes it
// from its registry and recursively disposes all descendants depth-first.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func (n *Node) dispose() {
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.StopAllAnimations()
	if n.registry != nil {
		n.registry.unregister(n)
	}
	n.disposed = true
	n.ID = 0
	n.children = nil
	n.sortedChildren = nil
	n.updateBuf = nil
	n.parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.behavior = nil
	n.pointerBehavior = nil
	n.keyBehavior = nil
	n.charBehavior = nil
	n.updateBehavior = nil
	n.scrollHost = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnScroll = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnPinch = nil
	n.OnKeyDown = nil
	n.OnKeyUp = nil
	n.OnChar = nil
	n.OnButtonDown = nil
	n.OnButtonUp = nil
	n.OnFocus = nil
	n.OnBlur = nil
	n.OnUpdate = nil
	n.OnDraw = nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
// A dirty node always has dirty descendants, so an already dirty node ends
// the walk.
func markSubtreeDirty(node *Node) {
	if node.transformDirty {
		return
	}
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
