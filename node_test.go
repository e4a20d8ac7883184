package canopy

import (
	"errors"
	"testing"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.Name() != "test" {
		t.Errorf("Name = %q", n.Name())
	}
	if n.ID == 0 {
		t.Error("ID should be assigned")
	}
	if !n.Visible || !n.InheritAlpha {
		t.Error("Visible and InheritAlpha should default to true")
	}
	if n.Scale() != (Vec2{1, 1}) {
		t.Errorf("Scale = %v, want (1,1)", n.Scale())
	}
	if n.Color() != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color())
	}
	if n.FocusIndex != -1 {
		t.Errorf("FocusIndex = %d, want -1", n.FocusIndex)
	}
	if n.HitTest != HitTestEnabled {
		t.Errorf("HitTest = %v, want enabled", n.HitTest)
	}
	if n.Parent() != nil || n.NumChildren() != 0 {
		t.Error("new node should be detached and empty")
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[uint32]bool)
	for range 100 {
		n := NewNode("n")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestAddChildBasic(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	if err := parent.AddChild(child); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should hold child")
	}
	if child.Root() != parent {
		t.Error("Root should be parent")
	}
}

func TestAddChildStrictReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	_ = a.AddChild(child)

	err := b.AddChild(child)
	if !errors.Is(err, ErrReparentConflict) {
		t.Fatalf("err = %v, want ErrReparentConflict", err)
	}
	if child.Parent() != a || a.NumChildren() != 1 || b.NumChildren() != 0 {
		t.Error("failed AddChild must not change the tree")
	}

	// Adding to the same parent again is a no-op.
	if err := a.AddChild(child); err != nil {
		t.Errorf("re-adding to same parent: %v", err)
	}
	if a.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", a.NumChildren())
	}
}

func TestMoveTo(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	_ = a.AddChild(child)

	if err := child.MoveTo(b); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != b || a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Error("MoveTo should detach from a and attach to b")
	}
	if err := child.MoveTo(nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("MoveTo(nil) err = %v, want ErrNilNode", err)
	}
}

func TestAddChildCycle(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	_ = a.AddChild(b)
	_ = b.AddChild(c)

	if err := c.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("c.AddChild(a) err = %v, want ErrCycle", err)
	}
	if err := a.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("a.AddChild(a) err = %v, want ErrCycle", err)
	}
	if err := a.MoveTo(c); !errors.Is(err, ErrCycle) {
		t.Errorf("a.MoveTo(c) err = %v, want ErrCycle", err)
	}
}

func TestAddChildNil(t *testing.T) {
	if err := NewNode("p").AddChild(nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("err = %v, want ErrNilNode", err)
	}
}

func TestAddChildDisposed(t *testing.T) {
	p := NewNode("p")
	c := NewNode("c")
	c.Dispose()
	if err := p.AddChild(c); !errors.Is(err, ErrDisposed) {
		t.Errorf("err = %v, want ErrDisposed", err)
	}
}

func TestAddChildAt(t *testing.T) {
	p := NewNode("p")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	_ = p.AddChild(a)
	_ = p.AddChild(c)
	if err := p.AddChildAt(b, 1); err != nil {
		t.Fatal(err)
	}
	for i, want := range []*Node{a, b, c} {
		if p.ChildAt(i) != want {
			t.Errorf("child %d = %v, want %v", i, p.ChildAt(i), want)
		}
	}
	if err := p.AddChildAt(NewNode("d"), 10); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemoveChild(t *testing.T) {
	p := NewNode("p")
	c := NewNode("c")
	_ = p.AddChild(c)
	if err := p.RemoveChild(c); err != nil {
		t.Fatal(err)
	}
	if c.Parent() != nil || p.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	if c.IsDisposed() {
		t.Error("RemoveChild must not dispose")
	}
}

func TestRemoveChildUnknown(t *testing.T) {
	p := NewNode("p")
	other := NewNode("other")
	stranger := NewNode("stranger")
	_ = other.AddChild(stranger)

	if err := p.RemoveChild(stranger); !errors.Is(err, ErrUnknownChild) {
		t.Errorf("err = %v, want ErrUnknownChild", err)
	}
	if stranger.Parent() != other {
		t.Error("failed RemoveChild must not change the tree")
	}
}

func TestRemoveChildAt(t *testing.T) {
	p := NewNode("p")
	a, b := NewNode("a"), NewNode("b")
	_ = p.AddChild(a)
	_ = p.AddChild(b)
	got, err := p.RemoveChildAt(0)
	if err != nil || got != a {
		t.Fatalf("RemoveChildAt(0) = %v, %v", got, err)
	}
	if p.NumChildren() != 1 || p.ChildAt(0) != b {
		t.Error("b should remain")
	}
	if _, err := p.RemoveChildAt(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemoveFromParentAndChildren(t *testing.T) {
	p := NewNode("p")
	a, b := NewNode("a"), NewNode("b")
	_ = p.AddChild(a)
	_ = p.AddChild(b)
	a.RemoveFromParent()
	a.RemoveFromParent() // no-op
	if a.Parent() != nil || p.NumChildren() != 1 {
		t.Error("RemoveFromParent failed")
	}
	p.RemoveChildren()
	if b.Parent() != nil || p.NumChildren() != 0 {
		t.Error("RemoveChildren failed")
	}
}

func TestFind(t *testing.T) {
	root := NewNode("root")
	panel := NewNode("panel")
	ok := NewNode("ok")
	_ = root.AddChild(panel)
	_ = panel.AddChild(ok)

	got, err := root.Find("panel/ok")
	if err != nil || got != ok {
		t.Errorf("Find = %v, %v", got, err)
	}
	if _, err := root.Find("panel/cancel"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
	if root.FindChild("ok") != nil {
		t.Error("FindChild should only search direct children")
	}
}

func TestSortedChildrenZOrder(t *testing.T) {
	p := NewNode("p")
	a, b, c, d := NewNode("a"), NewNode("b"), NewNode("c"), NewNode("d")
	for _, n := range []*Node{a, b, c, d} {
		_ = p.AddChild(n)
	}
	a.SetZOrder(2)
	c.SetZOrder(-1)
	// Ties (b, d at 0) keep insertion order.
	want := []*Node{c, b, d, a}
	got := p.SortedChildren()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// Insertion order is untouched.
	if p.ChildAt(0) != a {
		t.Error("Children must keep insertion order")
	}
}

func TestUpdateOrder(t *testing.T) {
	p := NewNode("p")
	c := NewNode("c")
	_ = p.AddChild(c)
	var order []string
	p.OnUpdate = func(float64) { order = append(order, "p") }
	c.OnUpdate = func(float64) { order = append(order, "c") }
	p.Update(0.1)
	if len(order) != 2 || order[0] != "p" || order[1] != "c" {
		t.Errorf("order = %v, want [p c]", order)
	}
}

func TestUpdateChildRemovedDuringUpdate(t *testing.T) {
	p := NewNode("p")
	a, b := NewNode("a"), NewNode("b")
	_ = p.AddChild(a)
	_ = p.AddChild(b)
	bUpdated := false
	a.OnUpdate = func(float64) { b.RemoveFromParent() }
	b.OnUpdate = func(float64) { bUpdated = true }
	p.Update(0.1)
	if bUpdated {
		t.Error("removed sibling should not be updated")
	}
}

func TestDispose(t *testing.T) {
	root := NewNode("root")
	p := NewNode("p")
	c := NewNode("c")
	g := NewNode("g")
	_ = root.AddChild(p)
	_ = p.AddChild(c)
	_ = c.AddChild(g)
	a, err := g.Animate(PropX, OscillateConfig(0, 1, 1))
	if err != nil {
		t.Fatal(err)
	}

	p.Dispose()
	if root.NumChildren() != 0 {
		t.Error("disposed node should be removed from parent")
	}
	for _, n := range []*Node{p, c, g} {
		if !n.IsDisposed() {
			t.Errorf("%s should be disposed", n.Name())
		}
	}
	if a.Target() != nil {
		t.Error("animators of disposed descendants should be detached")
	}
	if err := a.Update(0.1); !errors.Is(err, ErrAnimatorTargetInvalid) {
		t.Errorf("Update err = %v, want ErrAnimatorTargetInvalid", err)
	}
	p.Dispose() // idempotent
}

func TestDisposeInUpdate(t *testing.T) {
	p := NewNode("p")
	c := NewNode("c")
	_ = p.AddChild(c)
	c.OnUpdate = func(float64) { c.Dispose() }
	_, _ = c.Animate(PropX, OscillateConfig(0, 1, 1))
	p.Update(0.1)
	if !c.IsDisposed() || p.NumChildren() != 0 {
		t.Error("self-disposing node should be gone")
	}
}
