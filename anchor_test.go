package canopy

import "testing"

func assertRect(t *testing.T, name string, got, want Rect) {
	t.Helper()
	assertNear(t, name+".X", got.X, want.X)
	assertNear(t, name+".Y", got.Y, want.Y)
	assertNear(t, name+".Width", got.Width, want.Width)
	assertNear(t, name+".Height", got.Height, want.Height)
}

func anchoredChild(t *testing.T, parent *Node, name string, r Rect, a Anchor) *Node {
	t.Helper()
	n := NewNodeWithRect(name, r)
	n.SetAnchors(a)
	if err := parent.AddChild(n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestAnchorRightShifts(t *testing.T) {
	p := NewNodeWithRect("p", Rect{Width: 100, Height: 100})
	c := anchoredChild(t, p, "c", Rect{X: 80, Y: 10, Width: 10, Height: 10}, AnchorRight|AnchorBottom)
	p.SetSize(120, 130)
	assertRect(t, "c", c.Rect(), Rect{X: 100, Y: 40, Width: 10, Height: 10})
}

func TestAnchorBothEdgesResize(t *testing.T) {
	p := NewNodeWithRect("p", Rect{Width: 100, Height: 100})
	c := anchoredChild(t, p, "c", Rect{X: 10, Y: 10, Width: 80, Height: 30}, AnchorLeft|AnchorRight|AnchorTop)
	p.SetSize(150, 200)
	// Horizontal: both edges, grows. Vertical: top only, unchanged.
	assertRect(t, "c", c.Rect(), Rect{X: 10, Y: 10, Width: 130, Height: 30})
}

func TestAnchorLeftOrNoneUnaffected(t *testing.T) {
	p := NewNodeWithRect("p", Rect{Width: 100, Height: 100})
	left := anchoredChild(t, p, "left", Rect{X: 5, Y: 5, Width: 10, Height: 10}, AnchorLeft|AnchorTop)
	none := anchoredChild(t, p, "none", Rect{X: 50, Y: 50, Width: 10, Height: 10}, AnchorNone)
	p.SetSize(300, 300)
	assertRect(t, "left", left.Rect(), Rect{X: 5, Y: 5, Width: 10, Height: 10})
	assertRect(t, "none", none.Rect(), Rect{X: 50, Y: 50, Width: 10, Height: 10})
}

func TestAnchorRelayoutIdempotence(t *testing.T) {
	p := NewNodeWithRect("p", Rect{Width: 200, Height: 100})
	full := anchoredChild(t, p, "full", Rect{X: 10, Y: 10, Width: 180, Height: 80}, AnchorAll)
	inner := anchoredChild(t, full, "inner", Rect{X: 20, Y: 5, Width: 40, Height: 30}, AnchorAll)
	corner := anchoredChild(t, p, "corner", Rect{X: 150, Y: 60, Width: 20, Height: 20}, AnchorRight|AnchorBottom)

	wantFull, wantInner, wantCorner := full.Rect(), inner.Rect(), corner.Rect()

	p.SetSize(210, 110)
	assertRect(t, "full grown", full.Rect(), Rect{X: 10, Y: 10, Width: 190, Height: 90})
	assertRect(t, "inner grown", inner.Rect(), Rect{X: 20, Y: 5, Width: 50, Height: 40})

	p.SetSize(200, 100)
	assertRect(t, "full", full.Rect(), wantFull)
	assertRect(t, "inner", inner.Rect(), wantInner)
	assertRect(t, "corner", corner.Rect(), wantCorner)
}

func TestAnchorRetainAspect(t *testing.T) {
	p := NewNodeWithRect("p", Rect{Width: 100, Height: 100})
	c := anchoredChild(t, p, "c", Rect{Width: 40, Height: 20}, AnchorLeft|AnchorRight)
	c.SetRetainAnchorAspect(true)
	if !c.RetainAnchorAspect() {
		t.Fatal("RetainAnchorAspect should be set")
	}
	p.SetSize(140, 100)
	assertNear(t, "width", c.Rect().Width, 80)
	assertNear(t, "height", c.Rect().Height, 40)

	// Shrinking back restores the original size.
	p.SetSize(100, 100)
	assertRect(t, "restored", c.Rect(), Rect{Width: 40, Height: 20})
}

func TestMaxSizeClamp(t *testing.T) {
	n := NewNode("n")
	n.SetMaxSize(50, 0)
	n.SetSize(80, 80)
	if s := n.Size(); s.X != 50 || s.Y != 80 {
		t.Errorf("Size = %v, want (50, 80)", s)
	}
	n.SetSize(-5, 10)
	if s := n.Size(); s.X != 0 {
		t.Errorf("negative width should clamp to 0, got %v", s.X)
	}
}

func TestMaxSizeClampsAnchorGrowth(t *testing.T) {
	p := NewNodeWithRect("p", Rect{Width: 100, Height: 100})
	c := anchoredChild(t, p, "c", Rect{Width: 100, Height: 10}, AnchorLeft|AnchorRight)
	c.SetMaxSize(120, 0)
	p.SetSize(200, 100)
	assertNear(t, "clamped width", c.Rect().Width, 120)
}
