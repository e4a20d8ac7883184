package canopy

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- localTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewNode("test")
	assertMatrix(t, "identity", localTransform(n), [6]float64{1, 0, 0, 1, 0, 0})
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewNode("test")
	n.SetPosition(10, 20)
	assertMatrix(t, "translation", localTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewNode("test")
	n.SetScale(2, 3)
	assertMatrix(t, "scale", localTransform(n), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewNode("test")
	n.SetAngle(90)
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", localTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformDefaultPivotIsCenter(t *testing.T) {
	n := NewNodeWithRect("test", Rect{X: 100, Y: 200, Width: 40, Height: 20})
	n.SetScale(2, 2)
	// The center (20,10) stays at (120,210) in parent space.
	x, y := transformPoint(localTransform(n), 20, 10)
	assertNear(t, "center x", x, 120)
	assertNear(t, "center y", y, 210)
	// The local origin moves away from the center.
	x, y = transformPoint(localTransform(n), 0, 0)
	assertNear(t, "origin x", x, 80)
	assertNear(t, "origin y", y, 190)
}

func TestLocalTransformExplicitPivot(t *testing.T) {
	n := NewNodeWithRect("test", Rect{Width: 40, Height: 20})
	n.SetPivot(0, 0)
	n.SetAngle(90)
	assertMatrix(t, "pivot origin", localTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
	n.ResetPivot()
	assertNear(t, "reset pivot x", n.Pivot().X, 20)
	assertNear(t, "reset pivot y", n.Pivot().Y, 10)
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 5, 7}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 5, 7}
	inv, ok := invertAffine(m)
	if !ok {
		t.Fatal("invertible matrix reported singular")
	}
	assertMatrix(t, "m*inv", multiplyAffine(m, inv), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	inv, ok := invertAffine([6]float64{0, 0, 0, 0, 10, 20})
	if ok {
		t.Error("singular matrix reported invertible")
	}
	assertMatrix(t, "singular", inv, identityTransform)
}

// --- composition ---

// manualChain builds a chain of n nested zero-size nodes, each offset,
// scaled and rotated, and returns the innermost node together with the
// matrix product computed independently of the node code.
func manualChain(n int) (*Node, [6]float64) {
	mul := func(p, c [6]float64) [6]float64 {
		return [6]float64{
			p[0]*c[0] + p[2]*c[1],
			p[1]*c[0] + p[3]*c[1],
			p[0]*c[2] + p[2]*c[3],
			p[1]*c[2] + p[3]*c[3],
			p[0]*c[4] + p[2]*c[5] + p[4],
			p[1]*c[4] + p[3]*c[5] + p[5],
		}
	}
	product := identityTransform
	var parent, node *Node
	for i := range n {
		x := float64(3 + i%4)
		y := float64(2 + i%3)
		s := 1 + 0.05*float64(i%5)
		deg := float64(7 * (i%6 - 2))

		node = NewNode("n")
		node.SetPosition(x, y)
		node.SetScale(s, s)
		node.SetAngle(deg)
		if parent != nil {
			if err := parent.AddChild(node); err != nil {
				panic(err)
			}
		}
		parent = node

		rad := deg * math.Pi / 180
		local := [6]float64{math.Cos(rad) * s, math.Sin(rad) * s, -math.Sin(rad) * s, math.Cos(rad) * s, x, y}
		product = mul(product, local)
	}
	return node, product
}

func TestDerivedPositionMatchesMatrixProduct(t *testing.T) {
	for _, n := range []int{1, 5, 20} {
		leaf, want := manualChain(n)
		p := leaf.DerivedPosition(nil)
		if math.Abs(p.X-want[4]) > 1e-6 || math.Abs(p.Y-want[5]) > 1e-6 {
			t.Errorf("N=%d: DerivedPosition = %v, want (%v, %v)", n, p, want[4], want[5])
		}
		got := leaf.WorldTransform()
		for i := range got {
			if math.Abs(got[i]-want[i]) > 1e-6 {
				t.Errorf("N=%d: WorldTransform[%d] = %v, want %v", n, i, got[i], want[i])
			}
		}
	}
}

func TestDerivedScaleAndAngle(t *testing.T) {
	root := NewNode("root")
	root.SetScale(2, 3)
	root.SetAngle(10)
	mid := NewNode("mid")
	mid.SetScale(0.5, 2)
	mid.SetAngle(20)
	leaf := NewNode("leaf")
	leaf.SetScale(4, 1)
	leaf.SetAngle(30)
	_ = root.AddChild(mid)
	_ = mid.AddChild(leaf)

	s := leaf.DerivedScale(nil)
	assertNear(t, "scale x", s.X, 4)
	assertNear(t, "scale y", s.Y, 6)
	assertNear(t, "angle", leaf.DerivedAngle(nil), 60)

	// Stopping at mid leaves only the leaf's own values.
	s = leaf.DerivedScale(mid)
	assertNear(t, "override scale x", s.X, 4)
	assertNear(t, "override angle", leaf.DerivedAngle(mid), 30)
}

func TestDerivedPositionOverrideRoot(t *testing.T) {
	root := NewNode("root")
	root.SetPosition(100, 100)
	a := NewNode("a")
	a.SetPosition(10, 0)
	b := NewNode("b")
	b.SetPosition(0, 5)
	_ = root.AddChild(a)
	_ = a.AddChild(b)

	p := b.DerivedPosition(nil)
	assertNear(t, "full x", p.X, 110)
	assertNear(t, "full y", p.Y, 105)

	p = b.DerivedPosition(root)
	assertNear(t, "below root x", p.X, 10)
	assertNear(t, "below root y", p.Y, 5)

	p = b.DerivedPosition(a)
	assertNear(t, "below a x", p.X, 0)
	assertNear(t, "below a y", p.Y, 5)
}

func TestDerivedPositionThroughRotatedParent(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(50, 50)
	parent.SetAngle(90)
	child := NewNode("child")
	child.SetPosition(10, 0)
	_ = parent.AddChild(child)

	// The child's offset is rotated before the parent's translation.
	p := child.DerivedPosition(nil)
	assertNear(t, "x", p.X, 50)
	assertNear(t, "y", p.Y, 60)
}

func TestDerivedSize(t *testing.T) {
	parent := NewNode("parent")
	parent.SetScale(2, 2)
	child := NewNodeWithRect("child", Rect{Width: 10, Height: 20})
	child.SetScale(1.5, 1)
	_ = parent.AddChild(child)
	s := child.DerivedSize(nil)
	assertNear(t, "w", s.X, 30)
	assertNear(t, "h", s.Y, 40)
}

// --- alpha ---

func TestDerivedAlphaMultiplies(t *testing.T) {
	root := NewNode("root")
	root.SetAlpha(0.5)
	child := NewNode("child")
	child.SetAlpha(0.5)
	_ = root.AddChild(child)
	assertNear(t, "alpha", child.DerivedAlpha(nil), 0.25)
	assertNear(t, "alpha below root", child.DerivedAlpha(root), 0.5)
}

func TestDerivedAlphaInheritDisabled(t *testing.T) {
	root := NewNode("root")
	root.SetAlpha(0)
	child := NewNode("child")
	child.SetAlpha(0.8)
	child.InheritAlpha = false
	_ = root.AddChild(child)
	assertNear(t, "own alpha", child.DerivedAlpha(nil), 0.8)

	// A grandchild inheriting from the non-inheriting child stops there too.
	grand := NewNode("grand")
	grand.SetAlpha(0.5)
	_ = child.AddChild(grand)
	assertNear(t, "grandchild alpha", grand.DerivedAlpha(nil), 0.4)
}

func TestDerivedAlphaDimWhenDisabled(t *testing.T) {
	n := NewNode("n")
	n.Disabled = true
	assertNear(t, "not dimmed", n.DerivedAlpha(nil), 1)
	n.DimWhenDisabled = true
	assertNear(t, "dimmed", n.DerivedAlpha(nil), DisabledAlpha)
}

// --- dirty tracking ---

func TestWorldTransformRecomputesAfterSetter(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	child.SetPosition(5, 5)
	_ = parent.AddChild(child)
	assertNear(t, "before", child.DerivedPosition(nil).X, 5)

	parent.SetPosition(100, 0)
	if !child.transformDirty {
		t.Error("child should be dirty after parent moved")
	}
	assertNear(t, "after", child.DerivedPosition(nil).X, 105)
	if child.transformDirty || parent.transformDirty {
		t.Error("transforms should be clean after query")
	}
}

func TestReparentRecomputesWorldTransform(t *testing.T) {
	a := NewNode("a")
	a.SetPosition(10, 0)
	b := NewNode("b")
	b.SetPosition(50, 0)
	child := NewNode("child")
	_ = a.AddChild(child)
	assertNear(t, "under a", child.DerivedPosition(nil).X, 10)
	if err := child.MoveTo(b); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "under b", child.DerivedPosition(nil).X, 50)
}

// --- coordinate conversion ---

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewNodeWithRect("parent", Rect{X: 30, Y: 40, Width: 100, Height: 50})
	parent.SetAngle(33)
	parent.SetScale(1.5, 0.75)
	child := NewNodeWithRect("child", Rect{X: 5, Y: 7, Width: 20, Height: 20})
	child.SetAngle(-12)
	_ = parent.AddChild(child)

	wx, wy := child.LocalToWorld(3, 4)
	lx, ly := child.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 3)
	assertNear(t, "ly", ly, 4)
}

func TestDerivedBoundsRotated(t *testing.T) {
	n := NewNodeWithRect("n", Rect{Width: 10, Height: 10})
	n.SetAngle(45)
	b := n.DerivedBounds()
	d := 10 * math.Sqrt2
	assertNear(t, "width", b.Width, d)
	assertNear(t, "height", b.Height, d)
	c := b.Center()
	assertNear(t, "center x", c.X, 5)
	assertNear(t, "center y", c.Y, 5)
}
