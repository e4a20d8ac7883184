package canopy

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

const degToRad = math.Pi / 180

// localTransform computes the node's local affine matrix. Returns
// [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-pivot) -> Scale -> Rotate -> Translate(pivot) -> Translate(X, Y)
//
// The pivot is in local (unscaled) coordinates, so rotation and scaling keep
// the pivot point fixed in the parent's space.
func localTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.angle * degToRad)
	sx, sy := n.scale.X, n.scale.Y
	p := n.Pivot()

	a := cos * sx
	b := sin * sx
	c := -sin * sy
	d := cos * sy
	return [6]float64{
		a, b, c, d,
		n.rect.X + p.X - (a*p.X + c*p.Y),
		n.rect.Y + p.Y - (b*p.X + d*p.Y),
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// ok is false and the identity matrix is returned if the matrix is singular
// (determinant ≈ 0).
func invertAffine(m [6]float64) (inv [6]float64, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// worldMatrix returns the cached world transform, recomputing it (and any
// dirty ancestors) first when stale.
func (n *Node) worldMatrix() [6]float64 {
	if n.transformDirty {
		local := localTransform(n)
		if n.parent != nil {
			n.worldTransform = multiplyAffine(n.parent.worldMatrix(), local)
		} else {
			n.worldTransform = local
		}
		n.transformDirty = false
	}
	return n.worldTransform
}

// derivedMatrix composes the local transforms of n and its ancestors, stopping
// before overrideRoot. A nil overrideRoot, or one that is not an ancestor of n,
// composes all the way to the tree root.
func (n *Node) derivedMatrix(overrideRoot *Node) [6]float64 {
	if overrideRoot == nil || overrideRoot == n {
		return n.worldMatrix()
	}
	m := localTransform(n)
	for p := n.parent; p != nil && p != overrideRoot; p = p.parent {
		m = multiplyAffine(localTransform(p), m)
	}
	return m
}

// --- Derived (world-composed) queries ---

// DerivedPosition returns the position of the node's local origin after
// composing its transform with every ancestor up to, but not including,
// overrideRoot. Pass nil to compose up to the tree root.
func (n *Node) DerivedPosition(overrideRoot *Node) Vec2 {
	m := n.derivedMatrix(overrideRoot)
	return Vec2{m[4], m[5]}
}

// DerivedScale returns the product of the node's scale and its ancestors'.
func (n *Node) DerivedScale(overrideRoot *Node) Vec2 {
	s := n.scale
	for p := n.parent; p != nil && p != overrideRoot; p = p.parent {
		s.X *= p.scale.X
		s.Y *= p.scale.Y
	}
	return s
}

// DerivedAngle returns the sum of the node's angle and its ancestors', in
// degrees.
func (n *Node) DerivedAngle(overrideRoot *Node) float64 {
	a := n.angle
	for p := n.parent; p != nil && p != overrideRoot; p = p.parent {
		a += p.angle
	}
	return a
}

// DerivedSize returns the node's size multiplied by its derived scale.
func (n *Node) DerivedSize(overrideRoot *Node) Vec2 {
	s := n.DerivedScale(overrideRoot)
	return Vec2{n.rect.Width * s.X, n.rect.Height * s.Y}
}

// DerivedAlpha returns the node's effective alpha. Ancestor alpha is
// multiplied in only while InheritAlpha is true; otherwise the node's own
// alpha (dimmed when disabled) is returned as-is.
func (n *Node) DerivedAlpha(overrideRoot *Node) float64 {
	a := n.color.A
	if n.Disabled && n.DimWhenDisabled {
		a *= DisabledAlpha
	}
	if n.InheritAlpha && n.parent != nil && n.parent != overrideRoot {
		a *= n.parent.DerivedAlpha(overrideRoot)
	}
	return a
}

// DerivedBounds returns the axis-aligned bounding box of the node's rect in
// world space.
func (n *Node) DerivedBounds() Rect {
	m := n.worldMatrix()
	w, h := n.rect.Width, n.rect.Height
	x0, y0 := transformPoint(m, 0, 0)
	minX, minY, maxX, maxY := x0, y0, x0, y0
	for _, c := range [3][2]float64{{w, 0}, {0, h}, {w, h}} {
		x, y := transformPoint(m, c[0], c[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
// A node collapsed to zero scale has no local space; the point is then
// returned unchanged.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	lx, ly, _ = n.worldToLocal(wx, wy)
	return lx, ly
}

// worldToLocal is WorldToLocal with ok reporting whether the world matrix
// was invertible.
func (n *Node) worldToLocal(wx, wy float64) (lx, ly float64, ok bool) {
	inv, ok := invertAffine(n.worldMatrix())
	lx, ly = transformPoint(inv, wx, wy)
	return lx, ly, ok
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldMatrix(), lx, ly)
}

// WorldTransform returns the node's world affine matrix [a, b, c, d, tx, ty].
func (n *Node) WorldTransform() [6]float64 {
	return n.worldMatrix()
}

// --- Geometry getters ---

// Rect returns the node's local rectangle (position in parent space and size).
func (n *Node) Rect() Rect { return n.rect }

// Position returns the node's local position.
func (n *Node) Position() Vec2 { return Vec2{n.rect.X, n.rect.Y} }

// Size returns the node's local size.
func (n *Node) Size() Vec2 { return Vec2{n.rect.Width, n.rect.Height} }

// Scale returns the node's local scale factors.
func (n *Node) Scale() Vec2 { return n.scale }

// Angle returns the node's local rotation in degrees.
func (n *Node) Angle() float64 { return n.angle }

// Color returns the node's color including alpha.
func (n *Node) Color() Color { return n.color }

// Alpha returns the node's own alpha.
func (n *Node) Alpha() float64 { return n.color.A }

// MaxSize returns the max-size clamp. A zero component means unclamped.
func (n *Node) MaxSize() Vec2 { return n.maxSize }

// Pivot returns the rotation/scale origin in local coordinates. Until SetPivot
// is called the pivot tracks the center of the rect.
func (n *Node) Pivot() Vec2 {
	if n.pivotSet {
		return n.pivot
	}
	return Vec2{n.rect.Width / 2, n.rect.Height / 2}
}

// --- Geometry setters ---

// SetRect sets position and size in one call. The size is clamped to the max
// size and anchored children are relaid out.
func (n *Node) SetRect(r Rect) {
	n.setRect(r, true)
}

// SetPosition sets the node's local position.
func (n *Node) SetPosition(x, y float64) {
	if n.rect.X == x && n.rect.Y == y {
		return
	}
	n.rect.X = x
	n.rect.Y = y
	markSubtreeDirty(n)
}

// SetSize sets the node's size, applying the max-size clamp.
func (n *Node) SetSize(w, h float64) {
	n.setRect(Rect{X: n.rect.X, Y: n.rect.Y, Width: w, Height: h}, true)
}

// SetMaxSize sets the max-size clamp and reapplies it to the current size.
// A zero or negative component disables clamping on that axis.
func (n *Node) SetMaxSize(w, h float64) {
	n.maxSize = Vec2{max(w, 0), max(h, 0)}
	n.setRect(n.rect, true)
}

// SetScale sets the node's scale factors.
func (n *Node) SetScale(sx, sy float64) {
	n.scale = Vec2{sx, sy}
	markSubtreeDirty(n)
}

// SetPivot sets an explicit rotation/scale origin in local coordinates.
func (n *Node) SetPivot(px, py float64) {
	n.pivot = Vec2{px, py}
	n.pivotSet = true
	markSubtreeDirty(n)
}

// ResetPivot returns the pivot to tracking the rect center.
func (n *Node) ResetPivot() {
	n.pivotSet = false
	markSubtreeDirty(n)
}

// SetAngle sets the node's rotation in degrees.
func (n *Node) SetAngle(deg float64) {
	n.angle = deg
	markSubtreeDirty(n)
}

// SetColor sets the node's color including alpha.
func (n *Node) SetColor(c Color) {
	n.color = c
}

// SetAlpha sets only the alpha channel of the node's color.
func (n *Node) SetAlpha(a float64) {
	n.color.A = a
}
