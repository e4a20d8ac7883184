package canopy

// HitShape defines a custom hit testing region in local coordinates.
// Set Node.HitShape to replace the default rect test.
type HitShape interface {
	// Contains reports whether the local-space point (x, y) is inside the shape.
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return Rect(r).Contains(x, y)
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies on the inner side of every edge.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := range n {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// HitFunc adapts a plain predicate to HitShape.
type HitFunc func(x, y float64) bool

// Contains calls f(x, y).
func (f HitFunc) Contains(x, y float64) bool { return f(x, y) }

// IsPointInside reports whether the local-space point lies inside the node:
// the HitShape when set, otherwise the [0,w]×[0,h] box.
func (n *Node) IsPointInside(lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	return lx >= 0 && lx <= n.rect.Width && ly >= 0 && ly <= n.rect.Height
}

// ContainsPoint reports whether the world-space point lies inside the node.
// A node whose world matrix is singular (scaled to zero) contains nothing.
func (n *Node) ContainsPoint(wx, wy float64) bool {
	lx, ly, ok := n.worldToLocal(wx, wy)
	return ok && n.IsPointInside(lx, ly)
}

// ChildUnderPoint returns the deepest node in n's subtree that contains the
// world-space point, trying children from highest z-order to lowest before n
// itself. Invisible and HitTestDisabledRecursive subtrees are skipped;
// HitTestDisabled and Disabled nodes are skipped but their children are
// still tried. Returns nil if nothing matches.
func (n *Node) ChildUnderPoint(wx, wy float64) *Node {
	if !n.hitEligible() {
		return nil
	}
	sorted := n.SortedChildren()
	for i := len(sorted) - 1; i >= 0; i-- {
		if hit := sorted[i].ChildUnderPoint(wx, wy); hit != nil {
			return hit
		}
	}
	if n.HitTest == HitTestEnabled && !n.Disabled && n.ContainsPoint(wx, wy) {
		return n
	}
	return nil
}

// hitEligible reports whether n's subtree takes part in hit testing and
// event routing at all.
func (n *Node) hitEligible() bool {
	return n.Visible && !n.disposed && n.HitTest != HitTestDisabledRecursive
}

// route offers an event depth-first: children from highest z-order to
// lowest, then n itself. The first node for which offer returns true stops
// the walk and is returned. Disabled nodes and HitTestDisabled nodes are not
// offered the event, but their children are.
func route(n *Node, offer func(*Node) bool) *Node {
	if !n.hitEligible() {
		return nil
	}
	sorted := n.SortedChildren()
	for i := len(sorted) - 1; i >= 0; i-- {
		if hit := route(sorted[i], offer); hit != nil {
			return hit
		}
	}
	if n.HitTest != HitTestEnabled || n.Disabled {
		return nil
	}
	if offer(n) {
		return n
	}
	return nil
}

// broadcast visits every node route would offer an event to, in the same
// order, without stopping.
func broadcast(n *Node, visit func(*Node)) {
	route(n, func(c *Node) bool {
		visit(c)
		return false
	})
}
