package canopy

// sanitizeRect clamps negative sizes to zero.
func sanitizeRect(r Rect) Rect {
	r.Width = max(r.Width, 0)
	r.Height = max(r.Height, 0)
	return r
}

// clampSize applies the max-size clamp and the zero floor to r's size.
func (n *Node) clampSize(r Rect) Rect {
	r = sanitizeRect(r)
	if n.maxSize.X > 0 && r.Width > n.maxSize.X {
		r.Width = n.maxSize.X
	}
	if n.maxSize.Y > 0 && r.Height > n.maxSize.Y {
		r.Height = n.maxSize.Y
	}
	return r
}

// setRect stores r (clamped) and relays out anchored children by the size
// delta. user is false when the change comes from an ancestor's relayout,
// in which case the retained aspect ratio is left untouched.
func (n *Node) setRect(r Rect, user bool) {
	r = n.clampSize(r)
	old := n.rect
	if old == r {
		return
	}
	n.rect = r
	if user && r.Height > 0 {
		n.anchorAspect = r.Width / r.Height
	}
	markSubtreeDirty(n)

	dw, dh := r.Width-old.Width, r.Height-old.Height
	if dw == 0 && dh == 0 {
		return
	}
	for _, child := range n.children {
		child.applyParentResize(dw, dh)
	}
}

// applyParentResize moves or resizes the node after its parent's size changed
// by (dw, dh):
//   - right (or bottom) only: shift by the delta
//   - both opposing edges: grow by the delta, keeping the aspect ratio if
//     RetainAnchorAspect is set
//   - left/top only or none: unchanged
func (n *Node) applyParentResize(dw, dh float64) {
	if n.Anchors == AnchorNone {
		return
	}
	r := n.rect
	hBoth := n.Anchors.Has(AnchorLeft | AnchorRight)
	vBoth := n.Anchors.Has(AnchorTop | AnchorBottom)

	switch {
	case hBoth:
		r.Width += dw
	case n.Anchors.Has(AnchorRight):
		r.X += dw
	}
	switch {
	case vBoth:
		r.Height += dh
	case n.Anchors.Has(AnchorBottom):
		r.Y += dh
	}

	if n.retainAspect && (hBoth || vBoth) {
		if aspect := n.aspect(); aspect > 0 {
			if hBoth {
				r.Height = r.Width / aspect
			} else {
				r.Width = r.Height * aspect
			}
		}
	}
	n.setRect(r, false)
}

// aspect returns the width/height ratio recorded by the last user resize,
// falling back to the current rect.
func (n *Node) aspect() float64 {
	if n.anchorAspect > 0 {
		return n.anchorAspect
	}
	if n.rect.Height > 0 {
		return n.rect.Width / n.rect.Height
	}
	return 0
}

// RetainAnchorAspect reports whether anchor-driven resizes keep the node's
// aspect ratio.
func (n *Node) RetainAnchorAspect() bool { return n.retainAspect }

// SetRetainAnchorAspect toggles aspect-preserving anchor resizes. The current
// width/height ratio becomes the one that is preserved.
func (n *Node) SetRetainAnchorAspect(retain bool) {
	n.retainAspect = retain
	if retain && n.rect.Height > 0 {
		n.anchorAspect = n.rect.Width / n.rect.Height
	}
}

// SetAnchors sets the anchor flags. Equivalent to assigning Anchors.
func (n *Node) SetAnchors(a Anchor) {
	n.Anchors = a
}
