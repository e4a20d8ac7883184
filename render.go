package canopy

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer draws individual nodes. canopy itself does not render textures or
// text; a Renderer supplied by the application does, using the node's world
// transform and derived alpha.
type Renderer interface {
	DrawNode(dst *ebiten.Image, n *Node)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(dst *ebiten.Image, n *Node)

// DrawNode calls f(dst, n).
func (f RendererFunc) DrawNode(dst *ebiten.Image, n *Node) { f(dst, n) }

// VisitDrawOrder calls fn for every visible node of n's subtree in draw
// order: parents before children, siblings in ascending z-order with ties in
// insertion order. Invisible nodes hide their subtree.
func VisitDrawOrder(n *Node, fn func(*Node)) {
	if !n.Visible || n.disposed {
		return
	}
	fn(n)
	for _, c := range n.SortedChildren() {
		VisitDrawOrder(c, fn)
	}
}

// Draw draws the node and its subtree onto dst: each visible node's OnDraw
// hook, then r.DrawNode when r is non-nil.
func (n *Node) Draw(dst *ebiten.Image, r Renderer) {
	VisitDrawOrder(n, func(c *Node) {
		if c.OnDraw != nil {
			c.OnDraw(dst, c)
		}
		if r != nil {
			r.DrawNode(dst, c)
		}
	})
}

// GeoM converts the node's world transform into an ebiten.GeoM mapping local
// coordinates to the screen.
func (n *Node) GeoM() ebiten.GeoM {
	t := n.worldMatrix()
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}

// ColorScale returns the node's color with its derived alpha, premultiplied
// for ebiten.DrawImageOptions.
func (n *Node) ColorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := float32(n.DerivedAlpha(nil))
	cs.Scale(float32(n.color.R)*a, float32(n.color.G)*a, float32(n.color.B)*a, a)
	return cs
}

// DebugRenderer draws every node as a flat quad of its color, which is enough
// to see layout, z-order and animation without any assets.
type DebugRenderer struct {
	// SkipEmpty skips nodes with a zero-area rect.
	SkipEmpty bool

	pixel *ebiten.Image
	op    ebiten.DrawImageOptions
}

// NewDebugRenderer creates a DebugRenderer.
func NewDebugRenderer() *DebugRenderer {
	return &DebugRenderer{SkipEmpty: true}
}

// DrawNode draws n's rect in n's color through its world transform.
func (r *DebugRenderer) DrawNode(dst *ebiten.Image, n *Node) {
	w, h := n.rect.Width, n.rect.Height
	if r.SkipEmpty && (w == 0 || h == 0) {
		return
	}
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}
	r.op.GeoM.Reset()
	r.op.GeoM.Scale(w, h)
	r.op.GeoM.Concat(n.GeoM())
	r.op.ColorScale = n.ColorScale()
	dst.DrawImage(r.pixel, &r.op)
}
