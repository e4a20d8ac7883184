// Package canopy is a retained-mode UI scene graph for [Ebitengine].
//
// Canopy provides the node tree, transform composition, anchor layout,
// procedural property animation and input routing that concrete widgets are
// built on. It does not render textures or text itself: a [Renderer] supplied
// by the application draws each node from its world transform and derived
// alpha.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the game loop from the scene's [Config]:
//
//	scene := canopy.NewScene()
//	// ... add nodes ...
//	if err := canopy.Run(scene); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *canopy.Scene }
//
//	func (g *Game) Update() error              { g.scene.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image)       { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root]. A node
// has a rect, a pivot (the rect center unless set), a scale, an angle in
// degrees and a color. Children compose their parent's transform, and their
// alpha when [Node.InheritAlpha] is set.
//
//	panel, _ := scene.NewNode("panel")
//	panel.SetRect(canopy.Rect{X: 20, Y: 20, Width: 200, Height: 120})
//	scene.Root().AddChild(panel)
//
// A node has at most one parent. [Node.AddChild] fails with
// [ErrReparentConflict] when the child already belongs elsewhere; use
// [Node.MoveTo] to reparent explicitly.
//
// Derived queries ([Node.DerivedPosition], [Node.DerivedScale],
// [Node.DerivedAngle], [Node.DerivedSize], [Node.DerivedAlpha]) compose up to
// an optional override root.
//
// # Anchors
//
// [Node.Anchors] binds a node's edges to its parent's. When the parent is
// resized, a node anchored on the right (or bottom) only is shifted by the
// size change; a node anchored on both opposing edges is resized instead.
//
//	footer.SetAnchors(canopy.AnchorLeft | canopy.AnchorRight | canopy.AnchorBottom)
//
// # Animation
//
// An [Animator] samples a waveform ([WaveKind]) and writes one property
// ([PropertyKind]) of its target each frame. [Node.Animate] replaces anything
// of the same kind; [Node.Queue] plays after the animators already attached
// for that kind:
//
//	node.SlideX(300, 0.5)                            // dynamic ramp
//	node.Oscillate(canopy.PropAngle, 10, 0.5)        // endless sine
//	node.Queue(canopy.PropAlpha, canopy.RampConfig(1, 0, 1))
//	node.TweenTo(canopy.PropY, 80, 0.3, ease.OutBack) // gween easing
//
// # Input
//
// The [Dispatcher] routes pointer, key, character, touch and gamepad events
// front to back through the tree. A node handles events through callbacks
// (OnPointerDown, OnClick, OnDrag, ...) or through a behavior set with
// [Node.SetBehavior]; the first node that consumes an event stops the walk.
// [Node.HitTest] excludes a node (or its whole subtree) from routing.
//
// [Scene.Update] polls Ebitengine input when [Config.PollInput] is set.
// Tests inject synthetic input with [Scene.InjectClick] and friends, or replay
// a JSON script with [LoadTestScript].
//
// # Logging
//
// Canopy logs through [log/slog]. It is silent until [SetLogger] is called.
//
// [Ebitengine]: https://ebitengine.org
package canopy
