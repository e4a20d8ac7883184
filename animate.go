package canopy

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Animate attaches a dynamic animator for kind. Anything already attached
// for that kind, dynamic or queued, is stopped first, so a node never holds
// more than one dynamic animator per property.
func (n *Node) Animate(kind PropertyKind, cfg AnimatorConfig) (*Animator, error) {
	a, err := NewAnimator(n, kind, cfg)
	if err != nil {
		return nil, err
	}
	n.StopAnimation(kind)
	n.attachAnimator(a)
	return a, nil
}

// Queue attaches an animator that starts when every pending or active
// animator of the same kind has finished. Its Delay is replaced by the latest
// end time among them; with nothing to wait for, cfg.Delay is kept. Queuing
// behind an unbounded animator yields an animator that never starts until
// the unbounded one is stopped and the queue is rebuilt.
func (n *Node) Queue(kind PropertyKind, cfg AnimatorConfig) (*Animator, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("queue on %q: %w", n.name, ErrPropertyNotFound)
	}
	end, waiting := n.queueEnd(kind)
	if waiting {
		cfg.Delay = end
		if math.IsInf(end, 1) {
			Logger().Warn("canopy: animator queued behind an unbounded animator",
				"node", n.name, "kind", kind.String())
		}
	}
	a, err := NewAnimator(n, kind, cfg)
	if err != nil {
		return nil, err
	}
	a.queued = true
	n.attachAnimator(a)
	return a, nil
}

// queueEnd returns the latest end time, in seconds from now, among the
// pending or active animators of kind.
func (n *Node) queueEnd(kind PropertyKind) (float64, bool) {
	end, waiting := 0.0, false
	for _, a := range n.animators[kind] {
		if !a.IsAnimated() {
			continue
		}
		waiting = true
		end = max(end, a.remainingSeconds())
	}
	return end, waiting
}

func (n *Node) attachAnimator(a *Animator) {
	n.animSeq++
	a.name = fmt.Sprintf("%s/%v#%d", n.name, a.kind, n.animSeq)
	n.animators[a.kind] = append(n.animators[a.kind], a)
}

// StopAnimation detaches every animator of kind. Property values are left
// where the animators last wrote them.
func (n *Node) StopAnimation(kind PropertyKind) {
	if !kind.Valid() {
		return
	}
	for _, a := range n.animators[kind] {
		a.detach()
	}
	clear(n.animators[kind])
	n.animators[kind] = n.animators[kind][:0]
}

// StopAllAnimations detaches every animator on the node.
func (n *Node) StopAllAnimations() {
	for k := range n.animators {
		n.StopAnimation(PropertyKind(k))
	}
}

// Animators returns the animators attached for kind, in attach order. The
// returned slice MUST NOT be mutated.
func (n *Node) Animators(kind PropertyKind) []*Animator {
	if !kind.Valid() {
		return nil
	}
	return n.animators[kind]
}

// DynamicAnimator returns the dynamic animator for kind, or nil.
func (n *Node) DynamicAnimator(kind PropertyKind) *Animator {
	for _, a := range n.Animators(kind) {
		if !a.queued {
			return a
		}
	}
	return nil
}

// IsAnimated reports whether any attached animator is pending or active.
func (n *Node) IsAnimated() bool {
	for k := range n.animators {
		for _, a := range n.animators[k] {
			if a.IsAnimated() {
				return true
			}
		}
	}
	return false
}

// HasDynamicAnimation reports whether any attached animator, dynamic or
// queued, is still running. Widgets use it to hold off on layout changes
// until motion settles.
func (n *Node) HasDynamicAnimation() bool {
	return n.IsAnimated()
}

// updateAnimators advances every attached animator. Animators whose target
// became invalid or whose property write failed are logged and dropped.
// Reset animators are removed on the frame they finish; the others hold
// their final value until stopped or the node is disposed.
func (n *Node) updateAnimators(dt float64) {
	for k := range n.animators {
		list := n.animators[k]
		if len(list) == 0 {
			continue
		}
		kept := list[:0]
		for _, a := range list {
			if err := a.Update(dt); err != nil {
				Logger().Warn("canopy: dropping animator", "animator", a.name, "error", err)
				a.detach()
				continue
			}
			if a.IsFinished() && a.Reset {
				a.detach()
				continue
			}
			kept = append(kept, a)
		}
		clear(list[len(kept):])
		n.animators[k] = kept
	}
}

// --- Convenience animations ---

// ramp starts a dynamic linear ramp of kind to `to` over seconds. A
// non-positive duration sets the value immediately.
func (n *Node) ramp(kind PropertyKind, to, seconds float64) error {
	if seconds <= 0 {
		n.StopAnimation(kind)
		return n.SetProperty(kind, to)
	}
	from, err := n.Property(kind)
	if err != nil {
		return err
	}
	_, err = n.Animate(kind, RampConfig(from, to, seconds))
	return err
}

// SlideTo moves the node to (x, y) over seconds.
func (n *Node) SlideTo(x, y, seconds float64) error {
	if err := n.ramp(PropX, x, seconds); err != nil {
		return err
	}
	return n.ramp(PropY, y, seconds)
}

// SlideX moves the node horizontally to x over seconds.
func (n *Node) SlideX(x, seconds float64) error { return n.ramp(PropX, x, seconds) }

// SlideY moves the node vertically to y over seconds.
func (n *Node) SlideY(y, seconds float64) error { return n.ramp(PropY, y, seconds) }

// ResizeTo changes the node's size to (w, h) over seconds.
func (n *Node) ResizeTo(w, h, seconds float64) error {
	if err := n.ramp(PropWidth, w, seconds); err != nil {
		return err
	}
	return n.ramp(PropHeight, h, seconds)
}

// ScaleTo changes the node's scale to (sx, sy) over seconds.
func (n *Node) ScaleTo(sx, sy, seconds float64) error {
	if err := n.ramp(PropScaleX, sx, seconds); err != nil {
		return err
	}
	return n.ramp(PropScaleY, sy, seconds)
}

// RotateTo rotates the node to deg degrees over seconds.
func (n *Node) RotateTo(deg, seconds float64) error { return n.ramp(PropAngle, deg, seconds) }

// FadeTo changes the node's alpha to a over seconds.
func (n *Node) FadeTo(a, seconds float64) error { return n.ramp(PropAlpha, a, seconds) }

// Oscillate starts an unbounded sine oscillation of kind around its current
// value.
func (n *Node) Oscillate(kind PropertyKind, amplitude, periodsPerSecond float64) (*Animator, error) {
	v, err := n.Property(kind)
	if err != nil {
		return nil, err
	}
	return n.Animate(kind, OscillateConfig(v, amplitude, periodsPerSecond))
}

// TweenTo eases kind from its current value to `to` over seconds using fn,
// e.g. ease.OutQuad.
func (n *Node) TweenTo(kind PropertyKind, to, seconds float64, fn ease.TweenFunc) (*Animator, error) {
	if seconds <= 0 {
		return nil, n.ramp(kind, to, 0)
	}
	from, err := n.Property(kind)
	if err != nil {
		return nil, err
	}
	cfg := RampConfig(from, to, seconds)
	cfg.Ease = fn
	if fn == nil {
		cfg.Ease = ease.Linear
	}
	return n.Animate(kind, cfg)
}
