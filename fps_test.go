package canopy

import (
	"math"
	"testing"
)

func TestFPSWidget(t *testing.T) {
	root := NewNodeWithRect("root", Rect{Width: 100, Height: 100})
	top := NewNodeWithRect("top", Rect{Width: 100, Height: 100})
	top.SetZOrder(100)
	w := NewFPSWidget()
	_ = root.AddChild(w)
	_ = root.AddChild(top)

	if w.ZOrder() != math.MaxInt32 {
		t.Errorf("ZOrder = %d", w.ZOrder())
	}
	sorted := root.SortedChildren()
	if sorted[len(sorted)-1] != w {
		t.Error("widget should draw last")
	}
	if got := root.ChildUnderPoint(10, 10); got != top {
		t.Errorf("ChildUnderPoint = %v, want top (widget is not hit-testable)", got)
	}
	root.Update(1) // refreshes the label without a running game
}
