package canopy

import (
	"errors"
	"testing"
)

func TestPropertyRoundTrip(t *testing.T) {
	n := NewNodeWithRect("n", Rect{Width: 10, Height: 10})
	values := map[PropertyKind]float64{
		PropX: 3, PropY: 4, PropScaleX: 1.5, PropScaleY: 0.5,
		PropWidth: 30, PropHeight: 40, PropAngle: 45,
		PropPivotX: 2, PropPivotY: 6,
		PropRed: 0.1, PropGreen: 0.2, PropBlue: 0.3, PropAlpha: 0.4,
		PropZOrder: 7,
	}
	for k, v := range values {
		if err := n.SetProperty(k, v); err != nil {
			t.Fatalf("SetProperty(%v): %v", k, err)
		}
	}
	for k, want := range values {
		got, err := n.Property(k)
		if err != nil {
			t.Fatalf("Property(%v): %v", k, err)
		}
		assertNear(t, k.String(), got, want)
	}
}

func TestSetPropertyZOrderRounds(t *testing.T) {
	n := NewNode("n")
	_ = n.SetProperty(PropZOrder, 2.6)
	if n.ZOrder() != 3 {
		t.Errorf("ZOrder = %d, want 3", n.ZOrder())
	}
}

func TestSetPropertyWidthRelaysOut(t *testing.T) {
	p := NewNodeWithRect("p", Rect{Width: 100, Height: 100})
	c := NewNodeWithRect("c", Rect{X: 90, Width: 10, Height: 10})
	c.SetAnchors(AnchorRight)
	_ = p.AddChild(c)
	_ = p.SetProperty(PropWidth, 150)
	assertNear(t, "c.X", c.Position().X, 140)
}

func TestPropertyInvalidKind(t *testing.T) {
	n := NewNode("n")
	if err := n.SetProperty(numPropertyKinds, 1); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("SetProperty err = %v, want ErrPropertyNotFound", err)
	}
	if _, err := n.Property(PropertyKind(200)); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("Property err = %v, want ErrPropertyNotFound", err)
	}
}

func TestParsePropertyKind(t *testing.T) {
	for k := PropX; k < numPropertyKinds; k++ {
		got, err := ParsePropertyKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePropertyKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParsePropertyKind("SCALEX"); err != nil || got != PropScaleX {
		t.Errorf("case-insensitive parse = %v, %v", got, err)
	}
	if _, err := ParsePropertyKind("skew"); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("err = %v, want ErrPropertyNotFound", err)
	}
}

func TestPropertyByName(t *testing.T) {
	n := NewNode("n")
	if err := n.SetPropertyByName("alpha", 0.25); err != nil {
		t.Fatal(err)
	}
	v, err := n.PropertyByName("Alpha")
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "alpha", v, 0.25)
	if err := n.SetPropertyByName("bogus", 1); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("err = %v, want ErrPropertyNotFound", err)
	}
}
