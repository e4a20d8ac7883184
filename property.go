package canopy

import (
	"fmt"
	"math"
	"strings"
)

// PropertyKind identifies a numeric node property that animators can drive.
type PropertyKind uint8

const (
	PropX PropertyKind = iota
	PropY
	PropScaleX
	PropScaleY
	PropWidth
	PropHeight
	PropAngle
	PropPivotX
	PropPivotY
	PropRed
	PropGreen
	PropBlue
	PropAlpha
	PropZOrder

	numPropertyKinds
)

var propertyNames = [numPropertyKinds]string{
	PropX:      "x",
	PropY:      "y",
	PropScaleX: "scaleX",
	PropScaleY: "scaleY",
	PropWidth:  "width",
	PropHeight: "height",
	PropAngle:  "angle",
	PropPivotX: "pivotX",
	PropPivotY: "pivotY",
	PropRed:    "red",
	PropGreen:  "green",
	PropBlue:   "blue",
	PropAlpha:  "alpha",
	PropZOrder: "zOrder",
}

func (k PropertyKind) String() string {
	if k < numPropertyKinds {
		return propertyNames[k]
	}
	return fmt.Sprintf("PropertyKind(%d)", uint8(k))
}

// Valid reports whether k names a known property.
func (k PropertyKind) Valid() bool { return k < numPropertyKinds }

// ParsePropertyKind maps a property name ("x", "scaleX", "alpha", ...) to its
// kind. Matching is case-insensitive.
func ParsePropertyKind(name string) (PropertyKind, error) {
	for k, s := range propertyNames {
		if strings.EqualFold(s, name) {
			return PropertyKind(k), nil
		}
	}
	return 0, fmt.Errorf("parse property %q: %w", name, ErrPropertyNotFound)
}

// Property returns the current value of the given property.
func (n *Node) Property(kind PropertyKind) (float64, error) {
	switch kind {
	case PropX:
		return n.rect.X, nil
	case PropY:
		return n.rect.Y, nil
	case PropScaleX:
		return n.scale.X, nil
	case PropScaleY:
		return n.scale.Y, nil
	case PropWidth:
		return n.rect.Width, nil
	case PropHeight:
		return n.rect.Height, nil
	case PropAngle:
		return n.angle, nil
	case PropPivotX:
		return n.Pivot().X, nil
	case PropPivotY:
		return n.Pivot().Y, nil
	case PropRed:
		return n.color.R, nil
	case PropGreen:
		return n.color.G, nil
	case PropBlue:
		return n.color.B, nil
	case PropAlpha:
		return n.color.A, nil
	case PropZOrder:
		return float64(n.zOrder), nil
	}
	return 0, fmt.Errorf("get %v on %q: %w", kind, n.name, ErrPropertyNotFound)
}

// SetProperty writes v into the given property through the regular setters,
// so clamping, dirty marking and anchor relayout all apply. ZOrder is rounded
// to the nearest integer.
func (n *Node) SetProperty(kind PropertyKind, v float64) error {
	switch kind {
	case PropX:
		n.SetPosition(v, n.rect.Y)
	case PropY:
		n.SetPosition(n.rect.X, v)
	case PropScaleX:
		n.SetScale(v, n.scale.Y)
	case PropScaleY:
		n.SetScale(n.scale.X, v)
	case PropWidth:
		n.SetSize(v, n.rect.Height)
	case PropHeight:
		n.SetSize(n.rect.Width, v)
	case PropAngle:
		n.SetAngle(v)
	case PropPivotX:
		n.SetPivot(v, n.Pivot().Y)
	case PropPivotY:
		n.SetPivot(n.Pivot().X, v)
	case PropRed:
		n.color.R = v
	case PropGreen:
		n.color.G = v
	case PropBlue:
		n.color.B = v
	case PropAlpha:
		n.color.A = v
	case PropZOrder:
		n.SetZOrder(int(math.Round(v)))
	default:
		return fmt.Errorf("set %v on %q: %w", kind, n.name, ErrPropertyNotFound)
	}
	return nil
}

// SetPropertyByName is SetProperty keyed by property name.
func (n *Node) SetPropertyByName(name string, v float64) error {
	kind, err := ParsePropertyKind(name)
	if err != nil {
		return err
	}
	return n.SetProperty(kind, v)
}

// PropertyByName is Property keyed by property name.
func (n *Node) PropertyByName(name string) (float64, error) {
	kind, err := ParsePropertyKind(name)
	if err != nil {
		return 0, err
	}
	return n.Property(kind)
}
