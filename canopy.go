package canopy

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color (no tint, fully opaque).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a non-premultiplied 8-bit color for image fills.
func (c Color) toRGBA() color.NRGBA {
	clamp := func(v float64) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// DisabledAlpha is the alpha multiplier applied to a disabled node that has
// DimWhenDisabled set.
const DisabledAlpha = 0.5

// Vec2 is a 2D vector used for positions, pivots, scales and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// HitTestMode controls whether a node takes part in point-containment queries.
type HitTestMode uint8

const (
	HitTestEnabled           HitTestMode = iota // node and children are hit-tested
	HitTestDisabled                             // node is skipped, children are still tried
	HitTestDisabledRecursive                    // node and its whole subtree are skipped
)

func (m HitTestMode) String() string {
	switch m {
	case HitTestEnabled:
		return "enabled"
	case HitTestDisabled:
		return "disabled"
	case HitTestDisabledRecursive:
		return "disabled-recursive"
	default:
		return "unknown"
	}
}

// Anchor is a bitmask binding a node's edges to its parent's edges.
// Values can be combined with bitwise OR (e.g. AnchorLeft | AnchorRight).
type Anchor uint8

const (
	AnchorLeft   Anchor = 1 << iota // left edge keeps its distance to the parent's left edge
	AnchorRight                     // right edge keeps its distance to the parent's right edge
	AnchorTop                       // top edge keeps its distance to the parent's top edge
	AnchorBottom                    // bottom edge keeps its distance to the parent's bottom edge

	AnchorNone Anchor = 0
	AnchorAll         = AnchorLeft | AnchorRight | AnchorTop | AnchorBottom
)

// Has reports whether all bits of flag are set.
func (a Anchor) Has(flag Anchor) bool {
	return a&flag == flag
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // a pointer button is pressed
	EventPointerUp                     // a pointer button is released
	EventPointerMove                   // the pointer moves
	EventPointerEnter                  // the pointer enters a node's bounds
	EventPointerLeave                  // the pointer leaves a node's bounds
	EventScroll                        // the wheel scrolls
	EventClick                         // press then release over the same node
	EventDragStart                     // movement exceeds the drag dead zone
	EventDrag                          // fires on every move while dragging
	EventDragEnd                       // the pointer is released after dragging
	EventPinch                         // two-finger pinch/rotate gesture
	EventKeyDown                       // a key is pressed
	EventKeyUp                         // a key is released
	EventChar                          // a character is typed
	EventButtonDown                    // a gamepad button is pressed
	EventButtonUp                      // a gamepad button is released
	EventFocus                         // a node gains keyboard focus
	EventBlur                          // a node loses keyboard focus
)

const numEventTypes = int(EventBlur) + 1

var eventTypeNames = [...]string{
	EventPointerDown:  "pointer-down",
	EventPointerUp:    "pointer-up",
	EventPointerMove:  "pointer-move",
	EventPointerEnter: "pointer-enter",
	EventPointerLeave: "pointer-leave",
	EventScroll:       "scroll",
	EventClick:        "click",
	EventDragStart:    "drag-start",
	EventDrag:         "drag",
	EventDragEnd:      "drag-end",
	EventPinch:        "pinch",
	EventKeyDown:      "key-down",
	EventKeyUp:        "key-up",
	EventChar:         "char",
	EventButtonDown:   "button-down",
	EventButtonUp:     "button-up",
	EventFocus:        "focus",
	EventBlur:         "blur",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
