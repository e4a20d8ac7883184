package canopy

import "errors"

// Structural errors are returned to the caller; they indicate a logic bug in
// how the tree is being assembled. Per-frame errors (ErrAnimatorTargetInvalid,
// failed property writes during Update) are logged and the offending animator
// is dropped.
var (
	// ErrReparentConflict is returned by AddChild when the child already has
	// a different parent. Use MoveTo to reparent explicitly.
	ErrReparentConflict = errors.New("canopy: node already has a parent")

	// ErrUnknownChild is returned when removing a node that is not a child.
	ErrUnknownChild = errors.New("canopy: node is not a child of this node")

	// ErrPropertyNotFound is returned for an unsupported property kind or name.
	ErrPropertyNotFound = errors.New("canopy: property not found")

	// ErrAnimatorTargetInvalid is returned by Animator.Update when its target
	// node has been disposed or detached from the animator.
	ErrAnimatorTargetInvalid = errors.New("canopy: animator target is invalid")

	// ErrNodeNotFound is returned by Registry.Lookup for an unknown name.
	ErrNodeNotFound = errors.New("canopy: node not found")

	// ErrDuplicateName is returned when registering a name that is taken.
	ErrDuplicateName = errors.New("canopy: duplicate node name")

	// ErrUnknownType is returned by Registry.Create for an unregistered type tag.
	ErrUnknownType = errors.New("canopy: unknown node type")

	// ErrCycle is returned when adding a child would make a node its own ancestor.
	ErrCycle = errors.New("canopy: adding child would create a cycle")

	// ErrNilNode is returned when a nil node is passed to a tree operation.
	ErrNilNode = errors.New("canopy: nil node")

	// ErrDisposed is returned when operating on a disposed node.
	ErrDisposed = errors.New("canopy: node is disposed")

	// ErrIndexOutOfRange is returned by index-based child operations.
	ErrIndexOutOfRange = errors.New("canopy: child index out of range")
)
