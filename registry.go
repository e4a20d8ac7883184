package canopy

import "fmt"

// Factory builds a node for a type tag. It receives a node that is already
// named, tagged and registered, and decorates it: geometry, behavior,
// callbacks, children.
type Factory func(n *Node) error

// Registry is the session context for cross-tree node lookup and type
// factories. Node names are unique within a registry. A Scene owns one;
// independent scenes never share names.
type Registry struct {
	nodes     map[string]*Node
	factories map[string]Factory
	closed    bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:     make(map[string]*Node),
		factories: make(map[string]Factory),
	}
}

// RegisterType installs the factory for a type tag, replacing any previous
// one.
func (r *Registry) RegisterType(tag string, f Factory) {
	r.factories[tag] = f
}

// HasType reports whether a factory is registered for tag.
func (r *Registry) HasType(tag string) bool {
	_, ok := r.factories[tag]
	return ok
}

// NewNode creates and registers a plain node. Returns ErrDuplicateName if
// the name is taken.
func (r *Registry) NewNode(name string) (*Node, error) {
	if r.closed {
		return nil, fmt.Errorf("new node %q: %w", name, ErrDisposed)
	}
	if _, ok := r.nodes[name]; ok {
		return nil, fmt.Errorf("new node %q: %w", name, ErrDuplicateName)
	}
	n := NewNode(name)
	n.registry = r
	r.nodes[name] = n
	return n, nil
}

// Create builds a node of the given type tag through its factory. If the
// factory fails, the node is disposed and the error returned.
func (r *Registry) Create(tag, name string) (*Node, error) {
	f, ok := r.factories[tag]
	if !ok {
		return nil, fmt.Errorf("create %q of type %q: %w", name, tag, ErrUnknownType)
	}
	n, err := r.NewNode(name)
	if err != nil {
		return nil, err
	}
	n.typeTag = tag
	if err := f(n); err != nil {
		n.Dispose()
		return nil, fmt.Errorf("create %q of type %q: %w", name, tag, err)
	}
	return n, nil
}

// Lookup returns the registered node with the given name.
func (r *Registry) Lookup(name string) (*Node, error) {
	n, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrNodeNotFound)
	}
	return n, nil
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int { return len(r.nodes) }

// Close disposes every registered node and rejects further registrations.
func (r *Registry) Close() {
	if r.closed {
		return
	}
	// Disposing a node unregisters it and its registered descendants, so
	// collect first.
	nodes := make([]*Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		n.Dispose()
	}
	r.closed = true
}

func (r *Registry) unregister(n *Node) {
	if cur, ok := r.nodes[n.name]; ok && cur == n {
		delete(r.nodes, n.name)
	}
	n.registry = nil
}
