package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for canopy interaction
// events. Subscribe to this in your ECS systems to receive pointer, drag,
// pinch and key events.
var InteractionEventType = events.NewEventType[canopy.InteractionEvent]()

// NodeRef is the component linking an entity to its scene node.
type NodeRef struct {
	Node *canopy.Node
}

// NodeComponent holds the NodeRef of entities created by Bind.
var NodeComponent = donburi.NewComponentType[NodeRef]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// DonburiStore is a canopy.EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

// World returns the backing world.
func (s *DonburiStore) World() donburi.World { return s.world }

// EmitEvent publishes event to InteractionEventType.
func (s *DonburiStore) EmitEvent(event canopy.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Bind creates an entity carrying a NodeComponent for n and records its id
// in n.EntityID. A node that is already bound keeps its entity.
func (s *DonburiStore) Bind(n *canopy.Node) donburi.Entity {
	if e, ok := s.entities[n.EntityID]; ok && n.EntityID != 0 && s.world.Valid(e) {
		return e
	}
	e := s.world.Create(NodeComponent)
	entry := s.world.Entry(e)
	NodeComponent.SetValue(entry, NodeRef{Node: n})
	id := uint32(entry.Id())
	n.EntityID = id
	s.entities[id] = e
	return e
}

// Unbind removes n's entity and clears n.EntityID.
func (s *DonburiStore) Unbind(n *canopy.Node) {
	if e, ok := s.entities[n.EntityID]; ok {
		if s.world.Valid(e) {
			s.world.Remove(e)
		}
		delete(s.entities, n.EntityID)
	}
	n.EntityID = 0
}

// Node returns the node bound to the entity with the given id, or nil.
func (s *DonburiStore) Node(entityID uint32) *canopy.Node {
	e, ok := s.entities[entityID]
	if !ok || !s.world.Valid(e) {
		return nil
	}
	return NodeComponent.Get(s.world.Entry(e)).Node
}

// Sync removes the entities of disposed nodes and returns how many were
// removed. Call it once per frame after Scene.Update.
func (s *DonburiStore) Sync() int {
	var stale []*donburi.Entry
	nodeQuery.Each(s.world, func(entry *donburi.Entry) {
		if ref := NodeComponent.Get(entry); ref.Node == nil || ref.Node.IsDisposed() {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		delete(s.entities, uint32(entry.Id()))
		s.world.Remove(entry.Entity())
	}
	return len(stale)
}
