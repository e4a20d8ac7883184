// Package ecs provides ECS adapters for canopy's interaction event system.
//
// The primary adapter is [NewDonburiStore], which bridges canopy interaction
// events (pointer, click, drag, pinch, keys) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to receive
// them.
//
// Nodes are linked to entities with [DonburiStore.Bind], which creates an
// entity carrying a [NodeComponent] and stores its id in Node.EntityID. Only
// events of bound nodes (and pinch gestures) reach the world.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	store.Bind(button)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
