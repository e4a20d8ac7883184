package ecs

import (
	"testing"

	"github.com/phanxgames/canopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []canopy.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(canopy.InteractionEvent{
		Type:     canopy.EventPointerDown,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
		Button:   canopy.MouseButtonLeft,
	})
	store.EmitEvent(canopy.InteractionEvent{
		Type:       canopy.EventPinch,
		Scale:      2.0,
		ScaleDelta: 0.5,
	})

	// Events are queued until processed.
	assert.Empty(t, received)
	InteractionEventType.ProcessEvents(world)

	require.Len(t, received, 2)
	assert.Equal(t, canopy.EventPointerDown, received[0].Type)
	assert.Equal(t, uint32(42), received[0].EntityID)
	assert.Equal(t, 100.0, received[0].GlobalX)
	assert.Equal(t, 200.0, received[0].GlobalY)
	assert.Equal(t, canopy.EventPinch, received[1].Type)
	assert.Equal(t, 2.0, received[1].Scale)
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	var store canopy.EntityStore = NewDonburiStore(donburi.NewWorld())
	assert.NotNil(t, store)
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		count2++
	})

	store.EmitEvent(canopy.InteractionEvent{Type: canopy.EventClick})
	events.ProcessAllEvents(world)

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestDonburiStore_BindAndLookup(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	n := canopy.NewNode("button")

	e := store.Bind(n)
	require.True(t, world.Valid(e))
	require.NotZero(t, n.EntityID)
	assert.Same(t, n, store.Node(n.EntityID))

	// Binding twice keeps the entity.
	assert.Equal(t, e, store.Bind(n))

	store.Unbind(n)
	assert.Zero(t, n.EntityID)
	assert.False(t, world.Valid(e))
	assert.Nil(t, store.Node(9999))
}

func TestDonburiStore_SyncRemovesDisposedNodes(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	keep := canopy.NewNode("keep")
	gone := canopy.NewNode("gone")
	store.Bind(keep)
	store.Bind(gone)
	goneID := gone.EntityID

	gone.Dispose()
	assert.Equal(t, 1, store.Sync())
	assert.Nil(t, store.Node(goneID))
	assert.Same(t, keep, store.Node(keep.EntityID))
	assert.Equal(t, 0, store.Sync())
}

func TestDonburiStore_ReceivesRoutedEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	root := canopy.NewNodeWithRect("root", canopy.Rect{Width: 100, Height: 100})
	bound := canopy.NewNodeWithRect("bound", canopy.Rect{Width: 50, Height: 50})
	plain := canopy.NewNodeWithRect("plain", canopy.Rect{X: 50, Width: 50, Height: 50})
	require.NoError(t, root.AddChild(bound))
	require.NoError(t, root.AddChild(plain))
	store.Bind(bound)

	d := canopy.NewDispatcher(root)
	d.SetEntityStore(store)

	var got []canopy.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		got = append(got, e)
	})

	d.PointerDown(10, 10, canopy.MouseButtonLeft)
	d.PointerUp(10, 10, canopy.MouseButtonLeft)
	d.PointerDown(70, 10, canopy.MouseButtonLeft)
	d.PointerUp(70, 10, canopy.MouseButtonLeft)
	InteractionEventType.ProcessEvents(world)

	require.NotEmpty(t, got)
	for _, e := range got {
		assert.Equal(t, bound.EntityID, e.EntityID)
	}
	var sawClick bool
	for _, e := range got {
		if e.Type == canopy.EventClick {
			sawClick = true
		}
	}
	assert.True(t, sawClick)
}
