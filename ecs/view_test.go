package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orbitrig/ecs"
)

type movingView struct {
	Position *Position
	Velocity *Velocity
}

type namedView struct {
	Name   *Name
	Health *Health `ecs:"optional"`
}

type playerView struct {
	*PlayerController
	Position *Position
}

func TestViewRequiredFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	moving := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	still := storage.Spawn(Position{X: 5})

	view := ecs.NewView[movingView](storage)

	got := view.Get(moving)
	require.NotNil(t, got)
	assert.Equal(t, float32(1), got.Position.X)
	assert.Equal(t, float32(2), got.Velocity.DX)

	assert.Nil(t, view.Get(still))

	var filled movingView
	assert.False(t, view.Fill(still, &filled))

	// writes through the view reach storage
	got.Position.X = 10
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, moving).X)
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	withHealth := storage.Spawn(Name{Value: "a"}, Health{Current: 1})
	without := storage.Spawn(Name{Value: "b"})

	view := ecs.NewView[namedView](storage)

	a := view.Get(withHealth)
	require.NotNil(t, a)
	require.NotNil(t, a.Health)
	assert.Equal(t, 1, a.Health.Current)

	b := view.Get(without)
	require.NotNil(t, b)
	assert.Nil(t, b.Health)

	names := []string{}
	for _, item := range view.Iter() {
		names = append(names, item.Name.Value)
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestViewEmbeddedTag(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(PlayerController{}, Position{X: 1})
	storage.Spawn(Position{X: 2})

	count := 0
	for item := range ecs.NewView[playerView](storage).Values() {
		assert.Equal(t, float32(1), item.Position.X)
		count++
	}
	assert.Equal(t, 1, count)
}

func TestNewViewPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[Position](storage) })
	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movingView](storage)

	assert.Zero(t, query.Count())
	_, ok := query.Single()
	assert.False(t, ok)

	first := storage.Spawn(Position{X: 1}, Velocity{})
	item, ok := query.Single()
	require.True(t, ok)
	assert.Equal(t, float32(1), item.Position.X)

	// a new archetype created after the first scan is picked up
	second := storage.Spawn(Position{X: 2}, Velocity{}, Name{})
	assert.Equal(t, 2, query.Count())
	_, ok = query.Single()
	assert.False(t, ok, "two matches")

	ids := []ecs.EntityId{}
	for id := range query.Entries() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{first, second}, ids)

	storage.Delete(first)
	item, ok = query.Single()
	require.True(t, ok)
	assert.Equal(t, float32(2), item.Position.X)
}

func TestQueryEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 10; i++ {
		storage.Spawn(Position{X: float32(i)}, Velocity{})
	}

	seen := 0
	for range ecs.NewQuery[movingView](storage).Iter() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestQueryBeforeInitPanics(t *testing.T) {
	var query ecs.Query[movingView]
	assert.Panics(t, func() {
		for range query.Entries() {
		}
	})
}
