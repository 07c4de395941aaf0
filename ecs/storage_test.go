package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orbitrig/ecs"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, entityId.ArchetypeId())
			assert.Equal(t, tt.index, entityId.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name{Value: "subject"})

	pos, ok := storage.GetComponent(id, reflect.TypeOf(Position{})).(*Position)
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "subject", name.Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Name{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Health{})))
}

func TestSpawnCopiesComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	pos := Position{X: 1}
	id := storage.Spawn(&pos)
	pos.X = 99

	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, id).X)
}

func TestComponentOrderDoesNotChangeArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})
	c := storage.Spawn(Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
	assert.Len(t, storage.Archetypes(), 2)
	assert.Same(t, storage.Archetypes()[0], storage.GetArchetype(Velocity{}, Position{}))
	assert.Nil(t, storage.GetArchetype(Health{}))
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Health{Current: 100, Max: 100})
	other := storage.Spawn(Position{X: 2}, Health{Current: 50, Max: 100})

	storage.Delete(id)

	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Position{})))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, other).X)

	// deleting twice or deleting an unknown id is a no-op
	storage.Delete(id)
	storage.Delete(ecs.NewEntityId(1, 1))

	reused := storage.Spawn(Position{X: 3}, Health{})
	assert.Equal(t, id, reused, "freed slot is reused")
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, reused).X)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Score(1))
	ptr := ecs.ReadComponent[Score](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Score(i))
	}
	*ptr = 42

	assert.Equal(t, Score(42), *ecs.ReadComponent[Score](storage, first))
	assert.Same(t, ptr, ecs.ReadComponent[Score](storage, first))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() }, "no components")
	assert.Panics(t, func() { storage.Spawn(Unregistered{}) }, "unregistered type")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) }, "map component")
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))
	assert.Nil(t, missing)

	storage.AddSingleton(Health{Current: 10, Max: 20})

	var health *Health
	require.True(t, storage.ReadSingleton(&health))
	assert.Equal(t, 10, health.Current)

	health.Current = 15
	var again *Health
	storage.ReadSingleton(&again)
	assert.Same(t, health, again)
	assert.Equal(t, 15, again.Current)

	storage.RemoveSingleton(reflect.TypeOf(Health{}))
	assert.False(t, storage.ReadSingleton(&again))

	assert.Panics(t, func() { storage.ReadSingleton(health) })
}

func TestSingletonAccessor(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	score := ecs.NewSingleton(storage, Score(7))
	require.True(t, score.Exists())
	assert.Equal(t, Score(7), *score.Get())

	// An existing singleton is not overwritten by a second accessor.
	second := ecs.NewSingleton(storage, Score(100))
	assert.Same(t, score.Get(), second.Get())

	// Replacing the value is visible through old accessors.
	storage.AddSingleton(Score(3))
	assert.Equal(t, Score(3), *score.Get())

	var unbound ecs.Singleton[Score]
	assert.Nil(t, unbound.Get())
	assert.False(t, unbound.Exists())
	unbound.Init(storage)
	assert.Equal(t, Score(3), *unbound.Get())
}
