package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orbitrig/ecs"
)

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	empty := storage.CollectStats()
	assert.Zero(t, empty.ArchetypeCount)
	assert.Zero(t, empty.TotalEntityCount)
	assert.Empty(t, empty.ArchetypeBreakdown)

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})
	gone := storage.Spawn(Name{})
	storage.Delete(gone)
	ecs.NewSingleton(storage, Score(1))

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Score"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	moving := stats.ArchetypeBreakdown[0]
	assert.Equal(t, 2, moving.EntityCount)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, moving.ComponentTypes)
	assert.Zero(t, stats.ArchetypeBreakdown[1].EntityCount)
}
