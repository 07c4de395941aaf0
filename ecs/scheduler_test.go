package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orbitrig/ecs"
)

type recordingSystem struct {
	name string
	log  *[]string
}

func (r *recordingSystem) Execute(frame *ecs.UpdateFrame) {
	*r.log = append(*r.log, r.name)
}

type movementSystem struct {
	Movers ecs.Query[movingView]
	Score  ecs.Singleton[Score]
	// unexported fields are left alone
	steps int
}

func (m *movementSystem) Execute(frame *ecs.UpdateFrame) {
	m.steps++
	for item := range m.Movers.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
	}
	*m.Score.Get()++
}

type startupSpawner struct{}

func (startupSpawner) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{}, Velocity{DX: 10})
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var log []string
	scheduler.Register(&recordingSystem{name: "a", log: &log})
	scheduler.Register(&recordingSystem{name: "b", log: &log})
	scheduler.RegisterStartup(&recordingSystem{name: "start", log: &log})
	scheduler.Register(&recordingSystem{name: "c", log: &log})

	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, []string{"start", "a", "b", "c", "a", "b", "c"}, log)
	assert.Equal(t, uint64(2), scheduler.Ticks())
}

func TestSchedulerBindsQueriesAndSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Score(0))

	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterStartup(startupSpawner{})
	movement := &movementSystem{}
	scheduler.Register(movement)

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	item, ok := movement.Movers.Single()
	require.True(t, ok, "startup spawn is visible on the first tick")
	assert.InDelta(t, 10.0, item.Position.X, 1e-6)
	assert.Equal(t, Score(2), *movement.Score.Get())
	assert.Equal(t, 2, movement.steps)
}

func TestSchedulerConditions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var log []string
	scheduler.RegisterIf(&recordingSystem{name: "players", log: &log}, ecs.AnyWith[PlayerController]())

	scheduler.Once(0)
	assert.Empty(t, log)

	player := storage.Spawn(PlayerController{})
	scheduler.Once(0)
	assert.Equal(t, []string{"players"}, log)

	storage.Delete(player)
	scheduler.Once(0)
	assert.Equal(t, []string{"players"}, log, "deleted entities do not satisfy the condition")

	stats := scheduler.GetStats()
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, int64(1), stats.Systems[0].ExecutionCount)
	assert.Equal(t, int64(2), stats.Systems[0].SkipCount)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var log []string
	scheduler.RegisterStartup(&recordingSystem{name: "start", log: &log})
	scheduler.Register(&recordingSystem{name: "tick", log: &log})
	scheduler.RegisterIf(&recordingSystem{name: "never", log: &log}, func(*ecs.Storage) bool { return false })

	for i := 0; i < 5; i++ {
		scheduler.Once(1.0 / 60)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 3, stats.SystemCount)
	assert.Equal(t, uint64(5), stats.Ticks)
	assert.Equal(t, int64(6), stats.TotalExecutions)

	startup := stats.Systems[0]
	assert.True(t, startup.Startup)
	assert.Equal(t, "recordingSystem", startup.Name)
	assert.Equal(t, int64(1), startup.ExecutionCount)

	tick := stats.Systems[1]
	assert.False(t, tick.Startup)
	assert.Equal(t, int64(5), tick.ExecutionCount)
	assert.LessOrEqual(t, tick.MinDuration, tick.AvgDuration)
	assert.LessOrEqual(t, tick.AvgDuration, tick.MaxDuration)
	assert.GreaterOrEqual(t, tick.TotalDuration, tick.MaxDuration)

	never := stats.Systems[2]
	assert.Zero(t, never.ExecutionCount)
	assert.Equal(t, int64(5), never.SkipCount)
	assert.Zero(t, never.MinDuration)
	assert.Zero(t, never.AvgDuration)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var log []string
	scheduler.Register(&recordingSystem{name: "tick", log: &log})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, time.Millisecond)

	assert.Positive(t, scheduler.Ticks())
	assert.Len(t, log, int(scheduler.Ticks()))
}
