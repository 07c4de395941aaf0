package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Startup        bool
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	skipCount      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type registeredSystem struct {
	system    System
	condition Condition
	startup   bool
	stats     *systemStatsInternal
}

// Scheduler runs systems in registration order, one full pass per tick, on the
// calling goroutine. Startup systems run once, before the first tick's systems.
type Scheduler struct {
	storage *Storage
	startup []*registeredSystem
	systems []*registeredSystem
	started bool
	ticks   uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Register appends a system to the per-tick pass and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, s.newRegistered(system, nil, false))
}

// RegisterIf appends a system that only runs on ticks where cond holds.
func (s *Scheduler) RegisterIf(system System, cond Condition) {
	s.systems = append(s.systems, s.newRegistered(system, cond, false))
}

// RegisterStartup adds a system that runs exactly once, before the first tick.
// Commands queued by startup systems are flushed before the first tick runs.
func (s *Scheduler) RegisterStartup(system System) {
	s.startup = append(s.startup, s.newRegistered(system, nil, true))
}

func (s *Scheduler) newRegistered(system System, cond Condition, startup bool) *registeredSystem {
	s.initializeQueries(system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	return &registeredSystem{
		system:    system,
		condition: cond,
		startup:   startup,
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
}

// initializeQueries calls Init(storage) on every exported Query[...] and Singleton[...]
// field of the system struct.
func (s *Scheduler) initializeQueries(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		if !strings.HasPrefix(typeName, "Query[") && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + fieldType.Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})
	}
}

func (s *Scheduler) run(rs *registeredSystem, frame *UpdateFrame) {
	stats := rs.stats
	if rs.condition != nil && !rs.condition(s.storage) {
		stats.skipCount++
		return
	}

	start := time.Now()
	rs.system.Execute(frame)
	duration := time.Since(start)

	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Once runs one tick with the given delta time (seconds). On the first call the
// startup systems run first and their commands are flushed.
func (s *Scheduler) Once(dt float64) {
	if !s.started {
		s.started = true
		frame := newUpdateFrame(0, s.ticks, s.storage)
		for _, rs := range s.startup {
			s.run(rs, frame)
		}
		frame.Commands.Flush(s.storage)
	}

	frame := newUpdateFrame(dt, s.ticks, s.storage)
	for _, rs := range s.systems {
		s.run(rs, frame)
	}
	frame.Commands.Flush(s.storage)
	s.ticks++
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
// The delta time of each tick is the wall-clock time since the previous one.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution, startup systems first.
func (s *Scheduler) GetStats() *SchedulerStats {
	all := make([]*registeredSystem, 0, len(s.startup)+len(s.systems))
	all = append(all, s.startup...)
	all = append(all, s.systems...)

	stats := &SchedulerStats{
		SystemCount: len(all),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(all)),
	}

	for i, rs := range all {
		internal := rs.stats
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Startup:        rs.startup,
			ExecutionCount: internal.executionCount,
			SkipCount:      internal.skipCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
