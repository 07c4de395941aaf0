package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orbitrig/rig"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReport(t *testing.T) {
	report := &Report{Script: "none", UPS: 60}
	world := rig.NewWorld(rig.Options{})
	require.Error(t, report.Collect(world), "nothing spawned yet")

	for i := 0; i < 10; i++ {
		world.Step(1.0 / 60)
	}
	report.Ticks = world.Scheduler.Ticks()
	require.NoError(t, report.Collect(world))

	var out strings.Builder
	require.NoError(t, report.Generate(&out))
	text := out.String()

	assert.Contains(t, text, "built-in defaults")
	assert.Contains(t, text, "- **Radius:** 50.0000")
	assert.Contains(t, text, "- **Yaw:** 30.00°")
	assert.Contains(t, text, "- **Ticks:** 10")
	assert.Contains(t, text, "| SetupSystem (startup) | 1 | 0 |")
	assert.Contains(t, text, "| OrbitCameraSystem | 10 | 0 |")
}
