package rig_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/orbitrig/rig"
)

func TestFreeFall(t *testing.T) {
	physics := rig.DefaultPhysicsSettings()
	const dt, n = float32(1.0 / 60), 60

	tr := rig.NewTransform(0, 100, 0)
	var v rig.Velocity
	var grounded rig.Grounded

	for i := 0; i < n; i++ {
		physics.Integrate(&tr, &v, &grounded, dt)
	}

	elapsed := dt * n
	assert.InDelta(t, physics.Gravity*elapsed, v.Linear.Y(), 1e-3)
	// semi-implicit Euler applies the updated velocity: sum of g*dt*i*dt for i = 1..n
	fallen := physics.Gravity * dt * dt * n * (n + 1) / 2
	assert.InDelta(t, 100+fallen, tr.Translation.Y(), 1e-3)
	assert.InDelta(t, 0.5*physics.Gravity*elapsed*elapsed, fallen, float64(-physics.Gravity*dt*elapsed))
	assert.False(t, bool(grounded))
}

func TestGroundClamp(t *testing.T) {
	physics := rig.DefaultPhysicsSettings()
	tr := rig.NewTransform(0, 1.2, 0)
	v := rig.Velocity{Linear: mgl32.Vec3{3, -10, -1}}
	var grounded rig.Grounded

	physics.Integrate(&tr, &v, &grounded, 0.1)

	assert.Equal(t, physics.GroundHeight, tr.Translation.Y())
	assert.Equal(t, float32(0), v.Linear.Y())
	assert.True(t, bool(grounded))
	assert.Equal(t, float32(3), v.Linear.X(), "no friction")
	assert.InDelta(t, 0.3, tr.Translation.X(), 1e-6)
	assert.InDelta(t, -0.1, tr.Translation.Z(), 1e-6)

	// resting stays resting
	physics.Integrate(&tr, &v, &grounded, 0.1)
	assert.Equal(t, physics.GroundHeight, tr.Translation.Y())
	assert.True(t, bool(grounded))
}

func TestLeavingTheGround(t *testing.T) {
	physics := rig.DefaultPhysicsSettings()
	tr := rig.NewTransform(0, physics.GroundHeight, 0)
	v := rig.Velocity{Linear: mgl32.Vec3{0, 10, 0}}
	grounded := rig.Grounded(true)

	physics.Integrate(&tr, &v, &grounded, 0.1)

	assert.False(t, bool(grounded))
	assert.Greater(t, tr.Translation.Y(), physics.GroundHeight)
	assert.InDelta(t, 10+physics.Gravity*0.1, v.Linear.Y(), 1e-5)
}
