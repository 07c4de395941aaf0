package rig_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orbitrig/ecs"
	"github.com/plus3/orbitrig/rig"
)

const dt = 1.0 / 60

func systemStats(t *testing.T, w *rig.World, name string) ecs.SystemStats {
	t.Helper()
	for _, s := range w.Scheduler.GetStats().Systems {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("system %s not registered", name)
	return ecs.SystemStats{}
}

func TestWorldSetup(t *testing.T) {
	w := rig.NewWorld(rig.Options{})

	_, _, _, ok := w.Rig()
	assert.False(t, ok, "nothing spawned before the first tick")

	w.Step(dt)

	state, settings, transform, ok := w.Rig()
	require.True(t, ok)
	subject, velocity, grounded, ok := w.Subject()
	require.True(t, ok)

	setup := rig.DefaultSetup()
	assert.Equal(t, setup.SubjectStart, state.Center, "tracker runs before physics")
	assert.Equal(t, setup.Rig.Radius, state.Radius)
	assert.Equal(t, setup.Rig.Yaw, state.Yaw)
	assert.Equal(t, setup.Rig.Pitch, state.Pitch)
	assert.Equal(t, rig.DefaultOrbitSettings(), *settings)
	assert.Equal(t, state.Transform(), *transform)

	assert.Less(t, subject.Translation.Y(), setup.SubjectStart.Y())
	assert.Negative(t, velocity.Linear.Y())
	assert.False(t, bool(*grounded))

	ids := w.Entities()
	assert.NotEqual(t, ids.Subject, ids.Rig)
}

func TestTrackerFollowsSubject(t *testing.T) {
	w := rig.NewWorld(rig.Options{})
	w.Step(dt)

	subject, _, _, _ := w.Subject()
	subject.Translation = mgl32.Vec3{10, 20, 30}
	w.Step(dt)

	state, _, transform, _ := w.Rig()
	assert.Equal(t, mgl32.Vec3{10, 20, 30}, state.Center)
	assertVec(t, state.Center.Add(transform.Back().Mul(state.Radius)), transform.Translation)
}

func TestTrackerNeedsExactlyOneRig(t *testing.T) {
	w := rig.NewWorld(rig.Options{})
	w.Step(dt)

	w.Storage.Spawn(rig.OrbitState{Radius: 1})
	subject, _, _, _ := w.Subject()
	subject.Translation = mgl32.Vec3{5, 5, 5}
	w.Step(dt)

	state, _, _, _ := w.Rig()
	assert.NotEqual(t, mgl32.Vec3{5, 5, 5}, state.Center)
}

func TestSubjectSettlesOnGround(t *testing.T) {
	w := rig.NewWorld(rig.Options{})
	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	subject, velocity, grounded, ok := w.Subject()
	require.True(t, ok)
	assert.Equal(t, rig.DefaultPhysicsSettings().GroundHeight, subject.Translation.Y())
	assert.Equal(t, float32(0), velocity.Linear.Y())
	assert.True(t, bool(*grounded))
}

func TestMovementFollowsCameraYaw(t *testing.T) {
	w := rig.NewWorld(rig.Options{})
	w.Step(dt)

	w.Input().Keys.Press(rig.KeyW)
	w.Step(dt)

	_, velocity, _, _ := w.Subject()
	yaw := rig.DefaultSetup().Rig.Yaw
	want := mgl32.Vec3{-sin(yaw), 0, -cos(yaw)}.Mul(rig.DefaultMovementSettings().Speed)
	assert.InDelta(t, want.X(), velocity.Linear.X(), eps)
	assert.InDelta(t, want.Z(), velocity.Linear.Z(), eps)

	// no friction: letting go keeps the last horizontal velocity
	w.Input().Keys.Release(rig.KeyW)
	w.Step(dt)
	_, after, _, _ := w.Subject()
	assert.InDelta(t, want.X(), after.Linear.X(), eps)
	assert.InDelta(t, want.Z(), after.Linear.Z(), eps)
}

func TestJumpRequiresGround(t *testing.T) {
	physics := rig.DefaultPhysicsSettings()
	w := rig.NewWorld(rig.Options{})

	w.Input().Keys.Press(rig.KeySpace)
	w.Step(dt)
	_, velocity, _, _ := w.Subject()
	assert.InDelta(t, physics.Gravity*dt, velocity.Linear.Y(), eps, "airborne jump is ignored")

	w.Input().Keys.Release(rig.KeySpace)
	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	_, _, grounded, _ := w.Subject()
	require.True(t, bool(*grounded))

	w.Input().Keys.Press(rig.KeySpace)
	w.Step(dt)
	_, velocity, grounded, _ = w.Subject()
	assert.InDelta(t, rig.DefaultMovementSettings().JumpSpeed+physics.Gravity*dt, velocity.Linear.Y(), eps)
	assert.False(t, bool(*grounded))
}

func TestInputFrameClearsEdgesAndEvents(t *testing.T) {
	w := rig.NewWorld(rig.Options{})
	w.Step(dt)

	in := w.Input()
	in.Keys.Press(rig.KeyW)
	in.Events.Push(rig.MotionEvent(1, 1))
	w.Step(dt)

	assert.True(t, in.Keys.Pressed(rig.KeyW))
	assert.False(t, in.Keys.JustPressed(rig.KeyW))
	assert.Zero(t, in.Events.Len())
}

func TestOrbitCameraSkippedWithoutRig(t *testing.T) {
	w := rig.NewWorld(rig.Options{})
	w.Step(dt)
	assert.Equal(t, int64(1), systemStats(t, w, "OrbitCameraSystem").ExecutionCount)

	w.Storage.Delete(w.Entities().Rig)
	w.Input().Events.Push(rig.ScrollEvent(rig.ScrollLine, 0, 1))
	w.Step(dt)

	stats := systemStats(t, w, "OrbitCameraSystem")
	assert.Equal(t, int64(1), stats.ExecutionCount)
	assert.Equal(t, int64(1), stats.SkipCount)
	assert.Zero(t, w.Input().Events.Len(), "undrained events are dropped at end of tick")

	_, _, _, ok := w.Rig()
	assert.False(t, ok)
}

func TestWorldOptions(t *testing.T) {
	setup := rig.DefaultSetup()
	setup.SubjectStart = mgl32.Vec3{0, 50, 0}
	setup.Settings.ScrollAction = rig.ActionNone
	physics := rig.PhysicsSettings{Gravity: 0, GroundHeight: -1}

	var order []string
	w := rig.NewWorld(rig.Options{
		Setup:   &setup,
		Physics: &physics,
		Before:  []ecs.System{recorder{"before", &order}},
		After:   []ecs.System{recorder{"after", &order}},
	})
	w.Input().Events.Push(rig.ScrollEvent(rig.ScrollLine, 0, 1))
	w.Step(dt)
	w.Step(dt)

	subject, _, _, _ := w.Subject()
	assert.Equal(t, setup.SubjectStart, subject.Translation, "no gravity")
	state, _, _, _ := w.Rig()
	assert.Equal(t, setup.Rig.Radius, state.Radius, "scroll is unbound")
	assert.Equal(t, []string{"before", "after", "before", "after"}, order)
}

type recorder struct {
	name  string
	order *[]string
}

func (r recorder) Execute(frame *ecs.UpdateFrame) {
	*r.order = append(*r.order, r.name)
}
