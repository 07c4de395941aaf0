package rig

import "github.com/plus3/orbitrig/ecs"

// PhysicsSettings holds the integrator constants.
type PhysicsSettings struct {
	// Gravity is the vertical acceleration in world units per second squared.
	Gravity float32
	// GroundHeight is the lowest y a subject's origin may reach.
	GroundHeight float32
}

// DefaultPhysicsSettings returns twice earth gravity over a ground at y=1.15, which
// rests a capsule of half-height 1.15 on a plane at y=0.
func DefaultPhysicsSettings() PhysicsSettings {
	return PhysicsSettings{
		Gravity:      -9.81 * 2,
		GroundHeight: 1.15,
	}
}

// Integrate advances one subject by dt seconds with semi-implicit Euler and resolves
// contact with the ground plane.
func (p *PhysicsSettings) Integrate(t *Transform, v *Velocity, grounded *Grounded, dt float32) {
	v.Linear[1] += p.Gravity * dt
	t.Translation = t.Translation.Add(v.Linear.Mul(dt))

	if t.Translation.Y() <= p.GroundHeight {
		t.Translation[1] = p.GroundHeight
		v.Linear[1] = 0
		*grounded = true
	} else {
		*grounded = false
	}
}

// PhysicsSystem integrates every player.
type PhysicsSystem struct {
	Bodies   ecs.Query[body]
	Settings ecs.Singleton[PhysicsSettings]
}

type body struct {
	*Player
	Transform *Transform
	Velocity  *Velocity
	Grounded  *Grounded
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	if settings == nil {
		return
	}
	dt := float32(frame.DeltaTime)
	for b := range s.Bodies.Iter() {
		settings.Integrate(b.Transform, b.Velocity, b.Grounded, dt)
	}
}
