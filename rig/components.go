package rig

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orbitrig/ecs"
)

// Player marks an entity moved by keyboard input.
type Player struct{}

// LocalPlayer marks the subject the camera rig follows.
type LocalPlayer struct{}

// Velocity is a subject's linear velocity in world units per second.
type Velocity struct {
	Linear mgl32.Vec3
}

// Grounded is true while the subject rests on the ground plane.
type Grounded bool

// RegisterComponents registers every component type this package spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[OrbitState](registry)
	ecs.RegisterComponent[OrbitSettings](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[LocalPlayer](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Grounded](registry)
}
