package rig

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orbitrig/ecs"
)

// MovementSettings maps keys to subject motion.
type MovementSettings struct {
	// Speed is the horizontal speed in world units per second.
	Speed float32
	// JumpSpeed is the vertical velocity a grounded jump starts with.
	JumpSpeed float32

	Forward Binding
	Back    Binding
	Left    Binding
	Right   Binding
	Jump    Binding
}

// DefaultMovementSettings returns WASD movement with space to jump.
func DefaultMovementSettings() MovementSettings {
	return MovementSettings{
		Speed:     5,
		JumpSpeed: 10,
		Forward:   KeyBinding(KeyW),
		Back:      KeyBinding(KeyS),
		Left:      KeyBinding(KeyA),
		Right:     KeyBinding(KeyD),
		Jump:      KeyBinding(KeySpace),
	}
}

// below this length a projected axis is treated as vertical
const minPlanarLength = 1e-4

func flatten(v mgl32.Vec3) (mgl32.Vec3, bool) {
	v[1] = 0
	if v.Len() < minPlanarLength {
		return mgl32.Vec3{}, false
	}
	return v.Normalize(), true
}

// PlanarAxes returns the camera's forward and right directions projected onto the
// ground plane. When the camera looks straight up or down its up vector stands in
// for forward. ok is false only if no horizontal facing can be recovered.
func PlanarAxes(camera Transform) (forward, right mgl32.Vec3, ok bool) {
	forward, ok = flatten(camera.Forward())
	if !ok {
		up := camera.Up()
		if camera.Forward().Y() > 0 {
			up = up.Mul(-1)
		}
		if forward, ok = flatten(up); !ok {
			return mgl32.Vec3{}, mgl32.Vec3{}, false
		}
	}

	right, ok = flatten(camera.Right())
	if !ok {
		// roll-free cameras never get here, but keep right perpendicular to forward
		right = forward.Cross(WorldUp).Normalize()
		ok = true
	}
	return forward, right, ok
}

// MoveDirection sums the held direction bindings into an unscaled planar direction.
func (m *MovementSettings) MoveDirection(in *InputState, forward, right mgl32.Vec3) mgl32.Vec3 {
	var dir mgl32.Vec3
	if m.Forward.Pressed(in) {
		dir = dir.Add(forward)
	}
	if m.Back.Pressed(in) {
		dir = dir.Sub(forward)
	}
	if m.Right.Pressed(in) {
		dir = dir.Add(right)
	}
	if m.Left.Pressed(in) {
		dir = dir.Sub(right)
	}
	return dir
}

// MovementSystem turns held keys into player velocity, relative to where the camera
// rig faces.
type MovementSystem struct {
	Players  ecs.Query[movingPlayer]
	Rigs     ecs.Query[cameraView]
	Input    ecs.Singleton[InputState]
	Settings ecs.Singleton[MovementSettings]
}

type movingPlayer struct {
	*Player
	Velocity *Velocity
	Grounded *Grounded
}

type cameraView struct {
	State     *OrbitState
	Transform *Transform
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	input, settings := s.Input.Get(), s.Settings.Get()
	if input == nil || settings == nil {
		return
	}
	camera, ok := s.Rigs.Single()
	if !ok {
		return
	}

	forward, right, planar := PlanarAxes(*camera.Transform)
	for p := range s.Players.Iter() {
		if planar {
			if dir := settings.MoveDirection(input, forward, right); dir.Len() > 0 {
				dir = dir.Mul(settings.Speed)
				p.Velocity.Linear[0] = dir.X()
				p.Velocity.Linear[2] = dir.Z()
			}
		}
		if bool(*p.Grounded) && settings.Jump.Pressed(input) {
			p.Velocity.Linear[1] = settings.JumpSpeed
		}
	}
}
