package rig

import "github.com/go-gl/mathgl/mgl32"

// Axis directions in a right-handed, Y-up world where cameras look down -Z.
var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, -1}
)

// Transform is a world-space placement: rotation then translation.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// NewTransform returns an unrotated transform at (x, y, z).
func NewTransform(x, y, z float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, z},
		Rotation:    mgl32.QuatIdent(),
	}
}

func (t Transform) Forward() mgl32.Vec3 { return t.Rotation.Rotate(WorldForward) }
func (t Transform) Back() mgl32.Vec3    { return t.Forward().Mul(-1) }
func (t Transform) Right() mgl32.Vec3   { return t.Rotation.Rotate(WorldRight) }
func (t Transform) Up() mgl32.Vec3      { return t.Rotation.Rotate(WorldUp) }
