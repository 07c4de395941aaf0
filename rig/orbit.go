package rig

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orbitrig/ecs"
)

// OrbitAction is one of the three things pointer input can do to a rig.
type OrbitAction uint8

const (
	ActionNone OrbitAction = iota
	ActionPan
	ActionOrbit
	ActionZoom
)

func (a OrbitAction) String() string {
	switch a {
	case ActionPan:
		return "pan"
	case ActionOrbit:
		return "orbit"
	case ActionZoom:
		return "zoom"
	}
	return "none"
}

// ParseOrbitAction accepts "pan", "orbit", "zoom", "none" or "".
func ParseOrbitAction(s string) (OrbitAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ActionNone, nil
	case "pan":
		return ActionPan, nil
	case "orbit":
		return ActionOrbit, nil
	case "zoom":
		return ActionZoom, nil
	}
	return ActionNone, fmt.Errorf("unknown orbit action %q", s)
}

// OrbitState places a camera on a sphere around Center. Yaw and Pitch are radians
// kept in (-π, π].
type OrbitState struct {
	Center     mgl32.Vec3
	Radius     float32
	Pitch      float32
	Yaw        float32
	UpsideDown bool
}

// Transform derives the camera placement: yaw about world up, then pitch about the
// local right axis, no roll, backed off from Center by Radius.
func (s OrbitState) Transform() Transform {
	rotation := mgl32.QuatRotate(s.Yaw, WorldUp).Mul(mgl32.QuatRotate(s.Pitch, WorldRight))
	t := Transform{Rotation: rotation}
	t.Translation = s.Center.Add(t.Back().Mul(s.Radius))
	return t
}

// OrbitSettings tunes how input drives an OrbitState.
type OrbitSettings struct {
	// World units per pixel of pointer motion.
	PanSensitivity float32
	// Radians per pixel of pointer motion.
	OrbitSensitivity float32
	// Exponent per pixel of pointer motion.
	ZoomSensitivity float32

	PanBinding   Binding
	OrbitBinding Binding
	ZoomBinding  Binding

	// ScrollAction names the action the scroll wheel drives, if any.
	ScrollAction OrbitAction
	// Pixels of motion per notched-wheel line.
	ScrollLineSensitivity float32
	// Pixels of motion per smooth-scroll pixel.
	ScrollPixelSensitivity float32

	// MinRadius is the closest zoom allowed; Radius never drops below it.
	MinRadius float32
}

// DefaultOrbitSettings returns the stock bindings: hold left control to pan, the
// right mouse button to orbit, left shift to zoom, and scroll to zoom.
func DefaultOrbitSettings() OrbitSettings {
	return OrbitSettings{
		PanSensitivity:         0.001,
		OrbitSensitivity:       mgl32.DegToRad(0.1),
		ZoomSensitivity:        0.01,
		PanBinding:             KeyBinding(KeyControlLeft),
		OrbitBinding:           MouseBinding(MouseButtonRight),
		ZoomBinding:            KeyBinding(KeyShiftLeft),
		ScrollAction:           ActionZoom,
		ScrollLineSensitivity:  16,
		ScrollPixelSensitivity: 1,
		MinRadius:              0.01,
	}
}

func (s *OrbitSettings) sensitivity(action OrbitAction) float32 {
	switch action {
	case ActionPan:
		return s.PanSensitivity
	case ActionOrbit:
		return s.OrbitSensitivity
	case ActionZoom:
		return s.ZoomSensitivity
	}
	return 0
}

func (s *OrbitSettings) binding(action OrbitAction) Binding {
	switch action {
	case ActionPan:
		return s.PanBinding
	case ActionOrbit:
		return s.OrbitBinding
	case ActionZoom:
		return s.ZoomBinding
	}
	return Binding{}
}

// actionDelta sums what this tick's input asks of one action. Deltas are subtracted
// so that dragging or scrolling moves the scene with the pointer.
func (s *OrbitSettings) actionDelta(action OrbitAction, keys *InputState, in FrameInput) mgl32.Vec2 {
	var delta mgl32.Vec2
	sens := s.sensitivity(action)
	if s.binding(action).Pressed(keys) {
		delta = delta.Sub(in.Motion.Mul(sens))
	}
	if s.ScrollAction == action {
		delta = delta.Sub(in.ScrollLines.Mul(s.ScrollLineSensitivity * sens))
		delta = delta.Sub(in.ScrollPixels.Mul(s.ScrollPixelSensitivity * sens))
	}
	return delta
}

// wrapAngle folds a once into (-π, π]. One correction per call is enough for
// per-tick deltas smaller than a full turn.
func wrapAngle(a float32) float32 {
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// ApplyOrbitInput advances state by one tick of input and returns the new camera
// transform. prev is the transform from the previous tick; panning moves along its
// right and up axes.
func ApplyOrbitInput(state *OrbitState, settings *OrbitSettings, prev Transform, keys *InputState, in FrameInput) Transform {
	pan := settings.actionDelta(ActionPan, keys, in)
	orbit := settings.actionDelta(ActionOrbit, keys, in)
	zoom := settings.actionDelta(ActionZoom, keys, in)

	// The flip is decided once per gesture, from the pitch before this tick's orbit.
	if settings.OrbitBinding.JustPressed(keys) {
		state.UpsideDown = state.Pitch < -math.Pi/2 || state.Pitch > math.Pi/2
	}
	if state.UpsideDown {
		orbit[0] = -orbit[0]
	}

	if zoom != (mgl32.Vec2{}) {
		state.Radius *= float32(math.Exp(float64(-zoom.Y())))
		if state.Radius < settings.MinRadius {
			state.Radius = settings.MinRadius
		}
	}

	if orbit != (mgl32.Vec2{}) {
		state.Yaw = wrapAngle(state.Yaw + orbit.X())
		state.Pitch = wrapAngle(state.Pitch + orbit.Y())
	}

	if pan != (mgl32.Vec2{}) {
		offset := prev.Right().Mul(pan.X() * state.Radius).Add(prev.Up().Mul(pan.Y() * state.Radius))
		state.Center = state.Center.Add(offset)
	}

	return state.Transform()
}

// OrbitCameraSystem drives every entity carrying OrbitState, OrbitSettings and
// Transform. Pointer events are drained once per tick, even with several rigs.
type OrbitCameraSystem struct {
	Rigs  ecs.Query[orbitRig]
	Input ecs.Singleton[InputState]
}

type orbitRig struct {
	State     *OrbitState
	Settings  *OrbitSettings
	Transform *Transform
}

func (s *OrbitCameraSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil {
		return
	}
	in := AccumulateInput(input.Events.Drain())

	for rig := range s.Rigs.Iter() {
		*rig.Transform = ApplyOrbitInput(rig.State, rig.Settings, *rig.Transform, input, in)
	}
}
