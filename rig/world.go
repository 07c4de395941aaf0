package rig

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orbitrig/ecs"
)

// Setup describes what SetupSystem spawns.
type Setup struct {
	Rig      OrbitState
	Settings OrbitSettings
	// SubjectStart is where the player subject appears.
	SubjectStart mgl32.Vec3
}

// DefaultSetup places the rig 50 units out, pitched 15° and yawed 30°, and the
// subject just above the ground at the origin.
func DefaultSetup() Setup {
	return Setup{
		Rig: OrbitState{
			Center: mgl32.Vec3{1, 2, 3},
			Radius: 50,
			Pitch:  mgl32.DegToRad(15),
			Yaw:    mgl32.DegToRad(30),
		},
		Settings:     DefaultOrbitSettings(),
		SubjectStart: mgl32.Vec3{0, 2, 0},
	}
}

// Spawned records the entities SetupSystem created.
type Spawned struct {
	Subject ecs.EntityId
	Rig     ecs.EntityId
}

// SetupSystem spawns the subject and then the camera rig.
type SetupSystem struct {
	Setup   ecs.Singleton[Setup]
	Spawned ecs.Singleton[Spawned]
}

func (s *SetupSystem) Execute(frame *ecs.UpdateFrame) {
	setup := s.Setup.Get()
	if setup == nil {
		return
	}
	spawned := s.Spawned.Get()

	subject := Transform{Translation: setup.SubjectStart, Rotation: mgl32.QuatIdent()}
	frame.Commands.SpawnThen(func(id ecs.EntityId) {
		if spawned != nil {
			spawned.Subject = id
		}
	}, Player{}, LocalPlayer{}, Velocity{}, Grounded(false), subject)

	frame.Commands.SpawnThen(func(id ecs.EntityId) {
		if spawned != nil {
			spawned.Rig = id
		}
	}, setup.Rig, setup.Settings, setup.Rig.Transform())
}

// InputFrameSystem runs last in a tick. It forgets this tick's press and release
// edges and drops pointer events nobody drained.
type InputFrameSystem struct {
	Input ecs.Singleton[InputState]
}

func (s *InputFrameSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil {
		return
	}
	input.Keys.ClearEdges()
	input.Buttons.ClearEdges()
	input.Events.Drain()
}

// World bundles the storage and scheduler of one simulation.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	input   *ecs.Singleton[InputState]
	spawned *ecs.Singleton[Spawned]
}

// Options configures NewWorld. Zero fields take their defaults.
type Options struct {
	Setup    *Setup
	Movement *MovementSettings
	Physics  *PhysicsSettings
	// Before runs ahead of the tracker each tick, for input sources such as scripts.
	Before []ecs.System
	// After runs once physics has settled, ahead of input cleanup.
	After []ecs.System
	// Components registers extra component types, such as debug UI items.
	Components func(*ecs.ComponentRegistry)
}

// NewWorld builds storage and a scheduler running, in order: any Before systems,
// subject tracking, the orbit camera, movement, physics, any After systems and
// input frame cleanup.
func NewWorld(opts Options) *World {
	setup := DefaultSetup()
	if opts.Setup != nil {
		setup = *opts.Setup
	}
	movement := DefaultMovementSettings()
	if opts.Movement != nil {
		movement = *opts.Movement
	}
	physics := DefaultPhysicsSettings()
	if opts.Physics != nil {
		physics = *opts.Physics
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	if opts.Components != nil {
		opts.Components(registry)
	}
	storage := ecs.NewStorage(registry)

	w := &World{
		Storage: storage,
		input:   ecs.NewSingleton[InputState](storage),
		spawned: ecs.NewSingleton[Spawned](storage),
	}
	ecs.NewSingleton(storage, setup)
	ecs.NewSingleton(storage, movement)
	ecs.NewSingleton(storage, physics)

	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterStartup(&SetupSystem{})
	for _, sys := range opts.Before {
		scheduler.Register(sys)
	}
	scheduler.Register(&SubjectTrackerSystem{})
	scheduler.RegisterIf(&OrbitCameraSystem{}, ecs.AnyWith[OrbitState]())
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&PhysicsSystem{})
	for _, sys := range opts.After {
		scheduler.Register(sys)
	}
	scheduler.Register(&InputFrameSystem{})
	w.Scheduler = scheduler

	return w
}

// Input returns the input snapshot the host writes between ticks.
func (w *World) Input() *InputState {
	return w.input.Get()
}

// Step runs one tick of dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

// Entities returns the ids SetupSystem spawned. Both are zero before the first tick.
func (w *World) Entities() Spawned {
	return *w.spawned.Get()
}

// Rig returns the camera rig's state, settings and transform. ok is false before
// the first tick.
func (w *World) Rig() (state *OrbitState, settings *OrbitSettings, transform *Transform, ok bool) {
	id := w.spawned.Get().Rig
	state = ecs.ReadComponent[OrbitState](w.Storage, id)
	settings = ecs.ReadComponent[OrbitSettings](w.Storage, id)
	transform = ecs.ReadComponent[Transform](w.Storage, id)
	return state, settings, transform, state != nil && settings != nil && transform != nil
}

// Subject returns the tracked subject's transform, velocity and grounded flag. ok
// is false before the first tick.
func (w *World) Subject() (transform *Transform, velocity *Velocity, grounded *Grounded, ok bool) {
	id := w.spawned.Get().Subject
	transform = ecs.ReadComponent[Transform](w.Storage, id)
	velocity = ecs.ReadComponent[Velocity](w.Storage, id)
	grounded = ecs.ReadComponent[Grounded](w.Storage, id)
	return transform, velocity, grounded, transform != nil && velocity != nil && grounded != nil
}
