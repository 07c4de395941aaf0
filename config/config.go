// Package config loads rig, movement and physics settings from YAML.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/plus3/orbitrig/rig"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type CameraSpec struct {
	Center       [3]float32 `yaml:"center"`
	Radius       float32    `yaml:"radius"`
	PitchDegrees float32    `yaml:"pitch_degrees"`
	YawDegrees   float32    `yaml:"yaw_degrees"`
}

type OrbitSpec struct {
	PanSensitivity          float32 `yaml:"pan_sensitivity"`
	OrbitSensitivityDegrees float32 `yaml:"orbit_sensitivity_degrees"`
	ZoomSensitivity         float32 `yaml:"zoom_sensitivity"`
	PanBinding              string  `yaml:"pan_binding"`
	OrbitBinding            string  `yaml:"orbit_binding"`
	ZoomBinding             string  `yaml:"zoom_binding"`
	ScrollAction            string  `yaml:"scroll_action"`
	ScrollLineSensitivity   float32 `yaml:"scroll_line_sensitivity"`
	ScrollPixelSensitivity  float32 `yaml:"scroll_pixel_sensitivity"`
	MinRadius               float32 `yaml:"min_radius"`
}

type SubjectSpec struct {
	Start [3]float32 `yaml:"start"`
}

type MovementSpec struct {
	Speed     float32 `yaml:"speed"`
	JumpSpeed float32 `yaml:"jump_speed"`
	Forward   string  `yaml:"forward"`
	Back      string  `yaml:"back"`
	Left      string  `yaml:"left"`
	Right     string  `yaml:"right"`
	Jump      string  `yaml:"jump"`
}

type PhysicsSpec struct {
	Gravity      float32 `yaml:"gravity"`
	GroundHeight float32 `yaml:"ground_height"`
}

// Config is the on-disk shape of all tunables. Missing keys keep their defaults.
type Config struct {
	Camera   CameraSpec   `yaml:"camera"`
	Orbit    OrbitSpec    `yaml:"orbit"`
	Subject  SubjectSpec  `yaml:"subject"`
	Movement MovementSpec `yaml:"movement"`
	Physics  PhysicsSpec  `yaml:"physics"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Parse overlays data on the built-in defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal defaults: %w", err)
	}
	if len(data) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: unmarshal: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the file at path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// Validate checks ranges and that every binding and action name resolves.
func (c *Config) Validate() error {
	if !(c.Camera.Radius > 0) || !finite(c.Camera.Radius) {
		return invalid("camera.radius must be positive, got %v", c.Camera.Radius)
	}
	if !(c.Orbit.MinRadius > 0) {
		return invalid("orbit.min_radius must be positive, got %v", c.Orbit.MinRadius)
	}
	if c.Camera.Radius < c.Orbit.MinRadius {
		return invalid("camera.radius %v is below orbit.min_radius %v", c.Camera.Radius, c.Orbit.MinRadius)
	}
	if math.Abs(float64(c.Camera.PitchDegrees)) > 180 || math.Abs(float64(c.Camera.YawDegrees)) > 180 {
		return invalid("camera pitch and yaw must be within [-180, 180] degrees")
	}
	if c.Orbit.ScrollLineSensitivity < 0 || c.Orbit.ScrollPixelSensitivity < 0 {
		return invalid("scroll sensitivities must not be negative")
	}
	if !finite(c.Physics.Gravity) || !finite(c.Physics.GroundHeight) {
		return invalid("physics constants must be finite")
	}

	bindings := []struct{ name, value string }{
		{"orbit.pan_binding", c.Orbit.PanBinding},
		{"orbit.orbit_binding", c.Orbit.OrbitBinding},
		{"orbit.zoom_binding", c.Orbit.ZoomBinding},
		{"movement.forward", c.Movement.Forward},
		{"movement.back", c.Movement.Back},
		{"movement.left", c.Movement.Left},
		{"movement.right", c.Movement.Right},
		{"movement.jump", c.Movement.Jump},
	}
	for _, b := range bindings {
		if _, err := rig.ParseBinding(b.value); err != nil {
			return invalid("%s: %v", b.name, err)
		}
	}
	if _, err := rig.ParseOrbitAction(c.Orbit.ScrollAction); err != nil {
		return invalid("orbit.scroll_action: %v", err)
	}
	return nil
}

func mustBinding(s string) rig.Binding {
	b, err := rig.ParseBinding(s)
	if err != nil {
		panic(err)
	}
	return b
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// OrbitSettings converts the orbit section. The config must have passed Validate.
func (c *Config) OrbitSettings() rig.OrbitSettings {
	action, _ := rig.ParseOrbitAction(c.Orbit.ScrollAction)
	return rig.OrbitSettings{
		PanSensitivity:         c.Orbit.PanSensitivity,
		OrbitSensitivity:       mgl32.DegToRad(c.Orbit.OrbitSensitivityDegrees),
		ZoomSensitivity:        c.Orbit.ZoomSensitivity,
		PanBinding:             mustBinding(c.Orbit.PanBinding),
		OrbitBinding:           mustBinding(c.Orbit.OrbitBinding),
		ZoomBinding:            mustBinding(c.Orbit.ZoomBinding),
		ScrollAction:           action,
		ScrollLineSensitivity:  c.Orbit.ScrollLineSensitivity,
		ScrollPixelSensitivity: c.Orbit.ScrollPixelSensitivity,
		MinRadius:              c.Orbit.MinRadius,
	}
}

// Setup converts the camera, orbit and subject sections.
func (c *Config) Setup() rig.Setup {
	return rig.Setup{
		Rig: rig.OrbitState{
			Center: vec3(c.Camera.Center),
			Radius: c.Camera.Radius,
			Pitch:  mgl32.DegToRad(c.Camera.PitchDegrees),
			Yaw:    mgl32.DegToRad(c.Camera.YawDegrees),
		},
		Settings:     c.OrbitSettings(),
		SubjectStart: vec3(c.Subject.Start),
	}
}

// MovementSettings converts the movement section.
func (c *Config) MovementSettings() rig.MovementSettings {
	return rig.MovementSettings{
		Speed:     c.Movement.Speed,
		JumpSpeed: c.Movement.JumpSpeed,
		Forward:   mustBinding(c.Movement.Forward),
		Back:      mustBinding(c.Movement.Back),
		Left:      mustBinding(c.Movement.Left),
		Right:     mustBinding(c.Movement.Right),
		Jump:      mustBinding(c.Movement.Jump),
	}
}

// PhysicsSettings converts the physics section.
func (c *Config) PhysicsSettings() rig.PhysicsSettings {
	return rig.PhysicsSettings{
		Gravity:      c.Physics.Gravity,
		GroundHeight: c.Physics.GroundHeight,
	}
}

// Options bundles every section into world options.
func (c *Config) Options() rig.Options {
	setup := c.Setup()
	movement := c.MovementSettings()
	physics := c.PhysicsSettings()
	return rig.Options{
		Setup:    &setup,
		Movement: &movement,
		Physics:  &physics,
	}
}
