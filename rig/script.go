package rig

import (
	"fmt"
	"slices"

	"github.com/plus3/orbitrig/ecs"
)

// ScriptStep is a stretch of identical input. Every tick of the step holds the
// listed bindings and pushes the given motion and scroll deltas.
type ScriptStep struct {
	// Ticks is how long the step lasts. Values below one count as one.
	Ticks int `yaml:"ticks"`
	// Hold lists bindings such as "key:W" or "mouse:Right".
	Hold         []string   `yaml:"hold,omitempty"`
	Motion       [2]float32 `yaml:"motion,omitempty"`
	ScrollLines  [2]float32 `yaml:"scroll_lines,omitempty"`
	ScrollPixels [2]float32 `yaml:"scroll_pixels,omitempty"`
}

// Script is a recorded input sequence for running a world without a window.
type Script struct {
	Name  string       `yaml:"name"`
	Steps []ScriptStep `yaml:"steps"`
}

// Ticks returns the total length of the script.
func (s *Script) Ticks() int {
	n := 0
	for _, step := range s.Steps {
		n += max(step.Ticks, 1)
	}
	return n
}

type compiledStep struct {
	ticks int
	hold  []Binding
	step  ScriptStep
}

// ScriptedInputSystem feeds a Script into InputState, one tick at a time. Register
// it ahead of the systems that read input.
type ScriptedInputSystem struct {
	Input ecs.Singleton[InputState]

	steps []compiledStep
	step  int
	tick  int
	held  []Binding
}

// NewScriptedInput resolves every binding the script names.
func NewScriptedInput(script *Script) (*ScriptedInputSystem, error) {
	sys := &ScriptedInputSystem{}
	for i, step := range script.Steps {
		cs := compiledStep{ticks: max(step.Ticks, 1), step: step}
		for _, name := range step.Hold {
			b, err := ParseBinding(name)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			if b.Bound() {
				cs.hold = append(cs.hold, b)
			}
		}
		sys.steps = append(sys.steps, cs)
	}
	return sys, nil
}

// Done reports whether every step has been played.
func (s *ScriptedInputSystem) Done() bool {
	return s.step >= len(s.steps)
}

func (s *ScriptedInputSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil {
		return
	}
	if s.Done() {
		s.hold(input, nil)
		return
	}

	current := &s.steps[s.step]
	if s.tick == 0 {
		s.hold(input, current.hold)
	}

	if m := current.step.Motion; m != [2]float32{} {
		input.Events.Push(MotionEvent(m[0], m[1]))
	}
	if l := current.step.ScrollLines; l != [2]float32{} {
		input.Events.Push(ScrollEvent(ScrollLine, l[0], l[1]))
	}
	if p := current.step.ScrollPixels; p != [2]float32{} {
		input.Events.Push(ScrollEvent(ScrollPixel, p[0], p[1]))
	}

	s.tick++
	if s.tick >= current.ticks {
		s.step++
		s.tick = 0
	}
}

// hold releases bindings not in next and presses the new ones. Bindings held across
// steps keep their state and produce no new press edge.
func (s *ScriptedInputSystem) hold(input *InputState, next []Binding) {
	for _, b := range s.held {
		if !slices.Contains(next, b) {
			b.Release(input)
		}
	}
	for _, b := range next {
		if !slices.Contains(s.held, b) {
			b.Press(input)
		}
	}
	s.held = slices.Clone(next)
}
