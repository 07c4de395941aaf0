package rig

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
)

// ButtonInput tracks which buttons of one device are held, plus the buttons that
// changed state since the last ClearEdges. The zero value is ready to use.
type ButtonInput[T intmap.IntKey] struct {
	pressed      *intmap.Set[T]
	justPressed  *intmap.Set[T]
	justReleased *intmap.Set[T]
}

func (b *ButtonInput[T]) init() {
	if b.pressed == nil {
		b.pressed = intmap.NewSet[T](16)
		b.justPressed = intmap.NewSet[T](8)
		b.justReleased = intmap.NewSet[T](8)
	}
}

// Press marks button as held. It only registers a press edge if it was not already held.
func (b *ButtonInput[T]) Press(button T) {
	b.init()
	if b.pressed.Add(button) {
		b.justPressed.Add(button)
	}
}

// Release marks button as no longer held.
func (b *ButtonInput[T]) Release(button T) {
	b.init()
	if b.pressed.Del(button) {
		b.justReleased.Add(button)
	}
}

// Set presses or releases button.
func (b *ButtonInput[T]) Set(button T, down bool) {
	if down {
		b.Press(button)
	} else {
		b.Release(button)
	}
}

// Pressed reports whether button is held.
func (b *ButtonInput[T]) Pressed(button T) bool {
	return b.pressed != nil && b.pressed.Has(button)
}

// JustPressed reports whether button went down since the last ClearEdges.
func (b *ButtonInput[T]) JustPressed(button T) bool {
	return b.justPressed != nil && b.justPressed.Has(button)
}

// JustReleased reports whether button went up since the last ClearEdges.
func (b *ButtonInput[T]) JustReleased(button T) bool {
	return b.justReleased != nil && b.justReleased.Has(button)
}

// Held yields every held button, in no particular order.
func (b *ButtonInput[T]) Held() iter.Seq[T] {
	return func(yield func(T) bool) {
		if b.pressed == nil {
			return
		}
		for button := range b.pressed.All() {
			if !yield(button) {
				return
			}
		}
	}
}

// ClearEdges forgets press and release edges but keeps held state.
func (b *ButtonInput[T]) ClearEdges() {
	if b.pressed == nil {
		return
	}
	b.justPressed.Clear()
	b.justReleased.Clear()
}

// ReleaseAll releases every held button.
func (b *ButtonInput[T]) ReleaseAll() {
	for _, button := range collect(b.Held()) {
		b.Release(button)
	}
}

func collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// ScrollUnit is the unit a scroll delta was reported in.
type ScrollUnit uint8

const (
	// ScrollLine comes from notched wheels; one unit is one detent.
	ScrollLine ScrollUnit = iota
	// ScrollPixel comes from smooth-scrolling devices such as touchpads.
	ScrollPixel
)

// EventKind distinguishes pointer motion from scroll events.
type EventKind uint8

const (
	EventMotion EventKind = iota
	EventScroll
)

// InputEvent is one raw pointer event. Motion deltas are in window pixels with y
// pointing down; scroll deltas are positive for right and up.
type InputEvent struct {
	Kind  EventKind
	Delta mgl32.Vec2
	Unit  ScrollUnit
}

// MotionEvent builds a pointer-motion event.
func MotionEvent(dx, dy float32) InputEvent {
	return InputEvent{Kind: EventMotion, Delta: mgl32.Vec2{dx, dy}}
}

// ScrollEvent builds a scroll event.
func ScrollEvent(unit ScrollUnit, x, y float32) InputEvent {
	return InputEvent{Kind: EventScroll, Delta: mgl32.Vec2{x, y}, Unit: unit}
}

// EventQueue is a FIFO of raw pointer events for the next tick.
type EventQueue struct {
	items []InputEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt InputEvent) {
	q.items = append(q.items, evt)
}

// Drain returns all queued events and empties the queue. Events pushed after Drain
// returns belong to the next drain.
func (q *EventQueue) Drain() []InputEvent {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.items)
}

// InputState is the per-tick input snapshot the host fills in between ticks.
type InputState struct {
	Keys    ButtonInput[Key]
	Buttons ButtonInput[MouseButton]
	Events  EventQueue
}

// FrameInput is the pointer input of one tick, summed per kind.
type FrameInput struct {
	Motion       mgl32.Vec2
	ScrollLines  mgl32.Vec2
	ScrollPixels mgl32.Vec2
}

// AccumulateInput sums events into a FrameInput. Vertical scroll is negated so that
// scrolling up has the same sign as moving the pointer up the screen.
func AccumulateInput(events []InputEvent) FrameInput {
	var in FrameInput
	for _, ev := range events {
		switch ev.Kind {
		case EventMotion:
			in.Motion = in.Motion.Add(ev.Delta)
		case EventScroll:
			scroll := mgl32.Vec2{ev.Delta.X(), -ev.Delta.Y()}
			if ev.Unit == ScrollPixel {
				in.ScrollPixels = in.ScrollPixels.Add(scroll)
			} else {
				in.ScrollLines = in.ScrollLines.Add(scroll)
			}
		}
	}
	return in
}
