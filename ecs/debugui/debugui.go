// Package debugui renders Dear ImGui windows from ECS entities. Any entity carrying
// an ImguiItem gets its Render function called once per tick, after the systems of
// that tick have run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbitrig/ecs"
)

// ImguiItem holds a render function that draws ImGui widgets.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard this frame.
// Hosts check it before forwarding input to the simulation.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// CurrentCapture reads the capture flags from the active ImGui context.
func CurrentCapture() ImguiInputState {
	io := imgui.CurrentIO()
	return ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem render to the end
// of the tick.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]

	// Capture overrides where capture flags come from. Nil reads CurrentCapture.
	Capture func() ImguiInputState
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		capture := i.Capture
		if capture == nil {
			capture = CurrentCapture
		}
		*state = capture()
	}

	for item := range i.Items.Iter() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// RegisterComponents registers the component types this package spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
