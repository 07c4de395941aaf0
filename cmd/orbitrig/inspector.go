package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orbitrig/rig"
)

func vecText(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}

// rigInspector shows the rig and subject and lets the sensitivities be tuned live.
type rigInspector struct {
	world *rig.World
	reset rig.OrbitState
}

func (ri *rigInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 400), imgui.CondOnce)
	if imgui.BeginV("Orbit Rig", nil, imgui.WindowFlagsNone) {
		ri.renderBody()
	}
	imgui.End()
}

func (ri *rigInspector) renderBody() {
	state, settings, camera, ok := ri.world.Rig()
	if !ok {
		imgui.Text("No camera rig")
		return
	}

	imgui.Text("Center: " + vecText(state.Center))
	imgui.Text(fmt.Sprintf("Radius: %.3f", state.Radius))
	imgui.Text(fmt.Sprintf("Yaw: %.1f°  Pitch: %.1f°", mgl32.RadToDeg(state.Yaw), mgl32.RadToDeg(state.Pitch)))
	imgui.Text(fmt.Sprintf("Upside down: %v", state.UpsideDown))
	imgui.Text("Camera: " + vecText(camera.Translation))
	if imgui.Button("Reset") {
		center := state.Center
		*state = ri.reset
		state.Center = center
	}

	if imgui.TreeNodeStr("Sensitivity") {
		imgui.InputFloat("Pan", &settings.PanSensitivity)
		deg := mgl32.RadToDeg(settings.OrbitSensitivity)
		if imgui.InputFloat("Orbit (deg/px)", &deg) {
			settings.OrbitSensitivity = mgl32.DegToRad(deg)
		}
		imgui.InputFloat("Zoom", &settings.ZoomSensitivity)
		imgui.InputFloat("Scroll line", &settings.ScrollLineSensitivity)
		imgui.InputFloat("Scroll pixel", &settings.ScrollPixelSensitivity)
		if imgui.InputFloat("Min radius", &settings.MinRadius) && settings.MinRadius <= 0 {
			settings.MinRadius = 0.01
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Bindings") {
		imgui.BulletText("Pan: " + settings.PanBinding.String())
		imgui.BulletText("Orbit: " + settings.OrbitBinding.String())
		imgui.BulletText("Zoom: " + settings.ZoomBinding.String())
		imgui.BulletText("Scroll: " + settings.ScrollAction.String())
		imgui.TreePop()
	}

	imgui.Separator()
	subject, velocity, grounded, ok := ri.world.Subject()
	if !ok {
		imgui.Text("No subject")
		return
	}
	imgui.Text("Subject: " + vecText(subject.Translation))
	imgui.Text("Velocity: " + vecText(velocity.Linear))
	imgui.Text(fmt.Sprintf("Grounded: %v", bool(*grounded)))
}
