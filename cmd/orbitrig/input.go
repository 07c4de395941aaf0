package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orbitrig/ecs/debugui"
	"github.com/plus3/orbitrig/rig"
)

var keyMap = map[ebiten.Key]rig.Key{
	ebiten.KeySpace:        rig.KeySpace,
	ebiten.KeyEnter:        rig.KeyEnter,
	ebiten.KeyEscape:       rig.KeyEscape,
	ebiten.KeyTab:          rig.KeyTab,
	ebiten.KeyShiftLeft:    rig.KeyShiftLeft,
	ebiten.KeyShiftRight:   rig.KeyShiftRight,
	ebiten.KeyControlLeft:  rig.KeyControlLeft,
	ebiten.KeyControlRight: rig.KeyControlRight,
	ebiten.KeyAltLeft:      rig.KeyAltLeft,
	ebiten.KeyAltRight:     rig.KeyAltRight,
	ebiten.KeyArrowUp:      rig.KeyArrowUp,
	ebiten.KeyArrowDown:    rig.KeyArrowDown,
	ebiten.KeyArrowLeft:    rig.KeyArrowLeft,
	ebiten.KeyArrowRight:   rig.KeyArrowRight,
}

func init() {
	letters := []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
		ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
		ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	}
	for i, ek := range letters {
		keyMap[ek] = rig.KeyA + rig.Key(i)
	}
}

var buttonMap = map[ebiten.MouseButton]rig.MouseButton{
	ebiten.MouseButtonLeft:   rig.MouseButtonLeft,
	ebiten.MouseButtonRight:  rig.MouseButtonRight,
	ebiten.MouseButtonMiddle: rig.MouseButtonMiddle,
	ebiten.MouseButton3:      rig.MouseButtonBack,
	ebiten.MouseButton4:      rig.MouseButtonForward,
}

// inputAdapter polls ebiten once per tick and mirrors it into rig.InputState.
type inputAdapter struct {
	lastX, lastY int
	hasCursor    bool
}

func (a *inputAdapter) poll(in *rig.InputState, capture debugui.ImguiInputState) {
	if capture.WantCaptureKeyboard {
		in.Keys.ReleaseAll()
	} else {
		for ek, rk := range keyMap {
			in.Keys.Set(rk, ebiten.IsKeyPressed(ek))
		}
	}

	x, y := ebiten.CursorPosition()
	dx, dy := x-a.lastX, y-a.lastY
	moved := a.hasCursor && (dx != 0 || dy != 0)
	a.lastX, a.lastY, a.hasCursor = x, y, true

	if capture.WantCaptureMouse {
		// Gestures already under way may finish, new ones wait for the pointer to leave the UI.
		for eb, rb := range buttonMap {
			if !ebiten.IsMouseButtonPressed(eb) {
				in.Buttons.Release(rb)
			}
		}
		return
	}

	for eb, rb := range buttonMap {
		in.Buttons.Set(rb, ebiten.IsMouseButtonPressed(eb))
	}
	if moved {
		in.Events.Push(rig.MotionEvent(float32(dx), float32(dy)))
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		in.Events.Push(rig.ScrollEvent(rig.ScrollLine, float32(wx), float32(wy)))
	}
}
