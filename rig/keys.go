package rig

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key independently of any windowing library.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:      "Unknown",
	KeySpace:        "Space",
	KeyEnter:        "Enter",
	KeyEscape:       "Escape",
	KeyTab:          "Tab",
	KeyShiftLeft:    "ShiftLeft",
	KeyShiftRight:   "ShiftRight",
	KeyControlLeft:  "ControlLeft",
	KeyControlRight: "ControlRight",
	KeyAltLeft:      "AltLeft",
	KeyAltRight:     "AltRight",
	KeyArrowUp:      "ArrowUp",
	KeyArrowDown:    "ArrowDown",
	KeyArrowLeft:    "ArrowLeft",
	KeyArrowRight:   "ArrowRight",
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + int(k-KeyA)))
	}
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// ParseKey resolves a key name such as "W", "Space" or "ControlLeft".
// Matching ignores case.
func ParseKey(name string) (Key, error) {
	for k := KeyA; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonUnknown MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonBack
	MouseButtonForward
	mouseButtonCount
)

var mouseButtonNames = [mouseButtonCount]string{
	MouseButtonUnknown: "Unknown",
	MouseButtonLeft:    "Left",
	MouseButtonRight:   "Right",
	MouseButtonMiddle:  "Middle",
	MouseButtonBack:    "Back",
	MouseButtonForward: "Forward",
}

func (b MouseButton) String() string {
	if b < mouseButtonCount {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("MouseButton(%d)", uint8(b))
}

// ParseMouseButton resolves "Left", "Right", "Middle", "Back" or "Forward".
func ParseMouseButton(name string) (MouseButton, error) {
	for b := MouseButtonLeft; b < mouseButtonCount; b++ {
		if strings.EqualFold(mouseButtonNames[b], name) {
			return b, nil
		}
	}
	return MouseButtonUnknown, fmt.Errorf("unknown mouse button %q", name)
}
