package rig

import (
	"fmt"
	"strings"
)

// BindingKind says which device a Binding listens to.
type BindingKind uint8

const (
	BindNone BindingKind = iota
	BindKey
	BindMouse
)

// Binding names one key or one mouse button. The zero value is unbound and never
// reports as pressed.
type Binding struct {
	Kind   BindingKind
	Key    Key
	Button MouseButton
}

// KeyBinding binds a keyboard key.
func KeyBinding(k Key) Binding {
	return Binding{Kind: BindKey, Key: k}
}

// MouseBinding binds a mouse button.
func MouseBinding(b MouseButton) Binding {
	return Binding{Kind: BindMouse, Button: b}
}

// Bound reports whether the binding names anything.
func (b Binding) Bound() bool {
	return b.Kind != BindNone
}

// Pressed reports whether the bound key or button is held.
func (b Binding) Pressed(in *InputState) bool {
	switch b.Kind {
	case BindKey:
		return in.Keys.Pressed(b.Key)
	case BindMouse:
		return in.Buttons.Pressed(b.Button)
	}
	return false
}

// JustPressed reports whether the bound key or button went down this tick.
func (b Binding) JustPressed(in *InputState) bool {
	switch b.Kind {
	case BindKey:
		return in.Keys.JustPressed(b.Key)
	case BindMouse:
		return in.Buttons.JustPressed(b.Button)
	}
	return false
}

// Press holds the bound key or button.
func (b Binding) Press(in *InputState) {
	switch b.Kind {
	case BindKey:
		in.Keys.Press(b.Key)
	case BindMouse:
		in.Buttons.Press(b.Button)
	}
}

// Release lets go of the bound key or button.
func (b Binding) Release(in *InputState) {
	switch b.Kind {
	case BindKey:
		in.Keys.Release(b.Key)
	case BindMouse:
		in.Buttons.Release(b.Button)
	}
}

func (b Binding) String() string {
	switch b.Kind {
	case BindKey:
		return "key:" + b.Key.String()
	case BindMouse:
		return "mouse:" + b.Button.String()
	}
	return "none"
}

// ParseBinding parses "key:<Key>", "mouse:<Button>", "none" or "".
// A bare key name such as "Space" is accepted as a key binding.
func ParseBinding(s string) (Binding, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return Binding{}, nil
	}

	device, name, found := strings.Cut(s, ":")
	if !found {
		device, name = "key", s
	}

	switch strings.ToLower(device) {
	case "key":
		k, err := ParseKey(name)
		if err != nil {
			return Binding{}, fmt.Errorf("binding %q: %w", s, err)
		}
		return KeyBinding(k), nil
	case "mouse":
		btn, err := ParseMouseButton(name)
		if err != nil {
			return Binding{}, fmt.Errorf("binding %q: %w", s, err)
		}
		return MouseBinding(btn), nil
	}
	return Binding{}, fmt.Errorf("binding %q: unknown device %q", s, device)
}
