package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/orbitrig/rig"
)

// ParseScript decodes an input script and checks that its bindings resolve.
func ParseScript(data []byte) (*rig.Script, error) {
	var script rig.Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("config: unmarshal script: %w", err)
	}
	for i, step := range script.Steps {
		if step.Ticks < 0 {
			return nil, invalid("step %d: ticks must not be negative", i)
		}
		for _, name := range step.Hold {
			if _, err := rig.ParseBinding(name); err != nil {
				return nil, invalid("step %d: %v", i, err)
			}
		}
	}
	return &script, nil
}

// LoadScript reads an input script from path.
func LoadScript(path string) (*rig.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load script %s: %w", path, err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}
