package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/quadlink/pkg/flight"
)

// mappingFile is the YAML layout of mapping overrides:
//
//	flight:
//	  keyboard:
//	    w: {down: "pitch=0", up: "pitch=50"}
//	  joystick:
//	    axis: {0: roll, 1: pitch}
//	    buttons: {0: "level_quad"}
//	non_flight:
//	  keyboard:
//	    p: {down: "change_pid_gain 1 10"}
type mappingFile struct {
	Flight    *mappingSpec `yaml:"flight"`
	NonFlight *mappingSpec `yaml:"non_flight"`
}

type mappingSpec struct {
	Keyboard map[string]keySpec `yaml:"keyboard"`
	Joystick struct {
		Axis    map[int]string `yaml:"axis"`
		Buttons map[int]string `yaml:"buttons"`
	} `yaml:"joystick"`
}

type keySpec struct {
	Down string `yaml:"down"`
	Up   string `yaml:"up"`
}

// LoadMappings reads overrides from a YAML file on top of DefaultMappings.
func LoadMappings(path string) (*Mappings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMappings(data)
}

// ParseMappings applies YAML overrides on top of DefaultMappings.
func ParseMappings(data []byte) (*Mappings, error) {
	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid mappings: %w", err)
	}
	m := DefaultMappings()
	if err := file.Flight.apply(m.Flight); err != nil {
		return nil, fmt.Errorf("flight mapping: %w", err)
	}
	if err := file.NonFlight.apply(m.NonFlight); err != nil {
		return nil, fmt.Errorf("non_flight mapping: %w", err)
	}
	return m, nil
}

func optionalAction(s string) (*Action, error) {
	if s == "" {
		return nil, nil
	}
	return ParseAction(s)
}

func (s *mappingSpec) apply(m *Mapping) error {
	if s == nil {
		return nil
	}
	for key, spec := range s.Keyboard {
		if spec.Down == "" && spec.Up == "" {
			delete(m.Keys, key)
			continue
		}
		var binding KeyBinding
		var err error
		if binding.Down, err = optionalAction(spec.Down); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if binding.Up, err = optionalAction(spec.Up); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		m.Keys[key] = binding
	}
	for index, name := range s.Joystick.Axis {
		if name == "" {
			delete(m.Axes, index)
			continue
		}
		axis, err := flight.ParseAxis(name)
		if err != nil {
			return fmt.Errorf("axis %d: %w", index, err)
		}
		m.Axes[index] = axis
	}
	for index, spec := range s.Joystick.Buttons {
		if spec == "" {
			delete(m.Buttons, index)
			continue
		}
		action, err := ParseAction(spec)
		if err != nil {
			return fmt.Errorf("button %d: %w", index, err)
		}
		m.Buttons[index] = action
	}
	return nil
}
