package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BroderickCarlin/regiface"
)

// RegisterSpec describes one register entry of a device map file. Widths
// arrive here as runtime data, so the raw read/write commands drive the bus
// contract directly instead of going through the typed helpers.
type RegisterSpec struct {
	Name     string `yaml:"name"`
	Device   uint16 `yaml:"device"`
	ID       uint32 `yaml:"id"`
	IDWidth  int    `yaml:"id_width,omitempty"`
	Width    int    `yaml:"width"`
	Writable bool   `yaml:"writable,omitempty"`
}

// IDBytes serializes the register identifier at its declared width
// (defaults to one byte).
func (r *RegisterSpec) IDBytes() ([]byte, error) {
	switch r.IDWidth {
	case 0, 1:
		return regiface.ID8(r.ID).IDBytes(), nil
	case 2:
		return regiface.ID16(r.ID).IDBytes(), nil
	case 4:
		return regiface.ID32(r.ID).IDBytes(), nil
	default:
		return nil, fmt.Errorf("unsupported identifier width %d", r.IDWidth)
	}
}

type RegisterMap struct {
	Registers []RegisterSpec `yaml:"registers"`
}

func LoadRegisterMap(path string) (*RegisterMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read register map: %w", err)
	}
	var m RegisterMap
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("could not parse register map: %w", err)
	}
	for i := range m.Registers {
		if m.Registers[i].Width <= 0 {
			return nil, fmt.Errorf("register %q has no width", m.Registers[i].Name)
		}
	}
	return &m, nil
}

func (m *RegisterMap) Find(name string) (*RegisterSpec, bool) {
	for i := range m.Registers {
		if m.Registers[i].Name == name {
			return &m.Registers[i], true
		}
	}
	return nil, false
}
