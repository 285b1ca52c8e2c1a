package arbor

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateMaterial is returned when a material name is already registered.
var ErrDuplicateMaterial = errors.New("arbor: duplicate material name")

// Material describes how a mesh surface is shaded. Entities reference
// materials; a MaterialRegistry owns them.
type Material struct {
	Name          string  `yaml:"name"`
	Diffuse       Color   `yaml:"diffuse"`
	Specular      Color   `yaml:"specular"`
	Emissive      Color   `yaml:"emissive"`
	Opacity       float64 `yaml:"opacity"`
	SpecularPower float64 `yaml:"specular_power"`
}

// NewMaterial returns an opaque material with the given diffuse color.
func NewMaterial(name string, diffuse Color) *Material {
	return &Material{Name: name, Diffuse: diffuse, Opacity: 1, SpecularPower: 1}
}

type materialFile struct {
	Materials []Material `yaml:"materials"`
}

// MaterialRegistry holds materials by unique name.
type MaterialRegistry struct {
	materials map[string]*Material
}

func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{materials: make(map[string]*Material)}
}

// Add registers m. Returns ErrDuplicateMaterial if the name is taken.
func (r *MaterialRegistry) Add(m *Material) error {
	if _, ok := r.materials[m.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMaterial, m.Name)
	}
	r.materials[m.Name] = m
	return nil
}

// Get returns the named material, or nil.
func (r *MaterialRegistry) Get(name string) *Material {
	return r.materials[name]
}

// Remove unregisters the named material. Entities still referencing it keep
// their pointer.
func (r *MaterialRegistry) Remove(name string) bool {
	if _, ok := r.materials[name]; !ok {
		return false
	}
	delete(r.materials, name)
	return true
}

// Names returns all registered names in sorted order.
func (r *MaterialRegistry) Names() []string {
	names := make([]string, 0, len(r.materials))
	for n := range r.materials {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *MaterialRegistry) Len() int { return len(r.materials) }

// LoadFile reads a YAML material library and registers every entry.
func (r *MaterialRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read materials: %w", err)
	}
	return r.Parse(data)
}

// Parse decodes a YAML material library of the form
//
//	materials:
//	  - name: brick
//	    diffuse: {r: 0.6, g: 0.2, b: 0.1, a: 1}
//
// and registers every entry. Opacity and specular_power default to 1 when
// omitted. Nothing is registered if any entry is invalid.
func (r *MaterialRegistry) Parse(data []byte) error {
	var f materialFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse materials: %w", err)
	}
	seen := make(map[string]bool, len(f.Materials))
	for i := range f.Materials {
		m := &f.Materials[i]
		if m.Name == "" {
			return fmt.Errorf("parse materials: entry %d has no name", i)
		}
		if seen[m.Name] || r.materials[m.Name] != nil {
			return fmt.Errorf("parse materials: %w: %q", ErrDuplicateMaterial, m.Name)
		}
		seen[m.Name] = true
	}
	for i := range f.Materials {
		m := &f.Materials[i]
		if m.Opacity == 0 {
			m.Opacity = 1
		}
		if m.SpecularPower == 0 {
			m.SpecularPower = 1
		}
		r.materials[m.Name] = m
	}
	return nil
}
