package arbor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const materialLib = `
materials:
  - name: brick
    diffuse: {r: 0.6, g: 0.2, b: 0.1, a: 1}
    specular_power: 8
  - name: glass
    diffuse: {r: 0.8, g: 0.9, b: 1, a: 1}
    opacity: 0.3
`

func TestMaterialRegistryAddGetRemove(t *testing.T) {
	r := NewMaterialRegistry()
	m := NewMaterial("red", Color{R: 1, A: 1})
	assert.Equal(t, 1.0, m.Opacity)

	require.NoError(t, r.Add(m))
	assert.Same(t, m, r.Get("red"))
	assert.Nil(t, r.Get("blue"))

	err := r.Add(NewMaterial("red", ColorWhite))
	assert.ErrorIs(t, err, ErrDuplicateMaterial)
	assert.Same(t, m, r.Get("red"), "first registration wins")

	assert.True(t, r.Remove("red"))
	assert.False(t, r.Remove("red"))
	assert.Zero(t, r.Len())
}

func TestMaterialRegistryParse(t *testing.T) {
	r := NewMaterialRegistry()
	require.NoError(t, r.Parse([]byte(materialLib)))

	assert.Equal(t, []string{"brick", "glass"}, r.Names())
	brick := r.Get("brick")
	require.NotNil(t, brick)
	assert.Equal(t, Color{R: 0.6, G: 0.2, B: 0.1, A: 1}, brick.Diffuse)
	assert.Equal(t, 1.0, brick.Opacity, "opacity defaults to 1")
	assert.Equal(t, 8.0, brick.SpecularPower)

	glass := r.Get("glass")
	assert.Equal(t, 0.3, glass.Opacity)
	assert.Equal(t, 1.0, glass.SpecularPower)
}

func TestMaterialRegistryParseRejectsAtomically(t *testing.T) {
	r := NewMaterialRegistry()
	err := r.Parse([]byte(`
materials:
  - name: a
  - name: a
`))
	assert.ErrorIs(t, err, ErrDuplicateMaterial)
	assert.Zero(t, r.Len())

	err = r.Parse([]byte(`
materials:
  - name: ok
  - diffuse: {r: 1}
`))
	assert.ErrorContains(t, err, "entry 1 has no name")
	assert.Zero(t, r.Len())

	require.NoError(t, r.Add(NewMaterial("brick", ColorWhite)))
	assert.ErrorIs(t, r.Parse([]byte(materialLib)), ErrDuplicateMaterial)
	assert.Equal(t, 1, r.Len())

	assert.Error(t, r.Parse([]byte("materials: [")))
}

func TestMaterialRegistryLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	require.NoError(t, os.WriteFile(path, []byte(materialLib), 0o644))

	r := NewMaterialRegistry()
	require.NoError(t, r.LoadFile(path))
	assert.Equal(t, 2, r.Len())

	assert.Error(t, r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
