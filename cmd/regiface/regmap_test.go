package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `registers:
  - name: temp
    device: 0x4D
    id: 0x00
    width: 1
  - name: measure
    device: 0x70
    id: 0x7866
    id_width: 2
    width: 6
  - name: config
    device: 0x4D
    id: 0x01
    width: 1
    writable: true
`

func TestLoadRegisterMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMap), 0o600))

	m, err := LoadRegisterMap(path)
	require.NoError(t, err)
	require.Len(t, m.Registers, 3)

	reg, ok := m.Find("temp")
	require.True(t, ok)
	assert.Equal(t, uint16(0x4D), reg.Device)
	assert.False(t, reg.Writable)
	id, err := reg.IDBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, id)

	reg, ok = m.Find("measure")
	require.True(t, ok)
	id, err = reg.IDBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x78, 0x66}, id)

	_, ok = m.Find("missing")
	assert.False(t, ok)
}

func TestLoadRegisterMap_RejectsZeroWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("registers:\n  - name: broken\n    id: 0x01\n"), 0o600))
	_, err := LoadRegisterMap(path)
	assert.Error(t, err)
}

func TestRegisterSpec_IDBytes_UnsupportedWidth(t *testing.T) {
	reg := RegisterSpec{Name: "odd", ID: 1, IDWidth: 3, Width: 1}
	_, err := reg.IDBytes()
	assert.Error(t, err)
}
