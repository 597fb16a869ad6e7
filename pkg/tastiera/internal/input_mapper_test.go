package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/pawndev/tastiera/pkg/tastiera/constants"
)

func TestDefaultInputMappingCoversDirections(t *testing.T) {
	m := DefaultInputMapping()

	assert.Equal(t, constants.VirtualButtonUp, m.KeyboardMap[sdl.K_UP])
	assert.Equal(t, constants.VirtualButtonDown, m.KeyboardMap[sdl.K_DOWN])
	assert.Equal(t, constants.VirtualButtonLeft, m.KeyboardMap[sdl.K_LEFT])
	assert.Equal(t, constants.VirtualButtonRight, m.KeyboardMap[sdl.K_RIGHT])
	assert.Equal(t, constants.VirtualButtonA, m.KeyboardMap[sdl.K_RETURN])
}

func TestInputMappingJSONRoundTrip(t *testing.T) {
	original := DefaultInputMapping()

	data, err := original.ToJSON()
	require.NoError(t, err)

	loaded, err := LoadInputMappingFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, original.KeyboardMap, loaded.KeyboardMap)
	assert.Equal(t, original.ControllerButtonMap, loaded.ControllerButtonMap)
	assert.Equal(t, original.JoystickAxisMap, loaded.JoystickAxisMap)
	assert.Equal(t, original.JoystickButtonMap, loaded.JoystickButtonMap)
	assert.Equal(t, original.JoystickHatMap, loaded.JoystickHatMap)
}

func TestSaveAndLoadInputMappingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")

	require.NoError(t, DefaultInputMapping().SaveToJSON(path))

	loaded, err := LoadInputMappingFromJSON(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultInputMapping().KeyboardMap, loaded.KeyboardMap)
}

func TestLoadInputMappingBadJSON(t *testing.T) {
	_, err := LoadInputMappingFromBytes([]byte("{"))
	assert.Error(t, err)
}
