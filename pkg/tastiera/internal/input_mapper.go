package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pawndev/tastiera/pkg/tastiera/constants"
	"github.com/veandco/go-sdl2/sdl"
)

const MappingPathEnvVar = "INPUT_MAPPING_PATH"

var inputMappingBytes []byte

// SetInputMappingBytes installs an embedded mapping override. Must be
// called before Init.
func SetInputMappingBytes(data []byte) {
	inputMappingBytes = data
}

type Source int

const (
	SourceKeyboard Source = iota
	SourceController
	SourceJoystick
	SourceHatSwitch
)

// Event is a normalized button transition produced by the Processor.
type Event struct {
	Button  constants.VirtualButton
	Pressed bool
	Source  Source
	RawCode int
}

type JoystickAxisMapping struct {
	PositiveButton constants.VirtualButton
	NegativeButton constants.VirtualButton
	Threshold      int16
}

type InputMapping struct {
	KeyboardMap         map[sdl.Keycode]constants.VirtualButton
	ControllerButtonMap map[sdl.GameControllerButton]constants.VirtualButton
	JoystickAxisMap     map[uint8]JoystickAxisMapping
	JoystickButtonMap   map[uint8]constants.VirtualButton
	JoystickHatMap      map[uint8]constants.VirtualButton
}

// mappingFile is the serializable form: SDL codes to VirtualButton
// values. The format is shared with the capture tooling, hence JSON.
type mappingFile struct {
	KeyboardMap         map[int]int `json:"keyboard_map"`
	ControllerButtonMap map[int]int `json:"controller_button_map"`
	JoystickAxisMap     map[int]struct {
		PositiveButton int   `json:"positive_button"`
		NegativeButton int   `json:"negative_button"`
		Threshold      int16 `json:"threshold"`
	} `json:"joystick_axis_map"`
	JoystickButtonMap map[int]int `json:"joystick_button_map"`
	JoystickHatMap    map[int]int `json:"joystick_hat_map"`
}

// DefaultInputMapping suits a text-entry widget: Return activates the
// selected key, Backspace erases, arrows navigate, shoulder buttons move
// the text cursor. Joystick button 0 activates, matching the hat/d-pad
// navigation semantics.
func DefaultInputMapping() *InputMapping {
	return &InputMapping{
		KeyboardMap: map[sdl.Keycode]constants.VirtualButton{
			sdl.K_UP:        constants.VirtualButtonUp,
			sdl.K_DOWN:      constants.VirtualButtonDown,
			sdl.K_LEFT:      constants.VirtualButtonLeft,
			sdl.K_RIGHT:     constants.VirtualButtonRight,
			sdl.K_RETURN:    constants.VirtualButtonA,
			sdl.K_BACKSPACE: constants.VirtualButtonB,
			sdl.K_SPACE:     constants.VirtualButtonX,
			sdl.K_LSHIFT:    constants.VirtualButtonSelect,
			sdl.K_HOME:      constants.VirtualButtonL1,
			sdl.K_END:       constants.VirtualButtonR1,
			sdl.K_ESCAPE:    constants.VirtualButtonY,
			sdl.K_TAB:       constants.VirtualButtonStart,
			sdl.K_h:         constants.VirtualButtonMenu,
		},
		ControllerButtonMap: map[sdl.GameControllerButton]constants.VirtualButton{
			sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.VirtualButtonUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.VirtualButtonDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.VirtualButtonLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.VirtualButtonRight,
			sdl.CONTROLLER_BUTTON_A:             constants.VirtualButtonB,
			sdl.CONTROLLER_BUTTON_B:             constants.VirtualButtonA,
			sdl.CONTROLLER_BUTTON_X:             constants.VirtualButtonY,
			sdl.CONTROLLER_BUTTON_Y:             constants.VirtualButtonX,
			sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.VirtualButtonL1,
			sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.VirtualButtonR1,
			sdl.CONTROLLER_BUTTON_START:         constants.VirtualButtonStart,
			sdl.CONTROLLER_BUTTON_BACK:          constants.VirtualButtonSelect,
			sdl.CONTROLLER_BUTTON_GUIDE:         constants.VirtualButtonMenu,
		},
		JoystickAxisMap: map[uint8]JoystickAxisMapping{
			0: {
				PositiveButton: constants.VirtualButtonRight,
				NegativeButton: constants.VirtualButtonLeft,
				Threshold:      16384,
			},
			1: {
				PositiveButton: constants.VirtualButtonDown,
				NegativeButton: constants.VirtualButtonUp,
				Threshold:      16384,
			},
		},
		JoystickButtonMap: map[uint8]constants.VirtualButton{
			0: constants.VirtualButtonA,
			1: constants.VirtualButtonB,
		},
		JoystickHatMap: map[uint8]constants.VirtualButton{
			sdl.HAT_UP:    constants.VirtualButtonUp,
			sdl.HAT_DOWN:  constants.VirtualButtonDown,
			sdl.HAT_LEFT:  constants.VirtualButtonLeft,
			sdl.HAT_RIGHT: constants.VirtualButtonRight,
		},
	}
}

// GetInputMapping prefers the embedded override, then the path from the
// environment, then the defaults.
func GetInputMapping() *InputMapping {
	logger := GetInternalLogger()

	if len(inputMappingBytes) > 0 {
		mapping, err := LoadInputMappingFromBytes(inputMappingBytes)
		if err == nil {
			logger.Info("Loaded input mapping from embedded bytes")
			return mapping
		}
		logger.Warn("Failed to parse embedded input mapping", "error", err)
	}

	if path := os.Getenv(MappingPathEnvVar); path != "" {
		mapping, err := LoadInputMappingFromJSON(path)
		if err == nil {
			logger.Info("Loaded input mapping from file", "path", path)
			return mapping
		}
		logger.Warn("Failed to load input mapping file, using default", "path", path, "error", err)
	}

	return DefaultInputMapping()
}

func LoadInputMappingFromJSON(filePath string) (*InputMapping, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	return LoadInputMappingFromBytes(data)
}

func LoadInputMappingFromBytes(data []byte) (*InputMapping, error) {
	var file mappingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal mapping: %w", err)
	}

	mapping := &InputMapping{
		KeyboardMap:         make(map[sdl.Keycode]constants.VirtualButton),
		ControllerButtonMap: make(map[sdl.GameControllerButton]constants.VirtualButton),
		JoystickAxisMap:     make(map[uint8]JoystickAxisMapping),
		JoystickButtonMap:   make(map[uint8]constants.VirtualButton),
		JoystickHatMap:      make(map[uint8]constants.VirtualButton),
	}

	for keyCode, button := range file.KeyboardMap {
		mapping.KeyboardMap[sdl.Keycode(keyCode)] = constants.VirtualButton(button)
	}
	for button, vb := range file.ControllerButtonMap {
		mapping.ControllerButtonMap[sdl.GameControllerButton(button)] = constants.VirtualButton(vb)
	}
	for axis, m := range file.JoystickAxisMap {
		mapping.JoystickAxisMap[uint8(axis)] = JoystickAxisMapping{
			PositiveButton: constants.VirtualButton(m.PositiveButton),
			NegativeButton: constants.VirtualButton(m.NegativeButton),
			Threshold:      m.Threshold,
		}
	}
	for button, vb := range file.JoystickButtonMap {
		mapping.JoystickButtonMap[uint8(button)] = constants.VirtualButton(vb)
	}
	for hat, vb := range file.JoystickHatMap {
		mapping.JoystickHatMap[uint8(hat)] = constants.VirtualButton(vb)
	}

	return mapping, nil
}

func (im *InputMapping) ToJSON() ([]byte, error) {
	file := &mappingFile{
		KeyboardMap:         make(map[int]int),
		ControllerButtonMap: make(map[int]int),
		JoystickAxisMap: make(map[int]struct {
			PositiveButton int   `json:"positive_button"`
			NegativeButton int   `json:"negative_button"`
			Threshold      int16 `json:"threshold"`
		}),
		JoystickButtonMap: make(map[int]int),
		JoystickHatMap:    make(map[int]int),
	}

	for keyCode, button := range im.KeyboardMap {
		file.KeyboardMap[int(keyCode)] = int(button)
	}
	for button, vb := range im.ControllerButtonMap {
		file.ControllerButtonMap[int(button)] = int(vb)
	}
	for axis, m := range im.JoystickAxisMap {
		file.JoystickAxisMap[int(axis)] = struct {
			PositiveButton int   `json:"positive_button"`
			NegativeButton int   `json:"negative_button"`
			Threshold      int16 `json:"threshold"`
		}{int(m.PositiveButton), int(m.NegativeButton), m.Threshold}
	}
	for button, vb := range im.JoystickButtonMap {
		file.JoystickButtonMap[int(button)] = int(vb)
	}
	for hat, vb := range im.JoystickHatMap {
		file.JoystickHatMap[int(hat)] = int(vb)
	}

	return json.MarshalIndent(file, "", "  ")
}

func (im *InputMapping) SaveToJSON(filePath string) error {
	data, err := im.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	return nil
}
