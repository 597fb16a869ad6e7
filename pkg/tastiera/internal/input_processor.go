package internal

import (
	"fmt"
	"time"

	"github.com/pawndev/tastiera/pkg/tastiera/constants"
	"github.com/veandco/go-sdl2/sdl"
)

var globalInputProcessor *Processor
var gameControllers []*sdl.GameController
var rawJoysticks []*sdl.Joystick

func InitInputProcessor() {
	globalInputProcessor = NewInputProcessor()

	numJoysticks := sdl.NumJoysticks()
	GetInternalLogger().Debug("Detecting controllers", "joystick_count", numJoysticks)

	for i := 0; i < numJoysticks; i++ {
		if sdl.IsGameController(i) {
			controller := sdl.GameControllerOpen(i)
			if controller == nil {
				GetInternalLogger().Error("Failed to open game controller", "index", i)
				continue
			}
			globalInputProcessor.RegisterGameControllerJoystickIndex(i)
			GetInternalLogger().Debug("Opened game controller", "index", i, "name", controller.Name())
			gameControllers = append(gameControllers, controller)
		} else {
			joystick := sdl.JoystickOpen(i)
			if joystick == nil {
				GetInternalLogger().Debug("Failed to open raw joystick", "index", i)
				continue
			}
			GetInternalLogger().Debug("Opened raw joystick", "index", i, "name", joystick.Name())
			rawJoysticks = append(rawJoysticks, joystick)
		}
	}

	GetInternalLogger().Debug("Controller detection complete",
		"game_controllers", len(gameControllers),
		"raw_joysticks", len(rawJoysticks),
		"total_joysticks", numJoysticks,
	)
}

func GetInputProcessor() *Processor {
	return globalInputProcessor
}

func CloseAllControllers() {
	for _, controller := range gameControllers {
		if controller != nil {
			controller.Close()
		}
	}
	for _, joystick := range rawJoysticks {
		if joystick != nil {
			joystick.Close()
		}
	}
	gameControllers = nil
	rawJoysticks = nil
}

// Processor normalizes raw SDL input events into VirtualButton
// transitions. Axes and hat switches are stateful: crossing a threshold
// emits a press, returning inside it emits a release, and a direction
// change emits a release immediately followed by a queued press.
type Processor struct {
	mapping                       *InputMapping
	gameControllerJoystickIndices map[int]bool
	axisStates                    map[uint8]int8  // -1 negative, 0 centered, 1 positive
	hatStates                     map[uint8]uint8 // last reported hat position
	eventQueue                    []*Event

	heldButtons map[constants.VirtualButton]time.Time // press time of buttons currently down
}

func NewInputProcessor() *Processor {
	return &Processor{
		mapping:                       GetInputMapping(),
		gameControllerJoystickIndices: make(map[int]bool),
		axisStates:                    make(map[uint8]int8),
		hatStates:                     make(map[uint8]uint8),
		heldButtons:                   make(map[constants.VirtualButton]time.Time),
	}
}

func (ip *Processor) RegisterGameControllerJoystickIndex(joystickIndex int) {
	ip.gameControllerJoystickIndices[joystickIndex] = true
}

func (ip *Processor) IsGameControllerJoystick(joystickIndex int) bool {
	return ip.gameControllerJoystickIndices[joystickIndex]
}

// IsHeld reports whether the button is currently down and, if so, for
// how long. Widgets use this to auto-repeat navigation while a
// direction stays held.
func (ip *Processor) IsHeld(button constants.VirtualButton) (time.Duration, bool) {
	since, ok := ip.heldButtons[button]
	if !ok {
		return 0, false
	}
	return time.Since(since), true
}

func (ip *Processor) createEvent(button constants.VirtualButton, pressed bool, source Source, rawCode int) *Event {
	if pressed {
		if _, held := ip.heldButtons[button]; !held {
			ip.heldButtons[button] = time.Now()
		}
	} else {
		delete(ip.heldButtons, button)
	}
	return &Event{
		Button:  button,
		Pressed: pressed,
		Source:  source,
		RawCode: rawCode,
	}
}

func (ip *Processor) ProcessSDLEvent(event sdl.Event) *Event {
	if len(ip.eventQueue) > 0 {
		evt := ip.eventQueue[0]
		ip.eventQueue = ip.eventQueue[1:]
		return evt
	}

	logger := GetInternalLogger()

	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		keyCode := e.Keysym.Sym
		if button, exists := ip.mapping.KeyboardMap[keyCode]; exists {
			if e.Type == sdl.KEYDOWN {
				logger.Debug("Keyboard input mapped",
					"key", sdl.GetKeyName(keyCode),
					"virtual_button", button.GetName())
			}
			return ip.createEvent(button, e.Type == sdl.KEYDOWN, SourceKeyboard, int(keyCode))
		}
		logger.Debug("Keyboard input not mapped",
			"key_code", fmt.Sprintf("%s (%d)", sdl.GetKeyName(keyCode), keyCode))
	case *sdl.ControllerButtonEvent:
		if button, exists := ip.mapping.ControllerButtonMap[sdl.GameControllerButton(e.Button)]; exists {
			if e.Type == sdl.CONTROLLERBUTTONDOWN {
				logger.Debug("Controller button mapped",
					"button", sdl.GameControllerGetStringForButton(sdl.GameControllerButton(e.Button)),
					"virtual_button", button.GetName())
			}
			return ip.createEvent(button, e.Type == sdl.CONTROLLERBUTTONDOWN, SourceController, int(e.Button))
		}
		logger.Debug("Controller button not mapped", "button_code", e.Button)
	case *sdl.ControllerAxisEvent:
		return ip.processAxis(e.Axis, e.Value, SourceController)
	case *sdl.JoyAxisEvent:
		return ip.processAxis(e.Axis, e.Value, SourceJoystick)
	case *sdl.JoyButtonEvent:
		if button, exists := ip.mapping.JoystickButtonMap[e.Button]; exists {
			logger.Debug("Joy button mapped",
				"button_code", e.Button,
				"virtual_button", button.GetName())
			return ip.createEvent(button, e.Type == sdl.JOYBUTTONDOWN, SourceJoystick, int(e.Button))
		}
		logger.Debug("Joy button not mapped", "button_code", e.Button)
	case *sdl.JoyHatEvent:
		return ip.processHat(e.Hat, e.Value)
	}
	return nil
}

// processAxis turns a raw axis value into press/release transitions
// against the configured threshold. Only state changes emit events, so a
// wiggling stick inside the deadzone stays silent.
func (ip *Processor) processAxis(axis uint8, value int16, source Source) *Event {
	axisConfig, exists := ip.mapping.JoystickAxisMap[axis]
	if !exists {
		return nil
	}

	previousState := ip.axisStates[axis]
	var newState int8
	if value > axisConfig.Threshold {
		newState = 1
	} else if value < -axisConfig.Threshold {
		newState = -1
	}

	if newState == previousState {
		return nil
	}
	ip.axisStates[axis] = newState

	logger := GetInternalLogger()

	// A direct swing from one extreme to the other releases the old
	// direction now and queues the press of the new one.
	if previousState != 0 {
		released := axisConfig.PositiveButton
		if previousState == -1 {
			released = axisConfig.NegativeButton
		}
		if newState != 0 {
			pressed := axisConfig.PositiveButton
			if newState == -1 {
				pressed = axisConfig.NegativeButton
			}
			ip.eventQueue = append(ip.eventQueue, ip.createEvent(pressed, true, source, int(axis)))
		}
		logger.Debug("Axis released", "axis", axis, "virtual_button", released.GetName())
		return ip.createEvent(released, false, source, int(axis))
	}

	pressed := axisConfig.PositiveButton
	if newState == -1 {
		pressed = axisConfig.NegativeButton
	}
	logger.Debug("Axis threshold exceeded",
		"axis", axis,
		"value", value,
		"virtual_button", pressed.GetName())
	return ip.createEvent(pressed, true, source, int(axis))
}

func (ip *Processor) processHat(hat uint8, value uint8) *Event {
	previousValue := ip.hatStates[hat]
	ip.hatStates[hat] = value

	logger := GetInternalLogger()

	// Direction change: release the old direction, queue the new press.
	if previousValue != sdl.HAT_CENTERED && previousValue != value {
		if button, exists := ip.mapping.JoystickHatMap[previousValue]; exists {
			if value != sdl.HAT_CENTERED {
				if newButton, exists := ip.mapping.JoystickHatMap[value]; exists {
					ip.eventQueue = append(ip.eventQueue, ip.createEvent(newButton, true, SourceHatSwitch, int(value)))
				}
			}
			logger.Debug("Joy hat released", "hat_value", previousValue, "virtual_button", button.GetName())
			return ip.createEvent(button, false, SourceHatSwitch, int(previousValue))
		}
	}

	if value != sdl.HAT_CENTERED {
		if button, exists := ip.mapping.JoystickHatMap[value]; exists {
			logger.Debug("Joy hat mapped", "hat_value", value, "virtual_button", button.GetName())
			return ip.createEvent(button, true, SourceHatSwitch, int(value))
		}
		logger.Debug("Joy hat not mapped", "hat_value", value)
	}
	return nil
}
