package constants

import "os"

// VirtualButton is the device-independent button identity every input
// source (physical keyboard, game controller, raw joystick) is mapped to.
type VirtualButton int

const (
	VirtualButtonUnknown VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
	VirtualButtonX
	VirtualButtonY
	VirtualButtonL1
	VirtualButtonR1
	VirtualButtonStart
	VirtualButtonSelect
	VirtualButtonMenu
)

func (b VirtualButton) GetName() string {
	switch b {
	case VirtualButtonUp:
		return "Up"
	case VirtualButtonDown:
		return "Down"
	case VirtualButtonLeft:
		return "Left"
	case VirtualButtonRight:
		return "Right"
	case VirtualButtonA:
		return "A"
	case VirtualButtonB:
		return "B"
	case VirtualButtonX:
		return "X"
	case VirtualButtonY:
		return "Y"
	case VirtualButtonL1:
		return "L1"
	case VirtualButtonR1:
		return "R1"
	case VirtualButtonStart:
		return "Start"
	case VirtualButtonSelect:
		return "Select"
	case VirtualButtonMenu:
		return "Menu"
	}
	return "Unknown"
}

// TextAlign controls horizontal text placement in helpers that render
// multi-purpose labels.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// IsDevMode reports whether the library runs on a development machine
// rather than a handheld target. Dev mode gets a windowed surface and
// skips hardware button handling.
func IsDevMode() bool {
	return os.Getenv("DEV_MODE") != ""
}
