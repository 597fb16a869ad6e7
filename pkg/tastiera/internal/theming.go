package internal

import "github.com/veandco/go-sdl2/sdl"

// Theme carries the platform-level appearance settings the window and
// font loaders need before any widget style exists.
type Theme struct {
	FontPath            string
	BackgroundImagePath string
	BackgroundColor     sdl.Color
}

var currentTheme = Theme{
	FontPath:        "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	BackgroundColor: sdl.Color{R: 0, G: 0, B: 0, A: 255},
}

func SetTheme(theme Theme) {
	currentTheme = theme
}

func GetTheme() Theme {
	return currentTheme
}

func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
		A: 255,
	}
}
