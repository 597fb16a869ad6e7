package internal

import (
	"os"

	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/atomic"
)

type FontSizes struct {
	Large  int `json:"large" yaml:"large"`
	Medium int `json:"medium" yaml:"medium"`
	Small  int `json:"small" yaml:"small"`
	Tiny   int `json:"tiny" yaml:"tiny"`
}

var DefaultFontSizes = FontSizes{
	Large:  50,
	Medium: 44,
	Small:  34,
	Tiny:   24,
}

var Fonts fontsManager

// fontsReady gates all text measurement: wrap and truncate computation
// must not run before fonts are loaded.
var fontsReady atomic.Bool

type fontsManager struct {
	LargeFont  *ttf.Font
	MediumFont *ttf.Font
	SmallFont  *ttf.Font
	TinyFont   *ttf.Font
}

// FontsReady reports whether text measurement is available.
func FontsReady() bool {
	return fontsReady.Load()
}

// fallbackFontPaths are probed when the theme font is absent.
var fallbackFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
}

// CalculateFontSizeForResolution scales a base size to the screen width,
// damping growth above the 1024px reference so large screens don't get
// comically large glyphs.
func CalculateFontSizeForResolution(baseSize int, screenWidth int32) int {
	const referenceWidth int32 = 1024
	scale := float32(screenWidth) / float32(referenceWidth)
	if screenWidth > referenceWidth {
		scale = 1.0 + (scale-1.0)*0.75
	}
	return int(float32(baseSize) * scale)
}

// GetScaleFactor returns the damped screen-width scale factor.
func GetScaleFactor() float32 {
	const referenceWidth int32 = 1024
	scale := float32(GetWindow().GetWidth()) / float32(referenceWidth)
	if scale > 1.0 {
		scale = 1.0 + (scale-1.0)*0.75
	}
	return scale
}

// FontPath returns the first usable font file: the FALLBACK_FONT
// environment override, the theme font, then the probe list.
func FontPath() string {
	if env := os.Getenv("FALLBACK_FONT"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
		GetInternalLogger().Debug("FALLBACK_FONT not readable, ignoring", "path", env)
	}
	if path := GetTheme().FontPath; path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range fallbackFontPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func initFonts(sizes FontSizes) {
	screenWidth := GetWindow().GetWidth()
	path := FontPath()
	if path == "" {
		GetInternalLogger().Error("No usable font found")
		os.Exit(1)
	}

	Fonts = fontsManager{
		LargeFont:  loadFont(path, CalculateFontSizeForResolution(sizes.Large, screenWidth)),
		MediumFont: loadFont(path, CalculateFontSizeForResolution(sizes.Medium, screenWidth)),
		SmallFont:  loadFont(path, CalculateFontSizeForResolution(sizes.Small, screenWidth)),
		TinyFont:   loadFont(path, CalculateFontSizeForResolution(sizes.Tiny, screenWidth)),
	}
	fontsReady.Store(true)
}

func loadFont(path string, size int) *ttf.Font {
	font, err := ttf.OpenFont(path, size)
	if err != nil {
		GetInternalLogger().Error("Failed to load font", "path", path, "size", size, "error", err)
		os.Exit(1)
	}
	return font
}

// FitFont opens the font at the largest point size whose rendered height
// stays within maxHeight, found by binary search. The probe string spans
// ascenders, descenders and digits so the fitted size holds for any key
// label.
func FitFont(path string, maxHeight int) (*ttf.Font, error) {
	const probe = "?/|!()&@0123456789azertyuiopqsdfghjklmwxcvbnAZERTYUIOPQSDFGHJKLMWXCVBN"

	start := maxHeight / 2
	end := maxHeight * 2
	best := start

	for start < end {
		k := (start + end) / 2
		font, err := ttf.OpenFont(path, k)
		if err != nil {
			return nil, err
		}
		_, h, err := font.SizeUTF8(probe)
		font.Close()
		if err != nil {
			return nil, err
		}
		if h > maxHeight {
			end = k
		} else {
			best = k
			start = k + 1
		}
	}

	return ttf.OpenFont(path, best)
}

func closeFonts() {
	fontsReady.Store(false)
	Fonts.LargeFont.Close()
	Fonts.MediumFont.Close()
	Fonts.SmallFont.Close()
	Fonts.TinyFont.Close()
}
