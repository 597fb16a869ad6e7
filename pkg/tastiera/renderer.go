package tastiera

import (
	"errors"

	"github.com/pawndev/tastiera/pkg/tastiera/constants"
	"github.com/pawndev/tastiera/pkg/tastiera/internal"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// ErrFontsNotReady is returned when a renderer is requested before Init
// finished loading fonts. Text measurement is a hard prerequisite for
// wrap computation, so the renderer refuses to exist without it.
var ErrFontsNotReady = errors.New("fonts not loaded, call Init first")

// StateColors pairs a color for the released and pressed states of a
// key.
type StateColors struct {
	Released sdl.Color
	Pressed  sdl.Color
}

// Style is the immutable appearance configuration for a keyboard. Build
// one with DarkStyle or LightStyle and override fields before passing it
// to NewRenderer; nothing mutates it afterwards.
type Style struct {
	TextColor            StateColors
	KeyBackground        StateColors
	SpecialKeyBackground StateColors
	SelectionColor       sdl.Color
	CursorColor          sdl.Color
	BackgroundColor      sdl.Color
	TextBoxBackground    sdl.Color
	KeyCornerRadius      int32
}

// DarkStyle matches the handheld targets: dark panel, light glyphs.
func DarkStyle() Style {
	return Style{
		TextColor: StateColors{
			Released: sdl.Color{R: 255, G: 255, B: 255, A: 255},
			Pressed:  sdl.Color{R: 255, G: 255, B: 255, A: 255},
		},
		KeyBackground: StateColors{
			Released: sdl.Color{R: 50, G: 50, B: 60, A: 255},
			Pressed:  sdl.Color{R: 80, G: 80, B: 120, A: 255},
		},
		SpecialKeyBackground: StateColors{
			Released: sdl.Color{R: 35, G: 35, B: 45, A: 255},
			Pressed:  sdl.Color{R: 80, G: 80, B: 120, A: 255},
		},
		SelectionColor:    sdl.Color{R: 100, G: 100, B: 240, A: 255},
		CursorColor:       sdl.Color{R: 255, G: 255, B: 255, A: 255},
		BackgroundColor:   sdl.Color{R: 20, G: 20, B: 25, A: 255},
		TextBoxBackground: sdl.Color{R: 50, G: 50, B: 50, A: 255},
		KeyCornerRadius:   6,
	}
}

// LightStyle is the classic light palette.
func LightStyle() Style {
	return Style{
		TextColor: StateColors{
			Released: sdl.Color{R: 0, G: 0, B: 0, A: 255},
			Pressed:  sdl.Color{R: 255, G: 255, B: 255, A: 255},
		},
		KeyBackground: StateColors{
			Released: sdl.Color{R: 255, G: 255, B: 255, A: 255},
			Pressed:  sdl.Color{R: 0, G: 0, B: 0, A: 255},
		},
		SpecialKeyBackground: StateColors{
			Released: sdl.Color{R: 180, G: 180, B: 180, A: 255},
			Pressed:  sdl.Color{R: 0, G: 0, B: 0, A: 255},
		},
		SelectionColor:    sdl.Color{R: 100, G: 100, B: 240, A: 255},
		CursorColor:       sdl.Color{R: 0, G: 0, B: 0, A: 255},
		BackgroundColor:   sdl.Color{R: 50, G: 50, B: 50, A: 255},
		TextBoxBackground: sdl.Color{R: 220, G: 220, B: 220, A: 255},
		KeyCornerRadius:   6,
	}
}

// Renderer is the drawing contract the keyboard calls into during Draw.
// DrawKey is the single entry point for every key kind; implementations
// switch on Key.Kind for per-kind appearance.
type Renderer interface {
	TextMeasurer

	DrawBackground(r *sdl.Renderer, rect sdl.Rect)
	DrawKey(r *sdl.Renderer, key *Key, activated bool)
	DrawTextBoxBackground(r *sdl.Renderer, rect sdl.Rect)
	DrawTextLine(r *sdl.Renderer, line RenderedLine)
	DrawCursor(r *sdl.Renderer, x, y, height int32)
}

// SDLRenderer is the default Renderer built on the shared font set.
type SDLRenderer struct {
	style     Style
	keyFont   *ttf.Font
	inputFont *ttf.Font
}

// NewRenderer builds the default renderer with the given style. Fails
// when fonts are not loaded yet, since every wrap computation depends on
// measuring text.
func NewRenderer(style Style) (*SDLRenderer, error) {
	if !internal.FontsReady() {
		return nil, ErrFontsNotReady
	}
	return &SDLRenderer{
		style:     style,
		keyFont:   internal.Fonts.MediumFont,
		inputFont: internal.Fonts.SmallFont,
	}, nil
}

func (sr *SDLRenderer) Style() Style {
	return sr.style
}

func (sr *SDLRenderer) TextWidth(text string) int32 {
	if text == "" {
		return 0
	}
	w, _, err := sr.inputFont.SizeUTF8(text)
	if err != nil {
		return 0
	}
	return int32(w)
}

func (sr *SDLRenderer) DrawBackground(r *sdl.Renderer, rect sdl.Rect) {
	c := sr.style.BackgroundColor
	r.SetDrawColor(c.R, c.G, c.B, c.A)
	r.FillRect(&rect)
}

func (sr *SDLRenderer) DrawKey(r *sdl.Renderer, key *Key, activated bool) {
	bg := sr.keyBackground(key)
	internal.DrawRoundedRect(r, &key.Rect, sr.style.KeyCornerRadius, bg)

	text := sr.style.TextColor.Released
	if key.Pressed {
		text = sr.style.TextColor.Pressed
	}
	internal.RenderTextCentered(r, key.DisplaySymbol(activated), sr.keyFont,
		key.Rect.X+key.Rect.W/2, key.Rect.Y+key.Rect.H/2, text)
}

func (sr *SDLRenderer) keyBackground(key *Key) sdl.Color {
	if key.Selected {
		return sr.style.SelectionColor
	}
	palette := sr.style.KeyBackground
	if key.Kind != KeyCharacter {
		palette = sr.style.SpecialKeyBackground
	}
	if key.Pressed {
		return palette.Pressed
	}
	return palette.Released
}

func (sr *SDLRenderer) DrawTextBoxBackground(r *sdl.Renderer, rect sdl.Rect) {
	c := sr.style.TextBoxBackground
	r.SetDrawColor(c.R, c.G, c.B, c.A)
	r.FillRect(&rect)
}

func (sr *SDLRenderer) DrawTextLine(r *sdl.Renderer, line RenderedLine) {
	internal.RenderText(r, line.Text, sr.inputFont,
		line.Rect.X, line.Rect.Y, line.Rect.W,
		sr.style.TextColor.Released, constants.TextAlignLeft)
}

func (sr *SDLRenderer) DrawCursor(r *sdl.Renderer, x, y, height int32) {
	c := sr.style.CursorColor
	r.SetDrawColor(c.R, c.G, c.B, c.A)
	r.FillRect(&sdl.Rect{X: x, Y: y, W: 2, H: height})
}
