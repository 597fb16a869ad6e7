package tastiera

import (
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/pawndev/tastiera/pkg/tastiera/internal"
)

// FooterHint pairs a physical button label with what it does, rendered
// as a badge-plus-text pill row at the bottom of the screen.
type FooterHint struct {
	Button string
	Label  string
}

// DefaultFooterHints describes the standard controller bindings.
func DefaultFooterHints() []FooterHint {
	return []FooterHint{
		{Button: "A", Label: "Select"},
		{Button: "B", Label: "Delete"},
		{Button: "X", Label: "Space"},
		{Button: "Start", Label: "Done"},
	}
}

// RenderFooterHints draws the hint row centered above bottomPadding.
// Single-letter buttons get a circular badge, longer ones a pill.
func RenderFooterHints(renderer *sdl.Renderer, style Style, hints []FooterHint, bottomPadding int32) {
	if len(hints) == 0 || !internal.FontsReady() {
		return
	}

	font := internal.Fonts.TinyFont
	scale := internal.GetScaleFactor()
	window := internal.GetWindow()
	windowWidth, windowHeight := window.Window.GetSize()

	badgeHeight := int32(float32(28) * scale)
	gap := int32(float32(8) * scale)
	itemGap := int32(float32(18) * scale)

	totalWidth := int32(0)
	for i, hint := range hints {
		totalWidth += badgeWidth(font, hint.Button, badgeHeight) + gap + textWidth(font, hint.Label)
		if i < len(hints)-1 {
			totalWidth += itemGap
		}
	}

	x := (windowWidth - totalWidth) / 2
	y := windowHeight - bottomPadding - badgeHeight

	for _, hint := range hints {
		bw := badgeWidth(font, hint.Button, badgeHeight)
		if bw == badgeHeight {
			cx := x + badgeHeight/2
			cy := y + badgeHeight/2
			gfx.FilledCircleColor(renderer, cx, cy, badgeHeight/2, style.KeyBackground.Released)
			gfx.AACircleColor(renderer, cx, cy, badgeHeight/2, style.KeyBackground.Released)
		} else {
			badgeRect := &sdl.Rect{X: x, Y: y, W: bw, H: badgeHeight}
			internal.DrawRoundedRect(renderer, badgeRect, badgeHeight/2, style.KeyBackground.Released)
		}
		internal.RenderTextCentered(renderer, hint.Button, font, x+bw/2, y+badgeHeight/2, style.TextColor.Released)

		x += bw + gap
		lw := textWidth(font, hint.Label)
		internal.RenderTextCentered(renderer, hint.Label, font, x+lw/2, y+badgeHeight/2, style.TextColor.Released)
		x += lw + itemGap
	}
}

func badgeWidth(font *ttf.Font, label string, height int32) int32 {
	w := textWidth(font, label)
	if w <= height-10 {
		return height
	}
	return w + 16
}

func textWidth(font *ttf.Font, text string) int32 {
	w, _, err := font.SizeUTF8(text)
	if err != nil {
		return 0
	}
	return int32(w)
}
