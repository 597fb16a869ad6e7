package internal

import (
	"github.com/pawndev/tastiera/pkg/tastiera/constants"
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// RenderText draws a single line aligned within maxWidth at (x, y).
// Surfaces and textures are transient; callers that redraw every frame
// should keep the strings short.
func RenderText(renderer *sdl.Renderer, text string, font *ttf.Font, x, y, maxWidth int32, color sdl.Color, align constants.TextAlign) {
	if text == "" {
		return
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return
	}
	defer texture.Destroy()

	rect := &sdl.Rect{Y: y, W: surface.W, H: surface.H}
	switch align {
	case constants.TextAlignCenter:
		rect.X = x + (maxWidth-surface.W)/2
	case constants.TextAlignRight:
		rect.X = x + maxWidth - surface.W
	default:
		rect.X = x
	}

	renderer.Copy(texture, nil, rect)
}

// RenderTextCentered centers a line on (centerX, centerY).
func RenderTextCentered(renderer *sdl.Renderer, text string, font *ttf.Font, centerX, centerY int32, color sdl.Color) {
	if text == "" {
		return
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return
	}
	defer texture.Destroy()

	rect := &sdl.Rect{
		X: centerX - surface.W/2,
		Y: centerY - surface.H/2,
		W: surface.W,
		H: surface.H,
	}
	renderer.Copy(texture, nil, rect)
}

func DrawRoundedRect(renderer *sdl.Renderer, rect *sdl.Rect, radius int32, color sdl.Color) {
	if radius <= 0 {
		renderer.SetDrawColor(color.R, color.G, color.B, color.A)
		renderer.FillRect(rect)
		return
	}

	maxRadius := Min32(rect.W, rect.H) / 2
	if radius > maxRadius {
		radius = maxRadius
	}

	gfx.BoxColor(renderer,
		rect.X+radius, rect.Y,
		rect.X+rect.W-radius, rect.Y+rect.H,
		color)
	gfx.BoxColor(renderer,
		rect.X, rect.Y+radius,
		rect.X+radius, rect.Y+rect.H-radius,
		color)
	gfx.BoxColor(renderer,
		rect.X+rect.W-radius, rect.Y+radius,
		rect.X+rect.W, rect.Y+rect.H-radius,
		color)

	drawRoundedCorner(renderer, rect.X+radius, rect.Y+radius, radius, color)
	drawRoundedCorner(renderer, rect.X+rect.W-radius, rect.Y+radius, radius, color)
	drawRoundedCorner(renderer, rect.X+radius, rect.Y+rect.H-radius, radius, color)
	drawRoundedCorner(renderer, rect.X+rect.W-radius, rect.Y+rect.H-radius, radius, color)
}

func drawRoundedCorner(renderer *sdl.Renderer, centerX, centerY, radius int32, color sdl.Color) {
	gfx.FilledCircleColor(renderer, centerX, centerY, radius, color)
	gfx.AACircleColor(renderer, centerX, centerY, radius, color)
	if radius > 5 {
		gfx.AACircleColor(renderer, centerX, centerY, radius-1, color)
	}
}

func Abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func Min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func Max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
