package tastiera

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML representation of a keyboard setup. Every
// field is optional; unset fields keep the defaults from
// DefaultOptions and the chosen style.
type FileConfig struct {
	Layout struct {
		// Model names a preset (qwerty, azerty, numeric) or is empty
		// when Rows is given.
		Model       string   `yaml:"model"`
		Rows        []string `yaml:"rows"`
		SpecialRows []string `yaml:"special_rows"`
		KeySize     int32    `yaml:"key_size"`
		Padding     int32    `yaml:"padding"`
	} `yaml:"layout"`

	Features struct {
		Uppercase    *bool `yaml:"uppercase"`
		SpecialChars *bool `yaml:"special_chars"`
		Space        *bool `yaml:"space"`
		TextInput    *bool `yaml:"text_input"`
		Navigation   *bool `yaml:"navigation"`
	} `yaml:"features"`

	Style struct {
		// Preset is "dark" or "light"; individual colors below
		// override it. Colors are "#RRGGBB" strings.
		Preset          string `yaml:"preset"`
		TextColor       string `yaml:"text_color"`
		KeyColor        string `yaml:"key_color"`
		KeyPressedColor string `yaml:"key_pressed_color"`
		SpecialKeyColor string `yaml:"special_key_color"`
		SelectionColor  string `yaml:"selection_color"`
		CursorColor     string `yaml:"cursor_color"`
		BackgroundColor string `yaml:"background_color"`
		TextBoxColor    string `yaml:"text_box_color"`
		KeyCornerRadius *int32 `yaml:"key_corner_radius"`
	} `yaml:"style"`
}

// LoadConfig reads a YAML file and resolves it into widget options and
// a render style.
func LoadConfig(path string) (Options, Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, Style{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig resolves raw YAML into widget options and a render style.
func ParseConfig(data []byte) (Options, Style, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Options{}, Style{}, fmt.Errorf("parse config: %w", err)
	}

	opts := DefaultOptions()

	switch {
	case len(fc.Layout.Rows) > 0:
		opts.Model = fc.Layout.Rows
	case fc.Layout.Model != "":
		model, err := modelByName(fc.Layout.Model)
		if err != nil {
			return Options{}, Style{}, err
		}
		opts.Model = model
	}
	if len(fc.Layout.SpecialRows) > 0 {
		opts.SpecialModel = fc.Layout.SpecialRows
	}
	if fc.Layout.KeySize > 0 {
		opts.KeySize = fc.Layout.KeySize
	}
	if fc.Layout.Padding > 0 {
		opts.Padding = fc.Layout.Padding
	}

	if fc.Features.Uppercase != nil {
		opts.AllowUppercase = *fc.Features.Uppercase
	}
	if fc.Features.SpecialChars != nil {
		opts.AllowSpecialChars = *fc.Features.SpecialChars
	}
	if fc.Features.Space != nil {
		opts.AllowSpace = *fc.Features.Space
	}
	if fc.Features.TextInput != nil {
		opts.ShowTextInput = *fc.Features.TextInput
	}
	if fc.Features.Navigation != nil {
		opts.EnableDirectionalNavigation = *fc.Features.Navigation
	}

	style, err := resolveStyle(fc)
	if err != nil {
		return Options{}, Style{}, err
	}
	return opts, style, nil
}

func modelByName(name string) ([]string, error) {
	switch strings.ToLower(name) {
	case "qwerty":
		return ModelQWERTY, nil
	case "azerty":
		return ModelAZERTY, nil
	case "numeric":
		return ModelNumeric, nil
	}
	return nil, fmt.Errorf("unknown layout model %q", name)
}

func resolveStyle(fc FileConfig) (Style, error) {
	var style Style
	switch strings.ToLower(fc.Style.Preset) {
	case "", "dark":
		style = DarkStyle()
	case "light":
		style = LightStyle()
	default:
		return Style{}, fmt.Errorf("unknown style preset %q", fc.Style.Preset)
	}

	overrides := []struct {
		value  string
		target *sdl.Color
	}{
		{fc.Style.TextColor, &style.TextColor.Released},
		{fc.Style.KeyColor, &style.KeyBackground.Released},
		{fc.Style.KeyPressedColor, &style.KeyBackground.Pressed},
		{fc.Style.SpecialKeyColor, &style.SpecialKeyBackground.Released},
		{fc.Style.SelectionColor, &style.SelectionColor},
		{fc.Style.CursorColor, &style.CursorColor},
		{fc.Style.BackgroundColor, &style.BackgroundColor},
		{fc.Style.TextBoxColor, &style.TextBoxBackground},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		color, err := parseHexColor(o.value)
		if err != nil {
			return Style{}, err
		}
		*o.target = color
	}
	if fc.Style.KeyCornerRadius != nil {
		style.KeyCornerRadius = *fc.Style.KeyCornerRadius
	}
	return style, nil
}

func parseHexColor(value string) (sdl.Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) != 6 {
		return sdl.Color{}, fmt.Errorf("invalid color %q: want #RRGGBB", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return sdl.Color{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	return sdl.Color{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 255,
	}, nil
}
