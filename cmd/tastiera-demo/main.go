package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/pawndev/tastiera/pkg/tastiera"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML keyboard config")
	light := flag.Bool("light", false, "use the light style preset")
	emit := flag.Bool("emit", false, "forward typed text to a uinput virtual keyboard")
	initialText := flag.String("text", "", "initial text buffer content")
	flag.Parse()

	if err := run(*configPath, *light, *emit, *initialText); err != nil {
		fmt.Fprintln(os.Stderr, "tastiera-demo:", err)
		os.Exit(1)
	}
}

func run(configPath string, light, emit bool, initialText string) error {
	opts := tastiera.DefaultOptions()
	style := tastiera.DarkStyle()
	if light {
		style = tastiera.LightStyle()
	}

	if configPath != "" {
		var err error
		opts, style, err = tastiera.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	if err := tastiera.Init(tastiera.InitOptions{WindowTitle: "tastiera demo"}); err != nil {
		return err
	}
	defer tastiera.Close()

	window := tastiera.GetWindow()
	renderer, err := tastiera.NewRenderer(style)
	if err != nil {
		return err
	}
	opts.Renderer = renderer
	opts.InitialText = initialText
	opts.OnTextChanged = func(text string) {
		tastiera.GetLogger().Info("Text changed", "text", text)
	}

	keyboard, err := tastiera.New(opts, window.GetWidth(), window.GetHeight())
	if err != nil {
		return err
	}

	if emit {
		sink, err := tastiera.NewUinputSink("tastiera")
		if err != nil {
			return err
		}
		defer sink.Close()
		keyboard.AttachSink(sink)
	}

	hints := tastiera.DefaultFooterHints()
	background := renderer.Style().BackgroundColor

	running := true
	for running {
		var events []sdl.Event
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					running = false
					continue
				}
				events = append(events, event)
			default:
				events = append(events, event)
			}
		}

		keyboard.Update(events)

		window.Renderer.SetDrawColor(background.R, background.G, background.B, background.A)
		window.Renderer.Clear()
		window.RenderBackground()
		keyboard.Draw(window.Renderer)
		tastiera.RenderFooterHints(window.Renderer, renderer.Style(), hints, 8)
		window.Renderer.Present()

		sdl.Delay(16)
	}

	fmt.Println(keyboard.Text())
	return nil
}
