package internal

import (
	"os"
	"strconv"
	"sync"

	"github.com/pawndev/tastiera/pkg/tastiera/constants"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

type Window struct {
	Window            *sdl.Window
	Renderer          *sdl.Renderer
	Title             string
	Background        *sdl.Texture
	DisplayBackground bool
	PowerButtonWG     sync.WaitGroup
}

var window *Window

// Init brings up SDL, the window, fonts and input handling. Everything
// else in the library assumes this ran first.
func Init(title string, displayBackground bool, pbc PowerButtonConfig) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER); err != nil {
		GetInternalLogger().Error("Failed to initialize SDL", "error", err)
		os.Exit(1)
	}
	if err := ttf.Init(); err != nil {
		GetInternalLogger().Error("Failed to initialize SDL_ttf", "error", err)
		os.Exit(1)
	}

	window = initWindow(title, displayBackground)
	initFonts(DefaultFontSizes)
	InitInputProcessor()

	if pbc.DevicePath != "" && !constants.IsDevMode() {
		window.PowerButtonWG.Add(1)
		go PowerButtonHandler(&window.PowerButtonWG, pbc)
	}
}

func initWindow(title string, displayBackground bool) *Window {
	displayMode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		GetInternalLogger().Error("Failed to get display mode", "error", err)
	}
	return initWindowWithSize(title, displayMode.W, displayMode.H, displayBackground)
}

func initWindowWithSize(title string, width, height int32, displayBackground bool) *Window {
	x, y := int32(0), int32(0)
	flags := uint32(sdl.WINDOW_SHOWN)

	if constants.IsDevMode() {
		x, y = 50, 50
		width = envDimension("WINDOW_WIDTH", 1024)
		height = envDimension("WINDOW_HEIGHT", 768)
		flags |= sdl.WINDOW_BORDERLESS
	}

	GetInternalLogger().Debug("Initializing SDL window", "width", width, "height", height)

	sdlWindow, err := sdl.CreateWindow(title, x, y, width, height, flags)
	if err != nil {
		panic(err)
	}

	renderer, err := sdl.CreateRenderer(sdlWindow, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC|sdl.RENDERER_TARGETTEXTURE)
	if err != nil {
		GetInternalLogger().Error("Failed to create renderer", "error", err)
		os.Exit(1)
	}
	renderer.SetLogicalSize(width, height)

	win := &Window{
		Window:            sdlWindow,
		Renderer:          renderer,
		Title:             title,
		DisplayBackground: displayBackground,
	}
	win.loadBackground()
	return win
}

func envDimension(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		GetInternalLogger().Warn("Invalid window dimension override, using default", "var", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func (window *Window) loadBackground() {
	img.Init(img.INIT_PNG)

	path := GetTheme().BackgroundImagePath
	if path == "" {
		return
	}
	texture, err := img.LoadTexture(window.Renderer, path)
	if err != nil {
		GetInternalLogger().Debug("No background image loaded", "path", path, "error", err)
		return
	}
	window.Background = texture
}

func GetWindow() *Window {
	return window
}

func (window *Window) GetWidth() int32 {
	w, _ := window.Window.GetSize()
	return w
}

func (window *Window) GetHeight() int32 {
	_, h := window.Window.GetSize()
	return h
}

func (window *Window) RenderBackground() {
	if window.Background != nil {
		window.Renderer.Copy(window.Background, nil, &sdl.Rect{X: 0, Y: 0, W: window.GetWidth(), H: window.GetHeight()})
	}
}

func (window *Window) closeWindow() {
	if window.Background != nil {
		window.Background.Destroy()
	}
	window.Renderer.Destroy()
	window.Window.Destroy()
	img.Quit()
}

// SDLCleanup tears down everything Init set up.
func SDLCleanup() {
	closeFonts()
	CloseAllControllers()
	if window != nil {
		window.closeWindow()
		window = nil
	}
	ttf.Quit()
	sdl.Quit()
	CloseLogger()
}
