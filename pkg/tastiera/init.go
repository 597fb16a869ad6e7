package tastiera

import (
	"log/slog"
	"os"
	"time"

	"github.com/pawndev/tastiera/pkg/tastiera/i18n"
	"github.com/pawndev/tastiera/pkg/tastiera/internal"
)

// InitOptions configure the SDL bring-up.
type InitOptions struct {
	WindowTitle    string
	ShowBackground bool

	// FontPath overrides the default system font.
	FontPath string

	// BackgroundImagePath is blended behind the widgets when
	// ShowBackground is set.
	BackgroundImagePath string

	// HandlePowerButton starts the evdev power-button watcher. Only
	// meaningful on handheld devices; ignored in dev mode.
	HandlePowerButton bool

	// MessageFilePaths are go-i18n translation files (json or toml).
	MessageFilePaths []string

	LogFilename string
}

// Init brings up SDL, the window, fonts, input processing and
// translations. Must be called before creating any Keyboard.
func Init(options InitOptions) error {
	if options.LogFilename != "" {
		internal.SetLogFilename(options.LogFilename)
	}

	if os.Getenv("TASTIERA_DEBUG") != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	theme := internal.GetTheme()
	if options.FontPath != "" {
		theme.FontPath = options.FontPath
	}
	theme.BackgroundImagePath = options.BackgroundImagePath
	internal.SetTheme(theme)

	if len(options.MessageFilePaths) > 0 {
		if err := i18n.Init(options.MessageFilePaths); err != nil {
			return err
		}
	}

	pbc := internal.PowerButtonConfig{}
	if options.HandlePowerButton {
		pbc = internal.DefaultPowerButtonConfig()
	}

	internal.Init(options.WindowTitle, options.ShowBackground, pbc)
	return nil
}

// InitWithDefaults is Init with just a window title.
func InitWithDefaults(title string) error {
	return Init(InitOptions{WindowTitle: title})
}

// Close tears down SDL and everything Init set up.
func Close() {
	internal.SDLCleanup()
}

func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInputMappingBytes installs an embedded input mapping before Init.
func SetInputMappingBytes(data []byte) {
	internal.SetInputMappingBytes(data)
}

func GetWindow() *internal.Window {
	return internal.GetWindow()
}

// WaitForFonts blocks until the font loader finished, up to the given
// timeout. Returns false on timeout.
func WaitForFonts(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for !internal.FontsReady() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
	return true
}
