package tastiera

import (
	"fmt"
	"time"
	"unicode"

	"github.com/bendahl/uinput"

	"github.com/pawndev/tastiera/pkg/tastiera/internal"
)

type keyStroke struct {
	code  int
	shift bool
}

// strokeMap covers the characters the built-in layout models can emit
// on a US/International keymap. Uppercase letters are derived from the
// lowercase entry plus shift.
var strokeMap = map[rune]keyStroke{
	'a': {uinput.KeyA, false}, 'b': {uinput.KeyB, false},
	'c': {uinput.KeyC, false}, 'd': {uinput.KeyD, false},
	'e': {uinput.KeyE, false}, 'f': {uinput.KeyF, false},
	'g': {uinput.KeyG, false}, 'h': {uinput.KeyH, false},
	'i': {uinput.KeyI, false}, 'j': {uinput.KeyJ, false},
	'k': {uinput.KeyK, false}, 'l': {uinput.KeyL, false},
	'm': {uinput.KeyM, false}, 'n': {uinput.KeyN, false},
	'o': {uinput.KeyO, false}, 'p': {uinput.KeyP, false},
	'q': {uinput.KeyQ, false}, 'r': {uinput.KeyR, false},
	's': {uinput.KeyS, false}, 't': {uinput.KeyT, false},
	'u': {uinput.KeyU, false}, 'v': {uinput.KeyV, false},
	'w': {uinput.KeyW, false}, 'x': {uinput.KeyX, false},
	'y': {uinput.KeyY, false}, 'z': {uinput.KeyZ, false},

	'1': {uinput.Key1, false}, '2': {uinput.Key2, false},
	'3': {uinput.Key3, false}, '4': {uinput.Key4, false},
	'5': {uinput.Key5, false}, '6': {uinput.Key6, false},
	'7': {uinput.Key7, false}, '8': {uinput.Key8, false},
	'9': {uinput.Key9, false}, '0': {uinput.Key0, false},

	'!': {uinput.Key1, true}, '@': {uinput.Key2, true},
	'#': {uinput.Key3, true}, '$': {uinput.Key4, true},
	'%': {uinput.Key5, true}, '^': {uinput.Key6, true},
	'&': {uinput.Key7, true}, '*': {uinput.Key8, true},
	'(': {uinput.Key9, true}, ')': {uinput.Key0, true},

	' ':  {uinput.KeySpace, false},
	'-':  {uinput.KeyMinus, false},
	'_':  {uinput.KeyMinus, true},
	'=':  {uinput.KeyEqual, false},
	'+':  {uinput.KeyEqual, true},
	'[':  {uinput.KeyLeftbrace, false},
	'{':  {uinput.KeyLeftbrace, true},
	']':  {uinput.KeyRightbrace, false},
	'}':  {uinput.KeyRightbrace, true},
	';':  {uinput.KeySemicolon, false},
	':':  {uinput.KeySemicolon, true},
	'\'': {uinput.KeyApostrophe, false},
	'"':  {uinput.KeyApostrophe, true},
	'`':  {uinput.KeyGrave, false},
	'~':  {uinput.KeyGrave, true},
	'\\': {uinput.KeyBackslash, false},
	'|':  {uinput.KeyBackslash, true},
	',':  {uinput.KeyComma, false},
	'<':  {uinput.KeyComma, true},
	'.':  {uinput.KeyDot, false},
	'>':  {uinput.KeyDot, true},
	'/':  {uinput.KeySlash, false},
	'?':  {uinput.KeySlash, true},
}

// UinputSink forwards committed edits to a uinput virtual keyboard so
// the on-screen keyboard can type into whatever window has focus.
// Requires write access to /dev/uinput.
type UinputSink struct {
	vkbd     uinput.Keyboard
	keyDelay time.Duration
}

func NewUinputSink(name string) (*UinputSink, error) {
	vkbd, err := uinput.CreateKeyboard("/dev/uinput", []byte(name))
	if err != nil {
		return nil, fmt.Errorf("create uinput keyboard: %w", err)
	}
	return &UinputSink{vkbd: vkbd, keyDelay: 8 * time.Millisecond}, nil
}

// TypeString emits one key press per rune. Characters outside the US
// keymap are skipped with a log entry rather than failing the whole
// string.
func (s *UinputSink) TypeString(text string) error {
	for _, r := range text {
		stroke, ok := s.strokeFor(r)
		if !ok {
			internal.GetLogger().Debug("No keymap entry for character", "char", string(r))
			continue
		}
		if err := s.press(stroke); err != nil {
			return err
		}
		time.Sleep(s.keyDelay)
	}
	return nil
}

func (s *UinputSink) Backspace() error {
	return s.vkbd.KeyPress(uinput.KeyBackspace)
}

func (s *UinputSink) Close() error {
	return s.vkbd.Close()
}

func (s *UinputSink) strokeFor(r rune) (keyStroke, bool) {
	if stroke, ok := strokeMap[r]; ok {
		return stroke, true
	}
	if unicode.IsUpper(r) {
		if stroke, ok := strokeMap[unicode.ToLower(r)]; ok {
			stroke.shift = true
			return stroke, true
		}
	}
	return keyStroke{}, false
}

func (s *UinputSink) press(stroke keyStroke) error {
	if !stroke.shift {
		return s.vkbd.KeyPress(stroke.code)
	}
	if err := s.vkbd.KeyDown(uinput.KeyLeftshift); err != nil {
		return err
	}
	if err := s.vkbd.KeyPress(stroke.code); err != nil {
		return err
	}
	return s.vkbd.KeyUp(uinput.KeyLeftshift)
}
