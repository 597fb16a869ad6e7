package tastiera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/pawndev/tastiera/pkg/tastiera/constants"
)

// stubRenderer satisfies Renderer without SDL so controller logic can
// be tested headless.
type stubRenderer struct {
	monoMeasurer
}

func (stubRenderer) DrawBackground(*sdl.Renderer, sdl.Rect)        {}
func (stubRenderer) DrawKey(*sdl.Renderer, *Key, bool)             {}
func (stubRenderer) DrawTextBoxBackground(*sdl.Renderer, sdl.Rect) {}
func (stubRenderer) DrawTextLine(*sdl.Renderer, RenderedLine)      {}
func (stubRenderer) DrawCursor(*sdl.Renderer, int32, int32, int32) {}

type recordingSink struct {
	typed      []string
	backspaces int
}

func (s *recordingSink) TypeString(text string) error {
	s.typed = append(s.typed, text)
	return nil
}

func (s *recordingSink) Backspace() error {
	s.backspaces++
	return nil
}

func newTestKeyboard(t *testing.T, mutate func(*Options)) *Keyboard {
	t.Helper()
	opts := DefaultOptions()
	opts.Renderer = stubRenderer{monoMeasurer{charWidth: 10}}
	if mutate != nil {
		mutate(&opts)
	}
	k, err := New(opts, 800, 600)
	require.NoError(t, err)
	return k
}

func TestNewKeyboard(t *testing.T) {
	k := newTestKeyboard(t, nil)

	assert.True(t, k.IsEnabled())
	assert.Equal(t, "", k.Text())
	require.NotNil(t, k.ActiveLayout())
	assert.Same(t, k.primary, k.ActiveLayout())

	// Directional navigation starts on the first key.
	require.NotNil(t, k.selected)
	assert.True(t, k.selected.Selected)
	assert.Same(t, k.primary.Rows[0].Keys[0], k.selected)
}

func TestNewKeyboardRejectsEmptyModel(t *testing.T) {
	opts := DefaultOptions()
	opts.Renderer = stubRenderer{monoMeasurer{charWidth: 10}}
	opts.Model = []string{}
	_, err := New(opts, 800, 600)
	assert.Error(t, err)
}

func TestCharacterKeyAppends(t *testing.T) {
	var notified []string
	k := newTestKeyboard(t, func(o *Options) {
		o.OnTextChanged = func(text string) { notified = append(notified, text) }
	})

	k.applyKey(k.primary.KeyByValue("q"))
	k.applyKey(k.primary.KeyByValue("a"))

	assert.Equal(t, "qa", k.Text())
	assert.Equal(t, []string{"q", "qa"}, notified)
}

func TestBackspaceKey(t *testing.T) {
	calls := 0
	k := newTestKeyboard(t, func(o *Options) {
		o.OnTextChanged = func(string) { calls++ }
	})
	k.textInput.SetText("ab")

	var back *Key
	for _, key := range k.primary.AllKeys() {
		if key.Kind == KeyBack {
			back = key
		}
	}
	require.NotNil(t, back)

	k.applyKey(back)
	assert.Equal(t, "a", k.Text())
	assert.Equal(t, 1, calls)

	// Deleting past the start stays silent.
	k.applyKey(back)
	k.applyKey(back)
	assert.Equal(t, "", k.Text())
	assert.Equal(t, 2, calls)
}

func TestUppercaseToggleFoldsBothLayouts(t *testing.T) {
	k := newTestKeyboard(t, nil)

	k.toggleUppercase()
	assert.NotNil(t, k.primary.KeyByValue("Q"))
	upper := k.primary.AllKeys()
	var shift *Key
	for _, key := range upper {
		if key.Kind == KeyUppercase {
			shift = key
		}
	}
	require.NotNil(t, shift)
	assert.True(t, k.keyActivated(shift))

	k.toggleUppercase()
	assert.NotNil(t, k.primary.KeyByValue("q"))
	assert.False(t, k.keyActivated(shift))
}

func TestSpecialCharsToggleSwapsLayout(t *testing.T) {
	k := newTestKeyboard(t, nil)

	k.toggleSpecialChars()
	assert.Same(t, k.special, k.ActiveLayout())

	// Typing works against the swapped layout.
	k.applyKey(k.special.KeyByValue("@"))
	assert.Equal(t, "@", k.Text())

	k.toggleSpecialChars()
	assert.Same(t, k.primary, k.ActiveLayout())
}

func TestSpecialCharsToggleWithoutSpecialLayout(t *testing.T) {
	k := newTestKeyboard(t, func(o *Options) {
		o.AllowSpecialChars = false
	})

	k.toggleSpecialChars()
	assert.Same(t, k.primary, k.ActiveLayout())
}

func TestLayoutsStayAlignedAcrossSwap(t *testing.T) {
	k := newTestKeyboard(t, nil)

	before := k.ActiveLayout().Rect
	k.toggleSpecialChars()
	assert.Equal(t, before, k.ActiveLayout().Rect)
	assert.Equal(t, k.primary.KeySize, k.special.KeySize)
}

func TestNavigateMovesSelection(t *testing.T) {
	k := newTestKeyboard(t, nil)
	first := k.selected

	k.navigate(constants.VirtualButtonRight)
	assert.Same(t, k.primary.Rows[0].Keys[1], k.selected)
	assert.False(t, first.Selected)
	assert.True(t, k.selected.Selected)

	k.navigate(constants.VirtualButtonLeft)
	assert.Same(t, first, k.selected)

	k.navigate(constants.VirtualButtonDown)
	assert.Same(t, k.primary.Rows[1].Keys[0], k.selected)
}

func TestNavigateIntoTextBox(t *testing.T) {
	k := newTestKeyboard(t, nil)
	first := k.selected

	// Up from the top row lands in the text box.
	k.navigate(constants.VirtualButtonUp)
	assert.True(t, k.textInput.Selected())
	assert.False(t, first.Selected)

	// Left/right move the text cursor while the box is selected.
	k.textInput.SetText("ab")
	k.navigate(constants.VirtualButtonLeft)
	assert.Equal(t, 1, k.textInput.CursorIndex())
	assert.True(t, k.textInput.Selected())

	// Down returns to the top row.
	k.navigate(constants.VirtualButtonDown)
	assert.False(t, k.textInput.Selected())
	assert.True(t, k.selected.Selected)
	assert.Same(t, k.primary.Rows[0].Keys[0], k.selected)
}

func TestNavigateWrapsRowsWithoutTextBox(t *testing.T) {
	k := newTestKeyboard(t, func(o *Options) {
		o.ShowTextInput = false
	})

	k.navigate(constants.VirtualButtonUp)
	lastRow := k.primary.Rows[len(k.primary.Rows)-1]
	assert.Same(t, lastRow.Keys[0], k.selected)
	assert.False(t, k.textInput.Selected())
}

func TestMouseCommitOnRelease(t *testing.T) {
	k := newTestKeyboard(t, nil)
	q := k.primary.KeyByValue("q")
	a := k.primary.KeyByValue("a")

	press := func(key *Key) *sdl.MouseButtonEvent {
		return &sdl.MouseButtonEvent{
			Type:   sdl.MOUSEBUTTONDOWN,
			Button: sdl.BUTTON_LEFT,
			X:      key.Rect.X + key.Rect.W/2,
			Y:      key.Rect.Y + key.Rect.H/2,
		}
	}
	release := func(key *Key) *sdl.MouseButtonEvent {
		e := press(key)
		e.Type = sdl.MOUSEBUTTONUP
		return e
	}

	// Press and release on the same key commits it.
	k.handleMouseButton(press(q))
	assert.True(t, q.Pressed)
	assert.Equal(t, "", k.Text())
	k.handleMouseButton(release(q))
	assert.False(t, q.Pressed)
	assert.Equal(t, "q", k.Text())

	// Press on one key, release on another: the release target wins.
	k.handleMouseButton(press(q))
	k.handleMouseButton(release(a))
	assert.Equal(t, "qa", k.Text())

	// Release outside any key commits nothing.
	k.handleMouseButton(press(q))
	k.handleMouseButton(&sdl.MouseButtonEvent{
		Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 0, Y: 0,
	})
	assert.Equal(t, "qa", k.Text())
	assert.False(t, q.Pressed)
}

func TestMouseReleaseWithoutPressIgnored(t *testing.T) {
	k := newTestKeyboard(t, nil)
	q := k.primary.KeyByValue("q")

	k.handleMouseButton(&sdl.MouseButtonEvent{
		Type:   sdl.MOUSEBUTTONUP,
		Button: sdl.BUTTON_LEFT,
		X:      q.Rect.X + 1,
		Y:      q.Rect.Y + 1,
	})
	assert.Equal(t, "", k.Text())
}

func TestMouseClickPositionsTextCursor(t *testing.T) {
	k := newTestKeyboard(t, nil)
	k.textInput.SetText("hello")
	bottom := k.textInput.Rect

	k.handleMouseButton(&sdl.MouseButtonEvent{
		Type:   sdl.MOUSEBUTTONDOWN,
		Button: sdl.BUTTON_LEFT,
		X:      bottom.X + k.textInput.Margin + 1,
		Y:      bottom.Y + bottom.H/2,
	})
	assert.True(t, k.textInput.Selected())
	assert.Equal(t, 0, k.textInput.CursorIndex())
}

func TestSinkReceivesEdits(t *testing.T) {
	k := newTestKeyboard(t, nil)
	sink := &recordingSink{}
	k.AttachSink(sink)

	k.applyKey(k.primary.KeyByValue("q"))
	k.textInput.SetCursorIndex(1)
	var back *Key
	for _, key := range k.primary.AllKeys() {
		if key.Kind == KeyBack {
			back = key
		}
	}
	k.applyKey(back)

	assert.Equal(t, []string{"q"}, sink.typed)
	assert.Equal(t, 1, sink.backspaces)
}

func TestResizeKeepsInvariants(t *testing.T) {
	k := newTestKeyboard(t, nil)

	k.Resize(640, 480)
	assert.LessOrEqual(t, k.primary.Rect.H, int32(240))
	assert.Equal(t, int32(480), k.primary.Rect.Y+k.primary.Rect.H)
	assert.Equal(t, k.primary.Rect, k.special.Rect)

	// The text box follows the keyboard top.
	assert.Less(t, k.textInput.Rect.Y, k.primary.Rect.Y)
}

func TestDisableStopsUpdates(t *testing.T) {
	k := newTestKeyboard(t, nil)
	k.Disable()
	assert.False(t, k.IsEnabled())

	q := k.primary.KeyByValue("q")
	k.Update([]sdl.Event{&sdl.MouseButtonEvent{
		Type:   sdl.MOUSEBUTTONDOWN,
		Button: sdl.BUTTON_LEFT,
		X:      q.Rect.X + 1,
		Y:      q.Rect.Y + 1,
	}})
	assert.False(t, q.Pressed)
}
