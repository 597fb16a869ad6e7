package tastiera

import (
	"strings"
	"time"

	"github.com/pawndev/tastiera/pkg/tastiera/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// TextMeasurer is the single capability the text engine needs from a
// renderer: the rendered pixel width of a string in the input font.
type TextMeasurer interface {
	TextWidth(text string) int32
}

// Truncate finds the largest prefix of text whose rendered width fits
// maxWidth, by binary search over rune counts. start seeds the lower
// bound when the caller already knows a fitting prefix length. With
// nearest, the prefix one rune longer is returned instead when its
// overshoot is closer to maxWidth than the fitting prefix's shortfall;
// ties go to the longer prefix so a click dead-center on a glyph lands
// after it. Both the wrap algorithm and click-to-cursor mapping are
// built on this primitive.
func Truncate(m TextMeasurer, text string, maxWidth int32, start int, nearest bool) (string, int32) {
	runes := []rune(text)
	end := len(runes)
	if end < start {
		return text, m.TextWidth(text)
	}

	var width int32
	for start < end {
		k := (start + end) / 2
		newWidth := m.TextWidth(string(runes[:k+1]))
		if newWidth > maxWidth {
			end = k
		} else {
			width = newWidth
			start = k + 1
		}
	}

	if nearest && start < len(runes) {
		nextWidth := m.TextWidth(string(runes[:start+1]))
		if internal.Abs32(maxWidth-nextWidth) <= internal.Abs32(maxWidth-width) {
			return string(runes[:start+1]), nextWidth
		}
	}

	return string(runes[:start]), width
}

// inputLine is one display line of the text box. Lines are recycled
// across edits: feeding an empty string hides the line instead of
// dropping it.
type inputLine struct {
	text    string
	full    bool
	visible bool

	// The first line stays visible even when empty, so an empty text
	// box still shows the cursor somewhere.
	alwaysVisible bool

	rect sdl.Rect
}

func (ln *inputLine) len() int {
	return len([]rune(ln.text))
}

func (ln *inputLine) clear() string {
	if ln.text != "" {
		ln.text = ""
		ln.full = false
		if !ln.alwaysVisible {
			ln.visible = false
		}
	}
	return ""
}

// feed fills the line from text and returns the remainder that spills to
// the next line. A line that already holds a prefix of the text and is
// full passes the tail through untouched, which keeps re-wrapping
// unchanged text cheap and idempotent.
func (ln *inputLine) feed(m TextMeasurer, text string, maxWidth int32) string {
	if text == "" {
		return ln.clear()
	}
	if ln.text != "" {
		if strings.HasPrefix(text, ln.text) {
			if ln.full {
				return text[len(ln.text):]
			}
		} else {
			ln.text = ""
		}
	}

	part, _ := Truncate(m, text, maxWidth, ln.len(), false)
	ln.text = part

	remain := text[len(part):]
	ln.full = remain != ""
	ln.visible = true
	return remain
}

// TextInput owns the accumulated text, the wrap state and the cursor.
// The box is anchored at its bottom line; additional lines stack upward
// as the text wraps.
type TextInput struct {
	measurer TextMeasurer
	lines    []*inputLine

	text        string
	cursorIndex int // rune offset into text

	// Position and size of the bottom (first) line box.
	Rect   sdl.Rect
	Margin int32

	enabled  bool
	selected bool

	CursorVisible   bool
	LastCursorBlink time.Time
	CursorBlinkRate time.Duration
}

// NewTextInput creates a text box with one always-visible line at the
// given bottom-line rect.
func NewTextInput(m TextMeasurer, rect sdl.Rect, margin int32) *TextInput {
	t := &TextInput{
		measurer:        m,
		Rect:            rect,
		Margin:          margin,
		CursorVisible:   true,
		LastCursorBlink: time.Now(),
		CursorBlinkRate: 400 * time.Millisecond,
	}
	t.lines = []*inputLine{{alwaysVisible: true, visible: true}}
	t.layoutLines()
	return t
}

func (t *TextInput) Enable()         { t.enabled = true }
func (t *TextInput) Disable()        { t.enabled = false }
func (t *TextInput) IsEnabled() bool { return t.enabled }

// SetSelected marks the box as the navigation target; the cursor blinks
// only while selected.
func (t *TextInput) SetSelected(selected bool) { t.selected = selected }
func (t *TextInput) Selected() bool            { return t.selected }

func (t *TextInput) Text() string     { return t.text }
func (t *TextInput) CursorIndex() int { return t.cursorIndex }

func (t *TextInput) wrapWidth() int32 {
	return t.Rect.W - 2*t.Margin
}

// SetRect moves and resizes the bottom-line box and re-wraps from
// scratch.
func (t *TextInput) SetRect(rect sdl.Rect) {
	t.Rect = rect
	for _, ln := range t.lines {
		ln.clear()
	}
	t.updateLines()
	t.MoveCursor(0)
}

// SetText replaces the whole text and puts the cursor at the end.
func (t *TextInput) SetText(text string) {
	t.text = text
	t.updateLines()
	t.cursorIndex = 0
	t.MoveCursor(len([]rune(text)))
}

// AddAtCursor splices text in at the cursor and advances past it.
func (t *TextInput) AddAtCursor(text string) {
	runes := []rune(t.text)
	if t.cursorIndex < len(runes) {
		t.text = string(runes[:t.cursorIndex]) + text + string(runes[t.cursorIndex:])
	} else {
		t.text += text
	}
	t.updateLines()
	t.MoveCursor(len([]rune(text)))
}

// Backspace deletes the character before the cursor. Reports whether the
// text actually changed; at index 0 it is a no-op.
func (t *TextInput) Backspace() bool {
	if t.cursorIndex == 0 {
		return false
	}
	runes := []rune(t.text)
	t.text = string(runes[:t.cursorIndex-1]) + string(runes[t.cursorIndex:])
	t.updateLines()
	t.MoveCursor(-1)
	return true
}

// MoveCursor shifts the cursor by step runes, clamped to the text
// bounds. Any cursor movement makes it visible and restarts the blink
// interval.
func (t *TextInput) MoveCursor(step int) {
	idx := t.cursorIndex + step
	if idx < 0 {
		idx = 0
	}
	if limit := len([]rune(t.text)); idx > limit {
		idx = limit
	}
	t.cursorIndex = idx
	t.CursorVisible = true
	t.LastCursorBlink = time.Now()
}

// SetCursorIndex jumps to an absolute index, clamped.
func (t *TextInput) SetCursorIndex(index int) {
	t.cursorIndex = 0
	t.MoveCursor(index)
}

// updateLines re-feeds the text through the line list, growing it when
// the text spills past the last line, then stacks the visible lines
// upward from the bottom anchor.
func (t *TextInput) updateLines() {
	remain := t.text
	for _, ln := range t.lines {
		remain = ln.feed(t.measurer, remain, t.wrapWidth())
	}
	for remain != "" {
		ln := &inputLine{}
		remain = ln.feed(t.measurer, remain, t.wrapWidth())
		t.lines = append(t.lines, ln)
	}
	t.layoutLines()
}

func (t *TextInput) layoutLines() {
	i := int32(0)
	for idx := len(t.lines) - 1; idx >= 0; idx-- {
		ln := t.lines[idx]
		if !ln.visible {
			continue
		}
		ln.rect = sdl.Rect{
			X: t.Rect.X + t.Margin,
			Y: t.Rect.Y - i*t.Rect.H,
			W: t.wrapWidth(),
			H: t.Rect.H,
		}
		i++
	}
}

// VisibleLines returns the visible lines top to bottom for rendering.
func (t *TextInput) VisibleLines() []RenderedLine {
	var out []RenderedLine
	for _, ln := range t.lines {
		if ln.visible {
			out = append(out, RenderedLine{Text: ln.text, Rect: ln.rect})
		}
	}
	return out
}

// BackgroundRect is the box enclosing all visible lines plus margins.
func (t *TextInput) BackgroundRect() sdl.Rect {
	count := int32(0)
	for _, ln := range t.lines {
		if ln.visible {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return sdl.Rect{
		X: t.Rect.X,
		Y: t.Rect.Y - (count-1)*t.Rect.H - t.Margin,
		W: t.Rect.W,
		H: count*t.Rect.H + 2*t.Margin,
	}
}

// Contains reports whether the point falls inside the text box.
func (t *TextInput) Contains(x, y int32) bool {
	r := t.BackgroundRect()
	p := sdl.Point{X: x, Y: y}
	return p.InRect(&r)
}

// CursorLineCol maps the absolute cursor index to (line, intra-line
// offset) for the current wrap state.
func (t *TextInput) CursorLineCol() (line, col int) {
	counted := 0
	for i, ln := range t.lines {
		if counted+ln.len() >= t.cursorIndex {
			return i, t.cursorIndex - counted
		}
		counted += ln.len()
	}
	return 0, 0
}

// CursorScreenPosition is where the cursor is drawn for the current
// index and wrap state.
func (t *TextInput) CursorScreenPosition() (x, y int32) {
	line, col := t.CursorLineCol()
	ln := t.lines[line]
	runes := []rune(ln.text)
	x = ln.rect.X + t.measurer.TextWidth(string(runes[:col]))
	return x, ln.rect.Y
}

// SetCursorAt moves the cursor to the character boundary nearest to a
// pointer position. The clicked line is found by vertical containment,
// the intra-line offset by the nearest-mode truncate.
func (t *TextInput) SetCursorAt(x, y int32) {
	counted := 0
	for _, ln := range t.lines {
		if !ln.visible {
			continue
		}
		if y >= ln.rect.Y && y <= ln.rect.Y+ln.rect.H {
			part, _ := Truncate(t.measurer, ln.text, x-ln.rect.X, 0, true)
			t.SetCursorIndex(counted + len([]rune(part)))
			return
		}
		counted += ln.len()
	}
}

// UpdateBlink toggles cursor visibility on the blink interval.
func (t *TextInput) UpdateBlink() {
	if time.Since(t.LastCursorBlink) > t.CursorBlinkRate {
		t.CursorVisible = !t.CursorVisible
		t.LastCursorBlink = time.Now()
	}
}

// RenderedLine is one visible line handed to the renderer.
type RenderedLine struct {
	Text string
	Rect sdl.Rect
}
