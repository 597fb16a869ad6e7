package tastiera

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
)

// monoMeasurer renders every rune at a fixed width, which makes wrap
// positions exactly predictable.
type monoMeasurer struct {
	charWidth int32
}

func (m monoMeasurer) TextWidth(text string) int32 {
	return int32(len([]rune(text))) * m.charWidth
}

func newTestInput(charWidth, boxWidth int32) *TextInput {
	m := monoMeasurer{charWidth: charWidth}
	// Margin 2 on both sides, so wrap width is boxWidth-4.
	return NewTextInput(m, sdl.Rect{X: 0, Y: 100, W: boxWidth, H: 10}, 2)
}

func TestTruncateFittingPrefix(t *testing.T) {
	m := monoMeasurer{charWidth: 10}

	part, width := Truncate(m, "abcdef", 35, 0, false)
	assert.Equal(t, "abc", part)
	assert.Equal(t, int32(30), width)

	part, width = Truncate(m, "abcdef", 60, 0, false)
	assert.Equal(t, "abcdef", part)
	assert.Equal(t, int32(60), width)

	part, width = Truncate(m, "abcdef", 5, 0, false)
	assert.Equal(t, "", part)
	assert.Equal(t, int32(0), width)
}

func TestTruncateBudgetOracle(t *testing.T) {
	m := monoMeasurer{charWidth: 7}
	text := strings.Repeat("x", 40)

	for budget := int32(0); budget <= 100; budget += 13 {
		part, _ := Truncate(m, text, budget, 0, false)
		assert.Equal(t, int(budget/7), len(part), "budget %d", budget)
	}
}

func TestTruncateStartSeed(t *testing.T) {
	m := monoMeasurer{charWidth: 10}

	// A start seed below the answer must not change the result.
	part, _ := Truncate(m, "abcdef", 40, 2, false)
	assert.Equal(t, "abcd", part)

	// A start seed past the text length returns the text unchanged.
	part, width := Truncate(m, "ab", 40, 5, false)
	assert.Equal(t, "ab", part)
	assert.Equal(t, int32(20), width)
}

func TestTruncateNearest(t *testing.T) {
	m := monoMeasurer{charWidth: 10}

	// 24px is closer to "ab" (20) than to "abc" (30).
	part, _ := Truncate(m, "abcdef", 24, 0, true)
	assert.Equal(t, "ab", part)

	// 26px is closer to "abc".
	part, _ = Truncate(m, "abcdef", 26, 0, true)
	assert.Equal(t, "abc", part)

	// Dead center between the two boundaries goes to the longer prefix.
	part, _ = Truncate(m, "abcdef", 25, 0, true)
	assert.Equal(t, "abc", part)
}

func TestFeedReusesFullLinePrefix(t *testing.T) {
	m := monoMeasurer{charWidth: 10}
	ln := &inputLine{}

	remain := ln.feed(m, "abcdefgh", 30)
	assert.Equal(t, "abc", ln.text)
	assert.Equal(t, "defgh", remain)
	assert.True(t, ln.full)

	// Same text again: the full line passes the tail through untouched.
	remain = ln.feed(m, "abcdefgh", 30)
	assert.Equal(t, "abc", ln.text)
	assert.Equal(t, "defgh", remain)

	// Divergent text resets the line.
	remain = ln.feed(m, "xyz", 30)
	assert.Equal(t, "xyz", ln.text)
	assert.Equal(t, "", remain)
	assert.False(t, ln.full)
}

func TestSetTextWrapsAcrossLines(t *testing.T) {
	// 3 chars per line.
	in := newTestInput(10, 34)
	in.SetText("abcdefgh")

	lines := in.VisibleLines()
	require.Len(t, lines, 3)
	assert.Equal(t, "abc", lines[0].Text)
	assert.Equal(t, "def", lines[1].Text)
	assert.Equal(t, "gh", lines[2].Text)

	// The joined lines are exactly the text: no rune lost or duplicated.
	assert.Equal(t, "abcdefgh", lines[0].Text+lines[1].Text+lines[2].Text)

	// Bottom anchor: the last line sits at the box rect, earlier lines
	// stack upward.
	assert.Equal(t, int32(100), lines[2].Rect.Y)
	assert.Equal(t, int32(90), lines[1].Rect.Y)
	assert.Equal(t, int32(80), lines[0].Rect.Y)
}

func TestRewrapIsIdempotent(t *testing.T) {
	in := newTestInput(10, 34)
	in.SetText("abcdefgh")
	first := in.VisibleLines()

	in.SetText("abcdefgh")
	second := in.VisibleLines()
	assert.Equal(t, first, second)
}

func TestCursorClamping(t *testing.T) {
	in := newTestInput(10, 104)
	in.SetText("abc")
	assert.Equal(t, 3, in.CursorIndex())

	in.MoveCursor(100)
	assert.Equal(t, 3, in.CursorIndex())

	in.MoveCursor(-100)
	assert.Equal(t, 0, in.CursorIndex())

	in.SetCursorIndex(2)
	assert.Equal(t, 2, in.CursorIndex())
	in.SetCursorIndex(-1)
	assert.Equal(t, 0, in.CursorIndex())
}

func TestAddAtCursorSplices(t *testing.T) {
	in := newTestInput(10, 104)
	in.SetText("ad")
	in.SetCursorIndex(1)

	in.AddAtCursor("bc")
	assert.Equal(t, "abcd", in.Text())
	assert.Equal(t, 3, in.CursorIndex())
}

func TestBackspaceInvertsInsert(t *testing.T) {
	in := newTestInput(10, 104)
	in.SetText("hello")
	in.SetCursorIndex(3)

	in.AddAtCursor("x")
	assert.Equal(t, "helxlo", in.Text())
	require.True(t, in.Backspace())
	assert.Equal(t, "hello", in.Text())
	assert.Equal(t, 3, in.CursorIndex())
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	in := newTestInput(10, 104)
	in.SetText("abc")
	in.SetCursorIndex(0)

	assert.False(t, in.Backspace())
	assert.Equal(t, "abc", in.Text())
}

func TestCursorLineCol(t *testing.T) {
	in := newTestInput(10, 34)
	in.SetText("abcdefgh")

	in.SetCursorIndex(0)
	line, col := in.CursorLineCol()
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)

	// Index 3 is the boundary at the end of the first line.
	in.SetCursorIndex(3)
	line, col = in.CursorLineCol()
	assert.Equal(t, 0, line)
	assert.Equal(t, 3, col)

	in.SetCursorIndex(8)
	line, col = in.CursorLineCol()
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}

func TestCursorScreenPosition(t *testing.T) {
	in := newTestInput(10, 34)
	in.SetText("abcdefgh")

	in.SetCursorIndex(7)
	x, y := in.CursorScreenPosition()
	assert.Equal(t, int32(2+10), x)
	assert.Equal(t, int32(100), y)
}

func TestSetCursorAtClick(t *testing.T) {
	in := newTestInput(10, 34)
	in.SetText("abcdefgh")

	// Click dead center on the third character of the middle line:
	// the cursor lands after it.
	in.SetCursorAt(2+25, 95)
	assert.Equal(t, 3+3, in.CursorIndex())

	// Click far right of the last line clamps to the text end.
	in.SetCursorAt(1000, 105)
	assert.Equal(t, 8, in.CursorIndex())

	// Click outside every line leaves the cursor alone.
	in.SetCursorAt(5, 0)
	assert.Equal(t, 8, in.CursorIndex())
}

func TestBackgroundRectCoversVisibleLines(t *testing.T) {
	in := newTestInput(10, 34)

	// Empty box still has the always-visible line.
	bg := in.BackgroundRect()
	assert.Equal(t, int32(10+4), bg.H)

	in.SetText("abcdefgh")
	bg = in.BackgroundRect()
	assert.Equal(t, int32(3*10+4), bg.H)
	assert.Equal(t, int32(100-2*10-2), bg.Y)
}

func TestShrinkingTextHidesLines(t *testing.T) {
	in := newTestInput(10, 34)
	in.SetText("abcdefgh")
	require.Len(t, in.VisibleLines(), 3)

	in.SetText("ab")
	lines := in.VisibleLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "ab", lines[0].Text)
}

func TestSetRectRewraps(t *testing.T) {
	in := newTestInput(10, 34)
	in.SetText("abcdefgh")
	require.Len(t, in.VisibleLines(), 3)

	// Widen to 8 chars per line: everything fits on the bottom line.
	in.SetRect(sdl.Rect{X: 0, Y: 100, W: 84, H: 10})
	lines := in.VisibleLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "abcdefgh", lines[0].Text)
	assert.Equal(t, 8, in.CursorIndex())
}
