package tastiera

import (
	"errors"

	"github.com/pawndev/tastiera/pkg/tastiera/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Preset layout models. A model is one string per row; every character
// becomes a key.
var (
	// ModelQWERTY is the default latin layout.
	ModelQWERTY = []string{"1234567890", "qwertyuiop", "asdfghjkl", "wzxcvbnm"}

	// ModelAZERTY is the french layout.
	ModelAZERTY = []string{"1234567890", "azertyuiop", "qsdfghjklm", "wxcvbn"}

	// ModelNumeric is a digits-only pad.
	ModelNumeric = []string{"123", "456", "789", "0"}

	// ModelSpecial is the alternate layout the special-chars key
	// switches to.
	ModelSpecial = []string{`&é"'(§è!çà)`, "°_-^$¨*ù`%£", ",;:=?.@+<>#", `[]{}/\|`}
)

// ErrEmptyModel is returned when a layout model has no rows or only
// empty rows.
var ErrEmptyModel = errors.New("empty layout model")

// LayoutOptions carries the per-layout knobs. KeySize 0 means the cell
// edge is derived from the surface width on every ConfigureBound.
type LayoutOptions struct {
	KeySize           int32
	Padding           int32
	AllowUppercase    bool
	AllowSpecialChars bool
	AllowSpace        bool
}

// Layout owns the rows derived from a character model plus the injected
// special keys, and computes all key geometry against a target surface.
type Layout struct {
	Rows    []*Row
	KeySize int32
	Padding int32
	Rect    sdl.Rect

	// MaxRowLen is the longest model row; it drives automatic key
	// sizing and special-key distribution. Fixed at construction.
	MaxRowLen int

	AllowUppercase    bool
	AllowSpecialChars bool
	AllowSpace        bool

	autoKeySize bool
}

// NewLayout builds one row per model string, one character key per rune.
// Special keys are not injected here; call ConfigureSpecialKeys once
// after construction.
func NewLayout(model []string, opts LayoutOptions) (*Layout, error) {
	l := &Layout{
		KeySize:           opts.KeySize,
		Padding:           opts.Padding,
		AllowUppercase:    opts.AllowUppercase,
		AllowSpecialChars: opts.AllowSpecialChars,
		AllowSpace:        opts.AllowSpace,
		autoKeySize:       opts.KeySize == 0,
	}

	for _, modelRow := range model {
		row := &Row{}
		for _, value := range modelRow {
			row.AddKey(NewCharacterKey(string(value)), false)
		}
		l.Rows = append(l.Rows, row)
		if row.Len() > l.MaxRowLen {
			l.MaxRowLen = row.Len()
		}
	}
	if l.MaxRowLen == 0 {
		return nil, ErrEmptyModel
	}
	return l, nil
}

// ConfigureSpecialKeys injects the back key and the enabled toggle keys.
// Starting from the last row, each row's slack below MaxRowLen is filled
// with candidates, alternating insertion side so the specials don't all
// cluster on one edge. Whatever does not fit in existing rows lands on a
// new trailing row together with the space bar, whose length is the room
// left in the last processed row.
func (l *Layout) ConfigureSpecialKeys() {
	specials := []*Key{NewBackKey()}
	if l.AllowUppercase {
		specials = append(specials, NewUppercaseKey())
	}
	if l.AllowSpecialChars {
		specials = append(specials, NewSpecialCharsKey())
	}

	i := len(l.Rows) - 1
	current := l.Rows[i]
	for len(specials) > 0 {
		front := false
		for len(specials) > 0 && current.Len() < l.MaxRowLen {
			current.AddKey(specials[0], front)
			specials = specials[1:]
			front = !front
		}
		if i == 0 {
			break
		}
		i--
		current = l.Rows[i]
	}

	specialRow := &Row{}
	if l.AllowSpace {
		spaceLength := int32(current.Len() - len(specials))
		specialRow.AddKey(NewSpaceKey(spaceLength), false)
	}
	front := true
	for len(specials) > 0 {
		specialRow.AddKey(specials[0], front)
		specials = specials[1:]
		front = !front
	}
	if specialRow.Len() > 0 {
		l.Rows = append(l.Rows, specialRow)
	}
}

// ConfigureBound derives the key size (when automatic) from the surface
// width, then caps the keyboard at half the surface height by shrinking
// the key size if needed. The half-height cap always holds afterwards.
func (l *Layout) ConfigureBound(surfaceW, surfaceH int32) {
	rows := int32(len(l.Rows))
	maxLen := int32(l.MaxRowLen)

	if l.autoKeySize {
		l.KeySize = (surfaceW - l.Padding*(maxLen+1)) / maxLen
	}

	height := l.KeySize*rows + l.Padding*(rows+1)
	if height > surfaceH/2 {
		internal.GetInternalLogger().Warn("Keyboard height outbound target surface, reducing key size",
			"height", height,
			"surface_height", surfaceH)
		l.KeySize = (surfaceH/2 - l.Padding*(rows+1)) / rows
		height = l.KeySize*rows + l.Padding*(rows+1)
	}

	l.SetSize(surfaceW, height, surfaceW, surfaceH)
}

// SetSize anchors the layout to the bottom of the surface and lays out
// every row: stacked from the top of the layout box, each row centered
// horizontally, shifted left by half the space key's extra span so the
// space bar doesn't skew the centering of its neighbors.
func (l *Layout) SetSize(width, height, surfaceW, surfaceH int32) {
	l.Rect = sdl.Rect{X: 0, Y: surfaceH - height, W: width, H: height}

	y := l.Rect.Y + l.Padding
	for _, row := range l.Rows {
		n := int32(row.Len())
		rowWidth := n*l.KeySize + (n+1)*l.Padding
		x := (surfaceW - rowWidth) / 2
		if row.Space != nil {
			x -= (row.Space.Length - 1) * l.KeySize / 2
		}
		row.Layout(x, y, l.KeySize, l.Padding)
		y += l.Padding + l.KeySize
	}
}

// SynchronizeLayouts computes bounds for every layout independently,
// then forces the minimum key size and that layout's pixel size on all
// of them. Swapping between synchronized layouts never resizes visibly.
func SynchronizeLayouts(surfaceW, surfaceH int32, layouts ...*Layout) {
	if len(layouts) == 0 {
		return
	}
	for _, l := range layouts {
		l.ConfigureBound(surfaceW, surfaceH)
	}

	smallest := layouts[0]
	for _, l := range layouts[1:] {
		if l.KeySize < smallest.KeySize {
			smallest = l
		}
	}
	for _, l := range layouts {
		if l == smallest {
			continue
		}
		internal.GetInternalLogger().Debug("Normalizing layout geometry",
			"key_size", smallest.KeySize)
		l.KeySize = smallest.KeySize
		l.SetSize(smallest.Rect.W, smallest.Rect.H, surfaceW, surfaceH)
	}
}

// Invalidate clears all pressed and selected state.
func (l *Layout) Invalidate() {
	for _, row := range l.Rows {
		for _, key := range row.Keys {
			key.Pressed = false
			key.Selected = false
		}
	}
}

// SetUppercase folds every character key; other kinds are untouched.
func (l *Layout) SetUppercase(upper bool) {
	for _, row := range l.Rows {
		for _, key := range row.Keys {
			key.SetUppercase(upper)
		}
	}
}

// KeyAt returns the key under the point, nil when the point misses all
// keys. Rows are filtered by vertical containment first.
func (l *Layout) KeyAt(x, y int32) *Key {
	for _, row := range l.Rows {
		if row.ContainsY(y) {
			return row.KeyAt(x)
		}
	}
	return nil
}

// KeyByValue does a linear scan across all keys.
func (l *Layout) KeyByValue(value string) *Key {
	for _, row := range l.Rows {
		for _, key := range row.Keys {
			if key.Value == value {
				return key
			}
		}
	}
	return nil
}

func (l *Layout) position(key *Key) (rowIdx, colIdx int, ok bool) {
	for r, row := range l.Rows {
		for c, k := range row.Keys {
			if k == key {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Neighbor returns the key one step away in the given direction.
// Horizontal movement always wraps within the row; vertical movement
// wraps across rows only when wrapRows is set, and clamps the column to
// the destination row's length. Returns nil when there is no candidate,
// which callers treat as "selection stays put".
func (l *Layout) Neighbor(key *Key, dx, dy int, wrapRows bool) *Key {
	rowIdx, colIdx, ok := l.position(key)
	if !ok {
		return nil
	}

	if dx != 0 {
		row := l.Rows[rowIdx]
		colIdx += dx
		if colIdx < 0 {
			colIdx = row.Len() - 1
		} else if colIdx >= row.Len() {
			colIdx = 0
		}
		return row.Keys[colIdx]
	}

	if dy != 0 {
		rowIdx += dy
		if rowIdx < 0 {
			if !wrapRows {
				return nil
			}
			rowIdx = len(l.Rows) - 1
		} else if rowIdx >= len(l.Rows) {
			if !wrapRows {
				return nil
			}
			rowIdx = 0
		}
		row := l.Rows[rowIdx]
		if colIdx >= row.Len() {
			colIdx = row.Len() - 1
		}
		return row.Keys[colIdx]
	}

	return key
}

// AllKeys returns every key row by row.
func (l *Layout) AllKeys() []*Key {
	var keys []*Key
	for _, row := range l.Rows {
		keys = append(keys, row.Keys...)
	}
	return keys
}
