package tastiera

import (
	"strings"

	"github.com/pawndev/tastiera/pkg/tastiera/i18n"
	"github.com/veandco/go-sdl2/sdl"
)

// KeyKind is the closed set of key behaviors. The renderer and the
// controller both switch on it; there are no other key variants.
type KeyKind int

const (
	KeyCharacter KeyKind = iota
	KeySpace
	KeyBack
	KeyUppercase
	KeySpecialChars
)

// KeyAction is the command a key activation produces. Keys never mutate
// the text buffer or the keyboard themselves; the controller interprets
// the action.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionAppend
	ActionBackspace
	ActionToggleUppercase
	ActionToggleSpecialChars
)

// Key holds one key's identity, geometry and interaction state. Value is
// the text an ActionAppend commits; Symbol is what gets drawn, which may
// differ (back arrow, shift glyph, localized space label).
type Key struct {
	Kind            KeyKind
	Value           string
	Symbol          string
	ActivatedSymbol string

	// Space keys span Length unit cells; 1 for everything else.
	Length int32

	Rect     sdl.Rect
	Pressed  bool
	Selected bool
}

var spaceLabel = &i18n.Message{ID: "key.space", Other: "space"}

func NewCharacterKey(value string) *Key {
	return &Key{Kind: KeyCharacter, Value: value, Symbol: value, Length: 1}
}

func NewSpaceKey(length int32) *Key {
	if length < 1 {
		length = 1
	}
	return &Key{
		Kind:   KeySpace,
		Value:  " ",
		Symbol: i18n.Localize(spaceLabel, nil),
		Length: length,
	}
}

func NewBackKey() *Key {
	return &Key{Kind: KeyBack, Symbol: "←", Length: 1}
}

func NewUppercaseKey() *Key {
	return &Key{
		Kind:            KeyUppercase,
		Symbol:          "⇧",
		ActivatedSymbol: "⇪",
		Length:          1,
	}
}

func NewSpecialCharsKey() *Key {
	return &Key{
		Kind:            KeySpecialChars,
		Symbol:          "#",
		ActivatedSymbol: "Ab",
		Length:          1,
	}
}

// Activate returns the command this key produces. It is side-effect
// free; pressed state is managed by the controller around the
// press/release edges.
func (k *Key) Activate() KeyAction {
	switch k.Kind {
	case KeyCharacter, KeySpace:
		return ActionAppend
	case KeyBack:
		return ActionBackspace
	case KeyUppercase:
		return ActionToggleUppercase
	case KeySpecialChars:
		return ActionToggleSpecialChars
	}
	return ActionNone
}

// HitTestX checks horizontal containment only. Vertical containment is
// the owning row's job, which keeps pointer lookup at two cheap stages
// instead of scanning every key rect.
func (k *Key) HitTestX(x int32) bool {
	return x >= k.Rect.X && x <= k.Rect.X+k.Rect.W
}

// SetUppercase case-folds character keys; every other kind ignores it.
func (k *Key) SetUppercase(upper bool) {
	if k.Kind != KeyCharacter {
		return
	}
	if upper {
		k.Value = strings.ToUpper(k.Value)
	} else {
		k.Value = strings.ToLower(k.Value)
	}
	k.Symbol = k.Value
}

// DisplaySymbol returns the glyph to draw given the keyboard's toggle
// state for this key's kind.
func (k *Key) DisplaySymbol(activated bool) string {
	if activated && k.ActivatedSymbol != "" {
		return k.ActivatedSymbol
	}
	return k.Symbol
}
