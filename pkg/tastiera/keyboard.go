package tastiera

import (
	"fmt"
	"time"

	"github.com/pawndev/tastiera/pkg/tastiera/constants"
	"github.com/pawndev/tastiera/pkg/tastiera/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Options configures a Keyboard. Zero values get the documented
// defaults from DefaultOptions.
type Options struct {
	// Model is the primary layout model, one string per row.
	Model []string

	// SpecialModel is the alternate layout the special-chars key
	// switches to. Ignored unless AllowSpecialChars.
	SpecialModel []string

	// KeySize pins the cell edge in pixels; 0 derives it from the
	// surface width.
	KeySize int32
	Padding int32

	AllowUppercase    bool
	AllowSpecialChars bool
	AllowSpace        bool

	// ShowTextInput renders the text box above the keys and makes it
	// part of the navigable set.
	ShowTextInput bool

	EnableDirectionalNavigation bool

	InitialText string

	// OnTextChanged fires synchronously after every edit, never for
	// navigation or mode toggles.
	OnTextChanged func(text string)

	// Renderer overrides the default SDL renderer.
	Renderer Renderer
}

func DefaultOptions() Options {
	return Options{
		Model:                       ModelQWERTY,
		SpecialModel:                ModelSpecial,
		Padding:                     5,
		AllowUppercase:              true,
		AllowSpecialChars:           true,
		AllowSpace:                  true,
		ShowTextInput:               true,
		EnableDirectionalNavigation: true,
	}
}

// TextSink receives committed edits, typically to forward them to a
// uinput virtual keyboard so the widget can type into other programs.
type TextSink interface {
	TypeString(text string) error
	Backspace() error
}

// Keyboard is the top-level widget: one or two layouts, the text input,
// mode flags and event dispatch. All mutation happens on the caller's
// event loop thread; nothing here is concurrent.
type Keyboard struct {
	opts     Options
	renderer Renderer

	primary *Layout
	special *Layout
	active  *Layout

	textInput *TextInput

	surfaceW, surfaceH int32

	uppercase    bool
	specialChars bool
	enabled      bool

	// Key that received the pointer press; the edit commits on release
	// against the key under the pointer at that moment.
	lastPressed *Key

	selected *Key

	sink TextSink

	heldDirections struct {
		up, down, left, right bool
	}
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	lastInputTime  time.Time
	inputDelay     time.Duration
}

// New builds a keyboard against an explicit surface size. The primary
// and special layouts are built independently, then synchronized so
// switching between them never changes the visible geometry.
func New(opts Options, surfaceW, surfaceH int32) (*Keyboard, error) {
	if opts.Model == nil {
		opts.Model = ModelQWERTY
	}
	if opts.SpecialModel == nil {
		opts.SpecialModel = ModelSpecial
	}
	if opts.Padding == 0 {
		opts.Padding = 5
	}

	k := &Keyboard{
		opts:           opts,
		surfaceW:       surfaceW,
		surfaceH:       surfaceH,
		enabled:        true,
		lastRepeatTime: time.Now(),
		repeatDelay:    150 * time.Millisecond,
		repeatInterval: 50 * time.Millisecond,
		inputDelay:     100 * time.Millisecond,
	}

	layoutOpts := LayoutOptions{
		KeySize:           opts.KeySize,
		Padding:           opts.Padding,
		AllowUppercase:    opts.AllowUppercase,
		AllowSpecialChars: opts.AllowSpecialChars,
		AllowSpace:        opts.AllowSpace,
	}

	var err error
	k.primary, err = NewLayout(opts.Model, layoutOpts)
	if err != nil {
		return nil, fmt.Errorf("build primary layout: %w", err)
	}
	k.primary.ConfigureSpecialKeys()

	if opts.AllowSpecialChars {
		k.special, err = NewLayout(opts.SpecialModel, layoutOpts)
		if err != nil {
			return nil, fmt.Errorf("build special layout: %w", err)
		}
		k.special.ConfigureSpecialKeys()
		SynchronizeLayouts(surfaceW, surfaceH, k.primary, k.special)
	} else {
		k.primary.ConfigureBound(surfaceW, surfaceH)
	}
	k.active = k.primary

	if opts.Renderer != nil {
		k.renderer = opts.Renderer
	} else {
		k.renderer, err = NewRenderer(DarkStyle())
		if err != nil {
			return nil, err
		}
	}

	k.textInput = NewTextInput(k.renderer, k.textInputRect(), 2)
	k.textInput.Enable()
	if opts.InitialText != "" {
		k.textInput.SetText(opts.InitialText)
	}

	if opts.EnableDirectionalNavigation {
		k.selectKey(k.firstKey())
	}

	internal.GetLogger().Debug("Keyboard created",
		"rows", len(k.primary.Rows),
		"key_size", k.primary.KeySize,
		"special_layout", k.special != nil)
	return k, nil
}

// textInputRect is the bottom-line box of the text input, sitting just
// above the keyboard panel. Lines grow upward from there as the text
// wraps.
func (k *Keyboard) textInputRect() sdl.Rect {
	lineH := k.active.KeySize
	return sdl.Rect{
		X: k.opts.Padding,
		Y: k.active.Rect.Y - lineH - k.opts.Padding,
		W: k.surfaceW - 2*k.opts.Padding,
		H: lineH,
	}
}

func (k *Keyboard) Enable() {
	k.enabled = true
	k.active.Invalidate()
	if k.opts.EnableDirectionalNavigation {
		k.selectKey(k.firstKey())
	}
}

func (k *Keyboard) Disable() {
	k.enabled = false
}

func (k *Keyboard) IsEnabled() bool {
	return k.enabled
}

func (k *Keyboard) Text() string {
	return k.textInput.Text()
}

func (k *Keyboard) SetText(text string) {
	k.textInput.SetText(text)
	k.notifyTextChanged()
}

func (k *Keyboard) TextInput() *TextInput {
	return k.textInput
}

func (k *Keyboard) ActiveLayout() *Layout {
	return k.active
}

// AttachSink forwards every committed edit to the sink in addition to
// the OnTextChanged callback.
func (k *Keyboard) AttachSink(sink TextSink) {
	k.sink = sink
}

// Resize recomputes all geometry for a new surface size. Automatic key
// sizes are re-derived; pinned ones only shrink if the half-height cap
// demands it.
func (k *Keyboard) Resize(surfaceW, surfaceH int32) {
	k.surfaceW = surfaceW
	k.surfaceH = surfaceH
	if k.special != nil {
		SynchronizeLayouts(surfaceW, surfaceH, k.primary, k.special)
	} else {
		k.primary.ConfigureBound(surfaceW, surfaceH)
	}
	k.textInput.SetRect(k.textInputRect())
}

// Update processes a batch of input events synchronously, then runs the
// held-direction auto-repeat and the cursor blink.
func (k *Keyboard) Update(events []sdl.Event) {
	if !k.enabled {
		return
	}

	for _, event := range events {
		switch e := event.(type) {
		case *sdl.MouseButtonEvent:
			k.handleMouseButton(e)
		case *sdl.KeyboardEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent,
			*sdl.JoyButtonEvent, *sdl.JoyAxisEvent, *sdl.JoyHatEvent:
			processor := internal.GetInputProcessor()
			if processor == nil {
				continue
			}
			if inputEvent := processor.ProcessSDLEvent(event); inputEvent != nil {
				if inputEvent.Pressed {
					k.handleButtonPress(inputEvent.Button)
				} else {
					k.handleButtonRelease(inputEvent.Button)
				}
			}
		}
	}

	k.handleDirectionalRepeats()
	if k.opts.ShowTextInput {
		k.textInput.UpdateBlink()
	}
}

// handleMouseButton implements commit-on-release: pressing a key only
// sets visual state, the edit commits against the key under the pointer
// when the button goes up. Only the primary button activates keys; the
// text box accepts any of the three standard buttons for cursor
// placement, and wheel pseudo-buttons are ignored entirely.
func (k *Keyboard) handleMouseButton(e *sdl.MouseButtonEvent) {
	switch e.Type {
	case sdl.MOUSEBUTTONDOWN:
		if e.Button == sdl.BUTTON_LEFT {
			if key := k.active.KeyAt(e.X, e.Y); key != nil {
				key.Pressed = true
				k.lastPressed = key
				return
			}
		}
		if k.opts.ShowTextInput && e.Button <= sdl.BUTTON_RIGHT && k.textInput.Contains(e.X, e.Y) {
			k.textInput.SetCursorAt(e.X, e.Y)
			k.setTextBoxSelected(true)
		}
	case sdl.MOUSEBUTTONUP:
		if e.Button != sdl.BUTTON_LEFT || k.lastPressed == nil {
			return
		}
		k.lastPressed.Pressed = false
		k.lastPressed = nil
		if key := k.active.KeyAt(e.X, e.Y); key != nil {
			k.applyKey(key)
		}
	}
}

func (k *Keyboard) handleButtonPress(button constants.VirtualButton) {
	if isDirectional(button) {
		if time.Since(k.lastInputTime) < k.inputDelay {
			return
		}
		k.lastInputTime = time.Now()
	}

	switch button {
	case constants.VirtualButtonUp:
		k.navigate(button)
		k.heldDirections.up = true
		k.heldDirections.down = false
		k.lastRepeatTime = time.Now()
	case constants.VirtualButtonDown:
		k.navigate(button)
		k.heldDirections.down = true
		k.heldDirections.up = false
		k.lastRepeatTime = time.Now()
	case constants.VirtualButtonLeft:
		k.navigate(button)
		k.heldDirections.left = true
		k.heldDirections.right = false
		k.lastRepeatTime = time.Now()
	case constants.VirtualButtonRight:
		k.navigate(button)
		k.heldDirections.right = true
		k.heldDirections.left = false
		k.lastRepeatTime = time.Now()
	case constants.VirtualButtonA:
		if k.selected != nil && !k.textInput.Selected() {
			k.applyKey(k.selected)
		}
	case constants.VirtualButtonB:
		if k.textInput.Backspace() {
			k.notifyBackspace()
		}
	case constants.VirtualButtonX:
		if k.opts.AllowSpace {
			k.textInput.AddAtCursor(" ")
			k.notifyAppend(" ")
		}
	case constants.VirtualButtonSelect:
		if k.opts.AllowUppercase {
			k.toggleUppercase()
		}
	case constants.VirtualButtonL1:
		k.textInput.MoveCursor(-1)
	case constants.VirtualButtonR1:
		k.textInput.MoveCursor(1)
	}
}

func (k *Keyboard) handleButtonRelease(button constants.VirtualButton) {
	switch button {
	case constants.VirtualButtonUp:
		k.heldDirections.up = false
		k.hasRepeated = false
	case constants.VirtualButtonDown:
		k.heldDirections.down = false
		k.hasRepeated = false
	case constants.VirtualButtonLeft:
		k.heldDirections.left = false
		k.hasRepeated = false
	case constants.VirtualButtonRight:
		k.heldDirections.right = false
		k.hasRepeated = false
	}
}

// handleDirectionalRepeats re-triggers navigation while a direction
// stays held: one longer delay before the first repeat, then a short
// interval.
func (k *Keyboard) handleDirectionalRepeats() {
	h := k.heldDirections
	if !h.up && !h.down && !h.left && !h.right {
		k.lastRepeatTime = time.Now()
		k.hasRepeated = false
		return
	}

	threshold := k.repeatInterval
	if !k.hasRepeated {
		threshold = k.repeatDelay
	}
	if time.Since(k.lastRepeatTime) < threshold {
		return
	}
	k.lastRepeatTime = time.Now()
	k.hasRepeated = true

	switch {
	case h.up:
		k.navigate(constants.VirtualButtonUp)
	case h.down:
		k.navigate(constants.VirtualButtonDown)
	case h.left:
		k.navigate(constants.VirtualButtonLeft)
	case h.right:
		k.navigate(constants.VirtualButtonRight)
	}
}

func isDirectional(button constants.VirtualButton) bool {
	return button == constants.VirtualButtonUp || button == constants.VirtualButtonDown ||
		button == constants.VirtualButtonLeft || button == constants.VirtualButtonRight
}

// navigate moves the selection. Horizontal movement always wraps within
// the row. Vertical movement leaves the grid into the text box when the
// box is shown, otherwise wraps across rows. Inside the text box,
// left/right move the cursor instead.
func (k *Keyboard) navigate(button constants.VirtualButton) {
	if !k.opts.EnableDirectionalNavigation {
		return
	}

	if k.opts.ShowTextInput && k.textInput.Selected() {
		switch button {
		case constants.VirtualButtonLeft:
			k.textInput.MoveCursor(-1)
		case constants.VirtualButtonRight:
			k.textInput.MoveCursor(1)
		case constants.VirtualButtonUp:
			k.leaveTextBox(len(k.active.Rows) - 1)
		case constants.VirtualButtonDown:
			k.leaveTextBox(0)
		}
		return
	}

	if k.selected == nil {
		k.selectKey(k.firstKey())
		return
	}

	wrapRows := !k.opts.ShowTextInput
	var next *Key
	switch button {
	case constants.VirtualButtonLeft:
		next = k.active.Neighbor(k.selected, -1, 0, wrapRows)
	case constants.VirtualButtonRight:
		next = k.active.Neighbor(k.selected, 1, 0, wrapRows)
	case constants.VirtualButtonUp:
		next = k.active.Neighbor(k.selected, 0, -1, wrapRows)
		if next == nil && k.opts.ShowTextInput {
			k.enterTextBox()
			return
		}
	case constants.VirtualButtonDown:
		next = k.active.Neighbor(k.selected, 0, 1, wrapRows)
		if next == nil && k.opts.ShowTextInput {
			k.enterTextBox()
			return
		}
	}
	if next != nil {
		k.selectKey(next)
	}
}

func (k *Keyboard) enterTextBox() {
	if k.selected != nil {
		k.selected.Selected = false
	}
	k.setTextBoxSelected(true)
}

// leaveTextBox returns the selection to the grid, clamping the column of
// the previously selected key into the destination row.
func (k *Keyboard) leaveTextBox(rowIdx int) {
	k.setTextBoxSelected(false)
	row := k.active.Rows[rowIdx]
	col := 0
	if k.selected != nil {
		if _, c, ok := k.active.position(k.selected); ok {
			col = c
		}
	}
	if col >= row.Len() {
		col = row.Len() - 1
	}
	k.selectKey(row.Keys[col])
}

func (k *Keyboard) setTextBoxSelected(selected bool) {
	k.textInput.SetSelected(selected)
	if selected && k.selected != nil {
		k.selected.Selected = false
	} else if !selected && k.selected != nil {
		k.selected.Selected = true
	}
}

func (k *Keyboard) firstKey() *Key {
	if len(k.active.Rows) == 0 || k.active.Rows[0].Len() == 0 {
		return nil
	}
	return k.active.Rows[0].Keys[0]
}

func (k *Keyboard) selectKey(key *Key) {
	if k.selected != nil {
		k.selected.Selected = false
	}
	k.selected = key
	if key != nil {
		key.Selected = true
	}
}

// applyKey interprets a key activation. Only buffer edits fire the
// OnTextChanged callback; toggles and no-ops stay silent.
func (k *Keyboard) applyKey(key *Key) {
	switch key.Activate() {
	case ActionAppend:
		k.textInput.AddAtCursor(key.Value)
		k.notifyAppend(key.Value)
	case ActionBackspace:
		if k.textInput.Backspace() {
			k.notifyBackspace()
		}
	case ActionToggleUppercase:
		k.toggleUppercase()
	case ActionToggleSpecialChars:
		k.toggleSpecialChars()
	}
}

func (k *Keyboard) toggleUppercase() {
	k.uppercase = !k.uppercase
	k.primary.SetUppercase(k.uppercase)
	if k.special != nil {
		k.special.SetUppercase(k.uppercase)
	}
}

// toggleSpecialChars swaps the active layout. It is a pointer swap, not
// a rebuild; geometry was reconciled at construction.
func (k *Keyboard) toggleSpecialChars() {
	if k.special == nil {
		return
	}
	k.specialChars = !k.specialChars
	target := k.primary
	if k.specialChars {
		target = k.special
	}
	k.active.Invalidate()
	k.active = target
	k.lastPressed = nil
	if k.opts.EnableDirectionalNavigation && !k.textInput.Selected() {
		k.selected = nil
		k.selectKey(k.firstKey())
	}
}

func (k *Keyboard) notifyAppend(text string) {
	if k.sink != nil {
		if err := k.sink.TypeString(text); err != nil {
			internal.GetLogger().Error("Text sink rejected input", "error", err)
		}
	}
	k.notifyTextChanged()
}

func (k *Keyboard) notifyBackspace() {
	if k.sink != nil {
		if err := k.sink.Backspace(); err != nil {
			internal.GetLogger().Error("Text sink rejected backspace", "error", err)
		}
	}
	k.notifyTextChanged()
}

func (k *Keyboard) notifyTextChanged() {
	if k.opts.OnTextChanged != nil {
		k.opts.OnTextChanged(k.textInput.Text())
	}
}

// keyActivated reports the toggle state the renderer needs for action
// keys.
func (k *Keyboard) keyActivated(key *Key) bool {
	switch key.Kind {
	case KeyUppercase:
		return k.uppercase
	case KeySpecialChars:
		return k.specialChars
	}
	return false
}

// Draw renders the keyboard panel, all keys of the active layout, and
// the text box with its cursor. Pure read of current state.
func (k *Keyboard) Draw(r *sdl.Renderer) {
	if !k.enabled {
		return
	}

	k.renderer.DrawBackground(r, k.active.Rect)
	for _, key := range k.active.AllKeys() {
		k.renderer.DrawKey(r, key, k.keyActivated(key))
	}

	if !k.opts.ShowTextInput {
		return
	}
	k.renderer.DrawTextBoxBackground(r, k.textInput.BackgroundRect())
	for _, line := range k.textInput.VisibleLines() {
		k.renderer.DrawTextLine(r, line)
	}
	if k.textInput.CursorVisible {
		x, y := k.textInput.CursorScreenPosition()
		k.renderer.DrawCursor(r, x, y+k.textInput.Margin, k.textInput.Rect.H-2*k.textInput.Margin)
	}
}
