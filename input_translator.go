package guibridge

// InputTranslator converts host input into the GUI library's input model.
// Call Update once per frame before any widget is declared.
type InputTranslator struct {
	keys KeyMap

	prevWheel   float32
	hasBaseline bool

	chars []rune
}

// NewInputTranslator creates a translator using keys for key translation.
func NewInputTranslator(keys KeyMap) *InputTranslator {
	return &InputTranslator{
		keys:  keys,
		chars: make([]rune, 0, 16),
	}
}

// Update builds this frame's snapshot.
//
// Without focus the snapshot reports the mouse off-surface with every key
// and button released, so the GUI never sees a key stuck from before focus
// loss. The wheel baseline is reset as well: the first focused frame always
// reports zero wheel motion.
func (t *InputTranslator) Update(focused bool, mouse MouseState, keyboard KeyboardState) InputSnapshot {
	t.chars = t.chars[:0]

	if !focused {
		t.hasBaseline = false
		t.prevWheel = 0
		return InputSnapshot{MousePos: OffSurface, Chars: t.chars}
	}

	snap := InputSnapshot{
		MousePos:  Vec2{X: mouse.X, Y: mouse.Y},
		MouseDown: mouse.Buttons,
		Focused:   true,
	}

	if t.hasBaseline {
		snap.Wheel = (mouse.Wheel - t.prevWheel) / WheelTicksPerNotch
	}
	t.prevWheel = mouse.Wheel
	t.hasBaseline = true

	for _, pk := range keyboard.Down {
		k, ok := t.keys[pk]
		if !ok || k <= KeyNone || k >= KeyCount {
			continue
		}
		snap.Keys[k] = true
	}

	for _, r := range keyboard.Chars {
		// Tab is delivered through the key table.
		if r == '\t' {
			continue
		}
		t.chars = append(t.chars, r)
	}
	snap.Chars = t.chars

	return snap
}

// SetKeyMap replaces the key translation table.
func (t *InputTranslator) SetKeyMap(keys KeyMap) {
	t.keys = keys
}
