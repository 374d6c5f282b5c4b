package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/guibridge"
)

var mouseButtons = [guibridge.MouseButtonCount]ebiten.MouseButton{
	guibridge.MouseButtonLeft:   ebiten.MouseButtonLeft,
	guibridge.MouseButtonRight:  ebiten.MouseButtonRight,
	guibridge.MouseButtonMiddle: ebiten.MouseButtonMiddle,
	guibridge.MouseButtonX1:     ebiten.MouseButton3,
	guibridge.MouseButtonX2:     ebiten.MouseButton4,
}

// Input polls Ebitengine's input state. Wheel motion and typed characters
// are reported per tick, so the host calls Update from Game.Update and the
// bridge drains the accumulated values on Poll.
type Input struct {
	keys guibridge.KeyMap

	wheel float32
	chars []rune
	down  []guibridge.PhysicalKey
	raw   []ebiten.Key
}

// NewInput creates an input source using EbitenKeyMap.
func NewInput() *Input {
	return &Input{keys: EbitenKeyMap()}
}

// Update accumulates this tick's wheel motion and characters.
func (in *Input) Update() {
	_, dy := ebiten.Wheel()
	in.wheel += float32(dy * guibridge.WheelTicksPerNotch)
	in.chars = ebiten.AppendInputChars(in.chars)
}

// Poll implements guibridge.InputSource.
func (in *Input) Poll() (bool, guibridge.MouseState, guibridge.KeyboardState) {
	x, y := ebiten.CursorPosition()
	mouse := guibridge.MouseState{X: float32(x), Y: float32(y), Wheel: in.wheel}
	for i, b := range mouseButtons {
		mouse.Buttons[i] = ebiten.IsMouseButtonPressed(b)
	}

	in.raw = ebiten.AppendPressedKeys(in.raw[:0])
	in.down = in.down[:0]
	for _, k := range in.raw {
		in.down = append(in.down, guibridge.PhysicalKey(k))
	}

	kb := guibridge.KeyboardState{Down: in.down, Chars: in.chars}
	in.chars = nil

	return ebiten.IsFocused(), mouse, kb
}

// KeyMap implements guibridge.InputSource.
func (in *Input) KeyMap() guibridge.KeyMap {
	return in.keys
}

// EbitenKeyMap returns the translation from ebiten keys to GUI keys.
func EbitenKeyMap() guibridge.KeyMap {
	keys := guibridge.KeyMap{
		ek(ebiten.KeyTab):            guibridge.KeyTab,
		ek(ebiten.KeyArrowLeft):      guibridge.KeyLeft,
		ek(ebiten.KeyArrowRight):     guibridge.KeyRight,
		ek(ebiten.KeyArrowUp):        guibridge.KeyUp,
		ek(ebiten.KeyArrowDown):      guibridge.KeyDown,
		ek(ebiten.KeyPageUp):         guibridge.KeyPageUp,
		ek(ebiten.KeyPageDown):       guibridge.KeyPageDown,
		ek(ebiten.KeyHome):           guibridge.KeyHome,
		ek(ebiten.KeyEnd):            guibridge.KeyEnd,
		ek(ebiten.KeyInsert):         guibridge.KeyInsert,
		ek(ebiten.KeyDelete):         guibridge.KeyDelete,
		ek(ebiten.KeyBackspace):      guibridge.KeyBackspace,
		ek(ebiten.KeySpace):          guibridge.KeySpace,
		ek(ebiten.KeyEnter):          guibridge.KeyEnter,
		ek(ebiten.KeyEscape):         guibridge.KeyEscape,
		ek(ebiten.KeyCapsLock):       guibridge.KeyCapsLock,
		ek(ebiten.KeyScrollLock):     guibridge.KeyScrollLock,
		ek(ebiten.KeyNumLock):        guibridge.KeyNumLock,
		ek(ebiten.KeyPrintScreen):    guibridge.KeyPrintScreen,
		ek(ebiten.KeyNumpadDecimal):  guibridge.KeyKeypadDecimal,
		ek(ebiten.KeyNumpadDivide):   guibridge.KeyKeypadDivide,
		ek(ebiten.KeyNumpadMultiply): guibridge.KeyKeypadMultiply,
		ek(ebiten.KeyNumpadSubtract): guibridge.KeyKeypadSubtract,
		ek(ebiten.KeyNumpadAdd):      guibridge.KeyKeypadAdd,
		ek(ebiten.KeyNumpadEnter):    guibridge.KeyKeypadEnter,
		ek(ebiten.KeyQuote):          guibridge.KeyApostrophe,
		ek(ebiten.KeyComma):          guibridge.KeyComma,
		ek(ebiten.KeyMinus):          guibridge.KeyMinus,
		ek(ebiten.KeyPeriod):         guibridge.KeyPeriod,
		ek(ebiten.KeySlash):          guibridge.KeySlash,
		ek(ebiten.KeySemicolon):      guibridge.KeySemicolon,
		ek(ebiten.KeyEqual):          guibridge.KeyEqual,
		ek(ebiten.KeyBracketLeft):    guibridge.KeyLeftBracket,
		ek(ebiten.KeyBackslash):      guibridge.KeyBackslash,
		ek(ebiten.KeyBracketRight):   guibridge.KeyRightBracket,
		ek(ebiten.KeyBackquote):      guibridge.KeyGraveAccent,
		ek(ebiten.KeyControlLeft):    guibridge.KeyModCtrl,
		ek(ebiten.KeyControlRight):   guibridge.KeyModCtrl,
		ek(ebiten.KeyShiftLeft):      guibridge.KeyModShift,
		ek(ebiten.KeyShiftRight):     guibridge.KeyModShift,
		ek(ebiten.KeyAltLeft):        guibridge.KeyModAlt,
		ek(ebiten.KeyAltRight):       guibridge.KeyModAlt,
		ek(ebiten.KeyMetaLeft):       guibridge.KeyModSuper,
		ek(ebiten.KeyMetaRight):      guibridge.KeyModSuper,
	}

	digits := []ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	numpad := []ebiten.Key{
		ebiten.KeyNumpad0, ebiten.KeyNumpad1, ebiten.KeyNumpad2, ebiten.KeyNumpad3, ebiten.KeyNumpad4,
		ebiten.KeyNumpad5, ebiten.KeyNumpad6, ebiten.KeyNumpad7, ebiten.KeyNumpad8, ebiten.KeyNumpad9,
	}
	for i := range digits {
		keys[ek(digits[i])] = guibridge.Key0 + guibridge.Key(i)
		keys[ek(numpad[i])] = guibridge.KeyKeypad0 + guibridge.Key(i)
	}

	letters := []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
		ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
		ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	}
	for i, k := range letters {
		keys[ek(k)] = guibridge.KeyA + guibridge.Key(i)
	}

	functions := []ebiten.Key{
		ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
		ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
	}
	for i, k := range functions {
		keys[ek(k)] = guibridge.KeyF1 + guibridge.Key(i)
	}
	return keys
}

func ek(k ebiten.Key) guibridge.PhysicalKey {
	return guibridge.PhysicalKey(k)
}
