package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/guibridge"
)

// GLFWInput polls a GLFW window for the bridge. Wheel motion and typed
// characters arrive through callbacks and are accumulated between polls;
// callbacks installed earlier by the host keep running.
type GLFWInput struct {
	window *glfw.Window
	keys   guibridge.KeyMap

	wheel float32
	chars []rune
	down  []guibridge.PhysicalKey

	prevScroll glfw.ScrollCallback
	prevChar   glfw.CharCallback
}

// NewGLFWInput installs scroll and char callbacks on window.
func NewGLFWInput(window *glfw.Window) *GLFWInput {
	in := &GLFWInput{
		window: window,
		keys:   GLFWKeyMap(),
	}
	in.prevScroll = window.SetScrollCallback(in.scrollCallback)
	in.prevChar = window.SetCharCallback(in.charCallback)
	return in
}

// Poll implements guibridge.InputSource.
func (in *GLFWInput) Poll() (bool, guibridge.MouseState, guibridge.KeyboardState) {
	focused := in.window.GetAttrib(glfw.Focused) == glfw.True

	x, y := in.window.GetCursorPos()
	mouse := guibridge.MouseState{X: float32(x), Y: float32(y), Wheel: in.wheel}
	for i := range mouse.Buttons {
		mouse.Buttons[i] = in.window.GetMouseButton(glfw.MouseButton1+glfw.MouseButton(i)) == glfw.Press
	}

	in.down = pressedKeys(in.down[:0], func(k glfw.Key) bool {
		return in.window.GetKey(k) == glfw.Press
	})

	kb := guibridge.KeyboardState{Down: in.down, Chars: in.chars}
	in.chars = nil

	return focused, mouse, kb
}

// pressedKeys appends every held key in the GLFW key range to dst. The whole
// range is scanned so a key map passed to guibridge.WithKeyMap can use keys
// GLFWKeyMap leaves out.
func pressedKeys(dst []guibridge.PhysicalKey, down func(glfw.Key) bool) []guibridge.PhysicalKey {
	for k := glfw.KeySpace; k <= glfw.KeyLast; k++ {
		if down(k) {
			dst = append(dst, guibridge.PhysicalKey(k))
		}
	}
	return dst
}

// KeyMap implements guibridge.InputSource.
func (in *GLFWInput) KeyMap() guibridge.KeyMap {
	return in.keys
}

func (in *GLFWInput) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	in.wheel += float32(yoff * guibridge.WheelTicksPerNotch)
	if in.prevScroll != nil {
		in.prevScroll(w, xoff, yoff)
	}
}

func (in *GLFWInput) charCallback(w *glfw.Window, char rune) {
	in.chars = append(in.chars, char)
	if in.prevChar != nil {
		in.prevChar(w, char)
	}
}

// GLFWKeyMap returns the translation from GLFW key codes to GUI keys.
// Left and right modifiers map to the same modifier key.
func GLFWKeyMap() guibridge.KeyMap {
	keys := guibridge.KeyMap{
		pk(glfw.KeyTab):          guibridge.KeyTab,
		pk(glfw.KeyLeft):         guibridge.KeyLeft,
		pk(glfw.KeyRight):        guibridge.KeyRight,
		pk(glfw.KeyUp):           guibridge.KeyUp,
		pk(glfw.KeyDown):         guibridge.KeyDown,
		pk(glfw.KeyPageUp):       guibridge.KeyPageUp,
		pk(glfw.KeyPageDown):     guibridge.KeyPageDown,
		pk(glfw.KeyHome):         guibridge.KeyHome,
		pk(glfw.KeyEnd):          guibridge.KeyEnd,
		pk(glfw.KeyInsert):       guibridge.KeyInsert,
		pk(glfw.KeyDelete):       guibridge.KeyDelete,
		pk(glfw.KeyBackspace):    guibridge.KeyBackspace,
		pk(glfw.KeySpace):        guibridge.KeySpace,
		pk(glfw.KeyEnter):        guibridge.KeyEnter,
		pk(glfw.KeyEscape):       guibridge.KeyEscape,
		pk(glfw.KeyCapsLock):     guibridge.KeyCapsLock,
		pk(glfw.KeyScrollLock):   guibridge.KeyScrollLock,
		pk(glfw.KeyNumLock):      guibridge.KeyNumLock,
		pk(glfw.KeyPrintScreen):  guibridge.KeyPrintScreen,
		pk(glfw.KeyKPDecimal):    guibridge.KeyKeypadDecimal,
		pk(glfw.KeyKPDivide):     guibridge.KeyKeypadDivide,
		pk(glfw.KeyKPMultiply):   guibridge.KeyKeypadMultiply,
		pk(glfw.KeyKPSubtract):   guibridge.KeyKeypadSubtract,
		pk(glfw.KeyKPAdd):        guibridge.KeyKeypadAdd,
		pk(glfw.KeyKPEnter):      guibridge.KeyKeypadEnter,
		pk(glfw.KeyApostrophe):   guibridge.KeyApostrophe,
		pk(glfw.KeyComma):        guibridge.KeyComma,
		pk(glfw.KeyMinus):        guibridge.KeyMinus,
		pk(glfw.KeyPeriod):       guibridge.KeyPeriod,
		pk(glfw.KeySlash):        guibridge.KeySlash,
		pk(glfw.KeySemicolon):    guibridge.KeySemicolon,
		pk(glfw.KeyEqual):        guibridge.KeyEqual,
		pk(glfw.KeyLeftBracket):  guibridge.KeyLeftBracket,
		pk(glfw.KeyBackslash):    guibridge.KeyBackslash,
		pk(glfw.KeyRightBracket): guibridge.KeyRightBracket,
		pk(glfw.KeyGraveAccent):  guibridge.KeyGraveAccent,
		pk(glfw.KeyLeftControl):  guibridge.KeyModCtrl,
		pk(glfw.KeyRightControl): guibridge.KeyModCtrl,
		pk(glfw.KeyLeftShift):    guibridge.KeyModShift,
		pk(glfw.KeyRightShift):   guibridge.KeyModShift,
		pk(glfw.KeyLeftAlt):      guibridge.KeyModAlt,
		pk(glfw.KeyRightAlt):     guibridge.KeyModAlt,
		pk(glfw.KeyLeftSuper):    guibridge.KeyModSuper,
		pk(glfw.KeyRightSuper):   guibridge.KeyModSuper,
	}

	// GLFW numbers these ranges contiguously.
	for i := 0; i < 10; i++ {
		keys[pk(glfw.Key0+glfw.Key(i))] = guibridge.Key0 + guibridge.Key(i)
		keys[pk(glfw.KeyKP0+glfw.Key(i))] = guibridge.KeyKeypad0 + guibridge.Key(i)
	}
	for i := 0; i < 26; i++ {
		keys[pk(glfw.KeyA+glfw.Key(i))] = guibridge.KeyA + guibridge.Key(i)
	}
	for i := 0; i < 12; i++ {
		keys[pk(glfw.KeyF1+glfw.Key(i))] = guibridge.KeyF1 + guibridge.Key(i)
	}
	return keys
}

func pk(k glfw.Key) guibridge.PhysicalKey {
	return guibridge.PhysicalKey(k)
}
