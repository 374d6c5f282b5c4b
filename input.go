package guibridge

import (
	"fmt"
	"math"
)

// MouseButton identifies one of the five tracked mouse buttons by position.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = iota // primary
	MouseButtonRight                     // secondary
	MouseButtonMiddle                    // middle
	MouseButtonX1                        // extra 1 (back)
	MouseButtonX2                        // extra 2 (forward)
	MouseButtonCount
)

// Key is the GUI-side abstract key identifier.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKeypad0
	KeyKeypad1
	KeyKeypad2
	KeyKeypad3
	KeyKeypad4
	KeyKeypad5
	KeyKeypad6
	KeyKeypad7
	KeyKeypad8
	KeyKeypad9
	KeyKeypadDecimal
	KeyKeypadDivide
	KeyKeypadMultiply
	KeyKeypadSubtract
	KeyKeypadAdd
	KeyKeypadEnter
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyEqual
	KeyLeftBracket
	KeyBackslash
	KeyRightBracket
	KeyGraveAccent
	KeyModCtrl
	KeyModShift
	KeyModAlt
	KeyModSuper
	KeyCount
)

var keyNames = map[Key]string{
	KeyNone:           "--",
	KeyTab:            "Tab",
	KeyLeft:           "Left",
	KeyRight:          "Right",
	KeyUp:             "Up",
	KeyDown:           "Down",
	KeyPageUp:         "PgUp",
	KeyPageDown:       "PgDn",
	KeyHome:           "Home",
	KeyEnd:            "End",
	KeyInsert:         "Ins",
	KeyDelete:         "Del",
	KeyBackspace:      "Backspace",
	KeySpace:          "Space",
	KeyEnter:          "Enter",
	KeyEscape:         "Esc",
	KeyCapsLock:       "CapsLock",
	KeyScrollLock:     "ScrollLock",
	KeyNumLock:        "NumLock",
	KeyPrintScreen:    "PrtSc",
	KeyKeypadDecimal:  "Keypad.",
	KeyKeypadDivide:   "Keypad/",
	KeyKeypadMultiply: "Keypad*",
	KeyKeypadSubtract: "Keypad-",
	KeyKeypadAdd:      "Keypad+",
	KeyKeypadEnter:    "KeypadEnter",
	KeyApostrophe:     "'",
	KeyComma:          ",",
	KeyMinus:          "-",
	KeyPeriod:         ".",
	KeySlash:          "/",
	KeySemicolon:      ";",
	KeyEqual:          "=",
	KeyLeftBracket:    "[",
	KeyBackslash:      "\\",
	KeyRightBracket:   "]",
	KeyGraveAccent:    "`",
	KeyModCtrl:        "Ctrl",
	KeyModShift:       "Shift",
	KeyModAlt:         "Alt",
	KeyModSuper:       "Super",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch {
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	case k >= KeyKeypad0 && k <= KeyKeypad9:
		return fmt.Sprintf("Keypad%d", int(k-KeyKeypad0))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "?"
}

// PhysicalKey is a host key code (GLFW key, ebiten key, ...).
// Its meaning is defined by the InputSource that reports it.
type PhysicalKey int

// KeyMap translates host key codes to GUI keys. It is one-directional:
// several physical keys may share one Key (left and right modifiers).
type KeyMap map[PhysicalKey]Key

// WheelTicksPerNotch is the raw wheel travel of one notch.
const WheelTicksPerNotch = 120

// OffSurface is the mouse position reported while the host is unfocused.
var OffSurface = Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32}

// MouseState is the host's raw mouse state for one frame.
type MouseState struct {
	X, Y    float32
	Buttons [MouseButtonCount]bool
	// Wheel is the accumulated raw wheel value, WheelTicksPerNotch per notch.
	Wheel float32
}

// KeyboardState is the host's raw keyboard state for one frame.
type KeyboardState struct {
	Down  []PhysicalKey // Keys currently held
	Chars []rune        // Characters typed since the last poll
}

// InputSnapshot is the GUI-side input for one frame.
// It is rebuilt every frame; Chars is only valid until the next Update.
type InputSnapshot struct {
	MousePos  Vec2
	MouseDown [MouseButtonCount]bool
	Wheel     float32 // Signed notches since the previous frame
	Keys      [KeyCount]bool
	Chars     []rune
	Focused   bool
}

// KeyDown reports whether k is held in this snapshot.
func (s *InputSnapshot) KeyDown(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	return s.Keys[k]
}

// InputSource polls the host's input devices once per frame.
type InputSource interface {
	Poll() (focused bool, mouse MouseState, keyboard KeyboardState)
	// KeyMap returns the default translation for this source's key codes.
	KeyMap() KeyMap
}
