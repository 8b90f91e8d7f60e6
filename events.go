// events.go - Input events routed through the game-state stack

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package zeni

import "fmt"

type EventType int

const (
	EventNone EventType = iota
	EventKeyDown
	EventKeyUp
	EventTextInput
	EventMouseMotion
	EventMouseButtonDown
	EventMouseButtonUp
	EventMouseWheel
	EventJoyAxisMotion
	EventJoyButtonDown
	EventJoyButtonUp
	EventJoyDeviceAdded
	EventJoyDeviceRemoved
	EventQuit
)

var eventTypeNames = [...]string{
	EventNone:             "None",
	EventKeyDown:          "KeyDown",
	EventKeyUp:            "KeyUp",
	EventTextInput:        "TextInput",
	EventMouseMotion:      "MouseMotion",
	EventMouseButtonDown:  "MouseButtonDown",
	EventMouseButtonUp:    "MouseButtonUp",
	EventMouseWheel:       "MouseWheel",
	EventJoyAxisMotion:    "JoyAxisMotion",
	EventJoyButtonDown:    "JoyButtonDown",
	EventJoyButtonUp:      "JoyButtonUp",
	EventJoyDeviceAdded:   "JoyDeviceAdded",
	EventJoyDeviceRemoved: "JoyDeviceRemoved",
	EventQuit:             "Quit",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Key identifies a keyboard key independently of the windowing library.
type Key int

const (
	KeyUnknown Key = iota
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
	KeySpace
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
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
	keyCount
)

var keyNames = map[Key]string{
	KeySpace:        "Space",
	KeyEnter:        "Enter",
	KeyEscape:       "Escape",
	KeyBackspace:    "Backspace",
	KeyTab:          "Tab",
	KeyDelete:       "Delete",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyShiftLeft:    "ShiftLeft",
	KeyShiftRight:   "ShiftRight",
	KeyControlLeft:  "ControlLeft",
	KeyControlRight: "ControlRight",
	KeyAltLeft:      "AltLeft",
	KeyAltRight:     "AltRight",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Event is one input notification. Only the fields meaningful for Type
// are set: Key for key events, Rune and Text for text input, X and Y for
// mouse position and wheel deltas, Joystick with Axis/Value or Button for
// joystick events.
type Event struct {
	Type     EventType
	Key      Key
	Rune     rune
	Text     string
	X, Y     float32
	Button   int
	Joystick int
	Axis     int
	Value    float32
}

func (e Event) String() string {
	switch e.Type {
	case EventKeyDown, EventKeyUp:
		return fmt.Sprintf("%s %s", e.Type, e.Key)
	case EventTextInput:
		return fmt.Sprintf("%s %q", e.Type, e.Text)
	case EventMouseMotion, EventMouseWheel:
		return fmt.Sprintf("%s (%g,%g)", e.Type, e.X, e.Y)
	case EventMouseButtonDown, EventMouseButtonUp:
		return fmt.Sprintf("%s %d at (%g,%g)", e.Type, e.Button, e.X, e.Y)
	case EventJoyAxisMotion:
		return fmt.Sprintf("%s joy%d axis%d=%g", e.Type, e.Joystick, e.Axis, e.Value)
	case EventJoyButtonDown, EventJoyButtonUp:
		return fmt.Sprintf("%s joy%d button%d", e.Type, e.Joystick, e.Button)
	case EventJoyDeviceAdded, EventJoyDeviceRemoved:
		return fmt.Sprintf("%s joy%d", e.Type, e.Joystick)
	}
	return e.Type.String()
}

// normalizePasteText converts CRLF and lone CR line endings to LF.
func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\r' {
			norm = append(norm, raw[i])
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '\n' {
			i++
		}
		norm = append(norm, '\n')
	}
	return norm
}

// maxPasteBytes bounds a single clipboard paste.
const maxPasteBytes = 4096

// capPasteText truncates raw to at most max bytes without splitting a
// UTF-8 sequence.
func capPasteText(raw []byte, max int) []byte {
	if len(raw) <= max {
		return raw
	}
	cut := max
	for cut > 0 && raw[cut]&0xC0 == 0x80 {
		cut--
	}
	return raw[:cut]
}

// pasteEvent builds the text-input event for clipboard data, or false when
// nothing remains after normalizing.
func pasteEvent(data []byte) (Event, bool) {
	data = capPasteText(normalizePasteText(data), maxPasteBytes)
	if len(data) == 0 {
		return Event{}, false
	}
	return Event{Type: EventTextInput, Text: string(data)}, true
}
