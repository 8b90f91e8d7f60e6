//go:build !headless

// input_ebiten.go - Keyboard, mouse and clipboard input as engine events

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

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

var ebitenKeys = map[ebiten.Key]Key{
	ebiten.KeyA: KeyA, ebiten.KeyB: KeyB, ebiten.KeyC: KeyC, ebiten.KeyD: KeyD,
	ebiten.KeyE: KeyE, ebiten.KeyF: KeyF, ebiten.KeyG: KeyG, ebiten.KeyH: KeyH,
	ebiten.KeyI: KeyI, ebiten.KeyJ: KeyJ, ebiten.KeyK: KeyK, ebiten.KeyL: KeyL,
	ebiten.KeyM: KeyM, ebiten.KeyN: KeyN, ebiten.KeyO: KeyO, ebiten.KeyP: KeyP,
	ebiten.KeyQ: KeyQ, ebiten.KeyR: KeyR, ebiten.KeyS: KeyS, ebiten.KeyT: KeyT,
	ebiten.KeyU: KeyU, ebiten.KeyV: KeyV, ebiten.KeyW: KeyW, ebiten.KeyX: KeyX,
	ebiten.KeyY: KeyY, ebiten.KeyZ: KeyZ,

	ebiten.KeyDigit0: Key0, ebiten.KeyDigit1: Key1, ebiten.KeyDigit2: Key2,
	ebiten.KeyDigit3: Key3, ebiten.KeyDigit4: Key4, ebiten.KeyDigit5: Key5,
	ebiten.KeyDigit6: Key6, ebiten.KeyDigit7: Key7, ebiten.KeyDigit8: Key8,
	ebiten.KeyDigit9: Key9,

	ebiten.KeySpace:       KeySpace,
	ebiten.KeyEnter:       KeyEnter,
	ebiten.KeyNumpadEnter: KeyEnter,
	ebiten.KeyEscape:      KeyEscape,
	ebiten.KeyBackspace:   KeyBackspace,
	ebiten.KeyTab:         KeyTab,
	ebiten.KeyDelete:      KeyDelete,
	ebiten.KeyHome:        KeyHome,
	ebiten.KeyEnd:         KeyEnd,
	ebiten.KeyPageUp:      KeyPageUp,
	ebiten.KeyPageDown:    KeyPageDown,
	ebiten.KeyArrowUp:     KeyUp,
	ebiten.KeyArrowDown:   KeyDown,
	ebiten.KeyArrowLeft:   KeyLeft,
	ebiten.KeyArrowRight:  KeyRight,

	ebiten.KeyShiftLeft:    KeyShiftLeft,
	ebiten.KeyShiftRight:   KeyShiftRight,
	ebiten.KeyControlLeft:  KeyControlLeft,
	ebiten.KeyControlRight: KeyControlRight,
	ebiten.KeyAltLeft:      KeyAltLeft,
	ebiten.KeyAltRight:     KeyAltRight,

	ebiten.KeyF1: KeyF1, ebiten.KeyF2: KeyF2, ebiten.KeyF3: KeyF3,
	ebiten.KeyF4: KeyF4, ebiten.KeyF5: KeyF5, ebiten.KeyF6: KeyF6,
	ebiten.KeyF7: KeyF7, ebiten.KeyF8: KeyF8, ebiten.KeyF9: KeyF9,
	ebiten.KeyF10: KeyF10, ebiten.KeyF11: KeyF11, ebiten.KeyF12: KeyF12,
}

func translateKey(k ebiten.Key) Key {
	if key, ok := ebitenKeys[k]; ok {
		return key
	}
	return KeyUnknown
}

var ebitenMouseButtons = [...]struct {
	from ebiten.MouseButton
	to   MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// ebitenInput turns the per-tick input state of ebiten into events. It
// must be called from Update.
type ebitenInput struct {
	keys  []ebiten.Key
	runes []rune

	mouse     Point2i
	haveMouse bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

func (in *ebitenInput) Events(dst []Event) []Event {
	if ebiten.IsWindowBeingClosed() {
		dst = append(dst, Event{Type: EventQuit})
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if key := translateKey(k); key != KeyUnknown {
			dst = append(dst, Event{Type: EventKeyDown, Key: key})
		}
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		if key := translateKey(k); key != KeyUnknown {
			dst = append(dst, Event{Type: EventKeyUp, Key: key})
		}
	}

	// Clipboard paste: Ctrl+Shift+V
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if ev, ok := in.paste(); ok {
			dst = append(dst, ev)
		}
	}

	in.runes = ebiten.AppendInputChars(in.runes[:0])
	for _, r := range in.runes {
		dst = append(dst, Event{Type: EventTextInput, Rune: r, Text: string(r)})
	}

	x, y := ebiten.CursorPosition()
	if p := (Point2i{x, y}); !in.haveMouse || p != in.mouse {
		in.mouse, in.haveMouse = p, true
		dst = append(dst, Event{Type: EventMouseMotion, X: float32(x), Y: float32(y)})
	}
	for _, b := range ebitenMouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.from) {
			dst = append(dst, Event{Type: EventMouseButtonDown, Button: int(b.to), X: float32(x), Y: float32(y)})
		}
		if inpututil.IsMouseButtonJustReleased(b.from) {
			dst = append(dst, Event{Type: EventMouseButtonUp, Button: int(b.to), X: float32(x), Y: float32(y)})
		}
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		dst = append(dst, Event{Type: EventMouseWheel, X: float32(wx), Y: float32(wy)})
	}
	return dst
}

func (in *ebitenInput) paste() (Event, bool) {
	in.clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			Logger().Warn("clipboard unavailable", "err", err)
			return
		}
		in.clipboardOK = true
	})
	if !in.clipboardOK {
		return Event{}, false
	}
	return pasteEvent(clipboard.Read(clipboard.FmtText))
}
