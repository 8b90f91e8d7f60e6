package zeni

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "A", KeyA.String())
	assert.Equal(t, "Q", KeyQ.String())
	assert.Equal(t, "0", Key0.String())
	assert.Equal(t, "9", Key9.String())
	assert.Equal(t, "F1", KeyF1.String())
	assert.Equal(t, "F12", KeyF12.String())
	assert.Equal(t, "PageDown", KeyPageDown.String())
	assert.Equal(t, "Unknown", KeyUnknown.String())
	assert.Equal(t, "Unknown", keyCount.String())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "KeyDown Escape", Event{Type: EventKeyDown, Key: KeyEscape}.String())
	assert.Equal(t, `TextInput "hi"`, Event{Type: EventTextInput, Text: "hi"}.String())
	assert.Equal(t, "JoyAxisMotion joy1 axis2=-0.5",
		Event{Type: EventJoyAxisMotion, Joystick: 1, Axis: 2, Value: -0.5}.String())
	assert.Equal(t, "Quit", Event{Type: EventQuit}.String())
	assert.Equal(t, "EventType(99)", EventType(99).String())
}

func TestNormalizePasteText(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", string(normalizePasteText([]byte("a\r\nb\rc\n"))))
	assert.Equal(t, "\n\n", string(normalizePasteText([]byte("\r\r"))))
	assert.Empty(t, normalizePasteText(nil))
}

func TestCapPasteText(t *testing.T) {
	assert.Equal(t, "abc", string(capPasteText([]byte("abc"), 4)))
	assert.Equal(t, "ab", string(capPasteText([]byte("abc"), 2)))
	// "é" is two bytes; a cut inside it backs off to the rune start.
	assert.Equal(t, "a", string(capPasteText([]byte("aé"), 2)))
}

func TestPasteEvent(t *testing.T) {
	ev, ok := pasteEvent([]byte("one\r\ntwo"))
	assert.True(t, ok)
	assert.Equal(t, Event{Type: EventTextInput, Text: "one\ntwo"}, ev)

	_, ok = pasteEvent(nil)
	assert.False(t, ok)

	ev, ok = pasteEvent([]byte(strings.Repeat("x", maxPasteBytes+10)))
	assert.True(t, ok)
	assert.Len(t, ev.Text, maxPasteBytes)
}
