package zeni

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePad struct {
	name    string
	axes    []float32
	buttons []bool
	hats    int
	haptic  bool
}

type vibration struct {
	id           int
	strong, weak float32
	d            time.Duration
}

type fakeGamepads struct {
	order      []int
	pads       map[int]*fakePad
	mappings   []string
	reject     map[string]bool
	vibrations []vibration
}

func newFakeGamepads() *fakeGamepads {
	return &fakeGamepads{pads: map[int]*fakePad{}, reject: map[string]bool{}}
}

func (f *fakeGamepads) plug(id int, p *fakePad) {
	f.pads[id] = p
	f.order = append(f.order, id)
}

func (f *fakeGamepads) unplug(id int) {
	delete(f.pads, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return
		}
	}
}

func (f *fakeGamepads) AppendIDs(dst []int) []int  { return append(dst, f.order...) }
func (f *fakeGamepads) Name(id int) string         { return f.pads[id].name }
func (f *fakeGamepads) NumAxes(id int) int         { return len(f.pads[id].axes) }
func (f *fakeGamepads) NumButtons(id int) int      { return len(f.pads[id].buttons) }
func (f *fakeGamepads) NumHats(id int) int         { return f.pads[id].hats }
func (f *fakeGamepads) Axis(id, axis int) float32  { return f.pads[id].axes[axis] }
func (f *fakeGamepads) Button(id, button int) bool { return f.pads[id].buttons[button] }
func (f *fakeGamepads) HasHaptics(id int) bool     { return f.pads[id].haptic }

func (f *fakeGamepads) Vibrate(id int, strong, weak float32, d time.Duration) {
	f.vibrations = append(f.vibrations, vibration{id, strong, weak, d})
}

func (f *fakeGamepads) AddMapping(m string) error {
	if f.reject[m] {
		return errors.New("bad mapping")
	}
	f.mappings = append(f.mappings, m)
	return nil
}

func pad(name string, axes, buttons int) *fakePad {
	return &fakePad{name: name, axes: make([]float32, axes), buttons: make([]bool, buttons)}
}

func initJoysticks(t *testing.T, d *fakeGamepads) *Joysticks {
	t.Helper()
	j := newJoysticks(d)
	require.NoError(t, j.Init(nil))
	return j
}

func TestJoysticks_InitAppliesMappings(t *testing.T) {
	d := newFakeGamepads()
	d.reject["broken"] = true
	j := newJoysticks(d)

	require.NoError(t, j.Init([]string{"good,Pad,a:b0,", "broken"}))
	assert.Equal(t, []string{"good,Pad,a:b0,"}, d.mappings)
	assert.True(t, j.IsEnabled())
	assert.ErrorIs(t, j.Init(nil), ErrAlreadyInitialized)

	// Reinit with nil mappings reapplies the previous set.
	require.NoError(t, j.Reinit(nil))
	assert.Equal(t, []string{"good,Pad,a:b0,", "good,Pad,a:b0,"}, d.mappings)
}

func TestJoysticks_InitWithoutDriver(t *testing.T) {
	assert.ErrorIs(t, newJoysticks(nil).Init(nil), ErrJoystickInit)
	assert.ErrorIs(t, newJoysticks(newFakeGamepads()).Poll(), ErrJoystickInit)
}

func TestJoysticks_PollTracksDevices(t *testing.T) {
	d := newFakeGamepads()
	d.plug(7, &fakePad{name: "Pad A", axes: make([]float32, 4), buttons: make([]bool, 12), hats: 1})
	d.plug(9, pad("Pad B", 2, 6))
	j := initJoysticks(t, d)

	require.NoError(t, j.Poll())
	require.Equal(t, 2, j.Count())
	assert.Equal(t, 7, j.ID(0))
	assert.Equal(t, 1, j.Index(9))
	assert.Equal(t, -1, j.Index(42))
	assert.Equal(t, -1, j.ID(5))
	assert.Equal(t, "Pad A", j.Name(0))
	assert.Equal(t, 4, j.NumAxes(0))
	assert.Equal(t, 12, j.NumButtons(0))
	assert.Equal(t, 1, j.NumHats(0))
	assert.Equal(t, 0, j.NumBalls(0))
	assert.True(t, j.IsConnected(1))

	// A second poll with the same devices changes nothing.
	require.NoError(t, j.Poll())
	assert.Equal(t, 2, j.Count())

	evs := j.Events(nil)
	assert.Equal(t, []Event{
		{Type: EventJoyDeviceAdded, Joystick: 0},
		{Type: EventJoyDeviceAdded, Joystick: 1},
	}, evs)
}

func TestJoysticks_DetachedSlotIsReused(t *testing.T) {
	d := newFakeGamepads()
	d.plug(1, pad("one", 1, 1))
	d.plug(2, pad("two", 1, 1))
	d.plug(3, pad("three", 1, 1))
	j := initJoysticks(t, d)
	require.NoError(t, j.Poll())

	d.unplug(1)
	d.unplug(2)
	require.NoError(t, j.Poll())
	assert.False(t, j.IsConnected(0))
	assert.False(t, j.IsConnected(1))
	assert.True(t, j.IsConnected(2))
	assert.Equal(t, 3, j.Count())
	assert.Equal(t, -1, j.Index(1))

	// The last detached slot seen in the scan is taken first.
	d.plug(4, pad("four", 1, 1))
	require.NoError(t, j.Poll())
	assert.Equal(t, 1, j.Index(4))
	assert.Equal(t, "four", j.Name(1))

	d.plug(5, pad("five", 1, 1))
	require.NoError(t, j.Poll())
	assert.Equal(t, 0, j.Index(5))

	// No detached slots left: append.
	d.plug(6, pad("six", 1, 1))
	require.NoError(t, j.Poll())
	assert.Equal(t, 3, j.Index(6))
	assert.Equal(t, 4, j.Count())
}

func TestJoysticks_EventsDiffState(t *testing.T) {
	d := newFakeGamepads()
	p := pad("pad", 2, 3)
	d.plug(3, p)
	j := initJoysticks(t, d)
	require.NoError(t, j.Poll())
	_ = j.Events(nil)

	p.axes[1] = -0.5
	p.axes[0] = 0.001 // inside the dead zone
	p.buttons[2] = true
	evs := j.Events(nil)
	assert.Equal(t, []Event{
		{Type: EventJoyAxisMotion, Joystick: 0, Axis: 1, Value: -0.5},
		{Type: EventJoyButtonDown, Joystick: 0, Button: 2},
	}, evs)

	assert.Empty(t, j.Events(nil))

	p.buttons[2] = false
	evs = j.Events(nil)
	assert.Equal(t, []Event{{Type: EventJoyButtonUp, Joystick: 0, Button: 2}}, evs)

	d.unplug(3)
	require.NoError(t, j.Poll())
	evs = j.Events(nil)
	assert.Equal(t, []Event{{Type: EventJoyDeviceRemoved, Joystick: 0}}, evs)
}

func TestJoysticks_DisabledDeliversNothing(t *testing.T) {
	d := newFakeGamepads()
	p := pad("pad", 1, 1)
	d.plug(1, p)
	j := initJoysticks(t, d)
	j.Enable(false)
	require.NoError(t, j.Poll())
	p.buttons[0] = true

	assert.Empty(t, j.Events(nil))
	assert.Equal(t, 1, j.Count())

	j.Enable(true)
	evs := j.Events(nil)
	assert.Equal(t, []Event{{Type: EventJoyButtonDown, Joystick: 0, Button: 0}}, evs)
}

func TestJoysticks_SetVibration(t *testing.T) {
	d := newFakeGamepads()
	rumble := pad("rumble", 0, 0)
	rumble.haptic = true
	d.plug(1, rumble)
	d.plug(2, pad("plain", 0, 0))
	j := initJoysticks(t, d)
	require.NoError(t, j.Poll())

	j.SetVibration(0, 1.5, -0.25)
	j.SetVibration(1, 1, 1)
	j.SetVibration(9, 1, 1)
	j.SetVibration(-1, 1, 1)

	require.Len(t, d.vibrations, 1)
	assert.Equal(t, vibration{id: 1, strong: 1, weak: 0, d: vibrationPulse}, d.vibrations[0])

	// Uninit stops the motors and forgets every slot.
	j.Uninit()
	assert.Len(t, d.vibrations, 2)
	assert.Equal(t, float32(0), d.vibrations[1].strong)
	assert.Equal(t, 0, j.Count())
	assert.False(t, j.IsEnabled())
}
