// joysticks.go - Joystick and gamepad tracking with stable slot indices

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
	"fmt"
	"time"

	"github.com/chewxy/math32"
)

// gamepadDriver is the platform side of Joysticks. Ids are the driver's
// instance ids; an id is never reused while the device stays connected.
type gamepadDriver interface {
	AppendIDs(dst []int) []int
	Name(id int) string
	NumAxes(id int) int
	NumButtons(id int) int
	NumHats(id int) int
	Axis(id, axis int) float32
	Button(id, button int) bool
	HasHaptics(id int) bool
	Vibrate(id int, strong, weak float32, d time.Duration)
	AddMapping(mapping string) error
}

// joyAxisDeadZone filters axis jitter out of the event stream.
const joyAxisDeadZone = 1.0 / 256

// vibrationPulse is how long each SetVibration call drives the motors.
// Callers refresh it every frame to keep a rumble going.
const vibrationPulse = 100 * time.Millisecond

type joystickSlot struct {
	id       int
	attached bool
	name     string
	haptic   bool
	axes     []float32
	buttons  []bool
	hats     int
}

// Joysticks keeps one slot per device ever seen. A slot index stays valid
// after its device is unplugged; the next new device takes over the most
// recently scanned detached slot.
type Joysticks struct {
	mu          *Mutex
	driver      gamepadDriver
	enabled     bool
	initialized bool
	mappings    []string
	slots       []*joystickSlot
	pending     []Event
	ids         []int
}

func newJoysticks(d gamepadDriver) *Joysticks {
	return &Joysticks{mu: NewMutex(), driver: d}
}

// Init applies the GameControllerDB mappings and enables event delivery.
// A rejected mapping is logged and skipped.
func (j *Joysticks) Init(mappings []string) error {
	return j.mu.Do(func() error {
		if j.initialized {
			return ErrAlreadyInitialized
		}
		if j.driver == nil {
			return fmt.Errorf("%w: no gamepad driver", ErrJoystickInit)
		}
		for _, m := range mappings {
			if err := j.driver.AddMapping(m); err != nil {
				Logger().Warn("joystick mapping rejected", "mapping", m, "err", err)
			}
		}
		j.mappings = append(j.mappings[:0], mappings...)
		j.initialized = true
		j.enabled = true
		Logger().Info("joysticks ready", "mappings", len(mappings))
		return nil
	})
}

// Uninit forgets every slot and stops event delivery.
func (j *Joysticks) Uninit() {
	_ = j.mu.Do(func() error {
		for _, s := range j.slots {
			if s.attached && s.haptic {
				j.driver.Vibrate(s.id, 0, 0, 0)
			}
		}
		j.slots = nil
		j.pending = nil
		j.initialized = false
		j.enabled = false
		return nil
	})
}

// Reinit tears down and initializes again. With nil mappings the previous
// ones are reapplied.
func (j *Joysticks) Reinit(mappings []string) error {
	if mappings == nil {
		_ = j.mu.Do(func() error {
			mappings = append([]string(nil), j.mappings...)
			return nil
		})
	}
	j.Uninit()
	return j.Init(mappings)
}

// Enable switches joystick event delivery on or off. Devices are still
// tracked by Poll while disabled.
func (j *Joysticks) Enable(on bool) {
	_ = j.mu.Do(func() error {
		j.enabled = on
		return nil
	})
}

func (j *Joysticks) IsEnabled() bool {
	var on bool
	_ = j.mu.Do(func() error {
		on = j.enabled
		return nil
	})
	return on
}

// Poll picks up newly connected devices and notices removed ones.
func (j *Joysticks) Poll() error {
	return j.mu.Do(func() error {
		if !j.initialized {
			return fmt.Errorf("%w: poll before init", ErrJoystickInit)
		}
		j.ids = j.driver.AppendIDs(j.ids[:0])

		for i, s := range j.slots {
			if s.attached && !containsID(j.ids, s.id) {
				s.attached = false
				j.pending = append(j.pending, Event{Type: EventJoyDeviceRemoved, Joystick: i})
				Logger().Info("joystick disconnected", "index", i, "name", s.name)
			}
		}

		for _, id := range j.ids {
			found := -1
			for i, s := range j.slots {
				if s.attached && s.id == id {
					found = i
					break
				}
				if !s.attached {
					found = i
				}
			}
			if found >= 0 && j.slots[found].attached {
				continue
			}

			s := j.openSlot(id)
			if found < 0 {
				found = len(j.slots)
				j.slots = append(j.slots, s)
			} else {
				j.slots[found] = s
			}
			j.pending = append(j.pending, Event{Type: EventJoyDeviceAdded, Joystick: found})
			Logger().Info("joystick connected", "index", found, "name", s.name,
				"axes", len(s.axes), "buttons", len(s.buttons), "haptic", s.haptic)
		}
		return nil
	})
}

func (j *Joysticks) openSlot(id int) *joystickSlot {
	s := &joystickSlot{
		id:       id,
		attached: true,
		name:     j.driver.Name(id),
		haptic:   j.driver.HasHaptics(id),
		axes:     make([]float32, j.driver.NumAxes(id)),
		buttons:  make([]bool, j.driver.NumButtons(id)),
		hats:     j.driver.NumHats(id),
	}
	if !s.haptic {
		Logger().Debug("joystick has no haptics", "name", s.name)
	}
	return s
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Events appends device, axis and button changes since the last call to
// dst. Nothing is appended while disabled.
func (j *Joysticks) Events(dst []Event) []Event {
	_ = j.mu.Do(func() error {
		if !j.enabled {
			j.pending = j.pending[:0]
			return nil
		}
		dst = append(dst, j.pending...)
		j.pending = j.pending[:0]

		for i, s := range j.slots {
			if !s.attached {
				continue
			}
			for a := range s.axes {
				v := j.driver.Axis(s.id, a)
				if math32.Abs(v-s.axes[a]) < joyAxisDeadZone {
					continue
				}
				s.axes[a] = v
				dst = append(dst, Event{Type: EventJoyAxisMotion, Joystick: i, Axis: a, Value: v})
			}
			for b := range s.buttons {
				down := j.driver.Button(s.id, b)
				if down == s.buttons[b] {
					continue
				}
				s.buttons[b] = down
				t := EventJoyButtonUp
				if down {
					t = EventJoyButtonDown
				}
				dst = append(dst, Event{Type: t, Joystick: i, Button: b})
			}
		}
		return nil
	})
	return dst
}

// slot returns the slot at index, or nil. Caller holds j.mu.
func (j *Joysticks) slot(index int) *joystickSlot {
	if index < 0 || index >= len(j.slots) {
		return nil
	}
	return j.slots[index]
}

// withSlot runs fn on the slot at index under the lock. It reports false
// when index is out of range.
func (j *Joysticks) withSlot(index int, fn func(s *joystickSlot)) bool {
	ok := false
	_ = j.mu.Do(func() error {
		if s := j.slot(index); s != nil {
			fn(s)
			ok = true
		}
		return nil
	})
	return ok
}

// Count is the number of slots, attached or not.
func (j *Joysticks) Count() int {
	var n int
	_ = j.mu.Do(func() error {
		n = len(j.slots)
		return nil
	})
	return n
}

// ID returns the driver id in slot index, or -1.
func (j *Joysticks) ID(index int) int {
	id := -1
	j.withSlot(index, func(s *joystickSlot) { id = s.id })
	return id
}

// Index returns the slot holding the attached device id, or -1.
func (j *Joysticks) Index(id int) int {
	index := -1
	_ = j.mu.Do(func() error {
		for i, s := range j.slots {
			if s.attached && s.id == id {
				index = i
				break
			}
		}
		return nil
	})
	return index
}

func (j *Joysticks) Name(index int) string {
	var name string
	j.withSlot(index, func(s *joystickSlot) { name = s.name })
	return name
}

func (j *Joysticks) NumAxes(index int) int {
	var n int
	j.withSlot(index, func(s *joystickSlot) { n = len(s.axes) })
	return n
}

// NumBalls is always zero; no supported driver reports trackballs.
func (j *Joysticks) NumBalls(index int) int { return 0 }

func (j *Joysticks) NumHats(index int) int {
	var n int
	j.withSlot(index, func(s *joystickSlot) { n = s.hats })
	return n
}

func (j *Joysticks) NumButtons(index int) int {
	var n int
	j.withSlot(index, func(s *joystickSlot) { n = len(s.buttons) })
	return n
}

func (j *Joysticks) IsConnected(index int) bool {
	var on bool
	j.withSlot(index, func(s *joystickSlot) { on = s.attached })
	return on
}

// SetVibration drives the strong (left) and weak (right) motors, each
// clamped to [0,1]. It does nothing for devices without haptics or an
// index with no attached device.
func (j *Joysticks) SetVibration(index int, left, right float32) {
	j.withSlot(index, func(s *joystickSlot) {
		if !s.attached || !s.haptic {
			return
		}
		j.driver.Vibrate(s.id, clampf(left, 0, 1), clampf(right, 0, 1), vibrationPulse)
	})
}
