//go:build !headless

// joysticks_ebiten.go - Gamepad driver backed by Ebiten

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
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var errMappingNotApplied = errors.New("mapping not applied on this platform")

type ebitenGamepads struct {
	ids []ebiten.GamepadID
}

// NewJoysticks returns joysticks fed by the windowing library's gamepads.
// Ebiten only refreshes gamepad state inside its game loop, so Poll and
// Events belong in App.Update.
func NewJoysticks() *Joysticks {
	return newJoysticks(&ebitenGamepads{})
}

func (g *ebitenGamepads) AppendIDs(dst []int) []int {
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])
	for _, id := range g.ids {
		dst = append(dst, int(id))
	}
	return dst
}

func (g *ebitenGamepads) Name(id int) string    { return ebiten.GamepadName(ebiten.GamepadID(id)) }
func (g *ebitenGamepads) NumAxes(id int) int    { return ebiten.GamepadAxisCount(ebiten.GamepadID(id)) }
func (g *ebitenGamepads) NumButtons(id int) int { return ebiten.GamepadButtonCount(ebiten.GamepadID(id)) }

// NumHats reports the d-pad of a gamepad with a standard layout as one hat.
func (g *ebitenGamepads) NumHats(id int) int {
	gid := ebiten.GamepadID(id)
	if ebiten.IsStandardGamepadLayoutAvailable(gid) &&
		ebiten.IsStandardGamepadButtonAvailable(gid, ebiten.StandardGamepadButtonLeftTop) {
		return 1
	}
	return 0
}

func (g *ebitenGamepads) Axis(id, axis int) float32 {
	return float32(ebiten.GamepadAxisValue(ebiten.GamepadID(id), axis))
}

func (g *ebitenGamepads) Button(id, button int) bool {
	return ebiten.IsGamepadButtonPressed(ebiten.GamepadID(id), ebiten.GamepadButton(button))
}

// HasHaptics assumes rumble on gamepads with a standard layout. Ebiten
// ignores vibration requests a device cannot honour.
func (g *ebitenGamepads) HasHaptics(id int) bool {
	return ebiten.IsStandardGamepadLayoutAvailable(ebiten.GamepadID(id))
}

func (g *ebitenGamepads) Vibrate(id int, strong, weak float32, d time.Duration) {
	ebiten.VibrateGamepad(ebiten.GamepadID(id), &ebiten.VibrateGamepadOptions{
		Duration:        d,
		StrongMagnitude: float64(strong),
		WeakMagnitude:   float64(weak),
	})
}

func (g *ebitenGamepads) AddMapping(mapping string) error {
	ok, err := ebiten.UpdateStandardGamepadLayoutMappings(mapping)
	if err != nil {
		return err
	}
	if !ok {
		return errMappingNotApplied
	}
	return nil
}
