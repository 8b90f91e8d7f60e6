// demo.go - Bouncing box demo gamestate

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

package main

import (
	zeni "github.com/intuitionamiga/zeniengine"
)

const boxSize = 48

// demoState bounces a box around the window. Space or any joystick button
// plays a chime, joystick buttons also rumble, Escape quits.
type demoState struct {
	app   *zeni.App
	chime *zeni.SoundBuffer
	pos   zeni.Point2f
	vel   zeni.Point2f
	color zeni.Color
}

func newDemoState(app *zeni.App) *demoState {
	return &demoState{
		app:   app,
		chime: zeni.HelloWorldBuffer(app.Sound().SampleRate()),
		pos:   zeni.Point2f{X: 40, Y: 40},
		vel:   zeni.Point2f{X: 3, Y: 2},
		color: zeni.ColorARGB(1, 0.2, 0.8, 0.4),
	}
}

func (d *demoState) OnEvent(ev zeni.Event) error {
	switch ev.Type {
	case zeni.EventKeyDown:
		switch ev.Key {
		case zeni.KeyEscape:
			_, err := d.app.Game().PopState()
			return err
		case zeni.KeySpace:
			d.chirp()
		}
	case zeni.EventJoyButtonDown:
		d.app.Joysticks().SetVibration(ev.Joystick, 0.8, 0.4)
		d.chirp()
	case zeni.EventJoyDeviceAdded:
		d.app.Video().SetTaskMsg(d.app.Joysticks().Name(ev.Joystick))
	}
	return nil
}

// chirp plays the chime from where the box is, so it pans with it.
func (d *demoState) chirp() {
	size := d.app.Video().ScreenSize()
	x := (d.pos.X/float32(size.X) - 0.5) * 20
	d.app.Sound().Play(d.chime, zeni.Point3f{X: 10, Y: -x})
}

func (d *demoState) PerformLogic() error {
	size := d.app.Video().ScreenSize()
	d.pos.X += d.vel.X
	d.pos.Y += d.vel.Y
	if d.pos.X < 0 || d.pos.X+boxSize > float32(size.X) {
		d.vel.X = -d.vel.X
		d.pos.X += 2 * d.vel.X
	}
	if d.pos.Y < 0 || d.pos.Y+boxSize > float32(size.Y) {
		d.vel.Y = -d.vel.Y
		d.pos.Y += 2 * d.vel.Y
	}
	return nil
}

func (d *demoState) Render() error {
	v := d.app.Video()
	v.Set2D()
	br := zeni.Point2f{X: d.pos.X + boxSize, Y: d.pos.Y + boxSize}
	return v.Render(zeni.NewRect2D(d.pos, br, d.color))
}
