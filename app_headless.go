//go:build headless

// app_headless.go - Fixed-rate game loop without a window

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
	"context"
	"errors"
	"fmt"
	"time"
)

func init() {
	compiledFeatures = append(compiledFeatures, "display:headless")
}

// headlessTick is the logic and render rate of the headless loop.
const headlessTick = time.Second / 60

// headlessPlatform renders into a countingSink and has no input devices;
// events arrive through App.PostEvent only.
type headlessPlatform struct {
	surface *headlessSurface
	sink    *countingSink
}

func newPlatform() platform {
	return &headlessPlatform{}
}

func (p *headlessPlatform) open(cfg VideoConfig) (DisplaySurface, GLDevice, D3DDevice, error) {
	p.surface = newHeadlessSurface(cfg)
	p.sink = newCountingSink(p.surface.Size())
	return p.surface, newGLRaster(p.sink, nil), newD3DRaster(p.sink, nil), nil
}

func (p *headlessPlatform) events(dst []Event) []Event {
	if p.surface != nil && p.surface.Closed() {
		dst = append(dst, Event{Type: EventQuit})
	}
	return dst
}

func (p *headlessPlatform) forget(*Texture) {}

// Run ticks the app at 60 Hz until the gamestate stack empties, a Quit
// event arrives or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if !a.videoUp {
		return fmt.Errorf("%w: run before init", ErrVideoInit)
	}
	t := time.NewTicker(headlessTick)
	defer t.Stop()
	Logger().Info("headless game loop starting", "tick", headlessTick)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
		switch err := a.step(); {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			return err
		}
		if err := a.frame(); err != nil {
			Logger().Warn("frame failed", "err", err)
		}
	}
}
