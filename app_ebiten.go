//go:build !headless

// app_ebiten.go - Ebiten game loop driving the App

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
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "display:ebiten")
}

// ebitenPlatform draws through one ebitenSink shared by both raster
// devices; only the device of the selected video mode is ever driven.
type ebitenPlatform struct {
	surface *ebitenSurface
	sink    *ebitenSink
	input   ebitenInput
	mode    VideoMode
}

func newPlatform() platform {
	return &ebitenPlatform{}
}

func (p *ebitenPlatform) open(cfg VideoConfig) (DisplaySurface, GLDevice, D3DDevice, error) {
	mode, err := ParseVideoMode(cfg.API)
	if err != nil {
		return nil, nil, nil, err
	}
	if mode == VideoAny {
		mode = defaultVideoMode()
	}
	p.mode = mode
	p.surface = newEbitenSurface(cfg)
	p.sink = newEbitenSink(p.surface.Size())
	ebiten.SetWindowClosingHandled(true)
	return p.surface, newGLRaster(p.sink, ebiten.SetVsyncEnabled), newD3DRaster(p.sink, ebiten.SetVsyncEnabled), nil
}

func (p *ebitenPlatform) events(dst []Event) []Event {
	if p.surface != nil && p.surface.Closed() {
		dst = append(dst, Event{Type: EventQuit})
	}
	return p.input.Events(dst)
}

func (p *ebitenPlatform) forget(t *Texture) {
	if p.sink != nil {
		p.sink.forget(t)
	}
}

// graphicsLibrary picks the ebiten graphics library matching the video
// mode, so a DX9-mode app also presents through Direct3D.
func graphicsLibrary(mode VideoMode) ebiten.GraphicsLibrary {
	switch mode {
	case VideoGL:
		return ebiten.GraphicsLibraryOpenGL
	case VideoDX9:
		return ebiten.GraphicsLibraryDirectX
	}
	return ebiten.GraphicsLibraryAuto
}

// ebitenGame adapts App to ebiten.Game.
type ebitenGame struct {
	app     *App
	ctx     context.Context
	p       *ebitenPlatform
	err     error
	overlay atomic.Bool
}

// Run drives the app until the gamestate stack empties, a Quit event
// arrives, the window is closed or ctx is done. It must be called from
// the main goroutine after Init.
func (a *App) Run(ctx context.Context) error {
	p, ok := a.platform.(*ebitenPlatform)
	if !ok || !a.videoUp {
		return fmt.Errorf("%w: run before init", ErrVideoInit)
	}
	g := &ebitenGame{app: a, ctx: ctx, p: p}
	g.overlay.Store(true)

	opts := &ebiten.RunGameOptions{GraphicsLibrary: graphicsLibrary(p.mode)}
	Logger().Info("game loop starting", "mode", p.mode, "library", opts.GraphicsLibrary)
	if err := ebiten.RunGameWithOptions(g, opts); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.err
}

func (g *ebitenGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.app.video.SetFullscreen(!g.app.video.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.overlay.Store(!g.overlay.Load())
	}
	switch err := g.app.step(); {
	case errors.Is(err, errQuit):
		return ebiten.Termination
	case err != nil:
		g.err = err
		return ebiten.Termination
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	if g.app.game.Size() == 0 {
		return
	}
	g.p.sink.bind(screen)
	if err := g.app.frame(); err != nil {
		Logger().Warn("frame failed", "err", err)
	}
	if g.overlay.Load() {
		g.drawStatusBar(screen)
	}
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := Point2i{outsideWidth, outsideHeight}
	if size != g.app.video.ScreenSize() && size.X > 0 && size.Y > 0 {
		g.app.video.Resize(size)
	}
	return outsideWidth, outsideHeight
}

type statusToken struct {
	name    string
	enabled bool
}

func drawStatusLine(screen *ebiten.Image, x, baselineY int, label string, tokens []statusToken) {
	face := basicfont.Face7x13
	labelColor := color.RGBA{190, 190, 190, 255}
	offColor := color.RGBA{120, 120, 120, 255}
	onColor := color.RGBA{0, 220, 90, 255}

	text.Draw(screen, label, face, x, baselineY, labelColor)
	cursorX := x + text.BoundString(face, label).Dx() + 6

	for _, token := range tokens {
		c := offColor
		if token.enabled {
			c = onColor
		}
		text.Draw(screen, token.name, face, cursorX, baselineY, c)
		cursorX += text.BoundString(face, token.name).Dx() + 8
	}
}

// drawStatusBar shows the title, task message, frame rate and which
// subsystems are live along the bottom edge.
func (g *ebitenGame) drawStatusBar(screen *ebiten.Image) {
	a := g.app
	b := screen.Bounds()
	barHeight := 30
	if barHeight >= b.Dy() {
		return
	}
	y := b.Dy() - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(b.Dx()), float64(barHeight), color.RGBA{0, 0, 0, 180})

	title := a.video.Title()
	if msg := a.video.TaskMsg(); msg != "" {
		title += " - " + msg
	}
	drawStatusLine(screen, 6, y+13, fmt.Sprintf("%3d FPS", a.game.FPS()), []statusToken{
		{name: title, enabled: true},
	})
	drawStatusLine(screen, 6, y+26, "LIVE ", []statusToken{
		{name: a.video.Mode().String(), enabled: a.videoUp},
		{name: "|", enabled: false},
		{name: "AUDIO", enabled: a.soundUp},
		{name: "|", enabled: false},
		{name: fmt.Sprintf("JOY %d", a.joysticks.Count()), enabled: a.joyUp && a.joysticks.IsEnabled()},
	})

	legendColor := color.RGBA{160, 160, 160, 255}
	legend := "F11 Fullscreen  F12 Status Bar"
	legendW := text.BoundString(basicfont.Face7x13, legend).Dx()
	legendX := max(b.Dx()-legendW-6, 6)
	legendOpts := &ebiten.DrawImageOptions{}
	legendOpts.GeoM.Translate(float64(legendX), float64(y+26))
	legendOpts.ColorScale.ScaleWithColor(legendColor)
	text.DrawWithOptions(screen, legend, basicfont.Face7x13, legendOpts)
}
