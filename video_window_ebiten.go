//go:build !headless

// video_window_ebiten.go - Ebiten window surface and triangle sink

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
	"image"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenSurface is the DisplaySurface of a windowed build. Closing it asks
// the running game loop to terminate.
type ebitenSurface struct {
	size   Point2i
	closed atomic.Bool
}

func newEbitenSurface(cfg VideoConfig) *ebitenSurface {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(cfg.VSync)
	return &ebitenSurface{size: Point2i{cfg.Width, cfg.Height}}
}

func (s *ebitenSurface) Size() Point2i           { return s.size }
func (s *ebitenSurface) SetTitle(title string)   { ebiten.SetWindowTitle(title) }
func (s *ebitenSurface) SetFullscreen(on bool)   { ebiten.SetFullscreen(on) }
func (s *ebitenSurface) SetFrameVisible(on bool) { ebiten.SetWindowDecorated(on) }
func (s *ebitenSurface) Closed() bool            { return s.closed.Load() }

func (s *ebitenSurface) Close() error {
	s.closed.Store(true)
	return nil
}

// ebitenSink draws projected triangles onto the frame's screen image or
// onto render-target images.
type ebitenSink struct {
	screen *ebiten.Image
	size   Point2i
	images map[*Texture]*ebiten.Image
	white  *ebiten.Image
	verts  []ebiten.Vertex
}

func newEbitenSink(size Point2i) *ebitenSink {
	return &ebitenSink{size: size, images: make(map[*Texture]*ebiten.Image)}
}

// bind makes screen the default target for the current frame.
func (s *ebitenSink) bind(screen *ebiten.Image) {
	s.screen = screen
	b := screen.Bounds()
	s.size = Point2i{b.Dx(), b.Dy()}
}

func (s *ebitenSink) whiteImage() *ebiten.Image {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.white
}

func (s *ebitenSink) image(t *Texture) *ebiten.Image {
	if img, ok := s.images[t]; ok {
		return img
	}
	var img *ebiten.Image
	switch {
	case t.IsRenderTarget():
		size := t.Size()
		img = ebiten.NewImage(size.X, size.Y)
	case t.Image() != nil:
		img = ebiten.NewImageFromImage(t.Image())
	default:
		return nil
	}
	s.images[t] = img
	return img
}

func (s *ebitenSink) dest(target *Texture) *ebiten.Image {
	if target != nil {
		return s.image(target)
	}
	return s.screen
}

func (s *ebitenSink) Triangles(target, tex *Texture, vs []screenVertex, indices []uint16) error {
	dst := s.dest(target)
	if dst == nil {
		return nil
	}

	src := s.whiteImage()
	var sw, sh float32
	opts := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModeStraightAlpha}
	if tex != nil {
		if img := s.image(tex); img != nil {
			src = img
			b := img.Bounds()
			sw, sh = float32(b.Dx()), float32(b.Dy())
			if tex.Repeat() {
				opts.Address = ebiten.AddressRepeat
			}
			opts.Filter = ebiten.FilterLinear
		}
	}

	s.verts = s.verts[:0]
	for _, v := range vs {
		sx, sy := float32(1.5), float32(1.5)
		if sw > 0 {
			sx, sy = v.U*sw, v.V*sh
		}
		s.verts = append(s.verts, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   sx,
			SrcY:   sy,
			ColorR: v.Color.R,
			ColorG: v.Color.G,
			ColorB: v.Color.B,
			ColorA: v.Color.A,
		})
	}
	dst.DrawTriangles(s.verts, indices, src, opts)
	return nil
}

func (s *ebitenSink) Clear(target *Texture, c Color) error {
	if dst := s.dest(target); dst != nil {
		dst.Fill(c)
	}
	return nil
}

func (s *ebitenSink) TargetSize(target *Texture) Point2i {
	if target != nil {
		return target.Size()
	}
	return s.size
}

// Ebiten presents the screen itself once Draw returns.
func (s *ebitenSink) Present() error { return nil }

// forget drops the GPU image of an unloaded texture.
func (s *ebitenSink) forget(t *Texture) {
	if img, ok := s.images[t]; ok {
		img.Deallocate()
		delete(s.images, t)
	}
}
