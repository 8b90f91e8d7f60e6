// video_device_dx9.go - D3D9-class device contract and its software raster

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
)

type D3DRenderState int

const (
	D3DRSCullMode D3DRenderState = iota
	D3DRSZEnable
	D3DRSZWriteEnable
	D3DRSZFunc
	D3DRSAlphaTestEnable
	D3DRSAlphaFunc
	D3DRSAlphaRef
	D3DRSLighting
	D3DRSAmbient
	D3DRSFogEnable
	D3DRSFogColor
	D3DRSShadeMode
	D3DRSMultisampleAntialias
)

// Values of D3DRSCullMode.
const (
	D3DCullNone uint32 = 1
	D3DCullCW   uint32 = 2
	D3DCullCCW  uint32 = 3
)

// Values of D3DRSShadeMode.
const (
	D3DShadeFlat    uint32 = 1
	D3DShadeGouraud uint32 = 2
)

// Present intervals accepted by Reset.
const (
	D3DPresentIntervalOne       uint32 = 0x00000001
	D3DPresentIntervalImmediate uint32 = 0x80000000
)

type D3DTransform int

const (
	D3DTSWorld D3DTransform = iota
	D3DTSView
	D3DTSProjection
)

// D3DDevice is the D3D9 surface the DX9 backend drives. Matrices use the
// D3D row-vector layout, i.e. the transpose of Matrix4f.
type D3DDevice interface {
	SetRenderState(s D3DRenderState, value uint32) error
	SetTransform(t D3DTransform, m [16]float32) error
	SetViewport(vp Viewport, minZ, maxZ float32) error
	SetTexture(stage int, tex *Texture) error
	SetLight(n int, l Light) error
	LightEnable(n int, on bool) error
	SetMaterial(m Material) error
	SetFog(f Fog) error
	Clear(argb uint32) error
	BeginScene() error
	EndScene() error
	Present() error
	DrawPrimitiveUP(p Primitive, vs []Vertex) error
	SetRenderTarget(tex *Texture) error
	RenderTargetSize() Point2i
	Reset(presentInterval uint32) error
	MaxAnisotropy() int
	Release() error
}

// errInvalidCall mirrors D3DERR_INVALIDCALL.
var errInvalidCall = fmt.Errorf("d3d9: invalid call")

// d3dRaster implements D3DDevice on the software pipeline.
type d3dRaster struct {
	sink  frameSink
	vsync func(on bool)

	states     map[D3DRenderState]uint32
	transforms map[D3DTransform]Matrix4f
	viewport   Viewport
	texture    *Texture
	target     *Texture
	lights     map[int]Light
	enabled    map[int]bool
	material   Material
	fog        Fog
	inScene    bool
	released   bool
}

func newD3DRaster(sink frameSink, vsync func(bool)) *d3dRaster {
	return &d3dRaster{
		sink:  sink,
		vsync: vsync,
		states: map[D3DRenderState]uint32{
			D3DRSCullMode:     D3DCullCCW,
			D3DRSZWriteEnable: 1,
			D3DRSShadeMode:    D3DShadeGouraud,
			D3DRSLighting:     1,
		},
		transforms: map[D3DTransform]Matrix4f{
			D3DTSWorld:      Identity(),
			D3DTSView:       Identity(),
			D3DTSProjection: Identity(),
		},
		viewport: FullViewport(sink.TargetSize(nil)),
		lights:   map[int]Light{},
		enabled:  map[int]bool{},
	}
}

func (d *d3dRaster) SetRenderState(s D3DRenderState, value uint32) error {
	d.states[s] = value
	return nil
}

func (d *d3dRaster) SetTransform(t D3DTransform, m [16]float32) error {
	d.transforms[t] = Matrix4f(m).Transposed()
	return nil
}

func (d *d3dRaster) SetViewport(vp Viewport, minZ, maxZ float32) error {
	if minZ < 0 || maxZ > 1 || minZ > maxZ {
		return errInvalidCall
	}
	d.viewport = vp
	return nil
}

func (d *d3dRaster) SetTexture(stage int, tex *Texture) error {
	if stage != 0 {
		return errInvalidCall
	}
	d.texture = tex
	return nil
}

func (d *d3dRaster) SetLight(n int, l Light) error {
	d.lights[n] = l
	return nil
}

func (d *d3dRaster) LightEnable(n int, on bool) error {
	d.enabled[n] = on
	return nil
}

func (d *d3dRaster) SetMaterial(m Material) error {
	d.material = m
	return nil
}

func (d *d3dRaster) SetFog(f Fog) error {
	d.fog = f
	return nil
}

func (d *d3dRaster) Clear(argb uint32) error {
	return d.sink.Clear(d.target, ColorFromARGB(argb))
}

func (d *d3dRaster) BeginScene() error {
	if d.inScene {
		return errInvalidCall
	}
	d.inScene = true
	return nil
}

func (d *d3dRaster) EndScene() error {
	if !d.inScene {
		return errInvalidCall
	}
	d.inScene = false
	return nil
}

func (d *d3dRaster) Present() error {
	if d.inScene {
		return errInvalidCall
	}
	return d.sink.Present()
}

func (d *d3dRaster) DrawPrimitiveUP(p Primitive, vs []Vertex) error {
	if !d.inScene || d.released {
		return errInvalidCall
	}
	world, view, proj := d.transforms[D3DTSWorld], d.transforms[D3DTSView], d.transforms[D3DTSProjection]
	rs := rasterState{
		mvp:      proj.Mul(view).Mul(world),
		viewport: d.viewport,
		color:    ColorWhite,
		texture:  d.texture,
	}
	// Window space is y-down, so D3D's clockwise is the pipeline's
	// counter-clockwise.
	switch d.states[D3DRSCullMode] {
	case D3DCullCCW:
		rs.cull = cullBack
	case D3DCullCW:
		rs.cull = cullFront
	}
	out, idx, err := rs.project(p, vs)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return nil
	}
	return d.sink.Triangles(d.target, rs.texture, out, idx)
}

func (d *d3dRaster) SetRenderTarget(tex *Texture) error {
	if tex != nil && !tex.IsRenderTarget() {
		return errInvalidCall
	}
	d.target = tex
	return nil
}

func (d *d3dRaster) RenderTargetSize() Point2i {
	return d.sink.TargetSize(d.target)
}

func (d *d3dRaster) Reset(presentInterval uint32) error {
	if d.inScene {
		return errInvalidCall
	}
	if d.vsync != nil {
		d.vsync(presentInterval != D3DPresentIntervalImmediate)
	}
	return nil
}

func (d *d3dRaster) MaxAnisotropy() int { return 16 }

func (d *d3dRaster) Release() error {
	d.released = true
	return nil
}
