// video_pipeline.go - Software vertex transform shared by the raster devices

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
	"math"
)

// screenVertex is a vertex in window space: pixels from the top-left
// corner of the bound target, texture coordinates still normalized.
type screenVertex struct {
	X, Y  float32
	U, V  float32
	Color Color
}

// frameSink receives projected triangles. A nil target means the screen.
type frameSink interface {
	Triangles(target, tex *Texture, vs []screenVertex, indices []uint16) error
	Clear(target *Texture, c Color) error
	TargetSize(target *Texture) Point2i
	Present() error
}

type cullMode int

const (
	cullNone cullMode = iota
	cullBack          // clockwise in normalized device space
	cullFront
)

// rasterState is what a device hands the pipeline for one batch.
type rasterState struct {
	mvp      Matrix4f
	viewport Viewport
	cull     cullMode
	color    Color
	texture  *Texture
}

type clipVertex struct {
	ndcX, ndcY float32
	src        *Vertex
}

// project transforms a batch into window-space triangles. Faces with any
// vertex at or behind the eye plane are dropped, as are culled faces.
// Trailing vertices that do not complete a face are ignored.
func (rs *rasterState) project(p Primitive, vs []Vertex) ([]screenVertex, []uint16, error) {
	per := p.vertsPerFace()
	faces := len(vs) / per

	out := make([]screenVertex, 0, faces*6)
	var clip [4]clipVertex

face:
	for f := 0; f < faces; f++ {
		for i := 0; i < per; i++ {
			v := &vs[f*per+i]
			c := rs.mvp.TransformVec4([4]float32{v.Position.X, v.Position.Y, v.Position.Z, 1})
			if c[3] <= 0 {
				continue face
			}
			clip[i] = clipVertex{ndcX: c[0] / c[3], ndcY: c[1] / c[3], src: v}
		}
		out = rs.emit(out, clip[0], clip[1], clip[2])
		if per == 4 {
			out = rs.emit(out, clip[0], clip[2], clip[3])
		}
	}

	if len(out) > math.MaxUint16+1 {
		return nil, nil, fmt.Errorf("batch of %d vertices exceeds 16-bit indices", len(out))
	}
	indices := make([]uint16, len(out))
	for i := range indices {
		indices[i] = uint16(i)
	}
	return out, indices, nil
}

func (rs *rasterState) emit(out []screenVertex, a, b, c clipVertex) []screenVertex {
	if rs.cull != cullNone {
		area := (b.ndcX-a.ndcX)*(c.ndcY-a.ndcY) - (c.ndcX-a.ndcX)*(b.ndcY-a.ndcY)
		if rs.cull == cullBack && area <= 0 || rs.cull == cullFront && area >= 0 {
			return out
		}
	}
	return append(out, rs.toWindow(a), rs.toWindow(b), rs.toWindow(c))
}

func (rs *rasterState) toWindow(c clipVertex) screenVertex {
	w := float32(rs.viewport.Width())
	h := float32(rs.viewport.Height())
	return screenVertex{
		X:     float32(rs.viewport.Min.X) + (c.ndcX+1)*0.5*w,
		Y:     float32(rs.viewport.Min.Y) + (1-c.ndcY)*0.5*h,
		U:     c.src.TexCoord.X,
		V:     c.src.TexCoord.Y,
		Color: c.src.Color.Mul(rs.color),
	}
}

// countingSink records what reaches it without drawing anything. The
// headless build renders into one.
type countingSink struct {
	size      Point2i
	targets   map[*Texture]bool
	triangles int
	clears    int
	presents  int
	last      []screenVertex
	lastTex   *Texture
	lastDest  *Texture
}

func newCountingSink(size Point2i) *countingSink {
	return &countingSink{size: size, targets: make(map[*Texture]bool)}
}

func (s *countingSink) Triangles(target, tex *Texture, vs []screenVertex, indices []uint16) error {
	s.triangles += len(indices) / 3
	s.last = append(s.last[:0], vs...)
	s.lastTex = tex
	s.lastDest = target
	if target != nil {
		s.targets[target] = true
	}
	return nil
}

func (s *countingSink) Clear(target *Texture, _ Color) error {
	s.clears++
	return nil
}

func (s *countingSink) TargetSize(target *Texture) Point2i {
	if target != nil {
		return target.Size()
	}
	return s.size
}

func (s *countingSink) Present() error {
	s.presents++
	return nil
}
