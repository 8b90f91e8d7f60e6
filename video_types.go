// video_types.go - Value types shared by the Video facade and its backends

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
	"strings"
)

// VideoMode identifies the backend behind a Video facade.
type VideoMode int

const (
	VideoAny VideoMode = iota // no backend selected
	VideoGL
	VideoDX9
)

func (m VideoMode) String() string {
	switch m {
	case VideoAny:
		return "any"
	case VideoGL:
		return "gl"
	case VideoDX9:
		return "dx9"
	}
	return fmt.Sprintf("VideoMode(%d)", int(m))
}

// ParseVideoMode accepts the names used in the video.api config key. The
// empty string and "auto" leave the choice to Video.Init.
func ParseVideoMode(s string) (VideoMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "any":
		return VideoAny, nil
	case "gl", "opengl":
		return VideoGL, nil
	case "dx9", "d3d9", "direct3d9":
		return VideoDX9, nil
	}
	return VideoAny, &VideoError{
		Operation: "mode selection",
		Details:   fmt.Sprintf("unknown video api %q", s),
		Err:       ErrVideoInit,
	}
}

// TestFunc is a depth or alpha comparison.
type TestFunc int

const (
	TestNever TestFunc = iota
	TestLess
	TestEqual
	TestLessOrEqual
	TestGreater
	TestNotEqual
	TestGreaterOrEqual
	TestAlways
)

type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
	LightSpot
)

type Light struct {
	Kind      LightKind
	Diffuse   Color
	Specular  Color
	Ambient   Color
	Position  Point3f
	Direction Vector3f

	ConstantAttenuation  float32
	LinearAttenuation    float32
	QuadraticAttenuation float32

	// Spot cone, radians.
	SpotTheta float32
	SpotPhi   float32
}

// NewLight returns the default white point light at the origin.
func NewLight() Light {
	return Light{
		Diffuse:             ColorWhite,
		Specular:            ColorWhite,
		Ambient:             ColorBlack,
		Direction:           Vector3f{1, 0, 0},
		ConstantAttenuation: 1,
	}
}

type Material struct {
	Diffuse  Color
	Ambient  Color
	Specular Color
	Emissive Color
	Power    float32
	Texture  string // optional texture applied along with the material
}

func NewMaterial(diffuse Color) Material {
	return Material{
		Diffuse:  diffuse,
		Ambient:  diffuse,
		Specular: ColorBlack,
		Emissive: Color{},
		Power:    1,
	}
}

type FogMode int

const (
	FogLinear FogMode = iota
	FogExp
	FogExp2
)

type Fog struct {
	Mode    FogMode
	Color   Color
	Density float32
	Start   float32
	End     float32
}

// Primitive is the topology of a vertex batch.
type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveQuads               // split into two triangles each
)

func (p Primitive) vertsPerFace() int {
	if p == PrimitiveQuads {
		return 4
	}
	return 3
}

type Vertex struct {
	Position Point3f
	Normal   Vector3f
	Color    Color
	TexCoord Point2f
}

// DrawTarget receives raw vertex batches from a Renderable.
type DrawTarget interface {
	DrawVertices(p Primitive, vs []Vertex) error
}

// Renderable is anything Video.Render can draw. PreRender and PostRender
// always run as a pair around RenderTo.
type Renderable interface {
	PreRender()
	PostRender()
	RenderTo(dst DrawTarget) error
}

// DisplaySurface is the window (or headless stand-in) owned by an
// initialized Video. Close is called exactly once, from Video.Uninit.
type DisplaySurface interface {
	Size() Point2i
	SetTitle(title string)
	SetFullscreen(on bool)
	SetFrameVisible(on bool)
	Close() error
}

// TextureRegistry resolves texture names and ids for Video.
type TextureRegistry interface {
	ID(name string) (uint32, error)
	Lookup(id uint32) (*Texture, error)
}
