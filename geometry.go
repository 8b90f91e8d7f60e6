// geometry.go - Points, vectors and viewports for Zeni Engine

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
	"github.com/go-gl/mathgl/mgl32"
)

// Vector3f and Quaternion are mathgl types; the engine does not wrap them.
type (
	Vector3f   = mgl32.Vec3
	Quaternion = mgl32.Quat
)

type Point2f struct {
	X, Y float32
}

type Point2i struct {
	X, Y int
}

type Point3f struct {
	X, Y, Z float32
}

func (p Point3f) Vec3() Vector3f {
	return Vector3f{p.X, p.Y, p.Z}
}

func Point3fFromVec3(v Vector3f) Point3f {
	return Point3f{v[0], v[1], v[2]}
}

// Viewport is a window-space rectangle from its top-left corner (Min) to
// its bottom-right corner (Max).
type Viewport struct {
	Min, Max Point2i
}

func FullViewport(size Point2i) Viewport {
	return Viewport{Max: size}
}

func (v Viewport) Width() int {
	return v.Max.X - v.Min.X
}

func (v Viewport) Height() int {
	return v.Max.Y - v.Min.Y
}

func (v Viewport) Size() Point2i {
	return Point2i{v.Width(), v.Height()}
}

// AspectRatio is width over height; a degenerate viewport reports 1.
func (v Viewport) AspectRatio() float32 {
	if v.Height() == 0 {
		return 1
	}
	return float32(v.Width()) / float32(v.Height())
}

// Camera2D is the visible world rectangle of a 2D view, top-left first.
type Camera2D [2]Point2f
