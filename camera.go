// camera.go - Cameras feeding Video.Set3D

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
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera supplies the matrices for a 3D view.
type Camera interface {
	ViewMatrix() Matrix4f
	ProjectionMatrix(vp Viewport) Matrix4f
}

// Default basis of a PerspectiveCamera: looking down +X with +Z up.
var (
	cameraForward = Vector3f{1, 0, 0}
	cameraUp      = Vector3f{0, 0, 1}
)

// PerspectiveCamera is a positioned, oriented pinhole camera.
type PerspectiveCamera struct {
	Position    Point3f
	Orientation Quaternion
	NearClip    float32
	FarClip     float32
	FOV         float32 // vertical, radians
}

func NewPerspectiveCamera(position Point3f) *PerspectiveCamera {
	return &PerspectiveCamera{
		Position:    position,
		Orientation: mgl32.QuatIdent(),
		NearClip:    10,
		FarClip:     1000,
		FOV:         math32.Pi / 2,
	}
}

func (c *PerspectiveCamera) Forward() Vector3f {
	return c.Orientation.Rotate(cameraForward)
}

func (c *PerspectiveCamera) Up() Vector3f {
	return c.Orientation.Rotate(cameraUp)
}

func (c *PerspectiveCamera) Left() Vector3f {
	return c.Up().Cross(c.Forward())
}

// Turn applies an extra rotation on top of the current orientation.
func (c *PerspectiveCamera) Turn(q Quaternion) {
	c.Orientation = q.Mul(c.Orientation).Normalize()
}

func (c *PerspectiveCamera) Move(by Vector3f) {
	c.Position = Point3fFromVec3(c.Position.Vec3().Add(by))
}

func (c *PerspectiveCamera) ViewMatrix() Matrix4f {
	eye := c.Position.Vec3()
	return Matrix4fFromMgl(mgl32.LookAtV(eye, eye.Add(c.Forward()), c.Up()))
}

func (c *PerspectiveCamera) ProjectionMatrix(vp Viewport) Matrix4f {
	return Perspective(c.FOV, vp.AspectRatio(), c.NearClip, c.FarClip)
}
