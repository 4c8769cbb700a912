// Package camera provides the free-flying scene camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
)

// Default movement settings.
const (
	DefaultSpeed       = 5.0  // world units per second
	DefaultSensitivity = 0.01 // radians per pixel of mouse drag
)

var worldUp = math.Vec3{Y: 1}

// Direction is a movement direction relative to the camera.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Camera holds the eye position and orientation, and caches the view and
// projection matrices built from them.
type Camera struct {
	pos  math.Vec3
	look math.Vec3
	up   math.Vec3

	heightAngle float32 // radians
	aperture    float32
	focalLength float32

	width, height float32
	near, far     float32

	Speed       float32
	Sensitivity float32

	view math.Mat4
	proj math.Mat4
}

// New creates a camera from scene data for a viewport of the given size.
func New(data scenegraph.CameraData, width, height int, near, far float32) *Camera {
	c := &Camera{
		near:        near,
		far:         far,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
	}
	c.setViewport(width, height)
	c.SetData(data)
	return c
}

// SetData replaces position, orientation and lens with new scene data.
func (c *Camera) SetData(data scenegraph.CameraData) {
	c.pos = data.Pos.XYZ()
	c.look = data.Look.XYZ()
	c.up = data.Up.XYZ()
	c.heightAngle = data.HeightAngle
	c.aperture = data.Aperture
	c.focalLength = data.FocalLength
	c.computeView()
	c.computeProjection()
}

// SetPlanes updates the clipping planes.
func (c *Camera) SetPlanes(near, far float32) {
	c.near = near
	c.far = far
	c.computeProjection()
}

// Resize updates the aspect ratio.
func (c *Camera) Resize(width, height int) {
	c.setViewport(width, height)
	c.computeProjection()
}

func (c *Camera) setViewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width = float32(width)
	c.height = float32(height)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() math.Mat4 { return c.view }


// Projection returns the camera-to-clip matrix.
func (c *Camera) Projection() math.Mat4 { return c.proj }

// Position returns the eye position as a homogeneous point.
func (c *Camera) Position() math.Vec4 { return c.pos.Vec4(1) }

// Look returns the current look vector.
func (c *Camera) Look() math.Vec3 { return c.look }

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float32 { return c.width / c.height }

// HeightAngle returns the vertical field of view in radians.
func (c *Camera) HeightAngle() float32 { return c.heightAngle }

// Aperture returns the lens aperture from the scene file.
func (c *Camera) Aperture() float32 { return c.aperture }

// FocalLength returns the focal length from the scene file.
func (c *Camera) FocalLength() float32 { return c.focalLength }

// Planes returns the near and far clipping distances.
func (c *Camera) Planes() (near, far float32) { return c.near, c.far }

// Move translates the eye by Speed*dt along dir. Forward and backward follow
// the look vector, left and right its cross product with up, up and down
// the world Y axis.
func (c *Camera) Move(dir Direction, dt float32) {
	step := c.Speed * dt
	switch dir {
	case Forward:
		c.pos = c.pos.Add(c.look.Normalize().Scale(step))
	case Backward:
		c.pos = c.pos.Sub(c.look.Normalize().Scale(step))
	case Left:
		c.pos = c.pos.Sub(c.right().Scale(step))
	case Right:
		c.pos = c.pos.Add(c.right().Scale(step))
	case Up:
		c.pos = c.pos.Add(worldUp.Scale(step))
	case Down:
		c.pos = c.pos.Sub(worldUp.Scale(step))
	}
	c.computeView()
}

// Rotate turns the camera by a mouse drag. dx yaws around the world Y axis,
// dy pitches around the camera's right vector.
func (c *Camera) Rotate(dx, dy float32) {
	yaw := math.QuatFromAxisAngle(math.Vec3{Y: -1}, dx*c.Sensitivity)
	pitch := math.QuatFromAxisAngle(c.right().Negate(), dy*c.Sensitivity)
	q := yaw.Mul(pitch)

	c.look = q.Rotate(c.look)
	c.up = q.Rotate(c.up)
	c.computeView()
}

func (c *Camera) right() math.Vec3 {
	return c.look.Cross(c.up).Normalize()
}

// computeView builds V = R * T from the orthonormal basis u, v, w where w
// points away from the look direction.
func (c *Camera) computeView() {
	w := c.look.Normalize().Negate()
	v := c.up.Sub(w.Scale(c.up.Dot(w))).Normalize()
	u := v.Cross(w)

	r := math.Mat4{
		u.X, v.X, w.X, 0,
		u.Y, v.Y, w.Y, 0,
		u.Z, v.Z, w.Z, 0,
		0, 0, 0, 1,
	}
	c.view = r.Mul(math.TranslateVec(c.pos.Negate()))
}

// computeProjection builds the projection as unhinge * scale, remapped to
// OpenGL's [-1, 1] depth range.
func (c *Camera) computeProjection() {
	tanH := math32.Tan(c.heightAngle / 2)
	tanW := c.AspectRatio() * tanH

	scale := math.Scale(1/(c.far*tanW), 1/(c.far*tanH), 1/c.far)

	k := -c.near / c.far
	unhinge := math.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1 / (1 + k), -1,
		0, 0, -k / (1 + k), 0,
	}
	remapZ := math.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -2, 0,
		0, 0, -1, 1,
	}
	c.proj = remapZ.Mul(unhinge).Mul(scale)
}
