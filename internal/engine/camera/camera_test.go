package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
)

func testData() scenegraph.CameraData {
	return scenegraph.CameraData{
		Pos:         math.Vec4{0, 0, 5, 1},
		Look:        math.Vec4{0, 0, -1, 0},
		Up:          math.Vec4{0, 1, 0, 0},
		HeightAngle: math32.Pi / 4,
	}
}

func assertMat(t *testing.T, want, got math.Mat4, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestViewMatchesLookAt(t *testing.T) {
	data := testData()
	data.Pos = math.Vec4{2, 3, 4, 1}
	data.Look = math.Vec4{-2, -3, -4, 0}
	c := New(data, 800, 600, 0.1, 100)

	want := math.LookAt(math.Vec3{X: 2, Y: 3, Z: 4}, math.Vec3{}, math.Vec3{Y: 1})
	assertMat(t, want, c.View(), 1e-5)
}

func TestViewMovesEyeToOrigin(t *testing.T) {
	c := New(testData(), 800, 600, 0.1, 100)
	eye := c.View().TransformPoint(c.Position().XYZ())
	assertVec(t, math.Vec3{}, eye)

	ahead := c.View().TransformPoint(math.Vec3{Z: 4})
	assertVec(t, math.Vec3{Z: -1}, ahead)
}

func TestProjectionIsScaledPerspective(t *testing.T) {
	near, far := float32(0.1), float32(50)
	c := New(testData(), 1280, 720, near, far)

	want := math.Perspective(math32.Pi/4, 1280.0/720.0, near, far)
	got := c.Projection()
	for i := range got {
		got[i] *= far
	}
	assertMat(t, want, got, 1e-3)
}

func TestProjectionDepthRange(t *testing.T) {
	near, far := float32(1), float32(10)
	c := New(testData(), 100, 100, near, far)

	ndcZ := func(z float32) float32 {
		v := c.Projection().MulVec4(math.Vec4{0, 0, z, 1})
		return v[2] / v[3]
	}
	assert.InDelta(t, -1, ndcZ(-near), 1e-5)
	assert.InDelta(t, 1, ndcZ(-far), 1e-5)
}

func TestSetPlanesAndResize(t *testing.T) {
	c := New(testData(), 100, 100, 0.1, 100)
	before := c.Projection()

	c.SetPlanes(1, 20)
	near, far := c.Planes()
	assert.Equal(t, float32(1), near)
	assert.Equal(t, float32(20), far)
	assert.NotEqual(t, before, c.Projection())

	c.Resize(200, 100)
	assert.InDelta(t, 2, c.AspectRatio(), 1e-6)

	c.Resize(0, 0)
	assert.InDelta(t, 1, c.AspectRatio(), 1e-6)
}

func TestMove(t *testing.T) {
	tests := []struct {
		dir  Direction
		want math.Vec3
	}{
		{Forward, math.Vec3{Z: 5 - 5*0.5}},
		{Backward, math.Vec3{Z: 5 + 5*0.5}},
		{Left, math.Vec3{X: -2.5, Z: 5}},
		{Right, math.Vec3{X: 2.5, Z: 5}},
		{Up, math.Vec3{Y: 2.5, Z: 5}},
		{Down, math.Vec3{Y: -2.5, Z: 5}},
	}
	for _, tt := range tests {
		c := New(testData(), 100, 100, 0.1, 100)
		c.Move(tt.dir, 0.5)
		assertVec(t, tt.want, c.Position().XYZ())
	}
}

func TestMoveForwardUsesUnitLook(t *testing.T) {
	data := testData()
	data.Look = math.Vec4{0, 0, -10, 0}
	c := New(data, 100, 100, 0.1, 100)
	c.Move(Forward, 1)
	assertVec(t, math.Vec3{}, c.Position().XYZ())
}

func TestRotateYaw(t *testing.T) {
	c := New(testData(), 100, 100, 0.1, 100)
	// Yaw is around -Y, so a quarter turn to the right faces +X.
	c.Rotate(math32.Pi/2/DefaultSensitivity, 0)

	assertVec(t, math.Vec3{X: 1}, c.Look().Normalize())
	assertVec(t, math.Vec3{Y: 1}, c.up)
}

func TestRotatePitchKeepsBasisOrthogonal(t *testing.T) {
	c := New(testData(), 100, 100, 0.1, 100)
	c.Rotate(13, 37)

	assert.InDelta(t, 0, c.look.Normalize().Dot(c.up.Normalize()), 1e-5)
	assert.InDelta(t, 1, c.up.Length(), 1e-5)
}
