package shadow

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
)

func project(m math.Mat4, p math.Vec3) math.Vec3 {
	v := m.MulVec4(p.Vec4(1))
	return math.Vec3{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
}

func TestPointLightCastsNoShadow(t *testing.T) {
	l := scenegraph.RenderLight{Kind: scenegraph.PointLight, Pos: math.Vec4{0, 5, 0, 1}}
	vp, ok := LightViewProj(l)
	assert.False(t, ok)
	assert.False(t, CastsShadow(l))
	assert.Equal(t, math.Identity(), vp)
	assert.Equal(t, BiasMatrix, BiasedViewProj(l))
}

func TestDirectionalLightCentersOrigin(t *testing.T) {
	l := scenegraph.RenderLight{Kind: scenegraph.DirectionalLight, Dir: math.Vec4{0, 0, -1, 0}}
	vp, ok := LightViewProj(l)
	assert.True(t, ok)

	// The origin is DirectionalOffset in front of the light: depth maps to
	// the ortho range [LightNear, LightFar].
	c := project(vp, math.Vec3{})
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, 0, c.Y, 1e-5)
	wantZ := 2*(DirectionalOffset-LightNear)/(LightFar-LightNear) - 1
	assert.InDelta(t, wantZ, c.Z, 1e-5)

	edge := project(vp, math.Vec3{X: OrthoHalfSize})
	assert.InDelta(t, 1, abs(edge.X), 1e-5)
}

func TestDirectionalLightStraightDown(t *testing.T) {
	// Direction parallel to the default up vector must still produce a
	// valid matrix.
	l := scenegraph.RenderLight{Kind: scenegraph.DirectionalLight, Dir: math.Vec4{0, -1, 0, 0}}
	vp, ok := LightViewProj(l)
	assert.True(t, ok)

	c := project(vp, math.Vec3{})
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, 0, c.Y, 1e-5)
	for _, v := range vp {
		assert.False(t, math32.IsNaN(v), "NaN in light matrix")
	}
}

func TestSpotLightLooksAlongDirection(t *testing.T) {
	l := scenegraph.RenderLight{
		Kind: scenegraph.SpotLight,
		Pos:  math.Vec4{3, 4, 0, 1},
		Dir:  math.Vec4{0, -1, 0, 0},
	}
	vp, ok := LightViewProj(l)
	assert.True(t, ok)

	below := project(vp, math.Vec3{X: 3, Y: 0})
	assert.InDelta(t, 0, below.X, 1e-5)
	assert.InDelta(t, 0, below.Y, 1e-5)
	assert.True(t, below.Z > -1 && below.Z < 1)
}

func TestBiasedViewProjInUnitCube(t *testing.T) {
	l := scenegraph.RenderLight{Kind: scenegraph.DirectionalLight, Dir: math.Vec4{1, -1, -1, 0}}
	p := project(BiasedViewProj(l), math.Vec3{})
	for _, v := range []float32{p.X, p.Y, p.Z} {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
	assert.InDelta(t, 0.5, p.X, 1e-5)
	assert.InDelta(t, 0.5, p.Y, 1e-5)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
