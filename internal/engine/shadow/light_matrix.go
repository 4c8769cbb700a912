package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
)

// Light frustum settings shared by every shadow-casting light.
const (
	OrthoHalfSize     = 10.0 // half extent of the directional light box
	LightNear         = 1.0
	LightFar          = 20.0
	SpotFOV           = 45.0 // degrees
	DirectionalOffset = 10.0 // distance of the virtual directional light from the origin
)

// BiasMatrix maps clip space [-1, 1] into texture space [0, 1].
var BiasMatrix = math.Mat4{
	0.5, 0, 0, 0,
	0, 0.5, 0, 0,
	0, 0, 0.5, 0,
	0.5, 0.5, 0.5, 1,
}

var (
	orthoProj = math.Ortho(-OrthoHalfSize, OrthoHalfSize, -OrthoHalfSize, OrthoHalfSize, LightNear, LightFar)
	spotProj  = math.Perspective(SpotFOV*math32.Pi/180, 1, LightNear, LightFar)
)

// CastsShadow reports whether a shadow map is rendered for the light.
// Point lights would need a cube map and are skipped.
func CastsShadow(l scenegraph.RenderLight) bool {
	return l.Kind == scenegraph.DirectionalLight || l.Kind == scenegraph.SpotLight
}

// LightViewProj returns the light-space view-projection matrix of l and
// false for lights that cast no shadow.
func LightViewProj(l scenegraph.RenderLight) (math.Mat4, bool) {
	dir := l.Dir.XYZ().Normalize()
	up := upFor(dir)

	switch l.Kind {
	case scenegraph.DirectionalLight:
		eye := dir.Scale(-DirectionalOffset)
		return orthoProj.Mul(math.LookAt(eye, math.Vec3{}, up)), true
	case scenegraph.SpotLight:
		eye := l.Pos.XYZ()
		return spotProj.Mul(math.LookAt(eye, eye.Add(dir), up)), true
	}
	return math.Identity(), false
}

// BiasedViewProj returns BiasMatrix * LightViewProj(l), the matrix the main
// pass uses to look up shadow map texels. Lights without a shadow map get
// the bias matrix alone.
func BiasedViewProj(l scenegraph.RenderLight) math.Mat4 {
	vp, _ := LightViewProj(l)
	return BiasMatrix.Mul(vp)
}

// upFor picks an up vector that is not parallel to dir.
func upFor(dir math.Vec3) math.Vec3 {
	up := math.Vec3{Y: 1}
	if dir.Cross(up).LengthSq() < 0.001 {
		up = math.Vec3{X: 1}
	}
	return up
}
