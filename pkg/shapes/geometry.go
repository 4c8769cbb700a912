package shapes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tessera/pkg/math"
)

// radius of every built-in primitive; they all fit the unit cube at the origin.
const radius = 0.5

// degenerateDet is the smallest UV determinant ComputeTangent divides by.
const degenerateDet = 1e-6

// FallbackTangent is emitted when a triangle's UVs cannot define a tangent.
var FallbackTangent = math.Vec3{X: 1}

// SphericalToCartesian converts a polar angle phi (from +Y) and an azimuth
// theta to a point on the sphere of radius 0.5.
func SphericalToCartesian(phi, theta float32) math.Vec3 {
	sinPhi := math32.Sin(phi)
	return math.Vec3{
		X: radius * sinPhi * math32.Cos(theta),
		Y: radius * math32.Cos(phi),
		Z: -radius * sinPhi * math32.Sin(theta),
	}
}

// CylindricalToCartesian converts (r, theta, y) to cartesian coordinates.
func CylindricalToCartesian(r, theta, y float32) math.Vec3 {
	return math.Vec3{
		X: r * math32.Cos(theta),
		Y: y,
		Z: r * math32.Sin(theta),
	}
}

// ComputeTangent solves the edge/UV system of triangle (p0, p1, p2) for the
// tangent direction. Near-singular UV mappings return FallbackTangent.
func ComputeTangent(p0, p1, p2 math.Vec3, uv0, uv1, uv2 math.Vec2) math.Vec3 {
	return computeTangent(p0, p1, p2, uv0, uv1, uv2, FallbackTangent)
}

// computeTangent is ComputeTangent with the direction returned for a
// triangle collapsed to a segment (two corners on a pole or apex) whose UVs
// are still distinct.
func computeTangent(p0, p1, p2 math.Vec3, uv0, uv1, uv2 math.Vec2, collapsed math.Vec3) math.Vec3 {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	d1 := uv1.Sub(uv0)
	d2 := uv2.Sub(uv0)

	det := d1.X*d2.Y - d2.X*d1.Y
	if math32.Abs(det) < degenerateDet {
		return FallbackTangent
	}

	r := 1 / det
	t := e1.Scale(d2.Y * r).Sub(e2.Scale(d1.Y * r))
	if t.LengthSq() < 1e-12 {
		return collapsed
	}
	return t.Normalize()
}

// angularU maps the azimuth of (x, z) to a horizontal texture coordinate in
// [0, 1]. atan2 is discontinuous at the -X axis, so both halves are folded
// onto one turn.
func angularU(x, z float32) float32 {
	theta := math32.Atan2(z, x)
	if theta < 0 {
		return -theta / (2 * math32.Pi)
	}
	return 1 - theta/(2*math32.Pi)
}

// onAxis reports whether p lies on the Y axis, where the azimuth is undefined.
func onAxis(p math.Vec3) bool {
	return p.X*p.X+p.Z*p.Z < 1e-12
}

// correctSeam bumps the u of every corner below 0.5 by one when the tile's
// corners span more than half the texture, so the tile interpolates
// across the wrap instead of through the whole texture.
func correctSeam(uvs ...*math.Vec2) {
	minU, maxU := uvs[0].X, uvs[0].X
	for _, uv := range uvs[1:] {
		minU = math32.Min(minU, uv.X)
		maxU = math32.Max(maxU, uv.X)
	}
	if maxU-minU <= 0.5 {
		return
	}
	for _, uv := range uvs {
		if uv.X < 0.5 {
			uv.X++
		}
	}
}
