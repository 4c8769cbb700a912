package shapes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tessera/pkg/math"
)

type sphere struct {
	generator
}

// NewSphere returns a generator for the sphere of radius 0.5 at the origin.
// param1 is the number of latitude bands, param2 the number of wedges.
func NewSphere(layout Layout) Shape {
	return &sphere{generator{layout: layout}}
}

func (s *sphere) Kind() Kind { return Sphere }

func (s *sphere) UpdateVertexData(param1, param2 int) {
	s.param1 = max(param1, MinSphereParam1)
	s.param2 = max(param2, MinSphereParam2)

	w := newVertexWriter(s.layout, s.param2*s.param1*6)

	thetaStep := 2 * math32.Pi / float32(s.param2)
	for t := 0; t < s.param2; t++ {
		s.wedge(w, float32(t)*thetaStep, float32(t+1)*thetaStep)
	}

	s.data = w.data
}

// wedge sweeps from the +Y pole to the -Y pole between two azimuths.
func (s *sphere) wedge(w *vertexWriter, cur, next float32) {
	n := float32(s.param1)
	// Pole triangles collapse; they take the azimuthal direction at the
	// middle of the wedge, which is orthogonal to the pole normal.
	sin, cos := math32.Sincos((cur + next) / 2)
	azimuth := math.Vec3{X: -sin, Z: -cos}

	for t := 0; t < s.param1; t++ {
		phi0 := math32.Pi * float32(t) / n
		phi1 := math32.Pi * float32(t+1) / n

		tl := sphereCorner(phi1, cur)
		tr := sphereCorner(phi1, next)
		bl := sphereCorner(phi0, cur)
		br := sphereCorner(phi0, next)

		// Tangents are computed from the corrected UVs.
		correctSeam(&tl.uv, &tr.uv, &bl.uv, &br.uv)

		w.tileOr(tl, tr, bl, br, azimuth)
	}
}

func sphereCorner(phi, theta float32) corner {
	p := SphericalToCartesian(phi, theta)
	return corner{p: p, n: p.Normalize(), uv: sphereUV(p, theta)}
}

// sphereUV maps longitude to u and latitude to v. At the poles the
// longitude is taken from the corner's azimuth.
func sphereUV(p math.Vec3, theta float32) math.Vec2 {
	x, z := p.X, p.Z
	if onAxis(p) {
		x, z = math32.Cos(theta), -math32.Sin(theta)
	}
	lat := math32.Asin(clamp(p.Y/radius, -1, 1))
	return math.Vec2{X: angularU(x, z), Y: lat/math32.Pi + 0.5}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
