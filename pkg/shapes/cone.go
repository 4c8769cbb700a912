package shapes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tessera/pkg/math"
)

type cone struct {
	generator
}

// NewCone returns a generator for the unit cone: base radius 0.5 at y=-0.5,
// apex at y=0.5.
func NewCone(layout Layout) Shape {
	return &cone{generator{layout: layout}}
}

func (c *cone) Kind() Kind { return Cone }

func (c *cone) UpdateVertexData(param1, param2 int) {
	c.param1 = max(param1, MinConeParam1)
	c.param2 = max(param2, MinConeParam2)

	w := newVertexWriter(c.layout, c.param2*2*c.param1*6)

	step := 2 * math32.Pi / float32(c.param2)
	for t := 0; t < c.param2; t++ {
		cur := float32(t) * step
		next := float32(t+1) * step

		capSlice(w, c.param1, cur, next, -0.5, false)
		c.slopeSlice(w, cur, next)
	}

	c.data = w.data
}

func (c *cone) slopeSlice(w *vertexWriter, cur, next float32) {
	n := float32(c.param1)

	for t := 0; t < c.param1; t++ {
		y0 := -0.5 + float32(t)/n
		y1 := -0.5 + float32(t+1)/n

		tl := corner{p: CylindricalToCartesian(coneRadius(y1), cur, y1)}
		tr := corner{p: CylindricalToCartesian(coneRadius(y1), next, y1)}
		bl := corner{p: CylindricalToCartesian(coneRadius(y0), cur, y0)}
		br := corner{p: CylindricalToCartesian(coneRadius(y0), next, y0)}

		bl.n = coneNormal(bl.p)
		br.n = coneNormal(br.p)
		if t == c.param1-1 {
			// tl and tr are both the apex, where the gradient is undefined.
			tl.n = bl.n.Add(br.n).Normalize()
			tr.n = tl.n
		} else {
			tl.n = coneNormal(tl.p)
			tr.n = coneNormal(tr.p)
		}

		bodyUV(&tl, cur)
		bodyUV(&tr, next)
		bodyUV(&bl, cur)
		bodyUV(&br, next)
		correctSeam(&tl.uv, &tr.uv, &bl.uv, &br.uv)

		w.tile(tl, tr, bl, br)
	}
}

func coneRadius(y float32) float32 {
	return (0.5 - y) / 2
}

// coneNormal is the normalized gradient of the implicit surface
// x² + z² - ((0.5 - y) / 2)² = 0.
func coneNormal(p math.Vec3) math.Vec3 {
	return math.Vec3{
		X: 2 * p.X,
		Y: -0.25 * (2*p.Y - 1),
		Z: 2 * p.Z,
	}.Normalize()
}
