package shapes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tessera/pkg/math"
)

var (
	up   = math.Vec3{Y: 1}
	down = math.Vec3{Y: -1}
)

type cylinder struct {
	generator
}

// NewCylinder returns a generator for the unit cylinder (radius 0.5,
// height 1) centered at the origin.
func NewCylinder(layout Layout) Shape {
	return &cylinder{generator{layout: layout}}
}

func (c *cylinder) Kind() Kind { return Cylinder }

func (c *cylinder) UpdateVertexData(param1, param2 int) {
	c.param1 = max(param1, MinCylinderParam1)
	c.param2 = max(param2, MinCylinderParam2)

	// Per wedge: two caps and one wall, param1 tiles each.
	w := newVertexWriter(c.layout, c.param2*3*c.param1*6)

	step := 2 * math32.Pi / float32(c.param2)
	for t := 0; t < c.param2; t++ {
		cur := float32(t) * step
		next := float32(t+1) * step

		capSlice(w, c.param1, cur, next, 0.5, true)
		capSlice(w, c.param1, cur, next, -0.5, false)
		c.wallSlice(w, cur, next)
	}

	c.data = w.data
}

func (c *cylinder) wallSlice(w *vertexWriter, cur, next float32) {
	n := float32(c.param1)
	leftNorm := CylindricalToCartesian(1, cur, 0).Normalize()
	rightNorm := CylindricalToCartesian(1, next, 0).Normalize()

	for t := 0; t < c.param1; t++ {
		y0 := -0.5 + float32(t)/n
		y1 := -0.5 + float32(t+1)/n

		tl := corner{p: CylindricalToCartesian(radius, cur, y1), n: leftNorm}
		tr := corner{p: CylindricalToCartesian(radius, next, y1), n: rightNorm}
		bl := corner{p: CylindricalToCartesian(radius, cur, y0), n: leftNorm}
		br := corner{p: CylindricalToCartesian(radius, next, y0), n: rightNorm}

		bodyUV(&tl, cur)
		bodyUV(&tr, next)
		bodyUV(&bl, cur)
		bodyUV(&br, next)
		correctSeam(&tl.uv, &tr.uv, &bl.uv, &br.uv)

		w.tile(tl, tr, bl, br)
	}
}

// capSlice writes one wedge of a flat disc at height y as concentric rings.
// Top and bottom swap left and right so both discs wind outward.
func capSlice(w *vertexWriter, rings int, cur, next, y float32, top bool) {
	rStep := radius / float32(rings)
	n := down
	if top {
		n = up
	}

	for t := 0; t < rings; t++ {
		r0 := float32(t) * rStep
		r1 := float32(t+1) * rStep

		tl := corner{p: CylindricalToCartesian(r1, cur, y), n: n}
		tr := corner{p: CylindricalToCartesian(r1, next, y), n: n}
		bl := corner{p: CylindricalToCartesian(r0, cur, y), n: n}
		br := corner{p: CylindricalToCartesian(r0, next, y), n: n}
		for _, c := range []*corner{&tl, &tr, &bl, &br} {
			c.uv = capUV(c.p, top)
		}

		if top {
			w.tile(tr, tl, br, bl)
		} else {
			w.tile(tl, tr, bl, br)
		}
	}
}

// capUV maps a disc of radius 0.5 onto the unit square.
func capUV(p math.Vec3, top bool) math.Vec2 {
	if top {
		return math.Vec2{X: p.X + 0.5, Y: 0.5 - p.Z}
	}
	return math.Vec2{X: p.X + 0.5, Y: p.Z + 0.5}
}

// bodyUV maps azimuth to u and height to v for the curved surfaces of the
// cylinder and cone. On the axis the azimuth comes from the tile edge.
func bodyUV(c *corner, theta float32) {
	x, z := c.p.X, c.p.Z
	if onAxis(c.p) {
		x, z = math32.Cos(theta), math32.Sin(theta)
	}
	c.uv = math.Vec2{X: angularU(x, z), Y: c.p.Y + 0.5}
}
