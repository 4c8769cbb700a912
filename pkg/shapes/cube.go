package shapes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tessera/pkg/math"
)

type cube struct {
	generator
}

// NewCube returns a unit cube generator. param2 is ignored.
func NewCube(layout Layout) Shape {
	return &cube{generator{layout: layout}}
}

func (c *cube) Kind() Kind { return Cube }

func (c *cube) UpdateVertexData(param1, param2 int) {
	c.param1 = max(param1, MinCubeParam1)
	c.param2 = param2

	n := c.param1
	w := newVertexWriter(c.layout, 6*n*n*6)

	// Corner names follow the +X ("front") and -X ("back") faces.
	fTL := math.Vec3{X: 0.5, Y: -0.5, Z: 0.5}
	fTR := math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	fBR := math.Vec3{X: 0.5, Y: 0.5, Z: -0.5}
	fBL := math.Vec3{X: 0.5, Y: -0.5, Z: -0.5}
	bTL := math.Vec3{X: -0.5, Y: -0.5, Z: 0.5}
	bTR := math.Vec3{X: -0.5, Y: 0.5, Z: 0.5}
	bBR := math.Vec3{X: -0.5, Y: 0.5, Z: -0.5}
	bBL := math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}

	c.face(w, n, fTL, fTR, fBL, fBR) // +x
	c.face(w, n, bTR, bTL, bBR, bBL) // -x
	c.face(w, n, bTL, bTR, fTL, fTR) // +z
	c.face(w, n, bBR, bBL, fBR, fBL) // -z
	c.face(w, n, fTR, bTR, fBR, bBR) // +y
	c.face(w, n, bTL, fTL, bBL, fBL) // -y

	c.data = w.data
}

// face splits one side into n*n tiles by bilinear interpolation.
func (c *cube) face(w *vertexWriter, n int, tl, tr, bl, br math.Vec3) {
	right := tr.Sub(tl).Scale(1 / float32(n))
	down := bl.Sub(tl).Scale(1 / float32(n))
	at := func(i, j int) math.Vec3 {
		return tl.Add(right.Scale(float32(j))).Add(down.Scale(float32(i)))
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c.tile(w, at(i, j), at(i, j+1), at(i+1, j), at(i+1, j+1))
		}
	}
}

func (c *cube) tile(w *vertexWriter, tl, tr, bl, br math.Vec3) {
	n1 := br.Sub(bl).Cross(tl.Sub(bl)).Normalize()
	n2 := tl.Sub(tr).Cross(br.Sub(tr)).Normalize()

	TL := corner{p: tl, uv: cubeUV(tl, n1)}
	TR := corner{p: tr, uv: cubeUV(tr, n1)}
	BL := corner{p: bl, uv: cubeUV(bl, n1)}
	BR := corner{p: br, uv: cubeUV(br, n1)}

	TL.n, BL.n, BR.n = n1, n1, n1
	w.triangle(TL, BL, BR)

	TL.n, BR.n, TR.n = n2, n2, n2
	w.triangle(TL, BR, TR)
}

// cubeUV projects p onto the two axes orthogonal to the face normal, with
// signs chosen so textures read upright from outside.
func cubeUV(p, n math.Vec3) math.Vec2 {
	switch {
	case math32.Abs(n.X) > 0.5:
		if n.X > 0 {
			return math.Vec2{X: 0.5 - p.Z, Y: p.Y + 0.5}
		}
		return math.Vec2{X: p.Z + 0.5, Y: p.Y + 0.5}
	case math32.Abs(n.Y) > 0.5:
		if n.Y > 0 {
			return math.Vec2{X: p.X + 0.5, Y: 0.5 - p.Z}
		}
		return math.Vec2{X: p.X + 0.5, Y: p.Z + 0.5}
	default:
		if n.Z > 0 {
			return math.Vec2{X: p.X + 0.5, Y: p.Y + 0.5}
		}
		return math.Vec2{X: 0.5 - p.X, Y: p.Y + 0.5}
	}
}
