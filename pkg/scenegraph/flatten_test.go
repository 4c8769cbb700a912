package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/shapes"
)

func translate(x, y, z float32) Transformation {
	return Transformation{Kind: Translate, Translate: math.Vec3{X: x, Y: y, Z: z}}
}

func scale(x, y, z float32) Transformation {
	return Transformation{Kind: Scale, Scale: math.Vec3{X: x, Y: y, Z: z}}
}

func assertVec4(t *testing.T, want, got math.Vec4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestFlattenAccumulatesCTM(t *testing.T) {
	child := &Node{
		Transformations: []Transformation{scale(2, 2, 2)},
		Primitives:      []Primitive{{Kind: shapes.Cube}},
	}
	sibling := &Node{
		Primitives: []Primitive{{Kind: shapes.Sphere}},
	}
	root := &Node{
		Transformations: []Transformation{translate(1, 0, 0)},
		Children:        []*Node{child, sibling},
	}

	list, lights := Flatten(root)
	require.Len(t, list, 2)
	assert.Empty(t, lights)

	origin := list[0].CTM.MulVec4(math.Vec4{0, 0, 0, 1})
	assertVec4(t, math.Vec4{1, 0, 0, 1}, origin)

	// Scale applies before the parent's translation.
	p := list[0].CTM.TransformPoint(math.Vec3{X: 1})
	assert.Equal(t, math.Vec3{X: 3}, p)

	// A node without transformations inherits its parent's CTM unchanged.
	assert.Equal(t, math.Translate(1, 0, 0), list[1].CTM)
}

func TestFlattenSiblingsAreIndependent(t *testing.T) {
	a := &Node{
		Transformations: []Transformation{translate(0, 5, 0)},
		Primitives:      []Primitive{{Kind: shapes.Cone}},
	}
	b := &Node{
		Primitives: []Primitive{{Kind: shapes.Cylinder}},
	}
	list, _ := Flatten(&Node{Children: []*Node{a, b}})

	require.Len(t, list, 2)
	assert.Equal(t, math.Translate(0, 5, 0), list[0].CTM)
	assert.Equal(t, math.Identity(), list[1].CTM)
}

func TestFlattenTransformOrder(t *testing.T) {
	// Declared order is translate then scale: CTM = T * S.
	n := &Node{
		Transformations: []Transformation{translate(1, 0, 0), scale(3, 3, 3)},
		Primitives:      []Primitive{{Kind: shapes.Cube}},
	}
	list, _ := Flatten(n)
	require.Len(t, list, 1)
	assert.Equal(t, math.Translate(1, 0, 0).Mul(math.Scale(3, 3, 3)), list[0].CTM)
}

func TestFlattenRawMatrix(t *testing.T) {
	raw := math.FromRows([16]float32{
		1, 0, 0, 2,
		0, 1, 0, 3,
		0, 0, 1, 4,
		0, 0, 0, 1,
	})
	n := &Node{
		Transformations: []Transformation{{Kind: Matrix, Raw: raw}},
		Primitives:      []Primitive{{Kind: shapes.Cube}},
	}
	list, _ := Flatten(n)
	assert.Equal(t, math.Vec3{X: 2, Y: 3, Z: 4}, list[0].CTM.TransformPoint(math.Vec3{}))
}

func TestFlattenSpotLight(t *testing.T) {
	n := &Node{
		Transformations: []Transformation{translate(0, 5, 0)},
		Lights: []Light{{
			ID:       7,
			Kind:     SpotLight,
			Color:    Color{1, 1, 1, 1},
			Function: math.Vec3{X: 1},
			Dir:      math.Vec3{Y: -1},
			Angle:    0.5,
			Penumbra: 0.1,
		}},
	}
	_, lights := Flatten(n)
	require.Len(t, lights, 1)

	l := lights[0]
	assert.Equal(t, 7, l.ID)
	assert.Equal(t, math.Vec4{0, 5, 0, 1}, l.Pos)
	// Directions carry w=0, so the translation does not move them.
	assert.Equal(t, math.Vec4{0, -1, 0, 0}, l.Dir)
	assert.Equal(t, float32(0.5), l.Angle)
	assert.Equal(t, float32(0.1), l.Penumbra)
}

func TestFlattenLightFieldsPerKind(t *testing.T) {
	n := &Node{
		Transformations: []Transformation{translate(1, 2, 3)},
		Lights: []Light{
			{Kind: PointLight, Dir: math.Vec3{X: 1}, Angle: 1, Penumbra: 1},
			{Kind: DirectionalLight, Dir: math.Vec3{X: 1}, Angle: 1, Penumbra: 1},
		},
	}
	_, lights := Flatten(n)
	require.Len(t, lights, 2)

	point, dir := lights[0], lights[1]
	assert.Equal(t, math.Vec4{1, 2, 3, 1}, point.Pos)
	assert.Equal(t, math.Vec4{}, point.Dir)
	assert.Zero(t, point.Angle)

	assert.Equal(t, math.Vec4{}, dir.Pos)
	assert.Equal(t, math.Vec4{1, 0, 0, 0}, dir.Dir)
	assert.Zero(t, dir.Penumbra)
}

func TestFlattenRotatesLightDirection(t *testing.T) {
	n := &Node{
		Transformations: []Transformation{{Kind: Rotate, Axis: math.Vec3{Y: 1}, Angle: 1.5707964}},
		Lights:          []Light{{Kind: DirectionalLight, Dir: math.Vec3{X: 1}}},
	}
	_, lights := Flatten(n)
	assertVec4(t, math.Vec4{0, 0, -1, 0}, lights[0].Dir)
}

func TestFlattenPreOrder(t *testing.T) {
	leaf := func(k shapes.Kind, children ...*Node) *Node {
		return &Node{Primitives: []Primitive{{Kind: k}}, Children: children}
	}
	root := leaf(shapes.Cube,
		leaf(shapes.Cone, leaf(shapes.Sphere)),
		leaf(shapes.Cylinder),
	)

	list, _ := Flatten(root)
	var got []shapes.Kind
	for _, s := range list {
		got = append(got, s.Primitive.Kind)
	}
	assert.Equal(t, []shapes.Kind{shapes.Cube, shapes.Cone, shapes.Sphere, shapes.Cylinder}, got)
}

func TestFlattenNilRoot(t *testing.T) {
	list, lights := Flatten(nil)
	assert.Empty(t, list)
	assert.Empty(t, lights)
}

func TestBuildAndMeshFiles(t *testing.T) {
	s := &Scene{
		Globals: GlobalData{Ka: 0.5, Kd: 0.5, Ks: 0.5},
		Camera:  CameraData{HeightAngle: 0.5},
		Root: &Node{
			Primitives: []Primitive{
				{Kind: shapes.Mesh, MeshFile: "b.obj"},
				{Kind: shapes.Cube},
				{Kind: shapes.Mesh, MeshFile: "a.obj"},
				{Kind: shapes.Mesh, MeshFile: "b.obj"},
			},
		},
	}
	data := Build(s)
	assert.Equal(t, s.Globals, data.Globals)
	assert.Equal(t, s.Camera, data.Camera)
	assert.Len(t, data.Shapes, 4)
	assert.Equal(t, []string{"b.obj", "a.obj"}, data.MeshFiles())
}
