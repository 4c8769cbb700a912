package formats

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/shapes"
)

func TestParseOBJ_CornerFormats(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1 2 3
f 1/1 2/2 3/3
f 1//1 2//1 3//1
f 1/1/1 2/2/1 3/3/1
f -3 -2 -1
`
	obj, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, obj.Faces, 5)

	assert.Equal(t, []int{0, 1, 2}, obj.Faces[0].Position)
	assert.Empty(t, obj.Faces[0].UV)
	assert.Equal(t, []int{0, 1, 2}, obj.Faces[1].UV)
	assert.Empty(t, obj.Faces[2].UV)
	assert.Equal(t, []int{0, 0, 0}, obj.Faces[2].Normal)
	assert.True(t, obj.Faces[3].HasNormals())
	assert.True(t, obj.Faces[3].HasUVs())
	assert.Equal(t, []int{0, 1, 2}, obj.Faces[4].Position)
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		line    string
	}{
		{"bad float", "v 0 x 0", ErrInvalidOBJValue, "line 1"},
		{"short vertex", "v 0 0", ErrInvalidOBJValue, "line 1"},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2", ErrInvalidOBJFace, "line 3"},
		{"out of range", "v 0 0 0\nf 1 2 3", ErrOBJIndexRange, "line 2"},
		{"zero index", "v 0 0 0\nf 0 0 0", ErrOBJIndexRange, "line 2"},
		{"mixed corners", "v 0 0 0\nvt 0 0\nf 1/1 1 1", ErrInvalidOBJFace, "line 3"},
		{"bad index", "v 0 0 0\nf a b c", ErrInvalidOBJFace, "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			require.Error(t, err)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestOBJTriangles_RecoversNormals(t *testing.T) {
	obj, err := LoadOBJ(filepath.Join("testdata", "meshes", "tri.obj"))
	require.NoError(t, err)
	assert.False(t, obj.HasNormals())

	tris, isolated := obj.Triangles()
	require.Len(t, tris, 1)
	assert.Zero(t, isolated)
	for _, v := range tris[0] {
		assert.Equal(t, math.Vec3{Z: 1}, v.Normal)
	}
}

func TestOBJTriangles_FanWithDeclaredNormals(t *testing.T) {
	obj, err := LoadOBJ(filepath.Join("testdata", "quad.obj"))
	require.NoError(t, err)
	assert.True(t, obj.HasNormals())

	tris, _ := obj.Triangles()
	require.Len(t, tris, 2)
	assert.Equal(t, math.Vec3{X: 1, Y: 1}, tris[1][1].Position)
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, tris[1][1].UV)
	assert.Equal(t, math.Vec3{Z: 1}, tris[1][2].Normal)
}

func TestOBJMesh(t *testing.T) {
	obj, err := LoadOBJ(filepath.Join("testdata", "quad.obj"))
	require.NoError(t, err)

	m, isolated := obj.Mesh("quad.obj", shapes.LayoutPNTT)
	assert.Zero(t, isolated)
	assert.Len(t, m.VertexData(), 6*11)
	assert.Equal(t, "quad.obj", shapes.Stats(m).Name)
}

func TestLoadOBJ_Missing(t *testing.T) {
	_, err := LoadOBJ(filepath.Join("testdata", "nope.obj"))
	assert.Error(t, err)
}
