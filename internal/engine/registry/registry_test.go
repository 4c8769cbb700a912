package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/shapes"
)

type recordingUploader struct {
	uploads  []Key
	released []Key
}

func (u *recordingUploader) Upload(k Key, s shapes.Shape) {
	if len(s.VertexData()) == 0 {
		panic("upload before generation: " + k.String())
	}
	u.uploads = append(u.uploads, k)
}

func (u *recordingUploader) Release(k Key) { u.released = append(u.released, k) }

func triangleMesh(path string, layout shapes.Layout) (shapes.Shape, error) {
	tri := shapes.Triangle{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}, Normal: math.Vec3{Z: 1}},
		{Position: math.Vec3{X: 1, Y: 0, Z: 0}, Normal: math.Vec3{Z: 1}},
		{Position: math.Vec3{X: 0, Y: 1, Z: 0}, Normal: math.Vec3{Z: 1}},
	}
	return shapes.NewMesh(path, []shapes.Triangle{tri}, layout), nil
}

func TestRegenerateUploadsEveryBuiltin(t *testing.T) {
	up := &recordingUploader{}
	r := New(shapes.LayoutPNTT, WithUploader(up))

	r.Regenerate(shapes.Params{Param1: 4, Param2: 6})

	require.Len(t, up.uploads, len(shapes.Kinds))
	for i, k := range shapes.Kinds {
		assert.Equal(t, Key{Kind: k}, up.uploads[i])
	}
	assert.Equal(t, shapes.Params{Param1: 4, Param2: 6}, r.Params())

	// Cube: 6 faces of p1*p1 tiles, two triangles each.
	assert.Equal(t, int32(6*4*4*6), r.VertexCount(shapes.Cube, ""))
	// Sphere: p1 rows * p2 wedges.
	assert.Equal(t, int32(4*6*6), r.VertexCount(shapes.Sphere, ""))
}

func TestRegenerateReplacesBuffers(t *testing.T) {
	r := New(shapes.LayoutPN)
	r.Regenerate(shapes.Params{Param1: 2, Param2: 3})
	before := r.VertexCount(shapes.Sphere, "")

	r.Regenerate(shapes.Params{Param1: 8, Param2: 12})
	after := r.VertexCount(shapes.Sphere, "")

	assert.Less(t, before, after)
	assert.Equal(t, shapes.LayoutPN, r.Shape(shapes.Sphere, "").Layout())
}

func TestRegisterMeshesFirstReferenceWins(t *testing.T) {
	calls := map[string]int{}
	loader := func(path string, layout shapes.Layout) (shapes.Shape, error) {
		calls[path]++
		return triangleMesh(path, layout)
	}
	up := &recordingUploader{}
	r := New(shapes.LayoutPNT, WithMeshLoader(loader), WithUploader(up))

	require.NoError(t, r.RegisterMeshes([]string{"a.obj", "b.obj", "a.obj"}))
	require.NoError(t, r.RegisterMeshes([]string{"b.obj"}))

	assert.Equal(t, map[string]int{"a.obj": 1, "b.obj": 1}, calls)
	assert.Equal(t, []string{"a.obj", "b.obj"}, r.Meshes())
	assert.Equal(t, []Key{
		{Kind: shapes.Mesh, MeshFile: "a.obj"},
		{Kind: shapes.Mesh, MeshFile: "b.obj"},
	}, up.uploads)
	assert.Equal(t, int32(3), r.VertexCount(shapes.Mesh, "a.obj"))
	assert.Len(t, r.Shape(shapes.Mesh, "b.obj").VertexData(), 3*shapes.LayoutPNT.Stride())
}

func TestRegisterMeshesCollectsErrors(t *testing.T) {
	errBroken := errors.New("broken")
	loader := func(path string, layout shapes.Layout) (shapes.Shape, error) {
		if path == "bad.obj" {
			return nil, errBroken
		}
		return triangleMesh(path, layout)
	}
	r := New(shapes.LayoutPN, WithMeshLoader(loader))

	err := r.RegisterMeshes([]string{"bad.obj", "good.obj"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "bad.obj")

	_, ok := r.Lookup(shapes.Mesh, "bad.obj")
	assert.False(t, ok)
	_, ok = r.Lookup(shapes.Mesh, "good.obj")
	assert.True(t, ok)
}

func TestRegisterMeshesJoinsEveryError(t *testing.T) {
	loader := func(path string, _ shapes.Layout) (shapes.Shape, error) {
		return nil, errors.New("broken")
	}
	r := New(shapes.LayoutPN, WithMeshLoader(loader))

	err := r.RegisterMeshes([]string{"a.obj", "b.obj"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.obj")
	assert.Contains(t, err.Error(), "b.obj")
}

func TestShapePanicsOnUnknownMesh(t *testing.T) {
	r := New(shapes.LayoutPNTT)

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		err, ok := rec.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrMeshNotRegistered)
		assert.Contains(t, err.Error(), "missing.obj")
	}()
	r.Shape(shapes.Mesh, "missing.obj")
}

func TestLookupBuiltinIgnoresMeshFile(t *testing.T) {
	r := New(shapes.LayoutPNTT)
	s, ok := r.Lookup(shapes.Cone, "ignored.obj")
	require.True(t, ok)
	assert.Equal(t, shapes.Cone, s.Kind())
}

func TestResetAndClose(t *testing.T) {
	up := &recordingUploader{}
	r := New(shapes.LayoutPN, WithMeshLoader(triangleMesh), WithUploader(up))
	r.Regenerate(shapes.Params{Param1: 1, Param2: 3})
	require.NoError(t, r.RegisterMeshes([]string{"m.obj"}))

	r.Reset()
	assert.Empty(t, r.Meshes())
	assert.Equal(t, []Key{{Kind: shapes.Mesh, MeshFile: "m.obj"}}, up.released)
	_, ok := r.Lookup(shapes.Cube, "")
	assert.True(t, ok, "built-ins survive a reset")

	up.released = nil
	r.Close()
	assert.Len(t, up.released, len(shapes.Kinds))
}

func TestLoadOBJFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	obj := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	require.NoError(t, os.WriteFile(path, []byte(obj), 0644))

	r := New(shapes.LayoutPNTT)
	require.NoError(t, r.RegisterMeshes([]string{path}))
	assert.Equal(t, int32(6), r.VertexCount(shapes.Mesh, path))

	data := r.Shape(shapes.Mesh, path).VertexData()
	// Recovered normal of the first vertex faces +Z.
	assert.InDelta(t, 1.0, data[5], 1e-6)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "sphere", Key{Kind: shapes.Sphere}.String())
	assert.Equal(t, "mesh:a.obj", Key{Kind: shapes.Mesh, MeshFile: "a.obj"}.String())
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, Key{Kind: shapes.Cube}, KeyFor(shapes.Cube, "stray.obj"))
	assert.Equal(t, Key{Kind: shapes.Mesh, MeshFile: "m.obj"}, KeyFor(shapes.Mesh, "m.obj"))
}
