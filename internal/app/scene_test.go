package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tessera/internal/engine/registry"
	"github.com/Faultbox/tessera/pkg/shapes"
)

const testScene = `
camera:
  position: [0, 0, 5]
  look: [0, 0, -1]
  up: [0, 1, 0]
  heightAngle: 45
root:
  lights:
    - type: point
      color: [1, 1, 1]
  primitives:
    - type: sphere
      textureMap: {file: earth.png}
    - type: mesh
      meshFile: tri.obj
    - type: mesh
      meshFile: missing.obj
`

const testMesh = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func writeScene(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScene), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(testMesh), 0644))
	return dir, path
}

func TestLoadSceneDropsMissingMeshes(t *testing.T) {
	dir, path := writeScene(t)
	reg := registry.New(shapes.LayoutPNTT)
	reg.Regenerate(shapes.Params{Param1: 2, Param2: 3})

	s, err := loadScene(path, reg)
	require.NoError(t, err)

	require.Len(t, s.data.Shapes, 2)
	assert.Equal(t, shapes.Sphere, s.data.Shapes[0].Primitive.Kind)
	assert.Equal(t, filepath.Join(dir, "tri.obj"), s.data.Shapes[1].Primitive.MeshFile)
	assert.Len(t, s.data.Lights, 1)
	assert.Equal(t, []string{filepath.Join(dir, "tri.obj")}, reg.Meshes())
}

func TestLoadSceneWatchList(t *testing.T) {
	dir, path := writeScene(t)
	reg := registry.New(shapes.LayoutPNT)

	s, err := loadScene(path, reg)
	require.NoError(t, err)

	assert.Equal(t, []string{
		path,
		filepath.Join(dir, "tri.obj"),
		filepath.Join(dir, "missing.obj"),
		filepath.Join(dir, "earth.png"),
	}, s.files)
}

func TestLoadSceneReloadsMeshes(t *testing.T) {
	dir, path := writeScene(t)
	calls := 0
	reg := registry.New(shapes.LayoutPN, registry.WithMeshLoader(func(p string, l shapes.Layout) (shapes.Shape, error) {
		calls++
		return registry.LoadOBJ(p, l)
	}))

	_, err := loadScene(path, reg)
	require.NoError(t, err)
	_, err = loadScene(path, reg)
	require.NoError(t, err)

	// tri.obj loads twice, missing.obj is attempted twice.
	assert.Equal(t, 4, calls)
	assert.Equal(t, []string{filepath.Join(dir, "tri.obj")}, reg.Meshes())
}

func TestLoadSceneParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: [unclosed"), 0644))

	_, err := loadScene(path, registry.New(shapes.LayoutPN))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestVertexCount(t *testing.T) {
	_, path := writeScene(t)
	reg := registry.New(shapes.LayoutPN)
	reg.Regenerate(shapes.Params{Param1: 2, Param2: 4})

	s, err := loadScene(path, reg)
	require.NoError(t, err)

	sphere := shapes.Stats(reg.Shape(shapes.Sphere, "")).Vertices
	assert.Equal(t, sphere+3, vertexCount(reg, s.data.Shapes))
}
