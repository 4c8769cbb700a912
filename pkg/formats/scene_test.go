package formats

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
	"github.com/Faultbox/tessera/pkg/shapes"
)

func TestLoadScene_Formats(t *testing.T) {
	for _, name := range []string{"scene.yaml", "scene.toml", "scene.json"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScene(filepath.Join("testdata", name))
			require.NoError(t, err)
			checkTestScene(t, s)
		})
	}
}

func checkTestScene(t *testing.T, s *scenegraph.Scene) {
	t.Helper()

	assert.Equal(t, scenegraph.GlobalData{Ka: 0.5, Kd: 0.5, Ks: 0.5}, s.Globals)
	assert.Equal(t, math.Vec4{0, 2, 6, 1}, s.Camera.Pos)
	assert.Equal(t, math.Vec4{0, -0.3, -1, 0}, s.Camera.Look)
	assert.InDelta(t, 0.5235988, s.Camera.HeightAngle, 1e-6)

	root := s.Root
	require.NotNil(t, root)
	require.Len(t, root.Lights, 1)
	assert.Equal(t, scenegraph.DirectionalLight, root.Lights[0].Kind)
	require.Len(t, root.Children, 2)

	lamp := root.Children[0]
	require.Len(t, lamp.Lights, 1)
	spot := lamp.Lights[0]
	assert.Equal(t, scenegraph.SpotLight, spot.Kind)
	assert.Equal(t, 1, spot.ID)
	assert.Equal(t, math.Vec3{X: 1, Y: 0.1, Z: 0.01}, spot.Function)
	assert.InDelta(t, 0.5235988, spot.Angle, 1e-6)
	assert.InDelta(t, 0.0872665, spot.Penumbra, 1e-6)

	group := root.Children[1]
	require.Len(t, group.Transformations, 3)
	assert.Equal(t, scenegraph.Translate, group.Transformations[0].Kind)
	assert.Equal(t, scenegraph.Rotate, group.Transformations[1].Kind)
	assert.InDelta(t, 1.5707964, group.Transformations[1].Angle, 1e-6)
	assert.Equal(t, scenegraph.Scale, group.Transformations[2].Kind)

	require.Len(t, group.Primitives, 2)
	sphere := group.Primitives[0]
	assert.Equal(t, shapes.Sphere, sphere.Kind)
	assert.Equal(t, scenegraph.Color{1, 0, 0, 1}, sphere.Material.Diffuse)
	assert.Equal(t, float32(25), sphere.Material.Shininess)
	assert.True(t, sphere.Material.Texture.Used)
	assert.Equal(t, filepath.Join("testdata", "textures", "earth.png"), sphere.Material.Texture.Filename)
	assert.Equal(t, float32(2), sphere.Material.Texture.RepeatU)
	assert.Equal(t, float32(1), sphere.Material.Texture.RepeatV)
	assert.False(t, sphere.Material.Normal.Used)

	mesh := group.Primitives[1]
	assert.Equal(t, shapes.Mesh, mesh.Kind)
	assert.Equal(t, filepath.Join("testdata", "meshes", "tri.obj"), mesh.MeshFile)
}

func TestLoadScene_Flattens(t *testing.T) {
	s, err := LoadScene(filepath.Join("testdata", "scene.yaml"))
	require.NoError(t, err)

	data := scenegraph.Build(s)
	require.Len(t, data.Shapes, 2)
	require.Len(t, data.Lights, 2)
	assert.Equal(t, math.Vec4{0, 5, 0, 1}, data.Lights[1].Pos)
	assert.Equal(t, []string{filepath.Join("testdata", "meshes", "tri.obj")}, data.MeshFiles())

	// translate(1,0,0) * rotateY(90) * scale(2): local +X lands at (1, 0, -2).
	p := data.Shapes[0].CTM.TransformPoint(math.Vec3{X: 1})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, -2, p.Z, 1e-5)
}

func TestDecodeScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		ext     string
		wantErr error
	}{
		{"unknown ext", "root: {}", ".ini", ErrUnsupportedSceneFormat},
		{"no root", "globals: {ka: 1}", ".yaml", ErrMissingRoot},
		{"unknown primitive", "root: {primitives: [{type: torus}]}", ".yaml", ErrUnknownPrimitive},
		{"mesh without file", "root: {primitives: [{type: mesh}]}", ".yaml", ErrUnknownPrimitive},
		{"unknown light", "root: {lights: [{type: area}]}", ".yaml", ErrUnknownLight},
		{"two transforms in one", "root: {transforms: [{translate: [1,0,0], scale: [1,1,1]}]}", ".yaml", ErrInvalidTransform},
		{"empty transform", "root: {transforms: [{}]}", ".yaml", ErrInvalidTransform},
		{"short matrix", "root: {transforms: [{matrix: [1, 0, 0]}]}", ".yaml", ErrInvalidTransform},
		{"short vector", "root: {transforms: [{translate: [1, 0]}]}", ".yaml", ErrInvalidVector},
		{"bad color", "root: {primitives: [{type: cube, diffuse: [1]}]}", ".yaml", ErrInvalidVector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeScene([]byte(tt.data), tt.ext)
			require.Error(t, err)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeScene_MatrixAndFocus(t *testing.T) {
	src := `
camera:
  position: [0, 0, 4]
  focus: [0, 0, 0]
root:
  transforms:
    - matrix: [1, 0, 0, 3,
               0, 1, 0, 0,
               0, 0, 1, 0,
               0, 0, 0, 1]
  primitives:
    - type: cube
`
	s, err := DecodeScene([]byte(src), ".yml")
	require.NoError(t, err)
	assert.Equal(t, math.Vec4{0, 0, -4, 0}, s.Camera.Look)
	assert.InDelta(t, 0.7853982, s.Camera.HeightAngle, 1e-6)
	assert.Equal(t, math.Translate(3, 0, 0), s.Root.Transformations[0].Raw)
}

func TestLoadScene_Missing(t *testing.T) {
	_, err := LoadScene(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}
