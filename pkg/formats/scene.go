package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// Scene file errors.
var (
	ErrUnsupportedSceneFormat = errors.New("unsupported scene file format")
	ErrUnknownPrimitive       = errors.New("unknown primitive type")
	ErrUnknownLight           = errors.New("unknown light type")
	ErrInvalidTransform       = errors.New("invalid transformation")
	ErrInvalidVector          = errors.New("invalid vector")
	ErrMissingRoot            = errors.New("scene has no root node")
)

// sceneFile mirrors the on-disk layout of a scene description. The same
// tags serve YAML, JSON (parsed as YAML) and TOML.
type sceneFile struct {
	Globals struct {
		Ka float32 `yaml:"ka" toml:"ka"`
		Kd float32 `yaml:"kd" toml:"kd"`
		Ks float32 `yaml:"ks" toml:"ks"`
		Kt float32 `yaml:"kt" toml:"kt"`
	} `yaml:"globals" toml:"globals"`

	Camera struct {
		Position    []float32 `yaml:"position" toml:"position"`
		Look        []float32 `yaml:"look" toml:"look"`
		Focus       []float32 `yaml:"focus" toml:"focus"`
		Up          []float32 `yaml:"up" toml:"up"`
		HeightAngle float32   `yaml:"heightAngle" toml:"heightAngle"`
		Aperture    float32   `yaml:"aperture" toml:"aperture"`
		FocalLength float32   `yaml:"focalLength" toml:"focalLength"`
	} `yaml:"camera" toml:"camera"`

	Root *nodeFile `yaml:"root" toml:"root"`
}

type nodeFile struct {
	Name       string          `yaml:"name" toml:"name"`
	Transforms []transformFile `yaml:"transforms" toml:"transforms"`
	Primitives []primitiveFile `yaml:"primitives" toml:"primitives"`
	Lights     []lightFile     `yaml:"lights" toml:"lights"`
	Children   []*nodeFile     `yaml:"children" toml:"children"`
}

// transformFile holds exactly one of its fields.
type transformFile struct {
	Translate []float32   `yaml:"translate" toml:"translate"`
	Scale     []float32   `yaml:"scale" toml:"scale"`
	Rotate    *rotateFile `yaml:"rotate" toml:"rotate"`
	Matrix    []float32   `yaml:"matrix" toml:"matrix"`
}

type rotateFile struct {
	Axis  []float32 `yaml:"axis" toml:"axis"`
	Angle float32   `yaml:"angle" toml:"angle"` // degrees
}

type primitiveFile struct {
	Type       string       `yaml:"type" toml:"type"`
	MeshFile   string       `yaml:"meshFile" toml:"meshFile"`
	Ambient    []float32    `yaml:"ambient" toml:"ambient"`
	Diffuse    []float32    `yaml:"diffuse" toml:"diffuse"`
	Specular   []float32    `yaml:"specular" toml:"specular"`
	Reflective []float32    `yaml:"reflective" toml:"reflective"`
	Shininess  float32      `yaml:"shininess" toml:"shininess"`
	Blend      float32      `yaml:"blend" toml:"blend"`
	TextureMap *textureFile `yaml:"textureMap" toml:"textureMap"`
	NormalMap  *textureFile `yaml:"normalMap" toml:"normalMap"`
	BumpMap    *textureFile `yaml:"bumpMap" toml:"bumpMap"`
}

type textureFile struct {
	File    string   `yaml:"file" toml:"file"`
	RepeatU *float32 `yaml:"repeatU" toml:"repeatU"`
	RepeatV *float32 `yaml:"repeatV" toml:"repeatV"`
}

type lightFile struct {
	ID          int       `yaml:"id" toml:"id"`
	Type        string    `yaml:"type" toml:"type"`
	Color       []float32 `yaml:"color" toml:"color"`
	Attenuation []float32 `yaml:"attenuationCoeff" toml:"attenuationCoeff"`
	Direction   []float32 `yaml:"direction" toml:"direction"`
	Angle       float32   `yaml:"angle" toml:"angle"`       // degrees
	Penumbra    float32   `yaml:"penumbra" toml:"penumbra"` // degrees
}

// LoadScene reads a scene file. The format follows the extension: .yaml,
// .yml and .json are decoded as YAML, .toml as TOML. Relative mesh and
// texture paths are resolved against the scene file's directory.
func LoadScene(path string) (*scenegraph.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	scene, err := DecodeScene(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	resolvePaths(scene.Root, filepath.Dir(path))
	return scene, nil
}

// DecodeScene decodes scene data in the format named by ext.
func DecodeScene(data []byte, ext string) (*scenegraph.Scene, error) {
	var f sceneFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing YAML scene: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing TOML scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSceneFormat, ext)
	}
	return f.build()
}

func (f *sceneFile) build() (*scenegraph.Scene, error) {
	if f.Root == nil {
		return nil, ErrMissingRoot
	}

	s := &scenegraph.Scene{
		Globals: scenegraph.GlobalData{
			Ka: f.Globals.Ka,
			Kd: f.Globals.Kd,
			Ks: f.Globals.Ks,
			Kt: f.Globals.Kt,
		},
	}

	cam := f.Camera
	pos, err := vec3(cam.Position, "camera.position", math.Vec3{Z: 5})
	if err != nil {
		return nil, err
	}
	up, err := vec3(cam.Up, "camera.up", math.Vec3{Y: 1})
	if err != nil {
		return nil, err
	}
	var look math.Vec3
	if len(cam.Focus) > 0 {
		focus, err := vec3(cam.Focus, "camera.focus", math.Vec3{})
		if err != nil {
			return nil, err
		}
		look = focus.Sub(pos)
	} else if look, err = vec3(cam.Look, "camera.look", math.Vec3{Z: -1}); err != nil {
		return nil, err
	}
	heightAngle := cam.HeightAngle
	if heightAngle == 0 {
		heightAngle = 45
	}
	s.Camera = scenegraph.CameraData{
		Pos:         pos.Vec4(1),
		Look:        look.Vec4(0),
		Up:          up.Vec4(0),
		HeightAngle: radians(heightAngle),
		Aperture:    cam.Aperture,
		FocalLength: cam.FocalLength,
	}

	root, err := f.Root.build("root")
	if err != nil {
		return nil, err
	}
	s.Root = root
	return s, nil
}

func (n *nodeFile) build(where string) (*scenegraph.Node, error) {
	if n.Name != "" {
		where = n.Name
	}
	node := &scenegraph.Node{}

	for i, t := range n.Transforms {
		tr, err := t.build()
		if err != nil {
			return nil, fmt.Errorf("%s: transform %d: %w", where, i, err)
		}
		node.Transformations = append(node.Transformations, tr)
	}
	for i, p := range n.Primitives {
		prim, err := p.build()
		if err != nil {
			return nil, fmt.Errorf("%s: primitive %d: %w", where, i, err)
		}
		node.Primitives = append(node.Primitives, prim)
	}
	for i, l := range n.Lights {
		light, err := l.build()
		if err != nil {
			return nil, fmt.Errorf("%s: light %d: %w", where, i, err)
		}
		node.Lights = append(node.Lights, light)
	}
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		child, err := c.build(fmt.Sprintf("%s/%d", where, i))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (t transformFile) build() (scenegraph.Transformation, error) {
	set := 0
	var out scenegraph.Transformation
	var err error

	if t.Translate != nil {
		set++
		out.Kind = scenegraph.Translate
		out.Translate, err = vec3(t.Translate, "translate", math.Vec3{})
	}
	if t.Scale != nil {
		set++
		out.Kind = scenegraph.Scale
		out.Scale, err = vec3(t.Scale, "scale", math.Vec3{})
	}
	if t.Rotate != nil {
		set++
		out.Kind = scenegraph.Rotate
		out.Axis, err = vec3(t.Rotate.Axis, "rotate.axis", math.Vec3{})
		out.Angle = radians(t.Rotate.Angle)
	}
	if t.Matrix != nil {
		set++
		out.Kind = scenegraph.Matrix
		if len(t.Matrix) != 16 {
			err = fmt.Errorf("%w: matrix needs 16 values, got %d", ErrInvalidTransform, len(t.Matrix))
		} else {
			out.Raw = math.FromRows([16]float32(t.Matrix))
		}
	}

	if err != nil {
		return out, err
	}
	if set != 1 {
		return out, fmt.Errorf("%w: expected exactly one of translate, scale, rotate, matrix", ErrInvalidTransform)
	}
	return out, nil
}

func (p primitiveFile) build() (scenegraph.Primitive, error) {
	kind, err := shapes.ParseKind(strings.ToLower(p.Type))
	if err != nil {
		return scenegraph.Primitive{}, fmt.Errorf("%w: %q", ErrUnknownPrimitive, p.Type)
	}
	if kind == shapes.Mesh && p.MeshFile == "" {
		return scenegraph.Primitive{}, fmt.Errorf("%w: mesh without meshFile", ErrUnknownPrimitive)
	}

	m := scenegraph.Material{Shininess: p.Shininess, Blend: p.Blend}
	for _, c := range []struct {
		dst  *scenegraph.Color
		src  []float32
		name string
	}{
		{&m.Ambient, p.Ambient, "ambient"},
		{&m.Diffuse, p.Diffuse, "diffuse"},
		{&m.Specular, p.Specular, "specular"},
		{&m.Reflective, p.Reflective, "reflective"},
	} {
		if *c.dst, err = color(c.src, c.name); err != nil {
			return scenegraph.Primitive{}, err
		}
	}
	m.Texture = p.TextureMap.build()
	m.Normal = p.NormalMap.build()
	m.Bump = p.BumpMap.build()

	return scenegraph.Primitive{Kind: kind, MeshFile: p.MeshFile, Material: m}, nil
}

func (t *textureFile) build() scenegraph.TextureMap {
	if t == nil || t.File == "" {
		return scenegraph.TextureMap{}
	}
	tm := scenegraph.TextureMap{Used: true, Filename: t.File, RepeatU: 1, RepeatV: 1}
	if t.RepeatU != nil {
		tm.RepeatU = *t.RepeatU
	}
	if t.RepeatV != nil {
		tm.RepeatV = *t.RepeatV
	}
	return tm
}

func (l lightFile) build() (scenegraph.Light, error) {
	var kind scenegraph.LightKind
	switch strings.ToLower(l.Type) {
	case "point":
		kind = scenegraph.PointLight
	case "directional":
		kind = scenegraph.DirectionalLight
	case "spot":
		kind = scenegraph.SpotLight
	default:
		return scenegraph.Light{}, fmt.Errorf("%w: %q", ErrUnknownLight, l.Type)
	}

	c, err := color(l.Color, "color")
	if err != nil {
		return scenegraph.Light{}, err
	}
	att, err := vec3(l.Attenuation, "attenuationCoeff", math.Vec3{X: 1})
	if err != nil {
		return scenegraph.Light{}, err
	}
	dir, err := vec3(l.Direction, "direction", math.Vec3{Z: -1})
	if err != nil {
		return scenegraph.Light{}, err
	}

	return scenegraph.Light{
		ID:       l.ID,
		Kind:     kind,
		Color:    c,
		Function: att,
		Dir:      dir,
		Angle:    radians(l.Angle),
		Penumbra: radians(l.Penumbra),
	}, nil
}

// resolvePaths joins relative file references with dir.
func resolvePaths(n *scenegraph.Node, dir string) {
	if n == nil {
		return
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range n.Primitives {
		p := &n.Primitives[i]
		p.MeshFile = join(p.MeshFile)
		p.Material.Texture.Filename = join(p.Material.Texture.Filename)
		p.Material.Normal.Filename = join(p.Material.Normal.Filename)
		p.Material.Bump.Filename = join(p.Material.Bump.Filename)
	}
	for _, c := range n.Children {
		resolvePaths(c, dir)
	}
}

func vec3(v []float32, name string, def math.Vec3) (math.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	}
	return math.Vec3{}, fmt.Errorf("%w: %s needs 3 values, got %d", ErrInvalidVector, name, len(v))
}

// color accepts RGB or RGBA. Alpha defaults to 1; a missing color is black.
func color(v []float32, name string) (scenegraph.Color, error) {
	switch len(v) {
	case 0:
		return scenegraph.Color{}, nil
	case 3:
		return scenegraph.Color{v[0], v[1], v[2], 1}, nil
	case 4:
		return scenegraph.Color{v[0], v[1], v[2], v[3]}, nil
	}
	return scenegraph.Color{}, fmt.Errorf("%w: %s needs 3 or 4 values, got %d", ErrInvalidVector, name, len(v))
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
