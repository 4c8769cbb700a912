// Package scenegraph holds the parsed scene description and flattens its
// transform hierarchy into the render lists the renderer draws from.
package scenegraph

import (
	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// Color is an RGBA color.
type Color = math.Vec4

// GlobalData holds the scene-wide lighting coefficients.
type GlobalData struct {
	Ka float32 // ambient
	Kd float32 // diffuse
	Ks float32 // specular
	Kt float32 // transparency
}

// CameraData describes the scene camera. HeightAngle is in radians.
type CameraData struct {
	Pos         math.Vec4
	Look        math.Vec4
	Up          math.Vec4
	HeightAngle float32
	Aperture    float32
	FocalLength float32
}

// TransformationKind selects the payload of a Transformation.
type TransformationKind int

const (
	Translate TransformationKind = iota
	Scale
	Rotate
	Matrix
)

func (k TransformationKind) String() string {
	switch k {
	case Translate:
		return "translate"
	case Scale:
		return "scale"
	case Rotate:
		return "rotate"
	case Matrix:
		return "matrix"
	}
	return "unknown"
}

// Transformation is one entry of a node's transform list.
type Transformation struct {
	Kind      TransformationKind
	Translate math.Vec3
	Scale     math.Vec3
	Axis      math.Vec3
	Angle     float32 // radians
	Raw       math.Mat4
}

// Mat4 returns the matrix the transformation contributes to the CTM.
func (t Transformation) Mat4() math.Mat4 {
	switch t.Kind {
	case Translate:
		return math.TranslateVec(t.Translate)
	case Scale:
		return math.ScaleVec(t.Scale)
	case Rotate:
		return math.RotateAxis(t.Axis, t.Angle)
	case Matrix:
		return t.Raw
	}
	return math.Identity()
}

// TextureMap references an image applied to a material.
type TextureMap struct {
	Used     bool
	Filename string
	RepeatU  float32
	RepeatV  float32
}

// Material holds the Phong coefficients of a primitive.
type Material struct {
	Ambient    Color
	Diffuse    Color
	Specular   Color
	Reflective Color
	Shininess  float32
	Blend      float32 // texture blend, 0 = material only, 1 = texture only

	Texture TextureMap
	Normal  TextureMap
	Bump    TextureMap
}

// Primitive is a shape reference in the tree. MeshFile is set for
// shapes.Mesh only.
type Primitive struct {
	Kind     shapes.Kind
	MeshFile string
	Material Material
}

// LightKind is the type of a light source.
type LightKind int

const (
	PointLight LightKind = iota
	DirectionalLight
	SpotLight
)

func (k LightKind) String() string {
	switch k {
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	case SpotLight:
		return "spot"
	}
	return "unknown"
}

// Light is a light declared in node-local space. Angles are in radians.
type Light struct {
	ID       int
	Kind     LightKind
	Color    Color
	Function math.Vec3 // constant, linear, quadratic attenuation
	Dir      math.Vec3
	Penumbra float32
	Angle    float32
}

// Node is one node of the scene tree. The tree must be acyclic.
type Node struct {
	Transformations []Transformation
	Primitives      []Primitive
	Lights          []Light
	Children        []*Node
}

// Scene is a parsed scene file.
type Scene struct {
	Globals GlobalData
	Camera  CameraData
	Root    *Node
}

// RenderShape pairs a primitive with its world transform.
type RenderShape struct {
	Primitive Primitive
	CTM       math.Mat4
}

// RenderLight is a light in world space. Pos is set for point and spot
// lights, Dir for spot and directional lights, Angle and Penumbra for
// spot lights only.
type RenderLight struct {
	ID       int
	Kind     LightKind
	Color    Color
	Function math.Vec3
	Pos      math.Vec4
	Dir      math.Vec4
	Penumbra float32
	Angle    float32
}

// RenderData is everything the renderer needs for one scene.
type RenderData struct {
	Globals GlobalData
	Camera  CameraData
	Shapes  []RenderShape
	Lights  []RenderLight
}
