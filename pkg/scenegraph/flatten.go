package scenegraph

import (
	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// Flatten walks the tree depth-first, pre-order, and returns every primitive
// and light with the composite transform of its node. Each node's own
// transformations are multiplied on the right of the inherited CTM in
// declared order. A nil root yields empty lists.
func Flatten(root *Node) ([]RenderShape, []RenderLight) {
	var f flattener
	if root != nil {
		f.visit(root, math.Identity())
	}
	return f.shapes, f.lights
}

type flattener struct {
	shapes []RenderShape
	lights []RenderLight
}

func (f *flattener) visit(n *Node, ctm math.Mat4) {
	for _, t := range n.Transformations {
		ctm = ctm.Mul(t.Mat4())
	}

	for _, p := range n.Primitives {
		f.shapes = append(f.shapes, RenderShape{Primitive: p, CTM: ctm})
	}
	for _, l := range n.Lights {
		f.lights = append(f.lights, worldLight(l, ctm))
	}

	for _, c := range n.Children {
		f.visit(c, ctm)
	}
}

func worldLight(l Light, ctm math.Mat4) RenderLight {
	out := RenderLight{
		ID:       l.ID,
		Kind:     l.Kind,
		Color:    l.Color,
		Function: l.Function,
	}
	if l.Kind == PointLight || l.Kind == SpotLight {
		out.Pos = ctm.MulVec4(math.Vec4{0, 0, 0, 1})
	}
	if l.Kind == SpotLight || l.Kind == DirectionalLight {
		out.Dir = ctm.MulVec4(l.Dir.Vec4(0))
	}
	if l.Kind == SpotLight {
		out.Angle = l.Angle
		out.Penumbra = l.Penumbra
	}
	return out
}

// Build flattens the scene and copies its global and camera data.
func Build(s *Scene) RenderData {
	shapes, lights := Flatten(s.Root)
	return RenderData{
		Globals: s.Globals,
		Camera:  s.Camera,
		Shapes:  shapes,
		Lights:  lights,
	}
}

// MeshFiles returns the distinct mesh files referenced by the render list,
// in first-seen order.
func (d RenderData) MeshFiles() []string {
	var files []string
	seen := make(map[string]bool)
	for _, s := range d.Shapes {
		p := s.Primitive
		if p.Kind != shapes.Mesh || p.MeshFile == "" || seen[p.MeshFile] {
			continue
		}
		seen[p.MeshFile] = true
		files = append(files, p.MeshFile)
	}
	return files
}
