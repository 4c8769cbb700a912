package shapes

// Info summarizes a generated buffer.
type Info struct {
	Kind   Kind
	Layout Layout
	// Name is the source file of a mesh, empty for primitives.
	Name string
	// Params are the values the last tessellation used after clamping.
	// Zero for meshes.
	Params    Params
	Floats    int
	Vertices  int
	Triangles int
}

// Stats reports the size of the shape's current buffer.
func Stats(s Shape) Info {
	floats := len(s.VertexData())
	verts := floats / s.Layout().Stride()
	info := Info{
		Kind:      s.Kind(),
		Layout:    s.Layout(),
		Floats:    floats,
		Vertices:  verts,
		Triangles: verts / 3,
	}
	if n, ok := s.(interface{ Name() string }); ok {
		info.Name = n.Name()
	}
	if c, ok := s.(interface{ Clamped() Params }); ok {
		info.Params = c.Clamped()
	}
	return info
}
