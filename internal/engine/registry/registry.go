// Package registry owns one vertex buffer per built-in primitive and one per
// imported mesh file, and hands them to the GPU layer.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/tessera/internal/logger"
	"github.com/Faultbox/tessera/pkg/formats"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// ErrMeshNotRegistered is wrapped by the panic raised when an unregistered
// mesh is looked up.
var ErrMeshNotRegistered = errors.New("mesh not registered")

// Key identifies a buffer. MeshFile is empty for built-in kinds.
type Key struct {
	Kind     shapes.Kind
	MeshFile string
}

// KeyFor returns the buffer key of a primitive. The mesh file is dropped
// for built-in kinds.
func KeyFor(kind shapes.Kind, meshFile string) Key {
	if kind != shapes.Mesh {
		meshFile = ""
	}
	return Key{Kind: kind, MeshFile: meshFile}
}

func (k Key) String() string {
	if k.Kind == shapes.Mesh {
		return "mesh:" + k.MeshFile
	}
	return k.Kind.String()
}

// MeshLoader turns a mesh file into a Shape.
type MeshLoader func(path string, layout shapes.Layout) (shapes.Shape, error)

// Uploader receives buffers after they are (re)generated. Upload is always
// called after the shape's UpdateVertexData returned.
type Uploader interface {
	Upload(key Key, s shapes.Shape)
	Release(key Key)
}

// Option configures a Registry.
type Option func(*Registry)

// WithMeshLoader replaces the OBJ loader.
func WithMeshLoader(l MeshLoader) Option {
	return func(r *Registry) { r.loader = l }
}

// WithUploader attaches the GPU layer.
func WithUploader(u Uploader) Option {
	return func(r *Registry) { r.uploader = u }
}

// Registry maps primitive kinds and mesh files to their shapes.
type Registry struct {
	layout   shapes.Layout
	builtins map[shapes.Kind]shapes.Shape
	meshes   map[string]shapes.Shape
	loader   MeshLoader
	uploader Uploader
	params   shapes.Params
}

// New creates a registry with empty generators for every built-in kind.
// Call Regenerate before drawing.
func New(layout shapes.Layout, opts ...Option) *Registry {
	r := &Registry{
		layout:   layout,
		builtins: make(map[shapes.Kind]shapes.Shape, len(shapes.Kinds)),
		meshes:   make(map[string]shapes.Shape),
		loader:   LoadOBJ,
	}
	for _, k := range shapes.Kinds {
		r.builtins[k] = shapes.New(k, layout)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadOBJ is the default MeshLoader.
func LoadOBJ(path string, layout shapes.Layout) (shapes.Shape, error) {
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	m, isolated := obj.Mesh(path, layout)
	if isolated > 0 {
		logger.Warn("mesh has vertices without faces",
			zap.String("file", path),
			zap.Int("count", isolated))
	}
	return m, nil
}

// Layout returns the vertex layout of every buffer.
func (r *Registry) Layout() shapes.Layout { return r.layout }

// Params returns the parameters of the last Regenerate call.
func (r *Registry) Params() shapes.Params { return r.params }

// Regenerate rebuilds every built-in primitive. Meshes are untouched.
func (r *Registry) Regenerate(p shapes.Params) {
	r.params = p
	for _, k := range shapes.Kinds {
		s := r.builtins[k]
		s.UpdateVertexData(p.Param1, p.Param2)
		r.upload(Key{Kind: k}, s)
	}
	logger.Debug("regenerated primitives",
		zap.Int("param1", p.Param1),
		zap.Int("param2", p.Param2))
}

// RegisterMeshes loads every file not seen before. A file that fails to
// load stays unregistered; every load error is joined into the returned
// error once all files were tried.
func (r *Registry) RegisterMeshes(files []string) error {
	var errs []error
	for _, f := range files {
		if _, ok := r.meshes[f]; ok {
			continue
		}
		s, err := r.loader(f, r.layout)
		if err != nil {
			errs = append(errs, fmt.Errorf("loading mesh %s: %w", f, err))
			continue
		}
		s.UpdateVertexData(0, 0)
		r.meshes[f] = s
		r.upload(Key{Kind: shapes.Mesh, MeshFile: f}, s)

		logger.Debug("registered mesh",
			zap.String("file", f),
			zap.Int("vertices", shapes.Stats(s).Vertices))
	}
	return errors.Join(errs...)
}

// Lookup returns the shape for kind, or false for an unregistered mesh.
func (r *Registry) Lookup(kind shapes.Kind, meshFile string) (shapes.Shape, bool) {
	if kind == shapes.Mesh {
		s, ok := r.meshes[meshFile]
		return s, ok
	}
	s, ok := r.builtins[kind]
	return s, ok
}

// Shape returns the shape for kind. Looking up a mesh that was never
// registered is a programming error and panics.
func (r *Registry) Shape(kind shapes.Kind, meshFile string) shapes.Shape {
	s, ok := r.Lookup(kind, meshFile)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrMeshNotRegistered, Key{Kind: kind, MeshFile: meshFile}))
	}
	return s
}

// VertexCount returns the number of vertices to draw for a shape.
func (r *Registry) VertexCount(kind shapes.Kind, meshFile string) int32 {
	s := r.Shape(kind, meshFile)
	return int32(len(s.VertexData()) / s.Layout().Stride())
}

// Meshes returns the registered mesh files in sorted order.
func (r *Registry) Meshes() []string {
	files := make([]string, 0, len(r.meshes))
	for f := range r.meshes {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Reset drops every mesh and releases its GPU resources. Built-in
// primitives are kept.
func (r *Registry) Reset() {
	for f := range r.meshes {
		if r.uploader != nil {
			r.uploader.Release(Key{Kind: shapes.Mesh, MeshFile: f})
		}
	}
	r.meshes = make(map[string]shapes.Shape)
	logger.Debug("dropped meshes")
}

// Close releases every GPU resource.
func (r *Registry) Close() {
	r.Reset()
	if r.uploader == nil {
		return
	}
	for _, k := range shapes.Kinds {
		r.uploader.Release(Key{Kind: k})
	}
}

func (r *Registry) upload(k Key, s shapes.Shape) {
	if r.uploader != nil {
		r.uploader.Upload(k, s)
	}
}
