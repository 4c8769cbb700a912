package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tessera/internal/engine/registry"
	"github.com/Faultbox/tessera/internal/engine/texture"
	"github.com/Faultbox/tessera/internal/logger"
	"github.com/Faultbox/tessera/pkg/formats"
	"github.com/Faultbox/tessera/pkg/scenegraph"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// loadedScene is a parsed scene ready for drawing.
type loadedScene struct {
	data scenegraph.RenderData
	// files lists the scene file and every mesh and texture it references.
	files []string
}

// loadScene parses path, flattens it and registers its meshes with reg.
// Meshes from a previous scene are dropped first so edited files reload.
// Shapes whose mesh did not load are removed from the render list.
func loadScene(path string, reg *registry.Registry) (*loadedScene, error) {
	s, err := formats.LoadScene(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}
	data := scenegraph.Build(s)

	reg.Reset()
	meshes := data.MeshFiles()
	if err := reg.RegisterMeshes(meshes); err != nil {
		logger.Warn("some meshes failed to load", zap.Error(err))
	}

	kept := data.Shapes[:0]
	for _, sh := range data.Shapes {
		if _, ok := reg.Lookup(sh.Primitive.Kind, sh.Primitive.MeshFile); !ok {
			continue
		}
		kept = append(kept, sh)
	}
	if dropped := len(data.Shapes) - len(kept); dropped > 0 {
		logger.Warn("skipping shapes without a mesh", zap.Int("count", dropped))
	}
	data.Shapes = kept

	files := append([]string{path}, meshes...)
	files = append(files, texture.Files(data.Shapes)...)

	logger.Info("scene loaded",
		zap.String("file", path),
		zap.Int("shapes", len(data.Shapes)),
		zap.Int("lights", len(data.Lights)),
		zap.Int("meshes", len(reg.Meshes())))

	return &loadedScene{data: data, files: files}, nil
}

// vertexCount sums the vertices drawn for a render list.
func vertexCount(reg *registry.Registry, list []scenegraph.RenderShape) int {
	n := 0
	for _, sh := range list {
		if s, ok := reg.Lookup(sh.Primitive.Kind, sh.Primitive.MeshFile); ok {
			n += shapes.Stats(s).Vertices
		}
	}
	return n
}
