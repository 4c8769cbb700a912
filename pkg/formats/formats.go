// Package formats decodes the files the viewer reads from disk: Wavefront
// OBJ meshes and scene descriptions in YAML, JSON or TOML.
package formats
