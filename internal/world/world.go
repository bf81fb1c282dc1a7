// Package world loads host scenes from disk and serves them to the
// exporter.
package world

import (
	"scene2three/internal/engine"
	"scene2three/internal/gltfexport"
)

// World is a loaded host scene. It is both the scene source and the mesh
// exporter of an export run.
type World struct {
	Path  string
	scene *engine.Scene
	glb   *gltfexport.Exporter
}

// New wraps an already built scene.
func New(sc *engine.Scene) *World {
	return &World{
		scene: sc,
		glb:   gltfexport.New(sc),
	}
}

// Load reads a JSON or YAML scene file.
func Load(path string) (*World, error) {
	sf, err := ReadSceneFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := sf.Build()
	if err != nil {
		return nil, err
	}
	w := New(sc)
	w.Path = path
	return w, nil
}

func (w *World) Scene() *engine.Scene {
	return w.scene
}

// Export writes the geometry of inst as a binary glTF file.
func (w *World) Export(inst *engine.MeshInstance, path string) error {
	return w.glb.Export(inst, path)
}
