// Package gltfexport writes host meshes as binary glTF files.
package gltfexport

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"scene2three/internal/engine"
	"scene2three/internal/threejs"
)

// Exporter resolves mesh instances against the meshes of a scene.
type Exporter struct {
	scene *engine.Scene
}

func New(sc *engine.Scene) *Exporter {
	return &Exporter{scene: sc}
}

// Export writes the mesh data block behind inst to path.
func (e *Exporter) Export(inst *engine.MeshInstance, path string) error {
	mesh := e.scene.Mesh(inst.MeshData)
	if mesh == nil {
		return errors.Errorf("mesh data %q not found for %q", inst.MeshData, inst.Name)
	}
	return errors.Wrapf(WriteMesh(mesh, path), "export %q", inst.Name)
}

// Document builds a single-node glTF document for mesh. Vertices are
// converted to the Y-up frame three.js expects.
func Document(mesh *engine.Mesh) (*gltf.Document, error) {
	if len(mesh.Positions) == 0 {
		return nil, errors.Errorf("mesh %q has no vertices", mesh.Name)
	}
	if len(mesh.Normals) != 0 && len(mesh.Normals) != len(mesh.Positions) {
		return nil, errors.Errorf("mesh %q has %d normals for %d vertices", mesh.Name, len(mesh.Normals), len(mesh.Positions))
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Positions) {
			return nil, errors.Errorf("mesh %q index %d out of range", mesh.Name, idx)
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "scene2three"

	attrs := gltf.Attribute{
		gltf.POSITION: modeler.WritePosition(doc, yUp(mesh.Positions)),
	}
	if len(mesh.Normals) > 0 {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, yUp(mesh.Normals))
	}
	prim := &gltf.Primitive{
		Attributes: attrs,
		Material:   gltf.Index(0),
	}
	if len(mesh.Indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, mesh.Indices))
	}

	c := mesh.Color
	doc.Materials = []*gltf.Material{{
		Name: mesh.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(c.R), float64(c.G), float64(c.B), 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{Name: mesh.Name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: mesh.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// WriteMesh saves mesh as a .glb file, creating the parent directory.
func WriteMesh(mesh *engine.Mesh, path string) error {
	doc, err := Document(mesh)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create asset directory")
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

func yUp(in [][3]float32) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, p := range in {
		v := threejs.ConvertTransform(rl.Vector3{X: p[0], Y: p[1], Z: p[2]})
		out[i] = [3]float32{v.X, v.Y, v.Z}
	}
	return out
}
