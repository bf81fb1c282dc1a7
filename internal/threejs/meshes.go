package threejs

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"scene2three/internal/engine"
)

// AssetExt is the extension of exported geometry files.
const AssetExt = ".glb"

// MeshExporter writes the geometry of a mesh instance to a file the
// three.js GLTFLoader can read.
type MeshExporter interface {
	Export(inst *engine.MeshInstance, path string) error
}

// Source hands the exporter the scene to translate.
type Source interface {
	Scene() *engine.Scene
}

type exportOutcome struct {
	ref string
	err error
}

// Registry remembers which mesh data blocks have been exported during a
// run. The exporter is called at most once per mesh data id, whether the
// call succeeds or not.
type Registry struct {
	exporter MeshExporter
	root     string
	dirName  string
	files    *Sanitizer
	entries  map[string]exportOutcome
	written  []string
}

// NewRegistry returns an empty registry writing into root/dirName.
func NewRegistry(exporter MeshExporter, root, dirName string) *Registry {
	return &Registry{
		exporter: exporter,
		root:     root,
		dirName:  dirName,
		files:    NewSanitizer(),
		entries:  make(map[string]exportOutcome),
	}
}

// ExportMesh returns the program-relative asset path for inst, exporting
// the geometry on first encounter of its mesh data. Hidden instances
// return "" and a nil error without touching the registry.
func (r *Registry) ExportMesh(inst *engine.MeshInstance) (string, error) {
	if inst.Hidden() {
		return "", nil
	}
	if out, ok := r.entries[inst.MeshData]; ok {
		return out.ref, out.err
	}

	file := r.files.Unique(Sanitize(BaseName(inst.Name))) + AssetExt
	ref := path.Join(r.dirName, file)
	dst := filepath.Join(r.root, r.dirName, file)

	var out exportOutcome
	if err := r.exporter.Export(inst, dst); err != nil {
		out.err = fmt.Errorf("%w: %s: %w", ErrAssetExport, inst.MeshData, err)
	} else {
		out.ref = ref
		r.written = append(r.written, dst)
	}
	r.entries[inst.MeshData] = out
	return out.ref, out.err
}

// Written lists the asset files written so far, in export order.
func (r *Registry) Written() []string {
	return append([]string(nil), r.written...)
}

// BaseName strips the host's duplicate suffix ("Chair.001" -> "Chair").
func BaseName(name string) string {
	base, _, _ := strings.Cut(name, ".")
	return base
}

func (a *Assembler) translateInstance(inst *engine.MeshInstance) error {
	if inst.Object == nil {
		return ErrMissingTransform
	}
	ref, err := a.registry.ExportMesh(inst)
	if err != nil {
		return err
	}
	if ref == "" {
		a.log.Debug("mesh hidden in render", "mesh", inst.Name)
		return nil
	}

	base := Sanitize(BaseName(inst.Name))
	b := a.section(SectionObjects)

	// Every later instance of a base name clones the first one loaded,
	// even when the host gave it its own mesh data.
	if source, ok := a.loaded[base]; ok {
		a.clones[base]++
		id := a.names.Unique(fmt.Sprintf("%s_%03d", base, a.clones[base]))
		fmt.Fprintf(b, "// %s\n", id)
		fmt.Fprintf(b, "const %s = %s.clone();\n", id, source)
		writeTransform(b, "", id, inst.Object)
		fmt.Fprintf(b, "scene.add(%s);\n\n", id)
		return nil
	}

	id := a.names.Unique(base)
	a.loaded[base] = id
	fmt.Fprintf(b, "// %s\n", id)
	fmt.Fprintf(b, "let %s;\n", id)
	fmt.Fprintf(b, "loader.load(%s,\n", jsString(ref))
	b.WriteString("\t(gltf) => {\n")
	fmt.Fprintf(b, "\t\t%s = gltf.scene;\n", id)
	writeTransform(b, "\t\t", id, inst.Object)
	fmt.Fprintf(b, "\t\tscene.add(%s);\n", id)
	b.WriteString("\t},\n")
	b.WriteString("\t(xhr) => {\n")
	fmt.Fprintf(b, "\t\tconsole.log(%s + (xhr.loaded / xhr.total * 100) + '%%');\n", jsString(id+" loaded: "))
	b.WriteString("\t},\n")
	b.WriteString("\t(error) => {\n")
	fmt.Fprintf(b, "\t\tconsole.error(%s, error);\n", jsString("An error happened loading the model "+id))
	b.WriteString("\t}\n")
	b.WriteString(");\n\n")
	return nil
}
