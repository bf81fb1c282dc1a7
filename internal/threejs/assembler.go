package threejs

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"scene2three/internal/engine"
)

// Section is one ordered part of the generated program.
type Section int

const (
	SectionImports Section = iota
	SectionSceneInit
	SectionCameras
	SectionLights
	SectionObjects
	SectionRenderer
	numSections
)

var sectionNames = [numSections]string{"imports", "sceneInit", "cameras", "lights", "objects", "renderer"}

func (s Section) String() string {
	if s < 0 || s >= numSections {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionNames[s]
}

// reservedIdentifiers are bound by the generated program itself.
var reservedIdentifiers = []string{
	"THREE", "OrbitControls", "GLTFLoader",
	"scene", "renderer", "controls", "loader", "camera", "animate",
	"gltf", "xhr", "error", "window", "document", "console",
}

// DefaultCDN and DefaultThreeVersion match the module URLs the generated
// program has always imported.
const (
	DefaultCDN          = "https://cdn.skypack.dev"
	DefaultThreeVersion = "0.129.0"
	DefaultAssetDirName = "exported_gltfs"
)

var errAssembled = errors.New("assembler already used")

type Options struct {
	CDN          string
	ThreeVersion string
	// Root is the directory holding the generated program; assets go to
	// Root/AssetDirName.
	Root         string
	AssetDirName string
	Logger       *slog.Logger
}

// Output is the result of one assembly pass.
type Output struct {
	Script      string
	Camera      string // identifier driving the render loop
	Assets      []string
	Diagnostics []Diagnostic
}

// Assembler builds one program from one scene. It owns every piece of
// per-run state and must not be reused.
type Assembler struct {
	opts     Options
	log      *slog.Logger
	sections [numSections]strings.Builder
	names    *Sanitizer
	registry *Registry
	loaded   map[string]string // base name -> identifier of the loaded object
	clones   map[string]int
	cameras  map[*engine.Camera]string
	diags    []Diagnostic
	used     bool
}

func NewAssembler(opts Options, exporter MeshExporter) *Assembler {
	if opts.CDN == "" {
		opts.CDN = DefaultCDN
	}
	if opts.ThreeVersion == "" {
		opts.ThreeVersion = DefaultThreeVersion
	}
	if opts.AssetDirName == "" {
		opts.AssetDirName = DefaultAssetDirName
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{
		opts:     opts,
		log:      log,
		names:    NewSanitizer(reservedIdentifiers...),
		registry: NewRegistry(exporter, opts.Root, opts.AssetDirName),
		loaded:   make(map[string]string),
		clones:   make(map[string]int),
		cameras:  make(map[*engine.Camera]string),
	}
}

// Registry exposes the mesh registry of this run.
func (a *Assembler) Registry() *Registry {
	return a.registry
}

func (a *Assembler) section(s Section) *strings.Builder {
	return &a.sections[s]
}

// Assemble translates the scene and returns the program text. Entities
// that cannot be translated are skipped and reported in
// Output.Diagnostics.
func (a *Assembler) Assemble(sc *engine.Scene) (*Output, error) {
	if a.used {
		return nil, errAssembled
	}
	a.used = true
	if sc == nil {
		return nil, errors.New("no scene")
	}

	a.writeImports()
	a.writeSceneInit()

	a.section(SectionCameras).WriteString("// CAMERAS\n")
	for _, cam := range sc.Cameras {
		if err := a.translateCamera(cam); err != nil {
			a.skip("camera", cam.Name, err)
		}
	}

	a.section(SectionLights).WriteString("// LIGHTS\n")
	for _, light := range sc.Lights {
		if err := a.translateLight(light); err != nil {
			a.skip("light", light.Name, err)
		}
	}

	a.section(SectionObjects).WriteString("// OBJECTS\n")
	if sc.HasMeshes() {
		a.section(SectionObjects).WriteString("const loader = new GLTFLoader();\n\n")
	}
	for _, inst := range sc.Instances {
		if err := a.translateInstance(inst); err != nil {
			a.skip("mesh", inst.Name, err)
		}
	}

	camera := a.writeRenderer(sc)

	var out strings.Builder
	for s := Section(0); s < numSections; s++ {
		a.log.Debug("section assembled", "section", s, "bytes", a.sections[s].Len())
		out.WriteString(a.sections[s].String())
	}
	return &Output{
		Script:      out.String(),
		Camera:      camera,
		Assets:      a.registry.Written(),
		Diagnostics: a.diags,
	}, nil
}

func (a *Assembler) skip(kind, name string, err error) {
	d := Diagnostic{Kind: kind, Entity: name, Err: err}
	a.diags = append(a.diags, d)
	a.log.Warn("entity skipped", "kind", kind, "name", name, "err", err)
}

func (a *Assembler) moduleURL(file string) string {
	return fmt.Sprintf("%s/three@%s/%s", strings.TrimRight(a.opts.CDN, "/"), a.opts.ThreeVersion, file)
}

func (a *Assembler) writeImports() {
	b := a.section(SectionImports)
	fmt.Fprintf(b, "import * as THREE from %s;\n", jsString(a.moduleURL("build/three.module.js")))
	fmt.Fprintf(b, "import { OrbitControls } from %s;\n", jsString(a.moduleURL("examples/jsm/controls/OrbitControls.js")))
	fmt.Fprintf(b, "import { GLTFLoader } from %s;\n\n", jsString(a.moduleURL("examples/jsm/loaders/GLTFLoader.js")))
}

func (a *Assembler) writeSceneInit() {
	b := a.section(SectionSceneInit)
	b.WriteString("// Initialize the scene\n")
	b.WriteString("const scene = new THREE.Scene();\n\n")
}

// writeRenderer emits the renderer epilogue and returns the identifier of
// the camera driving it.
func (a *Assembler) writeRenderer(sc *engine.Scene) string {
	b := a.section(SectionRenderer)
	b.WriteString("// RENDERER\n")
	b.WriteString("const renderer = new THREE.WebGLRenderer();\n")
	b.WriteString("renderer.setSize(window.innerWidth, window.innerHeight);\n")
	b.WriteString("document.body.appendChild(renderer.domElement);\n")

	a.translateWorld(sc.World)

	camera := ""
	for _, cam := range sc.Cameras {
		if id, ok := a.cameras[cam]; ok {
			camera = id
			break
		}
	}
	if camera == "" {
		camera = "camera"
		b.WriteString("\n// Default Camera (no camera found in the scene)\n")
		b.WriteString("const camera = new THREE.PerspectiveCamera(75, window.innerWidth / window.innerHeight, 0.1, 1000);\n")
		b.WriteString("camera.position.set(0, 0, 5);\n")
		b.WriteString("scene.add(camera);\n")
	}

	b.WriteString("\n// Event Listeners\n")
	b.WriteString("window.addEventListener('resize', () => {\n")
	fmt.Fprintf(b, "\t%s.aspect = window.innerWidth / window.innerHeight;\n", camera)
	fmt.Fprintf(b, "\t%s.updateProjectionMatrix();\n", camera)
	b.WriteString("\trenderer.setSize(window.innerWidth, window.innerHeight);\n")
	b.WriteString("});\n")

	b.WriteString("\n// OrbitControls\n")
	fmt.Fprintf(b, "const controls = new OrbitControls(%s, renderer.domElement);\n", camera)
	b.WriteString("controls.enableDamping = true;\n")
	b.WriteString("controls.dampingFactor = 0.05;\n")

	b.WriteString("\n// Animation loop\n")
	b.WriteString("function animate() {\n")
	b.WriteString("\trequestAnimationFrame(animate);\n")
	b.WriteString("\tcontrols.update();\n")
	fmt.Fprintf(b, "\trenderer.render(scene, %s);\n", camera)
	b.WriteString("}\n\n")
	b.WriteString("animate();\n")
	return camera
}
