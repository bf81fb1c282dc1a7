package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"scene2three/internal/engine"
)

// --- File types ---

type SceneFile struct {
	Name    string      `json:"name" yaml:"name"`
	World   *WorldDef   `json:"world,omitempty" yaml:"world,omitempty"`
	Objects []ObjectDef `json:"objects" yaml:"objects"`
	Cameras []CameraDef `json:"cameras,omitempty" yaml:"cameras,omitempty"`
	Lights  []LightDef  `json:"lights,omitempty" yaml:"lights,omitempty"`
	Meshes  []MeshDef   `json:"meshes,omitempty" yaml:"meshes,omitempty"`
}

type WorldDef struct {
	Name  string     `json:"name" yaml:"name"`
	Color [3]float32 `json:"color" yaml:"color"`
}

type ObjectDef struct {
	Name        string          `json:"name" yaml:"name"`
	Type        string          `json:"type" yaml:"type"`
	Data        string          `json:"data,omitempty" yaml:"data,omitempty"`
	Position    [3]float32      `json:"position" yaml:"position"`
	Rotation    [3]float32      `json:"rotation" yaml:"rotation"`
	Visible     *bool           `json:"visible,omitempty" yaml:"visible,omitempty"`
	HideRender  bool            `json:"hideRender,omitempty" yaml:"hideRender,omitempty"`
	Constraints []ConstraintDef `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

type ConstraintDef struct {
	Type   string `json:"type" yaml:"type"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// CameraDef gives the field of view either directly in degrees or as a
// focal length in millimetres with a sensor width.
type CameraDef struct {
	Name        string  `json:"name" yaml:"name"`
	Object      string  `json:"object,omitempty" yaml:"object,omitempty"`
	FOV         float32 `json:"fov,omitempty" yaml:"fov,omitempty"`
	Lens        float32 `json:"lens,omitempty" yaml:"lens,omitempty"`
	SensorWidth float32 `json:"sensorWidth,omitempty" yaml:"sensorWidth,omitempty"`
}

type LightDef struct {
	Name           string     `json:"name" yaml:"name"`
	Object         string     `json:"object,omitempty" yaml:"object,omitempty"`
	Type           string     `json:"type" yaml:"type"`
	Color          [3]float32 `json:"color" yaml:"color"`
	Energy         float32    `json:"energy" yaml:"energy"`
	CutoffDistance float32    `json:"cutoffDistance,omitempty" yaml:"cutoffDistance,omitempty"`
	SpotSize       float32    `json:"spotSize,omitempty" yaml:"spotSize,omitempty"`
}

type MeshDef struct {
	Name      string       `json:"name" yaml:"name"`
	Positions [][3]float32 `json:"positions" yaml:"positions"`
	Normals   [][3]float32 `json:"normals,omitempty" yaml:"normals,omitempty"`
	Indices   []uint32     `json:"indices,omitempty" yaml:"indices,omitempty"`
	Color     *[3]float32  `json:"color,omitempty" yaml:"color,omitempty"`
}

const (
	defaultLens        = 50
	defaultSensorWidth = 36
)

// LensToFOV converts a focal length and sensor width, both in
// millimetres, to a horizontal field of view in degrees.
func LensToFOV(lens, sensorWidth float32) float32 {
	if sensorWidth <= 0 {
		sensorWidth = defaultSensorWidth
	}
	return 2 * math32.Atan(sensorWidth/(2*lens)) * 180 / math32.Pi
}

func (d CameraDef) fov() float32 {
	if d.FOV > 0 {
		return d.FOV
	}
	lens := d.Lens
	if lens <= 0 {
		lens = defaultLens
	}
	return LensToFOV(lens, d.SensorWidth)
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func color(c [3]float32) engine.Color {
	return engine.Color{R: c[0], G: c[1], B: c[2]}
}

// --- Loading ---

// ReadSceneFile decodes a JSON or YAML scene file, picked by extension.
func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sf)
	case ".json":
		err = json.Unmarshal(data, &sf)
	default:
		return nil, fmt.Errorf("unsupported scene file %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &sf, nil
}

// Build turns the file into a host scene. Companion objects are resolved
// here by name; records whose object is missing keep a nil Object.
func (sf *SceneFile) Build() (*engine.Scene, error) {
	name := sf.Name
	if name == "" {
		name = "Scene"
	}
	sc := engine.NewScene(name)

	for _, def := range sf.Objects {
		g := engine.NewGameObject(def.Name)
		g.Type = engine.ObjectType(strings.ToUpper(def.Type))
		if g.Type == "" {
			g.Type = engine.ObjectEmpty
		}
		g.Data = def.Data
		g.Transform.Position = vec(def.Position)
		g.Transform.Rotation = vec(def.Rotation)
		if def.Visible != nil {
			g.Visible = *def.Visible
		}
		g.HideRender = def.HideRender
		if err := sc.AddGameObject(g); err != nil {
			return nil, err
		}
	}

	// Constraint targets may be declared after their owner.
	for _, def := range sf.Objects {
		g := sc.FindByName(def.Name)
		for _, c := range def.Constraints {
			g.Constraints = append(g.Constraints, engine.Constraint{
				Type:   engine.ConstraintType(strings.ToUpper(c.Type)),
				Target: sc.FindByName(c.Target),
			})
		}
	}

	if sf.World != nil {
		sc.World = &engine.World{Name: sf.World.Name, Color: color(sf.World.Color)}
	}

	for _, def := range sf.Cameras {
		sc.Cameras = append(sc.Cameras, &engine.Camera{
			Name:   def.Name,
			FOV:    def.fov(),
			Object: sc.FindByName(companion(def.Name, def.Object)),
		})
	}

	for _, def := range sf.Lights {
		sc.Lights = append(sc.Lights, &engine.Light{
			Name:           def.Name,
			Kind:           engine.ParseLightKind(strings.ToUpper(def.Type)),
			HostType:       def.Type,
			Color:          color(def.Color),
			Energy:         def.Energy,
			CutoffDistance: def.CutoffDistance,
			SpotSize:       def.SpotSize,
			Object:         sc.FindByName(companion(def.Name, def.Object)),
		})
	}

	for _, def := range sf.Meshes {
		m := &engine.Mesh{
			Name:      def.Name,
			Positions: def.Positions,
			Normals:   def.Normals,
			Indices:   def.Indices,
			Color:     engine.White,
		}
		if def.Color != nil {
			m.Color = color(*def.Color)
		}
		sc.AddMesh(m)
	}

	for _, g := range sc.Objects {
		if g.Type != engine.ObjectMesh {
			continue
		}
		sc.Instances = append(sc.Instances, &engine.MeshInstance{
			Name:     g.Name,
			MeshData: g.Data,
			Object:   g,
		})
	}

	return sc, nil
}

func companion(name, object string) string {
	if object != "" {
		return object
	}
	return name
}
