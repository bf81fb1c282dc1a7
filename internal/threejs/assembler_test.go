package threejs

import (
	"strings"
	"testing"

	"scene2three/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endToEndScene() *engine.Scene {
	sc := engine.NewScene("Scene")
	sc.Cameras = append(sc.Cameras, &engine.Camera{
		Name:   "Cam",
		FOV:    50,
		Object: object(sc, "Cam", engine.ObjectCamera, rl.Vector3{X: 7, Y: -6, Z: 5}),
	})
	sc.Lights = append(sc.Lights, &engine.Light{
		Name:   "Lamp",
		Kind:   engine.LightPoint,
		Color:  engine.White,
		Energy: 1000,
		Object: object(sc, "Lamp", engine.ObjectLight, rl.Vector3{X: 0, Y: 1, Z: 0}),
	})
	meshInstance(sc, "Cube", "CubeMesh")
	sc.World = &engine.World{Name: "World", Color: engine.Color{R: 0.05, G: 0.05, B: 0.05}}
	return sc
}

func TestAssembleEndToEnd(t *testing.T) {
	exp := newFakeExporter()
	out, err := newTestAssembler(exp).Assemble(endToEndScene())
	require.NoError(t, err)

	script := out.Script
	assert.Contains(t, script, "const Cam = new THREE.PerspectiveCamera(50, window.innerWidth / window.innerHeight, 0.1, 1000);\n")
	assert.Contains(t, script, "Cam.position.set(7, 5, 6);\n")
	assert.Contains(t, script, "const Lamp = new THREE.PointLight(0xffffff);\n")
	assert.Contains(t, script, "Lamp.position.set(0, 0, -1);\n")
	assert.Contains(t, script, "scene.add(Lamp);\n")
	assert.Contains(t, script, "let Cube;\nloader.load(\"exported_gltfs/Cube.glb\",\n")
	assert.Contains(t, script, "scene.background = new THREE.Color(0x0c0c0c);\n")
	assert.Contains(t, script, "renderer.render(scene, Cam);\n")
	assert.NotContains(t, script, "Default Camera")

	assert.Equal(t, 1, exp.calls["CubeMesh"])
	assert.Equal(t, "Cam", out.Camera)
	assert.Empty(t, out.Diagnostics)
}

func TestAssembleSectionOrder(t *testing.T) {
	out, err := newTestAssembler(newFakeExporter()).Assemble(endToEndScene())
	require.NoError(t, err)

	markers := []string{
		"import * as THREE from",
		"const scene = new THREE.Scene();",
		"// CAMERAS",
		"// LIGHTS",
		"// OBJECTS",
		"// RENDERER",
		"animate();",
	}
	last := -1
	for _, m := range markers {
		i := strings.Index(out.Script, m)
		require.GreaterOrEqual(t, i, 0, "missing %q", m)
		assert.Greater(t, i, last, "%q out of order", m)
		last = i
	}
}

func TestAssembleImports(t *testing.T) {
	asm := NewAssembler(Options{CDN: "https://unpkg.com/", ThreeVersion: "0.160.0", Logger: quietLogger()}, newFakeExporter())
	out, err := asm.Assemble(engine.NewScene("Empty"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Script,
		"import * as THREE from \"https://unpkg.com/three@0.160.0/build/three.module.js\";\n"))
	assert.Contains(t, out.Script, "\"https://unpkg.com/three@0.160.0/examples/jsm/controls/OrbitControls.js\"")
	assert.Contains(t, out.Script, "\"https://unpkg.com/three@0.160.0/examples/jsm/loaders/GLTFLoader.js\"")
}

func TestAssembleDefaultCamera(t *testing.T) {
	sc := engine.NewScene("Test")
	sc.Cameras = append(sc.Cameras, &engine.Camera{Name: "Unplaced", FOV: 40})

	out, err := newTestAssembler(newFakeExporter()).Assemble(sc)
	require.NoError(t, err)

	assert.Equal(t, "camera", out.Camera)
	assert.Contains(t, out.Script, "const camera = new THREE.PerspectiveCamera(75,")
	assert.Contains(t, out.Script, "camera.position.set(0, 0, 5);\n")
	assert.Contains(t, out.Script, "new OrbitControls(camera, renderer.domElement);")
	assert.NotContains(t, out.Script, "const loader")
	assert.Contains(t, out.Script, "scene.background = new THREE.Color(0x000000);")
	require.Len(t, out.Diagnostics, 1)
	assert.ErrorIs(t, out.Diagnostics[0].Err, ErrMissingTransform)
}

func TestAssembleFirstResolvedCameraDrivesRender(t *testing.T) {
	sc := engine.NewScene("Test")
	sc.Cameras = append(sc.Cameras,
		&engine.Camera{Name: "Lost", FOV: 40},
		&engine.Camera{Name: "Main Cam", FOV: 35, Object: object(sc, "Main Cam", engine.ObjectCamera, rl.Vector3{})},
		&engine.Camera{Name: "Side", FOV: 60, Object: object(sc, "Side", engine.ObjectCamera, rl.Vector3{})},
	)

	out, err := newTestAssembler(newFakeExporter()).Assemble(sc)
	require.NoError(t, err)
	assert.Equal(t, "Main_Cam", out.Camera)
	assert.Contains(t, out.Script, "\tMain_Cam.updateProjectionMatrix();\n")
}

func TestAssemblePartialFailure(t *testing.T) {
	sc := engine.NewScene("Test")
	sc.Lights = append(sc.Lights,
		&engine.Light{Name: "Key", Kind: engine.LightPoint, Color: engine.White, Object: object(sc, "Key", engine.ObjectLight, rl.Vector3{})},
		&engine.Light{Name: "Ghost", Kind: engine.LightPoint, Color: engine.White},
		&engine.Light{Name: "Fill", Kind: engine.LightPoint, Color: engine.White, Object: object(sc, "Fill", engine.ObjectLight, rl.Vector3{})},
	)

	out, err := newTestAssembler(newFakeExporter()).Assemble(sc)
	require.NoError(t, err)

	assert.Contains(t, out.Script, "const Key = new THREE.PointLight(0xffffff);")
	assert.Contains(t, out.Script, "const Fill = new THREE.PointLight(0xffffff);")
	assert.NotContains(t, out.Script, "Ghost")
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "light", out.Diagnostics[0].Kind)
	assert.Equal(t, "Ghost", out.Diagnostics[0].Entity)
	assert.ErrorIs(t, out.Diagnostics[0].Err, ErrMissingTransform)
}

func TestAssembleSpotLight(t *testing.T) {
	sc := engine.NewScene("Test")
	sc.Lights = append(sc.Lights, &engine.Light{
		Name:           "Spot",
		Kind:           engine.LightSpot,
		Color:          engine.Color{R: 1, G: 0.5, B: 0},
		Energy:         800,
		CutoffDistance: 40,
		SpotSize:       0.75,
		Object:         object(sc, "Spot", engine.ObjectLight, rl.Vector3{X: 0, Y: 0, Z: 1}),
	})

	out, err := newTestAssembler(newFakeExporter()).Assemble(sc)
	require.NoError(t, err)

	assert.Contains(t, out.Script, "const Spot = new THREE.SpotLight(0xff7f00, 800, 40, 0.75, 0, 1);\n")
	assert.Contains(t, out.Script, "Spot.castShadow = true;\n")
	assert.Contains(t, out.Script, "Spot.position.set(0, 1, 0);\n")
	assert.Contains(t, out.Script, "Spot.target.position.set(0, 0, 0);\n")
	assert.Contains(t, out.Script, "scene.add(Spot.target);\n")
}

func TestAssembleAreaLight(t *testing.T) {
	sc := engine.NewScene("Test")
	target := object(sc, "Target", engine.ObjectEmpty, rl.Vector3{X: 1, Y: 2, Z: 3})
	area := object(sc, "Area", engine.ObjectLight, rl.Vector3{X: 0, Y: 0, Z: 4})
	area.Constraints = []engine.Constraint{{Type: engine.ConstraintTrackTo, Target: target}}
	sc.Lights = append(sc.Lights, &engine.Light{Name: "Area", Kind: engine.LightArea, Color: engine.White, Energy: 2.5, Object: area})

	out, err := newTestAssembler(newFakeExporter()).Assemble(sc)
	require.NoError(t, err)

	assert.Contains(t, out.Script, "const Area = new THREE.DirectionalLight(0xffffff, 2.5);\n")
	assert.Contains(t, out.Script, "Area.target.position.set(1, 3, -2);\n")
}

func TestAssembleUnsupportedLight(t *testing.T) {
	sc := engine.NewScene("Test")
	sc.Lights = append(sc.Lights, &engine.Light{
		Name: "Sun", Kind: engine.LightUnknown, HostType: "SUN",
		Object: object(sc, "Sun", engine.ObjectLight, rl.Vector3{}),
	})

	out, err := newTestAssembler(newFakeExporter()).Assemble(sc)
	require.NoError(t, err)

	assert.NotContains(t, out.Script, "Sun")
	require.Len(t, out.Diagnostics, 1)
	assert.ErrorIs(t, out.Diagnostics[0].Err, ErrUnsupportedLight)
}

func TestAssembleNameCollisions(t *testing.T) {
	sc := engine.NewScene("Test")
	sc.Lights = append(sc.Lights,
		&engine.Light{Name: "Müller Lamp", Kind: engine.LightPoint, Object: object(sc, "Müller Lamp", engine.ObjectLight, rl.Vector3{})},
		&engine.Light{Name: "Mueller-Lamp", Kind: engine.LightPoint, Object: object(sc, "Mueller-Lamp", engine.ObjectLight, rl.Vector3{})},
		&engine.Light{Name: "scene", Kind: engine.LightPoint, Object: object(sc, "scene", engine.ObjectLight, rl.Vector3{})},
	)

	out, err := newTestAssembler(newFakeExporter()).Assemble(sc)
	require.NoError(t, err)

	assert.Contains(t, out.Script, "const Mueller_Lamp = new THREE.PointLight")
	assert.Contains(t, out.Script, "const Mueller_Lamp_2 = new THREE.PointLight")
	assert.Contains(t, out.Script, "const scene_2 = new THREE.PointLight")
}

func TestAssemblerSingleUse(t *testing.T) {
	asm := newTestAssembler(newFakeExporter())
	_, err := asm.Assemble(engine.NewScene("One"))
	require.NoError(t, err)

	_, err = asm.Assemble(engine.NewScene("Two"))
	assert.Error(t, err)
}

func TestSectionString(t *testing.T) {
	assert.Equal(t, "imports", SectionImports.String())
	assert.Equal(t, "renderer", SectionRenderer.String())
	assert.Equal(t, "Section(9)", Section(9).String())
}
