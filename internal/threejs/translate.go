package threejs

import (
	"encoding/json"
	"fmt"
	"strings"

	"scene2three/internal/engine"
)

const (
	cameraNear = 0.1
	cameraFar  = 1000

	spotPenumbra = 0
	spotDecay    = 1
)

func (a *Assembler) translateCamera(cam *engine.Camera) error {
	if cam.Object == nil {
		return ErrMissingTransform
	}
	id := a.names.Identifier(cam.Name)
	a.cameras[cam] = id

	b := a.section(SectionCameras)
	fmt.Fprintf(b, "// %s\n", id)
	fmt.Fprintf(b, "const %s = new THREE.PerspectiveCamera(%s, window.innerWidth / window.innerHeight, %s, %s);\n",
		id, formatFloat(cam.FOV), formatFloat(cameraNear), formatFloat(cameraFar))
	writeTransform(b, "", id, cam.Object)
	fmt.Fprintf(b, "scene.add(%s);\n\n", id)
	return nil
}

func (a *Assembler) translateLight(light *engine.Light) error {
	if light.Object == nil {
		return ErrMissingTransform
	}
	switch light.Kind {
	case engine.LightPoint, engine.LightSpot, engine.LightArea:
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedLight, light.HostType)
	}

	id := a.names.Identifier(light.Name)
	hex := ColorToHex(light.Color)
	pos := formatVector(ConvertTransform(light.Object.Transform.Position))
	b := a.section(SectionLights)

	fmt.Fprintf(b, "// %s\n", id)
	switch light.Kind {
	case engine.LightPoint:
		fmt.Fprintf(b, "const %s = new THREE.PointLight(%s);\n", id, hex)
		fmt.Fprintf(b, "%s.position.set(%s);\n", id, pos)

	case engine.LightSpot:
		fmt.Fprintf(b, "const %s = new THREE.SpotLight(%s, %s, %s, %s, %d, %d);\n",
			id, hex, formatFloat(light.Energy), formatFloat(light.CutoffDistance), formatFloat(light.SpotSize),
			spotPenumbra, spotDecay)
		fmt.Fprintf(b, "%s.castShadow = true;\n", id)
		fmt.Fprintf(b, "%s.position.set(%s);\n", id, pos)
		writeAim(b, id, light)

	case engine.LightArea:
		// No spatial extent; approximated by a directional light.
		fmt.Fprintf(b, "const %s = new THREE.DirectionalLight(%s, %s);\n", id, hex, formatFloat(light.Energy))
		fmt.Fprintf(b, "%s.position.set(%s);\n", id, pos)
		writeAim(b, id, light)
	}
	fmt.Fprintf(b, "scene.add(%s);\n\n", id)
	return nil
}

func writeAim(b *strings.Builder, id string, light *engine.Light) {
	target := ConvertTransform(ResolveAimPoint(light))
	fmt.Fprintf(b, "%s.target.position.set(%s);\n", id, formatVector(target))
	fmt.Fprintf(b, "scene.add(%s.target);\n", id)
}

func (a *Assembler) translateWorld(world *engine.World) {
	color := engine.Black
	if world != nil {
		color = world.Color
	}
	b := a.section(SectionRenderer)
	b.WriteString("\n// Background Color\n")
	fmt.Fprintf(b, "scene.background = new THREE.Color(%s);\n", ColorToHex(color))
}

func writeTransform(b *strings.Builder, indent, id string, obj *engine.GameObject) {
	fmt.Fprintf(b, "%s%s.position.set(%s);\n", indent, id, formatVector(ConvertTransform(obj.Transform.Position)))
	fmt.Fprintf(b, "%s%s.rotation.set(%s);\n", indent, id, formatVector(ConvertTransform(obj.Transform.Rotation)))
}

// jsString quotes s as a JavaScript string literal. JSON string syntax
// is valid JavaScript, including the escaped U+2028 and U+2029.
func jsString(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}
