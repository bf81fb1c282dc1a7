package threejs

import (
	"scene2three/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// localBackward is the axis a host light shines along.
var localBackward = rl.Vector3{X: 0, Y: 0, Z: -1}

// ResolveAimPoint returns the point a light is aimed at, in host
// coordinates. The first aim constraint with a target wins; without one
// the point is one unit along the light's local -Z axis.
func ResolveAimPoint(light *engine.Light) rl.Vector3 {
	obj := light.Object
	if obj == nil {
		return rl.Vector3Zero()
	}
	for _, c := range obj.Constraints {
		if c.Type.IsAim() && c.Target != nil {
			return c.Target.Transform.Position
		}
	}
	dir := rotateEuler(localBackward, obj.Transform.Rotation)
	return rl.Vector3Add(obj.Transform.Position, dir)
}

// rotateEuler applies an XYZ Euler rotation to v: X first, then Y, then
// Z. raylib's rotation matrices turn vectors the opposite way under
// Vector3Transform, so each angle is negated.
func rotateEuler(v, rot rl.Vector3) rl.Vector3 {
	v = rl.Vector3Transform(v, rl.MatrixRotateX(-rot.X))
	v = rl.Vector3Transform(v, rl.MatrixRotateY(-rot.Y))
	return rl.Vector3Transform(v, rl.MatrixRotateZ(-rot.Z))
}
