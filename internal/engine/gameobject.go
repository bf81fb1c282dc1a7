package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ObjectType is the kind of data a GameObject carries.
type ObjectType string

const (
	ObjectEmpty  ObjectType = "EMPTY"
	ObjectMesh   ObjectType = "MESH"
	ObjectCamera ObjectType = "CAMERA"
	ObjectLight  ObjectType = "LIGHT"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // XYZ Euler angles in radians
}

// GameObject is a placed object in the host scene. Camera, light and mesh
// records point at the GameObject that holds their transform.
type GameObject struct {
	Name        string
	Type        ObjectType
	Transform   Transform
	Visible     bool
	HideRender  bool
	Data        string // name of the camera, light or mesh data block
	Constraints []Constraint
	Scene       *Scene
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		Name:    name,
		Type:    ObjectEmpty,
		Visible: true,
	}
}

// RenderVisible reports whether the object shows up in a render.
func (g *GameObject) RenderVisible() bool {
	return g.Visible && !g.HideRender
}

// ConstraintType names a host constraint kind.
type ConstraintType string

const (
	ConstraintTrackTo      ConstraintType = "TRACK_TO"
	ConstraintDampedTrack  ConstraintType = "DAMPED_TRACK"
	ConstraintLockedTrack  ConstraintType = "LOCKED_TRACK"
	ConstraintCopyLocation ConstraintType = "COPY_LOCATION"
)

// IsAim reports whether the constraint makes its owner point at the target.
func (t ConstraintType) IsAim() bool {
	switch t {
	case ConstraintTrackTo, ConstraintDampedTrack, ConstraintLockedTrack:
		return true
	}
	return false
}

type Constraint struct {
	Type   ConstraintType
	Target *GameObject
}
