package engine

// Color is a linear RGB triple with channels nominally in [0,1].
type Color struct {
	R, G, B float32
}

var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// Camera is a camera data block. FOV is always in degrees; scene loaders
// convert focal lengths before building the record.
type Camera struct {
	Name   string
	FOV    float32
	Object *GameObject
}

type LightKind string

const (
	LightPoint   LightKind = "POINT"
	LightSpot    LightKind = "SPOT"
	LightArea    LightKind = "AREA"
	LightUnknown LightKind = ""
)

// ParseLightKind maps a host light type name to a LightKind. Unsupported
// types map to LightUnknown.
func ParseLightKind(s string) LightKind {
	switch LightKind(s) {
	case LightPoint, LightSpot, LightArea:
		return LightKind(s)
	}
	return LightUnknown
}

type Light struct {
	Name           string
	Kind           LightKind
	HostType       string // type name as read from the host, kept for diagnostics
	Color          Color
	Energy         float32
	CutoffDistance float32
	SpotSize       float32 // full cone angle in radians
	Object         *GameObject
}

// MeshInstance is one placement of a mesh data block.
type MeshInstance struct {
	Name     string
	MeshData string
	Object   *GameObject
}

// Hidden reports whether the instance is excluded from renders.
func (m *MeshInstance) Hidden() bool {
	return m.Object != nil && !m.Object.RenderVisible()
}

type World struct {
	Name  string
	Color Color
}

// Mesh is a geometry block shared by any number of MeshInstances.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
	Color     Color
}
