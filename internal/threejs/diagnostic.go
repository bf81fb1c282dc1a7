package threejs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTransform means the host could not resolve the object
	// holding an entity's transform.
	ErrMissingTransform = errors.New("no companion transform")

	// ErrUnsupportedLight means the light kind has no three.js mapping.
	ErrUnsupportedLight = errors.New("unsupported light type")

	// ErrAssetExport means the geometry exporter failed for a mesh.
	ErrAssetExport = errors.New("asset export failed")
)

// Diagnostic records an entity that was skipped. Skips never fail a run.
type Diagnostic struct {
	Kind   string // "camera", "light" or "mesh"
	Entity string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %q skipped: %v", d.Kind, d.Entity, d.Err)
}
