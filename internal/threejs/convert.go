package threejs

import (
	"fmt"
	"strconv"

	"scene2three/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ConvertTransform maps a Z-up host vector to the Y-up target:
// (x, y, z) -> (x, z, -y).
//
// The same remap is applied to Euler angles. That is not a true change of
// basis for an Euler triple, only an approximation that matches what the
// host exporter has always produced. Applying it twice is not the
// identity.
func ConvertTransform(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Z, Z: -v.Y}
}

// ColorToHex formats a color as a JavaScript hex literal. Channels are
// clamped to [0,1], scaled by 255 and truncated.
func ColorToHex(c engine.Color) string {
	return fmt.Sprintf("0x%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func channelByte(v float32) int {
	switch {
	case math32.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v * 255)
}

// formatFloat prints the shortest float32 representation; negative zero
// prints as 0.
func formatFloat(f float32) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func formatVector(v rl.Vector3) string {
	return formatFloat(v.X) + ", " + formatFloat(v.Y) + ", " + formatFloat(v.Z)
}
