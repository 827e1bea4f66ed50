package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type LightMode int

var FrustumCullingEnabled bool = false
var FaceCullingEnabled bool = false
var Debug bool = false
var DepthTestEnabled bool = true
var ClearColorR float32 = 0.0 // Background clear color red
var ClearColorG float32 = 0.0 // Background clear color green
var ClearColorB float32 = 0.0 // Background clear color blue

const (
	POINT_LIGHT LightMode = iota
	AMBIENT_LIGHT
)

// MaxPointLights is the size of the point light array in the standard shader.
const MaxPointLights = 4

type Light struct {
	Name      string
	Mode      LightMode
	Position  mgl32.Vec3 // Ignored for ambient lights
	Color     mgl32.Vec3
	Intensity float32
	// Distance is the range of a point light. Zero means no falloff.
	Distance float32
	Decay    float32
}

func (l *Light) ObjectName() string { return l.Name }

func (l *Light) ObjectKind() ObjectKind {
	if l.Mode == AMBIENT_LIGHT {
		return KindAmbientLight
	}
	return KindPointLight
}

// Render is the rendering backend the scene driver talks to.
type Render interface {
	Init(width, height int32) error
	SetPixelRatio(ratio float32)
	SetSize(width, height int32)
	Render(camera *Camera, scene *Scene)
	Cleanup()
}

// CreatePointLight creates a point light. A zero distance disables attenuation.
func CreatePointLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32, distance float32) *Light {
	return &Light{
		Name:      "point-light",
		Mode:      POINT_LIGHT,
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Distance:  distance,
		Decay:     1.0,
	}
}

// CreateAmbientLight creates a light that illuminates every surface evenly.
func CreateAmbientLight(color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Name:      "ambient-light",
		Mode:      AMBIENT_LIGHT,
		Color:     color,
		Intensity: intensity,
	}
}

// HexColor converts a 0xRRGGBB value into a linear 0..1 RGB vector.
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
	}
}
