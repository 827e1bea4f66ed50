package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// InputHandler receives pointer input from the host window.
type InputHandler interface {
	// Rotate handles a drag of dx, dy pixels.
	Rotate(dx, dy float32)
	// Pan handles a drag of dx, dy pixels.
	Pan(dx, dy float32)
	// Zoom handles wheel steps. Positive steps move the camera closer.
	Zoom(steps float32)
}

const orbitEpsilon = 0.000001

// OrbitControls orbits a camera around a target point. Input is accumulated by
// the InputHandler methods and applied to the camera by Update, once per frame.
type OrbitControls struct {
	Target mgl32.Vec3

	Enabled        bool
	RotateSpeed    float32
	ZoomSpeed      float32
	PanSpeed       float32
	MinDistance    float64
	MaxDistance    float64
	MinPolarAngle  float64
	MaxPolarAngle  float64
	ViewportHeight float32 // Height in window pixels used to scale drags

	camera *Camera

	deltaTheta float64
	deltaPhi   float64
	scale      float64
	panOffset  mgl32.Vec3
}

func NewOrbitControls(camera *Camera, viewportHeight float32) *OrbitControls {
	return &OrbitControls{
		Enabled:        true,
		RotateSpeed:    1.0,
		ZoomSpeed:      1.0,
		PanSpeed:       1.0,
		MinDistance:    0,
		MaxDistance:    math.Inf(1),
		MinPolarAngle:  0,
		MaxPolarAngle:  math.Pi,
		ViewportHeight: viewportHeight,
		camera:         camera,
		scale:          1,
	}
}

func (o *OrbitControls) Camera() *Camera {
	return o.camera
}

func (o *OrbitControls) Rotate(dx, dy float32) {
	if !o.Enabled || o.ViewportHeight <= 0 {
		return
	}
	h := float64(o.ViewportHeight)
	o.deltaTheta -= 2 * math.Pi * float64(dx) / h * float64(o.RotateSpeed)
	o.deltaPhi -= 2 * math.Pi * float64(dy) / h * float64(o.RotateSpeed)
}

func (o *OrbitControls) Zoom(steps float32) {
	if !o.Enabled || steps == 0 {
		return
	}
	factor := math.Pow(0.95, float64(o.ZoomSpeed)*math.Abs(float64(steps)))
	if steps > 0 {
		o.scale *= factor
	} else {
		o.scale /= factor
	}
}

func (o *OrbitControls) Pan(dx, dy float32) {
	if !o.Enabled || o.ViewportHeight <= 0 {
		return
	}
	offset := o.camera.Position.Sub(o.Target)
	targetDistance := float64(offset.Len()) * math.Tan(float64(mgl32.DegToRad(o.camera.Fov))/2)
	scale := float32(2*targetDistance/float64(o.ViewportHeight)) * o.PanSpeed

	// Dragging right moves the scene right, so the camera goes left.
	o.panOffset = o.panOffset.Sub(o.camera.Right.Mul(dx * scale))
	o.panOffset = o.panOffset.Add(o.camera.Up.Mul(dy * scale))
}

func (o *OrbitControls) pending() bool {
	return o.deltaTheta != 0 || o.deltaPhi != 0 || o.scale != 1 || o.panOffset != (mgl32.Vec3{})
}

// Update applies accumulated input to the camera and reports whether it moved.
// Without pending input the camera is left untouched.
func (o *OrbitControls) Update() bool {
	if !o.pending() {
		return false
	}

	offset := o.camera.Position.Sub(o.Target)
	x, y, z := float64(offset.X()), float64(offset.Y()), float64(offset.Z())

	radius := math.Sqrt(x*x + y*y + z*z)
	var theta, phi float64
	if radius != 0 {
		theta = math.Atan2(x, z)
		phi = math.Acos(math.Max(-1, math.Min(1, y/radius)))
	}

	theta += o.deltaTheta
	phi += o.deltaPhi
	phi = math.Max(o.MinPolarAngle, math.Min(o.MaxPolarAngle, phi))
	phi = math.Max(orbitEpsilon, math.Min(math.Pi-orbitEpsilon, phi))

	radius *= o.scale
	radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, radius))

	o.Target = o.Target.Add(o.panOffset)

	sinPhiRadius := math.Sin(phi) * radius
	newOffset := mgl32.Vec3{
		float32(sinPhiRadius * math.Sin(theta)),
		float32(math.Cos(phi) * radius),
		float32(sinPhiRadius * math.Cos(theta)),
	}

	before := o.camera.Position
	o.camera.Position = o.Target.Add(newOffset)
	o.camera.LookAt(o.Target)

	o.deltaTheta = 0
	o.deltaPhi = 0
	o.scale = 1
	o.panOffset = mgl32.Vec3{}

	return o.camera.Position.Sub(before).LenSqr() > orbitEpsilon
}
