package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Floats per interleaved vertex: position(3) uv(2) normal(3).
// Line models store a per-vertex color in the normal slot.
const VertexStride = 8

type DrawMode int

const (
	DRAW_TRIANGLES DrawMode = iota
	DRAW_LINES
)

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:         "default",
	DiffuseColor: mgl32.Vec3{1.0, 1.0, 1.0},
	Roughness:    1.0,
	Alpha:        1.0,
}

// MaterialGroup represents a submesh with a single material
type MaterialGroup struct {
	Material   *Material // Material for this group
	IndexStart int32     // Starting index in the index buffer
	IndexCount int32     // Number of indices for this group
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4 // Transformation matrix
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	// Rotation is an XYZ Euler rotation in radians. It is never normalized,
	// so repeated increments keep growing.
	Rotation mgl64.Vec3
	Material *Material // Material properties pointer
	DrawMode DrawMode
	VAO      uint32 // Vertex Array Object
	VBO      uint32 // Vertex Buffer Object
	EBO      uint32 // Element Buffer Object
	IsDirty  bool   // Needs recalculation flag

	// MEDIUM DATA - Conditional/periodic access
	BoundingSphereCenter mgl32.Vec3 // For frustum culling
	BoundingSphereRadius float32    // For frustum culling
	MaterialGroups       []MaterialGroup

	// COLD DATA - Initialization only or rarely accessed
	Name            string
	Kind            ObjectKind
	Vertices        []float32 // Vertex position data
	Faces           []int32   // Index data
	InterleavedData []float32 // Combined vertex data
}

type Material struct {
	DiffuseColor mgl32.Vec3 // Base color
	Metallic     float32    // 0.0 = dielectric, 1.0 = metallic
	Roughness    float32    // 0.0 = mirror, 1.0 = completely rough
	Alpha        float32    // Transparency (0.0 = transparent, 1.0 = opaque)
	// Unlit materials ignore scene lights.
	Unlit   bool
	Texture *Texture // Optional color map

	Name string
}

// NewStandardMaterial is a lit material with the given base color.
func NewStandardMaterial(color mgl32.Vec3) *Material {
	return &Material{
		Name:         "standard",
		DiffuseColor: color,
		Roughness:    1.0,
		Alpha:        1.0,
	}
}

// NewBasicMaterial is an unlit material showing the texture as is.
func NewBasicMaterial(texture *Texture) *Material {
	return &Material{
		Name:         "basic",
		DiffuseColor: mgl32.Vec3{1, 1, 1},
		Alpha:        1.0,
		Unlit:        true,
		Texture:      texture,
	}
}

func (m *Model) ObjectName() string     { return m.Name }
func (m *Model) ObjectKind() ObjectKind { return m.Kind }

func (m *Model) X() float32 {
	return m.Position[0]
}

func (m *Model) Y() float32 {
	return m.Position[1]
}

func (m *Model) Z() float32 {
	return m.Position[2]
}

// Rotate adds the given radians to the Euler rotation.
func (m *Model) Rotate(angleX, angleY, angleZ float64) {
	m.Rotation = m.Rotation.Add(mgl64.Vec3{angleX, angleY, angleZ})
	m.IsDirty = true
}

// SetRotation sets the Euler rotation in radians.
func (m *Model) SetRotation(x, y, z float64) {
	m.Rotation = mgl64.Vec3{x, y, z}
	m.IsDirty = true
}

// SetPosition sets the position of the model
func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

// Quaternion returns the model orientation for the XYZ Euler rotation.
func (m *Model) Quaternion() mgl32.Quat {
	return mgl32.AnglesToQuat(float32(m.Rotation[0]), float32(m.Rotation[1]), float32(m.Rotation[2]), mgl32.XYZ)
}

// UpdateModelMatrix recomputes the matrix if the transform changed since the last call.
func (m *Model) UpdateModelMatrix() {
	if !m.IsDirty {
		return
	}
	m.calculateModelMatrix()
	m.IsDirty = false
}

func (m *Model) calculateModelMatrix() {
	// Correct transformation order: Translation * Rotation * Scale (TRS)
	scaleMatrix := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	rotationMatrix := m.Quaternion().Mat4()
	translationMatrix := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)

	if FrustumCullingEnabled {
		m.CalculateBoundingSphere()
	}
}

func (m *Model) CalculateBoundingSphere() {
	numVertices := len(m.Vertices) / 3
	if numVertices == 0 {
		return
	}

	var center mgl32.Vec3
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		center = center.Add(m.ModelMatrix.Mul4x1(vertex.Vec4(1)).Vec3())
	}
	center = center.Mul(1.0 / float32(numVertices))

	var maxDistanceSq float32
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		distanceSq := m.ModelMatrix.Mul4x1(vertex.Vec4(1)).Vec3().Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

// Groups returns the material groups to draw. A model without explicit groups
// is drawn as one group with its own material.
func (m *Model) Groups() []MaterialGroup {
	if len(m.MaterialGroups) > 0 {
		return m.MaterialGroups
	}
	material := m.Material
	if material == nil {
		material = DefaultMaterial
	}
	return []MaterialGroup{{Material: material, IndexStart: 0, IndexCount: int32(len(m.Faces))}}
}

// Clone returns a new model sharing the geometry of m with its own transform,
// material copy and GPU buffers.
func (m *Model) Clone() *Model {
	clone := &Model{
		Position:        m.Position,
		Scale:           m.Scale,
		Rotation:        m.Rotation,
		DrawMode:        m.DrawMode,
		Name:            m.Name,
		Kind:            m.Kind,
		Vertices:        m.Vertices,
		Faces:           m.Faces,
		InterleavedData: m.InterleavedData,
		IsDirty:         true,
	}
	if m.Material != nil {
		material := *m.Material
		clone.Material = &material
	}
	if len(m.MaterialGroups) > 0 {
		clone.MaterialGroups = append([]MaterialGroup(nil), m.MaterialGroups...)
	}
	return clone
}

// CreateModel builds a model from interleaved vertex data (see VertexStride) and indices.
func CreateModel(interleaved []float32, faces []int32) *Model {
	numVertices := len(interleaved) / VertexStride
	vertices := make([]float32, 0, numVertices*3)
	for i := 0; i < numVertices; i++ {
		vertices = append(vertices, interleaved[i*VertexStride:i*VertexStride+3]...)
	}

	return &Model{
		Position:        mgl32.Vec3{0, 0, 0},
		Scale:           mgl32.Vec3{1.0, 1.0, 1.0},
		Vertices:        vertices,
		Faces:           faces,
		InterleavedData: interleaved,
		ModelMatrix:     mgl32.Ident4(),
		IsDirty:         true,
	}
}
