package loader

import (
	"Starfield/internal/logger"
	"Starfield/internal/renderer"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Box face order used for material groups.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// meshBuilder accumulates interleaved position/uv/normal vertices and indices.
type meshBuilder struct {
	data  []float32
	faces []int32
}

func (b *meshBuilder) vertex(position mgl32.Vec3, uv mgl32.Vec2, normal mgl32.Vec3) int32 {
	index := int32(len(b.data) / renderer.VertexStride)
	b.data = append(b.data,
		position.X(), position.Y(), position.Z(),
		uv.X(), uv.Y(),
		normal.X(), normal.Y(), normal.Z())
	return index
}

func (b *meshBuilder) triangle(a, c, d int32) {
	b.faces = append(b.faces, a, c, d)
}

func (b *meshBuilder) line(a, c int32) {
	b.faces = append(b.faces, a, c)
}

func (b *meshBuilder) build() *renderer.Model {
	return renderer.CreateModel(b.data, b.faces)
}

// LoadTorus builds a torus in the XY plane. radius is the distance from the
// center to the middle of the tube.
func LoadTorus(radius, tube float32, radialSegments, tubularSegments int) (*renderer.Model, error) {
	if radialSegments < 3 || tubularSegments < 3 {
		return nil, errors.New("torus needs at least 3 radial and 3 tubular segments")
	}

	b := &meshBuilder{}
	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			v := float64(j) / float64(radialSegments) * 2 * math.Pi

			ring := float64(radius) + float64(tube)*math.Cos(v)
			position := mgl32.Vec3{
				float32(ring * math.Cos(u)),
				float32(ring * math.Sin(u)),
				float32(float64(tube) * math.Sin(v)),
			}
			center := mgl32.Vec3{
				float32(float64(radius) * math.Cos(u)),
				float32(float64(radius) * math.Sin(u)),
				0,
			}
			uv := mgl32.Vec2{float32(i) / float32(tubularSegments), float32(j) / float32(radialSegments)}
			b.vertex(position, uv, position.Sub(center).Normalize())
		}
	}

	row := int32(tubularSegments + 1)
	for j := int32(1); j <= int32(radialSegments); j++ {
		for i := int32(1); i <= int32(tubularSegments); i++ {
			a := row*j + i - 1
			c := row*(j-1) + i - 1
			d := row*(j-1) + i
			e := row*j + i
			b.triangle(a, c, e)
			b.triangle(c, d, e)
		}
	}

	model := b.build()
	model.Name = "torus"
	logger.Log.Debug("Torus created",
		zap.Int("vertices", len(b.data)/renderer.VertexStride),
		zap.Int("triangles", len(b.faces)/3))
	return model, nil
}

// LoadSphere builds a UV sphere centered at the origin.
func LoadSphere(radius float32, widthSegments, heightSegments int) (*renderer.Model, error) {
	if widthSegments < 3 || heightSegments < 2 {
		return nil, errors.New("sphere needs at least 3 width and 2 height segments")
	}

	b := &meshBuilder{}
	grid := make([][]int32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		grid[iy] = make([]int32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			position := mgl32.Vec3{
				float32(-float64(radius) * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(float64(radius) * math.Cos(v*math.Pi)),
				float32(float64(radius) * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
			normal := position
			if normal.Len() > 0 {
				normal = normal.Normalize()
			}
			grid[iy][ix] = b.vertex(position, mgl32.Vec2{float32(u), float32(1 - v)}, normal)
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			c := grid[iy][ix]
			d := grid[iy+1][ix]
			e := grid[iy+1][ix+1]
			// Skip the degenerate triangles at the poles.
			if iy != 0 {
				b.triangle(a, c, e)
			}
			if iy != heightSegments-1 {
				b.triangle(c, d, e)
			}
		}
	}

	model := b.build()
	model.Name = "sphere"
	return model, nil
}

// LoadBox builds an axis aligned box with one material group per face, in the
// order +X, -X, +Y, -Y, +Z, -Z. Groups start with nil materials.
func LoadBox(width, height, depth float32) (*renderer.Model, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, errors.New("box dimensions must be positive")
	}

	b := &meshBuilder{}
	groups := make([]renderer.MaterialGroup, 0, 6)

	// Axes are 0=x 1=y 2=z. u and v span the face, w is its normal axis.
	plane := func(u, v, w int, udir, vdir, faceWidth, faceHeight, faceDepth float32) {
		start := int32(len(b.faces))
		normal := mgl32.Vec3{}
		if faceDepth > 0 {
			normal[w] = 1
		} else {
			normal[w] = -1
		}

		var index [2][2]int32
		for iy := 0; iy <= 1; iy++ {
			y := float32(iy)*faceHeight - faceHeight/2
			for ix := 0; ix <= 1; ix++ {
				x := float32(ix)*faceWidth - faceWidth/2
				position := mgl32.Vec3{}
				position[u] = x * udir
				position[v] = y * vdir
				position[w] = faceDepth / 2
				index[iy][ix] = b.vertex(position, mgl32.Vec2{float32(ix), float32(1 - iy)}, normal)
			}
		}

		b.triangle(index[0][0], index[1][0], index[0][1])
		b.triangle(index[1][0], index[1][1], index[0][1])
		groups = append(groups, renderer.MaterialGroup{IndexStart: start, IndexCount: int32(len(b.faces)) - start})
	}

	plane(2, 1, 0, -1, -1, depth, height, width)  // +X
	plane(2, 1, 0, 1, -1, depth, height, -width)  // -X
	plane(0, 2, 1, 1, 1, width, depth, height)    // +Y
	plane(0, 2, 1, 1, -1, width, depth, -height)  // -Y
	plane(0, 1, 2, 1, -1, width, height, depth)   // +Z
	plane(0, 1, 2, -1, -1, width, height, -depth) // -Z

	model := b.build()
	model.Name = "box"
	model.MaterialGroups = groups
	return model, nil
}

// LoadGrid builds a square grid of lines on the XZ plane. The two center lines
// use centerColor, every other line uses lineColor.
func LoadGrid(size float32, divisions int, centerColor, lineColor mgl32.Vec3) (*renderer.Model, error) {
	if divisions < 1 {
		return nil, errors.New("grid needs at least one division")
	}

	b := &meshBuilder{}
	center := divisions / 2
	step := size / float32(divisions)
	halfSize := size / 2

	k := -halfSize
	for i := 0; i <= divisions; i++ {
		color := lineColor
		if i == center {
			color = centerColor
		}
		b.line(
			b.vertex(mgl32.Vec3{-halfSize, 0, k}, mgl32.Vec2{}, color),
			b.vertex(mgl32.Vec3{halfSize, 0, k}, mgl32.Vec2{}, color),
		)
		b.line(
			b.vertex(mgl32.Vec3{k, 0, -halfSize}, mgl32.Vec2{}, color),
			b.vertex(mgl32.Vec3{k, 0, halfSize}, mgl32.Vec2{}, color),
		)
		k += step
	}

	model := b.build()
	model.Name = "grid"
	model.Kind = renderer.KindGridHelper
	model.DrawMode = renderer.DRAW_LINES
	return model, nil
}

// LoadWireframe turns a triangle model into a line model over its unique edges,
// colored with color.
func LoadWireframe(model *renderer.Model, color mgl32.Vec3) *renderer.Model {
	b := &meshBuilder{}
	numVertices := len(model.Vertices) / 3
	for i := 0; i < numVertices; i++ {
		position := mgl32.Vec3{model.Vertices[i*3], model.Vertices[i*3+1], model.Vertices[i*3+2]}
		b.vertex(position, mgl32.Vec2{}, color)
	}

	seen := make(map[[2]int32]bool)
	addEdge := func(a, c int32) {
		key := [2]int32{a, c}
		if a > c {
			key = [2]int32{c, a}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		b.line(key[0], key[1])
	}
	for i := 0; i+2 < len(model.Faces); i += 3 {
		a, c, d := model.Faces[i], model.Faces[i+1], model.Faces[i+2]
		addEdge(a, c)
		addEdge(c, d)
		addEdge(d, a)
	}

	wire := b.build()
	wire.Name = model.Name + "-wireframe"
	wire.DrawMode = renderer.DRAW_LINES
	return wire
}

// LoadPointLightHelper builds the wireframe marker drawn at a point light.
func LoadPointLightHelper(light *renderer.Light, sphereSize float32) (*renderer.Model, error) {
	sphere, err := LoadSphere(sphereSize, 4, 2)
	if err != nil {
		return nil, err
	}
	helper := LoadWireframe(sphere, light.Color)
	helper.Name = light.Name + "-helper"
	helper.Kind = renderer.KindLightHelper
	helper.SetPosition(light.Position.X(), light.Position.Y(), light.Position.Z())
	return helper, nil
}
