package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSceneAddKeepsOrder(t *testing.T) {
	scene := NewScene()
	mesh := CreateModel(make([]float32, VertexStride*3), []int32{0, 1, 2})
	mesh.Name = "mesh"
	light := CreatePointLight(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{1, 1, 1}, 1, 0)

	scene.Add(mesh, light)

	objects := scene.Objects()
	if len(objects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(objects))
	}
	if objects[0] != Object(mesh) || objects[1] != Object(light) {
		t.Error("Objects should keep insertion order")
	}
}

func TestSceneAddSkipsNil(t *testing.T) {
	scene := NewScene()
	var model *Model

	scene.Add(nil)
	if scene.Len() != 0 {
		t.Errorf("Nil object should be skipped, got %d objects", scene.Len())
	}

	// A typed nil is still an object as far as the scene is concerned.
	scene.Add(model)
	if scene.Len() != 1 {
		t.Errorf("Expected typed nil to be added, got %d objects", scene.Len())
	}
}

func TestSceneCountKind(t *testing.T) {
	scene := NewScene()
	grid := CreateModel(nil, nil)
	grid.Kind = KindGridHelper
	scene.Add(
		CreateModel(nil, nil),
		CreateModel(nil, nil),
		grid,
		CreatePointLight(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, 0),
		CreateAmbientLight(mgl32.Vec3{1, 1, 1}, 1),
	)

	if n := scene.CountKind(KindMesh); n != 2 {
		t.Errorf("Expected 2 meshes, got %d", n)
	}
	if n := scene.CountKind(KindGridHelper); n != 1 {
		t.Errorf("Expected 1 grid, got %d", n)
	}
	if n := scene.CountKind(KindAmbientLight); n != 1 {
		t.Errorf("Expected 1 ambient light, got %d", n)
	}
	if len(scene.Models()) != 3 {
		t.Errorf("Expected 3 models, got %d", len(scene.Models()))
	}
	if len(scene.Lights()) != 2 {
		t.Errorf("Expected 2 lights, got %d", len(scene.Lights()))
	}
}

func TestCollectLights(t *testing.T) {
	scene := NewScene()
	scene.Add(
		CreateAmbientLight(mgl32.Vec3{1, 1, 1}, 0.5),
		CreateAmbientLight(mgl32.Vec3{1, 0, 0}, 0.5),
	)
	for i := 0; i < MaxPointLights+2; i++ {
		scene.Add(CreatePointLight(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{1, 1, 1}, 1, 0))
	}

	ambient, points := collectLights(scene)

	if ambient != (mgl32.Vec3{1, 0.5, 0.5}) {
		t.Errorf("Expected summed ambient (1,0.5,0.5), got %v", ambient)
	}
	if len(points) != MaxPointLights {
		t.Errorf("Expected %d point lights, got %d", MaxPointLights, len(points))
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xff0000)
	if c != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Expected red, got %v", c)
	}
	if HexColor(0x000000) != (mgl32.Vec3{}) {
		t.Error("Expected black")
	}
}
