package driver

import (
	"Starfield/internal/behaviour"
	"Starfield/internal/renderer"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderCall struct {
	camera   *renderer.Camera
	scene    *renderer.Scene
	position mgl32.Vec3
}

type fakeRenderer struct {
	pixelRatio float32
	width      int32
	height     int32
	calls      []renderCall
}

func (r *fakeRenderer) Init(width, height int32) error { return nil }
func (r *fakeRenderer) SetPixelRatio(ratio float32) { r.pixelRatio = ratio }
func (r *fakeRenderer) SetSize(width, height int32) { r.width, r.height = width, height }
func (r *fakeRenderer) Cleanup() {}
func (r *fakeRenderer) Render(camera *renderer.Camera, scene *renderer.Scene) {
	r.calls = append(r.calls, renderCall{camera: camera, scene: scene, position: camera.Position})
}

type fakeSurface struct {
	width, height int32
	ratio         float32
	rend          *fakeRenderer
	textures      *renderer.TextureManager
	bound         renderer.InputHandler
}

func newFakeSurface(t *testing.T, width, height int32) *fakeSurface {
	t.Helper()
	textures := renderer.NewTextureManager(1)
	t.Cleanup(textures.Close)
	return &fakeSurface{
		width:    width,
		height:   height,
		ratio:    2,
		rend:     &fakeRenderer{},
		textures: textures,
	}
}

func (s *fakeSurface) Size() (int32, int32) { return s.width, s.height }
func (s *fakeSurface) PixelRatio() float32 { return s.ratio }
func (s *fakeSurface) Renderer() renderer.Render { return s.rend }
func (s *fakeSurface) Textures() *renderer.TextureManager { return s.textures }
func (s *fakeSurface) BindControls(handler renderer.InputHandler) { s.bound = handler }

func setupDriver(t *testing.T, seed uint64) (*Driver, *fakeSurface) {
	t.Helper()
	surface := newFakeSurface(t, 1024, 768)
	d := New(surface, Options{AssetDir: t.TempDir(), Seed: seed})
	require.NoError(t, d.Setup())
	return d, surface
}

func TestSetupObjectCount(t *testing.T) {
	d, _ := setupDriver(t, 1)

	assert.Equal(t, 206, d.Scene().Len())
	assert.Equal(t, StarCount, len(d.Stars()))
	assert.Equal(t, 1, d.Scene().CountKind(renderer.KindPointLight))
	assert.Equal(t, 1, d.Scene().CountKind(renderer.KindAmbientLight))
	assert.Equal(t, 1, d.Scene().CountKind(renderer.KindLightHelper))
	assert.Equal(t, 1, d.Scene().CountKind(renderer.KindGridHelper))
	assert.Equal(t, 202, d.Scene().CountKind(renderer.KindMesh))
}

func TestSetupInsertionOrder(t *testing.T) {
	d, _ := setupDriver(t, 1)
	objects := d.Scene().Objects()

	var kinds []renderer.ObjectKind
	for _, obj := range objects[:6] {
		kinds = append(kinds, obj.ObjectKind())
	}
	want := []renderer.ObjectKind{
		renderer.KindMesh,
		renderer.KindPointLight,
		renderer.KindAmbientLight,
		renderer.KindLightHelper,
		renderer.KindGridHelper,
		renderer.KindMesh,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("object kinds mismatch (-want +got):\n%s", diff)
	}

	assert.Same(t, d.Torus(), objects[0])
	assert.Same(t, d.Stars()[0], objects[5])
	assert.Same(t, d.Box(), objects[len(objects)-1])
}

func TestSetupLights(t *testing.T) {
	d, _ := setupDriver(t, 1)
	lights := d.Scene().Lights()
	require.Len(t, lights, 2)

	point := lights[0]
	assert.Equal(t, renderer.POINT_LIGHT, point.Mode)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, point.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, point.Color)
	assert.Equal(t, float32(1), point.Intensity)

	ambient := lights[1]
	assert.Equal(t, renderer.AMBIENT_LIGHT, ambient.Mode)
	assert.Equal(t, float32(1), ambient.Intensity)

	helper := d.Scene().Objects()[3].(*renderer.Model)
	assert.Equal(t, point.Position, helper.Position)
}

func TestStarsWithinSpread(t *testing.T) {
	d, _ := setupDriver(t, 42)

	for i, star := range d.Stars() {
		for axis := 0; axis < 3; axis++ {
			v := star.Position[axis]
			if v < -50 || v > 50 {
				t.Fatalf("star %d axis %d out of range: %v", i, axis, v)
			}
		}
		assert.Equal(t, mgl32.Vec3{1, 1, 1}, star.Material.DiffuseColor)
	}
}

func TestStarsAreSpreadOut(t *testing.T) {
	d, _ := setupDriver(t, 7)

	var minX, maxX float32 = 50, -50
	for _, star := range d.Stars() {
		minX = min(minX, star.Position.X())
		maxX = max(maxX, star.Position.X())
	}
	assert.Less(t, minX, float32(-25))
	assert.Greater(t, maxX, float32(25))
}

func TestStarsFollowSeed(t *testing.T) {
	positions := func(seed uint64) []mgl32.Vec3 {
		d, _ := setupDriver(t, seed)
		var out []mgl32.Vec3
		for _, star := range d.Stars() {
			out = append(out, star.Position)
		}
		return out
	}

	if diff := cmp.Diff(positions(99), positions(99)); diff != "" {
		t.Errorf("same seed should place stars identically (-first +second):\n%s", diff)
	}
	assert.NotEqual(t, positions(99), positions(100))
}

func TestStarsShareGeometry(t *testing.T) {
	d, _ := setupDriver(t, 1)
	stars := d.Stars()

	assert.Same(t, &stars[0].Faces[0], &stars[1].Faces[0])
	assert.NotSame(t, stars[0].Material, stars[1].Material)
}

func TestCameraStart(t *testing.T) {
	d, _ := setupDriver(t, 1)
	camera := d.Camera()

	assert.Equal(t, mgl32.Vec3{0, 0, 30}, camera.Position)
	assert.Equal(t, float32(90), camera.Fov)
	assert.Equal(t, float32(0.1), camera.Near)
	assert.Equal(t, float32(1000), camera.Far)
	assert.InDelta(t, 1024.0/768.0, camera.AspectRatio, 1e-6)
}

func TestSetupSizesRenderer(t *testing.T) {
	_, surface := setupDriver(t, 1)

	assert.Equal(t, float32(2), surface.rend.pixelRatio)
	assert.Equal(t, int32(1024), surface.rend.width)
	assert.Equal(t, int32(768), surface.rend.height)
	assert.Empty(t, surface.rend.calls, "setup must not render")
}

func TestSetupBindsControls(t *testing.T) {
	d, surface := setupDriver(t, 1)

	require.NotNil(t, surface.bound)
	assert.Same(t, d.Controls(), surface.bound)
	assert.Same(t, d.Camera(), d.Controls().Camera())
}

func TestSetupRejectsEmptySurface(t *testing.T) {
	surface := newFakeSurface(t, 0, 768)
	d := New(surface, Options{})

	err := d.Setup()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySurface))
}

func TestTickRotatesTorus(t *testing.T) {
	d, _ := setupDriver(t, 1)

	const ticks = 500
	for i := 0; i < ticks; i++ {
		d.Tick()
	}

	rotation := d.Torus().Rotation
	assert.InDelta(t, ticks*0.01, rotation.X(), 1e-9)
	assert.InDelta(t, ticks*0.005, rotation.Y(), 1e-9)
	assert.InDelta(t, ticks*0.01, rotation.Z(), 1e-9)
}

func TestTickRendersOncePerFrame(t *testing.T) {
	d, surface := setupDriver(t, 1)

	for i := 0; i < 10; i++ {
		d.Tick()
	}

	require.Len(t, surface.rend.calls, 10)
	assert.Equal(t, uint64(10), d.Frames())
	for _, call := range surface.rend.calls {
		assert.Same(t, d.Camera(), call.camera)
		assert.Same(t, d.Scene(), call.scene)
		assert.Equal(t, mgl32.Vec3{0, 0, 30}, call.position)
	}
}

func TestTickAppliesControlInput(t *testing.T) {
	d, surface := setupDriver(t, 1)

	surface.bound.Zoom(1)
	d.Tick()

	require.Len(t, surface.rend.calls, 1)
	assert.Less(t, surface.rend.calls[0].position.Z(), float32(30))
}

func TestTickDoesNotAddObjects(t *testing.T) {
	d, _ := setupDriver(t, 1)

	for i := 0; i < 5; i++ {
		d.Tick()
	}
	assert.Equal(t, 206, d.Scene().Len())
}

func TestBoxTextures(t *testing.T) {
	d, _ := setupDriver(t, 1)
	groups := d.Box().MaterialGroups
	require.Len(t, groups, 6)

	uses := make(map[*renderer.Texture]int)
	for _, group := range groups {
		require.NotNil(t, group.Material)
		assert.True(t, group.Material.Unlit)
		uses[group.Material.Texture]++
	}
	assert.Len(t, uses, 3)

	front := groups[0].Material.Texture
	assert.Equal(t, 4, uses[front])
	assert.Equal(t, BoxFrontAsset, filepath.Base(front.Path))
	assert.Equal(t, BoxTopAsset, filepath.Base(groups[2].Material.Texture.Path))
	assert.Equal(t, BoxBottomAsset, filepath.Base(groups[3].Material.Texture.Path))

	for _, i := range []int{0, 1, 4, 5} {
		assert.Same(t, front, groups[i].Material.Texture, "face %d", i)
	}
}

func TestBackgroundTexture(t *testing.T) {
	d, surface := setupDriver(t, 1)

	require.NotNil(t, d.Scene().Background)
	assert.Equal(t, BackgroundAsset, filepath.Base(d.Scene().Background.Path))

	surface.textures.Wait()
	assert.Equal(t, 4, surface.textures.GetStats().TotalTextures)
	assert.Equal(t, renderer.TEXTURE_FAILED, d.Scene().Background.State(), "missing assets leave the handle failed")
}

func TestDriverAsBehaviour(t *testing.T) {
	surface := newFakeSurface(t, 800, 600)
	d := New(surface, Options{Seed: 3})

	manager := behaviour.NewBehaviourManager()
	manager.Add(d)
	for i := 0; i < 3; i++ {
		require.NoError(t, manager.UpdateAll())
	}

	assert.Equal(t, 206, d.Scene().Len())
	assert.Equal(t, uint64(3), d.Frames())
	assert.Len(t, surface.rend.calls, 3)
}
