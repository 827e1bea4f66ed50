// Package driver builds the starfield scene once and advances it every frame.
package driver

import (
	"Starfield/internal/loader"
	"Starfield/internal/logger"
	"Starfield/internal/renderer"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	StarCount  = 200
	StarSpread = 100 // stars land in [-StarSpread/2, StarSpread/2] on each axis

	cameraFov  = 90
	cameraNear = 0.1
	cameraFar  = 1000
)

// Per-tick torus rotation in radians.
var TorusSpin = [3]float64{0.01, 0.005, 0.01}

var CameraStart = mgl32.Vec3{0, 0, 30}

// Asset file names, relative to Options.AssetDir.
const (
	BackgroundAsset = "space.jpg"
	BoxTopAsset     = "top.png"
	BoxBottomAsset  = "bottom.png"
	BoxFrontAsset   = "front.png"
)

var ErrEmptySurface = errors.New("surface has zero size")

// Surface is the host the scene is drawn on.
type Surface interface {
	Size() (width, height int32)
	PixelRatio() float32
	Renderer() renderer.Render
	Textures() *renderer.TextureManager
	BindControls(handler renderer.InputHandler)
}

type Options struct {
	AssetDir string
	// Seed for star placement. Zero seeds from the clock.
	Seed uint64
}

// Driver owns the scene, camera and controls. Setup runs once, Tick once per frame.
type Driver struct {
	surface  Surface
	opts     Options
	renderer renderer.Render

	scene    *renderer.Scene
	camera   *renderer.Camera
	controls *renderer.OrbitControls

	torus *renderer.Model
	box   *renderer.Model
	stars []*renderer.Model

	frames uint64
}

func New(surface Surface, opts Options) *Driver {
	return &Driver{surface: surface, opts: opts}
}

func (d *Driver) Setup() error {
	width, height := d.surface.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("setup scene: %w (%dx%d)", ErrEmptySurface, width, height)
	}

	d.scene = renderer.NewScene()
	d.camera = renderer.NewPerspectiveCamera(cameraFov, float32(width)/float32(height), cameraNear, cameraFar)
	d.camera.SetPosition(CameraStart.X(), CameraStart.Y(), CameraStart.Z())

	d.renderer = d.surface.Renderer()
	d.renderer.SetPixelRatio(d.surface.PixelRatio())
	d.renderer.SetSize(width, height)

	torus, err := loader.LoadTorus(4, 0.5, 16, 100)
	if err != nil {
		return fmt.Errorf("setup torus: %w", err)
	}
	torus.Material = renderer.NewStandardMaterial(renderer.HexColor(0xffda00))
	d.torus = torus

	white := renderer.HexColor(0xffffff)
	pointLight := renderer.CreatePointLight(mgl32.Vec3{5, 5, 5}, white, 1, 0)
	ambientLight := renderer.CreateAmbientLight(white, 1)

	helper, err := loader.LoadPointLightHelper(pointLight, 1)
	if err != nil {
		return fmt.Errorf("setup light helper: %w", err)
	}
	grid, err := loader.LoadGrid(200, 50, renderer.HexColor(0x444444), renderer.HexColor(0x888888))
	if err != nil {
		return fmt.Errorf("setup grid: %w", err)
	}

	d.scene.Add(torus, pointLight, ambientLight, helper, grid)

	if err := d.addStars(); err != nil {
		return err
	}
	if err := d.addBox(); err != nil {
		return err
	}

	d.scene.Background = d.loadTexture(BackgroundAsset)

	d.controls = renderer.NewOrbitControls(d.camera, float32(height))
	d.surface.BindControls(d.controls)

	logger.Log.Info("Scene ready",
		zap.Int("objects", d.scene.Len()),
		zap.Int("stars", len(d.stars)),
		zap.Int32("width", width),
		zap.Int32("height", height),
		zap.Float32("pixelRatio", d.surface.PixelRatio()))
	return nil
}

func (d *Driver) addStars() error {
	star, err := loader.LoadSphere(0.25, 24, 24)
	if err != nil {
		return fmt.Errorf("setup star: %w", err)
	}
	star.Name = "star"
	star.Material = renderer.NewStandardMaterial(renderer.HexColor(0xffffff))

	seed := d.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	spread := distuv.Uniform{
		Min: -StarSpread / 2,
		Max: StarSpread / 2,
		Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}

	d.stars = make([]*renderer.Model, 0, StarCount)
	for i := 0; i < StarCount; i++ {
		s := star.Clone()
		s.SetPosition(float32(spread.Rand()), float32(spread.Rand()), float32(spread.Rand()))
		d.stars = append(d.stars, s)
		d.scene.Add(s)
	}
	logger.Log.Debug("Stars placed", zap.Int("count", StarCount), zap.Uint64("seed", seed))
	return nil
}

func (d *Driver) addBox() error {
	box, err := loader.LoadBox(3, 3, 3)
	if err != nil {
		return fmt.Errorf("setup box: %w", err)
	}

	top := renderer.NewBasicMaterial(d.loadTexture(BoxTopAsset))
	bottom := renderer.NewBasicMaterial(d.loadTexture(BoxBottomAsset))
	front := renderer.NewBasicMaterial(d.loadTexture(BoxFrontAsset))

	faces := [6]*renderer.Material{
		loader.FacePosX: front,
		loader.FaceNegX: front,
		loader.FacePosY: top,
		loader.FaceNegY: bottom,
		loader.FacePosZ: front,
		loader.FaceNegZ: front,
	}
	for i := range box.MaterialGroups {
		box.MaterialGroups[i].Material = faces[i]
	}

	d.box = box
	d.scene.Add(box)
	return nil
}

func (d *Driver) loadTexture(name string) *renderer.Texture {
	return d.surface.Textures().Load(filepath.Join(d.opts.AssetDir, name))
}

// Tick advances the scene by one frame and renders it.
func (d *Driver) Tick() {
	d.torus.Rotate(TorusSpin[0], TorusSpin[1], TorusSpin[2])
	d.controls.Update()
	d.renderer.Render(d.camera, d.scene)
	d.frames++
}

// Start and Update let the host loop drive the scene as a behaviour.
func (d *Driver) Start() error { return d.Setup() }
func (d *Driver) Update() { d.Tick() }

func (d *Driver) Frames() uint64 { return d.frames }

func (d *Driver) Scene() *renderer.Scene { return d.scene }
func (d *Driver) Camera() *renderer.Camera { return d.camera }
func (d *Driver) Controls() *renderer.OrbitControls { return d.controls }
func (d *Driver) Torus() *renderer.Model { return d.torus }
func (d *Driver) Box() *renderer.Model { return d.box }
func (d *Driver) Stars() []*renderer.Model { return d.stars }
