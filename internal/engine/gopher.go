package engine

import (
	"Starfield/internal/behaviour"
	"Starfield/internal/config"
	"Starfield/internal/logger"
	"Starfield/internal/renderer"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Gopher owns the window, the GL renderer and the behaviours driven by the
// render loop. It is the rendering surface handed to scene drivers.
type Gopher struct {
	Width  int32
	Height int32
	Title  string

	rendererAPI *renderer.OpenGLRenderer
	textures    *renderer.TextureManager
	behaviours  *behaviour.BehaviourManager
	window      *glfw.Window
	pointer     pointerRouter
}

func NewGopher(cfg config.Window, textures *renderer.TextureManager) *Gopher {
	logger.Log.Info("Gopher initializing...",
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height))
	return &Gopher{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Title:       cfg.Title,
		rendererAPI: renderer.NewOpenGLRenderer(),
		textures:    textures,
		behaviours:  behaviour.NewBehaviourManager(),
	}
}

// AddBehaviour registers a behaviour. Start runs on the first frame, once the
// GL context exists.
func (gopher *Gopher) AddBehaviour(b behaviour.PlayerBehaviour) {
	gopher.behaviours.Add(b)
}

// Render opens the window at (x, y) and blocks until it is closed.
func (gopher *Gopher) Render(x, y int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create glfw window: %w", err)
	}
	gopher.window = window
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	window.SetPos(x, y)

	fbWidth, fbHeight := window.GetFramebufferSize()
	if err := gopher.rendererAPI.Init(int32(fbWidth), int32(fbHeight)); err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}

	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	window.SetCursorPosCallback(gopher.cursorCallback)
	window.SetMouseButtonCallback(gopher.mouseButtonCallback)
	window.SetScrollCallback(gopher.scrollCallback)

	return gopher.RenderLoop()
}

// RenderLoop runs until the window closes or a behaviour fails. The failure
// is returned once GL resources are released.
func (gopher *Gopher) RenderLoop() error {
	err := runFrames(gopher.behaviours, gopher.window.ShouldClose, func() {
		gopher.window.SwapBuffers()
		glfw.PollEvents()
	})
	if err != nil {
		logger.Log.Error("Behaviour failed, closing window", zap.Error(err))
	}

	logger.Log.Info("Render loop finished", zap.Uint64("frames", gopher.rendererAPI.Frames()))
	gopher.rendererAPI.Cleanup()
	return err
}

// runFrames updates the behaviours once per frame and calls endFrame after
// each update. It stops at the first behaviour error.
func runFrames(behaviours *behaviour.BehaviourManager, shouldClose func() bool, endFrame func()) error {
	for !shouldClose() {
		if err := behaviours.UpdateAll(); err != nil {
			return fmt.Errorf("render loop: %w", err)
		}
		endFrame()
	}
	return nil
}

// ApplyRenderSettings sets the renderer toggles. Call it before Render so
// wireframe mode is picked up by the renderer's Init.
func (gopher *Gopher) ApplyRenderSettings(settings config.Render) {
	gopher.SetDebugMode(settings.Wireframe)
	gopher.SetFrustumCulling(settings.FrustumCulling)
	gopher.SetFaceCulling(settings.FaceCulling)
	renderer.DepthTestEnabled = settings.DepthTest
	renderer.ClearColorR = settings.ClearColor[0]
	renderer.ClearColorG = settings.ClearColor[1]
	renderer.ClearColorB = settings.ClearColor[2]
}

func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

func (gopher *Gopher) SetFrustumCulling(enabled bool) {
	renderer.FrustumCullingEnabled = enabled
}

func (gopher *Gopher) SetFaceCulling(enabled bool) {
	renderer.FaceCullingEnabled = enabled
}

// Size returns the window size in screen coordinates.
func (gopher *Gopher) Size() (int32, int32) {
	return gopher.Width, gopher.Height
}

// PixelRatio is the framebuffer to window size ratio, 2 on most HiDPI screens.
func (gopher *Gopher) PixelRatio() float32 {
	if gopher.window == nil {
		return 1
	}
	fbWidth, _ := gopher.window.GetFramebufferSize()
	width, _ := gopher.window.GetSize()
	if width == 0 {
		return 1
	}
	return float32(fbWidth) / float32(width)
}

func (gopher *Gopher) Renderer() renderer.Render {
	return gopher.rendererAPI
}

func (gopher *Gopher) Textures() *renderer.TextureManager {
	return gopher.textures
}

// BindControls routes pointer input from the window to handler.
func (gopher *Gopher) BindControls(handler renderer.InputHandler) {
	gopher.pointer.handler = handler
}

func (gopher *Gopher) cursorCallback(w *glfw.Window, xpos, ypos float64) {
	gopher.pointer.move(xpos, ypos)
}

func (gopher *Gopher) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		x, y := w.GetCursorPos()
		gopher.pointer.press(button, x, y)
	case glfw.Release:
		gopher.pointer.release(button)
	}
}

func (gopher *Gopher) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	gopher.pointer.scroll(yoff)
}
