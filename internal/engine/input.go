package engine

import (
	"Starfield/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// pointerRouter turns raw glfw pointer events into orbit input: left drag
// rotates, right drag pans, the wheel zooms.
type pointerRouter struct {
	handler  renderer.InputHandler
	button   glfw.MouseButton
	dragging bool
	lastX    float64
	lastY    float64
}

func (p *pointerRouter) press(button glfw.MouseButton, x, y float64) {
	if button != glfw.MouseButtonLeft && button != glfw.MouseButtonRight {
		return
	}
	p.button = button
	p.dragging = true
	p.lastX, p.lastY = x, y
}

func (p *pointerRouter) release(button glfw.MouseButton) {
	if p.dragging && button == p.button {
		p.dragging = false
	}
}

func (p *pointerRouter) move(x, y float64) {
	if !p.dragging {
		return
	}
	dx := float32(x - p.lastX)
	dy := float32(y - p.lastY)
	p.lastX, p.lastY = x, y
	if p.handler == nil || (dx == 0 && dy == 0) {
		return
	}

	switch p.button {
	case glfw.MouseButtonLeft:
		p.handler.Rotate(dx, dy)
	case glfw.MouseButtonRight:
		p.handler.Pan(dx, dy)
	}
}

func (p *pointerRouter) scroll(yoff float64) {
	if p.handler == nil || yoff == 0 {
		return
	}
	p.handler.Zoom(float32(yoff))
}
