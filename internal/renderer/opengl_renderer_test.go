package renderer

import (
	"errors"
	"testing"
)

func TestOpenGLRendererInitReportsGLFailure(t *testing.T) {
	errNoContext := errors.New("no current context")
	rend := NewOpenGLRenderer()
	rend.initGL = func() error { return errNoContext }

	err := rend.Init(800, 600)

	if !errors.Is(err, errNoContext) {
		t.Fatalf("Expected Init to return the GL error, got %v", err)
	}
	if rend.background != nil {
		t.Error("Failed Init should stop before creating GL resources")
	}
}

func TestOpenGLRendererSatisfiesRender(t *testing.T) {
	var _ Render = NewOpenGLRenderer()
}
