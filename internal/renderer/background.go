package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Background draws a texture stretched over the whole viewport behind the scene.
type Background struct {
	VAO    uint32
	Shader Shader
}

// CreateBackground compiles the background shader. The full screen triangle is
// generated in the vertex shader, the VAO only exists because core profile needs one bound.
func CreateBackground() (*Background, error) {
	background := &Background{Shader: InitBackgroundShader()}
	if err := background.Shader.Compile(); err != nil {
		return nil, err
	}
	gl.GenVertexArrays(1, &background.VAO)
	return background, nil
}

func (b *Background) Render(textureID uint32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)

	b.Shader.Use()
	b.Shader.uniforms.SetInt("backgroundSampler", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.BindVertexArray(b.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
}

// Cleanup cleans up background resources
func (b *Background) Cleanup() {
	gl.DeleteVertexArrays(1, &b.VAO)
	b.Shader.Delete()
}
