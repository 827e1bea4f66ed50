package renderer

import (
	"Starfield/internal/logger"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type OpenGLRenderer struct {
	standardShader Shader
	basicShader    Shader
	lineShader     Shader
	background     *Background
	placeholderID  uint32 // 1x1 white texture bound while real textures load
	currentProgram uint32 // Track currently bound shader to avoid unnecessary switches
	currentTexture uint32
	uploaded       []*Model
	textures       []*Texture

	width      int32
	height     int32
	pixelRatio float32
	frustum    Frustum
	frames     uint64

	initGL func() error
}

func NewOpenGLRenderer() *OpenGLRenderer {
	return &OpenGLRenderer{pixelRatio: 1, initGL: gl.Init}
}

// Init must run on the thread owning the GL context.
func (rend *OpenGLRenderer) Init(width, height int32) error {
	if err := rend.initGL(); err != nil {
		return fmt.Errorf("initialize OpenGL: %w", err)
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	rend.standardShader = InitStandardShader()
	rend.basicShader = InitBasicShader()
	rend.lineShader = InitLineShader()
	for _, shader := range []*Shader{&rend.standardShader, &rend.basicShader, &rend.lineShader} {
		if err := shader.Compile(); err != nil {
			return fmt.Errorf("compile %s shader: %w", shader.Name, err)
		}
	}

	background, err := CreateBackground()
	if err != nil {
		return fmt.Errorf("create background: %w", err)
	}
	rend.background = background

	rend.placeholderID = rend.createPlaceholderTexture()
	rend.SetSize(width, height)

	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int32("width", width),
		zap.Int32("height", height))
	return nil
}

func (rend *OpenGLRenderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	rend.pixelRatio = ratio
	if rend.width > 0 && rend.height > 0 {
		rend.updateViewport()
	}
}

// SetSize sets the output size in window units. The framebuffer is that size
// times the pixel ratio.
func (rend *OpenGLRenderer) SetSize(width, height int32) {
	rend.width = width
	rend.height = height
	rend.updateViewport()
}

func (rend *OpenGLRenderer) updateViewport() {
	gl.Viewport(0, 0, int32(float32(rend.width)*rend.pixelRatio), int32(float32(rend.height)*rend.pixelRatio))
}

func (rend *OpenGLRenderer) Frames() uint64 {
	return rend.frames
}

func (rend *OpenGLRenderer) Render(camera *Camera, scene *Scene) {
	gl.ClearColor(ClearColorR, ClearColorG, ClearColorB, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if scene.Background != nil && rend.background != nil {
		if id := rend.textureID(scene.Background); id != rend.placeholderID {
			rend.background.Render(id)
			rend.currentProgram = rend.background.Shader.program
			rend.currentTexture = id
		}
	}

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	// Culling : https://learnopengl.com/Advanced-OpenGL/Face-culling
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	viewProjection := camera.GetViewProjection()
	if FrustumCullingEnabled {
		rend.frustum = camera.CalculateFrustum()
	}

	ambient, pointLights := collectLights(scene)

	for _, model := range scene.Models() {
		if model.VAO == 0 {
			rend.uploadModel(model)
		}
		model.UpdateModelMatrix()

		if FrustumCullingEnabled && model.BoundingSphereRadius > 0 &&
			!rend.frustum.IntersectsSphere(model.BoundingSphereCenter, model.BoundingSphereRadius) {
			continue
		}

		if model.DrawMode == DRAW_LINES {
			rend.drawLines(model, viewProjection)
			continue
		}

		gl.BindVertexArray(model.VAO)
		for _, group := range model.Groups() {
			shader := &rend.standardShader
			if group.Material.Unlit {
				shader = &rend.basicShader
			}
			rend.useShader(shader)

			shader.uniforms.SetMat4("viewProjection", viewProjection)
			shader.uniforms.SetMat4("model", model.ModelMatrix)
			if !group.Material.Unlit {
				rend.setLightUniforms(shader, ambient, pointLights)
			}
			rend.setMaterialUniforms(shader, group.Material)

			gl.DrawElements(gl.TRIANGLES, group.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(int(group.IndexStart)*4))
		}
		gl.BindVertexArray(0)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	rend.frames++
}

func (rend *OpenGLRenderer) drawLines(model *Model, viewProjection mgl32.Mat4) {
	rend.useShader(&rend.lineShader)
	rend.lineShader.uniforms.SetMat4("viewProjection", viewProjection)
	rend.lineShader.uniforms.SetMat4("model", model.ModelMatrix)

	gl.BindVertexArray(model.VAO)
	gl.DrawElements(gl.LINES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) useShader(shader *Shader) {
	if rend.currentProgram != shader.program {
		shader.Use()
		rend.currentProgram = shader.program
	}
}

// collectLights sums ambient lights and gathers up to MaxPointLights point lights.
func collectLights(scene *Scene) (mgl32.Vec3, []*Light) {
	var ambient mgl32.Vec3
	var points []*Light
	for _, light := range scene.Lights() {
		switch light.Mode {
		case AMBIENT_LIGHT:
			ambient = ambient.Add(light.Color.Mul(light.Intensity))
		case POINT_LIGHT:
			if len(points) < MaxPointLights {
				points = append(points, light)
			}
		}
	}
	return ambient, points
}

func (rend *OpenGLRenderer) setLightUniforms(shader *Shader, ambient mgl32.Vec3, pointLights []*Light) {
	shader.uniforms.SetVec3("ambientColor", ambient)
	shader.uniforms.SetInt("pointLightCount", int32(len(pointLights)))
	for i, light := range pointLights {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		shader.uniforms.SetVec3(prefix+"position", light.Position)
		shader.uniforms.SetVec3(prefix+"color", light.Color)
		shader.uniforms.SetFloat(prefix+"intensity", light.Intensity)
		shader.uniforms.SetFloat(prefix+"distance", light.Distance)
		shader.uniforms.SetFloat(prefix+"decay", light.Decay)
	}
}

func (rend *OpenGLRenderer) setMaterialUniforms(shader *Shader, material *Material) {
	shader.uniforms.SetVec3("diffuseColor", material.DiffuseColor)
	shader.uniforms.SetFloat("alpha", material.Alpha)
	shader.uniforms.SetInt("textureSampler", 0)

	textureID := rend.placeholderID
	if material.Texture != nil {
		textureID = rend.textureID(material.Texture)
	}
	if textureID != rend.currentTexture {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, textureID)
		rend.currentTexture = textureID
	}
}

// textureID uploads a freshly decoded texture and returns its id, or the
// placeholder while it is still loading or after it failed.
func (rend *OpenGLRenderer) textureID(texture *Texture) uint32 {
	switch texture.State() {
	case TEXTURE_UPLOADED:
		return texture.ID()
	case TEXTURE_DECODED:
		pixels := texture.takePixels()
		if pixels == nil {
			return rend.placeholderID
		}
		id := uploadTexture(pixels)
		texture.markUploaded(id)
		rend.textures = append(rend.textures, texture)
		logger.Log.Debug("Texture uploaded", zap.String("path", texture.Path), zap.Uint32("textureID", id))
		return id
	}
	return rend.placeholderID
}

func (rend *OpenGLRenderer) uploadModel(model *Model) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo
	model.IsDirty = true

	rend.uploaded = append(rend.uploaded, model)
}

func (rend *OpenGLRenderer) createPlaceholderTexture() uint32 {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return uploadTexture(img)
}

func uploadTexture(rgba *image.RGBA) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return textureID
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, model := range rend.uploaded {
		gl.DeleteVertexArrays(1, &model.VAO)
		gl.DeleteBuffers(1, &model.VBO)
		gl.DeleteBuffers(1, &model.EBO)
		model.VAO, model.VBO, model.EBO = 0, 0, 0
	}
	rend.uploaded = nil

	for _, texture := range rend.textures {
		id := texture.ID()
		gl.DeleteTextures(1, &id)
	}
	rend.textures = nil
	gl.DeleteTextures(1, &rend.placeholderID)

	if rend.background != nil {
		rend.background.Cleanup()
	}
	rend.standardShader.Delete()
	rend.basicShader.Delete()
	rend.lineShader.Delete()
}
