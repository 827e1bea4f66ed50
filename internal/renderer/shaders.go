package renderer

import (
	"Starfield/internal/logger"
	"errors"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	isCompiled     bool
}

var errShaderCompile = errors.New("shader compilation failed")

func (shader *Shader) Compile() error {
	vertexShader, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fragmentShader, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return err
	}
	program, err := GenShaderProgram(vertexShader, fragmentShader)
	if err != nil {
		return err
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	logger.Log.Debug("Shader compiled", zap.String("shader", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to compile", zap.Uint32("shaderType", shaderType), zap.String("log", log))
		gl.DeleteShader(shader)
		return 0, errShaderCompile
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to link program", zap.String("log", log))
		gl.DeleteProgram(program)
		return 0, errShaderCompile
	}
	return program, nil
}

var meshVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec2 inTexCoord;
layout(location = 2) in vec3 inNormal;

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(model))) * inNormal;
    fragTexCoord = inTexCoord;
    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
` + "\x00"

// Lambert shading with an ambient term and up to MaxPointLights point lights.
var standardFragmentShaderSource = `#version 410 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

struct PointLight {
    vec3 position;
    vec3 color;
    float intensity;
    float distance;
    float decay;
};

uniform sampler2D textureSampler;
uniform PointLight pointLights[4];
uniform int pointLightCount;
uniform vec3 ambientColor;
uniform vec3 diffuseColor;
uniform float alpha;

out vec4 FragColor;

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);
    vec3 base = diffuseColor * texColor.rgb;
    vec3 norm = normalize(Normal);

    vec3 result = ambientColor * base;
    for (int i = 0; i < pointLightCount; i++) {
        vec3 toLight = pointLights[i].position - FragPos;
        float dist = length(toLight);
        float attenuation = 1.0;
        if (pointLights[i].distance > 0.0) {
            attenuation = pow(clamp(1.0 - dist / pointLights[i].distance, 0.0, 1.0), pointLights[i].decay);
        }
        float diff = max(dot(norm, toLight / dist), 0.0);
        result += diff * attenuation * pointLights[i].intensity * pointLights[i].color * base;
    }
    FragColor = vec4(result, alpha * texColor.a);
}
` + "\x00"

var basicFragmentShaderSource = `#version 410 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform vec3 diffuseColor;
uniform float alpha;

out vec4 FragColor;

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);
    FragColor = vec4(diffuseColor * texColor.rgb, alpha * texColor.a);
}
` + "\x00"

// Line models carry their color in the normal attribute.
var lineVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition;
layout(location = 2) in vec3 inColor;

uniform mat4 model;
uniform mat4 viewProjection;

out vec3 vertexColor;

void main() {
    vertexColor = inColor;
    gl_Position = viewProjection * model * vec4(inPosition, 1.0);
}
` + "\x00"

var lineFragmentShaderSource = `#version 410 core
in vec3 vertexColor;

out vec4 FragColor;

void main() {
    FragColor = vec4(vertexColor, 1.0);
}
` + "\x00"

// Full screen triangle, no vertex buffer needed.
var backgroundVertexShaderSource = `#version 410 core

out vec2 fragTexCoord;

void main() {
    vec2 pos = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
    fragTexCoord = pos;
    gl_Position = vec4(pos * 2.0 - 1.0, 1.0, 1.0);
}
` + "\x00"

var backgroundFragmentShaderSource = `#version 410 core
in vec2 fragTexCoord;

uniform sampler2D backgroundSampler;

out vec4 FragColor;

void main() {
    FragColor = texture(backgroundSampler, fragTexCoord);
}
` + "\x00"

func InitStandardShader() Shader {
	return Shader{
		Name:           "standard",
		vertexSource:   meshVertexShaderSource,
		fragmentSource: standardFragmentShaderSource,
	}
}

func InitBasicShader() Shader {
	return Shader{
		Name:           "basic",
		vertexSource:   meshVertexShaderSource,
		fragmentSource: basicFragmentShaderSource,
	}
}

func InitLineShader() Shader {
	return Shader{
		Name:           "line",
		vertexSource:   lineVertexShaderSource,
		fragmentSource: lineFragmentShaderSource,
	}
}

func InitBackgroundShader() Shader {
	return Shader{
		Name:           "background",
		vertexSource:   backgroundVertexShaderSource,
		fragmentSource: backgroundFragmentShaderSource,
	}
}
