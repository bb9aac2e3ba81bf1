// Package shadergl implements shaders.Driver on top of OpenGL 4.1 core.
package shadergl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/nw-engine/vision/assert"
	"github.com/nw-engine/vision/shaders"
)

var _ shaders.Driver = &Driver{}

// Driver requires a current OpenGL context on the calling thread, and gl.Init to have been called
type Driver struct {
}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) CreateProgram() (uint32, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return 0, fmt.Errorf("failed to create OpenGl shader program. OpenGl Error=%d", gl.GetError())
	}

	return id, nil
}

func (d *Driver) DeleteProgram(progId uint32) {
	gl.DeleteProgram(progId)
}

func (d *Driver) LinkProgram(progId uint32) error {

	gl.LinkProgram(progId)

	var linkedSuccessfully int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(progId, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return errors.New("unknown link error")
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(progId, logLength, nil, log)

	return errors.New(gl.GoStr(log))
}

func (d *Driver) UseProgram(progId uint32) {
	gl.UseProgram(progId)
}

func (d *Driver) CreateShader(shaderType shaders.ShaderType) (uint32, error) {

	shaderId := gl.CreateShader(shaderTypeToGl(shaderType))
	if shaderId == 0 {
		return 0, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	return shaderId, nil
}

func (d *Driver) DeleteShader(shaderId uint32) {
	gl.DeleteShader(shaderId)
}

func (d *Driver) CompileShader(shaderId uint32, src string) error {

	shaderCStr, shaderFree := gl.Strs(src + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	return getShaderCompileErrors(shaderId)
}

func getShaderCompileErrors(shaderId uint32) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return errors.New("unknown compile error")
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	return errors.New(gl.GoStr(log))
}

func (d *Driver) AttachShader(progId, shaderId uint32) {
	gl.AttachShader(progId, shaderId)
}

func (d *Driver) DetachShader(progId, shaderId uint32) {
	gl.DetachShader(progId, shaderId)
}

func (d *Driver) UniformLocation(progId uint32, name string) int32 {
	return gl.GetUniformLocation(progId, gl.Str(name+"\x00"))
}

func (d *Driver) AttribLocation(progId uint32, name string) int32 {
	return gl.GetAttribLocation(progId, gl.Str(name+"\x00"))
}

func (d *Driver) UniformBlockIndex(progId uint32, name string) int32 {

	index := gl.GetUniformBlockIndex(progId, gl.Str(name+"\x00"))
	if index == gl.INVALID_INDEX {
		return -1
	}

	return int32(index)
}

func (d *Driver) UniformBlockBinding(progId uint32, blockIndex int32, bindPoint uint32) {
	gl.UniformBlockBinding(progId, uint32(blockIndex), bindPoint)
}

func (d *Driver) SetUniformInts(progId uint32, loc int32, vals []int32) {
	gl.ProgramUniform1iv(progId, loc, int32(len(vals)), &vals[0])
}

func (d *Driver) SetUniformUints(progId uint32, loc int32, vals []uint32) {
	gl.ProgramUniform1uiv(progId, loc, int32(len(vals)), &vals[0])
}

func (d *Driver) SetUniformFloats(progId uint32, loc int32, vals []float32) {
	gl.ProgramUniform1fv(progId, loc, int32(len(vals)), &vals[0])
}

func (d *Driver) SetUniformVec2(progId uint32, loc int32, v *gglm.Vec2) {
	gl.ProgramUniform2fv(progId, loc, 1, &v.Data[0])
}

func (d *Driver) SetUniformVec3(progId uint32, loc int32, v *gglm.Vec3) {
	gl.ProgramUniform3fv(progId, loc, 1, &v.Data[0])
}

func (d *Driver) SetUniformVec4(progId uint32, loc int32, v *gglm.Vec4) {
	gl.ProgramUniform4fv(progId, loc, 1, &v.Data[0])
}

func (d *Driver) SetUniformMat4(progId uint32, loc int32, m *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(progId, loc, 1, false, &m.Data[0][0])
}

func (d *Driver) BindTexture(unit uint32, target shaders.TextureTarget, texId uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(textureTargetToGl(target), texId)
}

func shaderTypeToGl(s shaders.ShaderType) uint32 {

	switch s {
	case shaders.ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case shaders.ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case shaders.ShaderType_Geometry:
		return gl.GEOMETRY_SHADER

	default:
		assert.T(false, "Unknown shader type '%d'", s)
		return 0
	}
}

func textureTargetToGl(t shaders.TextureTarget) uint32 {

	switch t {
	case shaders.TextureTarget_2D:
		return gl.TEXTURE_2D
	case shaders.TextureTarget_2DArray:
		return gl.TEXTURE_2D_ARRAY
	case shaders.TextureTarget_Cubemap:
		return gl.TEXTURE_CUBE_MAP
	case shaders.TextureTarget_CubemapArray:
		return gl.TEXTURE_CUBE_MAP_ARRAY

	default:
		assert.T(false, "Unknown texture target '%d'", t)
		return 0
	}
}
