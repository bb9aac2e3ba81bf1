package shaders

import "github.com/bloeys/gglm/gglm"

// Driver is the native graphics API a shader program forwards its work to.
//
// Ids of 0 mean 'no object', same as OpenGL. Lookups return -1 for names that don't exist.
// All calls must happen on the thread that owns the graphics context.
type Driver interface {
	CreateProgram() (uint32, error)
	DeleteProgram(progId uint32)
	// LinkProgram returns the driver's info log as the error when linking fails
	LinkProgram(progId uint32) error
	UseProgram(progId uint32)

	CreateShader(shaderType ShaderType) (uint32, error)
	DeleteShader(shaderId uint32)
	// CompileShader returns the driver's info log as the error when compilation fails
	CompileShader(shaderId uint32, src string) error
	AttachShader(progId, shaderId uint32)
	DetachShader(progId, shaderId uint32)

	UniformLocation(progId uint32, name string) int32
	AttribLocation(progId uint32, name string) int32
	UniformBlockIndex(progId uint32, name string) int32
	UniformBlockBinding(progId uint32, blockIndex int32, bindPoint uint32)

	SetUniformInts(progId uint32, loc int32, vals []int32)
	SetUniformUints(progId uint32, loc int32, vals []uint32)
	SetUniformFloats(progId uint32, loc int32, vals []float32)
	SetUniformVec2(progId uint32, loc int32, v *gglm.Vec2)
	SetUniformVec3(progId uint32, loc int32, v *gglm.Vec3)
	SetUniformVec4(progId uint32, loc int32, v *gglm.Vec4)
	SetUniformMat4(progId uint32, loc int32, m *gglm.Mat4)

	BindTexture(unit uint32, target TextureTarget, texId uint32)
}
