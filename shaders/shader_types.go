package shaders

import "strings"

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

// ParseShaderType maps the name written after a `#shader` marker to a shader type.
// Names are case insensitive.
func ParseShaderType(name string) ShaderType {

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vertex", "vert":
		return ShaderType_Vertex
	case "fragment", "frag", "pixel":
		return ShaderType_Fragment
	case "geometry", "geom":
		return ShaderType_Geometry
	default:
		return ShaderType_Unknown
	}
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

func (s ShaderType) IsValid() bool {
	return s == ShaderType_Vertex || s == ShaderType_Fragment || s == ShaderType_Geometry
}

type TextureTarget int32

const (
	TextureTarget_Unknown TextureTarget = iota
	TextureTarget_2D
	TextureTarget_2DArray
	TextureTarget_Cubemap
	TextureTarget_CubemapArray
)
