package buffers

import (
	"strings"

	"github.com/nw-engine/vision/assert"
)

// Element is one attribute of a vertex layout (e.g. a Vec3 normal at an offset of 12 bytes)
type Element struct {
	Name     string
	Location int32
	Offset   int
	ElementType
}

// ElementType is the data type of an element or a uniform block field (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4

	DataTypeStruct
)

// ElementTypeFromGLSL maps a GLSL type name to its element type.
// Bools are stored as 32-bit integers, like std140 does.
func ElementTypeFromGLSL(glslType string) (ElementType, bool) {

	switch strings.TrimSpace(glslType) {
	case "uint", "bool":
		return DataTypeUint32, true
	case "int":
		return DataTypeInt32, true
	case "float":
		return DataTypeFloat32, true

	case "vec2":
		return DataTypeVec2, true
	case "vec3":
		return DataTypeVec3, true
	case "vec4":
		return DataTypeVec4, true

	case "mat2", "mat2x2":
		return DataTypeMat2, true
	case "mat3", "mat3x3":
		return DataTypeMat3, true
	case "mat4", "mat4x4":
		return DataTypeMat4, true

	default:
		return DataTypeUnknown, false
	}
}

// CompSize returns the size in bytes of one component of the type (e.g. for Vec2 its 4)
func (dt ElementType) CompSize() int32 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32,
		DataTypeVec2, DataTypeVec3, DataTypeVec4,
		DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return 4

	default:
		assert.T(false, "ElementType.CompSize called on unsupported data type '%s'", dt.String())
		return 0
	}
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 1

	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4

	case DataTypeMat2:
		return 2 * 2
	case DataTypeMat3:
		return 3 * 3
	case DataTypeMat4:
		return 4 * 4

	default:
		assert.T(false, "ElementType.CompCount called on unsupported data type '%s'", dt.String())
		return 0
	}
}

// Size returns the tightly packed size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	return dt.CompSize() * dt.CompCount()
}

// MatrixColumns returns the number of columns for matrix types and 0 otherwise
func (dt ElementType) MatrixColumns() uint32 {

	switch dt {
	case DataTypeMat2:
		return 2
	case DataTypeMat3:
		return 3
	case DataTypeMat4:
		return 4
	default:
		return 0
	}
}

// Std140Size is the number of bytes a single (non-array) value occupies in a std140 block.
// Matrices are stored as arrays of columns, each column padded to a vec4.
func (dt ElementType) Std140Size() uint32 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 4
	case DataTypeVec2:
		return 8
	case DataTypeVec3:
		return 12
	case DataTypeVec4:
		return 16

	case DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return 16 * dt.MatrixColumns()

	default:
		assert.T(false, "ElementType.Std140Size called on unsupported data type '%s'", dt.String())
		return 0
	}
}

// Std140Alignment is the base alignment of a single (non-array) value in a std140 block
func (dt ElementType) Std140Alignment() uint32 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 4

	case DataTypeVec2:
		return 8

	case DataTypeVec3, DataTypeVec4,
		DataTypeMat2, DataTypeMat3, DataTypeMat4,
		DataTypeStruct:
		return 16

	default:
		assert.T(false, "ElementType.Std140Alignment called on unsupported data type '%s'", dt.String())
		return 0
	}
}

func (dt ElementType) String() string {

	switch dt {

	case DataTypeUint32:
		return "uint32"
	case DataTypeFloat32:
		return "float32"
	case DataTypeInt32:
		return "int32"

	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"

	case DataTypeMat2:
		return "Mat2"
	case DataTypeMat3:
		return "Mat3"
	case DataTypeMat4:
		return "Mat4"

	case DataTypeStruct:
		return "Struct"

	default:
		return "Unknown"
	}
}
