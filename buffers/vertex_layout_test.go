package buffers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexBufLayout(t *testing.T) {

	vl := NewVertexBufLayout(
		Element{Name: "vertPosIn", ElementType: DataTypeVec3},
		Element{Name: "vertNormalIn", Location: 1, ElementType: DataTypeVec3},
		Element{Name: "vertUV0In", Location: 2, ElementType: DataTypeVec2},
	)

	assert.Equal(t, int32(32), vl.Stride)
	assert.Equal(t, 3, vl.Len())

	uv, ok := vl.Element("vertUV0In")
	assert.True(t, ok)
	assert.Equal(t, 24, uv.Offset)

	_, ok = vl.Element("missing")
	assert.False(t, ok)

	vl.Reset()
	assert.Equal(t, int32(0), vl.Stride)
	assert.Empty(t, vl.Elements())
}

func TestElementTypeFromGLSL(t *testing.T) {

	cases := map[string]ElementType{
		"float":  DataTypeFloat32,
		"int":    DataTypeInt32,
		"bool":   DataTypeUint32,
		"vec3":   DataTypeVec3,
		"mat4":   DataTypeMat4,
		"mat3x3": DataTypeMat3,
	}

	for glsl, want := range cases {
		got, ok := ElementTypeFromGLSL(glsl)
		assert.True(t, ok, glsl)
		assert.Equal(t, want, got, glsl)
	}

	_, ok := ElementTypeFromGLSL("sampler2D")
	assert.False(t, ok)

	assert.Equal(t, int32(64), DataTypeMat4.Size())
	assert.Equal(t, uint32(48), DataTypeMat3.Std140Size())
	assert.Equal(t, uint32(8), DataTypeVec2.Std140Alignment())
}
