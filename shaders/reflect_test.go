package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectBlockArrays(t *testing.T) {

	r := Reflect([]StageSource{{
		Type: ShaderType_Fragment,
		Code: "layout(std140) uniform Single {\n    float a[1];\n    float b;\n    vec4 c[2];\n};\nvoid main() {}\n",
	}})

	require.Len(t, r.Blocks, 1)
	block := r.Blocks[0]
	assert.Equal(t, "Single", block.Name)

	a, ok := block.Field("a")
	require.True(t, ok)
	assert.Equal(t, uint32(0), a.Offset)
	assert.Equal(t, uint32(16), a.ArrayStride)

	b, ok := block.Field("b")
	require.True(t, ok)
	assert.Equal(t, uint32(16), b.Offset)

	c, ok := block.Field("c")
	require.True(t, ok)
	assert.Equal(t, uint32(32), c.Offset)
	assert.Equal(t, uint32(2), c.Count)
	assert.Equal(t, uint32(64), block.Size)
}
