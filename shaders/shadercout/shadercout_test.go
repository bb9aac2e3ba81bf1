package shadercout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/nw-engine/vision/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadSrc = `#shader vertex
#version 410
layout(location=0) in vec2 vertPosIn;
void main() { gl_Position = vec4(vertPosIn, 0, 1); }
#shader fragment
#version 410
uniform vec4 tint;
out vec4 fragColor;
void main() { fragColor = tint; }
`

func TestDriverLogsProgramLifecycle(t *testing.T) {

	var out bytes.Buffer
	drv := New(&out)

	sp, err := shaders.LoadAndCompileCombinedShaderSrc("quad", []byte(quadSrc), drv)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), sp.RenderId())

	log := out.String()
	assert.Contains(t, log, "CreateProgram() -> 1\n")
	assert.Contains(t, log, "CreateShader(vertex) -> 2\n")
	assert.Contains(t, log, "CompileShader(2, 4 lines)\n")
	assert.Contains(t, log, "AttachShader(1, 2)\n")
	assert.Contains(t, log, "CreateShader(fragment) -> 3\n")
	assert.Contains(t, log, "LinkProgram(1)\n")
	assert.Contains(t, log, "DeleteShader(3)\n")

	out.Reset()
	sp.Enable()
	sp.SetV4f("tint", &gglm.Vec4{Data: [4]float32{1, 0.5, 0, 1}})
	sp.SetV4f("tint", &gglm.Vec4{Data: [4]float32{0, 0, 0, 1}})
	sp.SetIntArray("counts", []int32{1, 2})
	sp.Disable()

	assert.Equal(t, strings.Join([]string{
		"UseProgram(1)",
		`UniformLocation(1, "tint") -> 0`,
		"SetUniformVec4(1, 0, [1 0.5 0 1])",
		"SetUniformVec4(1, 0, [0 0 0 1])",
		`UniformLocation(1, "counts") -> 1`,
		"SetUniformInts(1, 1, [1 2])",
		"UseProgram(0)",
		"",
	}, "\n"), out.String())

	out.Reset()
	require.NoError(t, sp.SetBlockBinding("Globals", 3))
	assert.Equal(t, "UniformBlockIndex(1, \"Globals\") -> 2\nUniformBlockBinding(1, 2, 3)\n", out.String())

	out.Reset()
	sp.Reset()
	assert.Contains(t, out.String(), "DeleteProgram(1)\n")
}

func TestDriverErrors(t *testing.T) {

	drv := New(&bytes.Buffer{})

	progId, err := drv.CreateProgram()
	require.NoError(t, err)
	assert.ErrorContains(t, drv.LinkProgram(progId), "no shaders attached")
	assert.ErrorContains(t, drv.LinkProgram(99), "does not exist")

	shId, err := drv.CreateShader(shaders.ShaderType_Fragment)
	require.NoError(t, err)
	assert.ErrorContains(t, drv.CompileShader(shId, " \n "), "empty shader source")
	assert.ErrorContains(t, drv.CompileShader(99, "void main() {}"), "does not exist")
	assert.Equal(t, int32(-1), drv.UniformLocation(99, "x"))
}
