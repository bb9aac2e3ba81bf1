package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const combinedSrc = `
#shader vertex
#version 410
layout(location=0) in vec3 vertPosIn;
void main() { gl_Position = vec4(vertPosIn, 1); }

#shader fragment
#version 410
out vec4 fragColor;
void main() { fragColor = vec4(1); }
`

func TestSplitSource(t *testing.T) {

	stages, err := SplitSource([]byte(combinedSrc))
	require.NoError(t, err)
	require.Len(t, stages, 2)

	assert.Equal(t, ShaderType_Vertex, stages[0].Type)
	assert.Equal(t, 2, stages[0].Line)
	assert.Equal(t, "#version 410\nlayout(location=0) in vec3 vertPosIn;\nvoid main() { gl_Position = vec4(vertPosIn, 1); }\n\n", stages[0].Code)

	assert.Equal(t, ShaderType_Fragment, stages[1].Type)
	assert.Equal(t, 7, stages[1].Line)
	assert.Equal(t, "#version 410\nout vec4 fragColor;\nvoid main() { fragColor = vec4(1); }\n", stages[1].Code)
}

func TestSplitSourceMarkerForms(t *testing.T) {

	src := "  #shader   VERT  // comment\ncode v\n#shader geom\ncode g\n#shader\tpixel\ncode f"

	stages, err := SplitSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, stages, 3)

	assert.Equal(t, ShaderType_Vertex, stages[0].Type)
	assert.Equal(t, ShaderType_Geometry, stages[1].Type)
	assert.Equal(t, ShaderType_Fragment, stages[2].Type)
	assert.Equal(t, "code f\n", stages[2].Code)
}

func TestSplitSourceErrors(t *testing.T) {

	tests := []struct {
		name string
		src  string
		err  error
		msg  string
	}{
		{name: "no markers", src: "void main() {}", err: ErrNoStages},
		{name: "no markers multiline", src: "#version 410\nout vec4 fragColor;\nvoid main() {}\n", err: ErrNoStages},
		{name: "empty", src: "", err: ErrNoStages},
		{name: "stray code", src: "int x;\n#shader vertex\ncode", err: ErrStrayCode, msg: "line 1"},
		{name: "unknown type", src: "#shader compute\ncode", err: ErrUnknownStage, msg: "'compute' at line 1"},
		{name: "missing type", src: "#shader vertex\ncode\n#shader\ncode", err: ErrUnknownStage, msg: "line 3"},
		{name: "duplicate", src: "#shader vertex\na\n#shader frag\nb\n#shader vertex\nc", err: ErrDuplicateStage, msg: "line 5 was already declared at line 1"},
		{name: "empty stage", src: "#shader vertex\n  \n#shader fragment\ncode", err: ErrEmptyStage, msg: "line 1"},
		{name: "empty last stage", src: "#shader vertex\ncode\n#shader fragment\n", err: ErrEmptyStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			_, err := SplitSource([]byte(tt.src))
			require.ErrorIs(t, err, tt.err)

			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestSplitSourceIgnoresLookalikes(t *testing.T) {

	stages, err := SplitSource([]byte("#shader vertex\n#shaderish is not a marker\n"))
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Equal(t, "#shaderish is not a marker\n", stages[0].Code)
}

func TestStageCode(t *testing.T) {

	code, err := stageCode("void main() {}", ShaderType_Fragment)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", code)

	code, err = stageCode("#version 410\nvoid main() {}\n", ShaderType_Fragment)
	require.NoError(t, err)
	assert.Equal(t, "#version 410\nvoid main() {}\n", code)

	code, err = stageCode("#shader fragment\nvoid main() {}", ShaderType_Fragment)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", code)

	_, err = stageCode("#shader vertex\nvoid main() {}", ShaderType_Fragment)
	assert.ErrorContains(t, err, "marked as a vertex stage")

	_, err = stageCode(combinedSrc, ShaderType_Vertex)
	assert.ErrorContains(t, err, "found 2 stages")

	_, err = stageCode(" \n", ShaderType_Vertex)
	assert.ErrorIs(t, err, ErrEmptyStage)
}

func TestParseShaderType(t *testing.T) {
	assert.Equal(t, ShaderType_Vertex, ParseShaderType("Vertex"))
	assert.Equal(t, ShaderType_Fragment, ParseShaderType("frag"))
	assert.Equal(t, ShaderType_Geometry, ParseShaderType("geometry"))
	assert.Equal(t, ShaderType_Unknown, ParseShaderType("tess"))
	assert.Equal(t, "fragment", ShaderType_Fragment.String())
}
