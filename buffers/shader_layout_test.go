package buffers

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOffsets(sl ShaderBufLayout) map[string]uint32 {
	m := make(map[string]uint32, len(sl.Fields))
	for _, f := range sl.Fields {
		m[f.Name] = f.Offset
	}
	return m
}

func TestShaderBufLayoutStd140(t *testing.T) {

	sl, err := NewShaderBufLayout("Globals", []ShaderBufFieldInput{
		{Name: "a", Type: DataTypeFloat32},
		{Name: "b", Type: DataTypeVec3},
		{Name: "c", Type: DataTypeFloat32},
		{Name: "d", Type: DataTypeMat4},
		{Name: "e", Type: DataTypeFloat32, Count: 3},
		{Name: "f", Type: DataTypeVec2},
	})
	require.NoError(t, err)

	assert.Equal(t, "Globals", sl.Name)
	assert.Equal(t, map[string]uint32{
		"a": 0,
		"b": 16,
		"c": 28,
		"d": 32,
		"e": 96,
		"f": 144,
	}, fieldOffsets(sl))
	assert.Equal(t, uint32(160), sl.Size)

	e, ok := sl.Field("e")
	require.True(t, ok)
	assert.Equal(t, uint32(3), e.Count)
	assert.Equal(t, uint32(16), e.ArrayStride)

	d, ok := sl.Field("d")
	require.True(t, ok)
	assert.Equal(t, uint32(0), d.ArrayStride)
}

func TestShaderBufLayoutSingleElementArray(t *testing.T) {

	sl, err := NewShaderBufLayout("Single", []ShaderBufFieldInput{
		{Name: "a", Type: DataTypeFloat32, Count: 1, IsArray: true},
		{Name: "b", Type: DataTypeFloat32},
		{Name: "c", Type: DataTypeFloat32, Count: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]uint32{
		"a": 0,
		"b": 16,
		"c": 20,
	}, fieldOffsets(sl))
	assert.Equal(t, uint32(32), sl.Size)

	a, ok := sl.Field("a")
	require.True(t, ok)
	assert.Equal(t, uint32(16), a.ArrayStride)

	c, ok := sl.Field("c")
	require.True(t, ok)
	assert.Equal(t, uint32(0), c.ArrayStride)
}

func TestShaderBufLayoutStructArray(t *testing.T) {

	sl, err := NewShaderBufLayout("Lights", []ShaderBufFieldInput{
		{Name: "count", Type: DataTypeInt32},
		{
			Name:  "lights",
			Type:  DataTypeStruct,
			Count: 2,
			Subfields: []ShaderBufFieldInput{
				{Name: "pos", Type: DataTypeVec3},
				{Name: "intensity", Type: DataTypeFloat32},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]uint32{
		"count":               0,
		"lights":              16,
		"lights[0].pos":       16,
		"lights[0].intensity": 28,
		"lights[1].pos":       32,
		"lights[1].intensity": 44,
	}, fieldOffsets(sl))
	assert.Equal(t, uint32(48), sl.Size)
}

func TestShaderBufLayoutErrors(t *testing.T) {

	_, err := NewShaderBufLayout("Dup", []ShaderBufFieldInput{
		{Name: "x", Type: DataTypeFloat32},
		{Name: "x", Type: DataTypeInt32},
	})
	assert.ErrorContains(t, err, "more than once")

	_, err = NewShaderBufLayout("Unknown", []ShaderBufFieldInput{
		{Name: "x", Type: DataTypeUnknown},
	})
	assert.ErrorContains(t, err, "unknown type")

	_, err = NewShaderBufLayout("EmptyStruct", []ShaderBufFieldInput{
		{Name: "s", Type: DataTypeStruct},
	})
	assert.ErrorContains(t, err, "no members")
}

func TestBlockData(t *testing.T) {

	sl, err := NewShaderBufLayout("Camera", []ShaderBufFieldInput{
		{Name: "exposure", Type: DataTypeFloat32},
		{Name: "frame", Type: DataTypeInt32},
		{Name: "camPos", Type: DataTypeVec3},
		{Name: "weights", Type: DataTypeFloat32, Count: 2},
		{Name: "projView", Type: DataTypeMat4},
	})
	require.NoError(t, err)

	bd := NewBlockData(&sl)
	require.Len(t, bd.Data, int(sl.Size))

	readF32 := func(offset uint32) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(bd.Data[offset:]))
	}

	require.NoError(t, bd.SetFloat32("exposure", 1.5))
	assert.Equal(t, float32(1.5), readF32(0))

	require.NoError(t, bd.SetInt32("frame", -3))
	assert.Equal(t, int32(-3), int32(binary.LittleEndian.Uint32(bd.Data[4:])))

	v := gglm.NewVec3(1, 2, 3)
	require.NoError(t, bd.SetVec3("camPos", &v))
	assert.Equal(t, float32(1), readF32(16))
	assert.Equal(t, float32(2), readF32(20))
	assert.Equal(t, float32(3), readF32(24))

	require.NoError(t, bd.SetFloat32Array("weights", []float32{0.25, 0.75}))
	assert.Equal(t, float32(0.25), readF32(32))
	assert.Equal(t, float32(0.75), readF32(48))

	m := gglm.NewMat4Diag(2)
	require.NoError(t, bd.SetMat4("projView", &m))
	assert.Equal(t, float32(2), readF32(64))
	assert.Equal(t, float32(0), readF32(68))
	assert.Equal(t, float32(2), readF32(64+16+4))

	assert.ErrorContains(t, bd.SetFloat32("frame", 1), "is of type int32")
	assert.ErrorContains(t, bd.SetFloat32("nope", 1), "no field named")
	assert.ErrorContains(t, bd.SetFloat32Array("weights", []float32{1, 2, 3}), "holds 2 values")
}
