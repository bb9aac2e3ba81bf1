package buffers

import (
	"fmt"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/nw-engine/vision/assert"
)

// BlockData is CPU side staging memory for a uniform block, written following its std140 layout.
// Uploading Data to a GPU buffer is up to the owner of the buffer object.
type BlockData struct {
	Layout *ShaderBufLayout
	Data   []byte
}

func NewBlockData(layout *ShaderBufLayout) *BlockData {
	return &BlockData{
		Layout: layout,
		Data:   make([]byte, layout.Size),
	}
}

func (bd *BlockData) getField(name string, fieldType ElementType) (ShaderBufField, error) {

	f, ok := bd.Layout.Field(name)
	if !ok {
		return ShaderBufField{}, fmt.Errorf("uniform block '%s' has no field named '%s'", bd.Layout.Name, name)
	}

	if f.Type != fieldType {
		return ShaderBufField{}, fmt.Errorf("uniform block field '%s.%s' is of type %s but was set as %s", bd.Layout.Name, name, f.Type.String(), fieldType.String())
	}

	return f, nil
}

func (bd *BlockData) SetInt32(name string, val int32) error {

	f, err := bd.getField(name, DataTypeInt32)
	if err != nil {
		return err
	}

	writeU32(bd.Data, f.Offset, uint32(val))
	return nil
}

func (bd *BlockData) SetUint32(name string, val uint32) error {

	f, err := bd.getField(name, DataTypeUint32)
	if err != nil {
		return err
	}

	writeU32(bd.Data, f.Offset, val)
	return nil
}

func (bd *BlockData) SetFloat32(name string, val float32) error {

	f, err := bd.getField(name, DataTypeFloat32)
	if err != nil {
		return err
	}

	writeF32s(bd.Data, f.Offset, val)
	return nil
}

// SetFloat32Array writes vals into an array field, each element on its own 16 byte slot
func (bd *BlockData) SetFloat32Array(name string, vals []float32) error {

	f, err := bd.getField(name, DataTypeFloat32)
	if err != nil {
		return err
	}

	if uint32(len(vals)) > f.Count {
		return fmt.Errorf("uniform block field '%s.%s' holds %d values but got %d", bd.Layout.Name, name, f.Count, len(vals))
	}

	for i := 0; i < len(vals); i++ {
		writeF32s(bd.Data, f.Offset+uint32(i)*f.ArrayStride, vals[i])
	}

	return nil
}

func (bd *BlockData) SetVec2(name string, val *gglm.Vec2) error {

	f, err := bd.getField(name, DataTypeVec2)
	if err != nil {
		return err
	}

	writeF32s(bd.Data, f.Offset, val.Data[:]...)
	return nil
}

func (bd *BlockData) SetVec3(name string, val *gglm.Vec3) error {

	f, err := bd.getField(name, DataTypeVec3)
	if err != nil {
		return err
	}

	writeF32s(bd.Data, f.Offset, val.Data[:]...)
	return nil
}

func (bd *BlockData) SetVec4(name string, val *gglm.Vec4) error {

	f, err := bd.getField(name, DataTypeVec4)
	if err != nil {
		return err
	}

	writeF32s(bd.Data, f.Offset, val.Data[:]...)
	return nil
}

func (bd *BlockData) SetMat4(name string, val *gglm.Mat4) error {

	f, err := bd.getField(name, DataTypeMat4)
	if err != nil {
		return err
	}

	for col := uint32(0); col < 4; col++ {
		writeF32s(bd.Data, f.Offset+col*16, val.Data[col][:]...)
	}

	return nil
}

func writeU32(buf []byte, offset uint32, val uint32) {

	assert.T(int(offset)+4 <= len(buf), "failed to write uint32/int32 to block data because the buffer doesn't have enough space. Offset=%d, Buffer length=%d", offset, len(buf))

	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeF32s(buf []byte, offset uint32, vals ...float32) {

	assert.T(int(offset)+len(vals)*4 <= len(buf), "failed to write float32 values to block data because the buffer doesn't have enough space. Offset=%d, Buffer length=%d, but needs %d bytes free", offset, len(buf), len(vals)*4)

	for i := 0; i < len(vals); i++ {
		writeU32(buf, offset+uint32(i)*4, math.Float32bits(vals[i]))
	}
}
