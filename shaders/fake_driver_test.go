package shaders

import (
	"errors"
	"strings"

	"github.com/bloeys/gglm/gglm"
)

type uniformCall struct {
	progId uint32
	loc    int32
	vals   []float32
	ints   []int32
	uints  []uint32
}

// fakeDriver records native calls. Sources containing 'COMPILE_ERROR' fail to compile,
// and programs fail to link while failLink is set.
type fakeDriver struct {
	lastId uint32

	programs map[uint32][]uint32
	shaders  map[uint32]ShaderType
	sources  map[uint32]string

	uniforms map[string]int32
	attribs  map[string]int32
	blocks   map[string]int32

	failLink bool

	lookups      map[string]int
	usedProgram  uint32
	uniformCalls []uniformCall
	blockBinds   map[int32]uint32
	textures     map[uint32]uint32
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		programs:   make(map[uint32][]uint32),
		shaders:    make(map[uint32]ShaderType),
		sources:    make(map[uint32]string),
		uniforms:   map[string]int32{"model": 0, "color": 1, "lights": 2, "flags": 3, "tint": 4},
		attribs:    map[string]int32{"vertPosIn": 0},
		blocks:     map[string]int32{"Globals": 0},
		lookups:    make(map[string]int),
		blockBinds: make(map[int32]uint32),
		textures:   make(map[uint32]uint32),
	}
}

func (d *fakeDriver) newId() uint32 {
	d.lastId++
	return d.lastId
}

func (d *fakeDriver) CreateProgram() (uint32, error) {
	id := d.newId()
	d.programs[id] = nil
	return id, nil
}

func (d *fakeDriver) DeleteProgram(progId uint32) {
	delete(d.programs, progId)
}

func (d *fakeDriver) LinkProgram(progId uint32) error {

	if d.failLink {
		return errors.New("link failed")
	}

	if len(d.programs[progId]) == 0 {
		return errors.New("nothing attached")
	}

	return nil
}

func (d *fakeDriver) UseProgram(progId uint32) {
	d.usedProgram = progId
}

func (d *fakeDriver) CreateShader(shaderType ShaderType) (uint32, error) {
	id := d.newId()
	d.shaders[id] = shaderType
	return id, nil
}

func (d *fakeDriver) DeleteShader(shaderId uint32) {
	delete(d.shaders, shaderId)
	delete(d.sources, shaderId)
}

func (d *fakeDriver) CompileShader(shaderId uint32, src string) error {

	d.sources[shaderId] = src
	if strings.Contains(src, "COMPILE_ERROR") {
		return errors.New("0:1(1): error: syntax error")
	}

	return nil
}

func (d *fakeDriver) AttachShader(progId, shaderId uint32) {
	d.programs[progId] = append(d.programs[progId], shaderId)
}

func (d *fakeDriver) DetachShader(progId, shaderId uint32) {

	attached := d.programs[progId]
	for i := 0; i < len(attached); i++ {
		if attached[i] == shaderId {
			d.programs[progId] = append(attached[:i], attached[i+1:]...)
			return
		}
	}
}

func (d *fakeDriver) lookup(m map[string]int32, name string) int32 {

	d.lookups[name]++
	loc, ok := m[name]
	if !ok {
		return -1
	}

	return loc
}

func (d *fakeDriver) UniformLocation(progId uint32, name string) int32 {
	return d.lookup(d.uniforms, name)
}

func (d *fakeDriver) AttribLocation(progId uint32, name string) int32 {
	return d.lookup(d.attribs, name)
}

func (d *fakeDriver) UniformBlockIndex(progId uint32, name string) int32 {
	return d.lookup(d.blocks, name)
}

func (d *fakeDriver) UniformBlockBinding(progId uint32, blockIndex int32, bindPoint uint32) {
	d.blockBinds[blockIndex] = bindPoint
}

func (d *fakeDriver) SetUniformInts(progId uint32, loc int32, vals []int32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{progId: progId, loc: loc, ints: vals})
}

func (d *fakeDriver) SetUniformUints(progId uint32, loc int32, vals []uint32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{progId: progId, loc: loc, uints: vals})
}

func (d *fakeDriver) SetUniformFloats(progId uint32, loc int32, vals []float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{progId: progId, loc: loc, vals: vals})
}

func (d *fakeDriver) SetUniformVec2(progId uint32, loc int32, v *gglm.Vec2) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{progId: progId, loc: loc, vals: v.Data[:]})
}

func (d *fakeDriver) SetUniformVec3(progId uint32, loc int32, v *gglm.Vec3) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{progId: progId, loc: loc, vals: v.Data[:]})
}

func (d *fakeDriver) SetUniformVec4(progId uint32, loc int32, v *gglm.Vec4) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{progId: progId, loc: loc, vals: v.Data[:]})
}

func (d *fakeDriver) SetUniformMat4(progId uint32, loc int32, m *gglm.Mat4) {

	vals := make([]float32, 0, 16)
	for col := 0; col < 4; col++ {
		vals = append(vals, m.Data[col][:]...)
	}

	d.uniformCalls = append(d.uniformCalls, uniformCall{progId: progId, loc: loc, vals: vals})
}

func (d *fakeDriver) BindTexture(unit uint32, target TextureTarget, texId uint32) {
	d.textures[unit] = texId
}
