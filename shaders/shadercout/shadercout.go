// Package shadercout implements shaders.Driver without a GPU by printing every call.
//
// It is useful for checking how a program uses its shaders on machines with no graphics context.
// Compilation only rejects empty sources, and every looked up name exists.
package shadercout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/nw-engine/vision/shaders"
)

var _ shaders.Driver = &Driver{}

type program struct {
	attached map[uint32]struct{}
	names    map[string]int32
}

type Driver struct {
	out    io.Writer
	lastId uint32

	programs    map[uint32]*program
	shaderTypes map[uint32]shaders.ShaderType
}

func New(out io.Writer) *Driver {
	return &Driver{
		out:         out,
		programs:    make(map[uint32]*program),
		shaderTypes: make(map[uint32]shaders.ShaderType),
	}
}

func (d *Driver) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format+"\n", args...)
}

func (d *Driver) newId() uint32 {
	d.lastId++
	return d.lastId
}

func (d *Driver) CreateProgram() (uint32, error) {

	id := d.newId()
	d.programs[id] = &program{
		attached: make(map[uint32]struct{}),
		names:    make(map[string]int32),
	}

	d.printf("CreateProgram() -> %d", id)
	return id, nil
}

func (d *Driver) DeleteProgram(progId uint32) {
	delete(d.programs, progId)
	d.printf("DeleteProgram(%d)", progId)
}

func (d *Driver) LinkProgram(progId uint32) error {

	d.printf("LinkProgram(%d)", progId)

	p, ok := d.programs[progId]
	if !ok {
		return fmt.Errorf("program %d does not exist", progId)
	}

	if len(p.attached) == 0 {
		return errors.New("no shaders attached")
	}

	return nil
}

func (d *Driver) UseProgram(progId uint32) {
	d.printf("UseProgram(%d)", progId)
}

func (d *Driver) CreateShader(shaderType shaders.ShaderType) (uint32, error) {

	id := d.newId()
	d.shaderTypes[id] = shaderType

	d.printf("CreateShader(%s) -> %d", shaderType, id)
	return id, nil
}

func (d *Driver) DeleteShader(shaderId uint32) {
	delete(d.shaderTypes, shaderId)
	d.printf("DeleteShader(%d)", shaderId)
}

func (d *Driver) CompileShader(shaderId uint32, src string) error {

	d.printf("CompileShader(%d, %d lines)", shaderId, strings.Count(src, "\n")+1)

	if _, ok := d.shaderTypes[shaderId]; !ok {
		return fmt.Errorf("shader %d does not exist", shaderId)
	}

	if strings.TrimSpace(src) == "" {
		return errors.New("empty shader source")
	}

	return nil
}

func (d *Driver) AttachShader(progId, shaderId uint32) {

	if p, ok := d.programs[progId]; ok {
		p.attached[shaderId] = struct{}{}
	}

	d.printf("AttachShader(%d, %d)", progId, shaderId)
}

func (d *Driver) DetachShader(progId, shaderId uint32) {

	if p, ok := d.programs[progId]; ok {
		delete(p.attached, shaderId)
	}

	d.printf("DetachShader(%d, %d)", progId, shaderId)
}

// lookup hands out increasing locations per program, so any name exists
func (d *Driver) lookup(progId uint32, kind, name string) int32 {

	p, ok := d.programs[progId]
	if !ok {
		return -1
	}

	key := kind + ":" + name
	loc, ok := p.names[key]
	if !ok {
		loc = int32(len(p.names))
		p.names[key] = loc
	}

	return loc
}

func (d *Driver) UniformLocation(progId uint32, name string) int32 {
	loc := d.lookup(progId, "uniform", name)
	d.printf("UniformLocation(%d, %q) -> %d", progId, name, loc)
	return loc
}

func (d *Driver) AttribLocation(progId uint32, name string) int32 {
	loc := d.lookup(progId, "attrib", name)
	d.printf("AttribLocation(%d, %q) -> %d", progId, name, loc)
	return loc
}

func (d *Driver) UniformBlockIndex(progId uint32, name string) int32 {
	idx := d.lookup(progId, "block", name)
	d.printf("UniformBlockIndex(%d, %q) -> %d", progId, name, idx)
	return idx
}

func (d *Driver) UniformBlockBinding(progId uint32, blockIndex int32, bindPoint uint32) {
	d.printf("UniformBlockBinding(%d, %d, %d)", progId, blockIndex, bindPoint)
}

func (d *Driver) SetUniformInts(progId uint32, loc int32, vals []int32) {
	d.printf("SetUniformInts(%d, %d, %v)", progId, loc, vals)
}

func (d *Driver) SetUniformUints(progId uint32, loc int32, vals []uint32) {
	d.printf("SetUniformUints(%d, %d, %v)", progId, loc, vals)
}

func (d *Driver) SetUniformFloats(progId uint32, loc int32, vals []float32) {
	d.printf("SetUniformFloats(%d, %d, %v)", progId, loc, vals)
}

func (d *Driver) SetUniformVec2(progId uint32, loc int32, v *gglm.Vec2) {
	d.printf("SetUniformVec2(%d, %d, %v)", progId, loc, v.Data)
}

func (d *Driver) SetUniformVec3(progId uint32, loc int32, v *gglm.Vec3) {
	d.printf("SetUniformVec3(%d, %d, %v)", progId, loc, v.Data)
}

func (d *Driver) SetUniformVec4(progId uint32, loc int32, v *gglm.Vec4) {
	d.printf("SetUniformVec4(%d, %d, %v)", progId, loc, v.Data)
}

func (d *Driver) SetUniformMat4(progId uint32, loc int32, m *gglm.Mat4) {
	d.printf("SetUniformMat4(%d, %d, %v)", progId, loc, m.Data)
}

func (d *Driver) BindTexture(unit uint32, target shaders.TextureTarget, texId uint32) {
	d.printf("BindTexture(%d, %d, %d)", unit, target, texId)
}
