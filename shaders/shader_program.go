package shaders

import (
	"errors"
	"fmt"
	"maps"

	"github.com/bloeys/gglm/gglm"
	"github.com/nw-engine/vision/buffers"
	"github.com/nw-engine/vision/logging"
)

var (
	ErrMissingVertex   = errors.New("no vertex stage found. Please put '#shader vertex' before your vertex shader")
	ErrMissingFragment = errors.New("no fragment stage found. Please put '#shader fragment' before your fragment shader")
	ErrNotCompiled     = errors.New("shader program is not compiled")
)

// ShaderProgram is a linked set of sub shaders on the GPU.
//
// Usage: New -> SetSource/LoadFile (combined source with `#shader <type>` markers) -> Compile
// -> Enable -> {render} -> Disable
//
// Shader source rules:
//   - Every stage starts with a `#shader <type>` line, type being vertex, fragment or geometry
//   - A stage ends at the next marker or at the end of the source
//   - Vertex and fragment stages are required
type ShaderProgram struct {
	CodeChunk

	drv        Driver
	id         uint32
	compiled   bool
	path       string
	subShaders []*SubShader

	vertexLayout  buffers.VertexBufLayout
	shaderLayouts []buffers.ShaderBufLayout
	uniforms      []string

	params  map[string]int32
	blocks  map[string]int32
	attribs map[string]int32
}

func New(name string, drv Driver) *ShaderProgram {
	return &ShaderProgram{
		CodeChunk: CodeChunk{name: name},
		drv:       drv,
		params:    make(map[string]int32),
		blocks:    make(map[string]int32),
		attribs:   make(map[string]int32),
	}
}

func (sp *ShaderProgram) RenderId() uint32 {
	return sp.id
}

func (sp *ShaderProgram) IsCompiled() bool {
	return sp.compiled
}

// Path is the file the source was last loaded from, if any
func (sp *ShaderProgram) Path() string {
	return sp.path
}

func (sp *ShaderProgram) VertexLayout() buffers.VertexBufLayout {
	return sp.vertexLayout
}

// ShaderLayouts are the uniform blocks found in the source
func (sp *ShaderProgram) ShaderLayouts() []buffers.ShaderBufLayout {
	l := make([]buffers.ShaderBufLayout, len(sp.shaderLayouts))
	copy(l, sp.shaderLayouts)
	return l
}

func (sp *ShaderProgram) ShaderLayout(blockName string) (buffers.ShaderBufLayout, bool) {

	for i := 0; i < len(sp.shaderLayouts); i++ {
		if sp.shaderLayouts[i].Name == blockName {
			return sp.shaderLayouts[i], true
		}
	}

	return buffers.ShaderBufLayout{}, false
}

// Uniforms are the names of the non-block uniforms declared in the source
func (sp *ShaderProgram) Uniforms() []string {
	u := make([]string, len(sp.uniforms))
	copy(u, sp.uniforms)
	return u
}

// Params returns a copy of the cached uniform locations
func (sp *ShaderProgram) Params() map[string]int32 {
	return maps.Clone(sp.params)
}

// Blocks returns a copy of the cached uniform block indices
func (sp *ShaderProgram) Blocks() map[string]int32 {
	return maps.Clone(sp.blocks)
}

func (sp *ShaderProgram) Attribs() map[string]int32 {
	return maps.Clone(sp.attribs)
}

// SubShader returns the attached sub shader of the given type, or nil
func (sp *ShaderProgram) SubShader(shaderType ShaderType) *SubShader {

	for i := 0; i < len(sp.subShaders); i++ {
		if sp.subShaders[i].shaderType == shaderType {
			return sp.subShaders[i]
		}
	}

	return nil
}

// SetSource replaces the combined source. A compiled program is reset.
func (sp *ShaderProgram) SetSource(src string) {

	if sp.compiled || sp.id != 0 {
		sp.Reset()
	}

	sp.source = src
}

func (sp *ShaderProgram) LoadFile(path string) error {

	var chunk CodeChunk
	chunk.name = sp.name
	if err := chunk.LoadFile(path); err != nil {
		return err
	}

	sp.SetSource(chunk.source)
	sp.path = path
	return nil
}

// Compile splits the source into stages, compiles them and links the program.
// On failure the program is left reset.
func (sp *ShaderProgram) Compile() error {

	if sp.compiled || sp.id != 0 {
		sp.Reset()
	}

	stages, err := SplitSource([]byte(sp.source))
	if err != nil {
		return fmt.Errorf("failed to read shader program '%s': %w", sp.name, err)
	}

	hasVert, hasFrag := false, false
	for i := 0; i < len(stages); i++ {
		hasVert = hasVert || stages[i].Type == ShaderType_Vertex
		hasFrag = hasFrag || stages[i].Type == ShaderType_Fragment
	}

	if !hasVert {
		return fmt.Errorf("failed to read shader program '%s': %w", sp.name, ErrMissingVertex)
	}

	if !hasFrag {
		return fmt.Errorf("failed to read shader program '%s': %w", sp.name, ErrMissingFragment)
	}

	sp.id, err = sp.drv.CreateProgram()
	if err != nil {
		return fmt.Errorf("failed to create shader program '%s': %w", sp.name, err)
	}

	for i := 0; i < len(stages); i++ {

		stage := &stages[i]

		sub := NewSubShader(sp.name+"."+stage.Type.String(), stage.Type, sp.drv)
		sub.SetSource(stage.Code)
		sub.startLine = stage.Line
		sub.Attach(sp)

		if err := sub.Compile(); err != nil {
			sp.Reset()
			return err
		}
	}

	if err := sp.drv.LinkProgram(sp.id); err != nil {
		logging.ErrLog.Printf("Linking of shader program '%s' (id=%d) failed. Err: %s\n", sp.name, sp.id, err)
		sp.Reset()
		return fmt.Errorf("failed to link shader program '%s': %w", sp.name, err)
	}

	// Linked programs don't need their stage objects anymore
	for i := 0; i < len(sp.subShaders); i++ {
		sp.subShaders[i].deleteNative()
	}

	r := Reflect(stages)
	sp.vertexLayout = r.VertexLayout
	sp.shaderLayouts = r.Blocks
	sp.uniforms = r.Uniforms

	sp.compiled = true
	return nil
}

// Reset frees the program and its sub shaders and clears all caches. The source is kept.
func (sp *ShaderProgram) Reset() {

	for len(sp.subShaders) > 0 {
		sp.subShaders[len(sp.subShaders)-1].Reset()
	}

	if sp.id != 0 {
		sp.drv.DeleteProgram(sp.id)
		sp.id = 0
	}

	sp.compiled = false
	sp.vertexLayout = buffers.VertexBufLayout{}
	sp.shaderLayouts = nil
	sp.uniforms = nil

	clear(sp.params)
	clear(sp.blocks)
	clear(sp.attribs)
}

func (sp *ShaderProgram) Enable() {

	if !sp.compiled {
		logging.ErrLog.Printf("Enable called on shader program '%s' which is not compiled\n", sp.name)
		return
	}

	sp.drv.UseProgram(sp.id)
}

func (sp *ShaderProgram) Disable() {
	sp.drv.UseProgram(0)
}

// UniformLoc returns the location of the uniform, asking the driver only the first time.
// Uniforms that don't exist are cached as -1 and reported once.
func (sp *ShaderProgram) UniformLoc(uniformName string) int32 {

	loc, ok := sp.params[uniformName]
	if ok {
		return loc
	}

	if !sp.compiled {
		return -1
	}

	loc = sp.drv.UniformLocation(sp.id, uniformName)
	if loc == -1 {
		logging.WarnLog.Printf("Uniform '%s' doesn't exist on shader program '%s' (id=%d)\n", uniformName, sp.name, sp.id)
	}

	sp.params[uniformName] = loc
	return loc
}

func (sp *ShaderProgram) AttribLoc(attribName string) int32 {

	loc, ok := sp.attribs[attribName]
	if ok {
		return loc
	}

	if !sp.compiled {
		return -1
	}

	loc = sp.drv.AttribLocation(sp.id, attribName)
	if loc == -1 {
		logging.WarnLog.Printf("Attribute '%s' doesn't exist on shader program '%s' (id=%d)\n", attribName, sp.name, sp.id)
	}

	sp.attribs[attribName] = loc
	return loc
}

func (sp *ShaderProgram) BlockIndex(blockName string) int32 {

	idx, ok := sp.blocks[blockName]
	if ok {
		return idx
	}

	if !sp.compiled {
		return -1
	}

	idx = sp.drv.UniformBlockIndex(sp.id, blockName)
	if idx == -1 {
		logging.WarnLog.Printf("Uniform block '%s' doesn't exist on shader program '%s' (id=%d)\n", blockName, sp.name, sp.id)
	}

	sp.blocks[blockName] = idx
	return idx
}

// SetBlockBinding connects the uniform block to a uniform buffer binding point
func (sp *ShaderProgram) SetBlockBinding(blockName string, bindPoint uint32) error {

	if !sp.compiled {
		return fmt.Errorf("failed to bind uniform block '%s' of '%s': %w", blockName, sp.name, ErrNotCompiled)
	}

	idx := sp.BlockIndex(blockName)
	if idx == -1 {
		return fmt.Errorf("failed to bind uniform block '%s' of '%s' because the block wasn't found", blockName, sp.name)
	}

	sp.drv.UniformBlockBinding(sp.id, idx, bindPoint)
	return nil
}

func (sp *ShaderProgram) SetBool(uniformName string, val bool) {

	var i int32
	if val {
		i = 1
	}

	sp.SetInt(uniformName, i)
}

func (sp *ShaderProgram) SetInt(uniformName string, val int32) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.drv.SetUniformInts(sp.id, loc, []int32{val})
}

func (sp *ShaderProgram) SetIntArray(uniformName string, vals []int32) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 || len(vals) == 0 {
		return
	}

	sp.drv.SetUniformInts(sp.id, loc, vals)
}

func (sp *ShaderProgram) SetUintArray(uniformName string, vals []uint32) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 || len(vals) == 0 {
		return
	}

	sp.drv.SetUniformUints(sp.id, loc, vals)
}

func (sp *ShaderProgram) SetFloat(uniformName string, val float32) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.drv.SetUniformFloats(sp.id, loc, []float32{val})
}

func (sp *ShaderProgram) SetFloatArray(uniformName string, vals []float32) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 || len(vals) == 0 {
		return
	}

	sp.drv.SetUniformFloats(sp.id, loc, vals)
}

func (sp *ShaderProgram) SetV2f(uniformName string, val *gglm.Vec2) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.drv.SetUniformVec2(sp.id, loc, val)
}

func (sp *ShaderProgram) SetV3f(uniformName string, val *gglm.Vec3) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.drv.SetUniformVec3(sp.id, loc, val)
}

func (sp *ShaderProgram) SetV4f(uniformName string, val *gglm.Vec4) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.drv.SetUniformVec4(sp.id, loc, val)
}

func (sp *ShaderProgram) SetM4f(uniformName string, val *gglm.Mat4) {

	loc := sp.UniformLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.drv.SetUniformMat4(sp.id, loc, val)
}
