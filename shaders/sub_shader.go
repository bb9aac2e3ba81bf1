package shaders

import (
	"fmt"

	"github.com/nw-engine/vision/assert"
	"github.com/nw-engine/vision/logging"
)

// SubShader is a single stage (vertex, fragment, ...) of a shader program.
//
// Usage: create it, set the source (optionally starting with a `#shader <type>` marker),
// attach it to a program and compile it. The program links it.
type SubShader struct {
	CodeChunk

	drv        Driver
	id         uint32
	shaderType ShaderType
	overShader *ShaderProgram

	// attachedId is the program id the native shader is currently attached to
	attachedId uint32
	// startLine is the line of the stage marker in the combined source, 0 for standalone sources
	startLine int
}

func NewSubShader(name string, shaderType ShaderType, drv Driver) *SubShader {

	assert.T(shaderType.IsValid(), "NewSubShader called with invalid shader type '%d'", shaderType)

	return &SubShader{
		CodeChunk:  CodeChunk{name: name},
		drv:        drv,
		shaderType: shaderType,
	}
}

func (s *SubShader) RenderId() uint32 {
	return s.id
}

func (s *SubShader) Type() ShaderType {
	return s.shaderType
}

// OverShader returns the program this sub shader is attached to, or nil
func (s *SubShader) OverShader() *ShaderProgram {
	return s.overShader
}

// Attach makes prog the owner of this sub shader, detaching it from any previous owner
func (s *SubShader) Attach(prog *ShaderProgram) {

	if s.overShader == prog {
		return
	}

	if s.overShader != nil {
		s.Detach()
	}

	s.overShader = prog
	prog.subShaders = append(prog.subShaders, s)
	s.attachNative()
}

func (s *SubShader) Detach() {

	if s.overShader == nil {
		return
	}

	s.detachNative()

	prog := s.overShader
	for i := 0; i < len(prog.subShaders); i++ {

		if prog.subShaders[i] != s {
			continue
		}

		prog.subShaders = append(prog.subShaders[:i], prog.subShaders[i+1:]...)
		break
	}

	s.overShader = nil
}

func (s *SubShader) Compile() error {

	code, err := stageCode(s.source, s.shaderType)
	if err != nil {
		return fmt.Errorf("failed to compile %s shader '%s': %w", s.shaderType, s.name, err)
	}

	if s.id == 0 {

		s.id, err = s.drv.CreateShader(s.shaderType)
		if err != nil {
			return fmt.Errorf("failed to create %s shader '%s': %w", s.shaderType, s.name, err)
		}
	}

	if err := s.drv.CompileShader(s.id, code); err != nil {

		logging.ErrLog.Printf("Compilation of %s shader '%s' (id=%d) failed. Err: %s\n", s.shaderType, s.name, s.id, err)

		s.deleteNative()

		if s.startLine > 0 {
			return fmt.Errorf("failed to compile %s shader '%s' (stage starts at line %d): %w", s.shaderType, s.name, s.startLine, err)
		}

		return fmt.Errorf("failed to compile %s shader '%s': %w", s.shaderType, s.name, err)
	}

	s.attachNative()
	return nil
}

// Reset detaches the sub shader and frees its native shader. The source is kept.
func (s *SubShader) Reset() {
	s.Detach()
	s.deleteNative()
}

func (s *SubShader) attachNative() {

	if s.overShader == nil || s.overShader.id == 0 || s.id == 0 || s.attachedId == s.overShader.id {
		return
	}

	s.detachNative()
	s.drv.AttachShader(s.overShader.id, s.id)
	s.attachedId = s.overShader.id
}

func (s *SubShader) detachNative() {

	if s.attachedId == 0 || s.id == 0 {
		s.attachedId = 0
		return
	}

	s.drv.DetachShader(s.attachedId, s.id)
	s.attachedId = 0
}

func (s *SubShader) deleteNative() {

	if s.id == 0 {
		return
	}

	s.detachNative()
	s.drv.DeleteShader(s.id)
	s.id = 0
}
