package shaders

import (
	"fmt"

	"github.com/nw-engine/vision/logging"
)

// LoadAndCompileCombinedShader creates a program from a file holding all of its stages
func LoadAndCompileCombinedShader(name, shaderPath string, drv Driver) (*ShaderProgram, error) {

	sp := New(name, drv)
	if err := sp.LoadFile(shaderPath); err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return nil, err
	}

	if err := sp.Compile(); err != nil {
		return nil, err
	}

	return sp, nil
}

func LoadAndCompileCombinedShaderSrc(name string, shaderSrc []byte, drv Driver) (*ShaderProgram, error) {

	sp := New(name, drv)
	sp.SetSource(string(shaderSrc))

	if err := sp.Compile(); err != nil {
		return nil, err
	}

	return sp, nil
}

// CompileShaderOfType compiles a standalone stage, e.g. to check it before it is attached anywhere
func CompileShaderOfType(name string, shaderSource []byte, shaderType ShaderType, drv Driver) (*SubShader, error) {

	if !shaderType.IsValid() {
		return nil, fmt.Errorf("failed to compile shader '%s': %w '%d'", name, ErrUnknownStage, shaderType)
	}

	s := NewSubShader(name, shaderType, drv)
	s.SetSource(string(shaderSource))

	if err := s.Compile(); err != nil {
		return nil, err
	}

	return s, nil
}
