package materials

import (
	"fmt"
	"sync/atomic"

	"github.com/nw-engine/vision/logging"
	"github.com/nw-engine/vision/shaders"
)

var (
	lastMatId atomic.Uint32
)

type TextureSlot uint32

const (
	TextureSlot_Diffuse          TextureSlot = 0
	TextureSlot_Specular         TextureSlot = 1
	TextureSlot_Normal           TextureSlot = 2
	TextureSlot_Emission         TextureSlot = 3
	TextureSlot_Cubemap          TextureSlot = 10
	TextureSlot_Cubemap_Array    TextureSlot = 11
	TextureSlot_ShadowMap1       TextureSlot = 12
	TextureSlot_ShadowMap_Array1 TextureSlot = 13
)

func (ts TextureSlot) Target() shaders.TextureTarget {

	switch ts {
	case TextureSlot_Cubemap:
		return shaders.TextureTarget_Cubemap
	case TextureSlot_Cubemap_Array:
		return shaders.TextureTarget_CubemapArray
	case TextureSlot_ShadowMap_Array1:
		return shaders.TextureTarget_2DArray
	default:
		return shaders.TextureTarget_2D
	}
}

type MaterialSettings uint64

const (
	MaterialSettings_None        MaterialSettings = iota
	MaterialSettings_HasModelMtx MaterialSettings = 1 << (iota - 1)
	MaterialSettings_HasNormalMtx
)

func (ms *MaterialSettings) Set(flags MaterialSettings) {
	*ms |= flags
}

func (ms *MaterialSettings) Remove(flags MaterialSettings) {
	*ms &= ^flags
}

func (ms *MaterialSettings) Has(flags MaterialSettings) bool {
	return *ms&flags == flags
}

// Material is a shader program plus the textures it samples from
type Material struct {
	Id       uint32
	Name     string
	Shader   *shaders.ShaderProgram
	Settings MaterialSettings

	// Textures maps a slot to a texture id. Zero ids are not bound.
	Textures map[TextureSlot]uint32

	// Shininess of specular highlights
	Shininess float32

	drv shaders.Driver
}

func (m *Material) SetTexture(slot TextureSlot, texId uint32) {
	m.Textures[slot] = texId
}

func (m *Material) Bind() {

	m.Shader.Enable()

	for slot, texId := range m.Textures {

		if texId == 0 {
			continue
		}

		m.drv.BindTexture(uint32(slot), slot.Target(), texId)
	}
}

func (m *Material) UnBind() {
	m.Shader.Disable()
}

func (m *Material) SetUniformBlockBindingPoint(uniformBlockName string, bindPointIndex uint32) error {

	if err := m.Shader.SetBlockBinding(uniformBlockName, bindPointIndex); err != nil {
		return fmt.Errorf("failed to set block binding point of material '%s' (matId=%d): %w", m.Name, m.Id, err)
	}

	return nil
}

func (m *Material) Delete() {
	m.Shader.Reset()
}

func getNewMatId() uint32 {
	return lastMatId.Add(1)
}

func newMaterial(matName string, sp *shaders.ShaderProgram, drv shaders.Driver) *Material {
	return &Material{
		Id:       getNewMatId(),
		Name:     matName,
		Shader:   sp,
		Textures: make(map[TextureSlot]uint32),
		drv:      drv,
	}
}

func NewMaterial(matName, shaderPath string, drv shaders.Driver) (*Material, error) {

	sp, err := shaders.LoadAndCompileCombinedShader(matName, shaderPath, drv)
	if err != nil {
		logging.ErrLog.Printf("Failed to create new material '%s'. Err: %s\n", matName, err.Error())
		return nil, fmt.Errorf("failed to create material '%s': %w", matName, err)
	}

	return newMaterial(matName, sp, drv), nil
}

func NewMaterialSrc(matName string, shaderSrc []byte, drv shaders.Driver) (*Material, error) {

	sp, err := shaders.LoadAndCompileCombinedShaderSrc(matName, shaderSrc, drv)
	if err != nil {
		logging.ErrLog.Printf("Failed to create new material '%s'. Err: %s\n", matName, err.Error())
		return nil, fmt.Errorf("failed to create material '%s': %w", matName, err)
	}

	return newMaterial(matName, sp, drv), nil
}
